package models

import (
	"time"

	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

type ExpenseCategory string

const (
	ExpenseRepair      ExpenseCategory = "repair"
	ExpenseUtility     ExpenseCategory = "utility"
	ExpenseMaintenance ExpenseCategory = "maintenance"
	ExpenseOther       ExpenseCategory = "other"
)

// Expense is a cost record, optionally tied to a location. It never touches
// billing; it only feeds the dashboard and monthly reports.
type Expense struct {
	gorm.Model
	LocationID *uint     `json:"location_id"`
	Location   *Location `json:"-" gorm:"foreignKey:LocationID"`

	Category    ExpenseCategory `json:"category" gorm:"size:20;default:'other'"`
	Description string          `json:"description" gorm:"size:255;not null"`
	Amount      decimal.Decimal `json:"amount" gorm:"type:numeric(12,0);not null"`
	ExpenseDate time.Time       `json:"expense_date" gorm:"type:date;not null"`
	Notes       string          `json:"notes" gorm:"type:text"`
}
