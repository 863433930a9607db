package models

import (
	"time"

	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// Payment is one collected amount against an invoice. Rows are append-only
// history; creating one increments the parent invoice's paid amount.
type Payment struct {
	gorm.Model
	InvoiceID uint    `json:"invoice_id" gorm:"not null"`
	Invoice   Invoice `json:"-" gorm:"foreignKey:InvoiceID"`

	Reference   string          `json:"reference" gorm:"size:36;uniqueIndex"`
	Amount      decimal.Decimal `json:"amount" gorm:"type:numeric(12,0);not null"`
	PaymentDate time.Time       `json:"payment_date" gorm:"type:date;not null"`
	Notes       string          `json:"notes" gorm:"type:text"`
}
