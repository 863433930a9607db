package models

import (
	"time"

	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

type InvoiceStatus string

const (
	InvoiceUnpaid  InvoiceStatus = "unpaid"
	InvoicePartial InvoiceStatus = "partial"
	InvoicePaid    InvoiceStatus = "paid"
)

// Invoice is the billing record for one room and one (month, year) period,
// unique per period. It is created by period generation and afterwards
// mutated by edits, absence updates and payments.
type Invoice struct {
	gorm.Model
	RoomID uint `json:"room_id" gorm:"not null;uniqueIndex:idx_invoices_room_period"`
	Room   Room `json:"room,omitempty" gorm:"foreignKey:RoomID"`

	Month int `json:"month" gorm:"not null;uniqueIndex:idx_invoices_room_period"`
	Year  int `json:"year" gorm:"not null;uniqueIndex:idx_invoices_room_period"`

	RoomFee         decimal.Decimal `json:"room_fee" gorm:"type:numeric(12,0);not null"`
	AbsentDays      int             `json:"absent_days" gorm:"default:0"`
	AbsentDeduction decimal.Decimal `json:"absent_deduction" gorm:"type:numeric(12,0);default:0"`

	ElectricFee decimal.Decimal `json:"electric_fee" gorm:"type:numeric(12,0);default:0"`
	WaterFee    decimal.Decimal `json:"water_fee" gorm:"type:numeric(12,0);default:0"`

	GarbageFee decimal.Decimal `json:"garbage_fee" gorm:"type:numeric(12,0);default:0"`
	WifiFee    decimal.Decimal `json:"wifi_fee" gorm:"type:numeric(12,0);default:0"`
	TVFee      decimal.Decimal `json:"tv_fee" gorm:"type:numeric(12,0);default:0"`
	LaundryFee decimal.Decimal `json:"laundry_fee" gorm:"type:numeric(12,0);default:0"`

	OtherFee     decimal.Decimal `json:"other_fee" gorm:"type:numeric(12,0);default:0"`
	OtherFeeNote string          `json:"other_fee_note" gorm:"size:255"`

	PreviousDebt   decimal.Decimal `json:"previous_debt" gorm:"type:numeric(12,0);default:0"`
	PreviousCredit decimal.Decimal `json:"previous_credit" gorm:"type:numeric(12,0);default:0"`

	Total           decimal.Decimal `json:"total" gorm:"type:numeric(12,0);not null"`
	PaidAmount      decimal.Decimal `json:"paid_amount" gorm:"type:numeric(12,0);default:0"`
	RemainingDebt   decimal.Decimal `json:"remaining_debt" gorm:"type:numeric(12,0);default:0"`
	RemainingCredit decimal.Decimal `json:"remaining_credit" gorm:"type:numeric(12,0);default:0"`

	Status      InvoiceStatus `json:"status" gorm:"size:20;default:'unpaid'"`
	PaymentDate *time.Time    `json:"payment_date" gorm:"type:date"`
	Notes       string        `json:"notes" gorm:"type:text"`

	Payments []Payment `json:"payments,omitempty" gorm:"constraint:OnDelete:CASCADE"`
}

// CalculateTotal sums the invoice from its fee components and the balance
// carried from the previous period. The result is floored at zero: a credit
// larger than the month's charges survives as remaining credit rather than a
// negative bill.
func (inv *Invoice) CalculateTotal() decimal.Decimal {
	roomAfterDeduction := inv.RoomFee.Sub(inv.AbsentDeduction)
	total := roomAfterDeduction.
		Add(inv.ElectricFee).
		Add(inv.WaterFee).
		Add(inv.GarbageFee).
		Add(inv.WifiFee).
		Add(inv.TVFee).
		Add(inv.LaundryFee).
		Add(inv.OtherFee).
		Add(inv.PreviousDebt).
		Sub(inv.PreviousCredit)
	if total.IsNegative() {
		return decimal.Zero
	}
	return total
}
