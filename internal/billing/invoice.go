package billing

import (
	"errors"
	"time"

	"github.com/shopspring/decimal"
	"gorm.io/gorm"

	"github.com/LoAnTTM/RentManager/models"
)

// recompute refreshes the derived invoice fields from its fee components and
// paid amount. Every path that mutates an invoice runs through here, so
// total, remaining balances and status can never drift apart.
func recompute(inv *models.Invoice) {
	inv.Total = inv.CalculateTotal()

	switch {
	case inv.PaidAmount.GreaterThanOrEqual(inv.Total):
		inv.Status = models.InvoicePaid
		inv.RemainingCredit = inv.PaidAmount.Sub(inv.Total)
		inv.RemainingDebt = decimal.Zero
	case inv.PaidAmount.GreaterThan(decimal.Zero):
		inv.Status = models.InvoicePartial
		inv.RemainingDebt = inv.Total.Sub(inv.PaidAmount)
		inv.RemainingCredit = decimal.Zero
	default:
		inv.Status = models.InvoiceUnpaid
		inv.RemainingDebt = inv.Total
		inv.RemainingCredit = decimal.Zero
	}
}

// InvoiceUpdate enumerates the invoice fields an edit may touch. Only non-nil
// fields are applied; derived fields (total, remaining balances, status) are
// always recomputed and cannot be set directly.
type InvoiceUpdate struct {
	RoomFee        *decimal.Decimal
	ElectricFee    *decimal.Decimal
	WaterFee       *decimal.Decimal
	GarbageFee     *decimal.Decimal
	WifiFee        *decimal.Decimal
	TVFee          *decimal.Decimal
	LaundryFee     *decimal.Decimal
	OtherFee       *decimal.Decimal
	OtherFeeNote   *string
	PreviousDebt   *decimal.Decimal
	PreviousCredit *decimal.Decimal
	PaymentDate    *time.Time
	Notes          *string
}

func (u *InvoiceUpdate) apply(inv *models.Invoice) {
	if u.RoomFee != nil {
		inv.RoomFee = *u.RoomFee
	}
	if u.ElectricFee != nil {
		inv.ElectricFee = *u.ElectricFee
	}
	if u.WaterFee != nil {
		inv.WaterFee = *u.WaterFee
	}
	if u.GarbageFee != nil {
		inv.GarbageFee = *u.GarbageFee
	}
	if u.WifiFee != nil {
		inv.WifiFee = *u.WifiFee
	}
	if u.LaundryFee != nil {
		inv.LaundryFee = *u.LaundryFee
	}
	if u.TVFee != nil {
		inv.TVFee = *u.TVFee
	}
	if u.OtherFee != nil {
		inv.OtherFee = *u.OtherFee
	}
	if u.OtherFeeNote != nil {
		inv.OtherFeeNote = *u.OtherFeeNote
	}
	if u.PreviousDebt != nil {
		inv.PreviousDebt = *u.PreviousDebt
	}
	if u.PreviousCredit != nil {
		inv.PreviousCredit = *u.PreviousCredit
	}
	if u.PaymentDate != nil {
		inv.PaymentDate = u.PaymentDate
	}
	if u.Notes != nil {
		inv.Notes = *u.Notes
	}
}

// UpdateInvoice applies a typed partial update and recomputes the invoice.
func (s *Service) UpdateInvoice(invoiceID uint, upd InvoiceUpdate) (*models.Invoice, error) {
	var invoice models.Invoice
	err := s.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Preload("Room").First(&invoice, invoiceID).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return ErrNotFound
			}
			return err
		}

		upd.apply(&invoice)
		recompute(&invoice)
		return tx.Save(&invoice).Error
	})
	if err != nil {
		return nil, err
	}
	return &invoice, nil
}

// UpdateAbsence sets the invoice's absent days, prices the deduction from the
// room type's daily rate and recomputes the invoice.
func (s *Service) UpdateAbsence(invoiceID uint, absentDays int) (*models.Invoice, error) {
	var invoice models.Invoice
	err := s.db.Transaction(func(tx *gorm.DB) error {
		err := tx.Preload("Room").Preload("Room.RoomType").First(&invoice, invoiceID).Error
		if err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return ErrNotFound
			}
			return err
		}

		invoice.AbsentDays = absentDays
		invoice.AbsentDeduction = invoice.Room.DailyDeduction().Mul(decimal.NewFromInt(int64(absentDays)))
		recompute(&invoice)
		return tx.Save(&invoice).Error
	})
	if err != nil {
		return nil, err
	}
	return &invoice, nil
}
