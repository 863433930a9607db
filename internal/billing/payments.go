package billing

import (
	"errors"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"

	"github.com/LoAnTTM/RentManager/models"
)

// Pay collects money against an invoice. A nil amount means "pay in full":
// the invoice's current total. Payments are additive; overpayment becomes
// remaining credit for the next period.
func (s *Service) Pay(invoiceID uint, amount *decimal.Decimal) (*models.Invoice, error) {
	var invoice models.Invoice
	err := s.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Preload("Room").First(&invoice, invoiceID).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return ErrNotFound
			}
			return err
		}

		payAmount := invoice.Total
		if amount != nil {
			payAmount = *amount
		}

		now := time.Now()
		invoice.PaidAmount = invoice.PaidAmount.Add(payAmount)
		invoice.PaymentDate = &now
		recompute(&invoice)
		return tx.Save(&invoice).Error
	})
	if err != nil {
		return nil, err
	}
	return &invoice, nil
}

// RecordPayment appends a payment ledger row and applies its amount to the
// parent invoice, recomputing the invoice like any other mutation so the
// remaining balances stay consistent with the inline pay path.
func (s *Service) RecordPayment(invoiceID uint, amount decimal.Decimal, paymentDate time.Time, notes string) (*models.Payment, error) {
	var payment models.Payment
	err := s.db.Transaction(func(tx *gorm.DB) error {
		var invoice models.Invoice
		if err := tx.First(&invoice, invoiceID).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return ErrNotFound
			}
			return err
		}

		payment = models.Payment{
			InvoiceID:   invoiceID,
			Reference:   uuid.NewString(),
			Amount:      amount,
			PaymentDate: paymentDate,
			Notes:       notes,
		}
		if err := tx.Create(&payment).Error; err != nil {
			return err
		}

		invoice.PaidAmount = invoice.PaidAmount.Add(amount)
		invoice.PaymentDate = &paymentDate
		recompute(&invoice)
		return tx.Save(&invoice).Error
	})
	if err != nil {
		return nil, err
	}
	return &payment, nil
}
