package billing

import (
	"errors"

	"github.com/shopspring/decimal"
	"gorm.io/gorm"

	"github.com/LoAnTTM/RentManager/models"
)

// ResolvePrevious looks up the room's invoice for the period before
// (month, year) and returns its remaining debt and credit. A missing previous
// invoice is not an error: both balances are zero. The lookup never mutates
// the prior invoice.
func (s *Service) ResolvePrevious(roomID uint, month, year int) (debt, credit decimal.Decimal, err error) {
	return resolvePrevious(s.db, roomID, month, year)
}

func resolvePrevious(db *gorm.DB, roomID uint, month, year int) (decimal.Decimal, decimal.Decimal, error) {
	prevMonth, prevYear := previousPeriod(month, year)

	var prev models.Invoice
	err := db.Where("room_id = ? AND month = ? AND year = ?", roomID, prevMonth, prevYear).
		First(&prev).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return decimal.Zero, decimal.Zero, nil
		}
		return decimal.Zero, decimal.Zero, err
	}
	return prev.RemainingDebt, prev.RemainingCredit, nil
}
