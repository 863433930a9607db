// Package billing implements the monthly billing cycle: meter reading
// bookkeeping, period invoice generation with balance carry-forward, invoice
// recomputation and the payment ledger. Handlers own no billing arithmetic;
// everything money-related funnels through the Service here.
package billing

import (
	"errors"

	"gorm.io/gorm"
)

var (
	// ErrNotFound means a referenced meter, room or invoice does not exist.
	ErrNotFound = errors.New("record not found")
	// ErrDuplicatePeriod means a reading or invoice already exists for the period.
	ErrDuplicatePeriod = errors.New("record already exists for this period")
	// ErrInvalidReading means the new meter reading is below the old one.
	ErrInvalidReading = errors.New("new reading must not be less than old reading")
	// ErrConflict means a concurrent writer won the unique-constraint race;
	// the caller may retry.
	ErrConflict = errors.New("conflicting concurrent write")
)

// Service runs all billing operations against one database handle. Each
// exported method is a single unit of work: it opens its own transaction and
// either commits or rolls back before returning.
type Service struct {
	db *gorm.DB
}

func NewService(db *gorm.DB) *Service {
	return &Service{db: db}
}

// previousPeriod returns the calendar period preceding (month, year);
// January's predecessor is December of the prior year.
func previousPeriod(month, year int) (int, int) {
	if month == 1 {
		return 12, year - 1
	}
	return month - 1, year
}
