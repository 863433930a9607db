package billing

import (
	"errors"

	"github.com/shopspring/decimal"
	"gorm.io/gorm"

	"github.com/LoAnTTM/RentManager/models"
)

// GenerateResult lists, by room code, which invoices a generation run created
// and which rooms already had one for the period.
type GenerateResult struct {
	Created []string `json:"created"`
	Skipped []string `json:"skipped"`
}

// GeneratePeriodInvoices bills every occupied room for (month, year),
// optionally restricted to one location. Generation is idempotent per room
// per period: rooms that already have an invoice are reported as skipped.
// Should two generation runs race past the existence check, the composite
// unique index on (room_id, month, year) is the final arbiter: the losing
// run rolls back with ErrConflict, and a retry finds the room skipped. The
// failed insert cannot be recovered in place because Postgres aborts the
// enclosing transaction.
func (s *Service) GeneratePeriodInvoices(month, year int, locationID *uint) (*GenerateResult, error) {
	result := &GenerateResult{Created: []string{}, Skipped: []string{}}

	err := s.db.Transaction(func(tx *gorm.DB) error {
		query := tx.Preload("Location").Preload("RoomType").
			Where("status = ?", models.RoomOccupied)
		if locationID != nil {
			query = query.Where("location_id = ?", *locationID)
		}

		var rooms []models.Room
		if err := query.Find(&rooms).Error; err != nil {
			return err
		}

		for _, room := range rooms {
			var count int64
			if err := tx.Model(&models.Invoice{}).
				Where("room_id = ? AND month = ? AND year = ?", room.ID, month, year).
				Count(&count).Error; err != nil {
				return err
			}
			if count > 0 {
				result.Skipped = append(result.Skipped, room.RoomCode)
				continue
			}

			electricFee, err := meteredFee(tx, room.ID, models.MeterElectric, month, year, room.Location.ElectricPrice)
			if err != nil {
				return err
			}
			waterFee, err := meteredFee(tx, room.ID, models.MeterWater, month, year, room.Location.WaterPrice)
			if err != nil {
				return err
			}

			previousDebt, previousCredit, err := resolvePrevious(tx, room.ID, month, year)
			if err != nil {
				return err
			}

			invoice := models.Invoice{
				RoomID:         room.ID,
				Month:          month,
				Year:           year,
				RoomFee:        room.EffectivePrice(),
				ElectricFee:    electricFee,
				WaterFee:       waterFee,
				GarbageFee:     room.Location.GarbageFee,
				WifiFee:        room.Location.WifiFee,
				TVFee:          room.Location.TVFee,
				LaundryFee:     room.Location.LaundryFee,
				OtherFee:       decimal.Zero,
				PreviousDebt:   previousDebt,
				PreviousCredit: previousCredit,
			}
			recompute(&invoice)

			if err := tx.Create(&invoice).Error; err != nil {
				if errors.Is(err, gorm.ErrDuplicatedKey) {
					return ErrConflict
				}
				return err
			}
			result.Created = append(result.Created, room.RoomCode)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return result, nil
}

// meteredFee prices the room's consumption for the period: reading
// consumption times the location's per-unit price, zero when the room has no
// such meter or no reading for the period.
func meteredFee(tx *gorm.DB, roomID uint, meterType models.MeterType, month, year int, unitPrice decimal.Decimal) (decimal.Decimal, error) {
	var meter models.Meter
	err := tx.Where("room_id = ? AND meter_type = ?", roomID, meterType).First(&meter).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return decimal.Zero, nil
		}
		return decimal.Zero, err
	}

	var reading models.MeterReading
	err = tx.Where("meter_id = ? AND month = ? AND year = ?", meter.ID, month, year).
		First(&reading).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return decimal.Zero, nil
		}
		return decimal.Zero, err
	}

	return reading.Consumption.Mul(unitPrice), nil
}
