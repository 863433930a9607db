package billing

import (
	"errors"
	"fmt"

	"github.com/shopspring/decimal"
	"gorm.io/gorm"

	"github.com/LoAnTTM/RentManager/models"
)

// RecordReading stores one month's reading for a meter. It rejects a second
// reading for the same (meter, month, year) and readings that would yield
// negative consumption.
func (s *Service) RecordReading(meterID uint, month, year int, oldReading, newReading decimal.Decimal) (*models.MeterReading, error) {
	consumption := newReading.Sub(oldReading)
	if consumption.IsNegative() {
		return nil, ErrInvalidReading
	}

	var reading models.MeterReading
	err := s.db.Transaction(func(tx *gorm.DB) error {
		var meter models.Meter
		if err := tx.First(&meter, meterID).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return ErrNotFound
			}
			return err
		}

		var count int64
		if err := tx.Model(&models.MeterReading{}).
			Where("meter_id = ? AND month = ? AND year = ?", meterID, month, year).
			Count(&count).Error; err != nil {
			return err
		}
		if count > 0 {
			return ErrDuplicatePeriod
		}

		reading = models.MeterReading{
			MeterID:     meterID,
			Month:       month,
			Year:        year,
			OldReading:  oldReading,
			NewReading:  newReading,
			Consumption: consumption,
		}
		if err := tx.Create(&reading).Error; err != nil {
			if errors.Is(err, gorm.ErrDuplicatedKey) {
				return ErrConflict
			}
			return err
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return &reading, nil
}

// UpdateReading overwrites the old/new values of an existing reading and
// recomputes its consumption.
func (s *Service) UpdateReading(readingID uint, oldReading, newReading decimal.Decimal) (*models.MeterReading, error) {
	consumption := newReading.Sub(oldReading)
	if consumption.IsNegative() {
		return nil, ErrInvalidReading
	}

	var reading models.MeterReading
	if err := s.db.First(&reading, readingID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}

	reading.OldReading = oldReading
	reading.NewReading = newReading
	reading.Consumption = consumption
	if err := s.db.Save(&reading).Error; err != nil {
		return nil, err
	}
	return &reading, nil
}

// BatchReading is one row of a bulk reading import, addressed by room and
// meter type rather than meter id.
type BatchReading struct {
	RoomID     uint
	MeterType  models.MeterType
	OldReading decimal.Decimal
	NewReading decimal.Decimal
}

// BatchResult reports a bulk import: ids written (created or overwritten) and
// one message per item that could not be applied.
type BatchResult struct {
	CreatedIDs []uint   `json:"created_ids"`
	Errors     []string `json:"errors"`
}

// RecordReadingBatch imports a month's readings in one transaction. Unlike
// RecordReading, an existing reading for the period is overwritten in place,
// so re-importing the same sheet is idempotent. Items without a matching
// meter or with negative consumption are collected as errors without
// aborting the rest of the batch.
func (s *Service) RecordReadingBatch(month, year int, items []BatchReading) (*BatchResult, error) {
	result := &BatchResult{CreatedIDs: []uint{}, Errors: []string{}}

	err := s.db.Transaction(func(tx *gorm.DB) error {
		for _, item := range items {
			var meter models.Meter
			err := tx.Where("room_id = ? AND meter_type = ?", item.RoomID, item.MeterType).
				First(&meter).Error
			if err != nil {
				if errors.Is(err, gorm.ErrRecordNotFound) {
					result.Errors = append(result.Errors,
						fmt.Sprintf("no %s meter for room %d", item.MeterType, item.RoomID))
					continue
				}
				return err
			}

			consumption := item.NewReading.Sub(item.OldReading)
			if consumption.IsNegative() {
				result.Errors = append(result.Errors,
					fmt.Sprintf("negative consumption for room %d (%s meter)", item.RoomID, item.MeterType))
				continue
			}

			var existing models.MeterReading
			err = tx.Where("meter_id = ? AND month = ? AND year = ?", meter.ID, month, year).
				First(&existing).Error
			switch {
			case err == nil:
				existing.OldReading = item.OldReading
				existing.NewReading = item.NewReading
				existing.Consumption = consumption
				if err := tx.Save(&existing).Error; err != nil {
					return err
				}
				result.CreatedIDs = append(result.CreatedIDs, existing.ID)
			case errors.Is(err, gorm.ErrRecordNotFound):
				reading := models.MeterReading{
					MeterID:     meter.ID,
					Month:       month,
					Year:        year,
					OldReading:  item.OldReading,
					NewReading:  item.NewReading,
					Consumption: consumption,
				}
				if err := tx.Create(&reading).Error; err != nil {
					return err
				}
				result.CreatedIDs = append(result.CreatedIDs, reading.ID)
			default:
				return err
			}
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return result, nil
}
