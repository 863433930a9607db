package billing

import (
	"path/filepath"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"github.com/LoAnTTM/RentManager/models"
)

func newTestDB(t *testing.T) *gorm.DB {
	t.Helper()
	dsn := filepath.Join(t.TempDir(), "billing_test.db")
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{
		TranslateError: true,
		Logger:         logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)

	require.NoError(t, db.AutoMigrate(
		&models.Location{},
		&models.RoomType{},
		&models.Room{},
		&models.Tenant{},
		&models.Meter{},
		&models.MeterReading{},
		&models.Invoice{},
		&models.Payment{},
	))
	return db
}

type fixture struct {
	location models.Location
	roomType models.RoomType
	room     models.Room
	electric models.Meter
	water    models.Meter
}

// seedRoom creates one occupied room with the pricing used by the billing
// scenarios: type price 2,000,000, daily deduction 60,000, electricity at
// 3,500/unit, water at 8,000/unit, 30,000 of fixed fees.
func seedRoom(t *testing.T, db *gorm.DB) fixture {
	t.Helper()

	location := models.Location{
		Name:          "Nguyen Viet Xuan",
		ElectricPrice: decimal.NewFromInt(3500),
		WaterPrice:    decimal.NewFromInt(8000),
		GarbageFee:    decimal.NewFromInt(30000),
		WifiFee:       decimal.Zero,
		TVFee:         decimal.Zero,
		LaundryFee:    decimal.Zero,
	}
	require.NoError(t, db.Create(&location).Error)

	roomType := models.RoomType{
		LocationID:     location.ID,
		Code:           "A",
		Price:          decimal.NewFromInt(2000000),
		DailyDeduction: decimal.NewFromInt(60000),
	}
	require.NoError(t, db.Create(&roomType).Error)

	room := models.Room{
		LocationID: location.ID,
		RoomTypeID: &roomType.ID,
		RoomCode:   "101",
		Status:     models.RoomOccupied,
	}
	require.NoError(t, db.Create(&room).Error)

	electric := models.Meter{RoomID: room.ID, MeterType: models.MeterElectric}
	water := models.Meter{RoomID: room.ID, MeterType: models.MeterWater}
	require.NoError(t, db.Create(&electric).Error)
	require.NoError(t, db.Create(&water).Error)

	return fixture{location: location, roomType: roomType, room: room, electric: electric, water: water}
}

func seedReading(t *testing.T, s *Service, meterID uint, month, year int, oldV, newV int64) {
	t.Helper()
	_, err := s.RecordReading(meterID, month, year, decimal.NewFromInt(oldV), decimal.NewFromInt(newV))
	require.NoError(t, err)
}

func TestRecordReading(t *testing.T) {
	db := newTestDB(t)
	s := NewService(db)
	fx := seedRoom(t, db)

	t.Run("computes consumption", func(t *testing.T) {
		reading, err := s.RecordReading(fx.electric.ID, 3, 2026, decimal.NewFromInt(1200), decimal.NewFromInt(1350))
		require.NoError(t, err)
		assert.True(t, reading.Consumption.Equal(decimal.NewFromInt(150)),
			"consumption = %s", reading.Consumption)
	})

	t.Run("rejects duplicate period", func(t *testing.T) {
		_, err := s.RecordReading(fx.electric.ID, 3, 2026, decimal.NewFromInt(1350), decimal.NewFromInt(1400))
		assert.ErrorIs(t, err, ErrDuplicatePeriod)
	})

	t.Run("rejects negative consumption", func(t *testing.T) {
		_, err := s.RecordReading(fx.water.ID, 3, 2026, decimal.NewFromInt(100), decimal.NewFromInt(90))
		assert.ErrorIs(t, err, ErrInvalidReading)
	})

	t.Run("rejects unknown meter", func(t *testing.T) {
		_, err := s.RecordReading(9999, 3, 2026, decimal.Zero, decimal.NewFromInt(10))
		assert.ErrorIs(t, err, ErrNotFound)
	})
}

func TestUpdateReading(t *testing.T) {
	db := newTestDB(t)
	s := NewService(db)
	fx := seedRoom(t, db)

	reading, err := s.RecordReading(fx.electric.ID, 4, 2026, decimal.NewFromInt(100), decimal.NewFromInt(150))
	require.NoError(t, err)

	updated, err := s.UpdateReading(reading.ID, decimal.NewFromInt(100), decimal.NewFromInt(180))
	require.NoError(t, err)
	assert.True(t, updated.Consumption.Equal(decimal.NewFromInt(80)))

	_, err = s.UpdateReading(reading.ID, decimal.NewFromInt(200), decimal.NewFromInt(180))
	assert.ErrorIs(t, err, ErrInvalidReading)
}

func TestRecordReadingBatch(t *testing.T) {
	db := newTestDB(t)
	s := NewService(db)
	fx := seedRoom(t, db)

	items := []BatchReading{
		{RoomID: fx.room.ID, MeterType: models.MeterElectric, OldReading: decimal.NewFromInt(100), NewReading: decimal.NewFromInt(250)},
		{RoomID: fx.room.ID, MeterType: models.MeterWater, OldReading: decimal.NewFromInt(40), NewReading: decimal.NewFromInt(48)},
		{RoomID: 9999, MeterType: models.MeterElectric, OldReading: decimal.Zero, NewReading: decimal.NewFromInt(10)},
	}

	result, err := s.RecordReadingBatch(7, 2026, items)
	require.NoError(t, err)
	assert.Len(t, result.CreatedIDs, 2)
	require.Len(t, result.Errors, 1)
	assert.Contains(t, result.Errors[0], "9999")

	t.Run("reimport overwrites in place", func(t *testing.T) {
		again, err := s.RecordReadingBatch(7, 2026, []BatchReading{
			{RoomID: fx.room.ID, MeterType: models.MeterElectric, OldReading: decimal.NewFromInt(100), NewReading: decimal.NewFromInt(300)},
		})
		require.NoError(t, err)
		require.Len(t, again.CreatedIDs, 1)
		assert.Equal(t, result.CreatedIDs[0], again.CreatedIDs[0], "existing row is reused")

		var count int64
		db.Model(&models.MeterReading{}).
			Where("meter_id = ? AND month = ? AND year = ?", fx.electric.ID, 7, 2026).
			Count(&count)
		assert.EqualValues(t, 1, count)

		var reading models.MeterReading
		require.NoError(t, db.First(&reading, again.CreatedIDs[0]).Error)
		assert.True(t, reading.Consumption.Equal(decimal.NewFromInt(200)))
	})

	t.Run("collects negative consumption per item", func(t *testing.T) {
		res, err := s.RecordReadingBatch(8, 2026, []BatchReading{
			{RoomID: fx.room.ID, MeterType: models.MeterWater, OldReading: decimal.NewFromInt(50), NewReading: decimal.NewFromInt(40)},
		})
		require.NoError(t, err)
		assert.Empty(t, res.CreatedIDs)
		assert.Len(t, res.Errors, 1)
	})
}

func TestResolvePrevious(t *testing.T) {
	db := newTestDB(t)
	s := NewService(db)
	fx := seedRoom(t, db)

	t.Run("no previous invoice yields zeros", func(t *testing.T) {
		debt, credit, err := s.ResolvePrevious(fx.room.ID, 6, 2026)
		require.NoError(t, err)
		assert.True(t, debt.IsZero())
		assert.True(t, credit.IsZero())
	})

	t.Run("january resolves to december of prior year", func(t *testing.T) {
		prev := models.Invoice{
			RoomID:        fx.room.ID,
			Month:         12,
			Year:          2025,
			RoomFee:       decimal.NewFromInt(2000000),
			Total:         decimal.NewFromInt(2000000),
			RemainingDebt: decimal.NewFromInt(500000),
			Status:        models.InvoicePartial,
		}
		require.NoError(t, db.Create(&prev).Error)

		debt, credit, err := s.ResolvePrevious(fx.room.ID, 1, 2026)
		require.NoError(t, err)
		assert.True(t, debt.Equal(decimal.NewFromInt(500000)), "debt = %s", debt)
		assert.True(t, credit.IsZero())
	})
}

func TestGeneratePeriodInvoices(t *testing.T) {
	db := newTestDB(t)
	s := NewService(db)
	fx := seedRoom(t, db)

	seedReading(t, s, fx.electric.ID, 5, 2026, 1000, 1150) // 150 units
	seedReading(t, s, fx.water.ID, 5, 2026, 40, 48)        // 8 units

	result, err := s.GeneratePeriodInvoices(5, 2026, nil)
	require.NoError(t, err)
	require.Equal(t, []string{"101"}, result.Created)
	assert.Empty(t, result.Skipped)

	var invoice models.Invoice
	require.NoError(t, db.Where("room_id = ? AND month = ? AND year = ?", fx.room.ID, 5, 2026).
		First(&invoice).Error)

	// 2,000,000 + 150*3,500 + 8*8,000 + 30,000 = 2,619,000
	assert.True(t, invoice.RoomFee.Equal(decimal.NewFromInt(2000000)))
	assert.True(t, invoice.ElectricFee.Equal(decimal.NewFromInt(525000)), "electric = %s", invoice.ElectricFee)
	assert.True(t, invoice.WaterFee.Equal(decimal.NewFromInt(64000)), "water = %s", invoice.WaterFee)
	assert.True(t, invoice.Total.Equal(decimal.NewFromInt(2619000)), "total = %s", invoice.Total)
	assert.Equal(t, models.InvoiceUnpaid, invoice.Status)
	assert.Zero(t, invoice.AbsentDays)

	t.Run("second run skips the room", func(t *testing.T) {
		again, err := s.GeneratePeriodInvoices(5, 2026, nil)
		require.NoError(t, err)
		assert.Empty(t, again.Created)
		assert.Equal(t, []string{"101"}, again.Skipped)

		var count int64
		db.Model(&models.Invoice{}).
			Where("room_id = ? AND month = ? AND year = ?", fx.room.ID, 5, 2026).
			Count(&count)
		assert.EqualValues(t, 1, count)
	})

	t.Run("vacant rooms are not billed", func(t *testing.T) {
		vacant := models.Room{LocationID: fx.location.ID, RoomCode: "102", Status: models.RoomVacant}
		require.NoError(t, db.Create(&vacant).Error)

		res, err := s.GeneratePeriodInvoices(5, 2026, nil)
		require.NoError(t, err)
		assert.NotContains(t, res.Created, "102")
		assert.NotContains(t, res.Skipped, "102")
	})

	t.Run("carries previous debt forward", func(t *testing.T) {
		// Leave May unpaid, then bill June: its remaining debt rolls in.
		res, err := s.GeneratePeriodInvoices(6, 2026, nil)
		require.NoError(t, err)
		require.Equal(t, []string{"101"}, res.Created)

		var june models.Invoice
		require.NoError(t, db.Where("room_id = ? AND month = ? AND year = ?", fx.room.ID, 6, 2026).
			First(&june).Error)
		assert.True(t, june.PreviousDebt.Equal(decimal.NewFromInt(2619000)), "previous_debt = %s", june.PreviousDebt)
		// No readings for June: room fee + fixed fees + carried debt.
		assert.True(t, june.Total.Equal(decimal.NewFromInt(2000000+30000+2619000)), "total = %s", june.Total)
	})

	t.Run("location filter excludes other locations", func(t *testing.T) {
		other := models.Location{Name: "Elsewhere"}
		require.NoError(t, db.Create(&other).Error)
		price := decimal.NewFromInt(1500000)
		otherRoom := models.Room{LocationID: other.ID, RoomCode: "B1", Price: &price, Status: models.RoomOccupied}
		require.NoError(t, db.Create(&otherRoom).Error)

		res, err := s.GeneratePeriodInvoices(7, 2026, &fx.location.ID)
		require.NoError(t, err)
		assert.Equal(t, []string{"101"}, res.Created)
	})
}

func TestGenerateAbortsWhenIndexRowWins(t *testing.T) {
	db := newTestDB(t)
	s := NewService(db)
	fx := seedRoom(t, db)

	_, err := s.GeneratePeriodInvoices(5, 2026, nil)
	require.NoError(t, err)
	var invoice models.Invoice
	require.NoError(t, db.Where("room_id = ?", fx.room.ID).First(&invoice).Error)

	// A soft-deleted invoice stays in the (room_id, month, year) unique index
	// but is invisible to the existence check, so the insert loses to the
	// index exactly like the loser of two concurrent generation runs.
	require.NoError(t, db.Delete(&invoice).Error)

	result, err := s.GeneratePeriodInvoices(5, 2026, nil)
	assert.ErrorIs(t, err, ErrConflict)
	assert.Nil(t, result)

	var live int64
	db.Model(&models.Invoice{}).Where("room_id = ?", fx.room.ID).Count(&live)
	assert.Zero(t, live, "the losing run rolls back without partial writes")
}

func TestUpdateAbsence(t *testing.T) {
	db := newTestDB(t)
	s := NewService(db)
	fx := seedRoom(t, db)

	seedReading(t, s, fx.electric.ID, 5, 2026, 1000, 1150)
	seedReading(t, s, fx.water.ID, 5, 2026, 40, 48)
	_, err := s.GeneratePeriodInvoices(5, 2026, nil)
	require.NoError(t, err)

	var invoice models.Invoice
	require.NoError(t, db.Where("room_id = ?", fx.room.ID).First(&invoice).Error)

	updated, err := s.UpdateAbsence(invoice.ID, 3)
	require.NoError(t, err)
	assert.Equal(t, 3, updated.AbsentDays)
	assert.True(t, updated.AbsentDeduction.Equal(decimal.NewFromInt(180000)), "deduction = %s", updated.AbsentDeduction)
	assert.True(t, updated.Total.Equal(decimal.NewFromInt(2439000)), "total = %s", updated.Total)

	t.Run("recompute is idempotent", func(t *testing.T) {
		again, err := s.UpdateAbsence(invoice.ID, 3)
		require.NoError(t, err)
		assert.True(t, again.Total.Equal(updated.Total))
		assert.Equal(t, updated.Status, again.Status)
	})

	t.Run("unknown invoice", func(t *testing.T) {
		_, err := s.UpdateAbsence(9999, 1)
		assert.ErrorIs(t, err, ErrNotFound)
	})
}

func TestPay(t *testing.T) {
	db := newTestDB(t)
	s := NewService(db)
	fx := seedRoom(t, db)

	_, err := s.GeneratePeriodInvoices(5, 2026, nil)
	require.NoError(t, err)
	var invoice models.Invoice
	require.NoError(t, db.Where("room_id = ?", fx.room.ID).First(&invoice).Error)
	// 2,000,000 room + 30,000 fixed, no readings.
	require.True(t, invoice.Total.Equal(decimal.NewFromInt(2030000)))

	t.Run("partial payment", func(t *testing.T) {
		amount := decimal.NewFromInt(1000000)
		paid, err := s.Pay(invoice.ID, &amount)
		require.NoError(t, err)
		assert.Equal(t, models.InvoicePartial, paid.Status)
		assert.True(t, paid.RemainingDebt.Equal(decimal.NewFromInt(1030000)), "debt = %s", paid.RemainingDebt)
		assert.True(t, paid.RemainingCredit.IsZero())
		assert.NotNil(t, paid.PaymentDate)
	})

	t.Run("paying the rest settles the invoice", func(t *testing.T) {
		amount := decimal.NewFromInt(1030000)
		paid, err := s.Pay(invoice.ID, &amount)
		require.NoError(t, err)
		assert.Equal(t, models.InvoicePaid, paid.Status)
		assert.True(t, paid.RemainingDebt.IsZero())
		assert.True(t, paid.RemainingCredit.IsZero())
	})

	t.Run("overpayment becomes credit", func(t *testing.T) {
		amount := decimal.NewFromInt(50000)
		paid, err := s.Pay(invoice.ID, &amount)
		require.NoError(t, err)
		assert.Equal(t, models.InvoicePaid, paid.Status)
		assert.True(t, paid.RemainingCredit.Equal(decimal.NewFromInt(50000)), "credit = %s", paid.RemainingCredit)
	})
}

func TestPayInFullDefault(t *testing.T) {
	db := newTestDB(t)
	s := NewService(db)
	fx := seedRoom(t, db)

	_, err := s.GeneratePeriodInvoices(5, 2026, nil)
	require.NoError(t, err)
	var invoice models.Invoice
	require.NoError(t, db.Where("room_id = ?", fx.room.ID).First(&invoice).Error)

	paid, err := s.Pay(invoice.ID, nil)
	require.NoError(t, err)
	assert.Equal(t, models.InvoicePaid, paid.Status)
	assert.True(t, paid.PaidAmount.Equal(invoice.Total))
	assert.True(t, paid.RemainingDebt.IsZero())
	assert.True(t, paid.RemainingCredit.IsZero())
}

func TestRecordPayment(t *testing.T) {
	db := newTestDB(t)
	s := NewService(db)
	fx := seedRoom(t, db)

	_, err := s.GeneratePeriodInvoices(5, 2026, nil)
	require.NoError(t, err)
	var invoice models.Invoice
	require.NoError(t, db.Where("room_id = ?", fx.room.ID).First(&invoice).Error)

	when := time.Date(2026, 5, 10, 0, 0, 0, 0, time.UTC)
	payment, err := s.RecordPayment(invoice.ID, decimal.NewFromInt(500000), when, "first installment")
	require.NoError(t, err)
	assert.NotEmpty(t, payment.Reference)

	var reloaded models.Invoice
	require.NoError(t, db.First(&reloaded, invoice.ID).Error)
	assert.Equal(t, models.InvoicePartial, reloaded.Status)
	assert.True(t, reloaded.PaidAmount.Equal(decimal.NewFromInt(500000)))
	// The ledger path keeps remaining balances in step with paid_amount.
	assert.True(t, reloaded.RemainingDebt.Equal(reloaded.Total.Sub(reloaded.PaidAmount)))
	assert.True(t, reloaded.RemainingCredit.IsZero())

	t.Run("unknown invoice", func(t *testing.T) {
		_, err := s.RecordPayment(9999, decimal.NewFromInt(1), when, "")
		assert.ErrorIs(t, err, ErrNotFound)
	})
}

func TestUpdateInvoice(t *testing.T) {
	db := newTestDB(t)
	s := NewService(db)
	fx := seedRoom(t, db)

	_, err := s.GeneratePeriodInvoices(5, 2026, nil)
	require.NoError(t, err)
	var invoice models.Invoice
	require.NoError(t, db.Where("room_id = ?", fx.room.ID).First(&invoice).Error)

	_, err = s.Pay(invoice.ID, nil)
	require.NoError(t, err)

	t.Run("raising a fee reopens a settled invoice", func(t *testing.T) {
		other := decimal.NewFromInt(100000)
		note := "broken window"
		updated, err := s.UpdateInvoice(invoice.ID, InvoiceUpdate{OtherFee: &other, OtherFeeNote: &note})
		require.NoError(t, err)
		assert.Equal(t, models.InvoicePartial, updated.Status)
		assert.True(t, updated.RemainingDebt.Equal(decimal.NewFromInt(100000)), "debt = %s", updated.RemainingDebt)
	})

	t.Run("only supplied fields change", func(t *testing.T) {
		wifi := decimal.NewFromInt(20000)
		updated, err := s.UpdateInvoice(invoice.ID, InvoiceUpdate{WifiFee: &wifi})
		require.NoError(t, err)
		assert.True(t, updated.OtherFee.Equal(decimal.NewFromInt(100000)), "other fee preserved")
		assert.True(t, updated.WifiFee.Equal(wifi))
	})

	t.Run("credit larger than charges floors total at zero", func(t *testing.T) {
		res, err := s.GeneratePeriodInvoices(6, 2026, nil)
		require.NoError(t, err)
		require.Equal(t, []string{"101"}, res.Created)

		var june models.Invoice
		require.NoError(t, db.Where("room_id = ? AND month = ? AND year = ?", fx.room.ID, 6, 2026).
			First(&june).Error)

		credit := decimal.NewFromInt(99000000)
		updated, err := s.UpdateInvoice(june.ID, InvoiceUpdate{PreviousCredit: &credit})
		require.NoError(t, err)
		assert.True(t, updated.Total.IsZero(), "total = %s", updated.Total)
	})
}
