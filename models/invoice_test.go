package models

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
)

func d(v int64) decimal.Decimal { return decimal.NewFromInt(v) }

func TestCalculateTotal(t *testing.T) {
	inv := Invoice{
		RoomFee:     d(2000000),
		ElectricFee: d(525000),
		WaterFee:    d(64000),
		GarbageFee:  d(30000),
	}
	assert.True(t, inv.CalculateTotal().Equal(d(2619000)))

	inv.AbsentDeduction = d(180000)
	assert.True(t, inv.CalculateTotal().Equal(d(2439000)))

	inv.PreviousDebt = d(100000)
	inv.PreviousCredit = d(40000)
	assert.True(t, inv.CalculateTotal().Equal(d(2499000)))
}

func TestCalculateTotalFloorsAtZero(t *testing.T) {
	inv := Invoice{
		RoomFee:        d(500000),
		PreviousCredit: d(900000),
	}
	assert.True(t, inv.CalculateTotal().IsZero())
}

func TestRoomEffectivePrice(t *testing.T) {
	roomType := &RoomType{Price: d(2000000), DailyDeduction: d(60000)}

	t.Run("own price wins", func(t *testing.T) {
		own := d(2500000)
		room := Room{Price: &own, RoomType: roomType}
		assert.True(t, room.EffectivePrice().Equal(own))
	})

	t.Run("falls back to room type", func(t *testing.T) {
		room := Room{RoomType: roomType}
		assert.True(t, room.EffectivePrice().Equal(d(2000000)))
		assert.True(t, room.DailyDeduction().Equal(d(60000)))
	})

	t.Run("zero without either", func(t *testing.T) {
		room := Room{}
		assert.True(t, room.EffectivePrice().IsZero())
		assert.True(t, room.DailyDeduction().IsZero())
	})
}
