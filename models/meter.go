package models

import (
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

type MeterType string

const (
	MeterElectric MeterType = "electric"
	MeterWater    MeterType = "water"
)

// Meter is a utility meter attached to a room, at most one per type.
type Meter struct {
	gorm.Model
	RoomID uint `json:"room_id" gorm:"not null;uniqueIndex:idx_meters_room_type"`
	Room   Room `json:"-" gorm:"foreignKey:RoomID"`

	MeterType MeterType `json:"meter_type" gorm:"size:20;not null;uniqueIndex:idx_meters_room_type"`
	MeterCode string    `json:"meter_code" gorm:"size:50"`
	Notes     string    `json:"notes" gorm:"type:text"`

	Readings []MeterReading `json:"readings,omitempty" gorm:"constraint:OnDelete:CASCADE"`
}

// MeterReading is one month's reading for a meter, unique per (meter, month,
// year). Consumption is always new minus old; negative values are rejected
// before a row is ever written.
type MeterReading struct {
	gorm.Model
	MeterID uint  `json:"meter_id" gorm:"not null;uniqueIndex:idx_readings_meter_period"`
	Meter   Meter `json:"meter,omitempty" gorm:"foreignKey:MeterID"`

	Month int `json:"month" gorm:"not null;uniqueIndex:idx_readings_meter_period"`
	Year  int `json:"year" gorm:"not null;uniqueIndex:idx_readings_meter_period"`

	OldReading  decimal.Decimal `json:"old_reading" gorm:"type:numeric(10,2);not null"`
	NewReading  decimal.Decimal `json:"new_reading" gorm:"type:numeric(10,2);not null"`
	Consumption decimal.Decimal `json:"consumption" gorm:"type:numeric(10,2)"`
}
