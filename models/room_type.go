package models

import (
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// RoomType is a pricing tier within a location. Rooms reference a type for
// their default monthly price and the per-day deduction applied for absences.
type RoomType struct {
	gorm.Model
	LocationID uint     `json:"location_id" gorm:"not null;uniqueIndex:idx_room_types_location_code"`
	Location   Location `json:"-" gorm:"foreignKey:LocationID"`

	Code           string          `json:"code" gorm:"size:10;not null;uniqueIndex:idx_room_types_location_code"`
	Name           string          `json:"name" gorm:"size:50"`
	Price          decimal.Decimal `json:"price" gorm:"type:numeric(12,0);not null"`
	DailyDeduction decimal.Decimal `json:"daily_deduction" gorm:"type:numeric(10,0);default:0"`
	Description    string          `json:"description" gorm:"type:text"`
}
