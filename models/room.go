package models

import (
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

type RoomStatus string

const (
	RoomVacant   RoomStatus = "vacant"
	RoomOccupied RoomStatus = "occupied"
)

// Room is a rentable unit. Its own Price, when set, overrides the room type
// price. Status is derived from tenancy: a room flips to occupied when a
// tenant moves in and back to vacant only when no active tenant remains.
type Room struct {
	gorm.Model
	LocationID uint     `json:"location_id" gorm:"not null;uniqueIndex:idx_rooms_location_code"`
	Location   Location `json:"location,omitempty" gorm:"foreignKey:LocationID"`

	RoomTypeID *uint     `json:"room_type_id"`
	RoomType   *RoomType `json:"room_type,omitempty" gorm:"foreignKey:RoomTypeID"`

	RoomCode string           `json:"room_code" gorm:"size:20;not null;uniqueIndex:idx_rooms_location_code"`
	Price    *decimal.Decimal `json:"price" gorm:"type:numeric(10,0)"`
	Status   RoomStatus       `json:"status" gorm:"size:20;default:'vacant'"`
	Notes    string           `json:"notes" gorm:"type:text"`

	Tenants  []Tenant  `json:"tenants,omitempty" gorm:"constraint:OnDelete:CASCADE"`
	Meters   []Meter   `json:"meters,omitempty" gorm:"constraint:OnDelete:CASCADE"`
	Invoices []Invoice `json:"invoices,omitempty" gorm:"constraint:OnDelete:CASCADE"`
}

// EffectivePrice is the room's own price when set, else the room type price,
// else zero. RoomType must be preloaded for the fallback to apply.
func (r *Room) EffectivePrice() decimal.Decimal {
	if r.Price != nil && !r.Price.IsZero() {
		return *r.Price
	}
	if r.RoomType != nil {
		return r.RoomType.Price
	}
	return decimal.Zero
}

// DailyDeduction is the per-day absence deduction from the room type, or zero
// when the room has no type.
func (r *Room) DailyDeduction() decimal.Decimal {
	if r.RoomType != nil {
		return r.RoomType.DailyDeduction
	}
	return decimal.Zero
}
