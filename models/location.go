package models

import (
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// Location is one physical rental property. It owns its room types, rooms and
// expenses; per-unit utility prices and the fixed monthly fees billed to every
// occupied room are configured here.
type Location struct {
	gorm.Model
	Name       string `json:"name" gorm:"size:100;not null"`
	Address    string `json:"address" gorm:"size:255"`
	OwnerName  string `json:"owner_name" gorm:"size:100"`
	OwnerPhone string `json:"owner_phone" gorm:"size:50"`

	ElectricPrice decimal.Decimal `json:"electric_price" gorm:"type:numeric(10,2);default:3500"`
	WaterPrice    decimal.Decimal `json:"water_price" gorm:"type:numeric(10,0);default:8000"`

	GarbageFee decimal.Decimal `json:"garbage_fee" gorm:"type:numeric(10,0);default:30000"`
	WifiFee    decimal.Decimal `json:"wifi_fee" gorm:"type:numeric(10,0);default:0"`
	TVFee      decimal.Decimal `json:"tv_fee" gorm:"type:numeric(10,0);default:0"`
	LaundryFee decimal.Decimal `json:"laundry_fee" gorm:"type:numeric(10,0);default:0"`

	PaymentDueDay int    `json:"payment_due_day" gorm:"default:5"`
	Notes         string `json:"notes" gorm:"type:text"`

	RoomTypes []RoomType `json:"room_types,omitempty" gorm:"constraint:OnDelete:CASCADE"`
	Rooms     []Room     `json:"rooms,omitempty" gorm:"constraint:OnDelete:CASCADE"`
	Expenses  []Expense  `json:"expenses,omitempty" gorm:"constraint:OnDelete:CASCADE"`
}
