package models

import (
	"time"

	"gorm.io/gorm"
)

// Tenant is a person renting a room. IsActive drives room occupancy: the
// handlers flip the room back to vacant when its last active tenant leaves.
type Tenant struct {
	gorm.Model
	RoomID uint `json:"room_id" gorm:"not null"`
	Room   Room `json:"room,omitempty" gorm:"foreignKey:RoomID"`

	FullName    string     `json:"full_name" gorm:"size:100;not null"`
	Phone       string     `json:"phone" gorm:"size:20"`
	IDCard      string     `json:"id_card" gorm:"size:20"`
	MoveInDate  time.Time  `json:"move_in_date" gorm:"type:date;not null"`
	MoveOutDate *time.Time `json:"move_out_date" gorm:"type:date"`
	IsActive    bool       `json:"is_active" gorm:"default:true"`
	Notes       string     `json:"notes" gorm:"type:text"`
}
