package models

import "gorm.io/gorm"

// User is an operator account for the back office.
type User struct {
	gorm.Model
	Email          string `json:"email" gorm:"size:100;not null;uniqueIndex"`
	HashedPassword string `json:"-" gorm:"size:100;not null"`
	FullName       string `json:"full_name" gorm:"size:100"`
	IsActive       bool   `json:"is_active" gorm:"default:true"`
}
