package models

import (
	"time"
)

type User struct {
	ID              uint   `gorm:"primaryKey" json:"id"`
	Name            string `json:"name"`
	Email           string `gorm:"uniqueIndex;not null" json:"email"`
	Password        string `json:"-"`
	Phone           string `json:"phone"`
	Role            string `gorm:"default:'user'" json:"role"`
	IsEmailVerified bool   `json:"isEmailVerified"`
	CreatedAt       time.Time
	UpdatedAt       time.Time
}
