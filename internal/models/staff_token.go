package models

import (
	"time"
)

type StaffToken struct {
	ID          uint   `gorm:"primaryKey"`
	ClientID    string `gorm:"not null;index"`
	AccessToken string `gorm:"uniqueIndex;not null"`
	Scopes      string
	ExpiresAt   time.Time `gorm:"not null"`
	CreatedAt   time.Time
}

func (StaffToken) TableName() string {
	return "staff_tokens"
}
