package models

import (
	"time"
)

// PersonalInfo is the profile a client registers with
type PersonalInfo struct {
	LastName  string `json:"last_name" validate:"notblank,personname"`
	FirstName string `json:"first_name" validate:"notblank,personname"`
	Address   string `json:"address" validate:"notblank"`
	Age       int    `json:"age" validate:"gte=0"`
}

// ClientAccount is a registered client. The email is the account identity.
type ClientAccount struct {
	Email        string       `json:"email"`
	PasswordHash string       `json:"-"`
	Info         PersonalInfo `json:"info"`
	CreatedAt    time.Time    `json:"created_at"`
}

// Session is handed out on login and identifies the caller on later calls
type Session struct {
	ID        string    `json:"id"`
	Email     string    `json:"email"`
	ExpiresAt time.Time `json:"expires_at"`
}
