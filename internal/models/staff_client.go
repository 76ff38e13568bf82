package models

import (
	"time"

	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

// StaffClient is an OAuth2 client used by back-office tools.
// It implements oauth2.ClientInfo and oauth2.ClientPasswordVerifier.
type StaffClient struct {
	ID        string         `gorm:"primaryKey" json:"client_id"`
	Secret    string         `gorm:"not null" json:"-"` // bcrypt hash
	Name      string         `json:"name"`
	Domain    string         `json:"domain,omitempty"`
	Scopes    string         `json:"scopes"` // Space-separated list of allowed scopes
	CreatedAt time.Time      `json:"created_at"`
	UpdatedAt time.Time      `json:"updated_at"`
	DeletedAt gorm.DeletedAt `gorm:"index" json:"-"`
}

func (StaffClient) TableName() string {
	return "staff_clients"
}

func (c *StaffClient) GetID() string     { return c.ID }
func (c *StaffClient) GetSecret() string { return c.Secret }
func (c *StaffClient) GetDomain() string { return c.Domain }
func (c *StaffClient) IsPublic() bool    { return false }

// GetUserID returns the client ID: staff tokens are issued to the tool itself
func (c *StaffClient) GetUserID() string { return c.ID }

// VerifyPassword compares a plain secret against the stored bcrypt hash
func (c *StaffClient) VerifyPassword(secret string) bool {
	return bcrypt.CompareHashAndPassword([]byte(c.Secret), []byte(secret)) == nil
}
