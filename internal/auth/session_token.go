package auth

import (
	"time"

	"github.com/golang-jwt/jwt/v5"

	"github.com/franciscosanchezn/pizzeria-backoffice/internal/models"
)

// SessionSigner wraps a pizzeria session into a bearer token for clients
type SessionSigner struct {
	secret []byte
	now    func() time.Time
}

func NewSessionSigner(jwtSecret string) *SessionSigner {
	return &SessionSigner{secret: []byte(jwtSecret), now: time.Now}
}

// Sign returns an HS256 token carrying the session id, the client email and the client role.
// A session without expiry yields a token valid for 24 hours.
func (s *SessionSigner) Sign(session models.Session) (string, time.Time, error) {
	now := s.now()
	expiresAt := session.ExpiresAt
	if expiresAt.IsZero() {
		expiresAt = now.Add(24 * time.Hour)
	}
	claims := jwt.MapClaims{
		"sid":  session.ID,
		"uid":  session.Email,
		"role": RoleClient,
		"iat":  now.Unix(),
		"exp":  expiresAt.Unix(),
	}
	signed, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(s.secret)
	if err != nil {
		return "", time.Time{}, err
	}
	return signed, expiresAt, nil
}
