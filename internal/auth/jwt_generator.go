package auth

import (
	"context"
	"fmt"

	"github.com/go-oauth2/oauth2/v4"
	"github.com/golang-jwt/jwt/v5"
)

// Roles carried in the "role" claim
const (
	RoleStaff  = "staff"
	RoleClient = "client"
)

// StaffJWTAccessGenerate generates JWT access tokens for staff clients
type StaffJWTAccessGenerate struct {
	SignedKey    []byte
	SignedMethod jwt.SigningMethod
}

// NewStaffJWTAccessGenerate creates a new staff JWT access token generator
func NewStaffJWTAccessGenerate(key []byte, method jwt.SigningMethod) *StaffJWTAccessGenerate {
	return &StaffJWTAccessGenerate{
		SignedKey:    key,
		SignedMethod: method,
	}
}

// Token generates a JWT access token with the staff role.
// This method is called by the OAuth2 library to generate access tokens
func (g *StaffJWTAccessGenerate) Token(ctx context.Context, data *oauth2.GenerateBasic, isGenRefresh bool) (string, string, error) {
	// For client_credentials flow, GenerateBasic.UserID is empty, so the subject is the client itself
	subject := data.UserID
	if subject == "" {
		subject = data.Client.GetUserID()
	}
	if subject == "" {
		return "", "", fmt.Errorf("cannot generate token: no subject available")
	}

	createdAt := data.TokenInfo.GetAccessCreateAt()
	claims := jwt.MapClaims{
		"aud":  data.Client.GetID(),
		"uid":  subject,
		"role": RoleStaff,
		"iat":  createdAt.Unix(),
		"exp":  createdAt.Add(data.TokenInfo.GetAccessExpiresIn()).Unix(),
	}
	if data.TokenInfo.GetScope() != "" {
		claims["scope"] = data.TokenInfo.GetScope()
	}

	token := jwt.NewWithClaims(g.SignedMethod, claims)
	access, err := token.SignedString(g.SignedKey)
	if err != nil {
		return "", "", err
	}

	// Generate refresh token if requested
	refresh := ""
	if isGenRefresh {
		refreshClaims := jwt.MapClaims{
			"id":  data.TokenInfo.GetAccess(),
			"exp": data.TokenInfo.GetRefreshCreateAt().Add(data.TokenInfo.GetRefreshExpiresIn()).Unix(),
		}
		t := jwt.NewWithClaims(g.SignedMethod, refreshClaims)
		refresh, err = t.SignedString(g.SignedKey)
		if err != nil {
			return "", "", err
		}
	}

	return access, refresh, nil
}
