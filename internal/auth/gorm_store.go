package auth

import (
	"context"
	"errors"
	"time"

	internalmodels "github.com/franciscosanchezn/pizzeria-backoffice/internal/models"
	"github.com/go-oauth2/oauth2/v4"
	"github.com/go-oauth2/oauth2/v4/models"
	"gorm.io/gorm"
)

// ErrUnsupportedGrant is returned for token store operations the client credentials grant never needs
var ErrUnsupportedGrant = errors.New("only the client credentials grant is supported")

type GormClientStore struct {
	db *gorm.DB
}

func NewGormClientStore(db *gorm.DB) *GormClientStore {
	return &GormClientStore{db: db}
}

func (s *GormClientStore) GetByID(ctx context.Context, id string) (oauth2.ClientInfo, error) {
	var client internalmodels.StaffClient
	if err := s.db.WithContext(ctx).Where("id = ?", id).First(&client).Error; err != nil {
		return nil, err
	}

	// StaffClient implements ClientPasswordVerifier, so secrets are checked against the bcrypt hash
	return &client, nil
}

// GormTokenStore keeps issued staff access tokens so they can be revoked
type GormTokenStore struct {
	db *gorm.DB
}

func NewGormTokenStore(db *gorm.DB) *GormTokenStore {
	return &GormTokenStore{db: db}
}

func (s *GormTokenStore) Create(ctx context.Context, info oauth2.TokenInfo) error {
	if info.GetCode() != "" {
		return ErrUnsupportedGrant
	}
	token := &internalmodels.StaffToken{
		ClientID:    info.GetClientID(),
		AccessToken: info.GetAccess(),
		Scopes:      info.GetScope(),
		ExpiresAt:   info.GetAccessCreateAt().Add(info.GetAccessExpiresIn()),
	}
	return s.db.WithContext(ctx).Create(token).Error
}

func (s *GormTokenStore) RemoveByAccess(ctx context.Context, access string) error {
	return s.db.WithContext(ctx).Where("access_token = ?", access).Delete(&internalmodels.StaffToken{}).Error
}

func (s *GormTokenStore) GetByAccess(ctx context.Context, access string) (oauth2.TokenInfo, error) {
	var token internalmodels.StaffToken
	if err := s.db.WithContext(ctx).Where("access_token = ?", access).First(&token).Error; err != nil {
		return nil, err
	}
	if time.Now().After(token.ExpiresAt) {
		return nil, gorm.ErrRecordNotFound
	}
	return &models.Token{
		ClientID:        token.ClientID,
		UserID:          token.ClientID,
		Access:          token.AccessToken,
		AccessCreateAt:  token.CreatedAt,
		AccessExpiresIn: token.ExpiresAt.Sub(token.CreatedAt),
		Scope:           token.Scopes,
	}, nil
}

func (s *GormTokenStore) RemoveByCode(ctx context.Context, code string) error {
	return ErrUnsupportedGrant
}

func (s *GormTokenStore) RemoveByRefresh(ctx context.Context, refresh string) error {
	return ErrUnsupportedGrant
}

func (s *GormTokenStore) GetByCode(ctx context.Context, code string) (oauth2.TokenInfo, error) {
	return nil, ErrUnsupportedGrant
}

func (s *GormTokenStore) GetByRefresh(ctx context.Context, refresh string) (oauth2.TokenInfo, error) {
	return nil, ErrUnsupportedGrant
}

// PurgeExpired deletes tokens past their expiry and returns how many were removed
func (s *GormTokenStore) PurgeExpired(ctx context.Context) (int64, error) {
	result := s.db.WithContext(ctx).Where("expires_at < ?", time.Now()).Delete(&internalmodels.StaffToken{})
	return result.RowsAffected, result.Error
}
