package services

import (
	"errors"

	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"

	"github.com/franciscosanchezn/pizzeria-backoffice/internal/models"
)

var ErrClientNotFound = errors.New("client_not_found")

// StaffClientService manages the OAuth2 clients that back-office tools
// authenticate with
type StaffClientService interface {
	// CreateClient stores a new client and returns it with its plain secret.
	// The secret is only available at creation time.
	CreateClient(name, domain, scopes string) (*models.StaffClient, string, error)
	// CreateClientWithSecret stores a client with caller chosen credentials
	CreateClientWithSecret(id, secret, name, domain, scopes string) (*models.StaffClient, error)
	ListClients() ([]models.StaffClient, error)
	GetClientByID(id string) (*models.StaffClient, error)
	DeleteClient(id string) error
}

type staffClientService struct {
	db   *gorm.DB
	cost int
}

func NewStaffClientService(db *gorm.DB, cost int) StaffClientService {
	return &staffClientService{db: db, cost: cost}
}

func (s *staffClientService) CreateClient(name, domain, scopes string) (*models.StaffClient, string, error) {
	secret := uuid.New().String()
	client, err := s.CreateClientWithSecret(uuid.New().String(), secret, name, domain, scopes)
	if err != nil {
		return nil, "", err
	}
	return client, secret, nil
}

func (s *staffClientService) CreateClientWithSecret(id, secret, name, domain, scopes string) (*models.StaffClient, error) {
	hash, err := bcrypt.GenerateFromPassword([]byte(secret), s.cost)
	if err != nil {
		return nil, err
	}
	client := &models.StaffClient{
		ID:     id,
		Secret: string(hash),
		Name:   name,
		Domain: domain,
		Scopes: scopes,
	}
	if err := s.db.Create(client).Error; err != nil {
		return nil, err
	}
	return client, nil
}

func (s *staffClientService) ListClients() ([]models.StaffClient, error) {
	var clients []models.StaffClient
	if err := s.db.Order("created_at").Find(&clients).Error; err != nil {
		return nil, err
	}
	return clients, nil
}

func (s *staffClientService) GetClientByID(id string) (*models.StaffClient, error) {
	var client models.StaffClient
	if err := s.db.Where("id = ?", id).First(&client).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrClientNotFound
		}
		return nil, err
	}
	return &client, nil
}

func (s *staffClientService) DeleteClient(id string) error {
	result := s.db.Where("id = ?", id).Delete(&models.StaffClient{})
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return ErrClientNotFound
	}
	return nil
}
