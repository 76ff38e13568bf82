package services

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"

	"github.com/franciscosanchezn/pizzeria-backoffice/internal/models"
)

func setupTestDB(t *testing.T) *gorm.DB {
	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{})
	require.NoError(t, err)

	sqlDB, err := db.DB()
	require.NoError(t, err)
	sqlDB.SetMaxOpenConns(1)

	require.NoError(t, db.AutoMigrate(&models.StaffClient{}))
	return db
}

func TestCreateClientReturnsPlainSecretOnce(t *testing.T) {
	service := NewStaffClientService(setupTestDB(t), bcrypt.MinCost)

	client, secret, err := service.CreateClient("Kitchen terminal", "http://localhost", "orders")
	require.NoError(t, err)

	assert.NotEmpty(t, client.ID)
	assert.NotEmpty(t, secret)
	assert.NotEqual(t, secret, client.Secret, "stored secret must be hashed")
	assert.True(t, client.VerifyPassword(secret))

	stored, err := service.GetClientByID(client.ID)
	require.NoError(t, err)
	assert.Equal(t, "Kitchen terminal", stored.Name)
	assert.True(t, stored.VerifyPassword(secret))
}

func TestCreateClientWithSecretRejectsDuplicateID(t *testing.T) {
	service := NewStaffClientService(setupTestDB(t), bcrypt.MinCost)

	_, err := service.CreateClientWithSecret("dev-staff", "dev-secret", "Dev", "", "catalog")
	require.NoError(t, err)

	_, err = service.CreateClientWithSecret("dev-staff", "other", "Dev", "", "catalog")
	assert.Error(t, err)
}

func TestListAndDeleteClients(t *testing.T) {
	service := NewStaffClientService(setupTestDB(t), bcrypt.MinCost)

	first, _, err := service.CreateClient("Kitchen", "", "orders")
	require.NoError(t, err)
	_, _, err = service.CreateClient("Counter", "", "catalog")
	require.NoError(t, err)

	clients, err := service.ListClients()
	require.NoError(t, err)
	assert.Len(t, clients, 2)

	require.NoError(t, service.DeleteClient(first.ID))

	_, err = service.GetClientByID(first.ID)
	assert.ErrorIs(t, err, ErrClientNotFound)
	assert.ErrorIs(t, service.DeleteClient(first.ID), ErrClientNotFound)

	clients, err = service.ListClients()
	require.NoError(t, err)
	assert.Len(t, clients, 1)
}
