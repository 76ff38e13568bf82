package database

import (
	"context"
	"testing"
	"time"

	"github.com/franciscosanchezn/pizzeria-backoffice/internal/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestInitDatabaseSQLiteInMemory(t *testing.T) {
	cfg := DatabaseConfig{Driver: "SQLite", Path: ":memory:"}
	require.True(t, cfg.InMemory())

	db, err := InitDatabase(context.Background(), cfg)
	require.NoError(t, err)
	require.NoError(t, Migrate(db))

	assert.True(t, db.Migrator().HasTable(&models.StaffClient{}))
	assert.True(t, db.Migrator().HasTable(&models.StaffToken{}))
	assert.True(t, db.Migrator().HasTable(&models.OrderEvent{}))

	sqlDB, err := db.DB()
	require.NoError(t, err)
	assert.Equal(t, 1, sqlDB.Stats().MaxOpenConnections)
}

func TestInitDatabaseUnsupportedDriver(t *testing.T) {
	db, err := InitDatabase(context.Background(), DatabaseConfig{Driver: "oracle"})
	assert.Error(t, err)
	assert.Nil(t, db)
}

func TestDSN(t *testing.T) {
	pg := DatabaseConfig{Driver: "postgres", Host: "db", Port: "5432", User: "pizza", Password: "pw", Name: "backoffice", SSLMode: "disable"}
	assert.Equal(t, "host=db user=pizza password=pw dbname=backoffice port=5432 sslmode=disable", pg.DSN())
	assert.NotContains(t, pg.String(), "pw ")
	assert.False(t, pg.InMemory())

	file := DatabaseConfig{Driver: "sqlite", Path: "pizzeria.sqlite"}
	assert.Equal(t, "pizzeria.sqlite", file.DSN())
	assert.False(t, file.InMemory())
}

func TestInitDatabaseStopsRetryingWhenCancelled(t *testing.T) {
	original := retryDelays
	retryDelays = []time.Duration{time.Hour, time.Hour}
	defer func() { retryDelays = original }()

	ctx, cancel := context.WithTimeout(context.Background(), 50*time.Millisecond)
	defer cancel()

	start := time.Now()
	db, err := InitDatabase(ctx, DatabaseConfig{Driver: "sqlite", Path: "/nonexistent-dir/pizzeria.sqlite"})
	assert.Error(t, err)
	assert.ErrorIs(t, err, context.DeadlineExceeded)
	assert.Nil(t, db)
	assert.Less(t, time.Since(start), 10*time.Second)
}

func TestPoolSettings(t *testing.T) {
	defaults := DatabaseConfig{Driver: "postgres"}
	assert.Equal(t, PoolSettings{MaxOpenConns: 25, MaxIdleConns: 5, ConnMaxLifetime: 5 * time.Minute}, defaults.Pool())

	tuned := DatabaseConfig{Driver: "postgres", MaxOpenConns: 4, MaxIdleConns: 10, ConnMaxLifetime: time.Minute}
	assert.Equal(t, PoolSettings{MaxOpenConns: 4, MaxIdleConns: 4, ConnMaxLifetime: time.Minute}, tuned.Pool())

	memory := DatabaseConfig{Driver: "sqlite", Path: "file::memory:?cache=shared&mode=memory", MaxOpenConns: 10}
	pool := memory.Pool()
	assert.Equal(t, 1, pool.MaxOpenConns)
	assert.Equal(t, 1, pool.MaxIdleConns)
}
