package database

import (
	"context"
	"database/sql"
	"fmt"
	"strings"
	"time"

	"github.com/franciscosanchezn/pizzeria-backoffice/internal/models"
	"github.com/sirupsen/logrus"
	"gorm.io/driver/postgres"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"
)

var log = logrus.New()

// retryDelays is the wait before each reconnection attempt; its length bounds the attempts
var retryDelays = []time.Duration{1 * time.Second, 2 * time.Second, 4 * time.Second, 8 * time.Second, 16 * time.Second}

func init() {
	log.SetFormatter(&logrus.JSONFormatter{})
	log.SetLevel(logrus.InfoLevel)
}

// dialector picks the gorm driver for the configured database
func dialector(cfg DatabaseConfig) (gorm.Dialector, error) {
	switch strings.ToLower(cfg.Driver) {
	case "postgres", "postgresql":
		return postgres.Open(cfg.DSN()), nil
	case "sqlite", "":
		return sqlite.Open(cfg.DSN()), nil
	default:
		return nil, fmt.Errorf("unsupported database driver: %s (supported: postgres, sqlite)", cfg.Driver)
	}
}

// gormConfig routes gorm's own messages through the package logger
func gormConfig() *gorm.Config {
	return &gorm.Config{
		Logger: gormlogger.New(log, gormlogger.Config{
			SlowThreshold:             200 * time.Millisecond,
			LogLevel:                  gormlogger.Warn,
			IgnoreRecordNotFoundError: true,
		}),
	}
}

// connect makes a single attempt to open and ping the database
func connect(ctx context.Context, d gorm.Dialector) (*gorm.DB, *sql.DB, error) {
	db, err := gorm.Open(d, gormConfig())
	if err != nil {
		return nil, nil, err
	}
	sqlDB, err := db.DB()
	if err != nil {
		return nil, nil, fmt.Errorf("get database instance: %w", err)
	}
	if err := sqlDB.PingContext(ctx); err != nil {
		_ = sqlDB.Close()
		return nil, nil, fmt.Errorf("ping database: %w", err)
	}
	return db, sqlDB, nil
}

// InitDatabase opens the configured PostgreSQL or SQLite database, retrying
// with exponential backoff until it answers a ping or ctx is done
func InitDatabase(ctx context.Context, cfg DatabaseConfig) (*gorm.DB, error) {
	d, err := dialector(cfg)
	if err != nil {
		return nil, err
	}
	entry := log.WithFields(logrus.Fields{
		"db_driver": strings.ToLower(cfg.Driver),
		"db_host":   cfg.Host,
		"db_name":   cfg.Name,
		"db_path":   cfg.Path,
	})
	entry.Info("Initializing database connection")

	maxAttempts := len(retryDelays)
	for attempt := 1; ; attempt++ {
		db, sqlDB, connErr := connect(ctx, d)
		if connErr == nil {
			configureConnectionPool(sqlDB, cfg)
			entry.WithField("attempt", attempt).Info("Database initialized successfully")
			return db, nil
		}
		err = connErr
		entry.WithFields(logrus.Fields{
			"attempt":      attempt,
			"max_attempts": maxAttempts,
		}).WithError(err).Warn("Database connection attempt failed")

		if attempt == maxAttempts {
			break
		}
		delay := retryDelays[attempt-1]
		select {
		case <-ctx.Done():
			return nil, fmt.Errorf("database connection cancelled after %d attempts: %w", attempt, ctx.Err())
		case <-time.After(delay):
		}
	}
	return nil, fmt.Errorf("failed to connect to database after %d attempts: %w", maxAttempts, err)
}

// Migrate creates or updates the tables owned by the back office
func Migrate(db *gorm.DB) error {
	log.Info("Migrating database schema")
	return db.AutoMigrate(&models.StaffClient{}, &models.StaffToken{}, &models.OrderEvent{})
}

func configureConnectionPool(sqlDB *sql.DB, cfg DatabaseConfig) {
	pool := cfg.Pool()
	sqlDB.SetMaxOpenConns(pool.MaxOpenConns)
	sqlDB.SetMaxIdleConns(pool.MaxIdleConns)
	sqlDB.SetConnMaxLifetime(pool.ConnMaxLifetime)

	log.WithFields(logrus.Fields{
		"max_open_conns":    pool.MaxOpenConns,
		"max_idle_conns":    pool.MaxIdleConns,
		"conn_max_lifetime": pool.ConnMaxLifetime.String(),
	}).Debug("Connection pool configured")
}
