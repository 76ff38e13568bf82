package config

import (
	"errors"
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/franciscosanchezn/pizzeria-backoffice/internal/database"
	"github.com/sirupsen/logrus"
	"golang.org/x/crypto/bcrypt"
)

// Create a new instance of the logger
// Configure it to log at the desired level
// and format it as JSON for structured logging
var log = logrus.New()

func init() {
	log.SetFormatter(&logrus.JSONFormatter{})
	log.SetLevel(LevelForEnvironment(GetEnvWithDefault("APP_ENV", "development")))
}

const defaultJWTSecret = "secret"

// Config used for the application configuration, loading the input from environment variables
type Config struct {
	// Server Configuration
	Environment string `json:"environment"`
	Port        int    `json:"port"`
	Host        string `json:"host"`

	// Database configuration
	DBDriver   string `json:"db_driver"`
	DBPath     string `json:"db_path"`
	DBHost     string `json:"db_host"`
	DBPort     string `json:"db_port"`
	DBName     string `json:"db_name"`
	DBUser     string `json:"db_user"`
	DBPassword string `json:"db_password"`
	DBSSLMode  string `json:"db_sslmode"`

	// Connection pool limits; zero keeps the database package defaults
	DBMaxOpenConns    int           `json:"db_max_open_conns"`
	DBMaxIdleConns    int           `json:"db_max_idle_conns"`
	DBConnMaxLifetime time.Duration `json:"db_conn_max_lifetime"`

	// Logging configuration
	LogLevel string `json:"log_level"`

	// Security Configuration
	JWTSecret    string        `json:"jwt_secret"`
	SessionTTL   time.Duration `json:"session_ttl"`
	PasswordCost int           `json:"password_cost"`

	// Photo storage
	PhotoRoot string `json:"photo_root"`
}

// String returns a string representation of Config with sensitive data masked
func (c *Config) String() string {
	return fmt.Sprintf("Config{Environment: %s, Port: %d, Host: %s, DBDriver: %s, DBPath: %s, DBHost: %s, DBName: %s, DBUser: %s, DBPassword: [REDACTED], LogLevel: %s, JWTSecret: [REDACTED], SessionTTL: %s, PasswordCost: %d, PhotoRoot: %s}",
		c.Environment, c.Port, c.Host, c.DBDriver, c.DBPath, c.DBHost, c.DBName, c.DBUser, c.LogLevel, c.SessionTTL, c.PasswordCost, c.PhotoRoot)
}

// Database returns the connection settings for the database package
func (c *Config) Database() database.DatabaseConfig {
	return database.DatabaseConfig{
		Driver:   c.DBDriver,
		Host:     c.DBHost,
		Port:     c.DBPort,
		User:     c.DBUser,
		Password: c.DBPassword,
		Name:     c.DBName,
		SSLMode:  c.DBSSLMode,
		Path:     c.DBPath,

		MaxOpenConns:    c.DBMaxOpenConns,
		MaxIdleConns:    c.DBMaxIdleConns,
		ConnMaxLifetime: c.DBConnMaxLifetime,
	}
}

// LoadConfig read the proper configuration from environment variables and returns a Config struct
// Returns an error if any environment variable is invalid
func LoadConfig() (*Config, error) {
	log.Info("Loading configuration from environment variables")
	port, err := strconv.Atoi(GetEnvWithDefault("APP_PORT", "8080"))
	if err != nil {
		return nil, err
	}

	driver := strings.ToLower(GetEnvWithDefault("DB_DRIVER", "sqlite"))
	switch driver {
	case "sqlite", "postgres", "postgresql":
	default:
		return nil, fmt.Errorf("unsupported DB_DRIVER %q (supported: sqlite, postgres)", driver)
	}

	ttlMinutes := GetEnvAsType("SESSION_TTL_MINUTES", 60)
	if ttlMinutes < 0 {
		return nil, errors.New("SESSION_TTL_MINUTES must not be negative")
	}

	maxOpen := GetEnvAsType("DB_MAX_OPEN_CONNS", 0)
	maxIdle := GetEnvAsType("DB_MAX_IDLE_CONNS", 0)
	lifetimeMinutes := GetEnvAsType("DB_CONN_MAX_LIFETIME_MINUTES", 0)
	if maxOpen < 0 || maxIdle < 0 || lifetimeMinutes < 0 {
		return nil, errors.New("database pool settings must not be negative")
	}

	cost := GetEnvAsType("PASSWORD_COST", bcrypt.DefaultCost)
	if cost < bcrypt.MinCost || cost > bcrypt.MaxCost {
		return nil, fmt.Errorf("PASSWORD_COST must be between %d and %d", bcrypt.MinCost, bcrypt.MaxCost)
	}

	config := &Config{
		Environment:  GetEnvWithDefault("APP_ENV", "development"),
		Port:         port,
		Host:         GetEnvWithDefault("APP_HOST", "localhost"),
		DBDriver:     driver,
		DBPath:       GetEnvWithDefault("DB_PATH", "pizzeria.sqlite"),
		DBHost:       GetEnvWithDefault("DB_HOST", "localhost"),
		DBPort:       GetEnvWithDefault("DB_PORT", "5432"),
		DBName:       GetEnvWithDefault("DB_NAME", "pizzeria"),
		DBUser:       GetEnvWithDefault("DB_USER", "user"),
		DBPassword:   GetEnvWithDefault("DB_PASSWORD", "password"),
		DBSSLMode:    GetEnvWithDefault("DB_SSLMODE", "disable"),

		DBMaxOpenConns:    maxOpen,
		DBMaxIdleConns:    maxIdle,
		DBConnMaxLifetime: time.Duration(lifetimeMinutes) * time.Minute,

		LogLevel:     GetEnvWithDefault("LOG_LEVEL", "info"),
		JWTSecret:    GetEnvWithDefault("JWT_SECRET", defaultJWTSecret),
		SessionTTL:   time.Duration(ttlMinutes) * time.Minute,
		PasswordCost: cost,
		PhotoRoot:    os.Getenv("PHOTO_ROOT"),
	}

	if config.Environment == "production" && config.JWTSecret == defaultJWTSecret {
		return nil, errors.New("JWT_SECRET must be set in production")
	}

	log.Infof("Configuration loaded: %s", config.String())
	return config, nil
}

// LevelForEnvironment maps APP_ENV to a log level
func LevelForEnvironment(environment string) logrus.Level {
	switch environment {
	case "development":
		return logrus.DebugLevel
	case "production":
		return logrus.ErrorLevel
	default:
		// Default to info level for other environments
		return logrus.InfoLevel
	}
}

// Helper to get environment with default values
func GetEnvWithDefault(key, defaultValue string) string {
	log.Tracef("Getting environment variable: %s", key)
	value := os.Getenv(key)
	if value == "" {
		log.Warnf("Environment variable %s not set, using default value: %s", key, defaultValue)
		return defaultValue
	}
	return value
}

// GetEnvAsType retrieves an environment variable and converts it to the specified type
// using generic type handling.
func GetEnvAsType[T any](key string, defaultValue T) T {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue
	}

	var result T
	switch any(result).(type) {
	case int:
		intValue, err := strconv.Atoi(value)
		if err != nil {
			return defaultValue
		}
		return any(intValue).(T)
	case string:
		return any(value).(T)
	case bool:
		boolValue, err := strconv.ParseBool(value)
		if err != nil {
			return defaultValue
		}
		return any(boolValue).(T)
	default:
		return defaultValue // Fallback for unsupported types
	}
}
