package database

import (
	"fmt"
	"strings"
	"time"
)

// DatabaseConfig holds database connection configuration
type DatabaseConfig struct {
	// Driver specifies the database driver (postgres, sqlite)
	Driver string

	// PostgreSQL-specific configuration
	Host     string
	Port     string
	User     string
	Password string
	Name     string
	SSLMode  string

	// SQLite-specific configuration
	Path string

	// Connection pool limits; zero values fall back to defaults
	MaxOpenConns    int
	MaxIdleConns    int
	ConnMaxLifetime time.Duration
}

// PoolSettings are the connection pool limits applied after connecting
type PoolSettings struct {
	MaxOpenConns    int
	MaxIdleConns    int
	ConnMaxLifetime time.Duration
}

// Pool resolves the pool limits. An in-memory SQLite database is pinned to a
// single connection, since each connection would see its own empty database.
func (c *DatabaseConfig) Pool() PoolSettings {
	pool := PoolSettings{MaxOpenConns: 25, MaxIdleConns: 5, ConnMaxLifetime: 5 * time.Minute}
	if c.MaxOpenConns > 0 {
		pool.MaxOpenConns = c.MaxOpenConns
	}
	if c.MaxIdleConns > 0 {
		pool.MaxIdleConns = c.MaxIdleConns
	}
	if c.ConnMaxLifetime > 0 {
		pool.ConnMaxLifetime = c.ConnMaxLifetime
	}
	if c.InMemory() {
		pool.MaxOpenConns, pool.MaxIdleConns = 1, 1
	}
	if pool.MaxIdleConns > pool.MaxOpenConns {
		pool.MaxIdleConns = pool.MaxOpenConns
	}
	return pool
}

// String returns a string representation with sensitive data masked
func (c *DatabaseConfig) String() string {
	return fmt.Sprintf("DatabaseConfig{Driver: %s, Host: %s, Port: %s, User: %s, Password: [REDACTED], Name: %s, SSLMode: %s, Path: %s}",
		c.Driver, c.Host, c.Port, c.User, c.Name, c.SSLMode, c.Path)
}

// DSN builds a Data Source Name string based on the driver
func (c *DatabaseConfig) DSN() string {
	switch c.Driver {
	case "postgres", "postgresql":
		return fmt.Sprintf("host=%s user=%s password=%s dbname=%s port=%s sslmode=%s",
			c.Host, c.User, c.Password, c.Name, c.Port, c.SSLMode)
	case "sqlite", "":
		return c.Path
	default:
		return ""
	}
}

// InMemory reports whether the configuration points at an in-memory SQLite database
func (c *DatabaseConfig) InMemory() bool {
	driver := strings.ToLower(c.Driver)
	if driver != "sqlite" && driver != "" {
		return false
	}
	return c.Path == ":memory:" || strings.Contains(c.Path, "mode=memory")
}
