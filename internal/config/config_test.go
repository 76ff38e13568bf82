package config

import (
	"os"
	"strings"
	"testing"
	"time"

	"github.com/sirupsen/logrus"
)

var configVars = []string{
	"APP_ENV", "APP_PORT", "APP_HOST", "LOG_LEVEL", "JWT_SECRET", "DB_DRIVER", "DB_PATH",
	"SESSION_TTL_MINUTES", "PASSWORD_COST", "PHOTO_ROOT",
	"DB_MAX_OPEN_CONNS", "DB_MAX_IDLE_CONNS", "DB_CONN_MAX_LIFETIME_MINUTES",
}

func cleanupTestEnv() {
	for _, v := range configVars {
		os.Unsetenv(v)
	}
}

func TestGetEnvWithDefault(t *testing.T) {
	testCases := []struct {
		name         string
		key          string
		defaultValue string
		envValue     string
		expected     string
	}{
		{
			name:         "should return env value when set",
			key:          "TEST_KEY",
			defaultValue: "default",
			envValue:     "from_env",
			expected:     "from_env",
		},
		{
			name:         "should return default when env not set",
			key:          "MISSING_KEY",
			defaultValue: "default_value",
			envValue:     "",
			expected:     "default_value",
		},
	}

	for _, tt := range testCases {
		t.Run(tt.name, func(t *testing.T) {
			if tt.envValue != "" {
				os.Setenv(tt.key, tt.envValue)
				defer os.Unsetenv(tt.key)
			} else {
				os.Unsetenv(tt.key)
			}

			result := GetEnvWithDefault(tt.key, tt.defaultValue)

			if result != tt.expected {
				t.Errorf("GetEnvWithDefault() = %v, expected %v", result, tt.expected)
			}
		})
	}
}

func TestGetEnvAsType(t *testing.T) {
	os.Setenv("TEST_INT", "42")
	os.Setenv("TEST_BAD_INT", "forty-two")
	os.Setenv("TEST_BOOL", "true")
	defer func() {
		os.Unsetenv("TEST_INT")
		os.Unsetenv("TEST_BAD_INT")
		os.Unsetenv("TEST_BOOL")
	}()

	if got := GetEnvAsType("TEST_INT", 7); got != 42 {
		t.Errorf("GetEnvAsType(int) = %d, expected 42", got)
	}
	if got := GetEnvAsType("TEST_BAD_INT", 7); got != 7 {
		t.Errorf("GetEnvAsType(bad int) = %d, expected default 7", got)
	}
	if got := GetEnvAsType("TEST_BOOL", false); !got {
		t.Error("GetEnvAsType(bool) = false, expected true")
	}
	if got := GetEnvAsType("TEST_MISSING", "fallback"); got != "fallback" {
		t.Errorf("GetEnvAsType(missing) = %s, expected fallback", got)
	}
}

func TestLoadConfig(t *testing.T) {
	t.Run("successful config load with all env vars", func(t *testing.T) {
		cleanupTestEnv()
		defer cleanupTestEnv()
		os.Setenv("APP_PORT", "9000")
		os.Setenv("APP_HOST", "0.0.0.0")
		os.Setenv("LOG_LEVEL", "debug")
		os.Setenv("JWT_SECRET", "super_secret_jwt_key")
		os.Setenv("DB_DRIVER", "SQLite")
		os.Setenv("SESSION_TTL_MINUTES", "15")
		os.Setenv("PASSWORD_COST", "4")
		os.Setenv("PHOTO_ROOT", "/srv/photos")

		config, err := LoadConfig()
		if err != nil {
			t.Fatalf("LoadConfig() returned error: %v", err)
		}

		if config.Port != 9000 {
			t.Errorf("Port = %d, expected 9000", config.Port)
		}
		if config.Host != "0.0.0.0" {
			t.Errorf("Host = %s, expected 0.0.0.0", config.Host)
		}
		if config.DBDriver != "sqlite" {
			t.Errorf("DBDriver = %s, expected sqlite", config.DBDriver)
		}
		if config.SessionTTL != 15*time.Minute {
			t.Errorf("SessionTTL = %s, expected 15m", config.SessionTTL)
		}
		if config.PasswordCost != 4 {
			t.Errorf("PasswordCost = %d, expected 4", config.PasswordCost)
		}
		if config.PhotoRoot != "/srv/photos" {
			t.Errorf("PhotoRoot = %s, expected /srv/photos", config.PhotoRoot)
		}
	})

	t.Run("should fail with invalid port", func(t *testing.T) {
		cleanupTestEnv()
		os.Setenv("APP_PORT", "not_a_number")
		defer cleanupTestEnv()

		config, err := LoadConfig()

		if err == nil {
			t.Error("LoadConfig() should return error when APP_PORT is invalid")
		}
		if config != nil {
			t.Error("Config should be nil when error occurs")
		}
	})

	t.Run("should fail with unsupported driver", func(t *testing.T) {
		cleanupTestEnv()
		os.Setenv("DB_DRIVER", "oracle")
		defer cleanupTestEnv()

		if _, err := LoadConfig(); err == nil {
			t.Error("LoadConfig() should return error when DB_DRIVER is unsupported")
		}
	})

	t.Run("should pass pool limits to the database settings", func(t *testing.T) {
		cleanupTestEnv()
		defer cleanupTestEnv()
		os.Setenv("DB_DRIVER", "postgres")
		os.Setenv("DB_MAX_OPEN_CONNS", "10")
		os.Setenv("DB_MAX_IDLE_CONNS", "2")
		os.Setenv("DB_CONN_MAX_LIFETIME_MINUTES", "3")

		config, err := LoadConfig()
		if err != nil {
			t.Fatalf("LoadConfig() returned error: %v", err)
		}
		dbCfg := config.Database()
		pool := dbCfg.Pool()
		if pool.MaxOpenConns != 10 || pool.MaxIdleConns != 2 || pool.ConnMaxLifetime != 3*time.Minute {
			t.Errorf("Pool() = %+v, expected 10 open, 2 idle, 3m lifetime", pool)
		}
	})

	t.Run("should fail with negative pool limits", func(t *testing.T) {
		cleanupTestEnv()
		os.Setenv("DB_MAX_OPEN_CONNS", "-1")
		defer cleanupTestEnv()

		if _, err := LoadConfig(); err == nil {
			t.Error("LoadConfig() should return error when DB_MAX_OPEN_CONNS is negative")
		}
	})

	t.Run("should fail with default secret in production", func(t *testing.T) {
		cleanupTestEnv()
		os.Setenv("APP_ENV", "production")
		defer cleanupTestEnv()

		if _, err := LoadConfig(); err == nil {
			t.Error("LoadConfig() should refuse the default JWT secret in production")
		}
	})

	t.Run("should use defaults when optional env vars not set", func(t *testing.T) {
		cleanupTestEnv()
		defer cleanupTestEnv()

		config, err := LoadConfig()
		if err != nil {
			t.Fatalf("LoadConfig() returned unexpected error: %v", err)
		}

		if config.Port != 8080 {
			t.Errorf("Port = %d, expected default 8080", config.Port)
		}
		if config.Host != "localhost" {
			t.Errorf("Host = %s, expected default localhost", config.Host)
		}
		if config.SessionTTL != time.Hour {
			t.Errorf("SessionTTL = %s, expected default 1h", config.SessionTTL)
		}
		dbCfg := config.Database()
		if dbCfg.DSN() != "pizzeria.sqlite" {
			t.Errorf("Database DSN = %s, expected pizzeria.sqlite", dbCfg.DSN())
		}
	})
}

func TestLevelForEnvironment(t *testing.T) {
	if LevelForEnvironment("development") != logrus.DebugLevel {
		t.Error("development should log at debug level")
	}
	if LevelForEnvironment("production") != logrus.ErrorLevel {
		t.Error("production should log at error level")
	}
	if LevelForEnvironment("staging") != logrus.InfoLevel {
		t.Error("other environments should log at info level")
	}
}

func TestConfigStringMasksSecrets(t *testing.T) {
	c := &Config{DBPassword: "hunter2", JWTSecret: "jwt-secret"}
	s := c.String()
	for _, secret := range []string{"hunter2", "jwt-secret"} {
		if strings.Contains(s, secret) {
			t.Errorf("String() leaks %q: %s", secret, s)
		}
	}
}
