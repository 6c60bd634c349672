package config

import (
	"os"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoad(t *testing.T) {
	// Save original env vars and restore after tests
	originalEnv := map[string]string{
		"PARKING_APP_NAME":                os.Getenv("PARKING_APP_NAME"),
		"PARKING_APP_ENV":                 os.Getenv("PARKING_APP_ENV"),
		"PARKING_APP_PORT":                os.Getenv("PARKING_APP_PORT"),
		"PARKING_DATABASE_HOST":           os.Getenv("PARKING_DATABASE_HOST"),
		"PARKING_DATABASE_PORT":           os.Getenv("PARKING_DATABASE_PORT"),
		"PARKING_DATABASE_USER":           os.Getenv("PARKING_DATABASE_USER"),
		"PARKING_DATABASE_PASSWORD":       os.Getenv("PARKING_DATABASE_PASSWORD"),
		"PARKING_DATABASE_DBNAME":         os.Getenv("PARKING_DATABASE_DBNAME"),
		"PARKING_DATABASE_SSLMODE":        os.Getenv("PARKING_DATABASE_SSLMODE"),
		"PARKING_DATABASE_MAX_OPEN_CONNS": os.Getenv("PARKING_DATABASE_MAX_OPEN_CONNS"),
		"PARKING_DATABASE_MAX_IDLE_CONNS": os.Getenv("PARKING_DATABASE_MAX_IDLE_CONNS"),
		"PARKING_JWT_SECRET":              os.Getenv("PARKING_JWT_SECRET"),
		"PARKING_BOOKING_GRACE_PERIOD":    os.Getenv("PARKING_BOOKING_GRACE_PERIOD"),
		"PARKING_BOOKING_HOURLY_RATE":     os.Getenv("PARKING_BOOKING_HOURLY_RATE"),
		"PARKING_BOOKING_MIN_LEAD_TIME":   os.Getenv("PARKING_BOOKING_MIN_LEAD_TIME"),
		"PARKING_PAYMENT_TOKEN_SECRET":    os.Getenv("PARKING_PAYMENT_TOKEN_SECRET"),
	}

	defer func() {
		for k, v := range originalEnv {
			if v == "" {
				os.Unsetenv(k)
			} else {
				os.Setenv(k, v)
			}
		}
	}()

	clearEnv := func() {
		for k := range originalEnv {
			os.Unsetenv(k)
		}
	}

	t.Run("loads default values when env vars not set", func(t *testing.T) {
		clearEnv()

		cfg, err := Load()
		require.NoError(t, err)

		assert.Equal(t, "parkly-backend", cfg.App.Name)
		assert.Equal(t, "development", cfg.App.Env)
		assert.Equal(t, "8080", cfg.App.Port)
		assert.Equal(t, "localhost", cfg.Database.Host)
		assert.Equal(t, 5432, cfg.Database.Port)
		assert.Equal(t, "parkly", cfg.Database.DBName)
		assert.Equal(t, 25, cfg.Database.MaxOpenConns)
		assert.Equal(t, 5, cfg.Database.MaxIdleConns)
	})

	t.Run("booking policy defaults", func(t *testing.T) {
		clearEnv()

		cfg, err := Load()
		require.NoError(t, err)

		assert.Equal(t, 15*time.Minute, cfg.Booking.GracePeriod)
		assert.Equal(t, int64(20), cfg.Booking.HourlyRate)
		assert.Equal(t, 2*time.Hour, cfg.Booking.MinLeadTime)
	})

	t.Run("loads values from environment variables with PARKING prefix", func(t *testing.T) {
		clearEnv()
		os.Setenv("PARKING_APP_NAME", "test-app")
		os.Setenv("PARKING_APP_PORT", "9000")
		os.Setenv("PARKING_DATABASE_HOST", "testdb.local")
		os.Setenv("PARKING_DATABASE_PORT", "5433")
		os.Setenv("PARKING_BOOKING_GRACE_PERIOD", "10m")
		os.Setenv("PARKING_BOOKING_HOURLY_RATE", "35")
		os.Setenv("PARKING_BOOKING_MIN_LEAD_TIME", "1h")

		cfg, err := Load()
		require.NoError(t, err)

		assert.Equal(t, "test-app", cfg.App.Name)
		assert.Equal(t, "9000", cfg.App.Port)
		assert.Equal(t, "testdb.local", cfg.Database.Host)
		assert.Equal(t, 5433, cfg.Database.Port)
		assert.Equal(t, 10*time.Minute, cfg.Booking.GracePeriod)
		assert.Equal(t, int64(35), cfg.Booking.HourlyRate)
		assert.Equal(t, time.Hour, cfg.Booking.MinLeadTime)
	})

	t.Run("validates MaxIdleConns cannot exceed MaxOpenConns", func(t *testing.T) {
		clearEnv()
		os.Setenv("PARKING_DATABASE_MAX_OPEN_CONNS", "10")
		os.Setenv("PARKING_DATABASE_MAX_IDLE_CONNS", "20")

		_, err := Load()
		require.Error(t, err)
		assert.Contains(t, err.Error(), "max_idle_conns")
		assert.Contains(t, err.Error(), "cannot exceed")
	})

	t.Run("rejects non-positive hourly rate", func(t *testing.T) {
		clearEnv()
		os.Setenv("PARKING_BOOKING_HOURLY_RATE", "-5")

		_, err := Load()
		require.Error(t, err)
		assert.Contains(t, err.Error(), "hourly_rate")
	})
}

func TestLoad_ProductionValidation(t *testing.T) {
	originalEnv := map[string]string{
		"PARKING_APP_ENV":              os.Getenv("PARKING_APP_ENV"),
		"PARKING_JWT_SECRET":           os.Getenv("PARKING_JWT_SECRET"),
		"PARKING_DATABASE_PASSWORD":    os.Getenv("PARKING_DATABASE_PASSWORD"),
		"PARKING_DATABASE_SSLMODE":     os.Getenv("PARKING_DATABASE_SSLMODE"),
		"PARKING_PAYMENT_TOKEN_SECRET": os.Getenv("PARKING_PAYMENT_TOKEN_SECRET"),
	}

	defer func() {
		for k, v := range originalEnv {
			if v == "" {
				os.Unsetenv(k)
			} else {
				os.Setenv(k, v)
			}
		}
	}()

	clearEnv := func() {
		for k := range originalEnv {
			os.Unsetenv(k)
		}
	}

	setValidProductionBase := func() {
		os.Setenv("PARKING_APP_ENV", "production")
		os.Setenv("PARKING_JWT_SECRET", "this-is-a-very-secure-jwt-secret-key-32chars")
		os.Setenv("PARKING_DATABASE_PASSWORD", "secure-password")
		os.Setenv("PARKING_DATABASE_SSLMODE", "require")
		os.Setenv("PARKING_PAYMENT_TOKEN_SECRET", "payment-confirmation-hmac-key")
	}

	t.Run("requires jwt.secret in production", func(t *testing.T) {
		clearEnv()
		setValidProductionBase()
		os.Unsetenv("PARKING_JWT_SECRET")

		_, err := Load()
		require.Error(t, err)
		assert.Contains(t, err.Error(), "jwt.secret is required in production")
	})

	t.Run("requires jwt.secret at least 32 characters in production", func(t *testing.T) {
		clearEnv()
		setValidProductionBase()
		os.Setenv("PARKING_JWT_SECRET", "short-secret")

		_, err := Load()
		require.Error(t, err)
		assert.Contains(t, err.Error(), "jwt.secret must be at least 32 characters")
	})

	t.Run("requires payment.token_secret in production", func(t *testing.T) {
		clearEnv()
		setValidProductionBase()
		os.Unsetenv("PARKING_PAYMENT_TOKEN_SECRET")

		_, err := Load()
		require.Error(t, err)
		assert.Contains(t, err.Error(), "payment.token_secret is required in production")
	})

	t.Run("requires database.password in production", func(t *testing.T) {
		clearEnv()
		setValidProductionBase()
		os.Unsetenv("PARKING_DATABASE_PASSWORD")

		_, err := Load()
		require.Error(t, err)
		assert.Contains(t, err.Error(), "database.password is required in production")
	})

	t.Run("requires SSL enabled in production", func(t *testing.T) {
		clearEnv()
		setValidProductionBase()
		os.Setenv("PARKING_DATABASE_SSLMODE", "disable")

		_, err := Load()
		require.Error(t, err)
		assert.Contains(t, err.Error(), "database.sslmode cannot be 'disable' in production")
	})

	t.Run("passes validation with valid production config", func(t *testing.T) {
		clearEnv()
		setValidProductionBase()

		cfg, err := Load()
		require.NoError(t, err)
		assert.Equal(t, "production", cfg.App.Env)
	})
}

func TestDatabaseConfig_DSN(t *testing.T) {
	t.Run("generates valid DSN", func(t *testing.T) {
		cfg := DatabaseConfig{
			Host:     "localhost",
			Port:     5432,
			User:     "testuser",
			Password: "testpass",
			DBName:   "testdb",
			SSLMode:  "disable",
		}

		dsn := cfg.DSN()
		assert.Contains(t, dsn, "localhost")
		assert.Contains(t, dsn, "5432")
		assert.Contains(t, dsn, "testuser")
		assert.Contains(t, dsn, "testdb")
		assert.Contains(t, dsn, "sslmode=disable")
	})

	t.Run("escapes special characters in password", func(t *testing.T) {
		cfg := DatabaseConfig{
			Host:     "localhost",
			Port:     5432,
			User:     "user",
			Password: "pass@word#123",
			DBName:   "db",
			SSLMode:  "disable",
		}

		dsn := cfg.DSN()
		assert.Contains(t, dsn, "pass%40word%23123")
	})

	t.Run("handles empty password", func(t *testing.T) {
		cfg := DatabaseConfig{
			Host:     "localhost",
			Port:     5432,
			User:     "user",
			Password: "",
			DBName:   "db",
			SSLMode:  "disable",
		}

		dsn := cfg.DSN()
		assert.NotEmpty(t, dsn)
	})
}
