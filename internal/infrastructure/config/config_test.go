package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func validConfig() *Config {
	return &Config{
		Server: ServerConfig{
			Port:            8080,
			ReadTimeout:     15 * time.Second,
			WriteTimeout:    15 * time.Second,
			ShutdownTimeout: 30 * time.Second,
		},
		Storage: StorageConfig{
			Driver: "memory",
		},
		Checkout: CheckoutConfig{
			BaseFee:     5000,
			DeliveryFee: 3000,
			Currency:    "COP",
		},
		Provider: ProviderConfig{
			Name: "mock",
		},
	}
}

func TestConfig_Validate_Success(t *testing.T) {
	err := validConfig().Validate()
	assert.NoError(t, err)
}

func TestConfig_Validate_InvalidServerPort(t *testing.T) {
	tests := []struct {
		name string
		port int
	}{
		{"port too low", 0},
		{"port negative", -1},
		{"port too high", 99999},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := validConfig()
			cfg.Server.Port = tt.port

			err := cfg.Validate()
			assert.Error(t, err)
			assert.Contains(t, err.Error(), "server.port")
		})
	}
}

func TestConfig_Validate_UnknownStorageDriver(t *testing.T) {
	cfg := validConfig()
	cfg.Storage.Driver = "cassandra"

	err := cfg.Validate()
	assert.Error(t, err)
	assert.Contains(t, err.Error(), "storage.driver")
}

func TestConfig_Validate_PostgresRequiresDatabase(t *testing.T) {
	cfg := validConfig()
	cfg.Storage.Driver = "postgres"

	err := cfg.Validate()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "database.host")
}

func TestConfig_Validate_PostgresWithDatabase(t *testing.T) {
	cfg := validConfig()
	cfg.Storage.Driver = "postgres"
	cfg.Database = DatabaseConfig{Host: "localhost", Port: 5432}

	err := cfg.Validate()
	assert.NoError(t, err)
}

func TestConfig_Validate_SandboxRequiresKeys(t *testing.T) {
	cfg := validConfig()
	cfg.Provider = ProviderConfig{Name: "sandbox", BaseURL: "https://sandbox.example.com"}

	err := cfg.Validate()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "keys")
}

func TestConfig_Validate_NegativeFees(t *testing.T) {
	cfg := validConfig()
	cfg.Checkout.BaseFee = -1
	cfg.Checkout.DeliveryFee = -1

	err := cfg.Validate()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "base_fee")
	assert.Contains(t, err.Error(), "delivery_fee")
}

func TestConfig_Validate_MissingCurrency(t *testing.T) {
	cfg := validConfig()
	cfg.Checkout.Currency = ""

	err := cfg.Validate()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "currency")
}

func TestConfig_Validate_CacheRequiresRedisPort(t *testing.T) {
	cfg := validConfig()
	cfg.Storage.EnableCache = true
	cfg.Redis.Port = 0

	err := cfg.Validate()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "redis.port")
}

func TestDatabaseConfig_DSN(t *testing.T) {
	cfg := DatabaseConfig{
		Host:     "db.example.com",
		Port:     5432,
		User:     "checkout",
		Password: "secret",
		Database: "checkout_db",
		SSLMode:  "require",
	}

	assert.Equal(t,
		"host=db.example.com port=5432 user=checkout password=secret dbname=checkout_db sslmode=require",
		cfg.DatabaseDSN(),
	)
}

func TestRedisConfig_Addr(t *testing.T) {
	cfg := RedisConfig{Host: "redis.example.com", Port: 6379}
	assert.Equal(t, "redis.example.com:6379", cfg.RedisAddr())
}
