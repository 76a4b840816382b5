package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestApplyDefaults(t *testing.T) {
	cfg := &Config{}

	applyDefaults(cfg)

	assert.Equal(t, defaultMaxRequestBodySize, cfg.HTTP.MaxRequestBodySize)
	assert.Equal(t, StoragePostgres, cfg.Storage.Driver)
	require.NotNil(t, cfg.Auth)
	assert.Equal(t, 10, cfg.Auth.BcryptCost)
	assert.Equal(t, 24*time.Hour, cfg.Auth.TokenTTL)
	assert.Positive(t, cfg.Auth.HashConcurrency)
	assert.False(t, cfg.Auth.OpenRegistration)
}

func TestApplyDefaults_KeepsExplicitValues(t *testing.T) {
	cfg := &Config{
		Storage: StorageConfig{Driver: "MEMORY"},
		Auth: &AuthConfig{
			BcryptCost:      12,
			TokenTTL:        time.Hour,
			HashConcurrency: 2,
		},
	}

	applyDefaults(cfg)

	assert.Equal(t, StorageMemory, cfg.Storage.Driver)
	assert.Equal(t, 12, cfg.Auth.BcryptCost)
	assert.Equal(t, time.Hour, cfg.Auth.TokenTTL)
	assert.Equal(t, 2, cfg.Auth.HashConcurrency)
}

func TestConfig_Validate(t *testing.T) {
	t.Run("missing secret", func(t *testing.T) {
		cfg := &Config{Storage: StorageConfig{Driver: StorageMemory}}

		err := cfg.Validate()

		require.Error(t, err)
		assert.Contains(t, err.Error(), "secretKey.access")
	})

	t.Run("postgres without connection", func(t *testing.T) {
		cfg := &Config{
			Storage:   StorageConfig{Driver: StoragePostgres},
			SecretKey: SecretKeyConfig{Access: "secret"},
		}

		assert.Error(t, cfg.Validate())
	})

	t.Run("unknown driver", func(t *testing.T) {
		cfg := &Config{
			Storage:   StorageConfig{Driver: "redis"},
			SecretKey: SecretKeyConfig{Access: "secret"},
		}

		err := cfg.Validate()

		require.Error(t, err)
		assert.Contains(t, err.Error(), "redis")
	})

	t.Run("memory store", func(t *testing.T) {
		cfg := &Config{
			Storage:   StorageConfig{Driver: StorageMemory},
			SecretKey: SecretKeyConfig{Access: "secret"},
		}

		assert.NoError(t, cfg.Validate())
	})
}
