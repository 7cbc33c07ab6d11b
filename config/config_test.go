package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestValidate(t *testing.T) {
	base := func() *Config {
		return &Config{
			DocStore: DocStoreConfig{Driver: DriverMemory},
			Identity: IdentityConfig{Secret: "secret"},
		}
	}

	t.Run("memory driver needs only identity", func(t *testing.T) {
		assert.NoError(t, base().Validate())
	})

	t.Run("missing identity key", func(t *testing.T) {
		cfg := base()
		cfg.Identity.Secret = ""
		assert.Error(t, cfg.Validate())
	})

	t.Run("sanity requires project and token", func(t *testing.T) {
		cfg := base()
		cfg.DocStore.Driver = DriverSanity
		assert.Error(t, cfg.Validate())

		cfg.Sanity.ProjectID = "abc123"
		cfg.Sanity.Token = "tok"
		assert.NoError(t, cfg.Validate())
	})

	t.Run("postgres requires host and name", func(t *testing.T) {
		cfg := base()
		cfg.DocStore.Driver = DriverPostgres
		assert.Error(t, cfg.Validate())
	})

	t.Run("unknown driver", func(t *testing.T) {
		cfg := base()
		cfg.DocStore.Driver = "couch"
		assert.Error(t, cfg.Validate())
	})
}

func TestDurationOr(t *testing.T) {
	assert.Equal(t, 5*time.Second, durationOr("5s", time.Minute))
	assert.Equal(t, time.Minute, durationOr("", time.Minute))
	assert.Equal(t, time.Minute, durationOr("soon", time.Minute))
	assert.Equal(t, time.Minute, durationOr("-1s", time.Minute))
}
