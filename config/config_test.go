package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func validConfig() Config {
	return Config{
		StoreDriver:         "sqlite",
		LockDriver:          "local",
		NotifyDriver:        "log",
		StoreTimeoutSeconds: 5,
		LockTTLSeconds:      10,
	}
}

func TestValidate(t *testing.T) {
	assert.NoError(t, validConfig().Validate())

	bad := validConfig()
	bad.StoreDriver = "postgres"
	assert.Error(t, bad.Validate())

	bad = validConfig()
	bad.LockDriver = "zookeeper"
	assert.Error(t, bad.Validate())

	bad = validConfig()
	bad.StoreTimeoutSeconds = 0
	assert.Error(t, bad.Validate())
}

func TestDurations(t *testing.T) {
	cfg := validConfig()
	assert.Equal(t, 5*time.Second, cfg.StoreTimeout())
	assert.Equal(t, 10*time.Second, cfg.LockTTL())
}
