package config

import (
	"context"
	"testing"
	"time"

	"github.com/sethvargo/go-envconfig"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadFrom_Defaults(t *testing.T) {
	cfg, err := LoadFrom(context.Background(), envconfig.MapLookuper(map[string]string{
		"JWT_SECRET": "s3cret",
	}))
	require.NoError(t, err)

	assert.Equal(t, "8080", cfg.Port)
	assert.Equal(t, 720*time.Hour, cfg.Auth.JWTExpire)
	assert.Equal(t, 10*time.Minute, cfg.Auth.ResetTokenTTL)
	assert.Equal(t, "devcamper", cfg.Mongo.Database)
	assert.False(t, cfg.IsProduction())
	assert.False(t, cfg.Mail.Enabled())
	assert.False(t, cfg.Geocoder.Enabled())
}

func TestLoadFrom_RequiresSecret(t *testing.T) {
	_, err := LoadFrom(context.Background(), envconfig.MapLookuper(map[string]string{}))
	assert.Error(t, err)
}

func TestLoadFrom_Overrides(t *testing.T) {
	cfg, err := LoadFrom(context.Background(), envconfig.MapLookuper(map[string]string{
		"JWT_SECRET":       "s3cret",
		"JWT_EXPIRE":       "1h",
		"ENV":              "production",
		"MAILGUN_DOMAIN":   "mg.devcamper.io",
		"MAILGUN_API_KEY":  "key-123",
		"GEOCODER_API_KEY": "geo",
	}))
	require.NoError(t, err)

	assert.Equal(t, time.Hour, cfg.Auth.JWTExpire)
	assert.True(t, cfg.IsProduction())
	assert.True(t, cfg.Mail.Enabled())
	assert.True(t, cfg.Geocoder.Enabled())
}

func TestLoadFrom_RejectsNonPositiveExpiry(t *testing.T) {
	_, err := LoadFrom(context.Background(), envconfig.MapLookuper(map[string]string{
		"JWT_SECRET": "s3cret",
		"JWT_EXPIRE": "0s",
	}))
	assert.Error(t, err)
}
