// Copyright (c) 2026 DreckTrack. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package config_test

import (
	"testing"
	"time"

	"github.com/caarlos0/env/v11"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/taibuivan/drecktrack/internal/platform/config"
)

func requiredEnv() map[string]string {
	return map[string]string{
		"DATABASE_URL":         "postgres://localhost:5432/drecktrack",
		"REDIS_URL":            "redis://localhost:6379/0",
		"JWT_PRIVATE_KEY_PATH": "/keys/private.pem",
		"JWT_PUBLIC_KEY_PATH":  "/keys/public.pem",
	}
}

func TestLoad_Defaults(t *testing.T) {
	cfg, err := config.LoadWith(env.Options{Environment: requiredEnv()})
	require.NoError(t, err)

	assert.Equal(t, "8080", cfg.ServerPort)
	assert.True(t, cfg.IsDevelopment())
	assert.False(t, cfg.IsProduction())
	assert.Equal(t, 15*time.Minute, cfg.AccessTokenTTL)
	assert.Equal(t, 720*time.Hour, cfg.RefreshTokenTTL)
	assert.Equal(t, "./data/migrations", cfg.MigrationPath)
}

func TestLoad_Overrides(t *testing.T) {
	vars := requiredEnv()
	vars["ENVIRONMENT"] = "production"
	vars["ACCESS_TOKEN_TTL"] = "5m"

	cfg, err := config.LoadWith(env.Options{Environment: vars})
	require.NoError(t, err)

	assert.True(t, cfg.IsProduction())
	assert.Equal(t, 5*time.Minute, cfg.AccessTokenTTL)
}

func TestLoad_MissingRequired(t *testing.T) {
	vars := requiredEnv()
	delete(vars, "DATABASE_URL")

	_, err := config.LoadWith(env.Options{Environment: vars})
	assert.Error(t, err)
}
