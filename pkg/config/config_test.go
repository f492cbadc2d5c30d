package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func validConfig() *Config {
	return &Config{
		App: AppConfig{
			Name:     "agriprofit-test",
			Mode:     "development",
			LogLevel: "info",
		},
		Database: DatabaseConfig{
			Host:           "localhost",
			Port:           5432,
			Name:           "testdb",
			User:           "user",
			Password:       "pass",
			MaxConnections: 10,
		},
		Predictor: PredictorConfig{
			FailureSignalsRequired: 2,
			DefaultCropFactor:      0.75,
			MaxSuggestions:         3,
		},
		API: APIConfig{
			Port:         8080,
			MaxBodyBytes: 1 << 20,
			JWTSecret:    "test-secret",
		},
	}
}

func TestConfig_Validate(t *testing.T) {
	tests := []struct {
		name        string
		modifyFunc  func(*Config)
		expectErr   bool
		errContains string
	}{
		{
			name:       "valid config",
			modifyFunc: func(c *Config) {},
		},
		{
			name:        "missing app name",
			modifyFunc:  func(c *Config) { c.App.Name = "" },
			expectErr:   true,
			errContains: "app.name",
		},
		{
			name:        "bad mode",
			modifyFunc:  func(c *Config) { c.App.Mode = "staging" },
			expectErr:   true,
			errContains: "app.mode",
		},
		{
			name:        "bad database port",
			modifyFunc:  func(c *Config) { c.Database.Port = 0 },
			expectErr:   true,
			errContains: "database.port",
		},
		{
			name: "redis enabled without addr",
			modifyFunc: func(c *Config) {
				c.Redis.Enabled = true
				c.Redis.Addr = ""
				c.Redis.CacheTTL = time.Minute
			},
			expectErr:   true,
			errContains: "redis.addr",
		},
		{
			name: "production requires model dir",
			modifyFunc: func(c *Config) {
				c.App.Mode = "production"
				c.Model.Dir = ""
			},
			expectErr:   true,
			errContains: "model.dir",
		},
		{
			name: "production rejects default jwt secret",
			modifyFunc: func(c *Config) {
				c.App.Mode = "production"
				c.Model.Dir = "/var/lib/agriprofit/models"
				c.API.JWTSecret = "change-me-in-production"
			},
			expectErr:   true,
			errContains: "jwt_secret",
		},
		{
			name:        "zero crop factor",
			modifyFunc:  func(c *Config) { c.Predictor.DefaultCropFactor = 0 },
			expectErr:   true,
			errContains: "default_crop_factor",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := validConfig()
			tt.modifyFunc(cfg)

			err := cfg.Validate()
			if tt.expectErr {
				require.Error(t, err)
				assert.Contains(t, err.Error(), tt.errContains)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}

func TestLoad_Defaults(t *testing.T) {
	cfg, err := Load("")
	require.NoError(t, err)

	assert.Equal(t, "agriprofit", cfg.App.Name)
	assert.Equal(t, 8080, cfg.API.Port)
	assert.Equal(t, 2, cfg.Predictor.FailureSignalsRequired)
	assert.Equal(t, 24*time.Hour, cfg.API.JWTDuration)
}

func TestLoad_FromFile(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "config.yaml")
	content := []byte(`
app:
  name: custom-name
  mode: test
api:
  port: 9999
redis:
  enabled: true
  addr: redis:6379
`)
	require.NoError(t, os.WriteFile(path, content, 0o644))

	cfg, err := Load(path)
	require.NoError(t, err)

	assert.Equal(t, "custom-name", cfg.App.Name)
	assert.Equal(t, "test", cfg.App.Mode)
	assert.Equal(t, 9999, cfg.API.Port)
	assert.True(t, cfg.Redis.Enabled)
	assert.Equal(t, "redis:6379", cfg.Redis.Addr)
	// Defaults still apply for unset keys.
	assert.Equal(t, "info", cfg.App.LogLevel)
}
