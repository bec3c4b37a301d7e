package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoad_Defaults(t *testing.T) {
	t.Setenv("JWT_SECRET", "dev-secret")

	cfg, err := Load("")
	require.NoError(t, err)

	assert.Equal(t, "medtimeline-api", cfg.App.Name)
	assert.Equal(t, "0.0.0.0:8080", cfg.Server.Address())
	assert.Equal(t, 5*time.Second, cfg.Store.FetchTimeout)
	assert.Equal(t, uint32(5), cfg.Store.BreakerFailures)
	assert.Equal(t, "medium", cfg.Timeline.RecordImportance)
	assert.Equal(t, 6, cfg.Timeline.TrendWindow)
	assert.Equal(t, []string{"GET", "POST", "OPTIONS"}, cfg.CORS.AllowedMethods)
	assert.Empty(t, cfg.Analysis.Endpoint)
}

func TestLoad_EnvOverrides(t *testing.T) {
	t.Setenv("JWT_SECRET", "dev-secret")
	t.Setenv("SERVER_PORT", "9090")
	t.Setenv("TIMELINE_RECORD_IMPORTANCE", "low")
	t.Setenv("TIMELINE_TREND_WINDOW", "12")
	t.Setenv("CORS_ALLOWED_ORIGINS", "https://a.example, https://b.example")

	cfg, err := Load("")
	require.NoError(t, err)

	assert.Equal(t, 9090, cfg.Server.Port)
	assert.Equal(t, "low", cfg.Timeline.RecordImportance)
	assert.Equal(t, 12, cfg.Timeline.TrendWindow)
	assert.Equal(t, []string{"https://a.example", "https://b.example"}, cfg.CORS.AllowedOrigins)
}

func TestLoad_ConfigFile(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "medtimeline.yaml")
	content := "JWT_SECRET: file-secret\nANALYSIS_ENDPOINT: http://analysis.local/v1/summarize\n"
	require.NoError(t, os.WriteFile(path, []byte(content), 0o600))

	cfg, err := Load(path)
	require.NoError(t, err)

	assert.Equal(t, "file-secret", cfg.JWT.Secret)
	assert.Equal(t, "http://analysis.local/v1/summarize", cfg.Analysis.Endpoint)
}

func TestLoad_MissingConfigFile(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "nope.yaml"))
	assert.Error(t, err)
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(c *Config)
		wantErr string
	}{
		{
			name:    "missing jwt secret",
			mutate:  func(c *Config) { c.JWT.Secret = "" },
			wantErr: "JWT_SECRET is required",
		},
		{
			name: "short secret in production",
			mutate: func(c *Config) {
				c.App.Environment = "production"
				c.Database.Password = "pw"
			},
			wantErr: "at least 32 characters",
		},
		{
			name:    "unknown record importance",
			mutate:  func(c *Config) { c.Timeline.RecordImportance = "critical" },
			wantErr: "TIMELINE_RECORD_IMPORTANCE",
		},
		{
			name:    "zero trend window",
			mutate:  func(c *Config) { c.Timeline.TrendWindow = 0 },
			wantErr: "TIMELINE_TREND_WINDOW",
		},
		{
			name: "sslmode disabled in production",
			mutate: func(c *Config) {
				c.App.Environment = "production"
				c.JWT.Secret = "0123456789abcdef0123456789abcdef"
				c.Database.Password = "pw"
				c.Database.SSLMode = "disable"
			},
			wantErr: "DB_SSLMODE=disable",
		},
		{
			name:   "valid",
			mutate: func(c *Config) {},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := validConfig()
			tt.mutate(cfg)
			err := validate(cfg)
			if tt.wantErr == "" {
				assert.NoError(t, err)
				return
			}
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.wantErr)
		})
	}
}

func validConfig() *Config {
	return &Config{
		App:      AppConfig{Environment: "development"},
		Database: DatabaseConfig{SSLMode: "require"},
		JWT:      JWTConfig{Secret: "dev-secret"},
		Store:    StoreConfig{FetchTimeout: time.Second},
		Timeline: TimelineConfig{RecordImportance: "medium", TrendWindow: 6},
	}
}
