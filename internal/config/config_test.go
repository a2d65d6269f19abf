package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func clearEnv(t *testing.T) {
	t.Helper()
	for _, key := range []string{"PORT", "ENV", "MATCH_API_BASE_URL", "MATCH_API_TIMEOUT", "MAX_FILE_SIZE", "STRICT_PDF_CHECK"} {
		t.Setenv(key, "")
	}
}

func TestLoadDefaults(t *testing.T) {
	clearEnv(t)

	cfg := Load()

	assert.Equal(t, "3000", cfg.Server.Port)
	assert.Equal(t, "development", cfg.Server.Env)
	assert.Equal(t, "http://localhost:8000", cfg.Match.BaseURL)
	assert.Equal(t, 30*time.Second, cfg.Match.Timeout)
	assert.Equal(t, int64(5242880), cfg.Upload.MaxFileSize)
	assert.False(t, cfg.Upload.StrictPDFCheck)
}

func TestLoadFromEnvironment(t *testing.T) {
	clearEnv(t)
	t.Setenv("PORT", "8080")
	t.Setenv("ENV", "production")
	t.Setenv("MATCH_API_BASE_URL", "https://match.internal.example.com")
	t.Setenv("MATCH_API_TIMEOUT", "5s")
	t.Setenv("MAX_FILE_SIZE", "1048576")
	t.Setenv("STRICT_PDF_CHECK", "true")

	cfg := Load()

	assert.Equal(t, "8080", cfg.Server.Port)
	assert.Equal(t, "production", cfg.Server.Env)
	assert.Equal(t, "https://match.internal.example.com", cfg.Match.BaseURL)
	assert.Equal(t, 5*time.Second, cfg.Match.Timeout)
	assert.Equal(t, int64(1048576), cfg.Upload.MaxFileSize)
	assert.True(t, cfg.Upload.StrictPDFCheck)
}

func TestLoadFallsBackOnUnparseableValues(t *testing.T) {
	clearEnv(t)
	t.Setenv("MATCH_API_TIMEOUT", "soon")
	t.Setenv("MAX_FILE_SIZE", "five megabytes")
	t.Setenv("STRICT_PDF_CHECK", "definitely")

	cfg := Load()

	assert.Equal(t, 30*time.Second, cfg.Match.Timeout)
	assert.Equal(t, int64(5242880), cfg.Upload.MaxFileSize)
	assert.False(t, cfg.Upload.StrictPDFCheck)
}

func TestValidate(t *testing.T) {
	valid := func() *Config {
		return &Config{
			Server: ServerConfig{Port: "3000", Env: "development"},
			Match:  MatchConfig{BaseURL: "http://localhost:8000", Timeout: 30 * time.Second},
			Upload: UploadConfig{MaxFileSize: 5242880},
		}
	}

	tests := []struct {
		name    string
		mutate  func(*Config)
		wantErr bool
	}{
		{name: "defaults pass", mutate: func(*Config) {}},
		{name: "https base URL passes", mutate: func(c *Config) { c.Match.BaseURL = "https://match.example.com" }},
		{name: "relative base URL fails", mutate: func(c *Config) { c.Match.BaseURL = "/api" }, wantErr: true},
		{name: "unsupported scheme fails", mutate: func(c *Config) { c.Match.BaseURL = "ftp://files.example.com" }, wantErr: true},
		{name: "unparseable base URL fails", mutate: func(c *Config) { c.Match.BaseURL = "://" }, wantErr: true},
		{name: "zero file ceiling fails", mutate: func(c *Config) { c.Upload.MaxFileSize = 0 }, wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := valid()
			tt.mutate(cfg)

			err := cfg.Validate()
			if tt.wantErr {
				assert.Error(t, err)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}
