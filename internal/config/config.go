package config

import (
	"fmt"
	"log"
	"net/url"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

type Config struct {
	Server ServerConfig
	Match  MatchConfig
	Upload UploadConfig
}

type ServerConfig struct {
	Port string
	Env  string
}

type MatchConfig struct {
	// BaseURL is the origin of the external scoring service. The request
	// path is fixed; only the origin is deployment-specific.
	BaseURL string
	Timeout time.Duration
}

type UploadConfig struct {
	MaxFileSize    int64
	StrictPDFCheck bool
}

func Load() *Config {
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found. Using default values.")
	}

	return &Config{
		Server: ServerConfig{
			Port: getEnv("PORT", "3000"),
			Env:  getEnv("ENV", "development"),
		},
		Match: MatchConfig{
			BaseURL: getEnv("MATCH_API_BASE_URL", "http://localhost:8000"),
			Timeout: getEnvAsDuration("MATCH_API_TIMEOUT", "30s"),
		},
		Upload: UploadConfig{
			MaxFileSize:    getEnvAsInt64("MAX_FILE_SIZE", 5242880),
			StrictPDFCheck: getEnvAsBool("STRICT_PDF_CHECK", false),
		},
	}
}

// Validate rejects configurations that cannot produce a working client.
func (c *Config) Validate() error {
	u, err := url.Parse(c.Match.BaseURL)
	if err != nil || u.Scheme == "" || u.Host == "" {
		return fmt.Errorf("invalid MATCH_API_BASE_URL %q: must be an absolute http(s) URL", c.Match.BaseURL)
	}
	if u.Scheme != "http" && u.Scheme != "https" {
		return fmt.Errorf("invalid MATCH_API_BASE_URL scheme %q", u.Scheme)
	}
	if c.Upload.MaxFileSize <= 0 {
		return fmt.Errorf("MAX_FILE_SIZE must be positive, got %d", c.Upload.MaxFileSize)
	}
	return nil
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvAsInt64(key string, defaultValue int64) int64 {
	valueStr := getEnv(key, "")
	if value, err := strconv.ParseInt(valueStr, 10, 64); err == nil {
		return value
	}
	return defaultValue
}

func getEnvAsBool(key string, defaultValue bool) bool {
	valueStr := getEnv(key, "")
	if value, err := strconv.ParseBool(strings.TrimSpace(valueStr)); err == nil {
		return value
	}
	return defaultValue
}

func getEnvAsDuration(key string, defaultValue string) time.Duration {
	valueStr := getEnv(key, defaultValue)
	if duration, err := time.ParseDuration(valueStr); err == nil {
		return duration
	}
	duration, _ := time.ParseDuration(defaultValue)
	return duration
}
