package commands

import (
	"fmt"

	"resumatch/internal/config"
	"resumatch/internal/services"
)

func loadConfig() (*config.Config, error) {
	cfg := config.Load()
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}
	return cfg, nil
}

// newSession wires the full client lifecycle from one configuration. The
// validator is returned alongside so commands can inspect accepted files.
func newSession(cfg *config.Config) (services.MatchSession, services.UploadValidator) {
	validator := services.NewUploadValidator(cfg.Upload.MaxFileSize, cfg.Upload.StrictPDFCheck)
	cleaner := services.NewJobDescriptionCleaner()
	client := services.NewMatchClient(cfg.Match.BaseURL, cfg.Match.Timeout)
	return services.NewMatchSession(validator, cleaner, client), validator
}
