// Package config loads the application configuration file. Everything has a
// sensible default so the tool runs with no config file at all.
package config

import (
	"os"
	"path/filepath"
)

// Config is the top-level application configuration.
type Config struct {
	// StorePath is the SQLite database location.
	StorePath string `yaml:"store_path" validate:"required"`

	// LogLevel controls log verbosity.
	LogLevel string `yaml:"log_level" validate:"omitempty,oneof=trace debug info warn error"`

	// HumanLogs switches structured JSON logs to a console format.
	HumanLogs bool `yaml:"human_logs"`

	// Tier is the subscription tier template gating checks against.
	Tier string `yaml:"tier" validate:"omitempty,oneof=free pro premium"`

	ContentService ServiceConfig  `yaml:"content_service"`
	ExportService  ServiceConfig  `yaml:"export_service"`
	Preview        PreviewConfig  `yaml:"preview"`
	TemplatePacks  []TemplatePack `yaml:"template_packs" validate:"dive"`
}

// ServiceConfig points at an external collaborator service.
type ServiceConfig struct {
	URL    string `yaml:"url" validate:"omitempty,url"`
	APIKey string `yaml:"api_key"`
}

// PreviewConfig configures the browser preview server.
type PreviewConfig struct {
	Addr string `yaml:"addr"`
}

// TemplatePack is a git repository of template definitions.
type TemplatePack struct {
	URL    string `yaml:"url" validate:"required"`
	Branch string `yaml:"branch"`
}

// Default returns the configuration used when no file is present.
func Default() Config {
	home, err := os.UserHomeDir()
	if err != nil {
		home = "."
	}
	return Config{
		StorePath: filepath.Join(home, ".deckforge", "deckforge.db"),
		LogLevel:  "info",
		Tier:      "free",
		Preview:   PreviewConfig{Addr: "127.0.0.1:8422"},
	}
}

// PackDir is where pulled template packs are checked out.
func (c Config) PackDir() string {
	return filepath.Join(filepath.Dir(c.StorePath), "packs")
}
