package config

import (
	"fmt"
	"os"

	"github.com/kelseyhightower/envconfig"
	"gopkg.in/yaml.v3"
)

// FileName is the config file at the books root.
const FileName = "bookline.yaml"

// Config represents the top-level bookline.yaml configuration.
type Config struct {
	Business BusinessConfig `yaml:"business"`
	Fiscal   FiscalConfig   `yaml:"fiscal"`
	Git      GitConfig      `yaml:"git"`
	Server   ServerConfig   `yaml:"server"`
}

// BusinessConfig identifies the company the books belong to.
type BusinessConfig struct {
	Name       string `yaml:"name" envconfig:"BUSINESS_NAME"`
	EntityType string `yaml:"entity_type"`
	CompanyID  string `yaml:"company_id"`
}

// FiscalConfig defines the fiscal year boundaries.
type FiscalConfig struct {
	YearStart string `yaml:"year_start"` // "MM-DD" format, e.g. "01-01"
}

// GitConfig controls auto-commit of the books directory.
type GitConfig struct {
	AutoCommit  bool   `yaml:"auto_commit"`
	AuthorName  string `yaml:"author_name"`
	AuthorEmail string `yaml:"author_email"`
}

// ServerConfig controls the local dashboard API.
type ServerConfig struct {
	Port           int      `yaml:"port" envconfig:"PORT"`
	AllowedOrigins []string `yaml:"allowed_origins" envconfig:"ALLOWED_ORIGINS"`
}

// Load reads a bookline.yaml file, then applies BOOKLINE_* environment
// overrides on top of the file values.
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading config: %w", err)
	}
	var cfg Config
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("parsing config: %w", err)
	}
	if err := envconfig.Process("bookline", &cfg); err != nil {
		return nil, fmt.Errorf("applying env overrides: %w", err)
	}
	return &cfg, nil
}

// Save writes a Config to a YAML file.
func Save(path string, cfg *Config) error {
	data, err := yaml.Marshal(cfg)
	if err != nil {
		return fmt.Errorf("marshaling config: %w", err)
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("writing config: %w", err)
	}
	return nil
}

// Default returns a Config with sensible defaults for a new books directory.
func Default(businessName, entityType, companyID string) *Config {
	return &Config{
		Business: BusinessConfig{
			Name:       businessName,
			EntityType: entityType,
			CompanyID:  companyID,
		},
		Fiscal: FiscalConfig{
			YearStart: "01-01",
		},
		Git: GitConfig{
			AutoCommit:  true,
			AuthorName:  "Bookline",
			AuthorEmail: "books@bookline.dev",
		},
		Server: ServerConfig{
			Port:           8080,
			AllowedOrigins: []string{"http://localhost:5173"},
		},
	}
}
