package config

import (
	"fmt"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"
)

type Config struct {
	Listen            string          `yaml:"listen"`
	Spec              SpecConfig      `yaml:"spec"`
	Metastore         MetastoreConfig `yaml:"metastore"`
	ProtectedDatasets []string        `yaml:"protected_datasets"`
	LogLevel          string          `yaml:"log_level"`
}

// SpecConfig points at the catalog's shared OpenAPI document.
// Exactly one of Path or URL should be set; Path wins when both are.
type SpecConfig struct {
	Path     string `yaml:"path"`
	URL      string `yaml:"url"`
	CacheDir string `yaml:"cache_dir"`
}

type MetastoreConfig struct {
	URL        string `yaml:"url"`
	APIKey     string `yaml:"api_key"`
	AuthMethod string `yaml:"auth_method"` // "header", "query", "basic"
	AuthHeader string `yaml:"auth_header"` // custom header name, defaults to X-Api-Key
}

func DefaultConfigPath() string {
	home, _ := os.UserHomeDir()
	return filepath.Join(home, ".config", "dkan2", "config.yaml")
}

func Load(path string) (*Config, error) {
	if path == "" {
		path = DefaultConfigPath()
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading config %s: %w", path, err)
	}

	cfg := &Config{}
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("parsing config %s: %w", path, err)
	}

	cfg.ApplyDefaults()

	if cfg.Spec.Path == "" && cfg.Spec.URL == "" {
		return nil, fmt.Errorf("config %s: spec.path or spec.url is required", path)
	}
	if cfg.Metastore.URL == "" {
		return nil, fmt.Errorf("config %s: metastore.url is required", path)
	}

	return cfg, nil
}

// ApplyDefaults fills in zero-valued fields from the defaults table.
func (cfg *Config) ApplyDefaults() {
	if cfg.Listen == "" {
		cfg.Listen = DefaultListen
	}
	if cfg.LogLevel == "" {
		cfg.LogLevel = DefaultLogLevel
	}
	if cfg.Spec.CacheDir == "" {
		cfg.Spec.CacheDir = DefaultCacheDir()
	}
	if cfg.Metastore.AuthMethod == "" {
		cfg.Metastore.AuthMethod = DefaultAuthMethod
	}
	if cfg.Metastore.AuthHeader == "" && cfg.Metastore.AuthMethod == "header" {
		cfg.Metastore.AuthHeader = DefaultAuthHeader
	}
}
