package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"
)

// ErrConfigNotFound is returned by Load when an explicitly named file is missing.
var ErrConfigNotFound = errors.New("config file not found")

// Load reads path on top of the defaults and applies environment overrides.
// An empty path means the global config file, which may be absent.
func Load(path string) (*Config, error) {
	cfg := New()

	explicit := path != ""
	if !explicit {
		p, err := DefaultPath()
		if err != nil {
			return nil, err
		}
		path = p
	}

	data, err := os.ReadFile(path)
	switch {
	case err == nil:
		if err := yaml.Unmarshal(data, cfg); err != nil {
			return nil, fmt.Errorf("parsing config %s: %w", path, err)
		}
	case os.IsNotExist(err) && !explicit:
	case os.IsNotExist(err):
		return nil, fmt.Errorf("%w: %s", ErrConfigNotFound, path)
	default:
		return nil, fmt.Errorf("reading config %s: %w", path, err)
	}

	ApplyEnv(cfg)
	return cfg, nil
}

// ApplyEnv overrides fields from ESGSYNC_* environment variables.
func ApplyEnv(cfg *Config) {
	set := func(dst *string, key string) {
		if v := os.Getenv(key); v != "" {
			*dst = v
		}
	}
	set(&cfg.API.BaseURL, EnvAPIURL)
	set(&cfg.API.Token, EnvAPIToken)
	set(&cfg.Company.ID, EnvCompanyID)
	set(&cfg.Logging.Level, EnvLogLevel)
	set(&cfg.Logging.Format, EnvLogFormat)
	set(&cfg.Draft.Backend, EnvDraftBackend)
	set(&cfg.Draft.RedisURL, EnvRedisURL)
}

// Save writes cfg as YAML, creating parent directories. The file holds the
// API token so it is written owner-only.
func (c *Config) Save(path string) error {
	if err := os.MkdirAll(filepath.Dir(path), 0o700); err != nil {
		return fmt.Errorf("creating config directory: %w", err)
	}
	data, err := yaml.Marshal(c)
	if err != nil {
		return fmt.Errorf("encoding config: %w", err)
	}
	if err := os.WriteFile(path, data, 0o600); err != nil {
		return fmt.Errorf("writing config %s: %w", path, err)
	}
	return nil
}
