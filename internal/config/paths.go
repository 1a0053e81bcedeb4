package config

import (
	"fmt"
	"os"
	"path/filepath"
)

// Environment variables read by the config layer.
const (
	EnvHome         = "ESGSYNC_HOME"
	EnvProjectDir   = "ESGSYNC_PROJECT_DIR"
	EnvAPIURL       = "ESGSYNC_API_URL"
	EnvAPIToken     = "ESGSYNC_API_TOKEN"
	EnvCompanyID    = "ESGSYNC_COMPANY_ID"
	EnvLogLevel     = "ESGSYNC_LOG_LEVEL"
	EnvLogFormat    = "ESGSYNC_LOG_FORMAT"
	EnvDraftBackend = "ESGSYNC_DRAFT_BACKEND"
	EnvRedisURL     = "ESGSYNC_REDIS_URL"
)

// configFileName is the config file inside the config and project directories.
const configFileName = "config.yaml"

// GetConfigDir returns $ESGSYNC_HOME or ~/.esgsync.
func GetConfigDir() (string, error) {
	if home := os.Getenv(EnvHome); home != "" {
		return home, nil
	}
	homeDir, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("failed to get user home directory: %w", err)
	}
	return filepath.Join(homeDir, ".esgsync"), nil
}

// DefaultPath returns the path of the global config file.
func DefaultPath() (string, error) {
	dir, err := GetConfigDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(dir, configFileName), nil
}

// EnsureConfigDir creates the config directory.
func EnsureConfigDir() error {
	dir, err := GetConfigDir()
	if err != nil {
		return err
	}
	return os.MkdirAll(dir, 0o700)
}

// EnsureLogDir creates the parent directory of the configured log file.
func (c *Config) EnsureLogDir() error {
	if c.Logging.File == "" {
		return nil
	}
	logDir := filepath.Dir(c.Logging.File)
	if err := os.MkdirAll(logDir, 0o700); err != nil {
		return fmt.Errorf("failed to create log directory %q: %w", logDir, err)
	}
	return nil
}
