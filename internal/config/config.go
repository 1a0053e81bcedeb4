// Package config loads esgsync settings from YAML, layers a project-local
// overlay and environment variables on top, and validates the result.
package config

import (
	"errors"
	"fmt"
	"net/url"
	"path/filepath"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/rshade/esgsync/internal/api"
	"github.com/rshade/esgsync/internal/batch"
	"github.com/rshade/esgsync/internal/draft"
	"github.com/rshade/esgsync/internal/logging"
)

// Validation errors.
var (
	ErrInvalidAPIURL       = errors.New("api.base_url must be an absolute http(s) url")
	ErrInvalidCompanyID    = errors.New("company.id must be a UUID")
	ErrInvalidBatchSize    = errors.New("api.bulk_batch_size must be between 1 and 1000")
	ErrInvalidTimeout      = errors.New("timeouts must not be negative")
	ErrInvalidDraftBackend = errors.New("draft.backend must be one of file, sqlite, redis, memory")
	ErrInvalidLogLevel     = errors.New("logging.level must be trace, debug, info, warn or error")
	ErrInvalidFormat       = errors.New("output.default_format must be table or json")
)

// Output formats.
const (
	FormatTable = "table"
	FormatJSON  = "json"
)

// Config is the full esgsync configuration.
type Config struct {
	API     APIConfig     `yaml:"api" json:"api"`
	Company CompanyConfig `yaml:"company" json:"company"`
	Draft   DraftConfig   `yaml:"draft" json:"draft"`
	Logging LoggingConfig `yaml:"logging" json:"logging"`
	Output  OutputConfig  `yaml:"output" json:"output"`
	Server  ServerConfig  `yaml:"server" json:"server"`
	Bridge  BridgeConfig  `yaml:"bridge" json:"bridge"`
}

// APIConfig configures the disclosure backend client.
type APIConfig struct {
	BaseURL        string  `yaml:"base_url" json:"base_url"`
	Token          string  `yaml:"token,omitempty" json:"-"`
	TimeoutSeconds int     `yaml:"timeout_seconds" json:"timeout_seconds"`
	RatePerSecond  float64 `yaml:"rate_per_second" json:"rate_per_second"`
	Burst          int     `yaml:"burst" json:"burst"`
	BulkBatchSize  int     `yaml:"bulk_batch_size" json:"bulk_batch_size"`
}

// CompanyConfig names the company the CLI acts for.
type CompanyConfig struct {
	ID   string `yaml:"id" json:"id"`
	Year int    `yaml:"year" json:"year"`
}

// DraftConfig selects the draft mirror backend.
type DraftConfig struct {
	Backend         string `yaml:"backend" json:"backend"`
	Key             string `yaml:"key" json:"key"`
	Dir             string `yaml:"dir" json:"dir"`
	SQLitePath      string `yaml:"sqlite_path" json:"sqlite_path"`
	RedisURL        string `yaml:"redis_url" json:"-"`
	RedisTTLSeconds int    `yaml:"redis_ttl_seconds" json:"redis_ttl_seconds"`
}

// LoggingConfig configures the zerolog logger.
type LoggingConfig struct {
	Level  string `yaml:"level" json:"level"`
	Format string `yaml:"format" json:"format"`
	File   string `yaml:"file" json:"file"`
}

// OutputConfig controls CLI rendering.
type OutputConfig struct {
	DefaultFormat string `yaml:"default_format" json:"default_format"`
	Precision     int    `yaml:"precision" json:"precision"`
}

// ServerConfig configures the preview HTTP API.
type ServerConfig struct {
	Addr                     string `yaml:"addr" json:"addr"`
	ReadHeaderTimeoutSeconds int    `yaml:"read_header_timeout_seconds" json:"read_header_timeout_seconds"`
	ShutdownTimeoutSeconds   int    `yaml:"shutdown_timeout_seconds" json:"shutdown_timeout_seconds"`
}

// BridgeConfig points at the investor directory.
type BridgeConfig struct {
	DirectoryPath string `yaml:"directory_path" json:"directory_path"`
}

// New returns a Config populated with defaults rooted at the config directory.
func New() *Config {
	dir, err := GetConfigDir()
	if err != nil {
		dir = ".esgsync"
	}
	return &Config{
		API: APIConfig{
			TimeoutSeconds: int(api.DefaultTimeout / time.Second),
			RatePerSecond:  api.DefaultRatePerSecond,
			Burst:          api.DefaultBurst,
			BulkBatchSize:  batch.DefaultSize,
		},
		Draft: DraftConfig{
			Backend:    draft.BackendFile,
			Key:        draft.DefaultKey,
			Dir:        filepath.Join(dir, "drafts"),
			SQLitePath: filepath.Join(dir, "drafts.db"),
		},
		Logging: LoggingConfig{
			Level:  "info",
			Format: logging.FormatConsole,
		},
		Output: OutputConfig{
			DefaultFormat: FormatTable,
			Precision:     2,
		},
		Server: ServerConfig{
			Addr:                     ":8080",
			ReadHeaderTimeoutSeconds: 10,
			ShutdownTimeoutSeconds:   15,
		},
		Bridge: BridgeConfig{
			DirectoryPath: filepath.Join(dir, "investors.yaml"),
		},
	}
}

// Validate checks the configuration. Company id and API url may be blank
// because commands that never call the backend do not need them.
func (c *Config) Validate() error {
	if c.API.BaseURL != "" {
		u, err := url.Parse(c.API.BaseURL)
		if err != nil || (u.Scheme != "http" && u.Scheme != "https") || u.Host == "" {
			return fmt.Errorf("%w: %q", ErrInvalidAPIURL, c.API.BaseURL)
		}
	}
	if c.Company.ID != "" {
		if _, err := uuid.Parse(c.Company.ID); err != nil {
			return fmt.Errorf("%w: %q", ErrInvalidCompanyID, c.Company.ID)
		}
	}
	if c.API.BulkBatchSize < batch.MinSize || c.API.BulkBatchSize > batch.MaxSize {
		return fmt.Errorf("%w: got %d", ErrInvalidBatchSize, c.API.BulkBatchSize)
	}
	if c.API.TimeoutSeconds < 0 || c.Server.ReadHeaderTimeoutSeconds < 0 ||
		c.Server.ShutdownTimeoutSeconds < 0 || c.Draft.RedisTTLSeconds < 0 {
		return ErrInvalidTimeout
	}
	switch strings.ToLower(c.Draft.Backend) {
	case draft.BackendFile, draft.BackendSQLite, draft.BackendRedis, draft.BackendMemory:
	default:
		return fmt.Errorf("%w: got %q", ErrInvalidDraftBackend, c.Draft.Backend)
	}
	switch strings.ToLower(c.Logging.Level) {
	case "trace", "debug", "info", "warn", "error":
	default:
		return fmt.Errorf("%w: got %q", ErrInvalidLogLevel, c.Logging.Level)
	}
	switch c.Output.DefaultFormat {
	case FormatTable, FormatJSON:
	default:
		return fmt.Errorf("%w: got %q", ErrInvalidFormat, c.Output.DefaultFormat)
	}
	return nil
}

// APIClientConfig converts the api section for api.New.
func (c *Config) APIClientConfig() api.Config {
	return api.Config{
		BaseURL:       c.API.BaseURL,
		Token:         c.API.Token,
		Timeout:       time.Duration(c.API.TimeoutSeconds) * time.Second,
		RatePerSecond: c.API.RatePerSecond,
		Burst:         c.API.Burst,
		BulkBatchSize: c.API.BulkBatchSize,
	}
}

// DraftStoreConfig converts the draft section for draft.Open.
func (c *Config) DraftStoreConfig() draft.Config {
	return draft.Config{
		Backend:    c.Draft.Backend,
		Key:        c.Draft.Key,
		Dir:        c.Draft.Dir,
		SQLitePath: c.Draft.SQLitePath,
		RedisURL:   c.Draft.RedisURL,
		RedisTTL:   time.Duration(c.Draft.RedisTTLSeconds) * time.Second,
	}
}
