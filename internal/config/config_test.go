package config_test

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/rshade/esgsync/internal/config"
	"github.com/rshade/esgsync/internal/draft"
	"github.com/rshade/esgsync/internal/logging"
)

func TestNew_Defaults(t *testing.T) {
	t.Setenv(config.EnvHome, "/tmp/esg-home")
	cfg := config.New()

	assert.Equal(t, draft.BackendFile, cfg.Draft.Backend)
	assert.Equal(t, draft.DefaultKey, cfg.Draft.Key)
	assert.Equal(t, filepath.Join("/tmp/esg-home", "drafts"), cfg.Draft.Dir)
	assert.Equal(t, 100, cfg.API.BulkBatchSize)
	assert.Equal(t, config.FormatTable, cfg.Output.DefaultFormat)
	require.NoError(t, cfg.Validate())
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(*config.Config)
		wantErr error
	}{
		{"bad url", func(c *config.Config) { c.API.BaseURL = "localhost:8080" }, config.ErrInvalidAPIURL},
		{"bad company", func(c *config.Config) { c.Company.ID = "acme" }, config.ErrInvalidCompanyID},
		{"batch zero", func(c *config.Config) { c.API.BulkBatchSize = 0 }, config.ErrInvalidBatchSize},
		{"negative timeout", func(c *config.Config) { c.API.TimeoutSeconds = -1 }, config.ErrInvalidTimeout},
		{"unknown backend", func(c *config.Config) { c.Draft.Backend = "s3" }, config.ErrInvalidDraftBackend},
		{"bad level", func(c *config.Config) { c.Logging.Level = "loud" }, config.ErrInvalidLogLevel},
		{"bad format", func(c *config.Config) { c.Output.DefaultFormat = "xml" }, config.ErrInvalidFormat},
		{"valid full", func(c *config.Config) {
			c.API.BaseURL = "https://api.example.com/v1"
			c.Company.ID = "0b6c2c3e-8a55-4d1c-9a53-1f4c3b1a9e10"
		}, nil},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := config.New()
			tt.mutate(cfg)
			err := cfg.Validate()
			if tt.wantErr == nil {
				assert.NoError(t, err)
				return
			}
			assert.ErrorIs(t, err, tt.wantErr)
		})
	}
}

func TestLoad(t *testing.T) {
	home := t.TempDir()
	t.Setenv(config.EnvHome, home)
	t.Setenv(config.EnvAPIToken, "from-env")

	// no global file: defaults plus env
	cfg, err := config.Load("")
	require.NoError(t, err)
	assert.Equal(t, "from-env", cfg.API.Token)

	path := filepath.Join(home, "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte(`
api:
  base_url: https://api.example.com
company:
  year: 2024
`), 0o600))

	cfg, err = config.Load("")
	require.NoError(t, err)
	assert.Equal(t, "https://api.example.com", cfg.API.BaseURL)
	assert.Equal(t, 2024, cfg.Company.Year)
	// untouched fields keep their defaults
	assert.Equal(t, 100, cfg.API.BulkBatchSize)
	assert.Equal(t, "from-env", cfg.API.Token)

	_, err = config.Load(filepath.Join(home, "missing.yaml"))
	assert.ErrorIs(t, err, config.ErrConfigNotFound)
}

func TestSaveThenLoad(t *testing.T) {
	t.Setenv(config.EnvHome, t.TempDir())
	path := filepath.Join(t.TempDir(), "nested", "config.yaml")

	cfg := config.New()
	cfg.Company.ID = "0b6c2c3e-8a55-4d1c-9a53-1f4c3b1a9e10"
	require.NoError(t, cfg.Save(path))

	info, err := os.Stat(path)
	require.NoError(t, err)
	assert.Equal(t, os.FileMode(0o600), info.Mode().Perm())

	loaded, err := config.Load(path)
	require.NoError(t, err)
	assert.Equal(t, cfg.Company.ID, loaded.Company.ID)
}

func TestToLoggingConfig(t *testing.T) {
	lc := config.LoggingConfig{Level: "debug", Format: "json"}
	assert.Equal(t, logging.OutputStderr, lc.ToLoggingConfig().Output)

	lc.File = "/tmp/esgsync.log"
	got := lc.ToLoggingConfig()
	assert.Equal(t, logging.OutputFile, got.Output)
	assert.Equal(t, "/tmp/esgsync.log", got.File)
}

func TestClientConversions(t *testing.T) {
	cfg := config.New()
	cfg.API.TimeoutSeconds = 5
	cfg.Draft.RedisTTLSeconds = 60

	assert.Equal(t, "5s", cfg.APIClientConfig().Timeout.String())
	assert.Equal(t, "1m0s", cfg.DraftStoreConfig().RedisTTL.String())
	assert.Equal(t, cfg.Draft.Key, cfg.DraftStoreConfig().StorageKey())
}
