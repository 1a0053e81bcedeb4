package config_test

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/rshade/esgsync/internal/config"
)

// writeOverlay writes YAML content to a temp file and returns its path.
func writeOverlay(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "overlay.yaml")
	require.NoError(t, os.WriteFile(path, []byte(content), 0o600))
	return path
}

func TestShallowMergeYAML_ReplacesWholeSection(t *testing.T) {
	target := config.New()
	target.API.BaseURL = "https://global.example.com"

	err := config.ShallowMergeYAML(target, writeOverlay(t, `
api:
  bulk_batch_size: 25
`))
	require.NoError(t, err)

	assert.Equal(t, 25, target.API.BulkBatchSize)
	// sections are replaced, not deep-merged
	assert.Empty(t, target.API.BaseURL)
	// other sections are untouched
	assert.Equal(t, config.FormatTable, target.Output.DefaultFormat)
}

func TestShallowMergeYAML_IgnoresUnknownAndEmpty(t *testing.T) {
	target := config.New()
	before := *target

	require.NoError(t, config.ShallowMergeYAML(target, writeOverlay(t, "plugins:\n  x: 1\n")))
	require.NoError(t, config.ShallowMergeYAML(target, writeOverlay(t, "# only a comment\n")))
	assert.Equal(t, before, *target)
}

func TestShallowMergeYAML_Errors(t *testing.T) {
	assert.Error(t, config.ShallowMergeYAML(nil, "x"))
	assert.Error(t, config.ShallowMergeYAML(config.New(), filepath.Join(t.TempDir(), "missing.yaml")))
	assert.Error(t, config.ShallowMergeYAML(config.New(), writeOverlay(t, "api: [unclosed")))
}

func TestResolveProjectDir(t *testing.T) {
	t.Setenv(config.EnvHome, t.TempDir())
	t.Setenv(config.EnvProjectDir, "")
	ctx := context.Background()

	root := t.TempDir()
	require.NoError(t, os.MkdirAll(filepath.Join(root, ".esgsync"), 0o750))
	nested := filepath.Join(root, "reports", "2024")
	require.NoError(t, os.MkdirAll(nested, 0o750))

	assert.Equal(t, filepath.Join(root, ".esgsync"), config.ResolveProjectDir(ctx, "", nested))
	assert.Equal(t, filepath.Join(nested, ".esgsync"), config.ResolveProjectDir(ctx, nested, root))
	assert.Equal(t, filepath.Join(root, ".esgsync"), config.ResolveProjectDir(ctx, filepath.Join(root, ".esgsync"), ""))
	assert.Empty(t, config.ResolveProjectDir(ctx, "", t.TempDir()))
}

func TestWithProjectDir(t *testing.T) {
	ctx := context.Background()
	base := config.New()

	assert.Same(t, base, config.WithProjectDir(ctx, base, ""))
	assert.Same(t, base, config.WithProjectDir(ctx, base, t.TempDir()))

	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, "config.yaml"), []byte("company:\n  year: 2025\n"), 0o600))
	merged := config.WithProjectDir(ctx, base, dir)
	assert.Equal(t, 2025, merged.Company.Year)
	assert.Zero(t, base.Company.Year)
}

func TestEnsureGitignore(t *testing.T) {
	dir := filepath.Join(t.TempDir(), ".esgsync")

	created, err := config.EnsureGitignore(dir)
	require.NoError(t, err)
	assert.True(t, created)

	data, err := os.ReadFile(filepath.Join(dir, ".gitignore"))
	require.NoError(t, err)
	assert.Equal(t, config.GitignoreContent(), string(data))

	created, err = config.EnsureGitignore(dir)
	require.NoError(t, err)
	assert.False(t, created)
}
