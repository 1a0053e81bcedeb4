package config

import (
	"context"
	"os"
	"path/filepath"

	"github.com/rshade/esgsync/internal/logging"
)

// projectDirName is the project-local directory holding an overlay config.
const projectDirName = ".esgsync"

// ResolveProjectDir determines the project-local .esgsync directory.
// It checks, in order:
//  1. flagValue (--project-dir)
//  2. ESGSYNC_PROJECT_DIR
//  3. the nearest ancestor of startDir containing .esgsync
//
// It returns an absolute path or "" when no project is found. The directory
// is not created.
func ResolveProjectDir(ctx context.Context, flagValue, startDir string) string {
	if flagValue != "" {
		return toAbsProjectDir(ctx, flagValue)
	}
	if envDir := os.Getenv(EnvProjectDir); envDir != "" {
		return toAbsProjectDir(ctx, envDir)
	}
	if startDir == "" {
		return ""
	}

	dir, err := filepath.Abs(startDir)
	if err != nil {
		return ""
	}
	global, _ := GetConfigDir()
	for {
		candidate := filepath.Join(dir, projectDirName)
		if info, statErr := os.Stat(candidate); statErr == nil && info.IsDir() && candidate != global {
			return candidate
		}
		parent := filepath.Dir(dir)
		if parent == dir {
			return ""
		}
		dir = parent
	}
}

// WithProjectDir returns a copy of base with the project overlay applied.
// A missing or broken overlay leaves base unchanged.
func WithProjectDir(ctx context.Context, base *Config, projectDir string) *Config {
	if projectDir == "" {
		return base
	}

	overlayPath := filepath.Join(projectDir, configFileName)
	if _, err := os.Stat(overlayPath); err != nil {
		return base
	}

	merged := *base
	if err := ShallowMergeYAML(&merged, overlayPath); err != nil {
		logger := logging.FromContext(ctx)
		logger.Warn().
			Str(logging.FieldComponent, "config").
			Str(logging.FieldOperation, "merge_project_config").
			Err(err).
			Str("overlay_path", overlayPath).
			Msg("failed to merge project config, using global settings")
		return base
	}
	return &merged
}

// toAbsProjectDir converts dir to an absolute path ending in .esgsync.
func toAbsProjectDir(ctx context.Context, dir string) string {
	abs, err := filepath.Abs(dir)
	if err != nil {
		logger := logging.FromContext(ctx)
		logger.Warn().
			Str(logging.FieldComponent, "config").
			Err(err).
			Str("dir", dir).
			Msg("failed to resolve absolute path for project directory")
		abs = dir
	}
	if filepath.Base(abs) == projectDirName {
		return abs
	}
	return filepath.Join(abs, projectDirName)
}
