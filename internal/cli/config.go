package cli

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"

	"github.com/rshade/esgsync/internal/config"
)

// redacted replaces secrets in "config show".
const redacted = "<redacted>"

var errConfigExists = errors.New("configuration file already exists, use --force to overwrite")

// NewConfigInitCmd creates the "config init" subcommand. Inside a project
// (a directory tree with .esgsync/) it writes the project overlay and a
// .gitignore; otherwise, or with --global, it writes the global file.
func NewConfigInitCmd() *cobra.Command {
	var (
		force  bool
		global bool
	)

	cmd := &cobra.Command{
		Use:   "init",
		Short: "Initialize a configuration file with default values",
		Long: `Create a configuration file with default values.

Inside a project (--project-dir, ESGSYNC_PROJECT_DIR or an ancestor holding
.esgsync/) the file is written to .esgsync/config.yaml next to a .gitignore
that keeps drafts and logs out of version control. Use --global to write
$ESGSYNC_HOME/config.yaml instead.`,
		Example: `  # Project-local configuration
  esgsync config init --project-dir ./.esgsync

  # Global configuration
  esgsync config init --global

  # Overwrite an existing file
  esgsync config init --force`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			var flagDir string
			if f := cmd.Flag("project-dir"); f != nil {
				flagDir = f.Value.String()
			}
			wd, _ := os.Getwd()
			projectDir := config.ResolveProjectDir(cmd.Context(), flagDir, wd)

			if projectDir != "" && !global {
				return initProjectConfig(cmd, projectDir, force)
			}
			return initGlobalConfig(cmd, force)
		},
	}

	cmd.Flags().BoolVar(&force, "force", false, "overwrite an existing configuration file")
	cmd.Flags().BoolVar(&global, "global", false, "write the global configuration even inside a project")
	return cmd
}

func checkWritable(path string, force bool) error {
	if force {
		return nil
	}
	_, err := os.Stat(path)
	switch {
	case err == nil:
		return errConfigExists
	case os.IsNotExist(err):
		return nil
	default:
		return fmt.Errorf("cannot access config path %s: %w", path, err)
	}
}

func initProjectConfig(cmd *cobra.Command, projectDir string, force bool) error {
	configPath := filepath.Join(projectDir, "config.yaml")
	if err := checkWritable(configPath, force); err != nil {
		return err
	}
	if err := config.New().Save(configPath); err != nil {
		return fmt.Errorf("failed to save configuration: %w", err)
	}

	created, err := config.EnsureGitignore(projectDir)
	if err != nil {
		return fmt.Errorf("failed to create .gitignore: %w", err)
	}

	cmd.Printf("Configuration initialized at %s\n", configPath)
	if created {
		cmd.Printf("Created .gitignore to keep drafts and logs out of version control\n")
	}
	return nil
}

func initGlobalConfig(cmd *cobra.Command, force bool) error {
	configPath, err := config.DefaultPath()
	if err != nil {
		return err
	}
	if err := checkWritable(configPath, force); err != nil {
		return err
	}
	if err := config.EnsureConfigDir(); err != nil {
		return fmt.Errorf("failed to create config directory: %w", err)
	}
	if err := config.New().Save(configPath); err != nil {
		return fmt.Errorf("failed to save configuration: %w", err)
	}

	cmd.Printf("Configuration initialized successfully\n")
	cmd.Printf("Configuration file: %s\n", configPath)
	return nil
}

// NewConfigShowCmd creates the "config show" subcommand, which prints the
// effective configuration with secrets redacted.
func NewConfigShowCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "show",
		Short: "Print the effective configuration",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			cfg := *configFrom(cmd.Context())
			if cfg.API.Token != "" {
				cfg.API.Token = redacted
			}
			if cfg.Draft.RedisURL != "" {
				cfg.Draft.RedisURL = redacted
			}

			enc := yaml.NewEncoder(cmd.OutOrStdout())
			enc.SetIndent(2)
			if err := enc.Encode(&cfg); err != nil {
				return fmt.Errorf("encoding configuration: %w", err)
			}
			return enc.Close()
		},
	}
}
