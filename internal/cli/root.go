package cli

import (
	"context"
	"fmt"
	"os"

	"github.com/rs/zerolog"
	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/rshade/esgsync/internal/config"
	"github.com/rshade/esgsync/internal/logging"
)

// isTerminal checks if the given file is a terminal.
func isTerminal(f *os.File) bool {
	return term.IsTerminal(int(f.Fd()))
}

// logger is the package-level logger for CLI operations.
var logger zerolog.Logger //nolint:gochecknoglobals // Required for zerolog context integration

type configKey struct{}

// withConfig stores the resolved configuration in ctx.
func withConfig(ctx context.Context, cfg *config.Config) context.Context {
	return context.WithValue(ctx, configKey{}, cfg)
}

// configFrom returns the configuration resolved by the root command, or the
// defaults when a command runs without it (as in unit tests).
func configFrom(ctx context.Context) *config.Config {
	if cfg, ok := ctx.Value(configKey{}).(*config.Config); ok && cfg != nil {
		return cfg
	}
	return config.New()
}

// NewRootCmd creates the root Cobra command for the esgsync CLI.
// It loads configuration (global file, project overlay, environment),
// wires logging and tracing, and registers every subcommand.
func NewRootCmd(ver string) *cobra.Command {
	var (
		logResult  *logging.Result
		configPath string
		projectDir string
	)

	cmd := &cobra.Command{
		Use:     "esgsync",
		Short:   "Map, validate and sync ESG disclosure data",
		Long:    "esgsync: turn ESG wizard form state into disclosure API calls, dashboards and investor matches",
		Version: ver,
		Example: rootCmdExample,
		// Errors are reported once by main.
		SilenceErrors: true,
		SilenceUsage:  true,
		PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
			cfg, err := resolveConfig(cmd.Context(), configPath, projectDir)
			if err != nil {
				return err
			}
			result := setupLogging(cmd, cfg)
			logResult = &result
			cmd.SetContext(withConfig(cmd.Context(), cfg))
			return nil
		},
		PersistentPostRunE: func(cmd *cobra.Command, _ []string) error {
			return cleanupLogging(cmd, logResult)
		},
	}

	cmd.PersistentFlags().StringVar(&configPath, "config", "", "config file (default $ESGSYNC_HOME/config.yaml)")
	cmd.PersistentFlags().StringVar(&projectDir, "project-dir", "", "project directory holding .esgsync/config.yaml")
	cmd.PersistentFlags().Bool("debug", false, "enable debug logging")

	cmd.AddCommand(
		NewMapCmd(), NewValidateCmd(), newSyncCmd(), NewOnboardCmd(),
		NewDashboardCmd(), newDraftCmd(), newBridgeCmd(), NewServeCmd(), newConfigCmd(),
	)
	return cmd
}

// resolveConfig loads the global (or --config) file, applies the project
// overlay, re-applies environment overrides and validates the result.
func resolveConfig(ctx context.Context, configPath, projectDirFlag string) (*config.Config, error) {
	cfg, err := config.Load(configPath)
	if err != nil {
		return nil, err
	}

	wd, _ := os.Getwd()
	projectDir := config.ResolveProjectDir(ctx, projectDirFlag, wd)
	cfg = config.WithProjectDir(ctx, cfg, projectDir)
	config.ApplyEnv(cfg)

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}
	return cfg, nil
}

const rootCmdExample = `  # Preview the request body for one section
  esgsync map state.json --section ghg

  # Validate a wizard state for submission
  esgsync validate state.json --mode submit

  # Save a draft to the disclosure API and mirror it locally
  esgsync sync draft state.json

  # Submit the disclosure
  esgsync sync submit state.json

  # Show KPIs and find matching investors
  esgsync dashboard state.json
  esgsync bridge match state.json --amount 1000000 --currency EUR

  # Run the preview API
  esgsync serve --addr :8080`

func newSyncCmd() *cobra.Command {
	cmd := &cobra.Command{Use: "sync", Short: "Sync wizard state to the disclosure API"}
	cmd.AddCommand(NewSyncDraftCmd(), NewSyncSubmitCmd())
	return cmd
}

func newDraftCmd() *cobra.Command {
	cmd := &cobra.Command{Use: "draft", Short: "Inspect the local draft mirror"}
	cmd.AddCommand(NewDraftShowCmd(), NewDraftClearCmd())
	return cmd
}

func newBridgeCmd() *cobra.Command {
	cmd := &cobra.Command{Use: "bridge", Short: "Investor matching"}
	cmd.AddCommand(NewBridgeMatchCmd())
	return cmd
}

func newConfigCmd() *cobra.Command {
	cmd := &cobra.Command{Use: "config", Short: "Configuration management commands"}
	cmd.AddCommand(NewConfigInitCmd(), NewConfigShowCmd())
	return cmd
}
