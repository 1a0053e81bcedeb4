package cli

import (
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/rshade/esgsync/internal/config"
	"github.com/rshade/esgsync/internal/draft"
)

// draftStoreConfig returns the configured store settings with key applied.
func draftStoreConfig(cfg *config.Config, key string) draft.Config {
	dc := cfg.DraftStoreConfig()
	if key != "" {
		dc.Key = key
	}
	return dc
}

// NewDraftShowCmd creates the "draft show" subcommand.
func NewDraftShowCmd() *cobra.Command {
	var key string

	cmd := &cobra.Command{
		Use:   "show",
		Short: "Print the mirrored draft",
		Long: `Print the last draft mirrored by "sync draft".

The table format prints a one-line summary; json prints the stored envelope
including the wizard state.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			ctx := cmd.Context()
			cfg := configFrom(ctx)
			format, err := outputFormat(cmd, cfg)
			if err != nil {
				return err
			}

			dc := draftStoreConfig(cfg, key)
			store, err := draft.Open(ctx, dc)
			if err != nil {
				return err
			}
			defer store.Close()

			env, err := store.Load(ctx, dc.StorageKey())
			if errors.Is(err, draft.ErrNotFound) {
				cmd.Printf("No draft saved under %q.\n", dc.StorageKey())
				return nil
			}
			if err != nil {
				return err
			}

			if format == config.FormatJSON {
				return writeJSON(cmd.OutOrStdout(), env)
			}
			year := "-"
			if y, ok := env.State.ReportingYear(); ok {
				year = fmt.Sprint(y)
			}
			cmd.Printf("Draft %s (schema %s) saved %s\nCompany %s, year %s\n",
				env.DraftID, env.SchemaVersion, env.SavedAt.Format("2006-01-02 15:04:05 MST"),
				env.State.CompanyID, year)
			return nil
		},
	}

	cmd.Flags().StringVar(&key, "key", "", "Draft key (default from configuration)")
	addOutputFlag(cmd)
	return cmd
}

// NewDraftClearCmd creates the "draft clear" subcommand.
func NewDraftClearCmd() *cobra.Command {
	var key string

	cmd := &cobra.Command{
		Use:   "clear",
		Short: "Delete the mirrored draft",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			ctx := cmd.Context()
			dc := draftStoreConfig(configFrom(ctx), key)
			store, err := draft.Open(ctx, dc)
			if err != nil {
				return err
			}
			defer store.Close()

			if err := store.Delete(ctx, dc.StorageKey()); err != nil {
				return err
			}
			cmd.Printf("Draft %q cleared.\n", dc.StorageKey())
			return nil
		},
	}

	cmd.Flags().StringVar(&key, "key", "", "Draft key (default from configuration)")
	return cmd
}
