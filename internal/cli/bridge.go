package cli

import (
	"errors"
	"strings"

	"github.com/spf13/cobra"

	"github.com/rshade/esgsync/internal/bridge"
	"github.com/rshade/esgsync/internal/dashboard"
	"github.com/rshade/esgsync/internal/logging"
)

// NewBridgeMatchCmd creates the "bridge match" subcommand.
func NewBridgeMatchCmd() *cobra.Command {
	var (
		amount    float64
		currency  string
		limit     int
		directory string
	)

	cmd := &cobra.Command{
		Use:   "match <state.json|->",
		Short: "Rank investors for a company",
		Long: `Score every investor in the directory against the company profile and
ESG readiness, and list the best matches with the reasons for each score.

The funding need defaults to the profile's funding need; --amount and
--currency override it. The directory defaults to the configured
bridge.directory_path and falls back to the built-in list when that file is
missing.`,
		Example: `  esgsync bridge match state.json
  esgsync bridge match state.json --amount 2000000 --currency EUR --limit 3`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			cfg := configFrom(ctx)
			format, err := outputFormat(cmd, cfg)
			if err != nil {
				return err
			}
			if limit < 0 {
				return errors.New("--limit must not be negative")
			}

			state, err := readState(cmd, args[0])
			if err != nil {
				return err
			}
			applyCompanyDefaults(state, cfg)

			path := directory
			if path == "" {
				path = cfg.Bridge.DirectoryPath
			}
			dir, err := bridge.LoadDirectoryOrDefault(path)
			if err != nil {
				return err
			}

			var need bridge.Need
			if cmd.Flags().Changed("amount") {
				need.Amount = &amount
			}
			need.Currency = strings.ToUpper(strings.TrimSpace(currency))

			matches := dir.Match(state.Profile, dashboard.Compute(state), need, limit)
			logging.FromContext(ctx).Debug().Int("investors", len(dir.Investors)).
				Int("matches", len(matches)).Msg("investor matching complete")

			return bridge.Render(cmd.OutOrStdout(), matches, format, isWriterTerminal(cmd.OutOrStdout()))
		},
	}

	cmd.Flags().Float64Var(&amount, "amount", 0, "Funding need (default: profile funding need)")
	cmd.Flags().StringVar(&currency, "currency", "", "Currency of --amount (default: profile currency)")
	cmd.Flags().IntVar(&limit, "limit", 5, "Maximum matches to list (0 for all)")
	cmd.Flags().StringVar(&directory, "directory", "", "Investor directory YAML (default from configuration)")
	addOutputFlag(cmd)
	return cmd
}
