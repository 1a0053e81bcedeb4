package cli

import (
	"github.com/spf13/cobra"

	"github.com/rshade/esgsync/internal/dashboard"
)

// NewDashboardCmd creates the "dashboard" command.
func NewDashboardCmd() *cobra.Command {
	var precision int

	cmd := &cobra.Command{
		Use:   "dashboard <state.json|->",
		Short: "Show ESG KPIs for a wizard state",
		Example: `  esgsync dashboard state.json
  esgsync dashboard state.json --output json`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg := configFrom(cmd.Context())
			format, err := outputFormat(cmd, cfg)
			if err != nil {
				return err
			}
			state, err := readState(cmd, args[0])
			if err != nil {
				return err
			}
			applyCompanyDefaults(state, cfg)

			prec := cfg.Output.Precision
			if cmd.Flags().Changed("precision") {
				prec = precision
			}
			out := cmd.OutOrStdout()
			return dashboard.Render(out, dashboard.Compute(state), format, dashboard.RenderOptions{
				Styled:    isWriterTerminal(out),
				Precision: prec,
			})
		},
	}

	cmd.Flags().IntVar(&precision, "precision", dashboard.DefaultPrecision, "Decimal places in the table")
	addOutputFlag(cmd)
	return cmd
}
