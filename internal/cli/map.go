package cli

import (
	"strings"

	"github.com/spf13/cobra"

	"github.com/rshade/esgsync/internal/logging"
	"github.com/rshade/esgsync/internal/mapper"
)

// NewMapCmd creates the "map" command, which prints the request bodies a
// sync would send without calling the API.
func NewMapCmd() *cobra.Command {
	var section string

	cmd := &cobra.Command{
		Use:   "map <state.json|->",
		Short: "Print the API request bodies for a wizard state",
		Long: `Map a wizard state to the disclosure API request bodies.

Blank sections map to null. With --section only that section is printed;
otherwise every section is printed in sync order followed by the profile.`,
		Example: `  # Every section
  esgsync map state.json

  # Only the GHG upsert body
  esgsync map state.json --section ghg

  # From stdin
  cat state.json | esgsync map -`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			state, err := readState(cmd, args[0])
			if err != nil {
				return err
			}
			applyCompanyDefaults(state, configFrom(cmd.Context()))

			log := logging.FromContext(cmd.Context())
			if section != "" {
				built, err := mapper.Build(section, state)
				if err != nil {
					return err
				}
				log.Debug().Str(logging.FieldResource, section).Bool("blank", built.Record == nil).Msg("mapped section")
				return writeJSON(cmd.OutOrStdout(), built)
			}

			sections := append(append([]string{}, mapper.SyncOrder...), mapper.SectionProfile)
			out := make([]*mapper.Built, 0, len(sections))
			for _, name := range sections {
				built, err := mapper.Build(name, state)
				if err != nil {
					return err
				}
				out = append(out, built)
			}
			return writeJSON(cmd.OutOrStdout(), out)
		},
	}

	cmd.Flags().StringVarP(&section, "section", "s", "", "Only map this section: "+strings.Join(mapper.Sections(), ", "))
	return cmd
}
