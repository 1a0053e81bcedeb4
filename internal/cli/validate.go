package cli

import (
	"fmt"
	"io"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"
	"github.com/spf13/cobra"

	"github.com/rshade/esgsync/internal/config"
	"github.com/rshade/esgsync/internal/validation"
)

// NewValidateCmd creates the "validate" command. It exits with
// ExitCodeCheckFailed when the state has blocking errors.
func NewValidateCmd() *cobra.Command {
	var mode string

	cmd := &cobra.Command{
		Use:   "validate <state.json|->",
		Short: "Validate a wizard state",
		Long: `Validate a wizard state in draft or submit mode.

Draft mode checks only what is filled in. Submit mode also requires a company
id, a reporting year and at least one non-blank disclosure section.`,
		Example: `  esgsync validate state.json
  esgsync validate state.json --mode submit --output json`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg := configFrom(cmd.Context())
			format, err := outputFormat(cmd, cfg)
			if err != nil {
				return err
			}
			m, err := validation.ParseMode(mode)
			if err != nil {
				return err
			}
			state, err := readState(cmd, args[0])
			if err != nil {
				return err
			}
			applyCompanyDefaults(state, cfg)

			v, err := validation.New()
			if err != nil {
				return err
			}
			res := v.Validate(state, m)

			if format == config.FormatJSON {
				err = writeJSON(cmd.OutOrStdout(), res)
			} else {
				err = renderValidation(cmd.OutOrStdout(), res, isWriterTerminal(cmd.OutOrStdout()))
			}
			if err != nil {
				return err
			}
			if res.HasErrors() {
				return &ExitError{Code: ExitCodeCheckFailed, Reason: res.ErrorSummary(), Err: res.Err()}
			}
			return nil
		},
	}

	cmd.Flags().StringVar(&mode, "mode", "draft", "Validation mode: draft or submit")
	addOutputFlag(cmd)
	return cmd
}

//nolint:gochecknoglobals // Lip Gloss styles are immutable values.
var (
	okStyle   = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("10"))
	errStyle  = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("9"))
	warnStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("11"))
	cellStyle = lipgloss.NewStyle().Padding(0, 1)
	headStyle = cellStyle.Bold(true)
)

// renderValidation prints a validation result as a table of findings.
func renderValidation(w io.Writer, res validation.Result, styled bool) error {
	status := fmt.Sprintf("%s validation passed", res.Mode)
	st := okStyle
	if res.HasErrors() {
		status = fmt.Sprintf("%s validation failed: %d error(s)", res.Mode, len(res.Errors))
		st = errStyle
	}
	if len(res.Warnings) > 0 {
		status += fmt.Sprintf(", %d warning(s)", len(res.Warnings))
	}
	if styled {
		status = st.Render(status)
	}
	if _, err := fmt.Fprintln(w, status); err != nil {
		return err
	}
	if len(res.Errors) == 0 && len(res.Warnings) == 0 {
		return nil
	}

	rows := make([][]string, 0, len(res.Errors)+len(res.Warnings))
	for _, e := range res.Errors {
		rows = append(rows, []string{"error", e.Field, e.Message})
	}
	for _, e := range res.Warnings {
		rows = append(rows, []string{"warning", e.Field, e.Message})
	}
	_, err := fmt.Fprintln(w, findingsTable(rows, styled).Render())
	return err
}

func findingsTable(rows [][]string, styled bool) *table.Table {
	t := table.New().Headers("LEVEL", "FIELD", "MESSAGE").Rows(rows...)
	if !styled {
		return t.Border(lipgloss.ASCIIBorder())
	}
	return t.Border(lipgloss.RoundedBorder()).StyleFunc(func(row, col int) lipgloss.Style {
		switch {
		case row == table.HeaderRow:
			return headStyle
		case col == 0 && rows[row][0] == "error":
			return errStyle.Padding(0, 1)
		case col == 0:
			return warnStyle.Padding(0, 1)
		default:
			return cellStyle
		}
	})
}
