package cli

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"

	"github.com/rshade/esgsync/internal/config"
	"github.com/rshade/esgsync/internal/wizard"
)

// stdinPath reads a wizard state from standard input.
const stdinPath = "-"

var errNoStateFile = errors.New("a wizard state file is required (use - for stdin)")

// readState loads a wizard state from path, or from stdin for "-".
func readState(cmd *cobra.Command, path string) (*wizard.State, error) {
	if path == "" {
		return nil, errNoStateFile
	}
	var r io.Reader
	if path == stdinPath {
		r = cmd.InOrStdin()
	} else {
		f, err := os.Open(path)
		if err != nil {
			return nil, fmt.Errorf("opening state file: %w", err)
		}
		defer f.Close()
		r = f
	}
	s, err := wizard.Load(r)
	if err != nil {
		return nil, fmt.Errorf("reading %s: %w", path, err)
	}
	return s, nil
}

// writeStateFile replaces path with state using a temp file and rename.
func writeStateFile(path string, state *wizard.State) error {
	dir := filepath.Dir(path)
	tmp, err := os.CreateTemp(dir, ".esgsync-state-*.tmp")
	if err != nil {
		return fmt.Errorf("creating temp state file: %w", err)
	}
	tmpPath := tmp.Name()
	if err := state.Encode(tmp); err != nil {
		_ = tmp.Close()
		_ = os.Remove(tmpPath)
		return fmt.Errorf("encoding state: %w", err)
	}
	if err := tmp.Close(); err != nil {
		_ = os.Remove(tmpPath)
		return fmt.Errorf("closing temp state file: %w", err)
	}
	if err := os.Rename(tmpPath, path); err != nil {
		_ = os.Remove(tmpPath)
		return fmt.Errorf("replacing state file: %w", err)
	}
	return nil
}

// applyCompanyDefaults fills company id and year from config when the
// state leaves them blank.
func applyCompanyDefaults(s *wizard.State, cfg *config.Config) {
	if strings.TrimSpace(s.CompanyID) == "" {
		s.CompanyID = cfg.Company.ID
	}
	if _, ok := s.ReportingYear(); !ok && cfg.Company.Year > 0 {
		year := cfg.Company.Year
		s.Year = &year
	}
}

// stateCompany returns the company id to act for, preferring the state.
func stateCompany(s *wizard.State, cfg *config.Config) string {
	if id := strings.TrimSpace(s.CompanyID); id != "" {
		return id
	}
	return cfg.Company.ID
}

// outputFormat returns the --output flag value or the configured default.
func outputFormat(cmd *cobra.Command, cfg *config.Config) (string, error) {
	format := cfg.Output.DefaultFormat
	if f := cmd.Flag("output"); f != nil && f.Changed {
		format = f.Value.String()
	}
	format = strings.ToLower(strings.TrimSpace(format))
	switch format {
	case config.FormatTable, config.FormatJSON:
		return format, nil
	case "":
		return config.FormatTable, nil
	default:
		return "", fmt.Errorf("unsupported output format %q: must be table or json", format)
	}
}

func addOutputFlag(cmd *cobra.Command) {
	cmd.Flags().StringP("output", "o", "", "Output format: table or json (default from configuration)")
}

// isWriterTerminal reports whether w is a terminal, for styled output.
func isWriterTerminal(w io.Writer) bool {
	f, ok := w.(*os.File)
	return ok && isTerminal(f)
}

func writeJSON(w io.Writer, v any) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}
