package bridge

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"
)

// ErrUnknownFormat is returned by Render for a format it does not know.
var ErrUnknownFormat = errors.New("unknown output format")

//nolint:gochecknoglobals // Lip Gloss styles are immutable values.
var (
	headerStyle = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("12")).Padding(0, 1)
	cellStyle   = lipgloss.NewStyle().Padding(0, 1)
	scoreStyle  = cellStyle.Bold(true).Foreground(lipgloss.Color("10"))
)

// Render writes ranked candidates as a "table" or "json".
func Render(w io.Writer, matches []Candidate, format string, styled bool) error {
	switch strings.ToLower(strings.TrimSpace(format)) {
	case "json":
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		if matches == nil {
			matches = []Candidate{}
		}
		return enc.Encode(matches)
	case "table", "":
	default:
		return fmt.Errorf("%w: %q", ErrUnknownFormat, format)
	}

	if len(matches) == 0 {
		_, err := fmt.Fprintln(w, "No matching investors.")
		return err
	}

	rows := make([][]string, 0, len(matches))
	for idx, m := range matches {
		rows = append(rows, []string{
			strconv.Itoa(idx + 1),
			m.Investor.Name,
			m.Investor.Type,
			fmt.Sprintf("%d/%d", m.Score, MaxScore),
			strings.Join(m.Reasons, "; "),
		})
	}

	t := table.New().Headers("#", "INVESTOR", "TYPE", "SCORE", "WHY").Rows(rows...)
	if styled {
		t = t.Border(lipgloss.RoundedBorder()).StyleFunc(func(row, col int) lipgloss.Style {
			switch {
			case row == table.HeaderRow:
				return headerStyle
			case col == 3:
				return scoreStyle
			default:
				return cellStyle
			}
		})
	} else {
		t = t.Border(lipgloss.ASCIIBorder())
	}
	_, err := fmt.Fprintln(w, t.Render())
	return err
}
