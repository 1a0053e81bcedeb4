package dashboard

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"

	"github.com/rshade/esgsync/internal/units"
)

// Output formats accepted by Render.
const (
	FormatTable = "table"
	FormatJSON  = "json"
)

// DefaultPrecision is the number of decimals shown for quantities.
const DefaultPrecision = 2

// ErrUnknownFormat is returned by Render for a format it does not know.
var ErrUnknownFormat = errors.New("unknown output format")

// RenderOptions controls table output.
type RenderOptions struct {
	// Styled enables colour and box borders; set it only for terminals.
	Styled    bool
	Precision int
}

//nolint:gochecknoglobals // Lip Gloss styles are immutable values.
var (
	headerStyle  = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("12")).Padding(0, 1)
	cellStyle    = lipgloss.NewStyle().Padding(0, 1)
	sectionStyle = cellStyle.Foreground(lipgloss.Color("8"))
	titleStyle   = lipgloss.NewStyle().Bold(true).MarginBottom(1)
	noteStyle    = lipgloss.NewStyle().Italic(true).Foreground(lipgloss.Color("10"))
)

// Render writes the dashboard in the requested format.
func Render(w io.Writer, k KPIs, format string, opts RenderOptions) error {
	switch strings.ToLower(strings.TrimSpace(format)) {
	case FormatJSON:
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		return enc.Encode(k)
	case FormatTable, "":
		return renderTable(w, k, opts)
	default:
		return fmt.Errorf("%w: %q", ErrUnknownFormat, format)
	}
}

func renderTable(w io.Writer, k KPIs, opts RenderOptions) error {
	prec := opts.Precision
	if prec <= 0 {
		prec = DefaultPrecision
	}

	t := table.New().Headers("SECTION", "METRIC", "VALUE").Rows(Rows(k, prec)...)
	if opts.Styled {
		t = t.Border(lipgloss.RoundedBorder()).
			StyleFunc(func(row, col int) lipgloss.Style {
				switch {
				case row == table.HeaderRow:
					return headerStyle
				case col == 0:
					return sectionStyle
				default:
					return cellStyle
				}
			})
	} else {
		t = t.Border(lipgloss.ASCIIBorder())
	}

	title := "ESG dashboard"
	if k.Year != nil {
		title = fmt.Sprintf("ESG dashboard %d", *k.Year)
	}
	note := ""
	if !k.Equivalencies.IsEmpty {
		note = k.Equivalencies.DisplayText
	}
	if opts.Styled {
		title = titleStyle.Render(title)
		if note != "" {
			note = noteStyle.Render(note)
		}
	}

	if _, err := fmt.Fprintln(w, title); err != nil {
		return err
	}
	if _, err := fmt.Fprintln(w, t.Render()); err != nil {
		return err
	}
	if note != "" {
		if _, err := fmt.Fprintln(w, note); err != nil {
			return err
		}
	}
	return nil
}

// Rows flattens the dashboard into section, metric and value cells.
func Rows(k KPIs, prec int) [][]string {
	num := func(f float64) string { return units.FormatFloat(f, prec) }
	opt := func(p *float64) string {
		if p == nil {
			return "-"
		}
		return num(*p)
	}
	pct := func(p *float64) string {
		if p == nil {
			return "-"
		}
		return units.FormatPercent(*p)
	}
	optInt := func(p *int) string {
		if p == nil {
			return "-"
		}
		return units.FormatNumber(int64(*p))
	}

	intensity := "Emissions intensity"
	if k.Emissions.IntensityDenominator != "" {
		intensity += " (per " + k.Emissions.IntensityDenominator + ")"
	}

	rows := [][]string{
		{"Emissions", "Total tCO2e (scope 1+2)", num(k.Emissions.TotalT)},
		{"Emissions", "Scope 1 tCO2e", opt(k.Emissions.Scope1T)},
		{"Emissions", "Scope 2 tCO2e", opt(k.Emissions.Scope2T)},
		{"Emissions", "Scope 3 tCO2e", opt(k.Emissions.Scope3T)},
		{"Emissions", intensity, opt(k.Emissions.Intensity)},
		{"Energy", "Total MWh", num(k.Energy.TotalMWh)},
		{"Energy", "Renewable share", pct(k.Energy.RenewableShare)},
		{"Water", "Withdrawal m3", num(k.Water.WithdrawalM3)},
		{"Water", "Discharge m3", num(k.Water.DischargeM3)},
		{"Water", "Consumption m3", num(k.Water.ConsumptionM3)},
		{"Waste", "Total t", num(k.Waste.TotalT)},
		{"Waste", "Diversion rate", pct(k.Waste.DiversionRate)},
		{"Biodiversity", "Sites in protected areas", units.FormatNumber(int64(k.Biodiversity.ProtectedSites))},
		{"Biodiversity", "High-severity impacts", units.FormatNumber(int64(k.Biodiversity.HighSeverityImpacts))},
		{"Governance", "Board size", units.FormatNumber(int64(k.Governance.BoardSize))},
		{"Governance", "Independent directors", pct(k.Governance.IndependentShare)},
		{"Governance", "Women on board", pct(k.Governance.FemaleShare)},
		{"Governance", "Meeting attendance", pct(k.Governance.AttendanceRate)},
		{"Social", "Headcount", units.FormatNumber(int64(k.Social.Headcount))},
		{"Social", "Female share", pct(k.Social.FemaleShare)},
		{"Social", "Training hours per employee", opt(k.Social.TrainingHoursPerEmployee)},
		{"Social", "LTIFR", opt(k.Social.LTIFR)},
		{"Social", "TRIR", opt(k.Social.TRIR)},
		{"Social", "Recordable incidents", optInt(k.Social.RecordableIncidents)},
		{"Completeness", "Sections with data", units.FormatPercent(k.Completeness.Ratio)},
	}
	if len(k.Completeness.Missing) > 0 {
		rows = append(rows, []string{"Completeness", "Missing", strings.Join(k.Completeness.Missing, ", ")})
	}
	return rows
}
