package units

import (
	"fmt"
	"math"
	"strings"

	"golang.org/x/text/language"
	"golang.org/x/text/message"
)

// printer is the locale-aware message printer for number formatting.
//
//nolint:gochecknoglobals // Global printer is idiomatic for x/text/message usage.
var printer = message.NewPrinter(language.English)

// FormatNumber formats an integer with thousand separators.
// Example: FormatNumber(18248) returns "18,248".
func FormatNumber(n int64) string {
	return printer.Sprintf("%d", n)
}

// FormatFloat formats f with the given precision and thousand separators.
// Example: FormatFloat(1234.567, 2) returns "1,234.57".
func FormatFloat(f float64, precision int) string {
	if math.IsNaN(f) || math.IsInf(f, 0) {
		return "n/a"
	}
	if precision <= 0 {
		return FormatNumber(int64(math.Round(f)))
	}

	formatted := fmt.Sprintf("%.*f", precision, f)
	intPart, fracPart, _ := strings.Cut(formatted, ".")
	negative := strings.HasPrefix(intPart, "-")
	intPart = strings.TrimPrefix(intPart, "-")

	var n int64
	for _, c := range intPart {
		n = n*10 + int64(c-'0')
	}
	out := FormatNumber(n) + "." + fracPart
	if negative {
		out = "-" + out
	}
	return out
}

// FormatPercent formats a 0-1 ratio as a percentage with one decimal.
// Example: FormatPercent(0.4567) returns "45.7%".
func FormatPercent(ratio float64) string {
	return FormatFloat(ratio*100, 1) + "%"
}
