// Package emissions derives roll-up totals from wizard activity rows.
//
// Missing quantities and factors contribute nothing to a sum rather than
// failing it: partially filled forms still produce the best total the data
// supports. Rows keep their place in the wizard; they are only skipped here.
package emissions

import (
	"math"
	"strings"

	"github.com/rshade/esgsync/internal/enums"
	"github.com/rshade/esgsync/internal/units"
	"github.com/rshade/esgsync/internal/wizard"
)

// Totals is the GHG roll-up for one inventory, in tCO2e.
type Totals struct {
	Scope1T float64
	Scope2T float64
	Scope3T float64

	HasScope1 bool
	HasScope2 bool
	HasScope3 bool

	// Scope1FromRows and Scope2FromRows are the row-derived sums, reported
	// even when an explicit total overrides them.
	Scope1FromRows float64
	Scope2FromRows float64

	// EquityShare is true when the boundary is equity share and a percentage is set.
	EquityShare  bool
	EquityFactor float64

	// CombinedT is scope 1 plus scope 2, scaled by EquityFactor.
	CombinedT float64
}

// Scope1RowBlank reports whether a scope 1 row is an untouched placeholder.
func Scope1RowBlank(r wizard.Scope1Row) bool {
	return blank(r.Category) && blank(r.ActivityType) && blank(r.Refrigerant) &&
		r.Quantity == nil && r.EFKgPerUnit == nil
}

// Scope2RowBlank reports whether a scope 2 row is an untouched placeholder.
func Scope2RowBlank(r wizard.Scope2Row) bool {
	return blank(r.EnergyType) && r.Quantity == nil && r.SupplierEFKgPerKWh == nil &&
		!r.HasREC && !r.HasPPA && !r.GreenTariff
}

func anyFilled[R any](rows []R, isBlank func(R) bool) bool {
	for _, r := range rows {
		if !isBlank(r) {
			return true
		}
	}
	return false
}

// Scope1KgCO2e sums quantity × emission factor over scope 1 rows, in kg.
func Scope1KgCO2e(rows []wizard.Scope1Row) float64 {
	var sum float64
	for _, r := range rows {
		sum += product(r.Quantity, r.EFKgPerUnit)
	}
	return sum
}

// Scope2KgCO2e sums kWh × supplier factor over scope 2 rows, in kg.
// Rows whose unit is not an energy unit contribute zero.
func Scope2KgCO2e(rows []wizard.Scope2Row) float64 {
	var sum float64
	for _, r := range rows {
		if r.Quantity == nil || r.SupplierEFKgPerKWh == nil {
			continue
		}
		kwh, err := units.ToKWh(*r.Quantity, r.Unit)
		if err != nil {
			continue
		}
		sum += product(&kwh, r.SupplierEFKgPerKWh)
	}
	return sum
}

// EquityFactor returns the fraction applied under an equity-share boundary.
// The percentage is clamped to [0, 100]. ok is false when the boundary is not
// equity share or no usable percentage is set, in which case the factor is 1.
func EquityFactor(boundary string, pct *float64) (float64, bool) {
	tag, ok := enums.Boundary.Normalize(boundary)
	if !ok || tag != enums.BoundaryEquityShare || pct == nil || math.IsNaN(*pct) {
		return 1, false
	}
	return math.Min(math.Max(*pct, 0), 100) / 100, true
}

// ComputeGHG resolves scope totals and the combined figure for an inventory.
// A total typed by the user takes precedence over the row-derived sum.
func ComputeGHG(inv *wizard.GHGInventory) Totals {
	t := Totals{EquityFactor: 1}
	if inv == nil {
		return t
	}

	t.Scope1FromRows = units.KgToTonnes(Scope1KgCO2e(inv.Scope1Rows))
	t.Scope2FromRows = units.KgToTonnes(Scope2KgCO2e(inv.Scope2Rows))

	t.Scope1T, t.HasScope1 = pick(inv.Scope1TCO2e, t.Scope1FromRows, anyFilled(inv.Scope1Rows, Scope1RowBlank))
	t.Scope2T, t.HasScope2 = pick(inv.Scope2TCO2e, t.Scope2FromRows, anyFilled(inv.Scope2Rows, Scope2RowBlank))
	t.Scope3T, t.HasScope3 = pick(inv.Scope3TCO2e, 0, false)

	t.EquityFactor, t.EquityShare = EquityFactor(inv.Boundary, inv.EquitySharePct)
	t.CombinedT = (t.Scope1T + t.Scope2T) * t.EquityFactor
	return t
}

func pick(explicit *float64, derived float64, hasRows bool) (float64, bool) {
	if explicit != nil && finite(*explicit) {
		return *explicit, true
	}
	if hasRows {
		return derived, true
	}
	return 0, false
}

func product(a, b *float64) float64 {
	if a == nil || b == nil {
		return 0
	}
	p := *a * *b
	if !finite(p) {
		return 0
	}
	return p
}

func blank(s string) bool { return strings.TrimSpace(s) == "" }

func finite(f float64) bool {
	return !math.IsNaN(f) && !math.IsInf(f, 0)
}
