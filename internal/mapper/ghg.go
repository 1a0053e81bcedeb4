package mapper

import (
	"github.com/rshade/esgsync/internal/emissions"
	"github.com/rshade/esgsync/internal/enums"
	"github.com/rshade/esgsync/internal/resolve"
	"github.com/rshade/esgsync/internal/units"
	"github.com/rshade/esgsync/internal/wizard"
)

// GHGPayload is the body of PUT /companies/:id/environment/ghg/upsert.
type GHGPayload struct {
	Year        *int     `json:"year,omitempty"`
	Scope1TCO2e *float64 `json:"scope1_tCO2e,omitempty"`
	Scope2TCO2e *float64 `json:"scope2_tCO2e,omitempty"`
	Scope3TCO2e *float64 `json:"scope3_tCO2e,omitempty"`

	// TotalTCO2e is only sent under an equity-share boundary.
	TotalTCO2e *float64 `json:"total_tCO2e,omitempty"`

	Boundary        *string  `json:"boundary,omitempty"`
	EquitySharePct  *float64 `json:"equity_share_pct,omitempty"`
	GWPVersion      *string  `json:"gwp_version,omitempty"`
	EFSource        *string  `json:"ef_source,omitempty"`
	BaseYear        *int     `json:"base_year,omitempty"`
	MethodologyNote *string  `json:"methodology_note,omitempty"`

	Scope1Rows []Scope1RowPayload `json:"scope1_rows,omitempty"`
	Scope2Rows []Scope2RowPayload `json:"scope2_rows,omitempty"`
}

// Scope1RowPayload is one direct-emission activity.
type Scope1RowPayload struct {
	Category       *string  `json:"category,omitempty"`
	ActivityType   *string  `json:"activity_type,omitempty"`
	Quantity       *float64 `json:"quantity,omitempty"`
	Unit           *string  `json:"unit,omitempty"`
	EFKgPerUnit    *float64 `json:"ef_kg_per_unit,omitempty"`
	Refrigerant    *string  `json:"refrigerant,omitempty"`
	EmissionsTCO2e *float64 `json:"emissions_tCO2e,omitempty"`
}

// Scope2RowPayload is one purchased-energy line with its energy in MWh.
type Scope2RowPayload struct {
	EnergyType         *string  `json:"energy_type,omitempty"`
	QuantityMWh        *float64 `json:"quantity_mwh,omitempty"`
	SupplierEFKgPerKWh *float64 `json:"supplier_ef_kg_per_kwh,omitempty"`
	EmissionsTCO2e     *float64 `json:"emissions_tCO2e,omitempty"`
	HasREC             bool     `json:"has_rec,omitempty"`
	HasPPA             bool     `json:"has_ppa,omitempty"`
	GreenTariff        bool     `json:"green_tariff,omitempty"`
}

// GHGIsEmpty reports whether the inventory has nothing worth sending.
// The year alone does not count as content.
func GHGIsEmpty(inv *wizard.GHGInventory) bool {
	if inv == nil {
		return true
	}
	if !noneSet(inv.Scope1TCO2e, inv.Scope2TCO2e, inv.Scope3TCO2e, inv.EquitySharePct, inv.BaseYear) {
		return false
	}
	if !allBlank(inv.Boundary, inv.GWPVersion, inv.EFSource, inv.MethodologyNote) {
		return false
	}
	for _, r := range inv.Scope1Rows {
		if !emissions.Scope1RowBlank(r) {
			return false
		}
	}
	for _, r := range inv.Scope2Rows {
		if !emissions.Scope2RowBlank(r) {
			return false
		}
	}
	return true
}

// GHG builds the inventory upsert body. year is the wizard-level reporting
// year, used when the inventory has none of its own.
func GHG(inv *wizard.GHGInventory, year *int) *GHGPayload {
	if GHGIsEmpty(inv) {
		return nil
	}

	p := &GHGPayload{
		Boundary:        tag(enums.Boundary, inv.Boundary),
		GWPVersion:      tag(enums.GWPVersion, inv.GWPVersion),
		EFSource:        tag(enums.EmissionFactorSource, inv.EFSource),
		BaseYear:        intp(inv.BaseYear),
		MethodologyNote: text(inv.MethodologyNote),
	}
	if y, ok := resolve.First(resolve.Explicit(inv.Year), resolve.Explicit(year)); ok {
		p.Year = &y
	}

	for _, r := range inv.Scope1Rows {
		if emissions.Scope1RowBlank(r) {
			continue
		}
		p.Scope1Rows = append(p.Scope1Rows, scope1Row(r))
	}
	for _, r := range inv.Scope2Rows {
		if emissions.Scope2RowBlank(r) {
			continue
		}
		p.Scope2Rows = append(p.Scope2Rows, scope2Row(r))
	}

	t := emissions.ComputeGHG(inv)
	if t.HasScope1 {
		p.Scope1TCO2e = finite(t.Scope1T)
	}
	if t.HasScope2 {
		p.Scope2TCO2e = finite(t.Scope2T)
	}
	if t.HasScope3 {
		p.Scope3TCO2e = finite(t.Scope3T)
	}
	if p.Boundary != nil && *p.Boundary == enums.BoundaryEquityShare {
		p.EquitySharePct = num(inv.EquitySharePct)
		if t.EquityShare {
			p.TotalTCO2e = finite(t.CombinedT)
		}
	}
	return p
}

func scope1Row(r wizard.Scope1Row) Scope1RowPayload {
	out := Scope1RowPayload{
		Category:     tag(enums.Scope1Category, r.Category),
		ActivityType: text(r.ActivityType),
		Quantity:     num(r.Quantity),
		Unit:         text(r.Unit),
		EFKgPerUnit:  num(r.EFKgPerUnit),
		Refrigerant:  text(r.Refrigerant),
	}
	if out.Quantity != nil && out.EFKgPerUnit != nil {
		out.EmissionsTCO2e = finite(units.KgToTonnes(*out.Quantity * *out.EFKgPerUnit))
	}
	return out
}

func scope2Row(r wizard.Scope2Row) Scope2RowPayload {
	out := Scope2RowPayload{
		EnergyType:         tag(enums.EnergyType, r.EnergyType),
		SupplierEFKgPerKWh: num(r.SupplierEFKgPerKWh),
		HasREC:             r.HasREC,
		HasPPA:             r.HasPPA,
		GreenTariff:        r.GreenTariff,
	}
	if r.Quantity == nil {
		return out
	}
	kwh, err := units.ToKWh(*r.Quantity, r.Unit)
	if err != nil {
		return out
	}
	out.QuantityMWh = finite(kwh / units.KWhPerMWh)
	if out.SupplierEFKgPerKWh != nil {
		out.EmissionsTCO2e = finite(units.KgToTonnes(kwh * *out.SupplierEFKgPerKWh))
	}
	return out
}
