package emissions

import (
	"math"

	"github.com/rshade/esgsync/internal/enums"
	"github.com/rshade/esgsync/internal/units"
	"github.com/rshade/esgsync/internal/wizard"
)

// WaterTotals is the water balance, in cubic metres.
type WaterTotals struct {
	WithdrawalM3  float64
	FreshwaterM3  float64
	DischargeM3   float64
	ReusedM3      float64
	ConsumptionM3 float64
	Unconverted   int
}

// ComputeWater totals withdrawals and discharges.
// Consumption is withdrawal minus discharge, floored at zero.
func ComputeWater(w *wizard.Water) WaterTotals {
	var t WaterTotals
	if w == nil {
		return t
	}
	for _, r := range w.Withdrawals {
		m3, ok := cubicMetres(r.Quantity, r.Unit, &t.Unconverted)
		t.WithdrawalM3 += m3
		if q, _ := enums.WaterQuality.Normalize(r.Quality); ok && q == "freshwater" {
			t.FreshwaterM3 += m3
		}
	}
	for _, r := range w.Discharges {
		m3, ok := cubicMetres(r.Quantity, r.Unit, &t.Unconverted)
		t.DischargeM3 += m3
		if ok && r.Reused {
			t.ReusedM3 += m3
		}
	}
	t.ConsumptionM3 = math.Max(0, t.WithdrawalM3-t.DischargeM3)
	return t
}

func cubicMetres(q *float64, unit string, unconverted *int) (float64, bool) {
	if q == nil {
		return 0, false
	}
	v, err := units.ToCubicMetres(*q, unit)
	if err != nil {
		*unconverted++
		return 0, false
	}
	return v, true
}

// WasteTotals is the waste roll-up, in tonnes.
type WasteTotals struct {
	TotalT      float64
	DivertedT   float64
	DisposedT   float64
	HazardousT  float64
	UnroutedT   float64
	Unconverted int
}

// DiversionRate returns DivertedT / TotalT, or 0 for no waste.
func (w WasteTotals) DiversionRate() float64 {
	if w.TotalT <= 0 {
		return 0
	}
	return w.DivertedT / w.TotalT
}

// ComputeWaste totals waste mass by management route.
func ComputeWaste(w *wizard.Waste) WasteTotals {
	var t WasteTotals
	if w == nil {
		return t
	}
	for _, r := range w.Rows {
		if r.Quantity == nil {
			continue
		}
		tonnes, err := units.ToTonnes(*r.Quantity, r.Unit)
		if err != nil {
			t.Unconverted++
			continue
		}
		t.TotalT += tonnes
		route, _ := enums.ManagementRoute.Normalize(r.ManagementRoute)
		switch route {
		case enums.RouteDiverted:
			t.DivertedT += tonnes
		case enums.RouteDisposal:
			t.DisposedT += tonnes
		default:
			t.UnroutedT += tonnes
		}
		if h, _ := enums.HazardClass.Normalize(r.HazardClass); h == "hazardous" {
			t.HazardousT += tonnes
		}
	}
	return t
}
