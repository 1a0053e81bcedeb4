package emissions

import (
	"math"

	"github.com/rshade/esgsync/internal/enums"
	"github.com/rshade/esgsync/internal/units"
	"github.com/rshade/esgsync/internal/wizard"
)

// EnergyTotals is the energy roll-up for one reporting year, in MWh.
type EnergyTotals struct {
	PurchasedMWh     float64
	FuelsMWh         float64
	SelfGeneratedMWh float64
	SoldMWh          float64
	SelfConsumedMWh  float64
	TotalMWh         float64
	RenewableMWh     float64

	// IntensityPerUnit is TotalMWh divided by the intensity denominator value.
	IntensityPerUnit float64
	HasIntensity     bool

	// Unconverted counts rows with a quantity whose unit could not be converted.
	Unconverted int
}

// RenewableShare returns RenewableMWh / TotalMWh, or 0 for no consumption.
func (e EnergyTotals) RenewableShare() float64 {
	if e.TotalMWh <= 0 {
		return 0
	}
	return e.RenewableMWh / e.TotalMWh
}

// ComputeEnergy totals energy consumption:
// purchased + fuels + max(0, self-generated - sold).
func ComputeEnergy(rc *wizard.ResourceConsumption) EnergyTotals {
	var e EnergyTotals
	if rc == nil {
		return e
	}

	var renewablePurchased, renewableSelfGen, renewableFuels float64
	for _, r := range rc.Purchased {
		mwh, ok := e.mwh(r.Quantity, func(q float64) (float64, error) { return units.ToMWh(q, r.Unit) })
		e.PurchasedMWh += mwh
		if ok && r.Renewable {
			renewablePurchased += mwh
		}
	}
	for _, r := range rc.Fuels {
		mwh, ok := e.mwh(r.Quantity, func(q float64) (float64, error) { return units.FuelToMWh(r.Fuel, q, r.Unit) })
		e.FuelsMWh += mwh
		if tag, _ := enums.Fuel.Normalize(r.Fuel); ok && tag == "biomass" {
			renewableFuels += mwh
		}
	}
	for _, r := range rc.SelfGenerated {
		mwh, ok := e.mwh(r.Quantity, func(q float64) (float64, error) { return units.ToMWh(q, r.Unit) })
		e.SelfGeneratedMWh += mwh
		if ok && r.Renewable {
			renewableSelfGen += mwh
		}
	}
	for _, r := range rc.Sold {
		mwh, _ := e.mwh(r.Quantity, func(q float64) (float64, error) { return units.ToMWh(q, r.Unit) })
		e.SoldMWh += mwh
	}

	e.SelfConsumedMWh = math.Max(0, e.SelfGeneratedMWh-e.SoldMWh)
	e.TotalMWh = e.PurchasedMWh + e.FuelsMWh + e.SelfConsumedMWh

	// Sold energy is assumed to come from the renewable and non-renewable
	// generation in proportion.
	e.RenewableMWh = renewablePurchased + renewableFuels
	if e.SelfGeneratedMWh > 0 {
		e.RenewableMWh += e.SelfConsumedMWh * renewableSelfGen / e.SelfGeneratedMWh
	}

	if in := rc.Intensity; in != nil && in.Value != nil && *in.Value > 0 && finite(*in.Value) {
		e.IntensityPerUnit = e.TotalMWh / *in.Value
		e.HasIntensity = true
	}
	return e
}

func (e *EnergyTotals) mwh(q *float64, conv func(float64) (float64, error)) (float64, bool) {
	if q == nil {
		return 0, false
	}
	v, err := conv(*q)
	if err != nil {
		e.Unconverted++
		return 0, false
	}
	return v, true
}
