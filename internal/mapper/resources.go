package mapper

import (
	"github.com/rshade/esgsync/internal/emissions"
	"github.com/rshade/esgsync/internal/enums"
	"github.com/rshade/esgsync/internal/resolve"
	"github.com/rshade/esgsync/internal/units"
	"github.com/rshade/esgsync/internal/wizard"
)

// ResourcesPayload is the body of PUT /companies/:id/environment/resources/upsert.
// All energy quantities are in MWh.
type ResourcesPayload struct {
	Year *int `json:"year,omitempty"`

	Purchased     []EnergyLinePayload `json:"purchased,omitempty"`
	SelfGenerated []EnergyLinePayload `json:"self_generated,omitempty"`
	Fuels         []FuelLinePayload   `json:"fuels,omitempty"`
	Sold          []EnergyLinePayload `json:"sold,omitempty"`

	IntensityDenominator *string  `json:"intensity_denominator,omitempty"`
	IntensityValue       *float64 `json:"intensity_value,omitempty"`

	TotalMWh        *float64 `json:"total_mwh,omitempty"`
	SelfConsumedMWh *float64 `json:"self_consumed_mwh,omitempty"`
	RenewableMWh    *float64 `json:"renewable_mwh,omitempty"`
	EnergyIntensity *float64 `json:"energy_intensity,omitempty"`
}

// EnergyLinePayload is a purchased, generated or sold energy line.
type EnergyLinePayload struct {
	EnergyType *string  `json:"energy_type,omitempty"`
	Source     *string  `json:"source,omitempty"`
	MWh        *float64 `json:"mwh,omitempty"`
	Renewable  bool     `json:"renewable,omitempty"`
}

// FuelLinePayload is a fuel line converted to MWh via its calorific value.
type FuelLinePayload struct {
	Fuel *string  `json:"fuel,omitempty"`
	MWh  *float64 `json:"mwh,omitempty"`
}

// ResourcesIsEmpty reports whether no energy row or intensity value is filled in.
func ResourcesIsEmpty(rc *wizard.ResourceConsumption) bool {
	if rc == nil {
		return true
	}
	for _, r := range rc.Purchased {
		if !blank(r.EnergyType) || r.Quantity != nil {
			return false
		}
	}
	for _, r := range rc.SelfGenerated {
		if !blank(r.Source) || r.Quantity != nil {
			return false
		}
	}
	for _, r := range rc.Fuels {
		if !blank(r.Fuel) || r.Quantity != nil {
			return false
		}
	}
	for _, r := range rc.Sold {
		if !blank(r.EnergyType) || r.Quantity != nil {
			return false
		}
	}
	return rc.Intensity == nil || (blank(rc.Intensity.Denominator) && rc.Intensity.Value == nil)
}

// Resources builds the energy upsert body.
func Resources(rc *wizard.ResourceConsumption, year *int) *ResourcesPayload {
	if ResourcesIsEmpty(rc) {
		return nil
	}

	p := &ResourcesPayload{}
	if y, ok := resolve.First(resolve.Explicit(rc.Year), resolve.Explicit(year)); ok {
		p.Year = &y
	}

	rows := 0
	for _, r := range rc.Purchased {
		if blank(r.EnergyType) && r.Quantity == nil {
			continue
		}
		rows++
		p.Purchased = append(p.Purchased, EnergyLinePayload{
			EnergyType: tag(enums.EnergyType, r.EnergyType),
			MWh:        energyMWh(r.Quantity, r.Unit),
			Renewable:  r.Renewable,
		})
	}
	for _, r := range rc.SelfGenerated {
		if blank(r.Source) && r.Quantity == nil {
			continue
		}
		rows++
		p.SelfGenerated = append(p.SelfGenerated, EnergyLinePayload{
			Source:    tag(enums.RenewableSource, r.Source),
			MWh:       energyMWh(r.Quantity, r.Unit),
			Renewable: r.Renewable,
		})
	}
	for _, r := range rc.Fuels {
		if blank(r.Fuel) && r.Quantity == nil {
			continue
		}
		rows++
		line := FuelLinePayload{Fuel: tag(enums.Fuel, r.Fuel)}
		if r.Quantity != nil {
			if mwh, err := units.FuelToMWh(r.Fuel, *r.Quantity, r.Unit); err == nil {
				line.MWh = finite(mwh)
			}
		}
		p.Fuels = append(p.Fuels, line)
	}
	for _, r := range rc.Sold {
		if blank(r.EnergyType) && r.Quantity == nil {
			continue
		}
		rows++
		p.Sold = append(p.Sold, EnergyLinePayload{
			EnergyType: tag(enums.EnergyType, r.EnergyType),
			MWh:        energyMWh(r.Quantity, r.Unit),
		})
	}

	if in := rc.Intensity; in != nil {
		p.IntensityDenominator = tag(enums.IntensityDenominator, in.Denominator)
		p.IntensityValue = num(in.Value)
	}

	if rows > 0 {
		t := emissions.ComputeEnergy(rc)
		p.TotalMWh = finite(t.TotalMWh)
		p.SelfConsumedMWh = finite(t.SelfConsumedMWh)
		p.RenewableMWh = finite(t.RenewableMWh)
		if t.HasIntensity {
			p.EnergyIntensity = finite(t.IntensityPerUnit)
		}
	}
	return p
}

func energyMWh(q *float64, unit string) *float64 {
	if q == nil {
		return nil
	}
	mwh, err := units.ToMWh(*q, unit)
	if err != nil {
		return nil
	}
	return finite(mwh)
}
