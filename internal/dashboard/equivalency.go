package dashboard

import (
	"fmt"
	"math"

	"github.com/rshade/esgsync/internal/units"
)

// EPA greenhouse gas equivalency factors, in kg CO2e per unit of activity.
// An equivalency is kg CO2e divided by the factor.
const (
	// MilesDrivenFactor is kg CO2e per mile in an average passenger vehicle.
	MilesDrivenFactor = 0.192

	// SmartphoneChargeFactor is kg CO2e per full smartphone charge.
	SmartphoneChargeFactor = 0.00822

	// TreeSeedlingFactor is kg CO2e absorbed by one seedling grown for 10 years.
	TreeSeedlingFactor = 60.0
)

// Display thresholds for equivalencies.
const (
	// MinEquivalencyKg is the smallest footprint that gets equivalencies.
	MinEquivalencyKg = 1.0

	// MillionThreshold switches formatting to "~X.X million".
	MillionThreshold = 1_000_000

	// BillionThreshold switches formatting to "~X.X billion".
	BillionThreshold = 1_000_000_000
)

// EquivalencyType is a category of carbon equivalency.
type EquivalencyType int

const (
	// MilesDriven converts CO2e to passenger vehicle miles.
	MilesDriven EquivalencyType = iota

	// SmartphonesCharged converts CO2e to full smartphone charges.
	SmartphonesCharged

	// TreeSeedlings converts CO2e to seedlings grown for 10 years.
	TreeSeedlings
)

func (e EquivalencyType) String() string {
	switch e {
	case MilesDriven:
		return "miles_driven"
	case SmartphonesCharged:
		return "smartphones_charged"
	case TreeSeedlings:
		return "tree_seedlings"
	default:
		return fmt.Sprintf("EquivalencyType(%d)", int(e))
	}
}

// MarshalText renders the type by name in JSON output.
func (e EquivalencyType) MarshalText() ([]byte, error) {
	return []byte(e.String()), nil
}

// Equivalency is one calculated equivalency.
type Equivalency struct {
	Type      EquivalencyType `json:"type"`
	Value     float64         `json:"value"`
	Formatted string          `json:"formatted"`
	Label     string          `json:"label"`
}

// Equivalencies is the equivalency block for a footprint.
type Equivalencies struct {
	InputKg     float64       `json:"input_kg"`
	Results     []Equivalency `json:"results,omitempty"`
	DisplayText string        `json:"display_text,omitempty"`
	IsEmpty     bool          `json:"is_empty"`
}

// Equivalent converts tonnes CO2e into relatable equivalencies.
// Footprints under MinEquivalencyKg, or non-finite input, yield an empty block.
func Equivalent(tCO2e float64) Equivalencies {
	kg := tCO2e * units.KgPerTonne
	if math.IsNaN(kg) || math.IsInf(kg, 0) {
		return Equivalencies{IsEmpty: true}
	}
	if kg < MinEquivalencyKg {
		return Equivalencies{InputKg: kg, IsEmpty: true}
	}

	miles := kg / MilesDrivenFactor
	phones := kg / SmartphoneChargeFactor
	trees := kg / TreeSeedlingFactor

	out := Equivalencies{
		InputKg: kg,
		Results: []Equivalency{
			{Type: MilesDriven, Value: miles, Formatted: FormatLarge(miles), Label: "miles driven"},
			{Type: SmartphonesCharged, Value: phones, Formatted: FormatLarge(phones), Label: "smartphones charged"},
			{Type: TreeSeedlings, Value: trees, Formatted: FormatLarge(trees), Label: "tree seedlings grown for 10 years"},
		},
	}
	out.DisplayText = fmt.Sprintf("Equivalent to driving ~%s miles or charging ~%s smartphones",
		out.Results[0].Formatted, out.Results[1].Formatted)
	return out
}

// FormatLarge formats a count for display.
// Example: FormatLarge(1500000000) returns "~1.5 billion".
func FormatLarge(n float64) string {
	if n >= BillionThreshold {
		return fmt.Sprintf("~%.1f billion", n/BillionThreshold)
	}
	if n >= MillionThreshold {
		return fmt.Sprintf("~%.1f million", n/MillionThreshold)
	}
	return units.FormatNumber(int64(math.Round(n)))
}
