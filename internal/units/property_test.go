package units

import (
	"math"
	"testing"

	"github.com/leanovate/gopter"
	"github.com/leanovate/gopter/gen"
	"github.com/leanovate/gopter/prop"
)

// TestEnergyConversionProperties checks the MWh conversions hold for any
// non-negative quantity, not only the reference values.
func TestEnergyConversionProperties(t *testing.T) {
	parameters := gopter.DefaultTestParameters()
	parameters.MinSuccessfulTests = 200
	properties := gopter.NewProperties(parameters)

	properties.Property("kWh/1000 equals MWh", prop.ForAll(
		func(q float64) bool {
			got, err := ToMWh(q, "kWh")
			return err == nil && math.Abs(got-q/1000) <= 1e-9*math.Max(1, q)
		},
		gen.Float64Range(0, 1e9),
	))

	properties.Property("GJ uses the 277.78 factor", prop.ForAll(
		func(q float64) bool {
			got, err := ToMWh(q, "GJ")
			return err == nil && math.Abs(got-q*277.78/1000) <= 1e-9*math.Max(1, q)
		},
		gen.Float64Range(0, 1e9),
	))

	properties.Property("MWh round-trips through kWh", prop.ForAll(
		func(q float64) bool {
			kwh, err := ToKWh(q, "MWh")
			if err != nil {
				return false
			}
			back, err := ToMWh(kwh, "kWh")
			return err == nil && math.Abs(back-q) <= 1e-9*math.Max(1, q)
		},
		gen.Float64Range(0, 1e9),
	))

	properties.TestingRun(t)
}
