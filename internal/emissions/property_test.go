package emissions

import (
	"math"
	"testing"

	"github.com/leanovate/gopter"
	"github.com/leanovate/gopter/gen"
	"github.com/leanovate/gopter/prop"

	"github.com/rshade/esgsync/internal/wizard"
)

// rowsFrom builds scope 1 rows, leaving quantity or factor blank when the
// generated value is negative.
func rowsFrom(qs, efs []float64) []wizard.Scope1Row {
	n := min(len(qs), len(efs))
	rows := make([]wizard.Scope1Row, n)
	for i := 0; i < n; i++ {
		if qs[i] >= 0 {
			rows[i].Quantity = f(qs[i])
		}
		if efs[i] >= 0 {
			rows[i].EFKgPerUnit = f(efs[i])
		}
	}
	return rows
}

func near(a, b float64) bool {
	return math.Abs(a-b) <= 1e-9*math.Max(1, math.Abs(b))
}

func TestGHGProperties(t *testing.T) {
	parameters := gopter.DefaultTestParameters()
	parameters.MinSuccessfulTests = 200
	properties := gopter.NewProperties(parameters)

	properties.Property("scope 1 tonnes is the row sum over 1000", prop.ForAll(
		func(qs, efs []float64) bool {
			rows := rowsFrom(qs, efs)
			var want float64
			for _, r := range rows {
				if r.Quantity != nil && r.EFKgPerUnit != nil {
					want += *r.Quantity * *r.EFKgPerUnit
				}
			}
			got := ComputeGHG(&wizard.GHGInventory{Scope1Rows: rows})
			return near(got.Scope1T, want/1000) && got.HasScope1 == (len(rows) > 0)
		},
		gen.SliceOf(gen.Float64Range(-10, 1e6)),
		gen.SliceOf(gen.Float64Range(-1, 100)),
	))

	properties.Property("equity share scales the combined total by the clamped pct", prop.ForAll(
		func(s1, s2, pct float64) bool {
			got := ComputeGHG(&wizard.GHGInventory{
				Scope1TCO2e:    f(s1),
				Scope2TCO2e:    f(s2),
				Boundary:       "Equity share",
				EquitySharePct: f(pct),
			})
			clamped := math.Min(math.Max(pct, 0), 100)
			return near(got.CombinedT, (s1+s2)*clamped/100) &&
				got.Scope1T == s1 && got.Scope2T == s2
		},
		gen.Float64Range(0, 1e7),
		gen.Float64Range(0, 1e7),
		gen.Float64Range(-50, 150),
	))

	properties.Property("non equity boundaries never scale", prop.ForAll(
		func(s1, s2, pct float64) bool {
			got := ComputeGHG(&wizard.GHGInventory{
				Scope1TCO2e:    f(s1),
				Scope2TCO2e:    f(s2),
				Boundary:       "Financial control",
				EquitySharePct: f(pct),
			})
			return near(got.CombinedT, s1+s2)
		},
		gen.Float64Range(0, 1e7),
		gen.Float64Range(0, 1e7),
		gen.Float64Range(0, 100),
	))

	properties.TestingRun(t)
}

func TestEnergyProperties(t *testing.T) {
	properties := gopter.NewProperties(gopter.DefaultTestParameters())

	properties.Property("total is purchased + fuels + max(0, generated - sold)", prop.ForAll(
		func(p, g, s float64) bool {
			got := ComputeEnergy(&wizard.ResourceConsumption{
				Purchased:     []wizard.PurchasedEnergyRow{{Quantity: f(p), Unit: "kWh"}},
				SelfGenerated: []wizard.SelfGeneratedRow{{Quantity: f(g), Unit: "MWh"}},
				Sold:          []wizard.EnergySoldRow{{Quantity: f(s), Unit: "MWh"}},
			})
			return near(got.TotalMWh, p/1000+math.Max(0, g-s))
		},
		gen.Float64Range(0, 1e9),
		gen.Float64Range(0, 1e5),
		gen.Float64Range(0, 1e5),
	))

	properties.TestingRun(t)
}
