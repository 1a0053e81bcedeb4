package dashboard_test

import (
	"bytes"
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/rshade/esgsync/internal/dashboard"
	"github.com/rshade/esgsync/internal/wizard"
)

func f(v float64) *float64 { return &v }
func i(v int) *int         { return &v }
func b(v bool) *bool       { return &v }

func fullState() *wizard.State {
	s := wizard.New("3f0c8a5e-1d2b-4c7a-9e11-6b5d4a3c2f10", 2024)
	s.GHG = &wizard.GHGInventory{Scope1TCO2e: f(100), Scope2TCO2e: f(50), Scope3TCO2e: f(20)}
	s.Resources = &wizard.ResourceConsumption{
		Purchased: []wizard.PurchasedEnergyRow{
			{EnergyType: "electricity", Quantity: f(3000), Unit: "MWh", Renewable: true},
			{EnergyType: "heat", Quantity: f(1000), Unit: "MWh"},
		},
		Intensity: &wizard.Intensity{Denominator: "revenue_musd", Value: f(10)},
	}
	s.Water = &wizard.Water{
		Withdrawals: []wizard.WithdrawalRow{{Source: "municipal", Quantity: f(500), Unit: "m3"}},
		Discharges:  []wizard.DischargeRow{{Destination: "sewer", Quantity: f(200), Unit: "m3"}},
	}
	s.Waste = &wizard.Waste{Rows: []wizard.WasteRow{
		{Stream: "paper", Quantity: f(3), Unit: "t", ManagementRoute: "diversion"},
		{Stream: "mixed", Quantity: f(1), Unit: "t", ManagementRoute: "disposed", HazardClass: "hazardous"},
	}}
	s.Biodiversity = &wizard.Biodiversity{
		Sites: []wizard.Site{
			{Name: "North", Designations: []string{"Ramsar site"}},
			{Name: "South"},
		},
		Impacts: []wizard.Impact{
			{SiteName: "North", Severity: i(5)},
			{SiteName: "South", Severity: i(2)},
		},
	}
	s.Governance = &wizard.Governance{
		Directors: []wizard.Director{
			{Name: "A", Independent: b(true), Gender: "Female"},
			{Name: "B", Independent: b(false), Gender: "male"},
			{Name: "C", Independent: b(true), Gender: "female"},
			{Name: "D", Independent: b(false), Gender: "male"},
		},
		Attendance: []wizard.CommitteeAttendance{
			{Committee: "audit", MeetingsHeld: i(10), MeetingsAttended: i(9)},
			{Committee: "remuneration", MeetingsHeld: i(10), MeetingsAttended: i(7)},
		},
	}
	s.Social = &wizard.Social{
		Workforce: []wizard.WorkforceRow{{Location: "HQ", Female: i(40), Male: i(60)}},
		Training:  &wizard.Training{TotalHours: f(2000)},
		HealthSafety: &wizard.HealthSafety{
			LostTimeInjuries:    i(2),
			RecordableIncidents: i(4),
			HoursWorked:         f(2_000_000),
		},
	}
	return s
}

func TestCompute(t *testing.T) {
	k := dashboard.Compute(fullState())

	require.NotNil(t, k.Year)
	assert.Equal(t, 2024, *k.Year)

	assert.InDelta(t, 150, k.Emissions.TotalT, 1e-9)
	require.NotNil(t, k.Emissions.Scope3T)
	assert.InDelta(t, 20, *k.Emissions.Scope3T, 1e-9)
	require.NotNil(t, k.Emissions.Intensity)
	assert.InDelta(t, 15, *k.Emissions.Intensity, 1e-9)
	assert.Equal(t, "revenue_musd", k.Emissions.IntensityDenominator)

	assert.InDelta(t, 4000, k.Energy.TotalMWh, 1e-9)
	require.NotNil(t, k.Energy.RenewableShare)
	assert.InDelta(t, 0.75, *k.Energy.RenewableShare, 1e-9)

	assert.InDelta(t, 500, k.Water.WithdrawalM3, 1e-9)
	assert.InDelta(t, 300, k.Water.ConsumptionM3, 1e-9)

	assert.InDelta(t, 4, k.Waste.TotalT, 1e-9)
	assert.InDelta(t, 1, k.Waste.HazardousT, 1e-9)
	require.NotNil(t, k.Waste.DiversionRate)
	assert.InDelta(t, 0.75, *k.Waste.DiversionRate, 1e-9)

	assert.Equal(t, 2, k.Biodiversity.Sites)
	assert.Equal(t, 1, k.Biodiversity.ProtectedSites)
	assert.Equal(t, 1, k.Biodiversity.HighSeverityImpacts)

	assert.Equal(t, 4, k.Governance.BoardSize)
	require.NotNil(t, k.Governance.IndependentShare)
	assert.InDelta(t, 0.5, *k.Governance.IndependentShare, 1e-9)
	require.NotNil(t, k.Governance.FemaleShare)
	assert.InDelta(t, 0.5, *k.Governance.FemaleShare, 1e-9)
	require.NotNil(t, k.Governance.AttendanceRate)
	assert.InDelta(t, 0.8, *k.Governance.AttendanceRate, 1e-9)

	assert.Equal(t, 100, k.Social.Headcount)
	require.NotNil(t, k.Social.FemaleShare)
	assert.InDelta(t, 0.4, *k.Social.FemaleShare, 1e-9)
	require.NotNil(t, k.Social.TrainingHoursPerEmployee)
	assert.InDelta(t, 20, *k.Social.TrainingHoursPerEmployee, 1e-9)
	require.NotNil(t, k.Social.LTIFR)
	assert.InDelta(t, 1, *k.Social.LTIFR, 1e-9)
	require.NotNil(t, k.Social.TRIR)
	assert.InDelta(t, 2, *k.Social.TRIR, 1e-9)

	assert.Empty(t, k.Completeness.Missing)
	assert.InDelta(t, 1, k.Completeness.Ratio, 1e-9)
	assert.False(t, k.Equivalencies.IsEmpty)
}

func TestCompute_EmptyState(t *testing.T) {
	for name, s := range map[string]*wizard.State{
		"nil":   nil,
		"blank": wizard.New("", 2024),
	} {
		t.Run(name, func(t *testing.T) {
			k := dashboard.Compute(s)
			assert.Zero(t, k.Emissions.TotalT)
			assert.Nil(t, k.Emissions.Intensity)
			assert.Nil(t, k.Energy.RenewableShare)
			assert.Nil(t, k.Waste.DiversionRate)
			assert.Nil(t, k.Governance.AttendanceRate)
			assert.Nil(t, k.Social.FemaleShare)
			assert.Empty(t, k.Completeness.Completed)
			assert.Len(t, k.Completeness.Missing, 7)
			assert.Zero(t, k.Completeness.Ratio)
			assert.True(t, k.Equivalencies.IsEmpty)
		})
	}
}

func TestCompute_EquityShareScalesTotal(t *testing.T) {
	s := wizard.New("", 2024)
	s.GHG = &wizard.GHGInventory{
		Scope1TCO2e:    f(100),
		Scope2TCO2e:    f(50),
		Boundary:       "Equity share",
		EquitySharePct: f(40),
	}
	k := dashboard.Compute(s)
	assert.True(t, k.Emissions.EquityAdjusted)
	assert.InDelta(t, 0.4, k.Emissions.EquityFactor, 1e-9)
	assert.InDelta(t, 60, k.Emissions.TotalT, 1e-9)
	require.NotNil(t, k.Emissions.Scope1T)
	assert.InDelta(t, 100, *k.Emissions.Scope1T, 1e-9)
}

func TestCompute_PartialCompleteness(t *testing.T) {
	s := wizard.New("", 2024)
	s.GHG = &wizard.GHGInventory{Scope1TCO2e: f(1)}
	s.Waste = &wizard.Waste{Rows: []wizard.WasteRow{{Stream: "paper", Quantity: f(1), Unit: "t"}}}

	c := dashboard.Compute(s).Completeness
	assert.Equal(t, []string{"ghg", "waste"}, c.Completed)
	assert.Equal(t, []string{"governance", "social", "resources", "water", "biodiversity"}, c.Missing)
	assert.InDelta(t, 2.0/7.0, c.Ratio, 1e-9)
}

func TestEquivalent(t *testing.T) {
	tests := []struct {
		name      string
		tCO2e     float64
		wantEmpty bool
		wantMiles string
	}{
		{name: "below threshold", tCO2e: 0.0005, wantEmpty: true},
		{name: "one tonne", tCO2e: 1, wantMiles: "5,208"},
		{name: "large", tCO2e: 1_000, wantMiles: "~5.2 million"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := dashboard.Equivalent(tt.tCO2e)
			assert.Equal(t, tt.wantEmpty, got.IsEmpty)
			if tt.wantEmpty {
				assert.Empty(t, got.Results)
				return
			}
			require.Len(t, got.Results, 3)
			assert.Equal(t, dashboard.MilesDriven, got.Results[0].Type)
			assert.Equal(t, tt.wantMiles, got.Results[0].Formatted)
			assert.Contains(t, got.DisplayText, tt.wantMiles+" miles")
		})
	}
}

func TestFormatLarge(t *testing.T) {
	assert.Equal(t, "18,248", dashboard.FormatLarge(18248.2))
	assert.Equal(t, "~1.5 million", dashboard.FormatLarge(1_500_000))
	assert.Equal(t, "~1.5 billion", dashboard.FormatLarge(1_500_000_000))
}

func TestRender(t *testing.T) {
	k := dashboard.Compute(fullState())

	t.Run("json", func(t *testing.T) {
		var buf bytes.Buffer
		require.NoError(t, dashboard.Render(&buf, k, dashboard.FormatJSON, dashboard.RenderOptions{}))

		var decoded map[string]any
		require.NoError(t, json.Unmarshal(buf.Bytes(), &decoded))
		emissions, ok := decoded["emissions"].(map[string]any)
		require.True(t, ok)
		assert.InDelta(t, 150, emissions["total_tco2e"], 1e-9)
		eq, ok := decoded["equivalencies"].(map[string]any)
		require.True(t, ok)
		results, ok := eq["results"].([]any)
		require.True(t, ok)
		first, ok := results[0].(map[string]any)
		require.True(t, ok)
		assert.Equal(t, "miles_driven", first["type"])
	})

	t.Run("plain table", func(t *testing.T) {
		var buf bytes.Buffer
		require.NoError(t, dashboard.Render(&buf, k, dashboard.FormatTable, dashboard.RenderOptions{}))
		out := buf.String()
		assert.Contains(t, out, "ESG dashboard 2024")
		assert.Contains(t, out, "Total tCO2e (scope 1+2)")
		assert.Contains(t, out, "150.00")
		assert.Contains(t, out, "75.0%")
		assert.Contains(t, out, "Equivalent to driving")
		assert.NotContains(t, out, "\x1b[")
	})

	t.Run("unknown format", func(t *testing.T) {
		err := dashboard.Render(&bytes.Buffer{}, k, "xml", dashboard.RenderOptions{})
		require.ErrorIs(t, err, dashboard.ErrUnknownFormat)
	})
}
