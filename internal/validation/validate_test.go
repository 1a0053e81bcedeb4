package validation

import (
	"fmt"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/rshade/esgsync/internal/wizard"
)

const companyID = "3f1c2b9a-7d4e-4a51-9b8c-0e2d6f5a4c11"

func f(v float64) *float64 { return &v }
func i(v int) *int         { return &v }

func validState() *wizard.State {
	s := wizard.New(companyID, 2024)
	s.GHG = &wizard.GHGInventory{Year: i(2024), Scope1TCO2e: f(100), Scope2TCO2e: f(50)}
	return s
}

func fields(errs []FieldError) []string {
	out := make([]string, 0, len(errs))
	for _, e := range errs {
		out = append(out, e.Field)
	}
	return out
}

func TestValidate_ValidState(t *testing.T) {
	for _, mode := range []Mode{ModeDraft, ModeSubmit} {
		r := Validate(validState(), mode)
		assert.True(t, r.Valid, r.ErrorSummary())
		assert.Empty(t, r.Errors)
		assert.NoError(t, r.Err())
		assert.Equal(t, mode, r.Mode)
	}
}

func TestValidate_NilState(t *testing.T) {
	r := Validate(nil, ModeDraft)
	assert.False(t, r.Valid)
	assert.Equal(t, []string{"state"}, fields(r.Errors))
}

func TestValidate_WasteRouteRestrictsMethod(t *testing.T) {
	s := validState()
	s.Waste = &wizard.Waste{Rows: []wizard.WasteRow{
		{Stream: "General", ManagementRoute: "Disposal", ManagementMethod: "Recycling", Quantity: f(1), Unit: "t"},
		{Stream: "General", ManagementRoute: "Disposal", ManagementMethod: "Landfill", Quantity: f(1), Unit: "t"},
		{Stream: "Paper", ManagementRoute: "Diverted from disposal", ManagementMethod: "Recycling", Quantity: f(1), Unit: "t"},
	}}

	r := Validate(s, ModeDraft)
	require.False(t, r.Valid)
	require.Len(t, r.Errors, 1)
	assert.Equal(t, "waste.rows[0].managementMethod", r.Errors[0].Field)
	assert.Contains(t, r.Errors[0].Message, "Recycling is not allowed for route Directed to disposal")
	assert.Contains(t, r.Errors[0].Message, "landfill")
}

func TestValidate_Rules(t *testing.T) {
	tests := []struct {
		name      string
		mutate    func(s *wizard.State)
		mode      Mode
		wantField string
	}{
		{
			name:      "equity share requires pct",
			mutate:    func(s *wizard.State) { s.GHG.Boundary = "Equity share" },
			wantField: "ghg.equitySharePct",
		},
		{
			name:      "equity pct above 100",
			mutate:    func(s *wizard.State) { s.GHG.Boundary = "Equity share"; s.GHG.EquitySharePct = f(140) },
			wantField: "ghg.equitySharePct",
		},
		{
			name:      "negative scope total",
			mutate:    func(s *wizard.State) { s.GHG.Scope1TCO2e = f(-1) },
			wantField: "ghg.scope1",
		},
		{
			name: "fugitive needs refrigerant",
			mutate: func(s *wizard.State) {
				s.GHG.Scope1Rows = []wizard.Scope1Row{{Category: "Fugitive", Quantity: f(1), EFKgPerUnit: f(1430)}}
			},
			wantField: "ghg.scope1Rows[0].refrigerant",
		},
		{
			name:      "unknown boundary",
			mutate:    func(s *wizard.State) { s.GHG.Boundary = "Vibes" },
			wantField: "ghg.boundary",
		},
		{
			name: "scope 2 unit must be energy",
			mutate: func(s *wizard.State) {
				s.GHG.Scope2Rows = []wizard.Scope2Row{{Quantity: f(5), Unit: "L", SupplierEFKgPerKWh: f(0.2)}}
			},
			wantField: "ghg.scope2Rows[0].unit",
		},
		{
			name: "fuel without calorific value",
			mutate: func(s *wizard.State) {
				s.Resources = &wizard.ResourceConsumption{Fuels: []wizard.FuelRow{{Fuel: "Coal", Quantity: f(5), Unit: "L"}}}
			},
			wantField: "resources.fuels[0].unit",
		},
		{
			name: "reversed period",
			mutate: func(s *wizard.State) {
				s.Water = &wizard.Water{Withdrawals: []wizard.WithdrawalRow{
					{Quantity: f(1), Unit: "m3", Period: wizard.RangePeriod("2024-05-01", "2024-01-01")},
				}}
			},
			wantField: "water.withdrawals[0].period",
		},
		{
			name: "period with both shapes",
			mutate: func(s *wizard.State) {
				s.Water = &wizard.Water{Withdrawals: []wizard.WithdrawalRow{
					{Quantity: f(1), Unit: "m3", Period: &wizard.Period{Kind: "month", Month: "2024-01", From: "2024-01-01"}},
				}}
			},
			wantField: "water.withdrawals[0].period",
		},
		{
			name: "impact score out of range",
			mutate: func(s *wizard.State) {
				s.Biodiversity = &wizard.Biodiversity{Impacts: []wizard.Impact{{Activity: "Pollution", Severity: i(7)}}}
			},
			wantField: "biodiversity.impacts[0].severity",
		},
		{
			name: "latitude out of range",
			mutate: func(s *wizard.State) {
				s.Biodiversity = &wizard.Biodiversity{Sites: []wizard.Site{{Name: "A", Latitude: f(95), Longitude: f(0)}}}
			},
			wantField: "biodiversity.sites[0].latitude",
		},
		{
			name: "attended more than held",
			mutate: func(s *wizard.State) {
				s.Governance = &wizard.Governance{Attendance: []wizard.CommitteeAttendance{
					{Committee: "Audit", MeetingsHeld: i(4), MeetingsAttended: i(5)},
				}}
			},
			wantField: "governance.attendance[0].meetingsAttended",
		},
		{
			name: "negative headcount",
			mutate: func(s *wizard.State) {
				s.Social = &wizard.Social{Workforce: []wizard.WorkforceRow{{Female: i(-3)}}}
			},
			wantField: "social.workforce[0].female",
		},
		{
			name: "certificate of the wrong type",
			mutate: func(s *wizard.State) {
				s.Profile = &wizard.Profile{Name: "Acme", RegistrationCertificate: &wizard.Attachment{Name: "cert.docx"}}
			},
			wantField: "profile.registrationCertificate",
		},
		{
			name:      "malformed company id",
			mutate:    func(s *wizard.State) { s.CompanyID = "acme" },
			wantField: "companyId",
		},
		{
			name:      "submit needs company id",
			mutate:    func(s *wizard.State) { s.CompanyID = "" },
			mode:      ModeSubmit,
			wantField: "companyId",
		},
		{
			name:      "submit needs a year",
			mutate:    func(s *wizard.State) { s.Year = nil; s.GHG.Year = nil },
			mode:      ModeSubmit,
			wantField: "year",
		},
		{
			name:      "submit needs some content",
			mutate:    func(s *wizard.State) { s.GHG = nil },
			mode:      ModeSubmit,
			wantField: "state",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s := validState()
			tt.mutate(s)
			r := Validate(s, tt.mode)
			assert.False(t, r.Valid)
			assert.Contains(t, fields(r.Errors), tt.wantField, r.ErrorSummary())
			assert.ErrorIs(t, r.Err(), ErrInvalid)
		})
	}
}

func TestValidate_DraftSkipsCompleteness(t *testing.T) {
	s := &wizard.State{}
	r := Validate(s, ModeDraft)
	assert.True(t, r.Valid, r.ErrorSummary())

	r = Validate(s, ModeSubmit)
	assert.ElementsMatch(t, []string{"companyId", "year", "state"}, fields(r.Errors))
}

func TestValidate_Warnings(t *testing.T) {
	s := validState()
	s.GHG.Scope1Rows = []wizard.Scope1Row{{Category: "Mobile", Quantity: f(1000), EFKgPerUnit: f(2)}}
	s.Water = &wizard.Water{
		Withdrawals: []wizard.WithdrawalRow{{Quantity: f(1), Unit: "m3"}},
		Discharges:  []wizard.DischargeRow{{Quantity: f(2), Unit: "m3"}},
	}
	s.Resources = &wizard.ResourceConsumption{
		SelfGenerated: []wizard.SelfGeneratedRow{{Quantity: f(1), Unit: "MWh"}},
		Sold:          []wizard.EnergySoldRow{{Quantity: f(3), Unit: "MWh"}},
	}
	s.Governance = &wizard.Governance{OwnershipStructure: "Listed", Notes: "{oops"}

	r := Validate(s, ModeSubmit)
	assert.True(t, r.Valid, r.ErrorSummary())
	assert.ElementsMatch(t,
		[]string{"ghg.scope1", "water.discharges", "resources.sold", "governance.notes"},
		fields(r.Warnings))
}

func TestResult_OneErrorPerField(t *testing.T) {
	r := newResult(ModeDraft)
	r.addError("water.withdrawals[0].period", "first")
	r.addError("water.withdrawals[0].period", "second")
	r.addError("water.withdrawals[0].period.month", "child")

	require.Len(t, r.Errors, 2)
	assert.Equal(t, "first", r.Errors[0].Message)
	assert.Len(t, r.FieldErrors("water.withdrawals[0].period"), 2)
	assert.Len(t, r.FieldErrors("water.withdrawals"), 2)
	assert.Empty(t, r.FieldErrors("water.discharges"))
}

func TestErrorSummary_Truncates(t *testing.T) {
	r := newResult(ModeDraft)
	for n := 0; n < 7; n++ {
		r.addError(fmt.Sprintf("f%d", n), "bad")
	}
	summary := r.ErrorSummary()
	assert.True(t, strings.HasPrefix(summary, "7 validation error(s): f0: bad"))
	assert.True(t, strings.HasSuffix(summary, "; and 2 more"))
	assert.Empty(t, newResult(ModeDraft).ErrorSummary())
}

func TestFieldPath(t *testing.T) {
	assert.Equal(t, "ghg.scope1Rows[0].quantity", fieldPath("ghg", "/scope1Rows/0/quantity"))
	assert.Equal(t, "water", fieldPath("water", ""))
	assert.Equal(t, "x.a/b", fieldPath("x", "/a~1b"))
}

func TestParseMode(t *testing.T) {
	m, err := ParseMode("SUBMIT")
	require.NoError(t, err)
	assert.Equal(t, ModeSubmit, m)
	m, err = ParseMode("")
	require.NoError(t, err)
	assert.Equal(t, ModeDraft, m)
	_, err = ParseMode("final")
	assert.Error(t, err)
	assert.Equal(t, "submit", ModeSubmit.String())
}

func TestNew_CompilesAllSchemas(t *testing.T) {
	v, err := New()
	require.NoError(t, err)
	assert.Len(t, v.schemas, 8)
	assert.Contains(t, v.schemas, "ghg")
}
