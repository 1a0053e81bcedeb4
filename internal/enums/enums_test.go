package enums

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestSetNormalize(t *testing.T) {
	tests := []struct {
		name   string
		set    *Set
		raw    string
		want   string
		wantOK bool
	}{
		{name: "label", set: Boundary, raw: "Equity share", want: BoundaryEquityShare, wantOK: true},
		{name: "hyphenated", set: Boundary, raw: "equity-share", want: BoundaryEquityShare, wantOK: true},
		{name: "screaming snake", set: Boundary, raw: "OPERATIONAL_CONTROL", want: BoundaryOperationalControl, wantOK: true},
		{name: "tag with padding", set: Boundary, raw: "  financial_control ", want: BoundaryFinancialControl, wantOK: true},
		{name: "alias", set: WaterSource, raw: "Mains", want: "third_party", wantOK: true},
		{name: "upper-case tag", set: GWPVersion, raw: "ar6", want: "AR6", wantOK: true},
		{name: "blank", set: Boundary, raw: "   ", wantOK: false},
		{name: "unknown", set: Boundary, raw: "consolidated", wantOK: false},
		{name: "label with unicode", set: ProtectedDesignation, raw: "natura 2000", want: "natura_2000", wantOK: true},
		{name: "age band digits", set: AgeBand, raw: "30-50", want: "30_50", wantOK: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, ok := tt.set.Normalize(tt.raw)
			assert.Equal(t, tt.wantOK, ok)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestNormalizeAll(t *testing.T) {
	got := Committee.NormalizeAll([]string{"Audit", "", "ESG", "audit", "golf"})
	assert.Equal(t, []string{"audit", "sustainability"}, got)
	assert.Nil(t, Committee.NormalizeAll(nil))
}

func TestLabelAndTags(t *testing.T) {
	assert.Equal(t, "Equity share", Boundary.Label(BoundaryEquityShare))
	assert.Equal(t, "unknown", Boundary.Label("unknown"))
	assert.Equal(t, []string{"equity_share", "financial_control", "operational_control"}, Boundary.Tags())
	assert.Equal(t, "boundary", Boundary.Name())
}

func TestMethodAllowed(t *testing.T) {
	tests := []struct {
		route  string
		method string
		want   bool
	}{
		{"Disposal", "Recycling", false},
		{"Disposal", "Landfilling", true},
		{"disposal", "incineration", true},
		{"Diverted from disposal", "Recycling", true},
		{"diverted", "landfill", false},
		{"unknown", "recycling", false},
		{"disposal", "", false},
	}

	for _, tt := range tests {
		t.Run(tt.route+"/"+tt.method, func(t *testing.T) {
			assert.Equal(t, tt.want, MethodAllowed(tt.route, tt.method))
		})
	}
}

func TestAllowedMethodsReturnsCopy(t *testing.T) {
	methods := AllowedMethods(RouteDisposal)
	methods[0] = "mutated"
	assert.NotEqual(t, "mutated", AllowedMethods(RouteDisposal)[0])
	assert.Nil(t, AllowedMethods("nope"))
}
