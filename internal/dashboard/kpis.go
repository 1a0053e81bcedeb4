// Package dashboard derives headline ESG indicators from a wizard state.
//
// Every figure is computed from the same roll-ups and request bodies the
// sync sends, so the dashboard never disagrees with what was disclosed.
// Ratios whose denominator is missing or zero are left nil rather than
// reported as zero.
package dashboard

import (
	"github.com/rshade/esgsync/internal/emissions"
	"github.com/rshade/esgsync/internal/mapper"
	"github.com/rshade/esgsync/internal/wizard"
)

// HighSeverity is the lowest impact severity score counted as high.
const HighSeverity = 4

// KPIs is the dashboard for one reporting year.
type KPIs struct {
	CompanyID string `json:"company_id,omitempty"`
	Year      *int   `json:"year,omitempty"`

	Emissions     EmissionsKPIs    `json:"emissions"`
	Energy        EnergyKPIs       `json:"energy"`
	Water         WaterKPIs        `json:"water"`
	Waste         WasteKPIs        `json:"waste"`
	Biodiversity  BiodiversityKPIs `json:"biodiversity"`
	Governance    GovernanceKPIs   `json:"governance"`
	Social        SocialKPIs       `json:"social"`
	Completeness  Completeness     `json:"completeness"`
	Equivalencies Equivalencies    `json:"equivalencies"`
}

// EmissionsKPIs is the GHG headline.
type EmissionsKPIs struct {
	// TotalT is scope 1 plus scope 2 after any equity share adjustment.
	TotalT  float64  `json:"total_tco2e"`
	Scope1T *float64 `json:"scope1_tco2e,omitempty"`
	Scope2T *float64 `json:"scope2_tco2e,omitempty"`
	Scope3T *float64 `json:"scope3_tco2e,omitempty"`

	EquityAdjusted bool    `json:"equity_adjusted,omitempty"`
	EquityFactor   float64 `json:"equity_factor,omitempty"`

	// Intensity is TotalT per unit of the resources intensity denominator.
	Intensity            *float64 `json:"intensity,omitempty"`
	IntensityDenominator string   `json:"intensity_denominator,omitempty"`
}

// EnergyKPIs is the energy headline, in MWh.
type EnergyKPIs struct {
	TotalMWh       float64  `json:"total_mwh"`
	RenewableMWh   float64  `json:"renewable_mwh"`
	RenewableShare *float64 `json:"renewable_share,omitempty"`
	Intensity      *float64 `json:"intensity,omitempty"`
}

// WaterKPIs is the water balance, in cubic metres.
type WaterKPIs struct {
	WithdrawalM3  float64 `json:"withdrawal_m3"`
	DischargeM3   float64 `json:"discharge_m3"`
	ConsumptionM3 float64 `json:"consumption_m3"`
	WaterStressed bool    `json:"water_stressed,omitempty"`
}

// WasteKPIs is the waste headline, in tonnes.
type WasteKPIs struct {
	TotalT        float64  `json:"total_t"`
	HazardousT    float64  `json:"hazardous_t"`
	DiversionRate *float64 `json:"diversion_rate,omitempty"`
}

// BiodiversityKPIs counts assessed sites and impacts.
type BiodiversityKPIs struct {
	Sites               int `json:"sites"`
	ProtectedSites      int `json:"protected_sites"`
	Impacts             int `json:"impacts"`
	HighSeverityImpacts int `json:"high_severity_impacts"`
}

// GovernanceKPIs is board composition and attendance.
type GovernanceKPIs struct {
	BoardSize        int      `json:"board_size"`
	IndependentShare *float64 `json:"independent_share,omitempty"`
	FemaleShare      *float64 `json:"female_share,omitempty"`
	AttendanceRate   *float64 `json:"attendance_rate,omitempty"`
}

// SocialKPIs is the workforce headline.
type SocialKPIs struct {
	Headcount                int      `json:"headcount"`
	FemaleShare              *float64 `json:"female_share,omitempty"`
	TrainingHoursPerEmployee *float64 `json:"training_hours_per_employee,omitempty"`
	LTIFR                    *float64 `json:"ltifr,omitempty"`
	TRIR                     *float64 `json:"trir,omitempty"`
	RecordableIncidents      *int     `json:"recordable_incidents,omitempty"`
	Fatalities               *int     `json:"fatalities,omitempty"`
}

// Completeness reports which disclosure sections carry data.
type Completeness struct {
	Completed []string `json:"completed"`
	Missing   []string `json:"missing"`
	Ratio     float64  `json:"ratio"`
}

// Compute builds the dashboard. A nil state yields an empty dashboard with
// every section missing.
func Compute(s *wizard.State) KPIs {
	if s == nil {
		s = &wizard.State{}
	}
	k := KPIs{CompanyID: s.CompanyID}
	if y, ok := s.ReportingYear(); ok {
		k.Year = &y
	}

	k.Emissions = emissionsKPIs(s)
	k.Energy = energyKPIs(s.Resources)
	k.Water = waterKPIs(s.Water)
	k.Waste = wasteKPIs(s.Waste)
	k.Biodiversity = biodiversityKPIs(s)
	k.Governance = governanceKPIs(s)
	k.Social = socialKPIs(s)
	k.Completeness = completeness(s)
	k.Equivalencies = Equivalent(k.Emissions.TotalT)
	return k
}

func emissionsKPIs(s *wizard.State) EmissionsKPIs {
	t := emissions.ComputeGHG(s.GHG)
	e := EmissionsKPIs{
		TotalT:         t.CombinedT,
		EquityAdjusted: t.EquityShare,
	}
	if t.EquityShare {
		e.EquityFactor = t.EquityFactor
	}
	if t.HasScope1 {
		e.Scope1T = ptr(t.Scope1T)
	}
	if t.HasScope2 {
		e.Scope2T = ptr(t.Scope2T)
	}
	if t.HasScope3 {
		e.Scope3T = ptr(t.Scope3T)
	}
	if s.Resources != nil && s.Resources.Intensity != nil {
		in := s.Resources.Intensity
		e.IntensityDenominator = in.Denominator
		e.Intensity = ratio(t.CombinedT, in.Value)
	}
	return e
}

func energyKPIs(rc *wizard.ResourceConsumption) EnergyKPIs {
	t := emissions.ComputeEnergy(rc)
	e := EnergyKPIs{TotalMWh: t.TotalMWh, RenewableMWh: t.RenewableMWh}
	if t.TotalMWh > 0 {
		e.RenewableShare = ptr(t.RenewableShare())
	}
	if t.HasIntensity {
		e.Intensity = ptr(t.IntensityPerUnit)
	}
	return e
}

func waterKPIs(w *wizard.Water) WaterKPIs {
	t := emissions.ComputeWater(w)
	out := WaterKPIs{
		WithdrawalM3:  t.WithdrawalM3,
		DischargeM3:   t.DischargeM3,
		ConsumptionM3: t.ConsumptionM3,
	}
	if w != nil {
		out.WaterStressed = w.WaterStress
	}
	return out
}

func wasteKPIs(w *wizard.Waste) WasteKPIs {
	t := emissions.ComputeWaste(w)
	out := WasteKPIs{TotalT: t.TotalT, HazardousT: t.HazardousT}
	if t.TotalT > 0 {
		out.DiversionRate = ptr(t.DiversionRate())
	}
	return out
}

func biodiversityKPIs(s *wizard.State) BiodiversityKPIs {
	var out BiodiversityKPIs
	if rec := mapper.BiodiversityRecord(s.Biodiversity, s.Year); rec != nil {
		out.Sites = rec.SiteCount
		out.ProtectedSites = rec.ProtectedSites
	}
	if bulk := mapper.BiodiversityBulk(s.Biodiversity); bulk != nil {
		out.Impacts = len(bulk.Impacts)
		for _, i := range bulk.Impacts {
			if i.Severity != nil && *i.Severity >= HighSeverity {
				out.HighSeverityImpacts++
			}
		}
	}
	return out
}

func governanceKPIs(s *wizard.State) GovernanceKPIs {
	var out GovernanceKPIs
	g := mapper.Governance(s.Governance, s.Year)
	if g == nil {
		return out
	}
	if b := g.Board; b != nil {
		out.BoardSize = b.Size
		out.IndependentShare = share(b.IndependentCount, b.Size)
		out.FemaleShare = share(b.FemaleCount, b.Size)
	}

	var held, attended int
	for _, a := range g.Attendance {
		if a.MeetingsHeld == nil || a.MeetingsAttended == nil {
			continue
		}
		held += *a.MeetingsHeld
		attended += *a.MeetingsAttended
	}
	out.AttendanceRate = share(attended, held)
	return out
}

func socialKPIs(s *wizard.State) SocialKPIs {
	var out SocialKPIs
	p := mapper.Social(s.Social, s.Year)
	if p == nil {
		return out
	}
	if w := p.Workforce; w != nil {
		out.Headcount = w.TotalHeadcount
		out.FemaleShare = share(w.FemaleCount, w.TotalHeadcount)
	}
	if t := p.Training; t != nil && t.TotalHours != nil && out.Headcount > 0 {
		out.TrainingHoursPerEmployee = ptr(*t.TotalHours / float64(out.Headcount))
	}
	if h := p.HealthSafety; h != nil {
		out.LTIFR = h.LTIFR
		out.TRIR = h.TRIR
		out.RecordableIncidents = h.RecordableIncidents
		out.Fatalities = h.Fatalities
	}
	return out
}

func completeness(s *wizard.State) Completeness {
	c := Completeness{Completed: []string{}, Missing: []string{}}
	for _, section := range mapper.SyncOrder {
		b, err := mapper.Build(section, s)
		if err != nil || b.Record == nil {
			c.Missing = append(c.Missing, section)
			continue
		}
		c.Completed = append(c.Completed, section)
	}
	c.Ratio = float64(len(c.Completed)) / float64(len(mapper.SyncOrder))
	return c
}

func ptr[T any](v T) *T { return &v }

func share(part, whole int) *float64 {
	if whole <= 0 {
		return nil
	}
	return ptr(float64(part) / float64(whole))
}

func ratio(num float64, den *float64) *float64 {
	if den == nil || *den <= 0 {
		return nil
	}
	return ptr(num / *den)
}
