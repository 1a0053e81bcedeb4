package mapper

import (
	"github.com/rshade/esgsync/internal/enums"
	"github.com/rshade/esgsync/internal/wizard"
)

// SocialPayload is the body of the social create and upsert calls.
type SocialPayload struct {
	Year         *int                 `json:"year,omitempty"`
	Workforce    *WorkforcePayload    `json:"workforce,omitempty"`
	PayEquity    *PayEquityPayload    `json:"pay_equity,omitempty"`
	Training     *TrainingPayload     `json:"training,omitempty"`
	HealthSafety *HealthSafetyPayload `json:"health_safety,omitempty"`
	HumanRights  *HumanRightsPayload  `json:"human_rights,omitempty"`
	Community    *CommunityPayload    `json:"community_investment,omitempty"`
}

// WorkforcePayload is headcount rows plus totals.
type WorkforcePayload struct {
	TotalHeadcount int                   `json:"total_headcount"`
	FemaleCount    int                   `json:"female_count"`
	Rows           []WorkforceRowPayload `json:"rows"`
}

// WorkforceRowPayload is headcount for one location and contract type.
type WorkforceRowPayload struct {
	Location       *string `json:"location,omitempty"`
	ContractType   *string `json:"contract_type,omitempty"`
	EmploymentType *string `json:"employment_type,omitempty"`
	Female         *int    `json:"female,omitempty"`
	Male           *int    `json:"male,omitempty"`
	Other          *int    `json:"other,omitempty"`
	Under30        *int    `json:"age_under_30,omitempty"`
	Age30To50      *int    `json:"age_30_50,omitempty"`
	Over50         *int    `json:"age_over_50,omitempty"`
	NewHires       *int    `json:"new_hires,omitempty"`
	Leavers        *int    `json:"leavers,omitempty"`
	Headcount      int     `json:"headcount"`
}

// PayEquityPayload is pay gap metrics.
type PayEquityPayload struct {
	GenderPayGapPct  *float64 `json:"gender_pay_gap_pct,omitempty"`
	MedianPayRatio   *float64 `json:"median_pay_ratio,omitempty"`
	LivingWagePolicy *bool    `json:"living_wage_policy,omitempty"`
}

// TrainingPayload is learning and development figures.
type TrainingPayload struct {
	TotalHours       *float64 `json:"total_hours,omitempty"`
	EmployeesTrained *int     `json:"employees_trained,omitempty"`
	Spend            *float64 `json:"spend,omitempty"`
	Currency         *string  `json:"currency,omitempty"`
}

// HealthSafetyPayload is OHS incidents plus rates per million hours worked.
type HealthSafetyPayload struct {
	Fatalities          *int     `json:"fatalities,omitempty"`
	LostTimeInjuries    *int     `json:"lost_time_injuries,omitempty"`
	RecordableIncidents *int     `json:"recordable_incidents,omitempty"`
	HoursWorked         *float64 `json:"hours_worked,omitempty"`
	ManagementSystem    *bool    `json:"management_system,omitempty"`
	LTIFR               *float64 `json:"ltifr,omitempty"`
	TRIR                *float64 `json:"trir,omitempty"`
}

// HumanRightsPayload is human rights policy coverage.
type HumanRightsPayload struct {
	Policy                  *bool    `json:"policy,omitempty"`
	SupplierCode            *bool    `json:"supplier_code,omitempty"`
	DueDiligenceCoveragePct *float64 `json:"due_diligence_coverage_pct,omitempty"`
	GrievanceMechanism      *bool    `json:"grievance_mechanism,omitempty"`
}

// CommunityPayload is community investment.
type CommunityPayload struct {
	Amount         *float64 `json:"amount,omitempty"`
	Currency       *string  `json:"currency,omitempty"`
	VolunteerHours *float64 `json:"volunteer_hours,omitempty"`
	Beneficiaries  *int     `json:"beneficiaries,omitempty"`
}

// SocialIsEmpty reports whether Social builds no payload.
func SocialIsEmpty(s *wizard.Social) bool {
	return Social(s, nil) == nil
}

// Social builds the social body, reading the legacy notes blob for values
// that have no typed field filled in.
func Social(s *wizard.Social, year *int) *SocialPayload {
	if s == nil {
		return nil
	}
	notes := s.Notes
	p := &SocialPayload{Workforce: workforce(s.Workforce)}

	pe := s.PayEquity
	if pe == nil {
		pe = &wizard.PayEquity{}
	}
	p.PayEquity = &PayEquityPayload{
		GenderPayGapPct:  notesFloat(pe.GenderPayGapPct, notes, "gender_pay_gap_pct"),
		MedianPayRatio:   notesFloat(pe.MedianPayRatio, notes, "median_pay_ratio"),
		LivingWagePolicy: notesBool(pe.LivingWagePolicy, notes, "living_wage_policy"),
	}
	if noneSet(p.PayEquity.GenderPayGapPct, p.PayEquity.MedianPayRatio, p.PayEquity.LivingWagePolicy) {
		p.PayEquity = nil
	}

	tr := s.Training
	if tr == nil {
		tr = &wizard.Training{}
	}
	p.Training = &TrainingPayload{
		TotalHours:       notesFloat(tr.TotalHours, notes, "training_hours"),
		EmployeesTrained: notesInt(tr.EmployeesTrained, notes, "employees_trained"),
		Spend:            notesFloat(tr.Spend, notes, "training_spend"),
	}
	if noneSet(p.Training.TotalHours, p.Training.EmployeesTrained, p.Training.Spend) {
		p.Training = nil
	} else {
		p.Training.Currency = text(tr.Currency)
	}

	p.HealthSafety = healthSafety(s.HealthSafety, notes)

	hr := s.HumanRights
	if hr == nil {
		hr = &wizard.HumanRights{}
	}
	p.HumanRights = &HumanRightsPayload{
		Policy:                  notesBool(hr.Policy, notes, "human_rights_policy"),
		SupplierCode:            notesBool(hr.SupplierCode, notes, "supplier_code_of_conduct"),
		DueDiligenceCoveragePct: notesFloat(hr.DueDiligenceCoveragePct, notes, "due_diligence_coverage_pct"),
		GrievanceMechanism:      notesBool(hr.GrievanceMechanism, notes, "grievance_mechanism"),
	}
	if noneSet(p.HumanRights.Policy, p.HumanRights.SupplierCode, p.HumanRights.DueDiligenceCoveragePct, p.HumanRights.GrievanceMechanism) {
		p.HumanRights = nil
	}

	ci := s.Community
	if ci == nil {
		ci = &wizard.CommunityInvestment{}
	}
	p.Community = &CommunityPayload{
		Amount:         notesFloat(ci.Amount, notes, "community_investment"),
		VolunteerHours: notesFloat(ci.VolunteerHours, notes, "volunteer_hours"),
		Beneficiaries:  notesInt(ci.Beneficiaries, notes, "beneficiaries"),
	}
	if noneSet(p.Community.Amount, p.Community.VolunteerHours, p.Community.Beneficiaries) {
		p.Community = nil
	} else {
		p.Community.Currency = text(ci.Currency)
	}

	if p.Workforce == nil && p.PayEquity == nil && p.Training == nil &&
		p.HealthSafety == nil && p.HumanRights == nil && p.Community == nil {
		return nil
	}
	p.Year = intp(year)
	return p
}

func workforce(rows []wizard.WorkforceRow) *WorkforcePayload {
	w := &WorkforcePayload{}
	for _, r := range rows {
		if allBlank(r.Location, r.ContractType, r.EmploymentType) &&
			noneSet(r.Female, r.Male, r.Other, r.Under30, r.Age30To50, r.Over50, r.NewHires, r.Leavers) {
			continue
		}
		row := WorkforceRowPayload{
			Location:       text(r.Location),
			ContractType:   tag(enums.ContractType, r.ContractType),
			EmploymentType: tag(enums.EmploymentType, r.EmploymentType),
			Female:         count(r.Female),
			Male:           count(r.Male),
			Other:          count(r.Other),
			Under30:        count(r.Under30),
			Age30To50:      count(r.Age30To50),
			Over50:         count(r.Over50),
			NewHires:       count(r.NewHires),
			Leavers:        count(r.Leavers),
		}
		for _, c := range []*int{row.Female, row.Male, row.Other} {
			if c != nil {
				row.Headcount += *c
			}
		}
		w.TotalHeadcount += row.Headcount
		if row.Female != nil {
			w.FemaleCount += *row.Female
		}
		w.Rows = append(w.Rows, row)
	}
	if len(w.Rows) == 0 {
		return nil
	}
	return w
}

// count drops negative headcounts.
func count(p *int) *int {
	if p == nil || *p < 0 {
		return nil
	}
	return ptr(*p)
}

// Incident rates are normalised per million hours worked.
const rateHours = 1_000_000

func healthSafety(h *wizard.HealthSafety, notes string) *HealthSafetyPayload {
	if h == nil {
		h = &wizard.HealthSafety{}
	}
	p := &HealthSafetyPayload{
		Fatalities:          notesInt(h.Fatalities, notes, "fatalities"),
		LostTimeInjuries:    notesInt(h.LostTimeInjuries, notes, "lost_time_injuries"),
		RecordableIncidents: notesInt(h.RecordableIncidents, notes, "recordable_incidents"),
		HoursWorked:         notesFloat(h.HoursWorked, notes, "hours_worked"),
		ManagementSystem:    notesBool(h.ManagementSystem, notes, "ohs_management_system"),
	}
	if noneSet(p.Fatalities, p.LostTimeInjuries, p.RecordableIncidents, p.HoursWorked, p.ManagementSystem) {
		return nil
	}
	if p.HoursWorked != nil && *p.HoursWorked > 0 {
		if p.LostTimeInjuries != nil {
			p.LTIFR = finite(float64(*p.LostTimeInjuries) * rateHours / *p.HoursWorked)
		}
		if p.RecordableIncidents != nil {
			p.TRIR = finite(float64(*p.RecordableIncidents) * rateHours / *p.HoursWorked)
		}
	}
	return p
}
