package wizard

// Social is the social disclosure step.
type Social struct {
	Workforce    []WorkforceRow       `json:"workforce,omitempty"`
	PayEquity    *PayEquity           `json:"payEquity,omitempty"`
	Training     *Training            `json:"training,omitempty"`
	HealthSafety *HealthSafety        `json:"healthSafety,omitempty"`
	HumanRights  *HumanRights         `json:"humanRights,omitempty"`
	Community    *CommunityInvestment `json:"community,omitempty"`

	// Notes is the legacy free-form blob, a JSON object keyed by snake_case field name.
	Notes string `json:"notes,omitempty"`
}

// WorkforceRow is a headcount breakdown for one location and contract type.
type WorkforceRow struct {
	Location       string `json:"location,omitempty"`
	ContractType   string `json:"contractType,omitempty"`
	EmploymentType string `json:"employmentType,omitempty"`
	Female         *int   `json:"female,omitempty"`
	Male           *int   `json:"male,omitempty"`
	Other          *int   `json:"other,omitempty"`
	Under30        *int   `json:"under30,omitempty"`
	Age30To50      *int   `json:"age30to50,omitempty"`
	Over50         *int   `json:"over50,omitempty"`
	NewHires       *int   `json:"newHires,omitempty"`
	Leavers        *int   `json:"leavers,omitempty"`
}

// PayEquity holds pay-gap metrics.
type PayEquity struct {
	GenderPayGapPct  *float64 `json:"genderPayGapPct,omitempty"`
	MedianPayRatio   *float64 `json:"medianPayRatio,omitempty"`
	LivingWagePolicy *bool    `json:"livingWagePolicy,omitempty"`
}

// Training holds learning and development figures.
type Training struct {
	TotalHours       *float64 `json:"totalHours,omitempty"`
	EmployeesTrained *int     `json:"employeesTrained,omitempty"`
	Spend            *float64 `json:"spend,omitempty"`
	Currency         string   `json:"currency,omitempty"`
}

// HealthSafety holds occupational health and safety incident counts.
type HealthSafety struct {
	Fatalities          *int     `json:"fatalities,omitempty"`
	LostTimeInjuries    *int     `json:"lostTimeInjuries,omitempty"`
	RecordableIncidents *int     `json:"recordableIncidents,omitempty"`
	HoursWorked         *float64 `json:"hoursWorked,omitempty"`
	ManagementSystem    *bool    `json:"managementSystem,omitempty"`
}

// HumanRights holds policy coverage.
type HumanRights struct {
	Policy                  *bool    `json:"policy,omitempty"`
	SupplierCode            *bool    `json:"supplierCode,omitempty"`
	DueDiligenceCoveragePct *float64 `json:"dueDiligenceCoveragePct,omitempty"`
	GrievanceMechanism      *bool    `json:"grievanceMechanism,omitempty"`
}

// CommunityInvestment holds community contributions.
type CommunityInvestment struct {
	Amount         *float64 `json:"amount,omitempty"`
	Currency       string   `json:"currency,omitempty"`
	VolunteerHours *float64 `json:"volunteerHours,omitempty"`
	Beneficiaries  *int     `json:"beneficiaries,omitempty"`
}
