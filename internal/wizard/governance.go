package wizard

// Governance is the governance disclosure step.
type Governance struct {
	OwnershipStructure    string   `json:"ownershipStructure,omitempty"`
	LargestShareholderPct *float64 `json:"largestShareholderPct,omitempty"`

	Directors    []Director                `json:"directors,omitempty"`
	Attendance   []CommitteeAttendance     `json:"attendance,omitempty"`
	Remuneration *Remuneration             `json:"remuneration,omitempty"`
	Ethics       *EthicsPolicies           `json:"ethics,omitempty"`
	RelatedParty []RelatedPartyTransaction `json:"relatedParty,omitempty"`
	Audit        *Audit                    `json:"audit,omitempty"`
	Materiality  *Materiality              `json:"materiality,omitempty"`

	// Notes is the legacy free-form blob older drafts stored fields in,
	// a JSON object keyed by snake_case field name.
	Notes string `json:"notes,omitempty"`
}

// Director is one member of the board.
type Director struct {
	Name        string   `json:"name,omitempty"`
	Role        string   `json:"role,omitempty"`
	Independent *bool    `json:"independent,omitempty"`
	Gender      string   `json:"gender,omitempty"`
	AgeBand     string   `json:"ageBand,omitempty"`
	Committees  []string `json:"committees,omitempty"`
	TenureYears *float64 `json:"tenureYears,omitempty"`
}

// CommitteeAttendance records meetings held and attended for a committee.
type CommitteeAttendance struct {
	Committee        string `json:"committee,omitempty"`
	MeetingsHeld     *int   `json:"meetingsHeld,omitempty"`
	MeetingsAttended *int   `json:"meetingsAttended,omitempty"`
}

// Remuneration describes executive pay policy.
type Remuneration struct {
	HasPolicy       *bool    `json:"hasPolicy,omitempty"`
	ESGLinked       *bool    `json:"esgLinked,omitempty"`
	CEOPayRatio     *float64 `json:"ceoPayRatio,omitempty"`
	ShareholderVote *bool    `json:"shareholderVote,omitempty"`
}

// EthicsPolicies flags which ethics policies are in place.
type EthicsPolicies struct {
	AntiCorruption     *bool `json:"antiCorruption,omitempty"`
	Whistleblower      *bool `json:"whistleblower,omitempty"`
	CodeOfConduct      *bool `json:"codeOfConduct,omitempty"`
	DataPrivacy        *bool `json:"dataPrivacy,omitempty"`
	ConflictOfInterest *bool `json:"conflictOfInterest,omitempty"`
}

// RelatedPartyTransaction is one disclosed related-party transaction.
type RelatedPartyTransaction struct {
	Counterparty    string   `json:"counterparty,omitempty"`
	Nature          string   `json:"nature,omitempty"`
	Amount          *float64 `json:"amount,omitempty"`
	Currency        string   `json:"currency,omitempty"`
	ApprovedByBoard *bool    `json:"approvedByBoard,omitempty"`
}

// Audit describes external and internal audit arrangements.
type Audit struct {
	ExternalAuditor       string   `json:"externalAuditor,omitempty"`
	AuditorTenureYears    *int     `json:"auditorTenureYears,omitempty"`
	InternalAuditFunction *bool    `json:"internalAuditFunction,omitempty"`
	NonAuditFeesPct       *float64 `json:"nonAuditFeesPct,omitempty"`
}

// Materiality describes the materiality assessment and stakeholder engagement.
type Materiality struct {
	AssessmentDone    *bool    `json:"assessmentDone,omitempty"`
	LastAssessedYear  *int     `json:"lastAssessedYear,omitempty"`
	DoubleMateriality *bool    `json:"doubleMateriality,omitempty"`
	Topics            []string `json:"topics,omitempty"`
	Stakeholders      []string `json:"stakeholders,omitempty"`
}
