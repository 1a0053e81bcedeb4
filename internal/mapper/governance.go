package mapper

import (
	"github.com/rshade/esgsync/internal/enums"
	"github.com/rshade/esgsync/internal/resolve"
	"github.com/rshade/esgsync/internal/wizard"
)

// GovernancePayload is the body of the governance create and upsert calls.
type GovernancePayload struct {
	Year                  *int     `json:"year,omitempty"`
	OwnershipStructure    *string  `json:"ownership_structure,omitempty"`
	LargestShareholderPct *float64 `json:"largest_shareholder_pct,omitempty"`

	Board        *BoardPayload         `json:"board,omitempty"`
	Attendance   []AttendancePayload   `json:"committee_attendance,omitempty"`
	Remuneration *RemunerationPayload  `json:"remuneration,omitempty"`
	Ethics       *EthicsPayload        `json:"ethics,omitempty"`
	RelatedParty []RelatedPartyPayload `json:"related_party_transactions,omitempty"`
	Audit        *AuditPayload         `json:"audit,omitempty"`
	Materiality  *MaterialityPayload   `json:"materiality,omitempty"`
}

// BoardPayload is board composition with derived counts.
type BoardPayload struct {
	Size             int               `json:"size"`
	IndependentCount int               `json:"independent_count"`
	FemaleCount      int               `json:"female_count"`
	Directors        []DirectorPayload `json:"directors"`
}

// DirectorPayload is one board member.
type DirectorPayload struct {
	Name        *string  `json:"name,omitempty"`
	Role        *string  `json:"role,omitempty"`
	Independent *bool    `json:"independent,omitempty"`
	Gender      *string  `json:"gender,omitempty"`
	AgeBand     *string  `json:"age_band,omitempty"`
	Committees  []string `json:"committees,omitempty"`
	TenureYears *float64 `json:"tenure_years,omitempty"`
}

// AttendancePayload is committee attendance with its rate.
type AttendancePayload struct {
	Committee        *string  `json:"committee,omitempty"`
	MeetingsHeld     *int     `json:"meetings_held,omitempty"`
	MeetingsAttended *int     `json:"meetings_attended,omitempty"`
	AttendanceRate   *float64 `json:"attendance_rate,omitempty"`
}

// RemunerationPayload is executive pay policy.
type RemunerationPayload struct {
	HasPolicy       *bool    `json:"has_policy,omitempty"`
	ESGLinked       *bool    `json:"esg_linked,omitempty"`
	CEOPayRatio     *float64 `json:"ceo_pay_ratio,omitempty"`
	ShareholderVote *bool    `json:"shareholder_vote,omitempty"`
}

// EthicsPayload flags ethics policies in place.
type EthicsPayload struct {
	AntiCorruption     *bool `json:"anti_corruption,omitempty"`
	Whistleblower      *bool `json:"whistleblower,omitempty"`
	CodeOfConduct      *bool `json:"code_of_conduct,omitempty"`
	DataPrivacy        *bool `json:"data_privacy,omitempty"`
	ConflictOfInterest *bool `json:"conflict_of_interest,omitempty"`
}

// RelatedPartyPayload is one related-party transaction.
type RelatedPartyPayload struct {
	Counterparty    *string  `json:"counterparty,omitempty"`
	Nature          *string  `json:"nature,omitempty"`
	Amount          *float64 `json:"amount,omitempty"`
	Currency        *string  `json:"currency,omitempty"`
	ApprovedByBoard *bool    `json:"approved_by_board,omitempty"`
}

// AuditPayload is audit arrangements.
type AuditPayload struct {
	ExternalAuditor       *string  `json:"external_auditor,omitempty"`
	AuditorTenureYears    *int     `json:"auditor_tenure_years,omitempty"`
	InternalAuditFunction *bool    `json:"internal_audit_function,omitempty"`
	NonAuditFeesPct       *float64 `json:"non_audit_fees_pct,omitempty"`
}

// MaterialityPayload is the materiality assessment.
type MaterialityPayload struct {
	AssessmentDone    *bool    `json:"assessment_done,omitempty"`
	LastAssessedYear  *int     `json:"last_assessed_year,omitempty"`
	DoubleMateriality *bool    `json:"double_materiality,omitempty"`
	Topics            []string `json:"topics,omitempty"`
	Stakeholders      []string `json:"stakeholders,omitempty"`
}

// GovernanceIsEmpty reports whether Governance builds no payload.
func GovernanceIsEmpty(g *wizard.Governance) bool {
	return Governance(g, nil) == nil
}

// Governance builds the governance body. Typed fields win; the legacy notes
// blob fills in values older drafts stored there.
func Governance(g *wizard.Governance, year *int) *GovernancePayload {
	if g == nil {
		return nil
	}
	notes := g.Notes
	p := &GovernancePayload{}

	if s, ok := resolve.First(resolve.NonBlank(g.OwnershipStructure), resolve.Notes(notes, "ownership_structure", resolve.String)); ok {
		p.OwnershipStructure = tag(enums.OwnershipStructure, s)
	}
	if v, ok := resolve.First(resolve.Explicit(num(g.LargestShareholderPct)), resolve.Notes(notes, "largest_shareholder_pct", resolve.Float)); ok {
		p.LargestShareholderPct = finite(v)
	}

	p.Board = board(g.Directors)
	for _, a := range g.Attendance {
		if blank(a.Committee) && noneSet(a.MeetingsHeld, a.MeetingsAttended) {
			continue
		}
		row := AttendancePayload{
			Committee:        tag(enums.Committee, a.Committee),
			MeetingsHeld:     intp(a.MeetingsHeld),
			MeetingsAttended: intp(a.MeetingsAttended),
		}
		if a.MeetingsHeld != nil && a.MeetingsAttended != nil && *a.MeetingsHeld > 0 {
			row.AttendanceRate = finite(float64(*a.MeetingsAttended) / float64(*a.MeetingsHeld))
		}
		p.Attendance = append(p.Attendance, row)
	}

	p.Remuneration = remuneration(g.Remuneration, notes)
	p.Ethics = ethics(g.Ethics, notes)
	for _, r := range g.RelatedParty {
		if allBlank(r.Counterparty, r.Nature, r.Currency) && noneSet(r.Amount, r.ApprovedByBoard) {
			continue
		}
		p.RelatedParty = append(p.RelatedParty, RelatedPartyPayload{
			Counterparty:    text(r.Counterparty),
			Nature:          text(r.Nature),
			Amount:          num(r.Amount),
			Currency:        text(r.Currency),
			ApprovedByBoard: boolp(r.ApprovedByBoard),
		})
	}
	p.Audit = audit(g.Audit, notes)
	p.Materiality = materiality(g.Materiality, notes)

	if p.OwnershipStructure == nil && p.LargestShareholderPct == nil && p.Board == nil &&
		len(p.Attendance) == 0 && p.Remuneration == nil && p.Ethics == nil &&
		len(p.RelatedParty) == 0 && p.Audit == nil && p.Materiality == nil {
		return nil
	}
	p.Year = intp(year)
	return p
}

func board(directors []wizard.Director) *BoardPayload {
	b := &BoardPayload{}
	for _, d := range directors {
		if allBlank(d.Name, d.Role, d.Gender, d.AgeBand) && d.Independent == nil &&
			d.TenureYears == nil && len(d.Committees) == 0 {
			continue
		}
		dp := DirectorPayload{
			Name:        text(d.Name),
			Role:        tag(enums.DirectorRole, d.Role),
			Independent: boolp(d.Independent),
			Gender:      tag(enums.Gender, d.Gender),
			AgeBand:     tag(enums.AgeBand, d.AgeBand),
			Committees:  tags(enums.Committee, d.Committees),
			TenureYears: num(d.TenureYears),
		}
		b.Size++
		if dp.Independent != nil && *dp.Independent {
			b.IndependentCount++
		}
		if dp.Gender != nil && *dp.Gender == "female" {
			b.FemaleCount++
		}
		b.Directors = append(b.Directors, dp)
	}
	if b.Size == 0 {
		return nil
	}
	return b
}

func notesBool(explicit *bool, notes, key string) *bool {
	if v, ok := resolve.First(resolve.Explicit(explicit), resolve.Notes(notes, key, resolve.Bool)); ok {
		return &v
	}
	return nil
}

func notesFloat(explicit *float64, notes, key string) *float64 {
	if v, ok := resolve.First(resolve.Explicit(num(explicit)), resolve.Notes(notes, key, resolve.Float)); ok {
		return finite(v)
	}
	return nil
}

func notesInt(explicit *int, notes, key string) *int {
	if v, ok := resolve.First(resolve.Explicit(explicit), resolve.Notes(notes, key, resolve.Int)); ok {
		return &v
	}
	return nil
}

func notesString(explicit, notes, key string) *string {
	if v, ok := resolve.First(resolve.NonBlank(explicit), resolve.Notes(notes, key, resolve.String)); ok {
		return &v
	}
	return nil
}

func notesStrings(explicit []string, notes, key string) []string {
	typed := func() ([]string, bool) {
		var out []string
		for _, s := range explicit {
			if t := text(s); t != nil {
				out = append(out, *t)
			}
		}
		return out, len(out) > 0
	}
	if v, ok := resolve.First(resolve.Func(typed), resolve.Notes(notes, key, resolve.Strings)); ok {
		return v
	}
	return nil
}

func remuneration(r *wizard.Remuneration, notes string) *RemunerationPayload {
	if r == nil {
		r = &wizard.Remuneration{}
	}
	p := &RemunerationPayload{
		HasPolicy:       notesBool(r.HasPolicy, notes, "remuneration_policy"),
		ESGLinked:       notesBool(r.ESGLinked, notes, "esg_linked_pay"),
		CEOPayRatio:     notesFloat(r.CEOPayRatio, notes, "ceo_pay_ratio"),
		ShareholderVote: notesBool(r.ShareholderVote, notes, "say_on_pay"),
	}
	if noneSet(p.HasPolicy, p.ESGLinked, p.CEOPayRatio, p.ShareholderVote) {
		return nil
	}
	return p
}

func ethics(e *wizard.EthicsPolicies, notes string) *EthicsPayload {
	if e == nil {
		e = &wizard.EthicsPolicies{}
	}
	p := &EthicsPayload{
		AntiCorruption:     notesBool(e.AntiCorruption, notes, "anti_corruption_policy"),
		Whistleblower:      notesBool(e.Whistleblower, notes, "whistleblower_policy"),
		CodeOfConduct:      notesBool(e.CodeOfConduct, notes, "code_of_conduct"),
		DataPrivacy:        notesBool(e.DataPrivacy, notes, "data_privacy_policy"),
		ConflictOfInterest: notesBool(e.ConflictOfInterest, notes, "conflict_of_interest_policy"),
	}
	if noneSet(p.AntiCorruption, p.Whistleblower, p.CodeOfConduct, p.DataPrivacy, p.ConflictOfInterest) {
		return nil
	}
	return p
}

func audit(a *wizard.Audit, notes string) *AuditPayload {
	if a == nil {
		a = &wizard.Audit{}
	}
	p := &AuditPayload{
		ExternalAuditor:       notesString(a.ExternalAuditor, notes, "external_auditor"),
		AuditorTenureYears:    notesInt(a.AuditorTenureYears, notes, "auditor_tenure_years"),
		InternalAuditFunction: notesBool(a.InternalAuditFunction, notes, "internal_audit_function"),
		NonAuditFeesPct:       notesFloat(a.NonAuditFeesPct, notes, "non_audit_fees_pct"),
	}
	if p.ExternalAuditor == nil && noneSet(p.AuditorTenureYears, p.InternalAuditFunction, p.NonAuditFeesPct) {
		return nil
	}
	return p
}

func materiality(m *wizard.Materiality, notes string) *MaterialityPayload {
	if m == nil {
		m = &wizard.Materiality{}
	}
	p := &MaterialityPayload{
		AssessmentDone:    notesBool(m.AssessmentDone, notes, "materiality_assessment"),
		LastAssessedYear:  notesInt(m.LastAssessedYear, notes, "materiality_year"),
		DoubleMateriality: notesBool(m.DoubleMateriality, notes, "double_materiality"),
		Topics:            notesStrings(m.Topics, notes, "material_topics"),
		Stakeholders:      notesStrings(m.Stakeholders, notes, "stakeholder_groups"),
	}
	if noneSet(p.AssessmentDone, p.LastAssessedYear, p.DoubleMateriality) &&
		len(p.Topics) == 0 && len(p.Stakeholders) == 0 {
		return nil
	}
	return p
}
