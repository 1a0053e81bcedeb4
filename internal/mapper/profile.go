package mapper

import (
	"github.com/rshade/esgsync/internal/enums"
	"github.com/rshade/esgsync/internal/wizard"
)

// ProfilePayload is the body of PUT /companies/:id/profile.
type ProfilePayload struct {
	Name               *string  `json:"name,omitempty"`
	RegistrationNumber *string  `json:"registration_number,omitempty"`
	Country            *string  `json:"country,omitempty"`
	Region             *string  `json:"region,omitempty"`
	Sector             *string  `json:"sector,omitempty"`
	Employees          *int     `json:"employees,omitempty"`
	Revenue            *float64 `json:"revenue,omitempty"`
	Currency           *string  `json:"currency,omitempty"`
	Frameworks         []string `json:"frameworks,omitempty"`
	ESGFocus           []string `json:"esg_focus,omitempty"`
	FundingNeed        *float64 `json:"funding_need,omitempty"`

	RegistrationCertificate *AttachmentMeta `json:"registration_certificate,omitempty"`
	PriorReport             *AttachmentMeta `json:"prior_report,omitempty"`
}

// AttachmentMeta describes an attachment without its contents.
type AttachmentMeta struct {
	Name     string `json:"name"`
	MIMEType string `json:"mime_type,omitempty"`
	Size     int64  `json:"size"`
}

// ProfileIsEmpty reports whether no onboarding field is filled in.
func ProfileIsEmpty(p *wizard.Profile) bool {
	if p == nil {
		return true
	}
	return allBlank(p.Name, p.RegistrationNumber, p.Country, p.Region, p.Sector, p.Currency) &&
		noneSet(p.Employees, p.Revenue, p.FundingNeed) &&
		len(p.Frameworks) == 0 && len(p.ESGFocus) == 0 &&
		p.RegistrationCertificate == nil && p.PriorReport == nil
}

// Profile builds the onboarding profile body.
func Profile(p *wizard.Profile) *ProfilePayload {
	if ProfileIsEmpty(p) {
		return nil
	}
	return &ProfilePayload{
		Name:                    text(p.Name),
		RegistrationNumber:      text(p.RegistrationNumber),
		Country:                 text(p.Country),
		Region:                  text(p.Region),
		Sector:                  tag(enums.Sector, p.Sector),
		Employees:               count(p.Employees),
		Revenue:                 num(p.Revenue),
		Currency:                text(p.Currency),
		Frameworks:              tags(enums.Framework, p.Frameworks),
		ESGFocus:                tags(enums.ESGFocus, p.ESGFocus),
		FundingNeed:             num(p.FundingNeed),
		RegistrationCertificate: attachmentMeta(p.RegistrationCertificate),
		PriorReport:             attachmentMeta(p.PriorReport),
	}
}

func attachmentMeta(a *wizard.Attachment) *AttachmentMeta {
	if a == nil || blank(a.Name) {
		return nil
	}
	return &AttachmentMeta{Name: a.Name, MIMEType: a.MIMEType, Size: a.Size}
}
