package wizard

// Profile is the onboarding step: who the company is and how it reports.
type Profile struct {
	Name               string   `json:"name,omitempty"`
	RegistrationNumber string   `json:"registrationNumber,omitempty"`
	Country            string   `json:"country,omitempty"`
	Region             string   `json:"region,omitempty"`
	Sector             string   `json:"sector,omitempty"`
	Employees          *int     `json:"employees,omitempty"`
	Revenue            *float64 `json:"revenue,omitempty"`
	Currency           string   `json:"currency,omitempty"`
	Frameworks         []string `json:"frameworks,omitempty"`
	ESGFocus           []string `json:"esgFocus,omitempty"`
	FundingNeed        *float64 `json:"fundingNeed,omitempty"`

	RegistrationCertificate *Attachment `json:"registrationCertificate,omitempty"`
	PriorReport             *Attachment `json:"priorReport,omitempty"`
}

// Attachment is a client-side file. Data is nil once stripped for mirroring.
type Attachment struct {
	Name     string `json:"name,omitempty"`
	MIMEType string `json:"mimeType,omitempty"`
	Size     int64  `json:"size,omitempty"`
	Data     []byte `json:"data,omitempty"`
}
