// Package wizard holds the in-memory form state of the ESG data-entry wizard.
//
// Every field is optional: nil pointers and empty strings mean the user left
// the control blank. A State is created empty when a wizard starts, mutated
// as steps are filled in, serialized to API payloads on save or submit, and
// mirrored to the draft store for crash recovery.
package wizard

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
)

// ErrNilState is returned when an operation receives a nil *State.
var ErrNilState = errors.New("wizard state is nil")

// State is the root of the wizard form state.
type State struct {
	CompanyID string `json:"companyId,omitempty"`
	Year      *int   `json:"year,omitempty"`

	Profile      *Profile             `json:"profile,omitempty"`
	GHG          *GHGInventory        `json:"ghg,omitempty"`
	Resources    *ResourceConsumption `json:"resources,omitempty"`
	Water        *Water               `json:"water,omitempty"`
	Biodiversity *Biodiversity        `json:"biodiversity,omitempty"`
	Waste        *Waste               `json:"waste,omitempty"`
	Governance   *Governance          `json:"governance,omitempty"`
	Social       *Social              `json:"social,omitempty"`

	// SyncIDs caches backend record ids so later saves skip creation.
	SyncIDs SyncIDs `json:"syncIds"`
}

// SyncIDs holds the backend ids of disclosure records created so far.
type SyncIDs struct {
	Governance   string `json:"governance,omitempty"`
	Social       string `json:"social,omitempty"`
	GHG          string `json:"ghg,omitempty"`
	Resources    string `json:"resources,omitempty"`
	Water        string `json:"water,omitempty"`
	Biodiversity string `json:"biodiversity,omitempty"`
	Waste        string `json:"waste,omitempty"`
}

// New returns an empty State for a company and reporting year.
func New(companyID string, year int) *State {
	return &State{CompanyID: companyID, Year: &year}
}

// Load decodes a State from JSON.
func Load(r io.Reader) (*State, error) {
	var s State
	dec := json.NewDecoder(r)
	if err := dec.Decode(&s); err != nil {
		return nil, fmt.Errorf("decoding wizard state: %w", err)
	}
	return &s, nil
}

// Encode writes the State as indented JSON.
func (s *State) Encode(w io.Writer) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(s)
}

// Clone returns a deep copy of the State.
// The orchestrator mutates only its clone so callers keep their own copy intact.
// Cloning fails only for values JSON cannot carry, such as NaN quantities.
func (s *State) Clone() (*State, error) {
	if s == nil {
		return nil, ErrNilState
	}
	data, err := json.Marshal(s)
	if err != nil {
		return nil, fmt.Errorf("cloning wizard state: %w", err)
	}
	var out State
	if err = json.Unmarshal(data, &out); err != nil {
		return nil, fmt.Errorf("cloning wizard state: %w", err)
	}
	return &out, nil
}

// StripAttachments drops embedded file contents, keeping name, type and size.
func (s *State) StripAttachments() {
	if s == nil || s.Profile == nil {
		return
	}
	for _, a := range []*Attachment{s.Profile.RegistrationCertificate, s.Profile.PriorReport} {
		if a != nil {
			a.Data = nil
		}
	}
}

// ReportingYear returns the state's year, falling back to the GHG inventory year.
func (s *State) ReportingYear() (int, bool) {
	if s.Year != nil {
		return *s.Year, true
	}
	if s.GHG != nil && s.GHG.Year != nil {
		return *s.GHG.Year, true
	}
	return 0, false
}
