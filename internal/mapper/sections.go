package mapper

import (
	"errors"
	"fmt"
	"sort"

	"github.com/rshade/esgsync/internal/wizard"
)

// ErrUnknownSection is returned by Build for a section name it does not know.
var ErrUnknownSection = errors.New("unknown section")

// Section names, in the order the orchestrator syncs them.
const (
	SectionGovernance   = "governance"
	SectionSocial       = "social"
	SectionGHG          = "ghg"
	SectionResources    = "resources"
	SectionWater        = "water"
	SectionBiodiversity = "biodiversity"
	SectionWaste        = "waste"
	SectionProfile      = "profile"
)

// SyncOrder is the fixed order of disclosure sub-resources.
//
//nolint:gochecknoglobals // Fixed ordering table.
var SyncOrder = []string{
	SectionGovernance, SectionSocial, SectionGHG, SectionResources,
	SectionWater, SectionBiodiversity, SectionWaste,
}

// Sections returns every name Build accepts, sorted.
func Sections() []string {
	out := append([]string{SectionProfile}, SyncOrder...)
	sort.Strings(out)
	return out
}

// Built is a section's request bodies. Record is nil when the section is blank.
// Bulk is set only for sections with a separate bulk rows call.
type Built struct {
	Section string `json:"section"`
	Record  any    `json:"record"`
	Bulk    any    `json:"bulk,omitempty"`
}

// Build maps one named section of the state. A blank section yields a Built
// with a nil Record.
func Build(section string, s *wizard.State) (*Built, error) {
	if s == nil {
		return nil, wizard.ErrNilState
	}
	b := &Built{Section: section}
	switch section {
	case SectionGovernance:
		b.Record = nilIfNil(Governance(s.Governance, s.Year))
	case SectionSocial:
		b.Record = nilIfNil(Social(s.Social, s.Year))
	case SectionGHG:
		b.Record = nilIfNil(GHG(s.GHG, s.Year))
	case SectionResources:
		b.Record = nilIfNil(Resources(s.Resources, s.Year))
	case SectionWater:
		b.Record = nilIfNil(WaterRecord(s.Water, s.Year))
		b.Bulk = nilIfNil(WaterBulk(s.Water))
	case SectionBiodiversity:
		b.Record = nilIfNil(BiodiversityRecord(s.Biodiversity, s.Year))
		b.Bulk = nilIfNil(BiodiversityBulk(s.Biodiversity))
	case SectionWaste:
		b.Record = nilIfNil(WasteRecord(s.Waste, s.Year))
		b.Bulk = nilIfNil(WasteBulk(s.Waste))
	case SectionProfile:
		b.Record = nilIfNil(Profile(s.Profile))
	default:
		return nil, fmt.Errorf("%w: %q", ErrUnknownSection, section)
	}
	return b, nil
}

// nilIfNil keeps a typed nil pointer from becoming a non-nil interface.
func nilIfNil[T any](p *T) any {
	if p == nil {
		return nil
	}
	return p
}
