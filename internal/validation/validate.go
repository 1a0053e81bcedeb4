// Package validation checks wizard state before it is saved or submitted.
//
// Field-level constraints (ranges, formats, list sizes) live in JSON Schemas
// embedded in the binary, one per section. Rules that span fields, such as a
// waste route restricting its management methods, are written in Go.
package validation

import (
	"fmt"
	"strings"
	"sync"

	"github.com/santhosh-tekuri/jsonschema/v5"

	"github.com/rshade/esgsync/internal/wizard"
)

// Mode selects how strict validation is.
type Mode int

const (
	// ModeDraft reports problems without completeness requirements.
	ModeDraft Mode = iota
	// ModeSubmit also requires what a final disclosure needs.
	ModeSubmit
)

// String returns the mode name.
func (m Mode) String() string {
	if m == ModeSubmit {
		return "submit"
	}
	return "draft"
}

// MarshalText implements encoding.TextMarshaler.
func (m Mode) MarshalText() ([]byte, error) {
	return []byte(m.String()), nil
}

// ParseMode parses "draft" or "submit"; blank means draft.
func ParseMode(s string) (Mode, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "", "draft":
		return ModeDraft, nil
	case "submit":
		return ModeSubmit, nil
	default:
		return ModeDraft, fmt.Errorf("invalid validation mode %q: must be draft or submit", s)
	}
}

// Validator holds the compiled section schemas.
type Validator struct {
	schemas map[string]*jsonschema.Schema
}

// New compiles the embedded schemas.
func New() (*Validator, error) {
	schemas, err := compileSchemas()
	if err != nil {
		return nil, err
	}
	return &Validator{schemas: schemas}, nil
}

//nolint:gochecknoglobals // Lazily compiled default validator.
var defaultValidator = sync.OnceValues(New)

// Validate checks s with the default validator.
func Validate(s *wizard.State, mode Mode) Result {
	v, err := defaultValidator()
	if err != nil {
		r := newResult(mode)
		r.addError("schema", "%v", err)
		return *r
	}
	return v.Validate(s, mode)
}

// Validate checks every section of s. A nil state is invalid.
func (v *Validator) Validate(s *wizard.State, mode Mode) Result {
	r := newResult(mode)
	if s == nil {
		r.addError("state", "is missing")
		return *r
	}

	sections := []struct {
		name  string
		value any
		isNil bool
	}{
		{"profile", s.Profile, s.Profile == nil},
		{"ghg", s.GHG, s.GHG == nil},
		{"resources", s.Resources, s.Resources == nil},
		{"water", s.Water, s.Water == nil},
		{"biodiversity", s.Biodiversity, s.Biodiversity == nil},
		{"waste", s.Waste, s.Waste == nil},
		{"governance", s.Governance, s.Governance == nil},
		{"social", s.Social, s.Social == nil},
	}
	for _, sec := range sections {
		if sec.isNil {
			continue
		}
		if schema, ok := v.schemas[sec.name]; ok {
			checkSchema(r, schema, sec.name, sec.value)
		}
	}

	checkState(r, s, mode)
	checkProfile(r, s.Profile)
	checkGHG(r, s.GHG)
	checkResources(r, s.Resources)
	checkWater(r, s.Water)
	checkBiodiversity(r, s.Biodiversity)
	checkWaste(r, s.Waste)
	checkGovernance(r, s.Governance)
	checkSocial(r, s.Social)
	return *r
}
