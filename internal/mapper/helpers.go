// Package mapper assembles backend request bodies from wizard sections.
//
// Each builder pairs with an IsEmpty predicate and returns nil for a blank
// section, so the orchestrator can skip the network call entirely. Payload
// fields are pointers tagged omitempty: a value that is blank or cannot be
// normalized is left out, never defaulted. site_id is the one field the
// backend models as nullable and is always sent.
package mapper

import (
	"math"
	"strings"

	"github.com/rshade/esgsync/internal/enums"
)

func ptr[T any](v T) *T { return &v }

// num copies a finite number, dropping NaN and infinities.
func num(p *float64) *float64 {
	if p == nil || math.IsNaN(*p) || math.IsInf(*p, 0) {
		return nil
	}
	return ptr(*p)
}

func finite(f float64) *float64 {
	return num(&f)
}

func intp(p *int) *int {
	if p == nil {
		return nil
	}
	return ptr(*p)
}

func boolp(p *bool) *bool {
	if p == nil {
		return nil
	}
	return ptr(*p)
}

func text(s string) *string {
	s = strings.TrimSpace(s)
	if s == "" {
		return nil
	}
	return &s
}

// tag normalizes raw against set, returning nil for blank or unknown values.
func tag(set *enums.Set, raw string) *string {
	t, ok := set.Normalize(raw)
	if !ok {
		return nil
	}
	return &t
}

func tags(set *enums.Set, raw []string) []string {
	out := set.NormalizeAll(raw)
	if len(out) == 0 {
		return nil
	}
	return out
}

func blank(s string) bool { return strings.TrimSpace(s) == "" }

func allBlank(ss ...string) bool {
	for _, s := range ss {
		if !blank(s) {
			return false
		}
	}
	return true
}

// noneSet reports whether every pointer is nil.
func noneSet(ps ...any) bool {
	for _, p := range ps {
		switch v := p.(type) {
		case *float64:
			if v != nil {
				return false
			}
		case *int:
			if v != nil {
				return false
			}
		case *bool:
			if v != nil {
				return false
			}
		}
	}
	return true
}
