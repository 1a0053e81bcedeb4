// Package enums maps free-form form selections onto the closed enum sets the
// disclosure API accepts.
//
// Labels are matched case-insensitively with spaces, hyphens and underscores
// treated alike, so "Equity share", "equity-share" and "EQUITY_SHARE" all
// normalize to the tag "equity_share". Unknown or blank input never falls
// back to a default: callers omit the field instead.
package enums

import (
	"sort"
	"strings"
	"unicode"

	"golang.org/x/text/cases"
)

// Entry describes one member of an enum set.
type Entry struct {
	// Tag is the value sent to the API.
	Tag string
	// Label is the human-readable form shown in the wizard.
	Label string
	// Aliases are additional spellings accepted on input.
	Aliases []string
}

// Set is a closed enum with a folded lookup table.
type Set struct {
	name    string
	entries []Entry
	lookup  map[string]string
}

// NewSet builds a Set; tags, labels and aliases all resolve to the tag.
func NewSet(name string, entries ...Entry) *Set {
	s := &Set{
		name:    name,
		entries: entries,
		lookup:  make(map[string]string, len(entries)*3),
	}
	for _, e := range entries {
		s.lookup[fold(e.Tag)] = e.Tag
		if e.Label != "" {
			s.lookup[fold(e.Label)] = e.Tag
		}
		for _, a := range e.Aliases {
			s.lookup[fold(a)] = e.Tag
		}
	}
	return s
}

// Name returns the set's name, used in validation messages.
func (s *Set) Name() string { return s.name }

// Normalize returns the tag for raw, or ok=false when raw is blank or unknown.
func (s *Set) Normalize(raw string) (string, bool) {
	key := fold(raw)
	if key == "" {
		return "", false
	}
	tag, ok := s.lookup[key]
	return tag, ok
}

// Contains reports whether raw normalizes to a member of the set.
func (s *Set) Contains(raw string) bool {
	_, ok := s.Normalize(raw)
	return ok
}

// Tags returns the set's tags in sorted order.
func (s *Set) Tags() []string {
	tags := make([]string, 0, len(s.entries))
	for _, e := range s.entries {
		tags = append(tags, e.Tag)
	}
	sort.Strings(tags)
	return tags
}

// Label returns the display label for tag, or tag itself when none is set.
func (s *Set) Label(tag string) string {
	for _, e := range s.entries {
		if e.Tag == tag && e.Label != "" {
			return e.Label
		}
	}
	return tag
}

// NormalizeAll normalizes each value, dropping blanks and unknowns and
// de-duplicating while keeping first-seen order.
func (s *Set) NormalizeAll(raw []string) []string {
	var out []string
	seen := make(map[string]bool, len(raw))
	for _, r := range raw {
		tag, ok := s.Normalize(r)
		if !ok || seen[tag] {
			continue
		}
		seen[tag] = true
		out = append(out, tag)
	}
	return out
}

// fold is the lookup key: case-folded words joined by underscores.
func fold(s string) string {
	folded := cases.Fold().String(strings.TrimSpace(s))
	words := strings.FieldsFunc(folded, func(r rune) bool {
		return unicode.IsSpace(r) || r == '-' || r == '_' || r == '/'
	})
	return strings.Join(words, "_")
}
