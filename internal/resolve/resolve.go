// Package resolve picks a field value from an ordered list of sources.
//
// Wizard sections carry the same datum in more than one place: a typed form
// field, a free-text control, or a key inside the legacy notes blob older
// drafts wrote. A resolver lists those sources in precedence order and the
// first one that yields a value wins. No winner means the field is omitted.
package resolve

import (
	"encoding/json"
	"strconv"
	"strings"
)

// Layer is one source of a value. It reports ok=false when it has nothing.
type Layer[T any] func() (T, bool)

// First returns the value of the first layer that reports ok.
func First[T any](layers ...Layer[T]) (T, bool) {
	for _, l := range layers {
		if l == nil {
			continue
		}
		if v, ok := l(); ok {
			return v, true
		}
	}
	var zero T
	return zero, false
}

// Explicit yields *p when p is non-nil.
func Explicit[T any](p *T) Layer[T] {
	return func() (T, bool) {
		if p == nil {
			var zero T
			return zero, false
		}
		return *p, true
	}
}

// NonBlank yields s trimmed, unless it is blank.
func NonBlank(s string) Layer[string] {
	return func() (string, bool) {
		s = strings.TrimSpace(s)
		return s, s != ""
	}
}

// Value yields v when ok is true. It adapts an already-computed lookup.
func Value[T any](v T, ok bool) Layer[T] {
	return func() (T, bool) { return v, ok }
}

// Func adapts a lookup function evaluated lazily.
func Func[T any](fn func() (T, bool)) Layer[T] {
	return fn
}

// Notes yields notes[key] decoded by parse. The notes blob is a JSON object;
// malformed JSON, a missing key or a parse failure all yield nothing.
func Notes[T any](notes, key string, parse func(json.RawMessage) (T, bool)) Layer[T] {
	return func() (T, bool) {
		var zero T
		raw, ok := notesField(notes, key)
		if !ok {
			return zero, false
		}
		return parse(raw)
	}
}

func notesField(notes, key string) (json.RawMessage, bool) {
	notes = strings.TrimSpace(notes)
	if notes == "" || notes[0] != '{' {
		return nil, false
	}
	var m map[string]json.RawMessage
	if err := json.Unmarshal([]byte(notes), &m); err != nil {
		return nil, false
	}
	raw, ok := m[key]
	if !ok || string(raw) == "null" {
		return nil, false
	}
	return raw, true
}

// String parses a JSON string, rejecting blanks.
func String(raw json.RawMessage) (string, bool) {
	var s string
	if err := json.Unmarshal(raw, &s); err != nil {
		return "", false
	}
	s = strings.TrimSpace(s)
	return s, s != ""
}

// Float parses a JSON number or a numeric string.
func Float(raw json.RawMessage) (float64, bool) {
	var f float64
	if err := json.Unmarshal(raw, &f); err == nil {
		return f, true
	}
	s, ok := String(raw)
	if !ok {
		return 0, false
	}
	f, err := strconv.ParseFloat(strings.ReplaceAll(s, ",", ""), 64)
	if err != nil {
		return 0, false
	}
	return f, true
}

// Int parses a JSON integer or an integral numeric string.
func Int(raw json.RawMessage) (int, bool) {
	f, ok := Float(raw)
	if !ok || f != float64(int(f)) {
		return 0, false
	}
	return int(f), true
}

// Bool parses a JSON bool or the strings yes/no/true/false.
func Bool(raw json.RawMessage) (bool, bool) {
	var b bool
	if err := json.Unmarshal(raw, &b); err == nil {
		return b, true
	}
	s, ok := String(raw)
	if !ok {
		return false, false
	}
	switch strings.ToLower(s) {
	case "yes", "true", "y":
		return true, true
	case "no", "false", "n":
		return false, true
	}
	return false, false
}

// Strings parses a JSON array of strings, dropping blanks.
func Strings(raw json.RawMessage) ([]string, bool) {
	var in []string
	if err := json.Unmarshal(raw, &in); err != nil {
		return nil, false
	}
	out := make([]string, 0, len(in))
	for _, s := range in {
		if s = strings.TrimSpace(s); s != "" {
			out = append(out, s)
		}
	}
	return out, len(out) > 0
}
