package validation

import (
	"errors"
	"fmt"
	"strings"
)

// ErrInvalid is wrapped by Result.Err when a state has blocking errors.
var ErrInvalid = errors.New("validation failed")

// maxSummaryErrors caps how many errors ErrorSummary lists.
const maxSummaryErrors = 5

// FieldError is one problem attached to a form field.
type FieldError struct {
	// Field is a dotted path such as "ghg.scope1Rows[0].quantity".
	Field string `json:"field"`

	// Message describes the problem.
	Message string `json:"message"`
}

// Error implements the error interface.
func (e FieldError) Error() string {
	return e.Field + ": " + e.Message
}

// Result holds the outcome of validating a wizard state.
type Result struct {
	Mode Mode `json:"mode"`

	// Valid is true when Errors is empty. Warnings do not affect validity.
	Valid bool `json:"valid"`

	Errors   []FieldError `json:"errors"`
	Warnings []FieldError `json:"warnings"`

	seen map[string]bool
}

func newResult(mode Mode) *Result {
	return &Result{
		Mode:     mode,
		Valid:    true,
		Errors:   make([]FieldError, 0),
		Warnings: make([]FieldError, 0),
		seen:     make(map[string]bool),
	}
}

// addError records the first error for a field; later ones for the same field are dropped.
func (r *Result) addError(field, format string, args ...any) {
	if r.seen[field] {
		return
	}
	r.seen[field] = true
	r.Valid = false
	r.Errors = append(r.Errors, FieldError{Field: field, Message: fmt.Sprintf(format, args...)})
}

func (r *Result) addWarning(field, format string, args ...any) {
	r.Warnings = append(r.Warnings, FieldError{Field: field, Message: fmt.Sprintf(format, args...)})
}

// HasErrors reports whether any blocking error was found.
func (r Result) HasErrors() bool {
	return len(r.Errors) > 0
}

// FieldErrors returns the errors reported for one field path or its children.
func (r Result) FieldErrors(prefix string) []FieldError {
	var out []FieldError
	for _, e := range r.Errors {
		if e.Field == prefix || strings.HasPrefix(e.Field, prefix+".") || strings.HasPrefix(e.Field, prefix+"[") {
			out = append(out, e)
		}
	}
	return out
}

// ErrorSummary lists the first few errors on one line.
func (r Result) ErrorSummary() string {
	if len(r.Errors) == 0 {
		return ""
	}
	var sb strings.Builder
	fmt.Fprintf(&sb, "%d validation error(s): ", len(r.Errors))
	for i, e := range r.Errors {
		if i == maxSummaryErrors {
			fmt.Fprintf(&sb, "; and %d more", len(r.Errors)-maxSummaryErrors)
			break
		}
		if i > 0 {
			sb.WriteString("; ")
		}
		sb.WriteString(e.Error())
	}
	return sb.String()
}

// Err returns nil for a valid result, otherwise ErrInvalid wrapped with the summary.
func (r Result) Err() error {
	if r.Valid {
		return nil
	}
	return fmt.Errorf("%w: %s", ErrInvalid, r.ErrorSummary())
}
