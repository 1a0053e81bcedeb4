// Package attachments enforces the file-type and size rules for onboarding uploads.
package attachments

import (
	"errors"
	"fmt"
	"net/http"
	"path/filepath"
	"slices"
	"strings"

	"github.com/dustin/go-humanize"

	"github.com/rshade/esgsync/internal/wizard"
)

// Kind identifies an upload slot.
type Kind string

// Upload slots.
const (
	RegistrationCertificate Kind = "registration_certificate"
	PriorReport             Kind = "prior_report"
)

// Sentinel errors.
var (
	ErrUnknownKind  = errors.New("unknown attachment kind")
	ErrNoName       = errors.New("attachment has no file name")
	ErrExtension    = errors.New("file type not allowed")
	ErrTooLarge     = errors.New("file too large")
	ErrTypeMismatch = errors.New("file contents do not match its extension")
)

// Rule is the allow-list for one slot.
type Rule struct {
	Extensions []string
	MaxBytes   int64
}

// sniffed maps each allowed extension to the content types it may sniff as.
// docx and xlsx are zip containers.
//
//nolint:gochecknoglobals // Compile-time constant lookup table.
var sniffed = map[string][]string{
	".pdf":  {"application/pdf"},
	".png":  {"image/png"},
	".jpg":  {"image/jpeg"},
	".jpeg": {"image/jpeg"},
	".docx": {"application/zip"},
	".xlsx": {"application/zip"},
}

//nolint:gochecknoglobals // Compile-time constant lookup table.
var rules = map[Kind]Rule{
	RegistrationCertificate: {Extensions: []string{".pdf", ".png", ".jpg", ".jpeg"}, MaxBytes: 20 << 20},
	PriorReport:             {Extensions: []string{".pdf", ".docx", ".xlsx"}, MaxBytes: 50 << 20},
}

// RuleFor returns the allow-list for kind.
func RuleFor(kind Kind) (Rule, bool) {
	r, ok := rules[kind]
	return r, ok
}

// Check validates an attachment against its slot. A nil attachment passes.
// Contents are sniffed only while they are still present; a stripped draft
// attachment is checked by name and recorded size alone.
func Check(kind Kind, a *wizard.Attachment) error {
	rule, ok := rules[kind]
	if !ok {
		return fmt.Errorf("%w: %q", ErrUnknownKind, kind)
	}
	if a == nil {
		return nil
	}
	if strings.TrimSpace(a.Name) == "" {
		return ErrNoName
	}

	ext := strings.ToLower(filepath.Ext(a.Name))
	if !slices.Contains(rule.Extensions, ext) {
		return fmt.Errorf("%w: %q (allowed: %s)", ErrExtension, ext, strings.Join(rule.Extensions, ", "))
	}

	size := max(a.Size, int64(len(a.Data)))
	if size > rule.MaxBytes {
		return fmt.Errorf("%w: %s exceeds %s", ErrTooLarge,
			humanize.IBytes(uint64(size)), humanize.IBytes(uint64(rule.MaxBytes)))
	}

	if len(a.Data) == 0 {
		return nil
	}
	contentType, _, _ := strings.Cut(http.DetectContentType(a.Data), ";")
	if !slices.Contains(sniffed[ext], contentType) {
		return fmt.Errorf("%w: %s sniffed as %s", ErrTypeMismatch, a.Name, contentType)
	}
	return nil
}
