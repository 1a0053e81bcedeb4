package workflow

import (
	"errors"
	"fmt"
	"strings"

	"github.com/rshade/esgsync/internal/api"
	"github.com/rshade/esgsync/internal/validation"
	"github.com/rshade/esgsync/internal/wizard"
)

// maxSummaryErrors caps how many failures ErrorSummary lists.
const maxSummaryErrors = 5

// Status is the outcome of one sub-resource sync.
type Status string

// Sub-resource statuses.
const (
	StatusSkipped Status = "skipped"
	StatusSuccess Status = "success"
	StatusFailed  Status = "failed"
)

// ResourceResult records what happened to one sub-resource.
type ResourceResult struct {
	Resource string `json:"resource"`
	Status   Status `json:"status"`
	ID       string `json:"id,omitempty"`
	Created  bool   `json:"created,omitempty"`
	Error    string `json:"error,omitempty"`

	Err error `json:"-"`
}

// Report is the structured outcome of SaveDraft or Submit.
type Report struct {
	Mode       validation.Mode    `json:"mode"`
	Results    []ResourceResult   `json:"results"`
	Validation *validation.Result `json:"validation,omitempty"`
	Receipt    *api.Receipt       `json:"receipt,omitempty"`
	DraftID    string             `json:"draft_id,omitempty"`
	MirrorErr  error              `json:"-"`

	// Updated is the synced copy of the input state with new ids recorded.
	Updated *wizard.State `json:"-"`
}

// MirrorError returns the draft mirror failure message, if any.
func (r *Report) MirrorError() string {
	if r.MirrorErr == nil {
		return ""
	}
	return r.MirrorErr.Error()
}

// Failed returns the results with StatusFailed.
func (r *Report) Failed() []ResourceResult {
	var out []ResourceResult
	for _, res := range r.Results {
		if res.Status == StatusFailed {
			out = append(out, res)
		}
	}
	return out
}

// Succeeded returns the results with StatusSuccess.
func (r *Report) Succeeded() []ResourceResult {
	var out []ResourceResult
	for _, res := range r.Results {
		if res.Status == StatusSuccess {
			out = append(out, res)
		}
	}
	return out
}

// OK reports whether no sub-resource failed.
func (r *Report) OK() bool {
	return len(r.Failed()) == 0
}

// Partial reports whether some sub-resources failed and others succeeded.
func (r *Report) Partial() bool {
	return !r.OK() && len(r.Succeeded()) > 0
}

// Result returns the result for resource, if it was attempted.
func (r *Report) Result(resource string) (ResourceResult, bool) {
	for _, res := range r.Results {
		if res.Resource == resource {
			return res, true
		}
	}
	return ResourceResult{}, false
}

// ErrorSummary lists failed sub-resources, truncated after five.
func (r *Report) ErrorSummary() string {
	failed := r.Failed()
	if len(failed) == 0 {
		return ""
	}
	var b strings.Builder
	for i, res := range failed {
		if i >= maxSummaryErrors {
			fmt.Fprintf(&b, "; and %d more", len(failed)-maxSummaryErrors)
			break
		}
		if i > 0 {
			b.WriteString("; ")
		}
		fmt.Fprintf(&b, "%s: %s", res.Resource, res.Error)
	}
	return b.String()
}

// Err joins the failed sub-resource errors, or returns nil.
func (r *Report) Err() error {
	var errs []error
	for _, res := range r.Failed() {
		errs = append(errs, fmt.Errorf("%s: %w", res.Resource, res.Err))
	}
	return errors.Join(errs...)
}
