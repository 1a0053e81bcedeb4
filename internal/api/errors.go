package api

import (
	"errors"
	"fmt"
	"net/http"
)

// Client construction errors.
var (
	ErrNoBaseURL   = errors.New("api base url is required")
	ErrBadBaseURL  = errors.New("api base url must be absolute http(s)")
	ErrNoCompanyID = errors.New("company id is required")
	ErrNoRecordID  = errors.New("record id is required")
)

// APIError is returned for any non-2xx response.
type APIError struct {
	Status int
	Method string
	Path   string
	Body   string
}

func (e *APIError) Error() string {
	text := http.StatusText(e.Status)
	if text == "" {
		text = "unexpected status"
	}
	if e.Body == "" {
		return fmt.Sprintf("%s %s: %d %s", e.Method, e.Path, e.Status, text)
	}
	return fmt.Sprintf("%s %s: %d %s: %s", e.Method, e.Path, e.Status, text, e.Body)
}

// IsStatus reports whether err is an *APIError with the given status.
func IsStatus(err error, status int) bool {
	var apiErr *APIError
	return errors.As(err, &apiErr) && apiErr.Status == status
}
