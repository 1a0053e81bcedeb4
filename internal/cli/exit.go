package cli

import (
	"errors"
	"strconv"
)

// ExitCodeCheckFailed is the exit code for a state that failed validation
// or a submit that only partly synced.
const ExitCodeCheckFailed = 2

// ExitError asks main to exit with Code after printing Reason.
type ExitError struct {
	Code   int
	Reason string
	Err    error
}

func (e *ExitError) Error() string {
	if e.Reason != "" {
		return e.Reason
	}
	if e.Err != nil {
		return e.Err.Error()
	}
	return "exit status " + strconv.Itoa(e.Code)
}

func (e *ExitError) Unwrap() error { return e.Err }

// ExitCode maps err to a process exit code: 0 for nil, the ExitError code
// when one is in the chain, and 1 otherwise.
func ExitCode(err error) int {
	if err == nil {
		return 0
	}
	var exitErr *ExitError
	if errors.As(err, &exitErr) && exitErr.Code != 0 {
		return exitErr.Code
	}
	return 1
}
