package bootstrap

import (
	"errors"
)

// Process exit codes.
const (
	ExitOK            = 0
	ExitFailure       = 1
	ExitMissingConfig = 2
)

// Outcome is the tagged result of a step: continue, or fail with an exit code.
type Outcome struct {
	Code    int
	Message string
	Err     error
}

// Continue lets the runner proceed to the next step.
func Continue() Outcome {
	return Outcome{Code: ExitOK}
}

// Fail stops the runner. A zero code is coerced to ExitFailure so a failure
// can never be reported as success.
func Fail(code int, message string, err error) Outcome {
	if code == ExitOK {
		code = ExitFailure
	}
	return Outcome{Code: code, Message: message, Err: err}
}

// Failed reports whether the outcome stops the run.
func (o Outcome) Failed() bool {
	return o.Code != ExitOK
}

// ExitError is an error carrying the process exit status.
type ExitError struct {
	Code    int
	Message string
	Err     error
}

func (e *ExitError) Error() string {
	if e.Err == nil {
		return e.Message
	}
	return e.Message + ": " + e.Err.Error()
}

func (e *ExitError) Unwrap() error { return e.Err }

// ExitCode maps an error returned by the command tree to a process status.
func ExitCode(err error) int {
	if err == nil {
		return ExitOK
	}
	var exitErr *ExitError
	if errors.As(err, &exitErr) && exitErr.Code != ExitOK {
		return exitErr.Code
	}
	return ExitFailure
}
