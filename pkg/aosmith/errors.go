package aosmith

import (
	"errors"
	"fmt"
)

// ErrorKind classifies every failure this library can report.
type ErrorKind string

const (
	// ErrorKindUnknown covers transport faults, timeouts, unexpected status
	// codes, structurally invalid payloads, unrecognized enum values and
	// server-side business errors. It is the only retryable kind.
	ErrorKindUnknown ErrorKind = "unknown"
	// ErrorKindInvalidCredentials means the login was rejected. Never retried.
	ErrorKindInvalidCredentials ErrorKind = "invalid_credentials"
	// ErrorKindInvalidParameters means a caller-supplied value violates a
	// documented constraint. Raised before any network call, never retried.
	ErrorKindInvalidParameters ErrorKind = "invalid_parameters"

	// errorKindEnergyUsageUnavailable signals "no telemetry yet" on the
	// energy usage query. Internal: always caught by the energy usage caller
	// and normalized to an empty result.
	errorKindEnergyUsageUnavailable ErrorKind = "energy_usage_unavailable"
)

// Error is the typed error returned by every operation of this library.
type Error struct {
	Kind    ErrorKind
	Message string
	Err     error
}

func (e *Error) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %s", e.Message, e.Err.Error())
	}
	return e.Message
}

func (e *Error) Unwrap() error {
	return e.Err
}

func newUnknownError(message string, cause error) *Error {
	return &Error{Kind: ErrorKindUnknown, Message: message, Err: cause}
}

func newInvalidCredentialsError(message string) *Error {
	return &Error{Kind: ErrorKindInvalidCredentials, Message: message}
}

func newInvalidParametersError(message string) *Error {
	return &Error{Kind: ErrorKindInvalidParameters, Message: message}
}

func newEnergyUsageUnavailableError(message string) *Error {
	return &Error{Kind: errorKindEnergyUsageUnavailable, Message: message}
}

func errorHasKind(err error, kind ErrorKind) bool {
	var apiErr *Error
	if errors.As(err, &apiErr) {
		return apiErr.Kind == kind
	}
	return false
}

// IsInvalidCredentials reports whether err was caused by a rejected login.
func IsInvalidCredentials(err error) bool {
	return errorHasKind(err, ErrorKindInvalidCredentials)
}

// IsInvalidParameters reports whether err was caused by an invalid
// caller-supplied value.
func IsInvalidParameters(err error) bool {
	return errorHasKind(err, ErrorKindInvalidParameters)
}

// isRetryable reports whether the executor may retry the call. Only the
// Unknown class qualifies: retrying a wrong password or a malformed request
// cannot succeed and would waste the attempt budget.
func isRetryable(err error) bool {
	return errorHasKind(err, ErrorKindUnknown)
}
