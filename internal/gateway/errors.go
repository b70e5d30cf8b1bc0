package gateway

import "errors"

// Failure taxonomy for remote calls. The gateway is the only place raw
// transport and HTTP outcomes are classified; callers match with errors.Is
// and errors.As and never see anything outside this set.
var (
	// ErrSessionExpired reports a 401 intercepted before normal response
	// handling. Persisted session state has already been cleared and
	// navigation to the login route requested by the time callers see it.
	ErrSessionExpired = errors.New("Session expired. Please login again.")

	// ErrNetworkUnavailable reports that no response reached the client.
	ErrNetworkUnavailable = errors.New("Network error. Please check your connection.")
)

// RequestError reports a non-2xx response other than 401. Message is the
// server-provided failure message when one was decoded, otherwise a generic
// text carrying the status code.
type RequestError struct {
	Status  int
	Message string
}

func (e *RequestError) Error() string {
	return e.Message
}

// ValidationError reports a local precondition failure detected before any
// request is issued, e.g. a malformed amount or a password confirmation
// mismatch.
type ValidationError struct {
	Message string
}

func (e *ValidationError) Error() string {
	return e.Message
}
