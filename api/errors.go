package api

import (
	"errors"
	"fmt"
)

// ErrUnauthenticated is returned after a 401 on an authenticated call. By
// the time a caller sees it the credential is gone and the session monitor
// has already navigated to login, so callers must not redirect again.
var ErrUnauthenticated = errors.New("unauthenticated")

// RequestError is any other non-2xx response.
type RequestError struct {
	Method string
	Path   string
	Status int
	Detail string // server supplied, may be empty
}

func (e *RequestError) Error() string {
	if e.Detail != "" {
		return fmt.Sprintf("%s %s: status %d: %s", e.Method, e.Path, e.Status, e.Detail)
	}
	return fmt.Sprintf("%s %s: status %d", e.Method, e.Path, e.Status)
}

// TransportError covers unreachable servers, timeouts and malformed bodies.
type TransportError struct {
	Method string
	Path   string
	Err    error
}

func (e *TransportError) Error() string {
	return fmt.Sprintf("%s %s: %v", e.Method, e.Path, e.Err)
}

func (e *TransportError) Unwrap() error { return e.Err }

type Outcome int

const (
	OutcomeOK Outcome = iota
	OutcomeAuthExpired
	OutcomeFailure
)

func (o Outcome) String() string {
	switch o {
	case OutcomeOK:
		return "ok"
	case OutcomeAuthExpired:
		return "auth_expired"
	default:
		return "failure"
	}
}

// Classify maps a pipeline error to its outcome. Remote and transport
// failures are both OutcomeFailure.
func Classify(err error) Outcome {
	switch {
	case err == nil:
		return OutcomeOK
	case errors.Is(err, ErrUnauthenticated):
		return OutcomeAuthExpired
	default:
		return OutcomeFailure
	}
}

// UserMessage is the text to show for err: the server's detail when there
// is one, fallback otherwise. It is "" for nil and for ErrUnauthenticated,
// whose visible outcome is the redirect.
func UserMessage(err error, fallback string) string {
	switch Classify(err) {
	case OutcomeOK, OutcomeAuthExpired:
		return ""
	}
	var reqErr *RequestError
	if errors.As(err, &reqErr) && reqErr.Detail != "" {
		return reqErr.Detail
	}
	return fallback
}
