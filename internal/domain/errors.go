package domain

import (
	"errors"
	"fmt"
)

// Sentinel errors for domain-level error discrimination. The poller treats
// all of them as fatal-for-cycle: log, abort, leave state untouched.
var (
	ErrUnreachable = errors.New("feed unreachable") // transport failure: DNS, TLS, timeout
	ErrUnavailable = errors.New("feed unavailable") // non-2xx HTTP response, auth failures included
	ErrStorage     = errors.New("storage failure")
	ErrNotFound    = errors.New("not found")
)

// FetchError classifies a failed feed fetch. Kind is ErrUnreachable or
// ErrUnavailable so callers discriminate with errors.Is. StatusCode is set
// only for Unavailable and the poller never inspects it; the presentation
// layer's own fetch path is the only place a 401 is told apart.
type FetchError struct {
	Kind       error
	StatusCode int
	Err        error
}

func (e *FetchError) Error() string {
	if e.StatusCode != 0 {
		return fmt.Sprintf("%v: status %d", e.Kind, e.StatusCode)
	}
	if e.Err != nil {
		return fmt.Sprintf("%v: %v", e.Kind, e.Err)
	}
	return e.Kind.Error()
}

func (e *FetchError) Unwrap() error { return e.Kind }

// Unreachable wraps a transport-level error.
func Unreachable(err error) *FetchError {
	return &FetchError{Kind: ErrUnreachable, Err: err}
}

// Unavailable wraps a non-success HTTP status.
func Unavailable(status int) *FetchError {
	return &FetchError{Kind: ErrUnavailable, StatusCode: status}
}
