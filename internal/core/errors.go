package core

import (
	"errors"
	"fmt"
	"net/http"
)

var (
	// ErrAccountNotFound means the queried address has no account on chain
	// as far as the winning source can tell. Terminal for that resolution.
	ErrAccountNotFound = errors.New("account not found")

	// ErrAllSourcesFailed means every adapter in the priority chain failed.
	ErrAllSourcesFailed = errors.New("all data sources failed")
)

// AdapterError wraps a single source failure with the upstream HTTP status
// when one was observed (0 otherwise).
type AdapterError struct {
	Source     Source
	StatusCode int
	Err        error
}

func (e *AdapterError) Error() string {
	if e.StatusCode != 0 {
		return fmt.Sprintf("%s adapter: status %d: %v", e.Source, e.StatusCode, e.Err)
	}
	return fmt.Sprintf("%s adapter: %v", e.Source, e.Err)
}

func (e *AdapterError) Unwrap() error {
	return e.Err
}

// IsRateLimited reports whether any error in the chain carries an upstream
// 429 status.
func IsRateLimited(err error) bool {
	var ae *AdapterError
	return errors.As(err, &ae) && ae.StatusCode == http.StatusTooManyRequests
}

// IsNotFound reports whether the error chain indicates a missing account,
// either the explicit not-found sentinel or an upstream 404.
func IsNotFound(err error) bool {
	if errors.Is(err, ErrAccountNotFound) {
		return true
	}
	var ae *AdapterError
	return errors.As(err, &ae) && ae.StatusCode == http.StatusNotFound
}
