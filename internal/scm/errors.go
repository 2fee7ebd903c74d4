package scm

import (
	"errors"
	"fmt"
	"net/http"
)

var (
	ErrReadmeNotFound  = errors.New("readme not found")
	ErrNotFound        = errors.New("not found")
	ErrInvalidRepoName = errors.New("repository name must be owner/name")
)

// UpstreamHTTPError is a non-success response from the host. The status
// and body are kept so callers can forward them.
type UpstreamHTTPError struct {
	Provider   Provider
	StatusCode int
	Body       string
}

func (e *UpstreamHTTPError) Error() string {
	return fmt.Sprintf("%s responded with %d", e.Provider.DisplayName(), e.StatusCode)
}

// Is reports a 404 as ErrNotFound.
func (e *UpstreamHTTPError) Is(target error) bool {
	return target == ErrNotFound && e.StatusCode == http.StatusNotFound
}

// UnavailableError means no response was received from the host.
type UnavailableError struct {
	Provider Provider
	Err      error
}

func (e *UnavailableError) Error() string {
	return fmt.Sprintf("%s unavailable: %v", e.Provider, e.Err)
}

func (e *UnavailableError) Unwrap() error { return e.Err }
