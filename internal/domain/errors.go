package domain

import (
	"errors"
	"fmt"
	"strings"
)

var (
	// ErrNotFound signals a missing resource.
	ErrNotFound = errors.New("not found")
	// ErrInvalidInput signals a missing or malformed request parameter.
	ErrInvalidInput = errors.New("invalid input")
	// ErrUnauthenticated signals a request without a valid session.
	ErrUnauthenticated = errors.New("unauthenticated")
	// ErrForbidden signals a session lacking the required capability.
	ErrForbidden = errors.New("forbidden")
	// ErrSourceUnavailable signals that a search source lookup failed.
	ErrSourceUnavailable = errors.New("search source unavailable")
	// ErrUnboundedQuery signals an attempt to query without any predicate.
	ErrUnboundedQuery = errors.New("unbounded query")
	// ErrStorageUnavailable signals an object storage failure.
	ErrStorageUnavailable = errors.New("object storage unavailable")
	// ErrEmbeddingProviderError signals a failed call to the embedding provider.
	ErrEmbeddingProviderError = errors.New("embedding provider error")
)

// InvalidParamsError lists request parameters that were present but malformed.
type InvalidParamsError struct {
	Params []string
}

func (e *InvalidParamsError) Error() string {
	return fmt.Sprintf("invalid parameter(s): %s", strings.Join(e.Params, ", "))
}

func (e *InvalidParamsError) Unwrap() error { return ErrInvalidInput }

// NewInvalidParams creates an InvalidParamsError, or nil when params is empty.
func NewInvalidParams(params []string) error {
	if len(params) == 0 {
		return nil
	}
	return &InvalidParamsError{Params: params}
}
