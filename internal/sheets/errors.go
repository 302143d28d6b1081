package sheets

import (
	"context"
	"errors"
	"fmt"
	"net/http"

	"golang.org/x/oauth2"
	"google.golang.org/api/googleapi"
)

// ErrorKind classifies a failed fetch so callers can choose the right user
// message without parsing error text.
type ErrorKind string

const (
	KindAuth        ErrorKind = "auth"
	KindRateLimited ErrorKind = "rate_limited"
	KindNotFound    ErrorKind = "not_found"
	KindNetwork     ErrorKind = "network"
)

// FetchError wraps a spreadsheet fetch failure with its classification.
type FetchError struct {
	Kind ErrorKind
	Err  error
}

func (e *FetchError) Error() string {
	return fmt.Sprintf("sheets: fetch failed (%s): %v", e.Kind, e.Err)
}

func (e *FetchError) Unwrap() error { return e.Err }

// Retryable reports whether a later retry of the same fetch could succeed
// without operator intervention.
func (e *FetchError) Retryable() bool {
	return e.Kind == KindRateLimited || e.Kind == KindNetwork
}

// classifyError maps transport and API errors onto a FetchError kind.
func classifyError(err error) *FetchError {
	var fe *FetchError
	if errors.As(err, &fe) {
		return fe
	}

	var retrieveErr *oauth2.RetrieveError
	if errors.As(err, &retrieveErr) {
		return &FetchError{Kind: KindAuth, Err: err}
	}

	var apiErr *googleapi.Error
	if errors.As(err, &apiErr) {
		switch apiErr.Code {
		case http.StatusUnauthorized, http.StatusForbidden:
			return &FetchError{Kind: KindAuth, Err: err}
		case http.StatusTooManyRequests:
			return &FetchError{Kind: KindRateLimited, Err: err}
		case http.StatusNotFound:
			return &FetchError{Kind: KindNotFound, Err: err}
		}
	}

	if errors.Is(err, context.DeadlineExceeded) || errors.Is(err, context.Canceled) {
		return &FetchError{Kind: KindNetwork, Err: err}
	}

	return &FetchError{Kind: KindNetwork, Err: err}
}
