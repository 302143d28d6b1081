package sheets

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"testing"

	"golang.org/x/oauth2"
	"google.golang.org/api/googleapi"
)

func TestClassifyErrorKinds(t *testing.T) {
	tests := []struct {
		name      string
		err       error
		wantKind  ErrorKind
		retryable bool
	}{
		{
			name:      "unauthorized",
			err:       &googleapi.Error{Code: http.StatusUnauthorized},
			wantKind:  KindAuth,
			retryable: false,
		},
		{
			name:      "forbidden",
			err:       &googleapi.Error{Code: http.StatusForbidden},
			wantKind:  KindAuth,
			retryable: false,
		},
		{
			name:      "too many requests",
			err:       &googleapi.Error{Code: http.StatusTooManyRequests},
			wantKind:  KindRateLimited,
			retryable: true,
		},
		{
			name:      "missing spreadsheet",
			err:       &googleapi.Error{Code: http.StatusNotFound},
			wantKind:  KindNotFound,
			retryable: false,
		},
		{
			name:      "server error",
			err:       &googleapi.Error{Code: http.StatusInternalServerError},
			wantKind:  KindNetwork,
			retryable: true,
		},
		{
			name:      "transport failure",
			err:       errors.New("dial tcp: connection refused"),
			wantKind:  KindNetwork,
			retryable: true,
		},
		{
			name:      "deadline exceeded",
			err:       fmt.Errorf("values get: %w", context.DeadlineExceeded),
			wantKind:  KindNetwork,
			retryable: true,
		},
		{
			name:      "token refresh rejected",
			err:       &oauth2.RetrieveError{Response: &http.Response{StatusCode: http.StatusBadRequest}},
			wantKind:  KindAuth,
			retryable: false,
		},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			fe := classifyError(tc.err)
			if fe.Kind != tc.wantKind {
				t.Fatalf("kind = %q, want %q", fe.Kind, tc.wantKind)
			}
			if fe.Retryable() != tc.retryable {
				t.Fatalf("retryable = %v, want %v", fe.Retryable(), tc.retryable)
			}
			if !errors.Is(fe, tc.err) {
				t.Fatalf("classified error does not wrap the original")
			}
		})
	}
}

func TestClassifyErrorKeepsExistingFetchError(t *testing.T) {
	orig := &FetchError{Kind: KindNotFound, Err: errors.New("gone")}
	got := classifyError(fmt.Errorf("outer: %w", orig))
	if got.Kind != KindNotFound {
		t.Fatalf("kind = %q, want %q", got.Kind, KindNotFound)
	}
}
