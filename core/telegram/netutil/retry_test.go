package netutil

import (
	"errors"
	"net"
	"net/url"
	"testing"
)

type timeoutError struct{}

func (timeoutError) Error() string   { return "i/o timeout" }
func (timeoutError) Timeout() bool   { return true }
func (timeoutError) Temporary() bool { return true }

func TestShouldRetry(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want bool
	}{
		{"nil error", nil, false},
		{"plain error", errors.New("boom"), false},
		{"net timeout", timeoutError{}, true},
		{
			"dial op error",
			&net.OpError{Op: "dial", Err: errors.New("connection refused")},
			true,
		},
		{
			"read op error",
			&net.OpError{Op: "read", Err: errors.New("connection reset")},
			false,
		},
		{
			"url timeout",
			&url.Error{Op: "Post", URL: "https://api.telegram.org", Err: timeoutError{}},
			true,
		},
		{
			"url wrapping dial",
			&url.Error{Op: "Post", URL: "https://api.telegram.org", Err: &net.OpError{Op: "dial", Err: errors.New("refused")}},
			true,
		},
		{
			"url wrapping plain error",
			&url.Error{Op: "Post", URL: "https://api.telegram.org", Err: errors.New("no")},
			false,
		},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			if got := ShouldRetry(tc.err); got != tc.want {
				t.Fatalf("ShouldRetry(%v) = %v, want %v", tc.err, got, tc.want)
			}
		})
	}
}
