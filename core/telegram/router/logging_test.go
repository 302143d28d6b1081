package router

import (
	"errors"
	"testing"
)

func TestNormalizeHandlerName(t *testing.T) {
	cases := []struct {
		in   string
		want string
	}{
		{"/start", "start"},
		{"/Status", "status"},
		{"  /clear history  ", "clear_history"},
		{"", "unknown"},
		{"fallback", "fallback"},
	}
	for _, tc := range cases {
		if got := normalizeHandlerName(tc.in); got != tc.want {
			t.Errorf("normalizeHandlerName(%q) = %q, want %q", tc.in, got, tc.want)
		}
	}
}

type codedError struct{ code string }

func (e *codedError) Error() string { return "coded" }
func (e *codedError) Code() string  { return e.code }

func TestDeriveErrorCode(t *testing.T) {
	if got := deriveErrorCode(nil); got != "" {
		t.Errorf("nil error code = %q, want empty", got)
	}
	if got := deriveErrorCode(&codedError{code: "queue full"}); got != "QUEUE_FULL" {
		t.Errorf("coded error = %q, want QUEUE_FULL", got)
	}
	if got := deriveErrorCode(errors.New("plain")); got == "" {
		t.Error("plain error produced empty code")
	}
}
