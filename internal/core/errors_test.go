package core

import (
	"errors"
	"net/http"
	"testing"

	"github.com/google/go-github/v82/github"
)

func TestOrgSearchError(t *testing.T) {
	innerErr := errors.New("boom")
	err := &OrgSearchError{Org: "ethereum", Err: innerErr}

	expected := "search failed for organization ethereum: boom"
	if err.Error() != expected {
		t.Errorf("OrgSearchError.Error() = %q, want %q", err.Error(), expected)
	}

	if !errors.Is(err, innerErr) {
		t.Error("errors.Is should find the inner error")
	}
}

func TestRetryExhaustedError(t *testing.T) {
	innerErr := errors.New("API rate limit exceeded")
	err := &RetryExhaustedError{
		Page:     3,
		Attempts: 5,
		Err:      innerErr,
	}

	expected := "rate limit retries exhausted after 5 attempts on page 3: API rate limit exceeded"
	if err.Error() != expected {
		t.Errorf("RetryExhaustedError.Error() = %q, want %q", err.Error(), expected)
	}

	if !errors.Is(err, innerErr) {
		t.Error("errors.Is should find the inner error")
	}
}

func apiError(status int) error {
	return &github.ErrorResponse{
		Response: &http.Response{
			StatusCode: status,
			Request:    &http.Request{},
		},
		Message: http.StatusText(status),
	}
}

func TestIsTransientError(t *testing.T) {
	tests := []struct {
		name     string
		err      error
		expected bool
	}{
		{"nil", nil, false},
		{"timeout", errors.New("request timeout exceeded"), true},
		{"connection refused", errors.New("dial tcp: connection refused"), true},
		{"connection reset", errors.New("read: connection reset by peer"), true},
		{"no such host", errors.New("lookup api.github.test: no such host"), true},
		{"bad gateway", apiError(http.StatusBadGateway), true},
		{"service unavailable", apiError(http.StatusServiceUnavailable), true},
		{"gateway timeout", apiError(http.StatusGatewayTimeout), true},
		{"not found", apiError(http.StatusNotFound), false},
		{"validation", apiError(http.StatusUnprocessableEntity), false},
		{"plain", errors.New("something else went wrong"), false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := isTransientError(tt.err); got != tt.expected {
				t.Errorf("isTransientError(%v) = %v, want %v", tt.err, got, tt.expected)
			}
		})
	}
}
