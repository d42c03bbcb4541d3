package core

import (
	"errors"
	"fmt"
	"net/http"
	"strings"

	"github.com/google/go-github/v82/github"
)

// ErrNoOrganizations indicates a cloud run was started without any
// configured organizations to sweep.
var ErrNoOrganizations = errors.New("no organizations configured")

// OrgSearchError indicates the sweep failed while searching one
// organization. Counts recorded for organizations that completed
// earlier remain valid.
type OrgSearchError struct {
	Org string
	Err error
}

func (e *OrgSearchError) Error() string {
	return fmt.Sprintf("search failed for organization %s: %v", e.Org, e.Err)
}

func (e *OrgSearchError) Unwrap() error {
	return e.Err
}

// RetryExhaustedError indicates rate-limit retries ran out for a single
// results page. The wrapped error is the last rate-limit error seen.
type RetryExhaustedError struct {
	Page     int
	Attempts int
	Err      error
}

func (e *RetryExhaustedError) Error() string {
	return fmt.Sprintf("rate limit retries exhausted after %d attempts on page %d: %v",
		e.Attempts, e.Page, e.Err)
}

func (e *RetryExhaustedError) Unwrap() error {
	return e.Err
}

// isTransientError checks if an error is transient and retryable. API
// errors are judged by status code; anything else falls back to matching
// common transport failure modes in the error text.
func isTransientError(err error) bool {
	if err == nil {
		return false
	}

	var apiErr *github.ErrorResponse
	if errors.As(err, &apiErr) && apiErr.Response != nil {
		switch apiErr.Response.StatusCode {
		case http.StatusBadGateway, http.StatusServiceUnavailable, http.StatusGatewayTimeout:
			return true
		default:
			return false
		}
	}

	errStr := strings.ToLower(err.Error())
	transientIndicators := []string{
		"timeout",
		"connection refused",
		"connection reset",
		"temporary failure",
		"network is unreachable",
		"no such host",
	}

	for _, indicator := range transientIndicators {
		if strings.Contains(errStr, indicator) {
			return true
		}
	}

	return false
}
