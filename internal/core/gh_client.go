package core

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"github.com/google/go-github/v82/github"
	"github.com/inovacc/sweepr/internal/model"
	"golang.org/x/oauth2"
)

// requestTimeout bounds each individual API request.
const requestTimeout = 30 * time.Second

// NewGitHubClient creates an authenticated GitHub client for github.com.
func NewGitHubClient(ctx context.Context, token string) *github.Client {
	return github.NewClient(newOAuth2HTTPClient(ctx, token))
}

// NewEnterpriseClient creates an authenticated client for a GitHub
// Enterprise host. The REST API lives under /api/v3/ and uploads under
// /api/uploads/ on such installs.
func NewEnterpriseClient(ctx context.Context, token, host string) (*github.Client, error) {
	if host == "" || host == "github.com" {
		return NewGitHubClient(ctx, token), nil
	}

	baseURL := fmt.Sprintf("https://%s/api/v3/", host)
	uploadURL := fmt.Sprintf("https://%s/api/uploads/", host)

	client, err := github.NewClient(newOAuth2HTTPClient(ctx, token)).WithEnterpriseURLs(baseURL, uploadURL)
	if err != nil {
		return nil, fmt.Errorf("failed to configure enterprise client for %s: %w", host, err)
	}

	return client, nil
}

// NewClientForInstance returns the API client matching the selected
// instance. On-prem runs use the configured enterprise host; with no
// host configured the client falls back to github.com.
func NewClientForInstance(ctx context.Context, token string, instance model.Instance, enterpriseHost string) (*github.Client, error) {
	if instance == model.InstanceOnPrem && enterpriseHost != "" {
		return NewEnterpriseClient(ctx, token, enterpriseHost)
	}

	return NewGitHubClient(ctx, token), nil
}

// newOAuth2HTTPClient builds the token-bearing HTTP client shared by all
// API calls, with the per-request timeout applied.
func newOAuth2HTTPClient(ctx context.Context, token string) *http.Client {
	ts := oauth2.StaticTokenSource(&oauth2.Token{AccessToken: token})
	tc := oauth2.NewClient(ctx, ts)
	tc.Timeout = requestTimeout

	return tc
}
