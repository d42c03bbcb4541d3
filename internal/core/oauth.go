package core

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"github.com/cli/oauth"
	"github.com/google/go-github/v82/github"
)

// OAuthResult contains the outcome of a completed OAuth flow.
type OAuthResult struct {
	Token    string
	Username string
	Scopes   []string
}

// OAuthFlow handles the OAuth device flow against github.com or an
// enterprise host.
type OAuthFlow struct {
	host         string
	scopes       []string
	onDeviceCode func(code, verificationURL string)
}

// NewOAuthFlow creates an OAuth flow for the given host. An empty host
// means github.com.
func NewOAuthFlow(host string, scopes []string) *OAuthFlow {
	return &OAuthFlow{
		host:   host,
		scopes: scopes,
	}
}

// OnDeviceCode sets the callback invoked when a device code is issued,
// so the caller can show the code and verification URL to the user.
func (f *OAuthFlow) OnDeviceCode(callback func(code, verificationURL string)) {
	f.onDeviceCode = callback
}

// Run executes the OAuth device flow and resolves the authenticated
// username for the new token.
func (f *OAuthFlow) Run(ctx context.Context) (*OAuthResult, error) {
	host, err := oauth.NewGitHubHost(f.gitHubHost())
	if err != nil {
		return nil, fmt.Errorf("invalid GitHub host: %w", err)
	}

	flow := &oauth.Flow{
		Host:   host,
		Scopes: f.scopes,
		HTTPClient: &http.Client{
			Timeout: 30 * time.Second,
		},
	}

	if f.onDeviceCode != nil {
		flow.DisplayCode = func(code, verificationURL string) error {
			f.onDeviceCode(code, verificationURL)

			return nil
		}
	}

	accessToken, err := flow.DetectFlow()
	if err != nil {
		return nil, fmt.Errorf("OAuth flow failed: %w", err)
	}

	username, err := f.getUsername(ctx, accessToken.Token)
	if err != nil {
		return nil, fmt.Errorf("failed to get username: %w", err)
	}

	return &OAuthResult{
		Token:    accessToken.Token,
		Username: username,
		Scopes:   f.scopes,
	}, nil
}

func (f *OAuthFlow) gitHubHost() string {
	if f.host == "" {
		return "github.com"
	}

	return f.host
}

func (f *OAuthFlow) getUsername(ctx context.Context, token string) (string, error) {
	client, err := newTokenClient(token, f.host)
	if err != nil {
		return "", err
	}

	user, _, err := client.Users.Get(ctx, "")
	if err != nil {
		return "", fmt.Errorf("failed to get user: %w", err)
	}

	return user.GetLogin(), nil
}

// ValidateToken checks whether a token is still accepted by the API and
// returns the login it authenticates as. A 401 is reported as invalid
// without an error.
func ValidateToken(ctx context.Context, token, host string) (bool, string, error) {
	client, err := newTokenClient(token, host)
	if err != nil {
		return false, "", err
	}

	user, resp, err := client.Users.Get(ctx, "")
	if err != nil {
		if resp != nil && resp.StatusCode == http.StatusUnauthorized {
			return false, "", nil
		}

		return false, "", fmt.Errorf("token validation failed: %w", err)
	}

	return true, user.GetLogin(), nil
}

// newTokenClient builds a token-authenticated client, pointing at the
// enterprise API paths when host names an enterprise install.
func newTokenClient(token, host string) (*github.Client, error) {
	client := github.NewClient(nil).WithAuthToken(token)

	if host != "" && host != "github.com" {
		baseURL := fmt.Sprintf("https://%s/api/v3/", host)
		uploadURL := fmt.Sprintf("https://%s/api/uploads/", host)

		var err error

		client, err = client.WithEnterpriseURLs(baseURL, uploadURL)
		if err != nil {
			return nil, fmt.Errorf("failed to configure enterprise client: %w", err)
		}
	}

	return client, nil
}
