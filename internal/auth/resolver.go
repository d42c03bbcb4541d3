// Package auth resolves API tokens from multiple sources with a
// configurable priority order.
package auth

import (
	"fmt"
	"os"
	"strings"

	ghauth "github.com/cli/go-gh/v2/pkg/auth"
)

// Source indicates where a token was found
type Source string

const (
	SourceFlag   Source = "flag"
	SourceEnv    Source = "env"
	SourceConfig Source = "config"
	SourceCLI    Source = "cli"
	SourceNone   Source = "none"
)

// Result contains the resolved token and its source
type Result struct {
	Token  string
	Source Source
	Name   string // The specific source name (e.g., "GITHUB_TOKEN", "cli:oauth_token")
}

// Masked renders the token safe for display.
func (r *Result) Masked() string {
	return MaskToken(r.Token)
}

// TokenProvider is a function that attempts to provide a token.
// Returns the token and source name if found, or empty string if not available.
// Returns an error only for unexpected failures (not for missing token).
type TokenProvider func() (token string, sourceName string, err error)

// Resolver resolves tokens from multiple sources in priority order
type Resolver struct {
	providers   []TokenProvider
	serviceName string
	helpMessage string
}

// NewResolver creates a new token resolver for a service
func NewResolver(serviceName string) *Resolver {
	return &Resolver{
		serviceName: serviceName,
		providers:   make([]TokenProvider, 0),
	}
}

// WithFlagValue adds a flag value as a source (highest priority)
func (r *Resolver) WithFlagValue(value string) *Resolver {
	r.providers = append(r.providers, func() (string, string, error) {
		if value != "" {
			return value, "flag", nil
		}
		return "", "", nil
	})
	return r
}

// WithEnv adds an environment variable as a token source
func (r *Resolver) WithEnv(envVar string) *Resolver {
	r.providers = append(r.providers, func() (string, string, error) {
		if token := os.Getenv(envVar); token != "" {
			return token, envVar, nil
		}
		return "", "", nil
	})
	return r
}

// WithEnvs adds multiple environment variables as token sources (checked in order)
func (r *Resolver) WithEnvs(envVars ...string) *Resolver {
	for _, envVar := range envVars {
		r.WithEnv(envVar)
	}
	return r
}

// WithProvider adds a custom token provider
func (r *Resolver) WithProvider(provider TokenProvider) *Resolver {
	r.providers = append(r.providers, provider)
	return r
}

// WithHelpMessage sets the help message shown when no token is found
func (r *Resolver) WithHelpMessage(msg string) *Resolver {
	r.helpMessage = msg
	return r
}

// Resolve attempts to find a token from all configured sources in order.
// Returns the first successful token found, or an error if no token is available.
func (r *Resolver) Resolve() (*Result, error) {
	for _, provider := range r.providers {
		token, sourceName, err := provider()
		if err != nil {
			return nil, fmt.Errorf("token provider error: %w", err)
		}
		if token != "" {
			return &Result{
				Token:  token,
				Source: categorizeSource(sourceName),
				Name:   sourceName,
			}, nil
		}
	}

	// No token found
	if r.helpMessage != "" {
		return nil, fmt.Errorf("%s token required\n\n%s", r.serviceName, r.helpMessage)
	}
	return nil, fmt.Errorf("%s token required", r.serviceName)
}

// categorizeSource determines the Source category from a source name
func categorizeSource(name string) Source {
	switch {
	case name == "flag":
		return SourceFlag
	case strings.HasPrefix(name, "cli"):
		return SourceCLI
	case name == "config":
		return SourceConfig
	case strings.Contains(name, "TOKEN"):
		return SourceEnv
	default:
		return SourceNone
	}
}

const githubTokenHelp = `Provide a token via one of:
  * sweepr auth login     (recommended - GitHub device flow)
  * sweepr auth token     (paste a personal access token)
  * gh auth login         (auto-detected from gh CLI)
  * GITHUB_TOKEN env var
  * --token flag

Create a token at: https://github.com/settings/tokens`

// ResolveGitHubToken finds a GitHub token for the given host.
// Priority order:
//  1. flagToken (explicit --token flag)
//  2. GITHUB_TOKEN environment variable
//  3. GH_TOKEN environment variable
//  4. configToken (value stored in the sweepr config file)
//  5. gh CLI auth for the specific host
func ResolveGitHubToken(flagToken, configToken, host string) (*Result, error) {
	if host == "" {
		host = "github.com"
	}

	return NewResolver("GitHub").
		WithFlagValue(flagToken).
		WithEnvs("GITHUB_TOKEN", "GH_TOKEN").
		WithProvider(func() (string, string, error) {
			if configToken != "" {
				return configToken, "config", nil
			}
			return "", "", nil
		}).
		WithProvider(func() (string, string, error) {
			if token, src := ghauth.TokenForHost(host); token != "" {
				return token, "cli:" + src, nil
			}
			return "", "", nil
		}).
		WithHelpMessage(githubTokenHelp).
		Resolve()
}

// MaskToken renders a token for display as its first and last four
// characters around a fixed mask ("ghp_****wxyz"). Tokens too short to
// keep any characters secret are fully masked. The full value is never
// returned.
func MaskToken(token string) string {
	if token == "" {
		return ""
	}

	if len(token) <= 8 {
		return "****"
	}

	return token[:4] + "****" + token[len(token)-4:]
}
