package auth

import (
	"errors"
	"strings"
	"testing"
)

func isolateGHConfig(t *testing.T) {
	t.Helper()

	// Keep the gh CLI provider away from the developer's real hosts file.
	t.Setenv("GH_CONFIG_DIR", t.TempDir())
}

func TestMaskToken(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  string
	}{
		{name: "empty", input: "", want: ""},
		{name: "short token fully masked", input: "abc", want: "****"},
		{name: "eight chars fully masked", input: "12345678", want: "****"},
		{name: "nine chars", input: "123456789", want: "1234****6789"},
		{name: "classic pat", input: "ghp_abcdefghijkl1234", want: "ghp_****1234"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := MaskToken(tt.input); got != tt.want {
				t.Errorf("MaskToken(%q) = %q, want %q", tt.input, got, tt.want)
			}
		})
	}
}

func TestMaskToken_NeverLeaksMiddle(t *testing.T) {
	token := "ghp_verysecretmiddlepart9999"

	masked := MaskToken(token)
	if strings.Contains(masked, "verysecretmiddlepart") {
		t.Errorf("MaskToken(%q) = %q leaks token body", token, masked)
	}
}

func TestResolveGitHubToken_FlagPriority(t *testing.T) {
	isolateGHConfig(t)
	t.Setenv("GITHUB_TOKEN", "env-token")
	t.Setenv("GH_TOKEN", "")

	result, err := ResolveGitHubToken("flag-token", "config-token", "github.com")
	if err != nil {
		t.Fatalf("ResolveGitHubToken() error = %v", err)
	}

	if result.Token != "flag-token" {
		t.Errorf("token = %q, want %q", result.Token, "flag-token")
	}

	if result.Source != SourceFlag {
		t.Errorf("source = %v, want %v", result.Source, SourceFlag)
	}
}

func TestResolveGitHubToken_EnvGitHub(t *testing.T) {
	isolateGHConfig(t)
	t.Setenv("GITHUB_TOKEN", "env-github-token")
	t.Setenv("GH_TOKEN", "env-gh-token")

	result, err := ResolveGitHubToken("", "config-token", "github.com")
	if err != nil {
		t.Fatalf("ResolveGitHubToken() error = %v", err)
	}

	if result.Token != "env-github-token" {
		t.Errorf("token = %q, want %q", result.Token, "env-github-token")
	}

	if result.Source != SourceEnv {
		t.Errorf("source = %v, want %v", result.Source, SourceEnv)
	}

	if result.Name != "GITHUB_TOKEN" {
		t.Errorf("name = %q, want %q", result.Name, "GITHUB_TOKEN")
	}
}

func TestResolveGitHubToken_EnvGH(t *testing.T) {
	isolateGHConfig(t)
	t.Setenv("GITHUB_TOKEN", "")
	t.Setenv("GH_TOKEN", "env-gh-token")

	result, err := ResolveGitHubToken("", "", "github.com")
	if err != nil {
		t.Fatalf("ResolveGitHubToken() error = %v", err)
	}

	if result.Token != "env-gh-token" {
		t.Errorf("token = %q, want %q", result.Token, "env-gh-token")
	}

	if result.Name != "GH_TOKEN" {
		t.Errorf("name = %q, want %q", result.Name, "GH_TOKEN")
	}
}

func TestResolveGitHubToken_ConfigFallback(t *testing.T) {
	isolateGHConfig(t)
	t.Setenv("GITHUB_TOKEN", "")
	t.Setenv("GH_TOKEN", "")

	result, err := ResolveGitHubToken("", "config-token", "github.com")
	if err != nil {
		t.Fatalf("ResolveGitHubToken() error = %v", err)
	}

	if result.Token != "config-token" {
		t.Errorf("token = %q, want %q", result.Token, "config-token")
	}

	if result.Source != SourceConfig {
		t.Errorf("source = %v, want %v", result.Source, SourceConfig)
	}
}

func TestResolveGitHubToken_NoToken(t *testing.T) {
	isolateGHConfig(t)
	t.Setenv("GITHUB_TOKEN", "")
	t.Setenv("GH_TOKEN", "")

	_, err := ResolveGitHubToken("", "", "github.com")
	if err == nil {
		t.Fatal("ResolveGitHubToken() expected error when no token available")
	}

	if !strings.Contains(err.Error(), "GitHub token required") {
		t.Errorf("error = %q, want it to mention the missing token", err)
	}

	// The failure message should carry the setup instructions.
	if !strings.Contains(err.Error(), "sweepr auth login") {
		t.Errorf("error = %q, want help message", err)
	}
}

func TestResolver_ProviderError(t *testing.T) {
	boom := errors.New("keyring unavailable")

	_, err := NewResolver("GitHub").
		WithProvider(func() (string, string, error) {
			return "", "", boom
		}).
		Resolve()

	if err == nil {
		t.Fatal("Resolve() expected provider error")
	}

	if !errors.Is(err, boom) {
		t.Errorf("error = %v, want wrapped %v", err, boom)
	}
}

func TestResolver_OrderPreserved(t *testing.T) {
	result, err := NewResolver("GitHub").
		WithProvider(func() (string, string, error) { return "", "", nil }).
		WithProvider(func() (string, string, error) { return "second", "config", nil }).
		WithProvider(func() (string, string, error) { return "third", "flag", nil }).
		Resolve()
	if err != nil {
		t.Fatalf("Resolve() error = %v", err)
	}

	if result.Token != "second" {
		t.Errorf("token = %q, want first non-empty provider result %q", result.Token, "second")
	}
}
