package model

import (
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
)

// Instance identifies which GitHub deployment a search runs against.
type Instance string

const (
	InstanceCloud  Instance = "cloud"
	InstanceOnPrem Instance = "on-prem"
)

// ParseInstance converts a user-supplied string to an Instance.
// An empty string defaults to cloud.
func ParseInstance(s string) (Instance, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "", "cloud":
		return InstanceCloud, nil
	case "on-prem", "onprem", "on_prem", "enterprise":
		return InstanceOnPrem, nil
	default:
		return "", fmt.Errorf("unknown instance %q (expected cloud or on-prem)", s)
	}
}

// DisplayName returns the human-readable instance name used in summaries.
func (i Instance) DisplayName() string {
	if i == InstanceOnPrem {
		return "GitHub On-Premise"
	}

	return "GitHub Cloud"
}

// RepoScope controls which repository owners are kept in results.
type RepoScope string

const (
	// ScopeOrgOnly keeps results whose repository owner is an organization.
	ScopeOrgOnly RepoScope = "org"

	// ScopeAll keeps every result, including user-owned repositories.
	ScopeAll RepoScope = "all"
)

// ParseScope converts a user-supplied string to a RepoScope.
// An empty string defaults to all repositories.
func ParseScope(s string) (RepoScope, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "", "all":
		return ScopeAll, nil
	case "org", "orgs", "org-only", "organization":
		return ScopeOrgOnly, nil
	default:
		return "", fmt.Errorf("unknown scope %q (expected org or all)", s)
	}
}

// Description returns the scope wording used in summary files.
func (s RepoScope) Description() string {
	if s == ScopeOrgOnly {
		return "Organization Repositories only"
	}

	return "All Repositories including User Repositories"
}

// SearchQuery is the user's search intent before rendering into the
// code-search query syntax.
type SearchQuery struct {
	// Pattern is the literal text to search for. Never empty.
	Pattern string `json:"pattern"`

	// Extensions are normalized file extensions (no leading dot) used as
	// extension: qualifiers. Multiple extensions narrow the search.
	Extensions []string `json:"extensions,omitempty"`
}

// SearchResult is one code-search hit, flattened from the API payload.
// Absent source fields map to the empty string.
type SearchResult struct {
	HTMLURL     string `json:"html_url"`
	Name        string `json:"name"`
	Path        string `json:"path"`
	RepoFork    bool   `json:"repo_fork"`
	RepoHTMLURL string `json:"repo_html_url"`
	RepoName    string `json:"repo_name"`
	OwnerType   string `json:"owner_type"`
	OwnerLogin  string `json:"owner_login"`

	// Fragment joins every text-match fragment for the file, carriage
	// returns stripped, each fragment trimmed, separated by "\n---\n".
	Fragment string `json:"fragment"`
}

// OrgCount records the API-reported match total for one organization.
// Order of appearance matches the configured organization order.
type OrgCount struct {
	Org   string `json:"org"`
	Count int    `json:"count"`
}

// SearchRun captures a single invocation end to end. It is populated
// incrementally while the run executes and never mutated after export.
type SearchRun struct {
	ID            string         `json:"id"`
	Instance      Instance       `json:"instance"`
	Scope         RepoScope      `json:"scope"`
	Organizations []string       `json:"organizations,omitempty"`
	Pattern       string         `json:"pattern"`
	Extensions    []string       `json:"extensions,omitempty"`
	MaxResults    int            `json:"max_results"`
	Results       []SearchResult `json:"-"`
	OrgCounts     []OrgCount     `json:"org_counts,omitempty"`

	// TotalCount is the API-wide occurrence total: the last page's
	// total_count for on-prem, or the running sum across organizations
	// for cloud runs.
	TotalCount int `json:"total_count"`

	StartedAt time.Time `json:"started_at"`
}

// NewSearchRun creates a run with a fresh ID and start time.
func NewSearchRun(instance Instance, scope RepoScope, pattern string, extensions []string, maxResults int) *SearchRun {
	return &SearchRun{
		ID:         uuid.NewString(),
		Instance:   instance,
		Scope:      scope,
		Pattern:    pattern,
		Extensions: extensions,
		MaxResults: maxResults,
		StartedAt:  time.Now(),
	}
}

// FileTypesLabel renders the extension list for display, or "All" when
// the run is not restricted to specific extensions.
func (r *SearchRun) FileTypesLabel() string {
	if len(r.Extensions) == 0 {
		return "All"
	}

	return strings.Join(r.Extensions, ", ")
}

// ValidateMaxResults checks the 1-1000 window the search API allows us
// to page through.
func ValidateMaxResults(n int) error {
	if n < 1 || n > 1000 {
		return fmt.Errorf("max results must be between 1 and 1000, got %d", n)
	}

	return nil
}
