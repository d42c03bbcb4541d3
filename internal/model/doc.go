// Package model defines the data structures used throughout sweepr.
//
// This package contains the core domain models that represent a search
// run and its results. These models are shared by the search engine and
// the export layer, with no dependencies on either.
//
// # SearchRun
//
// The [SearchRun] struct captures a single sweep end to end:
//
//	type SearchRun struct {
//	    ID            string         // Unique identifier (UUID)
//	    Instance      Instance       // cloud or on-prem deployment
//	    Scope         RepoScope      // org-only or all repositories
//	    Organizations []string       // Orgs fanned out over (cloud)
//	    Pattern       string         // Literal text searched for
//	    Extensions    []string       // extension: qualifiers applied
//	    MaxResults    int            // Page-through ceiling (1-1000)
//	    Results       []SearchResult // Flattened code-search hits
//	    OrgCounts     []OrgCount     // Per-org API totals (cloud)
//	    TotalCount    int            // API-wide occurrence total
//	    StartedAt     time.Time      // Run start timestamp
//	}
//
// # SearchResult
//
// The [SearchResult] struct is one code-search hit, flattened from the
// API payload into the column order the CSV exports use:
//
//	type SearchResult struct {
//	    HTMLURL     string // Direct link to the matched file
//	    Name        string // File name
//	    Path        string // Path within the repository
//	    RepoFork    bool   // Whether the repository is a fork
//	    RepoHTMLURL string // Link to the repository
//	    RepoName    string // Repository name
//	    OwnerType   string // "Organization" or "User"
//	    OwnerLogin  string // Owner login name
//	    Fragment    string // Joined text-match fragments
//	}
package model
