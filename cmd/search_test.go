package cmd

import (
	"context"
	"encoding/csv"
	"encoding/json"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"net/url"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/google/go-github/v82/github"
	"github.com/inovacc/sweepr/internal/core"
	"github.com/inovacc/sweepr/internal/export"
	"github.com/inovacc/sweepr/internal/model"
	"github.com/stretchr/testify/require"
)

// resetSearchFlags restores the search flag variables to their
// registered defaults after a test mutates them.
func resetSearchFlags() {
	searchPattern = ""
	searchExtensions = nil
	searchMaxResults = 0
	searchInstance = "cloud"
	searchScope = "org"
	searchOrgs = nil
	searchToken = ""
	searchOut = ""
	searchLogLevel = "warn"
	searchJSON = false
	searchScan = false
}

// newSearchTestClient serves the code-search endpoint from handler and
// returns a client pointed at it.
func newSearchTestClient(t *testing.T, handler http.HandlerFunc) *github.Client {
	t.Helper()

	mux := http.NewServeMux()
	mux.HandleFunc("/search/code", handler)

	srv := httptest.NewServer(mux)
	t.Cleanup(srv.Close)

	client := github.NewClient(srv.Client())

	base, err := url.Parse(srv.URL + "/")
	require.NoError(t, err)

	client.BaseURL = base
	client.UploadURL = base

	return client
}

// overrideSearcherFactory points runSearch at client for one test.
func overrideSearcherFactory(t *testing.T, client *github.Client, wantInstance model.Instance) {
	t.Helper()

	orig := searcherFactory
	t.Cleanup(func() { searcherFactory = orig })

	searcherFactory = func(_ context.Context, token string, instance model.Instance, _ string, logger *slog.Logger) (core.CodeSearcher, error) {
		if token != "test-token" {
			t.Errorf("searcher built with token %q, want %q", token, "test-token")
		}

		if instance != wantInstance {
			t.Errorf("searcher built for instance %q, want %q", instance, wantInstance)
		}

		return core.NewSearcher(client, core.SearcherOptions{Logger: logger}), nil
	}
}

func searchItem(name, ownerType, fragment string) *github.CodeResult {
	return &github.CodeResult{
		Name:    github.Ptr(name),
		Path:    github.Ptr("src/" + name),
		HTMLURL: github.Ptr("https://github.example.com/acme/repo/blob/main/src/" + name),
		Repository: &github.Repository{
			Name:    github.Ptr("repo"),
			HTMLURL: github.Ptr("https://github.example.com/acme/repo"),
			Fork:    github.Ptr(false),
			Owner: &github.User{
				Login: github.Ptr("acme"),
				Type:  github.Ptr(ownerType),
			},
		},
		TextMatches: []*github.TextMatch{
			{Fragment: github.Ptr(fragment)},
		},
	}
}

func readCSVFile(t *testing.T, path string) [][]string {
	t.Helper()

	f, err := os.Open(path)
	require.NoError(t, err)

	defer func() { _ = f.Close() }()

	records, err := csv.NewReader(f).ReadAll()
	require.NoError(t, err)

	return records
}

func TestRunSearchOnPremEndToEnd(t *testing.T) {
	t.Setenv("XDG_CONFIG_HOME", t.TempDir())

	requests := 0

	client := newSearchTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		requests++

		q := r.URL.Query().Get("q")
		if q != `"api_key" in:file extension:py` {
			t.Errorf("unexpected query %q", q)
		}

		res := &github.CodeSearchResult{
			Total: github.Ptr(57),
			CodeResults: []*github.CodeResult{
				searchItem("config.py", "Organization", "self.api_key = load()\n# comment"),
				searchItem("settings.py", "Organization", "API_KEY = os.environ\nprint(x)"),
				searchItem("notes.py", "User", "api_key scribbles"),
			},
		}

		_ = json.NewEncoder(w).Encode(res)
	})

	overrideSearcherFactory(t, client, model.InstanceOnPrem)

	outDir := t.TempDir()

	t.Cleanup(resetSearchFlags)
	searchPattern = "api_key"
	searchExtensions = []string{"py"}
	searchMaxResults = 50
	searchInstance = "on-prem"
	searchScope = "org"
	searchOrgs = nil
	searchToken = "test-token"
	searchOut = outDir
	searchLogLevel = "error"
	searchJSON = false
	searchScan = false

	require.NoError(t, runSearch(searchCmd, nil))
	require.Equal(t, 1, requests)

	entries, err := os.ReadDir(outDir)
	require.NoError(t, err)
	require.Len(t, entries, 1)
	require.True(t, strings.HasPrefix(entries[0].Name(), "api_key_on-prem_"),
		"run folder %q should carry pattern and instance", entries[0].Name())

	runDir := filepath.Join(outDir, entries[0].Name())

	base := entries[0].Name()

	// Full export keeps only the organization-owned results.
	fragments := readCSVFile(t, filepath.Join(runDir, base+"_fragments.csv"))
	require.Len(t, fragments, 3)
	require.Equal(t, export.Columns, fragments[0])
	require.Equal(t, "config.py", fragments[1][1])
	require.Equal(t, "Organization", fragments[1][6])
	require.Equal(t, "settings.py", fragments[2][1])

	// One pattern line per fragment line containing the pattern.
	patternLines := readCSVFile(t, filepath.Join(runDir, base+"_pattern_lines.csv"))
	require.Len(t, patternLines, 3)
	require.Equal(t, "matchingLine", patternLines[0][len(patternLines[0])-1])
	require.Equal(t, "self.api_key = load()", patternLines[1][len(patternLines[1])-1])
	require.Equal(t, "API_KEY = os.environ", patternLines[2][len(patternLines[2])-1])

	data, err := os.ReadFile(filepath.Join(runDir, "Search_Summary.txt"))
	require.NoError(t, err)

	summary := string(data)
	require.True(t, strings.HasPrefix(summary, "GitHub Search Automation - Results Summary\n"))
	require.Contains(t, summary, "Search Pattern: api_key")
	require.Contains(t, summary, "File Types: py")
	require.Contains(t, summary, "GitHub Instance: on-prem (GitHub On-Premise)")
	require.Contains(t, summary, "Repository Scope: Organization Repositories only")
	require.Contains(t, summary, "Total Occurrences Found: 57")
	require.Contains(t, summary, "Results Fetched: 2")
	require.Contains(t, summary, "Run ID: ")
	require.NotContains(t, summary, "Organization: ")
}

func TestRunSearchCloudFansOutOverOrgs(t *testing.T) {
	t.Setenv("XDG_CONFIG_HOME", t.TempDir())

	requests := 0

	client := newSearchTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		requests++

		var res *github.CodeSearchResult

		switch q := r.URL.Query().Get("q"); q {
		case `"api_key" in:file org:alpha`:
			res = &github.CodeSearchResult{
				Total: github.Ptr(30),
				CodeResults: []*github.CodeResult{
					searchItem("one.py", "Organization", "api_key = 1"),
					searchItem("two.py", "Organization", "api_key = 2"),
				},
			}
		case `"api_key" in:file org:beta`:
			res = &github.CodeSearchResult{
				Total: github.Ptr(12),
				CodeResults: []*github.CodeResult{
					searchItem("three.py", "Organization", "api_key = 3"),
				},
			}
		default:
			t.Errorf("unexpected query %q", q)

			res = &github.CodeSearchResult{Total: github.Ptr(0)}
		}

		_ = json.NewEncoder(w).Encode(res)
	})

	overrideSearcherFactory(t, client, model.InstanceCloud)

	outDir := t.TempDir()

	t.Cleanup(resetSearchFlags)
	searchPattern = "api_key"
	searchExtensions = nil
	searchMaxResults = 50
	searchInstance = "cloud"
	searchScope = "all"
	searchOrgs = []string{"alpha", "beta"}
	searchToken = "test-token"
	searchOut = outDir
	searchLogLevel = "error"
	searchJSON = false
	searchScan = false

	require.NoError(t, runSearch(searchCmd, nil))
	require.Equal(t, 2, requests)

	entries, err := os.ReadDir(outDir)
	require.NoError(t, err)
	require.Len(t, entries, 1)
	require.True(t, strings.HasPrefix(entries[0].Name(), "api_key_cloud_"))

	runDir := filepath.Join(outDir, entries[0].Name())
	base := entries[0].Name()

	fragments := readCSVFile(t, filepath.Join(runDir, base+"_fragments.csv"))
	require.Len(t, fragments, 4)

	data, err := os.ReadFile(filepath.Join(runDir, "Search_Summary.txt"))
	require.NoError(t, err)

	summary := string(data)

	// Per-org lines recorded during the run stay above the final block.
	alphaIdx := strings.Index(summary, "Organization: alpha, Occurrences Found: 30")
	betaIdx := strings.Index(summary, "Organization: beta, Occurrences Found: 12")
	configIdx := strings.Index(summary, "Search Configuration:")

	require.GreaterOrEqual(t, alphaIdx, 0)
	require.Greater(t, betaIdx, alphaIdx)
	require.Greater(t, configIdx, betaIdx)

	require.Contains(t, summary, "Total Results Fetched: 3")
	require.Contains(t, summary, "GitHub Instance: cloud (GitHub Cloud)")
	require.NotContains(t, summary, "Total Occurrences Found")
	require.NotContains(t, summary, "Results Summary")
}
