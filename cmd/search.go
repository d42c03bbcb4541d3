package cmd

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"strconv"
	"strings"
	"syscall"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/inovacc/sweepr/internal/auth"
	"github.com/inovacc/sweepr/internal/cli"
	"github.com/inovacc/sweepr/internal/config"
	"github.com/inovacc/sweepr/internal/core"
	"github.com/inovacc/sweepr/internal/export"
	"github.com/inovacc/sweepr/internal/model"
	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
)

var searchCmd = &cobra.Command{
	Use:   "search",
	Short: "Sweep GitHub code search and export matches to CSV",
	Long: `Sweep GitHub code search for a text pattern and export the results.

Each run creates a timestamped folder under the output directory:
  Search_Summary.txt        run configuration and occurrence totals
  <run>_fragments.csv       one row per matched file with code fragments
  <run>_pattern_lines.csv   one row per fragment line containing the pattern

On GitHub Cloud the sweep fans out over the configured organizations,
each with the full result budget. On GitHub Enterprise it issues a
single instance-wide query.

Authentication:
  Uses GitHub token from (in priority order):
  1. --token flag
  2. GITHUB_TOKEN environment variable
  3. GH_TOKEN environment variable
  4. sweepr config file (sweepr auth login / sweepr auth token)
  5. gh CLI authentication

Examples:
  sweepr search -p "api_key=" -e py -e js
  sweepr search -p "BEGIN RSA PRIVATE KEY" -n 500 --scope all
  sweepr search -p internal.corp.net --instance on-prem
  sweepr search -p token --org myorg --org otherorg --json
  sweepr search --scan                # wizard, then leak-scan the output
  sweepr search                       # interactive wizard`,
	RunE: runSearch,
}

var (
	searchPattern    string
	searchExtensions []string
	searchMaxResults int
	searchInstance   string
	searchScope      string
	searchOrgs       []string
	searchToken      string
	searchOut        string
	searchLogLevel   string
	searchJSON       bool
	searchScan       bool
)

func init() {
	rootCmd.AddCommand(searchCmd)

	searchCmd.Flags().StringVarP(&searchPattern, "pattern", "p", "", "Text pattern to search for (omit to start the wizard)")
	searchCmd.Flags().StringSliceVarP(&searchExtensions, "ext", "e", nil, "File extension filter (repeatable)")
	searchCmd.Flags().IntVarP(&searchMaxResults, "max-results", "n", 0, "Maximum results to fetch, 1-1000 (default: from config)")
	searchCmd.Flags().StringVar(&searchInstance, "instance", "cloud", "GitHub instance: cloud or on-prem")
	searchCmd.Flags().StringVar(&searchScope, "scope", "org", "Repository scope: org or all")
	searchCmd.Flags().StringSliceVar(&searchOrgs, "org", nil, "Organization to sweep on cloud (repeatable, default: from config)")
	searchCmd.Flags().StringVar(&searchToken, "token", "", "GitHub token (default: auto-detect)")
	searchCmd.Flags().StringVar(&searchOut, "out", "", "Output root directory (default: from config)")
	searchCmd.Flags().StringVar(&searchLogLevel, "log-level", "warn", "Log level: debug, info, warn, error")
	searchCmd.Flags().BoolVar(&searchJSON, "json", false, "Print the run report as JSON")
	searchCmd.Flags().BoolVar(&searchScan, "scan", false, "Scan the exported files for leaked credentials")
}

// searcherFactory builds the searcher used by runSearch.
// It can be overridden in tests to aim the sweep at a mock server.
var searcherFactory = func(ctx context.Context, token string, instance model.Instance, enterpriseHost string, logger *slog.Logger) (core.CodeSearcher, error) {
	client, err := core.NewClientForInstance(ctx, token, instance, enterpriseHost)
	if err != nil {
		return nil, err
	}

	return core.NewSearcher(client, core.SearcherOptions{Logger: logger}), nil
}

// searchParams carries the sweep inputs after flag and wizard resolution.
type searchParams struct {
	instance   model.Instance
	scope      model.RepoScope
	pattern    string
	extensions []string
	maxResults int
	orgs       []string
}

// searchReport is the document printed by --json runs.
type searchReport struct {
	Run             *model.SearchRun `json:"run"`
	ResultsFetched  int              `json:"results_fetched"`
	PatternLines    int              `json:"pattern_lines"`
	OutputDir       string           `json:"output_dir"`
	SummaryFile     string           `json:"summary_file"`
	FragmentsCSV    string           `json:"fragments_csv"`
	PatternLinesCSV string           `json:"pattern_lines_csv"`
}

func runSearch(cmd *cobra.Command, _ []string) error {
	cfg, err := config.Load()
	if err != nil {
		return err
	}

	instance, err := model.ParseInstance(searchInstance)
	if err != nil {
		return err
	}

	scope, err := model.ParseScope(searchScope)
	if err != nil {
		return err
	}

	params := &searchParams{
		instance:   instance,
		scope:      scope,
		pattern:    strings.TrimSpace(searchPattern),
		extensions: core.NormalizeExtensions(searchExtensions),
		maxResults: searchMaxResults,
		orgs:       searchOrgs,
	}

	// No pattern on the command line starts the interactive wizard.
	if params.pattern == "" {
		params, err = runSearchWizard(cfg)
		if err != nil {
			return err
		}

		if params == nil {
			_, _ = fmt.Fprintln(os.Stdout, "Cancelled.")
			return nil
		}
	}

	if params.maxResults == 0 {
		params.maxResults = cfg.Search.MaxResults
	}

	if err := model.ValidateMaxResults(params.maxResults); err != nil {
		return err
	}

	if len(params.orgs) == 0 {
		params.orgs = cfg.Organizations.Orgs
	}

	outputRoot := searchOut
	if outputRoot == "" {
		outputRoot = cfg.Search.OutputDir
	}

	outputRoot, err = expandPath(outputRoot)
	if err != nil {
		return err
	}

	logger := newRunLogger(searchLogLevel, searchJSON)

	// Record which flags the user set, keeping the token value out of
	// the logs.
	cmd.Flags().Visit(func(f *pflag.Flag) {
		if f.Name == "token" {
			return
		}

		logger.Debug("flag set", slog.String("name", f.Name), slog.String("value", f.Value.String()))
	})

	host := ""
	if params.instance == model.InstanceOnPrem {
		host = cfg.GitHub.EnterpriseHost
		if host == "" {
			logger.Warn("enterprise host not configured, querying github.com")
		}
	}

	tokenResult, err := auth.ResolveGitHubToken(searchToken, cfg.GitHub.Token, host)
	if err != nil {
		return err
	}

	logger.Debug("token resolved",
		slog.String("source", tokenResult.Name),
		slog.String("token", tokenResult.Masked()),
	)

	// Ctrl+C cancels the sweep cleanly. Summary lines already appended
	// for completed organizations stay on disk.
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, os.Interrupt, syscall.SIGTERM)

	defer signal.Stop(sigChan)

	go func() {
		<-sigChan
		_, _ = fmt.Fprintln(os.Stdout, "\nCancelling...")
		cancel()
	}()

	searcher, err := searcherFactory(ctx, tokenResult.Token, params.instance, host, logger)
	if err != nil {
		return err
	}

	run := model.NewSearchRun(params.instance, params.scope, params.pattern, params.extensions, params.maxResults)

	paths := export.NewRunPaths(outputRoot, run.Pattern, run.Instance, run.StartedAt)
	if err := paths.Create(); err != nil {
		return err
	}

	if !searchJSON {
		_, _ = fmt.Fprintf(os.Stdout, "🔍 Searching %s for %q", run.Instance.DisplayName(), run.Pattern)
		if len(run.Extensions) > 0 {
			_, _ = fmt.Fprintf(os.Stdout, " in file types: %s", strings.Join(run.Extensions, ", "))
		}

		_, _ = fmt.Fprintln(os.Stdout)
	}

	runner := core.NewRunner(searcher, logger)

	opts := core.RunOptions{
		Organizations: params.orgs,
		Logger:        logger,
	}

	if run.Instance == model.InstanceCloud {
		total := len(params.orgs)
		completed := 0

		opts.OnOrgComplete = func(org string, count int) {
			completed++

			if err := export.AppendOrgCount(paths.Summary, org, count); err != nil {
				logger.Warn("failed to record org count",
					slog.String("org", org),
					slog.String("error", err.Error()),
				)
			}

			if !searchJSON {
				printOrgProgress(completed, total, org, "OK", fmt.Sprintf("%d occurrences", count))
			}
		}
	}

	if err := runner.Execute(ctx, run, opts); err != nil {
		if errors.Is(err, context.Canceled) {
			_, _ = fmt.Fprintln(os.Stdout, "Search cancelled.")

			return nil
		}

		var orgErr *core.OrgSearchError
		if !searchJSON && errors.As(err, &orgErr) {
			printOrgProgress(len(run.OrgCounts)+1, len(params.orgs), orgErr.Org, "FAIL", truncateString(orgErr.Err.Error(), 60))
		}

		return err
	}

	// Export failures are logged per file and do not stop the remaining
	// exports. The filter stage tolerates a missing fragments file.
	if err := export.WriteResults(paths.Fragments, run.Results); err != nil {
		logger.Error("fragments export failed",
			slog.String("file", paths.Fragments),
			slog.String("error", err.Error()),
		)
	}

	patternLines, err := export.FilterResults(paths.Fragments, paths.PatternLines, run.Pattern)
	if err != nil {
		logger.Error("pattern lines export failed",
			slog.String("file", paths.PatternLines),
			slog.String("error", err.Error()),
		)
	}

	if err := export.WriteSummary(paths.Summary, run); err != nil {
		logger.Error("summary write failed",
			slog.String("file", paths.Summary),
			slog.String("error", err.Error()),
		)
	}

	if searchJSON {
		report := searchReport{
			Run:             run,
			ResultsFetched:  len(run.Results),
			PatternLines:    patternLines,
			OutputDir:       paths.Dir,
			SummaryFile:     paths.Summary,
			FragmentsCSV:    paths.Fragments,
			PatternLinesCSV: paths.PatternLines,
		}

		if err := outputJSON(report); err != nil {
			return err
		}
	} else {
		printRunComplete(run, paths, patternLines)
	}

	if searchScan {
		return scanPath(ctx, paths.Dir)
	}

	return nil
}

// runSearchWizard walks the interactive steps: instance, scope, then the
// parameter form. Returns nil params when the user backs out.
func runSearchWizard(cfg *config.Config) (*searchParams, error) {
	instanceChoice, err := runChoiceMenu(cli.NewInstanceMenu())
	if err != nil {
		return nil, err
	}

	if instanceChoice == "" {
		return nil, nil
	}

	instance, err := model.ParseInstance(instanceChoice)
	if err != nil {
		return nil, err
	}

	scopeChoice, err := runChoiceMenu(cli.NewScopeMenu())
	if err != nil {
		return nil, err
	}

	if scopeChoice == "" {
		return nil, nil
	}

	scope, err := model.ParseScope(scopeChoice)
	if err != nil {
		return nil, err
	}

	form := cli.NewSearchForm(cli.SearchFormDefaults{
		MaxResults:    cfg.Search.MaxResults,
		Organizations: cfg.Organizations.Orgs,
	})

	p := tea.NewProgram(&form)

	finalModel, err := p.Run()
	if err != nil {
		return nil, fmt.Errorf("wizard error: %w", err)
	}

	formModel, ok := finalModel.(*cli.SearchFormModel)
	if !ok {
		return nil, fmt.Errorf("unexpected form model type %T", finalModel)
	}

	if !formModel.Submitted {
		return nil, nil
	}

	return &searchParams{
		instance:   instance,
		scope:      scope,
		pattern:    formModel.Pattern(),
		extensions: core.NormalizeExtensions(formModel.Extensions()),
		maxResults: formModel.MaxResults(),
		orgs:       formModel.Organizations(),
	}, nil
}

// printOrgProgress prints one batch-style progress line per organization.
func printOrgProgress(current, total int, org, status, detail string) {
	pct := float64(current) / float64(total) * 100

	_, _ = fmt.Fprintf(os.Stdout, "[%3.0f%%] [%-5s] %-30s %s\n", pct, status, truncateString(org, 30), detail)
}

func printRunComplete(run *model.SearchRun, paths export.RunPaths, patternLines int) {
	_, _ = fmt.Fprintln(os.Stdout)

	printBoxHeader("Search Complete")
	printBoxLine("Pattern", truncateString(run.Pattern, 40))
	printBoxLine("File types", truncateString(run.FileTypesLabel(), 40))
	printBoxLine("Instance", run.Instance.DisplayName())
	printBoxLine("Scope", run.Scope.Description())
	printBoxLine("Results fetched", strconv.Itoa(len(run.Results)))
	printBoxLine("Total occurrences", strconv.Itoa(run.TotalCount))
	printBoxLine("Pattern lines", strconv.Itoa(patternLines))
	printBoxFooter()

	_, _ = fmt.Fprintln(os.Stdout, "\nGenerated files:")
	_, _ = fmt.Fprintf(os.Stdout, "  %s\n", paths.Summary)
	_, _ = fmt.Fprintf(os.Stdout, "  %s\n", paths.Fragments)
	_, _ = fmt.Fprintf(os.Stdout, "  %s\n", paths.PatternLines)
}

// newRunLogger creates the logger for search runs. Logs always go to
// stderr so --json output on stdout stays parseable.
func newRunLogger(levelStr string, jsonOutput bool) *slog.Logger {
	var level slog.Level

	switch levelStr {
	case "debug":
		level = slog.LevelDebug
	case "info":
		level = slog.LevelInfo
	case "error":
		level = slog.LevelError
	default:
		level = slog.LevelWarn
	}

	opts := &slog.HandlerOptions{Level: level}

	if jsonOutput {
		return slog.New(slog.NewJSONHandler(os.Stderr, opts))
	}

	return slog.New(slog.NewTextHandler(os.Stderr, opts))
}
