package core

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/inovacc/sweepr/internal/model"
)

// CodeSearcher pages through code-search results for one query.
type CodeSearcher interface {
	Search(ctx context.Context, query string, maxResults int, scope model.RepoScope) ([]model.SearchResult, int, error)
}

// RunOptions configures a sweep run.
type RunOptions struct {
	// Organizations to fan out over on cloud runs, searched in order.
	// Ignored for on-prem runs, which issue a single instance-wide query.
	Organizations []string
	// OnOrgComplete fires after each organization finishes, with the
	// server-side match count for that organization.
	OnOrgComplete func(org string, count int)
	// Logger defaults to slog.Default().
	Logger *slog.Logger
}

// Runner drives a SearchRun to completion against a searcher.
type Runner struct {
	searcher CodeSearcher
	logger   *slog.Logger
}

// NewRunner creates a Runner. A nil logger falls back to slog.Default().
func NewRunner(searcher CodeSearcher, logger *slog.Logger) *Runner {
	if logger == nil {
		logger = slog.Default()
	}

	return &Runner{
		searcher: searcher,
		logger:   logger,
	}
}

// Execute performs the sweep described by run, filling in its Results,
// OrgCounts, and TotalCount.
//
// Cloud runs search each organization separately with an org qualifier,
// each fetching up to run.MaxResults; a failure in one organization
// aborts the whole run. On-prem runs issue the query once against the
// whole instance.
func (r *Runner) Execute(ctx context.Context, run *model.SearchRun, opts RunOptions) error {
	query := BuildSearchQuery(run.Pattern, run.Extensions)

	r.logger.Info("starting code sweep",
		slog.String("run_id", run.ID),
		slog.String("query", query),
		slog.String("instance", string(run.Instance)),
		slog.Int("max_results", run.MaxResults),
	)

	if run.Instance == model.InstanceCloud {
		return r.executeCloud(ctx, run, query, opts)
	}

	results, total, err := r.searcher.Search(ctx, query, run.MaxResults, run.Scope)
	if err != nil {
		return fmt.Errorf("search failed: %w", err)
	}

	run.Results = results
	run.TotalCount = total

	return nil
}

// executeCloud fans the query out over the configured organizations.
func (r *Runner) executeCloud(ctx context.Context, run *model.SearchRun, query string, opts RunOptions) error {
	if len(opts.Organizations) == 0 {
		return ErrNoOrganizations
	}

	run.Organizations = opts.Organizations

	for _, org := range opts.Organizations {
		r.logger.Info("searching organization", slog.String("org", org))

		results, total, err := r.searcher.Search(ctx, OrgQuery(query, org), run.MaxResults, run.Scope)
		if err != nil {
			return &OrgSearchError{Org: org, Err: err}
		}

		run.Results = append(run.Results, results...)
		run.OrgCounts = append(run.OrgCounts, model.OrgCount{Org: org, Count: total})
		run.TotalCount += total

		if opts.OnOrgComplete != nil {
			opts.OnOrgComplete(org, total)
		}
	}

	return nil
}
