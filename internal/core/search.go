package core

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/go-github/v82/github"
	"github.com/inovacc/sweepr/internal/model"
)

// searchPageSize is the API maximum for code-search pages.
const searchPageSize = 100

// RetryPolicy controls rate-limit handling during a sweep.
type RetryPolicy struct {
	// MaxRetries bounds how often a single page is retried after the
	// API reports a rate limit.
	MaxRetries int
	// InitialDelay is the minimum wait before a retry, applied even
	// when the reported reset time is in the past.
	InitialDelay time.Duration
}

// DefaultRetryPolicy returns the policy used for real sweeps.
func DefaultRetryPolicy() RetryPolicy {
	return RetryPolicy{
		MaxRetries:   5,
		InitialDelay: 2 * time.Second,
	}
}

// Searcher pages through GitHub code-search results, waiting out rate
// limits and converting raw items into search results.
type Searcher struct {
	client *github.Client
	policy RetryPolicy
	logger *slog.Logger
}

// SearcherOptions configures optional Searcher behavior.
type SearcherOptions struct {
	// Policy overrides the default retry policy when non-zero.
	Policy RetryPolicy
	// Logger for rate-limit waits and page progress. Defaults to slog.Default().
	Logger *slog.Logger
}

// NewSearcher creates a Searcher on top of an API client.
func NewSearcher(client *github.Client, opts SearcherOptions) *Searcher {
	policy := opts.Policy
	if policy.MaxRetries == 0 && policy.InitialDelay == 0 {
		policy = DefaultRetryPolicy()
	}

	logger := opts.Logger
	if logger == nil {
		logger = slog.Default()
	}

	return &Searcher{
		client: client,
		policy: policy,
		logger: logger,
	}
}

// Search pages through code-search results for query until maxResults
// are collected or the result stream dries up. It returns the collected
// results and the total_count reported by the last page, which reflects
// the full server-side match count rather than what was fetched.
//
// With ScopeOrgOnly, results from user-owned repositories are dropped
// client-side; filtered items still count toward the page size when
// deciding whether the stream is exhausted, so a short raw page always
// terminates the sweep.
func (s *Searcher) Search(ctx context.Context, query string, maxResults int, scope model.RepoScope) ([]model.SearchResult, int, error) {
	var (
		results    []model.SearchResult
		totalCount int
	)

	page := 1
	for len(results) < maxResults {
		perPage := maxResults - len(results)
		if perPage > searchPageSize {
			perPage = searchPageSize
		}

		res, err := s.fetchPage(ctx, query, page, perPage)
		if err != nil {
			return nil, 0, err
		}

		totalCount = res.GetTotal()

		items := res.CodeResults
		if len(items) == 0 {
			break
		}

		for _, item := range items {
			if scope == model.ScopeOrgOnly && item.GetRepository().GetOwner().GetType() != "Organization" {
				continue
			}

			results = append(results, newSearchResult(item))
		}

		s.logger.Debug("fetched search page",
			slog.Int("page", page),
			slog.Int("items", len(items)),
			slog.Int("collected", len(results)),
		)

		if len(items) < perPage {
			break
		}

		page++
	}

	return results, totalCount, nil
}

// fetchPage requests a single results page, retrying after primary and
// secondary rate limits up to the policy's budget. A transient network
// fault gets a single retry; any other error is returned as-is.
func (s *Searcher) fetchPage(ctx context.Context, query string, page, perPage int) (*github.CodeSearchResult, error) {
	opts := &github.SearchOptions{
		TextMatch: true,
		ListOptions: github.ListOptions{
			Page:    page,
			PerPage: perPage,
		},
	}

	var lastErr error

	transientRetried := false

	for attempt := 0; attempt <= s.policy.MaxRetries; attempt++ {
		res, _, err := s.client.Search.Code(ctx, query, opts)
		if err == nil {
			return res, nil
		}

		lastErr = err

		var rateLimitErr *github.RateLimitError
		if errors.As(err, &rateLimitErr) {
			wait := time.Until(rateLimitErr.Rate.Reset.Time)
			if wait < s.policy.InitialDelay {
				wait = s.policy.InitialDelay
			}

			s.logger.Warn("search rate limit hit, waiting for reset",
				slog.Int("page", page),
				slog.Int("attempt", attempt+1),
				slog.Duration("wait", wait.Round(time.Second)),
			)

			if err := sleepCtx(ctx, wait); err != nil {
				return nil, err
			}

			continue
		}

		var abuseErr *github.AbuseRateLimitError
		if errors.As(err, &abuseErr) {
			wait := abuseErr.GetRetryAfter()
			if wait < s.policy.InitialDelay {
				wait = s.policy.InitialDelay
			}

			s.logger.Warn("secondary rate limit hit, backing off",
				slog.Int("page", page),
				slog.Int("attempt", attempt+1),
				slog.Duration("retry_after", wait),
			)

			if err := sleepCtx(ctx, wait); err != nil {
				return nil, err
			}

			continue
		}

		if isTransientError(err) && !transientRetried {
			transientRetried = true

			s.logger.Warn("transient error during search, retrying once",
				slog.Int("page", page),
				slog.String("error", err.Error()),
			)

			if err := sleepCtx(ctx, s.policy.InitialDelay); err != nil {
				return nil, err
			}

			continue
		}

		return nil, fmt.Errorf("code search failed on page %d: %w", page, err)
	}

	return nil, &RetryExhaustedError{
		Page:     page,
		Attempts: s.policy.MaxRetries,
		Err:      lastErr,
	}
}

// sleepCtx waits for d unless the context ends first.
func sleepCtx(ctx context.Context, d time.Duration) error {
	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-time.After(d):
		return nil
	}
}

// newSearchResult maps a raw code-search item onto the flat result row
// used by exports. Getter accessors keep nil embedded structs safe.
func newSearchResult(item *github.CodeResult) model.SearchResult {
	repo := item.GetRepository()

	return model.SearchResult{
		HTMLURL:     item.GetHTMLURL(),
		Name:        item.GetName(),
		Path:        item.GetPath(),
		RepoFork:    repo.GetFork(),
		RepoHTMLURL: repo.GetHTMLURL(),
		RepoName:    repo.GetName(),
		OwnerType:   repo.GetOwner().GetType(),
		OwnerLogin:  repo.GetOwner().GetLogin(),
		Fragment:    ExtractFragment(item.TextMatches),
	}
}
