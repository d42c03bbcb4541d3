// Package core provides the search engine layer for sweepr.
//
// This package contains all sweep functionality separated from UI
// concerns. Functions in this package handle query building, paginated
// code search, rate-limit handling, and run orchestration.
//
// # Design Principles
//
//   - Functions return errors instead of printing to stdout/stderr
//   - All API access goes through a *github.Client built by this package
//   - UI-specific logic belongs in the cli package, not here
//
// # Sweep Operations
//
// A sweep is split into two layers:
//
//  1. [Searcher.Search] - Pages through code-search results for one query
//  2. [Runner.Execute] - Fans a query out over organizations (cloud) or
//     issues it once against the whole instance (on-prem)
//
// This split allows the command layer to report per-organization
// progress while core handles pagination and rate limits.
//
// # Authentication Operations
//
// The package also provides the OAuth device flow and token validation
// used by the auth commands.
package core
