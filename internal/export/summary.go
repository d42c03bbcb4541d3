package export

import (
	"fmt"
	"os"
	"strings"

	"github.com/inovacc/sweepr/internal/model"
)

const summaryTitle = "GitHub Search Automation - Results Summary"

// AppendOrgCount appends one per-organization line to the run summary,
// creating the file on first use. It is called immediately after each
// organization completes, so partial progress survives a failure in a
// later organization.
func AppendOrgCount(path, org string, count int) error {
	f, err := os.OpenFile(path, os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0o644)
	if err != nil {
		return fmt.Errorf("failed to open summary file: %w", err)
	}

	if _, err := fmt.Fprintf(f, "Organization: %s, Occurrences Found: %d\n", org, count); err != nil {
		_ = f.Close()

		return fmt.Errorf("failed to append to summary file: %w", err)
	}

	return f.Close()
}

// WriteSummary writes the final configuration block of the run summary.
// Cloud runs append below the per-organization lines already in the
// file; on-prem runs create the file fresh with a title header.
//
// On-prem summaries report both the server-side total and the fetched
// count; cloud summaries report the fetched count, with the per-org
// totals already recorded line by line above.
func WriteSummary(path string, run *model.SearchRun) error {
	var b strings.Builder

	flags := os.O_CREATE | os.O_WRONLY

	if run.Instance == model.InstanceCloud {
		flags |= os.O_APPEND

		b.WriteString("\n")
	} else {
		flags |= os.O_TRUNC

		b.WriteString(summaryTitle + "\n")
		b.WriteString(strings.Repeat("=", 50) + "\n\n")
	}

	b.WriteString("Search Configuration:\n")
	_, _ = fmt.Fprintf(&b, "Search Pattern: %s\n", run.Pattern)
	_, _ = fmt.Fprintf(&b, "File Types: %s\n", run.FileTypesLabel())
	_, _ = fmt.Fprintf(&b, "GitHub Instance: %s (%s)\n", run.Instance, run.Instance.DisplayName())
	_, _ = fmt.Fprintf(&b, "Repository Scope: %s\n", run.Scope.Description())

	if run.Instance == model.InstanceCloud {
		_, _ = fmt.Fprintf(&b, "Total Results Fetched: %d\n", len(run.Results))
	} else {
		_, _ = fmt.Fprintf(&b, "Total Occurrences Found: %d\n", run.TotalCount)
		_, _ = fmt.Fprintf(&b, "Results Fetched: %d\n", len(run.Results))
	}

	_, _ = fmt.Fprintf(&b, "Timestamp: %s\n", run.StartedAt.Format(timestampLayout))
	_, _ = fmt.Fprintf(&b, "Run ID: %s\n", run.ID)

	f, err := os.OpenFile(path, flags, 0o644)
	if err != nil {
		return fmt.Errorf("failed to open summary file: %w", err)
	}

	if _, err := f.WriteString(b.String()); err != nil {
		_ = f.Close()

		return fmt.Errorf("failed to write summary file: %w", err)
	}

	return f.Close()
}
