// Package export writes the per-run output artifacts: the full results
// CSV, the pattern-lines CSV derived from it, and the human-readable
// run summary.
package export

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"
	"unicode"

	"github.com/inovacc/sweepr/internal/model"
)

const (
	summaryFileName   = "Search_Summary.txt"
	timestampLayout   = "20060102_150405"
	maxSafePatternLen = 20
)

// RunPaths locates the output directory and files of one run.
type RunPaths struct {
	// Dir is the per-run folder under the output root.
	Dir string
	// Base is the folder name, also the prefix of both CSV files.
	Base string
	// Summary is the run summary text file.
	Summary string
	// Fragments is the full export CSV.
	Fragments string
	// PatternLines is the filtered export CSV.
	PatternLines string
}

// NewRunPaths builds the output layout for one run rooted at outputRoot.
// The folder name combines a filesystem-safe slug of the pattern, the
// instance, and the start timestamp, so repeated sweeps never collide.
func NewRunPaths(outputRoot, pattern string, instance model.Instance, startedAt time.Time) RunPaths {
	base := fmt.Sprintf("%s_%s_%s", SafePattern(pattern), instance, startedAt.Format(timestampLayout))
	dir := filepath.Join(outputRoot, base)

	return RunPaths{
		Dir:          dir,
		Base:         base,
		Summary:      filepath.Join(dir, summaryFileName),
		Fragments:    filepath.Join(dir, base+"_fragments.csv"),
		PatternLines: filepath.Join(dir, base+"_pattern_lines.csv"),
	}
}

// Create makes the run directory, including missing parents.
func (p RunPaths) Create() error {
	if err := os.MkdirAll(p.Dir, 0o755); err != nil {
		return fmt.Errorf("failed to create output folder: %w", err)
	}

	return nil
}

// SafePattern reduces a search pattern to a filesystem-safe slug: every
// rune that is not a letter or number becomes an underscore, and the
// result is capped at 20 runes.
func SafePattern(pattern string) string {
	var b strings.Builder

	for _, r := range pattern {
		if unicode.IsLetter(r) || unicode.IsNumber(r) {
			b.WriteRune(r)
		} else {
			b.WriteRune('_')
		}
	}

	runes := []rune(b.String())
	if len(runes) > maxSafePatternLen {
		runes = runes[:maxSafePatternLen]
	}

	return string(runes)
}
