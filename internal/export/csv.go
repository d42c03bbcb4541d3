package export

import (
	"encoding/csv"
	"fmt"
	"os"
	"slices"
	"strconv"
	"strings"

	"github.com/inovacc/sweepr/internal/model"
)

// Columns is the fixed header of the full export, in write order.
var Columns = []string{
	"htmlUrl",
	"name",
	"path",
	"repoFork",
	"repoHtmlUrl",
	"repoName",
	"ownerType",
	"ownerLogin",
	"fragment",
}

// MatchingLineColumn extends Columns in the filtered export.
const MatchingLineColumn = "matchingLine"

// WriteResults writes the full export: the fixed header plus one row per
// result. An empty result list still produces a header-only file.
func WriteResults(path string, results []model.SearchResult) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("failed to create export file: %w", err)
	}

	w := csv.NewWriter(f)

	if err := w.Write(Columns); err != nil {
		_ = f.Close()

		return fmt.Errorf("failed to write export header: %w", err)
	}

	for _, res := range results {
		if err := w.Write(resultRow(res)); err != nil {
			_ = f.Close()

			return fmt.Errorf("failed to write export row: %w", err)
		}
	}

	w.Flush()

	if err := w.Error(); err != nil {
		_ = f.Close()

		return fmt.Errorf("failed to flush export: %w", err)
	}

	return f.Close()
}

func resultRow(res model.SearchResult) []string {
	return []string{
		res.HTMLURL,
		res.Name,
		res.Path,
		strconv.FormatBool(res.RepoFork),
		res.RepoHTMLURL,
		res.RepoName,
		res.OwnerType,
		res.OwnerLogin,
		res.Fragment,
	}
}

// FilterResults re-reads the full export at inPath and derives the
// pattern-lines export at outPath: each row's fragment is split into
// lines, and every line containing pattern under case-insensitive
// comparison produces one output row holding the original columns plus
// the trimmed line.
//
// The output file is always written, even with zero matches. A missing
// or unreadable input is tolerated: the output still carries a header
// (the canonical columns) and no rows. Returns the number of matching
// lines written.
func FilterResults(inPath, outPath, pattern string) (int, error) {
	header, rows := readFullExport(inPath)

	out, err := os.Create(outPath)
	if err != nil {
		return 0, fmt.Errorf("failed to create filtered export: %w", err)
	}

	w := csv.NewWriter(out)

	if err := w.Write(append(slices.Clone(header), MatchingLineColumn)); err != nil {
		_ = out.Close()

		return 0, fmt.Errorf("failed to write filtered header: %w", err)
	}

	fragmentIdx := slices.Index(header, "fragment")

	matches := 0

	for _, row := range rows {
		if fragmentIdx < 0 || fragmentIdx >= len(row) {
			continue
		}

		for _, line := range patternLines(row[fragmentIdx], pattern) {
			outRow := make([]string, len(header)+1)
			copy(outRow, row)
			outRow[len(header)] = line

			if err := w.Write(outRow); err != nil {
				_ = out.Close()

				return matches, fmt.Errorf("failed to write filtered row: %w", err)
			}

			matches++
		}
	}

	w.Flush()

	if err := w.Error(); err != nil {
		_ = out.Close()

		return matches, fmt.Errorf("failed to flush filtered export: %w", err)
	}

	return matches, out.Close()
}

// patternLines returns the trimmed fragment lines containing pattern,
// compared case-insensitively.
func patternLines(fragment, pattern string) []string {
	needle := strings.ToLower(pattern)

	var lines []string

	for _, line := range strings.Split(fragment, "\n") {
		if strings.Contains(strings.ToLower(line), needle) {
			lines = append(lines, strings.TrimSpace(line))
		}
	}

	return lines
}

// readFullExport loads the header and data rows of a full export. Any
// read problem degrades to the canonical header and no rows, matching
// the filter stage's tolerance for a missing or corrupt input file.
func readFullExport(path string) ([]string, [][]string) {
	f, err := os.Open(path)
	if err != nil {
		return Columns, nil
	}

	defer func() { _ = f.Close() }()

	r := csv.NewReader(f)
	r.FieldsPerRecord = -1

	records, err := r.ReadAll()
	if err != nil || len(records) == 0 {
		return Columns, nil
	}

	return records[0], records[1:]
}
