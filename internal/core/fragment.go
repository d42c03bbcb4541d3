package core

import (
	"strings"

	"github.com/google/go-github/v82/github"
)

// FragmentSeparator joins multiple text-match fragments from the same
// file into a single cell.
const FragmentSeparator = "\n---\n"

// ExtractFragment flattens a result's text matches into one string.
// Carriage returns are stripped, each fragment is trimmed, empty
// fragments are skipped, and the remainder is joined with a separator
// line so downstream consumers can tell the snippets apart.
func ExtractFragment(matches []*github.TextMatch) string {
	fragments := make([]string, 0, len(matches))

	for _, tm := range matches {
		text := strings.TrimSpace(strings.ReplaceAll(tm.GetFragment(), "\r", ""))
		if text == "" {
			continue
		}

		fragments = append(fragments, text)
	}

	return strings.Join(fragments, FragmentSeparator)
}
