package core

import "strings"

// NormalizeExtensions trims whitespace and leading dots from each
// extension, drops empties, and removes duplicates while preserving the
// input order.
func NormalizeExtensions(extensions []string) []string {
	seen := make(map[string]struct{}, len(extensions))
	out := make([]string, 0, len(extensions))

	for _, ext := range extensions {
		ext = strings.TrimLeft(strings.TrimSpace(ext), ".")
		if ext == "" {
			continue
		}

		if _, ok := seen[ext]; ok {
			continue
		}

		seen[ext] = struct{}{}
		out = append(out, ext)
	}

	return out
}

// BuildSearchQuery renders the code-search query string: the pattern
// wrapped in quotes for exact matching, scoped to file contents, with
// one extension qualifier appended per normalized filter.
func BuildSearchQuery(pattern string, extensions []string) string {
	var b strings.Builder

	b.WriteString(`"`)
	b.WriteString(pattern)
	b.WriteString(`" in:file`)

	for _, ext := range NormalizeExtensions(extensions) {
		b.WriteString(" extension:")
		b.WriteString(ext)
	}

	return b.String()
}

// OrgQuery scopes a query to a single organization.
func OrgQuery(query, org string) string {
	return query + " org:" + org
}
