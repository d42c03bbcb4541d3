package core

import (
	"testing"

	"github.com/google/go-github/v82/github"
)

func textMatch(fragment string) *github.TextMatch {
	return &github.TextMatch{Fragment: github.Ptr(fragment)}
}

func TestExtractFragment(t *testing.T) {
	tests := []struct {
		name     string
		matches  []*github.TextMatch
		expected string
	}{
		{
			name:     "nil matches",
			matches:  nil,
			expected: "",
		},
		{
			name:     "single fragment",
			matches:  []*github.TextMatch{textMatch(`api_key = "abc123"`)},
			expected: `api_key = "abc123"`,
		},
		{
			name: "multiple fragments joined with separator",
			matches: []*github.TextMatch{
				textMatch("first match"),
				textMatch("second match"),
			},
			expected: "first match\n---\nsecond match",
		},
		{
			name:     "carriage returns stripped",
			matches:  []*github.TextMatch{textMatch("line1\r\nline2\r\n")},
			expected: "line1\nline2",
		},
		{
			name: "empty fragments skipped",
			matches: []*github.TextMatch{
				textMatch(""),
				textMatch("   \n  "),
				textMatch("real content"),
			},
			expected: "real content",
		},
		{
			name:     "fragment without value",
			matches:  []*github.TextMatch{{}},
			expected: "",
		},
		{
			name: "surrounding whitespace trimmed",
			matches: []*github.TextMatch{
				textMatch("\n\n  padded  \n"),
			},
			expected: "padded",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := ExtractFragment(tt.matches); got != tt.expected {
				t.Errorf("ExtractFragment() = %q, want %q", got, tt.expected)
			}
		})
	}
}

// Extraction output fed back through the extractor survives unchanged,
// so doubled input yields exactly two separated copies.
func TestExtractFragment_Idempotent(t *testing.T) {
	original := ExtractFragment([]*github.TextMatch{textMatch("key = value\nother line")})

	doubled := ExtractFragment([]*github.TextMatch{textMatch(original), textMatch(original)})
	if doubled != original+FragmentSeparator+original {
		t.Errorf("ExtractFragment() on its own output = %q, want two copies joined by the separator", doubled)
	}
}
