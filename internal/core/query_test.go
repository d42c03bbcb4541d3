package core

import (
	"reflect"
	"testing"
)

func TestNormalizeExtensions(t *testing.T) {
	tests := []struct {
		name     string
		input    []string
		expected []string
	}{
		{"nil", nil, []string{}},
		{"empty", []string{}, []string{}},
		{"plain", []string{"py", "go"}, []string{"py", "go"}},
		{"leading dots stripped", []string{".py", "..go"}, []string{"py", "go"}},
		{"whitespace trimmed", []string{" py ", "\tgo"}, []string{"py", "go"}},
		{"empties dropped", []string{"py", "", "  ", "."}, []string{"py"}},
		{"duplicates removed in order", []string{"py", "go", ".py", "go", "rb"}, []string{"py", "go", "rb"}},
		{"case preserved", []string{"Py", "py"}, []string{"Py", "py"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := NormalizeExtensions(tt.input); !reflect.DeepEqual(got, tt.expected) {
				t.Errorf("NormalizeExtensions(%v) = %v, want %v", tt.input, got, tt.expected)
			}
		})
	}
}

func TestBuildSearchQuery(t *testing.T) {
	tests := []struct {
		name       string
		pattern    string
		extensions []string
		expected   string
	}{
		{
			name:     "pattern only",
			pattern:  "api_key",
			expected: `"api_key" in:file`,
		},
		{
			name:       "single extension",
			pattern:    "TODO",
			extensions: []string{"go"},
			expected:   `"TODO" in:file extension:go`,
		},
		{
			name:       "multiple extensions keep order",
			pattern:    "password",
			extensions: []string{"py", "js", "yaml"},
			expected:   `"password" in:file extension:py extension:js extension:yaml`,
		},
		{
			name:       "extensions normalized",
			pattern:    "secret",
			extensions: []string{".py", "py", " .env "},
			expected:   `"secret" in:file extension:py extension:env`,
		},
		{
			name:     "pattern with spaces",
			pattern:  "import requests",
			expected: `"import requests" in:file`,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := BuildSearchQuery(tt.pattern, tt.extensions); got != tt.expected {
				t.Errorf("BuildSearchQuery() = %q, want %q", got, tt.expected)
			}
		})
	}
}

func TestOrgQuery(t *testing.T) {
	got := OrgQuery(`"api_key" in:file extension:py`, "ethereum")

	expected := `"api_key" in:file extension:py org:ethereum`
	if got != expected {
		t.Errorf("OrgQuery() = %q, want %q", got, expected)
	}
}
