package cmd

import (
	"testing"
)

func TestExpandPath(t *testing.T) {
	tests := []struct {
		name    string
		input   string
		wantErr bool
	}{
		{
			name:    "empty path",
			input:   "",
			wantErr: true,
		},
		{
			name:    "absolute path",
			input:   "/tmp/test",
			wantErr: false,
		},
		{
			name:    "home path",
			input:   "~/test",
			wantErr: false,
		},
		{
			name:    "relative path",
			input:   "output",
			wantErr: false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result, err := expandPath(tt.input)
			if (err != nil) != tt.wantErr {
				t.Errorf("expandPath(%q) error = %v, wantErr %v", tt.input, err, tt.wantErr)
				return
			}
			if !tt.wantErr && result == "" {
				t.Errorf("expandPath(%q) returned empty string", tt.input)
			}
		})
	}
}

func TestCenterString(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		width    int
		expected string
	}{
		{
			name:     "string shorter than width",
			input:    "test",
			width:    10,
			expected: "   test   ",
		},
		{
			name:     "string equal to width",
			input:    "test",
			width:    4,
			expected: "test",
		},
		{
			name:     "string longer than width",
			input:    "testing",
			width:    4,
			expected: "testing",
		},
		{
			name:     "odd padding",
			input:    "ab",
			width:    5,
			expected: " ab  ",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result := centerString(tt.input, tt.width)
			if result != tt.expected {
				t.Errorf("centerString(%q, %d) = %q, want %q", tt.input, tt.width, result, tt.expected)
			}
		})
	}
}

func TestTruncateString(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		maxLen   int
		expected string
	}{
		{
			name:     "string shorter than max",
			input:    "test",
			maxLen:   10,
			expected: "test",
		},
		{
			name:     "string equal to max",
			input:    "test",
			maxLen:   4,
			expected: "test",
		},
		{
			name:     "string longer than max",
			input:    "testing",
			maxLen:   5,
			expected: "te...",
		},
		{
			name:     "max length 3",
			input:    "testing",
			maxLen:   3,
			expected: "tes",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result := truncateString(tt.input, tt.maxLen)
			if result != tt.expected {
				t.Errorf("truncateString(%q, %d) = %q, want %q", tt.input, tt.maxLen, result, tt.expected)
			}
		})
	}
}

func TestPrintBoxFunctions(t *testing.T) {
	// These functions print to stdout, so we just verify they don't panic
	t.Run("printBoxHeader", func(t *testing.T) {
		printBoxHeader("Test Title")
	})

	t.Run("printBoxLine", func(t *testing.T) {
		printBoxLine("Label", "Value")
	})

	t.Run("printBoxLine with long content", func(t *testing.T) {
		printBoxLine("Very Long Label", "This is a very long value that exceeds the box width")
	})

	t.Run("printBoxFooter", func(t *testing.T) {
		printBoxFooter()
	})

	t.Run("printInfoBox", func(t *testing.T) {
		items := map[string]string{
			"Pattern": "api_key=",
			"Scope":   "Organization Repositories only",
		}
		order := []string{"Pattern", "Scope"}
		printInfoBox("Search Complete", items, order)
	})

	t.Run("printInfoBox with missing key", func(t *testing.T) {
		items := map[string]string{
			"Pattern": "api_key=",
		}
		order := []string{"Pattern", "Missing"}
		printInfoBox("Search Complete", items, order)
	})
}
