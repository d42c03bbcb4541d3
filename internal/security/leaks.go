// Package security detects real credentials inside exported search
// results, separating confirmed leaks from pattern noise.
package security

import (
	"context"
	"fmt"
	"path/filepath"
	"strings"

	"github.com/zricethezav/gitleaks/v8/detect"
	"github.com/zricethezav/gitleaks/v8/report"
	"github.com/zricethezav/gitleaks/v8/sources"
)

// LeakScanner runs gitleaks detection over export folders.
type LeakScanner struct {
	detector *detect.Detector
}

// ScanResult contains the results of a leak scan.
type ScanResult struct {
	Findings    []Finding
	HasLeaks    bool
	ScannedPath string
}

// Finding represents a detected secret inside an export file.
type Finding struct {
	RuleID      string
	Description string
	File        string
	Line        int
	Secret      string // Redacted
	Match       string
}

// NewLeakScanner creates a new leak scanner with default gitleaks rules.
func NewLeakScanner() (*LeakScanner, error) {
	detector, err := detect.NewDetectorDefaultConfig()
	if err != nil {
		return nil, fmt.Errorf("failed to load gitleaks config: %w", err)
	}

	detector.Redact = 80 // Redact 80% of the secret

	return &LeakScanner{
		detector: detector,
	}, nil
}

// ScanDirectory scans a directory of export files for secrets.
func (s *LeakScanner) ScanDirectory(ctx context.Context, path string) (*ScanResult, error) {
	absPath, err := filepath.Abs(path)
	if err != nil {
		return nil, fmt.Errorf("failed to resolve path: %w", err)
	}

	source := &sources.Files{
		Path:   absPath,
		Config: &s.detector.Config,
		Sema:   s.detector.Sema,
	}

	findings, err := s.detector.DetectSource(ctx, source)
	if err != nil {
		return nil, fmt.Errorf("scan failed: %w", err)
	}

	return s.buildResult(findings, absPath), nil
}

func (s *LeakScanner) buildResult(findings []report.Finding, path string) *ScanResult {
	result := &ScanResult{
		ScannedPath: path,
		HasLeaks:    len(findings) > 0,
		Findings:    make([]Finding, 0, len(findings)),
	}

	for _, f := range findings {
		result.Findings = append(result.Findings, Finding{
			RuleID:      f.RuleID,
			Description: f.Description,
			File:        f.File,
			Line:        f.StartLine,
			Secret:      f.Secret, // Already redacted by detector
			Match:       f.Match,
		})
	}

	return result
}

// FormatFindings formats findings for display.
func FormatFindings(findings []Finding) string {
	if len(findings) == 0 {
		return ""
	}

	var sb strings.Builder
	sb.WriteString(fmt.Sprintf("\n⚠️  Found %d potential secret(s):\n\n", len(findings)))

	for i, f := range findings {
		sb.WriteString(fmt.Sprintf("  %d. %s\n", i+1, f.Description))
		sb.WriteString(fmt.Sprintf("     Rule: %s\n", f.RuleID))
		sb.WriteString(fmt.Sprintf("     File: %s:%d\n", f.File, f.Line))
		sb.WriteString(fmt.Sprintf("     Secret: %s\n", f.Secret))
		sb.WriteString("\n")
	}

	return sb.String()
}
