package cmd

import (
	"context"
	"fmt"
	"os"

	"github.com/inovacc/sweepr/internal/config"
	"github.com/inovacc/sweepr/internal/security"
	"github.com/spf13/cobra"
)

var scanCmd = &cobra.Command{
	Use:   "scan [path]",
	Short: "Scan exported results for secrets",
	Long: `Scan exported search results for hardcoded secrets and credentials.

Code fragments fetched from repositories regularly contain live
credentials. Scan an output folder before sharing it.

Uses gitleaks rules to detect:
- API keys, tokens, passwords
- Private keys, certificates
- Cloud provider credentials
- Database connection strings

Examples:
  sweepr scan                          # Scan the configured output directory
  sweepr scan output/api_key__cloud_*  # Scan one run folder`,
	Args: cobra.MaximumNArgs(1),
	RunE: runScan,
}

func init() {
	rootCmd.AddCommand(scanCmd)
}

func runScan(_ *cobra.Command, args []string) error {
	var path string

	if len(args) > 0 {
		path = args[0]
	} else {
		cfg, err := config.Load()
		if err != nil {
			return err
		}

		path = cfg.Search.OutputDir
	}

	return scanPath(context.Background(), path)
}

func scanPath(ctx context.Context, path string) error {
	_, _ = fmt.Fprintf(os.Stdout, "🔍 Scanning %s for secrets...\n\n", path)

	scanner, err := security.NewLeakScanner()
	if err != nil {
		return fmt.Errorf("failed to initialize scanner: %w", err)
	}

	result, err := scanner.ScanDirectory(ctx, path)
	if err != nil {
		return fmt.Errorf("scan failed: %w", err)
	}

	if result.HasLeaks {
		_, _ = fmt.Fprint(os.Stdout, security.FormatFindings(result.Findings))
		_, _ = fmt.Fprintf(os.Stdout, "❌ Found %d secret(s)\n", len(result.Findings))

		return fmt.Errorf("secrets detected")
	}

	_, _ = fmt.Fprintln(os.Stdout, "✅ No secrets detected!")

	return nil
}
