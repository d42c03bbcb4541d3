package cmd

import (
	"context"
	"fmt"
	"time"

	"github.com/inovacc/sweepr/internal/auth"
	"github.com/inovacc/sweepr/internal/config"
	"github.com/inovacc/sweepr/internal/core"
	"github.com/spf13/cobra"
)

var authStatusCmd = &cobra.Command{
	Use:   "status",
	Short: "Show the active GitHub token source",
	Long: `Show which source provides the GitHub token and a masked preview.

The full token is never printed.

Examples:
  sweepr auth status
  sweepr auth status --validate`,
	RunE: runAuthStatus,
}

var authStatusValidate bool

func init() {
	authCmd.AddCommand(authStatusCmd)

	authStatusCmd.Flags().BoolVar(&authStatusValidate, "validate", false, "Validate token with GitHub API")
}

func runAuthStatus(_ *cobra.Command, _ []string) error {
	cfg, err := config.Load()
	if err != nil {
		return err
	}

	result, err := auth.ResolveGitHubToken("", cfg.GitHub.Token, cfg.GitHub.EnterpriseHost)
	if err != nil {
		fmt.Println("No GitHub token found.")
		fmt.Println("\nAuthenticate with: sweepr auth login")

		return nil
	}

	fmt.Printf("Token: %s\n", result.Masked())
	fmt.Printf("Source: %s (%s)\n", result.Source, result.Name)

	if cfg.GitHub.EnterpriseHost != "" {
		fmt.Printf("Enterprise host: %s\n", cfg.GitHub.EnterpriseHost)
	}

	// Validate token if requested
	if authStatusValidate {
		fmt.Println("\nValidating token...")

		ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()

		valid, username, err := core.ValidateToken(ctx, result.Token, cfg.GitHub.EnterpriseHost)
		if err != nil {
			fmt.Printf("Validation error: %v\n", err)
		} else if valid {
			fmt.Printf("Token is valid. Authenticated as %s.\n", username)
		} else {
			fmt.Println("Token is invalid or expired.")
			fmt.Println("Re-authenticate with: sweepr auth login")
		}
	}

	return nil
}
