package cmd

import (
	"context"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/inovacc/sweepr/internal/auth"
	"github.com/inovacc/sweepr/internal/config"
	"github.com/inovacc/sweepr/internal/core"
	"github.com/spf13/cobra"
)

var authTokenCmd = &cobra.Command{
	Use:   "token [token]",
	Short: "Store a personal access token",
	Long: `Store a GitHub personal access token in the sweepr config file.

The token can be passed as an argument or entered at a hidden prompt.
It is validated against the GitHub API before saving and only ever
displayed masked.

Examples:
  sweepr auth token               # prompt (input hidden)
  sweepr auth token ghp_xxxx      # direct (visible in shell history)`,
	Args: cobra.MaximumNArgs(1),
	RunE: runAuthToken,
}

func init() {
	authCmd.AddCommand(authTokenCmd)
}

func runAuthToken(_ *cobra.Command, args []string) error {
	var token string

	if len(args) > 0 {
		token = args[0]
	} else {
		var err error

		token, err = readPassword("Paste your GitHub token: ")
		if err != nil {
			return err
		}
	}

	token = strings.TrimSpace(token)
	if token == "" {
		return fmt.Errorf("no token provided")
	}

	cfg, err := config.Load()
	if err != nil {
		return err
	}

	_, _ = fmt.Fprintln(os.Stdout, "Validating token...")

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	valid, username, err := core.ValidateToken(ctx, token, cfg.GitHub.EnterpriseHost)
	if err != nil {
		return fmt.Errorf("failed to validate token: %w", err)
	}

	if !valid {
		return fmt.Errorf("invalid or expired token")
	}

	cfg.GitHub.Token = token

	if err := config.Save(cfg); err != nil {
		return fmt.Errorf("failed to save token: %w", err)
	}

	_, _ = fmt.Fprintf(os.Stdout, "✅ Token saved for user %s (%s)\n", username, auth.MaskToken(token))

	return nil
}
