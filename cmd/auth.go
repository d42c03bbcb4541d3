package cmd

import (
	"github.com/spf13/cobra"
)

var authCmd = &cobra.Command{
	Use:   "auth",
	Short: "Manage GitHub authentication",
	Long: `Manage the GitHub token sweepr uses for code search.

Available Commands:
  login    Authenticate with GitHub via OAuth device flow
  status   Show where the active token comes from (masked)
  token    Store a personal access token in the config file

Tokens are resolved in priority order:
  1. --token flag
  2. GITHUB_TOKEN environment variable
  3. GH_TOKEN environment variable
  4. sweepr config file
  5. gh CLI authentication`,
}

func init() {
	rootCmd.AddCommand(authCmd)
}
