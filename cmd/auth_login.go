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

var authLoginCmd = &cobra.Command{
	Use:   "login",
	Short: "Authenticate with GitHub via OAuth device flow",
	Long: `Authenticate with GitHub using the OAuth device flow.

This will start a device flow where you:
1. Copy the displayed code
2. Open the GitHub URL in your browser
3. Paste the code and authorize sweepr

The token is stored in the sweepr config file and used for code search
when no higher-priority source provides one.

Examples:
  sweepr auth login
  sweepr auth login --host github.mycompany.com
  sweepr auth login --scopes repo,read:org,read:user`,
	RunE: runAuthLogin,
}

var (
	authLoginHost   string
	authLoginScopes []string
)

func init() {
	authCmd.AddCommand(authLoginCmd)

	authLoginCmd.Flags().StringVar(&authLoginHost, "host", "github.com", "GitHub host (for enterprise)")
	authLoginCmd.Flags().StringSliceVar(&authLoginScopes, "scopes", nil, "OAuth scopes (default: repo,read:org)")
}

func runAuthLogin(_ *cobra.Command, _ []string) error {
	scopes := authLoginScopes
	if len(scopes) == 0 {
		scopes = []string{"repo", "read:org"}
	}

	_, _ = fmt.Fprintf(os.Stdout, "Host: %s\n", authLoginHost)
	_, _ = fmt.Fprintf(os.Stdout, "Scopes: %s\n\n", strings.Join(scopes, ", "))

	flow := core.NewOAuthFlow(authLoginHost, scopes)

	flow.OnDeviceCode(func(code, url string) {
		_, _ = fmt.Fprintln(os.Stdout, "GitHub OAuth Authentication")
		_, _ = fmt.Fprintln(os.Stdout, strings.Repeat("-", 40))
		_, _ = fmt.Fprintf(os.Stdout, "\n1. Copy this code: %s\n\n", code)
		_, _ = fmt.Fprintf(os.Stdout, "2. Open: %s\n\n", url)
		_, _ = fmt.Fprintln(os.Stdout, "3. Paste the code and authorize sweepr")
		_, _ = fmt.Fprintln(os.Stdout, "\nWaiting for authorization...")
	})

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Minute)
	defer cancel()

	result, err := flow.Run(ctx)
	if err != nil {
		return fmt.Errorf("OAuth authentication failed: %w", err)
	}

	cfg, err := config.Load()
	if err != nil {
		return err
	}

	cfg.GitHub.Token = result.Token
	if authLoginHost != "" && authLoginHost != "github.com" {
		cfg.GitHub.EnterpriseHost = authLoginHost
	}

	if err := config.Save(cfg); err != nil {
		return fmt.Errorf("failed to save token: %w", err)
	}

	_, _ = fmt.Fprintln(os.Stdout, "\n✅ Authentication successful!")
	_, _ = fmt.Fprintf(os.Stdout, "User: %s\n", result.Username)
	_, _ = fmt.Fprintf(os.Stdout, "Token: %s\n", auth.MaskToken(result.Token))

	if len(result.Scopes) > 0 {
		_, _ = fmt.Fprintf(os.Stdout, "Scopes: %s\n", strings.Join(result.Scopes, ", "))
	}

	return nil
}
