package cmd

import (
	"fmt"
	"os"
	"strconv"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/inovacc/sweepr/internal/auth"
	"github.com/inovacc/sweepr/internal/cli"
	"github.com/inovacc/sweepr/internal/config"
	"github.com/spf13/cobra"
)

var (
	configureShow  bool
	configureReset bool
)

var configureCmd = &cobra.Command{
	Use:   "configure",
	Short: "Configure sweepr settings",
	Long: `Interactively configure sweepr settings: output directory, default
result cap, organizations swept on GitHub Cloud, and the GitHub
Enterprise host.

The stored token is managed separately with 'sweepr auth' and is only
ever displayed masked.

Examples:
  sweepr configure            # interactive form
  sweepr configure --show     # show current configuration
  sweepr configure --reset    # reset to defaults`,
	RunE: runConfigure,
}

func init() {
	rootCmd.AddCommand(configureCmd)
	configureCmd.Flags().BoolVarP(&configureShow, "show", "s", false, "Show current configuration")
	configureCmd.Flags().BoolVarP(&configureReset, "reset", "r", false, "Reset configuration to defaults")
}

func runConfigure(_ *cobra.Command, _ []string) error {
	if configureShow {
		return showConfig()
	}

	if configureReset {
		if !promptConfirm("Reset configuration to defaults? [y/N]: ") {
			_, _ = fmt.Fprintln(os.Stdout, "Cancelled.")
			return nil
		}

		if err := config.Reset(); err != nil {
			return err
		}

		_, _ = fmt.Fprintln(os.Stdout, "Configuration reset to defaults.")

		return nil
	}

	m, err := cli.NewConfigureModel()
	if err != nil {
		return err
	}

	p := tea.NewProgram(&m)

	finalModel, err := p.Run()
	if err != nil {
		return err
	}

	configModel, ok := finalModel.(*cli.ConfigureModel)
	if !ok {
		return fmt.Errorf("unexpected configure model type %T", finalModel)
	}

	if configModel.Err != nil {
		return configModel.Err
	}

	if configModel.Saved {
		path, err := config.Path()
		if err == nil {
			_, _ = fmt.Fprintf(os.Stdout, "Saved to %s\n", path)
		}
	}

	return nil
}

func showConfig() error {
	cfg, err := config.Load()
	if err != nil {
		return err
	}

	token := "(not set)"
	if cfg.GitHub.Token != "" {
		token = auth.MaskToken(cfg.GitHub.Token)
	}

	host := "(github.com)"
	if cfg.GitHub.EnterpriseHost != "" {
		host = cfg.GitHub.EnterpriseHost
	}

	orgs := "(none)"
	if len(cfg.Organizations.Orgs) > 0 {
		orgs = truncateString(strings.Join(cfg.Organizations.Orgs, ", "), 40)
	}

	items := map[string]string{
		"Output directory": cfg.Search.OutputDir,
		"Max results":      strconv.Itoa(cfg.Search.MaxResults),
		"Enterprise host":  host,
		"Token":            token,
		"Organizations":    orgs,
	}
	order := []string{"Output directory", "Max results", "Enterprise host", "Token", "Organizations"}

	printInfoBox("sweepr configuration", items, order)

	if path, err := config.Path(); err == nil {
		_, _ = fmt.Fprintf(os.Stdout, "\nConfig file: %s\n", path)
	}

	return nil
}
