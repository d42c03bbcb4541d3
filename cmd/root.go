package cmd

import (
	"fmt"
	"os"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/inovacc/sweepr/internal/application"
	"github.com/inovacc/sweepr/internal/cli"
	"github.com/spf13/cobra"
)

var rootCmd = &cobra.Command{
	Use:   application.AppName,
	Short: "GitHub code search automation",
	Long: `Sweepr sweeps GitHub code search for a text pattern and exports every
match to CSV, together with a per-line filter and a run summary.

It searches GitHub Cloud across a configured list of organizations or a
GitHub Enterprise instance with a single query, honoring API rate limits
with automatic retries.

Run 'sweepr' without arguments to enter interactive mode.`,
	RunE: runInteractiveMenu,
}

func Execute() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

// GetRootCmd returns the root command for introspection purposes.
func GetRootCmd() *cobra.Command {
	return rootCmd
}

func init() {
	// Global flags can be added here if needed
}

// runInteractiveMenu shows the main menu in a loop until the user exits,
// dispatching each choice to the matching command handler.
func runInteractiveMenu(_ *cobra.Command, _ []string) error {
	_, _ = fmt.Fprint(os.Stdout, cli.Banner())

	for {
		choice, err := runChoiceMenu(cli.NewMainMenu())
		if err != nil {
			return err
		}

		if choice == "" || choice == "exit" {
			return nil
		}

		if err := dispatchMenuChoice(choice); err != nil {
			_, _ = fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		}

		_, _ = fmt.Fprintln(os.Stdout, "\nPress Enter to continue...")
		_, _ = fmt.Scanln()
	}
}

func dispatchMenuChoice(choice string) error {
	switch choice {
	case "search":
		return runSearch(searchCmd, nil)
	case "configure":
		return runConfigure(configureCmd, nil)
	case "auth-status":
		return runAuthStatus(authStatusCmd, nil)
	case "login":
		return runAuthLogin(authLoginCmd, nil)
	case "scan":
		return runScan(scanCmd, nil)
	case "types":
		return runTypes(typesCmd, nil)
	default:
		return fmt.Errorf("unknown menu action: %s", choice)
	}
}

// runChoiceMenu runs a single-pick menu program and returns the chosen
// action, or "" when the user backed out.
func runChoiceMenu(m cli.ChoiceModel) (string, error) {
	p := tea.NewProgram(m)

	finalModel, err := p.Run()
	if err != nil {
		return "", fmt.Errorf("menu error: %w", err)
	}

	menuModel, ok := finalModel.(cli.ChoiceModel)
	if !ok {
		return "", fmt.Errorf("unexpected menu model type %T", finalModel)
	}

	return menuModel.GetChoice(), nil
}
