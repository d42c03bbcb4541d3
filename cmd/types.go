package cmd

import (
	"fmt"
	"os"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/inovacc/sweepr/internal/model"
	"github.com/spf13/cobra"
)

var typesGroupStyle = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("205"))

var typesCmd = &cobra.Command{
	Use:   "types",
	Short: "List well-known file type extensions",
	Long: `List the file extension catalog offered by the search wizard.

These are convenience groups; any extension GitHub indexes can be
passed to 'sweepr search --ext'.`,
	RunE: runTypes,
}

var typesJSON bool

func init() {
	rootCmd.AddCommand(typesCmd)

	typesCmd.Flags().BoolVar(&typesJSON, "json", false, "Output as JSON")
}

func runTypes(_ *cobra.Command, _ []string) error {
	catalog := model.DefaultFileTypeCatalog()

	if typesJSON {
		return outputJSON(catalog)
	}

	for _, group := range catalog.Groups {
		_, _ = fmt.Fprintln(os.Stdout, typesGroupStyle.Render(group.Name))
		_, _ = fmt.Fprintf(os.Stdout, "  %s\n\n", strings.Join(group.Extensions, ", "))
	}

	_, _ = fmt.Fprintln(os.Stdout, "Use with: sweepr search -p <pattern> -e <ext> [-e <ext> ...]")

	return nil
}
