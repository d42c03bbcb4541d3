package cmd

import (
	"fmt"
	"os"

	"github.com/inovacc/sweepr/internal/application"
	"github.com/spf13/cobra"
)

// appVersion is stamped at release time.
const appVersion = "0.1.0"

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Show version information",
	Run: func(_ *cobra.Command, _ []string) {
		_, _ = fmt.Fprintf(os.Stdout, "%s version %s\n", application.AppName, appVersion)
	},
}

func init() {
	rootCmd.AddCommand(versionCmd)
}
