package cli

import (
	"strings"

	"github.com/charmbracelet/lipgloss"
)

var (
	bannerBorderStyle = lipgloss.NewStyle().
				Border(lipgloss.RoundedBorder()).
				BorderForeground(lipgloss.Color("62")).
				Padding(0, 2)

	bannerTitleStyle = lipgloss.NewStyle().
				Bold(true).
				Foreground(lipgloss.Color("205"))

	bannerFeatureStyle = lipgloss.NewStyle().
				Foreground(lipgloss.Color("240"))
)

// Banner renders the welcome banner shown when sweepr starts
// interactively.
func Banner() string {
	var b strings.Builder

	b.WriteString(bannerTitleStyle.Render("🔍 GitHub Code Search Automation"))
	b.WriteString("\n")
	b.WriteString(bannerFeatureStyle.Render(strings.Join([]string{
		"• Search across GitHub Cloud or On-Premise instances",
		"• Multiple file types and custom extensions",
		"• Organization-scoped sweeps",
		"• CSV exports with pattern-matching lines",
		"• Detailed run summaries",
	}, "\n")))

	return bannerBorderStyle.Render(b.String()) + "\n"
}
