package cli

import (
	"fmt"
	"io"

	"github.com/charmbracelet/bubbles/list"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/inovacc/sweepr/internal/model"
)

var (
	titleStyle        = lipgloss.NewStyle().MarginLeft(2)
	itemStyle         = lipgloss.NewStyle().PaddingLeft(4)
	selectedItemStyle = lipgloss.NewStyle().PaddingLeft(2).Foreground(lipgloss.Color("170"))
	paginationStyle   = list.DefaultStyles().PaginationStyle.PaddingLeft(4)
	helpStyle         = list.DefaultStyles().HelpStyle.PaddingLeft(4).PaddingBottom(1)
)

type menuItem struct {
	title       string
	description string
	action      string
}

func (i menuItem) FilterValue() string { return i.title }

type itemDelegate struct{}

func (d itemDelegate) Height() int                             { return 1 }
func (d itemDelegate) Spacing() int                            { return 0 }
func (d itemDelegate) Update(_ tea.Msg, _ *list.Model) tea.Cmd { return nil }
func (d itemDelegate) Render(w io.Writer, m list.Model, index int, listItem list.Item) {
	i, ok := listItem.(menuItem)
	if !ok {
		return
	}

	str := fmt.Sprintf("%d. %s", index+1, i.title)

	fn := itemStyle.Render
	if index == m.Index() {
		fn = func(s ...string) string {
			return selectedItemStyle.Render("> " + s[0])
		}
	}

	_, _ = fmt.Fprint(w, fn(str))
}

// ChoiceModel is a single-pick list used for the main menu and the
// wizard's instance and scope steps.
type ChoiceModel struct {
	list         list.Model
	choice       string
	quitting     bool
	selectedItem menuItem
}

func (m ChoiceModel) Init() tea.Cmd {
	return nil
}

func (m ChoiceModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.list.SetWidth(msg.Width)

		return m, nil

	case tea.KeyMsg:
		switch keypress := msg.String(); keypress {
		case "ctrl+c", "q":
			m.quitting = true

			return m, tea.Quit

		case "enter":
			i, ok := m.list.SelectedItem().(menuItem)
			if ok {
				m.selectedItem = i
				m.choice = i.action
			}

			return m, tea.Quit
		}
	}

	var cmd tea.Cmd

	m.list, cmd = m.list.Update(msg)

	return m, cmd
}

func (m ChoiceModel) View() string {
	if m.choice != "" {
		return ""
	}

	if m.quitting {
		return "Goodbye!\n"
	}

	return "\n" + m.list.View()
}

// GetChoice returns the selected action, or "" when the user quit.
func (m ChoiceModel) GetChoice() string {
	return m.choice
}

func newChoiceMenu(title string, items []menuItem) ChoiceModel {
	listItems := make([]list.Item, 0, len(items))
	for _, item := range items {
		listItems = append(listItems, item)
	}

	const defaultWidth = 20

	l := list.New(listItems, itemDelegate{}, defaultWidth, len(items)+6)
	l.Title = title
	l.SetShowStatusBar(false)
	l.SetFilteringEnabled(false)
	l.Styles.Title = titleStyle
	l.Styles.PaginationStyle = paginationStyle
	l.Styles.HelpStyle = helpStyle

	return ChoiceModel{list: l}
}

// NewMainMenu builds the top-level interactive menu.
func NewMainMenu() ChoiceModel {
	return newChoiceMenu("sweepr - GitHub Code Search", []menuItem{
		{title: "Search Code", description: "Sweep code search for a pattern", action: "search"},
		{title: "Configure", description: "Edit sweepr settings", action: "configure"},
		{title: "Auth Status", description: "Show token source and masked token", action: "auth-status"},
		{title: "Login", description: "Authenticate with GitHub", action: "login"},
		{title: "Scan Exports", description: "Scan an output folder for real secrets", action: "scan"},
		{title: "File Types", description: "Show the file-type catalog", action: "types"},
		{title: "Exit", description: "Exit sweepr", action: "exit"},
	})
}

// NewInstanceMenu builds the wizard step picking the GitHub instance.
func NewInstanceMenu() ChoiceModel {
	return newChoiceMenu("Select GitHub instance", []menuItem{
		{title: "GitHub Cloud", description: "api.github.com", action: string(model.InstanceCloud)},
		{title: "GitHub On-Premise", description: "Enterprise host from config", action: string(model.InstanceOnPrem)},
	})
}

// NewScopeMenu builds the wizard step picking the repository scope.
func NewScopeMenu() ChoiceModel {
	return newChoiceMenu("Select repository scope", []menuItem{
		{title: "Organization repositories only", description: "Drop results from user-owned repos", action: string(model.ScopeOrgOnly)},
		{title: "All repositories", description: "Include user-owned repositories", action: string(model.ScopeAll)},
	})
}
