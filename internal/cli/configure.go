package cli

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/inovacc/sweepr/internal/config"
)

const fmtV1 = " %s\n %s\n\n"

var (
	focusedStyle       = lipgloss.NewStyle().Foreground(lipgloss.Color("205"))
	blurredStyle       = lipgloss.NewStyle().Foreground(lipgloss.Color("240"))
	cursorStyle        = focusedStyle
	noStyle            = lipgloss.NewStyle()
	errorStyle         = lipgloss.NewStyle().Foreground(lipgloss.Color("196"))
	helpStyleConfigure = blurredStyle

	focusedButton = focusedStyle.Render("[ Submit ]")
	blurredButton = fmt.Sprintf("[ %s ]", blurredStyle.Render("Submit"))
)

// ConfigureModel edits the persisted sweepr settings. The loaded config
// is kept whole so fields outside the form, like the stored token,
// survive a save.
type ConfigureModel struct {
	focusIndex int
	inputs     []textinput.Model
	cfg        *config.Config
	Saved      bool
	Err        error
}

func NewConfigureModel() (ConfigureModel, error) {
	cfg, err := config.Load()
	if err != nil {
		return ConfigureModel{}, err
	}

	m := ConfigureModel{
		inputs: make([]textinput.Model, 4),
		cfg:    cfg,
	}

	var t textinput.Model
	for i := range m.inputs {
		t = textinput.New()
		t.Cursor.Style = cursorStyle
		t.CharLimit = 256

		switch i {
		case 0:
			t.Placeholder = "output"
			t.SetValue(cfg.Search.OutputDir)
			t.Focus()
			t.PromptStyle = focusedStyle
			t.TextStyle = focusedStyle
		case 1:
			t.Placeholder = "ethereum, seopanel"
			t.SetValue(strings.Join(cfg.Organizations.Orgs, ", "))
		case 2:
			t.Placeholder = "github.mycorp.com (optional)"
			t.SetValue(cfg.GitHub.EnterpriseHost)
		case 3:
			t.Placeholder = "100"
			t.CharLimit = 10
			t.SetValue(strconv.Itoa(cfg.Search.MaxResults))
		}

		m.inputs[i] = t
	}

	return m, nil
}

func (m *ConfigureModel) Init() tea.Cmd {
	return textinput.Blink
}

func (m *ConfigureModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case successMsg:
		m.Saved = true
		return m, tea.Quit
	case errMsg:
		m.Err = msg.err
		return m, tea.Quit
	case tea.KeyMsg:
		switch msg.String() {
		case "ctrl+c", "esc":
			return m, tea.Quit

		case "tab", "shift+tab", "enter", "up", "down":
			s := msg.String()

			// Submit on enter when on the submit button
			if s == "enter" && m.focusIndex == len(m.inputs) {
				return m, m.saveConfig
			}

			// Cycle indexes
			if s == "up" || s == "shift+tab" {
				m.focusIndex--
			} else {
				m.focusIndex++
			}

			if m.focusIndex > len(m.inputs) {
				m.focusIndex = 0
			} else if m.focusIndex < 0 {
				m.focusIndex = len(m.inputs)
			}

			cmds := make([]tea.Cmd, len(m.inputs))
			for i := 0; i <= len(m.inputs)-1; i++ {
				if i == m.focusIndex {
					// Set focused state
					cmds[i] = m.inputs[i].Focus()
					m.inputs[i].PromptStyle = focusedStyle
					m.inputs[i].TextStyle = focusedStyle

					continue
				}
				// Remove the focused state
				m.inputs[i].Blur()
				m.inputs[i].PromptStyle = noStyle
				m.inputs[i].TextStyle = noStyle
			}

			return m, tea.Batch(cmds...)
		}
	}

	// Handle character input and blinking
	cmd := m.updateInputs(msg)

	return m, cmd
}

func (m *ConfigureModel) updateInputs(msg tea.Msg) tea.Cmd {
	cmds := make([]tea.Cmd, len(m.inputs))

	// Only text inputs with Focus() set will respond, so it's safe to simply
	// update all of them here without any further logic.
	for i := range m.inputs {
		m.inputs[i], cmds[i] = m.inputs[i].Update(msg)
	}

	return tea.Batch(cmds...)
}

func (m *ConfigureModel) View() string {
	if m.Saved {
		return lipgloss.NewStyle().
			Foreground(lipgloss.Color("42")).
			Render("\n  ✓ Configuration saved successfully!\n\n")
	}

	if m.Err != nil {
		return errorStyle.Render(fmt.Sprintf("\n  ✗ Error: %v\n\n", m.Err))
	}

	headerStyle := lipgloss.NewStyle().
		Bold(true).
		Foreground(lipgloss.Color("205"))

	s := headerStyle.Render("Configure Sweepr Settings") + "\n"
	s += blurredStyle.Render("Edit the fields below and press Tab to navigate") + "\n\n"
	s += fmt.Sprintf(fmtV1, blurredStyle.Render("Output Directory:"), m.inputs[0].View())
	s += fmt.Sprintf(fmtV1, blurredStyle.Render("Organizations (comma-separated):"), m.inputs[1].View())
	s += fmt.Sprintf(fmtV1, blurredStyle.Render("Enterprise Host:"), m.inputs[2].View())
	s += fmt.Sprintf(fmtV1, blurredStyle.Render("Default Max Results:"), m.inputs[3].View())

	button := &blurredButton
	if m.focusIndex == len(m.inputs) {
		button = &focusedButton
	}

	s += fmt.Sprintf("\n\n %s\n\n", *button)
	s += helpStyleConfigure.Render(" tab/shift+tab: navigate • enter: submit • esc: quit")

	return s
}

func (m *ConfigureModel) saveConfig() tea.Msg {
	maxResults, err := strconv.Atoi(strings.TrimSpace(m.inputs[3].Value()))
	if err != nil {
		maxResults = config.DefaultMaxResults
	}

	m.cfg.Search.OutputDir = strings.TrimSpace(m.inputs[0].Value())
	m.cfg.Organizations.Orgs = splitComma(m.inputs[1].Value())
	m.cfg.GitHub.EnterpriseHost = strings.TrimSpace(m.inputs[2].Value())
	m.cfg.Search.MaxResults = maxResults

	if err := config.Save(m.cfg); err != nil {
		return errMsg{err}
	}

	return successMsg{}
}

// splitComma splits a comma-separated field into trimmed, non-empty parts.
func splitComma(s string) []string {
	var out []string

	for _, part := range strings.Split(s, ",") {
		if part = strings.TrimSpace(part); part != "" {
			out = append(out, part)
		}
	}

	return out
}

type successMsg struct{}
type errMsg struct{ err error }
