package cli

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/inovacc/sweepr/internal/model"
)

// SearchFormDefaults seeds the wizard form from the stored configuration.
type SearchFormDefaults struct {
	MaxResults    int
	Organizations []string
}

// SearchFormModel collects the sweep parameters the flags did not
// provide: pattern, extension filters, result budget, and an optional
// organizations override.
type SearchFormModel struct {
	focusIndex int
	inputs     []textinput.Model
	errText    string
	Submitted  bool
}

func NewSearchForm(defaults SearchFormDefaults) SearchFormModel {
	m := SearchFormModel{
		inputs: make([]textinput.Model, 4),
	}

	var t textinput.Model
	for i := range m.inputs {
		t = textinput.New()
		t.Cursor.Style = cursorStyle
		t.CharLimit = 256

		switch i {
		case 0:
			t.Placeholder = `api_key=`
			t.Focus()
			t.PromptStyle = focusedStyle
			t.TextStyle = focusedStyle
		case 1:
			t.Placeholder = "py, js (empty = all file types)"
		case 2:
			t.Placeholder = "100"
			t.CharLimit = 10

			if defaults.MaxResults > 0 {
				t.SetValue(strconv.Itoa(defaults.MaxResults))
			}
		case 3:
			t.Placeholder = "override configured orgs (optional)"
			t.SetValue(strings.Join(defaults.Organizations, ", "))
		}

		m.inputs[i] = t
	}

	return m
}

func (m *SearchFormModel) Init() tea.Cmd {
	return textinput.Blink
}

func (m *SearchFormModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	if msg, ok := msg.(tea.KeyMsg); ok {
		switch msg.String() {
		case "ctrl+c", "esc":
			return m, tea.Quit

		case "tab", "shift+tab", "enter", "up", "down":
			s := msg.String()

			if s == "enter" && m.focusIndex == len(m.inputs) {
				if err := m.validate(); err != nil {
					m.errText = err.Error()

					return m, nil
				}

				m.errText = ""
				m.Submitted = true

				return m, tea.Quit
			}

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
					cmds[i] = m.inputs[i].Focus()
					m.inputs[i].PromptStyle = focusedStyle
					m.inputs[i].TextStyle = focusedStyle

					continue
				}

				m.inputs[i].Blur()
				m.inputs[i].PromptStyle = noStyle
				m.inputs[i].TextStyle = noStyle
			}

			return m, tea.Batch(cmds...)
		}
	}

	cmds := make([]tea.Cmd, len(m.inputs))
	for i := range m.inputs {
		m.inputs[i], cmds[i] = m.inputs[i].Update(msg)
	}

	return m, tea.Batch(cmds...)
}

func (m *SearchFormModel) View() string {
	headerStyle := lipgloss.NewStyle().
		Bold(true).
		Foreground(lipgloss.Color("205"))

	s := headerStyle.Render("Search Parameters") + "\n"
	s += blurredStyle.Render("Edit the fields below and press Tab to navigate") + "\n\n"
	s += fmt.Sprintf(fmtV1, blurredStyle.Render("Search Pattern:"), m.inputs[0].View())
	s += fmt.Sprintf(fmtV1, blurredStyle.Render("File Extensions (comma-separated):"), m.inputs[1].View())
	s += fmt.Sprintf(fmtV1, blurredStyle.Render("Max Results (1-1000):"), m.inputs[2].View())
	s += fmt.Sprintf(fmtV1, blurredStyle.Render("Organizations:"), m.inputs[3].View())

	if m.errText != "" {
		s += errorStyle.Render(" ✗ "+m.errText) + "\n"
	}

	button := &blurredButton
	if m.focusIndex == len(m.inputs) {
		button = &focusedButton
	}

	s += fmt.Sprintf("\n\n %s\n\n", *button)
	s += helpStyleConfigure.Render(" tab/shift+tab: navigate • enter: submit • esc: quit")

	return s
}

func (m *SearchFormModel) validate() error {
	if strings.TrimSpace(m.inputs[0].Value()) == "" {
		return fmt.Errorf("search pattern is required")
	}

	n, err := strconv.Atoi(strings.TrimSpace(m.inputs[2].Value()))
	if err != nil {
		return fmt.Errorf("max results must be a number")
	}

	return model.ValidateMaxResults(n)
}

// Pattern returns the entered search pattern.
func (m *SearchFormModel) Pattern() string {
	return strings.TrimSpace(m.inputs[0].Value())
}

// Extensions returns the entered extension filters, split and trimmed.
func (m *SearchFormModel) Extensions() []string {
	return splitComma(m.inputs[1].Value())
}

// MaxResults returns the entered result budget.
func (m *SearchFormModel) MaxResults() int {
	n, err := strconv.Atoi(strings.TrimSpace(m.inputs[2].Value()))
	if err != nil {
		return 0
	}

	return n
}

// Organizations returns the organizations override, split and trimmed.
func (m *SearchFormModel) Organizations() []string {
	return splitComma(m.inputs[3].Value())
}
