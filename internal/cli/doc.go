// Package cli provides the terminal user interface components for sweepr.
//
// The package uses [Bubbletea] for building interactive terminal UIs and
// [Lipgloss] for styling. All UI components follow the standard Bubbletea
// Model-View-Update (MVU) architecture.
//
// # Components
//
// The package provides several UI components:
//   - Menu: main interactive menu and the wizard's single-pick steps
//   - SearchForm: search wizard form (pattern, extensions, limits)
//   - Configure: configuration form with field navigation
//   - Banner: styled welcome banner
//
// # Creating New Components
//
// To create a new Bubbletea component:
//
//  1. Define a model struct containing component state
//  2. Implement Init() tea.Cmd for initialization
//  3. Implement Update(tea.Msg) (tea.Model, tea.Cmd) for state updates
//  4. Implement View() string for rendering
//
// # Styling
//
// Use Lipgloss for consistent styling across components. Common styles
// are defined as package-level variables for reuse.
//
// [Bubbletea]: https://github.com/charmbracelet/bubbletea
// [Lipgloss]: https://github.com/charmbracelet/lipgloss
package cli
