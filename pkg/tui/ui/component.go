package ui

import tea "github.com/charmbracelet/bubbletea/v2"

// Component defines the contract for the views mounted by the root model.
type Component interface {
	Init() tea.Cmd
	Update(tea.Msg) (Component, tea.Cmd)
	View() string
	SetSize(width, height int)
}

// Focusable is implemented by components that own text inputs. The root
// model calls Focus when a view becomes active and Blur when it leaves.
type Focusable interface {
	Focus() tea.Cmd
	Blur()
}

// Batch joins the non-nil commands. It returns nil when there are none.
func Batch(cmds ...tea.Cmd) tea.Cmd {
	out := make([]tea.Cmd, 0, len(cmds))
	for _, c := range cmds {
		if c != nil {
			out = append(out, c)
		}
	}
	switch len(out) {
	case 0:
		return nil
	case 1:
		return out[0]
	}
	return tea.Batch(out...)
}
