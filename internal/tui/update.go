package tui

import (
	tea "charm.land/bubbletea/v2"
	"go.uber.org/zap"

	"github.com/wesen/boxline/internal/editor"
)

// Update implements tea.Model.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmd tea.Cmd
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.Width = msg.Width
		m.Height = msg.Height

	case frameMsg:
		m.ticking = false
		m.frames.Flush()

	case tea.KeyPressMsg:
		if m.label.open {
			m, cmd = m.handleEditKeys(msg)
			break
		}
		m, cmd = m.handleKeys(msg)

	case tea.MouseMsg:
		m.handleMouse(msg)
		m.syncEdit()
	}

	tick := m.nextFrame()
	return m, tea.Batch(cmd, tick)
}

// handleKeys maps key presses onto editor commands.
func (m Model) handleKeys(msg tea.KeyPressMsg) (Model, tea.Cmd) {
	key := msg.String()
	switch key {
	case "q", "ctrl+c":
		m.ed.Cancel()
		return m, tea.Quit

	case "a":
		m.ed.AddNode()
	case "l":
		m.ed.AddLine()
	case "e", "enter":
		return m.openEdit()
	case "tab":
		m.focusNext()

	case "backspace", "delete":
		// Terminals rarely report releases, so the press stands in for one.
		m.ed.KeyUp("backspace")

	case "esc":
		if _, idle := m.ed.Mode().(editor.Idle); idle {
			m.ed.Blur()
			break
		}
		m.ed.Cancel()

	default:
		m.log.Debug("unbound key", zap.String("key", key))
	}
	return m, nil
}

// focusNext moves focus to the node after the focused one, in insertion
// order, wrapping around.
func (m Model) focusNext() {
	nodes := m.ed.Graph().Nodes()
	if len(nodes) == 0 {
		return
	}
	next := 0
	if cur, ok := m.ed.Focused(); ok {
		for i, n := range nodes {
			if n.ID == cur {
				next = (i + 1) % len(nodes)
				break
			}
		}
	}
	m.ed.Focus(nodes[next].ID)
}
