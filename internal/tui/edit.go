package tui

import (
	"strings"

	tea "charm.land/bubbletea/v2"
	"charm.land/bubbles/v2/textinput"
)

// labelEditor is the in-place label editor shown as a modal over the
// canvas. The editor reads the typed text through Text when editing ends.
type labelEditor struct {
	input textinput.Model
	open  bool
}

func newLabelEditor() *labelEditor {
	in := textinput.New()
	in.Prompt = "› "
	in.CharLimit = 120
	return &labelEditor{input: in}
}

// Text implements editor.TextSource.
func (l *labelEditor) Text(int) string {
	return l.input.Value()
}

// openEdit gives the focused node's label to the text input.
func (m Model) openEdit() (Model, tea.Cmd) {
	id, ok := m.ed.Focused()
	if !ok || !m.ed.BeginEdit() {
		return m, nil
	}
	n := m.ed.Graph().Node(id)
	if n == nil {
		return m, nil
	}
	m.label.input.SetValue(n.Text)
	m.label.input.CursorEnd()
	m.label.open = true
	return m, m.label.input.Focus()
}

// closeEdit hides the modal and, when commit is set, tells the editor the
// label lost focus so a changed label is saved. Cancelling restores the
// node's text first so nothing changes.
func (m Model) closeEdit(commit bool) Model {
	if !commit {
		if id, ok := m.ed.Focused(); ok {
			if n := m.ed.Graph().Node(id); n != nil {
				m.label.input.SetValue(n.Text)
			}
		}
	}
	m.ed.EndEdit()
	m.syncEdit()
	return m
}

// syncEdit closes the modal when the editor ended the edit on its own,
// for instance because a pointer press landed on the canvas.
func (m Model) syncEdit() {
	if m.label.open && !m.ed.Editing() {
		m.label.open = false
		m.label.input.Blur()
	}
}

func (m Model) handleEditKeys(msg tea.KeyPressMsg) (Model, tea.Cmd) {
	switch msg.String() {
	case "enter":
		return m.closeEdit(true), nil
	case "esc":
		return m.closeEdit(false), nil
	}
	var cmd tea.Cmd
	m.label.input, cmd = m.label.input.Update(msg)
	return m, cmd
}

func (m Model) editModalContent() string {
	lines := []string{
		modalTitleStyle.Render("Edit label"),
		"",
		m.label.input.View(),
		"",
		modalHintStyle.Render("[enter] save  [esc] cancel"),
	}
	return strings.Join(lines, "\n")
}
