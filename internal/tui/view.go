package tui

import (
	"fmt"

	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"

	"github.com/wesen/boxline/internal/editor"
	"github.com/wesen/boxline/pkg/graphmodel"
)

const toolbarText = " boxline │ [a]dd node  [l]ine  [e]dit  [tab] focus  [⌫] delete  [esc] cancel  [q]uit │ wheel zoom  drag pan"

// View implements tea.Model.
func (m Model) View() tea.View {
	if m.Width == 0 || m.Height == 0 {
		return tea.NewView("")
	}

	lay := computeLayout(m.Width, m.Height)
	layers := []*lipgloss.Layer{
		fillLayer(lay.canvas, bufStyles[styleBG], "canvas-bg"),
		barLayer(lay.toolbar, toolbarText, toolbarStyle, "toolbar"),
		m.footerLayer(lay),
	}

	if !lay.canvas.Empty() {
		buf := m.surface.Paint(lay.canvas.Dx(), lay.canvas.Dy(), m.highlight())
		layers = append(layers, lipgloss.NewLayer(buf.Render(bufStyles)).
			X(lay.canvas.Min.X).Y(lay.canvas.Min.Y).ID("canvas"))
	}

	if m.label.open {
		layers = append(layers, modalLayer(m.editModalContent(), m.Width, m.Height, modalStyle))
	}

	comp := lipgloss.NewCompositor(layers...)
	screen := lipgloss.NewCanvas(m.Width, m.Height)
	screen.Compose(comp)

	v := tea.NewView(screen.Render())
	v.AltScreen = true
	v.MouseMode = tea.MouseModeAllMotion
	return v
}

// highlight picks the nodes drawn emphasized: the connect source and the
// focused node.
func (m Model) highlight() highlight {
	hl := highlight{focus: graphmodel.Unassigned, source: graphmodel.Unassigned}
	if id, ok := m.ed.Focused(); ok {
		hl.focus = id
	}
	if c, ok := m.ed.Mode().(editor.Connecting); ok && c.HasSource() {
		hl.source = c.Source
	}
	return hl
}

func (m Model) footerLayer(lay layout) *lipgloss.Layer {
	if err := m.ed.LastError(); err != nil {
		return barLayer(lay.footer, " save failed: "+err.Error(), errorStyle, "footer")
	}
	g := m.ed.Graph()
	text := fmt.Sprintf(" %-17s  zoom %3.0f%%  nodes %d  edges %d",
		m.ed.Mode(), m.ed.Viewport().Scale()*100, g.NodeCount(), g.EdgeCount())
	if id, ok := m.ed.Focused(); ok {
		text += fmt.Sprintf("  focus #%d", id)
	}
	return barLayer(lay.footer, text, footerStyle, "footer")
}
