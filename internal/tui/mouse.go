package tui

import (
	"image"

	tea "charm.land/bubbletea/v2"

	"github.com/wesen/boxline/pkg/geom"
)

// handleMouse forwards mouse input to the editor in canvas coordinates.
// Presses and wheel notches outside the canvas are dropped; motion and
// releases are always forwarded so a gesture never loses its pointer.
//
// A release is followed by a click at the same spot, the way a browser
// reports mouseup then click.
func (m Model) handleMouse(msg tea.MouseMsg) {
	mouse := msg.Mouse()
	canvasRect := computeLayout(m.Width, m.Height).canvas
	inside := image.Pt(mouse.X, mouse.Y).In(canvasRect)
	pt := geom.Pt(float64(mouse.X-canvasRect.Min.X), float64(mouse.Y-canvasRect.Min.Y))

	switch msg.(type) {
	case tea.MouseMotionMsg:
		m.ed.PointerMove(pt)

	case tea.MouseClickMsg:
		if inside && mouse.Button == tea.MouseLeft {
			m.ed.PointerDown(pt)
		}

	case tea.MouseReleaseMsg:
		m.ed.PointerUp(pt)
		if inside {
			m.ed.Click(pt)
		}

	case tea.MouseWheelMsg:
		if !inside {
			return
		}
		switch mouse.Button {
		case tea.MouseWheelUp:
			m.ed.Wheel(pt, -m.wheelStep)
		case tea.MouseWheelDown:
			m.ed.Wheel(pt, m.wheelStep)
		}
	}
}
