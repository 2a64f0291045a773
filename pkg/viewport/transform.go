// Package viewport maps between screen space (pointer coordinates relative
// to the canvas origin) and diagram space, and implements pan and
// zoom-to-cursor on that mapping.
package viewport

import "github.com/wesen/boxline/pkg/geom"

// Transform is a uniform-scale affine map from diagram to screen space:
// screen = (A*x + E, A*y + F). There is no rotation or shear.
type Transform struct {
	A    float64
	E, F float64
}

// Identity returns the transform with scale 1 and no translation.
func Identity() Transform {
	return Transform{A: 1}
}

// Scale returns the current scale factor.
func (t Transform) Scale() float64 { return t.A }

// Translate returns the current translation.
func (t Transform) Translate() geom.Point { return geom.Pt(t.E, t.F) }

// ToScreen maps a diagram-space point to screen space.
func (t Transform) ToScreen(p geom.Point) geom.Point {
	return geom.Pt(t.A*p.X+t.E, t.A*p.Y+t.F)
}

// ToDiagram maps a screen-space point to diagram space.
func (t Transform) ToDiagram(p geom.Point) geom.Point {
	return p.Sub(t.Translate()).Div(t.A)
}

// DiagramDelta converts a screen-space displacement into diagram space, so
// motion tracks the pointer at any scale.
func (t Transform) DiagramDelta(d geom.Point) geom.Point {
	return d.Div(t.A)
}

// Pan shifts the translation by a screen-space delta.
func (t *Transform) Pan(d geom.Point) {
	t.E += d.X
	t.F += d.Y
}

// ZoomAt changes the scale to newScale while keeping the diagram point
// under anchor fixed on screen.
func (t *Transform) ZoomAt(anchor geom.Point, newScale float64) {
	ratio := newScale / t.A
	rel := anchor.Sub(t.Translate())
	shift := rel.Sub(rel.Mul(ratio))
	t.E += shift.X
	t.F += shift.Y
	t.A = newScale
}
