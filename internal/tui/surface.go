package tui

import (
	"image"
	"math"
	"slices"
	"strings"

	"charm.land/lipgloss/v2"

	"github.com/wesen/boxline/pkg/canvas"
	"github.com/wesen/boxline/pkg/geom"
	"github.com/wesen/boxline/pkg/graphmodel"
	"github.com/wesen/boxline/pkg/viewport"
)

// Surface is the retained scene the editor draws into. It keeps the nodes
// and edges it has been told about, including the rubber band, and paints
// them into a cell buffer on demand.
type Surface struct {
	nodes     map[int]*graphmodel.Node
	nodeOrder []int
	edges     []*graphmodel.Edge
	view      viewport.Transform
}

// NewSurface returns an empty surface at identity scale.
func NewSurface() *Surface {
	return &Surface{
		nodes: make(map[int]*graphmodel.Node),
		view:  viewport.Identity(),
	}
}

// AddNode implements editor.Surface.
func (s *Surface) AddNode(n *graphmodel.Node) {
	if _, ok := s.nodes[n.ID]; !ok {
		s.nodeOrder = append(s.nodeOrder, n.ID)
	}
	s.nodes[n.ID] = n
}

// RemoveNode implements editor.Surface.
func (s *Surface) RemoveNode(id int) {
	delete(s.nodes, id)
	s.nodeOrder = slices.DeleteFunc(s.nodeOrder, func(x int) bool { return x == id })
}

// UpdateNode is a no-op: nodes are read at paint time.
func (s *Surface) UpdateNode(*graphmodel.Node) {}

// AddEdge implements editor.Surface.
func (s *Surface) AddEdge(e *graphmodel.Edge) {
	if !slices.Contains(s.edges, e) {
		s.edges = append(s.edges, e)
	}
}

// RemoveEdge implements editor.Surface.
func (s *Surface) RemoveEdge(e *graphmodel.Edge) {
	s.edges = slices.DeleteFunc(s.edges, func(x *graphmodel.Edge) bool { return x == e })
}

// UpdateEdge is a no-op: edges are read at paint time.
func (s *Surface) UpdateEdge(*graphmodel.Edge) {}

// NodeSize returns the box around a node's label in diagram units, one
// unit per terminal cell at scale 1: a border and a space of padding on
// each side of the widest line.
func (s *Surface) NodeSize(id int) geom.Size {
	n, ok := s.nodes[id]
	if !ok {
		return geom.Size{}
	}
	return labelSize(n.Text)
}

func labelSize(text string) geom.Size {
	lines := strings.Split(text, "\n")
	w := 0
	for _, l := range lines {
		w = max(w, lipgloss.Width(l))
	}
	return geom.Size{W: float64(w + 4), H: float64(len(lines) + 2)}
}

// SetViewport implements editor.Surface.
func (s *Surface) SetViewport(t viewport.Transform) { s.view = t }

// Viewport returns the transform last set by the editor.
func (s *Surface) Viewport() viewport.Transform { return s.view }

// NodeCount and EdgeCount include everything on screen, the rubber band
// among the edges.
func (s *Surface) NodeCount() int { return len(s.nodeOrder) }
func (s *Surface) EdgeCount() int { return len(s.edges) }

// highlight marks nodes drawn with an emphasized border.
type highlight struct {
	focus, source int
}

// Paint draws the scene into a w×h buffer. Edges go first so that boxes
// cover the segment between their border and center.
func (s *Surface) Paint(w, h int, hl highlight) *canvas.Buffer {
	buf := canvas.New(w, h, styleBG)
	if w == 0 || h == 0 {
		return buf
	}

	a := s.view.Scale()
	t := s.view.Translate()
	sx := max(int(math.Round(6*a)), 2)
	sy := max(int(math.Round(3*a)), 1)
	buf.Grid(-round(t.X), -round(t.Y), sx, sy, styleGrid)

	for _, e := range s.edges {
		p1 := cell(s.view.ToScreen(geom.Pt(e.X1, e.Y1)))
		p2 := cell(s.view.ToScreen(geom.Pt(e.X2, e.Y2)))
		if e.ID == graphmodel.Unassigned {
			buf.DashedLine(p1.X, p1.Y, p2.X, p2.Y, styleBand)
			continue
		}
		buf.Line(p1.X, p1.Y, p2.X, p2.Y, styleEdge)
	}

	for _, id := range s.nodeOrder {
		n := s.nodes[id]
		b := graphmodel.BoundsOf(n, s.NodeSize(id))
		r := image.Rectangle{
			Min: cell(s.view.ToScreen(b.Min)),
			Max: cell(s.view.ToScreen(b.Max)),
		}
		if !r.Overlaps(buf.Bounds()) {
			continue
		}

		style, border := styleNode, canvas.NormalBorder
		switch id {
		case hl.source:
			style, border = styleNodeSource, canvas.DoubleBorder
		case hl.focus:
			style, border = styleNodeFocus, canvas.RoundedBorder
		}
		buf.Box(r, border, style)
		drawLabel(buf, r, n.Text, style)
	}
	return buf
}

// drawLabel centers text inside box r, one line per row, clipped to the
// interior.
func drawLabel(buf *canvas.Buffer, r image.Rectangle, text string, style canvas.StyleKey) {
	inner := r.Inset(1)
	if inner.Empty() {
		return
	}
	for i, line := range strings.Split(text, "\n") {
		y := inner.Min.Y + i
		if y >= inner.Max.Y {
			return
		}
		x := inner.Min.X + max((inner.Dx()-lipgloss.Width(line))/2, 0)
		buf.Text(x, y, inner.Max.X-x, line, style)
	}
}

func cell(p geom.Point) image.Point { return image.Pt(round(p.X), round(p.Y)) }

func round(f float64) int { return int(math.Round(f)) }
