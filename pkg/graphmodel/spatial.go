// Package graphmodel holds the diagram graph: labeled nodes, edges between
// them, adjacency, a shared monotonic ID space, hit testing and the
// serialized record format.
package graphmodel

import "github.com/wesen/boxline/pkg/geom"

// SizeFunc reports the diagram-space size of a node. Node sizes depend on
// how labels are rendered, so the graph asks rather than stores them.
type SizeFunc func(id int) geom.Size

// BoundsOf returns the diagram-space bounding rectangle of a node.
func BoundsOf(n *Node, size geom.Size) geom.Rect {
	return geom.RectAt(geom.Pt(n.X, n.Y), size)
}

// Center returns the center of the node with the given ID, and false if
// there is no such node.
func (g *Graph) Center(id int, sizeOf SizeFunc) (geom.Point, bool) {
	n, ok := g.nodes[id]
	if !ok {
		return geom.Point{}, false
	}
	return BoundsOf(n, sizeOf(id)).Center(), true
}

// HitTest returns the topmost (last-inserted) node containing the point,
// or nil if no node contains it.
func (g *Graph) HitTest(pt geom.Point, sizeOf SizeFunc) *Node {
	for i := len(g.nodeOrder) - 1; i >= 0; i-- {
		n := g.nodes[g.nodeOrder[i]]
		if pt.In(BoundsOf(n, sizeOf(n.ID))) {
			return n
		}
	}
	return nil
}
