package graphmodel

import "slices"

// Unassigned is the ID of an entity that has not been given one yet.
const Unassigned = -1

// Entity is anything living in the graph's shared ID space.
type Entity interface {
	EntityID() int
	setID(id int)
}

// Node is a labeled box positioned by its top-left corner in diagram space.
type Node struct {
	ID   int
	X, Y float64
	Text string

	// Edges holds the IDs of incident edges, in the order they were attached.
	Edges []int
}

// EntityID implements Entity.
func (n *Node) EntityID() int { return n.ID }
func (n *Node) setID(id int)  { n.ID = id }

// Edge is a line between two nodes. Its endpoints are stored independently
// of the nodes and are re-synced by MoveNode.
type Edge struct {
	ID             int
	X1, Y1, X2, Y2 float64
	Nodes          [2]int
}

// EntityID implements Entity.
func (e *Edge) EntityID() int { return e.ID }
func (e *Edge) setID(id int)  { e.ID = id }

// Other returns the endpoint that is not id.
func (e *Edge) Other(id int) int {
	if e.Nodes[0] == id {
		return e.Nodes[1]
	}
	return e.Nodes[0]
}

// Connects reports whether e joins a and b, in either direction.
func (e *Edge) Connects(a, b int) bool {
	return e.Nodes[0] == a && e.Nodes[1] == b || e.Nodes[0] == b && e.Nodes[1] == a
}

// Segment is a pair of diagram-space endpoints.
type Segment struct {
	X1, Y1, X2, Y2 float64
}

// NewEdge returns a detached edge with no ID and no endpoints nodes.
// It becomes part of a graph through AttachEdge.
func NewEdge(s Segment) *Edge {
	return &Edge{
		ID: Unassigned,
		X1: s.X1, Y1: s.Y1, X2: s.X2, Y2: s.Y2,
		Nodes: [2]int{Unassigned, Unassigned},
	}
}

// Graph maps IDs to nodes and edges. Node and edge IDs share one space and
// are never reused. Iteration is in insertion order.
type Graph struct {
	nodes     map[int]*Node
	edges     map[int]*Edge
	nodeOrder []int
	edgeOrder []int
	nextID    int
}

// New creates an empty graph.
func New() *Graph {
	return &Graph{
		nodes: make(map[int]*Node),
		edges: make(map[int]*Edge),
	}
}

// IDOf returns the entity's ID, allocating the next one on first use.
func (g *Graph) IDOf(e Entity) int {
	if id := e.EntityID(); id != Unassigned {
		return id
	}
	id := g.nextID
	g.nextID++
	e.setID(id)
	return id
}

// NextID returns the ID the allocator will hand out next.
func (g *Graph) NextID() int { return g.nextID }

// ── Node operations ──

// CreateNode inserts a node with an empty edge set and returns it.
func (g *Graph) CreateNode(x, y float64, text string) *Node {
	n := &Node{ID: Unassigned, X: x, Y: y, Text: text}
	id := g.IDOf(n)
	g.nodes[id] = n
	g.nodeOrder = append(g.nodeOrder, id)
	return n
}

// Node returns the node with the given ID, or nil.
func (g *Graph) Node(id int) *Node {
	return g.nodes[id]
}

// Nodes returns all nodes in insertion order.
func (g *Graph) Nodes() []*Node {
	result := make([]*Node, 0, len(g.nodeOrder))
	for _, id := range g.nodeOrder {
		result = append(result, g.nodes[id])
	}
	return result
}

// NodeCount returns the number of nodes.
func (g *Graph) NodeCount() int { return len(g.nodes) }

// SetText replaces a node's label. It reports whether the label changed.
func (g *Graph) SetText(id int, text string) bool {
	n, ok := g.nodes[id]
	if !ok || n.Text == text {
		return false
	}
	n.Text = text
	return true
}

// MoveNode shifts a node by (dx, dy) and moves the near endpoint of every
// incident edge with it. It returns the edges that moved.
func (g *Graph) MoveNode(id int, dx, dy float64) []*Edge {
	n, ok := g.nodes[id]
	if !ok {
		return nil
	}
	n.X += dx
	n.Y += dy

	moved := make([]*Edge, 0, len(n.Edges))
	for _, eid := range n.Edges {
		e := g.edges[eid]
		if e.Nodes[0] == id {
			e.X1 += dx
			e.Y1 += dy
		} else {
			e.X2 += dx
			e.Y2 += dy
		}
		moved = append(moved, e)
	}
	return moved
}

// DeleteNode removes a node and every incident edge. Each edge is dropped
// from the other endpoint's edge set and its node references are cleared.
// It returns the removed edges; deleting an absent node is a no-op.
func (g *Graph) DeleteNode(id int) []*Edge {
	n, ok := g.nodes[id]
	if !ok {
		return nil
	}

	removed := make([]*Edge, 0, len(n.Edges))
	for _, eid := range n.Edges {
		e := g.edges[eid]
		if other := g.nodes[e.Other(id)]; other != nil && other != n {
			other.Edges = removeID(other.Edges, eid)
		}
		e.Nodes = [2]int{Unassigned, Unassigned}
		delete(g.edges, eid)
		g.edgeOrder = removeID(g.edgeOrder, eid)
		removed = append(removed, e)
	}

	n.Edges = nil
	delete(g.nodes, id)
	g.nodeOrder = removeID(g.nodeOrder, id)
	return removed
}

// ── Edge operations ──

// CreateEdge creates an edge between a and b with the given endpoints.
func (g *Graph) CreateEdge(a, b int, s Segment) (*Edge, error) {
	e := NewEdge(s)
	if err := g.AttachEdge(e, a, b); err != nil {
		return nil, err
	}
	return e, nil
}

// AttachEdge inserts a detached edge between a and b, assigning its ID if it
// has none, and appends it to both nodes' edge sets. Self-loops and
// parallel edges are not rejected here.
func (g *Graph) AttachEdge(e *Edge, a, b int) error {
	na, nb := g.nodes[a], g.nodes[b]
	if na == nil {
		return unknownNode(a)
	}
	if nb == nil {
		return unknownNode(b)
	}

	id := g.IDOf(e)
	e.Nodes = [2]int{a, b}
	g.edges[id] = e
	g.edgeOrder = append(g.edgeOrder, id)

	na.Edges = appendID(na.Edges, id)
	nb.Edges = appendID(nb.Edges, id)
	return nil
}

// Edge returns the edge with the given ID, or nil.
func (g *Graph) Edge(id int) *Edge {
	return g.edges[id]
}

// Edges returns all edges in insertion order.
func (g *Graph) Edges() []*Edge {
	result := make([]*Edge, 0, len(g.edgeOrder))
	for _, id := range g.edgeOrder {
		result = append(result, g.edges[id])
	}
	return result
}

// EdgeCount returns the number of edges.
func (g *Graph) EdgeCount() int { return len(g.edges) }

// IncidentEdges returns the edges attached to a node, in attach order.
func (g *Graph) IncidentEdges(id int) []*Edge {
	n, ok := g.nodes[id]
	if !ok {
		return nil
	}
	result := make([]*Edge, 0, len(n.Edges))
	for _, eid := range n.Edges {
		result = append(result, g.edges[eid])
	}
	return result
}

// HasEdgeBetween reports whether an edge joins a and b in either direction.
func (g *Graph) HasEdgeBetween(a, b int) bool {
	n, ok := g.nodes[a]
	if !ok {
		return false
	}
	for _, eid := range n.Edges {
		if g.edges[eid].Connects(a, b) {
			return true
		}
	}
	return false
}

func appendID(ids []int, id int) []int {
	if slices.Contains(ids, id) {
		return ids
	}
	return append(ids, id)
}

func removeID(ids []int, id int) []int {
	if i := slices.Index(ids, id); i >= 0 {
		return slices.Delete(ids, i, i+1)
	}
	return ids
}
