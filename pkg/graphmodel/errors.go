package graphmodel

import (
	"errors"
	"fmt"
	"slices"
)

var (
	// ErrUnknownNode is returned when an operation names a node that is not
	// in the graph.
	ErrUnknownNode = errors.New("unknown node")

	// ErrMalformed marks a record that cannot describe a graph at all
	// (unknown item type, bad edge arity, duplicate IDs).
	ErrMalformed = errors.New("malformed graph record")
)

func unknownNode(id int) error {
	return fmt.Errorf("node %d: %w", id, ErrUnknownNode)
}

// IntegrityError reports a broken graph invariant, typically an edge that
// references a node that does not exist. It signals store corruption and is
// never silently repaired.
type IntegrityError struct {
	EdgeID int
	NodeID int
	Reason string
}

func (e *IntegrityError) Error() string {
	return fmt.Sprintf("graph integrity: edge %d, node %d: %s", e.EdgeID, e.NodeID, e.Reason)
}

// CheckIntegrity verifies that every edge references two distinct existing
// nodes that list it, and that every node lists only edges referencing it.
func (g *Graph) CheckIntegrity() error {
	for _, e := range g.Edges() {
		if e.Nodes[0] == e.Nodes[1] {
			return &IntegrityError{EdgeID: e.ID, NodeID: e.Nodes[0], Reason: "endpoints are not distinct"}
		}
		for _, nid := range e.Nodes {
			n, ok := g.nodes[nid]
			if !ok {
				return &IntegrityError{EdgeID: e.ID, NodeID: nid, Reason: "missing node"}
			}
			if !slices.Contains(n.Edges, e.ID) {
				return &IntegrityError{EdgeID: e.ID, NodeID: nid, Reason: "node does not list edge"}
			}
		}
	}
	for _, n := range g.Nodes() {
		for _, eid := range n.Edges {
			e, ok := g.edges[eid]
			if !ok {
				return &IntegrityError{EdgeID: eid, NodeID: n.ID, Reason: "dangling edge reference"}
			}
			if e.Nodes[0] != n.ID && e.Nodes[1] != n.ID {
				return &IntegrityError{EdgeID: eid, NodeID: n.ID, Reason: "edge does not reference node"}
			}
		}
	}
	return nil
}
