package graphmodel

import (
	"encoding/json"
	"fmt"
	"slices"
	"strconv"
)

// Item types in a serialized record.
const (
	TypeNode = "node"
	TypeEdge = "edge"
)

// Item is one tagged entry of a serialized graph. Which fields are
// meaningful depends on Type.
type Item struct {
	Type  string  `json:"type"`
	ID    int     `json:"id"`
	X     float64 `json:"x"`
	Y     float64 `json:"y"`
	Text  string  `json:"text"`
	X1    float64 `json:"x1"`
	Y1    float64 `json:"y1"`
	X2    float64 `json:"x2"`
	Y2    float64 `json:"y2"`
	Nodes []int   `json:"nodes"`
}

type nodeItem struct {
	Type string  `json:"type" yaml:"type"`
	ID   int     `json:"id" yaml:"id"`
	X    float64 `json:"x" yaml:"x"`
	Y    float64 `json:"y" yaml:"y"`
	Text string  `json:"text" yaml:"text"`
}

type edgeItem struct {
	Type  string  `json:"type" yaml:"type"`
	ID    int     `json:"id" yaml:"id"`
	X1    float64 `json:"x1" yaml:"x1"`
	Y1    float64 `json:"y1" yaml:"y1"`
	X2    float64 `json:"x2" yaml:"x2"`
	Y2    float64 `json:"y2" yaml:"y2"`
	Nodes []int   `json:"nodes" yaml:"nodes,flow"`
}

func (it Item) shape() any {
	if it.Type == TypeEdge {
		return edgeItem{Type: it.Type, ID: it.ID, X1: it.X1, Y1: it.Y1, X2: it.X2, Y2: it.Y2, Nodes: it.Nodes}
	}
	return nodeItem{Type: it.Type, ID: it.ID, X: it.X, Y: it.Y, Text: it.Text}
}

// MarshalJSON emits only the fields belonging to the item's type.
func (it Item) MarshalJSON() ([]byte, error) {
	return json.Marshal(it.shape())
}

// MarshalYAML emits only the fields belonging to the item's type.
func (it Item) MarshalYAML() (any, error) {
	return it.shape(), nil
}

// Record maps decimal IDs to items.
type Record map[string]Item

// Document is the stored envelope around a record.
type Document struct {
	Graph Record `json:"graph" yaml:"graph"`
}

// Serialize produces the record form of the graph.
func (g *Graph) Serialize() Record {
	rec := make(Record, len(g.nodes)+len(g.edges))
	for _, n := range g.Nodes() {
		rec[strconv.Itoa(n.ID)] = Item{Type: TypeNode, ID: n.ID, X: n.X, Y: n.Y, Text: n.Text}
	}
	for _, e := range g.Edges() {
		rec[strconv.Itoa(e.ID)] = Item{
			Type: TypeEdge, ID: e.ID,
			X1: e.X1, Y1: e.Y1, X2: e.X2, Y2: e.Y2,
			Nodes: []int{e.Nodes[0], e.Nodes[1]},
		}
	}
	return rec
}

// Hydrate rebuilds a graph from a record: nodes first, then edges, whose
// node IDs are resolved against the restored nodes. The allocator resumes
// one past the largest ID seen. An edge naming a missing node yields an
// *IntegrityError; structurally invalid items, including an item whose key
// is not its decimal ID, yield ErrMalformed.
func Hydrate(rec Record) (*Graph, error) {
	items := make([]Item, 0, len(rec))
	for key, it := range rec {
		if key != strconv.Itoa(it.ID) {
			return nil, fmt.Errorf("item %d stored under key %q: %w", it.ID, key, ErrMalformed)
		}
		items = append(items, it)
	}
	slices.SortFunc(items, func(a, b Item) int { return a.ID - b.ID })

	g := New()
	seen := make(map[int]bool, len(items))
	for _, it := range items {
		if it.ID < 0 {
			return nil, fmt.Errorf("item id %d: %w", it.ID, ErrMalformed)
		}
		if seen[it.ID] {
			return nil, fmt.Errorf("duplicate id %d: %w", it.ID, ErrMalformed)
		}
		seen[it.ID] = true
		if it.ID >= g.nextID {
			g.nextID = it.ID + 1
		}

		switch it.Type {
		case TypeNode:
			g.nodes[it.ID] = &Node{ID: it.ID, X: it.X, Y: it.Y, Text: it.Text}
			g.nodeOrder = append(g.nodeOrder, it.ID)
		case TypeEdge:
			if len(it.Nodes) != 2 {
				return nil, fmt.Errorf("edge %d has %d nodes: %w", it.ID, len(it.Nodes), ErrMalformed)
			}
		default:
			return nil, fmt.Errorf("item %d has type %q: %w", it.ID, it.Type, ErrMalformed)
		}
	}

	for _, it := range items {
		if it.Type != TypeEdge {
			continue
		}
		for _, nid := range it.Nodes {
			if _, ok := g.nodes[nid]; !ok {
				return nil, &IntegrityError{EdgeID: it.ID, NodeID: nid, Reason: "missing node"}
			}
		}
		e := &Edge{ID: it.ID, X1: it.X1, Y1: it.Y1, X2: it.X2, Y2: it.Y2}
		if err := g.AttachEdge(e, it.Nodes[0], it.Nodes[1]); err != nil {
			return nil, err
		}
	}
	return g, nil
}

// Encode serializes the graph into its stored JSON document.
func (g *Graph) Encode() ([]byte, error) {
	data, err := json.Marshal(Document{Graph: g.Serialize()})
	if err != nil {
		return nil, fmt.Errorf("encode graph: %w", err)
	}
	return data, nil
}

// Decode parses a stored JSON document and hydrates it. Undecodable input
// is reported as ErrMalformed.
func Decode(data []byte) (*Graph, error) {
	var doc Document
	if err := json.Unmarshal(data, &doc); err != nil {
		return nil, fmt.Errorf("decode graph: %w: %v", ErrMalformed, err)
	}
	return Hydrate(doc.Graph)
}
