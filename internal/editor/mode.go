package editor

import "github.com/wesen/boxline/pkg/graphmodel"

// Mode is the editor's interaction mode. Exactly one is current; the
// concrete types are Idle, Dragging, Connecting, Panning and Zooming.
type Mode interface {
	String() string
	isMode()
}

// Idle waits for the next gesture.
type Idle struct{}

// Dragging moves Node with the pointer. Fresh marks a node created by the
// add-node command that has not been committed yet.
type Dragging struct {
	Node  int
	Fresh bool
}

// Connecting is the two-click line gesture. Source is
// graphmodel.Unassigned until the first node is clicked; from then on
// Band is the rubber-band edge following the pointer.
type Connecting struct {
	Source int
	Band   *graphmodel.Edge
}

// HasSource reports whether the first node has been picked.
func (c Connecting) HasSource() bool { return c.Source != graphmodel.Unassigned }

// Panning moves the viewport with the pointer.
type Panning struct{}

// Zooming rescales the viewport until accumulated scroll settles.
type Zooming struct{}

func (Idle) String() string     { return "idle" }
func (Dragging) String() string { return "dragging" }
func (Panning) String() string  { return "panning" }
func (Zooming) String() string  { return "zooming" }

func (c Connecting) String() string {
	if c.HasSource() {
		return "connecting-target"
	}
	return "connecting"
}

func (Idle) isMode()       {}
func (Dragging) isMode()   {}
func (Connecting) isMode() {}
func (Panning) isMode()    {}
func (Zooming) isMode()    {}
