package editor

import (
	"strings"

	"go.uber.org/zap"

	"github.com/wesen/boxline/pkg/geom"
	"github.com/wesen/boxline/pkg/graphmodel"
)

// ── Pointer events ──
//
// All positions are screen space, relative to the canvas origin.

// PointerMove records the latest pointer position. Motion is applied by
// the active gesture on its next frame, never here.
func (ed *Editor) PointerMove(pt geom.Point) {
	ed.pointer = pt
}

// PointerDown starts dragging the node under the pointer, or panning when
// the canvas is empty there. It is ignored while dragging, connecting or
// panning.
func (ed *Editor) PointerDown(pt geom.Point) {
	ed.pointer = pt
	switch ed.mode.(type) {
	case Idle:
	case Zooming:
		ed.sched.Cancel()
		ed.mode = Idle{}
	default:
		return
	}

	if ed.editing {
		ed.EndEdit()
	}

	if n := ed.hitTest(pt); n != nil {
		ed.focus = n.ID
		ed.startDrag(n.ID, false)
		return
	}
	ed.focus = graphmodel.Unassigned
	ed.startPan()
}

// PointerUp ends a drag, committing the moved node and its edges, or ends
// a pan without committing.
func (ed *Editor) PointerUp(pt geom.Point) {
	ed.pointer = pt
	switch ed.mode.(type) {
	case Dragging:
		ed.finishDrag()
	case Panning:
		ed.sched.Cancel()
		ed.mode = Idle{}
	}
}

// Click drives the connect gesture; outside of it clicks do nothing.
// The first node clicked becomes the source. Clicking the source again or
// empty canvas cancels. Clicking another node creates the edge unless the
// pair is already connected, in which case the gesture is cancelled.
func (ed *Editor) Click(pt geom.Point) {
	ed.pointer = pt
	c, ok := ed.mode.(Connecting)
	if !ok {
		return
	}

	n := ed.hitTest(pt)
	if n == nil || n.ID == c.Source {
		ed.stopConnecting()
		return
	}
	if !c.HasSource() {
		ed.startConnecting(n.ID)
		return
	}
	ed.connect(c, n.ID)
}

// Wheel zooms around the pointer. Positive deltas scroll down and zoom
// out. Wheel input is ignored during other continuous gestures and while
// connecting.
func (ed *Editor) Wheel(pt geom.Point, delta float64) {
	ed.pointer = pt
	switch ed.mode.(type) {
	case Idle:
		before := ed.zoom.Scroll()
		if ed.zoom.Add(-delta) == before {
			return
		}
		ed.startZoom(before)
	case Zooming:
		ed.zoom.Add(-delta)
	}
}

// ── Commands ──

// AddNode creates a node centered under the pointer and starts dragging
// it. Any drag or connect in progress is abandoned first.
func (ed *Editor) AddNode() {
	ed.preempt()

	at := ed.view.ToDiagram(ed.pointer)
	n := ed.graph.CreateNode(at.X, at.Y, ed.placeholder)
	ed.surface.AddNode(n)
	size := ed.surface.NodeSize(n.ID)
	ed.graph.MoveNode(n.ID, -size.W/2, -size.H/2)
	ed.surface.UpdateNode(n)

	ed.log.Debug("node added", zap.Int("node_id", n.ID))
	ed.focus = n.ID
	ed.startDrag(n.ID, true)
}

// AddLine enters the connect gesture. Any drag or connect in progress is
// abandoned first.
func (ed *Editor) AddLine() {
	ed.preempt()
	ed.mode = Connecting{Source: graphmodel.Unassigned}
}

// Cancel abandons the current gesture the same way starting a new one
// would.
func (ed *Editor) Cancel() {
	ed.preempt()
}

// ── Focus and keyboard ──

// Focus gives node id input focus. Focusing an unknown node clears focus.
func (ed *Editor) Focus(id int) {
	if ed.editing && id != ed.focus {
		ed.EndEdit()
	}
	if ed.graph.Node(id) == nil {
		id = graphmodel.Unassigned
	}
	ed.focus = id
}

// Blur clears input focus, ending any label edit.
func (ed *Editor) Blur() {
	if ed.editing {
		ed.EndEdit()
	}
	ed.focus = graphmodel.Unassigned
}

// BeginEdit gives the focused node's label editor focus. It reports
// whether editing started.
func (ed *Editor) BeginEdit() bool {
	if ed.focus == graphmodel.Unassigned {
		return false
	}
	ed.editing = true
	return true
}

// EndEdit notifies the editor that the label editor lost focus. A changed
// label is written to the node and committed.
func (ed *Editor) EndEdit() {
	if !ed.editing {
		return
	}
	ed.editing = false

	id := ed.focus
	n := ed.graph.Node(id)
	if n == nil {
		return
	}
	if !ed.graph.SetText(id, ed.text.Text(id)) {
		return
	}
	ed.surface.UpdateNode(n)
	ed.commit("label")
}

// KeyUp handles key releases. Backspace deletes the focused node, with its
// edges, unless its label editor has focus or a gesture owns the graph.
func (ed *Editor) KeyUp(key string) {
	if !strings.EqualFold(key, "backspace") {
		return
	}
	if ed.focus == graphmodel.Unassigned || ed.editing {
		return
	}
	switch ed.mode.(type) {
	case Idle, Zooming:
	default:
		return
	}
	ed.deleteNode(ed.focus)
	ed.commit("delete")
}

func (ed *Editor) deleteNode(id int) {
	for _, e := range ed.graph.DeleteNode(id) {
		ed.surface.RemoveEdge(e)
	}
	ed.surface.RemoveNode(id)
	if ed.focus == id {
		ed.focus = graphmodel.Unassigned
		ed.editing = false
	}
	ed.log.Debug("node deleted", zap.Int("node_id", id))
}
