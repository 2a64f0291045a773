package editor

import (
	"go.uber.org/zap"

	"github.com/wesen/boxline/pkg/graphmodel"
)

// Each continuous gesture remembers the pointer position of the previous
// frame and applies the difference to the current one, so motion follows
// the latest pointer sample once per frame however many moves arrived.

func (ed *Editor) startDrag(id int, fresh bool) {
	ed.mode = Dragging{Node: id, Fresh: fresh}
	prev := ed.pointer
	ed.sched.Start("drag", func() bool {
		cur := ed.pointer
		d := ed.view.DiagramDelta(cur.Sub(prev))
		prev = cur
		if d.X == 0 && d.Y == 0 {
			return true
		}
		for _, e := range ed.graph.MoveNode(id, d.X, d.Y) {
			ed.surface.UpdateEdge(e)
		}
		if n := ed.graph.Node(id); n != nil {
			ed.surface.UpdateNode(n)
		}
		return true
	})
}

// finishDrag stops the drag and commits the node with its edges.
func (ed *Editor) finishDrag() {
	d, ok := ed.mode.(Dragging)
	if !ok {
		return
	}
	ed.sched.Cancel()
	ed.mode = Idle{}
	ed.log.Debug("drag finished", zap.Int("node_id", d.Node))
	ed.commit("drag")
}

func (ed *Editor) startPan() {
	ed.mode = Panning{}
	prev := ed.pointer
	ed.sched.Start("pan", func() bool {
		cur := ed.pointer
		d := cur.Sub(prev)
		prev = cur
		if d.X == 0 && d.Y == 0 {
			return true
		}
		ed.view.Pan(d)
		ed.surface.SetViewport(ed.view)
		return true
	})
}

// startZoom runs until the accumulated scroll stops changing between
// frames, then returns to Idle. Viewport state is never committed.
func (ed *Editor) startZoom(settled float64) {
	ed.mode = Zooming{}
	last := settled
	ed.sched.Start("zoom", func() bool {
		s := ed.zoom.Scroll()
		if s == last {
			ed.mode = Idle{}
			return false
		}
		last = s
		ed.view.ZoomAt(ed.pointer, ed.zoom.ScaleFor(s))
		ed.surface.SetViewport(ed.view)
		return true
	})
}

// startConnecting picks source and starts the rubber band from its center
// to the pointer.
func (ed *Editor) startConnecting(source int) {
	from := ed.center(source)
	to := ed.view.ToDiagram(ed.pointer)
	band := graphmodel.NewEdge(graphmodel.Segment{X1: from.X, Y1: from.Y, X2: to.X, Y2: to.Y})
	ed.surface.AddEdge(band)
	ed.mode = Connecting{Source: source, Band: band}

	prev := ed.pointer
	ed.sched.Start("connect", func() bool {
		cur := ed.pointer
		d := ed.view.DiagramDelta(cur.Sub(prev))
		prev = cur
		if d.X == 0 && d.Y == 0 {
			return true
		}
		band.X2 += d.X
		band.Y2 += d.Y
		ed.surface.UpdateEdge(band)
		return true
	})
}

// connect turns the rubber band into a real edge from c.Source to target.
func (ed *Editor) connect(c Connecting, target int) {
	if ed.graph.HasEdgeBetween(c.Source, target) {
		ed.log.Debug("duplicate edge ignored",
			zap.Int("source", c.Source), zap.Int("target", target))
		ed.stopConnecting()
		return
	}

	ed.sched.Cancel()
	band := c.Band
	to := ed.center(target)
	band.X2, band.Y2 = to.X, to.Y
	if err := ed.graph.AttachEdge(band, c.Source, target); err != nil {
		ed.log.Error("connect failed", zap.Error(err))
		ed.stopConnecting()
		return
	}
	ed.surface.UpdateEdge(band)
	ed.mode = Idle{}
	ed.log.Debug("edge added", zap.Int("edge_id", band.ID),
		zap.Int("source", c.Source), zap.Int("target", target))
	ed.commit("connect")
}

// stopConnecting abandons the connect gesture and its rubber band.
func (ed *Editor) stopConnecting() {
	ed.sched.Cancel()
	if c, ok := ed.mode.(Connecting); ok && c.Band != nil {
		ed.surface.RemoveEdge(c.Band)
	}
	ed.mode = Idle{}
}

// preempt ends whatever gesture is running before a new top-level one
// starts. A freshly added node that was never committed is dropped; a
// drag of an existing node is finished normally, so the node is committed
// at the position it was dragged to.
func (ed *Editor) preempt() {
	switch m := ed.mode.(type) {
	case Dragging:
		if m.Fresh {
			ed.sched.Cancel()
			ed.mode = Idle{}
			ed.deleteNode(m.Node)
			return
		}
		ed.finishDrag()
	case Connecting:
		ed.stopConnecting()
	case Panning, Zooming:
		ed.sched.Cancel()
		ed.mode = Idle{}
	}
}
