// Package editor is the interaction state machine of the diagram editor.
// It turns pointer and keyboard events into graph mutations, viewport
// changes and store commits, running continuous motion through a
// gesture.Scheduler.
//
// Everything here is single-threaded: event handlers and frame callbacks
// must be called from one goroutine.
package editor

import (
	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/wesen/boxline/pkg/geom"
	"github.com/wesen/boxline/pkg/gesture"
	"github.com/wesen/boxline/pkg/graphmodel"
	"github.com/wesen/boxline/pkg/viewport"
)

// DefaultPlaceholder labels newly added nodes.
const DefaultPlaceholder = "Stuff and things"

// Surface renders the diagram. The editor tells it about every visual
// change and asks it how large a node is drawn, in diagram units.
type Surface interface {
	AddNode(n *graphmodel.Node)
	RemoveNode(id int)
	UpdateNode(n *graphmodel.Node)

	// Edge methods also receive the rubber-band edge, which has no ID
	// until it is attached to the graph.
	AddEdge(e *graphmodel.Edge)
	RemoveEdge(e *graphmodel.Edge)
	UpdateEdge(e *graphmodel.Edge)

	NodeSize(id int) geom.Size
	SetViewport(t viewport.Transform)
}

// TextSource is the in-place label editor. The editor reads a node's
// current text from it when the label editor loses focus.
type TextSource interface {
	Text(nodeID int) string
}

// Committer persists the whole graph.
type Committer interface {
	Commit(g *graphmodel.Graph) error
}

// Options wires an Editor to its collaborators. Graph, Surface, Text,
// Committer and Frames are required.
type Options struct {
	Graph       *graphmodel.Graph
	Surface     Surface
	Text        TextSource
	Committer   Committer
	Frames      gesture.Frames
	Zoom        viewport.ZoomConfig
	Placeholder string
	Logger      *zap.Logger
}

// Editor holds the interaction state of one editing session.
type Editor struct {
	graph   *graphmodel.Graph
	surface Surface
	text    TextSource
	store   Committer
	sched   *gesture.Scheduler
	view    viewport.Transform
	zoom    *viewport.Zoom
	log     *zap.Logger

	placeholder string
	session     string

	mode    Mode
	pointer geom.Point
	focus   int
	editing bool
	lastErr error
}

// New creates an editor session and hands every existing node and edge to
// the surface.
func New(opts Options) *Editor {
	session := uuid.NewString()
	log := opts.Logger
	if log == nil {
		log = zap.NewNop()
	}
	log = log.With(zap.String("session", session))

	zcfg := opts.Zoom
	if zcfg == (viewport.ZoomConfig{}) {
		zcfg = viewport.DefaultZoomConfig()
	}
	placeholder := opts.Placeholder
	if placeholder == "" {
		placeholder = DefaultPlaceholder
	}

	zoom := viewport.NewZoom(zcfg)
	ed := &Editor{
		graph:       opts.Graph,
		surface:     opts.Surface,
		text:        opts.Text,
		store:       opts.Committer,
		sched:       gesture.NewScheduler(opts.Frames, log),
		view:        viewport.Transform{A: zoom.Scale()},
		zoom:        zoom,
		log:         log,
		placeholder: placeholder,
		session:     session,
		mode:        Idle{},
		focus:       graphmodel.Unassigned,
	}

	for _, n := range ed.graph.Nodes() {
		ed.surface.AddNode(n)
	}
	for _, e := range ed.graph.Edges() {
		ed.surface.AddEdge(e)
	}
	ed.surface.SetViewport(ed.view)
	return ed
}

// Mode returns the current interaction mode.
func (ed *Editor) Mode() Mode { return ed.mode }

// Graph returns the edited graph.
func (ed *Editor) Graph() *graphmodel.Graph { return ed.graph }

// Viewport returns the current diagram-to-screen transform.
func (ed *Editor) Viewport() viewport.Transform { return ed.view }

// Pointer returns the last known pointer position in screen space.
func (ed *Editor) Pointer() geom.Point { return ed.pointer }

// Focused returns the node holding input focus.
func (ed *Editor) Focused() (int, bool) {
	return ed.focus, ed.focus != graphmodel.Unassigned
}

// Editing reports whether the focused node's label editor has focus.
func (ed *Editor) Editing() bool { return ed.editing }

// GestureActive reports whether a per-frame gesture is running.
func (ed *Editor) GestureActive() bool { return ed.sched.Active() }

// Session identifies this editing session in logs.
func (ed *Editor) Session() string { return ed.session }

// LastError returns the error of the most recent failed commit, cleared by
// the next successful one.
func (ed *Editor) LastError() error { return ed.lastErr }

// commit writes the whole graph to the store. Failures are kept for the
// UI and logged; the session goes on.
func (ed *Editor) commit(reason string) {
	if err := ed.store.Commit(ed.graph); err != nil {
		ed.lastErr = err
		ed.log.Error("commit failed", zap.String("reason", reason), zap.Error(err))
		return
	}
	ed.lastErr = nil
	ed.log.Debug("committed", zap.String("reason", reason))
}

func (ed *Editor) hitTest(screen geom.Point) *graphmodel.Node {
	return ed.graph.HitTest(ed.view.ToDiagram(screen), ed.surface.NodeSize)
}

func (ed *Editor) center(id int) geom.Point {
	c, _ := ed.graph.Center(id, ed.surface.NodeSize)
	return c
}
