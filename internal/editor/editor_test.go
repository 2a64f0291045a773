package editor

import (
	"errors"
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/wesen/boxline/internal/persist"
	"github.com/wesen/boxline/pkg/geom"
	"github.com/wesen/boxline/pkg/gesture"
	"github.com/wesen/boxline/pkg/graphmodel"
	"github.com/wesen/boxline/pkg/viewport"
	"go.uber.org/zap"
	"go.uber.org/zap/zaptest/observer"
)

// fakeSurface draws every node as a 100x40 box and records what the
// editor shows.
type fakeSurface struct {
	nodes   map[int]*graphmodel.Node
	edges   map[*graphmodel.Edge]bool
	view    viewport.Transform
	updates int
}

func newFakeSurface() *fakeSurface {
	return &fakeSurface{
		nodes: make(map[int]*graphmodel.Node),
		edges: make(map[*graphmodel.Edge]bool),
	}
}

func (s *fakeSurface) AddNode(n *graphmodel.Node)       { s.nodes[n.ID] = n }
func (s *fakeSurface) RemoveNode(id int)                { delete(s.nodes, id) }
func (s *fakeSurface) UpdateNode(*graphmodel.Node)      { s.updates++ }
func (s *fakeSurface) AddEdge(e *graphmodel.Edge)       { s.edges[e] = true }
func (s *fakeSurface) RemoveEdge(e *graphmodel.Edge)    { delete(s.edges, e) }
func (s *fakeSurface) UpdateEdge(*graphmodel.Edge)      { s.updates++ }
func (s *fakeSurface) NodeSize(int) geom.Size           { return geom.Size{W: 100, H: 40} }
func (s *fakeSurface) SetViewport(t viewport.Transform) { s.view = t }

type fakeText map[int]string

func (f fakeText) Text(id int) string { return f[id] }

type failingCommitter struct{}

func (failingCommitter) Commit(*graphmodel.Graph) error { return errors.New("store offline") }

type harness struct {
	ed    *Editor
	q     *gesture.FrameQueue
	surf  *fakeSurface
	text  fakeText
	store *persist.MemoryStore
}

func newHarness(t *testing.T, g *graphmodel.Graph) *harness {
	t.Helper()
	if g == nil {
		g = graphmodel.New()
	}
	h := &harness{
		q:     gesture.NewFrameQueue(),
		surf:  newFakeSurface(),
		text:  fakeText{},
		store: persist.NewMemoryStore(nil),
	}
	h.ed = New(Options{
		Graph:     g,
		Surface:   h.surf,
		Text:      h.text,
		Committer: persist.NewSync(h.store, nil),
		Frames:    h.q,
	})
	return h
}

func (h *harness) frames(n int) {
	for i := 0; i < n; i++ {
		h.q.Flush()
	}
}

// addNode places a node centered at pt, drops it there and labels it.
func (h *harness) addNode(t *testing.T, pt geom.Point, text string) *graphmodel.Node {
	t.Helper()
	h.ed.PointerMove(pt)
	h.ed.AddNode()
	require.IsType(t, Dragging{}, h.ed.Mode())
	id := h.ed.Mode().(Dragging).Node
	h.frames(1)
	h.ed.PointerUp(pt)

	require.True(t, h.ed.BeginEdit())
	h.text[id] = text
	h.ed.EndEdit()
	return h.ed.Graph().Node(id)
}

func (h *harness) connect(a, b geom.Point) {
	h.ed.AddLine()
	h.ed.PointerMove(a)
	h.ed.Click(a)
	h.frames(1)
	h.ed.PointerMove(b)
	h.frames(1)
	h.ed.Click(b)
}

func (h *harness) stored(t *testing.T) *graphmodel.Graph {
	t.Helper()
	g, err := persist.NewSync(h.store, nil).Load()
	require.NoError(t, err)
	return g
}

func TestScenarioConnectDuplicateDelete(t *testing.T) {
	h := newHarness(t, nil)
	a := h.addNode(t, geom.Pt(50, 20), "A")
	b := h.addNode(t, geom.Pt(150, 20), "B")

	assert.Equal(t, geom.Pt(0, 0), geom.Pt(a.X, a.Y))
	assert.Equal(t, geom.Pt(100, 0), geom.Pt(b.X, b.Y))

	h.connect(geom.Pt(50, 20), geom.Pt(150, 20))
	g := h.ed.Graph()
	require.Equal(t, 1, g.EdgeCount())
	e := g.Edges()[0]
	assert.Equal(t, [2]int{a.ID, b.ID}, e.Nodes)
	assert.Equal(t, graphmodel.Segment{X1: 50, Y1: 20, X2: 150, Y2: 20},
		graphmodel.Segment{X1: e.X1, Y1: e.Y1, X2: e.X2, Y2: e.Y2})
	assert.Equal(t, Idle{}, h.ed.Mode())
	assert.Equal(t, 1, h.stored(t).EdgeCount())

	// Either direction counts as a duplicate.
	h.connect(geom.Pt(50, 20), geom.Pt(150, 20))
	h.connect(geom.Pt(150, 20), geom.Pt(50, 20))
	assert.Equal(t, 1, g.EdgeCount())
	assert.Equal(t, Idle{}, h.ed.Mode())
	assert.Len(t, h.surf.edges, 1, "rubber bands must be removed")

	h.ed.Focus(a.ID)
	h.ed.KeyUp("Backspace")
	assert.Equal(t, 1, g.NodeCount())
	assert.Equal(t, 0, g.EdgeCount())
	assert.Empty(t, b.Edges)
	assert.Len(t, h.surf.nodes, 1)
	assert.Empty(t, h.surf.edges)

	stored := h.stored(t)
	assert.Equal(t, 1, stored.NodeCount())
	assert.Equal(t, 0, stored.EdgeCount())
	assert.Equal(t, "B", stored.Node(b.ID).Text)
}

func TestNewRegistersExistingGraph(t *testing.T) {
	g := graphmodel.New()
	a := g.CreateNode(0, 0, "A")
	b := g.CreateNode(200, 0, "B")
	_, err := g.CreateEdge(a.ID, b.ID, graphmodel.Segment{})
	require.NoError(t, err)

	h := newHarness(t, g)
	assert.Len(t, h.surf.nodes, 2)
	assert.Len(t, h.surf.edges, 1)
	assert.Equal(t, 1.0, h.surf.view.Scale())
	assert.NotEmpty(t, h.ed.Session())
}

// ── Dragging ──

func TestDragAppliesMotionOnlyOnFrames(t *testing.T) {
	h := newHarness(t, nil)
	n := h.addNode(t, geom.Pt(50, 20), "A")
	saves := h.store.Saves()

	h.ed.PointerDown(geom.Pt(10, 10))
	require.Equal(t, Dragging{Node: n.ID}, h.ed.Mode())
	id, ok := h.ed.Focused()
	assert.True(t, ok)
	assert.Equal(t, n.ID, id)

	h.ed.PointerMove(geom.Pt(20, 10))
	h.ed.PointerMove(geom.Pt(40, 15))
	assert.Equal(t, 0.0, n.X, "moves only record the pointer")

	h.frames(1)
	assert.Equal(t, geom.Pt(30, 5), geom.Pt(n.X, n.Y), "latest sample applied once")
	h.frames(3)
	assert.Equal(t, geom.Pt(30, 5), geom.Pt(n.X, n.Y))

	h.ed.PointerUp(geom.Pt(40, 15))
	assert.Equal(t, Idle{}, h.ed.Mode())
	assert.False(t, h.ed.GestureActive())
	assert.Equal(t, saves+1, h.store.Saves())
	assert.Equal(t, 30.0, h.stored(t).Node(n.ID).X)
}

func TestDragMovesNearEndpoints(t *testing.T) {
	h := newHarness(t, nil)
	a := h.addNode(t, geom.Pt(50, 20), "A")
	b := h.addNode(t, geom.Pt(250, 20), "B")
	h.connect(geom.Pt(50, 20), geom.Pt(250, 20))
	e := h.ed.Graph().Edges()[0]

	h.ed.PointerDown(geom.Pt(250, 20))
	h.ed.PointerMove(geom.Pt(260, 60))
	h.frames(1)
	h.ed.PointerUp(geom.Pt(260, 60))

	assert.Equal(t, geom.Pt(210, 40), geom.Pt(b.X, b.Y))
	assert.Equal(t, geom.Pt(50, 20), geom.Pt(e.X1, e.Y1), "endpoint at a unchanged")
	assert.Equal(t, geom.Pt(260, 60), geom.Pt(e.X2, e.Y2))
	assert.Equal(t, 0.0, a.X)

	stored := h.stored(t).Edge(e.ID)
	require.NotNil(t, stored)
	assert.Equal(t, 260.0, stored.X2)
}

func TestDragSpeedIsScaleInvariant(t *testing.T) {
	h := newHarness(t, nil)
	n := h.addNode(t, geom.Pt(50, 20), "A")

	// Zoom to 2x around the origin so the node's screen box is 0..200.
	h.ed.Wheel(geom.Pt(0, 0), -400)
	h.frames(3)
	require.Equal(t, Idle{}, h.ed.Mode())
	require.InDelta(t, 2, h.ed.Viewport().Scale(), 1e-9)

	h.ed.PointerDown(geom.Pt(150, 60))
	require.IsType(t, Dragging{}, h.ed.Mode())
	h.ed.PointerMove(geom.Pt(170, 100))
	h.frames(1)
	h.ed.PointerUp(geom.Pt(170, 100))

	assert.InDelta(t, 10, n.X, 1e-9)
	assert.InDelta(t, 20, n.Y, 1e-9)
}

func TestPointerDownIgnoredWhileDragging(t *testing.T) {
	h := newHarness(t, nil)
	h.ed.PointerMove(geom.Pt(50, 20))
	h.ed.AddNode()
	h.ed.PointerDown(geom.Pt(500, 500))
	assert.IsType(t, Dragging{}, h.ed.Mode())
}

// ── Panning and zooming ──

func TestPanMovesViewportWithoutCommit(t *testing.T) {
	h := newHarness(t, nil)
	h.addNode(t, geom.Pt(50, 20), "A")
	saves := h.store.Saves()

	h.ed.PointerDown(geom.Pt(400, 400))
	require.Equal(t, Panning{}, h.ed.Mode())
	_, focused := h.ed.Focused()
	assert.False(t, focused)

	h.ed.PointerMove(geom.Pt(430, 410))
	h.frames(1)
	h.ed.PointerMove(geom.Pt(425, 420))
	h.frames(1)
	h.ed.PointerUp(geom.Pt(425, 420))

	assert.Equal(t, geom.Pt(25, 20), h.ed.Viewport().Translate())
	assert.Equal(t, h.ed.Viewport(), h.surf.view)
	assert.Equal(t, Idle{}, h.ed.Mode())
	assert.False(t, h.ed.GestureActive())
	assert.Equal(t, saves, h.store.Saves())
}

func TestZoomKeepsCursorPointAndSettles(t *testing.T) {
	h := newHarness(t, nil)
	cursor := geom.Pt(120, 80)
	under := h.ed.Viewport().ToDiagram(cursor)

	h.ed.Wheel(cursor, -100)
	require.Equal(t, Zooming{}, h.ed.Mode())
	h.ed.Wheel(cursor, -100)
	h.frames(1)
	assert.Greater(t, h.ed.Viewport().Scale(), 1.0)

	after := h.ed.Viewport().ToDiagram(cursor)
	assert.InDelta(t, under.X, after.X, 1e-9)
	assert.InDelta(t, under.Y, after.Y, 1e-9)

	h.frames(1)
	assert.Equal(t, Idle{}, h.ed.Mode())
	assert.False(t, h.ed.GestureActive())
	assert.Equal(t, 0, h.store.Saves(), "viewport is never committed")
}

func TestZoomStaysInBounds(t *testing.T) {
	h := newHarness(t, nil)
	cfg := viewport.DefaultZoomConfig()
	for i := 0; i < 50; i++ {
		h.ed.Wheel(geom.Pt(10, 10), -300)
		h.frames(1)
		assert.LessOrEqual(t, h.ed.Viewport().Scale(), cfg.MaxScale+1e-12)
	}
	h.frames(2)
	assert.InDelta(t, cfg.MaxScale, h.ed.Viewport().Scale(), 1e-9)

	// Already at the limit: further zoom-in does not start a gesture.
	h.ed.Wheel(geom.Pt(10, 10), -300)
	assert.Equal(t, Idle{}, h.ed.Mode())

	for i := 0; i < 50; i++ {
		h.ed.Wheel(geom.Pt(10, 10), 300)
		h.frames(1)
		assert.GreaterOrEqual(t, h.ed.Viewport().Scale(), cfg.MinScale-1e-12)
	}
	h.frames(2)
	assert.InDelta(t, cfg.MinScale, h.ed.Viewport().Scale(), 1e-9)
}

func TestNaNWheelDeltaIgnored(t *testing.T) {
	h := newHarness(t, nil)
	pt := geom.Pt(10, 10)

	h.ed.Wheel(pt, math.NaN())
	assert.Equal(t, Idle{}, h.ed.Mode())
	assert.False(t, h.ed.GestureActive())

	h.ed.Wheel(pt, -100)
	h.ed.Wheel(pt, math.NaN())
	h.frames(50)
	assert.Equal(t, Idle{}, h.ed.Mode())
	assert.False(t, h.ed.GestureActive())
	assert.False(t, math.IsNaN(h.ed.Viewport().Scale()))
	assert.Greater(t, h.ed.Viewport().Scale(), 1.0)
}

func TestPointerDownPreemptsZoom(t *testing.T) {
	h := newHarness(t, nil)
	h.ed.Wheel(geom.Pt(0, 0), -100)
	h.ed.PointerDown(geom.Pt(300, 300))
	assert.Equal(t, Panning{}, h.ed.Mode())
	assert.Equal(t, 1, h.q.Pending())
}

// ── Connecting ──

func TestRubberBandFollowsPointer(t *testing.T) {
	h := newHarness(t, nil)
	h.addNode(t, geom.Pt(50, 20), "A")

	h.ed.AddLine()
	assert.Equal(t, "connecting", h.ed.Mode().String())
	h.ed.PointerMove(geom.Pt(60, 30))
	h.ed.Click(geom.Pt(60, 30))
	c, ok := h.ed.Mode().(Connecting)
	require.True(t, ok)
	require.True(t, c.HasSource())
	require.NotNil(t, c.Band)
	assert.Equal(t, graphmodel.Unassigned, c.Band.ID)
	assert.Equal(t, geom.Pt(50, 20), geom.Pt(c.Band.X1, c.Band.Y1))
	assert.Equal(t, geom.Pt(60, 30), geom.Pt(c.Band.X2, c.Band.Y2))
	assert.True(t, h.surf.edges[c.Band])

	h.ed.PointerMove(geom.Pt(300, 200))
	h.frames(1)
	assert.Equal(t, geom.Pt(300, 200), geom.Pt(c.Band.X2, c.Band.Y2))
}

func TestClickSameNodeTwiceCancels(t *testing.T) {
	h := newHarness(t, nil)
	h.addNode(t, geom.Pt(50, 20), "A")
	saves := h.store.Saves()

	h.ed.AddLine()
	h.ed.Click(geom.Pt(50, 20))
	h.ed.Click(geom.Pt(55, 25))

	assert.Equal(t, Idle{}, h.ed.Mode())
	assert.Equal(t, 0, h.ed.Graph().EdgeCount())
	assert.Empty(t, h.surf.edges)
	assert.False(t, h.ed.GestureActive())
	assert.Equal(t, saves, h.store.Saves())
}

func TestClickEmptyCanvasCancelsConnecting(t *testing.T) {
	h := newHarness(t, nil)
	h.addNode(t, geom.Pt(50, 20), "A")

	h.ed.AddLine()
	h.ed.Click(geom.Pt(900, 900))
	assert.Equal(t, Idle{}, h.ed.Mode())

	h.ed.AddLine()
	h.ed.Click(geom.Pt(50, 20))
	h.ed.Click(geom.Pt(900, 900))
	assert.Equal(t, Idle{}, h.ed.Mode())
	assert.Empty(t, h.surf.edges)
}

func TestConnectingIgnoresPointerDownAndWheel(t *testing.T) {
	h := newHarness(t, nil)
	h.addNode(t, geom.Pt(50, 20), "A")
	h.ed.AddLine()
	h.ed.Click(geom.Pt(50, 20))

	h.ed.PointerDown(geom.Pt(50, 20))
	h.ed.Wheel(geom.Pt(50, 20), -200)
	assert.IsType(t, Connecting{}, h.ed.Mode())
	assert.Equal(t, 1.0, h.ed.Viewport().Scale())
}

func TestClickOutsideConnectingDoesNothing(t *testing.T) {
	h := newHarness(t, nil)
	h.addNode(t, geom.Pt(50, 20), "A")
	h.ed.Click(geom.Pt(50, 20))
	assert.Equal(t, Idle{}, h.ed.Mode())
}

// ── Preemption ──

func TestAddNodePreemptsFreshDrag(t *testing.T) {
	h := newHarness(t, nil)
	h.ed.PointerMove(geom.Pt(50, 20))
	h.ed.AddNode()
	first := h.ed.Mode().(Dragging).Node
	h.frames(1)

	h.ed.AddNode()
	second := h.ed.Mode().(Dragging).Node

	assert.Nil(t, h.ed.Graph().Node(first), "uncommitted node is dropped")
	assert.Greater(t, second, first, "ids are not reused")
	assert.Equal(t, 1, h.ed.Graph().NodeCount())
	assert.Equal(t, 1, h.q.Pending(), "only one gesture loop")
	assert.Equal(t, 0, h.store.Saves())
}

func TestAddLinePreemptsDragOfExistingNode(t *testing.T) {
	h := newHarness(t, nil)
	n := h.addNode(t, geom.Pt(50, 20), "A")
	saves := h.store.Saves()

	h.ed.PointerDown(geom.Pt(50, 20))
	h.frames(1)
	h.ed.AddLine()

	assert.Equal(t, Connecting{Source: graphmodel.Unassigned}, h.ed.Mode())
	assert.NotNil(t, h.ed.Graph().Node(n.ID), "existing node survives")
	assert.Equal(t, 0, h.q.Pending())
	assert.Equal(t, saves+1, h.store.Saves())
}

func TestAddNodePreemptsConnecting(t *testing.T) {
	h := newHarness(t, nil)
	h.addNode(t, geom.Pt(50, 20), "A")
	h.ed.AddLine()
	h.ed.Click(geom.Pt(50, 20))
	require.Len(t, h.surf.edges, 1)

	h.ed.PointerMove(geom.Pt(400, 400))
	h.ed.AddNode()
	assert.IsType(t, Dragging{}, h.ed.Mode())
	assert.Empty(t, h.surf.edges)
	assert.Equal(t, 1, h.q.Pending())
}

func TestCancel(t *testing.T) {
	h := newHarness(t, nil)
	h.addNode(t, geom.Pt(50, 20), "A")
	h.ed.AddLine()
	h.ed.Click(geom.Pt(50, 20))
	h.ed.Cancel()
	assert.Equal(t, Idle{}, h.ed.Mode())
	assert.Empty(t, h.surf.edges)
}

// ── Focus, labels and deletion ──

func TestBackspaceIgnoredWhileEditing(t *testing.T) {
	h := newHarness(t, nil)
	n := h.addNode(t, geom.Pt(50, 20), "A")

	h.ed.Focus(n.ID)
	require.True(t, h.ed.BeginEdit())
	h.ed.KeyUp("backspace")
	assert.NotNil(t, h.ed.Graph().Node(n.ID))

	h.ed.KeyUp("Delete")
	assert.NotNil(t, h.ed.Graph().Node(n.ID))
}

func TestBackspaceWithoutFocusDoesNothing(t *testing.T) {
	h := newHarness(t, nil)
	h.addNode(t, geom.Pt(50, 20), "A")
	h.ed.Blur()
	saves := h.store.Saves()
	h.ed.KeyUp("backspace")
	assert.Equal(t, 1, h.ed.Graph().NodeCount())
	assert.Equal(t, saves, h.store.Saves())
}

func TestEndEditCommitsOnlyChanges(t *testing.T) {
	h := newHarness(t, nil)
	n := h.addNode(t, geom.Pt(50, 20), "A")
	saves := h.store.Saves()

	h.ed.Focus(n.ID)
	h.ed.BeginEdit()
	h.ed.EndEdit()
	assert.Equal(t, saves, h.store.Saves())

	h.ed.BeginEdit()
	h.text[n.ID] = "renamed"
	h.ed.EndEdit()
	assert.Equal(t, saves+1, h.store.Saves())
	assert.Equal(t, "renamed", h.stored(t).Node(n.ID).Text)
	assert.False(t, h.ed.Editing())
	assert.Equal(t, Idle{}, h.ed.Mode())
}

func TestPointerDownEndsEdit(t *testing.T) {
	h := newHarness(t, nil)
	n := h.addNode(t, geom.Pt(50, 20), "A")
	h.ed.Focus(n.ID)
	h.ed.BeginEdit()
	h.text[n.ID] = "edited"

	h.ed.PointerDown(geom.Pt(500, 500))
	assert.False(t, h.ed.Editing())
	assert.Equal(t, "edited", n.Text)
}

func TestBeginEditNeedsFocus(t *testing.T) {
	h := newHarness(t, nil)
	assert.False(t, h.ed.BeginEdit())
	h.ed.Focus(42)
	_, ok := h.ed.Focused()
	assert.False(t, ok)
}

func TestCommitFailureIsRemembered(t *testing.T) {
	g := graphmodel.New()
	core, logs := observer.New(zap.DebugLevel)
	ed := New(Options{
		Graph:     g,
		Surface:   newFakeSurface(),
		Text:      fakeText{},
		Committer: failingCommitter{},
		Frames:    gesture.NewFrameQueue(),
		Logger:    zap.New(core),
	})
	ed.PointerMove(geom.Pt(50, 20))
	ed.AddNode()
	ed.PointerUp(geom.Pt(50, 20))

	assert.ErrorContains(t, ed.LastError(), "store offline")
	assert.Equal(t, 1, g.NodeCount(), "graph keeps the change")
	assert.Equal(t, Idle{}, ed.Mode())
	assert.Equal(t, 1, logs.FilterLevelExact(zap.ErrorLevel).Len(), "one error entry per failed commit")
}

func TestAllocatorResumesAfterHydrate(t *testing.T) {
	data := []byte(`{"graph":{"12":{"type":"node","id":12,"x":0,"y":0,"text":"old"}}}`)
	g, err := persist.NewSync(persist.NewMemoryStore(data), nil).Load()
	require.NoError(t, err)

	h := newHarness(t, g)
	n := h.addNode(t, geom.Pt(500, 500), "new")
	assert.Equal(t, 13, n.ID)
}
