// Package tui is the terminal front end of the diagram editor. It maps
// bubbletea key and mouse messages onto the editor's event handlers, paints
// the editor's surface with lipgloss layers and drives gesture frames with
// ticks.
package tui

import (
	"time"

	tea "charm.land/bubbletea/v2"
	"go.uber.org/zap"

	"github.com/wesen/boxline/internal/editor"
	"github.com/wesen/boxline/pkg/gesture"
	"github.com/wesen/boxline/pkg/graphmodel"
	"github.com/wesen/boxline/pkg/viewport"
)

// DefaultFrameInterval is one frame at roughly 60 Hz.
const DefaultFrameInterval = 16 * time.Millisecond

// DefaultWheelStep is the scroll delta of one wheel notch.
const DefaultWheelStep = 40

// Options configures a Model.
type Options struct {
	Graph         *graphmodel.Graph
	Committer     editor.Committer
	Zoom          viewport.ZoomConfig
	WheelStep     float64
	Placeholder   string
	FrameInterval time.Duration
	Logger        *zap.Logger
}

// frameMsg fires once per display frame while gestures are pending.
type frameMsg struct{}

// Model is the bubbletea model.
type Model struct {
	Width, Height int

	ed      *editor.Editor
	surface *Surface
	frames  *gesture.FrameQueue
	label   *labelEditor
	log     *zap.Logger

	wheelStep     float64
	frameInterval time.Duration
	ticking       bool
}

// New builds a model editing opts.Graph.
func New(opts Options) Model {
	log := opts.Logger
	if log == nil {
		log = zap.NewNop()
	}
	wheel := opts.WheelStep
	if wheel == 0 {
		wheel = DefaultWheelStep
	}
	interval := opts.FrameInterval
	if interval <= 0 {
		interval = DefaultFrameInterval
	}

	surface := NewSurface()
	frames := gesture.NewFrameQueue()
	label := newLabelEditor()
	ed := editor.New(editor.Options{
		Graph:       opts.Graph,
		Surface:     surface,
		Text:        label,
		Committer:   opts.Committer,
		Frames:      frames,
		Zoom:        opts.Zoom,
		Placeholder: opts.Placeholder,
		Logger:      log,
	})

	return Model{
		ed:            ed,
		surface:       surface,
		frames:        frames,
		label:         label,
		log:           log.Named("tui"),
		wheelStep:     wheel,
		frameInterval: interval,
	}
}

// Editor returns the editor session behind the model.
func (m Model) Editor() *editor.Editor { return m.ed }

// Init implements tea.Model.
func (m Model) Init() tea.Cmd {
	return nil
}

// nextFrame schedules a frame tick if a gesture is waiting for one and no
// tick is in flight.
func (m *Model) nextFrame() tea.Cmd {
	if m.ticking || m.frames.Pending() == 0 {
		return nil
	}
	m.ticking = true
	return tea.Tick(m.frameInterval, func(time.Time) tea.Msg { return frameMsg{} })
}
