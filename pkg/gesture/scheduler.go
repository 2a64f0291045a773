// Package gesture runs continuous per-frame updates for at most one active
// gesture at a time. Frames come from an injected Frames capability, so
// the scheduler is independent of any display loop.
package gesture

import "go.uber.org/zap"

// Step is one frame of a gesture. Returning false ends the gesture.
type Step func() bool

// Scheduler owns the single active gesture. Starting a gesture cancels
// the previous one before anything else happens, so two gestures never
// run in the same frame.
type Scheduler struct {
	frames  Frames
	log     *zap.Logger
	pending FrameID
	active  bool
	name    string
	gen     uint64
}

// NewScheduler creates a scheduler on top of frames.
func NewScheduler(frames Frames, log *zap.Logger) *Scheduler {
	if log == nil {
		log = zap.NewNop()
	}
	return &Scheduler{frames: frames, log: log}
}

// Start cancels any active gesture and arms step to run once per frame
// until it returns false or Cancel is called.
func (s *Scheduler) Start(name string, step Step) {
	s.Cancel()
	s.gen++
	s.active = true
	s.name = name
	s.log.Debug("gesture started", zap.String("gesture", name))
	s.schedule(s.gen, step)
}

func (s *Scheduler) schedule(gen uint64, step Step) {
	s.pending = s.frames.Request(func() {
		if gen != s.gen || !s.active {
			return
		}
		s.pending = 0
		if !step() {
			if gen == s.gen && s.active {
				s.finish("settled")
			}
			return
		}
		// step may have started another gesture or cancelled this one.
		if gen == s.gen && s.active {
			s.schedule(gen, step)
		}
	})
}

// Cancel clears the pending frame request and the active flag. It is a
// no-op when nothing is running.
func (s *Scheduler) Cancel() {
	if s.pending != 0 {
		s.frames.Cancel(s.pending)
		s.pending = 0
	}
	if s.active {
		s.finish("cancelled")
	}
}

func (s *Scheduler) finish(reason string) {
	s.log.Debug("gesture stopped", zap.String("gesture", s.name), zap.String("reason", reason))
	s.active = false
	s.name = ""
}

// Active reports whether a gesture is running.
func (s *Scheduler) Active() bool { return s.active }

// Name returns the active gesture's name, or "" when idle.
func (s *Scheduler) Name() string { return s.name }
