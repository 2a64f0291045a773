package gesture

// FrameID identifies a pending frame request. Zero is never issued.
type FrameID uint64

// Frames is the "request next animation frame" capability. Request
// schedules fn to run once on the next frame; Cancel drops a pending
// request so that fn never runs.
type Frames interface {
	Request(fn func()) FrameID
	Cancel(id FrameID)
}

// FrameQueue is a Frames implementation driven by explicit Flush calls,
// one per display frame. Callbacks requested while a flush is running wait
// for the next flush.
type FrameQueue struct {
	next    FrameID
	order   []FrameID
	pending map[FrameID]func()
}

// NewFrameQueue returns an empty queue.
func NewFrameQueue() *FrameQueue {
	return &FrameQueue{pending: make(map[FrameID]func())}
}

// Request implements Frames.
func (q *FrameQueue) Request(fn func()) FrameID {
	q.next++
	q.pending[q.next] = fn
	q.order = append(q.order, q.next)
	return q.next
}

// Cancel implements Frames.
func (q *FrameQueue) Cancel(id FrameID) {
	delete(q.pending, id)
}

// Pending returns the number of callbacks waiting for the next flush.
func (q *FrameQueue) Pending() int { return len(q.pending) }

// Flush runs one frame: every callback pending when Flush was called, in
// request order, skipping any cancelled meanwhile. It returns how many ran.
func (q *FrameQueue) Flush() int {
	batch := q.order
	q.order = nil
	ran := 0
	for _, id := range batch {
		fn, ok := q.pending[id]
		if !ok {
			continue
		}
		delete(q.pending, id)
		fn()
		ran++
	}
	return ran
}
