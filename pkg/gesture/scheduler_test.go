package gesture

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFrameQueueRunsOncePerFlush(t *testing.T) {
	q := NewFrameQueue()
	calls := 0
	var again func()
	again = func() {
		calls++
		q.Request(again)
	}
	q.Request(again)

	assert.Equal(t, 1, q.Flush())
	assert.Equal(t, 1, calls)
	assert.Equal(t, 1, q.Pending())
	assert.Equal(t, 1, q.Flush())
	assert.Equal(t, 2, calls)
}

func TestFrameQueueCancel(t *testing.T) {
	q := NewFrameQueue()
	ran := false
	id := q.Request(func() { ran = true })
	q.Cancel(id)
	assert.Equal(t, 0, q.Flush())
	assert.False(t, ran)
}

func TestSchedulerRepeatsUntilStepStops(t *testing.T) {
	q := NewFrameQueue()
	s := NewScheduler(q, nil)

	n := 0
	s.Start("count", func() bool {
		n++
		return n < 3
	})
	require.True(t, s.Active())
	assert.Equal(t, "count", s.Name())

	for i := 0; i < 5; i++ {
		q.Flush()
	}
	assert.Equal(t, 3, n)
	assert.False(t, s.Active())
	assert.Equal(t, 0, q.Pending())
}

func TestSchedulerCancel(t *testing.T) {
	q := NewFrameQueue()
	s := NewScheduler(q, nil)
	n := 0
	s.Start("drag", func() bool { n++; return true })
	q.Flush()
	s.Cancel()

	assert.False(t, s.Active())
	assert.Equal(t, 0, q.Pending())
	q.Flush()
	assert.Equal(t, 1, n)

	// Cancelling twice is harmless.
	s.Cancel()
}

func TestStartPreemptsActiveGesture(t *testing.T) {
	q := NewFrameQueue()
	s := NewScheduler(q, nil)

	var a, b int
	s.Start("a", func() bool { a++; return true })
	q.Flush()
	s.Start("b", func() bool { b++; return true })

	// Only one callback may be pending: A's request was cancelled.
	assert.Equal(t, 1, q.Pending())
	for i := 0; i < 3; i++ {
		q.Flush()
	}
	assert.Equal(t, 1, a)
	assert.Equal(t, 3, b)
	assert.Equal(t, "b", s.Name())
}

func TestStepStartingNewGestureHandsOver(t *testing.T) {
	q := NewFrameQueue()
	s := NewScheduler(q, nil)

	var second int
	s.Start("first", func() bool {
		s.Start("second", func() bool { second++; return true })
		return false
	})
	q.Flush()
	assert.True(t, s.Active())
	assert.Equal(t, "second", s.Name())
	q.Flush()
	assert.Equal(t, 1, second)
	assert.Equal(t, 1, q.Pending())
}
