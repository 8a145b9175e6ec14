package game

import (
	"container/heap"
	"time"
)

// PauseCause names who paused the race clock. The clock runs only when no
// cause holds it.
type PauseCause int

const (
	PauseGameLogic PauseCause = iota // Countdown and scripted stops
	PauseMenu
	PauseWindowChange
)

// Timeout is a deferred callback on the race clock
type Timeout struct {
	at       time.Duration
	seq      int
	fn       func()
	index    int
	canceled bool
}

// Stop drops the callback if it has not fired yet
func (t *Timeout) Stop() {
	t.canceled = true
}

type timeoutQueue []*Timeout

func (q timeoutQueue) Len() int { return len(q) }

func (q timeoutQueue) Less(i, j int) bool {
	if q[i].at == q[j].at {
		return q[i].seq < q[j].seq
	}
	return q[i].at < q[j].at
}

func (q timeoutQueue) Swap(i, j int) {
	q[i], q[j] = q[j], q[i]
	q[i].index = i
	q[j].index = j
}

func (q *timeoutQueue) Push(x any) {
	t := x.(*Timeout)
	t.index = len(*q)
	*q = append(*q, t)
}

func (q *timeoutQueue) Pop() any {
	old := *q
	n := len(old)
	t := old[n-1]
	old[n-1] = nil
	t.index = -1
	*q = old[:n-1]
	return t
}

// Timeline is the simulated race clock. It only advances through Advance and
// stands still while paused, so every effect duration and cooldown measured
// against it pauses with the race.
type Timeline struct {
	now    time.Duration
	paused map[PauseCause]bool
	queue  timeoutQueue
	seq    int
}

// NewTimeline creates a running clock at zero
func NewTimeline() *Timeline {
	return &Timeline{paused: make(map[PauseCause]bool)}
}

// Now is the simulated time since the race was created
func (t *Timeline) Now() time.Duration {
	return t.now
}

// Pause holds the clock for cause
func (t *Timeline) Pause(cause PauseCause) {
	t.paused[cause] = true
}

// Resume releases the hold of cause
func (t *Timeline) Resume(cause PauseCause) {
	delete(t.paused, cause)
}

// Paused reports whether any cause holds the clock
func (t *Timeline) Paused() bool {
	return len(t.paused) > 0
}

// PausedBy reports whether cause holds the clock
func (t *Timeline) PausedBy(cause PauseCause) bool {
	return t.paused[cause]
}

// After schedules fn once the clock passes now+delay
func (t *Timeline) After(delay time.Duration, fn func()) *Timeout {
	t.seq++
	timeout := &Timeout{at: t.now + delay, seq: t.seq, fn: fn}
	heap.Push(&t.queue, timeout)
	return timeout
}

// Advance moves the clock by dt seconds unless paused and fires the due
// callbacks in order. Callbacks may schedule new ones.
func (t *Timeline) Advance(dt float64) {
	if t.Paused() {
		return
	}
	t.now += time.Duration(dt * float64(time.Second))
	for t.queue.Len() > 0 {
		next := t.queue[0]
		if next.at >= t.now {
			return
		}
		heap.Pop(&t.queue)
		if !next.canceled {
			next.fn()
		}
	}
}

// Pending is the number of scheduled callbacks, including stopped ones not
// yet drained
func (t *Timeline) Pending() int {
	return t.queue.Len()
}
