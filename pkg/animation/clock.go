package animation

import (
	"sort"
	"time"
)

// DefaultFrameInterval approximates a 60Hz display.
const DefaultFrameInterval = 16 * time.Millisecond

// ManualClock is a deterministic Clock for tests. Time only moves through
// Advance, which runs due callbacks in time order on the caller's goroutine.
type ManualClock struct {
	now    time.Time
	frame  time.Duration
	seq    int
	timers []*manualTimer
}

type manualTimer struct {
	due     time.Time
	period  time.Duration
	fn      func()
	seq     int
	stopped bool
}

func (t *manualTimer) Stop() {
	t.stopped = true
}

// NewManualClock creates a ManualClock at start.
func NewManualClock(start time.Time, frameInterval time.Duration) *ManualClock {
	if frameInterval <= 0 {
		frameInterval = DefaultFrameInterval
	}
	return &ManualClock{now: start, frame: frameInterval}
}

// Now implements Clock.
func (c *ManualClock) Now() time.Time {
	return c.now
}

// Every implements Clock.
func (c *ManualClock) Every(d time.Duration, fn func()) Timer {
	return c.add(d, d, fn)
}

// NextFrame implements Clock.
func (c *ManualClock) NextFrame(fn func()) Timer {
	return c.add(c.frame, 0, fn)
}

func (c *ManualClock) add(after, period time.Duration, fn func()) *manualTimer {
	c.seq++
	t := &manualTimer{due: c.now.Add(after), period: period, fn: fn, seq: c.seq}
	c.timers = append(c.timers, t)
	return t
}

// Advance moves time forward by d, firing every callback that falls due.
func (c *ManualClock) Advance(d time.Duration) {
	target := c.now.Add(d)
	for {
		c.prune()
		sort.SliceStable(c.timers, func(i, j int) bool {
			if c.timers[i].due.Equal(c.timers[j].due) {
				return c.timers[i].seq < c.timers[j].seq
			}
			return c.timers[i].due.Before(c.timers[j].due)
		})
		if len(c.timers) == 0 || c.timers[0].due.After(target) {
			break
		}
		t := c.timers[0]
		c.now = t.due
		if t.period > 0 {
			t.due = t.due.Add(t.period)
		} else {
			t.stopped = true
		}
		t.fn()
	}
	c.now = target
	c.prune()
}

// Active returns the number of live periodic timers and pending frames.
func (c *ManualClock) Active() (periodic, frames int) {
	for _, t := range c.timers {
		if t.stopped {
			continue
		}
		if t.period > 0 {
			periodic++
		} else {
			frames++
		}
	}
	return periodic, frames
}

func (c *ManualClock) prune() {
	live := c.timers[:0]
	for _, t := range c.timers {
		if !t.stopped {
			live = append(live, t)
		}
	}
	c.timers = live
}
