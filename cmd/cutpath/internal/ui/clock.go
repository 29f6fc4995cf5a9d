package ui

import (
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/recera/cutpath/pkg/animation"
)

// stepTickMsg fires a periodic playback timer.
type stepTickMsg struct{ gen uint64 }

// frameMsg fires a one-shot frame callback.
type frameMsg struct{ gen uint64 }

// tickClock schedules playback callbacks as tea.Tick commands. Every
// scheduled timer gets a new generation; Stop forgets it, so a tick that was
// already in flight is dropped when it arrives.
type tickClock struct {
	frame time.Duration
	now   func() time.Time
	gen   uint64
	live  map[uint64]*tickTimer
	queue []tea.Cmd
}

type tickTimer struct {
	clock  *tickClock
	gen    uint64
	period time.Duration
	fn     func()
}

func (t *tickTimer) Stop() {
	delete(t.clock.live, t.gen)
}

func newTickClock(frameInterval time.Duration) *tickClock {
	if frameInterval <= 0 {
		frameInterval = animation.DefaultFrameInterval
	}
	return &tickClock{
		frame: frameInterval,
		now:   time.Now,
		live:  make(map[uint64]*tickTimer),
	}
}

// Now implements animation.Clock.
func (c *tickClock) Now() time.Time {
	return c.now()
}

// Every implements animation.Clock.
func (c *tickClock) Every(d time.Duration, fn func()) animation.Timer {
	return c.schedule(d, fn)
}

// NextFrame implements animation.Clock.
func (c *tickClock) NextFrame(fn func()) animation.Timer {
	return c.schedule(0, fn)
}

func (c *tickClock) schedule(period time.Duration, fn func()) *tickTimer {
	c.gen++
	t := &tickTimer{clock: c, gen: c.gen, period: period, fn: fn}
	c.live[t.gen] = t
	c.queue = append(c.queue, c.tick(t))
	return t
}

func (c *tickClock) tick(t *tickTimer) tea.Cmd {
	gen := t.gen
	if t.period > 0 {
		return tea.Tick(t.period, func(time.Time) tea.Msg { return stepTickMsg{gen: gen} })
	}
	return tea.Tick(c.frame, func(time.Time) tea.Msg { return frameMsg{gen: gen} })
}

// fire runs the timer of generation gen if it is still live. Periodic
// timers are rescheduled unless their callback stopped them.
func (c *tickClock) fire(gen uint64) {
	t, ok := c.live[gen]
	if !ok {
		return
	}
	if t.period == 0 {
		delete(c.live, gen)
		t.fn()
		return
	}
	t.fn()
	if _, still := c.live[gen]; still {
		c.queue = append(c.queue, c.tick(t))
	}
}

// drain returns the ticks scheduled since the last call.
func (c *tickClock) drain() tea.Cmd {
	if len(c.queue) == 0 {
		return nil
	}
	cmds := c.queue
	c.queue = nil
	return tea.Batch(cmds...)
}
