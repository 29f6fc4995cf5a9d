// Package animation plays back an optimized path segment by segment.
//
// Two timers drive playback. The step timer reveals a new segment every
// StepInterval; the frame loop eases every revealed segment from 0 to 1 over
// DrawDuration. They only share the progress map, and both handles live in
// one record so stopping cancels them together.
package animation

import (
	"log"
	"time"
)

// Default timings.
const (
	DefaultStepInterval = 800 * time.Millisecond
	DefaultDrawDuration = 600 * time.Millisecond
)

// Timer is a cancellable scheduled callback.
type Timer interface {
	Stop()
}

// Clock schedules the engine's callbacks. Callbacks must run on the same
// goroutine that calls the Engine's methods.
type Clock interface {
	Now() time.Time
	// Every runs fn every d until stopped.
	Every(d time.Duration, fn func()) Timer
	// NextFrame runs fn once at the next frame.
	NextFrame(fn func()) Timer
}

// Segment is the draw-in state of one path segment.
type Segment struct {
	Start    time.Time
	Progress float64
}

// Options configures an Engine.
type Options struct {
	StepInterval time.Duration
	DrawDuration time.Duration
	// OnDraw is called whenever the visible state changes.
	OnDraw func()
}

func (o Options) withDefaults() Options {
	if o.StepInterval <= 0 {
		o.StepInterval = DefaultStepInterval
	}
	if o.DrawDuration <= 0 {
		o.DrawDuration = DefaultDrawDuration
	}
	return o
}

// timers owns both playback handles.
type timers struct {
	step  Timer
	frame Timer
}

func (t *timers) cancel() {
	if t.step != nil {
		t.step.Stop()
		t.step = nil
	}
	if t.frame != nil {
		t.frame.Stop()
		t.frame = nil
	}
}

// Frame is a read-only view of the engine for rendering.
type Frame struct {
	Playing  bool
	Step     int
	Segments int
	// Progress holds the draw-in fraction of every segment that has one.
	// Segments without an entry are drawn complete.
	Progress map[int]float64
}

// Visible returns how many segments should be drawn.
func (f Frame) Visible() int {
	if f.Playing {
		return f.Step
	}
	return f.Segments
}

// ProgressOf returns the draw-in fraction of segment i.
func (f Frame) ProgressOf(i int) float64 {
	if p, ok := f.Progress[i]; ok {
		return p
	}
	return 1
}

// Engine is the playback state machine. It is not safe for concurrent use.
type Engine struct {
	clock    Clock
	opts     Options
	segments int
	step     int
	playing  bool
	progress map[int]*Segment
	timers   timers
}

// New creates an idle engine with no path.
func New(clock Clock, opts Options) *Engine {
	return &Engine{
		clock:    clock,
		opts:     opts.withDefaults(),
		progress: make(map[int]*Segment),
	}
}

// Load prepares playback for a path of pathLen vertices, cancelling any
// running session and discarding all progress.
func (e *Engine) Load(pathLen int) {
	e.timers.cancel()
	e.playing = false
	e.step = 0
	e.progress = make(map[int]*Segment)
	e.segments = 0
	if pathLen > 1 {
		e.segments = pathLen - 1
	}
	e.draw()
}

// Reset cancels playback and forgets the path.
func (e *Engine) Reset() {
	e.Load(0)
}

// Start begins playback from the first segment. It does nothing when
// already playing or when there is no segment to draw.
func (e *Engine) Start() bool {
	if e.playing || e.segments < 1 {
		return false
	}
	e.step = 0
	e.progress = make(map[int]*Segment)
	e.playing = true
	e.timers.step = e.clock.Every(e.opts.StepInterval, e.stepTick)
	e.timers.frame = e.clock.NextFrame(e.frameTick)
	log.Printf("[anim] playback started, %d segments", e.segments)
	e.draw()
	return true
}

// Stop ends playback. Every started segment is completed, and a stop
// partway through reveals the whole path. Stopping an idle engine only
// redraws.
func (e *Engine) Stop() {
	e.timers.cancel()
	e.playing = false
	for _, seg := range e.progress {
		seg.Progress = 1
	}
	if e.step > 0 && e.step < e.segments {
		e.step = e.segments
	}
	e.draw()
}

// Toggle starts an idle engine or stops a playing one.
func (e *Engine) Toggle() {
	if e.playing {
		e.Stop()
		return
	}
	e.Start()
}

// Playing reports whether a session is active.
func (e *Engine) Playing() bool {
	return e.playing
}

// Step returns the number of segments started so far.
func (e *Engine) Step() int {
	return e.step
}

// Segments returns the number of segments in the loaded path.
func (e *Engine) Segments() int {
	return e.segments
}

// Progress returns segment i's draw-in fraction, if it has one.
func (e *Engine) Progress(i int) (float64, bool) {
	seg, ok := e.progress[i]
	if !ok {
		return 0, false
	}
	return seg.Progress, true
}

// Frame returns a copy of the state the renderer needs.
func (e *Engine) Frame() Frame {
	f := Frame{
		Playing:  e.playing,
		Step:     e.step,
		Segments: e.segments,
		Progress: make(map[int]float64, len(e.progress)),
	}
	for i, seg := range e.progress {
		f.Progress[i] = seg.Progress
	}
	return f
}

func (e *Engine) stepTick() {
	if e.step < e.segments {
		e.step++
		e.progress[e.step-1] = &Segment{Start: e.clock.Now()}
		return
	}
	if e.timers.step != nil {
		e.timers.step.Stop()
		e.timers.step = nil
	}
}

func (e *Engine) frameTick() {
	e.timers.frame = nil
	if !e.playing {
		return
	}

	now := e.clock.Now()
	for i := 0; i < e.step; i++ {
		seg, ok := e.progress[i]
		if !ok {
			seg = &Segment{Start: now}
			e.progress[i] = seg
		}
		seg.Progress = min(float64(now.Sub(seg.Start))/float64(e.opts.DrawDuration), 1)
	}
	e.draw()

	if e.step >= e.segments && e.settled() {
		log.Printf("[anim] playback finished")
		e.Stop()
		return
	}
	e.timers.frame = e.clock.NextFrame(e.frameTick)
}

func (e *Engine) settled() bool {
	for _, seg := range e.progress {
		if seg.Progress < 1 {
			return false
		}
	}
	return true
}

func (e *Engine) draw() {
	if e.opts.OnDraw != nil {
		e.opts.OnDraw()
	}
}
