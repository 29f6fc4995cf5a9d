package ui

import (
	"fmt"
	"log"
	"time"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/recera/cutpath/pkg/animation"
	"github.com/recera/cutpath/pkg/api"
	"github.com/recera/cutpath/pkg/editor"
	"github.com/recera/cutpath/pkg/reconcile"
)

// Options configures the editor.
type Options struct {
	Syncer *reconcile.Syncer
	Params api.Params

	// Pixels per terminal cell
	CellWidth  int
	CellHeight int
	HitRadius  float64

	StepInterval  time.Duration
	DrawDuration  time.Duration
	FrameInterval time.Duration
}

// promptKind is the input line currently open, if any.
type promptKind int

const (
	promptNone promptKind = iota
	promptVertex
	promptEdge
	promptMachine
)

// confirmation is a yes/no overlay.
type confirmation struct {
	message string
	onYes   func(m *Model) tea.Cmd
}

// Model represents the TUI application state
type Model struct {
	opts  Options
	sync  *reconcile.Syncer
	state *editor.State

	// Playback timers as tea.Tick commands
	clock *tickClock

	// Window dimensions
	width  int
	height int

	// UI components
	keys    KeyMap
	help    help.Model
	input   textinput.Model
	spinner spinner.Model

	prompt  promptKind
	confirm *confirmation
	params  api.Params

	// pressed is set between a left press and its release on the canvas
	pressed bool
	// moving is set while a drag commit is in flight
	moving      bool
	showProgram bool
	pending     int
	quitting    bool

	// Messages
	statusMessage string
	errorMessage  string
}

// NewModel creates a new TUI model.
func NewModel(opts Options) Model {
	if opts.CellWidth < 1 {
		opts.CellWidth = 6
	}
	if opts.CellHeight < 1 {
		opts.CellHeight = 12
	}

	clock := newTickClock(opts.FrameInterval)
	engine := animation.New(clock, animation.Options{
		StepInterval: opts.StepInterval,
		DrawDuration: opts.DrawDuration,
	})

	input := textinput.New()
	input.CharLimit = 64

	s := spinner.New()
	s.Spinner = spinner.Dot
	s.Style = selectedStyle

	return Model{
		opts:    opts,
		sync:    opts.Syncer,
		state:   editor.New(engine, opts.HitRadius),
		clock:   clock,
		keys:    DefaultKeyMap,
		help:    help.New(),
		input:   input,
		spinner: s,
		params:  editor.ParseMachine("", opts.Params),
		// Init issues the first reload
		pending: 1,
		width:   80,
		height:  24,
	}
}

// Init implements tea.Model.
func (m Model) Init() tea.Cmd {
	return tea.Batch(m.reloadCmd(), m.spinner.Tick)
}

// Update implements tea.Model. Playback timers scheduled while handling msg
// are returned along with its command.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	next, cmd := m.update(msg)
	return next, tea.Batch(cmd, m.clock.drain())
}

func (m Model) update(msg tea.Msg) (Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.help.Width = msg.Width
		return m, nil

	case stepTickMsg:
		m.clock.fire(msg.gen)
		return m, nil

	case frameMsg:
		m.clock.fire(msg.gen)
		return m, nil

	case spinner.TickMsg:
		var cmd tea.Cmd
		m.spinner, cmd = m.spinner.Update(msg)
		return m, cmd

	case outcomeMsg:
		m.settle()
		if msg.kind == outcomeMove {
			m.moving = false
		}
		m.applyOutcome(msg)
		return m, nil

	case optimizedMsg:
		m.settle()
		if msg.err != nil {
			m.errorMessage = "Optimization failed: " + api.Message(msg.err)
			return m, nil
		}
		m.state.PathOptimized(msg.res)
		m.errorMessage = ""
		m.statusMessage = fmt.Sprintf("Optimized: %d segments, %s mm", msg.res.Stats.SegmentsTraversed, formatNumber(msg.res.Distance))
		return m, nil

	case clearedMsg:
		m.settle()
		m.state.Cleared()
		m.showProgram = false
		if msg.err != nil {
			m.errorMessage = "Clear failed: " + api.Message(msg.err)
		} else {
			m.statusMessage = "Project cleared"
		}
		return m, nil

	case tea.KeyMsg:
		var cmd tea.Cmd
		switch {
		case m.confirm != nil:
			cmd = m.handleConfirmKeys(msg)
		case m.prompt != promptNone:
			cmd = m.handlePromptKeys(msg)
		default:
			cmd = m.handleKeys(msg)
		}
		return m, cmd

	case tea.MouseMsg:
		if m.confirm != nil || m.prompt != promptNone {
			return m, nil
		}
		cmd := m.handleMouse(msg)
		return m, cmd
	}

	if m.prompt != promptNone {
		var cmd tea.Cmd
		m.input, cmd = m.input.Update(msg)
		return m, cmd
	}
	return m, nil
}

// track marks a request as in flight.
func (m *Model) track(cmd tea.Cmd) tea.Cmd {
	if cmd == nil {
		return nil
	}
	m.pending++
	return cmd
}

func (m *Model) settle() {
	if m.pending > 0 {
		m.pending--
	}
}

func (m *Model) applyOutcome(msg outcomeMsg) {
	out := msg.out
	if out.Err != nil {
		m.errorMessage = errorText(msg.op, out.Err)
	} else {
		m.errorMessage = ""
	}
	if !out.Applied {
		return
	}

	switch msg.kind {
	case outcomeDelete:
		if _, still := out.Snapshot.Vertices[msg.id]; !still {
			m.state.VertexDeleted(out.Snapshot)
			m.showProgram = false
			m.statusMessage = fmt.Sprintf("Point %q deleted", msg.id)
			return
		}
		m.state.ReplaceGraph(out.Snapshot)
	case outcomeReplace:
		m.state.Replaced(out.Snapshot)
		m.showProgram = false
		m.statusMessage = "Layout loaded"
	default:
		m.state.ReplaceGraph(out.Snapshot)
	}
	if out.Reloaded && msg.kind != outcomeReload {
		log.Printf("[sync] %s: local state restored from server", msg.op)
	}
}

func errorText(op string, err error) string {
	if api.IsRejected(err) {
		return api.Message(err)
	}
	return fmt.Sprintf("%s failed: %v", op, err)
}
