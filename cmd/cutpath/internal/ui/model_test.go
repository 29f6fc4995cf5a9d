package ui

import (
	"sort"
	"strings"
	"testing"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/recera/cutpath/internal/apitest"
	"github.com/recera/cutpath/pkg/api"
	"github.com/recera/cutpath/pkg/editor"
	"github.com/recera/cutpath/pkg/geometry"
	"github.com/recera/cutpath/pkg/graph"
	"github.com/recera/cutpath/pkg/reconcile"
)

func newTestModel(t *testing.T) (Model, *apitest.Server) {
	t.Helper()
	srv := apitest.New()
	t.Cleanup(srv.Close)

	m := NewModel(Options{
		Syncer:        reconcile.New(api.NewClient(srv.URL())),
		Params:        api.Params{Speed: 100, SetupTime: 0.5},
		CellWidth:     6,
		CellHeight:    12,
		HitRadius:     30,
		StepInterval:  800 * time.Millisecond,
		DrawDuration:  600 * time.Millisecond,
		FrameInterval: 16 * time.Millisecond,
	})
	m = update(t, m, tea.WindowSizeMsg{Width: 80, Height: 24})
	m = run(t, m, m.reloadCmd())
	return m, srv
}

// update feeds one message and drops the resulting command.
func update(t *testing.T, m Model, msg tea.Msg) Model {
	t.Helper()
	next, _ := m.Update(msg)
	return next.(Model)
}

// send feeds one message and runs the resulting command.
func send(t *testing.T, m Model, msg tea.Msg) Model {
	t.Helper()
	next, cmd := m.Update(msg)
	return run(t, next.(Model), cmd)
}

// run executes cmd and feeds back the backend results it produces.
func run(t *testing.T, m Model, cmd tea.Cmd) Model {
	t.Helper()
	if cmd == nil {
		return m
	}
	switch msg := cmd().(type) {
	case tea.BatchMsg:
		for _, c := range msg {
			m = run(t, m, c)
		}
	case outcomeMsg, optimizedMsg, clearedMsg:
		m = send(t, m, msg)
	}
	return m
}

func keyMsg(s string) tea.KeyMsg {
	switch s {
	case "tab":
		return tea.KeyMsg{Type: tea.KeyTab}
	case "enter":
		return tea.KeyMsg{Type: tea.KeyEnter}
	case "esc":
		return tea.KeyMsg{Type: tea.KeyEsc}
	case "delete":
		return tea.KeyMsg{Type: tea.KeyDelete}
	}
	return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(s)}
}

func click(t *testing.T, m Model, x, y int) Model {
	t.Helper()
	m = send(t, m, tea.MouseMsg{X: x, Y: y, Action: tea.MouseActionPress, Button: tea.MouseButtonLeft})
	return send(t, m, tea.MouseMsg{X: x, Y: y, Action: tea.MouseActionRelease, Button: tea.MouseButtonLeft})
}

func TestModel_CellToCanvas(t *testing.T) {
	m, _ := newTestModel(t)
	p, ok := m.cellToCanvas(10, 5)
	if !ok || p != geometry.Pt(63, 54) {
		t.Errorf("cell (10,5) = %v, %v; want (63,54) on canvas", p, ok)
	}
	if _, ok := m.cellToCanvas(10, 0); ok {
		t.Error("the header row is not canvas")
	}
	if _, ok := m.cellToCanvas(10, 23); ok {
		t.Error("the footer is not canvas")
	}
}

func TestModel_ClickCreatesVertex(t *testing.T) {
	m, srv := newTestModel(t)
	m = click(t, m, 10, 5)

	if p, ok := m.state.Graph.Vertex("P1"); !ok || p != geometry.Pt(63, 54) {
		t.Fatalf("P1 = %v, %v", p, ok)
	}
	if srv.Calls(apitest.RouteCreateVertex) != 1 {
		t.Errorf("create calls = %d", srv.Calls(apitest.RouteCreateVertex))
	}
	if m.pending != 0 {
		t.Errorf("pending = %d after the response", m.pending)
	}
}

func TestModel_ConnectModeCreatesEdge(t *testing.T) {
	m, srv := newTestModel(t)
	m = click(t, m, 10, 5)
	m = click(t, m, 40, 5)
	m = update(t, m, keyMsg("tab"))
	if m.state.Interaction.Mode != editor.Connect {
		t.Fatal("tab should switch to connect mode")
	}

	m = click(t, m, 10, 5)
	if m.state.Interaction.Selected != "P1" {
		t.Fatalf("selected = %q", m.state.Interaction.Selected)
	}
	m = click(t, m, 40, 5)
	if !m.state.Graph.HasEdge("P1", "P2") {
		t.Error("edge P1-P2 missing locally")
	}
	if !srv.Snapshot().HasEdge("P1", "P2") {
		t.Error("edge P1-P2 missing on the server")
	}
	if m.state.Interaction.Selected != "" {
		t.Error("selection should be cleared")
	}
}

func TestModel_RightClickDeletesAfterConfirm(t *testing.T) {
	m, srv := newTestModel(t)
	m = click(t, m, 10, 5)

	m = send(t, m, tea.MouseMsg{X: 10, Y: 5, Action: tea.MouseActionPress, Button: tea.MouseButtonRight})
	if m.confirm == nil {
		t.Fatal("right-click should ask first")
	}
	m = send(t, m, keyMsg("n"))
	if m.confirm != nil || srv.Calls(apitest.RouteDeleteVertex) != 0 {
		t.Fatal("declining should not delete")
	}

	m = send(t, m, tea.MouseMsg{X: 10, Y: 5, Action: tea.MouseActionPress, Button: tea.MouseButtonRight})
	m = send(t, m, keyMsg("y"))
	if m.state.Graph.Has("P1") {
		t.Error("P1 should be gone")
	}
	if !strings.Contains(m.statusMessage, "deleted") {
		t.Errorf("status = %q", m.statusMessage)
	}
}

func TestModel_DragMovesVertex(t *testing.T) {
	m, srv := newTestModel(t)
	srv.Seed(graph.Snapshot{
		Vertices: map[string]geometry.Point{"A": geometry.Pt(63, 54), "B": geometry.Pt(243, 54)},
		Edges:    []graph.Edge{{From: "A", To: "B"}},
	})
	m = run(t, m, m.reloadCmd())

	m = send(t, m, tea.MouseMsg{X: 10, Y: 5, Action: tea.MouseActionPress, Button: tea.MouseButtonLeft})
	m = send(t, m, tea.MouseMsg{X: 12, Y: 8, Action: tea.MouseActionMotion})
	m = send(t, m, tea.MouseMsg{X: 12, Y: 10, Action: tea.MouseActionRelease})

	want := geometry.Pt(75, 114)
	if p := srv.Snapshot().Vertices["A"]; p != want {
		t.Errorf("server A = %v, want %v", p, want)
	}
	if !m.state.Graph.HasEdge("A", "B") {
		t.Error("edge lost across the move")
	}
	if m.state.Graph.Len() != 2 {
		t.Errorf("release after drag should not create a vertex, have %d", m.state.Graph.Len())
	}
}

func TestModel_PromptAddsNamedVertex(t *testing.T) {
	m, _ := newTestModel(t)
	m = update(t, m, keyMsg("a"))
	if m.prompt != promptVertex {
		t.Fatal("a should open the point prompt")
	}
	m = update(t, m, keyMsg("Q 1 x"))
	m = send(t, m, keyMsg("enter"))
	if m.prompt != promptVertex || m.errorMessage == "" {
		t.Fatal("invalid coordinates should keep the prompt open with an error")
	}

	m = update(t, m, keyMsg("esc"))
	m = update(t, m, keyMsg("a"))
	m = update(t, m, keyMsg("Q 100 200"))
	m = send(t, m, keyMsg("enter"))
	if p, ok := m.state.Graph.Vertex("Q"); !ok || p != geometry.Pt(100, 200) {
		t.Errorf("Q = %v, %v", p, ok)
	}
	if m.prompt != promptNone {
		t.Error("prompt should close after submit")
	}
}

func TestModel_RejectionShowsServerMessage(t *testing.T) {
	m, _ := newTestModel(t)
	m = click(t, m, 10, 5)
	m = update(t, m, keyMsg("a"))
	m = update(t, m, keyMsg("P1 300 300"))
	m = send(t, m, keyMsg("enter"))
	if m.errorMessage != "Point 'P1' already exists!" {
		t.Errorf("error = %q", m.errorMessage)
	}
}

func TestModel_OptimizeAndPlay(t *testing.T) {
	m, srv := newTestModel(t)
	m = click(t, m, 10, 5)
	m = click(t, m, 40, 5)
	srv.SetCycle("P1", "P2", "P1")

	m = update(t, m, keyMsg("p"))
	if m.errorMessage == "" {
		t.Error("play without a path should explain why")
	}

	m = send(t, m, keyMsg("o"))
	if m.state.Result == nil || len(m.state.Path) != 3 {
		t.Fatalf("path = %v", m.state.Path)
	}
	m = update(t, m, keyMsg("p"))
	if !m.state.Animation.Playing() {
		t.Fatal("p should start playback")
	}
	m = update(t, m, keyMsg("p"))
	if m.state.Animation.Playing() {
		t.Error("second p should stop playback")
	}

	m = update(t, m, keyMsg("g"))
	if !m.showProgram {
		t.Error("g should show the program")
	}
	if view := m.View(); !strings.Contains(view, "Machine program") {
		t.Error("program panel not rendered")
	}
}

func TestModel_OptimizeFailureKeepsPath(t *testing.T) {
	m, srv := newTestModel(t)
	m = click(t, m, 10, 5)
	m = click(t, m, 40, 5)
	srv.SetCycle("P1", "P2")
	m = send(t, m, keyMsg("o"))

	srv.SetCycle()
	m = send(t, m, keyMsg("o"))
	if !strings.Contains(m.errorMessage, "No cycle found") {
		t.Errorf("error = %q", m.errorMessage)
	}
	if len(m.state.Path) != 2 {
		t.Errorf("path = %v, want the previous one", m.state.Path)
	}
}

func TestModel_ClearResetsEverything(t *testing.T) {
	m, srv := newTestModel(t)
	m = click(t, m, 10, 5)
	m = update(t, m, keyMsg("C"))
	if m.confirm == nil {
		t.Fatal("clear should ask first")
	}
	m = send(t, m, keyMsg("y"))
	if m.state.Graph.Len() != 0 || srv.Calls(apitest.RouteClear) != 1 {
		t.Errorf("after clear: %d local points, %d clear calls", m.state.Graph.Len(), srv.Calls(apitest.RouteClear))
	}
}

func TestModel_ClearResetsLocallyEvenOnFailure(t *testing.T) {
	m, srv := newTestModel(t)
	m = click(t, m, 10, 5)
	srv.Fail(apitest.RouteClear, 500, "disk full")
	m = update(t, m, keyMsg("C"))
	m = send(t, m, keyMsg("y"))
	if m.state.Graph.Len() != 0 {
		t.Error("local state should reset whatever the server says")
	}
	if m.errorMessage == "" {
		t.Error("the failure should still be reported")
	}
}

func TestModel_LoadExample(t *testing.T) {
	m, _ := newTestModel(t)
	m = send(t, m, keyMsg("1"))
	if m.state.Graph.Len() == 0 {
		t.Fatal("example not loaded")
	}
	if m.state.Path != nil {
		t.Error("loading an example clears the path")
	}
}

func TestModel_ViewShowsHint(t *testing.T) {
	m, _ := newTestModel(t)
	view := m.View()
	if !strings.Contains(view, "Click to add cut points") {
		t.Error("empty canvas hint missing")
	}
	if strings.Contains(view, "play/stop") {
		t.Error("playback key should be hidden without a path")
	}
}

func TestModel_PlaybackRunsOnTicks(t *testing.T) {
	m, srv := newTestModel(t)
	m = click(t, m, 10, 5)
	m = click(t, m, 40, 5)
	srv.SetCycle("P1", "P2", "P1")
	m = send(t, m, keyMsg("o"))

	now := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
	m.clock.now = func() time.Time { return now }

	m = update(t, m, keyMsg("p"))
	m = update(t, m, keyMsg("p"))
	m = update(t, m, keyMsg("p"))
	periodic, frames := 0, 0
	for _, tm := range m.clock.live {
		if tm.period > 0 {
			periodic++
		} else {
			frames++
		}
	}
	if periodic != 1 || frames != 1 {
		t.Fatalf("live timers: %d periodic, %d frames; want 1 and 1", periodic, frames)
	}

	for i := 0; i < 50 && m.state.Animation.Playing(); i++ {
		now = now.Add(100 * time.Millisecond)
		gens := make([]uint64, 0, len(m.clock.live))
		for gen := range m.clock.live {
			gens = append(gens, gen)
		}
		sort.Slice(gens, func(a, b int) bool { return gens[a] < gens[b] })
		for _, gen := range gens {
			tm, ok := m.clock.live[gen]
			if !ok {
				continue
			}
			if tm.period > 0 {
				m = update(t, m, stepTickMsg{gen: gen})
			} else {
				m = update(t, m, frameMsg{gen: gen})
			}
		}
	}

	if m.state.Animation.Playing() {
		t.Fatal("playback should finish on its own")
	}
	if m.state.Animation.Step() != 2 {
		t.Errorf("step = %d, want 2", m.state.Animation.Step())
	}
	if len(m.clock.live) != 0 {
		t.Errorf("%d timers still live after playback", len(m.clock.live))
	}
}

func TestModel_StaleTickIsDropped(t *testing.T) {
	m, srv := newTestModel(t)
	m = click(t, m, 10, 5)
	m = click(t, m, 40, 5)
	srv.SetCycle("P1", "P2", "P1")
	m = send(t, m, keyMsg("o"))

	m = update(t, m, keyMsg("p"))
	var gens []uint64
	for gen := range m.clock.live {
		gens = append(gens, gen)
	}
	m = update(t, m, keyMsg("p"))
	step := m.state.Animation.Step()

	for _, gen := range gens {
		m = update(t, m, stepTickMsg{gen: gen})
		m = update(t, m, frameMsg{gen: gen})
	}
	if m.state.Animation.Playing() || m.state.Animation.Step() != step {
		t.Error("ticks scheduled before stop should not touch playback")
	}
}

func TestModel_DragWaitsForPreviousMove(t *testing.T) {
	m, srv := newTestModel(t)
	srv.Seed(graph.Snapshot{
		Vertices: map[string]geometry.Point{"A": geometry.Pt(63, 54), "B": geometry.Pt(243, 54)},
		Edges:    []graph.Edge{{From: "A", To: "B"}},
	})
	m = run(t, m, m.reloadCmd())

	m = send(t, m, tea.MouseMsg{X: 10, Y: 5, Action: tea.MouseActionPress, Button: tea.MouseButtonLeft})
	m = send(t, m, tea.MouseMsg{X: 12, Y: 8, Action: tea.MouseActionMotion})
	next, commit := m.Update(tea.MouseMsg{X: 12, Y: 10, Action: tea.MouseActionRelease})
	m = next.(Model)
	if !m.moving {
		t.Fatal("releasing a drag should mark a move in flight")
	}

	m = send(t, m, tea.MouseMsg{X: 40, Y: 5, Action: tea.MouseActionPress, Button: tea.MouseButtonLeft})
	m = send(t, m, tea.MouseMsg{X: 44, Y: 12, Action: tea.MouseActionMotion})
	if m.state.Interaction.Drag != nil {
		t.Fatal("a second drag should not start while a move is in flight")
	}
	m = send(t, m, tea.MouseMsg{X: 44, Y: 12, Action: tea.MouseActionRelease})
	if p, _ := m.state.Graph.Vertex("B"); p != geometry.Pt(243, 54) {
		t.Errorf("B moved locally to %v", p)
	}
	if m.state.Graph.Len() != 2 {
		t.Errorf("the ignored gesture created a point, have %d", m.state.Graph.Len())
	}

	m = run(t, m, commit)
	if m.moving {
		t.Fatal("the move outcome should clear the flag")
	}

	m = send(t, m, tea.MouseMsg{X: 40, Y: 5, Action: tea.MouseActionPress, Button: tea.MouseButtonLeft})
	m = send(t, m, tea.MouseMsg{X: 44, Y: 12, Action: tea.MouseActionMotion})
	m = send(t, m, tea.MouseMsg{X: 44, Y: 12, Action: tea.MouseActionRelease})

	snap := srv.Snapshot()
	if snap.Vertices["A"] != geometry.Pt(75, 114) || snap.Vertices["B"] != geometry.Pt(267, 138) {
		t.Errorf("server vertices = %v", snap.Vertices)
	}
	if len(snap.Edges) != 1 || !snap.HasEdge("A", "B") {
		t.Errorf("server edges = %v, want exactly A-B", snap.Edges)
	}
}

func TestModel_DragReleasedOffCanvasStaysOnEdge(t *testing.T) {
	m, srv := newTestModel(t)
	srv.Seed(graph.Snapshot{
		Vertices: map[string]geometry.Point{"A": geometry.Pt(63, 54)},
	})
	m = run(t, m, m.reloadCmd())

	m = send(t, m, tea.MouseMsg{X: 10, Y: 5, Action: tea.MouseActionPress, Button: tea.MouseButtonLeft})
	m = send(t, m, tea.MouseMsg{X: 12, Y: 0, Action: tea.MouseActionMotion})
	m = send(t, m, tea.MouseMsg{X: 12, Y: 0, Action: tea.MouseActionRelease})

	if p := srv.Snapshot().Vertices["A"]; p != geometry.Pt(75, 6) {
		t.Errorf("server A = %v, want it pinned to the top row at (75,6)", p)
	}
}
