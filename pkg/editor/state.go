// Package editor holds the interactive session: the canonical graph mirror,
// the pointer/selection state machine and the displayed optimized path.
//
// Handlers never talk to the backend. Anything that needs a server round-trip
// is returned as an Intent for the caller to run, and the result comes back
// through one of the Apply methods.
package editor

import (
	"github.com/recera/cutpath/pkg/animation"
	"github.com/recera/cutpath/pkg/api"
	"github.com/recera/cutpath/pkg/geometry"
	"github.com/recera/cutpath/pkg/graph"
)

// DefaultHitRadius is the pick distance around a vertex, in canvas pixels.
const DefaultHitRadius = 30

// Mode selects what pointer input does.
type Mode int

const (
	// Place creates vertices on click and drags existing ones.
	Place Mode = iota
	// Connect joins two clicked vertices with an edge.
	Connect
)

func (m Mode) String() string {
	switch m {
	case Place:
		return "place"
	case Connect:
		return "connect"
	default:
		return "unknown"
	}
}

// Cursor is the pointer shape hint for the current hover position.
type Cursor int

const (
	CursorCrosshair Cursor = iota
	CursorMove
	CursorPointer
	CursorNotAllowed
)

// Drag tracks a vertex being moved in place mode.
type Drag struct {
	ID     string
	Origin geometry.Point
	Moved  bool
}

// Interaction is the pointer and selection state.
type Interaction struct {
	Mode     Mode
	Selected string
	Drag     *Drag
	// SuppressClick swallows the click that trails a drag release.
	SuppressClick bool
	Cursor        geometry.Point
	CursorKnown   bool
}

// State is the single owned session object.
type State struct {
	Graph       *graph.Store
	Interaction Interaction
	Path        []string
	Result      *api.Result
	Animation   *animation.Engine
	HitRadius   float64
}

// New creates a session in place mode with an empty graph.
func New(engine *animation.Engine, hitRadius float64) *State {
	if hitRadius <= 0 {
		hitRadius = DefaultHitRadius
	}
	return &State{
		Graph:     graph.NewStore(),
		Animation: engine,
		HitRadius: hitRadius,
	}
}

// Intent is a backend operation requested by an input handler.
type Intent interface {
	intent()
}

// CreateVertex asks for a new vertex. An empty ID lets the server name it.
type CreateVertex struct {
	ID string
	At geometry.Point
}

// CreateEdge asks for an edge between two distinct vertices.
type CreateEdge struct {
	From, To string
}

// ConfirmDelete asks the user before deleting a vertex.
type ConfirmDelete struct {
	ID string
}

// CommitMove persists a finished drag. Incident holds the edges that touched
// the vertex when the drag ended; the backend drops them on delete.
type CommitMove struct {
	ID       string
	To       geometry.Point
	Incident []graph.Edge
}

func (CreateVertex) intent()  {}
func (CreateEdge) intent()    {}
func (ConfirmDelete) intent() {}
func (CommitMove) intent()    {}

// SetMode switches mode and drops any selection or drag.
func (s *State) SetMode(m Mode) {
	s.Interaction.Mode = m
	s.Interaction.Selected = ""
	s.Interaction.Drag = nil
	s.Interaction.SuppressClick = false
}

// ToggleMode flips between place and connect.
func (s *State) ToggleMode() {
	if s.Interaction.Mode == Place {
		s.SetMode(Connect)
		return
	}
	s.SetMode(Place)
}

func (s *State) nearest(p geometry.Point) (string, bool) {
	return geometry.FindNearest(s.Graph.Points(), p, s.HitRadius)
}

func (s *State) track(p geometry.Point) {
	s.Interaction.Cursor = p
	s.Interaction.CursorKnown = true
}

// MouseDown starts a drag when pressing on a vertex in place mode.
func (s *State) MouseDown(p geometry.Point) {
	s.track(p)
	if s.Interaction.Mode != Place {
		return
	}
	id, ok := s.nearest(p)
	if !ok {
		return
	}
	origin, _ := s.Graph.Vertex(id)
	s.Interaction.Drag = &Drag{ID: id, Origin: origin}
}

// MouseMove records the cursor and moves the dragged vertex locally.
// It reports whether the canvas needs a redraw.
func (s *State) MouseMove(p geometry.Point) bool {
	s.track(p)
	if d := s.Interaction.Drag; d != nil {
		if s.Graph.Move(d.ID, p) && p != d.Origin {
			d.Moved = true
		}
		return true
	}
	return s.Interaction.Mode == Connect && s.Interaction.Selected != ""
}

// MouseUp ends a drag. A drag that moved the vertex yields a CommitMove.
func (s *State) MouseUp(p geometry.Point) Intent {
	s.track(p)
	d := s.Interaction.Drag
	if d == nil {
		return nil
	}
	s.Interaction.Drag = nil
	s.Interaction.SuppressClick = true
	if !s.Graph.Move(d.ID, p) {
		return nil
	}
	if p != d.Origin {
		d.Moved = true
	}
	if !d.Moved {
		return nil
	}
	return CommitMove{ID: d.ID, To: p, Incident: s.Graph.IncidentEdges(d.ID)}
}

// Click handles a primary button click.
func (s *State) Click(p geometry.Point) Intent {
	s.track(p)
	if s.Interaction.SuppressClick {
		s.Interaction.SuppressClick = false
		return nil
	}
	hit, onVertex := s.nearest(p)

	if s.Interaction.Mode == Place {
		if onVertex {
			return nil
		}
		return CreateVertex{ID: s.Graph.NextAutoID(), At: p}
	}

	sel := s.Interaction.Selected
	switch {
	case !onVertex:
		s.Interaction.Selected = ""
		return nil
	case sel == "":
		s.Interaction.Selected = hit
		return nil
	case sel == hit:
		s.Interaction.Selected = ""
		return nil
	default:
		s.Interaction.Selected = ""
		return CreateEdge{From: sel, To: hit}
	}
}

// RightClick asks to delete the vertex under the pointer, in either mode.
func (s *State) RightClick(p geometry.Point) Intent {
	s.track(p)
	id, ok := s.nearest(p)
	if !ok {
		return nil
	}
	return ConfirmDelete{ID: id}
}

// DeleteKey asks to delete the selected vertex.
func (s *State) DeleteKey() Intent {
	if s.Interaction.Selected == "" {
		return nil
	}
	return ConfirmDelete{ID: s.Interaction.Selected}
}

// Hovered returns the vertex under the last cursor position.
func (s *State) Hovered() (string, bool) {
	if !s.Interaction.CursorKnown {
		return "", false
	}
	return s.nearest(s.Interaction.Cursor)
}

// CursorShape returns the pointer hint for the current mode and hover.
func (s *State) CursorShape() Cursor {
	_, over := s.Hovered()
	if s.Interaction.Drag != nil {
		over = true
	}
	if s.Interaction.Mode == Connect {
		if over {
			return CursorPointer
		}
		return CursorNotAllowed
	}
	if over {
		return CursorMove
	}
	return CursorCrosshair
}

// RubberBand describes the live connection line in connect mode.
type RubberBand struct {
	From, To geometry.Point
	// Target is set when the cursor is over a vertex other than the selection.
	Target string
}

// Band returns the rubber band line, if one should be drawn.
func (s *State) Band() (RubberBand, bool) {
	in := s.Interaction
	if in.Mode != Connect || in.Selected == "" || !in.CursorKnown {
		return RubberBand{}, false
	}
	from, ok := s.Graph.Vertex(in.Selected)
	if !ok {
		return RubberBand{}, false
	}
	b := RubberBand{From: from, To: in.Cursor}
	if id, ok := s.Hovered(); ok && id != in.Selected {
		b.Target = id
	}
	return b, true
}

// Hint is the canvas placeholder for an empty graph.
func (s *State) Hint() string {
	if s.Graph.Len() > 0 {
		return ""
	}
	if s.Interaction.Mode == Place {
		return "Click to add cut points"
	}
	return "Add points first"
}

// CanPlay reports whether the displayed path has a segment to animate.
func (s *State) CanPlay() bool {
	return len(s.Path) >= 2
}
