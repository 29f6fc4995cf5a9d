package editor

import (
	"github.com/recera/cutpath/pkg/api"
	"github.com/recera/cutpath/pkg/graph"
)

// ReplaceGraph installs a canonical snapshot. A selection or drag naming a
// vertex the snapshot no longer has is dropped.
func (s *State) ReplaceGraph(snap graph.Snapshot) {
	s.Graph.Replace(snap)
	if sel := s.Interaction.Selected; sel != "" && !s.Graph.Has(sel) {
		s.Interaction.Selected = ""
	}
	if d := s.Interaction.Drag; d != nil {
		if !s.Graph.Has(d.ID) {
			s.Interaction.Drag = nil
		} else if d.Moved {
			s.Graph.Move(d.ID, s.Interaction.Cursor)
		}
	}
}

// VertexDeleted installs the snapshot returned by a delete. The displayed
// path may name the vertex, so it is discarded along with the selection.
func (s *State) VertexDeleted(snap graph.Snapshot) {
	s.ReplaceGraph(snap)
	s.Interaction.Selected = ""
	s.ClearPath()
}

// PathOptimized displays a new optimized path and resets playback.
func (s *State) PathOptimized(res *api.Result) {
	s.Result = res
	s.Path = append([]string(nil), res.Cycle...)
	s.Animation.Load(len(s.Path))
}

// ClearPath drops the displayed path and cancels playback.
func (s *State) ClearPath() {
	s.Path = nil
	s.Result = nil
	s.Animation.Reset()
}

// Cleared resets everything but the mode after a project clear.
func (s *State) Cleared() {
	s.Animation.Stop()
	s.Graph.Reset()
	mode := s.Interaction.Mode
	s.Interaction = Interaction{Mode: mode}
	s.ClearPath()
}

// Replaced installs the graph of a loaded example or imported layout.
func (s *State) Replaced(snap graph.Snapshot) {
	s.ReplaceGraph(snap)
	s.Interaction.Selected = ""
	s.Interaction.Drag = nil
	s.ClearPath()
}
