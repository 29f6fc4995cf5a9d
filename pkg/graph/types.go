package graph

import (
	"github.com/recera/cutpath/pkg/geometry"
)

// Edge is an undirected connection between two vertices by id.
type Edge struct {
	From string
	To   string
}

// Touches reports whether id is one of the edge's endpoints.
func (e Edge) Touches(id string) bool {
	return e.From == id || e.To == id
}

// Connects reports whether the edge joins a and b, in either order.
func (e Edge) Connects(a, b string) bool {
	return (e.From == a && e.To == b) || (e.From == b && e.To == a)
}

// Status is the backend's readiness tuple for the current graph.
type Status struct {
	// Known is false when the backend did not send a status.
	Known   bool
	Ready   bool
	Message string
}

// Snapshot is a full vertex/edge set as returned by the backend.
type Snapshot struct {
	Vertices map[string]geometry.Point
	Edges    []Edge
	Status   Status
}

// Clone returns a deep copy of the snapshot.
func (s Snapshot) Clone() Snapshot {
	out := Snapshot{
		Vertices: make(map[string]geometry.Point, len(s.Vertices)),
		Edges:    append([]Edge(nil), s.Edges...),
		Status:   s.Status,
	}
	for id, p := range s.Vertices {
		out.Vertices[id] = p
	}
	return out
}

// HasEdge reports whether the snapshot contains an edge joining a and b.
func (s Snapshot) HasEdge(a, b string) bool {
	for _, e := range s.Edges {
		if e.Connects(a, b) {
			return true
		}
	}
	return false
}

// Translate returns a copy with every vertex moved by d.
func (s Snapshot) Translate(d geometry.Point) Snapshot {
	out := s.Clone()
	for id, p := range out.Vertices {
		out.Vertices[id] = p.Add(d)
	}
	return out
}
