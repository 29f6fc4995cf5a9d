// Package graph mirrors the backend's canonical vertex/edge set.
//
// The Store is replaced wholesale from server snapshots. The only local
// mutation it allows is Move, the optimistic position update used while a
// vertex is being dragged.
package graph

import (
	"fmt"
	"log"
	"sort"

	"github.com/recera/cutpath/pkg/geometry"
)

// Store is the in-memory copy of the last canonical snapshot.
type Store struct {
	vertices map[string]geometry.Point
	edges    []Edge
	status   Status
}

// NewStore creates an empty store.
func NewStore() *Store {
	return &Store{vertices: make(map[string]geometry.Point)}
}

// Replace discards the current contents and adopts snap. Edges whose
// endpoints are not in the snapshot are dropped.
func (s *Store) Replace(snap Snapshot) {
	vertices := make(map[string]geometry.Point, len(snap.Vertices))
	for id, p := range snap.Vertices {
		vertices[id] = p
	}
	edges := make([]Edge, 0, len(snap.Edges))
	for _, e := range snap.Edges {
		if _, ok := vertices[e.From]; !ok {
			log.Printf("[graph] dropping edge %s-%s: unknown vertex %q", e.From, e.To, e.From)
			continue
		}
		if _, ok := vertices[e.To]; !ok {
			log.Printf("[graph] dropping edge %s-%s: unknown vertex %q", e.From, e.To, e.To)
			continue
		}
		edges = append(edges, e)
	}
	s.vertices = vertices
	s.edges = edges
	s.status = snap.Status
}

// Reset empties the store.
func (s *Store) Reset() {
	s.vertices = make(map[string]geometry.Point)
	s.edges = nil
	s.status = Status{}
}

// Len returns the number of vertices.
func (s *Store) Len() int {
	return len(s.vertices)
}

// EdgeCount returns the number of edges.
func (s *Store) EdgeCount() int {
	return len(s.edges)
}

// Has reports whether the vertex exists.
func (s *Store) Has(id string) bool {
	_, ok := s.vertices[id]
	return ok
}

// Vertex returns the position of a vertex.
func (s *Store) Vertex(id string) (geometry.Point, bool) {
	p, ok := s.vertices[id]
	return p, ok
}

// IDs returns the vertex ids in ascending order.
func (s *Store) IDs() []string {
	ids := make([]string, 0, len(s.vertices))
	for id := range s.vertices {
		ids = append(ids, id)
	}
	sort.Strings(ids)
	return ids
}

// Points returns a copy of the id to position map.
func (s *Store) Points() map[string]geometry.Point {
	out := make(map[string]geometry.Point, len(s.vertices))
	for id, p := range s.vertices {
		out[id] = p
	}
	return out
}

// Edges returns a copy of the edge list.
func (s *Store) Edges() []Edge {
	return append([]Edge(nil), s.edges...)
}

// IncidentEdges returns every edge touching id, keeping duplicates.
func (s *Store) IncidentEdges(id string) []Edge {
	var out []Edge
	for _, e := range s.edges {
		if e.Touches(id) {
			out = append(out, e)
		}
	}
	return out
}

// HasEdge reports whether an edge joins a and b in either order.
func (s *Store) HasEdge(a, b string) bool {
	for _, e := range s.edges {
		if e.Connects(a, b) {
			return true
		}
	}
	return false
}

// Status returns the readiness tuple of the last snapshot.
func (s *Store) Status() Status {
	return s.status
}

// Move updates a vertex position locally. It returns false if the vertex
// does not exist.
func (s *Store) Move(id string, p geometry.Point) bool {
	if _, ok := s.vertices[id]; !ok {
		return false
	}
	s.vertices[id] = p
	return true
}

// NextAutoID returns the identifier for a vertex created without a name:
// P<n+1> for n vertices, advanced past any id already in use.
func (s *Store) NextAutoID() string {
	for k := len(s.vertices) + 1; ; k++ {
		id := fmt.Sprintf("P%d", k)
		if _, taken := s.vertices[id]; !taken {
			return id
		}
	}
}

// Snapshot returns a deep copy of the current contents.
func (s *Store) Snapshot() Snapshot {
	return Snapshot{
		Vertices: s.Points(),
		Edges:    s.Edges(),
		Status:   s.status,
	}
}
