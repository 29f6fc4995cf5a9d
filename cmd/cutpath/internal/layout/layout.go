// Package layout reads graph layouts from YAML files.
//
//	vertices:
//	  A: {x: 100, y: 100}
//	  B: {x: 300, y: 100}
//	edges:
//	  - [A, B]
package layout

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/recera/cutpath/pkg/geometry"
	"github.com/recera/cutpath/pkg/graph"
)

// File is the YAML document.
type File struct {
	Vertices map[string]Point `yaml:"vertices"`
	Edges    [][]string       `yaml:"edges"`
}

// Point is a vertex position.
type Point struct {
	X float64 `yaml:"x"`
	Y float64 `yaml:"y"`
}

// Load reads and validates a layout file.
func Load(path string) (graph.Snapshot, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return graph.Snapshot{}, err
	}
	return Parse(data)
}

// Parse decodes and validates a layout document.
func Parse(data []byte) (graph.Snapshot, error) {
	var f File
	if err := yaml.Unmarshal(data, &f); err != nil {
		return graph.Snapshot{}, fmt.Errorf("parse layout: %w", err)
	}
	return f.Snapshot()
}

// Snapshot converts the document into a graph snapshot.
func (f File) Snapshot() (graph.Snapshot, error) {
	snap := graph.Snapshot{Vertices: make(map[string]geometry.Point, len(f.Vertices))}
	for id, p := range f.Vertices {
		if id == "" {
			return graph.Snapshot{}, fmt.Errorf("layout: vertex with empty name")
		}
		snap.Vertices[id] = geometry.Pt(p.X, p.Y)
	}
	for i, e := range f.Edges {
		if len(e) != 2 {
			return graph.Snapshot{}, fmt.Errorf("layout: edge %d: want [from, to], got %d names", i+1, len(e))
		}
		if e[0] == e[1] {
			return graph.Snapshot{}, fmt.Errorf("layout: edge %d joins %q to itself", i+1, e[0])
		}
		for _, id := range e {
			if _, ok := snap.Vertices[id]; !ok {
				return graph.Snapshot{}, fmt.Errorf("layout: edge %d: unknown vertex %q", i+1, id)
			}
		}
		snap.Edges = append(snap.Edges, graph.Edge{From: e[0], To: e[1]})
	}
	return snap, nil
}

// Encode writes a snapshot as a layout document.
func Encode(snap graph.Snapshot) ([]byte, error) {
	f := File{Vertices: make(map[string]Point, len(snap.Vertices))}
	for id, p := range snap.Vertices {
		f.Vertices[id] = Point{X: p.X, Y: p.Y}
	}
	for _, e := range snap.Edges {
		f.Edges = append(f.Edges, []string{e.From, e.To})
	}
	return yaml.Marshal(f)
}
