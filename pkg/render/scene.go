// Package render turns a session into an ordered list of draw operations.
// Build is pure; painting the operations is left to the caller.
package render

import (
	"fmt"
	"sort"

	"github.com/recera/cutpath/pkg/editor"
	"github.com/recera/cutpath/pkg/geometry"
)

// Palette.
const (
	EdgeColor          = "#9ca3af"
	BandColor          = "#3b82f6"
	PathColor          = "#ef4444"
	VertexColor        = "#2563eb"
	VertexStroke       = "#1e40af"
	SelectedColor      = "#ef4444"
	SelectedStroke     = "#dc2626"
	StartColor         = "#10b981"
	StartStroke        = "#059669"
	LabelColor         = "#1f2937"
	BadgeFill          = "#ffffff"
	BadgeStroke        = "#000000"
	TargetRingRadius   = 10
	BadgeRadius        = 18
	BadgeMinProgress   = 0.5
	labelGap           = 4
	vertexSize         = 8
	selectedVertexSize = 12
	startVertexSize    = 10
)

// Line is a stroked segment.
type Line struct {
	From, To geometry.Point
	Color    string
	Width    float64
	// Dash is the on/off pattern; nil draws a solid line.
	Dash []float64
}

// Ring is an unfilled circle.
type Ring struct {
	Center geometry.Point
	Radius float64
	Color  string
	Width  float64
}

// Badge is the step number drawn over a path segment.
type Badge struct {
	Center  geometry.Point
	Label   string
	Opacity float64
}

// Segment is one drawn piece of the optimized path.
type Segment struct {
	Index    int
	Line     Line
	Progress float64
	Badge    *Badge
}

// Vertex is a filled circle with a ring and a label above it.
type Vertex struct {
	ID      string
	Center  geometry.Point
	Radius  float64
	Fill    string
	Stroke  string
	LabelAt geometry.Point
}

// Scene is everything to paint, in painting order.
type Scene struct {
	Edges    []Line
	Band     *Line
	Target   *Ring
	Path     []Segment
	Vertices []Vertex
	Hint     string
}

// Build renders the current session state.
func Build(s *editor.State) Scene {
	var sc Scene
	pts := s.Graph.Points()

	for _, e := range s.Graph.Edges() {
		a, okA := pts[e.From]
		b, okB := pts[e.To]
		if !okA || !okB {
			continue
		}
		sc.Edges = append(sc.Edges, Line{From: a, To: b, Color: EdgeColor, Width: 2, Dash: []float64{5, 5}})
	}

	if band, ok := s.Band(); ok {
		sc.Band = &Line{From: band.From, To: band.To, Color: BandColor, Width: 2, Dash: []float64{3, 3}}
		if band.Target != "" {
			sc.Target = &Ring{Center: pts[band.Target], Radius: TargetRingRadius, Color: BandColor, Width: 2}
		}
	}

	sc.Path = pathSegments(s, pts)

	var start string
	if len(s.Path) > 0 {
		start = s.Path[0]
	}
	ids := make([]string, 0, len(pts))
	for id := range pts {
		ids = append(ids, id)
	}
	sort.Strings(ids)
	for _, id := range ids {
		v := Vertex{ID: id, Center: pts[id], Radius: vertexSize, Fill: VertexColor, Stroke: VertexStroke}
		switch id {
		case s.Interaction.Selected:
			v.Radius, v.Fill, v.Stroke = selectedVertexSize, SelectedColor, SelectedStroke
		case start:
			v.Radius, v.Fill, v.Stroke = startVertexSize, StartColor, StartStroke
		}
		v.LabelAt = geometry.Pt(v.Center.X, v.Center.Y-v.Radius-labelGap)
		sc.Vertices = append(sc.Vertices, v)
	}

	sc.Hint = s.Hint()
	return sc
}

func pathSegments(s *editor.State, pts map[string]geometry.Point) []Segment {
	if len(s.Path) < 2 {
		return nil
	}
	frame := s.Animation.Frame()
	width := 4.0
	if frame.Playing {
		width = 5
	}
	visible := min(frame.Visible(), len(s.Path)-1)

	var out []Segment
	for i := 0; i < visible; i++ {
		a, okA := pts[s.Path[i]]
		b, okB := pts[s.Path[i+1]]
		if !okA || !okB {
			continue
		}
		p := frame.ProgressOf(i)
		seg := Segment{
			Index:    i,
			Progress: p,
			Line:     Line{From: a, To: a.Lerp(b, p), Color: PathColor, Width: width},
		}
		if p >= BadgeMinProgress {
			seg.Badge = &Badge{Center: a.Mid(b), Label: fmt.Sprintf("N%d", i+1), Opacity: min(p*2, 1)}
		}
		out = append(out, seg)
	}
	return out
}
