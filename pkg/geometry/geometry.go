// Package geometry holds the canvas-space math shared by the editor and the
// renderer: points, distances and nearest-vertex hit testing.
package geometry

import (
	"math"
	"sort"
)

// Point is a position in canvas pixel space.
type Point struct {
	X float64
	Y float64
}

// Pt is shorthand for Point{X: x, Y: y}.
func Pt(x, y float64) Point {
	return Point{X: x, Y: y}
}

// Distance returns the Euclidean distance between p and q.
func (p Point) Distance(q Point) float64 {
	return math.Hypot(p.X-q.X, p.Y-q.Y)
}

// Lerp returns the point a fraction t of the way from p to q.
func (p Point) Lerp(q Point, t float64) Point {
	return Point{X: p.X + (q.X-p.X)*t, Y: p.Y + (q.Y-p.Y)*t}
}

// Mid returns the midpoint of p and q.
func (p Point) Mid(q Point) Point {
	return p.Lerp(q, 0.5)
}

// Add translates p by d.
func (p Point) Add(d Point) Point {
	return Point{X: p.X + d.X, Y: p.Y + d.Y}
}

// Sub returns p - q.
func (p Point) Sub(q Point) Point {
	return Point{X: p.X - q.X, Y: p.Y - q.Y}
}

// FindNearest returns the id of the point closest to at whose distance is
// strictly less than radius. Ids are scanned in ascending order and only a
// strictly smaller distance replaces the current best, so equidistant
// candidates resolve to the lowest id.
func FindNearest(points map[string]Point, at Point, radius float64) (string, bool) {
	if len(points) == 0 {
		return "", false
	}
	ids := make([]string, 0, len(points))
	for id := range points {
		ids = append(ids, id)
	}
	sort.Strings(ids)

	best := ""
	bestDist := math.Inf(1)
	for _, id := range ids {
		d := points[id].Distance(at)
		if d < radius && d < bestDist {
			best = id
			bestDist = d
		}
	}
	return best, best != ""
}
