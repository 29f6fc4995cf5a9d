package ui

import (
	"strings"
	"testing"

	"github.com/recera/cutpath/pkg/geometry"
	"github.com/recera/cutpath/pkg/render"
)

func rows(r *raster) []string {
	out := make([]string, r.rows)
	for i, row := range r.cells {
		var b strings.Builder
		for _, c := range row {
			b.WriteRune(c.ch)
		}
		out[i] = b.String()
	}
	return out
}

func TestRaster_SolidAndDashedLines(t *testing.T) {
	r := newRaster(10, 3, 6, 12)
	r.line(render.Line{From: geometry.Pt(3, 6), To: geometry.Pt(57, 6)}, false)
	r.line(render.Line{From: geometry.Pt(3, 30), To: geometry.Pt(57, 30), Dash: []float64{5, 5}}, true)

	got := rows(r)
	if got[0] != "──────────" {
		t.Errorf("solid = %q", got[0])
	}
	if got[2] != "━ ━ ━ ━ ━ " {
		t.Errorf("dashed = %q", got[2])
	}
}

func TestRaster_DiagonalGlyphs(t *testing.T) {
	if g := lineGlyph(3, 3, false); g != '╲' {
		t.Errorf("down-right = %q", g)
	}
	if g := lineGlyph(3, -3, false); g != '╱' {
		t.Errorf("up-right = %q", g)
	}
	if g := lineGlyph(0, 5, true); g != '┃' {
		t.Errorf("vertical heavy = %q", g)
	}
}

func TestRaster_VertexLabelAboveDot(t *testing.T) {
	r := newRaster(10, 4, 6, 12)
	r.paint(render.Scene{Vertices: []render.Vertex{{
		ID:      "A",
		Center:  geometry.Pt(27, 30),
		Fill:    render.VertexColor,
		Stroke:  render.VertexStroke,
		LabelAt: geometry.Pt(27, 18),
	}}})
	got := rows(r)
	if []rune(got[2])[4] != '●' {
		t.Errorf("dot row = %q", got[2])
	}
	if []rune(got[1])[4] != 'A' {
		t.Errorf("label row = %q", got[1])
	}
	if !strings.Contains(r.String(), "●") {
		t.Error("rendered grid lost the dot")
	}
}

func TestRaster_FarEndpointIsClipped(t *testing.T) {
	r := newRaster(10, 3, 6, 12)
	r.line(render.Line{From: geometry.Pt(3, 6), To: geometry.Pt(3e9, 6)}, false)
	if got := rows(r)[0]; got != "──────────" {
		t.Errorf("clipped line = %q", got)
	}

	r.line(render.Line{From: geometry.Pt(3, 18), To: geometry.Pt(1e300, 18)}, false)
	if got := rows(r)[1]; got != "──────────" {
		t.Errorf("line to a huge coordinate = %q", got)
	}

	r = newRaster(10, 3, 6, 12)
	r.line(render.Line{From: geometry.Pt(-1e9, 30), To: geometry.Pt(1e9, 30)}, false)
	if got := rows(r)[2]; got != "──────────" {
		t.Errorf("line crossing the whole grid = %q", got)
	}
}

func TestRaster_LineOutsideGridDrawsNothing(t *testing.T) {
	r := newRaster(10, 3, 6, 12)
	r.line(render.Line{From: geometry.Pt(3, -50), To: geometry.Pt(3e9, -50)}, false)
	r.line(render.Line{From: geometry.Pt(100, 10), To: geometry.Pt(5e18, 20)}, false)
	for i, row := range rows(r) {
		if strings.TrimSpace(row) != "" {
			t.Errorf("row %d = %q, want blank", i, row)
		}
	}
}

func TestGridIndex_PinsFarValues(t *testing.T) {
	if got := gridIndex(1e300, 10); got < 10 {
		t.Errorf("far right = %d", got)
	}
	if got := gridIndex(-1e300, 10); got >= 0 {
		t.Errorf("far left = %d", got)
	}
	if got := gridIndex(3.7, 10); got != 3 {
		t.Errorf("floor = %d", got)
	}
}
