package ui

import (
	"math"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/recera/cutpath/pkg/geometry"
	"github.com/recera/cutpath/pkg/render"
)

// cellStyle is the look of one painted cell.
type cellStyle struct {
	fg    string
	bg    string
	bold  bool
	faint bool
}

type cell struct {
	ch    rune
	style cellStyle
}

// raster is a character grid the scene is painted onto.
type raster struct {
	cols, rows int
	cw, ch     float64
	cells      [][]cell
}

func newRaster(cols, rows, cellWidth, cellHeight int) *raster {
	r := &raster{cols: cols, rows: rows, cw: float64(cellWidth), ch: float64(cellHeight)}
	r.cells = make([][]cell, rows)
	for i := range r.cells {
		r.cells[i] = make([]cell, cols)
		for j := range r.cells[i] {
			r.cells[i][j] = cell{ch: ' '}
		}
	}
	return r
}

func (r *raster) toCell(p geometry.Point) (col, row int) {
	return gridIndex(p.X/r.cw, r.cols), gridIndex(p.Y/r.ch, r.rows)
}

// gridIndex floors v into an int. Values far outside [0, n) are pinned to a
// margin so they stay off the grid without overflowing.
func gridIndex(v float64, n int) int {
	margin := float64(n + 256)
	switch {
	case math.IsNaN(v), v < -margin:
		return -int(margin)
	case v > margin:
		return int(margin)
	}
	return int(math.Floor(v))
}

// clip cuts a segment to the raster's pixel rectangle (Liang-Barsky). It
// reports false when no part of the segment is visible.
func (r *raster) clip(a, b geometry.Point) (geometry.Point, geometry.Point, bool) {
	dx, dy := b.X-a.X, b.Y-a.Y
	for _, v := range []float64{a.X, a.Y, dx, dy} {
		if math.IsNaN(v) || math.IsInf(v, 0) {
			return a, b, false
		}
	}
	w, h := float64(r.cols)*r.cw, float64(r.rows)*r.ch
	t0, t1 := 0.0, 1.0
	edges := [4][2]float64{
		{-dx, a.X},
		{dx, w - a.X},
		{-dy, a.Y},
		{dy, h - a.Y},
	}
	for _, e := range edges {
		p, q := e[0], e[1]
		if p == 0 {
			if q < 0 {
				return a, b, false
			}
			continue
		}
		t := q / p
		if p < 0 {
			t0 = max(t0, t)
		} else {
			t1 = min(t1, t)
		}
		if t0 > t1 {
			return a, b, false
		}
	}
	return a.Lerp(b, t0), a.Lerp(b, t1), true
}

func (r *raster) set(col, row int, ch rune, st cellStyle) {
	if col < 0 || row < 0 || col >= r.cols || row >= r.rows {
		return
	}
	r.cells[row][col] = cell{ch: ch, style: st}
}

func (r *raster) text(col, row int, s string, st cellStyle) {
	for i, ch := range []rune(s) {
		r.set(col+i, row, ch, st)
	}
}

// line draws a Bresenham line between two canvas points. Dashed lines skip
// every other cell.
func (r *raster) line(l render.Line, heavy bool) {
	from, to, ok := r.clip(l.From, l.To)
	if !ok {
		return
	}
	c0, r0 := r.toCell(from)
	c1, r1 := r.toCell(to)
	glyph := lineGlyph(c1-c0, r1-r0, heavy)
	st := cellStyle{fg: l.Color, bold: heavy}

	dx, dy := abs(c1-c0), -abs(r1-r0)
	sx, sy := 1, 1
	if c0 > c1 {
		sx = -1
	}
	if r0 > r1 {
		sy = -1
	}
	errAcc := dx + dy
	for i := 0; ; i++ {
		if l.Dash == nil || i%2 == 0 {
			r.set(c0, r0, glyph, st)
		}
		if c0 == c1 && r0 == r1 {
			return
		}
		e2 := 2 * errAcc
		if e2 >= dy {
			errAcc += dy
			c0 += sx
		}
		if e2 <= dx {
			errAcc += dx
			r0 += sy
		}
	}
}

func lineGlyph(dx, dy int, heavy bool) rune {
	switch {
	case abs(dy)*2 <= abs(dx):
		if heavy {
			return '━'
		}
		return '─'
	case abs(dx)*2 <= abs(dy):
		if heavy {
			return '┃'
		}
		return '│'
	case (dx > 0) == (dy > 0):
		return '╲'
	default:
		return '╱'
	}
}

func abs(v int) int {
	if v < 0 {
		return -v
	}
	return v
}

// paint rasterizes a scene in its drawing order.
func (r *raster) paint(sc render.Scene) {
	for _, e := range sc.Edges {
		r.line(e, false)
	}
	if sc.Band != nil {
		r.line(*sc.Band, false)
	}
	if sc.Target != nil {
		c, row := r.toCell(sc.Target.Center)
		st := cellStyle{fg: sc.Target.Color, bold: true}
		r.set(c-1, row, '(', st)
		r.set(c+1, row, ')', st)
	}
	for _, seg := range sc.Path {
		if seg.Progress <= 0 {
			continue
		}
		r.line(seg.Line, true)
	}
	for _, seg := range sc.Path {
		if seg.Badge == nil {
			continue
		}
		c, row := r.toCell(seg.Badge.Center)
		label := " " + seg.Badge.Label + " "
		st := cellStyle{fg: render.BadgeStroke, bg: render.BadgeFill, bold: true, faint: seg.Badge.Opacity < 1}
		r.text(c-len(label)/2, row, label, st)
	}
	for _, v := range sc.Vertices {
		c, row := r.toCell(v.Center)
		glyph := '●'
		if v.Fill == render.SelectedColor {
			glyph = '◉'
		}
		r.set(c, row, glyph, cellStyle{fg: v.Fill, bold: true})
		lc, lr := r.toCell(v.LabelAt)
		r.text(lc-len([]rune(v.ID))/2, lr, v.ID, cellStyle{fg: v.Stroke, bold: true})
	}
	if sc.Hint != "" {
		r.text((r.cols-len(sc.Hint))/2, r.rows/2, sc.Hint, cellStyle{fg: string(mutedColor)})
	}
}

// String renders the grid with lipgloss, one style per run of equal cells.
func (r *raster) String() string {
	styles := make(map[cellStyle]lipgloss.Style)
	styleFor := func(st cellStyle) lipgloss.Style {
		if s, ok := styles[st]; ok {
			return s
		}
		s := lipgloss.NewStyle().Bold(st.bold).Faint(st.faint)
		if st.fg != "" {
			s = s.Foreground(lipgloss.Color(st.fg))
		}
		if st.bg != "" {
			s = s.Background(lipgloss.Color(st.bg))
		}
		styles[st] = s
		return s
	}

	var b strings.Builder
	for i, row := range r.cells {
		if i > 0 {
			b.WriteByte('\n')
		}
		start := 0
		for j := 1; j <= len(row); j++ {
			if j < len(row) && row[j].style == row[start].style {
				continue
			}
			var run strings.Builder
			for _, c := range row[start:j] {
				run.WriteRune(c.ch)
			}
			if row[start].style == (cellStyle{}) {
				b.WriteString(run.String())
			} else {
				b.WriteString(styleFor(row[start].style).Render(run.String()))
			}
			start = j
		}
	}
	return b.String()
}
