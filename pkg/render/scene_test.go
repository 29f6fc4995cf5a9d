package render

import (
	"testing"
	"time"

	"github.com/recera/cutpath/pkg/animation"
	"github.com/recera/cutpath/pkg/api"
	"github.com/recera/cutpath/pkg/editor"
	"github.com/recera/cutpath/pkg/geometry"
	"github.com/recera/cutpath/pkg/graph"
)

func session(t *testing.T) (*editor.State, *animation.ManualClock) {
	t.Helper()
	clock := animation.NewManualClock(time.Unix(0, 0), 16*time.Millisecond)
	s := editor.New(animation.New(clock, animation.Options{}), 0)
	s.ReplaceGraph(graph.Snapshot{
		Vertices: map[string]geometry.Point{
			"A": geometry.Pt(0, 0),
			"B": geometry.Pt(100, 0),
			"C": geometry.Pt(100, 100),
		},
		Edges: []graph.Edge{{From: "A", To: "B"}, {From: "B", To: "C"}, {From: "C", To: "A"}},
	})
	return s, clock
}

func TestBuild_EdgesAndVertices(t *testing.T) {
	s, _ := session(t)
	sc := Build(s)
	if len(sc.Edges) != 3 {
		t.Fatalf("edges = %d, want 3", len(sc.Edges))
	}
	for _, e := range sc.Edges {
		if e.Color != EdgeColor || e.Dash == nil {
			t.Errorf("edge style = %+v", e)
		}
	}
	if len(sc.Vertices) != 3 || sc.Vertices[0].ID != "A" {
		t.Fatalf("vertices = %+v", sc.Vertices)
	}
	v := sc.Vertices[0]
	if v.Fill != VertexColor || v.LabelAt != geometry.Pt(0, -12) {
		t.Errorf("vertex A = %+v", v)
	}
	if sc.Band != nil || sc.Path != nil || sc.Hint != "" {
		t.Error("unexpected band, path or hint")
	}
}

func TestBuild_SelectionAndBand(t *testing.T) {
	s, _ := session(t)
	s.SetMode(editor.Connect)
	s.Click(geometry.Pt(0, 0))
	s.MouseMove(geometry.Pt(98, 2))

	sc := Build(s)
	if sc.Band == nil || sc.Band.From != geometry.Pt(0, 0) || sc.Band.To != geometry.Pt(98, 2) {
		t.Fatalf("band = %+v", sc.Band)
	}
	if sc.Target == nil || sc.Target.Center != geometry.Pt(100, 0) || sc.Target.Radius != TargetRingRadius {
		t.Errorf("target = %+v", sc.Target)
	}
	if sc.Vertices[0].Fill != SelectedColor || sc.Vertices[0].Radius != 12 {
		t.Errorf("selected vertex = %+v", sc.Vertices[0])
	}
}

func TestBuild_StaticPathIsFullyDrawn(t *testing.T) {
	s, _ := session(t)
	s.PathOptimized(&api.Result{Cycle: []string{"A", "B", "C", "A"}})

	sc := Build(s)
	if len(sc.Path) != 3 {
		t.Fatalf("segments = %d, want 3", len(sc.Path))
	}
	for i, seg := range sc.Path {
		if seg.Progress != 1 || seg.Line.Width != 4 || seg.Badge == nil || seg.Badge.Opacity != 1 {
			t.Errorf("segment %d = %+v", i, seg)
		}
	}
	if sc.Path[1].Badge.Label != "N2" || sc.Path[1].Badge.Center != geometry.Pt(100, 50) {
		t.Errorf("badge = %+v", sc.Path[1].Badge)
	}
	if sc.Vertices[0].Fill != StartColor {
		t.Errorf("path start should be highlighted, got %+v", sc.Vertices[0])
	}
}

func TestBuild_AnimatingPathDrawsUpToStep(t *testing.T) {
	s, clock := session(t)
	s.PathOptimized(&api.Result{Cycle: []string{"A", "B", "C", "A"}})
	s.Animation.Start()

	if sc := Build(s); len(sc.Path) != 0 {
		t.Fatalf("nothing should be drawn before the first step, got %d", len(sc.Path))
	}

	// First segment starts at 800ms; 1040 is a frame boundary, 240ms in.
	clock.Advance(1040 * time.Millisecond)
	sc := Build(s)
	if len(sc.Path) != 1 {
		t.Fatalf("segments = %d, want 1", len(sc.Path))
	}
	seg := sc.Path[0]
	if seg.Line.Width != 5 {
		t.Errorf("width = %v, want 5 while animating", seg.Line.Width)
	}
	if seg.Badge != nil {
		t.Errorf("badge shown at progress %v", seg.Progress)
	}
	if seg.Line.To.X <= 0 || seg.Line.To.X >= 100 {
		t.Errorf("segment end = %v, want partway along", seg.Line.To)
	}

	// 1200ms is 400ms in: progress 2/3, badge at opacity 1.
	clock.Advance(160 * time.Millisecond)
	seg = Build(s).Path[0]
	if seg.Badge == nil || seg.Badge.Opacity != 1 {
		t.Errorf("badge = %+v at progress %v", seg.Badge, seg.Progress)
	}
}

func TestBuild_HintOnEmptyGraph(t *testing.T) {
	clock := animation.NewManualClock(time.Unix(0, 0), 0)
	s := editor.New(animation.New(clock, animation.Options{}), 0)
	if got := Build(s).Hint; got != "Click to add cut points" {
		t.Errorf("hint = %q", got)
	}
}
