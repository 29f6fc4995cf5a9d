package animation

import (
	"testing"
	"time"
)

func TestManualClock_FiresInOrder(t *testing.T) {
	c := NewManualClock(epoch, 10*time.Millisecond)
	var order []string
	c.Every(25*time.Millisecond, func() { order = append(order, "tick") })
	c.NextFrame(func() { order = append(order, "frame") })

	c.Advance(50 * time.Millisecond)
	want := []string{"frame", "tick", "tick"}
	if len(order) != len(want) {
		t.Fatalf("order = %v, want %v", order, want)
	}
	for i := range want {
		if order[i] != want[i] {
			t.Fatalf("order = %v, want %v", order, want)
		}
	}
	if !c.Now().Equal(epoch.Add(50 * time.Millisecond)) {
		t.Errorf("now = %v", c.Now())
	}
}
