package prompt

import (
	"bytes"
	"strings"
	"testing"
)

func TestPrompter_Confirm(t *testing.T) {
	cases := []struct {
		in         string
		defaultYes bool
		want       bool
	}{
		{"y\n", false, true},
		{"YES\n", false, true},
		{"n\n", true, false},
		{"\n", true, true},
		{"", false, false},
		{"maybe\n", true, false},
	}
	for _, c := range cases {
		var out bytes.Buffer
		p := NewWith(strings.NewReader(c.in), &out)
		if got := p.Confirm("Clear everything?", c.defaultYes); got != c.want {
			t.Errorf("Confirm(%q, %v) = %v, want %v", c.in, c.defaultYes, got, c.want)
		}
		if !strings.HasPrefix(out.String(), "Clear everything?") {
			t.Errorf("prompt not written: %q", out.String())
		}
	}
}

func TestPrompter_Text(t *testing.T) {
	p := NewWith(strings.NewReader("\n250\n"), &bytes.Buffer{})
	if got := p.Text("Speed", "100"); got != "100" {
		t.Errorf("blank input = %q, want default", got)
	}
	if got := p.Text("Speed", "100"); got != "250" {
		t.Errorf("input = %q, want 250", got)
	}
}

func TestPrompter_Select(t *testing.T) {
	opts := []string{"retangular", "estrela", "grade"}
	p := NewWith(strings.NewReader("2\nGRADE\nbogus\n"), &bytes.Buffer{})
	if got := p.Select("Example", opts, 0); got != 1 {
		t.Errorf("by number = %d, want 1", got)
	}
	if got := p.Select("Example", opts, 0); got != 2 {
		t.Errorf("by name = %d, want 2", got)
	}
	if got := p.Select("Example", opts, 0); got != 0 {
		t.Errorf("invalid = %d, want default", got)
	}
}
