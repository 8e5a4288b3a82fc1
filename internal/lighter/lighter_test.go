package lighter

import (
	"testing"

	"github.com/dshills/overkey/internal/input/overlay"
)

func registryWithActive(t *testing.T, tag string) *overlay.Registry {
	t.Helper()
	reg := overlay.NewRegistry(8)
	o := reg.Allocate()
	if err := reg.Register(o, tag); err != nil {
		t.Fatalf("Register() error = %v", err)
	}
	if err := reg.SetActiveState(o, true); err != nil {
		t.Fatalf("SetActiveState() error = %v", err)
	}
	return reg
}

func TestRenderEmptyWhenNothingActive(t *testing.T) {
	reg := overlay.NewRegistry(8)
	for _, style := range []Style{StyleNumber, StyleTag, StyleSimple, StyleStatic, StyleCustom} {
		if got := New(style).Render(reg); got != "" {
			t.Errorf("style %s = %q, want empty", style, got)
		}
	}
}

func TestRenderStyles(t *testing.T) {
	tests := []struct {
		name  string
		tag   string
		setup func(*Lighter)
		style Style
		want  string
	}{
		{"number", "", nil, StyleNumber, "[1]"},
		{"tag", "py", nil, StyleTag, "[py]"},
		{"tag falls back to number", "", nil, StyleTag, "[1]"},
		{"simple", "", nil, StyleSimple, "[ov]"},
		{"static", "", func(l *Lighter) { l.SetStatic("OVL") }, StyleStatic, "OVL"},
		{"custom", "", func(l *Lighter) {
			l.SetCustom(func(*overlay.Registry) string { return "<c>" })
		}, StyleCustom, "<c>"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			reg := registryWithActive(t, tt.tag)
			l := New(tt.style)
			if tt.setup != nil {
				tt.setup(l)
			}
			if got := l.Render(reg); got != tt.want {
				t.Errorf("Render() = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestRenderSkipsInactiveFront(t *testing.T) {
	reg := overlay.NewRegistry(8)
	lower := reg.Allocate()
	if err := reg.Register(lower, "py"); err != nil {
		t.Fatalf("Register() error = %v", err)
	}
	if err := reg.SetActiveState(lower, true); err != nil {
		t.Fatalf("SetActiveState() error = %v", err)
	}
	front := reg.Allocate()
	if err := reg.Register(front, "js"); err != nil {
		t.Fatalf("Register() error = %v", err)
	}

	// The front overlay is inactive; the indicator must name the
	// overlay dispatch would consult, not the front.
	if got := New(StyleNumber).Render(reg); got != "[1]" {
		t.Errorf("number = %q, want %q", got, "[1]")
	}
	if got := New(StyleTag).Render(reg); got != "[py]" {
		t.Errorf("tag = %q, want %q", got, "[py]")
	}
}

func TestValidStyle(t *testing.T) {
	if !ValidStyle("number") || !ValidStyle("custom") {
		t.Error("known styles reported invalid")
	}
	if ValidStyle("sparkly") {
		t.Error("unknown style reported valid")
	}
}
