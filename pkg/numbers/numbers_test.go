package numbers

import (
	"testing"

	"github.com/csln/csln/pkg/locale"
	"github.com/csln/csln/pkg/style"
)

func TestRenderLabeledPluralizesForRange(t *testing.T) {
	r := NewRenderer(locale.BuiltinEnUS())
	if got := r.RenderLabeled("3-5", "page"); got != "pp. 3-5" {
		t.Errorf("RenderLabeled(range) = %q", got)
	}
	if got := r.RenderLabeled("3", "page"); got != "p. 3" {
		t.Errorf("RenderLabeled(single) = %q", got)
	}
}

func TestStripPeriods(t *testing.T) {
	if got := StripPeriods("pp. 3-5", true); got != "pp 3-5" {
		t.Errorf("StripPeriods = %q", got)
	}
	if got := StripPeriods("pp. 3-5", false); got != "pp. 3-5" {
		t.Errorf("StripPeriods(false) = %q", got)
	}
}

func TestRenderPageRangeExpanded(t *testing.T) {
	r := NewRenderer(locale.BuiltinEnUS())
	got := r.RenderPageRange("1103-1110", style.PageRangeExpanded)
	if got != "1103-1110" {
		t.Errorf("expanded = %q", got)
	}
}

func TestRenderPageRangeMinimal(t *testing.T) {
	r := NewRenderer(locale.BuiltinEnUS())
	got := r.RenderPageRange("1103-1110", style.PageRangeMinimal)
	if got != "1103-10" {
		t.Errorf("minimal = %q, want 1103-10", got)
	}
}

func TestRenderPageRangeChicago(t *testing.T) {
	r := NewRenderer(locale.BuiltinEnUS())
	cases := map[string]string{
		"3-10":       "3-10",
		"100-104":    "100-104",
		"1103-1110":  "1103-10",
		"1100-1113":  "1100-1113",
	}
	for in, want := range cases {
		got := r.RenderPageRange(in, style.PageRangeChicago)
		if got != want {
			t.Errorf("chicago(%q) = %q, want %q", in, got, want)
		}
	}
}

func TestRenderPageRangeNonNumericPassesThrough(t *testing.T) {
	r := NewRenderer(locale.BuiltinEnUS())
	if got := r.RenderPageRange("iv-vii", style.PageRangeExpanded); got != "iv-vii" {
		t.Errorf("non-numeric = %q", got)
	}
}
