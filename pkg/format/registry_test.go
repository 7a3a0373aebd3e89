package format

import (
	"testing"

	"github.com/csln/csln/pkg/template"
)

func TestRegistryRegisterAndGet(t *testing.T) {
	reg := NewRegistry()
	if err := reg.Register(PlainRenderer{}); err != nil {
		t.Fatalf("Register: %v", err)
	}
	r, ok := reg.Get("plain")
	if !ok || r.Name() != "plain" {
		t.Fatalf("Get(plain) = %v, %v", r, ok)
	}
}

func TestRegistryRejectsDuplicate(t *testing.T) {
	reg := NewRegistry()
	_ = reg.Register(PlainRenderer{})
	if err := reg.Register(PlainRenderer{}); err == nil {
		t.Error("expected error registering duplicate renderer name")
	}
}

func TestRegistryListSorted(t *testing.T) {
	reg := Default(true)
	got := reg.List()
	want := []string{"djot", "html", "latex", "plain"}
	if len(got) != len(want) {
		t.Fatalf("List = %v", got)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("List[%d] = %q, want %q", i, got[i], want[i])
		}
	}
}

func TestPlainRenderDropsStyling(t *testing.T) {
	runs := []template.Run{{Text: "Kuhn", Emph: true}}
	if got := (PlainRenderer{}).Render(runs); got != "Kuhn" {
		t.Errorf("Render = %q", got)
	}
}

func TestHTMLRenderEmphasisAndLink(t *testing.T) {
	runs := []template.Run{
		{Text: "Structure", Emph: true},
		{Text: "doi", Link: "https://doi.org/10.1/x"},
	}
	got := (HTMLRenderer{}).Render(runs)
	want := `<i>Structure</i><a href="https://doi.org/10.1/x">doi</a>`
	if got != want {
		t.Errorf("Render = %q, want %q", got, want)
	}
}

func TestLaTeXRenderEmphasis(t *testing.T) {
	runs := []template.Run{{Text: "Structure", Emph: true}}
	got := (LaTeXRenderer{}).Render(runs)
	if got != `\textit{Structure}` {
		t.Errorf("Render = %q", got)
	}
}

func TestDjotRenderEmphasisAndStrong(t *testing.T) {
	runs := []template.Run{{Text: "Structure", Emph: true}, {Text: "Loud", Strong: true}}
	got := (DjotRenderer{}).Render(runs)
	if got != "_Structure_*Loud*" {
		t.Errorf("Render = %q", got)
	}
}

func TestPunctuationInQuoteReposition(t *testing.T) {
	runs := []template.Run{{Text: "“Quoted”."}}
	got := (PlainRenderer{}).Render(runs)
	if got != "“Quoted”." {
		t.Errorf("plain should not reposition: %q", got)
	}
	html := (HTMLRenderer{PunctuationInQuote: true}).Render(runs)
	want := "“Quoted.”"
	if html != want {
		t.Errorf("HTML reposition = %q, want %q", html, want)
	}
}
