package names

import (
	"testing"

	"github.com/csln/csln/pkg/locale"
	"github.com/csln/csln/pkg/reference"
	"github.com/csln/csln/pkg/style"
)

func structured(family, given string) reference.Contributor {
	return reference.NewStructuredContributor(reference.StructuredName{
		Family: reference.NamePart{Plain: family},
		Given:  reference.NamePart{Plain: given},
	})
}

func TestRenderShortList(t *testing.T) {
	r := NewRenderer(locale.BuiltinEnUS(), style.ContributorsOptions{Conjunction: "and"}, reference.ModePrimary)
	list := []reference.Contributor{structured("Kuhn", "Thomas")}
	got := r.Render(list, style.NameFormLong, false, 0, 0)
	if got != "Thomas Kuhn" {
		t.Errorf("Render = %q, want 'Thomas Kuhn'", got)
	}
}

func TestRenderTwoNamesWithConjunction(t *testing.T) {
	r := NewRenderer(locale.BuiltinEnUS(), style.ContributorsOptions{Conjunction: "and", DelimiterPrecedesLast: style.DelimiterNever}, reference.ModePrimary)
	list := []reference.Contributor{structured("Smith", "Jane"), structured("Doe", "John")}
	got := r.Render(list, style.NameFormLong, false, 0, 0)
	want := "Jane Smith and John Doe"
	if got != want {
		t.Errorf("Render = %q, want %q", got, want)
	}
}

func TestRenderEtAlTruncation(t *testing.T) {
	r := NewRenderer(locale.BuiltinEnUS(), style.ContributorsOptions{
		EtAl:        style.EtAl{Min: 3, UseFirst: 1},
		Conjunction: "and",
	}, reference.ModePrimary)
	list := []reference.Contributor{structured("A", "One"), structured("B", "Two"), structured("C", "Three")}
	got := r.Render(list, style.NameFormLong, false, 0, 0)
	want := "One A et al."
	if got != want {
		t.Errorf("Render = %q, want %q", got, want)
	}
}

func TestRenderEtAlSubsequentVariant(t *testing.T) {
	sub := style.EtAl{Min: 1, UseFirst: 1}
	r := NewRenderer(locale.BuiltinEnUS(), style.ContributorsOptions{
		EtAl:           style.EtAl{Min: 5, UseFirst: 3},
		EtAlSubsequent: &sub,
	}, reference.ModePrimary)
	list := []reference.Contributor{structured("A", "One"), structured("B", "Two")}
	got := r.Render(list, style.NameFormLong, true, 0, 0)
	if got != "One A et al." {
		t.Errorf("subsequent Render = %q", got)
	}
}

func TestRenderInitializeWith(t *testing.T) {
	r := NewRenderer(locale.BuiltinEnUS(), style.ContributorsOptions{InitializeWith: "."}, reference.ModePrimary)
	list := []reference.Contributor{structured("Kuhn", "Thomas Samuel")}
	got := r.Render(list, style.NameFormLong, false, 0, 0)
	want := "T.S. Kuhn"
	if got != want {
		t.Errorf("Render = %q, want %q", got, want)
	}
}

func TestDemoteNonDroppingParticle(t *testing.T) {
	n := reference.StructuredName{
		Family:              reference.NamePart{Plain: "Beethoven"},
		Given:               reference.NamePart{Plain: "Ludwig"},
		NonDroppingParticle: reference.NamePart{Plain: "van"},
	}
	c := reference.NewStructuredContributor(n)

	notDemoted := NewRenderer(locale.BuiltinEnUS(), style.ContributorsOptions{}, reference.ModePrimary)
	got := notDemoted.Render([]reference.Contributor{c}, style.NameFormLong, false, 0, 0)
	if got != "Ludwig van Beethoven" {
		t.Errorf("non-demoted = %q", got)
	}

	demoted := NewRenderer(locale.BuiltinEnUS(), style.ContributorsOptions{DemoteNonDroppingParticle: true}, reference.ModePrimary)
	got = demoted.Render([]reference.Contributor{c}, style.NameFormLong, false, 0, 0)
	if got != "Ludwig Beethoven, van" {
		t.Errorf("demoted = %q", got)
	}
}

func TestRenderLiteralContributorVerbatim(t *testing.T) {
	r := NewRenderer(locale.BuiltinEnUS(), style.ContributorsOptions{}, reference.ModePrimary)
	list := []reference.Contributor{reference.LiteralContributor("World Health Organization")}
	got := r.Render(list, style.NameFormLong, false, 0, 0)
	if got != "World Health Organization" {
		t.Errorf("literal Render = %q", got)
	}
}

func TestRenderCountForm(t *testing.T) {
	r := NewRenderer(locale.BuiltinEnUS(), style.ContributorsOptions{}, reference.ModePrimary)
	list := []reference.Contributor{structured("A", "One"), structured("B", "Two")}
	if got := r.Render(list, style.NameFormCount, false, 0, 0); got != "2" {
		t.Errorf("count Render = %q, want 2", got)
	}
}
