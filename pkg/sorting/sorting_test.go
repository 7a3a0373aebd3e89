package sorting

import (
	"testing"

	"github.com/csln/csln/pkg/reference"
	"github.com/csln/csln/pkg/style"
)

func refTitled(id, title string) *reference.Reference {
	return &reference.Reference{
		ID:   id,
		Type: reference.TypeBook,
		Variables: map[string]reference.MultilingualString{
			"title": reference.Plain(title),
		},
	}
}

func titleField(ref *reference.Reference, key style.SortKey) (string, bool) {
	if key.Variable != "title" {
		return "", false
	}
	v, ok := ref.Variable("title")
	if !ok || v.IsEmpty() {
		return "", false
	}
	return v.Original, true
}

func TestSortAscendingByTitle(t *testing.T) {
	refs := []*reference.Reference{
		refTitled("c", "Charlie"),
		refTitled("a", "Alpha"),
		refTitled("b", "Bravo"),
	}
	s := NewSorter("en", titleField)
	s.Sort(refs, []style.SortKey{{Variable: "title", Dir: style.SortAscending}})

	want := []string{"a", "b", "c"}
	for i, id := range want {
		if refs[i].ID != id {
			t.Fatalf("position %d = %s, want %s (order: %v)", i, refs[i].ID, id, idsOf(refs))
		}
	}
}

func TestSortMissingFieldSortsLast(t *testing.T) {
	withTitle := refTitled("a", "Alpha")
	without := &reference.Reference{ID: "b", Type: reference.TypeBook}
	refs := []*reference.Reference{without, withTitle}
	s := NewSorter("en", titleField)
	s.Sort(refs, []style.SortKey{{Variable: "title"}})
	if refs[0].ID != "a" || refs[1].ID != "b" {
		t.Errorf("order = %v, want [a b]", idsOf(refs))
	}
}

func idsOf(refs []*reference.Reference) []string {
	out := make([]string, len(refs))
	for i, r := range refs {
		out[i] = r.ID
	}
	return out
}

func TestMatchSelectorType(t *testing.T) {
	ref := refTitled("a", "Alpha")
	ref.Type = reference.TypeWebpage
	sel := style.GroupSelector{Type: []reference.Type{reference.TypeWebpage, reference.TypeBook}}
	if !MatchSelector(ref, sel, false, nil) {
		t.Error("expected webpage to match type selector")
	}
}

func TestMatchSelectorNot(t *testing.T) {
	ref := refTitled("a", "Alpha")
	sel := style.GroupSelector{Not: &style.GroupSelector{Type: []reference.Type{reference.TypeWebpage}}}
	if !MatchSelector(ref, sel, false, nil) {
		t.Error("expected book to match not-webpage selector")
	}
}

func TestGroupReferencesFirstMatchWinsWithImplicitTail(t *testing.T) {
	book := refTitled("book1", "A Book")
	book.Type = reference.TypeBook
	web := refTitled("web1", "A Page")
	web.Type = reference.TypeWebpage
	other := refTitled("thesis1", "A Thesis")
	other.Type = reference.TypeThesis

	groups := []style.BibliographyGroup{
		{Name: "books", Selector: style.GroupSelector{Type: []reference.Type{reference.TypeBook}}},
		{Name: "web", Selector: style.GroupSelector{Type: []reference.Type{reference.TypeWebpage}}},
	}
	result := GroupReferences([]*reference.Reference{book, web, other}, groups, func(*reference.Reference) bool { return true })

	if len(result) != 3 {
		t.Fatalf("expected 3 groups (2 declared + implicit), got %d", len(result))
	}
	if result[0].Name != "books" || len(result[0].Refs) != 1 {
		t.Errorf("books group = %+v", result[0])
	}
	if result[2].Name != "" || len(result[2].Refs) != 1 || result[2].Refs[0].ID != "thesis1" {
		t.Errorf("implicit group = %+v", result[2])
	}
}

func TestNameSortKeyFallsBackToTitle(t *testing.T) {
	ref := refTitled("a", "No Author Here")
	got, ok := NameSortKey(ref, "author", "primary", "en")
	if !ok || got != "No Author Here" {
		t.Errorf("NameSortKey = %q, %v", got, ok)
	}
}
