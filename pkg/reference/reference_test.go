package reference

import "testing"

func TestNewBibliographyRejectsDuplicateID(t *testing.T) {
	refs := []*Reference{
		{ID: "a", Type: TypeBook},
		{ID: "a", Type: TypeBook},
	}
	if _, err := NewBibliography(refs); err == nil {
		t.Error("expected error for duplicate id")
	}
}

func TestNewBibliographyRejectsUnresolvedParent(t *testing.T) {
	refs := []*Reference{
		{ID: "chapter1", Type: TypeChapter, Parent: &ParentRef{ByID: "missing-book"}},
	}
	if _, err := NewBibliography(refs); err == nil {
		t.Error("expected error for unresolved parent id")
	}
}

func TestBibliographyParentResolution(t *testing.T) {
	book := &Reference{ID: "book1", Type: TypeBook, Variables: map[string]MultilingualString{
		"title": Plain("The Book"),
	}}
	chapter := &Reference{ID: "ch1", Type: TypeChapter, Parent: &ParentRef{ByID: "book1"}}

	bib, err := NewBibliography([]*Reference{book, chapter})
	if err != nil {
		t.Fatalf("NewBibliography: %v", err)
	}

	parent, ok := bib.Parent(chapter)
	if !ok {
		t.Fatal("expected parent to resolve")
	}
	if parent.ID != "book1" {
		t.Errorf("parent.ID = %q, want book1", parent.ID)
	}
}

func TestBibliographyPreservesOrder(t *testing.T) {
	refs := []*Reference{{ID: "z"}, {ID: "a"}, {ID: "m"}}
	bib, err := NewBibliography(refs)
	if err != nil {
		t.Fatalf("NewBibliography: %v", err)
	}
	all := bib.All()
	want := []string{"z", "a", "m"}
	for i, r := range all {
		if r.ID != want[i] {
			t.Errorf("All()[%d].ID = %q, want %q", i, r.ID, want[i])
		}
	}
}
