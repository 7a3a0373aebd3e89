package disambiguate

import (
	"testing"

	"github.com/csln/csln/pkg/reference"
)

func refWithAuthors(id string, year string, authors ...[2]string) *reference.Reference {
	var contributors []reference.Contributor
	for _, a := range authors {
		contributors = append(contributors, reference.NewStructuredContributor(reference.StructuredName{
			Family: reference.NamePart{Plain: a[0]},
			Given:  reference.NamePart{Plain: a[1]},
		}))
	}
	return &reference.Reference{
		ID:           id,
		Type:         reference.TypeArticleJournal,
		Contributors: map[string][]reference.Contributor{"author": contributors},
	}
}

func simpleKeyFn(year map[string]string) KeyFunc {
	return func(ref *reference.Reference, nameCount, givenNameLevel int) string {
		authors := ref.ContributorsFor("author")
		n := nameCount
		if n > len(authors) {
			n = len(authors)
		}
		key := ""
		for i := 0; i < n; i++ {
			family := authors[i].Structured.Family.Plain
			given := authors[i].Structured.Given.Plain
			switch givenNameLevel {
			case 0:
				if len(given) > 0 {
					given = given[:1]
				}
			case 1, 2:
				// full given name, nothing to truncate
			}
			key += family + given
		}
		return key + year[ref.ID]
	}
}

func TestComputeNoCollisionLeavesHintsEmpty(t *testing.T) {
	refs := []*reference.Reference{
		refWithAuthors("a1", "", [2]string{"Smith", "Jane"}),
		refWithAuthors("a2", "", [2]string{"Doe", "John"}),
	}
	years := map[string]string{"a1": "2020", "a2": "2021"}
	hints := Compute(refs, simpleKeyFn(years), true, true)
	if len(hints.YearSuffix) != 0 {
		t.Errorf("expected no year suffixes, got %+v", hints.YearSuffix)
	}
}

func TestComputeExpandsNamesBeforeYearSuffix(t *testing.T) {
	refs := []*reference.Reference{
		refWithAuthors("a1", "", [2]string{"Smith", "Jane"}, [2]string{"Doe", "Amy"}),
		refWithAuthors("a2", "", [2]string{"Smith", "Jane"}, [2]string{"Roe", "Bob"}),
	}
	years := map[string]string{"a1": "2020", "a2": "2020"}
	hints := Compute(refs, simpleKeyFn(years), true, true)

	if hints.NameCount["a1"] < 2 || hints.NameCount["a2"] < 2 {
		t.Errorf("expected name expansion to resolve the collision, got %+v", hints.NameCount)
	}
	if len(hints.YearSuffix) != 0 {
		t.Errorf("expected name expansion alone to disambiguate, got suffixes %+v", hints.YearSuffix)
	}
}

func TestComputeFallsBackToYearSuffixWhenNamesIdentical(t *testing.T) {
	refs := []*reference.Reference{
		refWithAuthors("a1", "", [2]string{"Smith", "Jane"}),
		refWithAuthors("a2", "", [2]string{"Smith", "Jane"}),
	}
	years := map[string]string{"a1": "2020", "a2": "2020"}
	hints := Compute(refs, simpleKeyFn(years), true, true)

	if hints.YearSuffix["a1"] == "" || hints.YearSuffix["a2"] == "" {
		t.Fatalf("expected both references to get year suffixes, got %+v", hints.YearSuffix)
	}
	if hints.YearSuffix["a1"] == hints.YearSuffix["a2"] {
		t.Error("expected distinct year suffixes")
	}
}

func TestComputeIsDeterministic(t *testing.T) {
	refs := []*reference.Reference{
		refWithAuthors("a1", "", [2]string{"Smith", "Jane"}),
		refWithAuthors("a2", "", [2]string{"Smith", "Jane"}),
		refWithAuthors("a3", "", [2]string{"Smith", "Jane"}),
	}
	years := map[string]string{"a1": "2020", "a2": "2020", "a3": "2020"}

	first := Compute(refs, simpleKeyFn(years), true, true)
	second := Compute(refs, simpleKeyFn(years), true, true)
	for id := range first.YearSuffix {
		if first.YearSuffix[id] != second.YearSuffix[id] {
			t.Fatalf("non-deterministic suffix for %s: %q vs %q", id, first.YearSuffix[id], second.YearSuffix[id])
		}
	}
	want := map[string]string{"a1": "a", "a2": "b", "a3": "c"}
	for id, suffix := range want {
		if first.YearSuffix[id] != suffix {
			t.Errorf("YearSuffix[%s] = %q, want %q", id, first.YearSuffix[id], suffix)
		}
	}
}

func authorKeyFn(ref *reference.Reference) string {
	authors := ref.ContributorsFor("author")
	if len(authors) == 0 {
		return ""
	}
	key := ""
	for _, a := range authors {
		key += a.Structured.Family.Plain + a.Structured.Given.Plain
	}
	return key
}

func TestComputeSubsequentAuthorSubstituteMarksRepeats(t *testing.T) {
	refs := []*reference.Reference{
		refWithAuthors("a1", "", [2]string{"Smith", "Jane"}),
		refWithAuthors("a2", "", [2]string{"Smith", "Jane"}),
		refWithAuthors("a3", "", [2]string{"Doe", "John"}),
	}
	marks := ComputeSubsequentAuthorSubstitute(refs, authorKeyFn)
	if marks["a1"] {
		t.Error("first entry should never be marked")
	}
	if !marks["a2"] {
		t.Error("a2 repeats a1's author and should be marked")
	}
	if marks["a3"] {
		t.Error("a3 has a different author and should not be marked")
	}
}

func TestComputeSubsequentAuthorSubstituteIgnoresEmptyKeys(t *testing.T) {
	refs := []*reference.Reference{
		refWithAuthors("a1"),
		refWithAuthors("a2"),
	}
	marks := ComputeSubsequentAuthorSubstitute(refs, authorKeyFn)
	if marks["a1"] || marks["a2"] {
		t.Errorf("references with no authors should never match, got %+v", marks)
	}
}
