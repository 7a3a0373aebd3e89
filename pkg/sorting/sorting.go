// Package sorting implements CSLN's bibliography grouping and sort-key
// evaluation (§4.8, §4.9): Unicode-collated comparison of sort-template
// fields, first-match-wins BibliographyGroup selector evaluation with an
// implicit trailing catch-all group, and the name-sort-with-title-
// fallback rule for references that have no contributors in the
// requested role.
package sorting

import (
	"golang.org/x/text/collate"
	"golang.org/x/text/language"

	"github.com/csln/csln/pkg/reference"
	"github.com/csln/csln/pkg/style"
)

// FieldFunc extracts the comparable string for one SortKey from a
// reference — the caller supplies this so sorting stays decoupled from
// template rendering (a sort key like "author" compares family names in
// sort order, not the fully rendered citation text).
type FieldFunc func(ref *reference.Reference, key style.SortKey) (value string, present bool)

// Sorter orders references by a sequence of SortKeys using a
// locale-aware Unicode collator.
type Sorter struct {
	collator *collate.Collator
	field    FieldFunc
}

// NewSorter builds a Sorter for a BCP-47 language tag, falling back to
// the root collation when the tag does not parse.
func NewSorter(localeTag string, field FieldFunc) *Sorter {
	tag, err := language.Parse(localeTag)
	if err != nil {
		tag = language.Und
	}
	return &Sorter{collator: collate.New(tag), field: field}
}

// Sort orders refs in place by keys, in priority order, each honoring
// its own ascending/descending direction. References missing a key's
// field sort after references that have it, per §4.8's "absent sort
// value sorts last" rule.
func (s *Sorter) Sort(refs []*reference.Reference, keys []style.SortKey) {
	less := func(i, j int) bool {
		for _, key := range keys {
			vi, pi := s.field(refs[i], key)
			vj, pj := s.field(refs[j], key)
			if pi != pj {
				return pi // present sorts before absent
			}
			if !pi && !pj {
				continue
			}
			cmp := s.collator.CompareString(vi, vj)
			if cmp == 0 {
				continue
			}
			if key.Dir == style.SortDescending {
				return cmp > 0
			}
			return cmp < 0
		}
		return false
	}
	insertionSort(refs, less)
}

// insertionSort is a small stable sort so a missing golang.org/x/text
// quirk (collate.Collator is not safe for use from multiple goroutines
// concurrently with Key caching) never surprises callers reaching for
// sort.Slice's non-stable guarantee; correctness over raw throughput
// for bibliography-sized lists.
func insertionSort(refs []*reference.Reference, less func(i, j int) bool) {
	for i := 1; i < len(refs); i++ {
		for j := i; j > 0 && less(j, j-1); j-- {
			refs[j], refs[j-1] = refs[j-1], refs[j]
		}
	}
}

// MatchSelector evaluates a GroupSelector against a reference. cited
// reports whether the reference was actually cited in the current
// render (needed for the "cited" selector).
func MatchSelector(ref *reference.Reference, sel style.GroupSelector, cited bool, fieldPresent func(field string) bool) bool {
	if sel.Not != nil {
		return !MatchSelector(ref, *sel.Not, cited, fieldPresent)
	}
	if len(sel.Type) > 0 {
		for _, t := range sel.Type {
			if ref.Type == t {
				return true
			}
		}
		return false
	}
	if sel.Cited != nil {
		return cited == *sel.Cited
	}
	if sel.Field != "" {
		if fieldPresent != nil {
			return fieldPresent(sel.Field)
		}
		_, ok := ref.Variable(sel.Field)
		return ok
	}
	return true
}

// GroupReferences assigns each reference to the first group whose
// selector matches, in declaration order, with any unmatched references
// collected into an implicit trailing group (§4.9). The returned slice
// preserves groups' declared order; the implicit group (name "") is
// appended last only if non-empty.
func GroupReferences(refs []*reference.Reference, groups []style.BibliographyGroup, cited func(ref *reference.Reference) bool) []Group {
	assigned := make([]Group, len(groups))
	for i, g := range groups {
		assigned[i] = Group{Name: g.Name, Spec: g}
	}
	var implicit Group

	for _, ref := range refs {
		placed := false
		for i, g := range groups {
			if MatchSelector(ref, g.Selector, cited(ref), nil) {
				assigned[i].Refs = append(assigned[i].Refs, ref)
				placed = true
				break
			}
		}
		if !placed {
			implicit.Refs = append(implicit.Refs, ref)
		}
	}

	result := assigned
	if len(implicit.Refs) > 0 {
		result = append(result, implicit)
	}
	return result
}

// Group is one bibliography output group with its resolved members.
type Group struct {
	Name string
	Spec style.BibliographyGroup
	Refs []*reference.Reference
}

// NameSortKey extracts the sort-order string for a "names" sort key: the
// first contributor's sort-form (non-dropping-particle + family, then
// given), falling back to the reference's title when the role has no
// contributors at all (§4.8's name-sort-with-title-fallback rule).
func NameSortKey(ref *reference.Reference, role string, mode reference.MultilingualMode, localeLang string) (string, bool) {
	list := ref.ContributorsFor(role)
	if len(list) > 0 {
		name, isLiteral := list[0].StructuredForm(mode, localeLang)
		if isLiteral {
			return list[0].Literal, true
		}
		family := name.Family.Resolve(mode, localeLang)
		if name.NonDroppingParticle.Resolve(mode, localeLang) != "" {
			family = name.NonDroppingParticle.Resolve(mode, localeLang) + " " + family
		}
		given := name.Given.Resolve(mode, localeLang)
		if family == "" && given == "" {
			// fall through to title fallback
		} else {
			return family + ", " + given, true
		}
	}
	if title, ok := ref.Variable("title"); ok && !title.IsEmpty() {
		return title.Resolve(mode, localeLang), true
	}
	return "", false
}
