// Package disambiguate computes the per-reference rendering hints that
// make otherwise-identical citations distinguishable: additional names
// shown before et-al collapses them, given-name initialization widened
// to full given names, and year suffixes ("2020a", "2020b") assigned to
// references that still collide after both expansions (§4.7).
package disambiguate

import (
	"github.com/csln/csln/pkg/reference"
)

// KeyFunc renders the comparison key used to detect collisions for a
// reference at a given expansion level. nameCount is how many
// contributors to include before an et-al cutoff would apply;
// givenNameLevel is 0 (initials), 1 (first full given name), or 2 (all
// given names full) — the disambiguate-add-givenname ladder.
type KeyFunc func(ref *reference.Reference, nameCount, givenNameLevel int) string

// Hints holds the computed disambiguation state for one bibliography.
type Hints struct {
	// NameCount is the number of contributors to render (beyond the
	// style's normal et-al cutoff) before falling back to et-al, keyed
	// by reference id. Absent entries use the style's default count.
	NameCount map[string]int

	// GivenNameLevel is the given-name expansion level to use, keyed by
	// reference id. Absent entries use initials (level 0).
	GivenNameLevel map[string]int

	// YearSuffix is the "a"/"b"/"c" suffix to append to a rendered
	// year, keyed by reference id. Absent entries get no suffix.
	YearSuffix map[string]string

	// SubstitutedBase marks, by reference id, bibliography entries whose
	// author contributor block must be replaced by the style's
	// subsequent-author-substitute marker because it repeats the
	// immediately preceding entry's (§4.7 step 5).
	SubstitutedBase map[string]bool
}

// NewHints returns an empty Hints ready to be filled by Compute.
func NewHints() *Hints {
	return &Hints{
		NameCount:       make(map[string]int),
		GivenNameLevel:  make(map[string]int),
		YearSuffix:      make(map[string]string),
		SubstitutedBase: make(map[string]bool),
	}
}

// ComputeSubsequentAuthorSubstitute scans refs in bibliography (already
// sorted and grouped) order and returns the set of reference ids whose
// author key matches the entry immediately before them, the trigger for
// the subsequent-author-substitute marker (§4.7 step 5). The first
// reference in the sequence is never marked, and an empty key never
// matches, so references without the substituted role render normally.
func ComputeSubsequentAuthorSubstitute(refs []*reference.Reference, keyFn func(*reference.Reference) string) map[string]bool {
	marks := make(map[string]bool)
	var prevKey string
	havePrev := false
	for _, ref := range refs {
		key := keyFn(ref)
		if havePrev && key != "" && key == prevKey {
			marks[ref.ID] = true
		}
		prevKey = key
		havePrev = true
	}
	return marks
}

const maxNameCount = 8

// Compute runs the five-step disambiguation algorithm over refs in the
// given (citation) order, honoring addNames/addGivenname feature flags,
// and returns the resulting per-reference Hints. The result is
// deterministic for a fixed refs order and keyFn.
func Compute(refs []*reference.Reference, keyFn KeyFunc, addNames, addGivenname bool) *Hints {
	hints := NewHints()
	if len(refs) == 0 {
		return hints
	}

	// Step 1: group by the baseline key (nameCount=1, givenNameLevel=0).
	groups := groupByKey(refs, keyFn, 1, 0)

	for _, group := range groups {
		if len(group) < 2 {
			continue
		}
		resolved := group

		if addNames {
			resolved = expandNames(resolved, keyFn, hints)
		}
		if len(collidingSubset(resolved, keyFn, hints)) > 1 && addGivenname {
			resolved = expandGivenNames(resolved, keyFn, hints)
		}
		assignYearSuffix(collidingSubset(resolved, keyFn, hints), keyFn, hints)
	}

	return hints
}

// groupByKey buckets refs by keyFn at a fixed expansion level, returning
// groups in first-seen order for determinism.
func groupByKey(refs []*reference.Reference, keyFn KeyFunc, nameCount, givenNameLevel int) [][]*reference.Reference {
	order := []string{}
	byKey := map[string][]*reference.Reference{}
	for _, ref := range refs {
		k := keyFn(ref, nameCount, givenNameLevel)
		if _, seen := byKey[k]; !seen {
			order = append(order, k)
		}
		byKey[k] = append(byKey[k], ref)
	}
	groups := make([][]*reference.Reference, 0, len(order))
	for _, k := range order {
		groups = append(groups, byKey[k])
	}
	return groups
}

// expandNames grows NameCount for every member of group in step (one
// additional name at a time, in parallel across the group, matching
// citeproc-js's behavior) until the group's keys diverge or the cap is
// reached.
func expandNames(group []*reference.Reference, keyFn KeyFunc, hints *Hints) []*reference.Reference {
	for n := 2; n <= maxNameCount; n++ {
		for _, ref := range group {
			hints.NameCount[ref.ID] = n
		}
		if allDistinct(group, func(ref *reference.Reference) string {
			return keyFn(ref, n, hints.GivenNameLevel[ref.ID])
		}) {
			return group
		}
	}
	return group
}

// expandGivenNames grows GivenNameLevel for a colliding subset from 0
// (initials) to 2 (full given names) until divergent or exhausted.
func expandGivenNames(group []*reference.Reference, keyFn KeyFunc, hints *Hints) []*reference.Reference {
	for level := 1; level <= 2; level++ {
		for _, ref := range group {
			hints.GivenNameLevel[ref.ID] = level
		}
		if allDistinct(group, func(ref *reference.Reference) string {
			return keyFn(ref, hints.NameCount[ref.ID], level)
		}) {
			return group
		}
	}
	return group
}

// collidingSubset returns the members of group whose current (hinted)
// key still matches at least one other member's.
func collidingSubset(group []*reference.Reference, keyFn KeyFunc, hints *Hints) []*reference.Reference {
	counts := map[string]int{}
	keyOf := func(ref *reference.Reference) string {
		return keyFn(ref, nameCountOrDefault(hints, ref.ID), hints.GivenNameLevel[ref.ID])
	}
	for _, ref := range group {
		counts[keyOf(ref)]++
	}
	var colliding []*reference.Reference
	for _, ref := range group {
		if counts[keyOf(ref)] > 1 {
			colliding = append(colliding, ref)
		}
	}
	return colliding
}

func nameCountOrDefault(hints *Hints, id string) int {
	if n, ok := hints.NameCount[id]; ok {
		return n
	}
	return 1
}

// assignYearSuffix gives each still-colliding reference a distinct
// "a"/"b"/"c"... suffix, assigned in refs' original (citation) order —
// the final, always-terminating disambiguation step.
func assignYearSuffix(colliding []*reference.Reference, keyFn KeyFunc, hints *Hints) {
	if len(colliding) < 2 {
		return
	}
	for i, ref := range colliding {
		hints.YearSuffix[ref.ID] = string(rune('a' + i))
	}
}

func allDistinct(refs []*reference.Reference, keyOf func(*reference.Reference) string) bool {
	seen := map[string]bool{}
	for _, ref := range refs {
		k := keyOf(ref)
		if seen[k] {
			return false
		}
		seen[k] = true
	}
	return true
}
