// Package numbers renders numeric and page-range variables: locale
// label pluralization, strip-periods normalization, and the three
// page-range abbreviation policies citeproc-js styles choose between
// (§4.5).
package numbers

import (
	"strconv"
	"strings"

	"github.com/csln/csln/pkg/locale"
	"github.com/csln/csln/pkg/style"
)

// Renderer renders numeric/page-range variables under a fixed locale.
type Renderer struct {
	Locale *locale.Locale
}

// NewRenderer builds a numbers Renderer.
func NewRenderer(loc *locale.Locale) *Renderer {
	return &Renderer{Locale: loc}
}

// RenderLabeled prepends a pluralized locale label (e.g. "pp." for a
// multi-page range, "p." for a single page) to a numeric value.
func (r *Renderer) RenderLabeled(value, labelTerm string) string {
	if labelTerm == "" || r.Locale == nil {
		return value
	}
	plural := isPlural(value)
	label, ok := r.Locale.Term(labelTerm, locale.FormShort, plural)
	if !ok {
		return value
	}
	return label + " " + value
}

// isPlural reports whether value denotes more than one item: a page
// range ("3-5"), a comma list ("3, 7"), or a single large number treated
// as plural by convention is out of scope — CSLN follows citeproc-js in
// treating any range/list as plural and any bare number as singular.
func isPlural(value string) bool {
	return strings.ContainsAny(value, "-,&")
}

// StripPeriods removes "." characters from a rendered value when the
// style's strip-periods option is set (applied to abbreviated labels
// and initials alike, per the option's scope in §3).
func StripPeriods(s string, strip bool) string {
	if !strip {
		return s
	}
	return strings.ReplaceAll(s, ".", "")
}

// RenderPageRange formats a raw page-range string ("1103-1110") under
// the configured abbreviation policy. Non-numeric or single-page input
// passes through unchanged.
func (r *Renderer) RenderPageRange(value string, format style.PageRangeFormat) string {
	start, end, ok := splitRange(value)
	if !ok {
		return value
	}
	switch format {
	case style.PageRangeMinimal:
		return start + "-" + minimalEnd(start, end)
	case style.PageRangeChicago:
		return start + "-" + chicagoEnd(start, end)
	default: // expanded
		return start + "-" + end
	}
}

func splitRange(value string) (start, end string, ok bool) {
	idx := strings.IndexAny(value, "-–—")
	if idx < 0 {
		return "", "", false
	}
	start = strings.TrimSpace(value[:idx])
	end = strings.TrimSpace(value[idx+1:])
	if _, err := strconv.Atoi(start); err != nil {
		return "", "", false
	}
	if _, err := strconv.Atoi(end); err != nil {
		return "", "", false
	}
	return start, end, true
}

// minimalEnd drops every digit of end shared with start from the left,
// keeping at least the last two digits: 1103-1110 -> 1103-10,
// 1100-1108 -> 1100-08, 12-15 -> 12-15 (nothing shared beyond the
// minimum two digits).
func minimalEnd(start, end string) string {
	if len(start) != len(end) {
		return end
	}
	keep := 2
	shared := 0
	for i := 0; i < len(start)-keep; i++ {
		if start[i] == end[i] {
			shared++
		} else {
			break
		}
	}
	return end[shared:]
}

// chicagoEnd implements the Chicago Manual of Style page-range table
// (§8.7): 2 digit numbers always render in full; for 3-digit numbers
// ending in "00" render in full, otherwise keep only the changed
// trailing digits (at least two); for 4+ digit numbers, a start ending
// in "00" renders in full, the last 2 digits are kept when all higher
// digits match, the last 3 are kept when all but the last three digits
// match and the start's tens digit is "0", and otherwise the end renders
// in full.
func chicagoEnd(start, end string) string {
	n := len(start)
	if n != len(end) {
		return end
	}
	switch {
	case n <= 2:
		return end
	case n == 3:
		if strings.HasSuffix(start, "00") {
			return end
		}
		return minimalEnd(start, end)
	default:
		if strings.HasSuffix(start, "00") {
			return end
		}
		if start[:n-2] == end[:n-2] {
			return end[n-2:]
		}
		if start[n-2] == '0' && start[:n-3] == end[:n-3] {
			return end[n-3:]
		}
		return end
	}
}
