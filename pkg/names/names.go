// Package names renders contributor lists: truncation and et-al,
// particle demotion, given-name initialization, script-aware ordering
// for CJK names, and the conjunction/delimiter assembly rules a
// contributor component's locale and options configure (§4.3).
package names

import (
	"strings"
	"unicode"

	"golang.org/x/text/unicode/norm"

	"github.com/csln/csln/pkg/locale"
	"github.com/csln/csln/pkg/reference"
	"github.com/csln/csln/pkg/style"
)

// Renderer renders contributor lists under a fixed locale and options.
type Renderer struct {
	Locale  *locale.Locale
	Options style.ContributorsOptions
	Mode    reference.MultilingualMode
}

// NewRenderer builds a name Renderer.
func NewRenderer(loc *locale.Locale, opts style.ContributorsOptions, mode reference.MultilingualMode) *Renderer {
	return &Renderer{Locale: loc, Options: opts, Mode: mode}
}

// Render formats a full contributor list per the component's form,
// applying truncation/et-al first, then per-name formatting, then
// conjunction/delimiter assembly (§4.3 steps 1-5). subsequent selects
// the et-al-subsequent option variant for repeat citations. nameCount
// and givenNameLevel carry the disambiguate-add-names /
// disambiguate-add-givenname hints computed for this reference (§4.7
// steps 2-3); zero means "use the style's plain settings".
func (r *Renderer) Render(list []reference.Contributor, form style.NameForm, subsequent bool, nameCount, givenNameLevel int) string {
	if len(list) == 0 {
		return ""
	}
	if form == style.NameFormCount {
		return itoa(len(list))
	}

	etAl := r.Options.EffectiveEtAl(subsequent)
	if nameCount > 0 {
		etAl.UseFirst = nameCount
	}
	shown, truncated := r.truncate(list, etAl)

	parts := make([]string, 0, len(shown))
	for i, c := range shown {
		parts = append(parts, r.renderOne(c, form, i == 0, givenNameLevel))
	}

	if truncated {
		etAlTerm := "et al."
		if r.Locale != nil {
			if t, ok := r.Locale.Term("et-al", locale.FormLong, false); ok {
				etAlTerm = t
			}
		}
		return r.join(parts, r.Options.DelimiterPrecedesEtAl, "") + r.delimiterOrSpace(r.Options.DelimiterPrecedesEtAl, len(parts)) + etAlTerm
	}

	return r.join(parts, r.Options.DelimiterPrecedesLast, r.conjunction())
}

// truncate applies the et-al cutoff: when the list length meets or
// exceeds Min, keep UseFirst names (plus UseLast trailing names, if
// configured) and report truncation.
func (r *Renderer) truncate(list []reference.Contributor, etAl style.EtAl) ([]reference.Contributor, bool) {
	if etAl.Min <= 0 || len(list) < etAl.Min {
		return list, false
	}
	useFirst := etAl.UseFirst
	if useFirst <= 0 {
		useFirst = len(list)
	}
	if useFirst >= len(list) {
		return list, false
	}
	shown := append([]reference.Contributor{}, list[:useFirst]...)
	if etAl.UseLast > 0 {
		start := len(list) - etAl.UseLast
		if start > useFirst {
			shown = append(shown, list[start:]...)
		}
	}
	return shown, true
}

func (r *Renderer) conjunction() string {
	if r.Options.Conjunction != "" {
		return r.Options.Conjunction
	}
	if r.Locale != nil {
		if t, ok := r.Locale.Term("and", locale.FormLong, false); ok {
			return t
		}
	}
	return "and"
}

// join assembles rendered name parts with ", " between all but the last
// pair, inserting the conjunction before the final name according to
// precedes (§4.3 step 5). An empty conj means "no conjunction" (used for
// the et-al path, which supplies its own delimiter logic separately).
func (r *Renderer) join(parts []string, precedes style.DelimiterPrecedesLast, conj string) string {
	if len(parts) == 0 {
		return ""
	}
	if len(parts) == 1 {
		return parts[0]
	}
	delim := ", "
	if conj == "" {
		return strings.Join(parts, delim)
	}
	head := strings.Join(parts[:len(parts)-1], delim)
	last := parts[len(parts)-1]
	switch precedes {
	case style.DelimiterNever:
		return head + " " + conj + " " + last
	case style.DelimiterAlways:
		return head + delim + conj + " " + last
	default: // contextual: only when more than two names precede
		if len(parts) > 2 {
			return head + delim + conj + " " + last
		}
		return head + " " + conj + " " + last
	}
}

func (r *Renderer) delimiterOrSpace(precedes style.DelimiterPrecedesLast, count int) string {
	if precedes == style.DelimiterAlways && count > 1 {
		return ", "
	}
	return " "
}

// renderOne formats a single contributor, choosing literal verbatim
// rendering, the sort-order (family-first) long form, or the short
// (family + initials) form.
func (r *Renderer) renderOne(c reference.Contributor, form style.NameForm, isFirst bool, givenNameLevel int) string {
	structured, isLiteral := c.StructuredForm(r.Mode, r.localeLang())
	if isLiteral {
		return c.Literal
	}

	family := r.demotedFamily(structured)
	given := structured.Given.Resolve(r.Mode, r.localeLang())
	if givenNameLevel == 0 && r.Options.InitializeWith != "" {
		given = initialize(given, r.Options.InitializeWith)
	}
	suffix := structured.Suffix.Resolve(r.Mode, r.localeLang())

	if r.Options.UseNativeOrdering {
		for _, ch := range family {
			if unicode.In(ch, unicode.Han, unicode.Hiragana, unicode.Katakana, unicode.Hangul) {
				// CJK names render family then given, with no delimiter.
				return family + given
			}
		}
	}

	sortOrder := isFirst && r.Options.NameAsSortOrder == style.NameOrderFirstOnly ||
		r.Options.NameAsSortOrder == style.NameOrderAll

	var sb strings.Builder
	if sortOrder {
		sb.WriteString(family)
		if given != "" {
			sb.WriteString(", ")
			sb.WriteString(given)
		}
	} else {
		if given != "" {
			sb.WriteString(given)
			sb.WriteString(" ")
		}
		sb.WriteString(family)
	}
	if suffix != "" {
		sb.WriteString(", ")
		sb.WriteString(suffix)
	}
	return sb.String()
}

// demotedFamily composes the non-dropping particle into the family name
// (or demotes it after, under DemoteNonDroppingParticle) and always
// prepends the dropping particle (§4.3's particle rules).
func (r *Renderer) demotedFamily(n reference.StructuredName) string {
	family := n.Family.Resolve(r.Mode, r.localeLang())
	nonDropping := n.NonDroppingParticle.Resolve(r.Mode, r.localeLang())
	dropping := n.DroppingParticle.Resolve(r.Mode, r.localeLang())

	if dropping != "" {
		family = dropping + " " + family
	}
	if nonDropping == "" {
		return family
	}
	if r.Options.DemoteNonDroppingParticle {
		return family + ", " + nonDropping
	}
	return nonDropping + " " + family
}

func (r *Renderer) localeLang() string {
	if r.Locale != nil {
		return r.Locale.Tag
	}
	return ""
}

// initialize reduces a resolved given-name string to its grapheme-aware
// initials joined by sep, e.g. "Thomas Samuel" -> "T.S." with sep ".".
// It normalizes to NFC first so combining-mark sequences (e.g. a base
// letter plus a diacritic) count as one grapheme rather than two.
func initialize(given, sep string) string {
	given = norm.NFC.String(given)
	fields := strings.FieldsFunc(given, func(r rune) bool {
		return unicode.IsSpace(r) || r == '-'
	})
	if len(fields) == 0 {
		return ""
	}
	var sb strings.Builder
	for _, f := range fields {
		runes := []rune(f)
		if len(runes) == 0 {
			continue
		}
		sb.WriteRune(runes[0])
		sb.WriteString(sep)
	}
	return strings.TrimSuffix(sb.String(), "")
}

func itoa(n int) string {
	if n == 0 {
		return "0"
	}
	var digits []byte
	for n > 0 {
		digits = append([]byte{byte('0' + n%10)}, digits...)
		n /= 10
	}
	return string(digits)
}
