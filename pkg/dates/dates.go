// Package dates renders EDTF date values under a style's date-form and
// locale settings: long/short/numeric/ISO forms, uncertainty and
// approximation markers, range elision, and the "no date" fallback term
// (§4.4, layered on pkg/edtf's parsed representation).
package dates

import (
	"fmt"
	"strings"

	"github.com/csln/csln/pkg/edtf"
	"github.com/csln/csln/pkg/locale"
	"github.com/csln/csln/pkg/style"
)

// Renderer renders edtf.EDTF values under a fixed locale and form.
type Renderer struct {
	Locale *locale.Locale
}

// NewRenderer builds a date Renderer.
func NewRenderer(loc *locale.Locale) *Renderer {
	return &Renderer{Locale: loc}
}

// Render formats d under the given form, or the locale's "no-date" term
// if d carries no parsed information at all.
func (r *Renderer) Render(d edtf.EDTF, form style.DateForm) string {
	if form == "" {
		form = style.DateFormLong
	}
	if !d.IsRange && d.Single.IsZero() {
		return r.noDateTerm()
	}
	if d.IsRange {
		return r.renderRange(d.Span, form)
	}
	return r.renderDate(d.Single, form)
}

func (r *Renderer) noDateTerm() string {
	if r.Locale != nil {
		if t, ok := r.Locale.Term("no-date", locale.FormLong, false); ok {
			return t
		}
	}
	return "n.d."
}

// renderRange elides the year shared by both endpoints of a long- or
// short-form interval, e.g. "June-August, 1977" for a same-year month
// span and "March 3-10, 1977" for a same-month-and-year span (§4.4's
// interval elision rule). Spans crossing years, and the year, numeric
// and ISO forms, render both endpoints in full ("1977-1980").
func (r *Renderer) renderRange(span edtf.Range, form style.DateForm) string {
	if span.Start.Open {
		return "until " + r.renderDate(span.End, form)
	}
	if span.End.Open {
		return r.renderDate(span.Start, form) + "-"
	}

	start := r.renderDate(span.Start, form)
	end := r.renderDate(span.End, form)

	if form == style.DateFormYear || form == style.DateFormNumeric || form == style.DateFormISO {
		return start + "-" + end
	}

	if span.Start.Year == span.End.Year && span.Start.Month == span.End.Month &&
		span.Start.Precision == edtf.PrecisionFull && span.End.Precision == edtf.PrecisionFull {
		monthName, _ := r.monthName(span.Start.Month, form)
		return fmt.Sprintf("%s %d-%d, %d", monthName, span.Start.Day, span.End.Day, span.Start.Year)
	}
	if span.Start.Year == span.End.Year {
		return fmt.Sprintf("%s-%s, %d", r.renderWithoutYear(span.Start, form), r.renderWithoutYear(span.End, form), span.Start.Year)
	}
	return start + "-" + end
}

func (r *Renderer) renderWithoutYear(d edtf.Date, form style.DateForm) string {
	full := r.renderDate(d, form)
	suffix := fmt.Sprintf(", %d", d.Year)
	if trimmed := strings.TrimSuffix(full, suffix); trimmed != full {
		return trimmed
	}
	return strings.TrimSuffix(full, fmt.Sprintf(" %d", d.Year))
}

func (r *Renderer) monthName(month int, form style.DateForm) (string, bool) {
	if r.Locale == nil {
		return "", false
	}
	localeForm := locale.FormLong
	if form == style.DateFormShort {
		localeForm = locale.FormShort
	}
	return r.Locale.Month(month, localeForm)
}

func (r *Renderer) renderDate(d edtf.Date, form style.DateForm) string {
	if d.Open {
		return ""
	}
	var body string
	switch form {
	case style.DateFormISO:
		body = d.ISO()
		return r.withQualifier(d, body, true)
	case style.DateFormNumeric:
		body = numericForm(d)
	case style.DateFormYear:
		body = fmt.Sprintf("%04d", d.Year)
	case style.DateFormShort:
		body = r.wordForm(d, locale.FormShort)
	default:
		body = r.wordForm(d, locale.FormLong)
	}
	return r.withQualifier(d, body, false)
}

func numericForm(d edtf.Date) string {
	switch d.Precision {
	case edtf.PrecisionFull:
		return fmt.Sprintf("%04d-%02d-%02d", d.Year, d.Month, d.Day)
	case edtf.PrecisionYearMonth:
		return fmt.Sprintf("%04d-%02d", d.Year, d.Month)
	default:
		return fmt.Sprintf("%04d", d.Year)
	}
}

func (r *Renderer) wordForm(d edtf.Date, form locale.Form) string {
	switch d.Precision {
	case edtf.PrecisionFull:
		month, ok := r.monthNameForm(d.Month, form)
		if !ok {
			return numericForm(d)
		}
		return fmt.Sprintf("%s %d, %04d", month, d.Day, d.Year)
	case edtf.PrecisionYearMonth:
		month, ok := r.monthNameForm(d.Month, form)
		if !ok {
			return fmt.Sprintf("%04d-%02d", d.Year, d.Month)
		}
		return fmt.Sprintf("%s %04d", month, d.Year)
	default:
		return fmt.Sprintf("%04d", d.Year)
	}
}

func (r *Renderer) monthNameForm(month int, form locale.Form) (string, bool) {
	if r.Locale == nil {
		return "", false
	}
	return r.Locale.Month(month, form)
}

// withQualifier appends the uncertain/approximate marker term, skipped
// entirely for the iso form which carries its own qualifier suffix.
func (r *Renderer) withQualifier(d edtf.Date, body string, isISO bool) string {
	if isISO {
		return body
	}
	switch {
	case d.UncertainApproximate:
		return r.approximatePrefix() + body + r.uncertainMarker()
	case d.Approximate:
		return r.approximatePrefix() + body
	case d.Uncertain:
		return body + r.uncertainMarker()
	default:
		return body
	}
}

func (r *Renderer) approximatePrefix() string {
	if r.Locale != nil {
		if t, ok := r.Locale.Term("approximate-date-prefix", locale.FormLong, false); ok {
			return t
		}
	}
	return "ca. "
}

func (r *Renderer) uncertainMarker() string {
	if r.Locale != nil {
		if t, ok := r.Locale.Term("uncertain-date-marker", locale.FormSymbol, false); ok {
			return t
		}
	}
	return "?"
}
