// Package edtf parses and renders Extended Date/Time Format strings, the
// date dialect CSL bibliographic data uses to express uncertainty,
// approximation, and open-ended ranges alongside ordinary calendar dates.
package edtf

import (
	"fmt"
	"strconv"
	"strings"

	"gopkg.in/yaml.v3"
)

// Precision indicates how much of a Date was specified.
type Precision int

const (
	// PrecisionNone marks a Date with no parseable components (unset / missing).
	PrecisionNone Precision = iota
	PrecisionYear
	PrecisionYearMonth
	PrecisionFull
)

// Date is a single EDTF endpoint: a calendar date with a precision and the
// uncertainty/approximation markers EDTF attaches to it.
type Date struct {
	Year  int
	Month int // 1-12, 0 if unspecified
	Day   int // 1-31, 0 if unspecified

	Precision Precision

	// Uncertain corresponds to the EDTF "?" qualifier.
	Uncertain bool
	// Approximate corresponds to the EDTF "~" qualifier.
	Approximate bool
	// UncertainApproximate corresponds to the combined "%" qualifier.
	UncertainApproximate bool

	// Open marks an open endpoint of a range ("..").
	Open bool
}

// IsZero reports whether d carries no parsed information.
func (d Date) IsZero() bool {
	return d.Precision == PrecisionNone && !d.Open
}

// Before returns true if d sorts before other using only the parsed
// components (missing month/day compare as earliest).
func (d Date) Before(other Date) bool {
	if d.Year != other.Year {
		return d.Year < other.Year
	}
	if d.Month != other.Month {
		return d.Month < other.Month
	}
	return d.Day < other.Day
}

// Equal reports whether d and other carry the same parsed components.
func (d Date) Equal(other Date) bool {
	return d.Year == other.Year && d.Month == other.Month && d.Day == other.Day &&
		d.Precision == other.Precision
}

// Range is a parsed EDTF interval, "start/end". Either endpoint may be Open.
type Range struct {
	Start Date
	End   Date
}

// EDTF is the result of parsing one EDTF string: either a single Date or a
// Range. Exactly one of the two is meaningful, selected by IsRange.
type EDTF struct {
	IsRange bool
	Single  Date
	Span    Range

	// Raw is the original input, kept around for diagnostics.
	Raw string
}

// Parse interprets an EDTF string. It accepts plain ISO 8601 calendar
// dates ("2020", "2020-03", "2020-03-14"), the uncertainty/approximation
// qualifiers ("2020?", "2020~", "2020%"), open range endpoints ("1977/.."
// or "../1977"), and two-endpoint intervals ("1977/1980").
//
// An empty string is not an error: it parses to a zero Date (PrecisionNone),
// matching the "missing date" rendering policy rather than InvalidDate.
func Parse(s string) (EDTF, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return EDTF{Raw: s}, nil
	}

	if idx := strings.Index(s, "/"); idx >= 0 {
		startStr := strings.TrimSpace(s[:idx])
		endStr := strings.TrimSpace(s[idx+1:])

		start, err := parseEndpoint(startStr)
		if err != nil {
			return EDTF{}, fmt.Errorf("edtf: parsing range start %q: %w", startStr, err)
		}
		end, err := parseEndpoint(endStr)
		if err != nil {
			return EDTF{}, fmt.Errorf("edtf: parsing range end %q: %w", endStr, err)
		}
		return EDTF{IsRange: true, Span: Range{Start: start, End: end}, Raw: s}, nil
	}

	d, err := parseEndpoint(s)
	if err != nil {
		return EDTF{}, fmt.Errorf("edtf: %w", err)
	}
	return EDTF{Single: d, Raw: s}, nil
}

func parseEndpoint(s string) (Date, error) {
	if s == ".." || s == "" {
		return Date{Open: true}, nil
	}

	qualifier := byte(0)
	if n := len(s); n > 0 {
		switch s[n-1] {
		case '?', '~', '%':
			qualifier = s[n-1]
			s = s[:n-1]
		}
	}

	parts := strings.Split(s, "-")
	if len(parts) == 0 || len(parts[0]) == 0 {
		return Date{}, fmt.Errorf("empty date component")
	}

	year, err := strconv.Atoi(parts[0])
	if err != nil {
		return Date{}, fmt.Errorf("invalid year %q: %w", parts[0], err)
	}

	d := Date{Year: year, Precision: PrecisionYear}
	if len(parts) >= 2 {
		month, err := strconv.Atoi(parts[1])
		if err != nil || month < 1 || month > 12 {
			return Date{}, fmt.Errorf("invalid month %q", parts[1])
		}
		d.Month = month
		d.Precision = PrecisionYearMonth
	}
	if len(parts) >= 3 {
		day, err := strconv.Atoi(parts[2])
		if err != nil || day < 1 || day > 31 {
			return Date{}, fmt.Errorf("invalid day %q", parts[2])
		}
		d.Day = day
		d.Precision = PrecisionFull
	}

	switch qualifier {
	case '?':
		d.Uncertain = true
	case '~':
		d.Approximate = true
	case '%':
		d.UncertainApproximate = true
	}

	return d, nil
}

// ISO renders d back to canonical EDTF form, the representation the
// round-trip property (parse then render in "iso" form returns the
// canonical EDTF string) checks against.
func (d Date) ISO() string {
	if d.Open {
		return ".."
	}
	var sb strings.Builder
	switch d.Precision {
	case PrecisionNone:
		return ""
	case PrecisionYear:
		fmt.Fprintf(&sb, "%04d", d.Year)
	case PrecisionYearMonth:
		fmt.Fprintf(&sb, "%04d-%02d", d.Year, d.Month)
	case PrecisionFull:
		fmt.Fprintf(&sb, "%04d-%02d-%02d", d.Year, d.Month, d.Day)
	}
	switch {
	case d.UncertainApproximate:
		sb.WriteByte('%')
	case d.Uncertain:
		sb.WriteByte('?')
	case d.Approximate:
		sb.WriteByte('~')
	}
	return sb.String()
}

// UnmarshalYAML parses a bare EDTF scalar ("1962", "1977/1980") directly
// into an EDTF value, so style/bibliography YAML can write dates as
// plain strings rather than a nested struct.
func (e *EDTF) UnmarshalYAML(value *yaml.Node) error {
	var s string
	if err := value.Decode(&s); err != nil {
		return err
	}
	parsed, err := Parse(s)
	if err != nil {
		return err
	}
	*e = parsed
	return nil
}

// ISO renders the full EDTF value (single date or range) in canonical form.
func (e EDTF) ISO() string {
	if !e.IsRange {
		return e.Single.ISO()
	}
	return e.Span.Start.ISO() + "/" + e.Span.End.ISO()
}
