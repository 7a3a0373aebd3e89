// Package clsnerr defines the typed error kinds callers can match on with
// errors.As, matching the error-kind table in the processing spec: parse
// and validation errors abort eagerly, per-entry rendering errors are
// isolated to the offending entry, and migration warnings accumulate in
// a report rather than aborting.
package clsnerr

import "fmt"

// Kind classifies an error for callers that branch on error type rather
// than message text.
type Kind string

const (
	KindParseError        Kind = "parse_error"
	KindValidationError   Kind = "validation_error"
	KindUnknownReference  Kind = "unknown_reference"
	KindInvalidName       Kind = "invalid_name"
	KindInvalidDate       Kind = "invalid_date"
	KindMigrationWarning  Kind = "migration_warning"
	KindMigrationFatal    Kind = "migration_fatal"
	KindRenderError       Kind = "render_error"
)

// Error is a CSLN error carrying a Kind plus actionable context: the
// offending path/field and, for enum mismatches, the accepted values.
type Error struct {
	Kind     Kind
	Message  string
	Path     string   // e.g. "bibliography[3].contributors.author[0]"
	Field    string   // offending field name, if applicable
	Accepted []string // accepted enum values, if applicable
	Err      error    // wrapped underlying error, if any
}

func (e *Error) Error() string {
	msg := e.Message
	if e.Path != "" {
		msg = fmt.Sprintf("%s (at %s)", msg, e.Path)
	}
	if e.Field != "" {
		msg = fmt.Sprintf("%s [field: %s]", msg, e.Field)
	}
	if len(e.Accepted) > 0 {
		msg = fmt.Sprintf("%s (accepted: %v)", msg, e.Accepted)
	}
	if e.Err != nil {
		msg = fmt.Sprintf("%s: %v", msg, e.Err)
	}
	return msg
}

func (e *Error) Unwrap() error {
	return e.Err
}

// Is allows errors.Is(err, &Error{Kind: KindInvalidDate}) style matching
// on Kind alone.
func (e *Error) Is(target error) bool {
	t, ok := target.(*Error)
	if !ok {
		return false
	}
	return t.Kind == e.Kind
}

// New constructs an Error of the given kind.
func New(kind Kind, message string) *Error {
	return &Error{Kind: kind, Message: message}
}

// Wrap constructs an Error of the given kind wrapping an underlying error.
func Wrap(kind Kind, message string, err error) *Error {
	return &Error{Kind: kind, Message: message, Err: err}
}

// WithPath returns a copy of e with Path set, for annotating an error as
// it propagates up through nested structures (bibliography index,
// template component, etc.).
func (e *Error) WithPath(path string) *Error {
	clone := *e
	clone.Path = path
	return &clone
}

// Report accumulates non-fatal issues encountered during a pass that
// should continue despite them — migration warnings during §4.12's
// pipeline, or per-entry render errors during bibliography rendering
// (§7's "bibliography continues" policy).
type Report struct {
	Entries []*Error
}

// Add appends an error to the report.
func (r *Report) Add(err *Error) {
	r.Entries = append(r.Entries, err)
}

// HasFatal reports whether the report contains any MigrationFatal entry.
func (r *Report) HasFatal() bool {
	for _, e := range r.Entries {
		if e.Kind == KindMigrationFatal {
			return true
		}
	}
	return false
}

// OfKind returns the subset of entries matching a Kind.
func (r *Report) OfKind(kind Kind) []*Error {
	var out []*Error
	for _, e := range r.Entries {
		if e.Kind == kind {
			out = append(out, e)
		}
	}
	return out
}
