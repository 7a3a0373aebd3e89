// Package resolve implements CSLN's value resolvers (§4.2): pure
// functions that look up a template component's value on a reference,
// honoring multilingual-mode selection, parent-title linkage, the
// contributor substitution chain, and per-citation variable-once
// tracking, and reporting Empty so the template interpreter can suppress
// affixes around content that did not materialize.
package resolve

import (
	"github.com/csln/csln/pkg/edtf"
	"github.com/csln/csln/pkg/locale"
	"github.com/csln/csln/pkg/reference"
	"github.com/csln/csln/pkg/style"
)

// Value is a resolved component value: exactly one of Text, Contributors,
// or Date is meaningful, keyed by the requesting component's Kind.
type Value struct {
	Empty        bool
	Text         string
	Contributors []reference.Contributor
	Date         edtf.EDTF
	HasDate      bool
}

// Context carries everything a resolution needs beyond the reference and
// component themselves: the bibliography (for parent-title linkage), the
// active locale (for term/label lookups), the multilingual mode, and a
// per-citation-render variable-once tracker (§4.10's "each variable
// contributes to at most one rendered component per citation" rule).
type Context struct {
	Bibliography *reference.Bibliography
	Locale       *locale.Locale
	Options      style.Options
	used         map[string]bool
}

// NewContext builds a resolution context. Call Reset between citation
// items that should each get an independent variable-once budget.
func NewContext(bib *reference.Bibliography, loc *locale.Locale, opts style.Options) *Context {
	return &Context{Bibliography: bib, Locale: loc, Options: opts, used: make(map[string]bool)}
}

// Reset clears the variable-once tracker, e.g. between successive
// citation items or bibliography entries.
func (c *Context) Reset() {
	c.used = make(map[string]bool)
}

func (c *Context) nameMode() reference.MultilingualMode {
	switch c.Options.Multilingual.NameMode {
	case "transliterated":
		return reference.ModeTransliterated
	case "translated":
		return reference.ModeTranslated
	case "combined":
		return reference.ModeCombined
	default:
		return reference.ModePrimary
	}
}

func (c *Context) titleMode() reference.MultilingualMode {
	switch c.Options.Multilingual.TitleMode {
	case "transliterated":
		return reference.ModeTransliterated
	case "translated":
		return reference.ModeTranslated
	case "combined":
		return reference.ModeCombined
	default:
		return reference.ModePrimary
	}
}

func (c *Context) localeLang() string {
	if c.Locale != nil {
		return c.Locale.Tag
	}
	return ""
}

// Resolve looks up comp's value on ref, marking any consumed variable as
// used. markUsed controls whether this lookup counts against the
// variable-once budget (substitution probes should pass false until a
// candidate is actually chosen).
func (c *Context) Resolve(ref *reference.Reference, comp style.TemplateComponent, markUsed bool) Value {
	switch comp.Kind {
	case style.KindContributor:
		return c.resolveContributor(ref, comp.Contributor, markUsed)
	case style.KindDate:
		return c.resolveDate(ref, comp.Date, markUsed)
	case style.KindTitle:
		return c.resolveTitle(ref, comp.Title, markUsed)
	case style.KindVariable:
		return c.resolveVariable(ref, comp.Variable, markUsed)
	case style.KindNumber:
		return c.resolveNumber(ref, comp.Number, markUsed)
	case style.KindTerm:
		return c.resolveTerm(comp.Term)
	default:
		return Value{Empty: true}
	}
}

func (c *Context) markUsed(key string) {
	if c.used == nil {
		c.used = make(map[string]bool)
	}
	c.used[key] = true
}

// IsUsed reports whether a variable key has already contributed to a
// rendered component in the current scope.
func (c *Context) IsUsed(key string) bool {
	return c.used[key]
}

func (c *Context) resolveContributor(ref *reference.Reference, comp *style.ContributorComponent, markUsed bool) Value {
	if comp == nil {
		return Value{Empty: true}
	}
	key := "contributor:" + comp.Role
	list := ref.ContributorsFor(comp.Role)
	if len(list) == 0 {
		return Value{Empty: true}
	}
	if markUsed {
		c.markUsed(key)
	}
	return Value{Contributors: list}
}

func (c *Context) resolveDate(ref *reference.Reference, comp *style.DateComponent, markUsed bool) Value {
	if comp == nil {
		return Value{Empty: true}
	}
	d, ok := ref.Date(comp.Variable)
	if !ok || (d.Single.IsZero() && !d.IsRange) {
		return Value{Empty: true}
	}
	if markUsed {
		c.markUsed("date:" + comp.Variable)
	}
	return Value{Date: d, HasDate: true}
}

// resolveTitle resolves a title-family field, falling back to the
// reference's parent when the field is absent on ref itself (§4.2's
// parent-title linkage: a chapter with no container-title inherits its
// parent book's title).
func (c *Context) resolveTitle(ref *reference.Reference, comp *style.TitleComponent, markUsed bool) Value {
	if comp == nil {
		return Value{Empty: true}
	}
	varName := titleVariableName(comp.Variant)
	v, ok := ref.Variable(varName)
	if (!ok || v.IsEmpty()) && comp.Variant == style.TitleContainer && c.Bibliography != nil {
		if parent, hasParent := c.Bibliography.Parent(ref); hasParent {
			if pv, pok := parent.Variable(titleVariableName(style.TitleMain)); pok && !pv.IsEmpty() {
				v, ok = pv, true
			}
		}
	}
	if !ok || v.IsEmpty() {
		return Value{Empty: true}
	}
	if markUsed {
		c.markUsed("variable:" + varName)
	}
	return Value{Text: v.Resolve(c.titleMode(), c.localeLang())}
}

func titleVariableName(variant style.TitleVariant) string {
	switch variant {
	case style.TitleContainer:
		return "container-title"
	case style.TitleCollection:
		return "collection-title"
	case style.TitleShort:
		return "title-short"
	default:
		return "title"
	}
}

func (c *Context) resolveVariable(ref *reference.Reference, comp *style.VariableComponent, markUsed bool) Value {
	if comp == nil {
		return Value{Empty: true}
	}
	v, ok := ref.Variable(comp.Name)
	if !ok || v.IsEmpty() {
		return Value{Empty: true}
	}
	if markUsed {
		c.markUsed("variable:" + comp.Name)
	}
	return Value{Text: v.Resolve(reference.ModePrimary, c.localeLang())}
}

func (c *Context) resolveNumber(ref *reference.Reference, comp *style.NumberComponent, markUsed bool) Value {
	if comp == nil {
		return Value{Empty: true}
	}
	v, ok := ref.Variable(comp.Variable)
	if !ok || v.IsEmpty() {
		return Value{Empty: true}
	}
	text := v.Original
	if comp.Label != "" && c.Locale != nil {
		if label, lok := c.Locale.Term(comp.Label, locale.FormShort, comp.Plural); lok {
			text = label + " " + text
		}
	}
	if markUsed {
		c.markUsed("variable:" + comp.Variable)
	}
	return Value{Text: text}
}

func (c *Context) resolveTerm(comp *style.TermComponent) Value {
	if comp == nil || c.Locale == nil {
		return Value{Empty: true}
	}
	text, ok := c.Locale.Term(comp.TermID, locale.FormLong, comp.Plural)
	if !ok {
		return Value{Empty: true}
	}
	return Value{Text: text}
}

// ResolveSubstitute walks a substitute option's fallback role/title order
// (§4.2, "substitute" group) and returns the first non-empty candidate
// not yet consumed by the variable-once tracker, marking it used.
func (c *Context) ResolveSubstitute(ref *reference.Reference, order []string) Value {
	for _, candidate := range order {
		if candidate == "title" {
			if c.IsUsed("variable:title") {
				continue
			}
			v := c.resolveTitle(ref, &style.TitleComponent{Variant: style.TitleMain}, true)
			if !v.Empty {
				return v
			}
			continue
		}
		if c.IsUsed("contributor:" + candidate) {
			continue
		}
		v := c.resolveContributor(ref, &style.ContributorComponent{Role: candidate}, true)
		if !v.Empty {
			return v
		}
	}
	return Value{Empty: true}
}
