// Package template interprets a style's TemplateComponent tree against a
// single reference: resolving each node's value (via pkg/resolve),
// applying per-type overrides, suppressing affixes around content that
// resolved empty, and assembling the six-step formatting wrapper
// (text-case, emphasis/strong/small-caps, wrap, prefix/suffix, sibling
// delimiter, hyperlink) into a flat sequence of styled text runs that
// pkg/format renders to a concrete output syntax (§4.6).
package template

import (
	"strings"

	"github.com/csln/csln/pkg/dates"
	"github.com/csln/csln/pkg/disambiguate"
	"github.com/csln/csln/pkg/names"
	"github.com/csln/csln/pkg/numbers"
	"github.com/csln/csln/pkg/reference"
	"github.com/csln/csln/pkg/resolve"
	"github.com/csln/csln/pkg/style"
)

// Run is one contiguous span of rendered text sharing the same styling
// flags. Output formatters (pkg/format) walk a []Run and translate each
// span's flags into their target syntax.
type Run struct {
	Text      string
	Emph      bool
	Strong    bool
	SmallCaps bool
	Link      string // non-empty for a hyperlinked run (DOI/URL variables)
}

// Interpreter renders TemplateComponent trees against references.
type Interpreter struct {
	Resolver *resolve.Context
	Names    func(opts style.ContributorsOptions, mode reference.MultilingualMode) *names.Renderer
	Dates    *dates.Renderer
	Numbers  *numbers.Renderer

	// Hints carries the disambiguation state computed for the current
	// bibliography or citation (§4.7): per-reference name-count and
	// given-name expansion, year suffixes, and subsequent-author-substitute
	// marks. Nil disables all of it, rendering as if no reference ever
	// collided.
	Hints *disambiguate.Hints
}

// NewInterpreter wires an Interpreter from a shared resolution context.
func NewInterpreter(ctx *resolve.Context) *Interpreter {
	return &Interpreter{
		Resolver: ctx,
		Names: func(opts style.ContributorsOptions, mode reference.MultilingualMode) *names.Renderer {
			return names.NewRenderer(ctx.Locale, opts, mode)
		},
		Dates:   dates.NewRenderer(ctx.Locale),
		Numbers: numbers.NewRenderer(ctx.Locale),
	}
}

// RenderTemplate renders an ordered sequence of sibling components,
// inserting each component's own Delimiter... actually the delimiter
// used between siblings is the *parent* list's delimiter; top-level
// template arrays use listDelimiter as the separating text between
// components that produced non-empty output.
func (in *Interpreter) RenderTemplate(ref *reference.Reference, components []style.TemplateComponent, ctxOptions style.Options, listDelimiter string, subsequent bool) []Run {
	var groups [][]Run
	for _, comp := range components {
		runs := in.RenderComponent(ref, comp, ctxOptions, subsequent)
		if len(runs) > 0 {
			groups = append(groups, runs)
		}
	}
	return joinGroups(groups, listDelimiter)
}

// RenderComponent renders a single template node: it resolves the
// per-type override, resolves the value, and (if non-empty) wraps it per
// the six formatting steps. An empty resolution returns nil, suppressing
// prefix/suffix/wrap for the whole node (§4.2 Empty propagation, §4.6).
func (in *Interpreter) RenderComponent(ref *reference.Reference, comp style.TemplateComponent, ctxOptions style.Options, subsequent bool) []Run {
	resolved, shouldRender := comp.ResolveForType(ref.Type)
	if !shouldRender {
		return nil
	}
	opts := resolved.EffectiveOptions(ctxOptions)

	var runs []Run
	switch resolved.Kind {
	case style.KindList:
		if resolved.List == nil {
			return nil
		}
		inner := in.RenderTemplate(ref, resolved.List.Children, opts, resolved.Delimiter, subsequent)
		if len(inner) == 0 {
			return nil
		}
		runs = inner
	case style.KindContributor:
		runs = in.renderContributor(ref, resolved, opts, subsequent)
	case style.KindDate:
		runs = in.renderDate(ref, resolved, opts)
	case style.KindTitle:
		runs = in.renderText(ref, resolved)
	case style.KindVariable:
		runs = in.renderVariable(ref, resolved)
	case style.KindNumber:
		runs = in.renderNumber(ref, resolved, opts)
	case style.KindTerm:
		runs = in.renderTerm(resolved)
	default:
		return nil
	}
	if len(runs) == 0 {
		return nil
	}

	runs = applyTextCase(runs, resolved.TextCase)
	runs = applyStyling(runs, resolved)
	runs = applyWrap(runs, resolved.Wrap)
	runs = applyAffixes(runs, resolved.Prefix, resolved.Suffix)
	return runs
}

func (in *Interpreter) renderContributor(ref *reference.Reference, comp style.TemplateComponent, opts style.Options, subsequent bool) []Run {
	if comp.Contributor == nil {
		return nil
	}
	if in.Hints != nil && in.Hints.SubstitutedBase[ref.ID] &&
		opts.Contributors.SubsequentAuthorSubstitute != "" && comp.Contributor.Role == "author" {
		return textRun(opts.Contributors.SubsequentAuthorSubstitute)
	}
	v := in.Resolver.Resolve(ref, comp, true)
	if v.Empty {
		// Fall back to the substitute chain when the requested role is
		// genuinely absent — matches §4.2's substitution rule.
		if len(opts.Substitute.Order) > 0 {
			v = in.Resolver.ResolveSubstitute(ref, opts.Substitute.Order)
		}
		if v.Empty {
			return nil
		}
		if len(v.Contributors) == 0 {
			return textRun(v.Text)
		}
	}
	mode := multilingualModeFromOption(opts.Multilingual.NameMode)
	renderer := in.Names(opts.Contributors, mode)
	nameCount, givenNameLevel := 0, 0
	if in.Hints != nil {
		nameCount = in.Hints.NameCount[ref.ID]
		givenNameLevel = in.Hints.GivenNameLevel[ref.ID]
	}
	text := renderer.Render(v.Contributors, comp.Contributor.Form, subsequent, nameCount, givenNameLevel)
	if text == "" {
		return nil
	}
	if comp.Contributor.InnerPrefix != "" || comp.Contributor.InnerSuffix != "" {
		text = comp.Contributor.InnerPrefix + text + comp.Contributor.InnerSuffix
	}
	return textRun(numbers.StripPeriods(text, opts.StripPeriods))
}

func (in *Interpreter) renderDate(ref *reference.Reference, comp style.TemplateComponent, opts style.Options) []Run {
	if comp.Date == nil {
		return nil
	}
	v := in.Resolver.Resolve(ref, comp, true)
	if v.Empty {
		return nil
	}
	form := comp.Date.Form
	if form == "" {
		form = dateFormFromOption(opts.Dates.Form)
	}
	text := in.Dates.Render(v.Date, form)
	return textRun(text)
}

func (in *Interpreter) renderText(ref *reference.Reference, comp style.TemplateComponent) []Run {
	v := in.Resolver.Resolve(ref, comp, true)
	if v.Empty {
		return nil
	}
	return textRun(v.Text)
}

func (in *Interpreter) renderVariable(ref *reference.Reference, comp style.TemplateComponent) []Run {
	v := in.Resolver.Resolve(ref, comp, true)
	if v.Empty {
		return nil
	}
	if comp.Variable != nil && isHyperlinkVariable(comp.Variable.Name) {
		return []Run{{Text: v.Text, Link: hyperlinkTarget(comp.Variable.Name, v.Text)}}
	}
	return textRun(v.Text)
}

func (in *Interpreter) renderNumber(ref *reference.Reference, comp style.TemplateComponent, opts style.Options) []Run {
	v := in.Resolver.Resolve(ref, comp, true)
	if v.Empty {
		return nil
	}
	text := v.Text
	if comp.Number != nil && comp.Number.Label != "" {
		text = in.Numbers.RenderLabeled(text, comp.Number.Label)
	}
	return textRun(numbers.StripPeriods(text, opts.StripPeriods))
}

func (in *Interpreter) renderTerm(comp style.TemplateComponent) []Run {
	v := in.Resolver.Resolve(nil, comp, false)
	if v.Empty {
		return nil
	}
	return textRun(v.Text)
}

func textRun(s string) []Run {
	if s == "" {
		return nil
	}
	return []Run{{Text: s}}
}

// isHyperlinkVariable reports whether a variable name should render as a
// link target. DOI, URL and ISBN components each link their own value
// (DOI through https://doi.org/); when a template renders more than one
// of them, no priority is applied between them.
func isHyperlinkVariable(name string) bool {
	switch name {
	case "DOI", "URL", "ISBN":
		return true
	default:
		return false
	}
}

func hyperlinkTarget(name, value string) string {
	switch name {
	case "DOI":
		return "https://doi.org/" + value
	default:
		return value
	}
}

func multilingualModeFromOption(s string) reference.MultilingualMode {
	switch s {
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

func dateFormFromOption(s string) style.DateForm {
	switch s {
	case "short":
		return style.DateFormShort
	case "numeric":
		return style.DateFormNumeric
	case "iso":
		return style.DateFormISO
	default:
		return style.DateFormLong
	}
}

func applyTextCase(runs []Run, tc style.TextCase) []Run {
	if tc == style.TextCaseNone {
		return runs
	}
	for i, r := range runs {
		runs[i].Text = transformCase(r.Text, tc)
	}
	return runs
}

func transformCase(s string, tc style.TextCase) string {
	switch tc {
	case style.TextCaseUppercase:
		return strings.ToUpper(s)
	case style.TextCaseLowercase:
		return strings.ToLower(s)
	case style.TextCaseCapitalize:
		if s == "" {
			return s
		}
		return strings.ToUpper(s[:1]) + s[1:]
	case style.TextCaseSentence:
		return sentenceCase(s)
	case style.TextCaseTitle:
		return titleCase(s)
	default:
		return s
	}
}

func sentenceCase(s string) string {
	lower := strings.ToLower(s)
	if lower == "" {
		return lower
	}
	return strings.ToUpper(lower[:1]) + lower[1:]
}

// titleCase capitalizes each word except a short list of English
// function words, unless the word is first or last (standard title-case
// convention citation styles rely on).
var titleCaseMinorWords = map[string]bool{
	"a": true, "an": true, "and": true, "as": true, "at": true, "but": true,
	"by": true, "for": true, "in": true, "nor": true, "of": true, "on": true,
	"or": true, "so": true, "the": true, "to": true, "up": true, "yet": true,
}

func titleCase(s string) string {
	words := strings.Fields(s)
	for i, w := range words {
		lower := strings.ToLower(w)
		if i != 0 && i != len(words)-1 && titleCaseMinorWords[lower] {
			words[i] = lower
			continue
		}
		words[i] = strings.ToUpper(lower[:1]) + lower[1:]
	}
	return strings.Join(words, " ")
}

func applyStyling(runs []Run, comp style.TemplateComponent) []Run {
	if !comp.Emph && !comp.Strong && !comp.SmallCaps {
		return runs
	}
	for i := range runs {
		runs[i].Emph = runs[i].Emph || comp.Emph
		runs[i].Strong = runs[i].Strong || comp.Strong
		runs[i].SmallCaps = runs[i].SmallCaps || comp.SmallCaps
	}
	return runs
}

func applyWrap(runs []Run, wrap style.WrapKind) []Run {
	var open, close string
	switch wrap {
	case style.WrapParentheses:
		open, close = "(", ")"
	case style.WrapBrackets:
		open, close = "[", "]"
	case style.WrapQuotes:
		open, close = "“", "”"
	default:
		return runs
	}
	return append([]Run{{Text: open}}, append(runs, Run{Text: close})...)
}

func applyAffixes(runs []Run, prefix, suffix string) []Run {
	if prefix == "" && suffix == "" {
		return runs
	}
	if prefix != "" {
		runs = append([]Run{{Text: prefix}}, runs...)
	}
	if suffix != "" {
		runs = append(runs, Run{Text: suffix})
	}
	return runs
}

// joinGroups concatenates each non-empty sibling's runs, inserting a
// literal delimiter run between groups (§4.6's sibling delimiter rule).
func joinGroups(groups [][]Run, delimiter string) []Run {
	var out []Run
	for i, g := range groups {
		if i > 0 && delimiter != "" {
			out = append(out, Run{Text: delimiter})
		}
		out = append(out, g...)
	}
	return out
}

// PlainText flattens a run sequence to unstyled text, used by
// disambiguation/sorting code that needs a comparable string rather than
// a styled render.
func PlainText(runs []Run) string {
	var sb strings.Builder
	for _, r := range runs {
		sb.WriteString(r.Text)
	}
	return sb.String()
}
