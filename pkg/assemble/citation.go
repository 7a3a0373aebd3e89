// Package assemble implements CSLN's citation assembler (§4.9, C10): it
// turns a CitationRequest of one or more CitationItems into the ordered,
// delimited sequence of rendered citation-item runs a style's citation
// template produces, handling locator resolution, same-author merging,
// and the visibility modifiers (suppress-author, author-only, nocite).
// A request's Form and an item's Infix are carried on the types but are
// not read by Render: integral and non-integral requests render alike.
package assemble

import (
	"fmt"

	"github.com/csln/csln/pkg/disambiguate"
	"github.com/csln/csln/pkg/locale"
	"github.com/csln/csln/pkg/reference"
	"github.com/csln/csln/pkg/resolve"
	"github.com/csln/csln/pkg/style"
	"github.com/csln/csln/pkg/template"
)

// Form selects integral vs. non-integral in-text citation rendering
// (§3): integral weaves the author into the sentence grammar ("As Kuhn
// (1962) argues..."); non-integral is the standard parenthetical form.
type Form string

const (
	FormNonIntegral Form = "non-integral"
	FormIntegral    Form = "integral"
)

// Visibility modifies how a citation item's author renders.
type Visibility string

const (
	VisibilityNormal         Visibility = ""
	VisibilitySuppressAuthor Visibility = "suppress-author"
	VisibilityAuthorOnly     Visibility = "author-only"
)

// CitationItem is one reference cited at one point in a CitationRequest
// (§3): most requests carry one item, but grouped citations like
// "(Smith 2020; Jones 2019)" carry several.
type CitationItem struct {
	ReferenceID string
	Locator     string // e.g. "12-14"
	LocatorType string // e.g. "page", "chapter"
	Prefix      string
	Suffix      string
	Visibility  Visibility

	// Infix is text for between the author and the locator of an integral
	// citation ("Kuhn, writing in 1962, notes..."). Render does not read
	// it, so it does not appear in the output.
	Infix string
}

// CitationRequest is one point in a document where a citation renders
// (§3), possibly containing several CitationItems grouped together.
type CitationRequest struct {
	Items      []CitationItem
	Form       Form
	Subsequent bool // true if an identical citation to the same single reference already appeared (ibid.-style note styles)
}

// Assembler assembles CitationRequests against a bibliography and style.
type Assembler struct {
	Bibliography *reference.Bibliography
	Locale       *locale.Locale
	Style        style.Style
	Interpreter  *template.Interpreter
	Resolver     *resolve.Context
	Hints        *disambiguate.Hints

	// numbers maps reference id to its 1-based position in the
	// bibliography's source order, the numbering a processing: numeric
	// style cites by (§4.6).
	numbers map[string]int
}

// NewAssembler wires an Assembler from its dependencies.
func NewAssembler(bib *reference.Bibliography, loc *locale.Locale, st style.Style, hints *disambiguate.Hints) *Assembler {
	ctx := resolve.NewContext(bib, loc, st.EffectiveCitationOptions())
	interp := template.NewInterpreter(ctx)
	interp.Hints = hints
	return &Assembler{
		Bibliography: bib,
		Locale:       loc,
		Style:        st,
		Interpreter:  interp,
		Resolver:     ctx,
		Hints:        hints,
		numbers:      NumberReferences(bib),
	}
}

// NumberReferences assigns each reference in bib its 1-based source-order
// position, the shared numbering both the citation assembler and a
// numeric bibliography render against so in-text "[1]" and the
// bibliography's "[1]" prefix agree (§4.6).
func NumberReferences(bib *reference.Bibliography) map[string]int {
	numbers := make(map[string]int)
	for i, ref := range bib.All() {
		numbers[ref.ID] = i + 1
	}
	return numbers
}

// Render assembles req into a styled run sequence, applying the
// citation template to each visible item and joining items with the
// citation spec's layout delimiter (§4.9).
func (a *Assembler) Render(req CitationRequest) []template.Run {
	merged := mergeSameAuthor(req.Items, a.sameAuthor)

	var groups [][]template.Run
	for _, item := range merged {
		ref, ok := a.Bibliography.Get(item.ReferenceID)
		if !ok {
			continue
		}
		a.Resolver.Reset()
		runs := a.renderItem(ref, item, req.Subsequent)
		if len(runs) > 0 {
			groups = append(groups, runs)
		}
	}
	return joinRuns(groups, a.Style.Citation.LayoutDelimiter)
}

// mergedItem is a CitationItem after same-author merging.
type mergedItem struct {
	CitationItem
}

// sameAuthor reports whether two reference ids share the same first
// author's family name (or literal name) and author count — the
// condition mergeSameAuthor checks before suppressing a repeated author.
func (a *Assembler) sameAuthor(idA, idB string) bool {
	refA, okA := a.Bibliography.Get(idA)
	refB, okB := a.Bibliography.Get(idB)
	if !okA || !okB {
		return false
	}
	authorsA := refA.ContributorsFor("author")
	authorsB := refB.ContributorsFor("author")
	if len(authorsA) == 0 || len(authorsB) == 0 || len(authorsA) != len(authorsB) {
		return false
	}
	nameA, litA := authorsA[0].StructuredForm(reference.ModePrimary, "")
	nameB, litB := authorsB[0].StructuredForm(reference.ModePrimary, "")
	if litA != litB {
		return false
	}
	if litA {
		return authorsA[0].Literal == authorsB[0].Literal
	}
	return nameA.Family.Plain == nameB.Family.Plain
}

// mergeSameAuthor flags each item whose author matches the preceding
// item's with VisibilitySuppressAuthor, so the repeated author text is
// elided (§4.9). Items are not collapsed into one unit: each still
// renders its own year/locator as a separate group, and Render joins the
// groups with the citation layout delimiter ("Smith 2019; 2020"); no
// year-suffix delimiter is used.
func mergeSameAuthor(items []CitationItem, sameAuthor func(a, b string) bool) []mergedItem {
	result := make([]mergedItem, 0, len(items))
	for i, item := range items {
		m := mergedItem{CitationItem: item}
		if i > 0 && item.Visibility == VisibilityNormal && sameAuthor(items[i-1].ReferenceID, item.ReferenceID) {
			m.Visibility = VisibilitySuppressAuthor
		}
		result = append(result, m)
	}
	return result
}

// renderItem renders one citation item's full template, applying
// locator label resolution, visibility modifiers, and the disambiguation
// hints' year suffix.
func (a *Assembler) renderItem(ref *reference.Reference, item mergedItem, subsequent bool) []template.Run {
	ctxOptions := a.Style.EffectiveCitationOptions()

	var runs []template.Run
	if a.Style.Options.Processing == style.ProcessingNumeric {
		runs = []template.Run{{Text: fmt.Sprintf("[%d]", a.numbers[ref.ID])}}
	} else {
		components := a.filterByVisibility(a.Style.Citation.Template, item.Visibility)
		runs = a.Interpreter.RenderTemplate(ref, components, ctxOptions, a.Style.Citation.LayoutDelimiter, subsequent)
		if a.Hints != nil {
			if suffix, ok := a.Hints.YearSuffix[ref.ID]; ok {
				runs = append(runs, template.Run{Text: suffix})
			}
		}
	}

	if item.Locator != "" {
		runs = append(runs, a.renderLocator(item)...)
	}
	if item.Prefix != "" {
		runs = append([]template.Run{{Text: item.Prefix}}, runs...)
	}
	if item.Suffix != "" {
		runs = append(runs, template.Run{Text: item.Suffix})
	}
	return runs
}

// filterByVisibility drops the contributor component(s) from the
// template for suppress-author citations, or drops every non-contributor
// component for author-only citations.
func (a *Assembler) filterByVisibility(components []style.TemplateComponent, vis Visibility) []style.TemplateComponent {
	if vis == VisibilityNormal {
		return components
	}
	var out []style.TemplateComponent
	for _, c := range components {
		isAuthor := c.Kind == style.KindContributor
		switch vis {
		case VisibilitySuppressAuthor:
			if !isAuthor {
				out = append(out, c)
			}
		case VisibilityAuthorOnly:
			if isAuthor {
				out = append(out, c)
			}
		}
	}
	return out
}

// renderLocator formats a citation item's locator with its label term
// pluralized appropriately, preceded by the style's comma separator
// convention (", " between year and locator).
func (a *Assembler) renderLocator(item mergedItem) []template.Run {
	labelTerm := item.LocatorType
	if labelTerm == "" {
		labelTerm = "page"
	}
	label, ok := "", false
	if a.Locale != nil {
		label, ok = a.Locale.Term(labelTerm, locale.FormShort, isMultiValue(item.Locator))
	}
	text := item.Locator
	if ok {
		text = label + " " + text
	}
	return []template.Run{{Text: ", "}, {Text: text}}
}

func isMultiValue(locator string) bool {
	for _, r := range locator {
		if r == '-' || r == ',' {
			return true
		}
	}
	return false
}

func joinRuns(groups [][]template.Run, delimiter string) []template.Run {
	if delimiter == "" {
		delimiter = "; "
	}
	var out []template.Run
	for i, g := range groups {
		if i > 0 {
			out = append(out, template.Run{Text: delimiter})
		}
		out = append(out, g...)
	}
	return out
}
