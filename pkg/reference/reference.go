// Package reference defines the typed bibliographic entity CSLN renders
// citations and bibliography entries from: its multilingual fields,
// structured names, EDTF dates, and parent-reference linkage.
package reference

import (
	"fmt"

	"github.com/csln/csln/pkg/edtf"
)

// Type classifies the kind of work a Reference describes. The set is
// closed for the purposes of style-template overrides (§6 of the type
// catalogue) but new values may appear in data without causing a parse
// failure — unrecognized types render with the bibliography's base
// template (style.BibliographySpec.TemplateFor).
type Type string

const (
	TypeArticle           Type = "article"
	TypeArticleJournal    Type = "article-journal"
	TypeArticleMagazine   Type = "article-magazine"
	TypeArticleNewspaper  Type = "article-newspaper"
	TypeBook              Type = "book"
	TypeChapter           Type = "chapter"
	TypeReport            Type = "report"
	TypeThesis            Type = "thesis"
	TypeWebpage           Type = "webpage"
	TypePaperConference   Type = "paper-conference"
	TypeDataset           Type = "dataset"
	TypeSoftware          Type = "software"
	TypeStandard          Type = "standard"
	TypePatent            Type = "patent"
	TypeLegalCase         Type = "legal-case"
	TypeStatute           Type = "statute"
	TypeTreaty            Type = "treaty"
	TypeRegulation        Type = "regulation"
	TypeHearing           Type = "hearing"
	TypeBrief             Type = "brief"
	TypeClassic           Type = "classic"
	TypeDocument          Type = "document"
)

// KnownTypes lists every Type the catalogue names, in the order §6 lists
// them. Used by validators that want to flag genuinely unknown values
// while still letting the renderer fall back gracefully at render time.
var KnownTypes = []Type{
	TypeArticle, TypeArticleJournal, TypeArticleMagazine, TypeArticleNewspaper,
	TypeBook, TypeChapter, TypeReport, TypeThesis, TypeWebpage,
	TypePaperConference, TypeDataset, TypeSoftware, TypeStandard, TypePatent,
	TypeLegalCase, TypeStatute, TypeTreaty, TypeRegulation, TypeHearing,
	TypeBrief, TypeClassic, TypeDocument,
}

// ParentRef links a Reference to its container (e.g. a chapter's book, an
// article's journal issue). Exactly one of Inline or ByID is set.
type ParentRef struct {
	Inline *Reference `yaml:"inline,omitempty" json:"inline,omitempty"`
	ByID   string     `yaml:"id,omitempty" json:"id,omitempty"`
}

// Reference is a single bibliographic record.
type Reference struct {
	ID   string `yaml:"id" json:"id"`
	Type Type   `yaml:"type" json:"type"`

	// Variables holds scalar/multilingual fields: title, container-title,
	// publisher, pages, volume, issue, DOI, URL, ISBN, ISSN, and so on.
	// Keys are kebab-case variable names matching the style template's
	// Variable component selectors.
	Variables map[string]MultilingualString `yaml:"variables,omitempty" json:"variables,omitempty"`

	// Contributors is keyed by role: "author", "editor", "translator",
	// "director", and so on.
	Contributors map[string][]Contributor `yaml:"contributors,omitempty" json:"contributors,omitempty"`

	// Dates is keyed by role: "issued", "accessed", "event-date".
	Dates map[string]edtf.EDTF `yaml:"dates,omitempty" json:"dates,omitempty"`

	// Language is a BCP-47 tag for the reference's primary language.
	Language string `yaml:"language,omitempty" json:"language,omitempty"`

	Parent *ParentRef `yaml:"parent,omitempty" json:"parent,omitempty"`
}

// Variable returns the reference's value for a variable name, and whether
// it was present at all (an empty string variable is still "present").
func (r *Reference) Variable(name string) (MultilingualString, bool) {
	v, ok := r.Variables[name]
	return v, ok
}

// Date returns the EDTF date for a given role ("issued", "accessed", ...).
func (r *Reference) Date(role string) (edtf.EDTF, bool) {
	d, ok := r.Dates[role]
	return d, ok
}

// ContributorsFor returns the ordered contributor list for a role, or nil
// if the reference has none for that role.
func (r *Reference) ContributorsFor(role string) []Contributor {
	return r.Contributors[role]
}

// Bibliography is an ordered, id-indexed collection of references. Both
// array-of-references and id-keyed-map source forms (§6) normalize to
// this shape, which preserves source order for citation-order sorting
// and numeric bibliography numbering.
type Bibliography struct {
	order []string
	byID  map[string]*Reference
}

// NewBibliography builds a Bibliography from an ordered slice of
// references, validating id uniqueness and parent-by-id resolution
// (§3 invariants iii and iv).
func NewBibliography(refs []*Reference) (*Bibliography, error) {
	b := &Bibliography{byID: make(map[string]*Reference, len(refs))}
	for _, ref := range refs {
		if ref.ID == "" {
			return nil, fmt.Errorf("reference: empty id is not allowed")
		}
		if _, exists := b.byID[ref.ID]; exists {
			return nil, fmt.Errorf("reference: duplicate id %q", ref.ID)
		}
		b.byID[ref.ID] = ref
		b.order = append(b.order, ref.ID)
	}
	for _, ref := range refs {
		if ref.Parent != nil && ref.Parent.ByID != "" {
			if _, ok := b.byID[ref.Parent.ByID]; !ok {
				return nil, fmt.Errorf("reference %q: parent id %q does not resolve in bibliography", ref.ID, ref.Parent.ByID)
			}
		}
	}
	return b, nil
}

// Get returns the reference with the given id.
func (b *Bibliography) Get(id string) (*Reference, bool) {
	ref, ok := b.byID[id]
	return ref, ok
}

// All returns references in the bibliography's source order.
func (b *Bibliography) All() []*Reference {
	result := make([]*Reference, 0, len(b.order))
	for _, id := range b.order {
		result = append(result, b.byID[id])
	}
	return result
}

// Len returns the number of references.
func (b *Bibliography) Len() int {
	return len(b.order)
}

// Parent resolves a reference's parent, following ParentRef.ByID through
// the bibliography when the parent is not inline. Returns nil, false if
// the reference has no parent.
func (b *Bibliography) Parent(ref *Reference) (*Reference, bool) {
	if ref.Parent == nil {
		return nil, false
	}
	if ref.Parent.Inline != nil {
		return ref.Parent.Inline, true
	}
	if ref.Parent.ByID != "" {
		parent, ok := b.byID[ref.Parent.ByID]
		return parent, ok
	}
	return nil, false
}
