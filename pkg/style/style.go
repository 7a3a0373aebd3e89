// Package style defines the typed CSLN style model: the template
// components a style composes citations and bibliography entries from,
// the three-tier options bundle that configures their rendering, and the
// named presets a style can pull those option bundles from.
package style

import "github.com/csln/csln/pkg/reference"

// CitationSpec is the "citation" top-level block of a style: the
// template used inside an in-text citation, together with citation-scoped
// option overrides.
type CitationSpec struct {
	Template []TemplateComponent `yaml:"template" json:"template"`
	Options  Options             `yaml:"options,omitempty" json:"options,omitempty"`

	// LayoutDelimiter separates multiple CitationItems within one
	// CitationRequest (e.g. "; " for author-date, ", " for numeric).
	LayoutDelimiter string `yaml:"layout-delimiter,omitempty" json:"layout-delimiter,omitempty"`
}

// BibliographyGroup selects which references fall into one output group
// and in what relative order groups are emitted (§4.9).
type BibliographyGroup struct {
	Name     string             `yaml:"name,omitempty" json:"name,omitempty"`
	Selector GroupSelector      `yaml:"selector,omitempty" json:"selector,omitempty"`
	SortKeys []SortKey          `yaml:"sort,omitempty" json:"sort,omitempty"`
}

// GroupSelector matches a reference using one of type/cited/field/not;
// exactly one of these should be set on a given selector node, with Not
// wrapping a nested selector.
type GroupSelector struct {
	Type  []reference.Type `yaml:"type,omitempty" json:"type,omitempty"`
	Cited *bool            `yaml:"cited,omitempty" json:"cited,omitempty"`
	Field string           `yaml:"field,omitempty" json:"field,omitempty"`
	Not   *GroupSelector   `yaml:"not,omitempty" json:"not,omitempty"`
}

// SortDirection is ascending or descending.
type SortDirection string

const (
	SortAscending  SortDirection = "ascending"
	SortDescending SortDirection = "descending"
)

// SortKey names one field in a sort template (§4.8). Names is mutually
// exclusive with Variable.
type SortKey struct {
	Variable string        `yaml:"variable,omitempty" json:"variable,omitempty"`
	Names    string        `yaml:"names,omitempty" json:"names,omitempty"`
	Dir      SortDirection `yaml:"direction,omitempty" json:"direction,omitempty"`
}

// BibliographySpec is the "bibliography" top-level block of a style.
type BibliographySpec struct {
	Template []TemplateComponent `yaml:"template" json:"template"`
	Options  Options             `yaml:"options,omitempty" json:"options,omitempty"`

	// Overrides per reference Type let a bibliography swap its entire
	// entry template for certain types (§4.6's per-type template
	// replacement), distinct from a component-level ComponentOverride.
	TypeTemplates map[reference.Type][]TemplateComponent `yaml:"type-templates,omitempty" json:"type-templates,omitempty"`

	Groups   []BibliographyGroup `yaml:"groups,omitempty" json:"groups,omitempty"`
	SortKeys []SortKey           `yaml:"sort,omitempty" json:"sort,omitempty"`

	SecondFieldAlign bool `yaml:"second-field-align,omitempty" json:"second-field-align,omitempty"`
}

// Info carries descriptive, non-rendering style metadata.
type Info struct {
	Title      string   `yaml:"title,omitempty" json:"title,omitempty"`
	ID         string   `yaml:"id,omitempty" json:"id,omitempty"`
	Categories []string `yaml:"categories,omitempty" json:"categories,omitempty"`
}

// Style is a complete CSLN style: its locale chain, global options, and
// citation/bibliography specifications.
type Style struct {
	Info Info `yaml:"info,omitempty" json:"info,omitempty"`

	// DefaultLocale is the BCP-47 tag used when no request-level locale
	// is given.
	DefaultLocale string `yaml:"default-locale,omitempty" json:"default-locale,omitempty"`

	// LocaleOverrides holds inline per-tag term/month/ordinal overrides.
	// It is decoded with the style but no package reads it: rendering
	// uses the loaded locale without these overrides applied.
	LocaleOverrides map[string]string `yaml:"locale-overrides,omitempty" json:"locale-overrides,omitempty"`

	Options Options `yaml:"options,omitempty" json:"options,omitempty"`

	Citation     CitationSpec     `yaml:"citation" json:"citation"`
	Bibliography BibliographySpec `yaml:"bibliography" json:"bibliography"`
}

// TemplateFor returns the template a bibliography entry should render
// with: the per-type override template if the style declares one for
// ref's Type, otherwise the bibliography's base template (§4.6).
func (b BibliographySpec) TemplateFor(refType reference.Type) []TemplateComponent {
	if tpl, ok := b.TypeTemplates[refType]; ok {
		return tpl
	}
	return b.Template
}

// EffectiveCitationOptions merges global style options with the citation spec's
// context-tier overrides (the global->context step of the three-tier
// merge; component-tier overrides are applied by the template
// interpreter per node).
func (s Style) EffectiveCitationOptions() Options {
	return Merge(s.Options, s.Citation.Options)
}

// EffectiveBibliographyOptions merges global style options with the
// bibliography spec's context-tier overrides.
func (s Style) EffectiveBibliographyOptions() Options {
	return Merge(s.Options, s.Bibliography.Options)
}
