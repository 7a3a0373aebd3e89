package style

import "github.com/csln/csln/pkg/reference"

// ComponentKind identifies which tagged variant of TemplateComponent is
// populated (§3's closed template-component union).
type ComponentKind string

const (
	KindContributor ComponentKind = "contributor"
	KindDate        ComponentKind = "date"
	KindTitle       ComponentKind = "title"
	KindVariable    ComponentKind = "variable"
	KindNumber      ComponentKind = "number"
	KindList        ComponentKind = "list"
	KindTerm        ComponentKind = "term"
)

// WrapKind selects the bracketing punctuation wrapped around a rendered
// component (§3).
type WrapKind string

const (
	WrapNone       WrapKind = ""
	WrapParentheses WrapKind = "parentheses"
	WrapBrackets   WrapKind = "brackets"
	WrapQuotes     WrapKind = "quotes"
)

// TextCase selects a case transform applied to a rendered component.
type TextCase string

const (
	TextCaseNone       TextCase = ""
	TextCaseUppercase  TextCase = "uppercase"
	TextCaseLowercase  TextCase = "lowercase"
	TextCaseCapitalize TextCase = "capitalize-first"
	TextCaseTitle      TextCase = "title"
	TextCaseSentence   TextCase = "sentence"
)

// NameForm selects how a contributor component renders each name.
type NameForm string

const (
	NameFormLong   NameForm = "long"
	NameFormShort  NameForm = "short"
	NameFormCount  NameForm = "count"
)

// DateForm selects how a date component renders.
type DateForm string

const (
	DateFormLong    DateForm = "long"
	DateFormShort   DateForm = "short"
	DateFormNumeric DateForm = "numeric"
	DateFormYear    DateForm = "year"
	DateFormISO     DateForm = "iso"
)

// TitleVariant selects which title-family field a title component reads.
type TitleVariant string

const (
	TitleMain      TitleVariant = "main"
	TitleContainer TitleVariant = "container"
	TitleCollection TitleVariant = "collection"
	TitleShort     TitleVariant = "short"
)

// ContributorComponent renders one contributor role.
type ContributorComponent struct {
	Role        string   `yaml:"role" json:"role"`
	Form        NameForm `yaml:"form,omitempty" json:"form,omitempty"`
	InnerPrefix string   `yaml:"inner-prefix,omitempty" json:"inner-prefix,omitempty"`
	InnerSuffix string   `yaml:"inner-suffix,omitempty" json:"inner-suffix,omitempty"`
	Label       bool     `yaml:"label,omitempty" json:"label,omitempty"`
}

// DateComponent renders one date variable.
type DateComponent struct {
	Variable string   `yaml:"variable" json:"variable"`
	Form     DateForm `yaml:"form,omitempty" json:"form,omitempty"`
}

// TitleComponent renders one title-family field.
type TitleComponent struct {
	Variant TitleVariant `yaml:"variant,omitempty" json:"variant,omitempty"`
}

// VariableComponent renders an arbitrary flat variable by name.
type VariableComponent struct {
	Name string `yaml:"name" json:"name"`
}

// NumberComponent renders a numeric variable, optionally prefixed by its
// locale label (e.g. "vol. 3").
type NumberComponent struct {
	Variable string `yaml:"variable" json:"variable"`
	Label    string `yaml:"label,omitempty" json:"label,omitempty"`
	Plural   bool   `yaml:"plural,omitempty" json:"plural,omitempty"`
}

// ListComponent groups child components with its own delimiter.
type ListComponent struct {
	Children []TemplateComponent `yaml:"children,omitempty" json:"children,omitempty"`
}

// TermComponent renders a fixed locale term.
type TermComponent struct {
	TermID string `yaml:"term" json:"term"`
	Plural bool   `yaml:"plural,omitempty" json:"plural,omitempty"`
}

// ComponentOverride replaces or adjusts a TemplateComponent's attributes
// when the active reference's Type matches its map key (§3's per-type
// override mechanism). Nil fields mean "inherit the base attribute".
type ComponentOverride struct {
	Prefix    *string   `yaml:"prefix,omitempty" json:"prefix,omitempty"`
	Suffix    *string   `yaml:"suffix,omitempty" json:"suffix,omitempty"`
	Wrap      *WrapKind `yaml:"wrap,omitempty" json:"wrap,omitempty"`
	Suppress  *bool     `yaml:"suppress,omitempty" json:"suppress,omitempty"`
	TextCase  *TextCase `yaml:"text-case,omitempty" json:"text-case,omitempty"`
	Replace   *TemplateComponent `yaml:"replace,omitempty" json:"replace,omitempty"`
}

// TemplateComponent is the closed tagged union every style template node
// belongs to. Exactly one of the Kind-matching pointer fields is set.
type TemplateComponent struct {
	Kind ComponentKind `yaml:"kind" json:"kind"`

	Prefix    string   `yaml:"prefix,omitempty" json:"prefix,omitempty"`
	Suffix    string   `yaml:"suffix,omitempty" json:"suffix,omitempty"`
	Wrap      WrapKind `yaml:"wrap,omitempty" json:"wrap,omitempty"`
	Delimiter string   `yaml:"delimiter,omitempty" json:"delimiter,omitempty"`
	Emph      bool     `yaml:"emph,omitempty" json:"emph,omitempty"`
	Strong    bool     `yaml:"strong,omitempty" json:"strong,omitempty"`
	SmallCaps bool     `yaml:"small-caps,omitempty" json:"small-caps,omitempty"`
	TextCase  TextCase `yaml:"text-case,omitempty" json:"text-case,omitempty"`
	Suppress  bool     `yaml:"suppress,omitempty" json:"suppress,omitempty"`

	Overrides map[reference.Type]ComponentOverride `yaml:"overrides,omitempty" json:"overrides,omitempty"`

	// Options carries component-tier option overrides (§3's three-tier
	// merge: global -> context -> component). Nil means this component
	// contributes no overrides of its own.
	Options *Options `yaml:"options,omitempty" json:"options,omitempty"`

	Contributor *ContributorComponent `yaml:"contributor,omitempty" json:"contributor,omitempty"`
	Date        *DateComponent        `yaml:"date,omitempty" json:"date,omitempty"`
	Title       *TitleComponent       `yaml:"title,omitempty" json:"title,omitempty"`
	Variable    *VariableComponent    `yaml:"variable,omitempty" json:"variable,omitempty"`
	Number      *NumberComponent      `yaml:"number,omitempty" json:"number,omitempty"`
	List        *ListComponent        `yaml:"list,omitempty" json:"list,omitempty"`
	Term        *TermComponent        `yaml:"term,omitempty" json:"term,omitempty"`
}

// EffectiveOptions merges contextOptions (already the global->context
// result) with this component's own component-tier overrides, if any.
func (c TemplateComponent) EffectiveOptions(contextOptions Options) Options {
	if c.Options == nil {
		return contextOptions
	}
	return Merge(contextOptions, *c.Options)
}

// ResolveForType applies this component's per-type override, if any,
// returning a new TemplateComponent (or the full replacement when the
// override names one) and whether the result should be rendered at all.
func (c TemplateComponent) ResolveForType(refType reference.Type) (TemplateComponent, bool) {
	ov, ok := c.Overrides[refType]
	if !ok {
		return c, !c.Suppress
	}
	if ov.Replace != nil {
		return *ov.Replace, !ov.Replace.Suppress
	}
	resolved := c
	if ov.Prefix != nil {
		resolved.Prefix = *ov.Prefix
	}
	if ov.Suffix != nil {
		resolved.Suffix = *ov.Suffix
	}
	if ov.Wrap != nil {
		resolved.Wrap = *ov.Wrap
	}
	if ov.TextCase != nil {
		resolved.TextCase = *ov.TextCase
	}
	suppress := c.Suppress
	if ov.Suppress != nil {
		suppress = *ov.Suppress
	}
	resolved.Suppress = suppress
	return resolved, !suppress
}
