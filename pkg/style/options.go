package style

// EtAl configures name-list truncation for one context (citation or
// subsequent-citation, §4.3 step 1).
type EtAl struct {
	Min     int `yaml:"min,omitempty" json:"min,omitempty"`
	UseFirst int `yaml:"use-first,omitempty" json:"use-first,omitempty"`
	UseLast  int `yaml:"use-last,omitempty" json:"use-last,omitempty"`
}

// DelimiterPrecedesLast controls whether the list delimiter appears
// before the conjunction (§4.3 step 5).
type DelimiterPrecedesLast string

const (
	DelimiterAlways     DelimiterPrecedesLast = "always"
	DelimiterNever      DelimiterPrecedesLast = "never"
	DelimiterContextual DelimiterPrecedesLast = "contextual"
)

// NameOrder controls name-as-sort-order (§4.3 step 2).
type NameOrder string

const (
	NameOrderFirstOnly NameOrder = "first"
	NameOrderAll       NameOrder = "all"
	NameOrderNone      NameOrder = ""
)

// ContributorsOptions is the "contributors" option group (§3).
type ContributorsOptions struct {
	NameAsSortOrder             NameOrder             `yaml:"name-as-sort-order,omitempty" json:"name-as-sort-order,omitempty"`
	EtAl                        EtAl                  `yaml:"et-al,omitempty" json:"et-al,omitempty"`
	EtAlSubsequent               *EtAl                 `yaml:"et-al-subsequent,omitempty" json:"et-al-subsequent,omitempty"`
	InitializeWith              string                `yaml:"initialize-with,omitempty" json:"initialize-with,omitempty"`
	Conjunction                 string                `yaml:"conjunction,omitempty" json:"conjunction,omitempty"`
	DelimiterPrecedesLast        DelimiterPrecedesLast `yaml:"delimiter-precedes-last,omitempty" json:"delimiter-precedes-last,omitempty"`
	DelimiterPrecedesEtAl        DelimiterPrecedesLast `yaml:"delimiter-precedes-et-al,omitempty" json:"delimiter-precedes-et-al,omitempty"`
	DemoteNonDroppingParticle    bool                  `yaml:"demote-non-dropping-particle,omitempty" json:"demote-non-dropping-particle,omitempty"`
	DisambiguateAddNames         bool                  `yaml:"disambiguate-add-names,omitempty" json:"disambiguate-add-names,omitempty"`
	DisambiguateAddGivenname     bool                  `yaml:"disambiguate-add-givenname,omitempty" json:"disambiguate-add-givenname,omitempty"`
	SubsequentAuthorSubstitute  string                `yaml:"subsequent-author-substitute,omitempty" json:"subsequent-author-substitute,omitempty"`
	UseNativeOrdering           bool                  `yaml:"use-native-ordering,omitempty" json:"use-native-ordering,omitempty"`
}

// DatesOptions is the "dates" option group.
type DatesOptions struct {
	Form string `yaml:"form,omitempty" json:"form,omitempty"` // long | short | numeric | iso
}

// TitleEmphasis configures emphasis for one title kind.
type TitleEmphasis struct {
	Monograph bool `yaml:"monograph,omitempty" json:"monograph,omitempty"`
	Periodical bool `yaml:"periodical,omitempty" json:"periodical,omitempty"`
	Component bool `yaml:"component,omitempty" json:"component,omitempty"`
}

// TitlesOptions is the "titles" option group.
type TitlesOptions struct {
	Emphasis     TitleEmphasis `yaml:"emphasis,omitempty" json:"emphasis,omitempty"`
	Capitalization string      `yaml:"capitalization,omitempty" json:"capitalization,omitempty"`
}

// SubstituteOptions is the "substitute" option group: an ordered
// fallback list of contributor roles, optionally ending in "title".
type SubstituteOptions struct {
	Order []string `yaml:"order,omitempty" json:"order,omitempty"`
}

// ProcessingMode selects disambiguation/grouping defaults.
type ProcessingMode string

const (
	ProcessingAuthorDate ProcessingMode = "author-date"
	ProcessingNumeric    ProcessingMode = "numeric"
	ProcessingNote       ProcessingMode = "note"
)

// PageRangeFormat selects the page-range abbreviation policy (§4.5).
type PageRangeFormat string

const (
	PageRangeExpanded PageRangeFormat = "expanded"
	PageRangeMinimal  PageRangeFormat = "minimal"
	PageRangeChicago  PageRangeFormat = "chicago"
)

// MultilingualOptions is the "multilingual" option group.
type MultilingualOptions struct {
	TitleMode              string `yaml:"title-mode,omitempty" json:"title-mode,omitempty"`
	NameMode                string `yaml:"name-mode,omitempty" json:"name-mode,omitempty"`
	PreferredScript         string `yaml:"preferred-script,omitempty" json:"preferred-script,omitempty"`
	PreferredTransliteration string `yaml:"preferred-transliteration,omitempty" json:"preferred-transliteration,omitempty"`
}

// Options is the full three-tier option bundle: any zero-valued group
// here means "not set at this tier", and Merge fills zero groups/fields
// from the next-lower-precedence tier.
type Options struct {
	Contributors      ContributorsOptions  `yaml:"contributors,omitempty" json:"contributors,omitempty"`
	Dates             DatesOptions         `yaml:"dates,omitempty" json:"dates,omitempty"`
	Titles            TitlesOptions        `yaml:"titles,omitempty" json:"titles,omitempty"`
	Substitute        SubstituteOptions    `yaml:"substitute,omitempty" json:"substitute,omitempty"`
	Processing        ProcessingMode       `yaml:"processing,omitempty" json:"processing,omitempty"`
	PageRangeFormat   PageRangeFormat      `yaml:"page-range-format,omitempty" json:"page-range-format,omitempty"`
	Multilingual      MultilingualOptions  `yaml:"multilingual,omitempty" json:"multilingual,omitempty"`
	PunctuationInQuote *bool               `yaml:"punctuation-in-quote,omitempty" json:"punctuation-in-quote,omitempty"`
	StripPeriods      bool                 `yaml:"strip-periods,omitempty" json:"strip-periods,omitempty"`

	// NameSortOrder is a per-key name-sort-order map used by §4.8's
	// sort template ("family-given" vs "given-family").
	NameSortOrder map[string]string `yaml:"name-sort-order,omitempty" json:"name-sort-order,omitempty"`
}

// Merge layers override on top of base: component options override
// context options override global options (§3). Each group is merged
// independently; within a group, a non-zero override field wins.
func Merge(base, override Options) Options {
	merged := base

	if override.Contributors != (ContributorsOptions{}) {
		merged.Contributors = mergeContributors(base.Contributors, override.Contributors)
	}
	if override.Dates.Form != "" {
		merged.Dates.Form = override.Dates.Form
	}
	if override.Titles.Capitalization != "" {
		merged.Titles.Capitalization = override.Titles.Capitalization
	}
	if override.Titles.Emphasis != (TitleEmphasis{}) {
		merged.Titles.Emphasis = override.Titles.Emphasis
	}
	if len(override.Substitute.Order) > 0 {
		merged.Substitute.Order = override.Substitute.Order
	}
	if override.Processing != "" {
		merged.Processing = override.Processing
	}
	if override.PageRangeFormat != "" {
		merged.PageRangeFormat = override.PageRangeFormat
	}
	if override.Multilingual != (MultilingualOptions{}) {
		merged.Multilingual = mergeMultilingual(base.Multilingual, override.Multilingual)
	}
	if override.PunctuationInQuote != nil {
		merged.PunctuationInQuote = override.PunctuationInQuote
	}
	if override.StripPeriods {
		merged.StripPeriods = override.StripPeriods
	}
	if len(override.NameSortOrder) > 0 {
		if merged.NameSortOrder == nil {
			merged.NameSortOrder = map[string]string{}
		}
		for k, v := range override.NameSortOrder {
			merged.NameSortOrder[k] = v
		}
	}
	return merged
}

func mergeContributors(base, override ContributorsOptions) ContributorsOptions {
	merged := base
	if override.NameAsSortOrder != "" {
		merged.NameAsSortOrder = override.NameAsSortOrder
	}
	if override.EtAl != (EtAl{}) {
		merged.EtAl = override.EtAl
	}
	if override.EtAlSubsequent != nil {
		merged.EtAlSubsequent = override.EtAlSubsequent
	}
	if override.InitializeWith != "" {
		merged.InitializeWith = override.InitializeWith
	}
	if override.Conjunction != "" {
		merged.Conjunction = override.Conjunction
	}
	if override.DelimiterPrecedesLast != "" {
		merged.DelimiterPrecedesLast = override.DelimiterPrecedesLast
	}
	if override.DelimiterPrecedesEtAl != "" {
		merged.DelimiterPrecedesEtAl = override.DelimiterPrecedesEtAl
	}
	if override.DemoteNonDroppingParticle {
		merged.DemoteNonDroppingParticle = override.DemoteNonDroppingParticle
	}
	if override.DisambiguateAddNames {
		merged.DisambiguateAddNames = override.DisambiguateAddNames
	}
	if override.DisambiguateAddGivenname {
		merged.DisambiguateAddGivenname = override.DisambiguateAddGivenname
	}
	if override.SubsequentAuthorSubstitute != "" {
		merged.SubsequentAuthorSubstitute = override.SubsequentAuthorSubstitute
	}
	if override.UseNativeOrdering {
		merged.UseNativeOrdering = override.UseNativeOrdering
	}
	return merged
}

func mergeMultilingual(base, override MultilingualOptions) MultilingualOptions {
	merged := base
	if override.TitleMode != "" {
		merged.TitleMode = override.TitleMode
	}
	if override.NameMode != "" {
		merged.NameMode = override.NameMode
	}
	if override.PreferredScript != "" {
		merged.PreferredScript = override.PreferredScript
	}
	if override.PreferredTransliteration != "" {
		merged.PreferredTransliteration = override.PreferredTransliteration
	}
	return merged
}

// EffectiveEtAl returns the et-al settings to use, choosing the
// subsequent-citation variant when present and requested (§4.3 step 1).
func (c ContributorsOptions) EffectiveEtAl(subsequent bool) EtAl {
	if subsequent && c.EtAlSubsequent != nil {
		return *c.EtAlSubsequent
	}
	return c.EtAl
}
