package style

// Presets expand a short name to a concrete option set, the way a style
// author writes `contributors-preset: apa` instead of spelling out every
// et-al/delimiter/particle rule by hand (§3).

// ContributorsPresets maps a preset name to its ContributorsOptions.
var ContributorsPresets = map[string]ContributorsOptions{
	"apa": {
		EtAl:                      EtAl{Min: 21, UseFirst: 19, UseLast: 1},
		InitializeWith:            ".",
		Conjunction:               "&",
		DelimiterPrecedesLast:     DelimiterAlways,
		DemoteNonDroppingParticle: false,
	},
	"chicago": {
		EtAl:                      EtAl{Min: 11, UseFirst: 7},
		Conjunction:               "and",
		DelimiterPrecedesLast:     DelimiterAlways,
		DemoteNonDroppingParticle: true,
	},
	"vancouver": {
		EtAl:           EtAl{Min: 7, UseFirst: 6},
		InitializeWith: "",
		Conjunction:    "",
	},
	"ieee": {
		EtAl:                  EtAl{Min: 7, UseFirst: 6},
		InitializeWith:        ".",
		Conjunction:           "and",
		DelimiterPrecedesLast: DelimiterAlways,
	},
	"harvard": {
		EtAl:                  EtAl{Min: 4, UseFirst: 3},
		Conjunction:           "and",
		DelimiterPrecedesLast: DelimiterAlways,
	},
	"numeric-compact": {
		EtAl:           EtAl{Min: 4, UseFirst: 1},
		InitializeWith: ".",
	},
	"numeric-medium": {
		EtAl:           EtAl{Min: 10, UseFirst: 3},
		InitializeWith: ".",
	},
}

// DatesPresets maps a preset name to its DatesOptions.
var DatesPresets = map[string]DatesOptions{
	"long":    {Form: "long"},
	"short":   {Form: "short"},
	"numeric": {Form: "numeric"},
	"iso":     {Form: "iso"},
}

// TitlesPresets maps a preset name to its TitlesOptions.
var TitlesPresets = map[string]TitlesOptions{
	"apa": {
		Emphasis:       TitleEmphasis{Monograph: true},
		Capitalization: "sentence",
	},
	"chicago": {
		Emphasis:       TitleEmphasis{Monograph: true},
		Capitalization: "title",
	},
	"ieee": {
		Emphasis:       TitleEmphasis{Periodical: true},
		Capitalization: "sentence",
	},
	"humanities": {
		Emphasis:       TitleEmphasis{Monograph: true, Periodical: true},
		Capitalization: "title",
	},
	"journal-emphasis": {
		Emphasis:       TitleEmphasis{Periodical: true},
		Capitalization: "title",
	},
	"scientific": {
		Emphasis:       TitleEmphasis{},
		Capitalization: "sentence",
	},
}

// SubstitutePresets maps a preset name to its SubstituteOptions.
var SubstitutePresets = map[string]SubstituteOptions{
	"standard": {
		Order: []string{"editor", "translator", "title"},
	},
	"editor-first": {
		Order: []string{"editor", "title"},
	},
	"title-first": {
		Order: []string{"title"},
	},
	"editor-translator-short": {
		Order: []string{"editor", "translator", "title"},
	},
	"director": {
		Order: []string{"director", "title"},
	},
}

// ResolveContributorsPreset returns the named preset, or the zero value
// and false when the name is unknown.
func ResolveContributorsPreset(name string) (ContributorsOptions, bool) {
	p, ok := ContributorsPresets[name]
	return p, ok
}

// ResolveDatesPreset returns the named dates preset.
func ResolveDatesPreset(name string) (DatesOptions, bool) {
	p, ok := DatesPresets[name]
	return p, ok
}

// ResolveTitlesPreset returns the named titles preset.
func ResolveTitlesPreset(name string) (TitlesOptions, bool) {
	p, ok := TitlesPresets[name]
	return p, ok
}

// ResolveSubstitutePreset returns the named substitute preset.
func ResolveSubstitutePreset(name string) (SubstituteOptions, bool) {
	p, ok := SubstitutePresets[name]
	return p, ok
}
