package reference

import (
	"github.com/csln/csln/pkg/clsnerr"
	"gopkg.in/yaml.v3"
)

// MultilingualComplex wraps a plain field (given name, family name, a
// title, ...) with parallel transliteration and translation variants
// keyed by BCP-47 tag, alongside the language of the original.
type MultilingualComplex struct {
	Original        string            `yaml:"original" json:"original"`
	Lang            string            `yaml:"lang,omitempty" json:"lang,omitempty"`
	Transliterations map[string]string `yaml:"transliterations,omitempty" json:"transliterations,omitempty"`
	Translations     map[string]string `yaml:"translations,omitempty" json:"translations,omitempty"`
}

// StructuredName is a contributor's name broken into CSL's canonical
// parts. Every part is either a plain string or a MultilingualComplex;
// exactly one of Plain/Multilingual is set per part (the zero value
// means "part absent", e.g. no suffix).
type StructuredName struct {
	Family              NamePart `yaml:"family,omitempty" json:"family,omitempty"`
	Given               NamePart `yaml:"given,omitempty" json:"given,omitempty"`
	NonDroppingParticle NamePart `yaml:"non-dropping-particle,omitempty" json:"non-dropping-particle,omitempty"`
	DroppingParticle    NamePart `yaml:"dropping-particle,omitempty" json:"dropping-particle,omitempty"`
	Suffix              NamePart `yaml:"suffix,omitempty" json:"suffix,omitempty"`
}

// NamePart is one field of a StructuredName.
type NamePart struct {
	Plain        string                `yaml:"plain,omitempty" json:"plain,omitempty"`
	Multilingual *MultilingualComplex `yaml:"multilingual,omitempty" json:"multilingual,omitempty"`
}

// UnmarshalYAML accepts either a bare scalar ("Kuhn") or the full
// {plain:, multilingual:} mapping form.
func (p *NamePart) UnmarshalYAML(value *yaml.Node) error {
	if value.Kind == yaml.ScalarNode {
		return value.Decode(&p.Plain)
	}
	type plain NamePart
	var decoded plain
	if err := value.Decode(&decoded); err != nil {
		return err
	}
	*p = NamePart(decoded)
	return nil
}

// IsEmpty reports whether the part carries no text at all.
func (p NamePart) IsEmpty() bool {
	if p.Multilingual != nil {
		return p.Multilingual.Original == ""
	}
	return p.Plain == ""
}

// Resolve returns the part's text under a resolution mode, matching
// §4.2's multilingual-mode rules: transliterated tries exact BCP-47,
// then script-prefix, then original; translated uses the same exact-tag
// then script-prefix lookup on the translations, then falls back to
// original (a translation keyed by a bare language such as "en" is not
// matched from a locale tag such as "en-US"); combined concatenates
// "{transliteration} [{translation}]"; primary is always original.
func (p NamePart) Resolve(mode MultilingualMode, localeLang string) string {
	if p.Multilingual == nil {
		return p.Plain
	}
	m := p.Multilingual
	switch mode {
	case ModeTransliterated:
		if v, ok := lookupBCP47(m.Transliterations, localeLang); ok {
			return v
		}
		return m.Original
	case ModeTranslated:
		if v, ok := lookupBCP47(m.Translations, localeLang); ok {
			return v
		}
		return m.Original
	case ModeCombined:
		translit := m.Original
		if v, ok := lookupBCP47(m.Transliterations, localeLang); ok {
			translit = v
		}
		if v, ok := lookupBCP47(m.Translations, localeLang); ok {
			return translit + " [" + v + "]"
		}
		return translit
	default: // ModePrimary
		return m.Original
	}
}

// MultilingualMode selects which parallel variant of a multilingual
// field is displayed.
type MultilingualMode string

const (
	ModePrimary        MultilingualMode = "primary"
	ModeTransliterated MultilingualMode = "transliterated"
	ModeTranslated     MultilingualMode = "translated"
	ModeCombined       MultilingualMode = "combined"
)

// lookupBCP47 implements the fallback chain shared by titles and names:
// exact tag (including variant subtag, e.g. "ja-Latn-hepburn"), then
// script-prefix match ("ja-Latn"), then no match.
func lookupBCP47(table map[string]string, tag string) (string, bool) {
	if tag == "" || table == nil {
		return "", false
	}
	if v, ok := table[tag]; ok {
		return v, true
	}
	prefix := scriptPrefix(tag)
	if prefix != "" {
		for key, v := range table {
			if scriptPrefix(key) == prefix && key != tag {
				return v, true
			}
		}
	}
	return "", false
}

// scriptPrefix returns the language-script portion of a BCP-47 tag, e.g.
// "ja-Latn" from "ja-Latn-hepburn", or "" if the tag has fewer than two
// subtags.
func scriptPrefix(tag string) string {
	parts := splitTag(tag)
	if len(parts) < 2 {
		return ""
	}
	return parts[0] + "-" + parts[1]
}

func splitTag(tag string) []string {
	var parts []string
	start := 0
	for i := 0; i <= len(tag); i++ {
		if i == len(tag) || tag[i] == '-' {
			if i > start {
				parts = append(parts, tag[start:i])
			}
			start = i + 1
		}
	}
	return parts
}

// MultilingualName is a top-level holistic name variant: a full
// StructuredName in its original language, plus parallel
// transliterations and translations of the whole name.
type MultilingualName struct {
	Original         StructuredName            `yaml:"original" json:"original"`
	Lang             string                    `yaml:"lang,omitempty" json:"lang,omitempty"`
	Transliterations map[string]StructuredName `yaml:"transliterations,omitempty" json:"transliterations,omitempty"`
	Translations     map[string]StructuredName `yaml:"translations,omitempty" json:"translations,omitempty"`
}

// Resolve picks the StructuredName to render under a given mode and
// locale language, following the same fallback chain as NamePart but at
// the whole-name granularity (used for CJK holistic names where each
// part cannot sensibly transliterate independently).
func (m MultilingualName) Resolve(mode MultilingualMode, localeLang string) StructuredName {
	switch mode {
	case ModeTransliterated:
		if v, ok := lookupStructuredName(m.Transliterations, localeLang); ok {
			return v
		}
		return m.Original
	case ModeTranslated:
		if v, ok := lookupStructuredName(m.Translations, localeLang); ok {
			return v
		}
		return m.Original
	default:
		return m.Original
	}
}

func lookupStructuredName(table map[string]StructuredName, tag string) (StructuredName, bool) {
	if tag == "" || table == nil {
		return StructuredName{}, false
	}
	if v, ok := table[tag]; ok {
		return v, true
	}
	prefix := scriptPrefix(tag)
	if prefix != "" {
		for key, v := range table {
			if scriptPrefix(key) == prefix && key != tag {
				return v, true
			}
		}
	}
	return StructuredName{}, false
}

// ContributorKind tags which variant of Contributor is populated.
type ContributorKind int

const (
	ContributorLiteral ContributorKind = iota
	ContributorStructured
	ContributorMultilingual
)

// Contributor is one entry in a reference's role-keyed contributor list.
// §3's invariant (i) forbids free-form comma-parsed strings: a
// Contributor is always one of a literal organizational name, a
// structured family/given name, or a holistic multilingual name.
type Contributor struct {
	Kind         ContributorKind
	Literal      string
	Structured   StructuredName
	Multilingual MultilingualName
}

// LiteralContributor builds a literal (corporate/organizational) contributor.
func LiteralContributor(name string) Contributor {
	return Contributor{Kind: ContributorLiteral, Literal: name}
}

// NewStructuredContributor builds a structured-name contributor.
func NewStructuredContributor(n StructuredName) Contributor {
	return Contributor{Kind: ContributorStructured, Structured: n}
}

// NewMultilingualContributor builds a holistic multilingual contributor.
func NewMultilingualContributor(n MultilingualName) Contributor {
	return Contributor{Kind: ContributorMultilingual, Multilingual: n}
}

// UnmarshalYAML accepts a bare scalar ("World Health Organization") for
// a literal contributor, or a mapping with family/given/... fields for a
// structured contributor, or a mapping with an "original"/
// "transliterations" shape for a holistic multilingual contributor.
func (c *Contributor) UnmarshalYAML(value *yaml.Node) error {
	if value.Kind == yaml.ScalarNode {
		var s string
		if err := value.Decode(&s); err != nil {
			return err
		}
		*c = LiteralContributor(s)
		return nil
	}

	var probe struct {
		Literal string `yaml:"literal"`
		Original *StructuredName `yaml:"original"`
	}
	if err := value.Decode(&probe); err != nil {
		return err
	}
	if probe.Literal != "" {
		*c = LiteralContributor(probe.Literal)
		return nil
	}
	if probe.Original != nil {
		var m MultilingualName
		if err := value.Decode(&m); err != nil {
			return err
		}
		*c = NewMultilingualContributor(m)
		return nil
	}
	var s StructuredName
	if err := value.Decode(&s); err != nil {
		return err
	}
	*c = NewStructuredContributor(s)
	return nil
}

// Validate checks that a Contributor carries a recognized shape,
// returning an InvalidName error otherwise (§4.3's "malformed name"
// error condition).
func (c Contributor) Validate() error {
	switch c.Kind {
	case ContributorLiteral:
		if c.Literal == "" {
			return clsnerr.New(clsnerr.KindInvalidName, "literal contributor has empty name")
		}
	case ContributorStructured:
		if c.Structured.Family.IsEmpty() && c.Structured.Given.IsEmpty() {
			return clsnerr.New(clsnerr.KindInvalidName, "structured contributor has neither family nor given name")
		}
	case ContributorMultilingual:
		if c.Multilingual.Original.Family.IsEmpty() && c.Multilingual.Original.Given.IsEmpty() {
			return clsnerr.New(clsnerr.KindInvalidName, "multilingual contributor has neither family nor given name")
		}
	default:
		return clsnerr.New(clsnerr.KindInvalidName, "contributor is neither literal, structured, nor multilingual")
	}
	return nil
}

// StructuredForm returns the StructuredName to render for this
// contributor under the given multilingual mode, with IsLiteral
// reporting whether the caller should render Literal verbatim instead.
func (c Contributor) StructuredForm(mode MultilingualMode, localeLang string) (name StructuredName, isLiteral bool) {
	switch c.Kind {
	case ContributorLiteral:
		return StructuredName{}, true
	case ContributorMultilingual:
		return c.Multilingual.Resolve(mode, localeLang), false
	default:
		return c.Structured, false
	}
}
