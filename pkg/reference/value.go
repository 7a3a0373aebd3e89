package reference

import "gopkg.in/yaml.v3"

// MultilingualString is a scalar reference variable (title,
// container-title, publisher, ...) carrying the same original/
// transliteration/translation structure as a name part, but for free
// text rather than a name component.
type MultilingualString struct {
	Original         string            `yaml:"original" json:"original"`
	Lang             string            `yaml:"lang,omitempty" json:"lang,omitempty"`
	Transliterations map[string]string `yaml:"transliterations,omitempty" json:"transliterations,omitempty"`
	Translations     map[string]string `yaml:"translations,omitempty" json:"translations,omitempty"`
}

// Plain builds a MultilingualString with only an original value, the
// common case for monolingual bibliographic data.
func Plain(s string) MultilingualString {
	return MultilingualString{Original: s}
}

// IsEmpty reports whether the field carries no text at all, the
// condition that triggers Empty propagation (§4.2).
func (m MultilingualString) IsEmpty() bool {
	return m.Original == ""
}

// Resolve returns the field's text under a resolution mode and locale
// language, following the same fallback chain as NamePart.Resolve.
func (m MultilingualString) Resolve(mode MultilingualMode, localeLang string) string {
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
	default:
		return m.Original
	}
}

// UnmarshalYAML accepts either a bare scalar ("The Structure of
// Scientific Revolutions") or the full multilingual mapping form, so
// hand-authored bibliography YAML does not have to spell out
// `original:` for the common monolingual case.
func (m *MultilingualString) UnmarshalYAML(value *yaml.Node) error {
	if value.Kind == yaml.ScalarNode {
		return value.Decode(&m.Original)
	}
	type plain MultilingualString
	var p plain
	if err := value.Decode(&p); err != nil {
		return err
	}
	*m = MultilingualString(p)
	return nil
}
