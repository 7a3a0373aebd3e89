package reference

import "testing"

func TestNamePartResolveFallsBackToOriginal(t *testing.T) {
	part := NamePart{Multilingual: &MultilingualComplex{
		Original: "王",
		Lang:     "zh",
		Transliterations: map[string]string{
			"zh-Latn-pinyin": "Wang",
		},
	}}

	if got := part.Resolve(ModeTransliterated, "zh-Latn-pinyin"); got != "Wang" {
		t.Errorf("transliterated exact match = %q, want Wang", got)
	}
	if got := part.Resolve(ModeTransliterated, "zh-Latn-wadegiles"); got != "Wang" {
		t.Errorf("transliterated script-prefix fallback = %q, want Wang", got)
	}
	if got := part.Resolve(ModeTranslated, "en-US"); got != "王" {
		t.Errorf("translated with no translation available = %q, want original 王", got)
	}
	if got := part.Resolve(ModePrimary, "anything"); got != "王" {
		t.Errorf("primary mode = %q, want original", got)
	}
}

func TestContributorValidateRejectsMalformedStructuredName(t *testing.T) {
	c := NewStructuredContributor(StructuredName{})
	if err := c.Validate(); err == nil {
		t.Error("expected InvalidName error for empty structured name")
	}
}

func TestContributorValidateAcceptsLiteral(t *testing.T) {
	c := LiteralContributor("World Health Organization")
	if err := c.Validate(); err != nil {
		t.Errorf("unexpected error for literal contributor: %v", err)
	}
}

func TestMultilingualNameResolveSameDisambiguationKey(t *testing.T) {
	// S7: a CJK name with a pinyin transliteration and a monolingual
	// Latin name should resolve to the same rendered key.
	cjk := NewMultilingualContributor(MultilingualName{
		Original: StructuredName{
			Family: NamePart{Plain: "王"},
			Given:  NamePart{Plain: "小明"},
		},
		Transliterations: map[string]StructuredName{
			"zh-Latn-pinyin": {
				Family: NamePart{Plain: "Wang"},
				Given:  NamePart{Plain: "Xiaoming"},
			},
		},
	})
	latin := NewStructuredContributor(StructuredName{
		Family: NamePart{Plain: "Wang"},
		Given:  NamePart{Plain: "Xiaoming"},
	})

	cjkResolved, _ := cjk.StructuredForm(ModeTransliterated, "zh-Latn-pinyin")
	latinResolved, _ := latin.StructuredForm(ModeTransliterated, "zh-Latn-pinyin")

	if cjkResolved.Family.Plain != latinResolved.Family.Plain || cjkResolved.Given.Plain != latinResolved.Given.Plain {
		t.Errorf("expected matching rendered names, got %+v vs %+v", cjkResolved, latinResolved)
	}
}
