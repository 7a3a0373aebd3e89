package locale

import "testing"

func TestRegistryResolveFallbackChain(t *testing.T) {
	reg := NewRegistry("en-US")
	reg.Add(BuiltinEnUS())
	reg.Add(&Locale{Tag: "fr-FR", Terms: map[string]Term{
		"and": {Singular: map[Form]string{FormLong: "et"}},
	}})

	cases := []struct {
		tag     string
		wantTag string
	}{
		{"fr-FR", "fr-FR"},
		{"fr-CA", "fr-FR"}, // language-only fallback
		{"de-DE", "en-US"}, // default fallback
	}
	for _, tc := range cases {
		got := reg.Resolve(tc.tag)
		if got == nil || got.Tag != tc.wantTag {
			t.Errorf("Resolve(%q) = %v, want tag %q", tc.tag, got, tc.wantTag)
		}
	}
}

func TestTermLookupPluralFallsBackToSingular(t *testing.T) {
	term := Term{Singular: map[Form]string{FormLong: "page", FormShort: "p."}}
	got, ok := term.Lookup(FormShort, true)
	if !ok || got != "p." {
		t.Errorf("Lookup(short, plural) = %q, %v; want p., true", got, ok)
	}
}

func TestOrdinalTeensAlwaysTh(t *testing.T) {
	l := BuiltinEnUS()
	cases := map[int]string{1: "1st", 2: "2nd", 3: "3rd", 11: "11th", 12: "12th", 13: "13th", 21: "21st", 22: "22nd", 23: "23rd", 4: "4th"}
	for n, want := range cases {
		if got := l.Ordinal(n); got != want {
			t.Errorf("Ordinal(%d) = %q, want %q", n, got, want)
		}
	}
}

func TestMergeOverridesLastWins(t *testing.T) {
	base := BuiltinEnUS()
	override := &Locale{
		Tag: "en-US",
		Terms: map[string]Term{
			"and": {Singular: map[Form]string{FormLong: "plus"}},
		},
	}
	merged := Merge(base, override)
	got, _ := merged.Term("and", FormLong, false)
	if got != "plus" {
		t.Errorf("merged and = %q, want plus", got)
	}
	// Unrelated base terms survive the merge.
	if _, ok := merged.Term("editor", FormLong, false); !ok {
		t.Error("expected base term 'editor' to survive merge")
	}
}
