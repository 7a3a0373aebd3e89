package locale

// BuiltinEnUS is the engine's built-in fallback locale, used whenever a
// requested BCP-47 tag resolves to nothing else in the chain (§4.1's
// final "en-US fallback" link). It is intentionally minimal. No locale
// data files ship with the module; a locale file loaded from a locale
// directory (by pkg/stylelib or the CLI) is used in place of this one,
// not merged over it.
func BuiltinEnUS() *Locale {
	return &Locale{
		Tag:                "en-US",
		PunctuationInQuote: true,
		Terms: map[string]Term{
			"editor": {
				Singular: map[Form]string{FormLong: "editor", FormShort: "ed."},
				Plural:   map[Form]string{FormLong: "editors", FormShort: "eds."},
			},
			"translator": {
				Singular: map[Form]string{FormLong: "translator", FormShort: "trans."},
				Plural:   map[Form]string{FormLong: "translators", FormShort: "trans."},
			},
			"director": {
				Singular: map[Form]string{FormLong: "director", FormShort: "dir."},
				Plural:   map[Form]string{FormLong: "directors", FormShort: "dirs."},
			},
			"and": {
				Singular: map[Form]string{FormLong: "and", FormSymbol: "&"},
			},
			"et-al": {
				Singular: map[Form]string{FormLong: "et al."},
			},
			"ibid": {
				Singular: map[Form]string{FormLong: "ibid."},
			},
			"no-date": {
				Singular: map[Form]string{FormLong: "n.d."},
			},
			"page": {
				Singular: map[Form]string{FormLong: "page", FormShort: "p."},
				Plural:   map[Form]string{FormLong: "pages", FormShort: "pp."},
			},
			"chapter": {
				Singular: map[Form]string{FormLong: "chapter", FormShort: "ch."},
				Plural:   map[Form]string{FormLong: "chapters", FormShort: "chs."},
			},
			"section": {
				Singular: map[Form]string{FormLong: "section", FormShort: "sec."},
				Plural:   map[Form]string{FormLong: "sections", FormShort: "secs."},
			},
			"volume": {
				Singular: map[Form]string{FormLong: "volume", FormShort: "vol."},
				Plural:   map[Form]string{FormLong: "volumes", FormShort: "vols."},
			},
			"number": {
				Singular: map[Form]string{FormLong: "number", FormShort: "no."},
				Plural:   map[Form]string{FormLong: "numbers", FormShort: "nos."},
			},
			"figure": {
				Singular: map[Form]string{FormLong: "figure", FormShort: "fig."},
				Plural:   map[Form]string{FormLong: "figures", FormShort: "figs."},
			},
			"line": {
				Singular: map[Form]string{FormLong: "line", FormShort: "l."},
				Plural:   map[Form]string{FormLong: "lines", FormShort: "ll."},
			},
			"note": {
				Singular: map[Form]string{FormLong: "note", FormShort: "n."},
				Plural:   map[Form]string{FormLong: "notes", FormShort: "nn."},
			},
			"paragraph": {
				Singular: map[Form]string{FormLong: "paragraph", FormShort: "para."},
				Plural:   map[Form]string{FormLong: "paragraphs", FormShort: "paras."},
			},
			"book": {
				Singular: map[Form]string{FormLong: "book", FormShort: "bk."},
				Plural:   map[Form]string{FormLong: "books", FormShort: "bks."},
			},
			"part": {
				Singular: map[Form]string{FormLong: "part", FormShort: "pt."},
				Plural:   map[Form]string{FormLong: "parts", FormShort: "pts."},
			},
			"column": {
				Singular: map[Form]string{FormLong: "column", FormShort: "col."},
				Plural:   map[Form]string{FormLong: "columns", FormShort: "cols."},
			},
			"uncertain-date-marker": {
				Singular: map[Form]string{FormSymbol: "?"},
			},
			"approximate-date-prefix": {
				Singular: map[Form]string{FormLong: "ca. "},
			},
		},
		Months: [12]MonthNames{
			{Short: "Jan.", Long: "January"}, {Short: "Feb.", Long: "February"},
			{Short: "Mar.", Long: "March"}, {Short: "Apr.", Long: "April"},
			{Short: "May", Long: "May"}, {Short: "Jun.", Long: "June"},
			{Short: "Jul.", Long: "July"}, {Short: "Aug.", Long: "August"},
			{Short: "Sep.", Long: "September"}, {Short: "Oct.", Long: "October"},
			{Short: "Nov.", Long: "November"}, {Short: "Dec.", Long: "December"},
		},
		Ordinals: map[string]string{
			"1": "st", "2": "nd", "3": "rd", "teen": "th", "default": "th",
		},
	}
}
