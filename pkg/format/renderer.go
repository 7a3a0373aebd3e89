package format

import (
	"strings"

	"github.com/csln/csln/pkg/template"
)

// PlainRenderer renders runs as unstyled text: every emphasis/strong/
// small-caps flag and hyperlink is dropped, keeping only the text
// content.
type PlainRenderer struct{}

func (PlainRenderer) Name() string { return "plain" }

func (PlainRenderer) Render(runs []template.Run) string {
	var sb strings.Builder
	for _, r := range runs {
		sb.WriteString(r.Text)
	}
	return sb.String()
}

// HTMLRenderer renders runs as HTML, wrapping emphasized/strong/
// small-caps spans in <i>/<b>/<span> and hyperlinked runs in <a href>.
type HTMLRenderer struct {
	PunctuationInQuote bool
}

func (HTMLRenderer) Name() string { return "html" }

func (h HTMLRenderer) Render(runs []template.Run) string {
	var sb strings.Builder
	for _, r := range runs {
		text := htmlEscape(r.Text)
		if r.SmallCaps {
			text = `<span style="font-variant:small-caps">` + text + `</span>`
		}
		if r.Emph {
			text = "<i>" + text + "</i>"
		}
		if r.Strong {
			text = "<b>" + text + "</b>"
		}
		if r.Link != "" {
			text = `<a href="` + htmlEscape(r.Link) + `">` + text + "</a>"
		}
		sb.WriteString(text)
	}
	return repositionPunctuation(sb.String(), h.PunctuationInQuote, `”`, `“`)
}

func htmlEscape(s string) string {
	replacer := strings.NewReplacer("&", "&amp;", "<", "&lt;", ">", "&gt;")
	return replacer.Replace(s)
}

// LaTeXRenderer renders runs as LaTeX source, using \textit/\textbf/
// \textsc and \href.
type LaTeXRenderer struct {
	PunctuationInQuote bool
}

func (LaTeXRenderer) Name() string { return "latex" }

func (l LaTeXRenderer) Render(runs []template.Run) string {
	var sb strings.Builder
	for _, r := range runs {
		text := latexEscape(r.Text)
		if r.SmallCaps {
			text = `\textsc{` + text + `}`
		}
		if r.Emph {
			text = `\textit{` + text + `}`
		}
		if r.Strong {
			text = `\textbf{` + text + `}`
		}
		if r.Link != "" {
			text = `\href{` + latexEscape(r.Link) + `}{` + text + `}`
		}
		sb.WriteString(text)
	}
	return repositionPunctuation(sb.String(), l.PunctuationInQuote, `''`, "``")
}

func latexEscape(s string) string {
	replacer := strings.NewReplacer(
		`\`, `\textbackslash{}`,
		"&", `\&`,
		"%", `\%`,
		"$", `\$`,
		"#", `\#`,
		"_", `\_`,
		"{", `\{`,
		"}", `\}`,
	)
	return replacer.Replace(s)
}

// DjotRenderer renders runs in the Djot markup profile §4.11's document
// processor scans citations out of: `_emphasis_`, `*strong*`, and
// `[text](url)` links. CSLN has no small-caps Djot convention, so
// small-caps runs fall back to plain text.
type DjotRenderer struct {
	PunctuationInQuote bool
}

func (DjotRenderer) Name() string { return "djot" }

func (d DjotRenderer) Render(runs []template.Run) string {
	var sb strings.Builder
	for _, r := range runs {
		text := r.Text
		if r.Emph {
			text = "_" + text + "_"
		}
		if r.Strong {
			text = "*" + text + "*"
		}
		if r.Link != "" {
			text = "[" + text + "](" + r.Link + ")"
		}
		sb.WriteString(text)
	}
	return repositionPunctuation(sb.String(), d.PunctuationInQuote, `”`, `“`)
}

// repositionPunctuation moves a trailing sentence-terminal (period or
// comma) that immediately follows a closing quote to just before it,
// the American-convention "punctuation inside quotes" rule some locales
// set via Locale.PunctuationInQuote (§4.1, §4.10). When disabled, text
// passes through unchanged (the British/logical-punctuation convention).
func repositionPunctuation(text string, enabled bool, closeQuote, openQuote string) string {
	if !enabled {
		return text
	}
	var out strings.Builder
	runes := []rune(text)
	closeRunes := []rune(closeQuote)
	for i := 0; i < len(runes); i++ {
		if i+len(closeRunes) < len(runes) && matchesAt(runes, i, closeRunes) {
			next := runes[i+len(closeRunes)]
			if next == '.' || next == ',' {
				out.WriteRune(next)
				out.WriteString(closeQuote)
				i += len(closeRunes)
				continue
			}
		}
		out.WriteRune(runes[i])
	}
	return out.String()
}

func matchesAt(runes []rune, i int, pattern []rune) bool {
	if i+len(pattern) > len(runes) {
		return false
	}
	for j, p := range pattern {
		if runes[i+j] != p {
			return false
		}
	}
	return true
}
