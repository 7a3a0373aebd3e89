// Package docproc scans a Djot-profile document for citation markers,
// collecting citation requests in document order and tracking nocite
// references (§4.11). It does not render citations, replace the markers
// in the document, or emit a bibliography block.
//
// The marker syntax: `[@key]` (a standalone non-integral citation),
// `@key` (an integral, in-sentence citation), `[+@key]` (author-only),
// `[-@key]` (suppress-author), `[!@key]` (nocite — included in the
// bibliography but never rendered in text), with an optional
// `{locator}` suffix and `;` separating grouped keys inside brackets.
package docproc

import (
	"strings"

	"github.com/csln/csln/pkg/assemble"
)

// Marker is one recognized citation marker found in a document.
type Marker struct {
	Start, End int // byte offsets of the full marker in the source text
	Items      []assemble.CitationItem
	Form       assemble.Form
	Nocite     bool
}

// ScanResult is the outcome of scanning one document.
type ScanResult struct {
	Markers []Marker
	Nocite  []string // reference ids marked [!@key] anywhere in the document
}

// Scan walks text and returns every citation marker it finds, in
// document order.
func Scan(text string) ScanResult {
	var result ScanResult
	i := 0
	for i < len(text) {
		if text[i] == '[' {
			if end, marker, ok := scanBracketed(text, i); ok {
				result.Markers = append(result.Markers, marker)
				if marker.Nocite {
					for _, item := range marker.Items {
						result.Nocite = append(result.Nocite, item.ReferenceID)
					}
				}
				i = end
				continue
			}
		}
		if text[i] == '@' {
			if end, marker, ok := scanIntegral(text, i); ok {
				result.Markers = append(result.Markers, marker)
				i = end
				continue
			}
		}
		i++
	}
	return result
}

// scanBracketed recognizes `[@key]`, `[+@key]`, `[-@key]`, `[!@key]`,
// and grouped `[@key1; @key2{locator}]` forms.
func scanBracketed(text string, start int) (int, Marker, bool) {
	close := strings.IndexByte(text[start:], ']')
	if close < 0 {
		return 0, Marker{}, false
	}
	end := start + close + 1
	inner := text[start+1 : start+close]

	modifier := assemble.VisibilityNormal
	nocite := false
	switch {
	case strings.HasPrefix(inner, "+"):
		modifier = assemble.VisibilityAuthorOnly
		inner = inner[1:]
	case strings.HasPrefix(inner, "-"):
		modifier = assemble.VisibilitySuppressAuthor
		inner = inner[1:]
	case strings.HasPrefix(inner, "!"):
		nocite = true
		inner = inner[1:]
	}
	if !strings.Contains(inner, "@") {
		return 0, Marker{}, false
	}

	var items []assemble.CitationItem
	for _, segment := range strings.Split(inner, ";") {
		segment = strings.TrimSpace(segment)
		if !strings.HasPrefix(segment, "@") {
			continue
		}
		items = append(items, parseItem(segment[1:], modifier))
	}
	if len(items) == 0 {
		return 0, Marker{}, false
	}
	return end, Marker{Start: start, End: end, Items: items, Form: assemble.FormNonIntegral, Nocite: nocite}, true
}

// scanIntegral recognizes a bare `@key` marker outside brackets, used
// inline in running prose ("As @kuhn1962 observes...").
func scanIntegral(text string, start int) (int, Marker, bool) {
	end := start + 1
	for end < len(text) && isKeyByte(text[end]) {
		end++
	}
	if end == start+1 {
		return 0, Marker{}, false
	}
	key := text[start+1 : end]
	locatorEnd := end
	var locator string
	if end < len(text) && text[end] == '{' {
		close := strings.IndexByte(text[end:], '}')
		if close > 0 {
			locator = text[end+1 : end+close]
			locatorEnd = end + close + 1
		}
	}
	item := assemble.CitationItem{ReferenceID: key, Locator: locator}
	return locatorEnd, Marker{Start: start, End: locatorEnd, Items: []assemble.CitationItem{item}, Form: assemble.FormIntegral}, true
}

func parseItem(segment string, vis assemble.Visibility) assemble.CitationItem {
	key := segment
	locator := ""
	if idx := strings.IndexByte(segment, '{'); idx >= 0 {
		key = segment[:idx]
		if close := strings.IndexByte(segment[idx:], '}'); close > 0 {
			locator = segment[idx+1 : idx+close]
		}
	}
	return assemble.CitationItem{ReferenceID: strings.TrimSpace(key), Locator: locator, Visibility: vis}
}

func isKeyByte(b byte) bool {
	return b == '-' || b == '_' || (b >= 'a' && b <= 'z') || (b >= 'A' && b <= 'Z') || (b >= '0' && b <= '9')
}

// Requests converts every scanned marker into a CitationRequest, in
// document order, ready for the assembler (§4.9/§4.11 integration).
func Requests(result ScanResult) []assemble.CitationRequest {
	var out []assemble.CitationRequest
	for _, m := range result.Markers {
		if m.Nocite {
			continue
		}
		out = append(out, assemble.CitationRequest{Items: m.Items, Form: m.Form})
	}
	return out
}

// CitedIDs returns the set of reference ids any in-text marker (nocite
// included) names, used to compute a bibliography's "cited" selector.
func CitedIDs(result ScanResult) map[string]bool {
	ids := make(map[string]bool)
	for _, m := range result.Markers {
		for _, item := range m.Items {
			ids[item.ReferenceID] = true
		}
	}
	return ids
}
