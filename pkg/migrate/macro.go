// Package migrate implements the legacy-XML-to-CSLN migration compiler
// (§4.12, C12): macro inlining, upsampling into an intermediate tree,
// option extraction, template compilation, preset detection, and an
// optional output-driven template inferrer, composed by a merge policy
// that prefers hand-authored over inferred over XML-compiled templates.
package migrate

import (
	"encoding/xml"
	"fmt"

	"github.com/csln/csln/pkg/clsnerr"
)

// rawElement is a generic XML tree node: legacy citation styles are
// arbitrary nested XML, so decoding into a fixed struct per element type
// would require one Go type per legacy tag. Decoding into this shape
// instead lets the upsampler dispatch on XMLName.Local itself.
type rawElement struct {
	XMLName  xml.Name
	Attrs    []xml.Attr   `xml:",any,attr"`
	Chardata string       `xml:",chardata"`
	Children []rawElement `xml:",any"`
}

// Attr returns the named attribute's value, or "" if absent.
func (e rawElement) Attr(name string) string {
	for _, a := range e.Attrs {
		if a.Name.Local == name {
			return a.Value
		}
	}
	return ""
}

// ParseXML decodes a legacy style document into its root element.
func ParseXML(doc []byte) (rawElement, error) {
	var root rawElement
	if err := xml.Unmarshal(doc, &root); err != nil {
		return rawElement{}, clsnerr.Wrap(clsnerr.KindParseError, "parsing legacy XML style", err)
	}
	return root, nil
}

// macroIndex maps a macro's name to its definition node, built once and
// reused by every inlining call so siblings share the lookup (stage 1).
type macroIndex map[string]rawElement

func buildMacroIndex(root rawElement) macroIndex {
	idx := macroIndex{}
	var walk func(rawElement)
	walk = func(e rawElement) {
		if e.XMLName.Local == "macro" {
			if name := e.Attr("name"); name != "" {
				idx[name] = e
			}
		}
		for _, c := range e.Children {
			walk(c)
		}
	}
	walk(root)
	return idx
}

// InlineMacros recursively substitutes every `<text macro="X"/>` or
// `<names macro="X"/>` call with macro X's children, tracking the active
// call chain to detect cycles. A cycle is a MigrationFatal error per
// §4.12's failure-mode table; the pipeline must abort with no partial
// output.
func InlineMacros(root rawElement) (rawElement, error) {
	idx := buildMacroIndex(root)
	return inlineNode(root, idx, nil)
}

func inlineNode(e rawElement, idx macroIndex, callChain []string) (rawElement, error) {
	if macroName := e.Attr("macro"); macroName != "" && (e.XMLName.Local == "text" || e.XMLName.Local == "names") {
		for _, seen := range callChain {
			if seen == macroName {
				return rawElement{}, clsnerr.Wrap(clsnerr.KindMigrationFatal,
					fmt.Sprintf("macro cycle detected: %v -> %s", callChain, macroName), nil)
			}
		}
		def, ok := idx[macroName]
		if !ok {
			return rawElement{}, clsnerr.New(clsnerr.KindMigrationFatal,
				fmt.Sprintf("macro %q referenced but not defined", macroName))
		}
		inlined, err := inlineNode(def, idx, append(callChain, macroName))
		if err != nil {
			return rawElement{}, err
		}
		// The calling node's own attributes (e.g. a wrapping prefix/suffix
		// on the <text macro="X"/> call) still apply around the
		// substituted children, so keep e's tag identity but adopt the
		// macro body's children.
		result := e
		result.Children = inlined.Children
		return result, nil
	}

	children := make([]rawElement, 0, len(e.Children))
	for _, c := range e.Children {
		inlined, err := inlineNode(c, idx, callChain)
		if err != nil {
			return rawElement{}, err
		}
		children = append(children, inlined)
	}
	e.Children = children
	return e, nil
}
