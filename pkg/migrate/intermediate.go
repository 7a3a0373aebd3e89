package migrate

import (
	"fmt"

	"github.com/csln/csln/pkg/clsnerr"
	"github.com/csln/csln/pkg/reference"
)

// NodeKind identifies an intermediate-tree node's shape. The first seven
// values align 1:1 with style.ComponentKind; the remaining values are the
// control-flow constructs CSLN's flat template model has no room for and
// the template compiler (stage 4) must resolve away.
type NodeKind string

const (
	NodeContributor NodeKind = "contributor"
	NodeDate        NodeKind = "date"
	NodeTitle       NodeKind = "title"
	NodeVariable    NodeKind = "variable"
	NodeNumber      NodeKind = "number"
	NodeList        NodeKind = "list"
	NodeTerm        NodeKind = "term"

	NodeChoose     NodeKind = "choose"
	NodeGroup      NodeKind = "group"
	NodeIf         NodeKind = "if"
	NodeElseIf     NodeKind = "else-if"
	NodeElse       NodeKind = "else"
	NodeSubstitute NodeKind = "substitute"
)

// Predicate is one `<if>`/`<else-if>` branch condition, kept in the shape
// the template compiler (stage 4) needs to project into an override
// selector: type equality, variable presence, citation position, or
// locator presence.
type Predicate struct {
	Type           []reference.Type
	VariablePresent string
	Position        string // "first" | "subsequent" | "ibid" | ""
	LocatorPresent  bool
}

// CslnNode is one node of the intermediate tree the upsampler (stage 2)
// produces: its Kind selects which attribute fields are meaningful, the
// same closed-union discipline style.TemplateComponent uses downstream.
type CslnNode struct {
	Kind NodeKind

	// Name carries the originating legacy tag for NodeGroup nodes created
	// from a structural container (<citation>, <bibliography>, <layout>),
	// so a later stage can pick the section it wants out of a style's
	// top-level children.
	Name string

	// Common rendering attributes, carried from the legacy element's
	// attributes regardless of Kind.
	Prefix, Suffix string
	Delimiter      string
	TextCase       string
	Emph, Strong   bool

	// Kind-specific attributes.
	Variable string // variable | number | date's variable name
	Role     string // contributor's role
	Form     string // name-form | date-form
	TermID   string

	Predicate *Predicate // set on NodeIf / NodeElseIf
	Order     []string   // NodeSubstitute's fallback role order

	Children []CslnNode
}

// Upsample walks a macro-inlined XML tree and produces the intermediate
// CslnNode tree (stage 2). Element kinds the upsampler does not
// recognize are skipped with a MigrationWarning rather than aborting the
// whole pipeline, matching the "unknown XML element" failure mode.
func Upsample(root rawElement, report *clsnerr.Report) CslnNode {
	return upsampleElement(root, report)
}

func upsampleElement(e rawElement, report *clsnerr.Report) CslnNode {
	switch e.XMLName.Local {
	case "names":
		return CslnNode{
			Kind:     NodeContributor,
			Role:     e.Attr("variable"),
			Form:     e.Attr("form"),
			Prefix:   e.Attr("prefix"),
			Suffix:   e.Attr("suffix"),
			Children: upsampleChildren(e, report),
		}
	case "date":
		return CslnNode{
			Kind:     NodeDate,
			Variable: e.Attr("variable"),
			Form:     e.Attr("form"),
			Prefix:   e.Attr("prefix"),
			Suffix:   e.Attr("suffix"),
		}
	case "text":
		if e.Attr("macro") != "" {
			// InlineMacros has already replaced the call's children with
			// the macro body; upsample that body in place of the call.
			children := upsampleChildren(e, report)
			if len(children) == 1 && e.Attr("prefix") == "" && e.Attr("suffix") == "" {
				return children[0]
			}
			return CslnNode{Kind: NodeGroup, Prefix: e.Attr("prefix"), Suffix: e.Attr("suffix"), Children: children}
		}
		return upsampleText(e)
	case "number":
		return CslnNode{
			Kind:     NodeNumber,
			Variable: e.Attr("variable"),
			Prefix:   e.Attr("prefix"),
			Suffix:   e.Attr("suffix"),
		}
	case "group":
		return CslnNode{
			Kind:      NodeGroup,
			Delimiter: e.Attr("delimiter"),
			Prefix:    e.Attr("prefix"),
			Suffix:    e.Attr("suffix"),
			Children:  upsampleChildren(e, report),
		}
	case "choose":
		return CslnNode{Kind: NodeChoose, Children: upsampleChildren(e, report)}
	case "if":
		return CslnNode{Kind: NodeIf, Predicate: upsamplePredicate(e), Children: upsampleChildren(e, report)}
	case "else-if":
		return CslnNode{Kind: NodeElseIf, Predicate: upsamplePredicate(e), Children: upsampleChildren(e, report)}
	case "else":
		return CslnNode{Kind: NodeElse, Children: upsampleChildren(e, report)}
	case "substitute":
		var order []string
		for _, c := range e.Children {
			if c.XMLName.Local == "names" {
				order = append(order, c.Attr("variable"))
			} else {
				order = append(order, "title")
			}
		}
		return CslnNode{Kind: NodeSubstitute, Order: order}
	case "", "style", "citation", "bibliography", "layout", "macro", "info":
		// Structural containers, not renderable nodes themselves: recurse
		// into children and fold the layout's own delimiter/affixes in.
		return CslnNode{
			Kind:      NodeGroup,
			Name:      e.XMLName.Local,
			Delimiter: e.Attr("delimiter"),
			Prefix:    e.Attr("prefix"),
			Suffix:    e.Attr("suffix"),
			Children:  upsampleChildren(e, report),
		}
	default:
		report.Add(clsnerr.New(clsnerr.KindMigrationWarning,
			fmt.Sprintf("unrecognized legacy element <%s>, skipped", e.XMLName.Local)))
		return CslnNode{Kind: NodeGroup, Children: upsampleChildren(e, report)}
	}
}

func upsampleText(e rawElement) CslnNode {
	if v := e.Attr("variable"); v != "" {
		return CslnNode{Kind: NodeVariable, Variable: v, Prefix: e.Attr("prefix"), Suffix: e.Attr("suffix")}
	}
	if v := e.Attr("term"); v != "" {
		return CslnNode{Kind: NodeTerm, TermID: v, Prefix: e.Attr("prefix"), Suffix: e.Attr("suffix")}
	}
	// A bare <text value="..."/> has no SPEC_FULL analogue (the template
	// model renders variables and terms, not arbitrary literal strings
	// outside prefix/suffix); fold its value into Suffix of an empty
	// variable node so it still contributes to the flattened template's
	// static text.
	return CslnNode{Kind: NodeVariable, Variable: "", Suffix: e.Attr("value")}
}

func upsampleChildren(e rawElement, report *clsnerr.Report) []CslnNode {
	children := make([]CslnNode, 0, len(e.Children))
	for _, c := range e.Children {
		children = append(children, upsampleElement(c, report))
	}
	return children
}

func upsamplePredicate(e rawElement) *Predicate {
	p := &Predicate{
		VariablePresent: e.Attr("variable"),
		Position:        e.Attr("position"),
		LocatorPresent:  e.Attr("locator") != "",
	}
	if t := e.Attr("type"); t != "" {
		p.Type = append(p.Type, reference.Type(t))
	}
	return p
}
