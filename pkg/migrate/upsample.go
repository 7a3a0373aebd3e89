package migrate

import (
	"strconv"
	"strings"

	"github.com/csln/csln/pkg/reference"
	"github.com/csln/csln/pkg/style"
)

// ExtractOptions scans the macro-inlined root for style-level attributes
// (stage 3): name format, et-al, initialize-with, page-range-format,
// demote-non-dropping-particle, disambiguate-*, punctuation-in-quote.
// It also scans citation-context macros (not just the bibliography) for
// name options, since conjunction behavior is only ever declared there in
// legacy styles.
func ExtractOptions(root rawElement) style.Options {
	opts := style.Options{}
	var citationNode, bibNode *rawElement
	var walk func(rawElement)
	walk = func(e rawElement) {
		switch e.XMLName.Local {
		case "citation":
			citationNode = &e
		case "bibliography":
			bibNode = &e
		}
		for i := range e.Children {
			walk(e.Children[i])
		}
	}
	walk(root)

	if style := root.Attr("page-range-format"); style != "" {
		opts.PageRangeFormat = NormalizePageRangeFormat(style)
	}
	if root.Attr("punctuation-in-quote") == "true" {
		v := true
		opts.PunctuationInQuote = &v
	}

	opts.Contributors = extractContributorOptions(root)
	if citationNode != nil {
		citationContrib := extractContributorOptions(*citationNode)
		opts.Contributors = style.Merge(style.Options{Contributors: opts.Contributors},
			style.Options{Contributors: citationContrib}).Contributors
	}
	if bibNode != nil {
		opts.Processing = detectProcessingMode(*bibNode)
	}
	return opts
}

// NormalizePageRangeFormat maps a legacy page-range-format attribute
// value onto the three CSLN policies (§4.5).
func NormalizePageRangeFormat(v string) style.PageRangeFormat {
	switch strings.ToLower(v) {
	case "minimal", "minimal-two":
		return style.PageRangeMinimal
	case "chicago", "chicago-16":
		return style.PageRangeChicago
	default:
		return style.PageRangeExpanded
	}
}

func extractContributorOptions(e rawElement) style.ContributorsOptions {
	co := style.ContributorsOptions{}
	var names *rawElement
	var find func(rawElement)
	find = func(n rawElement) {
		if n.XMLName.Local == "names" && names == nil {
			names = &n
		}
		for i := range n.Children {
			find(n.Children[i])
		}
	}
	find(e)
	if names == nil {
		return co
	}
	for _, c := range names.Children {
		switch c.XMLName.Local {
		case "name":
			if v := c.Attr("initialize-with"); v != "" {
				co.InitializeWith = v
			}
			if v := c.Attr("name-as-sort-order"); v != "" {
				co.NameAsSortOrder = style.NameOrder(v)
			}
			if c.Attr("demote-non-dropping-particle") == "true" || c.Attr("demote-non-dropping-particle") == "display-and-sort" {
				co.DemoteNonDroppingParticle = true
			}
			if v := c.Attr("and"); v != "" {
				co.Conjunction = v
			}
			if v := c.Attr("delimiter-precedes-last"); v != "" {
				co.DelimiterPrecedesLast = style.DelimiterPrecedesLast(v)
			}
			if min, useFirst, ok := parseEtAl(c); ok {
				co.EtAl = style.EtAl{Min: min, UseFirst: useFirst}
			}
		case "et-al":
			if v := c.Attr("font-variant"); v == "" {
				// presence alone (legacy <et-al/> cs:term) signals et-al is active
			}
		case "substitute":
			var order []string
			for _, sc := range c.Children {
				if sc.XMLName.Local == "names" {
					order = append(order, sc.Attr("variable"))
				} else {
					order = append(order, "title")
				}
			}
			co.SubsequentAuthorSubstitute = strings.Join(order, ",")
		}
	}
	if v := e.Attr("disambiguate-add-names"); v == "true" {
		co.DisambiguateAddNames = true
	}
	if v := e.Attr("disambiguate-add-givenname"); v == "true" {
		co.DisambiguateAddGivenname = true
	}
	return co
}

func parseEtAl(name rawElement) (min, useFirst int, ok bool) {
	minStr, maxStr := name.Attr("et-al-min"), name.Attr("et-al-use-first")
	if minStr == "" && maxStr == "" {
		return 0, 0, false
	}
	min, _ = strconv.Atoi(minStr)
	useFirst, _ = strconv.Atoi(maxStr)
	return min, useFirst, true
}

// detectProcessingMode infers a processing mode from the bibliography
// layout's shape (stage 3): a layout that renders citation-number is
// numeric, and any other layout is author-date. Note styles are not
// detected.
func detectProcessingMode(bibNode rawElement) style.ProcessingMode {
	var hasNumber bool
	var walk func(rawElement)
	walk = func(e rawElement) {
		if e.XMLName.Local == "number" && e.Attr("variable") == "citation-number" {
			hasNumber = true
		}
		for i := range e.Children {
			walk(e.Children[i])
		}
	}
	walk(bibNode)
	if hasNumber {
		return style.ProcessingNumeric
	}
	return style.ProcessingAuthorDate
}

// branch is one Choose/If arm projected to a predicate plus the
// components it should contribute when that predicate matches.
type branch struct {
	predicate  *Predicate
	components []style.TemplateComponent
}

// CompileTemplate flattens Choose/If trees (stage 4): for each branch it
// records the branch's predicate and component list, then projects the
// whole Choose down to a base template plus a per-type overrides map.
// Ambiguous type overrides (more than one branch matching the same type)
// resolve by first-match in XML source order, matching §4.12's stated
// failure-mode policy.
func CompileTemplate(nodes []CslnNode, report func(string)) ([]style.TemplateComponent, map[reference.Type]style.ComponentOverride) {
	var base []style.TemplateComponent
	overrides := map[reference.Type]style.ComponentOverride{}

	for _, n := range nodes {
		switch n.Kind {
		case NodeChoose:
			branches := collectBranches(n.Children)
			assigned := map[reference.Type]bool{}
			var fallback []style.TemplateComponent
			for _, b := range branches {
				comps := compileNodes(b.components, report)
				if b.predicate == nil {
					fallback = comps
					continue
				}
				for _, t := range b.predicate.Type {
					if assigned[t] {
						report("ambiguous type override for " + string(t) + ", keeping first match")
						continue
					}
					assigned[t] = true
					if len(comps) == 1 {
						overrides[t] = style.ComponentOverride{Replace: &comps[0]}
					} else if len(comps) > 1 {
						replacement := style.TemplateComponent{Kind: style.KindList, List: &style.ListComponent{Children: comps}}
						overrides[t] = style.ComponentOverride{Replace: &replacement}
					}
				}
			}
			base = append(base, fallback...)
		default:
			base = append(base, compileNode(n, report)...)
		}
	}
	return base, overrides
}

func collectBranches(nodes []CslnNode) []branch {
	var branches []branch
	for _, n := range nodes {
		switch n.Kind {
		case NodeIf, NodeElseIf:
			branches = append(branches, branch{predicate: n.Predicate, components: n.Children})
		case NodeElse:
			branches = append(branches, branch{predicate: nil, components: n.Children})
		}
	}
	return branches
}

func compileNodes(nodes []CslnNode, report func(string)) []style.TemplateComponent {
	var out []style.TemplateComponent
	for _, n := range nodes {
		out = append(out, compileNode(n, report)...)
	}
	return out
}

func compileNode(n CslnNode, report func(string)) []style.TemplateComponent {
	switch n.Kind {
	case NodeContributor:
		return []style.TemplateComponent{{
			Kind:   style.KindContributor,
			Prefix: n.Prefix, Suffix: n.Suffix,
			Contributor: &style.ContributorComponent{Role: n.Role, Form: style.NameForm(orDefault(n.Form, "long"))},
		}}
	case NodeDate:
		return []style.TemplateComponent{{
			Kind:   style.KindDate,
			Prefix: n.Prefix, Suffix: n.Suffix,
			Date: &style.DateComponent{Variable: n.Variable, Form: style.DateForm(orDefault(n.Form, "long"))},
		}}
	case NodeVariable:
		if n.Variable == "" && n.Suffix != "" {
			// literal legacy <text value="..."/>, folded during upsampling
			return []style.TemplateComponent{{Kind: style.KindVariable, Prefix: n.Suffix, Variable: &style.VariableComponent{}}}
		}
		return []style.TemplateComponent{{
			Kind:   style.KindVariable,
			Prefix: n.Prefix, Suffix: n.Suffix,
			Variable: &style.VariableComponent{Name: n.Variable},
		}}
	case NodeNumber:
		return []style.TemplateComponent{{
			Kind:   style.KindNumber,
			Prefix: n.Prefix, Suffix: n.Suffix,
			Number: &style.NumberComponent{Variable: n.Variable},
		}}
	case NodeTerm:
		return []style.TemplateComponent{{
			Kind:   style.KindTerm,
			Prefix: n.Prefix, Suffix: n.Suffix,
			Term: &style.TermComponent{TermID: n.TermID},
		}}
	case NodeGroup:
		children := compileNodes(n.Children, report)
		if n.Delimiter == "" && n.Prefix == "" && n.Suffix == "" {
			return children
		}
		return []style.TemplateComponent{{
			Kind:      style.KindList,
			Prefix:    n.Prefix,
			Suffix:    n.Suffix,
			Delimiter: n.Delimiter,
			List:      &style.ListComponent{Children: children},
		}}
	case NodeSubstitute:
		// substitute has no direct TemplateComponent analogue: it shapes
		// resolve.ResolveSubstitute's fallback order instead of emitting
		// a renderable node, so the compiler records nothing here.
		return nil
	default:
		report("unhandled intermediate node kind during template compilation: " + string(n.Kind))
		return nil
	}
}

func orDefault(v, def string) string {
	if v == "" {
		return def
	}
	return v
}

// DetectPreset compares extracted contributor options against the named
// preset tables and returns the matching preset name if every field
// agrees, stage 5's "known preset within tolerance" check. Tolerance here
// is exact-match on the fields the preset actually sets: zero-valued
// string and et-al fields in the preset are treated as "unspecified",
// while DemoteNonDroppingParticle is always compared.
func DetectPreset(extracted style.ContributorsOptions) (string, bool) {
	for name, preset := range style.ContributorsPresets {
		if contributorsMatch(preset, extracted) {
			return name, true
		}
	}
	return "", false
}

func contributorsMatch(preset, extracted style.ContributorsOptions) bool {
	if preset.InitializeWith != "" && preset.InitializeWith != extracted.InitializeWith {
		return false
	}
	if preset.DemoteNonDroppingParticle != extracted.DemoteNonDroppingParticle {
		return false
	}
	if preset.Conjunction != "" && preset.Conjunction != extracted.Conjunction {
		return false
	}
	if preset.DelimiterPrecedesLast != "" && preset.DelimiterPrecedesLast != extracted.DelimiterPrecedesLast {
		return false
	}
	if preset.EtAl != (style.EtAl{}) && preset.EtAl != extracted.EtAl {
		return false
	}
	return true
}
