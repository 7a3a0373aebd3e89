package migrate

import (
	"github.com/csln/csln/pkg/clsnerr"
	"github.com/csln/csln/pkg/reference"
	"github.com/csln/csln/pkg/style"
)

// Result is the full output of migrating one legacy XML style: the
// compiled Style plus the accumulated non-fatal warnings the pipeline
// produced along the way (unknown elements, ambiguous overrides).
type Result struct {
	Style  style.Style
	Report clsnerr.Report
}

// MinInferenceConfidence is the default confidence threshold below which
// an inferred bibliography template is rejected in favor of the
// XML-compiled one (stage 6/7).
const MinInferenceConfidence = 0.85

// Migrate runs the full six-stage pipeline over one legacy XML style
// document (§4.12): inline macros, upsample to the intermediate tree,
// extract options, compile the template, detect presets, and — when
// samples are supplied — attempt output-driven inference for the
// bibliography section. styleName seeds the Info.ID/inferred-cache key;
// cacheDir is where `templates/inferred/` lives (empty disables the
// cache). A macro cycle or malformed XML aborts with no partial Style,
// matching the MigrationFatal policy; every other recoverable issue is
// recorded in Result.Report instead.
func Migrate(doc []byte, styleName, cacheDir string, samples []Sample) (Result, error) {
	root, err := ParseXML(doc)
	if err != nil {
		return Result{}, err
	}

	inlined, err := InlineMacros(root)
	if err != nil {
		return Result{}, err
	}

	var report clsnerr.Report
	intermediate := Upsample(inlined, &report)

	extracted := ExtractOptions(inlined)
	if presetName, ok := DetectPreset(extracted.Contributors); ok {
		extracted.Contributors = presetContributorsWithResiduals(presetName, extracted.Contributors)
	}

	warn := func(msg string) { report.Add(clsnerr.New(clsnerr.KindMigrationWarning, msg)) }
	citationBase, citationOverrides := CompileTemplate(findSection(intermediate, "citation"), warn)
	bibBase, bibOverrides := CompileTemplate(findSection(intermediate, "bibliography"), warn)

	bibTemplate := assignOverrides(bibBase, bibOverrides)
	if len(samples) > 0 {
		if inferred, ok := Infer(samples, "bibliography", MinInferenceConfidence); ok {
			bibTemplate = inferred.Template
			if cacheDir != "" {
				_ = SaveInferred(cacheDir, styleName, inferred)
			}
		} else if cacheDir != "" {
			if cached, found, _ := LoadInferred(cacheDir, styleName, "bibliography"); found && cached.Meta.Confidence >= MinInferenceConfidence {
				bibTemplate = cached.Template
			}
		}
	}

	compiled := style.Style{
		Info:    style.Info{ID: styleName, Title: styleName},
		Options: extracted,
		Citation: style.CitationSpec{
			Template: assignOverrides(citationBase, citationOverrides),
		},
		Bibliography: style.BibliographySpec{
			Template: bibTemplate,
		},
	}

	if err := Validate(compiled); err != nil {
		return Result{Style: compiled, Report: report}, err
	}
	return Result{Style: compiled, Report: report}, nil
}

// assignOverrides applies a compiled overrides map onto the base
// template's first matching component (merge policy's "hand-authored >
// inferred > XML-compiled" precedence only applies above the template as
// a whole; within one XML-compiled template, per-type overrides attach to
// whichever base component they were extracted alongside — in practice
// the sole top-level component, since legacy Choose/If trees compile to
// one replaceable slot per branch group).
func assignOverrides(base []style.TemplateComponent, overrides map[reference.Type]style.ComponentOverride) []style.TemplateComponent {
	if len(overrides) == 0 || len(base) == 0 {
		return base
	}
	out := make([]style.TemplateComponent, len(base))
	copy(out, base)
	if out[0].Overrides == nil {
		out[0].Overrides = map[reference.Type]style.ComponentOverride{}
	}
	for t, ov := range overrides {
		out[0].Overrides[t] = ov
	}
	return out
}

// findSection locates the <citation> or <bibliography> section within the
// upsampled tree and returns its renderable content: the contents of its
// nested <layout> element when present (the usual legacy shape), or its
// own direct children otherwise.
func findSection(root CslnNode, name string) []CslnNode {
	section, ok := findNamed(root, name)
	if !ok {
		return nil
	}
	if layout, ok := findNamed(section, "layout"); ok {
		return layout.Children
	}
	return section.Children
}

func findNamed(n CslnNode, name string) (CslnNode, bool) {
	if n.Name == name {
		return n, true
	}
	for _, c := range n.Children {
		if found, ok := findNamed(c, name); ok {
			return found, true
		}
	}
	return CslnNode{}, false
}

// presetContributorsWithResiduals keeps any extracted field the named
// preset doesn't itself set, implementing stage 5's "store residual
// fields as overrides" instruction at the option level (component-level
// overrides are handled by CompileTemplate/assignOverrides).
func presetContributorsWithResiduals(name string, extracted style.ContributorsOptions) style.ContributorsOptions {
	preset, ok := style.ResolveContributorsPreset(name)
	if !ok {
		return extracted
	}
	residual := extracted
	if preset.InitializeWith != "" {
		residual.InitializeWith = preset.InitializeWith
	}
	if preset.Conjunction != "" {
		residual.Conjunction = preset.Conjunction
	}
	if preset.DelimiterPrecedesLast != "" {
		residual.DelimiterPrecedesLast = preset.DelimiterPrecedesLast
	}
	if preset.EtAl != (style.EtAl{}) {
		residual.EtAl = preset.EtAl
	}
	return residual
}
