package migrate

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/csln/csln/pkg/reference"
	"github.com/csln/csln/pkg/style"
)

// Sample pairs one bibliography reference with the string the reference
// implementation rendered for it, the input to stage 6's output-driven
// template inferrer.
type Sample struct {
	Reference *reference.Reference
	Rendered  string
}

// InferredMeta is the persisted cache's "meta" block (§6).
type InferredMeta struct {
	Style       string  `json:"style"`
	Confidence  float64 `json:"confidence"`
	Delimiter   string  `json:"delimiter"`
	EntrySuffix string  `json:"entrySuffix"`
	Wrap        string  `json:"wrap"`
}

// InferredTemplate is one section's (citation or bibliography) cached
// inference result.
type InferredTemplate struct {
	Meta     InferredMeta              `json:"meta"`
	Section  string                    `json:"-"`
	Template []style.TemplateComponent `json:"template"`
}

// field is a labeled contributor-family-name/year/title fragment pulled
// from one reference, used to locate matching substrings in its rendered
// output.
type field struct {
	label string // "author" | "title" | "year"
	value string
}

func fieldsOf(ref *reference.Reference) []field {
	var fields []field
	if authors, ok := ref.Contributors["author"]; ok && len(authors) > 0 {
		if authors[0].Structured != nil {
			fields = append(fields, field{label: "author", value: authors[0].Structured.Family.Plain})
		} else if authors[0].Literal != "" {
			fields = append(fields, field{label: "author", value: authors[0].Literal})
		}
	}
	if title, ok := ref.Variable("title"); ok {
		fields = append(fields, field{label: "title", value: title.Plain()})
	}
	if d, ok := ref.Date("issued"); ok && !d.IsRange && !d.Single.IsZero() {
		fields = append(fields, field{label: "year", value: fmt.Sprintf("%d", d.Single.Year)})
	}
	return fields
}

// Infer cross-references each sample's rendered string with its
// reference's fields, labels the matching spans, and emits a flat
// template plus a confidence score: the fraction of total rendered
// characters across all samples that were accounted for by a labeled
// span. Fragments below minConfidence are rejected in favor of the
// XML-compiled template by the caller (the merge policy in migrate.go).
func Infer(samples []Sample, section string, minConfidence float64) (InferredTemplate, bool) {
	if len(samples) == 0 {
		return InferredTemplate{}, false
	}

	var labeledChars, totalChars int
	labelOrder := []string{} // first sample's label order sets the template shape
	seen := map[string]bool{}

	for i, s := range samples {
		totalChars += len([]rune(s.Rendered))
		spans := labelSpans(s.Rendered, fieldsOf(s.Reference))
		for _, sp := range spans {
			labeledChars += len([]rune(sp.text))
		}
		if i == 0 {
			for _, sp := range spans {
				if !seen[sp.label] {
					seen[sp.label] = true
					labelOrder = append(labelOrder, sp.label)
				}
			}
		}
	}

	confidence := 0.0
	if totalChars > 0 {
		confidence = float64(labeledChars) / float64(totalChars)
	}
	if confidence < minConfidence {
		return InferredTemplate{}, false
	}

	tpl := make([]style.TemplateComponent, 0, len(labelOrder))
	for _, label := range labelOrder {
		tpl = append(tpl, componentForLabel(label))
	}

	return InferredTemplate{
		Meta: InferredMeta{
			Confidence: confidence,
		},
		Section:  section,
		Template: tpl,
	}, true
}

type span struct {
	label string
	text  string
}

// labelSpans finds, for each candidate field, whether its value appears
// in rendered and records the match. Overlapping/ambiguous matches are
// resolved by field declaration order (author before title before year),
// matching fields in general appear left-to-right in rendered citations.
func labelSpans(rendered string, fields []field) []span {
	var spans []span
	for _, f := range fields {
		if f.value == "" {
			continue
		}
		if strings.Contains(rendered, f.value) {
			spans = append(spans, span{label: f.label, text: f.value})
		}
	}
	return spans
}

func componentForLabel(label string) style.TemplateComponent {
	switch label {
	case "author":
		return style.TemplateComponent{Kind: style.KindContributor, Suffix: " ",
			Contributor: &style.ContributorComponent{Role: "author", Form: style.NameFormLong}}
	case "title":
		return style.TemplateComponent{Kind: style.KindTitle, Suffix: ". ",
			Title: &style.TitleComponent{Variant: style.TitleMain}}
	case "year":
		return style.TemplateComponent{Kind: style.KindDate, Prefix: "(", Suffix: ")",
			Date: &style.DateComponent{Variable: "issued", Form: style.DateFormYear}}
	default:
		return style.TemplateComponent{Kind: style.KindVariable, Variable: &style.VariableComponent{Name: label}}
	}
}

// CachePath builds the persisted-cache path for a style name and section,
// per §6: templates/inferred/<style-name>.<section>.json.
func CachePath(dir, styleName, section string) string {
	return filepath.Join(dir, "inferred", fmt.Sprintf("%s.%s.json", styleName, section))
}

// SaveInferred writes an inferred template to its cache path, creating
// the containing directory if needed.
func SaveInferred(dir, styleName string, tpl InferredTemplate) error {
	path := CachePath(dir, styleName, tpl.Section)
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("creating inferred-template cache directory: %w", err)
	}
	doc := map[string]any{
		"meta": tpl.Meta,
		tpl.Section: map[string]any{
			"template": tpl.Template,
		},
	}
	data, err := json.MarshalIndent(doc, "", "  ")
	if err != nil {
		return fmt.Errorf("marshaling inferred template: %w", err)
	}
	return os.WriteFile(path, data, 0o644)
}

// LoadInferred reads a cached inferred template for styleName/section, if
// present. A missing file is not an error: the caller falls back to the
// XML-compiled template per the merge policy.
func LoadInferred(dir, styleName, section string) (InferredTemplate, bool, error) {
	path := CachePath(dir, styleName, section)
	data, err := os.ReadFile(path)
	if os.IsNotExist(err) {
		return InferredTemplate{}, false, nil
	}
	if err != nil {
		return InferredTemplate{}, false, fmt.Errorf("reading inferred-template cache %s: %w", path, err)
	}
	var raw struct {
		Meta InferredMeta `json:"meta"`
	}
	// The section key is dynamic ("citation" or "bibliography"), so decode
	// into a generic map first and pull out both the meta block and the
	// one section key that isn't "meta".
	var generic map[string]json.RawMessage
	if err := json.Unmarshal(data, &generic); err != nil {
		return InferredTemplate{}, false, fmt.Errorf("parsing inferred-template cache %s: %w", path, err)
	}
	if metaRaw, ok := generic["meta"]; ok {
		_ = json.Unmarshal(metaRaw, &raw.Meta)
	}
	sectionRaw, ok := generic[section]
	if !ok {
		return InferredTemplate{}, false, nil
	}
	var body struct {
		Template []style.TemplateComponent `json:"template"`
	}
	if err := json.Unmarshal(sectionRaw, &body); err != nil {
		return InferredTemplate{}, false, fmt.Errorf("parsing inferred-template section %s: %w", section, err)
	}
	return InferredTemplate{Meta: raw.Meta, Section: section, Template: body.Template}, true, nil
}
