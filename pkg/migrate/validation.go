package migrate

import (
	"fmt"

	"github.com/csln/csln/pkg/clsnerr"
	"github.com/csln/csln/pkg/style"
)

// Validate checks a compiled Style against the required-field rules §6
// states for style files: a citation and bibliography template are both
// required, and every TemplateComponent's Kind must have its matching
// variant field populated, checked recursively through list children and
// override replacements. The reference.Type keys of override maps and
// the bibliography's type-templates are not checked.
//
// Unknown-field rejection at decode time (the "strict parse" half of
// §6's rule) is not done here; cmd/csln's style loader decodes with
// known-fields checking enabled. This pass checks structural
// completeness after a successful decode.
func Validate(s style.Style) error {
	if len(s.Citation.Template) == 0 {
		return clsnerr.New(clsnerr.KindValidationError, "style.citation.template must not be empty")
	}
	if len(s.Bibliography.Template) == 0 {
		return clsnerr.New(clsnerr.KindValidationError, "style.bibliography.template must not be empty")
	}
	for i, c := range s.Citation.Template {
		if err := validateComponent(c); err != nil {
			return (&clsnerr.Error{Kind: clsnerr.KindValidationError, Message: err.Error()}).WithPath(fmt.Sprintf("citation.template[%d]", i))
		}
	}
	for i, c := range s.Bibliography.Template {
		if err := validateComponent(c); err != nil {
			return (&clsnerr.Error{Kind: clsnerr.KindValidationError, Message: err.Error()}).WithPath(fmt.Sprintf("bibliography.template[%d]", i))
		}
	}
	return nil
}

func validateComponent(c style.TemplateComponent) error {
	switch c.Kind {
	case style.KindContributor:
		if c.Contributor == nil {
			return fmt.Errorf("kind %q requires a contributor block", c.Kind)
		}
		if c.Contributor.Role == "" {
			return fmt.Errorf("contributor component missing role")
		}
	case style.KindDate:
		if c.Date == nil || c.Date.Variable == "" {
			return fmt.Errorf("kind %q requires a date block with a variable", c.Kind)
		}
	case style.KindTitle:
		if c.Title == nil {
			return fmt.Errorf("kind %q requires a title block", c.Kind)
		}
	case style.KindVariable:
		if c.Variable == nil {
			return fmt.Errorf("kind %q requires a variable block", c.Kind)
		}
	case style.KindNumber:
		if c.Number == nil || c.Number.Variable == "" {
			return fmt.Errorf("kind %q requires a number block with a variable", c.Kind)
		}
	case style.KindList:
		if c.List == nil {
			return fmt.Errorf("kind %q requires a list block", c.Kind)
		}
		for _, child := range c.List.Children {
			if err := validateComponent(child); err != nil {
				return err
			}
		}
	case style.KindTerm:
		if c.Term == nil || c.Term.TermID == "" {
			return fmt.Errorf("kind %q requires a term block with a term id", c.Kind)
		}
	default:
		return fmt.Errorf("unknown component kind %q", c.Kind)
	}
	for refType, ov := range c.Overrides {
		if ov.Replace != nil {
			if err := validateComponent(*ov.Replace); err != nil {
				return fmt.Errorf("override for type %q: %w", refType, err)
			}
		}
	}
	return nil
}

// componentKindRequirements describes the JSON Schema fragment for one
// ComponentKind's matching variant field, reused by Schema() below.
var componentKindRequirements = map[style.ComponentKind]string{
	style.KindContributor: "contributor",
	style.KindDate:        "date",
	style.KindTitle:       "title",
	style.KindVariable:    "variable",
	style.KindNumber:      "number",
	style.KindList:        "list",
	style.KindTerm:        "term",
}

// Schema builds a JSON Schema (draft 2020-12) document for either "style"
// or "reference", the `schema` CLI subcommand's output (§6). No
// schema.json ships in this module (none existed to carry the exact
// legacy pattern-schema shape the teacher's embed pulled in); the schema
// is instead built programmatically from the same Go types Validate and
// the YAML decoders already enforce, so it can never drift from the
// actual accepted shape the way a hand-maintained schema.json could.
func Schema(kind string) (map[string]any, error) {
	switch kind {
	case "style":
		return styleSchema(), nil
	case "reference":
		return referenceSchema(), nil
	default:
		return nil, clsnerr.New(clsnerr.KindValidationError, fmt.Sprintf("unknown schema kind %q, want style|reference", kind))
	}
}

func styleSchema() map[string]any {
	componentKinds := make([]string, 0, len(componentKindRequirements))
	for k := range componentKindRequirements {
		componentKinds = append(componentKinds, string(k))
	}
	return map[string]any{
		"$schema": "https://json-schema.org/draft/2020-12/schema",
		"title":   "CSLN Style",
		"type":    "object",
		"required": []string{"citation", "bibliography"},
		"properties": map[string]any{
			"info":            map[string]any{"type": "object"},
			"default-locale":  map[string]any{"type": "string"},
			"options":         map[string]any{"type": "object"},
			"citation":        templateSpecSchema(),
			"bibliography":    templateSpecSchema(),
			"locale-overrides": map[string]any{"type": "object"},
		},
		"$defs": map[string]any{
			"templateComponent": map[string]any{
				"type":     "object",
				"required": []string{"kind"},
				"properties": map[string]any{
					"kind": map[string]any{"enum": componentKinds},
				},
			},
		},
		"additionalProperties": false,
	}
}

func templateSpecSchema() map[string]any {
	return map[string]any{
		"type":     "object",
		"required": []string{"template"},
		"properties": map[string]any{
			"template": map[string]any{
				"type":  "array",
				"items": map[string]any{"$ref": "#/$defs/templateComponent"},
			},
			"options": map[string]any{"type": "object"},
		},
	}
}

func referenceSchema() map[string]any {
	return map[string]any{
		"$schema": "https://json-schema.org/draft/2020-12/schema",
		"title":   "CSLN Reference",
		"type":    "object",
		"required": []string{"id", "type"},
		"properties": map[string]any{
			"id":           map[string]any{"type": "string"},
			"type":         map[string]any{"type": "string"},
			"variables":    map[string]any{"type": "object"},
			"contributors": map[string]any{"type": "object"},
			"dates":        map[string]any{"type": "object"},
			"language":     map[string]any{"type": "string"},
			"parent":       map[string]any{"type": "object"},
		},
	}
}
