package migrate

import (
	"testing"

	"github.com/csln/csln/pkg/style"
)

func validStyle() style.Style {
	return style.Style{
		Citation: style.CitationSpec{
			Template: []style.TemplateComponent{
				{Kind: style.KindContributor, Contributor: &style.ContributorComponent{Role: "author"}},
			},
		},
		Bibliography: style.BibliographySpec{
			Template: []style.TemplateComponent{
				{Kind: style.KindTitle, Title: &style.TitleComponent{Variant: style.TitleMain}},
			},
		},
	}
}

func TestValidateAcceptsWellFormedStyle(t *testing.T) {
	if err := Validate(validStyle()); err != nil {
		t.Errorf("Validate = %v", err)
	}
}

func TestValidateRejectsEmptyCitationTemplate(t *testing.T) {
	s := validStyle()
	s.Citation.Template = nil
	if err := Validate(s); err == nil {
		t.Error("expected an error for an empty citation template")
	}
}

func TestValidateRejectsMismatchedKindAndBlock(t *testing.T) {
	s := validStyle()
	s.Citation.Template[0].Contributor = nil
	if err := Validate(s); err == nil {
		t.Error("expected an error for a contributor kind with no contributor block")
	}
}

func TestValidateRecursesIntoListChildren(t *testing.T) {
	s := validStyle()
	s.Bibliography.Template = []style.TemplateComponent{
		{Kind: style.KindList, List: &style.ListComponent{
			Children: []style.TemplateComponent{{Kind: style.KindDate}},
		}},
	}
	if err := Validate(s); err == nil {
		t.Error("expected an error: nested date component missing its date block")
	}
}

func TestSchemaStyleHasRequiredSections(t *testing.T) {
	schema, err := Schema("style")
	if err != nil {
		t.Fatalf("Schema: %v", err)
	}
	required, ok := schema["required"].([]string)
	if !ok || len(required) != 2 {
		t.Fatalf("required = %+v", schema["required"])
	}
}

func TestSchemaReferenceHasIDAndType(t *testing.T) {
	schema, err := Schema("reference")
	if err != nil {
		t.Fatalf("Schema: %v", err)
	}
	props, ok := schema["properties"].(map[string]any)
	if !ok {
		t.Fatalf("properties = %+v", schema["properties"])
	}
	if _, ok := props["id"]; !ok {
		t.Error("expected an id property")
	}
	if _, ok := props["type"]; !ok {
		t.Error("expected a type property")
	}
}

func TestSchemaUnknownKindErrors(t *testing.T) {
	if _, err := Schema("nonsense"); err == nil {
		t.Error("expected an error for an unknown schema kind")
	}
}
