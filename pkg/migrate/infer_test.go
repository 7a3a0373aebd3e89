package migrate

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/csln/csln/pkg/reference"
	"github.com/csln/csln/pkg/style"
)

func sampleRef(id, family, title string) *reference.Reference {
	return &reference.Reference{
		ID:   id,
		Type: reference.TypeBook,
		Variables: map[string]reference.MultilingualString{
			"title": reference.Plain(title),
		},
		Contributors: map[string][]reference.Contributor{
			"author": {reference.NewStructuredContributor(reference.StructuredName{
				Family: reference.NamePart{Plain: family},
			})},
		},
	}
}

func TestInferHighConfidenceWhenTokensAccountForOutput(t *testing.T) {
	samples := []Sample{
		{Reference: sampleRef("r1", "Kuhn", "The Structure of Scientific Revolutions"),
			Rendered: "Kuhn, The Structure of Scientific Revolutions"},
		{Reference: sampleRef("r2", "Latour", "Laboratory Life"),
			Rendered: "Latour, Laboratory Life"},
	}
	tpl, ok := Infer(samples, "bibliography", 0.8)
	if !ok {
		t.Fatal("expected inference to succeed")
	}
	if len(tpl.Template) != 2 {
		t.Fatalf("Template = %+v", tpl.Template)
	}
	if tpl.Template[0].Kind != style.KindContributor {
		t.Errorf("first component kind = %v, want contributor", tpl.Template[0].Kind)
	}
}

func TestInferLowConfidenceRejected(t *testing.T) {
	samples := []Sample{
		{Reference: sampleRef("r1", "Kuhn", "The Structure of Scientific Revolutions"),
			Rendered: "An entirely reformatted citation bearing no resemblance to the source fields at all whatsoever."},
	}
	if _, ok := Infer(samples, "bibliography", 0.5); ok {
		t.Error("expected low-confidence inference to be rejected")
	}
}

func TestInferEmptySamples(t *testing.T) {
	if _, ok := Infer(nil, "bibliography", 0); ok {
		t.Error("expected no inference result for zero samples")
	}
}

func TestSaveAndLoadInferredRoundTrip(t *testing.T) {
	dir := t.TempDir()
	tpl := InferredTemplate{
		Meta:     InferredMeta{Style: "apa", Confidence: 0.91},
		Section:  "bibliography",
		Template: []style.TemplateComponent{{Kind: style.KindVariable, Variable: &style.VariableComponent{Name: "title"}}},
	}
	if err := SaveInferred(dir, "apa", tpl); err != nil {
		t.Fatalf("SaveInferred: %v", err)
	}
	if _, err := os.Stat(filepath.Join(dir, "inferred", "apa.bibliography.json")); err != nil {
		t.Fatalf("expected cache file to exist: %v", err)
	}
	loaded, found, err := LoadInferred(dir, "apa", "bibliography")
	if err != nil || !found {
		t.Fatalf("LoadInferred: found=%v err=%v", found, err)
	}
	if loaded.Meta.Confidence != 0.91 {
		t.Errorf("Confidence = %v", loaded.Meta.Confidence)
	}
}

func TestLoadInferredMissingFileNotError(t *testing.T) {
	dir := t.TempDir()
	_, found, err := LoadInferred(dir, "nosuchstyle", "citation")
	if err != nil {
		t.Fatalf("LoadInferred: %v", err)
	}
	if found {
		t.Error("expected found=false for a missing cache file")
	}
}
