package reference

import "testing"

func TestDecodeBibliographyYAMLArray(t *testing.T) {
	data := []byte(`
- id: kuhn1962
  type: book
  variables:
    title: "The Structure of Scientific Revolutions"
  contributors:
    author:
      - family: Kuhn
        given: Thomas
  dates:
    issued: "1962"
`)
	bib, err := DecodeBibliographyYAML(data)
	if err != nil {
		t.Fatalf("DecodeBibliographyYAML: %v", err)
	}
	ref, ok := bib.Get("kuhn1962")
	if !ok {
		t.Fatal("expected reference kuhn1962")
	}
	title, _ := ref.Variable("title")
	if title.Original != "The Structure of Scientific Revolutions" {
		t.Errorf("title = %q", title.Original)
	}
	authors := ref.ContributorsFor("author")
	if len(authors) != 1 || authors[0].Structured.Family.Plain != "Kuhn" {
		t.Errorf("unexpected authors: %+v", authors)
	}
	issued, ok := ref.Date("issued")
	if !ok || issued.Single.Year != 1962 {
		t.Errorf("issued date = %+v", issued)
	}
}

func TestDecodeBibliographyYAMLMap(t *testing.T) {
	data := []byte(`
kuhn1962:
  type: book
  variables:
    title: "The Structure of Scientific Revolutions"
`)
	bib, err := DecodeBibliographyYAML(data)
	if err != nil {
		t.Fatalf("DecodeBibliographyYAML: %v", err)
	}
	if _, ok := bib.Get("kuhn1962"); !ok {
		t.Fatal("expected id from map key")
	}
}

func TestDecodeCSLJSONFieldAliasing(t *testing.T) {
	data := []byte(`[{
		"id": "smith2020",
		"type": "article-journal",
		"title": "A Study",
		"DOI": "10.1000/xyz",
		"URL": "https://example.com/a",
		"author": [{"family": "Smith", "given": "Jane"}],
		"issued": {"date-parts": [[2020, 3]]}
	}]`)
	bib, err := DecodeCSLJSON(data)
	if err != nil {
		t.Fatalf("DecodeCSLJSON: %v", err)
	}
	ref, ok := bib.Get("smith2020")
	if !ok {
		t.Fatal("expected reference smith2020")
	}
	doi, _ := ref.Variable("DOI")
	if doi.Original != "10.1000/xyz" {
		t.Errorf("DOI = %q", doi.Original)
	}
	issued, ok := ref.Date("issued")
	if !ok || issued.Single.Year != 2020 || issued.Single.Month != 3 {
		t.Errorf("issued = %+v", issued)
	}
}
