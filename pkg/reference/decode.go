package reference

import (
	"encoding/json"
	"fmt"

	"github.com/csln/csln/pkg/clsnerr"
	"github.com/csln/csln/pkg/edtf"
	"gopkg.in/yaml.v3"
)

// DecodeBibliographyYAML parses a bibliography document that is either a
// YAML array of references or a map keyed by id (§6).
func DecodeBibliographyYAML(data []byte) (*Bibliography, error) {
	var asArray []*Reference
	if err := yaml.Unmarshal(data, &asArray); err == nil && len(asArray) > 0 {
		return NewBibliography(asArray)
	}

	var asMap map[string]*Reference
	if err := yaml.Unmarshal(data, &asMap); err != nil {
		return nil, clsnerr.Wrap(clsnerr.KindParseError, "decoding bibliography YAML", err)
	}
	refs := make([]*Reference, 0, len(asMap))
	for id, ref := range asMap {
		if ref.ID == "" {
			ref.ID = id
		}
		refs = append(refs, ref)
	}
	return NewBibliography(refs)
}

// csljsonItem mirrors the CSL-JSON 1.0 exchange format used by reference
// managers, with its historically case-preserved identifier fields
// (grounded on the field-aliasing convention the crosswalk CSL
// serializer follows for the same format).
type csljsonItem struct {
	ID        string          `json:"id"`
	Type      string          `json:"type"`
	Title     string          `json:"title"`
	Container string          `json:"container-title"`
	Publisher string          `json:"publisher"`
	Volume    string          `json:"volume"`
	Issue     string          `json:"issue"`
	Page      string          `json:"page"`
	DOI       string          `json:"DOI"`
	URL       string          `json:"URL"`
	ISBN      string          `json:"ISBN"`
	ISSN      string          `json:"ISSN"`
	Language  string          `json:"language"`
	Author    []csljsonName   `json:"author"`
	Editor    []csljsonName   `json:"editor"`
	Translator []csljsonName  `json:"translator"`
	Issued    csljsonDate     `json:"issued"`
	Accessed  csljsonDate     `json:"accessed"`
}

type csljsonName struct {
	Family  string `json:"family"`
	Given   string `json:"given"`
	Literal string `json:"literal"`
	Suffix  string `json:"suffix"`

	// ParticleSplit fields. CSL-JSON names the non-dropping particle
	// "non-dropping-particle" and the dropping particle "dropping-particle".
	NonDroppingParticle string `json:"non-dropping-particle"`
	DroppingParticle    string `json:"dropping-particle"`
}

type csljsonDate struct {
	DateParts [][]int `json:"date-parts"`
	Raw       string  `json:"raw"`
}

func (d csljsonDate) toEDTF() edtf.EDTF {
	if d.Raw != "" {
		parsed, err := edtf.Parse(d.Raw)
		if err == nil {
			return parsed
		}
	}
	if len(d.DateParts) == 0 || len(d.DateParts[0]) == 0 {
		return edtf.EDTF{}
	}
	parts := d.DateParts[0]
	date := edtf.Date{Year: parts[0], Precision: edtf.PrecisionYear}
	if len(parts) >= 2 {
		date.Month = parts[1]
		date.Precision = edtf.PrecisionYearMonth
	}
	if len(parts) >= 3 {
		date.Day = parts[2]
		date.Precision = edtf.PrecisionFull
	}
	return edtf.EDTF{Single: date}
}

func csljsonNameToContributor(n csljsonName) Contributor {
	if n.Literal != "" {
		return LiteralContributor(n.Literal)
	}
	return NewStructuredContributor(StructuredName{
		Family:              NamePart{Plain: n.Family},
		Given:                NamePart{Plain: n.Given},
		Suffix:               NamePart{Plain: n.Suffix},
		NonDroppingParticle:  NamePart{Plain: n.NonDroppingParticle},
		DroppingParticle:     NamePart{Plain: n.DroppingParticle},
	})
}

// DecodeCSLJSON parses a CSL-JSON document (a single item, or an array of
// items) into a Bibliography.
func DecodeCSLJSON(data []byte) (*Bibliography, error) {
	var items []csljsonItem
	if err := json.Unmarshal(data, &items); err != nil {
		var single csljsonItem
		if err2 := json.Unmarshal(data, &single); err2 != nil {
			return nil, clsnerr.Wrap(clsnerr.KindParseError, "decoding CSL-JSON", err)
		}
		items = []csljsonItem{single}
	}

	refs := make([]*Reference, 0, len(items))
	for _, item := range items {
		ref := &Reference{
			ID:           item.ID,
			Type:         Type(item.Type),
			Variables:    map[string]MultilingualString{},
			Contributors: map[string][]Contributor{},
			Dates:        map[string]edtf.EDTF{},
			Language:     item.Language,
		}
		if item.Title != "" {
			ref.Variables["title"] = Plain(item.Title)
		}
		if item.Container != "" {
			ref.Variables["container-title"] = Plain(item.Container)
		}
		if item.Publisher != "" {
			ref.Variables["publisher"] = Plain(item.Publisher)
		}
		if item.Volume != "" {
			ref.Variables["volume"] = Plain(item.Volume)
		}
		if item.Issue != "" {
			ref.Variables["issue"] = Plain(item.Issue)
		}
		if item.Page != "" {
			ref.Variables["pages"] = Plain(item.Page)
		}
		if item.DOI != "" {
			ref.Variables["DOI"] = Plain(item.DOI)
		}
		if item.URL != "" {
			ref.Variables["URL"] = Plain(item.URL)
		}
		if item.ISBN != "" {
			ref.Variables["ISBN"] = Plain(item.ISBN)
		}
		if item.ISSN != "" {
			ref.Variables["ISSN"] = Plain(item.ISSN)
		}
		for _, a := range item.Author {
			ref.Contributors["author"] = append(ref.Contributors["author"], csljsonNameToContributor(a))
		}
		for _, e := range item.Editor {
			ref.Contributors["editor"] = append(ref.Contributors["editor"], csljsonNameToContributor(e))
		}
		for _, tr := range item.Translator {
			ref.Contributors["translator"] = append(ref.Contributors["translator"], csljsonNameToContributor(tr))
		}
		if d := item.Issued.toEDTF(); !d.Single.IsZero() || d.IsRange {
			ref.Dates["issued"] = d
		}
		if d := item.Accessed.toEDTF(); !d.Single.IsZero() || d.IsRange {
			ref.Dates["accessed"] = d
		}
		refs = append(refs, ref)
	}

	if err := assignMissingIDs(refs); err != nil {
		return nil, err
	}
	return NewBibliography(refs)
}

func assignMissingIDs(refs []*Reference) error {
	for i, ref := range refs {
		if ref.ID == "" {
			if title, ok := ref.Variable("title"); ok && title.Original != "" {
				ref.ID = fmt.Sprintf("item-%d", i+1)
			} else {
				ref.ID = fmt.Sprintf("item-%d", i+1)
			}
		}
	}
	return nil
}
