package migrate

import (
	"testing"

	"github.com/csln/csln/pkg/clsnerr"
)

const sampleStyle = `
<style>
  <macro name="author">
    <names variable="author"><name/></names>
  </macro>
  <citation>
    <layout delimiter="; ">
      <text macro="author"/>
      <date variable="issued" form="year" prefix="(" suffix=")"/>
    </layout>
  </citation>
  <bibliography>
    <layout>
      <choose>
        <if type="book">
          <text macro="author"/>
        </if>
        <else>
          <text variable="title"/>
        </else>
      </choose>
    </layout>
  </bibliography>
</style>`

func TestInlineMacrosSubstitutesCall(t *testing.T) {
	root, err := ParseXML([]byte(sampleStyle))
	if err != nil {
		t.Fatalf("ParseXML: %v", err)
	}
	inlined, err := InlineMacros(root)
	if err != nil {
		t.Fatalf("InlineMacros: %v", err)
	}
	citation, ok := findNamed(Upsample(inlined, &clsnerr.Report{}), "citation")
	if !ok {
		t.Fatal("citation section not found")
	}
	layout, ok := findNamed(citation, "layout")
	if !ok {
		t.Fatal("layout not found")
	}
	if len(layout.Children) == 0 || layout.Children[0].Kind != NodeContributor {
		t.Errorf("expected macro call to inline to a contributor node, got %+v", layout.Children)
	}
}

func TestInlineMacrosDetectsCycle(t *testing.T) {
	doc := `<style>
		<macro name="a"><text macro="b"/></macro>
		<macro name="b"><text macro="a"/></macro>
		<citation><layout><text macro="a"/></layout></citation>
	</style>`
	root, err := ParseXML([]byte(doc))
	if err != nil {
		t.Fatalf("ParseXML: %v", err)
	}
	_, err = InlineMacros(root)
	if err == nil {
		t.Fatal("expected a macro-cycle error")
	}
	var clErr *clsnerr.Error
	if !asClsnErr(err, &clErr) || clErr.Kind != clsnerr.KindMigrationFatal {
		t.Errorf("expected KindMigrationFatal, got %v", err)
	}
}

func TestInlineMacrosUndefinedMacroIsFatal(t *testing.T) {
	doc := `<style><citation><layout><text macro="missing"/></layout></citation></style>`
	root, _ := ParseXML([]byte(doc))
	_, err := InlineMacros(root)
	if err == nil {
		t.Fatal("expected an undefined-macro error")
	}
}

func TestUpsampleChooseProducesChooseNode(t *testing.T) {
	root, _ := ParseXML([]byte(sampleStyle))
	inlined, err := InlineMacros(root)
	if err != nil {
		t.Fatalf("InlineMacros: %v", err)
	}
	var report clsnerr.Report
	tree := Upsample(inlined, &report)
	bib, ok := findNamed(tree, "bibliography")
	if !ok {
		t.Fatal("bibliography section not found")
	}
	layout, ok := findNamed(bib, "layout")
	if !ok {
		t.Fatal("layout not found")
	}
	if len(layout.Children) != 1 || layout.Children[0].Kind != NodeChoose {
		t.Errorf("expected a single choose node, got %+v", layout.Children)
	}
}

func TestUpsampleUnknownElementWarns(t *testing.T) {
	doc := `<style><citation><layout><frobnicate/></layout></citation></style>`
	root, _ := ParseXML([]byte(doc))
	var report clsnerr.Report
	Upsample(root, &report)
	if len(report.OfKind(clsnerr.KindMigrationWarning)) == 0 {
		t.Error("expected a migration warning for the unrecognized element")
	}
}

// asClsnErr avoids importing "errors" solely for this package's test
// helper; clsnerr.Error's Is method already supports errors.As-style kind
// matching, but a direct type assertion is simpler for a single level of
// wrapping in these tests.
func asClsnErr(err error, target **clsnerr.Error) bool {
	e, ok := err.(*clsnerr.Error)
	if !ok {
		return false
	}
	*target = e
	return true
}
