package docproc

import (
	"reflect"
	"testing"

	"github.com/csln/csln/pkg/assemble"
)

func TestScanBracketedSingle(t *testing.T) {
	result := Scan("See [@kuhn1962] for background.")
	if len(result.Markers) != 1 {
		t.Fatalf("Markers = %+v", result.Markers)
	}
	m := result.Markers[0]
	if m.Form != assemble.FormNonIntegral || len(m.Items) != 1 || m.Items[0].ReferenceID != "kuhn1962" {
		t.Errorf("marker = %+v", m)
	}
}

func TestScanIntegral(t *testing.T) {
	result := Scan("As @kuhn1962 argues, paradigms shift.")
	if len(result.Markers) != 1 {
		t.Fatalf("Markers = %+v", result.Markers)
	}
	m := result.Markers[0]
	if m.Form != assemble.FormIntegral || m.Items[0].ReferenceID != "kuhn1962" {
		t.Errorf("marker = %+v", m)
	}
}

func TestScanIntegralWithLocator(t *testing.T) {
	result := Scan("As @kuhn1962{12-14} argues.")
	m := result.Markers[0]
	if m.Items[0].Locator != "12-14" {
		t.Errorf("Locator = %q", m.Items[0].Locator)
	}
}

func TestScanGroupedBracketed(t *testing.T) {
	result := Scan("[@kuhn1962; @kuhn1970{45}]")
	m := result.Markers[0]
	if len(m.Items) != 2 {
		t.Fatalf("Items = %+v", m.Items)
	}
	if m.Items[0].ReferenceID != "kuhn1962" || m.Items[1].ReferenceID != "kuhn1970" || m.Items[1].Locator != "45" {
		t.Errorf("Items = %+v", m.Items)
	}
}

func TestScanAuthorOnlyAndSuppressAuthor(t *testing.T) {
	result := Scan("[+@kuhn1962] said this, unlike [-@kuhn1970].")
	if len(result.Markers) != 2 {
		t.Fatalf("Markers = %+v", result.Markers)
	}
	if result.Markers[0].Items[0].Visibility != assemble.VisibilityAuthorOnly {
		t.Errorf("first marker visibility = %v", result.Markers[0].Items[0].Visibility)
	}
	if result.Markers[1].Items[0].Visibility != assemble.VisibilitySuppressAuthor {
		t.Errorf("second marker visibility = %v", result.Markers[1].Items[0].Visibility)
	}
}

func TestScanNocite(t *testing.T) {
	result := Scan("Background reading. [!@kuhn1962]")
	if !reflect.DeepEqual(result.Nocite, []string{"kuhn1962"}) {
		t.Errorf("Nocite = %v", result.Nocite)
	}
	if len(Requests(result)) != 0 {
		t.Errorf("nocite markers should not produce citation requests")
	}
}

func TestRequestsSkipsNocite(t *testing.T) {
	result := Scan("See [@kuhn1962]. [!@kuhn1970]")
	reqs := Requests(result)
	if len(reqs) != 1 || reqs[0].Items[0].ReferenceID != "kuhn1962" {
		t.Errorf("Requests = %+v", reqs)
	}
}

func TestCitedIDsIncludesNocite(t *testing.T) {
	result := Scan("See @kuhn1962. [!@kuhn1970]")
	ids := CitedIDs(result)
	if !ids["kuhn1962"] || !ids["kuhn1970"] {
		t.Errorf("CitedIDs = %v", ids)
	}
}
