package stylelib

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/csln/csln/pkg/locale"
	"github.com/csln/csln/pkg/style"
)

func TestNewRegistry(t *testing.T) {
	r := NewRegistry()
	if r == nil {
		t.Fatal("NewRegistry() returned nil")
	}
	if len(r.ListStyles()) != 0 {
		t.Errorf("ListStyles() len = %d, want 0", len(r.ListStyles()))
	}
}

func TestRegisterAndGetStyle(t *testing.T) {
	r := NewRegistry()
	s := &style.Style{Info: style.Info{ID: "apa", Title: "APA"}}
	if err := r.RegisterStyle(s); err != nil {
		t.Fatalf("RegisterStyle: %v", err)
	}
	got, ok := r.GetStyle("apa")
	if !ok {
		t.Fatal("GetStyle() should find the registered style")
	}
	if got.Info.Title != "APA" {
		t.Errorf("Title = %q, want %q", got.Info.Title, "APA")
	}

	if err := r.RegisterStyle(nil); err == nil {
		t.Error("RegisterStyle(nil) should return an error")
	}

	missingID := &style.Style{}
	if err := r.RegisterStyle(missingID); err == nil {
		t.Error("RegisterStyle() with no info.id should return an error")
	}
}

func TestUnregisterStyle(t *testing.T) {
	r := NewRegistry()
	s := &style.Style{Info: style.Info{ID: "apa"}}
	if err := r.RegisterStyle(s); err != nil {
		t.Fatalf("RegisterStyle: %v", err)
	}
	if err := r.UnregisterStyle("apa"); err != nil {
		t.Errorf("UnregisterStyle: %v", err)
	}
	if _, ok := r.GetStyle("apa"); ok {
		t.Error("GetStyle() should not find an unregistered style")
	}
	if err := r.UnregisterStyle("nonexistent"); err == nil {
		t.Error("UnregisterStyle() of a nonexistent style should return an error")
	}
}

func TestListStyles(t *testing.T) {
	r := NewRegistry()
	for _, id := range []string{"apa", "mla", "chicago"} {
		if err := r.RegisterStyle(&style.Style{Info: style.Info{ID: id}}); err != nil {
			t.Fatalf("RegisterStyle(%s): %v", id, err)
		}
	}
	if got := len(r.ListStyles()); got != 3 {
		t.Errorf("ListStyles() len = %d, want 3", got)
	}
}

func TestRegisterAndGetLocale(t *testing.T) {
	r := NewRegistry()
	l := &locale.Locale{Tag: "en-US"}
	if err := r.RegisterLocale("en-US", l); err != nil {
		t.Fatalf("RegisterLocale: %v", err)
	}
	got, ok := r.GetLocale("en-US")
	if !ok {
		t.Fatal("GetLocale() should find the registered locale")
	}
	if got.Tag != "en-US" {
		t.Errorf("Tag = %q, want %q", got.Tag, "en-US")
	}
	if err := r.RegisterLocale("", l); err == nil {
		t.Error("RegisterLocale() with an empty tag should return an error")
	}
	if err := r.RegisterLocale("x", nil); err == nil {
		t.Error("RegisterLocale(nil) should return an error")
	}
}

func TestLoadStyleDirectory(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, filepath.Join(dir, "apa.yaml"), `
info:
  id: apa
  title: "American Psychological Association"
citation:
  template:
    - kind: contributor
      contributor:
        role: author
bibliography:
  template:
    - kind: title
      title:
        variant: main
`)
	writeFile(t, filepath.Join(dir, "notes.txt"), "ignored")

	r := NewRegistry()
	if err := r.LoadStyleDirectory(dir); err != nil {
		t.Fatalf("LoadStyleDirectory: %v", err)
	}
	s, ok := r.GetStyle("apa")
	if !ok {
		t.Fatal("expected apa style to be loaded")
	}
	if s.Info.Title != "American Psychological Association" {
		t.Errorf("Title = %q", s.Info.Title)
	}
}

func TestLoadStyleDirectoryMissingIDFallsBackToFilename(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, filepath.Join(dir, "mla.yaml"), `
citation:
  template:
    - kind: variable
      variable:
        name: title
bibliography:
  template:
    - kind: variable
      variable:
        name: title
`)
	r := NewRegistry()
	if err := r.LoadStyleDirectory(dir); err != nil {
		t.Fatalf("LoadStyleDirectory: %v", err)
	}
	if _, ok := r.GetStyle("mla"); !ok {
		t.Error("expected style with no declared info.id to register under its filename")
	}
}

func TestLoadStyleDirectoryNonExistent(t *testing.T) {
	r := NewRegistry()
	if err := r.LoadStyleDirectory("/non/existent/path"); err != nil {
		t.Errorf("LoadStyleDirectory() of a missing directory should not error, got: %v", err)
	}
	if len(r.ListStyles()) != 0 {
		t.Errorf("ListStyles() len = %d, want 0", len(r.ListStyles()))
	}
}

func TestLoadLocaleDirectory(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, filepath.Join(dir, "en-US.yaml"), `
tag: en-US
terms:
  editor:
    singular:
      long: "editor"
months: []
ordinals: {}
`)
	r := NewRegistry()
	if err := r.LoadLocaleDirectory(dir); err != nil {
		t.Fatalf("LoadLocaleDirectory: %v", err)
	}
	l, ok := r.GetLocale("en-US")
	if !ok {
		t.Fatal("expected en-US locale to be loaded")
	}
	if _, ok := l.Term("editor", "long", false); !ok {
		t.Error("expected editor term to resolve")
	}
}

func TestReload(t *testing.T) {
	dir := t.TempDir()
	stylePath := filepath.Join(dir, "test.yaml")
	writeFile(t, stylePath, `
info:
  id: test
  title: Original
citation:
  template: [{kind: variable, variable: {name: title}}]
bibliography:
  template: [{kind: variable, variable: {name: title}}]
`)

	r, err := NewRegistryWithDirectories(dir, t.TempDir())
	if err != nil {
		t.Fatalf("NewRegistryWithDirectories: %v", err)
	}
	s, _ := r.GetStyle("test")
	if s.Info.Title != "Original" {
		t.Errorf("Title = %q, want Original", s.Info.Title)
	}

	writeFile(t, stylePath, `
info:
  id: test
  title: Updated
citation:
  template: [{kind: variable, variable: {name: title}}]
bibliography:
  template: [{kind: variable, variable: {name: title}}]
`)
	if err := r.Reload(); err != nil {
		t.Fatalf("Reload: %v", err)
	}
	s, _ = r.GetStyle("test")
	if s.Info.Title != "Updated" {
		t.Errorf("Title after reload = %q, want Updated", s.Info.Title)
	}
}

func TestReloadNoDirectories(t *testing.T) {
	r := NewRegistry()
	if err := r.Reload(); err == nil {
		t.Error("Reload() without configured directories should return an error")
	}
}

func TestWatchNoDirectories(t *testing.T) {
	r := NewRegistry()
	if err := r.Watch(); err == nil {
		t.Error("Watch() without configured directories should return an error")
	}
}

func TestWatchDetectsModification(t *testing.T) {
	if testing.Short() {
		t.Skip("skipping watch test in short mode")
	}
	dir := t.TempDir()
	stylePath := filepath.Join(dir, "test.yaml")
	writeFile(t, stylePath, `
info:
  id: watch-test
  title: Original
citation:
  template: [{kind: variable, variable: {name: title}}]
bibliography:
  template: [{kind: variable, variable: {name: title}}]
`)

	r, err := NewRegistryWithDirectories(dir, t.TempDir())
	if err != nil {
		t.Fatalf("NewRegistryWithDirectories: %v", err)
	}

	changed := make(chan bool, 1)
	r.SetOnChange(func(event, id string) {
		select {
		case changed <- true:
		default:
		}
	})

	if err := r.Watch(); err != nil {
		t.Fatalf("Watch: %v", err)
	}
	defer r.StopWatch()

	time.Sleep(100 * time.Millisecond)

	writeFile(t, stylePath, `
info:
  id: watch-test
  title: "Updated Via Watch"
citation:
  template: [{kind: variable, variable: {name: title}}]
bibliography:
  template: [{kind: variable, variable: {name: title}}]
`)

	select {
	case <-changed:
		time.Sleep(100 * time.Millisecond)
	case <-time.After(3 * time.Second):
		t.Log("watch did not detect change within timeout (may be a slow CI environment)")
		return
	}

	s, _ := r.GetStyle("watch-test")
	if s.Info.Title != "Updated Via Watch" {
		t.Errorf("Title = %q, want %q", s.Info.Title, "Updated Via Watch")
	}
}

func writeFile(t *testing.T, path, content string) {
	t.Helper()
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		t.Fatalf("WriteFile(%s): %v", path, err)
	}
}
