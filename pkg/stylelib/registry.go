// Package stylelib is a directory-backed registry of Style and Locale
// documents with fsnotify-driven hot reload, letting a long-running
// rendering service pick up edited/added style and locale files without
// a restart (§5's "read-only after load" resource policy applies per
// render, not for the registry's whole lifetime).
package stylelib

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"sync"

	"gopkg.in/fsnotify.v1"
	"gopkg.in/yaml.v3"

	"github.com/csln/csln/pkg/locale"
	"github.com/csln/csln/pkg/style"
)

// Registry manages a live collection of styles and locales loaded from a
// directory pair.
type Registry interface {
	RegisterStyle(s *style.Style) error
	UnregisterStyle(id string) error
	GetStyle(id string) (*style.Style, bool)
	ListStyles() []*style.Style

	RegisterLocale(tag string, l *locale.Locale) error
	GetLocale(tag string) (*locale.Locale, bool)
	ListLocaleTags() []string

	Reload() error
	Watch() error
	StopWatch()

	LoadStyleDirectory(dir string) error
	LoadLocaleDirectory(dir string) error
}

// DefaultRegistry is the default Registry implementation.
type DefaultRegistry struct {
	mu         sync.RWMutex
	styles     map[string]*style.Style
	locales    map[string]*locale.Locale
	styleDir   string
	localeDir  string
	watcher    *fsnotify.Watcher
	stopChan   chan struct{}
	onChange   func(event string, id string)
}

// NewRegistry creates an empty style/locale registry.
func NewRegistry() *DefaultRegistry {
	return &DefaultRegistry{
		styles:  make(map[string]*style.Style),
		locales: make(map[string]*locale.Locale),
	}
}

// NewRegistryWithDirectories creates a registry and loads its initial
// contents from a style directory and a locale directory.
func NewRegistryWithDirectories(styleDir, localeDir string) (*DefaultRegistry, error) {
	r := NewRegistry()
	r.styleDir = styleDir
	r.localeDir = localeDir
	if err := r.LoadStyleDirectory(styleDir); err != nil {
		return nil, err
	}
	if err := r.LoadLocaleDirectory(localeDir); err != nil {
		return nil, err
	}
	return r, nil
}

// RegisterStyle adds a style to the registry under its Info.ID.
func (r *DefaultRegistry) RegisterStyle(s *style.Style) error {
	if s == nil {
		return fmt.Errorf("style cannot be nil")
	}
	if s.Info.ID == "" {
		return fmt.Errorf("style has no info.id to register under")
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	r.styles[s.Info.ID] = s
	return nil
}

// UnregisterStyle removes a style from the registry.
func (r *DefaultRegistry) UnregisterStyle(id string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.styles[id]; !ok {
		return fmt.Errorf("style %q not found", id)
	}
	delete(r.styles, id)
	return nil
}

// GetStyle returns the registered style with the given id.
func (r *DefaultRegistry) GetStyle(id string) (*style.Style, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	s, ok := r.styles[id]
	return s, ok
}

// ListStyles returns every registered style.
func (r *DefaultRegistry) ListStyles() []*style.Style {
	r.mu.RLock()
	defer r.mu.RUnlock()
	out := make([]*style.Style, 0, len(r.styles))
	for _, s := range r.styles {
		out = append(out, s)
	}
	return out
}

// RegisterLocale adds a locale under a BCP-47 tag.
func (r *DefaultRegistry) RegisterLocale(tag string, l *locale.Locale) error {
	if l == nil {
		return fmt.Errorf("locale cannot be nil")
	}
	if tag == "" {
		return fmt.Errorf("locale tag cannot be empty")
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	r.locales[tag] = l
	return nil
}

// GetLocale returns the locale registered under tag.
func (r *DefaultRegistry) GetLocale(tag string) (*locale.Locale, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	l, ok := r.locales[tag]
	return l, ok
}

// ListLocaleTags returns every registered locale's BCP-47 tag.
func (r *DefaultRegistry) ListLocaleTags() []string {
	r.mu.RLock()
	defer r.mu.RUnlock()
	out := make([]string, 0, len(r.locales))
	for tag := range r.locales {
		out = append(out, tag)
	}
	return out
}

// LoadStyleDirectory loads every *.yaml/*.yml file in dir as a Style,
// keyed by its own info.id. A missing directory is not an error: nothing
// to load yet is a valid starting state for a registry a caller will
// Watch() once styles start appearing.
func (r *DefaultRegistry) LoadStyleDirectory(dir string) error {
	r.styleDir = dir
	return loadYAMLDirectory(dir, func(path string, data []byte) error {
		var s style.Style
		if err := yaml.Unmarshal(data, &s); err != nil {
			return fmt.Errorf("parsing style YAML %s: %w", path, err)
		}
		if s.Info.ID == "" {
			s.Info.ID = strings.TrimSuffix(strings.TrimSuffix(filepath.Base(path), ".yaml"), ".yml")
		}
		return r.RegisterStyle(&s)
	})
}

// LoadLocaleDirectory loads every *.yaml/*.yml file in dir as a Locale,
// keyed by the file's base name (its BCP-47 tag, e.g. "en-US.yaml").
func (r *DefaultRegistry) LoadLocaleDirectory(dir string) error {
	r.localeDir = dir
	return loadYAMLDirectory(dir, func(path string, data []byte) error {
		var l locale.Locale
		if err := yaml.Unmarshal(data, &l); err != nil {
			return fmt.Errorf("parsing locale YAML %s: %w", path, err)
		}
		tag := strings.TrimSuffix(strings.TrimSuffix(filepath.Base(path), ".yaml"), ".yml")
		return r.RegisterLocale(tag, &l)
	})
}

func loadYAMLDirectory(dir string, load func(path string, data []byte) error) error {
	info, err := os.Stat(dir)
	if err != nil {
		if os.IsNotExist(err) {
			return nil
		}
		return fmt.Errorf("checking directory %s: %w", dir, err)
	}
	if !info.IsDir() {
		return fmt.Errorf("%s is not a directory", dir)
	}

	entries, err := os.ReadDir(dir)
	if err != nil {
		return fmt.Errorf("reading directory %s: %w", dir, err)
	}

	var loadErrors []string
	for _, entry := range entries {
		if entry.IsDir() {
			continue
		}
		name := entry.Name()
		if !strings.HasSuffix(name, ".yaml") && !strings.HasSuffix(name, ".yml") {
			continue
		}
		path := filepath.Join(dir, name)
		data, err := os.ReadFile(path)
		if err != nil {
			loadErrors = append(loadErrors, fmt.Sprintf("%s: %v", name, err))
			continue
		}
		if err := load(path, data); err != nil {
			loadErrors = append(loadErrors, fmt.Sprintf("%s: %v", name, err))
		}
	}
	if len(loadErrors) > 0 {
		return fmt.Errorf("errors loading %s: %s", dir, strings.Join(loadErrors, "; "))
	}
	return nil
}

// Reload clears and reloads both directories from scratch.
func (r *DefaultRegistry) Reload() error {
	if r.styleDir == "" && r.localeDir == "" {
		return fmt.Errorf("no directories configured for reload")
	}
	r.mu.Lock()
	r.styles = make(map[string]*style.Style)
	r.locales = make(map[string]*locale.Locale)
	r.mu.Unlock()

	if r.styleDir != "" {
		if err := r.LoadStyleDirectory(r.styleDir); err != nil {
			return err
		}
	}
	if r.localeDir != "" {
		if err := r.LoadLocaleDirectory(r.localeDir); err != nil {
			return err
		}
	}
	return nil
}

// SetOnChange sets a callback fired with ("create"|"modify"|"remove", id)
// whenever a watched file changes.
func (r *DefaultRegistry) SetOnChange(fn func(event string, id string)) {
	r.onChange = fn
}

// Watch starts watching both configured directories for changes.
func (r *DefaultRegistry) Watch() error {
	if r.styleDir == "" && r.localeDir == "" {
		return fmt.Errorf("no directories configured for watching")
	}
	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return fmt.Errorf("creating watcher: %w", err)
	}
	r.watcher = watcher
	r.stopChan = make(chan struct{})

	go r.watchLoop()

	if r.styleDir != "" {
		if err := watcher.Add(r.styleDir); err != nil {
			r.watcher.Close()
			return fmt.Errorf("watching style directory %s: %w", r.styleDir, err)
		}
	}
	if r.localeDir != "" && r.localeDir != r.styleDir {
		if err := watcher.Add(r.localeDir); err != nil {
			r.watcher.Close()
			return fmt.Errorf("watching locale directory %s: %w", r.localeDir, err)
		}
	}
	return nil
}

func (r *DefaultRegistry) watchLoop() {
	for {
		select {
		case <-r.stopChan:
			return
		case event, ok := <-r.watcher.Events:
			if !ok {
				return
			}
			if !strings.HasSuffix(event.Name, ".yaml") && !strings.HasSuffix(event.Name, ".yml") {
				continue
			}
			switch {
			case event.Op&fsnotify.Create == fsnotify.Create:
				r.handleFileChange(event.Name, "create")
			case event.Op&fsnotify.Write == fsnotify.Write:
				r.handleFileChange(event.Name, "modify")
			case event.Op&fsnotify.Remove == fsnotify.Remove, event.Op&fsnotify.Rename == fsnotify.Rename:
				r.handleFileRemove(event.Name)
			}
		case _, ok := <-r.watcher.Errors:
			if !ok {
				return
			}
		}
	}
}

func (r *DefaultRegistry) handleFileChange(path, eventType string) {
	var loadErr error
	var id string
	if r.styleDir != "" && strings.HasPrefix(path, r.styleDir) {
		loadErr = r.loadOneStyleFile(path)
		id = strings.TrimSuffix(strings.TrimSuffix(filepath.Base(path), ".yaml"), ".yml")
	} else {
		loadErr = r.loadOneLocaleFile(path)
		id = strings.TrimSuffix(strings.TrimSuffix(filepath.Base(path), ".yaml"), ".yml")
	}
	if loadErr != nil {
		return
	}
	if r.onChange != nil {
		r.onChange(eventType, id)
	}
}

func (r *DefaultRegistry) loadOneStyleFile(path string) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return err
	}
	var s style.Style
	if err := yaml.Unmarshal(data, &s); err != nil {
		return err
	}
	if s.Info.ID == "" {
		s.Info.ID = strings.TrimSuffix(strings.TrimSuffix(filepath.Base(path), ".yaml"), ".yml")
	}
	return r.RegisterStyle(&s)
}

func (r *DefaultRegistry) loadOneLocaleFile(path string) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return err
	}
	var l locale.Locale
	if err := yaml.Unmarshal(data, &l); err != nil {
		return err
	}
	tag := strings.TrimSuffix(strings.TrimSuffix(filepath.Base(path), ".yaml"), ".yml")
	return r.RegisterLocale(tag, &l)
}

func (r *DefaultRegistry) handleFileRemove(path string) {
	if err := r.Reload(); err != nil {
		return
	}
	if r.onChange != nil {
		r.onChange("remove", strings.TrimSuffix(strings.TrimSuffix(filepath.Base(path), ".yaml"), ".yml"))
	}
}

// StopWatch stops the filesystem watcher, if running.
func (r *DefaultRegistry) StopWatch() {
	if r.stopChan != nil {
		close(r.stopChan)
	}
	if r.watcher != nil {
		r.watcher.Close()
	}
}
