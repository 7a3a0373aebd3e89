// Package format renders a template.Run sequence to a concrete output
// syntax (§4.10, C11): plain text, HTML, LaTeX, or Djot, with
// punctuation-in-quote repositioning applied as the final pass over
// whichever syntax's quote characters it produced.
package format

import (
	"fmt"
	"sort"
	"sync"

	"github.com/csln/csln/pkg/template"
)

// Renderer converts a styled run sequence into one output syntax.
type Renderer interface {
	Name() string
	Render(runs []template.Run) string
}

// Registry holds a set of named Renderers, the way a CSLN deployment
// registers "plain", "html", "latex", and "djot" writers and looks one
// up by the --format flag or API request field.
type Registry struct {
	mu        sync.RWMutex
	renderers map[string]Renderer
}

// NewRegistry creates an empty output-format registry.
func NewRegistry() *Registry {
	return &Registry{renderers: make(map[string]Renderer)}
}

// Register adds a renderer under its own Name(). Returns an error if the
// renderer is nil, has an empty name, or the name is already taken.
func (r *Registry) Register(renderer Renderer) error {
	if renderer == nil {
		return fmt.Errorf("format: renderer cannot be nil")
	}
	name := renderer.Name()
	if name == "" {
		return fmt.Errorf("format: renderer name cannot be empty")
	}

	r.mu.Lock()
	defer r.mu.Unlock()
	if _, exists := r.renderers[name]; exists {
		return fmt.Errorf("format: renderer %q already registered", name)
	}
	r.renderers[name] = renderer
	return nil
}

// Get returns the renderer registered under name.
func (r *Registry) Get(name string) (Renderer, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	renderer, ok := r.renderers[name]
	return renderer, ok
}

// List returns every registered renderer name in sorted order.
func (r *Registry) List() []string {
	r.mu.RLock()
	defer r.mu.RUnlock()
	names := make([]string, 0, len(r.renderers))
	for name := range r.renderers {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// Default registers the four built-in output renderers (plain, html,
// latex, djot). The html, latex and djot renderers honor the locale's
// punctuation-in-quote setting; the plain renderer never repositions.
func Default(punctuationInQuote bool) *Registry {
	reg := NewRegistry()
	_ = reg.Register(PlainRenderer{})
	_ = reg.Register(HTMLRenderer{PunctuationInQuote: punctuationInQuote})
	_ = reg.Register(LaTeXRenderer{PunctuationInQuote: punctuationInQuote})
	_ = reg.Register(DjotRenderer{PunctuationInQuote: punctuationInQuote})
	return reg
}
