// Package toolregistry implements name→builtin lookup for library
// functions that are not hardcoded as special forms (spec.md §4.1
// "ToolRegistry"). It is grounded on the teacher's
// internal/interp/builtins.Registry, generalized from DWScript's
// case-insensitive category registry to this language's case-sensitive
// flat tool namespace.
package toolregistry

import (
	"sort"
	"sync"

	"github.com/openSVM/solisp-sub002/internal/value"
)

// Category groups related tools for `discover`-style introspection and
// CLI help text, mirroring the teacher's builtins.Category.
type Category string

const (
	CategoryMath        Category = "math"
	CategoryString      Category = "string"
	CategoryArray       Category = "array"
	CategoryObject      Category = "object"
	CategoryPredicate   Category = "predicate"
	CategoryConversion  Category = "conversion"
	CategoryJSON        Category = "json"
	CategoryIO          Category = "io"
	CategoryConcurrency Category = "concurrency"
	CategorySystem      Category = "system"
)

// Func is the signature every builtin implements: it receives its
// already-evaluated arguments (library tools are always applicative
// order, spec.md §6) and returns a Value or an error.
type Func func(args []value.Value) (value.Value, error)

// Entry holds a registered tool plus its metadata.
type Entry struct {
	Name        string
	Fn          Func
	Category    Category
	Description string
}

// Registry is the evaluator's name→builtin lookup table. Registration
// happens once at evaluator construction; lookups happen on every
// ToolCall whose name is not a special form or a user-defined
// function/macro, so Get takes a read lock only.
type Registry struct {
	mu    sync.RWMutex
	tools map[string]*Entry
	byCat map[Category][]string
}

// New creates an empty Registry.
func New() *Registry {
	return &Registry{tools: make(map[string]*Entry), byCat: make(map[Category][]string)}
}

// Register adds or replaces the tool named name. Re-registering the same
// name updates the entry without duplicating it in the category index.
func (r *Registry) Register(name string, fn Func, category Category, description string) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, exists := r.tools[name]; !exists {
		r.byCat[category] = append(r.byCat[category], name)
	}
	r.tools[name] = &Entry{Name: name, Fn: fn, Category: category, Description: description}
}

// Get looks up a tool by exact name.
func (r *Registry) Get(name string) (*Entry, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	e, ok := r.tools[name]
	return e, ok
}

// Has reports whether name is a registered tool.
func (r *Registry) Has(name string) bool {
	_, ok := r.Get(name)
	return ok
}

// Names returns every registered tool name, sorted, used by `discover`
// and CLI introspection.
func (r *Registry) Names() []string {
	r.mu.RLock()
	defer r.mu.RUnlock()
	names := make([]string, 0, len(r.tools))
	for n := range r.tools {
		names = append(names, n)
	}
	sort.Strings(names)
	return names
}

// NamesInCategory returns the tool names registered under category, in
// registration order.
func (r *Registry) NamesInCategory(category Category) []string {
	r.mu.RLock()
	defer r.mu.RUnlock()
	out := make([]string, len(r.byCat[category]))
	copy(out, r.byCat[category])
	return out
}
