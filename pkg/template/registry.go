package template

import (
	"fmt"
	"strings"
	"sync"

	"golang.org/x/text/cases"
)

// ProtectedName is the built-in template that cannot be deleted.
const ProtectedName = "맹약 준비"

// Registry holds templates by name. Registering an existing name replaces the
// template but keeps its listing position.
type Registry struct {
	mu        sync.RWMutex
	order     []string
	templates map[string]Template
}

// NewRegistry returns a registry holding the built-in templates.
func NewRegistry() *Registry {
	r := NewEmptyRegistry()
	for _, t := range Builtins() {
		r.Register(t)
	}
	return r
}

// NewEmptyRegistry returns a registry without templates.
func NewEmptyRegistry() *Registry {
	return &Registry{templates: make(map[string]Template)}
}

// Register adds or replaces t.
func (r *Registry) Register(t Template) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.templates[t.Name]; !ok {
		r.order = append(r.order, t.Name)
	}
	r.templates[t.Name] = t.Clone()
}

// Get looks up a template by name.
func (r *Registry) Get(name string) (Template, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	t, ok := r.templates[name]
	if !ok {
		return Template{}, false
	}
	return t.Clone(), true
}

// All returns the templates in registration order.
func (r *Registry) All() []Template {
	r.mu.RLock()
	defer r.mu.RUnlock()
	out := make([]Template, 0, len(r.order))
	for _, name := range r.order {
		out = append(out, r.templates[name].Clone())
	}
	return out
}

// Delete removes a template. It reports whether anything was removed.
func (r *Registry) Delete(name string) (bool, error) {
	if name == ProtectedName {
		return false, fmt.Errorf("%w: %s", ErrProtected, name)
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.templates[name]; !ok {
		return false, nil
	}
	delete(r.templates, name)
	for i, n := range r.order {
		if n == name {
			r.order = append(r.order[:i], r.order[i+1:]...)
			break
		}
	}
	return true, nil
}

// Create registers a custom template after validating it.
func (r *Registry) Create(name, description string, tasks []Task) (Template, error) {
	t := Template{Name: name, Description: description, Tasks: tasks}
	if err := Validate(t); err != nil {
		return Template{}, err
	}
	r.Register(t)
	return t.Clone(), nil
}

// Clone registers a copy of the template original under name.
func (r *Registry) Clone(original, name string) (Template, error) {
	t, ok := r.Get(original)
	if !ok {
		return Template{}, fmt.Errorf("%w: %s", ErrNotFound, original)
	}
	if strings.TrimSpace(name) == "" {
		return Template{}, fmt.Errorf("%w: name is required", ErrInvalid)
	}
	t.Name = name
	t.Description = t.Description + " (복사본)"
	r.Register(t)
	return t, nil
}

// Search returns the templates whose name, description or any task title
// contains query, ignoring case.
func (r *Registry) Search(query string) []Template {
	fold := cases.Fold()
	needle := fold.String(query)
	contains := func(s string) bool { return strings.Contains(fold.String(s), needle) }

	var out []Template
	for _, t := range r.All() {
		if contains(t.Name) || contains(t.Description) {
			out = append(out, t)
			continue
		}
		for _, task := range t.Tasks {
			if contains(task.Title) {
				out = append(out, t)
				break
			}
		}
	}
	return out
}

// Summary describes one template in Stats.
type Summary struct {
	Name        string `json:"name"`
	Description string `json:"description"`
	TaskCount   int    `json:"taskCount"`
}

// Stats totals the registry.
type Stats struct {
	TotalTemplates int       `json:"totalTemplates"`
	TotalTasks     int       `json:"totalTasks"`
	Templates      []Summary `json:"templates"`
}

// Stats reports template and task counts.
func (r *Registry) Stats() Stats {
	all := r.All()
	s := Stats{TotalTemplates: len(all), Templates: make([]Summary, 0, len(all))}
	for _, t := range all {
		s.TotalTasks += len(t.Tasks)
		s.Templates = append(s.Templates, Summary{Name: t.Name, Description: t.Description, TaskCount: len(t.Tasks)})
	}
	return s
}
