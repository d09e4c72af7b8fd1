// Package query filters, sorts and groups task snapshots. It never touches
// the store.
package query

import (
	"sort"
	"strings"

	"golang.org/x/text/cases"
	"golang.org/x/text/collate"
	"golang.org/x/text/language"

	"tableflip.dev/prasia/pkg/model"
)

// Options selects and orders tasks. Zero values disable a filter; an empty
// SortBy sorts by updated.
type Options struct {
	// Status is a status or model.FilterAll.
	Status string
	// CharacterID is a character id or model.AllCharacters.
	CharacterID string
	Search      string
	SortBy      model.SortKey
}

// ListTasks returns the tasks matching opts in the requested order. The input
// slice is not modified.
func ListTasks(tasks []model.Task, opts Options) []model.Task {
	out := make([]model.Task, 0, len(tasks))
	match := matcher(opts.Search)
	for _, t := range tasks {
		if opts.Status != "" && opts.Status != model.FilterAll && string(t.Status) != opts.Status {
			continue
		}
		if opts.CharacterID != "" && opts.CharacterID != model.AllCharacters && t.CharacterID != opts.CharacterID {
			continue
		}
		if !match(t) {
			continue
		}
		out = append(out, t)
	}
	Sort(out, opts.SortBy)
	return out
}

// Search keeps the tasks whose title, notes or any tag contains text,
// ignoring case. Blank text keeps everything.
func Search(tasks []model.Task, text string) []model.Task {
	match := matcher(text)
	out := make([]model.Task, 0, len(tasks))
	for _, t := range tasks {
		if match(t) {
			out = append(out, t)
		}
	}
	return out
}

func matcher(text string) func(model.Task) bool {
	if strings.TrimSpace(text) == "" {
		return func(model.Task) bool { return true }
	}
	fold := cases.Fold()
	needle := fold.String(text)
	contains := func(s string) bool {
		return strings.Contains(fold.String(s), needle)
	}
	return func(t model.Task) bool {
		if contains(t.Title) || contains(t.Notes) {
			return true
		}
		for _, tag := range t.Tags {
			if contains(tag) {
				return true
			}
		}
		return false
	}
}

// Sort orders tasks in place. Equal keys keep their input order.
func Sort(tasks []model.Task, by model.SortKey) {
	var less func(a, b model.Task) bool
	switch by {
	case model.SortDue:
		less = func(a, b model.Task) bool {
			switch {
			case a.DueAt == nil:
				return false
			case b.DueAt == nil:
				return true
			}
			return *a.DueAt < *b.DueAt
		}
	case model.SortPriority:
		less = func(a, b model.Task) bool { return a.Priority > b.Priority }
	case model.SortRegion:
		c := collate.New(language.Korean)
		less = func(a, b model.Task) bool { return c.CompareString(a.Region, b.Region) < 0 }
	default:
		less = func(a, b model.Task) bool { return a.UpdatedAt > b.UpdatedAt }
	}
	sort.SliceStable(tasks, func(i, j int) bool { return less(tasks[i], tasks[j]) })
}
