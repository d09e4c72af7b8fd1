package template

import (
	"errors"
	"fmt"

	"github.com/charmbracelet/log"

	"tableflip.dev/prasia/pkg/model"
	"tableflip.dev/prasia/pkg/store"
)

// Engine applies registry templates to stored characters.
type Engine struct {
	Registry *Registry
	Store    *store.Store
	Log      *log.Logger
}

// Result reports an Apply call. On failure only Error is set.
type Result struct {
	Success        bool   `json:"success"`
	Error          string `json:"error,omitempty"`
	TemplateName   string `json:"templateName,omitempty"`
	CharacterCount int    `json:"characterCount"`
	TaskCount      int    `json:"taskCount"`
	// Skipped lists character ids that did not resolve.
	Skipped []string `json:"skipped,omitempty"`
}

// Err returns the failure as an error, or nil on success.
func (r Result) Err() error {
	if r.Success {
		return nil
	}
	return errors.New(r.Error)
}

func failed(err error) Result {
	return Result{Error: err.Error()}
}

// Apply creates one task per template task for each known character id and
// appends them in one batch. Unknown ids are skipped with a warning.
func (e *Engine) Apply(name string, characterIDs []string) Result {
	t, chars, err := e.resolve(name, characterIDs)
	if err != nil {
		return failed(err)
	}

	var skipped []string
	var batch []model.Task
	processed := 0
	for _, id := range characterIDs {
		if _, ok := chars[id]; !ok {
			e.logger().Warn("character not found", "template", name, "character", id)
			skipped = append(skipped, id)
			continue
		}
		processed++
		for _, task := range t.Tasks {
			batch = append(batch, store.NewTask(task.Input(id)))
		}
	}

	if len(batch) > 0 && !e.Store.AppendTasks(batch) {
		return failed(fmt.Errorf("template: could not save %d tasks", len(batch)))
	}
	return Result{
		Success:        true,
		TemplateName:   t.Name,
		CharacterCount: processed,
		TaskCount:      len(batch),
		Skipped:        skipped,
	}
}

// PreviewTask is one task Apply would create.
type PreviewTask struct {
	CharacterName  string         `json:"characterName"`
	Title          string         `json:"title"`
	Type           model.TaskType `json:"type"`
	Region         string         `json:"region"`
	ChecklistCount int            `json:"checklistCount"`
}

// Preview describes what Apply would do without writing anything.
type Preview struct {
	TemplateName   string        `json:"templateName"`
	Description    string        `json:"description"`
	CharacterCount int           `json:"characterCount"`
	TotalTasks     int           `json:"totalTasks"`
	Tasks          []PreviewTask `json:"tasks"`
}

// Preview lists the tasks Apply would create for characterIDs.
func (e *Engine) Preview(name string, characterIDs []string) (Preview, error) {
	t, chars, err := e.resolve(name, characterIDs)
	if err != nil {
		return Preview{}, err
	}
	p := Preview{TemplateName: t.Name, Description: t.Description, Tasks: []PreviewTask{}}
	for _, id := range characterIDs {
		c, ok := chars[id]
		if !ok {
			continue
		}
		p.CharacterCount++
		for _, task := range t.Tasks {
			in := task.Input(id)
			p.Tasks = append(p.Tasks, PreviewTask{
				CharacterName:  c.Name,
				Title:          in.Title,
				Type:           in.Type,
				Region:         in.Region,
				ChecklistCount: len(in.Checklist),
			})
		}
	}
	p.TotalTasks = len(p.Tasks)
	return p, nil
}

func (e *Engine) resolve(name string, characterIDs []string) (Template, map[string]model.Character, error) {
	if e.Registry == nil || e.Store == nil {
		return Template{}, nil, errors.New("template: engine not configured")
	}
	t, ok := e.Registry.Get(name)
	if !ok {
		return Template{}, nil, fmt.Errorf("%w: %s", ErrNotFound, name)
	}
	if len(characterIDs) == 0 {
		return Template{}, nil, ErrNoCharacter
	}
	chars := make(map[string]model.Character)
	for _, c := range e.Store.GetCharacters("") {
		chars[c.ID] = c
	}
	return t, chars, nil
}

func (e *Engine) logger() *log.Logger {
	if e.Log == nil {
		return log.Default()
	}
	return e.Log
}
