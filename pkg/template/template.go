// Package template expands named task templates into per-character tasks.
package template

import (
	"encoding/json"
	"errors"
	"fmt"
	"strings"

	"tableflip.dev/prasia/pkg/model"
)

var (
	ErrNotFound    = errors.New("template: not found")
	ErrProtected   = errors.New("template: protected built-in")
	ErrInvalid     = errors.New("template: invalid template")
	ErrNoCharacter = errors.New("template: no characters selected")
)

// Task is a task blueprint: a task without identity, ownership or timestamps.
type Task struct {
	Title      string           `json:"title" toml:"title"`
	Notes      string           `json:"notes,omitempty" toml:"notes,omitempty"`
	Type       model.TaskType   `json:"type,omitempty" toml:"type,omitempty"`
	Region     string           `json:"region,omitempty" toml:"region,omitempty"`
	Location   string           `json:"location,omitempty" toml:"location,omitempty"`
	TobelStep  *int             `json:"tobelStep,omitempty" toml:"tobelStep,omitempty"`
	FavorStage model.FavorStage `json:"favorStage,omitempty" toml:"favorStage,omitempty"`
	Priority   int              `json:"priority,omitempty" toml:"priority,omitempty"`
	Tags       []string         `json:"tags,omitempty" toml:"tags,omitempty"`
	Checklist  Checklist        `json:"checklist,omitempty" toml:"checklist,omitempty"`
}

// Checklist is a list of item labels. It decodes from either strings or
// {"label": ...} objects.
type Checklist []string

func (c *Checklist) UnmarshalJSON(data []byte) error {
	var raw []json.RawMessage
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}
	out := make(Checklist, 0, len(raw))
	for _, item := range raw {
		var label string
		if err := json.Unmarshal(item, &label); err == nil {
			out = append(out, label)
			continue
		}
		var obj struct {
			Label string `json:"label"`
		}
		if err := json.Unmarshal(item, &obj); err != nil {
			return fmt.Errorf("checklist item: %w", err)
		}
		out = append(out, obj.Label)
	}
	*c = out
	return nil
}

// Template is a named list of task blueprints.
type Template struct {
	Name        string `json:"name" toml:"name"`
	Description string `json:"description" toml:"description"`
	Tasks       []Task `json:"tasks" toml:"tasks"`
}

// Clone returns a deep copy.
func (t Template) Clone() Template {
	tasks := make([]Task, len(t.Tasks))
	for i, task := range t.Tasks {
		if task.TobelStep != nil {
			step := *task.TobelStep
			task.TobelStep = &step
		}
		task.Tags = append([]string(nil), task.Tags...)
		task.Checklist = append(Checklist(nil), task.Checklist...)
		tasks[i] = task
	}
	t.Tasks = tasks
	return t
}

// Validate checks the fields a template needs to be applied.
func Validate(t Template) error {
	if strings.TrimSpace(t.Name) == "" {
		return fmt.Errorf("%w: name is required", ErrInvalid)
	}
	if strings.TrimSpace(t.Description) == "" {
		return fmt.Errorf("%w: description is required", ErrInvalid)
	}
	if t.Tasks == nil {
		return fmt.Errorf("%w: tasks are required", ErrInvalid)
	}
	for i, task := range t.Tasks {
		if strings.TrimSpace(task.Title) == "" {
			return fmt.Errorf("%w: task %d has no title", ErrInvalid, i)
		}
		if task.Type != "" {
			if _, err := model.ParseTaskType(string(task.Type)); err != nil {
				return fmt.Errorf("%w: task %d: %v", ErrInvalid, i, err)
			}
		}
		if _, err := model.ParseFavorStage(string(task.FavorStage)); err != nil {
			return fmt.Errorf("%w: task %d: %v", ErrInvalid, i, err)
		}
		if task.Priority < 0 || task.Priority > 5 {
			return fmt.Errorf("%w: task %d priority %d out of range", ErrInvalid, i, task.Priority)
		}
	}
	return nil
}

// Input builds the task input for character id. Missing fields take the
// template defaults: type other, priority 2, status todo.
func (task Task) Input(characterID string) model.TaskInput {
	in := model.TaskInput{
		CharacterID: characterID,
		Title:       task.Title,
		Notes:       task.Notes,
		Type:        model.TypeOther,
		Status:      model.StatusTodo,
		Priority:    2,
		Region:      task.Region,
		Location:    task.Location,
		FavorStage:  task.FavorStage,
		Tags:        append([]string{}, task.Tags...),
		Checklist:   make([]model.ChecklistItem, 0, len(task.Checklist)),
	}
	if task.Type != "" {
		if tt, err := model.ParseTaskType(string(task.Type)); err == nil {
			in.Type = tt
		}
	}
	if task.Priority > 0 {
		in.Priority = task.Priority
	}
	if task.TobelStep != nil && *task.TobelStep != 0 {
		in.TobelStep = model.Int(*task.TobelStep)
	}
	for _, label := range task.Checklist {
		in.Checklist = append(in.Checklist, model.ChecklistItem{Label: label})
	}
	return in
}
