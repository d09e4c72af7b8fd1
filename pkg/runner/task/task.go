// Package task runs the task subcommands.
package task

import (
	"context"
	"errors"
	"fmt"
	"io"

	"tableflip.dev/prasia/pkg/app"
	"tableflip.dev/prasia/pkg/model"
	"tableflip.dev/prasia/pkg/printers"
	"tableflip.dev/prasia/pkg/query"
	"tableflip.dev/prasia/pkg/store"
)

var errNoStore = errors.New("task: no store")

// Validate checks the fields a store write does not.
func Validate(priority int, tobelStep *int) error {
	if priority < 0 || priority > 5 {
		return fmt.Errorf("task: priority %d out of range 0-5", priority)
	}
	if tobelStep != nil && *tobelStep != model.TobelStepFirst && *tobelStep != model.TobelStepLast {
		return fmt.Errorf("task: tobel step must be %d or %d", model.TobelStepFirst, model.TobelStepLast)
	}
	return nil
}

type Add struct {
	Input model.TaskInput

	Store *store.Store
	JSON  bool
	Out   io.Writer
}

func (n *Add) Do(ctx context.Context) error {
	if n.Store == nil {
		return errNoStore
	}
	if n.Input.Title == "" {
		return errors.New("task: title is required")
	}
	if n.Input.CharacterID == "" {
		n.Input.CharacterID = defaultCharacter(app.New(n.Store))
	}
	c, ok := n.Store.GetCharacter(n.Input.CharacterID)
	if !ok {
		return fmt.Errorf("%w: %q", app.ErrCharacterNotFound, n.Input.CharacterID)
	}
	if err := Validate(n.Input.Priority, n.Input.TobelStep); err != nil {
		return err
	}
	t := n.Store.AddTask(n.Input)
	pp := printers.PrettyPrint{Writer: n.Out}
	if n.JSON {
		return pp.JSON(t)
	}
	pp.Title(c.Name)
	pp.Tasks([]model.Task{t}, nil)
	return nil
}

// defaultCharacter is the character filter of the session, or the only
// active character of the selected account.
func defaultCharacter(session *app.Session) string {
	if c := session.View().Character; c != model.AllCharacters {
		return c
	}
	if active := session.ActiveCharacters(); len(active) == 1 {
		return active[0].ID
	}
	return ""
}

// List prints the selected account's tasks. Empty Status, CharacterID and
// Sort fall back to the persisted view state.
type List struct {
	Status      string
	CharacterID string
	Sort        string
	Search      string
	ShowID      bool

	Store *store.Store
	JSON  bool
	Out   io.Writer
}

func (n *List) Do(ctx context.Context) error {
	if n.Store == nil {
		return errNoStore
	}
	session := app.New(n.Store)
	opts, err := Options(session, n.Status, n.CharacterID, n.Sort)
	if err != nil {
		return err
	}
	opts.Search = n.Search
	tasks := query.ListTasks(session.Tasks(), opts)

	pp := printers.PrettyPrint{ShowID: n.ShowID, Writer: n.Out}
	if n.JSON {
		return pp.JSON(tasks)
	}
	title := "Tasks"
	if a, ok := session.SelectedAccount(); ok {
		title = a.Name
	}
	pp.TitleWithCount(title, len(tasks))
	pp.Tasks(tasks, session.CharacterNames())
	return nil
}

// Options merges explicit overrides over the session view state.
func Options(session *app.Session, status, characterID, sortBy string) (query.Options, error) {
	vs := session.View()
	opts := query.Options{Status: vs.Filter, CharacterID: vs.Character, SortBy: vs.Sort}
	if status != "" {
		f, err := model.ParseFilter(status)
		if err != nil {
			return opts, fmt.Errorf("%w: %q", app.ErrInvalidFilter, status)
		}
		opts.Status = f
	}
	if characterID != "" {
		opts.CharacterID = characterID
	}
	if sortBy != "" {
		k, err := model.ParseSortKey(sortBy)
		if err != nil {
			return opts, fmt.Errorf("%w: %q", app.ErrInvalidSort, sortBy)
		}
		opts.SortBy = k
	}
	return opts, nil
}

type Show struct {
	ID     string
	ShowID bool

	Store *store.Store
	JSON  bool
	Out   io.Writer
}

func (n *Show) Do(ctx context.Context) error {
	if n.Store == nil {
		return errNoStore
	}
	t, ok := n.Store.GetTask(n.ID)
	if !ok {
		return fmt.Errorf("%w: %s", app.ErrTaskNotFound, n.ID)
	}
	pp := printers.PrettyPrint{ShowID: n.ShowID, Writer: n.Out}
	if n.JSON {
		return pp.JSON(t)
	}
	c, _ := n.Store.GetCharacter(t.CharacterID)
	pp.Task(t, c.Name)
	return nil
}

type Update struct {
	ID    string
	Patch model.TaskPatch

	Store *store.Store
	JSON  bool
	Out   io.Writer
}

func (n *Update) Do(ctx context.Context) error {
	if n.Store == nil {
		return errNoStore
	}
	if n.Patch.CharacterID != nil {
		if _, ok := n.Store.GetCharacter(*n.Patch.CharacterID); !ok {
			return fmt.Errorf("%w: %s", app.ErrCharacterNotFound, *n.Patch.CharacterID)
		}
	}
	priority := 0
	if n.Patch.Priority != nil {
		priority = *n.Patch.Priority
	}
	if err := Validate(priority, n.Patch.TobelStep); err != nil {
		return err
	}
	t, ok := n.Store.UpdateTask(n.ID, n.Patch)
	if !ok {
		return fmt.Errorf("%w: %s", app.ErrTaskNotFound, n.ID)
	}
	pp := printers.PrettyPrint{Writer: n.Out}
	if n.JSON {
		return pp.JSON(t)
	}
	pp.Tasks([]model.Task{t}, app.New(n.Store).CharacterNames())
	return nil
}

// Move sets the status of one or more tasks.
type Move struct {
	IDs    []string
	Status string

	Store *store.Store
	JSON  bool
	Out   io.Writer
}

func (n *Move) Do(ctx context.Context) error {
	session := app.New(n.Store)
	moved := make([]model.Task, 0, len(n.IDs))
	for _, id := range n.IDs {
		t, err := session.Move(id, n.Status)
		if err != nil {
			return err
		}
		moved = append(moved, t)
	}
	pp := printers.PrettyPrint{Writer: n.Out}
	if n.JSON {
		return pp.JSON(moved)
	}
	pp.Tasks(moved, session.CharacterNames())
	return nil
}

// Check toggles one checklist item.
type Check struct {
	TaskID string
	ItemID string

	Store *store.Store
	JSON  bool
	Out   io.Writer
}

func (n *Check) Do(ctx context.Context) error {
	session := app.New(n.Store)
	t, err := session.ToggleChecklist(n.TaskID, n.ItemID)
	if err != nil {
		return err
	}
	pp := printers.PrettyPrint{ShowID: true, Writer: n.Out}
	if n.JSON {
		return pp.JSON(t)
	}
	c, _ := n.Store.GetCharacter(t.CharacterID)
	pp.Task(t, c.Name)
	return nil
}

type Delete struct {
	IDs []string

	Store *store.Store
	Out   io.Writer
}

func (n *Delete) Do(ctx context.Context) error {
	if n.Store == nil {
		return errNoStore
	}
	pp := printers.PrettyPrint{Writer: n.Out}
	for _, id := range n.IDs {
		if !n.Store.DeleteTask(id) {
			return fmt.Errorf("%w: %s", app.ErrTaskNotFound, id)
		}
		_, _ = fmt.Fprintf(pp.Out(), "Deleted task %s\n", id)
	}
	return nil
}
