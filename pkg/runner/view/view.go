// Package view runs the board, calendar, dashboard and view commands.
package view

import (
	"context"
	"fmt"
	"io"
	"time"

	"tableflip.dev/prasia/pkg/app"
	"tableflip.dev/prasia/pkg/model"
	"tableflip.dev/prasia/pkg/printers"
	"tableflip.dev/prasia/pkg/query"
	"tableflip.dev/prasia/pkg/store"
)

// Board prints the kanban columns of the visible tasks.
type Board struct {
	Search string
	ShowID bool

	Store *store.Store
	JSON  bool
	Out   io.Writer
}

func (n *Board) Do(ctx context.Context) error {
	session := app.New(n.Store)
	if _, ok := session.SelectedAccount(); !ok {
		return app.ErrNoAccount
	}
	board := query.GroupBoard(session.Visible(n.Search))
	pp := printers.PrettyPrint{ShowID: n.ShowID, Writer: n.Out}
	if n.JSON {
		return pp.JSON(map[string][]model.Task{
			string(model.StatusTodo):  nonNil(board.Todo),
			string(model.StatusDoing): nonNil(board.Doing),
			string(model.StatusDone):  nonNil(board.Done),
		})
	}
	pp.Board(board, session.CharacterNames())
	return nil
}

func nonNil(tasks []model.Task) []model.Task {
	if tasks == nil {
		return []model.Task{}
	}
	return tasks
}

// Calendar prints the month containing On with the tasks due in it.
type Calendar struct {
	On  time.Time
	Now time.Time

	Store *store.Store
	JSON  bool
	Out   io.Writer
}

type calendarJSON struct {
	Month  string       `json:"month"`
	Counts []int        `json:"counts"`
	Tasks  []model.Task `json:"tasks"`
}

func (n *Calendar) Do(ctx context.Context) error {
	session := app.New(n.Store)
	if _, ok := session.SelectedAccount(); !ok {
		return app.ErrNoAccount
	}
	if n.Now.IsZero() {
		n.Now = time.Now()
	}
	if n.On.IsZero() {
		n.On = n.Now
	}
	tasks := session.Visible("")
	pp := printers.PrettyPrint{Writer: n.Out}
	if n.JSON {
		var due []model.Task
		for _, t := range tasks {
			if t.DueAt == nil {
				continue
			}
			d := time.UnixMilli(*t.DueAt).In(n.On.Location())
			if d.Year() == n.On.Year() && d.Month() == n.On.Month() {
				due = append(due, t)
			}
		}
		return pp.JSON(calendarJSON{
			Month:  n.On.Format("2006-01"),
			Counts: query.MonthCounts(tasks, n.On, n.On.Location()),
			Tasks:  nonNil(due),
		})
	}
	pp.Location = n.On.Location()
	pp.Calendar(n.On, n.Now, tasks, session.CharacterNames())
	return nil
}

// Dashboard prints a card per active character and today's completions.
type Dashboard struct {
	Now time.Time

	Store *store.Store
	JSON  bool
	Out   io.Writer
}

func (n *Dashboard) Do(ctx context.Context) error {
	session := app.New(n.Store)
	if _, ok := session.SelectedAccount(); !ok {
		return app.ErrNoAccount
	}
	if n.Now.IsZero() {
		n.Now = time.Now()
	}
	chars := session.Characters()
	tasks := session.Tasks()
	cards := query.Dashboard(chars, tasks)
	today := query.CompletedToday(tasks, chars, n.Now, n.Now.Location())
	pp := printers.PrettyPrint{Writer: n.Out}
	if n.JSON {
		return pp.JSON(struct {
			Characters []query.Summary `json:"characters"`
			Today      query.Today     `json:"today"`
		}{cards, today})
	}
	pp.Dashboard(cards, today)
	return nil
}

// View updates the persisted view state. Empty fields are left as they are.
type View struct {
	View      string
	Filter    string
	Sort      string
	Character string

	Store *store.Store
	JSON  bool
	Out   io.Writer
}

func (n *View) Do(ctx context.Context) error {
	session := app.New(n.Store)
	if n.Store == nil {
		return app.ErrNoStore
	}
	steps := []struct {
		raw string
		set func(string) (app.ViewState, error)
	}{
		{n.View, session.SetView},
		{n.Filter, session.SetFilter},
		{n.Sort, session.SetSort},
		{n.Character, session.SetCharacter},
	}
	for _, step := range steps {
		if step.raw == "" {
			continue
		}
		if _, err := step.set(step.raw); err != nil {
			return err
		}
	}
	vs := session.View()
	pp := printers.PrettyPrint{Writer: n.Out}
	if n.JSON {
		return pp.JSON(vs)
	}
	character := vs.Character
	if name, ok := session.CharacterNames()[character]; ok {
		character = name
	}
	_, _ = fmt.Fprintf(pp.Out(), "view %s · filter %s · sort %s · character %s\n", vs.View, vs.Filter, vs.Sort, character)
	return nil
}
