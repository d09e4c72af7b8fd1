package query

import (
	"time"

	"tableflip.dev/prasia/pkg/model"
)

// Board is the kanban grouping. Archived tasks are not shown.
type Board struct {
	Todo  []model.Task
	Doing []model.Task
	Done  []model.Task
}

// Columns returns the board columns in display order.
func (b Board) Columns() []Column {
	return []Column{
		{Status: model.StatusTodo, Tasks: b.Todo},
		{Status: model.StatusDoing, Tasks: b.Doing},
		{Status: model.StatusDone, Tasks: b.Done},
	}
}

// Column is one board column.
type Column struct {
	Status model.Status
	Tasks  []model.Task
}

// GroupBoard splits tasks by status, keeping their order.
func GroupBoard(tasks []model.Task) Board {
	var b Board
	for _, t := range tasks {
		switch t.Status {
		case model.StatusTodo:
			b.Todo = append(b.Todo, t)
		case model.StatusDoing:
			b.Doing = append(b.Doing, t)
		case model.StatusDone:
			b.Done = append(b.Done, t)
		}
	}
	return b
}

func sameDay(a, b time.Time) bool {
	ay, am, ad := a.Date()
	by, bm, bd := b.Date()
	return ay == by && am == bm && ad == bd
}

// OnDay returns the tasks due on the calendar day of day in loc.
func OnDay(tasks []model.Task, day time.Time, loc *time.Location) []model.Task {
	if loc == nil {
		loc = time.Local
	}
	day = day.In(loc)
	var out []model.Task
	for _, t := range tasks {
		if t.DueAt == nil {
			continue
		}
		if sameDay(time.UnixMilli(*t.DueAt).In(loc), day) {
			out = append(out, t)
		}
	}
	return out
}

// Undated returns the tasks without a due date.
func Undated(tasks []model.Task) []model.Task {
	var out []model.Task
	for _, t := range tasks {
		if t.DueAt == nil {
			out = append(out, t)
		}
	}
	return out
}

// MonthCounts counts due tasks per day of the month containing month. Index 0
// is the first of the month.
func MonthCounts(tasks []model.Task, month time.Time, loc *time.Location) []int {
	if loc == nil {
		loc = time.Local
	}
	month = month.In(loc)
	first := time.Date(month.Year(), month.Month(), 1, 0, 0, 0, 0, loc)
	days := first.AddDate(0, 1, -1).Day()
	counts := make([]int, days)
	for _, t := range tasks {
		if t.DueAt == nil {
			continue
		}
		due := time.UnixMilli(*t.DueAt).In(loc)
		if due.Year() == first.Year() && due.Month() == first.Month() {
			counts[due.Day()-1]++
		}
	}
	return counts
}

// CharacterCount is a per-character tally.
type CharacterCount struct {
	Name  string `json:"name"`
	Count int    `json:"count"`
}

// Today summarizes the tasks completed today.
type Today struct {
	Total int `json:"total"`
	// ByCharacter is in order of first completion seen.
	ByCharacter []CharacterCount `json:"byCharacter"`
}

// CompletedToday counts done tasks whose last update falls on the day of now.
// Tasks of unknown characters count toward Total only.
func CompletedToday(tasks []model.Task, characters []model.Character, now time.Time, loc *time.Location) Today {
	if loc == nil {
		loc = time.Local
	}
	now = now.In(loc)
	names := make(map[string]string, len(characters))
	for _, c := range characters {
		names[c.ID] = c.Name
	}
	var out Today
	index := make(map[string]int)
	for _, t := range tasks {
		if t.Status != model.StatusDone || t.UpdatedAt == 0 {
			continue
		}
		if !sameDay(time.UnixMilli(t.UpdatedAt).In(loc), now) {
			continue
		}
		out.Total++
		name, ok := names[t.CharacterID]
		if !ok {
			continue
		}
		if i, seen := index[name]; seen {
			out.ByCharacter[i].Count++
			continue
		}
		index[name] = len(out.ByCharacter)
		out.ByCharacter = append(out.ByCharacter, CharacterCount{Name: name, Count: 1})
	}
	return out
}

// Summary is a character's dashboard card.
type Summary struct {
	Character model.Character `json:"character"`
	Total     int             `json:"total"`
	Todo      int             `json:"todo"`
	Doing     int             `json:"doing"`
	Done      int             `json:"done"`
	// Progress is the done share in whole percent.
	Progress int `json:"progress"`
	// Next holds up to three todo tasks in stored order.
	Next []model.Task `json:"next"`
}

// Dashboard summarizes the tasks of each active character.
func Dashboard(characters []model.Character, tasks []model.Task) []Summary {
	out := make([]Summary, 0, len(characters))
	for _, c := range characters {
		if !c.IsActive {
			continue
		}
		s := Summary{Character: c}
		for _, t := range tasks {
			if t.CharacterID != c.ID {
				continue
			}
			s.Total++
			switch t.Status {
			case model.StatusTodo:
				s.Todo++
				if len(s.Next) < 3 {
					s.Next = append(s.Next, t)
				}
			case model.StatusDoing:
				s.Doing++
			case model.StatusDone:
				s.Done++
			}
		}
		if s.Total > 0 {
			s.Progress = (s.Done*100 + s.Total/2) / s.Total
		}
		out = append(out, s)
	}
	return out
}
