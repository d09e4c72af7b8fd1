package store

import (
	"tableflip.dev/prasia/pkg/ident"
	"tableflip.dev/prasia/pkg/model"
)

// GetTasks returns the tasks owned by characterID, or every task in stored
// order when characterID is empty.
func (s *Store) GetTasks(characterID string) []model.Task {
	tasks := loadRecords[model.Task](s, KeyTasks)
	if characterID == "" {
		return tasks
	}
	scoped := make([]model.Task, 0, len(tasks))
	for _, t := range tasks {
		if t.CharacterID == characterID {
			scoped = append(scoped, t)
		}
	}
	return scoped
}

// SaveTasks replaces the task collection.
func (s *Store) SaveTasks(tasks []model.Task) bool {
	return s.Save(KeyTasks, tasks)
}

// GetTask looks up one task.
func (s *Store) GetTask(id string) (model.Task, bool) {
	for _, t := range s.GetTasks("") {
		if t.ID == id {
			return t, true
		}
	}
	return model.Task{}, false
}

// NewTask builds a task from in with a fresh id, timestamps and defaults
// applied, without persisting it.
func NewTask(in model.TaskInput) model.Task {
	now := ident.Now()
	t := model.Task{
		ID:          ident.NewID(),
		CharacterID: in.CharacterID,
		Title:       in.Title,
		Notes:       in.Notes,
		Type:        in.Type,
		Status:      in.Status,
		Priority:    in.Priority,
		Region:      in.Region,
		Location:    in.Location,
		TobelStep:   in.TobelStep,
		FavorStage:  in.FavorStage,
		DueAt:       in.DueAt,
		NotifyAt:    in.NotifyAt,
		Tags:        in.Tags,
		Checklist:   in.Checklist,
		CreatedAt:   now,
		UpdatedAt:   now,
	}
	if t.Type == "" {
		t.Type = model.TypeOther
	}
	if t.Status == "" {
		t.Status = model.StatusTodo
	}
	if t.Priority == 0 {
		t.Priority = 1
	}
	if t.Tags == nil {
		t.Tags = []string{}
	}
	if t.Checklist == nil {
		t.Checklist = []model.ChecklistItem{}
	}
	t = t.Clone()
	for i := range t.Checklist {
		if t.Checklist[i].ID == "" {
			t.Checklist[i].ID = ident.NewID()
		}
	}
	return t
}

// AddTask creates and persists a task.
func (s *Store) AddTask(in model.TaskInput) model.Task {
	t := NewTask(in)
	tasks := append(s.GetTasks(""), t)
	s.SaveTasks(tasks)
	return t.Clone()
}

// AppendTasks adds already built tasks in one write.
func (s *Store) AppendTasks(batch []model.Task) bool {
	if len(batch) == 0 {
		return true
	}
	tasks := append(s.GetTasks(""), batch...)
	return s.SaveTasks(tasks)
}

// UpdateTask merges p over the task with id and refreshes updatedAt. It
// reports false, leaving the collection untouched, when no such task exists.
func (s *Store) UpdateTask(id string, p model.TaskPatch) (model.Task, bool) {
	tasks := s.GetTasks("")
	for i := range tasks {
		if tasks[i].ID != id {
			continue
		}
		p.Apply(&tasks[i])
		tasks[i].UpdatedAt = ident.Now()
		s.SaveTasks(tasks)
		return tasks[i].Clone(), true
	}
	return model.Task{}, false
}

// DeleteTask removes the task with id. It reports false when nothing was
// removed or the write failed.
func (s *Store) DeleteTask(id string) bool {
	tasks := s.GetTasks("")
	kept := make([]model.Task, 0, len(tasks))
	for _, t := range tasks {
		if t.ID != id {
			kept = append(kept, t)
		}
	}
	if len(kept) == len(tasks) {
		return false
	}
	return s.SaveTasks(kept)
}
