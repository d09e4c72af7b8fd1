package app

import (
	"errors"
	"fmt"

	"tableflip.dev/prasia/pkg/model"
	"tableflip.dev/prasia/pkg/query"
	"tableflip.dev/prasia/pkg/store"
)

// Session scopes reads to the selected account and carries the persisted
// view state. UIs and CLIs share it.
type Session struct {
	Store *store.Store
}

var (
	ErrNoStore           = errors.New("app: no store configured")
	ErrNoAccount         = errors.New("app: no account selected")
	ErrAccountNotFound   = errors.New("app: account not found")
	ErrCharacterNotFound = errors.New("app: character not found")
	ErrTaskNotFound      = errors.New("app: task not found")
	ErrInvalidView       = errors.New("app: invalid view")
	ErrInvalidFilter     = errors.New("app: invalid filter")
	ErrInvalidSort       = errors.New("app: invalid sort")
	ErrInvalidStatus     = errors.New("app: invalid status")
)

// New returns a session over s.
func New(s *store.Store) *Session {
	return &Session{Store: s}
}

// SelectedAccount resolves the selected account.
func (s *Session) SelectedAccount() (model.Account, bool) {
	if s.Store == nil {
		return model.Account{}, false
	}
	return s.Store.GetSelectedAccount()
}

// Select makes id the selected account and resets the character filter,
// which refers to the previous account's characters.
func (s *Session) Select(id string) error {
	if s.Store == nil {
		return ErrNoStore
	}
	if _, ok := s.Store.GetAccount(id); !ok {
		return fmt.Errorf("%w: %s", ErrAccountNotFound, id)
	}
	s.Store.UpdateSettings(model.SettingsPatch{
		SelectedAccountID: model.String(id),
		SelectedCharacter: model.String(model.AllCharacters),
	})
	return nil
}

// Characters returns the characters of the selected account.
func (s *Session) Characters() []model.Character {
	account, ok := s.SelectedAccount()
	if !ok {
		return nil
	}
	return s.Store.GetCharacters(account.ID)
}

// ActiveCharacters returns the active characters of the selected account.
func (s *Session) ActiveCharacters() []model.Character {
	var out []model.Character
	for _, c := range s.Characters() {
		if c.IsActive {
			out = append(out, c)
		}
	}
	return out
}

// Tasks returns the tasks owned by the selected account's characters. Tasks
// pointing at a missing character are dropped.
func (s *Session) Tasks() []model.Task {
	chars := s.Characters()
	if len(chars) == 0 {
		return nil
	}
	owned := make(map[string]struct{}, len(chars))
	for _, c := range chars {
		owned[c.ID] = struct{}{}
	}
	var out []model.Task
	for _, t := range s.Store.GetTasks("") {
		if _, ok := owned[t.CharacterID]; ok {
			out = append(out, t)
		}
	}
	return out
}

// ViewState is the persisted presentation state.
type ViewState struct {
	View      model.View    `json:"view"`
	Filter    string        `json:"filter"`
	Sort      model.SortKey `json:"sort"`
	Character string        `json:"character"`
}

// View reads the view state, substituting defaults for missing or unknown
// stored values.
func (s *Session) View() ViewState {
	vs := ViewState{
		View:      model.ViewBoard,
		Filter:    model.FilterAll,
		Sort:      model.SortUpdated,
		Character: model.AllCharacters,
	}
	if s.Store == nil {
		return vs
	}
	settings := s.Store.GetSettings()
	if v, err := model.ParseView(settings.CurrentView); err == nil {
		vs.View = v
	}
	if f, err := model.ParseFilter(settings.CurrentFilter); err == nil {
		vs.Filter = f
	}
	if k, err := model.ParseSortKey(settings.CurrentSort); err == nil {
		vs.Sort = k
	}
	if settings.SelectedCharacter != "" {
		vs.Character = settings.SelectedCharacter
	}
	return vs
}

// SetView persists the current view.
func (s *Session) SetView(raw string) (ViewState, error) {
	v, err := model.ParseView(raw)
	if err != nil {
		return s.View(), fmt.Errorf("%w: %q", ErrInvalidView, raw)
	}
	return s.update(model.SettingsPatch{CurrentView: model.String(string(v))})
}

// SetFilter persists the status filter.
func (s *Session) SetFilter(raw string) (ViewState, error) {
	f, err := model.ParseFilter(raw)
	if err != nil {
		return s.View(), fmt.Errorf("%w: %q", ErrInvalidFilter, raw)
	}
	return s.update(model.SettingsPatch{CurrentFilter: model.String(f)})
}

// SetSort persists the sort key.
func (s *Session) SetSort(raw string) (ViewState, error) {
	k, err := model.ParseSortKey(raw)
	if err != nil {
		return s.View(), fmt.Errorf("%w: %q", ErrInvalidSort, raw)
	}
	return s.update(model.SettingsPatch{CurrentSort: model.String(string(k))})
}

// SetCharacter persists the character filter. id must be model.AllCharacters
// or a character of the selected account.
func (s *Session) SetCharacter(id string) (ViewState, error) {
	if id == "" {
		id = model.AllCharacters
	}
	if id != model.AllCharacters && !s.ownsCharacter(id) {
		return s.View(), fmt.Errorf("%w: %s", ErrCharacterNotFound, id)
	}
	return s.update(model.SettingsPatch{SelectedCharacter: model.String(id)})
}

func (s *Session) update(p model.SettingsPatch) (ViewState, error) {
	if s.Store == nil {
		return ViewState{}, ErrNoStore
	}
	s.Store.UpdateSettings(p)
	return s.View(), nil
}

func (s *Session) ownsCharacter(id string) bool {
	for _, c := range s.Characters() {
		if c.ID == id {
			return true
		}
	}
	return false
}

// Visible applies the view state and search text to the selected account's
// tasks.
func (s *Session) Visible(search string) []model.Task {
	vs := s.View()
	return query.ListTasks(s.Tasks(), query.Options{
		Status:      vs.Filter,
		CharacterID: vs.Character,
		Search:      search,
		SortBy:      vs.Sort,
	})
}

// Move sets the status of a task.
func (s *Session) Move(id string, raw string) (model.Task, error) {
	if s.Store == nil {
		return model.Task{}, ErrNoStore
	}
	status, err := model.ParseStatus(raw)
	if err != nil {
		return model.Task{}, fmt.Errorf("%w: %q", ErrInvalidStatus, raw)
	}
	t, ok := s.Store.UpdateTask(id, model.TaskPatch{Status: &status})
	if !ok {
		return model.Task{}, fmt.Errorf("%w: %s", ErrTaskNotFound, id)
	}
	return t, nil
}

// Complete marks a task done.
func (s *Session) Complete(id string) (model.Task, error) {
	return s.Move(id, string(model.StatusDone))
}

// Archive moves a task out of the board.
func (s *Session) Archive(id string) (model.Task, error) {
	return s.Move(id, string(model.StatusArchived))
}

// ToggleChecklist flips one checklist item of a task.
func (s *Session) ToggleChecklist(taskID, itemID string) (model.Task, error) {
	if s.Store == nil {
		return model.Task{}, ErrNoStore
	}
	t, ok := s.Store.GetTask(taskID)
	if !ok {
		return model.Task{}, fmt.Errorf("%w: %s", ErrTaskNotFound, taskID)
	}
	found := false
	for i := range t.Checklist {
		if t.Checklist[i].ID == itemID {
			t.Checklist[i].Done = !t.Checklist[i].Done
			found = true
		}
	}
	if !found {
		return model.Task{}, fmt.Errorf("app: checklist item %s not found", itemID)
	}
	updated, _ := s.Store.UpdateTask(taskID, model.TaskPatch{Checklist: &t.Checklist})
	return updated, nil
}

// CharacterNames maps every character id to its name.
func (s *Session) CharacterNames() map[string]string {
	names := map[string]string{}
	if s.Store == nil {
		return names
	}
	for _, c := range s.Store.GetCharacters("") {
		names[c.ID] = c.Name
	}
	return names
}
