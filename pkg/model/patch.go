package model

// AccountInput carries the caller supplied fields of a new account.
type AccountInput struct {
	Name      string
	IsPrimary bool
	Purchased []string
}

// CharacterInput carries the caller supplied fields of a new character.
// A nil IsActive means active.
type CharacterInput struct {
	AccountID     string
	Name          string
	Server        string
	ServerChannel string
	Color         string
	IsActive      *bool
	Level         int
}

// TaskInput carries the caller supplied fields of a new task. Zero values
// take the documented defaults.
type TaskInput struct {
	CharacterID string
	Title       string
	Notes       string
	Type        TaskType
	Status      Status
	Priority    int
	Region      string
	Location    string
	TobelStep   *int
	FavorStage  FavorStage
	DueAt       *int64
	NotifyAt    *int64
	Tags        []string
	Checklist   []ChecklistItem
}

// AccountPatch lists the fields to overwrite; nil fields are left unchanged.
type AccountPatch struct {
	Name      *string
	IsPrimary *bool
	Purchased *[]string
}

// Apply merges p over a field by field.
func (p AccountPatch) Apply(a *Account) {
	if p.Name != nil {
		a.Name = *p.Name
	}
	if p.IsPrimary != nil {
		a.IsPrimary = *p.IsPrimary
	}
	if p.Purchased != nil {
		a.Covenants.Purchased = cloneStrings(*p.Purchased)
	}
}

// CharacterPatch lists the fields to overwrite; nil fields are left unchanged.
// Zones replaces the whole map when non-nil.
type CharacterPatch struct {
	AccountID     *string
	Name          *string
	Server        *string
	ServerChannel *string
	Color         *string
	IsActive      *bool
	Level         *int
	Zones         map[string]string
}

// Apply merges p over c field by field.
func (p CharacterPatch) Apply(c *Character) {
	if p.AccountID != nil {
		c.AccountID = *p.AccountID
	}
	if p.Name != nil {
		c.Name = *p.Name
	}
	if p.Server != nil {
		c.Server = *p.Server
	}
	if p.ServerChannel != nil {
		c.ServerChannel = *p.ServerChannel
	}
	if p.Color != nil {
		c.Color = *p.Color
	}
	if p.IsActive != nil {
		c.IsActive = *p.IsActive
	}
	if p.Level != nil {
		c.Level = *p.Level
	}
	if p.Zones != nil {
		c.Zones = Character{Zones: p.Zones}.Clone().Zones
	}
}

// TaskPatch lists the fields to overwrite; nil fields are left unchanged.
// The Clear flags set the matching nullable field to null and win over a
// value supplied for the same field.
type TaskPatch struct {
	CharacterID *string
	Title       *string
	Notes       *string
	Type        *TaskType
	Status      *Status
	Priority    *int
	Region      *string
	Location    *string
	TobelStep   *int
	FavorStage  *FavorStage
	DueAt       *int64
	NotifyAt    *int64
	Tags        *[]string
	Checklist   *[]ChecklistItem

	ClearTobelStep bool
	ClearDueAt     bool
	ClearNotifyAt  bool
}

// Apply merges p over t field by field.
func (p TaskPatch) Apply(t *Task) {
	if p.CharacterID != nil {
		t.CharacterID = *p.CharacterID
	}
	if p.Title != nil {
		t.Title = *p.Title
	}
	if p.Notes != nil {
		t.Notes = *p.Notes
	}
	if p.Type != nil {
		t.Type = *p.Type
	}
	if p.Status != nil {
		t.Status = *p.Status
	}
	if p.Priority != nil {
		t.Priority = *p.Priority
	}
	if p.Region != nil {
		t.Region = *p.Region
	}
	if p.Location != nil {
		t.Location = *p.Location
	}
	switch {
	case p.ClearTobelStep:
		t.TobelStep = nil
	case p.TobelStep != nil:
		t.TobelStep = cloneInt(p.TobelStep)
	}
	if p.FavorStage != nil {
		t.FavorStage = *p.FavorStage
	}
	switch {
	case p.ClearDueAt:
		t.DueAt = nil
	case p.DueAt != nil:
		t.DueAt = cloneInt64(p.DueAt)
	}
	switch {
	case p.ClearNotifyAt:
		t.NotifyAt = nil
	case p.NotifyAt != nil:
		t.NotifyAt = cloneInt64(p.NotifyAt)
	}
	if p.Tags != nil {
		t.Tags = cloneStrings(*p.Tags)
	}
	if p.Checklist != nil {
		t.Checklist = Task{Checklist: *p.Checklist}.Clone().Checklist
	}
}

// SettingsPatch lists the settings to overwrite; nil fields are left unchanged.
type SettingsPatch struct {
	Notif                  *bool
	QuietHours             *QuietHours
	Theme                  *string
	SelectedAccountID      *string
	ClearSelectedAccount   bool
	CurrentView            *string
	CurrentFilter          *string
	CurrentSort            *string
	SelectedCharacter      *string
	CharacterNotifications map[string]bool
}

// Apply merges p over s. CharacterNotifications entries are merged per key.
func (p SettingsPatch) Apply(s *Settings) {
	if p.Notif != nil {
		s.Notif = *p.Notif
	}
	if p.QuietHours != nil {
		s.QuietHours = *p.QuietHours
	}
	if p.Theme != nil {
		s.Theme = *p.Theme
	}
	switch {
	case p.ClearSelectedAccount:
		s.SelectedAccountID = nil
	case p.SelectedAccountID != nil:
		s.SelectedAccountID = String(*p.SelectedAccountID)
	}
	if p.CurrentView != nil {
		s.CurrentView = *p.CurrentView
	}
	if p.CurrentFilter != nil {
		s.CurrentFilter = *p.CurrentFilter
	}
	if p.CurrentSort != nil {
		s.CurrentSort = *p.CurrentSort
	}
	if p.SelectedCharacter != nil {
		s.SelectedCharacter = *p.SelectedCharacter
	}
	if len(p.CharacterNotifications) > 0 {
		if s.CharacterNotifications == nil {
			s.CharacterNotifications = make(map[string]bool, len(p.CharacterNotifications))
		}
		for id, enabled := range p.CharacterNotifications {
			s.CharacterNotifications[id] = enabled
		}
	}
}
