package model

// Covenants tracks purchased covenant certificates.
type Covenants struct {
	Purchased []string `json:"purchased"`
	Total     int      `json:"total"`
}

// Account groups characters. IsPrimary is advisory and not unique.
type Account struct {
	ID        string    `json:"id"`
	Name      string    `json:"name"`
	IsPrimary bool      `json:"isPrimary"`
	Covenants Covenants `json:"covenants"`
	CreatedAt int64     `json:"createdAt"`
	UpdatedAt int64     `json:"updatedAt"`
}

// Clone returns a deep copy.
func (a Account) Clone() Account {
	a.Covenants.Purchased = cloneStrings(a.Covenants.Purchased)
	return a
}

// Character belongs to exactly one account.
type Character struct {
	ID            string            `json:"id"`
	AccountID     string            `json:"accountId"`
	Name          string            `json:"name"`
	Server        string            `json:"server"`
	ServerChannel string            `json:"serverChannel"`
	Color         string            `json:"color"`
	IsActive      bool              `json:"isActive"`
	Level         int               `json:"level"`
	Zones         map[string]string `json:"zones"`
	CreatedAt     int64             `json:"createdAt"`
	UpdatedAt     int64             `json:"updatedAt"`
}

// Clone returns a deep copy.
func (c Character) Clone() Character {
	if c.Zones != nil {
		zones := make(map[string]string, len(c.Zones))
		for k, v := range c.Zones {
			zones[k] = v
		}
		c.Zones = zones
	}
	return c
}

// ChecklistItem is one step of a task.
type ChecklistItem struct {
	ID    string `json:"id"`
	Label string `json:"label"`
	Done  bool   `json:"done"`
}

// Task belongs to exactly one character.
type Task struct {
	ID          string          `json:"id"`
	CharacterID string          `json:"characterId"`
	Title       string          `json:"title"`
	Notes       string          `json:"notes"`
	Type        TaskType        `json:"type"`
	Status      Status          `json:"status"`
	Priority    int             `json:"priority"`
	Region      string          `json:"region"`
	Location    string          `json:"location"`
	TobelStep   *int            `json:"tobelStep"`
	FavorStage  FavorStage      `json:"favorStage"`
	DueAt       *int64          `json:"dueAt"`
	NotifyAt    *int64          `json:"notifyAt"`
	Tags        []string        `json:"tags"`
	Checklist   []ChecklistItem `json:"checklist"`
	CreatedAt   int64           `json:"createdAt"`
	UpdatedAt   int64           `json:"updatedAt"`
}

// Clone returns a deep copy.
func (t Task) Clone() Task {
	t.TobelStep = cloneInt(t.TobelStep)
	t.DueAt = cloneInt64(t.DueAt)
	t.NotifyAt = cloneInt64(t.NotifyAt)
	t.Tags = cloneStrings(t.Tags)
	if t.Checklist != nil {
		items := make([]ChecklistItem, len(t.Checklist))
		copy(items, t.Checklist)
		t.Checklist = items
	}
	return t
}

// ChecklistProgress returns the number of done items and the total.
func (t Task) ChecklistProgress() (done, total int) {
	for _, item := range t.Checklist {
		if item.Done {
			done++
		}
	}
	return done, len(t.Checklist)
}

// QuietHours is a time-of-day window in "HH:MM" form. The window may wrap
// midnight when Start is after End.
type QuietHours struct {
	Start string `json:"start"`
	End   string `json:"end"`
}

// Settings is the process-wide preferences record.
type Settings struct {
	Notif                  bool            `json:"notif"`
	QuietHours             QuietHours      `json:"quietHours"`
	Theme                  string          `json:"theme"`
	SelectedAccountID      *string         `json:"selectedAccountId"`
	CurrentView            string          `json:"currentView,omitempty"`
	CurrentFilter          string          `json:"currentFilter,omitempty"`
	CurrentSort            string          `json:"currentSort,omitempty"`
	SelectedCharacter      string          `json:"selectedCharacter,omitempty"`
	CharacterNotifications map[string]bool `json:"characterNotifications,omitempty"`
}

// DefaultSettings returns a fresh settings record.
func DefaultSettings() Settings {
	return Settings{
		Notif:      true,
		QuietHours: QuietHours{Start: "01:00", End: "08:00"},
		Theme:      "auto",
	}
}

// Clone returns a deep copy.
func (s Settings) Clone() Settings {
	if s.SelectedAccountID != nil {
		id := *s.SelectedAccountID
		s.SelectedAccountID = &id
	}
	if s.CharacterNotifications != nil {
		m := make(map[string]bool, len(s.CharacterNotifications))
		for k, v := range s.CharacterNotifications {
			m[k] = v
		}
		s.CharacterNotifications = m
	}
	return s
}

// CharacterNotificationsEnabled defaults to true for unknown characters.
func (s Settings) CharacterNotificationsEnabled(characterID string) bool {
	if s.CharacterNotifications == nil {
		return true
	}
	enabled, ok := s.CharacterNotifications[characterID]
	return !ok || enabled
}

func cloneStrings(in []string) []string {
	if in == nil {
		return nil
	}
	out := make([]string, len(in))
	copy(out, in)
	return out
}

func cloneInt(in *int) *int {
	if in == nil {
		return nil
	}
	v := *in
	return &v
}

func cloneInt64(in *int64) *int64 {
	if in == nil {
		return nil
	}
	v := *in
	return &v
}

// Int returns a pointer to v.
func Int(v int) *int { return &v }

// Int64 returns a pointer to v.
func Int64(v int64) *int64 { return &v }

// String returns a pointer to v.
func String(v string) *string { return &v }

// Bool returns a pointer to v.
func Bool(v bool) *bool { return &v }
