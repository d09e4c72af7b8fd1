// Package notify finds tasks whose reminder time has passed and tracks
// which reminders have already been delivered.
package notify

import (
	"context"
	"fmt"
	"sort"
	"strings"
	"time"

	"github.com/charmbracelet/log"

	"tableflip.dev/prasia/pkg/logging"
	"tableflip.dev/prasia/pkg/model"
	"tableflip.dev/prasia/pkg/store"
	"tableflip.dev/prasia/pkg/timeutil"
)

// SnoozeMinutes are the suggested snooze intervals.
var SnoozeMinutes = []int{5, 15, 60}

// UnknownCharacter names the owner of a task whose character is gone.
const UnknownCharacter = "알 수 없음"

const (
	defaultBody = "할일을 확인해주세요."
	historyTTL  = 7 * 24 * time.Hour
)

// Notice is one reminder ready to be shown.
type Notice struct {
	Key           string    `json:"key"`
	TaskID        string    `json:"taskId"`
	CharacterID   string    `json:"characterId"`
	CharacterName string    `json:"characterName"`
	Title         string    `json:"title"`
	Body          string    `json:"body"`
	NotifyAt      time.Time `json:"notifyAt"`
}

// Sent records a delivered reminder.
type Sent struct {
	TaskID        string    `json:"taskId"`
	CharacterName string    `json:"characterName"`
	SentAt        time.Time `json:"sentAt"`
}

// Stats summarizes the delivery history.
type Stats struct {
	Total    int  `json:"total"`
	Today    int  `json:"today"`
	ThisWeek int  `json:"thisWeek"`
	Enabled  bool `json:"enabled"`
}

// Checker delivers each reminder once per task and reminder time. The
// history is kept in memory for the life of the checker.
type Checker struct {
	Store *store.Store
	Log   *log.Logger
	// Location renders due dates in notice bodies. Nil means time.Local.
	Location *time.Location

	sent map[string]Sent
}

// New returns a checker over s.
func New(s *store.Store, logger *log.Logger) *Checker {
	if logger == nil {
		logger = logging.Discard()
	}
	return &Checker{Store: s, Log: logger, sent: map[string]Sent{}}
}

// Key identifies a reminder; snoozing a task gives it a new key.
func Key(taskID string, notifyAt int64) string {
	return fmt.Sprintf("%s_%d", taskID, notifyAt)
}

// Check returns the reminders due at now that have not been delivered yet
// and records them as delivered. Nothing is returned while notifications are
// off or during quiet hours; reminders held back by quiet hours stay pending.
func (c *Checker) Check(now time.Time) []Notice {
	if c.Store == nil {
		return nil
	}
	settings := c.Store.GetSettings()
	if !settings.Notif {
		return nil
	}
	quiet, err := timeutil.InWindow(settings.QuietHours.Start, settings.QuietHours.End, now.In(c.location()))
	if err != nil {
		c.Log.Warn("ignoring quiet hours", "start", settings.QuietHours.Start, "end", settings.QuietHours.End, "err", err)
	} else if quiet {
		c.Log.Debug("inside quiet hours", "now", now.Format("15:04"))
		return nil
	}

	names := map[string]string{}
	for _, ch := range c.Store.GetCharacters("") {
		names[ch.ID] = ch.Name
	}

	cutoff := now.UnixMilli()
	var notices []Notice
	for _, t := range c.Store.GetTasks("") {
		if t.NotifyAt == nil || *t.NotifyAt > cutoff || t.Status.Completed() {
			continue
		}
		if !settings.CharacterNotificationsEnabled(t.CharacterID) {
			continue
		}
		key := Key(t.ID, *t.NotifyAt)
		if _, done := c.sent[key]; done {
			continue
		}
		name, ok := names[t.CharacterID]
		if !ok {
			name = UnknownCharacter
		}
		notices = append(notices, Notice{
			Key:           key,
			TaskID:        t.ID,
			CharacterID:   t.CharacterID,
			CharacterName: name,
			Title:         fmt.Sprintf("[%s] %s", name, t.Title),
			Body:          c.body(t),
			NotifyAt:      time.UnixMilli(*t.NotifyAt),
		})
		c.sent[key] = Sent{TaskID: t.ID, CharacterName: name, SentAt: now}
	}
	return notices
}

func (c *Checker) body(t model.Task) string {
	var lines []string
	if t.Type != "" {
		lines = append(lines, "유형: "+string(t.Type))
	}
	if t.Region != "" {
		lines = append(lines, "지역: "+t.Region)
	}
	if t.DueAt != nil {
		lines = append(lines, "마감: "+time.UnixMilli(*t.DueAt).In(c.location()).Format("2006-01-02 15:04"))
	}
	if done, total := t.ChecklistProgress(); total > 0 {
		lines = append(lines, fmt.Sprintf("진행률: %d/%d", done, total))
	}
	if len(lines) == 0 {
		return defaultBody
	}
	return strings.Join(lines, "\n")
}

func (c *Checker) location() *time.Location {
	if c.Location != nil {
		return c.Location
	}
	return time.Local
}

// Snooze moves the reminder of a task to minutes after now.
func (c *Checker) Snooze(taskID string, minutes int, now time.Time) (model.Task, bool) {
	if c.Store == nil || minutes <= 0 {
		return model.Task{}, false
	}
	at := now.Add(time.Duration(minutes) * time.Minute).UnixMilli()
	return c.Store.UpdateTask(taskID, model.TaskPatch{NotifyAt: &at})
}

// Complete marks the task of a reminder done.
func (c *Checker) Complete(taskID string) (model.Task, bool) {
	if c.Store == nil {
		return model.Task{}, false
	}
	done := model.StatusDone
	return c.Store.UpdateTask(taskID, model.TaskPatch{Status: &done})
}

// SetEnabled turns all notifications on or off.
func (c *Checker) SetEnabled(enabled bool) {
	if c.Store != nil {
		c.Store.UpdateSettings(model.SettingsPatch{Notif: model.Bool(enabled)})
	}
}

// SetCharacterEnabled turns notifications of one character on or off.
func (c *Checker) SetCharacterEnabled(characterID string, enabled bool) {
	if c.Store != nil {
		c.Store.UpdateSettings(model.SettingsPatch{
			CharacterNotifications: map[string]bool{characterID: enabled},
		})
	}
}

// History returns delivered reminders, oldest first.
func (c *Checker) History() []Sent {
	out := make([]Sent, 0, len(c.sent))
	for _, s := range c.sent {
		out = append(out, s)
	}
	sort.SliceStable(out, func(i, j int) bool {
		if out[i].SentAt.Equal(out[j].SentAt) {
			return out[i].TaskID < out[j].TaskID
		}
		return out[i].SentAt.Before(out[j].SentAt)
	})
	return out
}

// ClearHistory forgets every delivered reminder.
func (c *Checker) ClearHistory() {
	c.sent = map[string]Sent{}
}

// Prune forgets reminders delivered more than a week before now and
// returns how many were dropped.
func (c *Checker) Prune(now time.Time) int {
	cutoff := now.Add(-historyTTL)
	n := 0
	for key, s := range c.sent {
		if s.SentAt.Before(cutoff) {
			delete(c.sent, key)
			n++
		}
	}
	return n
}

// Stats counts delivered reminders overall, since local midnight and over
// the last seven days.
func (c *Checker) Stats(now time.Time) Stats {
	local := now.In(c.location())
	midnight := time.Date(local.Year(), local.Month(), local.Day(), 0, 0, 0, 0, local.Location())
	week := now.Add(-historyTTL)
	st := Stats{Total: len(c.sent)}
	if c.Store != nil {
		st.Enabled = c.Store.GetSettings().Notif
	}
	for _, s := range c.sent {
		if !s.SentAt.Before(midnight) {
			st.Today++
		}
		if !s.SentAt.Before(week) {
			st.ThisWeek++
		}
	}
	return st
}

// Watch runs Check immediately and then every interval until ctx is done,
// handing each non-empty batch to fn. The history is pruned on every tick.
func (c *Checker) Watch(ctx context.Context, interval time.Duration, now func() time.Time, fn func([]Notice)) error {
	if interval <= 0 {
		interval = time.Minute
	}
	if now == nil {
		now = time.Now
	}
	tick := func() {
		t := now()
		c.Prune(t)
		if notices := c.Check(t); len(notices) > 0 {
			fn(notices)
		}
	}
	tick()
	ticker := time.NewTicker(interval)
	defer ticker.Stop()
	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-ticker.C:
			tick()
		}
	}
}
