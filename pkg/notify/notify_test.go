package notify

import (
	"context"
	"reflect"
	"testing"
	"time"

	"tableflip.dev/prasia/pkg/ident"
	"tableflip.dev/prasia/pkg/logging"
	"tableflip.dev/prasia/pkg/model"
	"tableflip.dev/prasia/pkg/store"
)

var noon = time.Date(2026, 10, 14, 12, 0, 0, 0, time.UTC)

func newChecker(t *testing.T) (*Checker, model.Character) {
	t.Helper()
	t.Cleanup(ident.Use(&ident.Sequence{Start: noon.UnixMilli(), Step: 1}))
	s, err := store.Open(store.NewMemoryBackend(), store.WithLogger(logging.Discard()))
	if err != nil {
		t.Fatalf("open store: %v", err)
	}
	a := s.AddAccount(model.AccountInput{Name: "main"})
	ch := s.AddCharacter(model.CharacterInput{AccountID: a.ID, Name: "knight"})
	c := New(s, nil)
	c.Location = time.UTC
	return c, ch
}

func at(d time.Duration) *int64 {
	return model.Int64(noon.Add(d).UnixMilli())
}

func keys(notices []Notice) []string {
	out := make([]string, 0, len(notices))
	for _, n := range notices {
		out = append(out, n.TaskID)
	}
	return out
}

func TestCheckDeliversOnce(t *testing.T) {
	c, ch := newChecker(t)
	due := c.Store.AddTask(model.TaskInput{CharacterID: ch.ID, Title: "deliver", NotifyAt: at(-time.Minute)})
	c.Store.AddTask(model.TaskInput{CharacterID: ch.ID, Title: "later", NotifyAt: at(time.Hour)})
	c.Store.AddTask(model.TaskInput{CharacterID: ch.ID, Title: "never"})
	c.Store.AddTask(model.TaskInput{CharacterID: ch.ID, Title: "finished", Status: model.StatusDone, NotifyAt: at(-time.Hour)})

	first := c.Check(noon)
	if got := keys(first); !reflect.DeepEqual(got, []string{due.ID}) {
		t.Fatalf("unexpected notices %v", got)
	}
	if first[0].Title != "[knight] deliver" || first[0].Key != Key(due.ID, *due.NotifyAt) {
		t.Fatalf("unexpected notice %+v", first[0])
	}
	if again := c.Check(noon.Add(time.Minute)); len(again) != 0 {
		t.Fatalf("reminder delivered twice: %v", keys(again))
	}

	// Snoozing gives the same task a fresh reminder.
	if _, ok := c.Snooze(due.ID, 5, noon); !ok {
		t.Fatalf("snooze failed")
	}
	if got := keys(c.Check(noon.Add(4 * time.Minute))); len(got) != 0 {
		t.Fatalf("snoozed reminder fired early: %v", got)
	}
	if got := keys(c.Check(noon.Add(5 * time.Minute))); !reflect.DeepEqual(got, []string{due.ID}) {
		t.Fatalf("snoozed reminder not delivered: %v", got)
	}
}

func TestCheckSuppression(t *testing.T) {
	tests := []struct {
		name  string
		setup func(c *Checker, ch model.Character)
		now   time.Time
		want  int
	}{
		{"enabled", func(*Checker, model.Character) {}, noon, 1},
		{"disabled", func(c *Checker, _ model.Character) { c.SetEnabled(false) }, noon, 0},
		{"quiet hours", func(*Checker, model.Character) {}, time.Date(2026, 10, 15, 3, 0, 0, 0, time.UTC), 0},
		{"quiet hours wrap midnight", func(c *Checker, _ model.Character) {
			c.Store.UpdateSettings(model.SettingsPatch{QuietHours: &model.QuietHours{Start: "22:00", End: "06:00"}})
		}, time.Date(2026, 10, 14, 23, 0, 0, 0, time.UTC), 0},
		{"character off", func(c *Checker, ch model.Character) { c.SetCharacterEnabled(ch.ID, false) }, noon, 0},
		{"other character off", func(c *Checker, _ model.Character) { c.SetCharacterEnabled("other", false) }, noon, 1},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c, ch := newChecker(t)
			c.Store.AddTask(model.TaskInput{CharacterID: ch.ID, Title: "deliver", NotifyAt: at(-time.Hour)})
			tt.setup(c, ch)
			if got := len(c.Check(tt.now)); got != tt.want {
				t.Fatalf("got %d notices, want %d", got, tt.want)
			}
		})
	}
}

func TestQuietHoursKeepReminderPending(t *testing.T) {
	c, ch := newChecker(t)
	c.Store.AddTask(model.TaskInput{CharacterID: ch.ID, Title: "deliver", NotifyAt: at(-12 * time.Hour)})
	if got := c.Check(time.Date(2026, 10, 14, 2, 0, 0, 0, time.UTC)); len(got) != 0 {
		t.Fatalf("expected silence during quiet hours")
	}
	if got := c.Check(time.Date(2026, 10, 14, 8, 0, 0, 0, time.UTC)); len(got) != 1 {
		t.Fatalf("expected held reminder after quiet hours, got %d", len(got))
	}
}

func TestNoticeBody(t *testing.T) {
	c, ch := newChecker(t)
	c.Store.AddTask(model.TaskInput{
		CharacterID: ch.ID,
		Title:       "hunt",
		Type:        model.TypeHunt,
		Region:      "크론",
		DueAt:       model.Int64(time.Date(2026, 10, 15, 21, 30, 0, 0, time.UTC).UnixMilli()),
		NotifyAt:    at(0),
		Checklist:   []model.ChecklistItem{{Label: "a", Done: true}, {Label: "b"}},
	})
	c.Store.AddTask(model.TaskInput{CharacterID: "gone", Title: "orphan", NotifyAt: at(0)})

	notices := c.Check(noon)
	if len(notices) != 2 {
		t.Fatalf("expected 2 notices, got %d", len(notices))
	}
	want := "유형: 토벌\n지역: 크론\n마감: 2026-10-15 21:30\n진행률: 1/2"
	if notices[0].Body != want {
		t.Fatalf("body = %q, want %q", notices[0].Body, want)
	}
	// Tasks default to the other type, so the body is never empty here.
	if notices[1].CharacterName != UnknownCharacter || notices[1].Title != "[알 수 없음] orphan" {
		t.Fatalf("unexpected orphan notice %+v", notices[1])
	}
	if got := c.body(model.Task{}); got != defaultBody {
		t.Fatalf("empty body = %q", got)
	}
}

func TestCompleteAndSnoozeMissing(t *testing.T) {
	c, ch := newChecker(t)
	task := c.Store.AddTask(model.TaskInput{CharacterID: ch.ID, Title: "deliver", NotifyAt: at(0)})
	if done, ok := c.Complete(task.ID); !ok || done.Status != model.StatusDone {
		t.Fatalf("complete: %+v %v", done, ok)
	}
	if len(c.Check(noon)) != 0 {
		t.Fatalf("completed task must not notify")
	}
	if _, ok := c.Snooze("missing", 5, noon); ok {
		t.Fatalf("snooze of missing task succeeded")
	}
	if _, ok := c.Snooze(task.ID, 0, noon); ok {
		t.Fatalf("snooze without minutes succeeded")
	}
}

func TestHistoryStatsPrune(t *testing.T) {
	c, ch := newChecker(t)
	old := c.Store.AddTask(model.TaskInput{CharacterID: ch.ID, Title: "old", NotifyAt: at(-10 * 24 * time.Hour)})
	c.Check(noon.Add(-9 * 24 * time.Hour))
	c.Store.AddTask(model.TaskInput{CharacterID: ch.ID, Title: "yesterday", NotifyAt: at(-30 * time.Hour)})
	c.Check(noon.Add(-24 * time.Hour))
	c.Store.AddTask(model.TaskInput{CharacterID: ch.ID, Title: "today", NotifyAt: at(0)})
	c.Check(noon)

	if got := c.Stats(noon); got != (Stats{Total: 3, Today: 1, ThisWeek: 2, Enabled: true}) {
		t.Fatalf("unexpected stats %+v", got)
	}
	if h := c.History(); len(h) != 3 || h[0].TaskID != old.ID {
		t.Fatalf("unexpected history %+v", h)
	}
	if n := c.Prune(noon); n != 1 {
		t.Fatalf("pruned %d, want 1", n)
	}
	c.ClearHistory()
	if len(c.History()) != 0 {
		t.Fatalf("history not cleared")
	}
}

func TestWatchStopsOnCancel(t *testing.T) {
	c, ch := newChecker(t)
	c.Store.AddTask(model.TaskInput{CharacterID: ch.ID, Title: "deliver", NotifyAt: at(0)})

	ctx, cancel := context.WithCancel(context.Background())
	var got []Notice
	err := c.Watch(ctx, time.Hour, func() time.Time { return noon }, func(n []Notice) {
		got = append(got, n...)
		cancel()
	})
	if err != context.Canceled {
		t.Fatalf("expected context.Canceled, got %v", err)
	}
	if len(got) != 1 {
		t.Fatalf("expected the immediate check to deliver, got %d", len(got))
	}
}
