package store

import (
	"errors"
	"strings"
	"testing"

	"tableflip.dev/prasia/pkg/model"
)

const legacyCharacters = `[
	{"id":"c1","name":"knight","server":"아우리엘","serverChannel":"01","color":"#ff0000","isActive":true,"createdAt":1,"updatedAt":1},
	{"id":"c2","name":"mage","server":"아우리엘","serverChannel":"02","color":"#00ff00","isActive":false,"level":47,"zones":{"크론":"3"},"createdAt":2,"updatedAt":2}
]`

const legacyTasks = `[
	{"id":"t1","characterId":"c1","title":"deliver","type":"의뢰","status":"todo","priority":2,"tags":[],"checklist":[],"createdAt":1,"updatedAt":1},
	{"id":"t2","characterId":"c2","title":"hunt","type":"토벌","status":"done","priority":1,"tobelStep":15,"tags":[],"checklist":[],"createdAt":2,"updatedAt":2}
]`

func legacyBackend(t *testing.T, chars, tasks, settings string) *MemoryBackend {
	t.Helper()
	b := NewMemoryBackend()
	for key, val := range map[string]string{
		LegacyKeyCharacters: chars,
		LegacyKeyTasks:      tasks,
		LegacyKeySettings:   settings,
	} {
		if val == "" {
			continue
		}
		if err := b.Write(key, []byte(val)); err != nil {
			t.Fatalf("seed %s: %v", key, err)
		}
	}
	return b
}

func TestMigrateFreshStore(t *testing.T) {
	b := NewMemoryBackend()
	s := openStore(t, b)

	report := s.Migration()
	if report.From != 0 || report.To != model.SchemaVersion {
		t.Fatalf("unexpected report %+v", report)
	}
	if got := Load(s, KeyMeta, meta{}).SchemaVersion; got != model.SchemaVersion {
		t.Fatalf("expected schema version %d, got %d", model.SchemaVersion, got)
	}
	if len(s.GetAccounts()) != 0 {
		t.Fatalf("fresh store should have no accounts")
	}
}

func TestMigrateLegacyData(t *testing.T) {
	useSequence(t)
	b := legacyBackend(t, legacyCharacters, legacyTasks, `{"notif":false,"theme":"dark"}`)
	s := openStore(t, b)

	report := s.Migration()
	if report.Characters != 2 || report.Tasks != 2 || !report.Settings || len(report.Skipped) != 0 {
		t.Fatalf("unexpected report %+v", report)
	}

	accounts := s.GetAccounts()
	if len(accounts) != 1 {
		t.Fatalf("expected one synthesized account, got %d", len(accounts))
	}
	a := accounts[0]
	if a.Name != DefaultAccountName || !a.IsPrimary || a.Covenants.Total != 16 || len(a.Covenants.Purchased) != 0 {
		t.Fatalf("unexpected default account %+v", a)
	}
	if report.AccountID != a.ID {
		t.Fatalf("report account %s does not match %s", report.AccountID, a.ID)
	}

	chars := s.GetCharacters("")
	if len(chars) != 2 {
		t.Fatalf("expected 2 characters, got %d", len(chars))
	}
	for _, c := range chars {
		if c.AccountID != a.ID {
			t.Fatalf("character %s not owned by default account", c.ID)
		}
	}
	if chars[0].Level != 1 || len(chars[0].Zones) != 5 {
		t.Fatalf("expected level and zone defaults for c1, got %+v", chars[0])
	}
	if chars[1].Level != 47 || chars[1].Zones["크론"] != "3" || len(chars[1].Zones) != 1 {
		t.Fatalf("expected stored level and zones for c2, got %+v", chars[1])
	}

	tasks := s.GetTasks("")
	if len(tasks) != 2 || tasks[1].TobelStep == nil || *tasks[1].TobelStep != 15 {
		t.Fatalf("unexpected migrated tasks %+v", tasks)
	}

	settings := s.GetSettings()
	if settings.Notif || settings.Theme != "dark" || settings.QuietHours.Start != "01:00" {
		t.Fatalf("expected legacy settings merged over defaults, got %+v", settings)
	}
	if settings.SelectedAccountID == nil || *settings.SelectedAccountID != a.ID {
		t.Fatalf("expected default account selected, got %v", settings.SelectedAccountID)
	}

	for _, key := range []string{LegacyKeyCharacters, LegacyKeyTasks, LegacyKeySettings} {
		if b.Has(key) {
			t.Fatalf("legacy key %s not removed", key)
		}
	}
}

func TestMigrateIsIdempotent(t *testing.T) {
	useSequence(t)
	b := legacyBackend(t, legacyCharacters, legacyTasks, "")
	first := openStore(t, b)
	accounts := first.GetAccounts()

	// A second open against the same data must not synthesize another account,
	// even if legacy keys reappear.
	_ = b.Write(LegacyKeyCharacters, []byte(legacyCharacters))
	second := openStore(t, b)

	if second.Migration().Ran() {
		t.Fatalf("migration ran twice: %+v", second.Migration())
	}
	if got := second.GetAccounts(); len(got) != len(accounts) {
		t.Fatalf("expected %d accounts, got %d", len(accounts), len(got))
	}
	if got := Load(second, KeyMeta, meta{}).SchemaVersion; got != model.SchemaVersion {
		t.Fatalf("schema version changed to %d", got)
	}
}

func TestMigrateMalformedCharactersStillMovesTasks(t *testing.T) {
	useSequence(t)
	b := legacyBackend(t, `{"not":"an array"}`, legacyTasks, "")
	s := openStore(t, b)

	report := s.Migration()
	if len(report.Skipped) != 1 || report.Skipped[0] != LegacyKeyCharacters {
		t.Fatalf("expected characters skipped, got %+v", report.Skipped)
	}
	if len(s.GetAccounts()) != 0 || len(s.GetCharacters("")) != 0 {
		t.Fatalf("no account or characters should be created")
	}
	if got := len(s.GetTasks("")); got != 2 {
		t.Fatalf("expected tasks migrated, got %d", got)
	}
	if !b.Has(LegacyKeyCharacters) {
		t.Fatalf("malformed legacy key should be left in place")
	}
	if b.Has(LegacyKeyTasks) {
		t.Fatalf("migrated legacy tasks should be removed")
	}
}

func TestMigrateSettingsWithoutCharacters(t *testing.T) {
	b := legacyBackend(t, "", "", `{"theme":"light"}`)
	s := openStore(t, b)

	if !s.Migration().Settings {
		t.Fatalf("expected settings migrated")
	}
	settings := s.GetSettings()
	if settings.Theme != "light" || settings.SelectedAccountID != nil {
		t.Fatalf("unexpected settings %+v", settings)
	}
}

// failingBackend rejects writes to current keys while broken is set.
type failingBackend struct {
	*MemoryBackend
	broken bool
}

var errDiskFull = errors.New("disk full")

func (f *failingBackend) Write(key string, val []byte) error {
	if f.broken && strings.HasPrefix(key, "prasia.") {
		return errDiskFull
	}
	return f.MemoryBackend.Write(key, val)
}

func (f *failingBackend) WriteBatch(pairs []KV) error {
	if f.broken {
		return errDiskFull
	}
	return f.MemoryBackend.WriteBatch(pairs)
}

func TestMigrateWriteFailureKeepsLegacyData(t *testing.T) {
	useSequence(t)
	b := &failingBackend{
		MemoryBackend: legacyBackend(t, legacyCharacters, legacyTasks, `{"theme":"dark"}`),
		broken:        true,
	}

	report := openStore(t, b).Migration()
	if !report.Incomplete || report.Ran() {
		t.Fatalf("expected an incomplete migration, got %+v", report)
	}
	if report.Characters != 0 || report.Tasks != 0 || len(report.Skipped) != 3 {
		t.Fatalf("unexpected report %+v", report)
	}
	for _, key := range []string{LegacyKeyCharacters, LegacyKeyTasks, LegacyKeySettings} {
		if !b.Has(key) {
			t.Fatalf("legacy key %s erased although its data was never written", key)
		}
	}
	if b.Has(KeyMeta) {
		t.Fatalf("schema version stored after a failed migration")
	}

	// Once writes work again the next open finishes the move.
	b.broken = false
	s := openStore(t, b)
	if got := s.Migration(); !got.Ran() || got.Characters != 2 || got.Tasks != 2 || got.Incomplete {
		t.Fatalf("retry did not migrate: %+v", got)
	}
	if got := len(s.GetAccounts()); got != 1 {
		t.Fatalf("expected one account after retry, got %d", got)
	}
	if s.SchemaVersion() != model.SchemaVersion {
		t.Fatalf("schema version not stored after retry")
	}
	for _, key := range []string{LegacyKeyCharacters, LegacyKeyTasks, LegacyKeySettings} {
		if b.Has(key) {
			t.Fatalf("legacy key %s not removed after retry", key)
		}
	}
}

func TestMigrateTaskWriteFailureKeepsOnlyTasks(t *testing.T) {
	useSequence(t)
	b := &failingTaskBackend{MemoryBackend: legacyBackend(t, legacyCharacters, legacyTasks, "")}

	report := openStore(t, b).Migration()
	if !report.Incomplete || report.Characters != 2 || len(report.Skipped) != 1 || report.Skipped[0] != LegacyKeyTasks {
		t.Fatalf("unexpected report %+v", report)
	}
	if b.Has(LegacyKeyCharacters) {
		t.Fatalf("migrated legacy characters should be removed")
	}
	if !b.Has(LegacyKeyTasks) {
		t.Fatalf("legacy tasks erased although they were never written")
	}
}

// failingTaskBackend rejects writes to the task collection only.
type failingTaskBackend struct {
	*MemoryBackend
}

func (f *failingTaskBackend) Write(key string, val []byte) error {
	if key == KeyTasks {
		return errDiskFull
	}
	return f.MemoryBackend.Write(key, val)
}
