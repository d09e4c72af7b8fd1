package template

import (
	"bytes"
	"encoding/json"
	"errors"
	"io"
	"os"
	"path/filepath"
	"reflect"
	"strings"
	"testing"
	"time"

	"github.com/charmbracelet/log"

	"tableflip.dev/prasia/pkg/model"
	"tableflip.dev/prasia/pkg/store"
)

func newEngine(t *testing.T) (*Engine, []model.Character) {
	t.Helper()
	s, err := store.Open(store.NewMemoryBackend(), store.WithLogger(log.New(io.Discard)))
	if err != nil {
		t.Fatalf("open store: %v", err)
	}
	a := s.AddAccount(model.AccountInput{Name: "main"})
	var chars []model.Character
	for _, name := range []string{"knight", "mage", "archer"} {
		chars = append(chars, s.AddCharacter(model.CharacterInput{AccountID: a.ID, Name: name}))
	}
	r := NewEmptyRegistry()
	r.Register(Template{
		Name:        "pair",
		Description: "two tasks",
		Tasks: []Task{
			{Title: "first", Type: model.TypeHunt, TobelStep: model.Int(15), Checklist: Checklist{"a", "b"}},
			{Title: "second", Priority: 5, Tags: []string{"x"}},
		},
	})
	return &Engine{Registry: r, Store: s, Log: log.New(io.Discard)}, chars
}

func charIDs(chars []model.Character) []string {
	out := make([]string, 0, len(chars))
	for _, c := range chars {
		out = append(out, c.ID)
	}
	return out
}

func TestApplyExpandsPerCharacter(t *testing.T) {
	e, chars := newEngine(t)
	ids := charIDs(chars)

	res := e.Apply("pair", ids)
	if !res.Success || res.TemplateName != "pair" || res.CharacterCount != 3 || res.TaskCount != 6 {
		t.Fatalf("unexpected result %+v", res)
	}

	tasks := e.Store.GetTasks("")
	if len(tasks) != 6 {
		t.Fatalf("expected 6 tasks, got %d", len(tasks))
	}
	owners := map[string]bool{}
	for _, id := range ids {
		owners[id] = true
	}
	seen := map[string]bool{}
	for _, task := range tasks {
		if seen[task.ID] {
			t.Fatalf("duplicate task id %s", task.ID)
		}
		seen[task.ID] = true
		if task.Status != model.StatusTodo {
			t.Fatalf("task %s has status %s", task.ID, task.Status)
		}
		if !owners[task.CharacterID] {
			t.Fatalf("task %s owned by unexpected character %s", task.ID, task.CharacterID)
		}
	}

	first, second := tasks[0], tasks[1]
	if first.Priority != 2 || first.Type != model.TypeHunt || first.TobelStep == nil || *first.TobelStep != 15 {
		t.Fatalf("unexpected first task %+v", first)
	}
	if len(first.Checklist) != 2 || first.Checklist[0].ID == "" || first.Checklist[0].Done || first.Checklist[0].Label != "a" {
		t.Fatalf("unexpected checklist %+v", first.Checklist)
	}
	if second.Priority != 5 || second.Type != model.TypeOther || !reflect.DeepEqual(second.Tags, []string{"x"}) {
		t.Fatalf("unexpected second task %+v", second)
	}
}

func TestApplyValidationFailures(t *testing.T) {
	e, chars := newEngine(t)
	tests := []struct {
		name string
		tpl  string
		ids  []string
	}{
		{"no characters", "pair", nil},
		{"empty characters", "pair", []string{}},
		{"unknown template", "missing", charIDs(chars)},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			res := e.Apply(tt.tpl, tt.ids)
			if res.Success || res.Error == "" || res.Err() == nil {
				t.Fatalf("expected failure, got %+v", res)
			}
			if got := len(e.Store.GetTasks("")); got != 0 {
				t.Fatalf("expected no tasks, got %d", got)
			}
		})
	}
}

func TestApplySkipsUnknownCharacters(t *testing.T) {
	e, chars := newEngine(t)
	res := e.Apply("pair", []string{chars[0].ID, "ghost"})
	if !res.Success || res.CharacterCount != 1 || res.TaskCount != 2 {
		t.Fatalf("unexpected result %+v", res)
	}
	if !reflect.DeepEqual(res.Skipped, []string{"ghost"}) {
		t.Fatalf("unexpected skipped %v", res.Skipped)
	}
}

func TestPreview(t *testing.T) {
	e, chars := newEngine(t)
	p, err := e.Preview("pair", []string{chars[1].ID, "ghost"})
	if err != nil {
		t.Fatalf("preview: %v", err)
	}
	if p.CharacterCount != 1 || p.TotalTasks != 2 || p.Tasks[0].CharacterName != "mage" || p.Tasks[0].ChecklistCount != 2 {
		t.Fatalf("unexpected preview %+v", p)
	}
	if len(e.Store.GetTasks("")) != 0 {
		t.Fatalf("preview must not write")
	}
	if _, err := e.Preview("missing", []string{chars[0].ID}); !errors.Is(err, ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
}

func TestPackNamesStayInDir(t *testing.T) {
	root := t.TempDir()
	dir := filepath.Join(root, "templates")
	r := NewRegistry()
	for _, name := range []string{"../escape", "a/b", `a\b`, ".."} {
		t.Run(name, func(t *testing.T) {
			if _, err := r.Clone("레벨링", name); err != nil {
				t.Fatalf("clone: %v", err)
			}
			if _, err := r.SavePack(dir, name); !errors.Is(err, ErrInvalid) {
				t.Fatalf("expected ErrInvalid, got %v", err)
			}
			if err := RemovePack(dir, name); !errors.Is(err, ErrInvalid) {
				t.Fatalf("expected ErrInvalid on remove, got %v", err)
			}
		})
	}
	if _, err := os.Stat(filepath.Join(root, "escape.toml")); !os.IsNotExist(err) {
		t.Fatalf("pack written outside dir: %v", err)
	}
	if got, err := PackFileName(" 내 레벨링 "); err != nil || got != "내-레벨링.toml" {
		t.Fatalf("PackFileName = %q, %v", got, err)
	}
}

func TestRegistryBuiltinsAndOrder(t *testing.T) {
	r := NewRegistry()
	var names []string
	for _, tpl := range r.All() {
		names = append(names, tpl.Name)
	}
	want := []string{ProtectedName, "레벨링", "일일 루틴", "주간 루틴"}
	if !reflect.DeepEqual(names, want) {
		t.Fatalf("builtins = %v, want %v", names, want)
	}

	r.Register(Template{Name: "레벨링", Description: "replaced", Tasks: []Task{}})
	if got, _ := r.Get("레벨링"); got.Description != "replaced" {
		t.Fatalf("last registered should win, got %q", got.Description)
	}
	if got := r.All()[1].Name; got != "레벨링" {
		t.Fatalf("replacement should keep position, got %q at 1", got)
	}
}

func TestRegistryDelete(t *testing.T) {
	r := NewRegistry()
	if ok, err := r.Delete(ProtectedName); ok || !errors.Is(err, ErrProtected) {
		t.Fatalf("expected protected error, got %v %v", ok, err)
	}
	if ok, err := r.Delete("주간 루틴"); !ok || err != nil {
		t.Fatalf("delete: %v %v", ok, err)
	}
	if ok, _ := r.Delete("주간 루틴"); ok {
		t.Fatalf("second delete should report false")
	}
	if len(r.All()) != 3 {
		t.Fatalf("expected 3 templates left")
	}
}

func TestRegistryCloneSearchStats(t *testing.T) {
	r := NewRegistry()
	c, err := r.Clone("일일 루틴", "my daily")
	if err != nil {
		t.Fatalf("clone: %v", err)
	}
	if c.Description != "매일 해야 할 기본적인 할일들 (복사본)" || len(c.Tasks) != 3 {
		t.Fatalf("unexpected clone %+v", c)
	}
	if _, err := r.Clone("missing", "x"); !errors.Is(err, ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}

	found := r.Search("보스")
	if len(found) != 1 || found[0].Name != "주간 루틴" {
		t.Fatalf("unexpected search result %+v", found)
	}
	if got := r.Search("MY DAILY"); len(got) != 1 {
		t.Fatalf("search should ignore case, got %d", len(got))
	}

	stats := r.Stats()
	if stats.TotalTemplates != 5 || stats.TotalTasks != 5+3+3+3+3 {
		t.Fatalf("unexpected stats %+v", stats)
	}
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name string
		tpl  Template
		ok   bool
	}{
		{"ok", Template{Name: "n", Description: "d", Tasks: []Task{{Title: "t"}}}, true},
		{"empty tasks", Template{Name: "n", Description: "d", Tasks: []Task{}}, true},
		{"no name", Template{Description: "d", Tasks: []Task{}}, false},
		{"no description", Template{Name: "n", Tasks: []Task{}}, false},
		{"no tasks", Template{Name: "n", Description: "d"}, false},
		{"untitled task", Template{Name: "n", Description: "d", Tasks: []Task{{}}}, false},
		{"bad type", Template{Name: "n", Description: "d", Tasks: []Task{{Title: "t", Type: "dance"}}}, false},
		{"bad priority", Template{Name: "n", Description: "d", Tasks: []Task{{Title: "t", Priority: 9}}}, false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := Validate(tt.tpl)
			if tt.ok != (err == nil) {
				t.Fatalf("Validate = %v, want ok=%v", err, tt.ok)
			}
			if err != nil && !errors.Is(err, ErrInvalid) {
				t.Fatalf("expected ErrInvalid, got %v", err)
			}
		})
	}
}

func TestImportExportRoundTrip(t *testing.T) {
	src := NewRegistry()
	now := time.Date(2026, 10, 14, 9, 0, 0, 0, time.UTC)
	var buf bytes.Buffer
	if err := src.Export("레벨링", &buf, now); err != nil {
		t.Fatalf("export: %v", err)
	}
	var doc map[string]interface{}
	if err := json.Unmarshal(buf.Bytes(), &doc); err != nil {
		t.Fatalf("export not json: %v", err)
	}
	if doc["version"] != ExportVersion || doc["exportDate"] != "2026-10-14T09:00:00.000Z" {
		t.Fatalf("unexpected export stamps %v %v", doc["version"], doc["exportDate"])
	}

	dst := NewEmptyRegistry()
	got, err := dst.Import(&buf)
	if err != nil {
		t.Fatalf("import: %v", err)
	}
	want, _ := src.Get("레벨링")
	if !reflect.DeepEqual(got, want) {
		t.Fatalf("round trip mismatch:\n got %+v\nwant %+v", got, want)
	}
	if _, ok := dst.Get("레벨링"); !ok {
		t.Fatalf("imported template not registered")
	}
	if ExportFileName("일일 루틴", now) != "template-일일-루틴-2026-10-14.json" {
		t.Fatalf("unexpected file name %q", ExportFileName("일일 루틴", now))
	}
}

func TestImportRejectsInvalid(t *testing.T) {
	tests := map[string]string{
		"not json":        `{`,
		"missing tasks":   `{"name":"n","description":"d"}`,
		"untitled task":   `{"name":"n","description":"d","tasks":[{"notes":"x"}]}`,
		"bad tobel":       `{"name":"n","description":"d","tasks":[{"title":"t","tobelStep":7}]}`,
		"bad checklist":   `{"name":"n","description":"d","tasks":[{"title":"t","checklist":[3]}]}`,
		"empty name":      `{"name":"","description":"d","tasks":[]}`,
		"unknown type":    `{"name":"n","description":"d","tasks":[{"title":"t","type":"dance"}]}`,
	}
	for name, doc := range tests {
		t.Run(name, func(t *testing.T) {
			r := NewEmptyRegistry()
			if _, err := r.Import(strings.NewReader(doc)); !errors.Is(err, ErrInvalid) {
				t.Fatalf("expected ErrInvalid, got %v", err)
			}
			if len(r.All()) != 0 {
				t.Fatalf("invalid template registered")
			}
		})
	}
}

func TestImportChecklistObjects(t *testing.T) {
	r := NewEmptyRegistry()
	tpl, err := r.Import(strings.NewReader(`{"name":"n","description":"d","tasks":[{"title":"t","checklist":[{"label":"a"},"b"]}]}`))
	if err != nil {
		t.Fatalf("import: %v", err)
	}
	if !reflect.DeepEqual(tpl.Tasks[0].Checklist, Checklist{"a", "b"}) {
		t.Fatalf("unexpected checklist %v", tpl.Tasks[0].Checklist)
	}
}

func TestLoadDir(t *testing.T) {
	dir := t.TempDir()
	pack := `name = "raid"
description = "weekly raid prep"

[[tasks]]
title = "buy potions"
type = "purchase"
priority = 3
checklist = ["hp", "mp"]

[[tasks]]
title = "clear raid"
type = "토벌"
tobelStep = 15
`
	if err := os.WriteFile(filepath.Join(dir, "raid.toml"), []byte(pack), 0o644); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(filepath.Join(dir, "broken.toml"), []byte("name = \"x\"\nbogus = 1\n"), 0o644); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(filepath.Join(dir, "notes.txt"), []byte("ignored"), 0o644); err != nil {
		t.Fatal(err)
	}

	r := NewEmptyRegistry()
	loaded, err := r.LoadDir(dir)
	if !reflect.DeepEqual(loaded, []string{"raid"}) {
		t.Fatalf("loaded = %v", loaded)
	}
	if err == nil || !strings.Contains(err.Error(), "broken.toml") {
		t.Fatalf("expected error naming broken.toml, got %v", err)
	}
	raid, _ := r.Get("raid")
	if len(raid.Tasks) != 2 || raid.Tasks[1].TobelStep == nil || *raid.Tasks[1].TobelStep != 15 {
		t.Fatalf("unexpected pack %+v", raid)
	}
	if in := raid.Tasks[0].Input("c1"); in.Type != model.TypePurchase || in.Priority != 3 || len(in.Checklist) != 2 {
		t.Fatalf("unexpected input %+v", in)
	}

	if loaded, err := r.LoadDir(filepath.Join(dir, "missing")); err != nil || loaded != nil {
		t.Fatalf("missing dir should be ignored, got %v %v", loaded, err)
	}
}

func TestWritePackRoundTrip(t *testing.T) {
	dir := t.TempDir()
	want, _ := NewRegistry().Get(ProtectedName)
	var buf bytes.Buffer
	if err := WritePack(&buf, want); err != nil {
		t.Fatalf("write pack: %v", err)
	}
	if err := os.WriteFile(filepath.Join(dir, "covenant.toml"), buf.Bytes(), 0o644); err != nil {
		t.Fatal(err)
	}
	r := NewEmptyRegistry()
	if _, err := r.LoadDir(dir); err != nil {
		t.Fatalf("load: %v", err)
	}
	got, ok := r.Get(ProtectedName)
	if !ok || got.Description != want.Description || len(got.Tasks) != len(want.Tasks) {
		t.Fatalf("pack round trip mismatch %+v", got)
	}
}

func TestSaveAndRemovePack(t *testing.T) {
	dir := t.TempDir()
	r := NewRegistry()
	if _, err := r.Clone("레벨링", "내 레벨링"); err != nil {
		t.Fatalf("clone: %v", err)
	}
	path, err := r.SavePack(dir, "내 레벨링")
	if err != nil {
		t.Fatalf("save pack: %v", err)
	}
	if filepath.Base(path) != "내-레벨링.toml" {
		t.Fatalf("unexpected pack path %s", path)
	}

	fresh := NewEmptyRegistry()
	loaded, err := fresh.LoadDir(dir)
	if err != nil || len(loaded) != 1 || loaded[0] != "내 레벨링" {
		t.Fatalf("reload: %v %v", loaded, err)
	}

	if err := RemovePack(dir, "내 레벨링"); err != nil {
		t.Fatalf("remove: %v", err)
	}
	if err := RemovePack(dir, "내 레벨링"); err != nil {
		t.Fatalf("remove missing: %v", err)
	}
	if _, err := r.SavePack(dir, "nope"); !errors.Is(err, ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
}
