package app

import (
	"errors"
	"io"
	"reflect"
	"testing"

	"github.com/charmbracelet/log"

	"tableflip.dev/prasia/pkg/ident"
	"tableflip.dev/prasia/pkg/model"
	"tableflip.dev/prasia/pkg/store"
)

type world struct {
	session *Session
	main    model.Account
	alt     model.Account
	knight  model.Character
	mage    model.Character
	altChar model.Character
}

func newWorld(t *testing.T) world {
	t.Helper()
	t.Cleanup(ident.Use(&ident.Sequence{Start: 1_700_000_000_000, Step: 1}))
	s, err := store.Open(store.NewMemoryBackend(), store.WithLogger(log.New(io.Discard)))
	if err != nil {
		t.Fatalf("open store: %v", err)
	}
	w := world{session: New(s)}
	w.main = s.AddAccount(model.AccountInput{Name: "main"})
	w.alt = s.AddAccount(model.AccountInput{Name: "alt"})
	w.knight = s.AddCharacter(model.CharacterInput{AccountID: w.main.ID, Name: "knight"})
	w.mage = s.AddCharacter(model.CharacterInput{AccountID: w.main.ID, Name: "mage", IsActive: model.Bool(false)})
	w.altChar = s.AddCharacter(model.CharacterInput{AccountID: w.alt.ID, Name: "alt"})
	return w
}

func TestSessionScopesToSelectedAccount(t *testing.T) {
	w := newWorld(t)
	s := w.session.Store
	s.AddTask(model.TaskInput{CharacterID: w.knight.ID, Title: "k"})
	s.AddTask(model.TaskInput{CharacterID: w.mage.ID, Title: "m"})
	s.AddTask(model.TaskInput{CharacterID: w.altChar.ID, Title: "a"})
	s.AddTask(model.TaskInput{CharacterID: "dangling", Title: "d"})

	if got, _ := w.session.SelectedAccount(); got.ID != w.main.ID {
		t.Fatalf("expected first account selected by default, got %s", got.Name)
	}
	if got := len(w.session.Characters()); got != 2 {
		t.Fatalf("expected 2 characters, got %d", got)
	}
	if got := w.session.ActiveCharacters(); len(got) != 1 || got[0].ID != w.knight.ID {
		t.Fatalf("unexpected active characters %+v", got)
	}
	if got := titles(w.session.Tasks()); !reflect.DeepEqual(got, []string{"k", "m"}) {
		t.Fatalf("unexpected tasks %v", got)
	}

	if err := w.session.Select(w.alt.ID); err != nil {
		t.Fatalf("select: %v", err)
	}
	if got := titles(w.session.Tasks()); !reflect.DeepEqual(got, []string{"a"}) {
		t.Fatalf("unexpected tasks after select %v", got)
	}
}

func TestSelectUnknownAccount(t *testing.T) {
	w := newWorld(t)
	if err := w.session.Select("nope"); !errors.Is(err, ErrAccountNotFound) {
		t.Fatalf("expected ErrAccountNotFound, got %v", err)
	}
	if got, _ := w.session.SelectedAccount(); got.ID != w.main.ID {
		t.Fatalf("selection changed on failed select")
	}
}

func TestSelectResetsCharacterFilter(t *testing.T) {
	w := newWorld(t)
	if _, err := w.session.SetCharacter(w.knight.ID); err != nil {
		t.Fatalf("set character: %v", err)
	}
	if err := w.session.Select(w.alt.ID); err != nil {
		t.Fatalf("select: %v", err)
	}
	if got := w.session.View().Character; got != model.AllCharacters {
		t.Fatalf("expected character filter reset, got %q", got)
	}
}

func TestViewStateDefaultsAndValidation(t *testing.T) {
	w := newWorld(t)
	want := ViewState{View: model.ViewBoard, Filter: model.FilterAll, Sort: model.SortUpdated, Character: model.AllCharacters}
	if got := w.session.View(); got != want {
		t.Fatalf("defaults = %+v", got)
	}

	tests := []struct {
		name string
		set  func() (ViewState, error)
		err  error
	}{
		{"view", func() (ViewState, error) { return w.session.SetView("list") }, nil},
		{"bad view", func() (ViewState, error) { return w.session.SetView("grid") }, ErrInvalidView},
		{"filter", func() (ViewState, error) { return w.session.SetFilter("DONE") }, nil},
		{"bad filter", func() (ViewState, error) { return w.session.SetFilter("lost") }, ErrInvalidFilter},
		{"sort", func() (ViewState, error) { return w.session.SetSort("priority") }, nil},
		{"bad sort", func() (ViewState, error) { return w.session.SetSort("name") }, ErrInvalidSort},
		{"character", func() (ViewState, error) { return w.session.SetCharacter(w.knight.ID) }, nil},
		{"foreign character", func() (ViewState, error) { return w.session.SetCharacter(w.altChar.ID) }, ErrCharacterNotFound},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if _, err := tt.set(); !errors.Is(err, tt.err) {
				t.Fatalf("got err %v, want %v", err, tt.err)
			}
		})
	}

	want = ViewState{View: model.ViewList, Filter: "done", Sort: model.SortPriority, Character: w.knight.ID}
	if got := w.session.View(); got != want {
		t.Fatalf("persisted state = %+v, want %+v", got, want)
	}
}

func TestVisibleComposesState(t *testing.T) {
	w := newWorld(t)
	s := w.session.Store
	s.AddTask(model.TaskInput{CharacterID: w.knight.ID, Title: "Alpha Quest", Priority: 1})
	s.AddTask(model.TaskInput{CharacterID: w.knight.ID, Title: "Beta Quest", Priority: 5})
	s.AddTask(model.TaskInput{CharacterID: w.mage.ID, Title: "Gamma Quest", Priority: 3})
	done := s.AddTask(model.TaskInput{CharacterID: w.knight.ID, Title: "Delta Hunt", Priority: 4})
	if _, err := w.session.Complete(done.ID); err != nil {
		t.Fatalf("complete: %v", err)
	}

	if _, err := w.session.SetSort("priority"); err != nil {
		t.Fatal(err)
	}
	if got := titles(w.session.Visible("quest")); !reflect.DeepEqual(got, []string{"Beta Quest", "Gamma Quest", "Alpha Quest"}) {
		t.Fatalf("unexpected visible %v", got)
	}

	if _, err := w.session.SetCharacter(w.knight.ID); err != nil {
		t.Fatal(err)
	}
	if _, err := w.session.SetFilter("todo"); err != nil {
		t.Fatal(err)
	}
	if got := titles(w.session.Visible("")); !reflect.DeepEqual(got, []string{"Beta Quest", "Alpha Quest"}) {
		t.Fatalf("unexpected filtered visible %v", got)
	}
}

func TestMoveAndChecklist(t *testing.T) {
	w := newWorld(t)
	task := w.session.Store.AddTask(model.TaskInput{
		CharacterID: w.knight.ID,
		Title:       "deliver",
		Checklist:   []model.ChecklistItem{{Label: "a"}, {Label: "b"}},
	})

	if _, err := w.session.Move(task.ID, "flying"); !errors.Is(err, ErrInvalidStatus) {
		t.Fatalf("expected ErrInvalidStatus, got %v", err)
	}
	if _, err := w.session.Move("nope", "doing"); !errors.Is(err, ErrTaskNotFound) {
		t.Fatalf("expected ErrTaskNotFound, got %v", err)
	}
	moved, err := w.session.Move(task.ID, "doing")
	if err != nil || moved.Status != model.StatusDoing {
		t.Fatalf("move: %+v %v", moved, err)
	}
	archived, err := w.session.Archive(task.ID)
	if err != nil || archived.Status != model.StatusArchived {
		t.Fatalf("archive: %+v %v", archived, err)
	}

	toggled, err := w.session.ToggleChecklist(task.ID, task.Checklist[1].ID)
	if err != nil {
		t.Fatalf("toggle: %v", err)
	}
	if done, total := toggled.ChecklistProgress(); done != 1 || total != 2 || !toggled.Checklist[1].Done {
		t.Fatalf("unexpected checklist %+v", toggled.Checklist)
	}
	if _, err := w.session.ToggleChecklist(task.ID, "missing"); err == nil {
		t.Fatalf("expected error for missing item")
	}
}

func TestNoStore(t *testing.T) {
	var s Session
	if err := s.Select("x"); !errors.Is(err, ErrNoStore) {
		t.Fatalf("expected ErrNoStore, got %v", err)
	}
	if s.Tasks() != nil {
		t.Fatalf("expected no tasks")
	}
	if got := s.View().View; got != model.ViewBoard {
		t.Fatalf("expected default view, got %q", got)
	}
}

func titles(tasks []model.Task) []string {
	out := make([]string, 0, len(tasks))
	for _, t := range tasks {
		out = append(out, t.Title)
	}
	return out
}
