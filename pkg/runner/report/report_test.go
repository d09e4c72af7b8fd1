package report

import (
	"bytes"
	"context"
	"strings"
	"testing"
	"time"

	"github.com/fatih/color"

	"tableflip.dev/prasia/pkg/ident"
	"tableflip.dev/prasia/pkg/logging"
	"tableflip.dev/prasia/pkg/model"
	"tableflip.dev/prasia/pkg/store"
)

func TestReportWindow(t *testing.T) {
	color.NoColor = true
	start := time.Date(2026, 10, 14, 9, 0, 0, 0, time.UTC)
	t.Cleanup(ident.Use(&ident.Sequence{Start: start.UnixMilli(), Step: 1}))

	s, err := store.Open(store.NewMemoryBackend(), store.WithLogger(logging.Discard()))
	if err != nil {
		t.Fatalf("open store: %v", err)
	}
	a := s.AddAccount(model.AccountInput{Name: "main"})
	c := s.AddCharacter(model.CharacterInput{AccountID: a.ID, Name: "knight"})
	s.AddTask(model.TaskInput{CharacterID: c.ID, Title: "finished", Status: model.StatusDone})
	s.AddTask(model.TaskInput{CharacterID: c.ID, Title: "open"})

	var out bytes.Buffer
	if err := (&Report{Last: "1일", Now: start.Add(time.Hour), Store: s, Out: &out}).Do(context.Background()); err != nil {
		t.Fatalf("report: %v", err)
	}
	got := out.String()
	if !strings.Contains(got, "last 1d") || !strings.Contains(got, "knight") || !strings.Contains(got, "finished") {
		t.Fatalf("unexpected report:\n%s", got)
	}
	if strings.Contains(got, "open") {
		t.Fatalf("open task in report:\n%s", got)
	}

	out.Reset()
	if err := (&Report{Last: "1d", Now: start.Add(48 * time.Hour), Store: s, Out: &out}).Do(context.Background()); err != nil {
		t.Fatalf("report: %v", err)
	}
	if !strings.Contains(out.String(), "No completed tasks") {
		t.Fatalf("expected empty window:\n%s", out.String())
	}

	if err := (&Report{Last: "soon", Store: s, Out: &out}).Do(context.Background()); err == nil {
		t.Fatalf("expected bad window error")
	}
}
