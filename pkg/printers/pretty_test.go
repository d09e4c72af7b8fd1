package printers

import (
	"bytes"
	"strings"
	"testing"
	"time"

	"github.com/fatih/color"

	"tableflip.dev/prasia/pkg/model"
	"tableflip.dev/prasia/pkg/query"
	"tableflip.dev/prasia/pkg/template"
)

func plain(t *testing.T) (*PrettyPrint, *bytes.Buffer) {
	t.Helper()
	prev := color.NoColor
	color.NoColor = true
	t.Cleanup(func() { color.NoColor = prev })
	var buf bytes.Buffer
	return &PrettyPrint{Writer: &buf, Location: time.UTC}, &buf
}

func TestTaskLine(t *testing.T) {
	pp, _ := plain(t)
	due := time.Date(2026, 10, 15, 21, 30, 0, 0, time.UTC).UnixMilli()
	task := model.Task{
		Title:     "hunt",
		Type:      model.TypeHunt,
		Status:    model.StatusDoing,
		Priority:  2,
		Region:    "크론",
		TobelStep: model.Int(15),
		DueAt:     &due,
		Tags:      []string{"daily"},
		Checklist: []model.ChecklistItem{{Done: true}, {}},
	}
	want := "◐ ⚔ hunt ✷✷  knight · 크론 · 15단계 · 마감 10-15 21:30 · 1/2 · #daily"
	if got := pp.TaskLine(task, "knight"); got != want {
		t.Fatalf("got  %q\nwant %q", got, want)
	}
}

func TestTasksEmpty(t *testing.T) {
	pp, buf := plain(t)
	pp.Tasks(nil, nil)
	if !strings.Contains(buf.String(), "none") {
		t.Fatalf("expected none marker, got %q", buf.String())
	}
}

func TestBoardColumns(t *testing.T) {
	pp, buf := plain(t)
	pp.Board(query.GroupBoard([]model.Task{
		{Title: "a", Status: model.StatusTodo},
		{Title: "b", Status: model.StatusDone},
	}), nil)
	out := buf.String()
	for _, want := range []string{"할 일 - 1 task", "진행 중 - 0 tasks", "완료 - 1 task"} {
		if !strings.Contains(out, want) {
			t.Fatalf("board output missing %q:\n%s", want, out)
		}
	}
}

func TestCalendar(t *testing.T) {
	pp, buf := plain(t)
	due := time.Date(2026, 10, 20, 9, 0, 0, 0, time.UTC).UnixMilli()
	tasks := []model.Task{
		{Title: "due", Status: model.StatusTodo, DueAt: &due},
		{Title: "open", Status: model.StatusTodo},
		{Title: "closed", Status: model.StatusDone},
	}
	now := time.Date(2026, 10, 14, 12, 0, 0, 0, time.UTC)
	pp.Calendar(now, now, tasks, nil)
	out := buf.String()
	for _, want := range []string{"2026-10", "20 Tue", "due", "Open", "open"} {
		if !strings.Contains(out, want) {
			t.Fatalf("calendar missing %q:\n%s", want, out)
		}
	}
	if strings.Contains(out, "closed") {
		t.Fatalf("completed undated task should not be listed:\n%s", out)
	}
}

func TestMonthHelpers(t *testing.T) {
	feb := time.Date(2028, 2, 10, 0, 0, 0, 0, time.UTC)
	if DaysIn(feb) != 29 {
		t.Fatalf("2028 is a leap year")
	}
	if StartDay(feb) != time.Tuesday {
		t.Fatalf("2028-02-01 is a Tuesday, got %s", StartDay(feb))
	}
	if got := NextMonth(time.Date(2026, 12, 31, 0, 0, 0, 0, time.UTC)); got.Month() != time.January || got.Year() != 2027 {
		t.Fatalf("unexpected next month %v", got)
	}
	if got := PrevMonth(time.Date(2026, 1, 31, 0, 0, 0, 0, time.UTC)); got.Month() != time.December || got.Year() != 2025 {
		t.Fatalf("unexpected previous month %v", got)
	}
}

func TestTemplatesMarksProtected(t *testing.T) {
	pp, buf := plain(t)
	pp.Templates(template.NewRegistry().Stats())
	if !strings.Contains(buf.String(), template.ProtectedName+" ✷") {
		t.Fatalf("protected template not marked:\n%s", buf.String())
	}
}

func TestJSON(t *testing.T) {
	pp, buf := plain(t)
	if err := pp.JSON(map[string]int{"total": 2}); err != nil {
		t.Fatal(err)
	}
	if got := buf.String(); got != "{\n  \"total\": 2\n}\n" {
		t.Fatalf("unexpected json %q", got)
	}
}
