package options

import (
	"testing"
	"time"

	"github.com/spf13/cobra"

	"tableflip.dev/prasia/pkg/model"
)

var now = time.Date(2026, 10, 14, 12, 0, 0, 0, time.UTC)

func TestTaskPatchOnlyChangedFlags(t *testing.T) {
	cmd := &cobra.Command{Use: "update"}
	o := &TaskOptions{}
	AddTaskUpdateArgs(cmd, o)
	if err := cmd.Flags().Parse([]string{"--title", "new", "--priority", "0", "--type", "hunt", "--notify", "30m", "--clear-due"}); err != nil {
		t.Fatalf("parse: %v", err)
	}
	p, err := o.Patch(cmd, now)
	if err != nil {
		t.Fatalf("patch: %v", err)
	}
	if p.Title == nil || *p.Title != "new" {
		t.Fatalf("title not patched: %+v", p)
	}
	if p.Priority == nil || *p.Priority != 0 {
		t.Fatalf("explicit zero priority must be patched")
	}
	if p.Type == nil || *p.Type != model.TypeHunt {
		t.Fatalf("type not parsed: %v", p.Type)
	}
	if p.NotifyAt == nil || *p.NotifyAt != now.Add(30*time.Minute).UnixMilli() {
		t.Fatalf("notify not parsed: %v", p.NotifyAt)
	}
	if !p.ClearDueAt || p.DueAt != nil {
		t.Fatalf("unexpected due patch: %v %v", p.ClearDueAt, p.DueAt)
	}
	if p.Notes != nil || p.Status != nil || p.Tags != nil || p.Checklist != nil {
		t.Fatalf("unset flags leaked into patch: %+v", p)
	}
}

func TestTaskInput(t *testing.T) {
	cmd := &cobra.Command{Use: "add"}
	o := &TaskOptions{}
	AddTaskArgs(cmd, o)
	if err := cmd.Flags().Parse([]string{"-c", "c1", "--type", "토벌", "--tobel-step", "15", "--due", "2026-10-20", "--check", "a", "--check", "b"}); err != nil {
		t.Fatalf("parse: %v", err)
	}
	in, err := o.Input(now)
	if err != nil {
		t.Fatalf("input: %v", err)
	}
	if in.CharacterID != "c1" || in.Type != model.TypeHunt || in.TobelStep == nil || *in.TobelStep != 15 {
		t.Fatalf("unexpected input %+v", in)
	}
	if want := time.Date(2026, 10, 20, 0, 0, 0, 0, time.UTC).UnixMilli(); in.DueAt == nil || *in.DueAt != want {
		t.Fatalf("unexpected due %v", in.DueAt)
	}
	if len(in.Checklist) != 2 || in.Checklist[1].Label != "b" {
		t.Fatalf("unexpected checklist %+v", in.Checklist)
	}

	o.Type = "quest"
	if _, err := o.Input(now); err == nil {
		t.Fatalf("expected unknown type error")
	}
}
