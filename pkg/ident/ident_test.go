package ident

import (
	"regexp"
	"testing"
)

var uuidV4 = regexp.MustCompile(`^[0-9a-f]{8}-[0-9a-f]{4}-4[0-9a-f]{3}-[89ab][0-9a-f]{3}-[0-9a-f]{12}$`)

func TestNewIDShape(t *testing.T) {
	seen := make(map[string]struct{}, 100)
	for i := 0; i < 100; i++ {
		id := NewID()
		if !uuidV4.MatchString(id) {
			t.Fatalf("id %q is not a v4 uuid", id)
		}
		if _, dup := seen[id]; dup {
			t.Fatalf("duplicate id %q", id)
		}
		seen[id] = struct{}{}
	}
}

func TestUseSequence(t *testing.T) {
	restore := Use(&Sequence{Prefix: "task", Start: 1000, Step: 10})
	defer restore()

	if got := NewID(); got != "task-1" {
		t.Fatalf("expected task-1, got %q", got)
	}
	if got := NewID(); got != "task-2" {
		t.Fatalf("expected task-2, got %q", got)
	}
	if got := Now(); got != 1000 {
		t.Fatalf("expected 1000, got %d", got)
	}
	if got := Now(); got != 1010 {
		t.Fatalf("expected 1010, got %d", got)
	}

	restore()
	if got := NewID(); !uuidV4.MatchString(got) {
		t.Fatalf("expected system source after restore, got %q", got)
	}
}
