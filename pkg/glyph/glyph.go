// Package glyph maps task statuses and types to the symbols printed by the
// CLI.
package glyph

import (
	"fmt"

	"tableflip.dev/prasia/pkg/model"
)

type Glyph struct {
	Key     string
	Symbol  string
	Meaning string
	// Type marks glyphs that describe a task type rather than a status.
	Type bool
}

const (
	escape        = "\x1b"
	resetCode     = 0
	boldCode      = 1
	underlineCode = 4
	strikeCode    = 9
)

func Strike(in string) string {
	return fmt.Sprintf("%s[%dm%s%s[%dm", escape, strikeCode, in, escape, resetCode)
}

func Bold(in string) string {
	return fmt.Sprintf("%s[%dm%s%s[%dm", escape, boldCode, in, escape, resetCode)
}

func Underline(in string) string {
	return fmt.Sprintf("%s[%dm%s%s[%dm", escape, underlineCode, in, escape, resetCode)
}

var statuses = map[model.Status]Glyph{
	model.StatusTodo:     {Key: "todo", Symbol: "●", Meaning: "할 일"},
	model.StatusDoing:    {Key: "doing", Symbol: "◐", Meaning: "진행 중"},
	model.StatusDone:     {Key: "done", Symbol: "✘", Meaning: "완료"},
	model.StatusArchived: {Key: "archived", Symbol: "⦵", Meaning: "보관"},
}

var types = map[model.TaskType]Glyph{
	model.TypeRequest:  {Key: "request", Symbol: "✉", Type: true},
	model.TypeHunt:     {Key: "hunt", Symbol: "⚔", Type: true},
	model.TypeFavor:    {Key: "favor", Symbol: "♥", Type: true},
	model.TypePurchase: {Key: "purchase", Symbol: "¤", Type: true},
	model.TypeOther:    {Key: "other", Symbol: "⁃", Type: true},
}

// Priority is printed once per priority level.
const Priority = "✷"

// ForStatus returns the glyph of a status. Unknown statuses print as "?".
func ForStatus(s model.Status) Glyph {
	if g, ok := statuses[s]; ok {
		return g
	}
	return Glyph{Key: string(s), Symbol: "?", Meaning: string(s)}
}

// ForType returns the glyph of a task type.
func ForType(t model.TaskType) Glyph {
	if g, ok := types[t]; ok {
		g.Meaning = string(t)
		return g
	}
	return Glyph{Key: string(t), Symbol: " ", Meaning: string(t), Type: true}
}

// Defaults lists the status glyphs followed by the type glyphs, in the
// order of model.Statuses and model.TaskTypes.
func Defaults() []Glyph {
	out := make([]Glyph, 0, len(statuses)+len(types))
	for _, s := range model.Statuses() {
		out = append(out, ForStatus(s))
	}
	for _, t := range model.TaskTypes() {
		out = append(out, ForType(t))
	}
	return out
}

func (g Glyph) String() string {
	return g.Symbol
}
