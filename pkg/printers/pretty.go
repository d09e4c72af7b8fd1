package printers

import (
	"encoding/json"
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/fatih/color"
	"github.com/gosuri/uitable"

	"tableflip.dev/prasia/pkg/app"
	"tableflip.dev/prasia/pkg/glyph"
	"tableflip.dev/prasia/pkg/model"
	"tableflip.dev/prasia/pkg/notify"
	"tableflip.dev/prasia/pkg/query"
	"tableflip.dev/prasia/pkg/template"
)

type PrettyPrint struct {
	ShowID bool
	// Writer defaults to color.Output.
	Writer io.Writer
	// Location renders dates. Nil means time.Local.
	Location *time.Location
}

const idWidth = 36

var (
	spacing = strings.Repeat(" ", idWidth+2)
)

// Out returns the writer output goes to.
func (pp *PrettyPrint) Out() io.Writer {
	if pp.Writer != nil {
		return pp.Writer
	}
	return color.Output
}

func (pp *PrettyPrint) loc() *time.Location {
	if pp.Location != nil {
		return pp.Location
	}
	return time.Local
}

func (pp *PrettyPrint) NewLine() {
	_, _ = fmt.Fprintln(pp.Out(), "")
}

// JSON writes v indented.
func (pp *PrettyPrint) JSON(v any) error {
	b, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return err
	}
	_, err = fmt.Fprintln(pp.Out(), string(b))
	return err
}

func (pp *PrettyPrint) Title(title string) {
	t := color.New(color.Bold, color.Underline)

	if pp.ShowID {
		_, _ = t.Fprint(pp.Out(), spacing)
	}
	_, _ = t.Fprintln(pp.Out(), title)
}

func (pp *PrettyPrint) TitleWithCount(title string, count int) {
	t := color.New(color.Bold, color.Underline)
	c := color.New(color.Faint)

	if pp.ShowID {
		_, _ = t.Fprint(pp.Out(), spacing)
	}
	_, _ = t.Fprint(pp.Out(), title)
	_, _ = c.Fprintf(pp.Out(), " - %d", count)

	switch count {
	case 1:
		_, _ = c.Fprintln(pp.Out(), " task")
	default:
		_, _ = c.Fprintln(pp.Out(), " tasks")
	}
}

func (pp *PrettyPrint) none() {
	f := color.New(color.Faint, color.Italic)
	if pp.ShowID {
		_, _ = f.Fprint(pp.Out(), spacing)
	}
	_, _ = f.Fprint(pp.Out(), " none\n\n")
}

func (pp *PrettyPrint) id(id string) {
	y := color.New(color.FgHiYellow, color.Italic, color.Faint)
	_, _ = y.Fprint(pp.Out(), id)
	pad := len(spacing) - len(id)
	if pad < 1 {
		pad = 1
	}
	_, _ = y.Fprint(pp.Out(), strings.Repeat(" ", pad))
}

// TaskLine renders one task without the trailing newline.
func (pp *PrettyPrint) TaskLine(t model.Task, owner string) string {
	var b strings.Builder
	b.WriteString(glyph.ForStatus(t.Status).Symbol)
	b.WriteString(" ")
	b.WriteString(glyph.ForType(t.Type).Symbol)
	b.WriteString(" ")
	if t.Status == model.StatusDone || t.Status == model.StatusArchived {
		b.WriteString(color.New(color.Faint).Sprint(t.Title))
	} else {
		b.WriteString(t.Title)
	}
	if t.Priority > 0 {
		b.WriteString(" " + color.New(color.FgHiRed).Sprint(strings.Repeat(glyph.Priority, t.Priority)))
	}
	var meta []string
	if owner != "" {
		meta = append(meta, owner)
	}
	if t.Region != "" {
		meta = append(meta, t.Region)
	}
	if t.TobelStep != nil {
		meta = append(meta, fmt.Sprintf("%d단계", *t.TobelStep))
	}
	if t.FavorStage != model.FavorNone {
		meta = append(meta, string(t.FavorStage))
	}
	if t.DueAt != nil {
		meta = append(meta, "마감 "+time.UnixMilli(*t.DueAt).In(pp.loc()).Format("01-02 15:04"))
	}
	if done, total := t.ChecklistProgress(); total > 0 {
		meta = append(meta, fmt.Sprintf("%d/%d", done, total))
	}
	for _, tag := range t.Tags {
		meta = append(meta, "#"+tag)
	}
	if len(meta) > 0 {
		b.WriteString("  " + color.New(color.Faint).Sprint(strings.Join(meta, " · ")))
	}
	return b.String()
}

// Tasks prints tasks one per line. names maps character ids to names and
// may be nil.
func (pp *PrettyPrint) Tasks(tasks []model.Task, names map[string]string) {
	if len(tasks) == 0 {
		pp.none()
		return
	}
	for _, t := range tasks {
		if pp.ShowID {
			pp.id(t.ID)
		}
		_, _ = fmt.Fprintln(pp.Out(), pp.TaskLine(t, names[t.CharacterID]))
	}
	pp.NewLine()
}

// Task prints a single task with its notes and checklist.
func (pp *PrettyPrint) Task(t model.Task, owner string) {
	pp.Tasks([]model.Task{t}, map[string]string{t.CharacterID: owner})
	faint := color.New(color.Faint)
	if t.Notes != "" {
		_, _ = faint.Fprintln(pp.Out(), "  "+strings.ReplaceAll(t.Notes, "\n", "\n  "))
	}
	for _, item := range t.Checklist {
		mark := "[ ]"
		if item.Done {
			mark = "[x]"
		}
		line := fmt.Sprintf("  %s %s", mark, item.Label)
		if pp.ShowID {
			line += "  " + faint.Sprint(item.ID)
		}
		_, _ = fmt.Fprintln(pp.Out(), line)
	}
	if t.Notes != "" || len(t.Checklist) > 0 {
		pp.NewLine()
	}
}

// Board prints the kanban columns one after another.
func (pp *PrettyPrint) Board(b query.Board, names map[string]string) {
	for _, col := range b.Columns() {
		pp.TitleWithCount(glyph.ForStatus(col.Status).Meaning, len(col.Tasks))
		pp.Tasks(col.Tasks, names)
	}
}

// Accounts prints the account table, marking the selected account.
func (pp *PrettyPrint) Accounts(accounts []model.Account, selected string, counts map[string]int) {
	if len(accounts) == 0 {
		pp.none()
		return
	}
	bold := color.New(color.Bold)
	tbl := uitable.New()
	tbl.Separator = "  "
	if pp.ShowID {
		tbl.AddRow("", bold.Sprint("ID"), bold.Sprint("Name"), bold.Sprint("Characters"), bold.Sprint("Covenants"))
	} else {
		tbl.AddRow("", bold.Sprint("Name"), bold.Sprint("Characters"), bold.Sprint("Covenants"))
	}
	for _, a := range accounts {
		mark := " "
		if a.ID == selected {
			mark = "›"
		}
		name := a.Name
		if a.IsPrimary {
			name += " " + glyph.Priority
		}
		cov := fmt.Sprintf("%d/%d", len(a.Covenants.Purchased), a.Covenants.Total)
		if pp.ShowID {
			tbl.AddRow(mark, a.ID, name, counts[a.ID], cov)
		} else {
			tbl.AddRow(mark, name, counts[a.ID], cov)
		}
	}
	_, _ = fmt.Fprintln(pp.Out(), tbl)
	pp.NewLine()
}

// Characters prints the character table with zone progress.
func (pp *PrettyPrint) Characters(chars []model.Character) {
	if len(chars) == 0 {
		pp.none()
		return
	}
	bold := color.New(color.Bold)
	faint := color.New(color.Faint)
	tbl := uitable.New()
	tbl.Separator = "  "
	header := []interface{}{bold.Sprint("Name"), bold.Sprint("Server"), bold.Sprint("Lv"), bold.Sprint("Zones")}
	if pp.ShowID {
		header = append([]interface{}{bold.Sprint("ID")}, header...)
	}
	tbl.AddRow(header...)
	for _, c := range chars {
		name := c.Name
		if !c.IsActive {
			name = faint.Sprint(name + " (inactive)")
		}
		server := c.Server
		if c.ServerChannel != "" {
			server += " " + c.ServerChannel
		}
		var zones []string
		for _, r := range model.Regions() {
			if v, ok := c.Zones[string(r)]; ok {
				zones = append(zones, fmt.Sprintf("%s %s", r, v))
			}
		}
		row := []interface{}{name, server, c.Level, strings.Join(zones, " ")}
		if pp.ShowID {
			row = append([]interface{}{c.ID}, row...)
		}
		tbl.AddRow(row...)
	}
	_, _ = fmt.Fprintln(pp.Out(), tbl)
	pp.NewLine()
}

// Dashboard prints one card per character plus today's completions.
func (pp *PrettyPrint) Dashboard(cards []query.Summary, today query.Today) {
	bold := color.New(color.Bold)
	faint := color.New(color.Faint)
	if len(cards) == 0 {
		pp.none()
	}
	for _, s := range cards {
		_, _ = bold.Fprintf(pp.Out(), "%s", s.Character.Name)
		_, _ = faint.Fprintf(pp.Out(), "  %s %d%%  todo %d · doing %d · done %d\n",
			progressBar(s.Progress, 10), s.Progress, s.Todo, s.Doing, s.Done)
		for _, t := range s.Next {
			_, _ = fmt.Fprintln(pp.Out(), "  "+pp.TaskLine(t, ""))
		}
		pp.NewLine()
	}
	_, _ = bold.Fprintf(pp.Out(), "오늘 완료 %d", today.Total)
	var parts []string
	for _, c := range today.ByCharacter {
		parts = append(parts, fmt.Sprintf("%s %d", c.Name, c.Count))
	}
	if len(parts) > 0 {
		_, _ = faint.Fprintf(pp.Out(), "  (%s)", strings.Join(parts, ", "))
	}
	pp.NewLine()
}

func progressBar(percent, width int) string {
	filled := percent * width / 100
	if filled > width {
		filled = width
	}
	if filled < 0 {
		filled = 0
	}
	return strings.Repeat("█", filled) + strings.Repeat("░", width-filled)
}

// Report prints completed tasks grouped by character.
func (pp *PrettyPrint) Report(result app.ReportResult, label string) {
	since := result.Since.In(pp.loc()).Format("2006-01-02 15:04")
	until := result.Until.In(pp.loc()).Format("2006-01-02 15:04")
	_, _ = fmt.Fprintf(pp.Out(), "Report · last %s (%s → %s)\n", label, since, until)

	if result.Total == 0 {
		_, _ = fmt.Fprintln(pp.Out(), "  No completed tasks found in this window.")
		pp.NewLine()
		return
	}
	for _, section := range result.Sections {
		_, _ = fmt.Fprintf(pp.Out(), "\n%s\n", section.Character.Name)
		for _, item := range section.Tasks {
			_, _ = fmt.Fprintf(pp.Out(), "  %s  (completed %s)\n", pp.TaskLine(item.Task, ""),
				item.CompletedAt.In(pp.loc()).Format("2006-01-02 15:04"))
		}
	}
	pp.NewLine()
}

// Templates prints the registry summary.
func (pp *PrettyPrint) Templates(stats template.Stats) {
	bold := color.New(color.Bold)
	tbl := uitable.New()
	tbl.Separator = "  "
	tbl.MaxColWidth = 60
	tbl.Wrap = true
	tbl.AddRow(bold.Sprint("Name"), bold.Sprint("Tasks"), bold.Sprint("Description"))
	for _, t := range stats.Templates {
		name := t.Name
		if name == template.ProtectedName {
			name += " " + glyph.Priority
		}
		tbl.AddRow(name, t.TaskCount, t.Description)
	}
	_, _ = fmt.Fprintln(pp.Out(), tbl)
	_, _ = color.New(color.Faint).Fprintf(pp.Out(), "%d templates, %d tasks\n", stats.TotalTemplates, stats.TotalTasks)
	pp.NewLine()
}

// Template prints the tasks of one template.
func (pp *PrettyPrint) Template(t template.Template) {
	pp.TitleWithCount(t.Name, len(t.Tasks))
	_, _ = color.New(color.Faint).Fprintln(pp.Out(), t.Description)
	for _, task := range t.Tasks {
		in := task.Input("")
		line := fmt.Sprintf("%s %s", glyph.ForType(in.Type).Symbol, in.Title)
		if in.Region != "" {
			line += "  " + color.New(color.Faint).Sprint(in.Region)
		}
		_, _ = fmt.Fprintln(pp.Out(), line)
		for _, item := range task.Checklist {
			_, _ = fmt.Fprintln(pp.Out(), "    [ ] "+item)
		}
	}
	pp.NewLine()
}

// Preview prints what applying a template would create.
func (pp *PrettyPrint) Preview(p template.Preview) {
	_, _ = color.New(color.Bold).Fprintf(pp.Out(), "%s", p.TemplateName)
	_, _ = color.New(color.Faint).Fprintf(pp.Out(), "  %d characters × tasks = %d\n", p.CharacterCount, p.TotalTasks)
	tbl := uitable.New()
	tbl.Separator = "  "
	for _, t := range p.Tasks {
		check := ""
		if t.ChecklistCount > 0 {
			check = fmt.Sprintf("0/%d", t.ChecklistCount)
		}
		tbl.AddRow(t.CharacterName, glyph.ForType(t.Type).Symbol+" "+t.Title, t.Region, check)
	}
	_, _ = fmt.Fprintln(pp.Out(), tbl)
	pp.NewLine()
}

// Applied prints the outcome of a template application.
func (pp *PrettyPrint) Applied(r template.Result) {
	_, _ = fmt.Fprintf(pp.Out(), "Applied %q to %d characters, %d tasks created.\n", r.TemplateName, r.CharacterCount, r.TaskCount)
	for _, id := range r.Skipped {
		_, _ = color.New(color.FgYellow).Fprintf(pp.Out(), "  skipped unknown character %s\n", id)
	}
}

// Notices prints due reminders.
func (pp *PrettyPrint) Notices(notices []notify.Notice) {
	if len(notices) == 0 {
		pp.none()
		return
	}
	bold := color.New(color.Bold)
	for _, n := range notices {
		if pp.ShowID {
			pp.id(n.TaskID)
		}
		_, _ = bold.Fprintln(pp.Out(), n.Title)
		_, _ = fmt.Fprintln(pp.Out(), "  "+strings.ReplaceAll(n.Body, "\n", "\n  "))
	}
	pp.NewLine()
}
