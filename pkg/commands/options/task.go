package options

import (
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"tableflip.dev/prasia/pkg/model"
)

// TaskOptions holds the task field flags shared by add and update.
type TaskOptions struct {
	Character  string
	Title      string
	Notes      string
	Type       string
	Status     string
	Priority   int
	Region     string
	Location   string
	TobelStep  int
	FavorStage string
	Due        string
	Notify     string
	Tags       []string
	Checklist  []string

	ClearTobel  bool
	ClearDue    bool
	ClearNotify bool
}

const whenHelp = `as "2026-10-14", "2026-10-14 21:00" or an offset like "2d", "30m" or "1시간"`

func AddTaskArgs(cmd *cobra.Command, o *TaskOptions) {
	cmd.Flags().StringVarP(&o.Character, "character", "c", "",
		"Character id owning the task.")
	cmd.Flags().StringVar(&o.Notes, "notes", "", "Free text notes.")
	cmd.Flags().StringVarP(&o.Type, "type", "t", "",
		"Task type: request, hunt, favor, purchase, other (or 의뢰, 토벌, 우호도, 구매, 기타).")
	cmd.Flags().StringVar(&o.Status, "status", "", "Status: todo, doing, done, archived.")
	cmd.Flags().IntVarP(&o.Priority, "priority", "p", 0, "Priority from 0 to 5.")
	cmd.Flags().StringVarP(&o.Region, "region", "r", "", "Region, one of 크론, 라인소프, 시길, 아민타, 론도.")
	cmd.Flags().StringVar(&o.Location, "location", "", "Location inside the region.")
	cmd.Flags().IntVar(&o.TobelStep, "tobel-step", 0, "Tobel step, 1 or 15.")
	cmd.Flags().StringVar(&o.FavorStage, "favor-stage", "", "Favor stage: 결속, 신의, 맹약.")
	cmd.Flags().StringVar(&o.Due, "due", "", "Due date, "+whenHelp+".")
	cmd.Flags().StringVar(&o.Notify, "notify", "", "Reminder time, "+whenHelp+".")
	cmd.Flags().StringSliceVar(&o.Tags, "tag", nil, "Tag, repeatable.")
	cmd.Flags().StringSliceVar(&o.Checklist, "check", nil, "Checklist item label, repeatable.")
}

func AddTaskUpdateArgs(cmd *cobra.Command, o *TaskOptions) {
	AddTaskArgs(cmd, o)
	cmd.Flags().StringVar(&o.Title, "title", "", "New title.")
	cmd.Flags().BoolVar(&o.ClearTobel, "clear-tobel-step", false, "Remove the tobel step.")
	cmd.Flags().BoolVar(&o.ClearDue, "clear-due", false, "Remove the due date.")
	cmd.Flags().BoolVar(&o.ClearNotify, "clear-notify", false, "Remove the reminder.")
}

func checklist(labels []string) []model.ChecklistItem {
	if labels == nil {
		return nil
	}
	items := make([]model.ChecklistItem, 0, len(labels))
	for _, l := range labels {
		items = append(items, model.ChecklistItem{Label: l})
	}
	return items
}

// Input builds a new task from the flags.
func (o *TaskOptions) Input(now time.Time) (model.TaskInput, error) {
	in := model.TaskInput{
		CharacterID: o.Character,
		Title:       o.Title,
		Notes:       o.Notes,
		Priority:    o.Priority,
		Region:      o.Region,
		Location:    o.Location,
		Tags:        o.Tags,
		Checklist:   checklist(o.Checklist),
	}
	var err error
	if in.Type, err = model.ParseTaskType(o.Type); err != nil {
		return in, err
	}
	if o.Status != "" {
		if in.Status, err = model.ParseStatus(o.Status); err != nil {
			return in, err
		}
	}
	if in.FavorStage, err = model.ParseFavorStage(o.FavorStage); err != nil {
		return in, err
	}
	if o.TobelStep != 0 {
		in.TobelStep = model.Int(o.TobelStep)
	}
	if in.DueAt, err = parseWhen(o.Due, now); err != nil {
		return in, fmt.Errorf("--due: %w", err)
	}
	if in.NotifyAt, err = parseWhen(o.Notify, now); err != nil {
		return in, fmt.Errorf("--notify: %w", err)
	}
	return in, nil
}

// Patch builds an update from the flags the user actually set.
func (o *TaskOptions) Patch(cmd *cobra.Command, now time.Time) (model.TaskPatch, error) {
	changed := cmd.Flags().Changed
	p := model.TaskPatch{
		ClearTobelStep: o.ClearTobel,
		ClearDueAt:     o.ClearDue,
		ClearNotifyAt:  o.ClearNotify,
	}
	if changed("character") {
		p.CharacterID = model.String(o.Character)
	}
	if changed("title") {
		p.Title = model.String(o.Title)
	}
	if changed("notes") {
		p.Notes = model.String(o.Notes)
	}
	if changed("type") {
		t, err := model.ParseTaskType(o.Type)
		if err != nil {
			return p, err
		}
		p.Type = &t
	}
	if changed("status") {
		s, err := model.ParseStatus(o.Status)
		if err != nil {
			return p, err
		}
		p.Status = &s
	}
	if changed("priority") {
		p.Priority = model.Int(o.Priority)
	}
	if changed("region") {
		p.Region = model.String(o.Region)
	}
	if changed("location") {
		p.Location = model.String(o.Location)
	}
	if changed("tobel-step") {
		p.TobelStep = model.Int(o.TobelStep)
	}
	if changed("favor-stage") {
		f, err := model.ParseFavorStage(o.FavorStage)
		if err != nil {
			return p, err
		}
		p.FavorStage = &f
	}
	if changed("due") {
		due, err := parseWhen(o.Due, now)
		if err != nil {
			return p, fmt.Errorf("--due: %w", err)
		}
		p.DueAt = due
	}
	if changed("notify") {
		at, err := parseWhen(o.Notify, now)
		if err != nil {
			return p, fmt.Errorf("--notify: %w", err)
		}
		p.NotifyAt = at
	}
	if changed("tag") {
		tags := append([]string{}, o.Tags...)
		p.Tags = &tags
	}
	if changed("check") {
		items := checklist(o.Checklist)
		if items == nil {
			items = []model.ChecklistItem{}
		}
		p.Checklist = &items
	}
	return p, nil
}
