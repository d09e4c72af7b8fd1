package app

import (
	"time"

	"tableflip.dev/prasia/pkg/model"
)

// ReportItem is a completed task and the time it was last touched.
type ReportItem struct {
	Task        model.Task `json:"task"`
	CompletedAt time.Time  `json:"completedAt"`
}

// ReportSection groups completed tasks by character.
type ReportSection struct {
	Character model.Character `json:"character"`
	Tasks     []ReportItem    `json:"tasks"`
}

// ReportResult is a completed-task report for a time window.
type ReportResult struct {
	Since    time.Time       `json:"since"`
	Until    time.Time       `json:"until"`
	Sections []ReportSection `json:"sections"`
	Total    int             `json:"total"`
}

// Report lists the selected account's done tasks whose updatedAt falls within
// the bounds. Sections follow character order, tasks follow stored order.
func (s *Session) Report(since, until time.Time) ReportResult {
	if since.After(until) {
		since, until = until, since
	}
	result := ReportResult{Since: since, Until: until}

	grouped := make(map[string][]ReportItem)
	for _, t := range s.Tasks() {
		if t.Status != model.StatusDone {
			continue
		}
		at := time.UnixMilli(t.UpdatedAt)
		if at.Before(since) || at.After(until) {
			continue
		}
		grouped[t.CharacterID] = append(grouped[t.CharacterID], ReportItem{Task: t, CompletedAt: at})
		result.Total++
	}
	if result.Total == 0 {
		return result
	}

	for _, c := range s.Characters() {
		items, ok := grouped[c.ID]
		if !ok {
			continue
		}
		result.Sections = append(result.Sections, ReportSection{Character: c, Tasks: items})
	}
	return result
}
