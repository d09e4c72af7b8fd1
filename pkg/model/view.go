package model

import (
	"fmt"
	"strings"
)

// View is a presentation of the task collection.
type View string

const (
	ViewBoard    View = "board"
	ViewList     View = "list"
	ViewCalendar View = "calendar"
)

// Views returns all views in menu order.
func Views() []View {
	return []View{ViewBoard, ViewList, ViewCalendar}
}

// ParseView validates a view name. Empty means board.
func ParseView(raw string) (View, error) {
	v := View(strings.ToLower(strings.TrimSpace(raw)))
	if v == "" {
		return ViewBoard, nil
	}
	for _, candidate := range Views() {
		if candidate == v {
			return v, nil
		}
	}
	return "", fmt.Errorf("model: unknown view %q", raw)
}

// FilterAll disables the status filter.
const FilterAll = "all"

// ParseFilter validates a status filter: "all" (or empty) or a status.
func ParseFilter(raw string) (string, error) {
	f := strings.ToLower(strings.TrimSpace(raw))
	if f == "" || f == FilterAll {
		return FilterAll, nil
	}
	s, err := ParseStatus(f)
	if err != nil {
		return "", fmt.Errorf("model: unknown filter %q", raw)
	}
	return string(s), nil
}

// AllCharacters disables the character filter.
const AllCharacters = "all"

// SortKey orders the task list.
type SortKey string

const (
	SortDue      SortKey = "due"
	SortPriority SortKey = "priority"
	SortRegion   SortKey = "region"
	SortUpdated  SortKey = "updated"
)

// SortKeys returns all sort keys.
func SortKeys() []SortKey {
	return []SortKey{SortDue, SortPriority, SortRegion, SortUpdated}
}

// ParseSortKey validates a sort key. Empty means updated.
func ParseSortKey(raw string) (SortKey, error) {
	k := SortKey(strings.ToLower(strings.TrimSpace(raw)))
	if k == "" {
		return SortUpdated, nil
	}
	for _, candidate := range SortKeys() {
		if candidate == k {
			return k, nil
		}
	}
	return "", fmt.Errorf("model: unknown sort %q", raw)
}
