// Package model defines the persisted record shapes for accounts, characters,
// tasks and settings, along with their enumerations and patch types.
package model

import (
	"fmt"
	"strings"
)

// SchemaVersion is the current persisted schema version.
const SchemaVersion = 4

// CovenantTotal is the fixed number of covenant factions.
const CovenantTotal = 16

// DefaultColor is assigned to characters created without a color.
const DefaultColor = "#6366f1"

// Region names a stronghold region.
type Region string

const (
	RegionKron    Region = "크론"
	RegionLainsof Region = "라인소프"
	RegionSigil   Region = "시길"
	RegionAminta  Region = "아민타"
	RegionRondo   Region = "론도"
)

// Regions returns the five fixed regions in display order.
func Regions() []Region {
	return []Region{RegionKron, RegionLainsof, RegionSigil, RegionAminta, RegionRondo}
}

// DefaultZones returns a progress map with every region at "0".
func DefaultZones() map[string]string {
	zones := make(map[string]string, 5)
	for _, r := range Regions() {
		zones[string(r)] = "0"
	}
	return zones
}

// Factions lists the covenant faction identifiers.
var Factions = []string{
	"카시미르연합", "아슬라니스", "황혼의형제들", "신기루연대",
	"타라프", "채움의탑", "얽힘공단", "직조공길드",
	"붉은닻", "파도몰이", "깃털펜", "백야수",
	"수풀민", "묘지기", "안개지기", "사이노드",
}

// TaskType classifies a task.
type TaskType string

const (
	TypeRequest  TaskType = "의뢰"
	TypeHunt     TaskType = "토벌"
	TypeFavor    TaskType = "우호도"
	TypePurchase TaskType = "구매"
	TypeOther    TaskType = "기타"
)

// TaskTypes returns all task types.
func TaskTypes() []TaskType {
	return []TaskType{TypeRequest, TypeHunt, TypeFavor, TypePurchase, TypeOther}
}

var typeAliases = map[string]TaskType{
	"request":  TypeRequest,
	"hunt":     TypeHunt,
	"favor":    TypeFavor,
	"purchase": TypePurchase,
	"other":    TypeOther,
}

// ParseTaskType accepts either the stored value or its English alias.
func ParseTaskType(raw string) (TaskType, error) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return TypeOther, nil
	}
	if t, ok := typeAliases[strings.ToLower(raw)]; ok {
		return t, nil
	}
	for _, t := range TaskTypes() {
		if string(t) == raw {
			return t, nil
		}
	}
	return "", fmt.Errorf("model: unknown task type %q", raw)
}

// Alias returns the English name of the type.
func (t TaskType) Alias() string {
	for alias, tt := range typeAliases {
		if tt == t {
			return alias
		}
	}
	return string(t)
}

// Status is the task lifecycle state.
type Status string

const (
	StatusTodo     Status = "todo"
	StatusDoing    Status = "doing"
	StatusDone     Status = "done"
	StatusArchived Status = "archived"
)

// Statuses returns all statuses.
func Statuses() []Status {
	return []Status{StatusTodo, StatusDoing, StatusDone, StatusArchived}
}

// ParseStatus validates a status value.
func ParseStatus(raw string) (Status, error) {
	s := Status(strings.ToLower(strings.TrimSpace(raw)))
	for _, candidate := range Statuses() {
		if candidate == s {
			return s, nil
		}
	}
	return "", fmt.Errorf("model: unknown status %q", raw)
}

// Completed reports whether the status no longer needs attention.
func (s Status) Completed() bool {
	return s == StatusDone || s == StatusArchived
}

// FavorStage is the favor progression of a favor task.
type FavorStage string

const (
	FavorNone     FavorStage = ""
	FavorBond     FavorStage = "결속"
	FavorFaith    FavorStage = "신의"
	FavorCovenant FavorStage = "맹약"
)

// ParseFavorStage validates a favor stage; the empty string is allowed.
func ParseFavorStage(raw string) (FavorStage, error) {
	f := FavorStage(strings.TrimSpace(raw))
	switch f {
	case FavorNone, FavorBond, FavorFaith, FavorCovenant:
		return f, nil
	}
	return "", fmt.Errorf("model: unknown favor stage %q", raw)
}

// Valid tobel steps.
const (
	TobelStepFirst = 1
	TobelStepLast  = 15
)
