package store

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"time"

	"tableflip.dev/prasia/pkg/model"
)

// Document is the full export of a store.
type Document struct {
	Accounts   []model.Account   `json:"accounts"`
	Characters []model.Character `json:"characters"`
	Tasks      []model.Task      `json:"tasks"`
	Settings   model.Settings    `json:"settings"`
	ExportDate string            `json:"exportDate"`
	Version    int               `json:"version"`
}

// Export snapshots every collection.
func (s *Store) Export(now time.Time) Document {
	return Document{
		Accounts:   s.GetAccounts(),
		Characters: s.GetCharacters(""),
		Tasks:      s.GetTasks(""),
		Settings:   s.GetSettings(),
		ExportDate: now.UTC().Format("2006-01-02T15:04:05.000Z07:00"),
		Version:    model.SchemaVersion,
	}
}

// WriteExport writes the export document as indented JSON.
func (s *Store) WriteExport(w io.Writer, now time.Time) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	if err := enc.Encode(s.Export(now)); err != nil {
		return fmt.Errorf("store: write export: %w", err)
	}
	return nil
}

// BackupFileName names the export file for the day of now.
func BackupFileName(now time.Time) string {
	return fmt.Sprintf("prasia-todo-backup-%s.json", now.UTC().Format("2006-01-02"))
}

var importKeys = []struct {
	field string
	key   string
}{
	{"accounts", KeyAccounts},
	{"characters", KeyCharacters},
	{"tasks", KeyTasks},
	{"settings", KeySettings},
}

// Import overwrites each collection named at the top level of the document
// wholesale. Values are stored as given; nothing checks that references
// resolve. It returns the imported field names.
func (s *Store) Import(r io.Reader) ([]string, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return nil, fmt.Errorf("store: read import: %w", err)
	}
	var doc map[string]json.RawMessage
	if err := json.Unmarshal(data, &doc); err != nil {
		return nil, fmt.Errorf("store: parse import: %w", err)
	}

	pairs := make([]KV, 0, len(importKeys))
	imported := make([]string, 0, len(importKeys))
	for _, ik := range importKeys {
		raw, ok := doc[ik.field]
		if !ok || isFalsy(raw) {
			continue
		}
		pairs = append(pairs, KV{Key: ik.key, Value: bytes.TrimSpace(raw)})
		imported = append(imported, ik.field)
	}
	if len(pairs) == 0 {
		return imported, nil
	}
	if bw, ok := s.backend.(BatchWriter); ok {
		if err := bw.WriteBatch(pairs); err != nil {
			return nil, fmt.Errorf("store: import: %w", err)
		}
		return imported, nil
	}
	for _, p := range pairs {
		if err := s.backend.Write(p.Key, p.Value); err != nil {
			return nil, fmt.Errorf("store: import %s: %w", p.Key, err)
		}
	}
	return imported, nil
}

func isFalsy(raw json.RawMessage) bool {
	switch string(bytes.TrimSpace(raw)) {
	case "null", "false", "0", `""`:
		return true
	}
	return false
}
