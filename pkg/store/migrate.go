package store

import (
	"encoding/json"
	"errors"

	"tableflip.dev/prasia/pkg/ident"
	"tableflip.dev/prasia/pkg/model"
)

// Keys written by schema version 3 and earlier.
const (
	LegacyKeyCharacters = "linea_todo_characters"
	LegacyKeyTasks      = "linea_todo_tasks"
	LegacyKeySettings   = "linea_todo_settings"
)

// DefaultAccountName names the account synthesized for legacy characters.
const DefaultAccountName = "기본 계정"

type meta struct {
	SchemaVersion int `json:"schemaVersion"`
}

// MigrationReport describes one migration run.
type MigrationReport struct {
	From      int
	To        int
	AccountID string
	// Counts of migrated legacy records.
	Characters int
	Tasks      int
	Settings   bool
	// Legacy keys left in place because they failed to decode or their
	// migrated data could not be written.
	Skipped []string
	// Incomplete is set when a write failed. The schema version is not
	// advanced, so the step runs again on the next Open.
	Incomplete bool
}

// Ran reports whether any migration step executed.
func (r MigrationReport) Ran() bool {
	return r.From < r.To
}

type migration struct {
	to  int
	run func(s *Store, report *MigrationReport)
}

// migrations are applied in order for every step whose target is above the
// stored version.
var migrations = []migration{
	{to: 4, run: migrateFlatToAccounts},
}

func (s *Store) migrate() MigrationReport {
	stored := Load(s, KeyMeta, meta{}).SchemaVersion
	report := MigrationReport{From: stored, To: stored}
	if stored >= model.SchemaVersion {
		return report
	}
	s.log.Info("migrating schema", "from", stored, "to", model.SchemaVersion)
	for _, m := range migrations {
		if m.to <= stored {
			continue
		}
		m.run(s, &report)
	}
	if report.Incomplete {
		s.log.Error("migration incomplete, legacy data kept", "skipped", report.Skipped)
		return report
	}
	report.To = model.SchemaVersion
	if !s.Save(KeyMeta, meta{SchemaVersion: model.SchemaVersion}) {
		s.log.Error("could not persist schema version", "version", model.SchemaVersion)
	}
	return report
}

// legacyCharacter is a flat character record without account ownership.
type legacyCharacter struct {
	model.Character
	Level *int              `json:"level"`
	Zones map[string]string `json:"zones"`
}

// migrateFlatToAccounts moves the flat character/task/settings collections
// under a synthesized default account. Each legacy key is handled on its own;
// a key that fails to decode, or whose data could not be written, is logged,
// left in place and skipped. Only keys whose data reached the current keys
// are erased.
func migrateFlatToAccounts(s *Store, report *MigrationReport) {
	var charWrite, taskWrite, settingsWrite error
	characters, charErr := decodeLegacy[legacyCharacter](s, LegacyKeyCharacters)
	tasks, taskErr := decodeLegacy[model.Task](s, LegacyKeyTasks)
	settings, hasSettings, settingsErr := decodeLegacySettings(s)

	if charErr != nil {
		report.Skipped = append(report.Skipped, LegacyKeyCharacters)
	} else if len(characters) > 0 {
		now := ident.Now()
		account := model.Account{
			ID:        ident.NewID(),
			Name:      DefaultAccountName,
			IsPrimary: true,
			Covenants: model.Covenants{Purchased: []string{}, Total: model.CovenantTotal},
			CreatedAt: now,
			UpdatedAt: now,
		}
		migrated := make([]model.Character, 0, len(characters))
		for _, lc := range characters {
			c := lc.Character
			c.AccountID = account.ID
			c.Level = 1
			if lc.Level != nil && *lc.Level >= 1 {
				c.Level = *lc.Level
			}
			c.Zones = lc.Zones
			if c.Zones == nil {
				c.Zones = model.DefaultZones()
			}
			migrated = append(migrated, c)
		}

		if settingsErr != nil {
			settings = model.DefaultSettings()
		}
		settings.SelectedAccountID = model.String(account.ID)

		accounts := append(loadRecords[model.Account](s, KeyAccounts), account)
		if s.saveAll(
			keyValue{KeyAccounts, accounts},
			keyValue{KeyCharacters, migrated},
			keyValue{KeySettings, settings},
		) {
			report.AccountID = account.ID
			report.Characters = len(migrated)
			report.Settings = true
		} else {
			charWrite = errLegacyWrite
			if hasSettings && settingsErr == nil {
				settingsWrite = errLegacyWrite
			}
		}
	}

	if taskErr != nil {
		report.Skipped = append(report.Skipped, LegacyKeyTasks)
	} else if len(tasks) > 0 {
		if s.Save(KeyTasks, tasks) {
			report.Tasks = len(tasks)
		} else {
			taskWrite = errLegacyWrite
		}
	}

	switch {
	case settingsErr != nil:
		report.Skipped = append(report.Skipped, LegacyKeySettings)
	case hasSettings && !report.Settings && settingsWrite == nil:
		// No characters to own, so only the preferences carry over.
		if report.Settings = s.Save(KeySettings, settings); !report.Settings {
			settingsWrite = errLegacyWrite
		}
	}

	for _, legacy := range []struct {
		key     string
		decode  error
		written error
	}{
		{LegacyKeyCharacters, charErr, charWrite},
		{LegacyKeyTasks, taskErr, taskWrite},
		{LegacyKeySettings, settingsErr, settingsWrite},
	} {
		if legacy.written != nil {
			report.Skipped = append(report.Skipped, legacy.key)
			report.Incomplete = true
		}
		if err := errors.Join(legacy.decode, legacy.written); err != nil {
			s.log.Warn("legacy data left in place", "key", legacy.key, "err", err)
			continue
		}
		s.Remove(legacy.key)
	}
}

var (
	errLegacyCorrupt = errors.New("store: legacy data does not decode")
	errLegacyWrite   = errors.New("store: migrated data could not be written")
)

// decodeLegacy decodes a legacy array strictly: one bad element fails the
// whole key.
func decodeLegacy[T any](s *Store, key string) ([]T, error) {
	data, err := s.backend.Read(key)
	if err != nil {
		if errors.Is(err, ErrNotExist) {
			return nil, nil
		}
		return nil, err
	}
	var out []T
	if err := json.Unmarshal(data, &out); err != nil {
		return nil, errors.Join(errLegacyCorrupt, err)
	}
	return out, nil
}

// decodeLegacySettings merges the legacy settings over the defaults.
func decodeLegacySettings(s *Store) (model.Settings, bool, error) {
	settings := model.DefaultSettings()
	data, err := s.backend.Read(LegacyKeySettings)
	if err != nil {
		if errors.Is(err, ErrNotExist) {
			return settings, false, nil
		}
		return settings, false, err
	}
	if err := json.Unmarshal(data, &settings); err != nil {
		return model.DefaultSettings(), true, errors.Join(errLegacyCorrupt, err)
	}
	return settings, true, nil
}
