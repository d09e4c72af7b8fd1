package store

import (
	"encoding/json"
	"errors"

	"tableflip.dev/prasia/pkg/model"
)

// GetSettings returns the stored settings merged over the defaults. The
// defaults are written on first read.
func (s *Store) GetSettings() model.Settings {
	settings := model.DefaultSettings()
	data, err := s.backend.Read(KeySettings)
	if err != nil {
		if errors.Is(err, ErrNotExist) {
			s.SaveSettings(settings)
		} else {
			s.log.Warn("read failed", "key", KeySettings, "err", err)
		}
		return settings
	}
	if err := json.Unmarshal(data, &settings); err != nil {
		s.log.Warn("corrupt value treated as absent", "key", KeySettings, "err", err)
		return model.DefaultSettings()
	}
	return settings
}

// SaveSettings replaces the settings record.
func (s *Store) SaveSettings(settings model.Settings) bool {
	return s.Save(KeySettings, settings)
}

// UpdateSettings merges p over the stored settings and persists the result.
func (s *Store) UpdateSettings(p model.SettingsPatch) model.Settings {
	settings := s.GetSettings()
	p.Apply(&settings)
	s.SaveSettings(settings)
	return settings.Clone()
}
