package store

import (
	"tableflip.dev/prasia/pkg/ident"
	"tableflip.dev/prasia/pkg/model"
)

// GetCharacters returns the characters owned by accountID, or every character
// in stored order when accountID is empty.
func (s *Store) GetCharacters(accountID string) []model.Character {
	characters := loadRecords[model.Character](s, KeyCharacters)
	if accountID == "" {
		return characters
	}
	scoped := make([]model.Character, 0, len(characters))
	for _, c := range characters {
		if c.AccountID == accountID {
			scoped = append(scoped, c)
		}
	}
	return scoped
}

// SaveCharacters replaces the character collection.
func (s *Store) SaveCharacters(characters []model.Character) bool {
	return s.Save(KeyCharacters, characters)
}

// GetCharacter looks up one character.
func (s *Store) GetCharacter(id string) (model.Character, bool) {
	for _, c := range s.GetCharacters("") {
		if c.ID == id {
			return c, true
		}
	}
	return model.Character{}, false
}

// AddCharacter creates and persists a character. Zones always start at "0".
func (s *Store) AddCharacter(in model.CharacterInput) model.Character {
	now := ident.Now()
	c := model.Character{
		ID:            ident.NewID(),
		AccountID:     in.AccountID,
		Name:          in.Name,
		Server:        in.Server,
		ServerChannel: in.ServerChannel,
		Color:         in.Color,
		IsActive:      true,
		Level:         in.Level,
		Zones:         model.DefaultZones(),
		CreatedAt:     now,
		UpdatedAt:     now,
	}
	if c.Color == "" {
		c.Color = model.DefaultColor
	}
	if in.IsActive != nil {
		c.IsActive = *in.IsActive
	}
	if c.Level < 1 {
		c.Level = 1
	}
	characters := append(s.GetCharacters(""), c)
	s.SaveCharacters(characters)
	return c.Clone()
}

// UpdateCharacter merges p over the character with id. It reports false when
// no such character exists.
func (s *Store) UpdateCharacter(id string, p model.CharacterPatch) (model.Character, bool) {
	characters := s.GetCharacters("")
	for i := range characters {
		if characters[i].ID != id {
			continue
		}
		p.Apply(&characters[i])
		characters[i].UpdatedAt = ident.Now()
		s.SaveCharacters(characters)
		return characters[i].Clone(), true
	}
	return model.Character{}, false
}

// DeleteCharacter removes the character and its tasks. It reports false when
// no character was removed or the write failed.
func (s *Store) DeleteCharacter(id string) bool {
	characters := s.GetCharacters("")
	kept := make([]model.Character, 0, len(characters))
	for _, c := range characters {
		if c.ID != id {
			kept = append(kept, c)
		}
	}
	if len(kept) == len(characters) {
		return false
	}

	tasks := s.GetTasks("")
	keptTasks := make([]model.Task, 0, len(tasks))
	for _, t := range tasks {
		if t.CharacterID != id {
			keptTasks = append(keptTasks, t)
		}
	}

	return s.saveAll(
		keyValue{KeyCharacters, kept},
		keyValue{KeyTasks, keptTasks},
	)
}
