package store

import (
	"tableflip.dev/prasia/pkg/ident"
	"tableflip.dev/prasia/pkg/model"
)

// GetAccounts returns every account in stored order.
func (s *Store) GetAccounts() []model.Account {
	return loadRecords[model.Account](s, KeyAccounts)
}

// SaveAccounts replaces the account collection.
func (s *Store) SaveAccounts(accounts []model.Account) bool {
	return s.Save(KeyAccounts, accounts)
}

// GetAccount looks up one account.
func (s *Store) GetAccount(id string) (model.Account, bool) {
	for _, a := range s.GetAccounts() {
		if a.ID == id {
			return a, true
		}
	}
	return model.Account{}, false
}

// AddAccount creates and persists an account.
func (s *Store) AddAccount(in model.AccountInput) model.Account {
	now := ident.Now()
	purchased := in.Purchased
	if purchased == nil {
		purchased = []string{}
	}
	account := model.Account{
		ID:        ident.NewID(),
		Name:      in.Name,
		IsPrimary: in.IsPrimary,
		Covenants: model.Covenants{
			Purchased: append([]string(nil), purchased...),
			Total:     model.CovenantTotal,
		},
		CreatedAt: now,
		UpdatedAt: now,
	}
	accounts := append(s.GetAccounts(), account)
	s.SaveAccounts(accounts)
	return account.Clone()
}

// UpdateAccount merges p over the account with id. It reports false when no
// such account exists.
func (s *Store) UpdateAccount(id string, p model.AccountPatch) (model.Account, bool) {
	accounts := s.GetAccounts()
	for i := range accounts {
		if accounts[i].ID != id {
			continue
		}
		p.Apply(&accounts[i])
		accounts[i].UpdatedAt = ident.Now()
		s.SaveAccounts(accounts)
		return accounts[i].Clone(), true
	}
	return model.Account{}, false
}

// DeleteAccount removes the account, its characters and every task whose
// owning character no longer exists. It reports false when no account was
// removed or the write failed.
func (s *Store) DeleteAccount(id string) bool {
	accounts := s.GetAccounts()
	keptAccounts := make([]model.Account, 0, len(accounts))
	for _, a := range accounts {
		if a.ID != id {
			keptAccounts = append(keptAccounts, a)
		}
	}
	if len(keptAccounts) == len(accounts) {
		return false
	}

	characters := s.GetCharacters("")
	keptCharacters := make([]model.Character, 0, len(characters))
	owners := make(map[string]struct{}, len(characters))
	for _, c := range characters {
		if c.AccountID == id {
			continue
		}
		keptCharacters = append(keptCharacters, c)
		owners[c.ID] = struct{}{}
	}

	tasks := s.GetTasks("")
	keptTasks := make([]model.Task, 0, len(tasks))
	for _, t := range tasks {
		if _, ok := owners[t.CharacterID]; ok {
			keptTasks = append(keptTasks, t)
		}
	}

	return s.saveAll(
		keyValue{KeyAccounts, keptAccounts},
		keyValue{KeyCharacters, keptCharacters},
		keyValue{KeyTasks, keptTasks},
	)
}

// GetSelectedAccount resolves settings.selectedAccountId, falling back to the
// first account. It reports false when there are no accounts.
func (s *Store) GetSelectedAccount() (model.Account, bool) {
	settings := s.GetSettings()
	accounts := s.GetAccounts()
	if settings.SelectedAccountID != nil {
		for _, a := range accounts {
			if a.ID == *settings.SelectedAccountID {
				return a, true
			}
		}
	}
	if len(accounts) > 0 {
		return accounts[0], true
	}
	return model.Account{}, false
}

// SelectAccount records id as the selected account without checking that it
// exists.
func (s *Store) SelectAccount(id string) bool {
	settings := s.GetSettings()
	settings.SelectedAccountID = model.String(id)
	return s.SaveSettings(settings)
}
