// Package character runs the character subcommands.
package character

import (
	"context"
	"errors"
	"fmt"
	"io"
	"strings"

	"tableflip.dev/prasia/pkg/app"
	"tableflip.dev/prasia/pkg/model"
	"tableflip.dev/prasia/pkg/printers"
	"tableflip.dev/prasia/pkg/store"
)

var errNoStore = errors.New("character: no store")

// Add creates a character. An empty AccountID means the selected account.
type Add struct {
	Input model.CharacterInput

	Store *store.Store
	JSON  bool
	Out   io.Writer
}

func (n *Add) Do(ctx context.Context) error {
	if n.Store == nil {
		return errNoStore
	}
	if n.Input.Name == "" {
		return errors.New("character: name is required")
	}
	if n.Input.AccountID == "" {
		a, ok := n.Store.GetSelectedAccount()
		if !ok {
			return app.ErrNoAccount
		}
		n.Input.AccountID = a.ID
	} else if _, ok := n.Store.GetAccount(n.Input.AccountID); !ok {
		return fmt.Errorf("%w: %s", app.ErrAccountNotFound, n.Input.AccountID)
	}
	c := n.Store.AddCharacter(n.Input)
	pp := printers.PrettyPrint{Writer: n.Out}
	if n.JSON {
		return pp.JSON(c)
	}
	_, _ = fmt.Fprintf(pp.Out(), "Added character %s (%s)\n", c.Name, c.ID)
	return nil
}

// List prints the characters of the selected account, or of every account
// when All is set.
type List struct {
	All    bool
	ShowID bool

	Store *store.Store
	JSON  bool
	Out   io.Writer
}

func (n *List) Do(ctx context.Context) error {
	if n.Store == nil {
		return errNoStore
	}
	var chars []model.Character
	title := "Characters"
	if n.All {
		chars = n.Store.GetCharacters("")
	} else {
		session := app.New(n.Store)
		a, ok := session.SelectedAccount()
		if !ok {
			return app.ErrNoAccount
		}
		title = a.Name
		chars = session.Characters()
	}
	pp := printers.PrettyPrint{ShowID: n.ShowID, Writer: n.Out}
	if n.JSON {
		return pp.JSON(chars)
	}
	pp.TitleWithCount(title, len(chars))
	pp.Characters(chars)
	return nil
}

// Update patches a character. Zones are merged into the stored progress
// rather than replacing it.
type Update struct {
	ID    string
	Patch model.CharacterPatch

	Store *store.Store
	JSON  bool
	Out   io.Writer
}

func (n *Update) Do(ctx context.Context) error {
	if n.Store == nil {
		return errNoStore
	}
	current, ok := n.Store.GetCharacter(n.ID)
	if !ok {
		return fmt.Errorf("%w: %s", app.ErrCharacterNotFound, n.ID)
	}
	if n.Patch.AccountID != nil {
		if _, ok := n.Store.GetAccount(*n.Patch.AccountID); !ok {
			return fmt.Errorf("%w: %s", app.ErrAccountNotFound, *n.Patch.AccountID)
		}
	}
	if n.Patch.Zones != nil {
		merged := current.Clone().Zones
		if merged == nil {
			merged = model.DefaultZones()
		}
		for k, v := range n.Patch.Zones {
			merged[k] = v
		}
		n.Patch.Zones = merged
	}
	c, _ := n.Store.UpdateCharacter(n.ID, n.Patch)
	pp := printers.PrettyPrint{Writer: n.Out}
	if n.JSON {
		return pp.JSON(c)
	}
	_, _ = fmt.Fprintf(pp.Out(), "Updated character %s\n", c.Name)
	return nil
}

// ParseZones reads "region=progress" pairs. Regions must be one of
// model.Regions.
func ParseZones(pairs []string) (map[string]string, error) {
	if len(pairs) == 0 {
		return nil, nil
	}
	known := map[string]bool{}
	for _, r := range model.Regions() {
		known[string(r)] = true
	}
	zones := make(map[string]string, len(pairs))
	for _, p := range pairs {
		k, v, ok := strings.Cut(p, "=")
		k = strings.TrimSpace(k)
		if !ok || k == "" {
			return nil, fmt.Errorf("character: zone %q must look like region=progress", p)
		}
		if !known[k] {
			return nil, fmt.Errorf("character: unknown region %q", k)
		}
		zones[k] = strings.TrimSpace(v)
	}
	return zones, nil
}

// Delete removes a character and its tasks.
type Delete struct {
	ID string

	Store *store.Store
	Out   io.Writer
}

func (n *Delete) Do(ctx context.Context) error {
	if n.Store == nil {
		return errNoStore
	}
	c, ok := n.Store.GetCharacter(n.ID)
	if !ok {
		return fmt.Errorf("%w: %s", app.ErrCharacterNotFound, n.ID)
	}
	if !n.Store.DeleteCharacter(n.ID) {
		return fmt.Errorf("character: failed to delete %s", n.ID)
	}
	pp := printers.PrettyPrint{Writer: n.Out}
	_, _ = fmt.Fprintf(pp.Out(), "Deleted character %s\n", c.Name)
	return nil
}
