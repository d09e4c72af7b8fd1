// Package account runs the account subcommands.
package account

import (
	"context"
	"errors"
	"fmt"
	"io"

	"tableflip.dev/prasia/pkg/app"
	"tableflip.dev/prasia/pkg/model"
	"tableflip.dev/prasia/pkg/printers"
	"tableflip.dev/prasia/pkg/store"
)

var errNoStore = errors.New("account: no store")

type Add struct {
	Input model.AccountInput
	// Select makes the new account the selected one.
	Select bool

	Store *store.Store
	JSON  bool
	Out   io.Writer
}

func (n *Add) Do(ctx context.Context) error {
	if n.Store == nil {
		return errNoStore
	}
	if n.Input.Name == "" {
		return errors.New("account: name is required")
	}
	a := n.Store.AddAccount(n.Input)
	if n.Select {
		if err := app.New(n.Store).Select(a.ID); err != nil {
			return err
		}
	}
	pp := printers.PrettyPrint{Writer: n.Out}
	if n.JSON {
		return pp.JSON(a)
	}
	_, _ = fmt.Fprintf(pp.Out(), "Added account %s (%s)\n", a.Name, a.ID)
	return nil
}

type List struct {
	ShowID bool

	Store *store.Store
	JSON  bool
	Out   io.Writer
}

func (n *List) Do(ctx context.Context) error {
	if n.Store == nil {
		return errNoStore
	}
	accounts := n.Store.GetAccounts()
	pp := printers.PrettyPrint{ShowID: n.ShowID, Writer: n.Out}
	if n.JSON {
		return pp.JSON(accounts)
	}
	selected, _ := n.Store.GetSelectedAccount()
	counts := map[string]int{}
	for _, c := range n.Store.GetCharacters("") {
		counts[c.AccountID]++
	}
	pp.TitleWithCount("Accounts", len(accounts))
	pp.Accounts(accounts, selected.ID, counts)
	return nil
}

type Update struct {
	ID    string
	Patch model.AccountPatch

	Store *store.Store
	JSON  bool
	Out   io.Writer
}

func (n *Update) Do(ctx context.Context) error {
	if n.Store == nil {
		return errNoStore
	}
	if n.Patch.Purchased != nil {
		if err := validFactions(*n.Patch.Purchased); err != nil {
			return err
		}
	}
	a, ok := n.Store.UpdateAccount(n.ID, n.Patch)
	if !ok {
		return fmt.Errorf("%w: %s", app.ErrAccountNotFound, n.ID)
	}
	pp := printers.PrettyPrint{Writer: n.Out}
	if n.JSON {
		return pp.JSON(a)
	}
	_, _ = fmt.Fprintf(pp.Out(), "Updated account %s\n", a.Name)
	return nil
}

func validFactions(purchased []string) error {
	known := make(map[string]bool, len(model.Factions))
	for _, f := range model.Factions {
		known[f] = true
	}
	for _, p := range purchased {
		if !known[p] {
			return fmt.Errorf("account: unknown covenant faction %q", p)
		}
	}
	return nil
}

// Delete removes an account together with its characters and their tasks.
type Delete struct {
	ID string

	Store *store.Store
	Out   io.Writer
}

func (n *Delete) Do(ctx context.Context) error {
	if n.Store == nil {
		return errNoStore
	}
	a, ok := n.Store.GetAccount(n.ID)
	if !ok {
		return fmt.Errorf("%w: %s", app.ErrAccountNotFound, n.ID)
	}
	if !n.Store.DeleteAccount(n.ID) {
		return fmt.Errorf("account: failed to delete %s", n.ID)
	}
	pp := printers.PrettyPrint{Writer: n.Out}
	_, _ = fmt.Fprintf(pp.Out(), "Deleted account %s\n", a.Name)
	return nil
}

type Select struct {
	ID string

	Store *store.Store
	Out   io.Writer
}

func (n *Select) Do(ctx context.Context) error {
	if err := app.New(n.Store).Select(n.ID); err != nil {
		return err
	}
	a, _ := n.Store.GetAccount(n.ID)
	pp := printers.PrettyPrint{Writer: n.Out}
	_, _ = fmt.Fprintf(pp.Out(), "Selected account %s\n", a.Name)
	return nil
}
