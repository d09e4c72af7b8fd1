package options

import (
	"github.com/spf13/cobra"

	"tableflip.dev/prasia/pkg/model"
)

// AccountOptions holds the account field flags.
type AccountOptions struct {
	Name      string
	Primary   bool
	Purchased []string
}

func AddAccountArgs(cmd *cobra.Command, o *AccountOptions) {
	cmd.Flags().StringVar(&o.Name, "name", "", "Account name.")
	cmd.Flags().BoolVar(&o.Primary, "primary", false, "Mark as the primary account.")
	cmd.Flags().StringSliceVar(&o.Purchased, "covenant", nil, "Purchased covenant faction, repeatable.")
}

// Patch builds an update from the flags the user actually set.
func (o *AccountOptions) Patch(cmd *cobra.Command) model.AccountPatch {
	changed := cmd.Flags().Changed
	var p model.AccountPatch
	if changed("name") {
		p.Name = model.String(o.Name)
	}
	if changed("primary") {
		p.IsPrimary = model.Bool(o.Primary)
	}
	if changed("covenant") {
		purchased := append([]string{}, o.Purchased...)
		p.Purchased = &purchased
	}
	return p
}

// Input builds a new account from the flags.
func (o *AccountOptions) Input() model.AccountInput {
	return model.AccountInput{
		Name:      o.Name,
		IsPrimary: o.Primary,
		Purchased: o.Purchased,
	}
}
