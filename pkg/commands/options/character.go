package options

import (
	"github.com/spf13/cobra"

	"tableflip.dev/prasia/pkg/model"
)

// CharacterOptions holds the character field flags.
type CharacterOptions struct {
	Account       string
	Name          string
	Server        string
	ServerChannel string
	Color         string
	Active        bool
	Level         int
	Zones         []string
}

func AddCharacterArgs(cmd *cobra.Command, o *CharacterOptions) {
	cmd.Flags().StringVarP(&o.Account, "account", "a", "", "Owning account id; defaults to the selected account.")
	cmd.Flags().StringVar(&o.Name, "name", "", "Character name.")
	cmd.Flags().StringVar(&o.Server, "server", "", "Server name.")
	cmd.Flags().StringVar(&o.ServerChannel, "channel", "", "Server channel.")
	cmd.Flags().StringVar(&o.Color, "color", "", "Display color, like #6366f1.")
	cmd.Flags().BoolVar(&o.Active, "active", true, "Whether the character is played.")
	cmd.Flags().IntVar(&o.Level, "level", 0, "Character level.")
}

func AddZoneArgs(cmd *cobra.Command, o *CharacterOptions) {
	cmd.Flags().StringSliceVar(&o.Zones, "zone", nil, `Zone progress as region=value, like --zone 크론=3. Repeatable.`)
}

// Input builds a new character from the flags.
func (o *CharacterOptions) Input() model.CharacterInput {
	return model.CharacterInput{
		AccountID:     o.Account,
		Name:          o.Name,
		Server:        o.Server,
		ServerChannel: o.ServerChannel,
		Color:         o.Color,
		IsActive:      model.Bool(o.Active),
		Level:         o.Level,
	}
}

// Patch builds an update from the flags the user actually set. Zones are
// parsed by the caller.
func (o *CharacterOptions) Patch(cmd *cobra.Command) model.CharacterPatch {
	changed := cmd.Flags().Changed
	var p model.CharacterPatch
	if changed("account") {
		p.AccountID = model.String(o.Account)
	}
	if changed("name") {
		p.Name = model.String(o.Name)
	}
	if changed("server") {
		p.Server = model.String(o.Server)
	}
	if changed("channel") {
		p.ServerChannel = model.String(o.ServerChannel)
	}
	if changed("color") {
		p.Color = model.String(o.Color)
	}
	if changed("active") {
		p.IsActive = model.Bool(o.Active)
	}
	if changed("level") {
		p.Level = model.Int(o.Level)
	}
	return p
}
