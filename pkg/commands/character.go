package commands

import (
	"context"

	"github.com/spf13/cobra"

	base "github.com/n3wscott/cli-base/pkg/commands/options"

	"tableflip.dev/prasia/pkg/commands/options"
	"tableflip.dev/prasia/pkg/runner/character"
)

func addCharacter(topLevel *cobra.Command) {
	cmd := &cobra.Command{
		Use:     "character",
		Aliases: []string{"char", "characters"},
		Short:   "Manage the characters of an account",
		Example: `
prasia character add 기사 --server 아우리엘 --channel 01
prasia character update <id> --zone 크론=3 --level 52
`,
		RunE: func(cmd *cobra.Command, args []string) error {
			return cmd.Help()
		},
	}

	addCharacterAdd(cmd)
	addCharacterList(cmd)
	addCharacterUpdate(cmd)
	addCharacterDelete(cmd)

	topLevel.AddCommand(cmd)
}

func addCharacterAdd(topLevel *cobra.Command) {
	co := &options.CharacterOptions{}
	cmd := &cobra.Command{
		Use:   "add <name>",
		Short: "Add a character to the selected account",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cmd.SilenceUsage = true
			if len(args) == 1 {
				co.Name = args[0]
			}
			return run(func(e *env) error {
				a := character.Add{Input: co.Input(), Store: e.Store, JSON: oo.JSON}
				return a.Do(context.Background())
			})
		},
	}
	options.AddCharacterArgs(cmd, co)
	_ = cmd.RegisterFlagCompletionFunc("account", accountCompletions)
	base.AddOutputArg(cmd, oo)

	topLevel.AddCommand(cmd)
}

func addCharacterList(topLevel *cobra.Command) {
	ido := &options.IDOptions{}
	var all bool
	cmd := &cobra.Command{
		Use:     "list",
		Aliases: []string{"ls"},
		Short:   "List the characters of the selected account",
		Args:    cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			cmd.SilenceUsage = true
			return run(func(e *env) error {
				l := character.List{All: all, ShowID: ido.ShowID, Store: e.Store, JSON: oo.JSON}
				return l.Do(context.Background())
			})
		},
	}
	cmd.Flags().BoolVar(&all, "all", false, "List characters of every account.")
	options.AddShowIDArgs(cmd, ido)
	base.AddOutputArg(cmd, oo)

	topLevel.AddCommand(cmd)
}

func addCharacterUpdate(topLevel *cobra.Command) {
	co := &options.CharacterOptions{}
	cmd := &cobra.Command{
		Use:               "update <id>",
		Short:             "Change a character; zones merge into the stored progress",
		Args:              cobra.ExactArgs(1),
		ValidArgsFunction: characterCompletions,
		RunE: func(cmd *cobra.Command, args []string) error {
			cmd.SilenceUsage = true
			zones, err := character.ParseZones(co.Zones)
			if err != nil {
				return oo.HandleError(err)
			}
			return run(func(e *env) error {
				p := co.Patch(cmd)
				p.Zones = zones
				u := character.Update{ID: args[0], Patch: p, Store: e.Store, JSON: oo.JSON}
				return u.Do(context.Background())
			})
		},
	}
	options.AddCharacterArgs(cmd, co)
	options.AddZoneArgs(cmd, co)
	_ = cmd.RegisterFlagCompletionFunc("account", accountCompletions)
	base.AddOutputArg(cmd, oo)

	topLevel.AddCommand(cmd)
}

func addCharacterDelete(topLevel *cobra.Command) {
	cmd := &cobra.Command{
		Use:               "delete <id>",
		Aliases:           []string{"rm"},
		Short:             "Delete a character and its tasks",
		Args:              cobra.ExactArgs(1),
		ValidArgsFunction: characterCompletions,
		RunE: func(cmd *cobra.Command, args []string) error {
			cmd.SilenceUsage = true
			return run(func(e *env) error {
				d := character.Delete{ID: args[0], Store: e.Store}
				return d.Do(context.Background())
			})
		},
	}

	topLevel.AddCommand(cmd)
}
