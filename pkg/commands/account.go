package commands

import (
	"context"

	"github.com/spf13/cobra"

	base "github.com/n3wscott/cli-base/pkg/commands/options"

	"tableflip.dev/prasia/pkg/commands/options"
	"tableflip.dev/prasia/pkg/runner/account"
)

func addAccount(topLevel *cobra.Command) {
	cmd := &cobra.Command{
		Use:     "account",
		Aliases: []string{"accounts"},
		Short:   "Manage game accounts",
		Example: `
prasia account add main --primary
prasia account select <id>
`,
		RunE: func(cmd *cobra.Command, args []string) error {
			return cmd.Help()
		},
	}

	addAccountAdd(cmd)
	addAccountList(cmd)
	addAccountUpdate(cmd)
	addAccountDelete(cmd)
	addAccountSelect(cmd)

	topLevel.AddCommand(cmd)
}

func addAccountAdd(topLevel *cobra.Command) {
	ao := &options.AccountOptions{}
	var selectIt bool
	cmd := &cobra.Command{
		Use:   "add <name>",
		Short: "Add an account",
		Example: `
prasia account add 본계정 --primary --select
`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cmd.SilenceUsage = true
			if len(args) == 1 {
				ao.Name = args[0]
			}
			return run(func(e *env) error {
				a := account.Add{
					Input:  ao.Input(),
					Select: selectIt,
					Store:  e.Store,
					JSON:   oo.JSON,
				}
				return a.Do(context.Background())
			})
		},
	}
	options.AddAccountArgs(cmd, ao)
	cmd.Flags().BoolVar(&selectIt, "select", false, "Select the new account.")
	base.AddOutputArg(cmd, oo)

	topLevel.AddCommand(cmd)
}

func addAccountList(topLevel *cobra.Command) {
	ido := &options.IDOptions{}
	cmd := &cobra.Command{
		Use:     "list",
		Aliases: []string{"ls"},
		Short:   "List accounts, marking the selected one",
		Args:    cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			cmd.SilenceUsage = true
			return run(func(e *env) error {
				l := account.List{
					ShowID: ido.ShowID,
					Store:  e.Store,
					JSON:   oo.JSON,
				}
				return l.Do(context.Background())
			})
		},
	}
	options.AddShowIDArgs(cmd, ido)
	base.AddOutputArg(cmd, oo)

	topLevel.AddCommand(cmd)
}

func addAccountUpdate(topLevel *cobra.Command) {
	ao := &options.AccountOptions{}
	cmd := &cobra.Command{
		Use:   "update <id>",
		Short: "Change an account",
		Example: `
prasia account update <id> --covenant 결사대 --covenant 수호대
`,
		Args:              cobra.ExactArgs(1),
		ValidArgsFunction: accountCompletions,
		RunE: func(cmd *cobra.Command, args []string) error {
			cmd.SilenceUsage = true
			return run(func(e *env) error {
				u := account.Update{
					ID:    args[0],
					Patch: ao.Patch(cmd),
					Store: e.Store,
					JSON:  oo.JSON,
				}
				return u.Do(context.Background())
			})
		},
	}
	options.AddAccountArgs(cmd, ao)
	base.AddOutputArg(cmd, oo)

	topLevel.AddCommand(cmd)
}

func addAccountDelete(topLevel *cobra.Command) {
	cmd := &cobra.Command{
		Use:               "delete <id>",
		Aliases:           []string{"rm"},
		Short:             "Delete an account with its characters and their tasks",
		Args:              cobra.ExactArgs(1),
		ValidArgsFunction: accountCompletions,
		RunE: func(cmd *cobra.Command, args []string) error {
			cmd.SilenceUsage = true
			return run(func(e *env) error {
				d := account.Delete{ID: args[0], Store: e.Store}
				return d.Do(context.Background())
			})
		},
	}

	topLevel.AddCommand(cmd)
}

func addAccountSelect(topLevel *cobra.Command) {
	cmd := &cobra.Command{
		Use:               "select <id>",
		Aliases:           []string{"use"},
		Short:             "Select the account the other commands work on",
		Args:              cobra.ExactArgs(1),
		ValidArgsFunction: accountCompletions,
		RunE: func(cmd *cobra.Command, args []string) error {
			cmd.SilenceUsage = true
			return run(func(e *env) error {
				s := account.Select{ID: args[0], Store: e.Store}
				return s.Do(context.Background())
			})
		},
	}

	topLevel.AddCommand(cmd)
}
