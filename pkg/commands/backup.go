package commands

import (
	"context"
	"os"
	"time"

	"github.com/spf13/cobra"

	base "github.com/n3wscott/cli-base/pkg/commands/options"

	"tableflip.dev/prasia/pkg/runner/backup"
)

func addExport(topLevel *cobra.Command) {
	var path string
	cmd := &cobra.Command{
		Use:   "export",
		Short: "Write a JSON backup of accounts, characters, tasks and settings",
		Example: `
prasia export
prasia export --file - > backup.json
`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			cmd.SilenceUsage = true
			return run(func(e *env) error {
				x := backup.Export{Path: path, Now: time.Now(), Store: e.Store}
				return x.Do(context.Background())
			})
		},
	}
	cmd.Flags().StringVarP(&path, "file", "f", "", `Output file, "-" for stdout; defaults to a dated file in the current directory.`)

	topLevel.AddCommand(cmd)
}

func addImport(topLevel *cobra.Command) {
	cmd := &cobra.Command{
		Use:   "import <file|->",
		Short: "Replace stored data with the collections found in a backup",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cmd.SilenceUsage = true
			return run(func(e *env) error {
				i := backup.Import{Path: args[0], In: os.Stdin, Store: e.Store, JSON: oo.JSON}
				return i.Do(context.Background())
			})
		},
	}
	base.AddOutputArg(cmd, oo)

	topLevel.AddCommand(cmd)
}

func addReset(topLevel *cobra.Command) {
	var yes bool
	cmd := &cobra.Command{
		Use:   "reset",
		Short: "Delete all stored data",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			cmd.SilenceUsage = true
			return run(func(e *env) error {
				r := backup.Reset{Confirmed: yes, Store: e.Store}
				return r.Do(context.Background())
			})
		},
	}
	cmd.Flags().BoolVar(&yes, "yes", false, "Confirm deleting everything.")

	topLevel.AddCommand(cmd)
}
