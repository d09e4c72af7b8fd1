package commands

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/spf13/cobra"

	base "github.com/n3wscott/cli-base/pkg/commands/options"

	"tableflip.dev/prasia/pkg/commands/options"
	"tableflip.dev/prasia/pkg/runner/view"
)

func addBoard(topLevel *cobra.Command) {
	ido := &options.IDOptions{}
	cmd := &cobra.Command{
		Use:   "board [search]",
		Short: "Show the todo, doing and done columns",
		Example: `
prasia board
prasia board 크론
`,
		Args: cobra.ArbitraryArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cmd.SilenceUsage = true
			return run(func(e *env) error {
				b := view.Board{
					Search: strings.Join(args, " "),
					ShowID: ido.ShowID,
					Store:  e.Store,
					JSON:   oo.JSON,
				}
				return b.Do(context.Background())
			})
		},
	}
	options.AddShowIDArgs(cmd, ido)
	base.AddOutputArg(cmd, oo)

	topLevel.AddCommand(cmd)
}

func addCalendar(topLevel *cobra.Command) {
	var month string
	cmd := &cobra.Command{
		Use:     "calendar",
		Aliases: []string{"cal"},
		Short:   "Show due tasks on a month grid",
		Example: `
prasia calendar
prasia calendar --month 2026-11
`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			cmd.SilenceUsage = true
			now := time.Now()
			on := now
			if month != "" {
				var err error
				if on, err = time.ParseInLocation("2006-01", month, now.Location()); err != nil {
					return oo.HandleError(fmt.Errorf("--month must look like 2026-10: %w", err))
				}
			}
			return run(func(e *env) error {
				c := view.Calendar{On: on, Now: now, Store: e.Store, JSON: oo.JSON}
				return c.Do(context.Background())
			})
		},
	}
	cmd.Flags().StringVar(&month, "month", "", "Month to show as YYYY-MM; defaults to this month.")
	base.AddOutputArg(cmd, oo)

	topLevel.AddCommand(cmd)
}

func addDashboard(topLevel *cobra.Command) {
	cmd := &cobra.Command{
		Use:     "dashboard",
		Aliases: []string{"dash"},
		Short:   "Show progress per character and today's completions",
		Args:    cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			cmd.SilenceUsage = true
			return run(func(e *env) error {
				d := view.Dashboard{Now: time.Now(), Store: e.Store, JSON: oo.JSON}
				return d.Do(context.Background())
			})
		},
	}
	base.AddOutputArg(cmd, oo)

	topLevel.AddCommand(cmd)
}

func addView(topLevel *cobra.Command) {
	v := view.View{}
	cmd := &cobra.Command{
		Use:   "view",
		Short: "Show or change the saved view, filter, sort and character",
		Example: `
prasia view
prasia view --filter todo --sort due
prasia view --character all
`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			cmd.SilenceUsage = true
			return run(func(e *env) error {
				v.Store = e.Store
				v.JSON = oo.JSON
				return v.Do(context.Background())
			})
		},
	}
	cmd.Flags().StringVar(&v.View, "view", "", "View: board, list, calendar.")
	cmd.Flags().StringVar(&v.Filter, "filter", "", "Status filter: all, todo, doing, done, archived.")
	cmd.Flags().StringVar(&v.Sort, "sort", "", "Sort: updated, priority, due, region.")
	cmd.Flags().StringVarP(&v.Character, "character", "c", "", `Character id, or "all".`)
	_ = cmd.RegisterFlagCompletionFunc("character", characterCompletions)
	base.AddOutputArg(cmd, oo)

	topLevel.AddCommand(cmd)
}
