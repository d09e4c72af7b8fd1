package commands

import (
	"context"
	"os"
	"os/signal"
	"strconv"
	"syscall"
	"time"

	"github.com/spf13/cobra"

	base "github.com/n3wscott/cli-base/pkg/commands/options"

	"tableflip.dev/prasia/pkg/runner/notify"
)

func addNotify(topLevel *cobra.Command) {
	cmd := &cobra.Command{
		Use:     "notify",
		Aliases: []string{"reminders"},
		Short:   "Task reminders",
		Example: `
prasia notify watch --interval 30s
prasia notify snooze <task-id> 15
prasia notify quiet --start 01:00 --end 08:00
`,
		RunE: func(cmd *cobra.Command, args []string) error {
			return cmd.Help()
		},
	}

	addNotifyCheck(cmd)
	addNotifyWatch(cmd)
	addNotifySnooze(cmd)
	addNotifyToggle(cmd, "on", true)
	addNotifyToggle(cmd, "off", false)
	addNotifyQuiet(cmd)

	topLevel.AddCommand(cmd)
}

func addNotifyCheck(topLevel *cobra.Command) {
	cmd := &cobra.Command{
		Use:   "check",
		Short: "Print the reminders that are due now",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			cmd.SilenceUsage = true
			return run(func(e *env) error {
				c := notify.Check{Now: time.Now(), Store: e.Store, Log: e.Log, JSON: oo.JSON}
				return c.Do(context.Background())
			})
		},
	}
	base.AddOutputArg(cmd, oo)

	topLevel.AddCommand(cmd)
}

func addNotifyWatch(topLevel *cobra.Command) {
	var interval time.Duration
	cmd := &cobra.Command{
		Use:   "watch",
		Short: "Keep checking for due reminders until interrupted",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			cmd.SilenceUsage = true
			ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
			defer stop()
			return run(func(e *env) error {
				w := notify.Watch{Interval: interval, Store: e.Store, Log: e.Log, JSON: oo.JSON}
				return w.Do(ctx)
			})
		},
	}
	cmd.Flags().DurationVar(&interval, "interval", time.Minute, "How often to check.")
	base.AddOutputArg(cmd, oo)

	topLevel.AddCommand(cmd)
}

func addNotifySnooze(topLevel *cobra.Command) {
	cmd := &cobra.Command{
		Use:               "snooze <task-id> [minutes]",
		Short:             "Remind again later; minutes default to 5",
		Args:              cobra.RangeArgs(1, 2),
		ValidArgsFunction: taskCompletions,
		RunE: func(cmd *cobra.Command, args []string) error {
			cmd.SilenceUsage = true
			minutes := 5
			if len(args) == 2 {
				var err error
				if minutes, err = strconv.Atoi(args[1]); err != nil {
					return oo.HandleError(err)
				}
			}
			return run(func(e *env) error {
				s := notify.Snooze{TaskID: args[0], Minutes: minutes, Now: time.Now(), Store: e.Store}
				return s.Do(context.Background())
			})
		},
	}

	topLevel.AddCommand(cmd)
}

func addNotifyToggle(topLevel *cobra.Command, use string, enabled bool) {
	var character string
	cmd := &cobra.Command{
		Use:   use,
		Short: "Turn reminders " + use + ", for everyone or one character",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			cmd.SilenceUsage = true
			return run(func(e *env) error {
				t := notify.Toggle{CharacterID: character, Enabled: enabled, Store: e.Store}
				return t.Do(context.Background())
			})
		},
	}
	cmd.Flags().StringVarP(&character, "character", "c", "", "Only this character.")
	_ = cmd.RegisterFlagCompletionFunc("character", characterCompletions)

	topLevel.AddCommand(cmd)
}

func addNotifyQuiet(topLevel *cobra.Command) {
	q := notify.Quiet{}
	cmd := &cobra.Command{
		Use:   "quiet",
		Short: "Set the hours during which reminders wait",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			cmd.SilenceUsage = true
			return run(func(e *env) error {
				q.Store = e.Store
				return q.Do(context.Background())
			})
		},
	}
	cmd.Flags().StringVar(&q.Start, "start", "", "Start as HH:MM.")
	cmd.Flags().StringVar(&q.End, "end", "", "End as HH:MM.")

	topLevel.AddCommand(cmd)
}
