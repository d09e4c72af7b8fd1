package commands

import (
	"context"
	"strings"
	"time"

	"github.com/spf13/cobra"

	base "github.com/n3wscott/cli-base/pkg/commands/options"

	"tableflip.dev/prasia/pkg/commands/options"
	"tableflip.dev/prasia/pkg/model"
	"tableflip.dev/prasia/pkg/runner/task"
)

func addTask(topLevel *cobra.Command) {
	cmd := &cobra.Command{
		Use:     "task",
		Aliases: []string{"tasks", "t"},
		Short:   "Manage quests, hunts and other tasks",
		Example: `
prasia task add 크론 의뢰 전달 -t 의뢰 -r 크론 --due 2d
prasia task list --status todo --sort priority
prasia task move <id> doing
`,
		RunE: func(cmd *cobra.Command, args []string) error {
			return cmd.Help()
		},
	}

	addTaskAdd(cmd)
	addTaskList(cmd)
	addTaskShow(cmd)
	addTaskUpdate(cmd)
	addTaskMove(cmd)
	addTaskCheck(cmd)
	addTaskDelete(cmd)

	topLevel.AddCommand(cmd)

	addMoveShortcut(topLevel, "complete", "Mark tasks done", model.StatusDone)
	addMoveShortcut(topLevel, "archive", "Move tasks off the board", model.StatusArchived)
}

func addTaskAdd(topLevel *cobra.Command) {
	to := &options.TaskOptions{}
	cmd := &cobra.Command{
		Use:   "add <title>",
		Short: "Add a task to a character",
		Long: `Add a task. Without --character the task goes to the character the
view is filtered on, or to the only active character of the account.`,
		Example: `
prasia task add 토벌 15단계 -t hunt --tobel-step 15 -p 3
prasia task add 보급품 구매 -t 구매 --check 포션 --check 화살
`,
		Args: cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cmd.SilenceUsage = true
			to.Title = strings.Join(args, " ")
			in, err := to.Input(time.Now())
			if err != nil {
				return oo.HandleError(err)
			}
			return run(func(e *env) error {
				a := task.Add{Input: in, Store: e.Store, JSON: oo.JSON}
				return a.Do(context.Background())
			})
		},
	}
	options.AddTaskArgs(cmd, to)
	_ = cmd.RegisterFlagCompletionFunc("character", characterCompletions)
	base.AddOutputArg(cmd, oo)

	topLevel.AddCommand(cmd)
}

func addTaskList(topLevel *cobra.Command) {
	ido := &options.IDOptions{}
	l := task.List{}
	cmd := &cobra.Command{
		Use:     "list [search]",
		Aliases: []string{"ls"},
		Short:   "List the tasks of the selected account",
		Long: `List tasks. Flags override the saved view state for this listing only;
use "prasia view" to change what is saved.`,
		Args: cobra.ArbitraryArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cmd.SilenceUsage = true
			l.Search = strings.Join(args, " ")
			l.ShowID = ido.ShowID
			return run(func(e *env) error {
				l.Store = e.Store
				l.JSON = oo.JSON
				return l.Do(context.Background())
			})
		},
	}
	cmd.Flags().StringVar(&l.Status, "status", "", "Status filter: all, todo, doing, done, archived.")
	cmd.Flags().StringVarP(&l.CharacterID, "character", "c", "", `Character id, or "all".`)
	cmd.Flags().StringVar(&l.Sort, "sort", "", "Sort: updated, priority, due, region.")
	_ = cmd.RegisterFlagCompletionFunc("character", characterCompletions)
	options.AddShowIDArgs(cmd, ido)
	base.AddOutputArg(cmd, oo)

	topLevel.AddCommand(cmd)
}

func addTaskShow(topLevel *cobra.Command) {
	ido := &options.IDOptions{}
	cmd := &cobra.Command{
		Use:               "show <id>",
		Short:             "Show one task with notes and checklist",
		Args:              cobra.ExactArgs(1),
		ValidArgsFunction: taskCompletions,
		RunE: func(cmd *cobra.Command, args []string) error {
			cmd.SilenceUsage = true
			return run(func(e *env) error {
				s := task.Show{ID: args[0], ShowID: ido.ShowID, Store: e.Store, JSON: oo.JSON}
				return s.Do(context.Background())
			})
		},
	}
	options.AddShowIDArgs(cmd, ido)
	base.AddOutputArg(cmd, oo)

	topLevel.AddCommand(cmd)
}

func addTaskUpdate(topLevel *cobra.Command) {
	to := &options.TaskOptions{}
	cmd := &cobra.Command{
		Use:   "update <id>",
		Short: "Change a task",
		Example: `
prasia task update <id> --priority 4 --clear-due
prasia task update <id> --notify "2026-10-14 21:00"
`,
		Args:              cobra.ExactArgs(1),
		ValidArgsFunction: taskCompletions,
		RunE: func(cmd *cobra.Command, args []string) error {
			cmd.SilenceUsage = true
			p, err := to.Patch(cmd, time.Now())
			if err != nil {
				return oo.HandleError(err)
			}
			return run(func(e *env) error {
				u := task.Update{ID: args[0], Patch: p, Store: e.Store, JSON: oo.JSON}
				return u.Do(context.Background())
			})
		},
	}
	options.AddTaskUpdateArgs(cmd, to)
	_ = cmd.RegisterFlagCompletionFunc("character", characterCompletions)
	base.AddOutputArg(cmd, oo)

	topLevel.AddCommand(cmd)
}

func addTaskMove(topLevel *cobra.Command) {
	cmd := &cobra.Command{
		Use:       "move <id>... <status>",
		Aliases:   []string{"mv"},
		Short:     "Move tasks to todo, doing, done or archived",
		Args:      cobra.MinimumNArgs(2),
		ValidArgs: []string{"todo", "doing", "done", "archived"},
		RunE: func(cmd *cobra.Command, args []string) error {
			cmd.SilenceUsage = true
			last := len(args) - 1
			return run(func(e *env) error {
				m := task.Move{IDs: args[:last], Status: args[last], Store: e.Store, JSON: oo.JSON}
				return m.Do(context.Background())
			})
		},
	}
	base.AddOutputArg(cmd, oo)

	topLevel.AddCommand(cmd)
}

func addMoveShortcut(topLevel *cobra.Command, use, short string, status model.Status) {
	cmd := &cobra.Command{
		Use:               use + " <id>...",
		Short:             short,
		Args:              cobra.MinimumNArgs(1),
		ValidArgsFunction: taskCompletions,
		RunE: func(cmd *cobra.Command, args []string) error {
			cmd.SilenceUsage = true
			return run(func(e *env) error {
				m := task.Move{IDs: args, Status: string(status), Store: e.Store, JSON: oo.JSON}
				return m.Do(context.Background())
			})
		},
	}
	base.AddOutputArg(cmd, oo)

	topLevel.AddCommand(cmd)
}

func addTaskCheck(topLevel *cobra.Command) {
	cmd := &cobra.Command{
		Use:   "check <task-id> <item-id>",
		Short: "Toggle a checklist item",
		Example: `
prasia task show <task-id> --show-id
prasia task check <task-id> <item-id>
`,
		Args: cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			cmd.SilenceUsage = true
			return run(func(e *env) error {
				c := task.Check{TaskID: args[0], ItemID: args[1], Store: e.Store, JSON: oo.JSON}
				return c.Do(context.Background())
			})
		},
	}
	base.AddOutputArg(cmd, oo)

	topLevel.AddCommand(cmd)
}

func addTaskDelete(topLevel *cobra.Command) {
	cmd := &cobra.Command{
		Use:               "delete <id>...",
		Aliases:           []string{"rm"},
		Short:             "Delete tasks",
		Args:              cobra.MinimumNArgs(1),
		ValidArgsFunction: taskCompletions,
		RunE: func(cmd *cobra.Command, args []string) error {
			cmd.SilenceUsage = true
			return run(func(e *env) error {
				d := task.Delete{IDs: args, Store: e.Store}
				return d.Do(context.Background())
			})
		},
	}

	topLevel.AddCommand(cmd)
}
