package commands

import (
	"context"
	"time"

	"github.com/spf13/cobra"

	base "github.com/n3wscott/cli-base/pkg/commands/options"

	"tableflip.dev/prasia/pkg/runner/report"
	"tableflip.dev/prasia/pkg/timeutil"
)

func addReport(topLevel *cobra.Command) {
	var last string

	cmd := &cobra.Command{
		Use:   "report",
		Short: "Display recently completed tasks grouped by character",
		Long: `Report lists completed tasks grouped by character within the specified time window.

Examples:
  prasia report
  prasia report --last 3d
  prasia report --last 1w2d
  prasia report --last 2일`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			cmd.SilenceUsage = true
			return run(func(e *env) error {
				r := report.Report{Last: last, Now: time.Now(), Store: e.Store, JSON: oo.JSON}
				return r.Do(context.Background())
			})
		},
	}

	cmd.Flags().StringVar(&last, "last", timeutil.DefaultWindow, "time window to include (for example 3d, 1w)")
	base.AddOutputArg(cmd, oo)
	topLevel.AddCommand(cmd)
}
