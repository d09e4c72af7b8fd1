package commands

import (
	"context"

	"github.com/spf13/cobra"

	"tableflip.dev/prasia/pkg/runner/info"
)

func addInfo(topLevel *cobra.Command) {
	cmd := &cobra.Command{
		Use:   "info",
		Short: "Details about the stored data and where it lives.",
		Example: `
prasia info
`,
		RunE: func(cmd *cobra.Command, _ []string) error {
			cmd.SilenceUsage = true
			return run(func(e *env) error {
				s := info.Info{
					Config:   e.Config,
					Store:    e.Store,
					Registry: e.Registry,
				}
				return s.Do(context.Background())
			})
		},
	}

	topLevel.AddCommand(cmd)
}
