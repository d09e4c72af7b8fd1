package commands

import (
	"bytes"
	"fmt"
	"github.com/spf13/cobra"
	"os/exec"
)

func addUpgrade(topLevel *cobra.Command) {
	cmd := &cobra.Command{
		Use:   "upgrade",
		Short: "Upgrade prasia cli.",
		Example: `
prasia upgrade
`,
		RunE: func(cmd *cobra.Command, _ []string) error {
			cmd.SilenceUsage = true
			ex := exec.Command("go", "install", "tableflip.dev/prasia/cmd/prasia@latest")
			var out bytes.Buffer
			ex.Stdout = &out
			if err := ex.Run(); err != nil {
				return oo.HandleError(err)
			}
			fmt.Printf("%s\n%s", ex.String(), out.String())
			return nil
		},
	}

	topLevel.AddCommand(cmd)
}
