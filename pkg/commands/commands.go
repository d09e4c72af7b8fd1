package commands

import (
	"github.com/spf13/cobra"

	base "github.com/n3wscott/cli-base/pkg/commands/options"
)

var (
	oo = &base.OutputOptions{}

	logLevel  string
	logFormat string
)

func New() *cobra.Command {

	cmd := &cobra.Command{
		Use:   "prasia",
		Short: base.Wrap80("Track Prasia quests, hunts and covenant progress across accounts and characters."),
		RunE: func(cmd *cobra.Command, args []string) error {
			return cmd.Help()
		},
	}

	cmd.PersistentFlags().StringVar(&logLevel, "log-level", "",
		"Override the configured log level: debug, info, warn, error.")
	cmd.PersistentFlags().StringVar(&logFormat, "log-format", "text",
		"Log format: text, logfmt or json.")

	AddCommands(cmd)
	return cmd
}

func AddCommands(topLevel *cobra.Command) {
	addAccount(topLevel)
	addCharacter(topLevel)
	addTask(topLevel)
	addBoard(topLevel)
	addCalendar(topLevel)
	addDashboard(topLevel)
	addView(topLevel)
	addReport(topLevel)
	addTemplate(topLevel)
	addExport(topLevel)
	addImport(topLevel)
	addReset(topLevel)
	addNotify(topLevel)
	addKey(topLevel)
	addInfo(topLevel)
	addVersion(topLevel)
	addUpgrade(topLevel)
	addCompletions(topLevel)
}
