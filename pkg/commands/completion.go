package commands

import (
	"os"
	"strings"

	"github.com/spf13/cobra"
)

func addCompletions(topLevel *cobra.Command) {
	cmd := &cobra.Command{
		Use:   "completion",
		Short: "Generates bash completion scripts",
		Long: `To load completion run

. <(prasia completion)

To configure your bash shell to load completions for each session add to your bashrc

# ~/.bashrc or ~/.profile
. <(prasia completion)
`,
		Run: func(cmd *cobra.Command, args []string) {
			_ = topLevel.GenBashCompletion(os.Stdout)
		},
	}

	topLevel.AddCommand(cmd)
}

func completeWith(list func(e *env) []string) func(*cobra.Command, []string, string) ([]string, cobra.ShellCompDirective) {
	return func(_ *cobra.Command, _ []string, toComplete string) ([]string, cobra.ShellCompDirective) {
		e, err := load()
		if err != nil {
			return nil, cobra.ShellCompDirectiveNoFileComp
		}
		defer e.Close()
		var out []string
		for _, v := range list(e) {
			if strings.HasPrefix(v, toComplete) {
				out = append(out, v)
			}
		}
		return out, cobra.ShellCompDirectiveNoFileComp
	}
}

var characterCompletions = completeWith(func(e *env) []string {
	var ids []string
	for _, c := range e.Store.GetCharacters("") {
		ids = append(ids, c.ID+"\t"+c.Name)
	}
	return ids
})

var accountCompletions = completeWith(func(e *env) []string {
	var ids []string
	for _, a := range e.Store.GetAccounts() {
		ids = append(ids, a.ID+"\t"+a.Name)
	}
	return ids
})

var templateCompletions = completeWith(func(e *env) []string {
	var names []string
	for _, t := range e.Registry.All() {
		names = append(names, t.Name)
	}
	return names
})

var taskCompletions = completeWith(func(e *env) []string {
	var ids []string
	for _, t := range e.Store.GetTasks("") {
		ids = append(ids, t.ID+"\t"+t.Title)
	}
	return ids
})
