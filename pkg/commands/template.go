package commands

import (
	"context"
	"os"
	"strings"
	"time"

	"github.com/spf13/cobra"

	base "github.com/n3wscott/cli-base/pkg/commands/options"

	"tableflip.dev/prasia/pkg/runner/template"
)

func addTemplate(topLevel *cobra.Command) {
	cmd := &cobra.Command{
		Use:     "template",
		Aliases: []string{"templates", "tpl"},
		Short:   "Browse, apply and share task templates",
		Example: `
prasia template list
prasia template apply 일일 의뢰
prasia template clone 일일 의뢰 "내 일일"
`,
		RunE: func(cmd *cobra.Command, args []string) error {
			return cmd.Help()
		},
	}

	addTemplateList(cmd)
	addTemplateShow(cmd)
	addTemplateApply(cmd)
	addTemplatePreview(cmd)
	addTemplateClone(cmd)
	addTemplateDelete(cmd)
	addTemplateImport(cmd)
	addTemplateExport(cmd)

	topLevel.AddCommand(cmd)
}

func addTemplateList(topLevel *cobra.Command) {
	cmd := &cobra.Command{
		Use:     "list [search]",
		Aliases: []string{"ls"},
		Short:   "List templates, optionally matching a search",
		Args:    cobra.ArbitraryArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cmd.SilenceUsage = true
			return run(func(e *env) error {
				l := template.List{Search: strings.Join(args, " "), Registry: e.Registry, JSON: oo.JSON}
				return l.Do(context.Background())
			})
		},
	}
	base.AddOutputArg(cmd, oo)

	topLevel.AddCommand(cmd)
}

func addTemplateShow(topLevel *cobra.Command) {
	var toml bool
	cmd := &cobra.Command{
		Use:               "show <name>",
		Short:             "Show the tasks a template creates",
		Args:              cobra.MinimumNArgs(1),
		ValidArgsFunction: templateCompletions,
		RunE: func(cmd *cobra.Command, args []string) error {
			cmd.SilenceUsage = true
			return run(func(e *env) error {
				s := template.Show{Name: strings.Join(args, " "), TOML: toml, Registry: e.Registry, JSON: oo.JSON}
				return s.Do(context.Background())
			})
		},
	}
	cmd.Flags().BoolVar(&toml, "toml", false, "Print the template as a TOML pack.")
	base.AddOutputArg(cmd, oo)

	topLevel.AddCommand(cmd)
}

func addTemplateApply(topLevel *cobra.Command) {
	var characters []string
	cmd := &cobra.Command{
		Use:   "apply <name>",
		Short: "Create a template's tasks for characters",
		Long: `Apply creates one copy of each template task per character. Without
--character the active characters of the selected account are used.`,
		Args:              cobra.MinimumNArgs(1),
		ValidArgsFunction: templateCompletions,
		RunE: func(cmd *cobra.Command, args []string) error {
			cmd.SilenceUsage = true
			return run(func(e *env) error {
				a := template.Apply{
					Name:         strings.Join(args, " "),
					CharacterIDs: characters,
					Registry:     e.Registry,
					Store:        e.Store,
					Log:          e.Log,
					JSON:         oo.JSON,
				}
				return a.Do(context.Background())
			})
		},
	}
	cmd.Flags().StringSliceVarP(&characters, "character", "c", nil, "Character id, repeatable.")
	_ = cmd.RegisterFlagCompletionFunc("character", characterCompletions)
	base.AddOutputArg(cmd, oo)

	topLevel.AddCommand(cmd)
}

func addTemplatePreview(topLevel *cobra.Command) {
	var characters []string
	cmd := &cobra.Command{
		Use:               "preview <name>",
		Short:             "Show what applying a template would create",
		Args:              cobra.MinimumNArgs(1),
		ValidArgsFunction: templateCompletions,
		RunE: func(cmd *cobra.Command, args []string) error {
			cmd.SilenceUsage = true
			return run(func(e *env) error {
				p := template.Preview{
					Name:         strings.Join(args, " "),
					CharacterIDs: characters,
					Registry:     e.Registry,
					Store:        e.Store,
					JSON:         oo.JSON,
				}
				return p.Do(context.Background())
			})
		},
	}
	cmd.Flags().StringSliceVarP(&characters, "character", "c", nil, "Character id, repeatable.")
	_ = cmd.RegisterFlagCompletionFunc("character", characterCompletions)
	base.AddOutputArg(cmd, oo)

	topLevel.AddCommand(cmd)
}

func addTemplateClone(topLevel *cobra.Command) {
	cmd := &cobra.Command{
		Use:               "clone <original> <name>",
		Short:             "Copy a template under a new name",
		Args:              cobra.ExactArgs(2),
		ValidArgsFunction: templateCompletions,
		RunE: func(cmd *cobra.Command, args []string) error {
			cmd.SilenceUsage = true
			return run(func(e *env) error {
				c := template.Clone{Original: args[0], Name: args[1], Dir: e.Config.TemplateDir(), Registry: e.Registry}
				return c.Do(context.Background())
			})
		},
	}

	topLevel.AddCommand(cmd)
}

func addTemplateDelete(topLevel *cobra.Command) {
	cmd := &cobra.Command{
		Use:               "delete <name>",
		Aliases:           []string{"rm"},
		Short:             "Delete a user template; built in templates are protected",
		Args:              cobra.MinimumNArgs(1),
		ValidArgsFunction: templateCompletions,
		RunE: func(cmd *cobra.Command, args []string) error {
			cmd.SilenceUsage = true
			return run(func(e *env) error {
				d := template.Delete{Name: strings.Join(args, " "), Dir: e.Config.TemplateDir(), Registry: e.Registry}
				return d.Do(context.Background())
			})
		},
	}

	topLevel.AddCommand(cmd)
}

func addTemplateImport(topLevel *cobra.Command) {
	cmd := &cobra.Command{
		Use:   "import <file|->",
		Short: "Import an exported template document",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cmd.SilenceUsage = true
			return run(func(e *env) error {
				i := template.Import{Path: args[0], Dir: e.Config.TemplateDir(), In: os.Stdin, Registry: e.Registry}
				return i.Do(context.Background())
			})
		},
	}

	topLevel.AddCommand(cmd)
}

func addTemplateExport(topLevel *cobra.Command) {
	var path string
	cmd := &cobra.Command{
		Use:   "export <name>",
		Short: "Export a template as a shareable JSON document",
		Example: `
prasia template export 일일 의뢰
prasia template export 일일 의뢰 --file -
`,
		Args:              cobra.MinimumNArgs(1),
		ValidArgsFunction: templateCompletions,
		RunE: func(cmd *cobra.Command, args []string) error {
			cmd.SilenceUsage = true
			return run(func(e *env) error {
				x := template.Export{Name: strings.Join(args, " "), Path: path, Now: time.Now(), Registry: e.Registry}
				return x.Do(context.Background())
			})
		},
	}
	cmd.Flags().StringVarP(&path, "file", "f", "", `Output file, "-" for stdout; defaults to a dated file in the current directory.`)

	topLevel.AddCommand(cmd)
}
