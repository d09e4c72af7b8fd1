package info

import (
	"context"
	"fmt"
	"io"
	"os"

	"tableflip.dev/prasia/pkg/printers"
	"tableflip.dev/prasia/pkg/store"
	"tableflip.dev/prasia/pkg/template"
)

type Info struct {
	Config   store.Config
	Store    *store.Store
	Registry *template.Registry
	Out      io.Writer
}

func (n *Info) Do(ctx context.Context) error {
	pp := printers.PrettyPrint{Writer: n.Out}
	out := pp.Out()

	if override := os.Getenv("PRASIA_CONFIG_PATH"); override != "" {
		_, _ = fmt.Fprintln(out, "PRASIA_CONFIG_PATH found on env, using ", override)
	} else {
		_, _ = fmt.Fprintln(out, "PRASIA_CONFIG_PATH env var not set")
	}

	if n.Config == nil {
		var err error
		n.Config, err = store.LoadConfig()
		if err != nil {
			return err
		}
	}

	_, _ = fmt.Fprintln(out, "Config.path: ", n.Config.BasePath())
	_, _ = fmt.Fprintln(out, "Config.backend: ", n.Config.Backend())
	if dir := n.Config.TemplateDir(); dir != "" {
		_, _ = fmt.Fprintln(out, "Config.templates: ", dir)
	}
	_, _ = fmt.Fprintln(out, "Config.log-level: ", n.Config.LogLevel())

	if n.Store == nil {
		return fmt.Errorf("failed to open the store")
	}

	_, _ = fmt.Fprintf(out, "Schema version: %d\n", n.Store.SchemaVersion())
	if m := n.Store.Migration(); m.Ran() {
		_, _ = fmt.Fprintf(out, "Migrated %d -> %d: %d characters, %d tasks\n", m.From, m.To, m.Characters, m.Tasks)
	}

	_, _ = fmt.Fprintf(out, "Keys:\n")
	foundKeys := 0
	for _, k := range n.Store.Backend().Keys() {
		_, _ = fmt.Fprintf(out, "  %s\n", k)
		foundKeys++
	}
	if foundKeys == 0 {
		_, _ = fmt.Fprintf(out, "  %s\n", "no keys")
	}

	_, _ = fmt.Fprintf(out, "Records: %d accounts, %d characters, %d tasks\n",
		len(n.Store.GetAccounts()), len(n.Store.GetCharacters("")), len(n.Store.GetTasks("")))
	if n.Registry != nil {
		st := n.Registry.Stats()
		_, _ = fmt.Fprintf(out, "Templates: %d (%d tasks)\n", st.TotalTemplates, st.TotalTasks)
	}
	return nil
}
