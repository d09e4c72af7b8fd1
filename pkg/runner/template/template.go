// Package template runs the template subcommands.
package template

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"time"

	"github.com/charmbracelet/log"

	"tableflip.dev/prasia/pkg/app"
	"tableflip.dev/prasia/pkg/printers"
	"tableflip.dev/prasia/pkg/store"
	tmpl "tableflip.dev/prasia/pkg/template"
)

var errNoRegistry = errors.New("template: no registry")

type List struct {
	Search string

	Registry *tmpl.Registry
	JSON     bool
	Out      io.Writer
}

func (n *List) Do(ctx context.Context) error {
	if n.Registry == nil {
		return errNoRegistry
	}
	stats := n.Registry.Stats()
	if n.Search != "" {
		matched := tmpl.NewEmptyRegistry()
		for _, t := range n.Registry.Search(n.Search) {
			matched.Register(t)
		}
		stats = matched.Stats()
	}
	pp := printers.PrettyPrint{Writer: n.Out}
	if n.JSON {
		return pp.JSON(stats)
	}
	pp.Templates(stats)
	return nil
}

// Show prints one template. TOML prints it in the pack format.
type Show struct {
	Name string
	TOML bool

	Registry *tmpl.Registry
	JSON     bool
	Out      io.Writer
}

func (n *Show) Do(ctx context.Context) error {
	if n.Registry == nil {
		return errNoRegistry
	}
	t, ok := n.Registry.Get(n.Name)
	if !ok {
		return fmt.Errorf("%w: %s", tmpl.ErrNotFound, n.Name)
	}
	pp := printers.PrettyPrint{Writer: n.Out}
	switch {
	case n.TOML:
		return tmpl.WritePack(pp.Out(), t)
	case n.JSON:
		return pp.JSON(t)
	}
	pp.Template(t)
	return nil
}

// Targets resolves the characters a template is applied to: the given ids,
// or the selected account's active characters when none are given.
func Targets(s *store.Store, ids []string) ([]string, error) {
	if len(ids) > 0 {
		return ids, nil
	}
	active := app.New(s).ActiveCharacters()
	if len(active) == 0 {
		return nil, fmt.Errorf("%w: pass character ids or add an active character", tmpl.ErrNoCharacter)
	}
	out := make([]string, 0, len(active))
	for _, c := range active {
		out = append(out, c.ID)
	}
	return out, nil
}

type Apply struct {
	Name         string
	CharacterIDs []string

	Registry *tmpl.Registry
	Store    *store.Store
	Log      *log.Logger
	JSON     bool
	Out      io.Writer
}

func (n *Apply) Do(ctx context.Context) error {
	ids, err := Targets(n.Store, n.CharacterIDs)
	if err != nil {
		return err
	}
	engine := tmpl.Engine{Registry: n.Registry, Store: n.Store, Log: n.Log}
	result := engine.Apply(n.Name, ids)
	if err := result.Err(); err != nil {
		return err
	}
	pp := printers.PrettyPrint{Writer: n.Out}
	if n.JSON {
		return pp.JSON(result)
	}
	pp.Applied(result)
	return nil
}

type Preview struct {
	Name         string
	CharacterIDs []string

	Registry *tmpl.Registry
	Store    *store.Store
	JSON     bool
	Out      io.Writer
}

func (n *Preview) Do(ctx context.Context) error {
	ids, err := Targets(n.Store, n.CharacterIDs)
	if err != nil {
		return err
	}
	engine := tmpl.Engine{Registry: n.Registry, Store: n.Store}
	p, err := engine.Preview(n.Name, ids)
	if err != nil {
		return err
	}
	pp := printers.PrettyPrint{Writer: n.Out}
	if n.JSON {
		return pp.JSON(p)
	}
	pp.Preview(p)
	return nil
}

// Clone copies a template. With Dir set the copy is saved as a pack so it
// outlives the process.
type Clone struct {
	Original string
	Name     string
	Dir      string

	Registry *tmpl.Registry
	Out      io.Writer
}

func (n *Clone) Do(ctx context.Context) error {
	if n.Registry == nil {
		return errNoRegistry
	}
	t, err := n.Registry.Clone(n.Original, n.Name)
	if err != nil {
		return err
	}
	return saved(n.Out, n.Registry, n.Dir, t.Name, "Cloned")
}

func saved(out io.Writer, r *tmpl.Registry, dir, name, verb string) error {
	pp := printers.PrettyPrint{Writer: out}
	if dir == "" {
		_, _ = fmt.Fprintf(pp.Out(), "%s %q (not saved: no templates directory configured)\n", verb, name)
		return nil
	}
	path, err := r.SavePack(dir, name)
	if err != nil {
		return err
	}
	_, _ = fmt.Fprintf(pp.Out(), "%s %q into %s\n", verb, name, path)
	return nil
}

type Delete struct {
	Name string
	Dir  string

	Registry *tmpl.Registry
	Out      io.Writer
}

func (n *Delete) Do(ctx context.Context) error {
	if n.Registry == nil {
		return errNoRegistry
	}
	ok, err := n.Registry.Delete(n.Name)
	if err != nil {
		return err
	}
	if !ok {
		return fmt.Errorf("%w: %s", tmpl.ErrNotFound, n.Name)
	}
	if n.Dir != "" {
		if err := tmpl.RemovePack(n.Dir, n.Name); err != nil {
			return err
		}
	}
	pp := printers.PrettyPrint{Writer: n.Out}
	_, _ = fmt.Fprintf(pp.Out(), "Deleted template %q\n", n.Name)
	return nil
}

// Import reads an exported template document from Path, or from In when
// Path is "-".
type Import struct {
	Path string
	Dir  string
	In   io.Reader

	Registry *tmpl.Registry
	Out      io.Writer
}

func (n *Import) Do(ctx context.Context) error {
	if n.Registry == nil {
		return errNoRegistry
	}
	r := n.In
	if n.Path != "-" {
		f, err := os.Open(n.Path)
		if err != nil {
			return fmt.Errorf("template: %w", err)
		}
		defer f.Close()
		r = f
	}
	if r == nil {
		return errors.New("template: nothing to import")
	}
	t, err := n.Registry.Import(r)
	if err != nil {
		return err
	}
	return saved(n.Out, n.Registry, n.Dir, t.Name, "Imported")
}

// Export writes a template document. An empty Path writes it to Dir under
// the dated export file name; "-" writes to Out.
type Export struct {
	Name string
	Path string
	Dir  string
	Now  time.Time

	Registry *tmpl.Registry
	Out      io.Writer
}

func (n *Export) Do(ctx context.Context) error {
	if n.Registry == nil {
		return errNoRegistry
	}
	if n.Now.IsZero() {
		n.Now = time.Now()
	}
	pp := printers.PrettyPrint{Writer: n.Out}
	if n.Path == "-" {
		return n.Registry.Export(n.Name, pp.Out(), n.Now)
	}
	path := n.Path
	if path == "" {
		path = filepath.Join(n.Dir, tmpl.ExportFileName(n.Name, n.Now))
	}
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("template: %w", err)
	}
	if err := n.Registry.Export(n.Name, f, n.Now); err != nil {
		_ = f.Close()
		_ = os.Remove(path)
		return err
	}
	if err := f.Close(); err != nil {
		return err
	}
	_, _ = fmt.Fprintf(pp.Out(), "Exported %q to %s\n", n.Name, path)
	return nil
}
