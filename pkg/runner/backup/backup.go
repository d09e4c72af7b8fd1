// Package backup runs the whole-store export, import and reset commands.
package backup

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
	"time"

	"tableflip.dev/prasia/pkg/app"
	"tableflip.dev/prasia/pkg/printers"
	"tableflip.dev/prasia/pkg/store"
)

// Export writes the backup document. An empty Path writes the dated backup
// file into Dir; "-" writes to Out.
type Export struct {
	Path string
	Dir  string
	Now  time.Time

	Store *store.Store
	Out   io.Writer
}

func (n *Export) Do(ctx context.Context) error {
	if n.Store == nil {
		return app.ErrNoStore
	}
	if n.Now.IsZero() {
		n.Now = time.Now()
	}
	pp := printers.PrettyPrint{Writer: n.Out}
	if n.Path == "-" {
		return n.Store.WriteExport(pp.Out(), n.Now)
	}
	path := n.Path
	if path == "" {
		path = filepath.Join(n.Dir, store.BackupFileName(n.Now))
	}
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("backup: %w", err)
	}
	if err := n.Store.WriteExport(f, n.Now); err != nil {
		_ = f.Close()
		return err
	}
	if err := f.Close(); err != nil {
		return err
	}
	_, _ = fmt.Fprintf(pp.Out(), "Exported backup to %s\n", path)
	return nil
}

// Import replaces the collections present in a backup document read from
// Path, or from In when Path is "-".
type Import struct {
	Path string
	In   io.Reader

	Store *store.Store
	JSON  bool
	Out   io.Writer
}

func (n *Import) Do(ctx context.Context) error {
	if n.Store == nil {
		return app.ErrNoStore
	}
	r := n.In
	if n.Path != "-" {
		f, err := os.Open(n.Path)
		if err != nil {
			return fmt.Errorf("backup: %w", err)
		}
		defer f.Close()
		r = f
	}
	if r == nil {
		return errors.New("backup: nothing to import")
	}
	imported, err := n.Store.Import(r)
	if err != nil {
		return err
	}
	pp := printers.PrettyPrint{Writer: n.Out}
	if n.JSON {
		return pp.JSON(map[string][]string{"imported": imported})
	}
	if len(imported) == 0 {
		_, _ = fmt.Fprintln(pp.Out(), "Nothing imported.")
		return nil
	}
	_, _ = fmt.Fprintf(pp.Out(), "Imported %s\n", strings.Join(imported, ", "))
	return nil
}

// Reset removes every stored collection.
type Reset struct {
	Confirmed bool

	Store *store.Store
	Out   io.Writer
}

func (n *Reset) Do(ctx context.Context) error {
	if n.Store == nil {
		return app.ErrNoStore
	}
	if !n.Confirmed {
		return errors.New("backup: reset deletes all data; pass --yes to confirm")
	}
	if !n.Store.ClearAll() {
		return errors.New("backup: reset failed, see log")
	}
	pp := printers.PrettyPrint{Writer: n.Out}
	_, _ = fmt.Fprintln(pp.Out(), "All data removed.")
	return nil
}
