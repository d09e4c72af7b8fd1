// Package key provides CLI helpers to display the status and type legend.
package key

import (
	"context"
	"fmt"
	"io"

	"github.com/fatih/color"
	"github.com/gosuri/uitable"

	"tableflip.dev/prasia/pkg/glyph"
	"tableflip.dev/prasia/pkg/printers"
)

// Key prints the glyph legend.
type Key struct {
	Out io.Writer
}

// Do renders the status and type keys.
func (k *Key) Do(ctx context.Context) error {
	pp := printers.PrettyPrint{Writer: k.Out}
	_, _ = fmt.Fprintln(pp.Out(), "")

	k.Key(pp.Out(), glyph.Defaults(), false)
	_, _ = fmt.Fprintln(pp.Out(), "")
	k.Key(pp.Out(), glyph.Defaults(), true)
	_, _ = fmt.Fprintf(pp.Out(), "\n%s  priority, once per level\n\n", glyph.Priority)
	return nil
}

// Key renders a glyph table; when types is true, task types are shown.
func (k *Key) Key(w io.Writer, glyfs []glyph.Glyph, types bool) {
	bold := color.New(color.Bold)

	tbl := uitable.New()
	tbl.Separator = "  "
	if types {
		tbl.AddRow(bold.Sprint("Types"), bold.Sprint("Flag"), bold.Sprint("Meaning"))
	} else {
		tbl.AddRow(bold.Sprint("Status"), bold.Sprint("Flag"), bold.Sprint("Meaning"))
	}
	for _, v := range glyfs {
		if types == v.Type {
			tbl.AddRow(v.Symbol, v.Key, v.Meaning)
		}
	}
	tbl.RightAlign(0)

	_, _ = fmt.Fprintln(w, tbl)
}
