// Package report prints the tasks completed within a recent time window.
package report

import (
	"context"
	"io"
	"time"

	"tableflip.dev/prasia/pkg/app"
	"tableflip.dev/prasia/pkg/printers"
	"tableflip.dev/prasia/pkg/store"
	"tableflip.dev/prasia/pkg/timeutil"
)

type Report struct {
	// Last is a window such as "3d" or "1w2d"; empty means one week.
	Last string
	Now  time.Time

	Store *store.Store
	JSON  bool
	Out   io.Writer
}

func (n *Report) Do(ctx context.Context) error {
	if n.Store == nil {
		return app.ErrNoStore
	}
	duration, label, err := timeutil.ParseWindow(n.Last)
	if err != nil {
		return err
	}
	until := n.Now
	if until.IsZero() {
		until = time.Now()
	}
	result := app.New(n.Store).Report(until.Add(-duration), until)
	pp := printers.PrettyPrint{Writer: n.Out, Location: until.Location()}
	if n.JSON {
		return pp.JSON(result)
	}
	pp.Report(result, label)
	return nil
}
