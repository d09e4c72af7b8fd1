// Package notify runs the reminder commands.
package notify

import (
	"context"
	"errors"
	"fmt"
	"io"
	"time"

	"github.com/charmbracelet/log"

	"tableflip.dev/prasia/pkg/app"
	"tableflip.dev/prasia/pkg/model"
	"tableflip.dev/prasia/pkg/notify"
	"tableflip.dev/prasia/pkg/printers"
	"tableflip.dev/prasia/pkg/store"
	"tableflip.dev/prasia/pkg/timeutil"
)

// Check prints the reminders due now once.
type Check struct {
	Now time.Time

	Store *store.Store
	Log   *log.Logger
	JSON  bool
	Out   io.Writer
}

func (n *Check) Do(ctx context.Context) error {
	if n.Store == nil {
		return app.ErrNoStore
	}
	if n.Now.IsZero() {
		n.Now = time.Now()
	}
	notices := notify.New(n.Store, n.Log).Check(n.Now)
	pp := printers.PrettyPrint{Writer: n.Out}
	if n.JSON {
		if notices == nil {
			notices = []notify.Notice{}
		}
		return pp.JSON(notices)
	}
	pp.Notices(notices)
	return nil
}

// Watch checks for reminders every Interval until ctx is cancelled.
type Watch struct {
	Interval time.Duration

	Store *store.Store
	Log   *log.Logger
	JSON  bool
	Out   io.Writer
}

func (n *Watch) Do(ctx context.Context) error {
	if n.Store == nil {
		return app.ErrNoStore
	}
	checker := notify.New(n.Store, n.Log)
	pp := printers.PrettyPrint{Writer: n.Out}
	checker.Log.Info("watching reminders", "interval", n.Interval)
	err := checker.Watch(ctx, n.Interval, time.Now, func(notices []notify.Notice) {
		if n.JSON {
			for _, notice := range notices {
				if err := pp.JSON(notice); err != nil {
					checker.Log.Warn("write notice", "task", notice.TaskID, "err", err)
				}
			}
			return
		}
		pp.Notices(notices)
	})
	if errors.Is(err, context.Canceled) {
		st := checker.Stats(time.Now())
		checker.Log.Info("stopped watching", "delivered", st.Total)
		return nil
	}
	return err
}

// Snooze postpones the reminder of a task.
type Snooze struct {
	TaskID  string
	Minutes int
	Now     time.Time

	Store *store.Store
	Out   io.Writer
}

func (n *Snooze) Do(ctx context.Context) error {
	if n.Store == nil {
		return app.ErrNoStore
	}
	if n.Now.IsZero() {
		n.Now = time.Now()
	}
	if n.Minutes <= 0 {
		return fmt.Errorf("notify: snooze minutes must be positive, try one of %v", notify.SnoozeMinutes)
	}
	if _, ok := notify.New(n.Store, nil).Snooze(n.TaskID, n.Minutes, n.Now); !ok {
		return fmt.Errorf("%w: %s", app.ErrTaskNotFound, n.TaskID)
	}
	pp := printers.PrettyPrint{Writer: n.Out}
	_, _ = fmt.Fprintf(pp.Out(), "%d분 후에 다시 알림을 받습니다.\n", n.Minutes)
	return nil
}

// Toggle turns reminders on or off, for everyone or for one character.
type Toggle struct {
	CharacterID string
	Enabled     bool

	Store *store.Store
	Out   io.Writer
}

func (n *Toggle) Do(ctx context.Context) error {
	if n.Store == nil {
		return app.ErrNoStore
	}
	checker := notify.New(n.Store, nil)
	state := "비활성화"
	if n.Enabled {
		state = "활성화"
	}
	pp := printers.PrettyPrint{Writer: n.Out}
	if n.CharacterID == "" {
		checker.SetEnabled(n.Enabled)
		_, _ = fmt.Fprintf(pp.Out(), "알림이 %s되었습니다.\n", state)
		return nil
	}
	c, ok := n.Store.GetCharacter(n.CharacterID)
	if !ok {
		return fmt.Errorf("%w: %s", app.ErrCharacterNotFound, n.CharacterID)
	}
	checker.SetCharacterEnabled(c.ID, n.Enabled)
	_, _ = fmt.Fprintf(pp.Out(), "%s의 알림이 %s되었습니다.\n", c.Name, state)
	return nil
}

// Quiet sets the quiet hours window. Empty bounds keep the stored value.
type Quiet struct {
	Start string
	End   string

	Store *store.Store
	Out   io.Writer
}

func (n *Quiet) Do(ctx context.Context) error {
	if n.Store == nil {
		return app.ErrNoStore
	}
	q := n.Store.GetSettings().QuietHours
	if n.Start != "" {
		q.Start = n.Start
	}
	if n.End != "" {
		q.End = n.End
	}
	for _, v := range []string{q.Start, q.End} {
		if _, err := timeutil.ParseClock(v); err != nil {
			return err
		}
	}
	n.Store.UpdateSettings(model.SettingsPatch{QuietHours: &q})
	pp := printers.PrettyPrint{Writer: n.Out}
	_, _ = fmt.Fprintf(pp.Out(), "Quiet hours %s-%s\n", q.Start, q.End)
	return nil
}
