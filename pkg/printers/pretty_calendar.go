package printers

import (
	"fmt"
	"strings"
	"time"

	"github.com/fatih/color"

	"tableflip.dev/prasia/pkg/model"
	"tableflip.dev/prasia/pkg/query"
)

const width = len("11 12 13 14 15 16 17") // an example week

// Calendar prints the month grid of on followed by the tasks due on each day
// of that month and the undated tasks.
func (pp *PrettyPrint) Calendar(on time.Time, now time.Time, tasks []model.Task, names map[string]string) {
	then := time.Date(on.Year(), on.Month(), 1, 0, 0, 0, 0, pp.loc())
	pp.PrintMonthCount(then, now, query.MonthCounts(tasks, then, pp.loc()))
	pp.PrintMonthLong(then, now, tasks, names)
}

// PrintMonthCount prints a month grid; days with a non-zero count are bold
// and today is underlined.
func (pp *PrettyPrint) PrintMonthCount(then, now time.Time, count []int) {
	d := StartDay(then)

	tf := color.New(color.FgWhite, color.Italic)

	m := then.Format("2006-01")
	mid := (width - len(m)) / 2
	_, _ = tf.Fprintf(pp.Out(), "%s%s%s\n", strings.Repeat(" ", mid), m, strings.Repeat(" ", width-mid-len(m)))

	days := DaysIn(then)
	now = now.In(pp.loc())

	// Pad out the start of the month.
	for i := time.Sunday; i < d; i++ {
		_, _ = fmt.Fprint(pp.Out(), "   ")
	}

	l1 := color.New(color.Faint, color.FgWhite)
	l2 := color.New(color.Bold, color.FgHiWhite)
	l3 := color.New(color.Bold, color.Underline)

	for i := 0; i < days; i++ {
		printer := l1
		if i < len(count) && count[i] > 0 {
			printer = l2
		}
		if sameMonth(then, now) && now.Day() == i+1 {
			printer = l3
		}
		_, _ = printer.Fprintf(pp.Out(), "%2d ", i+1)

		d++
		if d > time.Saturday {
			d = time.Sunday
			_, _ = fmt.Fprint(pp.Out(), "\n")
		}
	}
	_, _ = fmt.Fprint(pp.Out(), "\n\n")
}

// PrintMonthLong lists every day that has tasks due, then the undated
// tasks that are still open.
func (pp *PrettyPrint) PrintMonthLong(then, now time.Time, tasks []model.Task, names map[string]string) {
	b := color.New(color.Bold)
	s := color.New(color.Underline)
	i := color.New(color.Italic)

	now = now.In(pp.loc())
	found := false
	for day := 1; day <= DaysIn(then); day++ {
		on := time.Date(then.Year(), then.Month(), day, 12, 0, 0, 0, pp.loc())
		due := query.OnDay(tasks, on, pp.loc())
		if len(due) == 0 {
			continue
		}
		found = true
		printer := b
		if on.Weekday() == time.Sunday {
			printer = s
		}
		label := fmt.Sprintf("%2d %s", day, on.Weekday().String()[0:3])
		if sameMonth(then, now) && now.Day() == day {
			label += " (today)"
		}
		_, _ = printer.Fprintln(pp.Out(), label)
		for _, t := range due {
			_, _ = fmt.Fprintln(pp.Out(), "   "+pp.TaskLine(t, names[t.CharacterID]))
		}
	}
	if !found {
		pp.none()
	}

	var open []model.Task
	for _, t := range query.Undated(tasks) {
		if !t.Status.Completed() {
			open = append(open, t)
		}
	}
	if len(open) > 0 {
		_, _ = i.Fprintf(pp.Out(), "\nOpen\n")
		for _, t := range open {
			_, _ = fmt.Fprintln(pp.Out(), "   "+pp.TaskLine(t, names[t.CharacterID]))
		}
	}
	pp.NewLine()
}

func sameMonth(a, b time.Time) bool {
	return a.Year() == b.Year() && a.Month() == b.Month()
}

func NextMonth(then time.Time) time.Time {
	return time.Date(then.Year(), then.Month()+1, 1, 0, 0, 0, 0, then.Location())
}

func PrevMonth(then time.Time) time.Time {
	return time.Date(then.Year(), then.Month()-1, 1, 0, 0, 0, 0, then.Location())
}

func DaysIn(then time.Time) int {
	return time.Date(then.Year(), then.Month()+1, 0, 0, 0, 0, 0, time.UTC).Day()
}

func StartDay(then time.Time) time.Weekday {
	return time.Date(then.Year(), then.Month(), 1, 12, 0, 0, 0, time.UTC).Weekday()
}
