package formatter

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/yourname/timebalance/internal"
	"github.com/yourname/timebalance/internal/calendar"
	"github.com/yourname/timebalance/internal/service"
)

// Summary renders the planned-vs-actual table of a week.
func (f *Formatter) Summary(rangeLabel string, s service.WeekSummary) string {
	var b strings.Builder
	b.WriteString(f.bold.Render("Week of "+rangeLabel) + "\n\n")
	if len(s.Rows) == 0 {
		b.WriteString(f.dim.Render("Nothing planned or reported yet.") + "\n")
		return b.String()
	}

	rows := make([][]string, 0, len(s.Rows))
	for _, r := range s.Rows {
		rows = append(rows, []string{
			r.Category.Label(),
			strconv.Itoa(r.Planned),
			strconv.Itoa(r.Actual),
			signed(r.Diff),
			f.percent(r.DiffPercent),
		})
	}
	b.WriteString(f.Table([]string{"Category", "Planned", "Actual", "Diff", "Diff %"}, rows))
	fmt.Fprintf(&b, "\nReported days: %d  Planned days: %d\n", s.ReportedDays, s.PlannedDays)
	return b.String()
}

// History renders one row per stored week, newest first.
func (f *Formatter) History(history []service.WeekHistory) string {
	if len(history) == 0 {
		return f.dim.Render("No history yet.") + "\n"
	}
	headers := []string{"Week"}
	for _, c := range internal.AllCategories {
		headers = append(headers, c.Label())
	}
	headers = append(headers, "Total")

	rows := make([][]string, 0, len(history))
	for _, h := range history {
		row := []string{h.WeekStart}
		for _, c := range internal.AllCategories {
			row = append(row, strconv.Itoa(h.Totals[c]))
		}
		row = append(row, strconv.Itoa(h.Totals.Total()))
		rows = append(rows, row)
	}
	return f.Table(headers, rows)
}

// Trend renders each category across the compared weeks with its delta.
func (f *Formatter) Trend(t service.Trend) string {
	if len(t.Weeks) == 0 {
		return f.dim.Render("No weeks to compare.") + "\n"
	}
	headers := append([]string{"Category"}, t.Weeks...)
	headers = append(headers, "Delta")

	rows := make([][]string, 0, len(t.Rows))
	for _, r := range t.Rows {
		row := []string{r.Category.Label()}
		for _, v := range r.Values {
			row = append(row, strconv.Itoa(v))
		}
		row = append(row, f.delta(r.Delta))
		rows = append(rows, row)
	}
	return f.Table(headers, rows)
}

func (f *Formatter) Overview(o service.WeekOverview) string {
	plan := f.yellow.Render("no plan")
	if o.HasPlan {
		plan = f.green.Render("planned")
	}
	return fmt.Sprintf("%s  %s  %d/%d days reported (%.0f%%)  %d/%d hours planned (%.0f%%)\n",
		f.bold.Render(o.Range), plan, o.ReportedDays, o.TotalDays, o.ProgressPercent,
		o.PlannedCells, calendar.WeekCells(), o.CoveragePercent)
}

func (f *Formatter) percent(p int) string {
	s := signed(p) + "%"
	switch {
	case p > 0:
		return f.green.Render(s)
	case p < 0:
		return f.red.Render(s)
	}
	return s
}

func (f *Formatter) delta(d int) string {
	switch {
	case d > 0:
		return f.green.Render(signed(d))
	case d < 0:
		return f.red.Render(signed(d))
	}
	return f.dim.Render("0")
}

func signed(n int) string {
	if n > 0 {
		return "+" + strconv.Itoa(n)
	}
	return strconv.Itoa(n)
}
