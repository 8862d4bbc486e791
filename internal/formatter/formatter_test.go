package formatter

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/yourname/timebalance/internal"
	"github.com/yourname/timebalance/internal/service"
)

func TestTableAlignment(t *testing.T) {
	out := New(false).Table([]string{"A", "Long header"}, [][]string{
		{"wide cell", "1"},
		{"x"},
	})
	lines := strings.Split(strings.TrimRight(out, "\n"), "\n")
	require.Len(t, lines, 4)
	assert.Equal(t, "A          Long header", lines[0])
	assert.Equal(t, "─────────  ───────────", lines[1])
	assert.Equal(t, "wide cell  1", lines[2])
	assert.Equal(t, "x          ", lines[3])

	assert.Empty(t, New(false).Table(nil, nil))
}

func TestSummary(t *testing.T) {
	s := service.WeekSummary{
		Rows: []service.SummaryRow{
			service.NewSummaryRow(internal.PaidWork, 4, 6),
			service.NewSummaryRow(internal.Family, 0, 3),
		},
		ReportedDays: 2,
		PlannedDays:  1,
	}
	out := New(false).Summary("8-12 February", s)
	assert.Contains(t, out, "Week of 8-12 February")
	assert.Contains(t, out, "Paid work")
	assert.Contains(t, out, "+50%")
	assert.Contains(t, out, "+100%")
	assert.Contains(t, out, "Reported days: 2  Planned days: 1")

	empty := New(false).Summary("8-12 February", service.WeekSummary{})
	assert.Contains(t, empty, "Nothing planned or reported yet.")
}

func TestHistoryAndTrend(t *testing.T) {
	f := New(false)
	history := []service.WeekHistory{
		{WeekStart: "2026-02-08", Totals: internal.CategoryHours{internal.Family: 3, internal.PaidWork: 2}},
	}
	out := f.History(history)
	assert.Contains(t, out, "2026-02-08")
	assert.Contains(t, out, "Total")
	assert.Contains(t, strings.Split(out, "\n")[2], "5")

	assert.Equal(t, "No history yet.\n", f.History(nil))

	trend := service.CompareWeeks([]service.WeekHistory{
		{WeekStart: "2026-02-01", Totals: internal.CategoryHours{internal.Family: 5}},
		{WeekStart: "2026-02-08", Totals: internal.CategoryHours{internal.Family: 2}},
	})
	out = f.Trend(trend)
	assert.Contains(t, out, "2026-02-01")
	assert.Contains(t, out, "-3")
	assert.Equal(t, "No weeks to compare.\n", f.Trend(service.Trend{}))
}

func TestOverview(t *testing.T) {
	out := New(false).Overview(service.WeekOverview{
		Range: "8-12 February", HasPlan: true, ReportedDays: 3, TotalDays: 6, ProgressPercent: 50,
		PlannedCells: 49, CoveragePercent: 50,
	})
	assert.Equal(t, "8-12 February  planned  3/6 days reported (50%)  49/98 hours planned (50%)\n", out)
}
