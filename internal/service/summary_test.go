package service

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/yourname/timebalance/internal"
)

func report(planned, actual internal.HourMap) internal.DayReport {
	r := internal.NewDayReport()
	for h, c := range planned {
		r.Planned[h] = c
	}
	for h, c := range actual {
		r.Actual[h] = c
	}
	return r
}

func TestComputeWeekSummaryNilWeek(t *testing.T) {
	s := ComputeWeekSummary(nil)
	assert.Empty(t, s.Rows)
	assert.Len(t, s.Planned, len(internal.AllCategories))
	assert.Len(t, s.Actual, len(internal.AllCategories))
	assert.Zero(t, s.ReportedDays)
	assert.Zero(t, s.PlannedDays)
}

func TestComputeWeekSummaryPlannedFallback(t *testing.T) {
	w := internal.NewWeekData()
	w.Reports[0] = report(internal.HourMap{8: internal.Family}, nil)

	s := ComputeWeekSummary(w)
	assert.Equal(t, 1, s.Planned[internal.Family])

	w.Grid[internal.CellKey{Day: 0, Hour: 8}] = internal.Family
	s = ComputeWeekSummary(w)
	assert.Equal(t, 1, s.Planned[internal.Family], "grid value only")
}

func TestComputeWeekSummaryFallbackIsPerCategory(t *testing.T) {
	w := internal.NewWeekData()
	w.Grid[internal.CellKey{Day: 0, Hour: 8}] = internal.PaidWork
	w.Reports[1] = report(internal.HourMap{
		8:  internal.PaidWork,
		9:  internal.Household,
		10: internal.Household,
	}, nil)

	s := ComputeWeekSummary(w)
	assert.Equal(t, 1, s.Planned[internal.PaidWork])
	assert.Equal(t, 2, s.Planned[internal.Household])
}

func TestComputeWeekSummaryActualOnlyFromReports(t *testing.T) {
	w := internal.NewWeekData()
	w.Grid[internal.CellKey{Day: 0, Hour: 8}] = internal.Personal
	w.Reports[0] = report(nil, internal.HourMap{8: internal.Personal})
	w.Reports[3] = report(nil, internal.HourMap{8: internal.Personal, 9: internal.Family})

	s := ComputeWeekSummary(w)
	assert.Equal(t, 2, s.Actual[internal.Personal])
	assert.Equal(t, 1, s.Actual[internal.Family])
	assert.Equal(t, 2, s.ReportedDays)
}

func TestComputeWeekSummaryDayCounts(t *testing.T) {
	w := internal.NewWeekData()
	w.Grid[internal.CellKey{Day: 0, Hour: 8}] = internal.PaidWork
	w.Reports[0] = report(internal.HourMap{8: internal.PaidWork}, nil)
	w.Reports[1] = report(nil, nil)
	w.Reports[2] = report(internal.HourMap{7: internal.Family}, internal.HourMap{7: internal.Family})

	s := ComputeWeekSummary(w)
	// Grid flag plus two reports with planned hours; day 0 counts twice.
	assert.Equal(t, 3, s.PlannedDays)
	assert.Equal(t, 1, s.ReportedDays)
}

func TestComputeWeekSummaryRows(t *testing.T) {
	w := internal.NewWeekData()
	w.Grid[internal.CellKey{Day: 0, Hour: 8}] = internal.UnpaidWork
	w.Grid[internal.CellKey{Day: 0, Hour: 9}] = internal.Personal
	w.Grid[internal.CellKey{Day: 0, Hour: 10}] = internal.Personal
	w.Reports[0] = report(nil, internal.HourMap{
		8:  internal.Personal,
		9:  internal.Family,
		10: internal.Family,
		11: internal.Family,
	})

	s := ComputeWeekSummary(w)
	want := []SummaryRow{
		{Category: internal.Personal, Planned: 2, Actual: 1, Diff: -1, DiffPercent: -50},
		{Category: internal.Family, Planned: 0, Actual: 3, Diff: 3, DiffPercent: 100},
		{Category: internal.UnpaidWork, Planned: 1, Actual: 0, Diff: -1, DiffPercent: -100},
	}
	assert.Equal(t, want, s.Rows)
	assert.Zero(t, s.Planned[internal.Household], "zero categories stay in the totals")
}

func TestNewSummaryRow(t *testing.T) {
	tests := []struct {
		name            string
		planned, actual int
		diff, pct       int
	}{
		{"unplanned activity", 0, 3, 3, 100},
		{"nothing at all", 0, 0, 0, 0},
		{"on plan", 4, 4, 0, 0},
		{"over", 4, 6, 2, 50},
		{"under", 3, 1, -2, -67},
		{"third rounds down", 3, 4, 1, 33},
		{"half rounds up", 8, 9, 1, 13},
		{"negative half rounds up", 8, 7, -1, -12},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			row := NewSummaryRow(internal.Family, tt.planned, tt.actual)
			assert.Equal(t, tt.diff, row.Diff)
			assert.Equal(t, tt.pct, row.DiffPercent)
		})
	}
}
