package service

import (
	"context"
	"math"
	"sort"
	"time"

	"github.com/yourname/timebalance/internal"
)

// SummaryRow compares planned and actual hours of one category.
type SummaryRow struct {
	Category    internal.Category `json:"category"`
	Planned     int               `json:"planned"`
	Actual      int               `json:"actual"`
	Diff        int               `json:"diff"`
	DiffPercent int               `json:"diffPercent"`
}

type WeekSummary struct {
	// Planned and Actual always hold all categories, zeros included.
	Planned      internal.CategoryHours `json:"planned"`
	Actual       internal.CategoryHours `json:"actual"`
	Rows         []SummaryRow           `json:"rows"`
	ReportedDays int                    `json:"reportedDays"`
	PlannedDays  int                    `json:"plannedDays"`
}

func (p *Planner) WeekSummary(ctx context.Context, user *internal.User, weekStart time.Time) WeekSummary {
	return ComputeWeekSummary(p.Week(ctx, user, weekStart))
}

// ComputeWeekSummary derives planned-vs-actual hours for one week. Every
// painted cell or hour counts as one hour. Planned hours come from the
// grid; a category absent from the grid falls back to the planned maps of
// the day reports. Actual hours come only from the reports.
func ComputeWeekSummary(week *internal.WeekData) WeekSummary {
	s := WeekSummary{
		Planned: internal.NewCategoryHours(),
		Actual:  internal.NewCategoryHours(),
		Rows:    []SummaryRow{},
	}
	if week == nil {
		return s
	}

	for _, cat := range week.Grid {
		s.Planned.Add(cat)
	}
	if week.Grid.HasActivity() {
		s.PlannedDays = 1
	}

	fallback := internal.NewCategoryHours()
	for _, day := range reportDays(week) {
		report := week.Reports[day]
		if report.Actual.HasActivity() {
			s.ReportedDays++
		}
		if report.Planned.HasActivity() {
			s.PlannedDays++
		}
		for _, cat := range report.Actual {
			s.Actual.Add(cat)
		}
		for _, cat := range report.Planned {
			fallback.Add(cat)
		}
	}
	for _, cat := range internal.AllCategories {
		if s.Planned[cat] == 0 {
			s.Planned[cat] = fallback[cat]
		}
	}

	for _, cat := range internal.AllCategories {
		planned, actual := s.Planned[cat], s.Actual[cat]
		if planned == 0 && actual == 0 {
			continue
		}
		s.Rows = append(s.Rows, NewSummaryRow(cat, planned, actual))
	}
	return s
}

// NewSummaryRow fills the derived columns. With nothing planned the
// percentage is 100 when anything happened and 0 otherwise.
func NewSummaryRow(cat internal.Category, planned, actual int) SummaryRow {
	diff := actual - planned
	pct := 0
	switch {
	case planned > 0:
		pct = roundHalfUp(float64(diff) / float64(planned) * 100)
	case actual > 0:
		pct = 100
	}
	return SummaryRow{Category: cat, Planned: planned, Actual: actual, Diff: diff, DiffPercent: pct}
}

// roundHalfUp rounds .5 toward positive infinity, so -2.5 becomes -2.
func roundHalfUp(v float64) int {
	return int(math.Floor(v + 0.5))
}

func reportDays(week *internal.WeekData) []int {
	days := make([]int, 0, len(week.Reports))
	for d := range week.Reports {
		days = append(days, d)
	}
	sort.Ints(days)
	return days
}
