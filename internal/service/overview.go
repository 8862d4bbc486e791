package service

import (
	"context"
	"time"

	"github.com/yourname/timebalance/internal"
	"github.com/yourname/timebalance/internal/calendar"
)

// WeekOverview is the dashboard status of one week.
type WeekOverview struct {
	WeekStart       string  `json:"weekStart"`
	Range           string  `json:"range"`
	HasPlan         bool    `json:"hasPlan"`
	ReportedDays    int     `json:"reportedDays"`
	TotalDays       int     `json:"totalDays"`
	MissingDays     int     `json:"missingDays"`
	ProgressPercent float64 `json:"progressPercent"`
	PlannedCells    int     `json:"plannedCells"`
	CoveragePercent float64 `json:"coveragePercent"`
	StoredWeeks     int     `json:"storedWeeks"`
}

func (p *Planner) Overview(ctx context.Context, user *internal.User, weekStart time.Time) WeekOverview {
	doc := p.readDocument(ctx, user)
	return CalculateOverview(doc, weekStart)
}

// CalculateOverview reports how far the week's reporting has progressed.
// Coverage is the share of plannable grid cells that hold a category;
// cells outside the plannable week are not counted. StoredWeeks counts
// every stored week, including empty ones.
func CalculateOverview(doc *internal.UserDocument, weekStart time.Time) WeekOverview {
	o := WeekOverview{
		WeekStart: calendar.WeekKey(weekStart),
		Range:     calendar.FormatWeekRange(weekStart),
		TotalDays: calendar.DaysPerWeek,
	}
	if doc != nil {
		o.StoredWeeks = len(doc.Weeks)
		week := doc.Weeks[o.WeekStart]
		summary := ComputeWeekSummary(week)
		o.ReportedDays = summary.ReportedDays
		o.HasPlan = week != nil && week.Grid.HasActivity()
		if week != nil {
			for key, cat := range week.Grid {
				if cat.Valid() && calendar.ValidCell(key) {
					o.PlannedCells++
				}
			}
		}
	}
	o.CoveragePercent = float64(o.PlannedCells) / float64(calendar.WeekCells()) * 100
	o.MissingDays = o.TotalDays - o.ReportedDays
	if o.MissingDays < 0 {
		o.MissingDays = 0
	}
	o.ProgressPercent = float64(o.ReportedDays) / float64(o.TotalDays) * 100
	return o
}
