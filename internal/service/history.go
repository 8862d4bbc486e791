package service

import (
	"context"
	"sort"

	"github.com/yourname/timebalance/internal"
)

// WeekHistory is the total logged hours per category for one week.
type WeekHistory struct {
	WeekStart string                 `json:"weekStart"`
	Totals    internal.CategoryHours `json:"categoryTotals"`
}

// TrendRow follows one category across the compared weeks.
type TrendRow struct {
	Category internal.Category `json:"category"`
	Values   []int             `json:"values"`
	First    int               `json:"first"`
	Last     int               `json:"last"`
	Delta    int               `json:"delta"`
}

type Trend struct {
	Weeks []string   `json:"weeks"`
	Rows  []TrendRow `json:"rows"`
}

// WeekTotals adds up grid cells, actual hours and planned hours of every
// day report into one total per category. Only categories with hours are
// present in the result.
func WeekTotals(week *internal.WeekData) internal.CategoryHours {
	totals := internal.CategoryHours{}
	if week == nil {
		return totals
	}
	for _, cat := range week.Grid {
		totals.Add(cat)
	}
	for _, report := range week.Reports {
		for _, cat := range report.Actual {
			totals.Add(cat)
		}
		for _, cat := range report.Planned {
			totals.Add(cat)
		}
	}
	return totals
}

// History lists every stored week with at least one logged hour, newest
// first.
func (p *Planner) History(ctx context.Context, user *internal.User) []WeekHistory {
	doc := p.readDocument(ctx, user)
	return BuildHistory(doc)
}

func BuildHistory(doc *internal.UserDocument) []WeekHistory {
	history := []WeekHistory{}
	if doc == nil {
		return history
	}
	for key, week := range doc.Weeks {
		totals := WeekTotals(week)
		if len(totals) == 0 {
			continue
		}
		history = append(history, WeekHistory{WeekStart: key, Totals: totals})
	}
	sort.Slice(history, func(i, j int) bool {
		return history[i].WeekStart > history[j].WeekStart
	})
	return history
}

// CompareWeeks builds the trend table over the selected weeks in
// chronological order. With no keys every week in history is compared.
// Unknown keys are ignored.
func CompareWeeks(history []WeekHistory, weekKeys ...string) Trend {
	byKey := make(map[string]internal.CategoryHours, len(history))
	for _, h := range history {
		byKey[h.WeekStart] = h.Totals
	}

	var selected []string
	if len(weekKeys) == 0 {
		for k := range byKey {
			selected = append(selected, k)
		}
	} else {
		seen := map[string]bool{}
		for _, k := range weekKeys {
			if _, ok := byKey[k]; ok && !seen[k] {
				selected = append(selected, k)
				seen[k] = true
			}
		}
	}
	sort.Strings(selected)
	if selected == nil {
		selected = []string{}
	}

	trend := Trend{Weeks: selected, Rows: []TrendRow{}}
	if len(selected) == 0 {
		return trend
	}
	for _, cat := range internal.AllCategories {
		values := make([]int, len(selected))
		for i, k := range selected {
			values[i] = byKey[k][cat]
		}
		first, last := values[0], values[len(values)-1]
		trend.Rows = append(trend.Rows, TrendRow{
			Category: cat,
			Values:   values,
			First:    first,
			Last:     last,
			Delta:    last - first,
		})
	}
	return trend
}

// Trend compares the user's stored weeks; see CompareWeeks.
func (p *Planner) Trend(ctx context.Context, user *internal.User, weekKeys ...string) Trend {
	return CompareWeeks(p.History(ctx, user), weekKeys...)
}
