// Package calendar holds the week arithmetic shared by the planner and its
// adapters. Weeks start on Sunday; the work week runs Sunday..Friday with a
// short Friday.
package calendar

import (
	"fmt"
	"strings"
	"time"

	"github.com/yourname/timebalance/internal"
)

const (
	// DaysPerWeek is the number of plannable days, Sunday (0) to Friday (5).
	DaysPerWeek = 6
	Friday      = 5

	FirstHour      = 6
	LastHour       = 23
	FridayLastHour = 13

	// KeyLayout formats week and day keys.
	KeyLayout = "2006-01-02"
)

// WeekStart returns the Sunday at or before t, at midnight in t's location.
func WeekStart(t time.Time) time.Time {
	d := midnight(t)
	return d.AddDate(0, 0, -int(d.Weekday()))
}

// WeekEnd returns the Thursday of t's week. It is only used for the display
// range; the data model also covers Friday.
func WeekEnd(t time.Time) time.Time {
	return WeekStart(t).AddDate(0, 0, 4)
}

func AddWeeks(t time.Time, n int) time.Time {
	return t.AddDate(0, 0, 7*n)
}

// DateForDay maps a day index (0 = Sunday) to a date within the week.
func DateForDay(weekStart time.Time, day int) time.Time {
	return weekStart.AddDate(0, 0, day)
}

// WeekKey renders the storage key of the week starting at weekStart.
func WeekKey(weekStart time.Time) string {
	return weekStart.Format(KeyLayout)
}

// ParseWeekKey parses a YYYY-MM-DD key as local midnight.
func ParseWeekKey(key string) (time.Time, error) {
	t, err := time.ParseInLocation(KeyLayout, key, time.Local)
	if err != nil {
		return time.Time{}, fmt.Errorf("calendar: invalid week key %q: %w", key, err)
	}
	return t, nil
}

func ValidDay(day int) bool {
	return day >= 0 && day < DaysPerWeek
}

// LastHourOf returns the last plannable hour of day.
func LastHourOf(day int) int {
	if day == Friday {
		return FridayLastHour
	}
	return LastHour
}

// DayHours lists the plannable hours of day, or nil for an invalid day.
func DayHours(day int) []int {
	if !ValidDay(day) {
		return nil
	}
	last := LastHourOf(day)
	hours := make([]int, 0, last-FirstHour+1)
	for h := FirstHour; h <= last; h++ {
		hours = append(hours, h)
	}
	return hours
}

func ValidHour(day, hour int) bool {
	return ValidDay(day) && hour >= FirstHour && hour <= LastHourOf(day)
}

func ValidCell(k internal.CellKey) bool {
	return ValidHour(k.Day, k.Hour)
}

// WeekCells returns the number of plannable cells in a week, the
// denominator of the plan coverage in the week overview.
func WeekCells() int {
	n := 0
	for d := 0; d < DaysPerWeek; d++ {
		n += len(DayHours(d))
	}
	return n
}

// ResolveWeek turns user input into a week start: "current" (any case)
// or an empty string selects the week containing now, and any YYYY-MM-DD
// date is snapped back to its Sunday.
func ResolveWeek(s string, now time.Time) (time.Time, error) {
	if s == "" || strings.EqualFold(s, "current") {
		return WeekStart(now), nil
	}
	d, err := ParseWeekKey(s)
	if err != nil {
		return time.Time{}, err
	}
	return WeekStart(d), nil
}

// FormatWeekRange renders the Sunday..Thursday range of t's week, e.g.
// "5-9 February" or "28 January - 1 February".
func FormatWeekRange(t time.Time) string {
	start := WeekStart(t)
	end := WeekEnd(t)
	if start.Month() == end.Month() {
		return fmt.Sprintf("%d-%d %s", start.Day(), end.Day(), end.Month())
	}
	return fmt.Sprintf("%d %s - %d %s", start.Day(), start.Month(), end.Day(), end.Month())
}

// FormatDay renders a date as "Sunday 8 February".
func FormatDay(t time.Time) string {
	return fmt.Sprintf("%s %d %s", t.Weekday(), t.Day(), t.Month())
}

func midnight(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, t.Location())
}
