package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/yourname/timebalance/internal"
	"github.com/yourname/timebalance/internal/calendar"
	"github.com/yourname/timebalance/internal/storage"
)

// Planner reads and writes a user's week plans and day reports. Every call
// loads the whole user document, and every save writes it back whole; the
// last save wins.
type Planner struct {
	store  storage.DocumentStore
	logger internal.Logger
}

func NewPlanner(store storage.DocumentStore, logger internal.Logger) *Planner {
	return &Planner{store: store, logger: logger}
}

// LoadWeekPlan returns the grid and notes of the week. Both maps are empty
// when nothing was saved.
func (p *Planner) LoadWeekPlan(ctx context.Context, user *internal.User, weekStart time.Time) (internal.WeekGrid, internal.WeekNotes) {
	doc := p.readDocument(ctx, user)
	week, ok := doc.Weeks[calendar.WeekKey(weekStart)]
	if !ok {
		return internal.WeekGrid{}, internal.WeekNotes{}
	}
	return week.Grid, week.Notes
}

// SaveWeekPlan replaces the grid and notes of the week, leaving its day
// reports untouched.
func (p *Planner) SaveWeekPlan(ctx context.Context, user *internal.User, weekStart time.Time, grid internal.WeekGrid, notes internal.WeekNotes) error {
	if grid == nil {
		grid = internal.WeekGrid{}
	}
	if notes == nil {
		notes = internal.WeekNotes{}
	}
	doc := p.readDocument(ctx, user)
	week := doc.Week(calendar.WeekKey(weekStart))
	week.Grid = grid
	week.Notes = notes
	return p.writeDocument(ctx, user, doc)
}

// LoadDayReport returns the report of one day and whether one was ever
// saved. A saved report whose maps are all empty is still reported as
// present.
func (p *Planner) LoadDayReport(ctx context.Context, user *internal.User, weekStart time.Time, day int) (*internal.DayReport, bool) {
	doc := p.readDocument(ctx, user)
	week, ok := doc.Weeks[calendar.WeekKey(weekStart)]
	if !ok {
		return nil, false
	}
	report, ok := week.Reports[day]
	if !ok {
		return nil, false
	}
	return &report, true
}

// SaveDayReport replaces the report of one day. Hour keys are stored as
// given.
func (p *Planner) SaveDayReport(ctx context.Context, user *internal.User, weekStart time.Time, day int, report internal.DayReport) error {
	if report.Planned == nil {
		report.Planned = internal.HourMap{}
	}
	if report.Actual == nil {
		report.Actual = internal.HourMap{}
	}
	if report.PlannedNotes == nil {
		report.PlannedNotes = internal.HourNotes{}
	}
	if report.ActualNotes == nil {
		report.ActualNotes = internal.HourNotes{}
	}
	doc := p.readDocument(ctx, user)
	week := doc.Week(calendar.WeekKey(weekStart))
	week.Reports[day] = report
	return p.writeDocument(ctx, user, doc)
}

// CopyFromPreviousWeek returns the grid and notes stored for the week
// before weekStart. ok is false when that grid has no painted cell.
// Nothing is saved.
func (p *Planner) CopyFromPreviousWeek(ctx context.Context, user *internal.User, weekStart time.Time) (internal.WeekGrid, internal.WeekNotes, bool) {
	grid, notes := p.LoadWeekPlan(ctx, user, calendar.AddWeeks(weekStart, -1))
	if !grid.HasActivity() {
		return nil, nil, false
	}
	return grid, notes, true
}

// Week returns the stored data of a week, or nil.
func (p *Planner) Week(ctx context.Context, user *internal.User, weekStart time.Time) *internal.WeekData {
	doc := p.readDocument(ctx, user)
	return doc.Weeks[calendar.WeekKey(weekStart)]
}

// readDocument never fails: a missing, unreadable or corrupt document
// reads as empty.
func (p *Planner) readDocument(ctx context.Context, user *internal.User) *internal.UserDocument {
	doc, err := p.store.Get(ctx, storage.UserKey(user.ID))
	switch {
	case errors.Is(err, storage.ErrNotFound):
		return internal.NewUserDocument()
	case errors.Is(err, storage.ErrCorruptDocument):
		p.logger.Warnf("planner: corrupt document for user %s, reading as empty: %v", user.ID, err)
		return internal.NewUserDocument()
	case err != nil:
		p.logger.Warnf("planner: storage read failed for user %s, reading as empty: %v", user.ID, err)
		return internal.NewUserDocument()
	}
	doc.Normalize()
	return doc
}

func (p *Planner) writeDocument(ctx context.Context, user *internal.User, doc *internal.UserDocument) error {
	if err := p.store.Set(ctx, storage.UserKey(user.ID), doc); err != nil {
		p.logger.Warnf("planner: dropping write for user %s: %v", user.ID, err)
		return fmt.Errorf("%w: %v", internal.ErrStorageUnavailable, err)
	}
	return nil
}
