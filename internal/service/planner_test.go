package service

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/yourname/timebalance/internal"
	"github.com/yourname/timebalance/internal/storage"
)

var testUser = &internal.User{ID: "u1", Name: "Test User", Token: "MOCK-TOKEN"}

func week(t *testing.T, key string) time.Time {
	t.Helper()
	d, err := time.ParseInLocation("2006-01-02", key, time.Local)
	require.NoError(t, err)
	return d
}

func newTestPlanner() (*Planner, *storage.MemoryStorage) {
	store := storage.NewMemoryStorage()
	return NewPlanner(store, internal.NewNopLogger()), store
}

// brokenStore fails every call.
type brokenStore struct {
	getErr error
	setErr error
	sets   int
}

func (b *brokenStore) Get(ctx context.Context, userKey string) (*internal.UserDocument, error) {
	return nil, b.getErr
}

func (b *brokenStore) Set(ctx context.Context, userKey string, doc *internal.UserDocument) error {
	b.sets++
	return b.setErr
}

func (b *brokenStore) Close() error { return nil }

func TestWeekPlanRoundTrip(t *testing.T) {
	p, _ := newTestPlanner()
	ctx := context.Background()
	ws := week(t, "2026-02-08")

	grid := internal.WeekGrid{
		{Day: 0, Hour: 8}: internal.PaidWork,
		{Day: 0, Hour: 9}: internal.PaidWork,
	}
	notes := internal.WeekNotes{{Day: 0, Hour: 8}: "standup"}
	require.NoError(t, p.SaveWeekPlan(ctx, testUser, ws, grid, notes))

	gotGrid, gotNotes := p.LoadWeekPlan(ctx, testUser, ws)
	assert.Equal(t, grid, gotGrid)
	assert.Equal(t, notes, gotNotes)
	assert.NotContains(t, gotGrid, internal.CellKey{Day: 0, Hour: 10})

	// Saving the same plan twice loads the same as saving it once.
	require.NoError(t, p.SaveWeekPlan(ctx, testUser, ws, grid, notes))
	again, _ := p.LoadWeekPlan(ctx, testUser, ws)
	assert.Equal(t, gotGrid, again)

	s := p.WeekSummary(ctx, testUser, ws)
	assert.Equal(t, 2, s.Planned[internal.PaidWork])
}

func TestLoadWeekPlanUnknownWeek(t *testing.T) {
	p, _ := newTestPlanner()
	grid, notes := p.LoadWeekPlan(context.Background(), testUser, week(t, "2026-02-08"))
	assert.NotNil(t, grid)
	assert.NotNil(t, notes)
	assert.Empty(t, grid)
	assert.Empty(t, notes)
}

func TestSaveWeekPlanKeepsReports(t *testing.T) {
	p, _ := newTestPlanner()
	ctx := context.Background()
	ws := week(t, "2026-02-08")

	report := internal.NewDayReport()
	report.Actual[8] = internal.Personal
	require.NoError(t, p.SaveDayReport(ctx, testUser, ws, 0, report))
	require.NoError(t, p.SaveWeekPlan(ctx, testUser, ws, internal.WeekGrid{{Day: 1, Hour: 6}: internal.Family}, nil))

	got, ok := p.LoadDayReport(ctx, testUser, ws, 0)
	require.True(t, ok)
	assert.Equal(t, report, *got)
}

func TestDayReportRoundTrip(t *testing.T) {
	p, _ := newTestPlanner()
	ctx := context.Background()
	ws := week(t, "2026-02-08")

	require.NoError(t, p.SaveWeekPlan(ctx, testUser, ws, internal.WeekGrid{{Day: 0, Hour: 8}: internal.PaidWork}, nil))

	report := internal.NewDayReport()
	report.Planned[8] = internal.PaidWork
	report.Actual[8] = internal.Personal
	report.ActualNotes[8] = "overslept"
	require.NoError(t, p.SaveDayReport(ctx, testUser, ws, 0, report))

	got, ok := p.LoadDayReport(ctx, testUser, ws, 0)
	require.True(t, ok)
	assert.Equal(t, report, *got)

	grid, _ := p.LoadWeekPlan(ctx, testUser, ws)
	assert.Len(t, grid, 1, "grid survives a report save")

	s := p.WeekSummary(ctx, testUser, ws)
	assert.Equal(t, 1, s.Actual[internal.Personal])
	assert.Equal(t, 1, s.ReportedDays)
}

func TestDayReportAbsentVersusEmpty(t *testing.T) {
	p, _ := newTestPlanner()
	ctx := context.Background()
	ws := week(t, "2026-02-08")

	_, ok := p.LoadDayReport(ctx, testUser, ws, 1)
	assert.False(t, ok)

	require.NoError(t, p.SaveDayReport(ctx, testUser, ws, 2, internal.DayReport{}))
	got, ok := p.LoadDayReport(ctx, testUser, ws, 2)
	require.True(t, ok)
	assert.Equal(t, internal.NewDayReport(), *got)

	_, ok = p.LoadDayReport(ctx, testUser, ws, 1)
	assert.False(t, ok)
}

func TestSaveDayReportOverwritesOnlyThatDay(t *testing.T) {
	p, _ := newTestPlanner()
	ctx := context.Background()
	ws := week(t, "2026-02-08")

	first := internal.NewDayReport()
	first.Actual[9] = internal.Household
	second := internal.NewDayReport()
	second.Actual[10] = internal.Family
	require.NoError(t, p.SaveDayReport(ctx, testUser, ws, 1, first))
	require.NoError(t, p.SaveDayReport(ctx, testUser, ws, 2, second))

	replacement := internal.NewDayReport()
	replacement.Planned[6] = internal.Personal
	require.NoError(t, p.SaveDayReport(ctx, testUser, ws, 1, replacement))

	got, _ := p.LoadDayReport(ctx, testUser, ws, 1)
	assert.Equal(t, replacement, *got)
	other, _ := p.LoadDayReport(ctx, testUser, ws, 2)
	assert.Equal(t, second, *other)
}

func TestUsersArePartitioned(t *testing.T) {
	p, _ := newTestPlanner()
	ctx := context.Background()
	ws := week(t, "2026-02-08")
	other := &internal.User{ID: "u2"}

	require.NoError(t, p.SaveWeekPlan(ctx, testUser, ws, internal.WeekGrid{{Day: 0, Hour: 8}: internal.PaidWork}, nil))
	grid, _ := p.LoadWeekPlan(ctx, other, ws)
	assert.Empty(t, grid)
}

func TestCopyFromPreviousWeek(t *testing.T) {
	p, _ := newTestPlanner()
	ctx := context.Background()
	prev := week(t, "2026-02-08")
	cur := week(t, "2026-02-15")

	_, _, ok := p.CopyFromPreviousWeek(ctx, testUser, cur)
	assert.False(t, ok, "nothing stored")

	require.NoError(t, p.SaveWeekPlan(ctx, testUser, prev, internal.WeekGrid{}, internal.WeekNotes{{Day: 0, Hour: 8}: "note only"}))
	_, _, ok = p.CopyFromPreviousWeek(ctx, testUser, cur)
	assert.False(t, ok, "notes without cells do not count")

	grid := internal.WeekGrid{{Day: 3, Hour: 12}: internal.Relationship}
	notes := internal.WeekNotes{{Day: 3, Hour: 12}: "dinner"}
	require.NoError(t, p.SaveWeekPlan(ctx, testUser, prev, grid, notes))

	gotGrid, gotNotes, ok := p.CopyFromPreviousWeek(ctx, testUser, cur)
	require.True(t, ok)
	assert.Equal(t, grid, gotGrid)
	assert.Equal(t, notes, gotNotes)

	curGrid, _ := p.LoadWeekPlan(ctx, testUser, cur)
	assert.Empty(t, curGrid, "copy does not persist")
}

func TestCorruptDocumentReadsAsEmpty(t *testing.T) {
	p, store := newTestPlanner()
	ctx := context.Background()
	store.SetRaw(storage.UserKey(testUser.ID), []byte("{not json"))

	grid, _ := p.LoadWeekPlan(ctx, testUser, week(t, "2026-02-08"))
	assert.Empty(t, grid)
	assert.Empty(t, p.History(ctx, testUser))

	// A save replaces the corrupt document.
	require.NoError(t, p.SaveWeekPlan(ctx, testUser, week(t, "2026-02-08"), internal.WeekGrid{{Day: 0, Hour: 8}: internal.Family}, nil))
	grid, _ = p.LoadWeekPlan(ctx, testUser, week(t, "2026-02-08"))
	assert.Len(t, grid, 1)
}

func TestStorageUnavailable(t *testing.T) {
	store := &brokenStore{getErr: errors.New("disk gone"), setErr: errors.New("quota exceeded")}
	p := NewPlanner(store, internal.NewNopLogger())
	ctx := context.Background()
	ws := week(t, "2026-02-08")

	grid := internal.WeekGrid{{Day: 0, Hour: 8}: internal.PaidWork}
	err := p.SaveWeekPlan(ctx, testUser, ws, grid, nil)
	assert.ErrorIs(t, err, internal.ErrStorageUnavailable)
	assert.Equal(t, 1, store.sets)
	assert.Len(t, grid, 1, "caller state is untouched")

	err = p.SaveDayReport(ctx, testUser, ws, 0, internal.NewDayReport())
	assert.ErrorIs(t, err, internal.ErrStorageUnavailable)

	loaded, _ := p.LoadWeekPlan(ctx, testUser, ws)
	assert.Empty(t, loaded)
	_, ok := p.LoadDayReport(ctx, testUser, ws, 0)
	assert.False(t, ok)
	assert.Empty(t, p.WeekSummary(ctx, testUser, ws).Rows)
}

func TestStoreKeepsOutOfRangeKeys(t *testing.T) {
	p, _ := newTestPlanner()
	ctx := context.Background()
	ws := week(t, "2026-02-08")

	report := internal.NewDayReport()
	report.Actual[2] = internal.Personal
	require.NoError(t, p.SaveDayReport(ctx, testUser, ws, 9, report))

	got, ok := p.LoadDayReport(ctx, testUser, ws, 9)
	require.True(t, ok)
	assert.Equal(t, internal.Personal, got.Actual[2])
}

func TestStoreKeepsOutOfRangeCells(t *testing.T) {
	p, _ := newTestPlanner()
	ctx := context.Background()
	earlier := week(t, "2026-02-01")
	ws := week(t, "2026-02-08")

	kept := internal.WeekGrid{{Day: 0, Hour: 8}: internal.Family}
	require.NoError(t, p.SaveWeekPlan(ctx, testUser, earlier, kept, nil))

	grid := internal.WeekGrid{
		{Day: -1, Hour: 8}: internal.Family,
		{Day: 7, Hour: 30}: internal.PaidWork,
		{Day: 2, Hour: -3}: internal.Personal,
	}
	notes := internal.WeekNotes{
		{Day: -1, Hour: 8}:  "before sunday",
		{Day: 7, Hour: 30}:  "nowhere",
		{Day: -2, Hour: -5}: "both negative",
	}
	require.NoError(t, p.SaveWeekPlan(ctx, testUser, ws, grid, notes))

	gotGrid, gotNotes := p.LoadWeekPlan(ctx, testUser, ws)
	assert.Equal(t, grid, gotGrid)
	assert.Equal(t, notes, gotNotes)

	other, _ := p.LoadWeekPlan(ctx, testUser, earlier)
	assert.Equal(t, kept, other, "other weeks stay intact")
}

func TestBadStoredNoteKeyKeepsDocument(t *testing.T) {
	p, store := newTestPlanner()
	ctx := context.Background()
	store.SetRaw(storage.UserKey(testUser.ID), []byte(`{"weeks":{
		"2026-02-01":{"grid":{"0-8":"FAMILY"}},
		"2026-02-08":{"notes":{"x":"lost","1-9":"kept"},"reports":{"0":{"actualNotes":{"eight":"lost","8":"kept"}}}}
	}}`))

	grid, _ := p.LoadWeekPlan(ctx, testUser, week(t, "2026-02-01"))
	assert.Equal(t, internal.WeekGrid{{Day: 0, Hour: 8}: internal.Family}, grid)

	_, notes := p.LoadWeekPlan(ctx, testUser, week(t, "2026-02-08"))
	assert.Equal(t, internal.WeekNotes{{Day: 1, Hour: 9}: "kept"}, notes)

	report, ok := p.LoadDayReport(ctx, testUser, week(t, "2026-02-08"), 0)
	require.True(t, ok)
	assert.Equal(t, internal.HourNotes{8: "kept"}, report.ActualNotes)
}
