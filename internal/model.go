package internal

import (
	"encoding/json"
	"fmt"
	"strconv"
	"strings"
)

type User struct {
	ID    string `json:"id"`
	Token string `json:"token"`
	Name  string `json:"name"`
}

// CellKey addresses one hour slot of the week grid. Its text form is
// "day-hour", e.g. "0-8" for Sunday 08:00.
type CellKey struct {
	Day  int
	Hour int
}

func (k CellKey) String() string {
	return strconv.Itoa(k.Day) + "-" + strconv.Itoa(k.Hour)
}

func (k CellKey) MarshalText() ([]byte, error) {
	return []byte(k.String()), nil
}

func (k *CellKey) UnmarshalText(b []byte) error {
	parsed, err := ParseCellKey(string(b))
	if err != nil {
		return err
	}
	*k = parsed
	return nil
}

// ParseCellKey parses the "day-hour" form produced by CellKey.String,
// negative parts included ("-1-8", "2--3").
func ParseCellKey(s string) (CellKey, error) {
	if s == "" {
		return CellKey{}, fmt.Errorf("%w: %q", ErrInvalidCellKey, s)
	}
	// The separator is the first '-' after the day's optional sign.
	i := strings.IndexByte(s[1:], '-')
	if i < 0 {
		return CellKey{}, fmt.Errorf("%w: %q", ErrInvalidCellKey, s)
	}
	dayStr, hourStr := s[:i+1], s[i+2:]
	day, err := strconv.Atoi(dayStr)
	if err != nil {
		return CellKey{}, fmt.Errorf("%w: %q", ErrInvalidCellKey, s)
	}
	hour, err := strconv.Atoi(hourStr)
	if err != nil {
		return CellKey{}, fmt.Errorf("%w: %q", ErrInvalidCellKey, s)
	}
	return CellKey{Day: day, Hour: hour}, nil
}

// WeekGrid is the week-wide plan. A missing key means the cell is empty.
type WeekGrid map[CellKey]Category

// UnmarshalJSON drops cells holding the empty sentinel, unknown categories
// or unparsable keys instead of failing the whole document.
func (g *WeekGrid) UnmarshalJSON(b []byte) error {
	var raw map[string]string
	if err := json.Unmarshal(b, &raw); err != nil {
		return err
	}
	out := make(WeekGrid, len(raw))
	for k, v := range raw {
		key, err := ParseCellKey(k)
		if err != nil {
			continue
		}
		cat, err := ParseCategory(v)
		if err != nil {
			continue
		}
		out[key] = cat
	}
	*g = out
	return nil
}

// HasActivity reports whether at least one cell holds a category.
func (g WeekGrid) HasActivity() bool {
	for _, c := range g {
		if c.Valid() {
			return true
		}
	}
	return false
}

type WeekNotes map[CellKey]string

// UnmarshalJSON drops notes under unparsable keys so one bad entry cannot
// make the whole document unreadable.
func (n *WeekNotes) UnmarshalJSON(b []byte) error {
	var raw map[string]string
	if err := json.Unmarshal(b, &raw); err != nil {
		return err
	}
	out := make(WeekNotes, len(raw))
	for k, v := range raw {
		key, err := ParseCellKey(k)
		if err != nil {
			continue
		}
		out[key] = v
	}
	*n = out
	return nil
}

// HourMap assigns a category to hours of a single day.
type HourMap map[int]Category

func (m *HourMap) UnmarshalJSON(b []byte) error {
	var raw map[string]string
	if err := json.Unmarshal(b, &raw); err != nil {
		return err
	}
	out := make(HourMap, len(raw))
	for k, v := range raw {
		hour, err := strconv.Atoi(k)
		if err != nil {
			continue
		}
		cat, err := ParseCategory(v)
		if err != nil {
			continue
		}
		out[hour] = cat
	}
	*m = out
	return nil
}

func (m HourMap) HasActivity() bool {
	for _, c := range m {
		if c.Valid() {
			return true
		}
	}
	return false
}

type HourNotes map[int]string

func (n *HourNotes) UnmarshalJSON(b []byte) error {
	var raw map[string]string
	if err := json.Unmarshal(b, &raw); err != nil {
		return err
	}
	out := make(HourNotes, len(raw))
	for k, v := range raw {
		hour, err := strconv.Atoi(k)
		if err != nil {
			continue
		}
		out[hour] = v
	}
	*n = out
	return nil
}

// DayReport holds the per-hour planned and actual record of one day.
// Planned and Actual are edited independently of each other.
type DayReport struct {
	Planned      HourMap   `json:"planned"`
	Actual       HourMap   `json:"actual"`
	PlannedNotes HourNotes `json:"plannedNotes"`
	ActualNotes  HourNotes `json:"actualNotes"`
}

// NewDayReport returns a report with all maps allocated.
func NewDayReport() DayReport {
	return DayReport{
		Planned:      HourMap{},
		Actual:       HourMap{},
		PlannedNotes: HourNotes{},
		ActualNotes:  HourNotes{},
	}
}

func (r *DayReport) normalize() {
	if r.Planned == nil {
		r.Planned = HourMap{}
	}
	if r.Actual == nil {
		r.Actual = HourMap{}
	}
	if r.PlannedNotes == nil {
		r.PlannedNotes = HourNotes{}
	}
	if r.ActualNotes == nil {
		r.ActualNotes = HourNotes{}
	}
}

type WeekData struct {
	Grid    WeekGrid          `json:"grid"`
	Notes   WeekNotes         `json:"notes"`
	Reports map[int]DayReport `json:"reports"`
}

func NewWeekData() *WeekData {
	return &WeekData{
		Grid:    WeekGrid{},
		Notes:   WeekNotes{},
		Reports: map[int]DayReport{},
	}
}

// Normalize allocates any nil map so callers never have to nil-check.
func (w *WeekData) Normalize() {
	if w.Grid == nil {
		w.Grid = WeekGrid{}
	}
	if w.Notes == nil {
		w.Notes = WeekNotes{}
	}
	if w.Reports == nil {
		w.Reports = map[int]DayReport{}
	}
	for day, r := range w.Reports {
		r.normalize()
		w.Reports[day] = r
	}
}

// UserDocument is everything stored for one user, keyed by week start
// date (YYYY-MM-DD).
type UserDocument struct {
	Weeks map[string]*WeekData `json:"weeks"`
}

func NewUserDocument() *UserDocument {
	return &UserDocument{Weeks: map[string]*WeekData{}}
}

// Normalize drops null weeks and allocates missing maps.
func (d *UserDocument) Normalize() {
	if d.Weeks == nil {
		d.Weeks = map[string]*WeekData{}
	}
	for key, w := range d.Weeks {
		if w == nil {
			delete(d.Weeks, key)
			continue
		}
		w.Normalize()
	}
}

// Week returns the stored week, creating an empty one when absent.
func (d *UserDocument) Week(key string) *WeekData {
	if d.Weeks == nil {
		d.Weeks = map[string]*WeekData{}
	}
	w, ok := d.Weeks[key]
	if !ok || w == nil {
		w = NewWeekData()
		d.Weeks[key] = w
	}
	return w
}
