package service

import (
	"errors"
	"fmt"
	"strconv"

	"github.com/go-playground/validator/v10"
	"github.com/yourname/timebalance/internal"
	"github.com/yourname/timebalance/internal/calendar"
)

var validate = newValidator()

func newValidator() *validator.Validate {
	v := validator.New()
	// category accepts the six names plus the empty literal, which clears a cell.
	_ = v.RegisterValidation("category", func(fl validator.FieldLevel) bool {
		s := fl.Field().String()
		_, err := internal.ParseCategory(s)
		return err == nil || errors.Is(err, internal.ErrNoCategory)
	})
	_ = v.RegisterValidation("cellkey", func(fl validator.FieldLevel) bool {
		_, err := internal.ParseCellKey(fl.Field().String())
		return err == nil
	})
	return v
}

// WeekPlanRequest is the wire form of a week plan. Keys are "day-hour".
type WeekPlanRequest struct {
	Grid  map[string]string `json:"grid" validate:"omitempty,dive,keys,cellkey,endkeys,category"`
	Notes map[string]string `json:"notes" validate:"omitempty,dive,keys,cellkey,endkeys"`
}

// DayReportRequest is the wire form of a day report. Each side is given
// either as an hour map or as blocks; the hour map wins when both are set.
type DayReportRequest struct {
	Planned       map[string]string `json:"planned" validate:"omitempty,dive,keys,numeric,endkeys,category"`
	Actual        map[string]string `json:"actual" validate:"omitempty,dive,keys,numeric,endkeys,category"`
	PlannedNotes  map[string]string `json:"plannedNotes" validate:"omitempty,dive,keys,numeric,endkeys"`
	ActualNotes   map[string]string `json:"actualNotes" validate:"omitempty,dive,keys,numeric,endkeys"`
	PlannedBlocks []TimeBlock       `json:"plannedBlocks" validate:"omitempty,dive"`
	ActualBlocks  []TimeBlock       `json:"actualBlocks" validate:"omitempty,dive"`
}

func ValidateWeekPlanRequest(req *WeekPlanRequest) error {
	return validate.Struct(req)
}

func ValidateDayReportRequest(req *DayReportRequest) error {
	return validate.Struct(req)
}

// WeekPlan converts the request into domain maps. Empty cells and empty
// notes are dropped; a cell outside the plannable week is an error.
func (req *WeekPlanRequest) WeekPlan() (internal.WeekGrid, internal.WeekNotes, error) {
	grid := internal.WeekGrid{}
	for k, v := range req.Grid {
		key, err := parseCell(k)
		if err != nil {
			return nil, nil, err
		}
		cat, err := internal.ParseCategory(v)
		if errors.Is(err, internal.ErrNoCategory) {
			continue
		}
		if err != nil {
			return nil, nil, err
		}
		grid[key] = cat
	}
	notes := internal.WeekNotes{}
	for k, v := range req.Notes {
		key, err := parseCell(k)
		if err != nil {
			return nil, nil, err
		}
		if v != "" {
			notes[key] = v
		}
	}
	return grid, notes, nil
}

// DayReport converts the request into a report for day.
func (req *DayReportRequest) DayReport(day int) (internal.DayReport, error) {
	if !calendar.ValidDay(day) {
		return internal.DayReport{}, fmt.Errorf("%w: day %d", internal.ErrOutOfRange, day)
	}
	report := internal.NewDayReport()
	var err error
	if report.Planned, report.PlannedNotes, err = side(day, req.Planned, req.PlannedNotes, req.PlannedBlocks); err != nil {
		return internal.DayReport{}, err
	}
	if report.Actual, report.ActualNotes, err = side(day, req.Actual, req.ActualNotes, req.ActualBlocks); err != nil {
		return internal.DayReport{}, err
	}
	return report, nil
}

func side(day int, hours, notes map[string]string, blocks []TimeBlock) (internal.HourMap, internal.HourNotes, error) {
	if hours == nil && len(blocks) > 0 {
		m, n := ExpandBlocks(blocks)
		for h := range m {
			if !calendar.ValidHour(day, h) {
				return nil, nil, fmt.Errorf("%w: day %d hour %d", internal.ErrOutOfRange, day, h)
			}
		}
		for h, note := range notes {
			hour, err := parseHour(day, h)
			if err != nil {
				return nil, nil, err
			}
			if note != "" {
				n[hour] = note
			}
		}
		return m, n, nil
	}

	m := internal.HourMap{}
	for k, v := range hours {
		hour, err := parseHour(day, k)
		if err != nil {
			return nil, nil, err
		}
		cat, err := internal.ParseCategory(v)
		if errors.Is(err, internal.ErrNoCategory) {
			continue
		}
		if err != nil {
			return nil, nil, err
		}
		m[hour] = cat
	}
	n := internal.HourNotes{}
	for k, v := range notes {
		hour, err := parseHour(day, k)
		if err != nil {
			return nil, nil, err
		}
		if v != "" {
			n[hour] = v
		}
	}
	return m, n, nil
}

func parseCell(s string) (internal.CellKey, error) {
	key, err := internal.ParseCellKey(s)
	if err != nil {
		return internal.CellKey{}, err
	}
	if !calendar.ValidCell(key) {
		return internal.CellKey{}, fmt.Errorf("%w: cell %s", internal.ErrOutOfRange, s)
	}
	return key, nil
}

func parseHour(day int, s string) (int, error) {
	hour, err := strconv.Atoi(s)
	if err != nil {
		return 0, fmt.Errorf("%w: hour %q", internal.ErrOutOfRange, s)
	}
	if !calendar.ValidHour(day, hour) {
		return 0, fmt.Errorf("%w: day %d hour %d", internal.ErrOutOfRange, day, hour)
	}
	return hour, nil
}
