package api

import (
	"errors"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/yourname/timebalance/internal"
	"github.com/yourname/timebalance/internal/auth"
	"github.com/yourname/timebalance/internal/calendar"
	"github.com/yourname/timebalance/internal/service"
)

var errNoReport = errors.New("no report saved for this day")

type dayReportResponse struct {
	WeekStart     string              `json:"weekStart"`
	Day           int                 `json:"day"`
	Date          string              `json:"date"`
	Label         string              `json:"label"`
	Report        internal.DayReport  `json:"report"`
	PlannedBlocks []service.TimeBlock `json:"plannedBlocks"`
	ActualBlocks  []service.TimeBlock `json:"actualBlocks"`
}

func newDayReportResponse(weekStart time.Time, day int, r internal.DayReport) dayReportResponse {
	date := calendar.DateForDay(weekStart, day)
	return dayReportResponse{
		WeekStart:     calendar.WeekKey(weekStart),
		Day:           day,
		Date:          calendar.WeekKey(date),
		Label:         calendar.FormatDay(date),
		Report:        r,
		PlannedBlocks: service.Blocks(r.Planned, r.PlannedNotes),
		ActualBlocks:  service.Blocks(r.Actual, r.ActualNotes),
	}
}

func GetDayReport(app App) gin.HandlerFunc {
	return func(c *gin.Context) {
		user := auth.CurrentUser(c)
		ws, err := weekParam(c, time.Now())
		if err != nil {
			HandleError(c, app.Logger(), err, 400, "Invalid week")
			return
		}
		day, err := dayParam(c)
		if err != nil {
			HandleError(c, app.Logger(), err, 400, "Invalid day")
			return
		}

		report, ok := app.Planner().LoadDayReport(c.Request.Context(), user, ws, day)
		if !ok {
			HandleError(c, app.Logger(), errNoReport, http.StatusNotFound, "Report not found")
			return
		}
		HandleSuccess(c, app.Logger(), newDayReportResponse(ws, day, *report), nil)
	}
}

func PutDayReport(app App) gin.HandlerFunc {
	return func(c *gin.Context) {
		user := auth.CurrentUser(c)
		ws, err := weekParam(c, time.Now())
		if err != nil {
			HandleError(c, app.Logger(), err, 400, "Invalid week")
			return
		}
		day, err := dayParam(c)
		if err != nil {
			HandleError(c, app.Logger(), err, 400, "Invalid day")
			return
		}

		var req service.DayReportRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			HandleError(c, app.Logger(), err, 400, "Invalid JSON")
			return
		}
		if err := service.ValidateDayReportRequest(&req); err != nil {
			HandleError(c, app.Logger(), err, 400, "Validation failed")
			return
		}
		report, err := req.DayReport(day)
		if err != nil {
			HandleError(c, app.Logger(), err, 400, "Validation failed")
			return
		}

		err = app.Planner().SaveDayReport(c.Request.Context(), user, ws, day, report)
		HandleSaved(c, app.Logger(), newDayReportResponse(ws, day, report), err)
	}
}
