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

var errNothingToCopy = errors.New("previous week has no plan")

type weekPlanResponse struct {
	WeekStart string             `json:"weekStart"`
	Range     string             `json:"range"`
	Grid      internal.WeekGrid  `json:"grid"`
	Notes     internal.WeekNotes `json:"notes"`
}

func newWeekPlanResponse(weekStart time.Time, grid internal.WeekGrid, notes internal.WeekNotes) weekPlanResponse {
	return weekPlanResponse{
		WeekStart: calendar.WeekKey(weekStart),
		Range:     calendar.FormatWeekRange(weekStart),
		Grid:      grid,
		Notes:     notes,
	}
}

func GetWeekPlan(app App) gin.HandlerFunc {
	return func(c *gin.Context) {
		user := auth.CurrentUser(c)
		ws, err := weekParam(c, time.Now())
		if err != nil {
			HandleError(c, app.Logger(), err, 400, "Invalid week")
			return
		}
		grid, notes := app.Planner().LoadWeekPlan(c.Request.Context(), user, ws)
		HandleSuccess(c, app.Logger(), newWeekPlanResponse(ws, grid, notes), nil)
	}
}

func PutWeekPlan(app App) gin.HandlerFunc {
	return func(c *gin.Context) {
		user := auth.CurrentUser(c)
		ws, err := weekParam(c, time.Now())
		if err != nil {
			HandleError(c, app.Logger(), err, 400, "Invalid week")
			return
		}

		var req service.WeekPlanRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			HandleError(c, app.Logger(), err, 400, "Invalid JSON")
			return
		}
		if err := service.ValidateWeekPlanRequest(&req); err != nil {
			HandleError(c, app.Logger(), err, 400, "Validation failed")
			return
		}
		grid, notes, err := req.WeekPlan()
		if err != nil {
			HandleError(c, app.Logger(), err, 400, "Validation failed")
			return
		}

		err = app.Planner().SaveWeekPlan(c.Request.Context(), user, ws, grid, notes)
		HandleSaved(c, app.Logger(), newWeekPlanResponse(ws, grid, notes), err)
	}
}

// CopyPreviousWeek loads last week's plan and saves it as this week's.
func CopyPreviousWeek(app App) gin.HandlerFunc {
	return func(c *gin.Context) {
		user := auth.CurrentUser(c)
		ws, err := weekParam(c, time.Now())
		if err != nil {
			HandleError(c, app.Logger(), err, 400, "Invalid week")
			return
		}

		grid, notes, ok := app.Planner().CopyFromPreviousWeek(c.Request.Context(), user, ws)
		if !ok {
			HandleError(c, app.Logger(), errNothingToCopy, http.StatusNotFound, "Nothing to copy")
			return
		}
		err = app.Planner().SaveWeekPlan(c.Request.Context(), user, ws, grid, notes)
		HandleSaved(c, app.Logger(), newWeekPlanResponse(ws, grid, notes), err)
	}
}
