package api

import (
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/yourname/timebalance/internal/auth"
	"github.com/yourname/timebalance/internal/calendar"
)

func GetWeekSummary(app App) gin.HandlerFunc {
	return func(c *gin.Context) {
		user := auth.CurrentUser(c)
		ws, err := weekParam(c, time.Now())
		if err != nil {
			HandleError(c, app.Logger(), err, 400, "Invalid week")
			return
		}
		summary := app.Planner().WeekSummary(c.Request.Context(), user, ws)
		meta := map[string]any{
			"weekStart": calendar.WeekKey(ws),
			"range":     calendar.FormatWeekRange(ws),
		}
		HandleSuccess(c, app.Logger(), summary, meta)
	}
}

func GetWeekOverview(app App) gin.HandlerFunc {
	return func(c *gin.Context) {
		user := auth.CurrentUser(c)
		ws, err := weekParam(c, time.Now())
		if err != nil {
			HandleError(c, app.Logger(), err, 400, "Invalid week")
			return
		}
		HandleSuccess(c, app.Logger(), app.Planner().Overview(c.Request.Context(), user, ws), nil)
	}
}

func GetHistory(app App) gin.HandlerFunc {
	return func(c *gin.Context) {
		user := auth.CurrentUser(c)
		history := app.Planner().History(c.Request.Context(), user)
		HandleSuccess(c, app.Logger(), history, map[string]any{"count": len(history)})
	}
}

// GetTrend compares the weeks listed in ?weeks=a,b,c; without the
// parameter every stored week is compared. Dates are snapped to Sunday.
func GetTrend(app App) gin.HandlerFunc {
	return func(c *gin.Context) {
		user := auth.CurrentUser(c)
		var keys []string
		if raw := strings.TrimSpace(c.Query("weeks")); raw != "" {
			for _, part := range strings.Split(raw, ",") {
				d, err := calendar.ParseWeekKey(strings.TrimSpace(part))
				if err != nil {
					HandleError(c, app.Logger(), err, 400, "Invalid week")
					return
				}
				keys = append(keys, calendar.WeekKey(calendar.WeekStart(d)))
			}
		}
		HandleSuccess(c, app.Logger(), app.Planner().Trend(c.Request.Context(), user, keys...), nil)
	}
}
