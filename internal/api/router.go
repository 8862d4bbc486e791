package api

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/yourname/timebalance/internal/auth"
	"github.com/yourname/timebalance/internal/config"
)

func NewRouter(app App, provider auth.Provider, cfg *config.Config) *gin.Engine {
	if cfg.Env != "development" {
		gin.SetMode(gin.ReleaseMode)
	}
	r := gin.New()
	r.Use(gin.Recovery(), RequestIDMiddleware(), LoggerMiddleware(app.Logger()))

	r.GET("/healthz", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})

	// Protected routes
	protected := r.Group("/api", auth.AuthMiddleware(provider, cfg))
	protected.GET("/weeks/:week/plan", GetWeekPlan(app))
	protected.PUT("/weeks/:week/plan", PutWeekPlan(app))
	protected.POST("/weeks/:week/plan/copy-previous", CopyPreviousWeek(app))
	protected.GET("/weeks/:week/days/:day/report", GetDayReport(app))
	protected.PUT("/weeks/:week/days/:day/report", PutDayReport(app))
	protected.GET("/weeks/:week/summary", GetWeekSummary(app))
	protected.GET("/weeks/:week/overview", GetWeekOverview(app))
	protected.GET("/history", GetHistory(app))
	protected.GET("/history/trend", GetTrend(app))
	return r
}
