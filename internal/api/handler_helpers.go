package api

import (
	"errors"
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/yourname/timebalance/internal"
	"github.com/yourname/timebalance/internal/calendar"
	"github.com/yourname/timebalance/internal/response"
)

var errBadDay = errors.New("day must be 0..5")

func HandleError(c *gin.Context, logger internal.Logger, err error, status int, msg string) {
	requestID := c.GetString("request_id")
	logger.Errorf("[request_id=%s] %s: %v", requestID, msg, err)
	var resp response.APIResponse
	switch status {
	case 400:
		resp = response.BadRequest(msg + ": " + err.Error())
	case 404:
		resp = response.NotFound(msg + ": " + err.Error())
	case 500:
		resp = response.InternalError(msg + ": " + err.Error())
	default:
		resp = response.NewAppError(status, msg+": "+err.Error())
	}
	c.JSON(status, resp)
}

func HandleSuccess(c *gin.Context, logger internal.Logger, data interface{}, meta map[string]any) {
	requestID := c.GetString("request_id")
	logger.Infof("[request_id=%s] Success", requestID)
	c.JSON(200, response.Success(data, meta))
}

// HandleSaved answers a write. A write the store dropped is logged and
// reported with persisted=false; any other error is a 500.
func HandleSaved(c *gin.Context, logger internal.Logger, data interface{}, err error) {
	requestID := c.GetString("request_id")
	switch {
	case err == nil:
		logger.Infof("[request_id=%s] Saved", requestID)
		c.JSON(http.StatusOK, response.Saved(data, true))
	case errors.Is(err, internal.ErrStorageUnavailable):
		logger.Warnf("[request_id=%s] Not persisted: %v", requestID, err)
		c.JSON(http.StatusOK, response.Saved(data, false))
	default:
		HandleError(c, logger, err, http.StatusInternalServerError, "Failed to save")
	}
}

// weekParam resolves the :week path parameter, see calendar.ResolveWeek.
func weekParam(c *gin.Context, now time.Time) (time.Time, error) {
	return calendar.ResolveWeek(c.Param("week"), now)
}

func dayParam(c *gin.Context) (int, error) {
	day, err := strconv.Atoi(c.Param("day"))
	if err != nil || !calendar.ValidDay(day) {
		return 0, errBadDay
	}
	return day, nil
}
