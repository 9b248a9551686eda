// internal/server/handlers.go
package server

import (
	"encoding/json"
	"net/http"
	"strconv"
	"strings"

	"jobswipe-api/internal/common/errors"
	"jobswipe-api/internal/common/logger"
	"jobswipe-api/internal/common/validation"
	"jobswipe-api/internal/jobdata"
	"jobswipe-api/internal/proximity"
	"jobswipe-api/pkg/cities"

	"github.com/gin-gonic/gin"
)

// JobsHandler serves the proximity discovery endpoints.
type JobsHandler struct {
	service *proximity.Service
	errs    *errors.ErrorHandler
	logger  logger.Logger
}

func NewJobsHandler(service *proximity.Service, errs *errors.ErrorHandler, log logger.Logger) *JobsHandler {
	return &JobsHandler{
		service: service,
		errs:    errs,
		logger:  log.WithFields(map[string]interface{}{"component": "jobs_handler"}),
	}
}

// GetProximity handles GET /api/jobs/proximity.
//
// Query params: location (required), jobType and level (comma-separated,
// optional), remote (optional, defaults to any), limit (optional; non-numeric
// falls back to the default, oversized values are clamped).
func (h *JobsHandler) GetProximity(c *gin.Context) {
	location := strings.TrimSpace(c.Query("location"))
	remote := c.DefaultQuery("remote", string(proximity.RemoteAny))

	collector := validation.NewCollector()
	collector.RequireNonEmpty("location", location)
	collector.OneOf("remote", remote, proximity.RemoteFilterValues)

	if result := collector.Result(); !result.Valid {
		c.JSON(http.StatusBadRequest, gin.H{
			"success": false,
			"error":   "Validation failed",
			"details": result.Details(),
		})
		return
	}

	params := proximity.QueryParams{
		Location: location,
		Filters: proximity.Filters{
			JobTypes:  validation.ParseCSVSet(c.Query("jobType")),
			JobLevels: validation.ParseCSVSet(c.Query("level")),
			Remote:    proximity.RemoteFilter(remote),
		},
		Limit: parseLimit(c.Query("limit")),
	}

	result, err := h.service.Query(c.Request.Context(), params)
	if err != nil {
		h.errs.Respond(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"data":    result,
	})
}

// PostProximity handles POST /api/jobs/proximity, dispatching on the action
// field. Unknown actions are a client error.
func (h *JobsHandler) PostProximity(c *gin.Context) {
	var req ProximityActionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"success": false,
			"error":   "Validation failed",
			"details": []string{"action: required field missing or empty"},
		})
		return
	}

	switch req.Action {
	case ActionExpandSearch:
		h.expandSearch(c, req)
	case ActionSavePreference:
		h.savePreference(c, req)
	default:
		h.errs.Respond(c, errors.NewInvalidActionError(req.Action))
	}
}

func (h *JobsHandler) expandSearch(c *gin.Context, req ProximityActionRequest) {
	location := strings.TrimSpace(req.Location)

	collector := validation.NewCollector()
	collector.RequireNonEmpty("location", location)
	if result := collector.Result(); !result.Valid {
		c.JSON(http.StatusBadRequest, gin.H{
			"success": false,
			"error":   "Validation failed",
			"details": result.Details(),
		})
		return
	}

	result, err := h.service.Expand(c.Request.Context(), proximity.ExpandParams{
		Location: location,
		Filters:  req.Preferences.ToFilters(),
	})
	if err != nil {
		h.errs.Respond(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"data":    result,
	})
}

func (h *JobsHandler) savePreference(c *gin.Context, req ProximityActionRequest) {
	location := strings.TrimSpace(req.Location)

	collector := validation.NewCollector()
	collector.RequireNonEmpty("location", location)
	if result := collector.Result(); !result.Valid {
		c.JSON(http.StatusBadRequest, gin.H{
			"success": false,
			"error":   "Validation failed",
			"details": result.Details(),
		})
		return
	}

	rawPrefs, err := json.Marshal(req.Preferences)
	if err != nil {
		h.errs.Respond(c, errors.NewInternalError(err))
		return
	}

	pref := jobdata.LocationPreference{
		UserEmail:   c.GetString(contextKeyUserEmail),
		Location:    location,
		Preferences: rawPrefs,
	}
	if err := h.service.SavePreference(c.Request.Context(), pref); err != nil {
		h.errs.Respond(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"data": gin.H{
			"saved":       true,
			"location":    location,
			"preferences": req.Preferences,
		},
	})
}

// ListLocations handles GET /api/jobs/locations and returns the supported
// city set so clients can offer typeahead without a round trip per keystroke.
func (h *JobsHandler) ListLocations(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"data": gin.H{
			"cities": cities.KnownCities,
		},
	})
}

// HealthCheck reports process liveness.
func HealthCheck(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"status":  "ok",
		"service": "jobswipe-api",
	})
}

// parseLimit tolerates absent or malformed limit params: they fall back to
// the default and the service clamps the rest.
func parseLimit(raw string) int {
	if raw == "" {
		return proximity.DefaultLimit
	}
	n, err := strconv.Atoi(raw)
	if err != nil {
		return proximity.DefaultLimit
	}
	return n
}
