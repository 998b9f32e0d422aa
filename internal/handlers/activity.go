package handlers

import (
	"errors"
	"fmt"
	"net/http"
	"strings"
	"time"

	"smart_home_face/internal/models"
	"smart_home_face/internal/service"

	"github.com/gin-gonic/gin"
)

const (
	layoutDateTime = "2006-01-02 15:04:05"
	layoutDate     = "2006-01-02"
)

var (
	errFromInvalid = errors.New("invalid 'from' time; use RFC3339, 'YYYY-MM-DD HH:MM:SS' or YYYY-MM-DD")
	errToInvalid   = errors.New("invalid 'to' time; use RFC3339, 'YYYY-MM-DD HH:MM:SS' or YYYY-MM-DD")
	errRange       = errors.New("'from' must be <= 'to'")
	errUnknownType = errors.New("unknown activity type")
)

var activityTypes = map[string]bool{
	models.EventLogin:          true,
	models.EventSignup:         true,
	models.EventLogout:         true,
	models.EventFaceAuth:       true,
	models.EventFaceRegister:   true,
	models.EventDeviceToggle:   true,
	models.EventSessionExpired: true,
}

// @Summary      List activity
// @Description  Filter by time (RFC3339, 'YYYY-MM-DD HH:MM:SS' or 'YYYY-MM-DD') and type. A date-only 'to' covers the whole day.
// @Tags         activity
// @Produce      json
// @Param        from  query     string  false  "Start of range"  example(2025-08-01)
// @Param        to    query     string  false  "End of range, inclusive"  example(2025-08-31)
// @Param        type  query     string  false  "Event type"  Enums(LOGIN,SIGNUP,LOGOUT,FACE_AUTH,FACE_REGISTER,DEVICE_TOGGLE,SESSION_EXPIRED)
// @Success      200   {object}  map[string]interface{}  "count, events"
// @Failure      400   {object}  map[string]string
// @Failure      401   {object}  map[string]string
// @Failure      500   {object}  map[string]string
// @Router       /api/v1/activity [get]
// @Security     SessionAuth
func (h *Handler) getActivity(c *gin.Context) {
	f, err := activityFilter(c.Query("from"), c.Query("to"), c.Query("type"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	events, err := h.services.ActivityLog.List(c.Request.Context(), f)
	if err != nil {
		h.logAndJSONError(c, http.StatusInternalServerError, errLoadActivity, "activity_list_failed", err,
			"from", f.From, "to", f.To, "type", f.Type)
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"count":  len(events),
		"events": events,
	})
}

// activityFilter turns raw query values into a validated filter.
func activityFilter(fromQ, toQ, typeQ string) (service.LogFilter, error) {
	var f service.LogFilter

	if fromQ != "" {
		t, err := parseQueryTime(fromQ)
		if err != nil {
			return f, errFromInvalid
		}
		f.From = t
	}
	if toQ != "" {
		t, err := parseQueryTime(toQ)
		if err != nil {
			return f, errToInvalid
		}
		if !strings.ContainsAny(toQ, "T ") {
			t = t.Add(24*time.Hour - time.Nanosecond)
		}
		f.To = t
	}
	if !f.From.IsZero() && !f.To.IsZero() && f.From.After(f.To) {
		return f, errRange
	}

	f.Type = strings.ToUpper(strings.TrimSpace(typeQ))
	if f.Type != "" && !activityTypes[f.Type] {
		return f, fmt.Errorf("%w: %q", errUnknownType, f.Type)
	}
	return f, nil
}

// parseQueryTime accepts RFC3339, a space separated date-time or a bare date, all read as UTC.
func parseQueryTime(s string) (time.Time, error) {
	for _, layout := range []string{time.RFC3339, layoutDateTime, layoutDate} {
		if t, err := time.Parse(layout, s); err == nil {
			return t.UTC(), nil
		}
	}
	return time.Time{}, fmt.Errorf("invalid time format %q", s)
}
