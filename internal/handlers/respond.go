package handlers

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"

	"smart_home_face/internal/camera"
	"smart_home_face/internal/gateway"
	"smart_home_face/internal/models"
	"smart_home_face/internal/service"

	"github.com/gin-gonic/gin"
)

const (
	statusOK = "ok"

	errInvalidBodyPref = "invalid body: "
	errLoadActivity    = "failed to load activity"

	// maxImageBytes bounds uploaded frames.
	maxImageBytes = 8 << 20
)

var errImageTooLarge = errors.New("image too large")

// Centralized error logging and response.
func (h *Handler) logAndJSONError(c *gin.Context, httpCode int, userMsg, logKey string, err error, kv ...interface{}) {
	if h.log != nil && err != nil {
		fields := append([]interface{}{"err", err}, kv...)
		h.log.Errorw(logKey, fields...)
	}
	c.JSON(httpCode, gin.H{"error": userMsg})
}

// bindJSONOrBadRequest tries to bind the request body into dst and writes a 400 JSON on failure.
// Returns false if the request was already handled (aborted), true otherwise.
func (h *Handler) bindJSONOrBadRequest(c *gin.Context, dst any) bool {
	if err := c.ShouldBindJSON(dst); err != nil {
		if h.log != nil {
			h.log.Infow("bad_request_body", "path", c.FullPath(), "err", err)
		}
		c.JSON(http.StatusBadRequest, gin.H{"error": errInvalidBodyPref + err.Error()})
		return false
	}
	return true
}

// httpStatus maps engine and gateway errors onto response codes.
func httpStatus(err error) int {
	var rej *gateway.RejectedError
	switch {
	case errors.As(err, &rej):
		if rej.Status >= 400 && rej.Status < 600 {
			return rej.Status
		}
		return http.StatusBadRequest
	case errors.Is(err, gateway.ErrTransport):
		return http.StatusBadGateway
	case errors.Is(err, service.ErrUnknownDevice):
		return http.StatusNotFound
	case errors.Is(err, service.ErrInvalidStatus), errors.Is(err, service.ErrInvalidTheme):
		return http.StatusBadRequest
	case errors.Is(err, service.ErrSessionChanged),
		errors.Is(err, camera.ErrNotStreaming),
		errors.Is(err, camera.ErrFrameNotReady),
		errors.Is(err, camera.ErrTornDown):
		return http.StatusConflict
	case errors.Is(err, camera.ErrPermissionDenied):
		return http.StatusForbidden
	case errors.Is(err, camera.ErrDeviceUnavailable):
		return http.StatusServiceUnavailable
	case errors.Is(err, context.DeadlineExceeded):
		return http.StatusGatewayTimeout
	case errors.Is(err, errImageTooLarge):
		return http.StatusRequestEntityTooLarge
	default:
		return http.StatusInternalServerError
	}
}

// errorMessage is the user-facing text for err.
func errorMessage(err error) string {
	var rej *gateway.RejectedError
	if errors.As(err, &rej) || errors.Is(err, gateway.ErrTransport) {
		return gateway.Message(err)
	}
	return err.Error()
}

// respondError writes err with the mapped status and any extra fields.
func (h *Handler) respondError(c *gin.Context, logKey string, err error, extra gin.H) {
	code := httpStatus(err)
	if h.log != nil {
		if code >= http.StatusInternalServerError {
			h.log.Errorw(logKey, "path", c.FullPath(), "err", err)
		} else {
			h.log.Infow(logKey, "path", c.FullPath(), "err", err)
		}
	}
	resp := gin.H{"error": errorMessage(err)}
	for k, v := range extra {
		resp[k] = v
	}
	c.JSON(code, resp)
}

// formImage reads an uploaded image from the multipart field. ok is false
// when the field is absent.
func formImage(c *gin.Context, field string) (img models.CapturedImage, ok bool, err error) {
	fh, err := c.FormFile(field)
	if err != nil {
		if errors.Is(err, http.ErrMissingFile) {
			return models.CapturedImage{}, false, nil
		}
		return models.CapturedImage{}, false, err
	}
	if fh.Size > maxImageBytes {
		return models.CapturedImage{}, true, fmt.Errorf("%w: %d bytes", errImageTooLarge, fh.Size)
	}
	f, err := fh.Open()
	if err != nil {
		return models.CapturedImage{}, true, err
	}
	defer f.Close()

	data, err := io.ReadAll(io.LimitReader(f, maxImageBytes))
	if err != nil {
		return models.CapturedImage{}, true, err
	}
	mime := fh.Header.Get("Content-Type")
	if mime == "" || mime == "application/octet-stream" {
		mime = models.MIMETypeJPEG
	}
	return models.CapturedImage{Data: data, MIMEType: mime}, true, nil
}

// @Summary      Health check
// @Tags         system
// @Produce      json
// @Success      200  {object}  map[string]string
// @Router       /health [get]
func (h *Handler) health(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"status": statusOK,
	})
}
