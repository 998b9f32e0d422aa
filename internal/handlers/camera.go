package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

// requireCamera rejects camera-backed routes when no capture session is wired.
func (h *Handler) requireCamera(c *gin.Context) {
	if h.camera == nil {
		c.AbortWithStatusJSON(http.StatusServiceUnavailable, gin.H{"error": "no camera configured"})
		return
	}
	c.Next()
}

// @Summary      Camera status
// @Tags         camera
// @Produce      json
// @Success      200  {object}  camera.Status
// @Router       /api/camera [get]
func (h *Handler) cameraStatus(c *gin.Context) {
	c.JSON(http.StatusOK, h.camera.Status())
}

// @Summary      Start the camera
// @Description  Blocks until the first frame metadata is available.
// @Tags         camera
// @Produce      json
// @Success      200  {object}  camera.Status
// @Failure      403  {object}  map[string]string
// @Failure      503  {object}  map[string]string
// @Router       /api/camera/start [post]
func (h *Handler) startCamera(c *gin.Context) {
	if err := h.camera.Start(c.Request.Context()); err != nil {
		h.respondError(c, "camera_start_failed", err, gin.H{"camera": h.camera.Status()})
		return
	}
	c.JSON(http.StatusOK, h.camera.Status())
}

// @Summary      Stop the camera
// @Tags         camera
// @Produce      json
// @Success      200  {object}  camera.Status
// @Router       /api/camera/stop [post]
func (h *Handler) stopCamera(c *gin.Context) {
	h.camera.Stop()
	c.JSON(http.StatusOK, h.camera.Status())
}
