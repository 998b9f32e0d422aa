package handlers

import (
	"net/http"

	"smart_home_face/internal/models"

	"github.com/gin-gonic/gin"
)

// ToggleRequest is the payload for switching a device.
type ToggleRequest struct {
	// Allowed: on, off
	Status models.DeviceStatus `json:"status" binding:"required" example:"on"`
}

// @Summary      Dashboard snapshot
// @Description  Devices, sensors, last update time and derived connectivity.
// @Tags         dashboard
// @Produce      json
// @Success      200  {object}  service.DashboardSnapshot
// @Failure      401  {object}  map[string]string
// @Router       /api/v1/dashboard [get]
func (h *Handler) getDashboard(c *gin.Context) {
	c.JSON(http.StatusOK, h.services.Devices.Snapshot())
}

// @Summary      List devices
// @Tags         devices
// @Produce      json
// @Success      200  {object}  map[string]interface{}  "devices"
// @Failure      401  {object}  map[string]string
// @Router       /api/v1/devices [get]
func (h *Handler) getDevices(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"devices": h.services.Devices.Snapshot().Devices})
}

// @Summary      List sensors
// @Tags         devices
// @Produce      json
// @Success      200  {object}  map[string]interface{}  "sensors, connected"
// @Failure      401  {object}  map[string]string
// @Router       /api/v1/sensors [get]
func (h *Handler) getSensors(c *gin.Context) {
	snap := h.services.Devices.Snapshot()
	c.JSON(http.StatusOK, gin.H{"sensors": snap.Sensors, "connected": snap.Connected})
}

// @Summary      Toggle a device
// @Description  The new status is applied at once and rolled back if the remote service refuses it.
// @Tags         devices
// @Accept       json
// @Produce      json
// @Param        id     path      string         true  "device id"  Enums(fan,lights,ac)
// @Param        input  body      ToggleRequest  true  "status"
// @Success      200    {object}  map[string]interface{}  "device"
// @Failure      400    {object}  map[string]string
// @Failure      401    {object}  map[string]string
// @Failure      404    {object}  map[string]string
// @Failure      502    {object}  map[string]string
// @Router       /api/v1/devices/{id}/toggle [post]
// @Security     SessionAuth
func (h *Handler) toggleDevice(c *gin.Context) {
	var input ToggleRequest
	if ok := h.bindJSONOrBadRequest(c, &input); !ok {
		return
	}
	id := models.DeviceID(c.Param("id"))

	d, err := h.services.Devices.ToggleDevice(c.Request.Context(), id, input.Status)
	if err != nil {
		// d already carries the restored status
		h.respondError(c, "device_toggle_failed", err, gin.H{"device": d})
		return
	}
	c.JSON(http.StatusOK, gin.H{"device": d})
}
