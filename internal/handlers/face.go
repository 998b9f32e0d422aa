package handlers

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
)

const (
	captureAuthenticate = "authenticate"
	captureRegister     = "register"
)

// CaptureRequest selects what to do with a frame grabbed from the camera.
type CaptureRequest struct {
	// Action to run. Allowed: authenticate, register
	Action string `json:"action" example:"authenticate"`
	// Username to enroll (required when action=register)
	Username string `json:"username,omitempty" example:"bob"`
}

// @Summary      Face flow status
// @Tags         face
// @Produce      json
// @Success      200  {object}  service.FaceStatus
// @Router       /api/face [get]
func (h *Handler) faceStatus(c *gin.Context) {
	c.JSON(http.StatusOK, h.services.Face.Status())
}

// @Summary      Authenticate by face
// @Tags         face
// @Accept       mpfd
// @Produce      json
// @Param        image  formData  file  true  "JPEG frame"
// @Success      200    {object}  smart_home_face.FaceAuthResponse
// @Failure      400    {object}  map[string]string
// @Failure      403    {object}  map[string]string
// @Router       /api/face/authenticate [post]
func (h *Handler) authenticateFace(c *gin.Context) {
	img, ok, err := formImage(c, "image")
	if err != nil || !ok {
		c.JSON(http.StatusBadRequest, gin.H{"error": "No image provided"})
		return
	}
	resp, err := h.services.Face.Authenticate(c.Request.Context(), img)
	if err != nil {
		h.respondError(c, "face_authenticate_failed", err, gin.H{"result": resp})
		return
	}
	c.JSON(http.StatusOK, resp)
}

// @Summary      Register a face
// @Tags         face
// @Accept       mpfd
// @Produce      json
// @Param        image     formData  file    true  "JPEG frame"
// @Param        username  formData  string  true  "user to enroll"
// @Success      200       {object}  smart_home_face.FaceRegisterResponse
// @Failure      400       {object}  map[string]string
// @Router       /api/face/register [post]
func (h *Handler) registerFace(c *gin.Context) {
	username := strings.TrimSpace(c.PostForm("username"))
	if username == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "username is required"})
		return
	}
	img, ok, err := formImage(c, "image")
	if err != nil || !ok {
		c.JSON(http.StatusBadRequest, gin.H{"error": "No image provided"})
		return
	}
	resp, err := h.services.Face.Register(c.Request.Context(), img, username)
	if err != nil {
		h.respondError(c, "face_register_failed", err, gin.H{"result": resp})
		return
	}
	c.JSON(http.StatusOK, resp)
}

// @Summary      Capture from the camera and run a face flow
// @Description  The camera must be streaming. Defaults to authenticate.
// @Tags         face
// @Accept       json
// @Produce      json
// @Param        input  body      CaptureRequest  false  "action"
// @Success      200    {object}  map[string]interface{}
// @Failure      400    {object}  map[string]string
// @Failure      409    {object}  map[string]string
// @Router       /api/face/capture [post]
func (h *Handler) captureFace(c *gin.Context) {
	var input CaptureRequest
	if c.Request.ContentLength > 0 {
		if ok := h.bindJSONOrBadRequest(c, &input); !ok {
			return
		}
	}
	ctx := c.Request.Context()

	switch strings.ToLower(strings.TrimSpace(input.Action)) {
	case "", captureAuthenticate:
		resp, err := h.services.Face.CaptureAndAuthenticate(ctx, h.camera)
		if err != nil {
			h.respondError(c, "face_capture_authenticate_failed", err, gin.H{"result": resp})
			return
		}
		c.JSON(http.StatusOK, resp)
	case captureRegister:
		username := strings.TrimSpace(input.Username)
		if username == "" {
			c.JSON(http.StatusBadRequest, gin.H{"error": "username is required"})
			return
		}
		resp, err := h.services.Face.CaptureAndRegister(ctx, h.camera, username)
		if err != nil {
			h.respondError(c, "face_capture_register_failed", err, gin.H{"result": resp})
			return
		}
		c.JSON(http.StatusOK, resp)
	default:
		c.JSON(http.StatusBadRequest, gin.H{"error": "action must be authenticate or register"})
	}
}
