package handlers

import (
	"net/http"
	"strings"

	"smart_home_face"

	"github.com/gin-gonic/gin"
)

// Credentials payload for login.
type loginRequest struct {
	Username string `json:"username" binding:"required"`
	Password string `json:"password" binding:"required"`
}

// SignupRequest is the JSON signup payload. Multipart signups carry the same
// fields plus an optional faceImage file.
type SignupRequest struct {
	Username string `json:"username" form:"username" binding:"required" example:"bob"`
	Email    string `json:"email" form:"email" binding:"required" example:"bob@example.com"`
	Password string `json:"password" form:"password" binding:"required" example:"secret1"`
}

// @Summary      Current session
// @Tags         session
// @Produce      json
// @Success      200  {object}  service.Session
// @Router       /api/session [get]
func (h *Handler) getSession(c *gin.Context) {
	c.JSON(http.StatusOK, h.services.Auth.Session())
}

// @Summary      Validate stored token
// @Description  Asks the remote service to confirm the stored token. An invalid token is cleared.
// @Tags         session
// @Produce      json
// @Success      200  {object}  service.Session
// @Router       /api/session/check [get]
func (h *Handler) checkSession(c *gin.Context) {
	c.JSON(http.StatusOK, h.services.Auth.CheckAuth(c.Request.Context()))
}

// @Summary      Log in
// @Tags         session
// @Accept       json
// @Produce      json
// @Param        input  body      loginRequest  true  "credentials"
// @Success      200    {object}  map[string]interface{}  "user, session"
// @Failure      400    {object}  map[string]string
// @Failure      401    {object}  map[string]string
// @Failure      502    {object}  map[string]string
// @Router       /api/session/login [post]
func (h *Handler) login(c *gin.Context) {
	var input loginRequest
	if ok := h.bindJSONOrBadRequest(c, &input); !ok {
		return
	}

	user, err := h.services.Auth.Login(c.Request.Context(), input.Username, input.Password)
	if err != nil {
		h.respondError(c, "session_login_failed", err, gin.H{"session": h.services.Auth.Session()})
		return
	}
	c.JSON(http.StatusOK, gin.H{"user": user, "session": h.services.Auth.Session()})
}

// @Summary      Sign up
// @Description  JSON, or multipart/form-data with an optional faceImage file enrolled in the same call.
// @Tags         session
// @Accept       json,mpfd
// @Produce      json
// @Param        input  body      SignupRequest  true  "account"
// @Success      200    {object}  map[string]interface{}  "user, session"
// @Failure      400    {object}  map[string]string
// @Failure      409    {object}  map[string]string
// @Router       /api/session/signup [post]
func (h *Handler) signup(c *gin.Context) {
	var (
		input SignupRequest
		req   smart_home_face.SignupRequest
	)
	if strings.HasPrefix(c.ContentType(), "multipart/") {
		if err := c.ShouldBind(&input); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": errInvalidBodyPref + err.Error()})
			return
		}
		img, ok, err := formImage(c, "faceImage")
		if err != nil {
			h.respondError(c, "session_signup_bad_image", err, nil)
			return
		}
		if ok {
			req.FaceImage = &img
		}
	} else if ok := h.bindJSONOrBadRequest(c, &input); !ok {
		return
	}
	req.Username, req.Email, req.Password = input.Username, input.Email, input.Password

	user, err := h.services.Auth.Signup(c.Request.Context(), req)
	if err != nil {
		h.respondError(c, "session_signup_failed", err, gin.H{"session": h.services.Auth.Session()})
		return
	}
	c.JSON(http.StatusOK, gin.H{"user": user, "session": h.services.Auth.Session()})
}

// @Summary      Enter demo mode
// @Tags         session
// @Produce      json
// @Success      200  {object}  service.Session
// @Router       /api/session/demo [post]
func (h *Handler) enterDemo(c *gin.Context) {
	if err := h.services.Auth.EnterDemo(c.Request.Context()); err != nil {
		h.respondError(c, "session_demo_failed", err, nil)
		return
	}
	c.JSON(http.StatusOK, h.services.Auth.Session())
}

// @Summary      Log out
// @Tags         session
// @Produce      json
// @Success      200  {object}  service.Session
// @Failure      500  {object}  map[string]string
// @Router       /api/session/logout [post]
func (h *Handler) logout(c *gin.Context) {
	if err := h.services.Auth.Logout(c.Request.Context()); err != nil {
		h.logAndJSONError(c, http.StatusInternalServerError, "failed to clear session", "session_logout_failed", err)
		return
	}
	c.JSON(http.StatusOK, h.services.Auth.Session())
}
