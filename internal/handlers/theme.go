package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

// ThemeRequest is the payload for setting the theme.
type ThemeRequest struct {
	// Allowed: light, dark
	Theme string `json:"theme" binding:"required" example:"dark"`
}

func (h *Handler) themeBody() gin.H {
	return gin.H{"theme": h.services.Theme.Theme(), "dark_mode": h.services.Theme.DarkMode()}
}

// @Summary      Current theme
// @Tags         theme
// @Produce      json
// @Success      200  {object}  map[string]interface{}  "theme, dark_mode"
// @Router       /api/theme [get]
func (h *Handler) getTheme(c *gin.Context) {
	c.JSON(http.StatusOK, h.themeBody())
}

// @Summary      Set theme
// @Tags         theme
// @Accept       json
// @Produce      json
// @Param        input  body      ThemeRequest  true  "theme"
// @Success      200    {object}  map[string]interface{}  "theme, dark_mode"
// @Failure      400    {object}  map[string]string
// @Router       /api/theme [post]
func (h *Handler) setTheme(c *gin.Context) {
	var input ThemeRequest
	if ok := h.bindJSONOrBadRequest(c, &input); !ok {
		return
	}
	if err := h.services.Theme.Set(c.Request.Context(), input.Theme); err != nil {
		h.respondError(c, "theme_set_failed", err, nil)
		return
	}
	c.JSON(http.StatusOK, h.themeBody())
}

// @Summary      Toggle theme
// @Tags         theme
// @Produce      json
// @Success      200  {object}  map[string]interface{}  "theme, dark_mode"
// @Failure      500  {object}  map[string]string
// @Router       /api/theme/toggle [post]
func (h *Handler) toggleTheme(c *gin.Context) {
	if _, err := h.services.Theme.Toggle(c.Request.Context()); err != nil {
		h.logAndJSONError(c, http.StatusInternalServerError, "failed to save theme", "theme_toggle_failed", err)
		return
	}
	c.JSON(http.StatusOK, h.themeBody())
}
