package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

const ctxUser = "user"

// sessionMiddleware admits requests only while the local session is authenticated.
func (h *Handler) sessionMiddleware(c *gin.Context) {
	sess := h.services.Auth.Session()
	if !sess.Authenticated || sess.User == nil {
		c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{
			"error": "not authenticated",
		})
		return
	}

	// store in Gin context
	c.Set(ctxUser, *sess.User)
	c.Next()
}

// revalidateSession re-checks the stored token with the remote service before
// a dashboard view or stream is opened. A token the service no longer accepts
// ends the session here instead of on the next explicit check.
func (h *Handler) revalidateSession(c *gin.Context) {
	sess := h.services.Auth.CheckAuth(c.Request.Context())
	if !sess.Authenticated || sess.User == nil {
		c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{
			"error": "session expired",
		})
		return
	}
	c.Set(ctxUser, *sess.User)
	c.Next()
}
