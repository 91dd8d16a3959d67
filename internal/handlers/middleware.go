package handlers

import (
	"errors"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/I-s-h-a-n-1/I-Tech/internal/models"
	"github.com/I-s-h-a-n-1/I-Tech/internal/security"
	"github.com/I-s-h-a-n-1/I-Tech/internal/service"
)

// Context keys set by the access guards.
const (
	ctxUserID  = "userID"
	ctxIsAdmin = "isAdmin"
	ctxUser    = "currentUser"
)

// authRequired rejects requests without a valid session: flash a warning
// and send the browser back to the login page.
func (h *Handler) authRequired(c *gin.Context) {
	userID, isAdmin, ok := h.sessions.Current(c.Request)
	if !ok {
		_ = h.sessions.Flash(c.Writer, c.Request, security.FlashWarning, "You must login first!")
		c.Redirect(http.StatusSeeOther, "/")
		c.Abort()
		return
	}
	c.Set(ctxUserID, userID)
	c.Set(ctxIsAdmin, isAdmin)
	c.Next()
}

// adminRequired re-resolves the session user against the store and rejects
// non-admins with a redirect to the regular dashboard. The store lookup,
// not the cached session flag, is authoritative.
func (h *Handler) adminRequired(c *gin.Context) {
	userID := c.GetInt(ctxUserID)
	u, err := h.services.Users.Get(c.Request.Context(), userID)
	if err != nil && !errors.Is(err, service.ErrNotFound) {
		h.serverError(c, "admin_guard_lookup_failed", err)
		return
	}
	if u == nil || !u.IsAdmin {
		_ = h.sessions.Flash(c.Writer, c.Request, security.FlashDanger, "Access denied: admin only area!")
		c.Redirect(http.StatusSeeOther, "/dashboard")
		c.Abort()
		return
	}
	c.Set(ctxUser, u)
	c.Next()
}

// currentAdmin returns the user resolved by adminRequired.
func currentAdmin(c *gin.Context) *models.User {
	u, _ := c.MustGet(ctxUser).(*models.User)
	return u
}

// requestLogger tags every request with an id and logs the outcome.
func (h *Handler) requestLogger() gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		requestID := uuid.NewString()
		c.Set("requestID", requestID)

		c.Next()

		if h.log != nil {
			h.log.Infow("http_request",
				"request_id", requestID,
				"method", c.Request.Method,
				"path", c.Request.URL.Path,
				"status", c.Writer.Status(),
				"latency", time.Since(start),
			)
		}
	}
}
