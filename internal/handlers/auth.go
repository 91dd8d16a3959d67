package handlers

import (
	"errors"
	"fmt"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/I-s-h-a-n-1/I-Tech/internal/security"
	"github.com/I-s-h-a-n-1/I-Tech/internal/service"
)

// loginPage renders the login form with any pending flashes.
func (h *Handler) loginPage(c *gin.Context) {
	c.HTML(http.StatusOK, "login.html", gin.H{
		"Flashes": h.sessions.Flashes(c.Writer, c.Request),
	})
}

// login authenticates the posted credentials and starts a session. Admins
// land on /admin, everyone else on /dashboard.
func (h *Handler) login(c *gin.Context) {
	email := c.PostForm("email")
	password := c.PostForm("password")
	if email == "" || password == "" {
		h.redirectWithFlash(c, security.FlashDanger, "Please fill in all required fields correctly.", "/")
		return
	}

	u, err := h.services.Auth.Login(c.Request.Context(), email, password)
	switch {
	case errors.Is(err, service.ErrNoSuchAccount):
		h.redirectWithFlash(c, security.FlashDanger, "No account found with that email.", "/")
		return
	case errors.Is(err, service.ErrBadCredentials):
		h.redirectWithFlash(c, security.FlashDanger, "Incorrect password. Please try again.", "/")
		return
	case err != nil:
		h.serverError(c, "login_failed", err)
		return
	}

	if err := h.sessions.Start(c.Writer, c.Request, u.ID, u.IsAdmin); err != nil {
		h.serverError(c, "session_start_failed", err)
		return
	}

	target := "/dashboard"
	if u.IsAdmin {
		target = "/admin"
	}
	h.redirectWithFlash(c, security.FlashSuccess, fmt.Sprintf("Welcome %s!", u.Username), target)
}

// logout destroys the session unconditionally.
func (h *Handler) logout(c *gin.Context) {
	if err := h.sessions.End(c.Writer, c.Request); err != nil {
		h.serverError(c, "session_end_failed", err)
		return
	}
	h.redirectWithFlash(c, security.FlashInfo, "Logged out successfully!", "/")
}
