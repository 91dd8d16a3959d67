package handlers

import (
	"errors"
	"fmt"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/I-s-h-a-n-1/I-Tech/internal/repository"
	"github.com/I-s-h-a-n-1/I-Tech/internal/security"
	"github.com/I-s-h-a-n-1/I-Tech/internal/service"
)

// adminDashboard shows every user, plus files and announcements
// oldest-first. The order is deliberately opposite to the user dashboard.
func (h *Handler) adminDashboard(c *gin.Context) {
	ctx := c.Request.Context()

	users, err := h.services.Users.List(ctx)
	if err != nil {
		h.serverError(c, "admin_users_failed", err)
		return
	}
	files, err := h.services.Files.List(ctx, repository.OrderOldestFirst)
	if err != nil {
		h.serverError(c, "admin_files_failed", err)
		return
	}
	messages, err := h.services.Announcements.List(ctx, repository.OrderOldestFirst)
	if err != nil {
		h.serverError(c, "admin_announcements_failed", err)
		return
	}

	c.HTML(http.StatusOK, "admin_dashboard.html", gin.H{
		"Admin":    currentAdmin(c),
		"Users":    users,
		"Files":    files,
		"Messages": messages,
		"Flashes":  h.sessions.Flashes(c.Writer, c.Request),
	})
}

// addUser creates an account from the admin form. A blank password falls
// back to the service default.
func (h *Handler) addUser(c *gin.Context) {
	username := c.PostForm("username")
	email := c.PostForm("email")
	if username == "" || email == "" {
		h.redirectWithFlash(c, security.FlashDanger, "Username and email are required.", "/admin")
		return
	}

	balance, _ := strconv.ParseFloat(c.DefaultPostForm("balance", "0"), 64)
	amountPaid, _ := strconv.ParseFloat(c.DefaultPostForm("amount_paid", "0"), 64)
	isAdmin := c.PostForm("is_admin") == "1"

	u, err := h.services.Users.Create(c.Request.Context(), service.CreateUserParams{
		Username:   username,
		Email:      email,
		Password:   c.PostForm("password"),
		Year:       c.PostForm("year"),
		Department: c.PostForm("department"),
		Balance:    balance,
		AmountPaid: amountPaid,
		IsAdmin:    isAdmin,
	})
	if errors.Is(err, service.ErrEmailExists) {
		h.redirectWithFlash(c, security.FlashDanger, "Email already exists!", "/admin")
		return
	}
	if err != nil {
		h.serverError(c, "add_user_failed", err)
		return
	}
	h.redirectWithFlash(c, security.FlashSuccess, fmt.Sprintf("User %s added!", u.Username), "/admin")
}

// deleteUser removes an account; deleting your own is always denied.
func (h *Handler) deleteUser(c *gin.Context) {
	id, ok := h.idParam(c)
	if !ok {
		return
	}
	ctx := c.Request.Context()

	target, err := h.services.Users.Get(ctx, id)
	if errors.Is(err, service.ErrNotFound) {
		h.redirectWithFlash(c, security.FlashDanger, "User not found.", "/admin")
		return
	}
	if err != nil {
		h.serverError(c, "delete_user_lookup_failed", err)
		return
	}

	err = h.services.Users.Delete(ctx, c.GetInt(ctxUserID), id)
	switch {
	case errors.Is(err, service.ErrSelfDeleteDenied):
		h.redirectWithFlash(c, security.FlashDanger, "You cannot delete yourself!", "/admin")
		return
	case errors.Is(err, service.ErrNotFound):
		h.redirectWithFlash(c, security.FlashDanger, "User not found.", "/admin")
		return
	case err != nil:
		h.serverError(c, "delete_user_failed", err)
		return
	}
	h.redirectWithFlash(c, security.FlashSuccess, fmt.Sprintf("User %s deleted!", target.Username), "/admin")
}

// resetUserPassword overwrites the target account's password. An empty form
// value is a no-op.
func (h *Handler) resetUserPassword(c *gin.Context) {
	id, ok := h.idParam(c)
	if !ok {
		return
	}
	ctx := c.Request.Context()
	newPassword := c.PostForm("new_password")

	target, err := h.services.Users.Get(ctx, id)
	if errors.Is(err, service.ErrNotFound) {
		h.redirectWithFlash(c, security.FlashDanger, "User not found.", "/admin")
		return
	}
	if err != nil {
		h.serverError(c, "reset_password_lookup_failed", err)
		return
	}

	if newPassword == "" {
		c.Redirect(http.StatusSeeOther, "/admin")
		return
	}
	if err := h.services.Users.ResetPassword(ctx, id, newPassword); err != nil {
		h.serverError(c, "reset_password_failed", err)
		return
	}
	h.redirectWithFlash(c, security.FlashSuccess,
		fmt.Sprintf("Password for %s reset successfully!", target.Username), "/admin")
}

// postAnnouncement publishes a notice to every dashboard.
func (h *Handler) postAnnouncement(c *gin.Context) {
	title := c.PostForm("mg-title")
	content := c.PostForm("announcement")

	a, err := h.services.Announcements.Post(c.Request.Context(), title, content)
	if err != nil {
		h.serverError(c, "post_announcement_failed", err)
		return
	}
	h.redirectWithFlash(c, security.FlashSuccess,
		fmt.Sprintf("Message %s has been uploaded", a.Header), "/admin")
}

// deleteAnnouncement removes a notice permanently.
func (h *Handler) deleteAnnouncement(c *gin.Context) {
	id, ok := h.idParam(c)
	if !ok {
		return
	}
	ctx := c.Request.Context()

	// Fetch first so the flash can name the deleted notice.
	a, err := h.services.Announcements.Get(ctx, id)
	if errors.Is(err, service.ErrNotFound) {
		h.redirectWithFlash(c, security.FlashDanger, "Message not found.", "/admin")
		return
	}
	if err != nil {
		h.serverError(c, "delete_announcement_lookup_failed", err)
		return
	}

	if err := h.services.Announcements.Delete(ctx, id); err != nil && !errors.Is(err, service.ErrNotFound) {
		h.serverError(c, "delete_announcement_failed", err)
		return
	}
	h.redirectWithFlash(c, security.FlashSuccess,
		fmt.Sprintf("Message '%s' deleted successfully!", a.Header), "/admin")
}
