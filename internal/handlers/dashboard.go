package handlers

import (
	"encoding/base64"
	"errors"
	"fmt"
	"html/template"
	"io"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/I-s-h-a-n-1/I-Tech/internal/repository"
	"github.com/I-s-h-a-n-1/I-Tech/internal/security"
	"github.com/I-s-h-a-n-1/I-Tech/internal/service"
)

// dashboard shows announcements and files newest-first, plus the user's
// profile picture inlined as a data URI.
func (h *Handler) dashboard(c *gin.Context) {
	ctx := c.Request.Context()
	userID := c.GetInt(ctxUserID)

	u, err := h.services.Users.Get(ctx, userID)
	if errors.Is(err, service.ErrNotFound) {
		// Stale session referencing a deleted account.
		_ = h.sessions.End(c.Writer, c.Request)
		h.redirectWithFlash(c, security.FlashWarning, "You must login first!", "/")
		return
	}
	if err != nil {
		h.serverError(c, "dashboard_user_lookup_failed", err)
		return
	}

	messages, err := h.services.Announcements.List(ctx, repository.OrderNewestFirst)
	if err != nil {
		h.serverError(c, "dashboard_announcements_failed", err)
		return
	}
	files, err := h.services.Files.List(ctx, repository.OrderNewestFirst)
	if err != nil {
		h.serverError(c, "dashboard_files_failed", err)
		return
	}

	// html/template rejects dynamic data: URLs, so the full URI is passed
	// pre-built as a trusted value.
	var picData template.URL
	if len(u.ProfilePic) > 0 {
		mime := u.PicMimeType
		if mime == "" {
			mime = "image/png"
		}
		picData = template.URL(fmt.Sprintf("data:%s;base64,%s",
			mime, base64.StdEncoding.EncodeToString(u.ProfilePic)))
	}

	c.HTML(http.StatusOK, "dashboard.html", gin.H{
		"User":     u,
		"PicData":  picData,
		"Files":    files,
		"Messages": messages,
		"Flashes":  h.sessions.Flashes(c.Writer, c.Request),
	})
}

// updateProfilePicture overwrites the stored picture blob with the uploaded
// image; no validation beyond what the form enforces.
func (h *Handler) updateProfilePicture(c *gin.Context) {
	file, header, err := c.Request.FormFile("profile_pic")
	if err != nil {
		h.redirectWithFlash(c, security.FlashDanger, "Please choose a picture.", "/dashboard")
		return
	}
	defer file.Close()

	data, err := io.ReadAll(file)
	if err != nil {
		h.serverError(c, "profile_pic_read_failed", err)
		return
	}

	userID := c.GetInt(ctxUserID)
	mimeType := header.Header.Get("Content-Type")
	if err := h.services.Users.UpdateProfilePicture(c.Request.Context(), userID, data, mimeType); err != nil {
		h.serverError(c, "profile_pic_update_failed", err)
		return
	}
	h.redirectWithFlash(c, security.FlashSuccess, "Profile picture updated!", "/dashboard")
}

// previewFile renders a page embedding the inline view URL.
func (h *Handler) previewFile(c *gin.Context) {
	id, ok := h.idParam(c)
	if !ok {
		return
	}
	f, err := h.services.Files.Get(c.Request.Context(), id)
	if errors.Is(err, service.ErrNotFound) {
		h.redirectWithFlash(c, security.FlashDanger, "File not found.", "/dashboard")
		return
	}
	if err != nil {
		h.serverError(c, "preview_lookup_failed", err)
		return
	}
	c.HTML(http.StatusOK, "preview.html", gin.H{
		"File":    f,
		"FileURL": fmt.Sprintf("/view/%d", f.ID),
		"Flashes": h.sessions.Flashes(c.Writer, c.Request),
	})
}
