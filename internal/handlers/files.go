package handlers

import (
	"errors"
	"fmt"
	"io"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/I-s-h-a-n-1/I-Tech/internal/models"
	"github.com/I-s-h-a-n-1/I-Tech/internal/security"
	"github.com/I-s-h-a-n-1/I-Tech/internal/service"
)

// uploadFile stores a new document from the admin upload form.
func (h *Handler) uploadFile(c *gin.Context) {
	file, header, err := c.Request.FormFile("file")
	if err != nil {
		h.redirectWithFlash(c, security.FlashDanger, "Please choose a file to upload.", "/admin")
		return
	}
	defer file.Close()

	year := c.PostForm("studentYear")
	if year == "" {
		h.redirectWithFlash(c, security.FlashDanger, "Please fill in the student year.", "/admin")
		return
	}

	data, err := io.ReadAll(file)
	if err != nil {
		h.serverError(c, "upload_read_failed", err)
		return
	}

	contentType := header.Header.Get("Content-Type")
	f, err := h.services.Files.Upload(c.Request.Context(), header.Filename, contentType, year, data)
	if err != nil {
		h.serverError(c, "upload_store_failed", err)
		return
	}
	h.redirectWithFlash(c, security.FlashSuccess, fmt.Sprintf("File %q uploaded!", f.Filename), "/admin")
}

// deleteFile removes a stored document permanently.
func (h *Handler) deleteFile(c *gin.Context) {
	id, ok := h.idParam(c)
	if !ok {
		return
	}
	ctx := c.Request.Context()

	f, err := h.services.Files.Get(ctx, id)
	if errors.Is(err, service.ErrNotFound) {
		h.redirectWithFlash(c, security.FlashDanger, "File not found.", "/admin")
		return
	}
	if err != nil {
		h.serverError(c, "delete_file_lookup_failed", err)
		return
	}
	if err := h.services.Files.Delete(ctx, id); err != nil && !errors.Is(err, service.ErrNotFound) {
		h.serverError(c, "delete_file_failed", err)
		return
	}
	h.redirectWithFlash(c, security.FlashSuccess,
		fmt.Sprintf("File '%s' deleted successfully!", f.Filename), "/admin")
}

// downloadFile streams the stored bytes as an attachment under the stored
// filename.
func (h *Handler) downloadFile(c *gin.Context) {
	f, ok := h.fetchFile(c)
	if !ok {
		return
	}
	c.Header("Content-Disposition", fmt.Sprintf("attachment; filename=%q", f.Filename))
	c.Data(http.StatusOK, fileContentType(f), f.Data)
}

// viewFile streams the same bytes inline so browsers render them with the
// stored MIME type.
func (h *Handler) viewFile(c *gin.Context) {
	f, ok := h.fetchFile(c)
	if !ok {
		return
	}
	c.Header("Content-Disposition", fmt.Sprintf("inline; filename=%q", f.Filename))
	c.Data(http.StatusOK, fileContentType(f), f.Data)
}

// fetchFile resolves the :id file for the delivery routes. Returns ok=false
// after responding when the file cannot be served.
func (h *Handler) fetchFile(c *gin.Context) (*models.StoredFile, bool) {
	id, ok := h.idParam(c)
	if !ok {
		return nil, false
	}
	f, err := h.services.Files.Get(c.Request.Context(), id)
	if errors.Is(err, service.ErrNotFound) {
		h.redirectWithFlash(c, security.FlashDanger, "File not found.", "/dashboard")
		return nil, false
	}
	if err != nil {
		h.serverError(c, "file_lookup_failed", err)
		return nil, false
	}
	return f, true
}

func fileContentType(f *models.StoredFile) string {
	if f.Filetype != "" {
		return f.Filetype
	}
	return "application/octet-stream"
}
