package handlers

import (
	"html/template"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/I-s-h-a-n-1/I-Tech/internal/logger"
	"github.com/I-s-h-a-n-1/I-Tech/internal/security"
	"github.com/I-s-h-a-n-1/I-Tech/internal/service"
	"github.com/I-s-h-a-n-1/I-Tech/templates"
)

// Handler wires the HTTP layer to services, sessions and logging.
type Handler struct {
	services *service.Service
	sessions *security.SessionManager
	log      *logger.Logger
}

// NewHandler constructs the HTTP handler with its dependencies.
func NewHandler(services *service.Service, sessions *security.SessionManager, log *logger.Logger) *Handler {
	return &Handler{services: services, sessions: sessions, log: log}
}

// InitRoutes builds and returns the Gin router with all routes registered.
func (h *Handler) InitRoutes() *gin.Engine {
	router := gin.New()
	router.Use(gin.Recovery(), h.requestLogger())
	router.SetHTMLTemplate(template.Must(template.ParseFS(templates.FS, "*.html")))

	// Login is the only unauthenticated surface.
	router.GET("/", h.loginPage)
	router.POST("/", h.login)

	authed := router.Group("/", h.authRequired)
	{
		authed.GET("/dashboard", h.dashboard)
		authed.POST("/dashboard", h.updateProfilePicture)
		authed.GET("/download/:id", h.downloadFile)
		authed.GET("/view/:id", h.viewFile)
		authed.GET("/preview/:id", h.previewFile)
		authed.GET("/logout", h.logout)
	}

	// Admin routes stack both guards; authRequired short-circuits first.
	admin := router.Group("/", h.authRequired, h.adminRequired)
	{
		admin.GET("/admin", h.adminDashboard)
		admin.POST("/upload_file", h.uploadFile)
		admin.POST("/admin/add", h.addUser)
		admin.POST("/admin/delete/:id", h.deleteUser)
		admin.POST("/admin/delete_file/:id", h.deleteFile)
		admin.POST("/admin/reset_password/:id", h.resetUserPassword)
		admin.POST("/announcement", h.postAnnouncement)
		admin.POST("/delete/:id", h.deleteAnnouncement)
	}

	return router
}

// redirectWithFlash queues a one-shot notice and sends the browser on.
func (h *Handler) redirectWithFlash(c *gin.Context, level, message, location string) {
	if err := h.sessions.Flash(c.Writer, c.Request, level, message); err != nil && h.log != nil {
		h.log.Errorw("flash_save_failed", "err", err)
	}
	c.Redirect(http.StatusSeeOther, location)
}

// idParam parses the :id path segment. Returns ok=false after responding
// when the segment is not a number.
func (h *Handler) idParam(c *gin.Context) (int, bool) {
	id, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		c.String(http.StatusNotFound, "not found")
		c.Abort()
		return 0, false
	}
	return id, true
}

// serverError handles unrecoverable store failures: log and fail the
// request with a generic error, no retry.
func (h *Handler) serverError(c *gin.Context, action string, err error) {
	if h.log != nil {
		h.log.Errorw(action, "err", err)
	}
	c.String(http.StatusInternalServerError, "internal server error")
	c.Abort()
}
