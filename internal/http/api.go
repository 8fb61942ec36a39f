package http

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"

	"school-cms/internal/auth"
	"school-cms/internal/docstore"
	"school-cms/internal/domain"
	"school-cms/internal/repository"
	"school-cms/internal/service"
	"school-cms/internal/site"
	"school-cms/internal/storage"
)

const serviceName = "School CMS API"

// Handler wires HTTP routes to domain services. The store-backed fields are
// nil when the database never came up; affected endpoints then fail fast
// with 503 instead of crashing.
type Handler struct {
	content   service.ContentService
	login     *auth.Service
	resolver  *auth.IdentityResolver
	storage   storage.Service
	uploadDir string
	logger    *logrus.Logger
}

func NewHandler(content service.ContentService, login *auth.Service, resolver *auth.IdentityResolver, store storage.Service, uploadDir string, logger *logrus.Logger) *Handler {
	return &Handler{
		content:   content,
		login:     login,
		resolver:  resolver,
		storage:   store,
		uploadDir: uploadDir,
		logger:    logger,
	}
}

func (h *Handler) RegisterRoutes(router *gin.Engine) {
	router.Use(corsMiddleware())

	if h.uploadDir != "" {
		router.Static("/uploads", h.uploadDir)
	}

	api := router.Group("/api")
	{
		api.GET("/", h.apiRoot)
		api.GET("/health", h.health)
		api.POST("/login", h.loginHandler)

		api.GET("/blog", h.listPosts)
		api.GET("/blog/:id", h.getPost)
		api.GET("/events", h.listEvents)
		api.GET("/events/:id", h.getEvent)
		api.POST("/contact", h.createContact)

		api.GET("/about", h.about)
		api.GET("/vision", h.vision)
		api.GET("/governance", h.governance)
		api.GET("/partnerships", h.partnerships)
		api.GET("/home/stats", h.homeStats)

		protected := api.Group("", h.requireAuth())
		{
			protected.POST("/blog", h.createPost)
			protected.PUT("/blog/:id", h.updatePost)
			protected.DELETE("/blog/:id", h.deletePost)

			protected.POST("/events", h.createEvent)
			protected.PUT("/events/:id", h.updateEvent)
			protected.DELETE("/events/:id", h.deleteEvent)

			protected.GET("/contacts", h.listContacts)
			protected.DELETE("/contacts/:id", h.deleteContact)

			protected.GET("/stats", h.stats)
			protected.POST("/uploads", h.upload)
		}
	}
}

func corsMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Writer.Header().Set("Access-Control-Allow-Origin", "*")
		c.Writer.Header().Set("Access-Control-Allow-Methods", "GET, POST, PUT, PATCH, DELETE, OPTIONS")
		c.Writer.Header().Set("Access-Control-Allow-Headers", "Origin, Content-Type, Accept, Authorization")
		if c.Request.Method == http.MethodOptions {
			c.AbortWithStatus(http.StatusNoContent)
			return
		}

		c.Next()
	}
}

// storeReady guards store-dependent endpoints in degraded mode.
func (h *Handler) storeReady(c *gin.Context) bool {
	if h.content == nil {
		c.JSON(http.StatusServiceUnavailable, gin.H{"error": "database unavailable"})
		return false
	}
	return true
}

func (h *Handler) writeError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, repository.ErrNotFound):
		c.JSON(http.StatusNotFound, gin.H{"error": "not found"})
	case errors.Is(err, service.ErrInvalidInput):
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
	default:
		var decodeErr *docstore.DecodeError
		if errors.As(err, &decodeErr) {
			h.logger.WithError(decodeErr).Error("stored document failed to decode")
			c.JSON(http.StatusInternalServerError, gin.H{"error": "stored record is corrupt"})
			return
		}
		h.logger.WithError(err).Error("request failed")
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
	}
}

func (h *Handler) apiRoot(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"message":            "Welcome to the " + serviceName,
		"version":            "1.0.0",
		"database_available": h.content != nil,
	})
}

func (h *Handler) health(c *gin.Context) {
	status := "healthy"
	database := "connected"
	if h.content == nil {
		status = "degraded"
		database = "unavailable"
	}
	c.JSON(http.StatusOK, gin.H{
		"status":    status,
		"database":  database,
		"timestamp": docstore.Now().Canonical(),
		"service":   serviceName,
	})
}

func (h *Handler) listPosts(c *gin.Context) {
	if !h.storeReady(c) {
		return
	}
	posts, err := h.content.ListPosts(c.Request.Context())
	if err != nil {
		h.writeError(c, err)
		return
	}
	if posts == nil {
		posts = []domain.BlogPost{}
	}
	c.JSON(http.StatusOK, posts)
}

func (h *Handler) getPost(c *gin.Context) {
	if !h.storeReady(c) {
		return
	}
	post, err := h.content.GetPost(c.Request.Context(), c.Param("id"))
	if err != nil {
		h.writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, post)
}

func (h *Handler) createPost(c *gin.Context) {
	if !h.storeReady(c) {
		return
	}
	var post domain.BlogPost
	if err := c.ShouldBindJSON(&post); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	if err := h.content.CreatePost(c.Request.Context(), &post); err != nil {
		h.writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, post)
}

func (h *Handler) updatePost(c *gin.Context) {
	if !h.storeReady(c) {
		return
	}
	var fields map[string]any
	if err := c.ShouldBindJSON(&fields); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	post, err := h.content.UpdatePost(c.Request.Context(), c.Param("id"), fields)
	if err != nil {
		h.writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, post)
}

func (h *Handler) deletePost(c *gin.Context) {
	if !h.storeReady(c) {
		return
	}
	if err := h.content.DeletePost(c.Request.Context(), c.Param("id")); err != nil {
		h.writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"deleted": c.Param("id")})
}

func (h *Handler) listEvents(c *gin.Context) {
	if !h.storeReady(c) {
		return
	}
	events, err := h.content.ListEvents(c.Request.Context())
	if err != nil {
		h.writeError(c, err)
		return
	}
	if events == nil {
		events = []domain.Event{}
	}
	c.JSON(http.StatusOK, events)
}

func (h *Handler) getEvent(c *gin.Context) {
	if !h.storeReady(c) {
		return
	}
	event, err := h.content.GetEvent(c.Request.Context(), c.Param("id"))
	if err != nil {
		h.writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, event)
}

func (h *Handler) createEvent(c *gin.Context) {
	if !h.storeReady(c) {
		return
	}
	var event domain.Event
	if err := c.ShouldBindJSON(&event); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	if err := h.content.CreateEvent(c.Request.Context(), &event); err != nil {
		h.writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, event)
}

func (h *Handler) updateEvent(c *gin.Context) {
	if !h.storeReady(c) {
		return
	}
	var fields map[string]any
	if err := c.ShouldBindJSON(&fields); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	event, err := h.content.UpdateEvent(c.Request.Context(), c.Param("id"), fields)
	if err != nil {
		h.writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, event)
}

func (h *Handler) deleteEvent(c *gin.Context) {
	if !h.storeReady(c) {
		return
	}
	if err := h.content.DeleteEvent(c.Request.Context(), c.Param("id")); err != nil {
		h.writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"deleted": c.Param("id")})
}

func (h *Handler) createContact(c *gin.Context) {
	if !h.storeReady(c) {
		return
	}
	var msg domain.ContactMessage
	if err := c.ShouldBindJSON(&msg); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	if err := h.content.CreateContact(c.Request.Context(), &msg); err != nil {
		h.writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, msg)
}

func (h *Handler) listContacts(c *gin.Context) {
	if !h.storeReady(c) {
		return
	}
	msgs, err := h.content.ListContacts(c.Request.Context())
	if err != nil {
		h.writeError(c, err)
		return
	}
	if msgs == nil {
		msgs = []domain.ContactMessage{}
	}
	c.JSON(http.StatusOK, msgs)
}

func (h *Handler) deleteContact(c *gin.Context) {
	if !h.storeReady(c) {
		return
	}
	if err := h.content.DeleteContact(c.Request.Context(), c.Param("id")); err != nil {
		h.writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"deleted": c.Param("id")})
}

func (h *Handler) stats(c *gin.Context) {
	if !h.storeReady(c) {
		return
	}
	stats, err := h.content.Stats(c.Request.Context())
	if err != nil {
		h.writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, stats)
}

func (h *Handler) upload(c *gin.Context) {
	if h.storage == nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "storage service not configured"})
		return
	}
	file, err := c.FormFile("image")
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "image file is required"})
		return
	}
	src, err := file.Open()
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	defer src.Close()

	url, err := h.storage.SaveUpload(c.Request.Context(), file.Filename, file.Header.Get("Content-Type"), src)
	if err != nil {
		h.logger.WithError(err).Error("save upload")
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to store upload"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"url": url})
}

func (h *Handler) about(c *gin.Context)        { c.JSON(http.StatusOK, site.About()) }
func (h *Handler) vision(c *gin.Context)       { c.JSON(http.StatusOK, site.Vision()) }
func (h *Handler) governance(c *gin.Context)   { c.JSON(http.StatusOK, site.Governance()) }
func (h *Handler) partnerships(c *gin.Context) { c.JSON(http.StatusOK, site.Partnerships()) }
func (h *Handler) homeStats(c *gin.Context)    { c.JSON(http.StatusOK, site.Stats()) }
