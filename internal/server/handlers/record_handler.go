package handlers

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/shipdesk/backoffice/internal/service/export"
)

// RecordService is the CRUD surface a collection exposes over HTTP.
type RecordService[T any] interface {
	List(ctx context.Context) ([]T, error)
	Get(ctx context.Context, id string) (T, error)
	Create(ctx context.Context, doc T) (T, error)
	Update(ctx context.Context, id string, doc T) (T, error)
	Delete(ctx context.Context, id string) error
}

// Resource describes how a collection is presented to clients.
type Resource struct {
	// Path is the route segment under /api, e.g. "exceptions".
	Path            string
	NotFoundMessage string
	DeletedMessage  string
	Sheet           string
	Headers         []string
}

// RecordHandler serves list/get/create/update/delete/export for one collection.
type RecordHandler[T any, P export.Row[T]] struct {
	svc      RecordService[T]
	resource Resource
	logger   *zap.Logger
}

// NewRecordHandler constructs the HTTP handler adapter for a collection.
func NewRecordHandler[T any, P export.Row[T]](svc RecordService[T], resource Resource, logger *zap.Logger) (*RecordHandler[T, P], error) {
	if svc == nil {
		return nil, errors.New("record service is nil")
	}
	if resource.Path == "" {
		return nil, errors.New("resource path is empty")
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &RecordHandler[T, P]{svc: svc, resource: resource, logger: logger}, nil
}

// Path returns the route segment the handler is mounted on.
func (h *RecordHandler[T, P]) Path() string {
	return h.resource.Path
}

// RegisterRoutes mounts the collection routes on rg. Writes run behind guard.
func (h *RecordHandler[T, P]) RegisterRoutes(rg *gin.RouterGroup, guard gin.HandlerFunc) *gin.RouterGroup {
	group := rg.Group("/" + h.resource.Path)

	group.GET("", h.List)
	group.GET("/export", h.Export)
	group.GET("/:id", h.Get)

	writes := group.Group("")
	if guard != nil {
		writes.Use(guard)
	}
	writes.POST("", h.Create)
	writes.PUT("/:id", h.Update)
	writes.DELETE("/:id", h.Delete)

	return group
}

// List returns every record, newest first.
func (h *RecordHandler[T, P]) List(c *gin.Context) {
	items, err := h.svc.List(c.Request.Context())
	if err != nil {
		respondError(c, h.logger, err, h.resource.NotFoundMessage)
		return
	}
	c.JSON(http.StatusOK, items)
}

// Get returns the record addressed by :id.
func (h *RecordHandler[T, P]) Get(c *gin.Context) {
	item, err := h.svc.Get(c.Request.Context(), c.Param("id"))
	if err != nil {
		respondError(c, h.logger, err, h.resource.NotFoundMessage)
		return
	}
	c.JSON(http.StatusOK, item)
}

// Create stores the posted record and echoes it with id and createdAt.
func (h *RecordHandler[T, P]) Create(c *gin.Context) {
	var doc T
	if err := c.ShouldBindJSON(&doc); err != nil {
		bindError(c, h.logger, err)
		return
	}

	created, err := h.svc.Create(c.Request.Context(), doc)
	if err != nil {
		respondError(c, h.logger, err, h.resource.NotFoundMessage)
		return
	}
	h.logChange(c, "create", "")
	c.JSON(http.StatusCreated, created)
}

// Update replaces the mutable fields of :id.
func (h *RecordHandler[T, P]) Update(c *gin.Context) {
	var doc T
	if err := c.ShouldBindJSON(&doc); err != nil {
		bindError(c, h.logger, err)
		return
	}

	updated, err := h.svc.Update(c.Request.Context(), c.Param("id"), doc)
	if err != nil {
		respondError(c, h.logger, err, h.resource.NotFoundMessage)
		return
	}
	h.logChange(c, "update", c.Param("id"))
	c.JSON(http.StatusOK, updated)
}

// Delete removes :id.
func (h *RecordHandler[T, P]) Delete(c *gin.Context) {
	if err := h.svc.Delete(c.Request.Context(), c.Param("id")); err != nil {
		respondError(c, h.logger, err, h.resource.NotFoundMessage)
		return
	}
	h.logChange(c, "delete", c.Param("id"))
	c.JSON(http.StatusOK, MessageResponse{Message: h.resource.DeletedMessage})
}

// logChange records which admin session performed a write.
func (h *RecordHandler[T, P]) logChange(c *gin.Context, action, id string) {
	fields := []zap.Field{zap.String("action", action), zap.String("resource", h.resource.Path)}
	if id != "" {
		fields = append(fields, zap.String("id", id))
	}
	if session, ok := SessionFrom(c); ok {
		fields = append(fields, zap.String("actor", tokenPrefix(session.Token)), zap.Time("session_issued_at", session.IssuedAt))
	}
	h.logger.Info("record changed", fields...)
}

func tokenPrefix(token string) string {
	const n = 8
	if len(token) <= n {
		return token
	}
	return token[:n]
}

// Export downloads every record as an xlsx workbook.
func (h *RecordHandler[T, P]) Export(c *gin.Context) {
	items, err := h.svc.List(c.Request.Context())
	if err != nil {
		respondError(c, h.logger, err, h.resource.NotFoundMessage)
		return
	}

	data, err := export.Workbook(h.resource.Sheet, h.resource.Headers, export.Rows[T, P](items))
	if err != nil {
		respondError(c, h.logger, fmt.Errorf("build %s workbook: %w", h.resource.Path, err), h.resource.NotFoundMessage)
		return
	}

	filename := fmt.Sprintf("%s-%s.xlsx", h.resource.Path, time.Now().Format("20060102"))
	c.Header("Content-Disposition", fmt.Sprintf("attachment; filename=%q", filename))
	c.Data(http.StatusOK, export.ContentType, data)
}
