package handlers

import (
	"context"
	"errors"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/shipdesk/backoffice/internal/domain/models"
	"github.com/shipdesk/backoffice/pkg/datefmt"
)

// StatsService is the aggregation surface behind the dashboard endpoints.
type StatsService interface {
	Now() time.Time
	Summary(ctx context.Context) (models.StatsReport, error)
	Analysis(ctx context.Context) (models.ExceptionAnalysis, error)
	WorkWeek(ctx context.Context, anchor time.Time) (models.WorkWeek, error)
	Containers(ctx context.Context) (models.ContainerSummary, error)
	Inventory(ctx context.Context) (models.InventorySummary, error)
}

// SnapshotLister lists stored monthly reports.
type SnapshotLister interface {
	Snapshots(ctx context.Context) ([]models.StatsSnapshot, error)
}

// StatsHandler serves the read-only dashboard aggregations.
type StatsHandler struct {
	svc       StatsService
	snapshots SnapshotLister
	logger    *zap.Logger
}

// NewStatsHandler constructs the stats handler. snapshots may be nil, in which case the
// snapshot listing answers with an empty list.
func NewStatsHandler(svc StatsService, snapshots SnapshotLister, logger *zap.Logger) (*StatsHandler, error) {
	if svc == nil {
		return nil, errors.New("stats service is nil")
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &StatsHandler{svc: svc, snapshots: snapshots, logger: logger}, nil
}

// Summary returns the month-over-month exception report.
func (h *StatsHandler) Summary(c *gin.Context) {
	report, err := h.svc.Summary(c.Request.Context())
	if err != nil {
		respondError(c, h.logger, err, "")
		return
	}
	c.JSON(http.StatusOK, report)
}

// Analysis returns the SKU, courier, type and daily exception breakdown.
func (h *StatsHandler) Analysis(c *gin.Context) {
	analysis, err := h.svc.Analysis(c.Request.Context())
	if err != nil {
		respondError(c, h.logger, err, "")
		return
	}
	c.JSON(http.StatusOK, analysis)
}

// Snapshots lists the stored monthly reports, newest first.
func (h *StatsHandler) Snapshots(c *gin.Context) {
	if h.snapshots == nil {
		c.JSON(http.StatusOK, []models.StatsSnapshot{})
		return
	}
	snapshots, err := h.snapshots.Snapshots(c.Request.Context())
	if err != nil {
		respondError(c, h.logger, err, "")
		return
	}
	c.JSON(http.StatusOK, snapshots)
}

// WorkWeek returns the express volume table for the week containing ?date=, defaulting
// to today.
func (h *StatsHandler) WorkWeek(c *gin.Context) {
	anchor := h.svc.Now()
	if raw := c.Query("date"); raw != "" {
		normalizer := datefmt.Normalizer{Now: h.svc.Now, Location: anchor.Location()}
		parsed, ok := normalizer.ParseCanonicalDate(normalizer.NormalizeDate(raw))
		if !ok {
			c.JSON(http.StatusBadRequest, ErrorResponse{Message: "date must be MM/DD/YYYY"})
			return
		}
		anchor = parsed
	}

	week, err := h.svc.WorkWeek(c.Request.Context(), anchor)
	if err != nil {
		respondError(c, h.logger, err, "")
		return
	}
	c.JSON(http.StatusOK, week)
}

// Containers returns container counts by status and type.
func (h *StatsHandler) Containers(c *gin.Context) {
	summary, err := h.svc.Containers(c.Request.Context())
	if err != nil {
		respondError(c, h.logger, err, "")
		return
	}
	c.JSON(http.StatusOK, summary)
}

// Inventory returns inventory discrepancy totals.
func (h *StatsHandler) Inventory(c *gin.Context) {
	summary, err := h.svc.Inventory(c.Request.Context())
	if err != nil {
		respondError(c, h.logger, err, "")
		return
	}
	c.JSON(http.StatusOK, summary)
}
