package stats

import (
	"context"
	"fmt"
	"time"

	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"github.com/shipdesk/backoffice/internal/domain/models"
)

// Lister loads every record of a collection.
type Lister[T any] interface {
	List(ctx context.Context) ([]T, error)
}

// Service loads collections and runs the aggregations over them.
type Service struct {
	exceptions Lister[models.ExceptionRecord]
	volumes    Lister[models.ExpressVolumeRecord]
	containers Lister[models.ContainerRecord]
	inventory  Lister[models.InventoryExceptionRecord]
	logger     *zap.Logger
	now        func() time.Time
}

// NewService wires a stats service. Any lister may be nil when the matching
// aggregation is not used.
func NewService(
	exceptions Lister[models.ExceptionRecord],
	volumes Lister[models.ExpressVolumeRecord],
	containers Lister[models.ContainerRecord],
	inventory Lister[models.InventoryExceptionRecord],
	logger *zap.Logger,
) *Service {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Service{
		exceptions: exceptions,
		volumes:    volumes,
		containers: containers,
		inventory:  inventory,
		logger:     logger,
		now:        time.Now,
	}
}

// WithClock overrides the clock used for "now".
func (s *Service) WithClock(now func() time.Time) *Service {
	s.now = now
	return s
}

// Now returns the service clock's current time.
func (s *Service) Now() time.Time {
	return s.now()
}

// Summary returns the month-over-month report for the current month.
func (s *Service) Summary(ctx context.Context) (models.StatsReport, error) {
	return s.SummaryAt(ctx, s.now())
}

// SummaryAt returns the month-over-month report for the month containing now.
func (s *Service) SummaryAt(ctx context.Context, now time.Time) (models.StatsReport, error) {
	var (
		exceptions []models.ExceptionRecord
		volumes    []models.ExpressVolumeRecord
	)

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		var err error
		exceptions, err = s.exceptions.List(gctx)
		if err != nil {
			return fmt.Errorf("load exceptions: %w", err)
		}
		return nil
	})
	g.Go(func() error {
		var err error
		volumes, err = s.volumes.List(gctx)
		if err != nil {
			return fmt.Errorf("load express volumes: %w", err)
		}
		return nil
	})
	if err := g.Wait(); err != nil {
		return models.StatsReport{}, err
	}

	report := ComputeExceptionStats(exceptions, volumes, now)
	s.logger.Debug("exception stats computed",
		zap.Int("exceptions", len(exceptions)),
		zap.Int("volumes", len(volumes)),
		zap.Int("current_total", report.CurrentMonth.Total),
		zap.Int("last_total", report.LastMonth.Total))
	return report, nil
}

// Analysis returns the SKU, carrier, type and daily breakdown of all exceptions.
func (s *Service) Analysis(ctx context.Context) (models.ExceptionAnalysis, error) {
	exceptions, err := s.exceptions.List(ctx)
	if err != nil {
		return models.ExceptionAnalysis{}, fmt.Errorf("load exceptions: %w", err)
	}
	return ComputeExceptionAnalysis(exceptions), nil
}

// WorkWeek returns the express volume week containing anchor.
func (s *Service) WorkWeek(ctx context.Context, anchor time.Time) (models.WorkWeek, error) {
	volumes, err := s.volumes.List(ctx)
	if err != nil {
		return models.WorkWeek{}, fmt.Errorf("load express volumes: %w", err)
	}
	return ComputeWorkWeek(volumes, anchor), nil
}

// Containers returns arrival counts by status and type.
func (s *Service) Containers(ctx context.Context) (models.ContainerSummary, error) {
	containers, err := s.containers.List(ctx)
	if err != nil {
		return models.ContainerSummary{}, fmt.Errorf("load containers: %w", err)
	}
	return ComputeContainerSummary(containers), nil
}

// Inventory returns the discrepancy totals.
func (s *Service) Inventory(ctx context.Context) (models.InventorySummary, error) {
	items, err := s.inventory.List(ctx)
	if err != nil {
		return models.InventorySummary{}, fmt.Errorf("load inventory exceptions: %w", err)
	}
	return ComputeInventorySummary(items), nil
}
