package reporting

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"go.uber.org/zap"

	"github.com/shipdesk/backoffice/internal/domain/models"
	repo "github.com/shipdesk/backoffice/internal/repository/sheets"
	"github.com/shipdesk/backoffice/pkg/clients/notify"
)

const periodLayout = "2006-01"

var sheetHeader = []interface{}{
	"Period", "Exceptions", "No Tracking", "Out Of Stock", "Wrong Shipment", "Shipments",
	"Exception Rate %", "Previous Month", "Change %", "No Tracking Change %",
	"Out Of Stock Change %", "Wrong Shipment Change %", "Monthly Average",
}

// StatsSource computes the exception report for the month containing a given time.
type StatsSource interface {
	SummaryAt(ctx context.Context, now time.Time) (models.StatsReport, error)
}

// SnapshotStore persists monthly reports.
type SnapshotStore interface {
	SaveSnapshot(ctx context.Context, snapshot models.StatsSnapshot) error
	ListSnapshots(ctx context.Context) ([]models.StatsSnapshot, error)
}

// Service produces the monthly exception report and delivers it.
type Service struct {
	stats      StatsSource
	snapshots  SnapshotStore
	sheets     repo.Repository
	sheetRange string
	notifier   notify.Client
	logger     *zap.Logger
	now        func() time.Time
}

// Option configures optional report destinations.
type Option func(*Service)

// WithSheet appends every report as a row of sheetRange.
func WithSheet(sheets repo.Repository, sheetRange string) Option {
	return func(s *Service) {
		s.sheets = sheets
		s.sheetRange = sheetRange
	}
}

// WithNotifier posts a text summary of every report.
func WithNotifier(n notify.Client) Option {
	return func(s *Service) { s.notifier = n }
}

// NewService wires a new reporting service instance.
func NewService(stats StatsSource, snapshots SnapshotStore, logger *zap.Logger, opts ...Option) *Service {
	if logger == nil {
		logger = zap.NewNop()
	}
	s := &Service{stats: stats, snapshots: snapshots, logger: logger, now: time.Now}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// PreviousMonth returns the last instant of the month before the one containing t.
func PreviousMonth(t time.Time) time.Time {
	firstOfMonth := time.Date(t.Year(), t.Month(), 1, 0, 0, 0, 0, t.Location())
	return firstOfMonth.Add(-time.Second)
}

// GenerateMonthlyReport computes the report for the month containing period, stores it
// and delivers it to the configured destinations. The snapshot is stored even when a
// destination fails; delivery errors are returned joined.
func (s *Service) GenerateMonthlyReport(ctx context.Context, period time.Time) (models.StatsSnapshot, error) {
	report, err := s.stats.SummaryAt(ctx, period)
	if err != nil {
		return models.StatsSnapshot{}, fmt.Errorf("compute exception stats: %w", err)
	}

	snapshot := models.StatsSnapshot{
		Period:    period.Format(periodLayout),
		Report:    report,
		CreatedAt: s.now().UTC(),
	}
	if err := s.snapshots.SaveSnapshot(ctx, snapshot); err != nil {
		return snapshot, err
	}
	s.logger.Info("monthly report stored", zap.String("period", snapshot.Period), zap.Int("exceptions", report.CurrentMonth.Total))

	var deliveryErrs []error
	if s.sheets != nil {
		if err := s.appendToSheet(ctx, snapshot); err != nil {
			s.logger.Error("failed to export report to sheet", zap.Error(err))
			deliveryErrs = append(deliveryErrs, err)
		}
	}
	if s.notifier != nil {
		if err := s.notifier.SendText(ctx, FormatSummary(snapshot)); err != nil {
			s.logger.Error("failed to send report notification", zap.Error(err))
			deliveryErrs = append(deliveryErrs, err)
		}
	}

	return snapshot, errors.Join(deliveryErrs...)
}

// Snapshots lists stored monthly reports.
func (s *Service) Snapshots(ctx context.Context) ([]models.StatsSnapshot, error) {
	return s.snapshots.ListSnapshots(ctx)
}

func (s *Service) appendToSheet(ctx context.Context, snapshot models.StatsSnapshot) error {
	existing, err := s.sheets.ReadRange(ctx, s.sheetRange)
	if err != nil {
		return fmt.Errorf("load report sheet: %w", err)
	}

	rows := make([][]interface{}, 0, 2)
	if len(existing) == 0 {
		rows = append(rows, sheetHeader)
	}
	rows = append(rows, sheetRow(snapshot))

	return s.sheets.AppendRows(ctx, s.sheetRange, rows)
}

func sheetRow(snapshot models.StatsSnapshot) []interface{} {
	r := snapshot.Report
	return []interface{}{
		snapshot.Period,
		r.CurrentMonth.Total,
		r.CurrentMonth.NoTracking,
		r.CurrentMonth.OutOfStock,
		r.CurrentMonth.WrongShipment,
		r.CurrentMonth.ShipmentVolume,
		r.CurrentMonth.ExceptionRate,
		r.LastMonth.Total,
		r.ChangeRate.Total,
		r.ChangeRate.NoTracking,
		r.ChangeRate.OutOfStock,
		r.ChangeRate.WrongShipment,
		r.MonthlyAverage,
	}
}

// FormatSummary renders a snapshot as a short chat message.
func FormatSummary(snapshot models.StatsSnapshot) string {
	r := snapshot.Report
	var b strings.Builder
	fmt.Fprintf(&b, "Exception report %s\n", snapshot.Period)
	fmt.Fprintf(&b, "Total: %d (%+.1f%% vs previous month: %d)\n", r.CurrentMonth.Total, r.ChangeRate.Total, r.LastMonth.Total)
	fmt.Fprintf(&b, "No tracking: %d (%+.1f%%)\n", r.CurrentMonth.NoTracking, r.ChangeRate.NoTracking)
	fmt.Fprintf(&b, "Out of stock: %d (%+.1f%%)\n", r.CurrentMonth.OutOfStock, r.ChangeRate.OutOfStock)
	fmt.Fprintf(&b, "Wrong shipment: %d (%+.1f%%)\n", r.CurrentMonth.WrongShipment, r.ChangeRate.WrongShipment)
	if r.CurrentMonth.ShipmentVolume > 0 {
		fmt.Fprintf(&b, "Exception rate: %.1f%% of %d shipments\n", r.CurrentMonth.ExceptionRate, r.CurrentMonth.ShipmentVolume)
	} else {
		b.WriteString("Exception rate: no shipment volume recorded\n")
	}
	fmt.Fprintf(&b, "Monthly average: %.1f", r.MonthlyAverage)
	return b.String()
}
