package scheduler

import (
	"context"
	"fmt"
	"time"

	"github.com/robfig/cron/v3"
	"go.uber.org/zap"

	"github.com/shipdesk/backoffice/internal/domain/models"
	"github.com/shipdesk/backoffice/internal/service/reporting"
)

const jobTimeout = 2 * time.Minute

// MonthlyReporter generates and delivers the report for one month.
type MonthlyReporter interface {
	GenerateMonthlyReport(ctx context.Context, period time.Time) (models.StatsSnapshot, error)
}

// Scheduler manages scheduled tasks.
type Scheduler struct {
	cron     *cron.Cron
	reporter MonthlyReporter
	location *time.Location
	logger   *zap.Logger
}

// NewScheduler creates a scheduler that runs the monthly report on schedule, a standard
// five-field cron expression evaluated in loc.
func NewScheduler(schedule string, loc *time.Location, reporter MonthlyReporter, logger *zap.Logger) (*Scheduler, error) {
	if logger == nil {
		logger = zap.NewNop()
	}
	if loc == nil {
		loc = time.Local
	}

	s := &Scheduler{
		cron:     cron.New(cron.WithLocation(loc)),
		reporter: reporter,
		location: loc,
		logger:   logger,
	}

	if _, err := s.cron.AddFunc(schedule, s.runMonthlyReport); err != nil {
		return nil, fmt.Errorf("schedule monthly report %q: %w", schedule, err)
	}

	return s, nil
}

// Start starts the scheduler.
func (s *Scheduler) Start() {
	s.logger.Info("starting scheduler", zap.String("timezone", s.location.String()))
	s.cron.Start()
}

// Stop stops the scheduler and waits for a running job to finish.
func (s *Scheduler) Stop() {
	s.logger.Info("stopping scheduler")
	<-s.cron.Stop().Done()
}

// Next returns the next time the monthly report fires.
func (s *Scheduler) Next() time.Time {
	entries := s.cron.Entries()
	if len(entries) == 0 {
		return time.Time{}
	}
	return entries[0].Schedule.Next(time.Now().In(s.location))
}

func (s *Scheduler) runMonthlyReport() {
	s.RunAt(time.Now().In(s.location))
}

// RunAt generates the report for the month preceding now.
func (s *Scheduler) RunAt(now time.Time) {
	ctx, cancel := context.WithTimeout(context.Background(), jobTimeout)
	defer cancel()

	period := reporting.PreviousMonth(now)
	s.logger.Info("generating monthly report", zap.String("period", period.Format("2006-01")))

	if _, err := s.reporter.GenerateMonthlyReport(ctx, period); err != nil {
		s.logger.Error("monthly report incomplete", zap.Error(err))
		return
	}
	s.logger.Info("monthly report delivered")
}
