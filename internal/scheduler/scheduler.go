package scheduler

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/robfig/cron/v3"
	"go.uber.org/zap"

	"github.com/mamadbah2/messledger/internal/config"
	"github.com/mamadbah2/messledger/internal/domain/models"
	"github.com/mamadbah2/messledger/internal/service/reporting"
)

// Snapshotter builds and stores the end-of-day summary.
type Snapshotter interface {
	Snapshot(ctx context.Context, day time.Time) (models.DailySnapshot, error)
}

// Notifier delivers the formatted summary. It may be nil.
type Notifier interface {
	Notify(ctx context.Context, text string) error
}

// Scheduler runs the daily snapshot job.
type Scheduler struct {
	cron      *cron.Cron
	schedule  string
	location  *time.Location
	snapshots Snapshotter
	notifier  Notifier
	logger    *zap.Logger
	now       func() time.Time
}

// NewScheduler creates a scheduler running in the configured timezone.
func NewScheduler(cfg config.ReportingConfig, snapshots Snapshotter, notifier Notifier, logger *zap.Logger) (*Scheduler, error) {
	if logger == nil {
		logger = zap.NewNop()
	}

	loc, err := time.LoadLocation(cfg.Timezone)
	if err != nil {
		return nil, fmt.Errorf("load timezone %q: %w", cfg.Timezone, err)
	}

	return &Scheduler{
		cron:      cron.New(cron.WithLocation(loc)),
		schedule:  cfg.CronSchedule,
		location:  loc,
		snapshots: snapshots,
		notifier:  notifier,
		logger:    logger,
		now:       time.Now,
	}, nil
}

// Start registers the daily job and starts the cron loop.
func (s *Scheduler) Start() error {
	if _, err := s.cron.AddFunc(s.schedule, s.runDaily); err != nil {
		return fmt.Errorf("schedule daily snapshot %q: %w", s.schedule, err)
	}

	s.logger.Info("starting scheduler", zap.String("schedule", s.schedule), zap.String("timezone", s.location.String()))
	s.cron.Start()
	return nil
}

// Stop stops the scheduler and waits for a running job to finish.
func (s *Scheduler) Stop() {
	s.logger.Info("stopping scheduler")
	<-s.cron.Stop().Done()
}

func (s *Scheduler) runDaily() {
	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Minute)
	defer cancel()

	if err := s.RunOnce(ctx); err != nil {
		s.logger.Error("daily snapshot job failed", zap.Error(err))
	}
}

// RunOnce snapshots the current day and sends the summary when a notifier is
// configured. A snapshot that was only partly stored is still sent; nothing is
// sent when the backend data could not be loaded at all.
func (s *Scheduler) RunOnce(ctx context.Context) error {
	day := s.now().In(s.location)
	s.logger.Info("generating daily snapshot", zap.String("day", day.Format("2006-01-02")))

	snapshot, snapErr := s.snapshots.Snapshot(ctx, day)
	if errors.Is(snapErr, reporting.ErrSnapshotUnavailable) {
		return snapErr
	}
	if snapErr != nil {
		s.logger.Warn("daily snapshot incomplete", zap.Error(snapErr))
	}

	if s.notifier == nil {
		return snapErr
	}
	if err := s.notifier.Notify(ctx, reporting.FormatSummary(snapshot)); err != nil {
		return fmt.Errorf("send daily summary: %w", err)
	}

	s.logger.Info("daily summary sent")
	return snapErr
}
