package scheduler

import (
	"context"
	"time"

	"github.com/robfig/cron/v3"
	"go.uber.org/zap"

	"github.com/mamadbah2/volaille/internal/config"
	"github.com/mamadbah2/volaille/internal/domain/models"
	"github.com/mamadbah2/volaille/internal/repository/sheets"
	"github.com/mamadbah2/volaille/internal/service/stats"
	"github.com/mamadbah2/volaille/pkg/clients/notify"
)

// SnapshotWriter persists the computed daily snapshot.
type SnapshotWriter interface {
	SaveDailySnapshot(ctx context.Context, snapshot models.DailySnapshot) error
}

// Scheduler manages scheduled tasks.
type Scheduler struct {
	cron     *cron.Cron
	statsSvc *stats.Service
	writer   SnapshotWriter
	sheets   sheets.Repository
	notifier notify.Client
	cfg      config.ReportingConfig
	location *time.Location
	logger   *zap.Logger
}

// NewScheduler creates a new scheduler instance. The sheets repository and
// notifier are optional; a nil value skips that export.
func NewScheduler(cfg config.ReportingConfig, statsSvc *stats.Service, writer SnapshotWriter, sheetsRepo sheets.Repository, notifier notify.Client, logger *zap.Logger) *Scheduler {
	if logger == nil {
		logger = zap.NewNop()
	}

	location, err := time.LoadLocation(cfg.Timezone)
	if err != nil {
		logger.Warn("unknown timezone, falling back to UTC", zap.String("timezone", cfg.Timezone), zap.Error(err))
		location = time.UTC
	}

	return &Scheduler{
		cron:     cron.New(cron.WithLocation(location)),
		statsSvc: statsSvc,
		writer:   writer,
		sheets:   sheetsRepo,
		notifier: notifier,
		cfg:      cfg,
		location: location,
		logger:   logger,
	}
}

// Start registers and starts the scheduled jobs.
func (s *Scheduler) Start() {
	s.logger.Info("starting scheduler", zap.String("schedule", s.cfg.CronSchedule))

	if _, err := s.cron.AddFunc(s.cfg.CronSchedule, s.runDailySnapshots); err != nil {
		s.logger.Error("failed to schedule daily snapshots", zap.Error(err))
	}

	s.cron.Start()
}

// Stop stops the scheduler.
func (s *Scheduler) Stop() {
	s.logger.Info("stopping scheduler")
	s.cron.Stop()
}

func (s *Scheduler) runDailySnapshots() {
	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Minute)
	defer cancel()

	yesterday := time.Now().In(s.location).AddDate(0, 0, -1).Format("2006-01-02")
	for _, farmID := range s.cfg.FarmIDs {
		s.snapshotFarm(ctx, farmID, yesterday)
	}
}

func (s *Scheduler) snapshotFarm(ctx context.Context, farmID, date string) {
	logger := s.logger.With(zap.String("farm_id", farmID), zap.String("date", date))
	logger.Info("generating daily snapshot")

	query := stats.Query{StartDate: date, EndDate: date}
	overview, err := s.statsSvc.DashboardOverview(ctx, farmID, query)
	if err != nil {
		logger.Error("failed to compute daily overview", zap.Error(err))
		return
	}
	report, err := s.statsSvc.FinancialReport(ctx, farmID, query)
	if err != nil {
		logger.Error("failed to compute daily financials", zap.Error(err))
		return
	}

	day, err := time.ParseInLocation("2006-01-02", date, s.location)
	if err != nil {
		logger.Error("failed to parse snapshot date", zap.Error(err))
		return
	}

	snapshot := models.DailySnapshot{
		Date:          day,
		FarmID:        farmID,
		EggsCollected: overview.TotalEggs,
		FeedCost:      categoryAmount(report, "feed"),
		MedicineCost:  categoryAmount(report, "medicine"),
		Revenue:       report.Revenue,
		Expenses:      report.Expense,
		Profit:        report.Profit,
		CreatedAt:     time.Now().In(s.location),
	}

	if err := s.writer.SaveDailySnapshot(ctx, snapshot); err != nil {
		logger.Error("failed to persist daily snapshot", zap.Error(err))
		return
	}

	// Sheets export and webhook notification are best effort.
	if s.sheets != nil {
		if err := s.sheets.AppendSnapshot(ctx, snapshot); err != nil {
			logger.Error("failed to export snapshot to sheets", zap.Error(err))
		}
	}
	if s.notifier != nil {
		if err := s.notifier.SendSnapshot(ctx, snapshot); err != nil {
			logger.Error("failed to notify snapshot webhook", zap.Error(err))
		}
	}

	logger.Info("daily snapshot stored")
}

func categoryAmount(report *stats.FinancialReport, category string) float64 {
	for _, row := range report.ByCategory {
		if row.Category == category {
			return row.Amount
		}
	}
	return 0
}
