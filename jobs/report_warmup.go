package jobs

import (
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"time"

	"github.com/hibiken/asynq"

	jobmetrics "github.com/textilehub/textilehub/internal/jobs"
	"github.com/textilehub/textilehub/internal/reports"
)

var defaultJobMetrics = jobmetrics.NewMetrics(nil)

// ReportWarmupJob pre-populates the report cache with the filter
// combinations the dashboard requests on first load.
type ReportWarmupJob struct {
	Reports *reports.Service
	Logger  *slog.Logger
	Metrics *jobmetrics.Metrics
}

// NewReportWarmupJob wires dependencies for the warmup handler.
func NewReportWarmupJob(reportsSvc *reports.Service, logger *slog.Logger, metrics *jobmetrics.Metrics) *ReportWarmupJob {
	return &ReportWarmupJob{Reports: reportsSvc, Logger: logger, Metrics: metrics}
}

// Handle processes report warmup tasks.
func (j *ReportWarmupJob) Handle(ctx context.Context, t *asynq.Task) error {
	if j == nil || j.Reports == nil {
		return errors.New("report warmup: handler not configured")
	}
	var payload ReportWarmupPayload
	if err := json.Unmarshal(t.Payload(), &payload); err != nil {
		return asynq.SkipRetry
	}

	tracker := j.metrics().Track(TaskReportWarmup)
	var resultErr error
	defer func() {
		resultErr = tracker.End(resultErr)
	}()

	logger := j.logger()
	logger.Info("starting report warmup")
	start := time.Now()

	warmCtx, cancel := context.WithTimeout(ctx, 60*time.Second)
	defer cancel()

	warmed := 0
	for _, filter := range []string{reports.DueAll, reports.DueOverdue, reports.DueToday, reports.DueSoon} {
		if _, err := j.Reports.InvoiceReports(warmCtx, reports.InvoiceQuery{Filter: filter}); err != nil {
			resultErr = err
			logger.Error("warm invoice report", slog.String("filter", filter), slog.Any("error", err))
			return resultErr
		}
		warmed++
	}
	for _, status := range []string{reports.StatusAll, reports.StatusPending} {
		if _, err := j.Reports.OrderReports(warmCtx, reports.OrderQuery{Status: status}); err != nil {
			resultErr = err
			logger.Error("warm order report", slog.String("status", status), slog.Any("error", err))
			return resultErr
		}
		warmed++
	}

	logger.Info("completed report warmup", slog.Int("reports", warmed), slog.Duration("duration", time.Since(start)))
	return resultErr
}

func (j *ReportWarmupJob) logger() *slog.Logger {
	if j.Logger != nil {
		return j.Logger.With(slog.String("job", TaskReportWarmup))
	}
	return slog.Default().With(slog.String("job", TaskReportWarmup))
}

func (j *ReportWarmupJob) metrics() *jobmetrics.Metrics {
	if j.Metrics != nil {
		return j.Metrics
	}
	return defaultJobMetrics
}
