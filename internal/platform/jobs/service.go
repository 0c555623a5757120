package jobs

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"time"

	"github.com/robfig/cron/v3"
	"github.com/shopspring/decimal"

	"workforce/internal/domain/payroll"
	"workforce/internal/platform/config"
	"workforce/internal/platform/metrics"
)

const (
	StatusRunning   = "running"
	StatusCompleted = "completed"
	StatusFailed    = "failed"

	TriggerSchedule = "schedule"
	TriggerManual   = "manual"
)

type Estimator interface {
	EstimateAll(ctx context.Context, month time.Time) ([]payroll.Estimate, error)
}

type Service struct {
	Store     RunStore
	Estimator Estimator
	Cfg       config.Config
	Metrics   *metrics.Collector
	Now       func() time.Time

	cron  *cron.Cron
	queue chan job
}

type job struct {
	Type    string
	Trigger string
	Run     func(context.Context) (any, error)
}

type PreviewSummary struct {
	Month           string          `json:"month"`
	EmployeeCount   int             `json:"employeeCount"`
	TotalGross      decimal.Decimal `json:"totalGross"`
	TotalDeductions decimal.Decimal `json:"totalDeductions"`
	TotalNet        decimal.Decimal `json:"totalNet"`
}

func New(store RunStore, estimator Estimator, cfg config.Config, collector *metrics.Collector) *Service {
	return &Service{
		Store:     store,
		Estimator: estimator,
		Cfg:       cfg,
		Metrics:   collector,
		Now:       time.Now,
		queue:     make(chan job, 128),
	}
}

// Start runs the queue worker and the cron scheduler until ctx is cancelled.
// An empty PAYROLL_PREVIEW_SCHEDULE disables the scheduled preview.
func (s *Service) Start(ctx context.Context) error {
	go s.worker(ctx)

	spec := s.Cfg.PayrollPreviewSchedule
	if spec == "" {
		return nil
	}
	s.cron = cron.New(cron.WithLocation(time.UTC))
	if _, err := s.cron.AddFunc(spec, func() {
		s.EnqueuePayrollPreview(previousMonth(s.Now()), TriggerSchedule)
	}); err != nil {
		return fmt.Errorf("schedule payroll preview: %w", err)
	}
	s.cron.Start()
	slog.Info("payroll preview scheduled", "schedule", spec)

	go func() {
		<-ctx.Done()
		<-s.cron.Stop().Done()
	}()
	return nil
}

func (s *Service) Enqueue(jobType, trigger string, run func(context.Context) (any, error)) bool {
	select {
	case s.queue <- job{Type: jobType, Trigger: trigger, Run: run}:
		return true
	default:
		slog.Warn("job queue full", "jobType", jobType)
		return false
	}
}

func (s *Service) RunNow(ctx context.Context, jobType, trigger string, run func(context.Context) (any, error)) (any, error) {
	return s.runJob(ctx, job{Type: jobType, Trigger: trigger, Run: run})
}

func (s *Service) EnqueuePayrollPreview(month time.Time, trigger string) bool {
	return s.Enqueue(payroll.JobPayrollPreview, trigger, s.payrollPreview(month))
}

// RunPayrollPreview estimates every employee for the month and records the totals.
func (s *Service) RunPayrollPreview(ctx context.Context, month time.Time, trigger string) (PreviewSummary, error) {
	details, err := s.RunNow(ctx, payroll.JobPayrollPreview, trigger, s.payrollPreview(month))
	summary, _ := details.(PreviewSummary)
	return summary, err
}

func (s *Service) ListRuns(ctx context.Context, jobType string, limit int) ([]Run, error) {
	return s.Store.ListRuns(ctx, jobType, limit)
}

func (s *Service) payrollPreview(month time.Time) func(context.Context) (any, error) {
	return func(ctx context.Context) (any, error) {
		estimates, err := s.Estimator.EstimateAll(ctx, month)
		if err != nil {
			return PreviewSummary{Month: month.Format("2006-01")}, err
		}
		totals := payroll.Totals(estimates)
		return PreviewSummary{
			Month:           month.Format("2006-01"),
			EmployeeCount:   totals.EmployeeCount,
			TotalGross:      totals.TotalGross,
			TotalDeductions: totals.TotalDeductions,
			TotalNet:        totals.TotalNet,
		}, nil
	}
}

func (s *Service) worker(ctx context.Context) {
	for {
		select {
		case <-ctx.Done():
			return
		case j := <-s.queue:
			if _, err := s.runJob(ctx, j); err != nil {
				slog.Warn("job run failed", "jobType", j.Type, "trigger", j.Trigger, "err", err)
			}
		}
	}
}

func (s *Service) runJob(ctx context.Context, j job) (any, error) {
	runID, err := s.Store.StartRun(ctx, j.Type, j.Trigger)
	if err != nil {
		slog.Warn("job run insert failed", "err", err)
	}

	details, err := j.Run(ctx)
	status := StatusCompleted
	if err != nil {
		status = StatusFailed
		details = map[string]any{"error": err.Error(), "details": details}
	}
	if s.Metrics != nil {
		s.Metrics.RecordJob(err != nil)
	}

	detailsJSON, marshalErr := json.Marshal(details)
	if marshalErr != nil {
		slog.Warn("job details marshal failed", "err", marshalErr)
		detailsJSON = []byte("{}")
	}
	if runID != "" {
		if updErr := s.Store.FinishRun(ctx, runID, status, detailsJSON); updErr != nil {
			slog.Warn("job run update failed", "err", updErr)
		}
	}
	if err != nil {
		return nil, err
	}
	return details, nil
}

func previousMonth(now time.Time) time.Time {
	now = now.UTC()
	return time.Date(now.Year(), now.Month(), 1, 0, 0, 0, 0, time.UTC).AddDate(0, -1, 0)
}
