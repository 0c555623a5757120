package jobs

import (
	"context"
	"encoding/json"
	"errors"
	"strconv"
	"sync"
	"testing"
	"time"

	"github.com/shopspring/decimal"

	"workforce/internal/domain/payroll"
	"workforce/internal/platform/config"
	"workforce/internal/platform/metrics"
)

type memoryRuns struct {
	mu   sync.Mutex
	runs []Run
}

func (m *memoryRuns) StartRun(_ context.Context, jobType, trigger string) (string, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	id := strconv.Itoa(len(m.runs) + 1)
	m.runs = append(m.runs, Run{ID: id, JobType: jobType, Trigger: trigger, Status: StatusRunning})
	return id, nil
}

func (m *memoryRuns) FinishRun(_ context.Context, runID, status string, detailsJSON []byte) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	for i := range m.runs {
		if m.runs[i].ID == runID {
			m.runs[i].Status = status
			m.runs[i].Details = detailsJSON
			return nil
		}
	}
	return errors.New("unknown run")
}

func (m *memoryRuns) ListRuns(context.Context, string, int) ([]Run, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	return append([]Run(nil), m.runs...), nil
}

type stubEstimator struct {
	month     time.Time
	estimates []payroll.Estimate
	err       error
}

func (s *stubEstimator) EstimateAll(_ context.Context, month time.Time) ([]payroll.Estimate, error) {
	s.month = month
	return s.estimates, s.err
}

func breakdown(gross, net string) payroll.Breakdown {
	g := decimal.RequireFromString(gross)
	n := decimal.RequireFromString(net)
	return payroll.Breakdown{
		GrossSalary:                 g,
		TotalGross:                  g,
		SocialInsuranceContribution: g.Sub(n),
		NetSalary:                   n,
	}
}

func TestRunPayrollPreviewRecordsTotals(t *testing.T) {
	runs := &memoryRuns{}
	estimator := &stubEstimator{estimates: []payroll.Estimate{
		{Name: "A", Breakdown: breakdown("7200", "5237.7208")},
		{Name: "B", Breakdown: breakdown("4000", "3640")},
	}}
	collector := metrics.New()
	svc := New(runs, estimator, config.Config{}, collector)
	month := time.Date(2025, 5, 1, 0, 0, 0, 0, time.UTC)

	summary, err := svc.RunPayrollPreview(context.Background(), month, TriggerManual)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if summary.Month != "2025-05" || summary.EmployeeCount != 2 {
		t.Fatalf("unexpected summary: %+v", summary)
	}
	if !summary.TotalNet.Equal(decimal.RequireFromString("8877.7208")) {
		t.Fatalf("unexpected net total %s", summary.TotalNet)
	}
	if !estimator.month.Equal(month) {
		t.Fatalf("expected estimator called for %v, got %v", month, estimator.month)
	}

	stored, _ := runs.ListRuns(context.Background(), "", 10)
	if len(stored) != 1 || stored[0].Status != StatusCompleted || stored[0].Trigger != TriggerManual {
		t.Fatalf("unexpected runs: %+v", stored)
	}
	var details map[string]any
	if err := json.Unmarshal(stored[0].Details, &details); err != nil {
		t.Fatalf("details: %v", err)
	}
	if details["totalGross"] != "11200" {
		t.Fatalf("expected totalGross 11200 in details, got %v", details["totalGross"])
	}
	if collector.Snapshot()["jobRunsTotal"].(uint64) != 1 {
		t.Fatal("expected job run counted")
	}
}

func TestRunPayrollPreviewRecordsFailure(t *testing.T) {
	runs := &memoryRuns{}
	svc := New(runs, &stubEstimator{err: errors.New("db down")}, config.Config{}, nil)

	if _, err := svc.RunPayrollPreview(context.Background(), time.Now(), TriggerManual); err == nil {
		t.Fatal("expected error")
	}
	stored, _ := runs.ListRuns(context.Background(), "", 10)
	if len(stored) != 1 || stored[0].Status != StatusFailed {
		t.Fatalf("expected failed run, got %+v", stored)
	}
}

func TestWorkerDrainsQueue(t *testing.T) {
	runs := &memoryRuns{}
	svc := New(runs, &stubEstimator{}, config.Config{}, nil)
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	if err := svc.Start(ctx); err != nil {
		t.Fatalf("start: %v", err)
	}

	done := make(chan struct{})
	if !svc.Enqueue("probe", TriggerManual, func(context.Context) (any, error) {
		close(done)
		return nil, nil
	}) {
		t.Fatal("expected job to be queued")
	}
	select {
	case <-done:
	case <-time.After(2 * time.Second):
		t.Fatal("job did not run")
	}
}

func TestStartRejectsBadSchedule(t *testing.T) {
	svc := New(&memoryRuns{}, &stubEstimator{}, config.Config{PayrollPreviewSchedule: "whenever"}, nil)
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	if err := svc.Start(ctx); err == nil {
		t.Fatal("expected schedule error")
	}
}

func TestPreviousMonth(t *testing.T) {
	got := previousMonth(time.Date(2025, 1, 1, 6, 0, 0, 0, time.UTC))
	if got.Format("2006-01-02") != "2024-12-01" {
		t.Fatalf("expected 2024-12-01, got %s", got.Format("2006-01-02"))
	}
}
