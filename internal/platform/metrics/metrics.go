package metrics

import (
	"sync/atomic"
	"time"

	"workforce/internal/domain/payroll"
)

type Collector struct {
	totalRequests   uint64
	errorRequests   uint64
	rateLimited     uint64
	totalDurationMs uint64

	payrollComputations uint64
	socialExemptions    uint64
	taxExemptions       uint64
	jobRuns             uint64
	jobFailures         uint64
}

func New() *Collector {
	return &Collector{}
}

func (c *Collector) Record(status int, duration time.Duration) {
	atomic.AddUint64(&c.totalRequests, 1)
	if status >= 500 {
		atomic.AddUint64(&c.errorRequests, 1)
	}
	if status == 429 {
		atomic.AddUint64(&c.rateLimited, 1)
	}
	atomic.AddUint64(&c.totalDurationMs, uint64(duration.Milliseconds()))
}

// ObserveBreakdown counts a payroll computation and the exemptions it applied.
// It matches payroll.Observer.
func (c *Collector) ObserveBreakdown(b payroll.Breakdown) {
	atomic.AddUint64(&c.payrollComputations, 1)
	if b.SocialInsuranceExempt {
		atomic.AddUint64(&c.socialExemptions, 1)
	}
	if b.IncomeTaxExempt {
		atomic.AddUint64(&c.taxExemptions, 1)
	}
}

func (c *Collector) RecordJob(failed bool) {
	atomic.AddUint64(&c.jobRuns, 1)
	if failed {
		atomic.AddUint64(&c.jobFailures, 1)
	}
}

func (c *Collector) Snapshot() map[string]any {
	total := atomic.LoadUint64(&c.totalRequests)
	errs := atomic.LoadUint64(&c.errorRequests)
	limited := atomic.LoadUint64(&c.rateLimited)
	totalMs := atomic.LoadUint64(&c.totalDurationMs)
	avg := float64(0)
	if total > 0 {
		avg = float64(totalMs) / float64(total)
	}
	return map[string]any{
		"requestsTotal":              total,
		"errorsTotal":                errs,
		"rateLimitedTotal":           limited,
		"avgDurationMs":              avg,
		"totalDurationMs":            totalMs,
		"payrollComputationsTotal":   atomic.LoadUint64(&c.payrollComputations),
		"socialInsuranceExemptTotal": atomic.LoadUint64(&c.socialExemptions),
		"incomeTaxExemptTotal":       atomic.LoadUint64(&c.taxExemptions),
		"jobRunsTotal":               atomic.LoadUint64(&c.jobRuns),
		"jobFailuresTotal":           atomic.LoadUint64(&c.jobFailures),
	}
}
