package metrics

import (
	"net/http"
	"testing"
	"time"

	"workforce/internal/domain/payroll"
)

func TestCollectorSnapshot(t *testing.T) {
	c := New()
	c.Record(http.StatusOK, 10*time.Millisecond)
	c.Record(http.StatusInternalServerError, 30*time.Millisecond)
	c.Record(http.StatusTooManyRequests, 2*time.Millisecond)

	var observe payroll.Observer = c.ObserveBreakdown
	observe(payroll.Breakdown{})
	observe(payroll.Breakdown{SocialInsuranceExempt: true, IncomeTaxExempt: true})
	observe(payroll.Breakdown{IncomeTaxExempt: true})
	c.RecordJob(false)
	c.RecordJob(true)

	snap := c.Snapshot()
	checks := map[string]uint64{
		"requestsTotal":              3,
		"errorsTotal":                1,
		"rateLimitedTotal":           1,
		"totalDurationMs":            42,
		"payrollComputationsTotal":   3,
		"socialInsuranceExemptTotal": 1,
		"incomeTaxExemptTotal":       2,
		"jobRunsTotal":               2,
		"jobFailuresTotal":           1,
	}
	for key, want := range checks {
		if got := snap[key].(uint64); got != want {
			t.Fatalf("%s: expected %d, got %d", key, want, got)
		}
	}
	if avg := snap["avgDurationMs"].(float64); avg != 14 {
		t.Fatalf("expected avg 14, got %v", avg)
	}
}
