package config

import (
	"strings"
	"testing"
)

func validConfig() Config {
	return Config{
		DatabaseURL:            "postgres://localhost/workforce",
		Environment:            "development",
		PayrollWorkers:         4,
		PayrollPreviewSchedule: "0 6 1 * *",
		MaxBodyBytes:           1 << 20,
		RateLimitPerMinute:     60,
	}
}

func TestLoadDefaults(t *testing.T) {
	t.Setenv("PAYROLL_WORKERS", "")
	t.Setenv("RATE_LIMIT_PER_MINUTE", "not-a-number")
	t.Setenv("PAYROLL_RATES_FILE", "config/rates.yaml")

	cfg := Load()
	if cfg.PayrollWorkers != 4 {
		t.Fatalf("expected default workers, got %d", cfg.PayrollWorkers)
	}
	if cfg.RateLimitPerMinute != 60 {
		t.Fatalf("expected fallback rate limit, got %d", cfg.RateLimitPerMinute)
	}
	if cfg.PayrollRatesFile != "config/rates.yaml" {
		t.Fatalf("expected rates file from env, got %q", cfg.PayrollRatesFile)
	}
	if cfg.PayrollPreviewSchedule != "0 6 1 * *" {
		t.Fatalf("unexpected schedule %q", cfg.PayrollPreviewSchedule)
	}
}

func TestValidate(t *testing.T) {
	if err := validConfig().Validate(); err != nil {
		t.Fatalf("expected valid config, got %v", err)
	}

	tests := map[string]struct {
		mutate func(*Config)
		want   string
	}{
		"database":   {func(c *Config) { c.DatabaseURL = " " }, "DATABASE_URL"},
		"body limit": {func(c *Config) { c.MaxBodyBytes = 10 }, "MAX_BODY_BYTES"},
		"workers":    {func(c *Config) { c.PayrollWorkers = 0 }, "PAYROLL_WORKERS"},
		"schedule":   {func(c *Config) { c.PayrollPreviewSchedule = "every month" }, "PAYROLL_PREVIEW_SCHEDULE"},
		"seed in production": {func(c *Config) {
			c.Environment = "production"
			c.RunSeed = true
		}, "RUN_SEED"},
		"smtp": {func(c *Config) { c.EmailEnabled = true }, "SMTP_HOST"},
	}
	for name, tc := range tests {
		t.Run(name, func(t *testing.T) {
			cfg := validConfig()
			tc.mutate(&cfg)
			err := cfg.Validate()
			if err == nil || !strings.Contains(err.Error(), tc.want) {
				t.Fatalf("expected error mentioning %s, got %v", tc.want, err)
			}
		})
	}
}
