package server

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"workforce/internal/domain/absence"
	"workforce/internal/domain/audit"
	"workforce/internal/domain/company"
	"workforce/internal/domain/employees"
	"workforce/internal/domain/notifications"
	"workforce/internal/domain/payroll"
	"workforce/internal/domain/sales"
	"workforce/internal/domain/worklog"
	"workforce/internal/platform/config"
	"workforce/internal/platform/db"
	"workforce/internal/platform/email"
	"workforce/internal/platform/jobs"
	"workforce/internal/platform/metrics"
	"workforce/internal/transport/http/api"
	absenceshandler "workforce/internal/transport/http/handlers/absences"
	audithandler "workforce/internal/transport/http/handlers/audit"
	companyhandler "workforce/internal/transport/http/handlers/company"
	employeeshandler "workforce/internal/transport/http/handlers/employees"
	notificationshandler "workforce/internal/transport/http/handlers/notifications"
	payrollhandler "workforce/internal/transport/http/handlers/payroll"
	saleshandler "workforce/internal/transport/http/handlers/sales"
	worklogshandler "workforce/internal/transport/http/handlers/worklogs"
	"workforce/internal/transport/http/middleware"
)

type App struct {
	Config  config.Config
	DB      *pgxpool.Pool
	Router  http.Handler
	Jobs    *jobs.Service
	Metrics *metrics.Collector

	cancel context.CancelFunc
}

// New connects to the database, prepares the schema and builds the router.
// Background jobs run until Close is called.
func New(ctx context.Context, cfg config.Config) (*App, error) {
	pool, err := db.Connect(ctx, cfg)
	if err != nil {
		return nil, fmt.Errorf("db connect: %w", err)
	}
	if cfg.RunMigrations {
		if err := db.Migrate(ctx, pool, cfg.MigrationsDir); err != nil {
			pool.Close()
			return nil, fmt.Errorf("migrations: %w", err)
		}
	}
	if cfg.RunSeed {
		if err := db.Seed(ctx, pool, cfg); err != nil {
			pool.Close()
			return nil, fmt.Errorf("seed: %w", err)
		}
	}

	rates := payroll.DefaultRates()
	if cfg.PayrollRatesFile != "" {
		rates, err = payroll.LoadRates(cfg.PayrollRatesFile)
		if err != nil {
			pool.Close()
			return nil, fmt.Errorf("payroll rates: %w", err)
		}
		slog.Info("payroll rates loaded", "path", cfg.PayrollRatesFile)
	}
	calc, err := payroll.NewCalculator(rates)
	if err != nil {
		pool.Close()
		return nil, fmt.Errorf("payroll rates: %w", err)
	}

	collector := metrics.New()
	payrollSvc := payroll.NewService(payroll.NewStore(pool), calc, cfg.PayrollWorkers)
	payrollSvc.SetObserver(collector.ObserveBreakdown)

	jobsCtx, cancel := context.WithCancel(context.Background())
	jobsSvc := jobs.New(jobs.NewStore(pool), payrollSvc, cfg, collector)
	if err := jobsSvc.Start(jobsCtx); err != nil {
		cancel()
		pool.Close()
		return nil, err
	}

	notifySvc := notifications.New(notifications.NewStore(pool), email.New(cfg))
	notifySvc.DefaultFrom = cfg.EmailFrom
	employeeSvc := employees.NewService(employees.NewStore(pool))
	auditSvc := audit.New(pool)
	idem := middleware.NewIdempotencyStore(pool)

	router := chi.NewRouter()
	router.Use(middleware.RequestID)
	router.Use(middleware.Logger(collector))
	router.Use(middleware.Recoverer)
	router.Use(middleware.SecureHeaders(cfg.IsProduction()))
	router.Use(middleware.BodyLimit(cfg.MaxBodyBytes))
	router.Use(middleware.RateLimit(cfg.RateLimitPerMinute, time.Minute))
	router.Use(middleware.ExpensiveRateLimit(cfg.RateLimitPerMinute, time.Minute))

	router.Get("/healthz", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte("ok"))
	})
	router.Get("/readyz", func(w http.ResponseWriter, r *http.Request) {
		ctx, cancel := context.WithTimeout(r.Context(), 2*time.Second)
		defer cancel()
		if err := pool.Ping(ctx); err != nil {
			http.Error(w, "db not ready", http.StatusServiceUnavailable)
			return
		}
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte("ready"))
	})
	if cfg.MetricsEnabled {
		router.Get("/metrics", func(w http.ResponseWriter, r *http.Request) {
			api.Success(w, collector.Snapshot(), middleware.GetRequestID(r.Context()))
		})
	}

	router.Route("/api/v1", func(r chi.Router) {
		// /employees is mounted first; nested employee resources below
		// register on the parent router.
		employeeshandler.NewHandler(employeeSvc, auditSvc).RegisterRoutes(r)
		worklogshandler.NewHandler(worklog.NewService(worklog.NewStore(pool)), employeeSvc, auditSvc).RegisterRoutes(r)
		saleshandler.NewHandler(sales.NewService(sales.NewStore(pool)), employeeSvc, auditSvc, idem).RegisterRoutes(r)
		payrollhandler.NewHandler(payrollSvc, jobsSvc, auditSvc, idem).RegisterRoutes(r)
		absenceshandler.NewHandler(absence.NewService(absence.NewStore(pool), notifySvc), auditSvc, idem).RegisterRoutes(r)
		notificationshandler.NewHandler(notifySvc, auditSvc).RegisterRoutes(r)
		companyhandler.NewHandler(company.NewService(company.NewStore(pool)), auditSvc).RegisterRoutes(r)
		audithandler.NewHandler(auditSvc).RegisterRoutes(r)
	})

	return &App{
		Config:  cfg,
		DB:      pool,
		Router:  router,
		Jobs:    jobsSvc,
		Metrics: collector,
		cancel:  cancel,
	}, nil
}

// Run serves until ctx is cancelled, then drains in-flight requests.
func (a *App) Run(ctx context.Context) error {
	srv := &http.Server{
		Addr:              a.Config.Addr,
		Handler:           a.Router,
		ReadHeaderTimeout: 10 * time.Second,
		ReadTimeout:       30 * time.Second,
		WriteTimeout:      60 * time.Second,
		IdleTimeout:       120 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		slog.Info("server listening", "addr", a.Config.Addr, "env", a.Config.Environment)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
	}

	slog.Info("shutting down", "timeout", a.Config.ShutdownTimeout)
	shutdownCtx, cancel := context.WithTimeout(context.Background(), a.Config.ShutdownTimeout)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("shutdown: %w", err)
	}
	return nil
}

func (a *App) Close() {
	if a.cancel != nil {
		a.cancel()
	}
	if a.DB != nil {
		a.DB.Close()
	}
}

// NewLogger returns a JSON logger in production and a text logger elsewhere.
func NewLogger(cfg config.Config) *slog.Logger {
	opts := &slog.HandlerOptions{Level: slog.LevelInfo}
	if !cfg.IsProduction() {
		opts.Level = slog.LevelDebug
		return slog.New(slog.NewTextHandler(os.Stdout, opts))
	}
	return slog.New(slog.NewJSONHandler(os.Stdout, opts))
}
