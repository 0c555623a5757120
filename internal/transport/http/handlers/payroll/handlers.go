package payrollhandler

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/shopspring/decimal"

	"workforce/internal/domain/payroll"
	"workforce/internal/platform/jobs"
	"workforce/internal/requestctx"
	"workforce/internal/transport/http/api"
	"workforce/internal/transport/http/middleware"
	"workforce/internal/transport/http/shared"
)

const (
	contentTypePDF  = "application/pdf"
	contentTypeXLSX = "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"
	contentTypeCSV  = "text/csv; charset=utf-8"
)

// PreviewRunner is satisfied by jobs.Service.
type PreviewRunner interface {
	RunPayrollPreview(ctx context.Context, month time.Time, trigger string) (jobs.PreviewSummary, error)
	EnqueuePayrollPreview(month time.Time, trigger string) bool
	ListRuns(ctx context.Context, jobType string, limit int) ([]jobs.Run, error)
}

type Handler struct {
	Service     *payroll.Service
	Jobs        PreviewRunner
	Audit       shared.AuditRecorder
	Idempotency middleware.IdempotencyStore
	Now         func() time.Time
}

func NewHandler(service *payroll.Service, jobsSvc PreviewRunner, auditSvc shared.AuditRecorder, idem middleware.IdempotencyStore) *Handler {
	return &Handler{Service: service, Jobs: jobsSvc, Audit: auditSvc, Idempotency: idem, Now: time.Now}
}

func (h *Handler) RegisterRoutes(r chi.Router) {
	r.Route("/payroll", func(r chi.Router) {
		r.Post("/calculate", h.handleCalculate)
		r.Get("/rates", h.handleRates)
		r.Get("/estimates", h.handleListEstimates)
		r.Get("/estimates/{employeeID}", h.handleGetEstimate)
		r.Get("/estimates/{employeeID}/payslip.pdf", h.handlePayslip)
		r.Get("/register.xlsx", h.handleRegisterXLSX)
		r.Get("/register.csv", h.handleRegisterCSV)
		r.Get("/preview-runs", h.handleListPreviewRuns)
		r.With(middleware.Idempotent(h.Idempotency, "payroll.preview-runs")).Post("/preview-runs", h.handleCreatePreviewRun)
	})
}

type calculateRequest struct {
	GrossSalary  decimal.Decimal `json:"grossSalary" validate:"gte=0"`
	BonusAmount  decimal.Decimal `json:"bonusAmount" validate:"gte=0"`
	Age          int             `json:"age" validate:"gte=0,lte=120"`
	IsStudent    bool            `json:"isStudent"`
	ContractType string          `json:"contractType" validate:"required"`
}

func (h *Handler) handleCalculate(w http.ResponseWriter, r *http.Request) {
	requestID := middleware.GetRequestID(r.Context())
	var payload calculateRequest
	if !shared.DecodeJSON(w, r, requestID, &payload) {
		return
	}
	v := shared.NewValidator()
	v.Struct(payload)
	contract, ok := payroll.ParseContractType(payload.ContractType)
	if payload.ContractType != "" && !ok {
		v.Add("contractType", "must be one of: employment, mandate")
	}
	if v.Reject(w, requestID) {
		return
	}

	breakdown, err := h.Service.Preview(payload.GrossSalary, payload.BonusAmount, payroll.TaxProfile{
		Age:          payload.Age,
		IsStudent:    payload.IsStudent,
		ContractType: contract,
	})
	if err != nil {
		h.fail(w, r, err)
		return
	}
	api.Success(w, breakdown, requestID)
}

func (h *Handler) handleRates(w http.ResponseWriter, r *http.Request) {
	api.Success(w, h.Service.Rates(), middleware.GetRequestID(r.Context()))
}

type estimatesResponse struct {
	Month     string                 `json:"month"`
	Estimates []payroll.Estimate     `json:"estimates"`
	Totals    payroll.RegisterTotals `json:"totals"`
}

func (h *Handler) handleListEstimates(w http.ResponseWriter, r *http.Request) {
	month, ok := h.month(w, r)
	if !ok {
		return
	}
	estimates, err := h.Service.EstimateAll(r.Context(), month)
	if err != nil {
		h.fail(w, r, err)
		return
	}
	if estimates == nil {
		estimates = []payroll.Estimate{}
	}
	api.Success(w, estimatesResponse{
		Month:     month.Format("2006-01"),
		Estimates: estimates,
		Totals:    payroll.Totals(estimates),
	}, middleware.GetRequestID(r.Context()))
}

func (h *Handler) handleGetEstimate(w http.ResponseWriter, r *http.Request) {
	month, ok := h.month(w, r)
	if !ok {
		return
	}
	estimate, err := h.Service.EstimateForEmployee(r.Context(), chi.URLParam(r, "employeeID"), month)
	if err != nil {
		h.fail(w, r, err)
		return
	}
	api.Success(w, estimate, middleware.GetRequestID(r.Context()))
}

func (h *Handler) handlePayslip(w http.ResponseWriter, r *http.Request) {
	month, ok := h.month(w, r)
	if !ok {
		return
	}
	employeeID := chi.URLParam(r, "employeeID")
	pdf, err := h.Service.Payslip(r.Context(), employeeID, month)
	if err != nil {
		h.fail(w, r, err)
		return
	}
	api.Attachment(w, contentTypePDF, fmt.Sprintf("payslip-%s-%s.pdf", employeeID, month.Format("2006-01")), pdf)
}

func (h *Handler) handleRegisterXLSX(w http.ResponseWriter, r *http.Request) {
	month, ok := h.month(w, r)
	if !ok {
		return
	}
	company, estimates, err := h.Service.Register(r.Context(), month)
	if err != nil {
		h.fail(w, r, err)
		return
	}
	body, err := payroll.RegisterXLSX(company, month.Format("2006-01"), estimates)
	if err != nil {
		h.fail(w, r, err)
		return
	}
	api.Attachment(w, contentTypeXLSX, "payroll-register-"+month.Format("2006-01")+".xlsx", body)
}

func (h *Handler) handleRegisterCSV(w http.ResponseWriter, r *http.Request) {
	month, ok := h.month(w, r)
	if !ok {
		return
	}
	_, estimates, err := h.Service.Register(r.Context(), month)
	if err != nil {
		h.fail(w, r, err)
		return
	}
	var buf bytes.Buffer
	if err := payroll.RegisterCSV(&buf, estimates); err != nil {
		h.fail(w, r, err)
		return
	}
	api.Attachment(w, contentTypeCSV, "payroll-register-"+month.Format("2006-01")+".csv", buf.Bytes())
}

type previewRunRequest struct {
	Month string `json:"month" validate:"omitempty,month"`
	Async bool   `json:"async"`
}

func (h *Handler) handleCreatePreviewRun(w http.ResponseWriter, r *http.Request) {
	requestID := middleware.GetRequestID(r.Context())
	if h.Jobs == nil {
		api.Fail(w, http.StatusServiceUnavailable, "jobs_unavailable", "background jobs are not running", requestID)
		return
	}
	var payload previewRunRequest
	if r.ContentLength != 0 && !shared.DecodeJSON(w, r, requestID, &payload) {
		return
	}
	if !shared.Validate(w, requestID, payload) {
		return
	}
	month := h.previousMonth()
	if payload.Month != "" {
		parsed, err := payroll.ParseMonth(payload.Month)
		if err != nil {
			h.fail(w, r, err)
			return
		}
		month = parsed
	}

	shared.RecordAudit(r, h.Audit, "payroll.preview.run", "job_run", payroll.JobPayrollPreview, nil, map[string]any{
		"month": month.Format("2006-01"),
		"async": payload.Async,
	})

	if payload.Async {
		if !h.Jobs.EnqueuePayrollPreview(month, jobs.TriggerManual) {
			api.Fail(w, http.StatusServiceUnavailable, "job_queue_full", "job queue is full, retry later", requestID)
			return
		}
		api.Accepted(w, map[string]string{"month": month.Format("2006-01"), "status": "queued"}, requestID)
		return
	}
	summary, err := h.Jobs.RunPayrollPreview(r.Context(), month, jobs.TriggerManual)
	if err != nil {
		h.fail(w, r, err)
		return
	}
	api.Created(w, summary, requestID)
}

func (h *Handler) handleListPreviewRuns(w http.ResponseWriter, r *http.Request) {
	requestID := middleware.GetRequestID(r.Context())
	if h.Jobs == nil {
		api.Success(w, []jobs.Run{}, requestID)
		return
	}
	page := shared.ParsePagination(r, 20, 100)
	runs, err := h.Jobs.ListRuns(r.Context(), payroll.JobPayrollPreview, page.Limit)
	if err != nil {
		h.fail(w, r, err)
		return
	}
	if runs == nil {
		runs = []jobs.Run{}
	}
	api.Success(w, runs, requestID)
}

// month reads ?month=YYYY-MM, defaulting to the current month.
func (h *Handler) month(w http.ResponseWriter, r *http.Request) (time.Time, bool) {
	raw := r.URL.Query().Get("month")
	if raw == "" {
		now := h.Now().UTC()
		return time.Date(now.Year(), now.Month(), 1, 0, 0, 0, 0, time.UTC), true
	}
	month, err := payroll.ParseMonth(raw)
	if err != nil {
		h.fail(w, r, err)
		return time.Time{}, false
	}
	return month, true
}

func (h *Handler) previousMonth() time.Time {
	now := h.Now().UTC()
	return time.Date(now.Year(), now.Month(), 1, 0, 0, 0, 0, time.UTC).AddDate(0, -1, 0)
}

func (h *Handler) fail(w http.ResponseWriter, r *http.Request, err error) {
	requestID := middleware.GetRequestID(r.Context())
	switch {
	case errors.Is(err, payroll.ErrInvalidMonth):
		shared.FailValidation(w, requestID, []shared.ValidationIssue{{Field: "month", Reason: "must be a month in YYYY-MM format"}})
	case errors.Is(err, payroll.ErrInvalidInput):
		api.Fail(w, http.StatusBadRequest, "invalid_input", err.Error(), requestID)
	case errors.Is(err, payroll.ErrEmployeeNotFound):
		api.Fail(w, http.StatusNotFound, "employee_not_found", "employee not found", requestID)
	case errors.Is(err, payroll.ErrPremiumRequired):
		api.Fail(w, http.StatusPaymentRequired, "premium_required", "this feature requires the premium plan", requestID)
	default:
		requestctx.Logger(r.Context()).Error("payroll request failed", "path", r.URL.Path, "err", err)
		api.Fail(w, http.StatusInternalServerError, "payroll_failed", "payroll request failed", requestID)
	}
}
