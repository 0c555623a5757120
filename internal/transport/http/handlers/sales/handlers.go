package saleshandler

import (
	"errors"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/shopspring/decimal"

	"workforce/internal/domain/payroll"
	"workforce/internal/domain/sales"
	"workforce/internal/requestctx"
	"workforce/internal/transport/http/api"
	employeeshandler "workforce/internal/transport/http/handlers/employees"
	"workforce/internal/transport/http/middleware"
	"workforce/internal/transport/http/shared"
)

type Handler struct {
	Service     *sales.Service
	Employees   employeeshandler.Lookup
	Audit       shared.AuditRecorder
	Idempotency middleware.IdempotencyStore
	Now         func() time.Time
}

func NewHandler(service *sales.Service, lookup employeeshandler.Lookup, auditSvc shared.AuditRecorder, idem middleware.IdempotencyStore) *Handler {
	return &Handler{Service: service, Employees: lookup, Audit: auditSvc, Idempotency: idem, Now: time.Now}
}

func (h *Handler) RegisterRoutes(r chi.Router) {
	r.Get("/employees/{employeeID}/sales", h.handleList)
	r.With(middleware.Idempotent(h.Idempotency, "sales.create")).Post("/employees/{employeeID}/sales", h.handleCreate)
	r.Get("/employees/{employeeID}/sales/monthly", h.handleMonthly)
	r.Delete("/sales/{saleID}", h.handleDelete)
}

type createRequest struct {
	Amount decimal.Decimal `json:"amount" validate:"gt=0"`
	Date   string          `json:"date"`
}

func (h *Handler) handleList(w http.ResponseWriter, r *http.Request) {
	employeeID := chi.URLParam(r, "employeeID")
	if _, ok := employeeshandler.RequireEmployee(w, r, h.Employees, employeeID); !ok {
		return
	}
	page := shared.ParsePagination(r, 100, 500)
	total, err := h.Service.Count(r.Context(), employeeID)
	if err != nil {
		requestctx.Logger(r.Context()).Warn("sales count failed", "err", err)
	}
	items, err := h.Service.List(r.Context(), employeeID, page.Limit, page.Offset)
	if err != nil {
		h.fail(w, r, err)
		return
	}
	if items == nil {
		items = []sales.Sale{}
	}
	shared.SetTotal(w, total)
	api.Success(w, items, middleware.GetRequestID(r.Context()))
}

func (h *Handler) handleCreate(w http.ResponseWriter, r *http.Request) {
	requestID := middleware.GetRequestID(r.Context())
	employeeID := chi.URLParam(r, "employeeID")
	var payload createRequest
	if !shared.DecodeJSON(w, r, requestID, &payload) {
		return
	}
	v := shared.NewValidator()
	v.Struct(payload)
	date := h.Now()
	if payload.Date != "" {
		parsed, err := shared.ParseDate(payload.Date)
		if err != nil {
			v.Add("date", "must be a valid date in YYYY-MM-DD format")
		}
		date = parsed
	}
	if v.Reject(w, requestID) {
		return
	}
	if _, ok := employeeshandler.RequireEmployee(w, r, h.Employees, employeeID); !ok {
		return
	}

	sale, err := h.Service.Record(r.Context(), employeeID, payload.Amount, date)
	if err != nil {
		h.fail(w, r, err)
		return
	}
	shared.RecordAudit(r, h.Audit, "sale.create", "sale", sale.ID, nil, sale)
	api.Created(w, sale, requestID)
}

func (h *Handler) handleMonthly(w http.ResponseWriter, r *http.Request) {
	employeeID := chi.URLParam(r, "employeeID")
	if _, ok := employeeshandler.RequireEmployee(w, r, h.Employees, employeeID); !ok {
		return
	}
	now := h.Now().UTC()
	month := time.Date(now.Year(), now.Month(), 1, 0, 0, 0, 0, time.UTC)
	if raw := r.URL.Query().Get("month"); raw != "" {
		parsed, err := payroll.ParseMonth(raw)
		if err != nil {
			shared.FailValidation(w, middleware.GetRequestID(r.Context()), []shared.ValidationIssue{{Field: "month", Reason: "must be a month in YYYY-MM format"}})
			return
		}
		month = parsed
	}
	total, err := h.Service.MonthlyTotal(r.Context(), employeeID, month)
	if err != nil {
		h.fail(w, r, err)
		return
	}
	api.Success(w, total, middleware.GetRequestID(r.Context()))
}

func (h *Handler) handleDelete(w http.ResponseWriter, r *http.Request) {
	saleID := chi.URLParam(r, "saleID")
	if err := h.Service.Delete(r.Context(), saleID); err != nil {
		h.fail(w, r, err)
		return
	}
	shared.RecordAudit(r, h.Audit, "sale.delete", "sale", saleID, nil, nil)
	api.Success(w, map[string]string{"id": saleID, "status": "deleted"}, middleware.GetRequestID(r.Context()))
}

func (h *Handler) fail(w http.ResponseWriter, r *http.Request, err error) {
	requestID := middleware.GetRequestID(r.Context())
	switch {
	case errors.Is(err, sales.ErrInvalidAmount):
		api.Fail(w, http.StatusBadRequest, "invalid_input", err.Error(), requestID)
	case errors.Is(err, sales.ErrNotFound):
		api.Fail(w, http.StatusNotFound, "sale_not_found", "sale not found", requestID)
	default:
		requestctx.Logger(r.Context()).Error("sales request failed", "path", r.URL.Path, "err", err)
		api.Fail(w, http.StatusInternalServerError, "sales_request_failed", "sales request failed", requestID)
	}
}
