package worklogshandler

import (
	"errors"
	"net/http"
	"strconv"
	"time"

	"github.com/go-chi/chi/v5"

	"workforce/internal/domain/worklog"
	"workforce/internal/requestctx"
	"workforce/internal/transport/http/api"
	employeeshandler "workforce/internal/transport/http/handlers/employees"
	"workforce/internal/transport/http/middleware"
	"workforce/internal/transport/http/shared"
)

type Handler struct {
	Service   *worklog.Service
	Employees employeeshandler.Lookup
	Audit     shared.AuditRecorder
	Now       func() time.Time
}

func NewHandler(service *worklog.Service, lookup employeeshandler.Lookup, auditSvc shared.AuditRecorder) *Handler {
	return &Handler{Service: service, Employees: lookup, Audit: auditSvc, Now: time.Now}
}

func (h *Handler) RegisterRoutes(r chi.Router) {
	r.Get("/employees/{employeeID}/work-logs", h.handleList)
	r.Post("/employees/{employeeID}/work-logs", h.handleCreate)
	r.Get("/work-logs/daily-totals", h.handleDailyTotals)
	r.Delete("/work-logs/{logID}", h.handleDelete)
}

type createRequest struct {
	Date      string `json:"date" validate:"required"`
	StartTime string `json:"startTime" validate:"required,clock"`
	EndTime   string `json:"endTime" validate:"required,clock"`
}

func (h *Handler) handleList(w http.ResponseWriter, r *http.Request) {
	employeeID := chi.URLParam(r, "employeeID")
	if _, ok := employeeshandler.RequireEmployee(w, r, h.Employees, employeeID); !ok {
		return
	}
	page := shared.ParsePagination(r, 100, 500)
	total, err := h.Service.Count(r.Context(), employeeID)
	if err != nil {
		requestctx.Logger(r.Context()).Warn("work log count failed", "err", err)
	}
	logs, err := h.Service.List(r.Context(), employeeID, page.Limit, page.Offset)
	if err != nil {
		h.fail(w, r, err)
		return
	}
	if logs == nil {
		logs = []worklog.WorkLog{}
	}
	shared.SetTotal(w, total)
	api.Success(w, logs, middleware.GetRequestID(r.Context()))
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
	date, err := shared.ParseDate(payload.Date)
	if payload.Date != "" && err != nil {
		v.Add("date", "must be a valid date in YYYY-MM-DD format")
	}
	if v.Reject(w, requestID) {
		return
	}
	if _, ok := employeeshandler.RequireEmployee(w, r, h.Employees, employeeID); !ok {
		return
	}

	log, err := h.Service.Add(r.Context(), employeeID, date, payload.StartTime, payload.EndTime)
	if err != nil {
		h.fail(w, r, err)
		return
	}
	shared.RecordAudit(r, h.Audit, "worklog.create", "work_log", log.ID, nil, log)
	api.Created(w, log, requestID)
}

func (h *Handler) handleDailyTotals(w http.ResponseWriter, r *http.Request) {
	days := 7
	if raw := r.URL.Query().Get("days"); raw != "" {
		parsed, err := strconv.Atoi(raw)
		if err != nil || parsed < 1 || parsed > 62 {
			shared.FailValidation(w, middleware.GetRequestID(r.Context()), []shared.ValidationIssue{{Field: "days", Reason: "must be between 1 and 62"}})
			return
		}
		days = parsed
	}
	totals, err := h.Service.DailyTotals(r.Context(), days, h.Now())
	if err != nil {
		h.fail(w, r, err)
		return
	}
	api.Success(w, totals, middleware.GetRequestID(r.Context()))
}

func (h *Handler) handleDelete(w http.ResponseWriter, r *http.Request) {
	logID := chi.URLParam(r, "logID")
	if err := h.Service.Delete(r.Context(), logID); err != nil {
		h.fail(w, r, err)
		return
	}
	shared.RecordAudit(r, h.Audit, "worklog.delete", "work_log", logID, nil, nil)
	api.Success(w, map[string]string{"id": logID, "status": "deleted"}, middleware.GetRequestID(r.Context()))
}

func (h *Handler) fail(w http.ResponseWriter, r *http.Request, err error) {
	requestID := middleware.GetRequestID(r.Context())
	switch {
	case errors.Is(err, worklog.ErrInvalidTime):
		api.Fail(w, http.StatusBadRequest, "invalid_input", err.Error(), requestID)
	case errors.Is(err, worklog.ErrDuplicateDay):
		api.Fail(w, http.StatusConflict, "duplicate_day", "a work log already exists for this day", requestID)
	case errors.Is(err, worklog.ErrNotFound):
		api.Fail(w, http.StatusNotFound, "work_log_not_found", "work log not found", requestID)
	default:
		requestctx.Logger(r.Context()).Error("work log request failed", "path", r.URL.Path, "err", err)
		api.Fail(w, http.StatusInternalServerError, "work_log_request_failed", "work log request failed", requestID)
	}
}
