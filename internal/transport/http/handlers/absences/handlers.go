package absenceshandler

import (
	"errors"
	"net/http"

	"github.com/go-chi/chi/v5"

	"workforce/internal/domain/absence"
	"workforce/internal/requestctx"
	"workforce/internal/transport/http/api"
	"workforce/internal/transport/http/middleware"
	"workforce/internal/transport/http/shared"
)

type Handler struct {
	Service     *absence.Service
	Audit       shared.AuditRecorder
	Idempotency middleware.IdempotencyStore
}

func NewHandler(service *absence.Service, auditSvc shared.AuditRecorder, idem middleware.IdempotencyStore) *Handler {
	return &Handler{Service: service, Audit: auditSvc, Idempotency: idem}
}

func (h *Handler) RegisterRoutes(r chi.Router) {
	r.Route("/absences", func(r chi.Router) {
		r.Get("/", h.handleList)
		r.With(middleware.Idempotent(h.Idempotency, "absences.create")).Post("/", h.handleCreate)
		r.Get("/{requestID}", h.handleGet)
		r.Post("/{requestID}/decision", h.handleDecide)
	})
}

func (h *Handler) handleList(w http.ResponseWriter, r *http.Request) {
	requestID := middleware.GetRequestID(r.Context())
	status := r.URL.Query().Get("status")
	if status != "" && !absence.ValidStatus(status) {
		shared.FailValidation(w, requestID, []shared.ValidationIssue{{Field: "status", Reason: "must be one of: pending, approved, rejected"}})
		return
	}
	employeeID := r.URL.Query().Get("employeeId")
	page := shared.ParsePagination(r, 100, 500)

	total, err := h.Service.Count(r.Context(), status, employeeID)
	if err != nil {
		requestctx.Logger(r.Context()).Warn("absence count failed", "err", err)
	}
	items, err := h.Service.List(r.Context(), status, employeeID, page.Limit, page.Offset)
	if err != nil {
		h.fail(w, r, err)
		return
	}
	if items == nil {
		items = []absence.Request{}
	}
	shared.SetTotal(w, total)
	api.Success(w, items, requestID)
}

func (h *Handler) handleCreate(w http.ResponseWriter, r *http.Request) {
	requestID := middleware.GetRequestID(r.Context())
	var payload absence.CreateInput
	if !shared.DecodeJSON(w, r, requestID, &payload) {
		return
	}
	if !shared.Validate(w, requestID, payload) {
		return
	}
	date, err := shared.ParseDate(payload.Date)
	if err != nil {
		shared.FailValidation(w, requestID, []shared.ValidationIssue{{Field: "date", Reason: "must be a valid date in YYYY-MM-DD format"}})
		return
	}
	req, err := h.Service.Create(r.Context(), payload.EmployeeID, payload.Reason, date)
	if err != nil {
		h.fail(w, r, err)
		return
	}
	shared.RecordAudit(r, h.Audit, "absence.create", "absence_request", req.ID, nil, req)
	api.Created(w, req, requestID)
}

func (h *Handler) handleGet(w http.ResponseWriter, r *http.Request) {
	req, err := h.Service.Get(r.Context(), chi.URLParam(r, "requestID"))
	if err != nil {
		h.fail(w, r, err)
		return
	}
	api.Success(w, req, middleware.GetRequestID(r.Context()))
}

func (h *Handler) handleDecide(w http.ResponseWriter, r *http.Request) {
	requestID := middleware.GetRequestID(r.Context())
	var payload absence.DecisionInput
	if !shared.DecodeJSON(w, r, requestID, &payload) {
		return
	}
	if !shared.Validate(w, requestID, payload) {
		return
	}
	updated, err := h.Service.Decide(r.Context(), chi.URLParam(r, "requestID"), payload.Status)
	if err != nil {
		h.fail(w, r, err)
		return
	}
	shared.RecordAudit(r, h.Audit, "absence."+updated.Status, "absence_request", updated.ID,
		map[string]string{"status": absence.StatusPending}, map[string]string{"status": updated.Status})
	api.Success(w, updated, requestID)
}

func (h *Handler) fail(w http.ResponseWriter, r *http.Request, err error) {
	requestID := middleware.GetRequestID(r.Context())
	switch {
	case errors.Is(err, absence.ErrInvalidReason), errors.Is(err, absence.ErrInvalidStatus):
		api.Fail(w, http.StatusBadRequest, "invalid_input", err.Error(), requestID)
	case errors.Is(err, absence.ErrEmployeeNotFound):
		api.Fail(w, http.StatusNotFound, "employee_not_found", "employee not found", requestID)
	case errors.Is(err, absence.ErrNotFound):
		api.Fail(w, http.StatusNotFound, "absence_not_found", "absence request not found", requestID)
	case errors.Is(err, absence.ErrInvalidTransition):
		api.Fail(w, http.StatusConflict, "absence_already_decided", "absence request already decided", requestID)
	default:
		requestctx.Logger(r.Context()).Error("absence request failed", "path", r.URL.Path, "err", err)
		api.Fail(w, http.StatusInternalServerError, "absence_request_failed", "absence request failed", requestID)
	}
}
