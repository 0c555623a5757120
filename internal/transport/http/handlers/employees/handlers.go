package employeeshandler

import (
	"errors"
	"net/http"

	"github.com/go-chi/chi/v5"

	"workforce/internal/domain/employees"
	"workforce/internal/requestctx"
	"workforce/internal/transport/http/api"
	"workforce/internal/transport/http/middleware"
	"workforce/internal/transport/http/shared"
)

type Handler struct {
	Service *employees.Service
	Audit   shared.AuditRecorder
}

func NewHandler(service *employees.Service, auditSvc shared.AuditRecorder) *Handler {
	return &Handler{Service: service, Audit: auditSvc}
}

func (h *Handler) RegisterRoutes(r chi.Router) {
	r.Route("/employees", func(r chi.Router) {
		r.Get("/", h.handleList)
		r.Post("/", h.handleCreate)
		r.Get("/{employeeID}", h.handleGet)
		r.Put("/{employeeID}", h.handleUpdate)
		r.Patch("/{employeeID}/contact", h.handleUpdateContact)
		r.Delete("/{employeeID}", h.handleDelete)
	})
}

func (h *Handler) handleList(w http.ResponseWriter, r *http.Request) {
	page := shared.ParsePagination(r, 100, 500)
	total, err := h.Service.Count(r.Context())
	if err != nil {
		requestctx.Logger(r.Context()).Warn("employee count failed", "err", err)
	}
	items, err := h.Service.List(r.Context(), page.Limit, page.Offset)
	if err != nil {
		h.fail(w, r, err)
		return
	}
	if items == nil {
		items = []employees.Employee{}
	}
	shared.SetTotal(w, total)
	api.Success(w, items, middleware.GetRequestID(r.Context()))
}

func (h *Handler) handleCreate(w http.ResponseWriter, r *http.Request) {
	requestID := middleware.GetRequestID(r.Context())
	var payload employees.Input
	if !shared.DecodeJSON(w, r, requestID, &payload) {
		return
	}
	if !shared.Validate(w, requestID, payload) {
		return
	}
	emp, err := h.Service.Create(r.Context(), payload)
	if err != nil {
		h.fail(w, r, err)
		return
	}
	shared.RecordAudit(r, h.Audit, "employee.create", "employee", emp.ID, nil, emp)
	api.Created(w, emp, requestID)
}

func (h *Handler) handleGet(w http.ResponseWriter, r *http.Request) {
	emp, err := h.Service.Get(r.Context(), chi.URLParam(r, "employeeID"))
	if err != nil {
		h.fail(w, r, err)
		return
	}
	api.Success(w, emp, middleware.GetRequestID(r.Context()))
}

func (h *Handler) handleUpdate(w http.ResponseWriter, r *http.Request) {
	requestID := middleware.GetRequestID(r.Context())
	var payload employees.Input
	if !shared.DecodeJSON(w, r, requestID, &payload) {
		return
	}
	if !shared.Validate(w, requestID, payload) {
		return
	}
	before, after, err := h.Service.Update(r.Context(), chi.URLParam(r, "employeeID"), payload)
	if err != nil {
		h.fail(w, r, err)
		return
	}
	shared.RecordAudit(r, h.Audit, "employee.update", "employee", after.ID, before, after)
	api.Success(w, after, requestID)
}

func (h *Handler) handleUpdateContact(w http.ResponseWriter, r *http.Request) {
	requestID := middleware.GetRequestID(r.Context())
	var payload employees.ContactInput
	if !shared.DecodeJSON(w, r, requestID, &payload) {
		return
	}
	if !shared.Validate(w, requestID, payload) {
		return
	}
	employeeID := chi.URLParam(r, "employeeID")
	emp, err := h.Service.UpdateContact(r.Context(), employeeID, payload)
	if err != nil {
		h.fail(w, r, err)
		return
	}
	shared.RecordAudit(r, h.Audit, "employee.contact.update", "employee", employeeID, nil, payload)
	api.Success(w, emp, requestID)
}

func (h *Handler) handleDelete(w http.ResponseWriter, r *http.Request) {
	removed, err := h.Service.Delete(r.Context(), chi.URLParam(r, "employeeID"))
	if err != nil {
		h.fail(w, r, err)
		return
	}
	shared.RecordAudit(r, h.Audit, "employee.delete", "employee", removed.ID, removed, nil)
	api.Success(w, map[string]string{"id": removed.ID, "status": "deleted"}, middleware.GetRequestID(r.Context()))
}

func (h *Handler) fail(w http.ResponseWriter, r *http.Request, err error) {
	requestID := middleware.GetRequestID(r.Context())
	switch {
	case errors.Is(err, employees.ErrInvalidInput):
		api.Fail(w, http.StatusBadRequest, "invalid_input", err.Error(), requestID)
	case errors.Is(err, employees.ErrEmployeeNotFound):
		api.Fail(w, http.StatusNotFound, "employee_not_found", "employee not found", requestID)
	case errors.Is(err, employees.ErrEmailTaken):
		api.Fail(w, http.StatusConflict, "email_taken", "email already in use", requestID)
	default:
		requestctx.Logger(r.Context()).Error("employee request failed", "path", r.URL.Path, "err", err)
		api.Fail(w, http.StatusInternalServerError, "employee_request_failed", "employee request failed", requestID)
	}
}
