package companyhandler

import (
	"errors"
	"net/http"

	"github.com/go-chi/chi/v5"

	"workforce/internal/domain/company"
	"workforce/internal/requestctx"
	"workforce/internal/transport/http/api"
	"workforce/internal/transport/http/middleware"
	"workforce/internal/transport/http/shared"
)

type Handler struct {
	Service *company.Service
	Audit   shared.AuditRecorder
}

func NewHandler(service *company.Service, auditSvc shared.AuditRecorder) *Handler {
	return &Handler{Service: service, Audit: auditSvc}
}

func (h *Handler) RegisterRoutes(r chi.Router) {
	r.Route("/company", func(r chi.Router) {
		r.Get("/", h.handleGet)
		r.Put("/", h.handleUpdate)
		r.Post("/upgrade", h.handleUpgrade)
	})
}

func (h *Handler) handleGet(w http.ResponseWriter, r *http.Request) {
	settings, err := h.Service.Get(r.Context())
	if err != nil {
		h.fail(w, r, err)
		return
	}
	api.Success(w, settings, middleware.GetRequestID(r.Context()))
}

func (h *Handler) handleUpdate(w http.ResponseWriter, r *http.Request) {
	requestID := middleware.GetRequestID(r.Context())
	var payload company.DetailsInput
	if !shared.DecodeJSON(w, r, requestID, &payload) {
		return
	}
	if !shared.Validate(w, requestID, payload) {
		return
	}
	before, err := h.Service.Get(r.Context())
	if err != nil {
		h.fail(w, r, err)
		return
	}
	after, err := h.Service.UpdateDetails(r.Context(), payload)
	if err != nil {
		h.fail(w, r, err)
		return
	}
	shared.RecordAudit(r, h.Audit, "company.update", "company_settings", "1", before, after)
	api.Success(w, after, requestID)
}

func (h *Handler) handleUpgrade(w http.ResponseWriter, r *http.Request) {
	settings, err := h.Service.UpgradeToPremium(r.Context())
	if err != nil {
		h.fail(w, r, err)
		return
	}
	shared.RecordAudit(r, h.Audit, "company.upgrade", "company_settings", "1", nil, map[string]bool{"isPremium": settings.IsPremium})
	api.Success(w, settings, middleware.GetRequestID(r.Context()))
}

func (h *Handler) fail(w http.ResponseWriter, r *http.Request, err error) {
	requestID := middleware.GetRequestID(r.Context())
	switch {
	case errors.Is(err, company.ErrInvalidNIP):
		shared.FailValidation(w, requestID, []shared.ValidationIssue{{Field: "nip", Reason: "must contain 10 digits"}})
	case errors.Is(err, company.ErrInvalidName):
		shared.FailValidation(w, requestID, []shared.ValidationIssue{{Field: "companyName", Reason: "is required"}})
	default:
		requestctx.Logger(r.Context()).Error("company request failed", "path", r.URL.Path, "err", err)
		api.Fail(w, http.StatusInternalServerError, "company_request_failed", "company request failed", requestID)
	}
}
