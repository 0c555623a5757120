package notificationshandler

import (
	"errors"
	"net/http"

	"github.com/go-chi/chi/v5"

	"workforce/internal/domain/notifications"
	"workforce/internal/requestctx"
	"workforce/internal/transport/http/api"
	"workforce/internal/transport/http/middleware"
	"workforce/internal/transport/http/shared"
)

type Handler struct {
	Service *notifications.Service
	Audit   shared.AuditRecorder
}

func NewHandler(service *notifications.Service, auditSvc shared.AuditRecorder) *Handler {
	return &Handler{Service: service, Audit: auditSvc}
}

func (h *Handler) RegisterRoutes(r chi.Router) {
	r.Route("/notifications", func(r chi.Router) {
		r.Get("/", h.handleList)
		r.Post("/{notificationID}/read", h.handleMarkRead)
		r.Get("/settings", h.handleSettings)
		r.Put("/settings", h.handleUpdateSettings)
	})
}

// recipient reads ?recipient=, which is "employer" or an employee id.
func recipient(r *http.Request) string {
	if value := r.URL.Query().Get("recipient"); value != "" {
		return value
	}
	return notifications.RecipientEmployer
}

func (h *Handler) handleList(w http.ResponseWriter, r *http.Request) {
	who := recipient(r)
	unreadOnly := r.URL.Query().Get("unread") == "true"
	page := shared.ParsePagination(r, 100, 500)

	total, err := h.Service.Count(r.Context(), who, unreadOnly)
	if err != nil {
		requestctx.Logger(r.Context()).Warn("notification count failed", "err", err)
	}
	items, err := h.Service.List(r.Context(), who, unreadOnly, page.Limit, page.Offset)
	if err != nil {
		api.Fail(w, http.StatusInternalServerError, "notification_list_failed", "failed to list notifications", middleware.GetRequestID(r.Context()))
		return
	}
	if items == nil {
		items = []notifications.Notification{}
	}
	shared.SetTotal(w, total)
	api.Success(w, items, middleware.GetRequestID(r.Context()))
}

func (h *Handler) handleMarkRead(w http.ResponseWriter, r *http.Request) {
	requestID := middleware.GetRequestID(r.Context())
	notificationID := chi.URLParam(r, "notificationID")
	if err := h.Service.MarkRead(r.Context(), recipient(r), notificationID); err != nil {
		if errors.Is(err, notifications.ErrNotFound) {
			api.Fail(w, http.StatusNotFound, "notification_not_found", "notification not found", requestID)
			return
		}
		api.Fail(w, http.StatusInternalServerError, "notification_update_failed", "failed to update notification", requestID)
		return
	}
	api.Success(w, map[string]string{"status": "read"}, requestID)
}

func (h *Handler) handleSettings(w http.ResponseWriter, r *http.Request) {
	settings, err := h.Service.GetSettings(r.Context())
	if err != nil {
		api.Fail(w, http.StatusInternalServerError, "notification_settings_failed", "failed to load settings", middleware.GetRequestID(r.Context()))
		return
	}
	api.Success(w, settings, middleware.GetRequestID(r.Context()))
}

func (h *Handler) handleUpdateSettings(w http.ResponseWriter, r *http.Request) {
	requestID := middleware.GetRequestID(r.Context())
	var payload notifications.EmailSettings
	if !shared.DecodeJSON(w, r, requestID, &payload) {
		return
	}
	if !shared.Validate(w, requestID, payload) {
		return
	}
	before, err := h.Service.GetSettings(r.Context())
	if err != nil {
		requestctx.Logger(r.Context()).Warn("notification settings load failed", "err", err)
	}
	if err := h.Service.UpdateSettings(r.Context(), payload); err != nil {
		api.Fail(w, http.StatusInternalServerError, "notification_settings_failed", "failed to update settings", requestID)
		return
	}
	shared.RecordAudit(r, h.Audit, "notification.settings.update", "company_settings", "1", before, payload)
	api.Success(w, payload, requestID)
}
