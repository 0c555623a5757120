package audithandler

import (
	"context"
	"net/http"

	"github.com/go-chi/chi/v5"

	"workforce/internal/domain/audit"
	"workforce/internal/requestctx"
	"workforce/internal/transport/http/api"
	"workforce/internal/transport/http/middleware"
	"workforce/internal/transport/http/shared"
)

// EventLister is satisfied by audit.Service.
type EventLister interface {
	Count(ctx context.Context, filter audit.Filter) (int, error)
	List(ctx context.Context, filter audit.Filter, includeDetails bool, limit, offset int) ([]audit.Event, error)
}

type Handler struct {
	Events EventLister
}

func NewHandler(events EventLister) *Handler {
	return &Handler{Events: events}
}

func (h *Handler) RegisterRoutes(r chi.Router) {
	r.Route("/audit", func(r chi.Router) {
		r.Get("/events", h.handleListEvents)
	})
}

func (h *Handler) handleListEvents(w http.ResponseWriter, r *http.Request) {
	requestID := middleware.GetRequestID(r.Context())
	query := r.URL.Query()
	filter := audit.Filter{
		Action:     query.Get("action"),
		EntityType: query.Get("entityType"),
		EntityID:   query.Get("entityId"),
	}

	v := shared.NewValidator()
	from, err := shared.ParseDate(query.Get("from"))
	if err != nil {
		v.Add("from", "must be a valid date in YYYY-MM-DD format")
	}
	to, err := shared.ParseDate(query.Get("to"))
	if err != nil {
		v.Add("to", "must be a valid date in YYYY-MM-DD format")
	}
	if !from.IsZero() && !to.IsZero() && to.Before(from) {
		v.Add("to", "must not be before from")
	}
	if v.Reject(w, requestID) {
		return
	}
	filter.From = from
	if !to.IsZero() {
		// to names a whole day
		filter.To = to.AddDate(0, 0, 1)
	}

	page := shared.ParsePagination(r, 100, 500)
	total, err := h.Events.Count(r.Context(), filter)
	if err != nil {
		requestctx.Logger(r.Context()).Warn("audit count failed", "err", err)
	}
	events, err := h.Events.List(r.Context(), filter, query.Get("includeDetails") == "true", page.Limit, page.Offset)
	if err != nil {
		requestctx.Logger(r.Context()).Error("audit list failed", "err", err)
		api.Fail(w, http.StatusInternalServerError, "audit_list_failed", "failed to list audit events", requestID)
		return
	}
	if events == nil {
		events = []audit.Event{}
	}
	shared.SetTotal(w, total)
	api.Success(w, events, requestID)
}
