package shared

import (
	"context"
	"log/slog"
	"net/http"

	"workforce/internal/requestctx"
)

// AuditRecorder is satisfied by audit.Service.
type AuditRecorder interface {
	Record(ctx context.Context, action, entityType, entityID, requestID, ip string, before, after any) error
}

// RecordAudit writes an audit event for r. Failures are logged, never returned.
func RecordAudit(r *http.Request, recorder AuditRecorder, action, entityType, entityID string, before, after any) {
	if recorder == nil {
		return
	}
	ctx := r.Context()
	if err := recorder.Record(ctx, action, entityType, entityID, requestctx.GetRequestID(ctx), ClientIP(r), before, after); err != nil {
		slog.Warn("audit record failed", "action", action, "err", err)
	}
}
