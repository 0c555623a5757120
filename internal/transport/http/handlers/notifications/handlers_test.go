package notificationshandler

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/go-chi/chi/v5"

	"workforce/internal/domain/notifications"
)

type settingsStore struct {
	settings notifications.EmailSettings
}

func (s *settingsStore) CreateNotification(_ context.Context, n notifications.Notification) (notifications.Notification, error) {
	return n, nil
}

func (s *settingsStore) RecipientEmail(context.Context, string) (string, error) { return "", nil }

func (s *settingsStore) ListNotifications(context.Context, string, bool, int, int) ([]notifications.Notification, error) {
	return nil, nil
}

func (s *settingsStore) CountNotifications(context.Context, string, bool) (int, error) { return 0, nil }

func (s *settingsStore) MarkRead(context.Context, string, string) error { return notifications.ErrNotFound }

func (s *settingsStore) EmailSettings(context.Context) (notifications.EmailSettings, error) {
	return s.settings, nil
}

func (s *settingsStore) UpdateSettings(_ context.Context, settings notifications.EmailSettings) error {
	s.settings = settings
	return nil
}

type recordingAudit struct {
	actions []string
}

func (a *recordingAudit) Record(_ context.Context, action, _, _, _, _ string, _, _ any) error {
	a.actions = append(a.actions, action)
	return nil
}

func send(h http.Handler, method, path, body string) *httptest.ResponseRecorder {
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, httptest.NewRequest(method, path, strings.NewReader(body)))
	return rec
}

func TestEmailSettings(t *testing.T) {
	store := &settingsStore{}
	audit := &recordingAudit{}
	router := chi.NewRouter()
	router.Route("/api/v1", NewHandler(notifications.New(store, nil), audit).RegisterRoutes)

	rec := send(router, http.MethodPut, "/api/v1/notifications/settings", `{"enabled":true,"from":"not-an-email"}`)
	if rec.Code != http.StatusBadRequest || !strings.Contains(rec.Body.String(), `"from"`) {
		t.Fatalf("expected from issue, got %d %s", rec.Code, rec.Body.String())
	}

	rec = send(router, http.MethodPut, "/api/v1/notifications/settings", `{"enabled":true,"from":"kadry@example.pl","employerEmail":"szef@example.pl"}`)
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d %s", rec.Code, rec.Body.String())
	}
	if !store.settings.Enabled || store.settings.EmployerEmail != "szef@example.pl" {
		t.Fatalf("expected settings stored, got %+v", store.settings)
	}
	if len(audit.actions) != 1 || audit.actions[0] != "notification.settings.update" {
		t.Fatalf("expected one audit event, got %v", audit.actions)
	}

	rec = send(router, http.MethodGet, "/api/v1/notifications/settings", "")
	if !strings.Contains(rec.Body.String(), `"from":"kadry@example.pl"`) {
		t.Fatalf("expected stored settings, got %s", rec.Body.String())
	}
}

func TestListDefaultsToEmployer(t *testing.T) {
	router := chi.NewRouter()
	router.Route("/api/v1", NewHandler(notifications.New(&settingsStore{}, nil), nil).RegisterRoutes)

	rec := send(router, http.MethodGet, "/api/v1/notifications/", "")
	if rec.Code != http.StatusOK || rec.Header().Get("X-Total-Count") != "0" {
		t.Fatalf("expected empty list, got %d %s", rec.Code, rec.Body.String())
	}
	if rec := send(router, http.MethodPost, "/api/v1/notifications/missing/read", ""); rec.Code != http.StatusNotFound {
		t.Fatalf("expected 404, got %d", rec.Code)
	}
}
