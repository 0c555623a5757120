package absenceshandler

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strconv"
	"strings"
	"testing"
	"time"

	"github.com/go-chi/chi/v5"

	"workforce/internal/domain/absence"
	"workforce/internal/domain/notifications"
	notificationshandler "workforce/internal/transport/http/handlers/notifications"
)

const employeeID = "5f0c8a52-3b5f-4c39-9d8e-6f1f0b7e2a11"

type absenceStore struct {
	rows []absence.Request
}

func (s *absenceStore) Create(_ context.Context, empID, reason string, date time.Time) (absence.Request, error) {
	if empID != employeeID {
		return absence.Request{}, absence.ErrEmployeeNotFound
	}
	req := absence.Request{
		ID:           "abs-" + strconv.Itoa(len(s.rows)+1),
		EmployeeID:   empID,
		EmployeeName: "Anna Nowak",
		Reason:       reason,
		Date:         date,
		Status:       absence.StatusPending,
		StatusLabel:  absence.StatusLabel(absence.StatusPending),
	}
	s.rows = append(s.rows, req)
	return req, nil
}

func (s *absenceStore) Get(_ context.Context, id string) (absence.Request, error) {
	for _, row := range s.rows {
		if row.ID == id {
			return row, nil
		}
	}
	return absence.Request{}, absence.ErrNotFound
}

func (s *absenceStore) Count(ctx context.Context, status, empID string) (int, error) {
	rows, _ := s.List(ctx, status, empID, 0, 0)
	return len(rows), nil
}

func (s *absenceStore) List(_ context.Context, status, _ string, _, _ int) ([]absence.Request, error) {
	var out []absence.Request
	for _, row := range s.rows {
		if status == "" || row.Status == status {
			out = append(out, row)
		}
	}
	return out, nil
}

func (s *absenceStore) UpdateStatus(_ context.Context, id, from, to string) (bool, error) {
	for i := range s.rows {
		if s.rows[i].ID == id && s.rows[i].Status == from {
			s.rows[i].Status = to
			s.rows[i].StatusLabel = absence.StatusLabel(to)
			return true, nil
		}
	}
	return false, nil
}

type notificationStore struct {
	items []notifications.Notification
}

func (s *notificationStore) CreateNotification(_ context.Context, n notifications.Notification) (notifications.Notification, error) {
	n.ID = "n-" + strconv.Itoa(len(s.items)+1)
	s.items = append(s.items, n)
	return n, nil
}

func (s *notificationStore) RecipientEmail(context.Context, string) (string, error) { return "", nil }

func (s *notificationStore) ListNotifications(_ context.Context, recipient string, unreadOnly bool, _, _ int) ([]notifications.Notification, error) {
	var out []notifications.Notification
	for _, n := range s.items {
		if n.Recipient == recipient && (!unreadOnly || !n.Read) {
			out = append(out, n)
		}
	}
	return out, nil
}

func (s *notificationStore) CountNotifications(ctx context.Context, recipient string, unreadOnly bool) (int, error) {
	items, _ := s.ListNotifications(ctx, recipient, unreadOnly, 0, 0)
	return len(items), nil
}

func (s *notificationStore) MarkRead(_ context.Context, recipient, id string) error {
	for i := range s.items {
		if s.items[i].ID == id && s.items[i].Recipient == recipient {
			s.items[i].Read = true
			return nil
		}
	}
	return notifications.ErrNotFound
}

func (s *notificationStore) EmailSettings(context.Context) (notifications.EmailSettings, error) {
	return notifications.EmailSettings{}, nil
}

func (s *notificationStore) UpdateSettings(context.Context, notifications.EmailSettings) error {
	return nil
}

func newRouter() http.Handler {
	notify := notifications.New(&notificationStore{}, nil)
	r := chi.NewRouter()
	r.Route("/api/v1", func(r chi.Router) {
		NewHandler(absence.NewService(&absenceStore{}, notify), nil, nil).RegisterRoutes(r)
		notificationshandler.NewHandler(notify, nil).RegisterRoutes(r)
	})
	return r
}

func send(h http.Handler, method, path, body string) *httptest.ResponseRecorder {
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, httptest.NewRequest(method, path, strings.NewReader(body)))
	return rec
}

func TestAbsenceWorkflowNotifiesBothSides(t *testing.T) {
	router := newRouter()

	rec := send(router, http.MethodPost, "/api/v1/absences/", `{"employeeId":"`+employeeID+`","reason":"Wizyta u lekarza","date":"2025-06-12"}`)
	if rec.Code != http.StatusCreated {
		t.Fatalf("expected 201, got %d: %s", rec.Code, rec.Body.String())
	}
	var created struct {
		Data absence.Request `json:"data"`
	}
	if err := json.Unmarshal(rec.Body.Bytes(), &created); err != nil {
		t.Fatalf("decode: %v", err)
	}

	rec = send(router, http.MethodGet, "/api/v1/notifications/?unread=true", "")
	if rec.Header().Get("X-Total-Count") != "1" || !strings.Contains(rec.Body.String(), `"type":"absence_pending"`) {
		t.Fatalf("expected one employer notification, got %s", rec.Body.String())
	}

	rec = send(router, http.MethodPost, "/api/v1/absences/"+created.Data.ID+"/decision", `{"status":"approved"}`)
	if rec.Code != http.StatusOK || !strings.Contains(rec.Body.String(), `"status":"approved"`) {
		t.Fatalf("expected approval, got %d %s", rec.Code, rec.Body.String())
	}
	rec = send(router, http.MethodPost, "/api/v1/absences/"+created.Data.ID+"/decision", `{"status":"rejected"}`)
	if rec.Code != http.StatusConflict {
		t.Fatalf("expected 409 on second decision, got %d", rec.Code)
	}

	rec = send(router, http.MethodGet, "/api/v1/notifications/?recipient="+employeeID, "")
	if !strings.Contains(rec.Body.String(), `"type":"absence_decided"`) {
		t.Fatalf("expected employee notification, got %s", rec.Body.String())
	}

	rec = send(router, http.MethodPost, "/api/v1/notifications/n-1/read?recipient="+employeeID, "")
	if rec.Code != http.StatusNotFound {
		t.Fatalf("expected employer notification to be hidden from employee, got %d", rec.Code)
	}
	if rec := send(router, http.MethodPost, "/api/v1/notifications/n-1/read", ""); rec.Code != http.StatusOK {
		t.Fatalf("expected employer to mark read, got %d", rec.Code)
	}
}

func TestAbsenceValidation(t *testing.T) {
	router := newRouter()

	rec := send(router, http.MethodPost, "/api/v1/absences/", `{"employeeId":"not-a-uuid","reason":"","date":"12/06/2025"}`)
	if rec.Code != http.StatusBadRequest {
		t.Fatalf("expected 400, got %d", rec.Code)
	}
	for _, field := range []string{`"employeeId"`, `"reason"`, `"date"`} {
		if !strings.Contains(rec.Body.String(), field) {
			t.Fatalf("expected %s issue, got %s", field, rec.Body.String())
		}
	}

	rec = send(router, http.MethodPost, "/api/v1/absences/", `{"employeeId":"0b5e4f44-9c55-4b8e-8f6b-1f2a3b4c5d6e","reason":"Urlop","date":"2025-06-12"}`)
	if rec.Code != http.StatusNotFound {
		t.Fatalf("expected 404 for unknown employee, got %d", rec.Code)
	}
	if rec := send(router, http.MethodGet, "/api/v1/absences/?status=cancelled", ""); rec.Code != http.StatusBadRequest {
		t.Fatalf("expected 400 for unknown status filter, got %d", rec.Code)
	}
	if rec := send(router, http.MethodPost, "/api/v1/absences/abs-9/decision", `{"status":"maybe"}`); rec.Code != http.StatusBadRequest {
		t.Fatalf("expected 400 for unknown decision, got %d", rec.Code)
	}
}
