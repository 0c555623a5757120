package saleshandler

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strconv"
	"strings"
	"testing"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/shopspring/decimal"

	"workforce/internal/domain/employees"
	"workforce/internal/domain/sales"
	"workforce/internal/transport/http/middleware"
)

type lookup struct{}

func (lookup) Get(_ context.Context, id string) (employees.Employee, error) {
	if id != "emp-1" {
		return employees.Employee{}, employees.ErrEmployeeNotFound
	}
	return employees.Employee{ID: id}, nil
}

type memoryStore struct {
	sales []sales.Sale
}

func (m *memoryStore) Create(_ context.Context, sale sales.Sale) (sales.Sale, error) {
	sale.ID = strconv.Itoa(len(m.sales) + 1)
	m.sales = append(m.sales, sale)
	return sale, nil
}

func (m *memoryStore) Count(context.Context, string) (int, error) { return len(m.sales), nil }

func (m *memoryStore) List(context.Context, string, int, int) ([]sales.Sale, error) {
	return append([]sales.Sale(nil), m.sales...), nil
}

func (m *memoryStore) Total(_ context.Context, _ string, from, to time.Time) (decimal.Decimal, int, error) {
	total := decimal.Zero
	count := 0
	for _, sale := range m.sales {
		if !sale.Date.Before(from) && sale.Date.Before(to) {
			total = total.Add(sale.Amount)
			count++
		}
	}
	return total, count, nil
}

func (m *memoryStore) Delete(context.Context, string) error { return sales.ErrNotFound }

func send(h http.Handler, method, path, body, key string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(method, path, strings.NewReader(body))
	if key != "" {
		req.Header.Set(middleware.IdempotencyHeader, key)
	}
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)
	return rec
}

func TestRecordSalesAndMonthlyTotal(t *testing.T) {
	store := &memoryStore{}
	h := NewHandler(sales.NewService(store), lookup{}, nil, middleware.NewMemoryIdempotencyStore())
	h.Now = func() time.Time { return time.Date(2025, 6, 20, 9, 0, 0, 0, time.UTC) }
	router := chi.NewRouter()
	router.Route("/api/v1", h.RegisterRoutes)

	rec := send(router, http.MethodPost, "/api/v1/employees/emp-1/sales", `{"amount":"1200.555"}`, "sale-1")
	if rec.Code != http.StatusCreated || !strings.Contains(rec.Body.String(), `"amount":"1200.56"`) {
		t.Fatalf("expected 201 with rounded amount, got %d %s", rec.Code, rec.Body.String())
	}
	replay := send(router, http.MethodPost, "/api/v1/employees/emp-1/sales", `{"amount":"1200.555"}`, "sale-1")
	if replay.Code != http.StatusCreated || len(store.sales) != 1 {
		t.Fatalf("expected replay without a second sale, got %d and %d sales", replay.Code, len(store.sales))
	}
	send(router, http.MethodPost, "/api/v1/employees/emp-1/sales", `{"amount":"300","date":"2025-05-31"}`, "")

	rec = send(router, http.MethodGet, "/api/v1/employees/emp-1/sales/monthly", "", "")
	if rec.Code != http.StatusOK || !strings.Contains(rec.Body.String(), `"total":"1200.56"`) || !strings.Contains(rec.Body.String(), `"count":1`) {
		t.Fatalf("expected June total only, got %d %s", rec.Code, rec.Body.String())
	}
	rec = send(router, http.MethodGet, "/api/v1/employees/emp-1/sales/monthly?month=2025-05", "", "")
	if !strings.Contains(rec.Body.String(), `"total":"300"`) {
		t.Fatalf("expected May total, got %s", rec.Body.String())
	}
}

func TestRecordSaleRejects(t *testing.T) {
	h := NewHandler(sales.NewService(&memoryStore{}), lookup{}, nil, nil)
	router := chi.NewRouter()
	router.Route("/api/v1", h.RegisterRoutes)

	if rec := send(router, http.MethodPost, "/api/v1/employees/emp-1/sales", `{"amount":"0"}`, ""); rec.Code != http.StatusBadRequest {
		t.Fatalf("expected 400 for zero amount, got %d", rec.Code)
	}
	if rec := send(router, http.MethodPost, "/api/v1/employees/ghost/sales", `{"amount":"10"}`, ""); rec.Code != http.StatusNotFound {
		t.Fatalf("expected 404 for unknown employee, got %d", rec.Code)
	}
	if rec := send(router, http.MethodDelete, "/api/v1/sales/9", "", ""); rec.Code != http.StatusNotFound {
		t.Fatalf("expected 404 for unknown sale, got %d", rec.Code)
	}
}
