package middleware

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"workforce/internal/transport/http/api"
)

func TestRequestHashDeterministic(t *testing.T) {
	hash1 := RequestHash([]byte("payload"))
	hash2 := RequestHash([]byte("payload"))
	hash3 := RequestHash([]byte("other"))

	if hash1 != hash2 {
		t.Fatal("expected deterministic hash")
	}
	if hash1 == hash3 {
		t.Fatal("expected different hash for different payload")
	}
}

func TestIdempotentReplaysAndDetectsConflicts(t *testing.T) {
	calls := 0
	handler := Idempotent(NewMemoryIdempotencyStore(), "sales.create")(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		calls++
		api.Created(w, map[string]int{"call": calls}, "")
	}))

	send := func(key, body string) *httptest.ResponseRecorder {
		req := httptest.NewRequest(http.MethodPost, "/api/v1/sales", strings.NewReader(body))
		if key != "" {
			req.Header.Set(IdempotencyHeader, key)
		}
		rec := httptest.NewRecorder()
		handler.ServeHTTP(rec, req)
		return rec
	}

	first := send("k-1", `{"amount":"10"}`)
	if first.Code != http.StatusCreated {
		t.Fatalf("expected 201, got %d", first.Code)
	}
	replay := send("k-1", `{"amount":"10"}`)
	if replay.Code != http.StatusCreated || replay.Header().Get("Idempotent-Replayed") != "true" {
		t.Fatalf("expected replayed 201, got %d %v", replay.Code, replay.Header())
	}
	if !strings.Contains(replay.Body.String(), `"call":1`) || calls != 1 {
		t.Fatalf("expected handler to run once, calls=%d body=%s", calls, replay.Body.String())
	}

	conflict := send("k-1", `{"amount":"11"}`)
	if conflict.Code != http.StatusConflict {
		t.Fatalf("expected 409, got %d", conflict.Code)
	}

	send("", `{"amount":"10"}`)
	if calls != 2 {
		t.Fatalf("expected request without key to reach handler, calls=%d", calls)
	}
}

func TestIdempotentSkipsFailures(t *testing.T) {
	calls := 0
	handler := Idempotent(NewMemoryIdempotencyStore(), "absences.create")(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		calls++
		api.Fail(w, http.StatusBadRequest, "invalid_input", "bad", "")
	}))
	for i := 0; i < 2; i++ {
		req := httptest.NewRequest(http.MethodPost, "/", strings.NewReader(`{}`))
		req.Header.Set(IdempotencyHeader, "k-2")
		handler.ServeHTTP(httptest.NewRecorder(), req)
	}
	if calls != 2 {
		t.Fatalf("expected failed responses not to be stored, calls=%d", calls)
	}
}
