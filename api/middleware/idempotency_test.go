package middleware

import (
	"bytes"
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	goredis "github.com/redis/go-redis/v9"
)

type fakeIdempotencyStore struct {
	data map[string]string
	ttls map[string]time.Duration
}

func newFakeIdempotencyStore() *fakeIdempotencyStore {
	return &fakeIdempotencyStore{data: map[string]string{}, ttls: map[string]time.Duration{}}
}

func (s *fakeIdempotencyStore) Get(_ context.Context, key string) (string, error) {
	value, ok := s.data[key]
	if !ok {
		return "", goredis.Nil
	}
	return value, nil
}

func (s *fakeIdempotencyStore) SetNX(_ context.Context, key string, value any, ttl time.Duration) (bool, error) {
	if _, exists := s.data[key]; exists {
		return false, nil
	}
	s.data[key] = value.(string)
	s.ttls[key] = ttl
	return true, nil
}

func (s *fakeIdempotencyStore) IdempotencyKey(scope, id string) string {
	return "idem:" + scope + ":" + id
}

func (s *fakeIdempotencyStore) Del(_ context.Context, keys ...string) error {
	for _, key := range keys {
		delete(s.data, key)
	}
	return nil
}

func idempotentHandler(calls *int) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		*calls++
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusCreated)
		_, _ = w.Write([]byte(`{"data":{"id":"p1"}}`))
	})
}

func TestIdempotencyRequiresHeaderOnPayoutRequest(t *testing.T) {
	store := newFakeIdempotencyStore()
	calls := 0
	handler := Idempotency(store, nil)(idempotentHandler(&calls))

	req := httptest.NewRequest(http.MethodPost, "/api/v1/payouts", strings.NewReader(`{}`))
	res := httptest.NewRecorder()
	handler.ServeHTTP(res, req)

	if res.Code != http.StatusBadRequest {
		t.Fatalf("expected 400 without Idempotency-Key, got %d", res.Code)
	}
	if calls != 0 {
		t.Fatalf("handler must not run without an Idempotency-Key")
	}
}

func TestIdempotencyReplaysStoredResponse(t *testing.T) {
	store := newFakeIdempotencyStore()
	calls := 0
	handler := Idempotency(store, nil)(idempotentHandler(&calls))

	body := `{"store_id":"s1"}`
	for i := 0; i < 2; i++ {
		req := httptest.NewRequest(http.MethodPost, "/api/v1/payouts", strings.NewReader(body))
		req.Header.Set("Idempotency-Key", "key-1")
		res := httptest.NewRecorder()
		handler.ServeHTTP(res, req)

		if res.Code != http.StatusCreated {
			t.Fatalf("request %d: expected 201, got %d", i, res.Code)
		}
		if !bytes.Contains(res.Body.Bytes(), []byte(`"p1"`)) {
			t.Fatalf("request %d: unexpected body %s", i, res.Body.String())
		}
	}
	if calls != 1 {
		t.Fatalf("expected exactly one handler invocation, got %d", calls)
	}
}

func TestIdempotencyRejectsKeyReuseWithDifferentBody(t *testing.T) {
	store := newFakeIdempotencyStore()
	calls := 0
	handler := Idempotency(store, nil)(idempotentHandler(&calls))

	first := httptest.NewRequest(http.MethodPost, "/api/v1/payouts", strings.NewReader(`{"store_id":"s1"}`))
	first.Header.Set("Idempotency-Key", "key-1")
	handler.ServeHTTP(httptest.NewRecorder(), first)

	second := httptest.NewRequest(http.MethodPost, "/api/v1/payouts", strings.NewReader(`{"store_id":"s2"}`))
	second.Header.Set("Idempotency-Key", "key-1")
	res := httptest.NewRecorder()
	handler.ServeHTTP(res, second)

	if res.Code != http.StatusConflict {
		t.Fatalf("expected 409 on key reuse with a different body, got %d", res.Code)
	}
	if calls != 1 {
		t.Fatalf("second request must not reach the handler, calls=%d", calls)
	}
}

func TestIdempotencySkipsUnmatchedRoutes(t *testing.T) {
	store := newFakeIdempotencyStore()
	calls := 0
	handler := Idempotency(store, nil)(idempotentHandler(&calls))

	req := httptest.NewRequest(http.MethodGet, "/api/v1/payouts", nil)
	res := httptest.NewRecorder()
	handler.ServeHTTP(res, req)

	if res.Code != http.StatusCreated {
		t.Fatalf("expected passthrough on non-idempotent route, got %d", res.Code)
	}
	if calls != 1 {
		t.Fatalf("expected handler to run, calls=%d", calls)
	}
}

func TestRouteTTLMatchesConcretePaths(t *testing.T) {
	cases := []struct {
		method string
		path   string
		ttl    time.Duration
		match  bool
	}{
		{http.MethodPost, "/api/v1/payouts", criticalIdempotencyTTL, true},
		{http.MethodPost, "/api/v1/payouts/", criticalIdempotencyTTL, true},
		{http.MethodPost, "/api/v1/admin/payouts/2f1f9f4e-9f5c-4f4e-8a7b-0c9a4bb1a001/process", criticalIdempotencyTTL, true},
		{http.MethodPatch, "/api/v1/orders/2f1f9f4e-9f5c-4f4e-8a7b-0c9a4bb1a001/status", criticalIdempotencyTTL, true},
		{http.MethodPost, "/api/v1/admin/stores/2f1f9f4e-9f5c-4f4e-8a7b-0c9a4bb1a001/verify", defaultIdempotencyTTL, true},
		{http.MethodPut, "/api/v1/admin/commission", defaultIdempotencyTTL, true},
		{http.MethodGet, "/api/v1/payouts", 0, false},
		{http.MethodPost, "/api/v1/orders", 0, false},
	}
	for _, tc := range cases {
		req := httptest.NewRequest(tc.method, tc.path, nil)
		ttl, ok := routeTTL(tc.method, routePath(req))
		if ok != tc.match {
			t.Fatalf("%s %s: expected match=%v, got %v", tc.method, tc.path, tc.match, ok)
		}
		if ttl != tc.ttl {
			t.Fatalf("%s %s: expected ttl %s, got %s", tc.method, tc.path, tc.ttl, ttl)
		}
	}
}
