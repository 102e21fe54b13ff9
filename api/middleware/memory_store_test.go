package middleware

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"
)

func TestMemoryRateStoreFixedWindow(t *testing.T) {
	now := time.Date(2026, 3, 1, 8, 0, 0, 0, time.UTC)
	store := NewMemoryRateStore()
	store.now = func() time.Time { return now }
	ctx := context.Background()

	for want := int64(1); want <= 3; want++ {
		got, err := store.IncrWithTTL(ctx, "rl:ip:api:10.0.0.1", time.Minute)
		if err != nil {
			t.Fatalf("incr: %v", err)
		}
		if got != want {
			t.Fatalf("count = %d want %d", got, want)
		}
	}

	// later hits do not push the window out
	now = now.Add(59 * time.Second)
	if got, _ := store.IncrWithTTL(ctx, "rl:ip:api:10.0.0.1", time.Minute); got != 4 {
		t.Fatalf("count before expiry = %d want 4", got)
	}
	now = now.Add(time.Second)
	if got, _ := store.IncrWithTTL(ctx, "rl:ip:api:10.0.0.1", time.Minute); got != 1 {
		t.Fatalf("count after expiry = %d want 1", got)
	}
	if got, _ := store.IncrWithTTL(ctx, "rl:ip:api:10.0.0.2", time.Minute); got != 1 {
		t.Fatalf("keys must not share a window, got %d", got)
	}
}

func TestMemoryRateStoreSweepsExpiredWindows(t *testing.T) {
	now := time.Date(2026, 3, 1, 8, 0, 0, 0, time.UTC)
	store := NewMemoryRateStore()
	store.now = func() time.Time { return now }

	_, _ = store.IncrWithTTL(context.Background(), "stale", time.Second)
	now = now.Add(time.Minute)
	for i := 1; i < memorySweepEvery; i++ {
		_, _ = store.IncrWithTTL(context.Background(), "busy", time.Hour)
	}
	if _, ok := store.windows["stale"]; ok {
		t.Fatal("expired window should have been swept")
	}
}

func TestRateLimitWithMemoryStore(t *testing.T) {
	handler := RateLimit(NewRateLimitPolicy("api", time.Minute, 2, 0), NewMemoryRateStore(), nil)(okHandler())

	codes := make([]int, 0, 3)
	for i := 0; i < 3; i++ {
		req := httptest.NewRequest(http.MethodGet, "/api/v1/vehicles", nil)
		req.RemoteAddr = "192.0.2.7:5000"
		rec := httptest.NewRecorder()
		handler.ServeHTTP(rec, req)
		codes = append(codes, rec.Code)
	}
	if codes[0] != http.StatusOK || codes[1] != http.StatusOK || codes[2] != http.StatusTooManyRequests {
		t.Fatalf("unexpected status sequence %v", codes)
	}
}
