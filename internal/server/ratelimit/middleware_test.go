package ratelimit

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"
)

func TestWriteHeaders(t *testing.T) {
	w := httptest.NewRecorder()

	result := Result{
		Allowed:   true,
		Limit:     60,
		Remaining: 45,
		ResetAt:   time.Unix(1706012345, 0),
	}

	WriteHeaders(w, result)

	if got := w.Header().Get("X-RateLimit-Limit"); got != "60" {
		t.Errorf("X-RateLimit-Limit = %s, want 60", got)
	}
	if got := w.Header().Get("X-RateLimit-Remaining"); got != "45" {
		t.Errorf("X-RateLimit-Remaining = %s, want 45", got)
	}
	if got := w.Header().Get("X-RateLimit-Reset"); got != "1706012345" {
		t.Errorf("X-RateLimit-Reset = %s, want 1706012345", got)
	}
	if got := w.Header().Get("Retry-After"); got != "" {
		t.Errorf("Retry-After should not be set for allowed requests, got %s", got)
	}
}

func TestWriteHeaders_RateLimited(t *testing.T) {
	w := httptest.NewRecorder()

	result := Result{
		Limit:      60,
		ResetAt:    time.Unix(1706012345, 0),
		RetryAfter: 29*time.Second + time.Millisecond,
	}

	WriteHeaders(w, result)

	if got := w.Header().Get("X-RateLimit-Remaining"); got != "0" {
		t.Errorf("X-RateLimit-Remaining = %s, want 0", got)
	}
	// Rounded up so a client never retries early.
	if got := w.Header().Get("Retry-After"); got != "30" {
		t.Errorf("Retry-After = %s, want 30", got)
	}
}

func TestRetryAfterSeconds(t *testing.T) {
	tests := []struct {
		result Result
		want   int
	}{
		{Result{Allowed: true}, 0},
		{Result{RetryAfter: 0}, 1},
		{Result{RetryAfter: 100 * time.Millisecond}, 1},
		{Result{RetryAfter: 2 * time.Second}, 2},
		{Result{RetryAfter: 2*time.Second + 1}, 3},
	}
	for _, tt := range tests {
		if got := RetryAfterSeconds(tt.result); got != tt.want {
			t.Errorf("RetryAfterSeconds(%v) = %d, want %d", tt.result.RetryAfter, got, tt.want)
		}
	}
}

func TestResponseWriter(t *testing.T) {
	rec := httptest.NewRecorder()
	w := NewResponseWriter(rec, Result{Allowed: true, Limit: 10, Remaining: 9, ResetAt: time.Unix(1, 0)})

	w.WriteHeader(http.StatusOK)
	_, _ = w.Write([]byte("ok"))

	if got := rec.Header().Get("X-RateLimit-Remaining"); got != "9" {
		t.Errorf("X-RateLimit-Remaining = %s, want 9", got)
	}
	if u, ok := w.(interface{ Unwrap() http.ResponseWriter }); !ok || u.Unwrap() != rec {
		t.Error("Unwrap should return the underlying writer")
	}
}

func TestBuildKey(t *testing.T) {
	if got := BuildKey("192.168.1.1", "read"); got != "ip:192.168.1.1:read" {
		t.Errorf("BuildKey() = %q", got)
	}
}
