package middleware

import (
	"bytes"
	"encoding/json"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/vidinsight/backend/internal/logging"
	"github.com/vidinsight/backend/internal/models"
)

type staticIdentity struct {
	user models.User
	ok   bool
}

func (s staticIdentity) Current() (models.User, bool) { return s.user, s.ok }

func TestKeyedRateLimiterPerKey(t *testing.T) {
	limiter := NewKeyedRateLimiter(1, time.Minute, 2, time.Minute)
	now := time.Date(2024, time.January, 1, 0, 0, 0, 0, time.UTC)
	limiter.WithNowFunc(func() time.Time { return now })

	if !limiter.Allow("login:1.1.1.1") || !limiter.Allow("login:1.1.1.1") {
		t.Fatal("expected burst to be allowed")
	}
	if limiter.Allow("login:1.1.1.1") {
		t.Fatal("expected third request to be limited")
	}
	if !limiter.Allow("login:2.2.2.2") {
		t.Fatal("expected other key to have its own bucket")
	}
	if limiter.Tracked() != 2 {
		t.Fatalf("expected 2 tracked keys got %d", limiter.Tracked())
	}

	now = now.Add(time.Minute)
	if !limiter.Allow("login:1.1.1.1") {
		t.Fatal("expected bucket to refill after the window")
	}
}

func TestKeyedRateLimiterForgetsIdleKeys(t *testing.T) {
	limiter := NewKeyedRateLimiter(1, time.Hour, 1, 10*time.Millisecond)

	limiter.Allow("a")
	time.Sleep(30 * time.Millisecond)

	if !limiter.Allow("a") {
		t.Fatal("expected idle bucket to be replaced with a fresh one")
	}
}

func TestRequestLogger(t *testing.T) {
	var buf bytes.Buffer
	logger := slog.New(slog.NewJSONHandler(&buf, nil))
	identity := staticIdentity{user: models.User{ID: "user-42"}, ok: true}

	var sawRequestID string
	handler := RequestLogger(logger, identity)(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		sawRequestID = logging.RequestIDFromContext(r.Context())
		if logging.SpanIDFromContext(r.Context()) == "" {
			t.Error("expected span id in request context")
		}
		w.WriteHeader(http.StatusTeapot)
	}))

	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/api/v1/videos", nil))

	if rec.Code != http.StatusTeapot {
		t.Fatalf("expected status passthrough got %d", rec.Code)
	}
	if sawRequestID == "" || rec.Header().Get(RequestIDHeader) != sawRequestID {
		t.Fatalf("expected request id header to match context, got %q and %q", rec.Header().Get(RequestIDHeader), sawRequestID)
	}

	var completed map[string]any
	for _, line := range strings.Split(strings.TrimSpace(buf.String()), "\n") {
		var entry map[string]any
		if err := json.Unmarshal([]byte(line), &entry); err != nil {
			t.Fatalf("decode log line %q: %v", line, err)
		}
		if entry["msg"] == "request completed" {
			completed = entry
		}
	}
	if completed == nil {
		t.Fatalf("expected completion log entry, got %s", buf.String())
	}
	if completed["status"] != float64(http.StatusTeapot) || completed["user_id"] != "user-42" {
		t.Fatalf("unexpected completion entry: %v", completed)
	}
}

func TestRequestLoggerRecoversPanics(t *testing.T) {
	logger := slog.New(slog.NewTextHandler(&bytes.Buffer{}, nil))
	handler := RequestLogger(logger, nil)(http.HandlerFunc(func(http.ResponseWriter, *http.Request) {
		panic("boom")
	}))

	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/", nil))

	if rec.Code != http.StatusInternalServerError {
		t.Fatalf("expected 500 got %d", rec.Code)
	}
}
