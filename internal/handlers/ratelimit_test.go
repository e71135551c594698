package handlers

import (
	"net/http"
	"net/http/httptest"
	"testing"
)

func TestRateLimitKey(t *testing.T) {
	cases := []struct {
		name    string
		headers map[string]string
		remote  string
		want    string
	}{
		{"remoteAddr", nil, "10.0.0.1:5555", "login:10.0.0.1"},
		{"forwardedFor", map[string]string{"X-Forwarded-For": "203.0.113.9, 10.0.0.1"}, "10.0.0.1:5555", "login:203.0.113.9"},
		{"realIP", map[string]string{"X-Real-IP": "198.51.100.7"}, "10.0.0.1:5555", "login:198.51.100.7"},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			req := httptest.NewRequest(http.MethodPost, "/api/v1/auth/login", nil)
			req.RemoteAddr = tc.remote
			for k, v := range tc.headers {
				req.Header.Set(k, v)
			}
			if got := rateLimitKey(req, "login"); got != tc.want {
				t.Fatalf("expected %q got %q", tc.want, got)
			}
		})
	}
}
