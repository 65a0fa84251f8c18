package server

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"

	"portfolio-backend/internal/shared/config"
)

type stubHealth struct{ ok bool }

func (s stubHealth) Status() map[string]bool {
	return map[string]bool{"ok": s.ok, "database": s.ok}
}

func TestAddr(t *testing.T) {
	cases := map[string]string{
		"":      ":8080",
		"9000":  ":9000",
		":7070": ":7070",
	}
	for in, want := range cases {
		if got := Addr(in); got != want {
			t.Fatalf("Addr(%q) = %q, want %q", in, got, want)
		}
	}
}

func TestRouterHealth(t *testing.T) {
	gin.SetMode(gin.TestMode)

	cases := []struct {
		name   string
		health HealthChecker
		want   int
	}{
		{name: "no_checker", health: nil, want: http.StatusOK},
		{name: "healthy", health: stubHealth{ok: true}, want: http.StatusOK},
		{name: "degraded", health: stubHealth{ok: false}, want: http.StatusServiceUnavailable},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			r := NewRouter(RouterDeps{Config: config.Config{}, Health: tc.health})
			req := httptest.NewRequest(http.MethodGet, "/api/v1/health", nil)
			resp := httptest.NewRecorder()
			r.ServeHTTP(resp, req)
			if resp.Code != tc.want {
				t.Fatalf("expected %d, got %d", tc.want, resp.Code)
			}
		})
	}
}

func TestRouterMeReportsIdentity(t *testing.T) {
	gin.SetMode(gin.TestMode)
	r := NewRouter(RouterDeps{})

	req := httptest.NewRequest(http.MethodGet, "/api/v1/me", nil)
	req.Header.Set("X-Guest-Id", "g-1")
	resp := httptest.NewRecorder()
	r.ServeHTTP(resp, req)

	var payload map[string]any
	if err := json.NewDecoder(resp.Body).Decode(&payload); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if payload["userId"] != "guest:g-1" || payload["anonymous"] != false {
		t.Fatalf("unexpected payload %v", payload)
	}
}

func TestRouterServesMetricsAndNotFound(t *testing.T) {
	gin.SetMode(gin.TestMode)
	r := NewRouter(RouterDeps{})

	req := httptest.NewRequest(http.MethodGet, "/metrics", nil)
	resp := httptest.NewRecorder()
	r.ServeHTTP(resp, req)
	if resp.Code != http.StatusOK || !strings.Contains(resp.Body.String(), "tool_runs_total") {
		t.Fatalf("unexpected metrics response %d: %s", resp.Code, resp.Body.String())
	}

	req = httptest.NewRequest(http.MethodGet, "/api/v1/nope", nil)
	resp = httptest.NewRecorder()
	r.ServeHTTP(resp, req)
	if resp.Code != http.StatusNotFound || !strings.Contains(resp.Body.String(), `"not_found"`) {
		t.Fatalf("unexpected 404 response %d: %s", resp.Code, resp.Body.String())
	}
}
