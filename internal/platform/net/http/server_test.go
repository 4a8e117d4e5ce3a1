package http_test

import (
	"context"
	"io"
	"net"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"adperf/internal/platform/config"
	phttp "adperf/internal/platform/net/http"

	"github.com/go-chi/chi/v5"
)

func TestNewServer_DefaultAddr(t *testing.T) {
	t.Setenv("API_PORT", "")
	srv := phttp.NewServer(config.New())
	if srv.Addr() != phttp.DefaultAddr {
		t.Fatalf("addr = %q want %q", srv.Addr(), phttp.DefaultAddr)
	}
}

func TestNewServer_BarePort(t *testing.T) {
	t.Setenv("API_PORT", "9100")
	srv := phttp.NewServer(config.New())
	if srv.Addr() != ":9100" {
		t.Fatalf("addr = %q", srv.Addr())
	}
}

func TestNewServer_RoutesAndMiddleware(t *testing.T) {
	called := false
	srv := phttp.NewServer(config.New(), func(*chi.Mux) { called = true })
	if !called {
		t.Fatalf("option not invoked")
	}

	r := srv.Router()
	r.Use(func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, req *http.Request) {
			w.Header().Set("X-MW", "yes")
			next.ServeHTTP(w, req)
		})
	})
	r.Route("/api", func(api phttp.Router) {
		api.Get("/ping", func(w http.ResponseWriter, _ *http.Request) { _, _ = io.WriteString(w, "pong") })
		api.Put("/doc", func(w http.ResponseWriter, _ *http.Request) { w.WriteHeader(http.StatusAccepted) })
	})

	rec := httptest.NewRecorder()
	r.Mux().ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/api/ping", nil))
	if rec.Code != http.StatusOK || rec.Body.String() != "pong" || rec.Header().Get("X-MW") != "yes" {
		t.Fatalf("GET = %d %q %v", rec.Code, rec.Body.String(), rec.Header())
	}

	rec = httptest.NewRecorder()
	r.Mux().ServeHTTP(rec, httptest.NewRequest(http.MethodPut, "/api/doc", nil))
	if rec.Code != http.StatusAccepted {
		t.Fatalf("PUT = %d", rec.Code)
	}
}

func TestServer_ServeStopsWithContext(t *testing.T) {
	srv := phttp.NewServer(config.New())
	srv.Router().Get("/health", func(w http.ResponseWriter, _ *http.Request) { _, _ = io.WriteString(w, "ok") })

	ln, err := net.Listen("tcp", "127.0.0.1:0")
	if err != nil {
		t.Fatalf("listen: %v", err)
	}

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() { done <- srv.Serve(ctx, ln) }()

	res, err := http.Get("http://" + ln.Addr().String() + "/health")
	if err != nil {
		t.Fatalf("get: %v", err)
	}
	body, _ := io.ReadAll(res.Body)
	_ = res.Body.Close()
	if string(body) != "ok" {
		t.Fatalf("body = %q", body)
	}

	cancel()
	select {
	case err := <-done:
		if err != nil {
			t.Fatalf("Serve returned %v", err)
		}
	case <-time.After(5 * time.Second):
		t.Fatalf("Serve did not return after cancel")
	}
}
