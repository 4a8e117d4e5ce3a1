package http

import (
	stdhttp "net/http"
	"net/http/httptest"
	"testing"

	"github.com/go-chi/chi/v5"
)

func tag(name string) func(stdhttp.Handler) stdhttp.Handler {
	return func(next stdhttp.Handler) stdhttp.Handler {
		return stdhttp.HandlerFunc(func(w stdhttp.ResponseWriter, r *stdhttp.Request) {
			w.Header().Add("X-Via", name)
			next.ServeHTTP(w, r)
		})
	}
}

func status(code int) Handler {
	return func(w stdhttp.ResponseWriter, _ *stdhttp.Request) { w.WriteHeader(code) }
}

func TestAdaptChi_ScopesMiddleware(t *testing.T) {
	r := AdaptChi(chi.NewRouter())
	r.Use(tag("root"))
	r.Get("/health", status(200))
	r.Group(func(g Router) {
		g.Use(tag("group"))
		g.Get("/", status(200))
	})
	r.Route("/settings", func(s Router) {
		s.Use(tag("settings"))
		s.Get("/", status(200))
		s.Put("/", status(200))
		s.Handle("/raw", stdhttp.HandlerFunc(func(w stdhttp.ResponseWriter, _ *stdhttp.Request) { w.WriteHeader(204) }))
	})

	cases := []struct {
		method, path string
		code         int
		via          []string
	}{
		{"GET", "/health", 200, []string{"root"}},
		{"GET", "/", 200, []string{"root", "group"}},
		{"GET", "/settings", 200, []string{"root", "settings"}},
		{"PUT", "/settings", 200, []string{"root", "settings"}},
		{"GET", "/settings/raw", 204, []string{"root", "settings"}},
		{"POST", "/settings", 405, nil},
	}
	for _, tc := range cases {
		rec := httptest.NewRecorder()
		r.Mux().ServeHTTP(rec, httptest.NewRequest(tc.method, tc.path, nil))
		if rec.Code != tc.code {
			t.Fatalf("%s %s: %d want %d", tc.method, tc.path, rec.Code, tc.code)
		}
		if tc.via == nil {
			continue
		}
		got := rec.Header().Values("X-Via")
		if len(got) != len(tc.via) {
			t.Fatalf("%s %s: via %v want %v", tc.method, tc.path, got, tc.via)
		}
		for i := range got {
			if got[i] != tc.via[i] {
				t.Fatalf("%s %s: via %v want %v", tc.method, tc.path, got, tc.via)
			}
		}
	}
}

func TestAdaptChi_SubrouterMux(t *testing.T) {
	r := AdaptChi(chi.NewRouter())
	r.Route("/bigquery", func(s Router) {
		s.Get("/sample", status(200))
		rec := httptest.NewRecorder()
		// the subrouter serves paths relative to its mount point
		s.Mux().ServeHTTP(rec, httptest.NewRequest("GET", "/sample", nil))
		if rec.Code != 200 {
			t.Fatalf("subrouter mux: %d", rec.Code)
		}
	})
}
