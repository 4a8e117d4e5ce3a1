package modkit

import (
	"net/http"
	"reflect"
	"testing"

	phttp "adperf/internal/platform/net/http"
)

// recRouter records routing calls
type recRouter struct {
	routes []string
	groups int
	uses   int
	gets   []string
}

func (f *recRouter) Get(path string, _ phttp.Handler)       { f.gets = append(f.gets, path) }
func (f *recRouter) Put(string, phttp.Handler)              {}
func (f *recRouter) Handle(string, http.Handler)            {}
func (f *recRouter) Use(...func(http.Handler) http.Handler) { f.uses++ }
func (f *recRouter) Group(fn func(phttp.Router))            { f.groups++; fn(f) }
func (f *recRouter) Route(p string, fn func(phttp.Router)) {
	f.routes = append(f.routes, p)
	fn(f)
}
func (f *recRouter) Mux() http.Handler { return http.NewServeMux() }

func noop(next http.Handler) http.Handler { return next }

func TestBuild_Defaults(t *testing.T) {
	t.Parallel()

	b := Build()
	if b.Name != "" || b.Prefix != "" || b.Ports != nil || len(b.Mw) != 0 {
		t.Fatalf("unexpected defaults %+v", b)
	}
	b.Register(&recRouter{})
}

func TestBuild_CopiesMiddleware(t *testing.T) {
	t.Parallel()

	mid := []func(http.Handler) http.Handler{noop, noop}
	b := Build(WithName("warehouse"), WithPrefix("/bigquery"), WithMiddlewares(mid...), WithPorts(42))
	if b.Name != "warehouse" || b.Prefix != "/bigquery" || b.Ports != 42 {
		t.Fatalf("options not applied %+v", b)
	}

	mid[0] = func(next http.Handler) http.Handler { return next }
	if reflect.ValueOf(b.Mw[0]).Pointer() != reflect.ValueOf(noop).Pointer() {
		t.Fatalf("Built.Mw aliases the caller slice")
	}
}

func TestBase_MountsUnderPrefix(t *testing.T) {
	t.Parallel()

	extra := false
	b := Build(
		WithName("settings"),
		WithPrefix("/settings/"),
		WithMiddlewares(noop),
		WithRegister(func(phttp.Router) { extra = true }),
	)
	m := NewBase(b, func(r phttp.Router) { r.Get("/", nil) })

	r := &recRouter{}
	m.MountRoutes(r)

	if len(r.routes) != 1 || r.routes[0] != "/settings" {
		t.Fatalf("routes = %v", r.routes)
	}
	if r.uses != 1 || len(r.gets) != 1 || !extra {
		t.Fatalf("uses=%d gets=%v extra=%v", r.uses, r.gets, extra)
	}
	if m.Name() != "settings" || m.Prefix() != "/settings" {
		t.Fatalf("name=%q prefix=%q", m.Name(), m.Prefix())
	}
}

func TestBase_RootModuleUsesGroup(t *testing.T) {
	t.Parallel()

	m := NewBase(Build(WithName("meta")), func(r phttp.Router) { r.Get("/health", nil) })
	r := &recRouter{}
	m.MountRoutes(r)

	if r.groups != 1 || len(r.routes) != 0 || r.uses != 0 {
		t.Fatalf("groups=%d routes=%v uses=%d", r.groups, r.routes, r.uses)
	}
	if len(r.gets) != 1 || r.gets[0] != "/health" {
		t.Fatalf("gets = %v", r.gets)
	}
}

func TestBase_Ports(t *testing.T) {
	t.Parallel()

	m := NewBase(Build(WithPorts("a")), nil)
	if m.Ports() != "a" {
		t.Fatalf("ports = %v", m.Ports())
	}
	m.SetPorts("b")
	if m.Ports() != "b" {
		t.Fatalf("ports = %v", m.Ports())
	}

	var _ Module = &m
}
