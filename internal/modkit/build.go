package modkit

import (
	"net/http"
	"strings"

	phttp "adperf/internal/platform/net/http"
)

// Built is the resolved option set
type Built struct {
	Name     string
	Prefix   string
	Mw       []func(http.Handler) http.Handler
	Ports    any
	Register func(phttp.Router)
}

// Build applies opts in order and returns a plain struct
func Build(opts ...Option) Built {
	var c buildCfg
	for _, o := range opts {
		o(&c)
	}
	if c.register == nil {
		c.register = func(phttp.Router) {}
	}
	return Built{
		Name:     c.name,
		Prefix:   c.prefix,
		Mw:       append([]func(http.Handler) http.Handler(nil), c.mw...),
		Ports:    c.ports,
		Register: c.register,
	}
}

// Base implements Module for the common case: routes under one prefix with per module middleware
// domain modules embed it and only supply their route registration
type Base struct {
	name     string
	prefix   string
	mws      []func(http.Handler) http.Handler
	ports    any
	register func(phttp.Router)
}

// NewBase combines the module's own routes with the extra routes from options
func NewBase(b Built, routes func(phttp.Router)) Base {
	extra := b.Register
	return Base{
		name:   b.Name,
		prefix: strings.TrimRight(b.Prefix, "/"),
		mws:    b.Mw,
		ports:  b.Ports,
		register: func(r phttp.Router) {
			if routes != nil {
				routes(r)
			}
			extra(r)
		},
	}
}

// MountRoutes implements Module
func (m *Base) MountRoutes(r phttp.Router) {
	mount := func(rr phttp.Router) {
		if len(m.mws) > 0 {
			rr.Use(m.mws...)
		}
		m.register(rr)
	}
	if m.prefix == "" {
		r.Group(mount)
		return
	}
	r.Route(m.prefix, mount)
}

// Name implements Module
func (m *Base) Name() string { return m.name }

// Prefix is the mount prefix, empty for root modules
func (m *Base) Prefix() string { return m.prefix }

// Ports implements Module
func (m *Base) Ports() any { return m.ports }

// SetPorts replaces the port set, for modules that build ports after their services
func (m *Base) SetPorts(p any) { m.ports = p }
