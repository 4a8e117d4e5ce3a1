// Package logger provides the process zerolog root, component loggers and
// request-scoped children keyed by the chi request id
package logger

import (
	"context"
	"io"
	"os"
	"runtime/debug"
	"strings"
	"sync"
	"sync/atomic"
	"time"

	"adperf/internal/platform/config"
	pnet "adperf/internal/platform/net"

	"github.com/rs/zerolog"
	zlog "github.com/rs/zerolog/log"
	"github.com/rs/zerolog/pkgerrors"
)

// Logger is the project-wide logging type
type Logger = zerolog.Logger

// Options shape the root logger
type Options struct {
	Level     string
	Format    string // console or json
	Service   string
	Component string
	// Writer defaults to stdout
	Writer       io.Writer
	WithCaller   bool
	SampleEvery  int
	StaticFields map[string]string
}

// FromEnv reads LOG_LEVEL, LOG_FORMAT, LOG_SERVICE, LOG_COMPONENT, LOG_CALLER and LOG_SAMPLE_EVERY
func FromEnv() Options {
	c := config.New().Prefix("LOG_")
	return Options{
		Level:       strings.ToLower(c.MayString("LEVEL", "debug")),
		Format:      strings.ToLower(c.MayString("FORMAT", "console")),
		Service:     c.MayString("SERVICE", "adperf-api"),
		Component:   c.MayString("COMPONENT", ""),
		WithCaller:  c.MayBool("CALLER", false),
		SampleEvery: c.MayInt("SAMPLE_EVERY", 0),
	}
}

var (
	once sync.Once
	root atomic.Pointer[Logger]
)

// Init builds the root logger, only the first call has any effect
func Init(opt Options) {
	once.Do(func() {
		zerolog.ErrorStackMarshaler = pkgerrors.MarshalStack
		zerolog.TimeFieldFormat = time.RFC3339Nano
		l := build(opt)
		root.Store(&l)
		// packages below logger in the import graph write through zerolog/log
		zlog.Logger = l
	})
}

func build(opt Options) zerolog.Logger {
	out := opt.Writer
	if out == nil {
		out = os.Stdout
	}
	if opt.Format == "console" {
		out = zerolog.ConsoleWriter{Out: out, TimeFormat: time.RFC3339}
	}

	fields := map[string]string{"service": opt.Service, "component": opt.Component}
	if bi, ok := debug.ReadBuildInfo(); ok {
		fields["go_version"] = bi.GoVersion
	}
	for k, v := range opt.StaticFields {
		fields[k] = v
	}

	wc := zerolog.New(out).Level(parseLevel(opt.Level)).With().Timestamp()
	for k, v := range fields {
		if v != "" {
			wc = wc.Str(k, v)
		}
	}
	if opt.WithCaller {
		wc = wc.Caller()
	}
	l := wc.Logger()
	if opt.SampleEvery > 1 {
		l = l.Sample(&zerolog.BasicSampler{N: uint32(opt.SampleEvery)})
	}
	return l
}

// parseLevel falls back to debug for empty or unknown names
func parseLevel(s string) zerolog.Level {
	s = strings.ToLower(strings.TrimSpace(s))
	if s == "warning" {
		s = "warn"
	}
	lvl, err := zerolog.ParseLevel(s)
	if err != nil || lvl == zerolog.NoLevel {
		return zerolog.DebugLevel
	}
	return lvl
}

// Get returns the root logger, initialising it from the environment on first use
func Get() *Logger {
	if l := root.Load(); l != nil {
		return l
	}
	Init(FromEnv())
	return root.Load()
}

// C returns the logger for ctx: one attached with zerolog's WithContext wins over
// the root, and the request id chi stored on ctx is added as a field
func C(ctx context.Context) *Logger {
	l := Get()
	if ctx == nil {
		return l
	}
	if cl := zerolog.Ctx(ctx); cl.GetLevel() != zerolog.Disabled {
		l = cl
	}
	if id := pnet.RequestID(ctx); id != "" {
		ll := l.With().Str("request_id", id).Logger()
		return &ll
	}
	return l
}

// Named returns a child of the root tagged with component
func Named(component string) *Logger {
	if component == "" {
		return Get()
	}
	ll := Get().With().Str("component", component).Logger()
	return &ll
}
