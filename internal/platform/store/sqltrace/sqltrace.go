// Package sqltrace carries the statement events emitted by the relational adapters
package sqltrace

import (
	"context"
	"regexp"
	"time"

	"adperf/internal/platform/logger"

	"github.com/rs/zerolog"
)

// QueryEvent is one statement round trip
type QueryEvent struct {
	SQL       string
	Args      any
	ElapsedUS int64
	Err       error
	Slow      bool
}

// QueryTracer receives query events
type QueryTracer interface {
	OnQuery(ctx context.Context, ev QueryEvent)
}

// Emit reports a statement that started at start to tr, a nil tr is a no-op
func Emit(ctx context.Context, tr QueryTracer, slowMs int, sql string, args []any, start time.Time, err error) {
	if tr == nil {
		return
	}
	us := time.Since(start).Microseconds()
	tr.OnQuery(ctx, QueryEvent{SQL: sql, Args: args, ElapsedUS: us, Err: err, Slow: IsSlow(us, slowMs)})
}

// IsSlow reports whether elapsedUS reaches slowMs, a negative threshold never fires
func IsSlow(elapsedUS int64, slowMs int) bool {
	return slowMs >= 0 && elapsedUS >= int64(slowMs)*1000
}

// Logger returns a tracer that logs every statement whatever the root level
// component names the backend and prefixes the message, e.g. "pg query"
func Logger(root logger.Logger, component string) QueryTracer {
	return logTracer{
		log: root.Level(zerolog.DebugLevel).With().Str("component", component).Logger(),
		msg: component + " query",
	}
}

type logTracer struct {
	log logger.Logger
	msg string
}

func (t logTracer) OnQuery(_ context.Context, ev QueryEvent) {
	lvl := zerolog.InfoLevel
	if ev.Slow {
		lvl = zerolog.WarnLevel
	}
	t.log.WithLevel(lvl).
		Float64("elapsed_ms", float64(ev.ElapsedUS)/1000).
		Bool("slow", ev.Slow).
		Str("sql", Compact(ev.SQL)).
		Interface("args", ev.Args).
		Err(ev.Err).
		Msg(t.msg)
}

var blanks = regexp.MustCompile(`[ \t\r\n]+`)

// Compact folds every whitespace run into one space
func Compact(s string) string { return blanks.ReplaceAllString(s, " ") }
