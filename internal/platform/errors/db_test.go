package errors

import (
	"context"
	stderrs "errors"
	"fmt"
	"testing"

	"github.com/jackc/pgx/v5/pgconn"
)

type liteErr int

func (e liteErr) Error() string { return fmt.Sprintf("sqlite %d", int(e)) }
func (e liteErr) Code() int     { return int(e) }

func TestDBCode(t *testing.T) {
	cases := []struct {
		name string
		err  error
		want ErrorCode
	}{
		{"plain", stderrs.New("disk I/O error"), ErrorCodeDB},
		{"deadline", fmt.Errorf("query: %w", context.DeadlineExceeded), ErrorCodeUnavailable},
		{"pg unique", &pgconn.PgError{Code: "23505"}, ErrorCodeDuplicateKey},
		{"pg starting up", &pgconn.PgError{Code: "57P03"}, ErrorCodeUnavailable},
		{"pg read only", fmt.Errorf("tx: %w", &pgconn.PgError{Code: "25006"}), ErrorCodeUnavailable},
		{"pg syntax", &pgconn.PgError{Code: "42601"}, ErrorCodeDB},
		{"sqlite busy", liteErr(5), ErrorCodeUnavailable},
		{"sqlite busy snapshot", liteErr(5 | 2<<8), ErrorCodeUnavailable},
		{"sqlite locked", fmt.Errorf("put: %w", liteErr(6)), ErrorCodeUnavailable},
		{"sqlite full", liteErr(13), ErrorCodeDB},
		{"sqlite constraint", liteErr(19), ErrorCodeDB},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			if got := DBCode(tc.err); got != tc.want {
				t.Fatalf("got %v want %v", got, tc.want)
			}
		})
	}
}

func TestFromDB(t *testing.T) {
	if FromDB(nil, "x") != nil {
		t.Fatalf("nil must stay nil")
	}

	cause := liteErr(5)
	err := FromDB(cause, "failed to save settings")
	if CodeOf(err) != ErrorCodeUnavailable || !stderrs.Is(err, cause) {
		t.Fatalf("wrap: %v", err)
	}
	if WireFrom(err).Message != "failed to save settings" {
		t.Fatalf("client message: %+v", WireFrom(err))
	}

	// already classified errors keep their code
	own := JSONErrf("bad doc")
	if FromDB(own, "x") != own {
		t.Fatalf("classified error rewrapped")
	}
}
