package sqlite

import (
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func TestDSN(t *testing.T) {
	got := DSN(Config{Path: "data/../data/settings.db"})
	if !strings.HasPrefix(got, "file:data/settings.db?") {
		t.Fatalf("path not cleaned: %q", got)
	}
	for _, want := range []string{"busy_timeout(5000)", "journal_mode(WAL)", "_txlock=immediate"} {
		if !strings.Contains(got, want) {
			t.Fatalf("DSN %q missing %q", got, want)
		}
	}
	if got := DSN(Config{Path: "x.db", BusyTimeoutMs: 250}); !strings.Contains(got, "busy_timeout(250)") {
		t.Fatalf("busy timeout override ignored: %q", got)
	}
}

func TestOpen_CreatesParentDir(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", "dir", "settings.db")

	db, err := Open(context.Background(), Config{Path: path}, nil)
	if err != nil {
		t.Fatalf("Open: %v", err)
	}
	t.Cleanup(func() { _ = db.Close() })

	var one int
	if err := db.SQL.QueryRowContext(context.Background(), "SELECT 1").Scan(&one); err != nil || one != 1 {
		t.Fatalf("select 1: %v %d", err, one)
	}
	if _, err := os.Stat(filepath.Dir(path)); err != nil {
		t.Fatalf("parent dir missing: %v", err)
	}
}

func TestOpen_RequiresPath(t *testing.T) {
	if _, err := Open(context.Background(), Config{Path: "  "}, nil); err == nil {
		t.Fatal("expected error for blank path")
	}
}

func TestClose_NilSafe(t *testing.T) {
	var d *DB
	if err := d.Close(); err != nil {
		t.Fatalf("nil close: %v", err)
	}
}
