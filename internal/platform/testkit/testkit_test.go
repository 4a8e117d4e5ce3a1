package testkit

import "testing"

// recorder captures Fatalf so failing assertions can be observed
type recorder struct {
	testing.TB
	failed bool
}

func (r *recorder) Helper()               {}
func (r *recorder) Fatalf(string, ...any) { r.failed = true }

func TestMustPanic(t *testing.T) {
	MustPanic(t, func() { panic("boom") })

	r := &recorder{TB: t}
	MustPanic(r, func() {})
	if !r.failed {
		t.Fatalf("no panic must fail")
	}
}

func TestMustContain(t *testing.T) {
	MustContain(t, "SELECT * FROM `ads`.`t` LIMIT 5", "LIMIT 5")

	r := &recorder{TB: t}
	MustContain(r, "abc", "z")
	if !r.failed {
		t.Fatalf("missing needle must fail")
	}
}

var seam = func() string { return "real" }

func TestSwapRestores(t *testing.T) {
	t.Run("swapped", func(t *testing.T) {
		Serial(t)
		Swap(t, &seam, func() string { return "fake" })
		if seam() != "fake" {
			t.Fatalf("not swapped")
		}
	})
	if seam() != "real" {
		t.Fatalf("not restored")
	}
}
