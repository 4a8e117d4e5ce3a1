package normalize

import (
	"encoding/json"
	"math"
	"math/big"
	"net"
	"reflect"
	"strings"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

type status int

func (s status) String() string { return [...]string{"paused", "active"}[s] }

type label string

func TestValue_Table(t *testing.T) {
	ts := time.Date(2024, 3, 5, 10, 30, 0, 123000000, time.UTC)
	id := uuid.MustParse("0b7b3c4e-52a4-4c1e-9a43-1f1c5e1d2a00")
	spend := 60.5
	var nilPtr *float64
	var nilMap map[string]any

	cases := []struct {
		name string
		in   any
		want any
	}{
		{"nil", nil, nil},
		{"nil pointer", nilPtr, nil},
		{"nil map", nilMap, nil},
		{"string", "MP1", "MP1"},
		{"bool", true, true},
		{"int64", int64(7), int64(7)},
		{"uint8", uint8(3), uint8(3)},
		{"float64", 2.5, 2.5},
		{"float32", float32(0.5), 0.5},
		{"nan", math.NaN(), nil},
		{"inf", math.Inf(1), nil},
		{"time", ts, "2024-03-05T10:30:00.123Z"},
		{"date", Date{ts}, "2024-03-05"},
		{"decimal", decimal.RequireFromString("123.45"), 123.45},
		{"decimal pointer", func() *decimal.Decimal { d := decimal.NewFromInt(2); return &d }(), 2.0},
		{"big int", big.NewInt(1 << 40), float64(1 << 40)},
		{"big float", big.NewFloat(1.5), 1.5},
		{"bytes", []byte{0xde, 0xad, 0xbe, 0xef}, "deadbeef"},
		{"byte array", [2]byte{0x0a, 0xff}, "0aff"},
		{"uuid", id, "0b7b3c4e-52a4-4c1e-9a43-1f1c5e1d2a00"},
		{"ip", net.ParseIP("10.0.0.1"), "10.0.0.1"},
		{"stringer", status(1), "active"},
		{"named string", label("x"), "x"},
		{"pointer", &spend, 60.5},
		{"duration", 1500 * time.Millisecond, "1.5s"},
		{"slice", []float64{1, 2}, []any{1.0, 2.0}},
		{"any slice", []any{ts, nil}, []any{"2024-03-05T10:30:00.123Z", nil}},
		{"map", map[string]any{"d": decimal.NewFromInt(3), "n": nil}, map[string]any{"d": 3.0, "n": nil}},
		{"typed map", map[label]int32{"a": 1}, map[string]any{"a": int32(1)}},
		{"int keys", map[int]string{1: "a"}, map[string]any{"1": "a"}},
		{"nested", map[string]any{"rows": []any{map[string]any{"ts": ts}}}, map[string]any{"rows": []any{map[string]any{"ts": "2024-03-05T10:30:00.123Z"}}}},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			got := Value(tc.in)
			if !reflect.DeepEqual(got, tc.want) {
				t.Fatalf("Value(%#v) = %#v want %#v", tc.in, got, tc.want)
			}
		})
	}
}

func TestValue_Idempotent(t *testing.T) {
	ts := time.Date(2024, 1, 2, 3, 4, 5, 0, time.FixedZone("x", 3600))
	inputs := []any{
		nil, "s", int16(-4), float32(1.25), ts, Date{ts}, decimal.NewFromFloat(9.75),
		[]byte("hi"), uuid.New(), status(0), label("l"),
		map[string]any{"a": []any{ts, map[label]uint16{"k": 9}}},
		[]map[string]any{{"x": big.NewInt(5)}},
	}
	for _, in := range inputs {
		once := Value(in)
		twice := Value(once)
		if !reflect.DeepEqual(once, twice) {
			t.Fatalf("not idempotent for %#v: %#v then %#v", in, once, twice)
		}
		if _, err := json.Marshal(once); err != nil {
			t.Fatalf("not JSON-safe for %#v: %v", in, err)
		}
	}
}

func TestValue_DepthGuard(t *testing.T) {
	var deep any = "leaf"
	for range MaxDepth + 10 {
		deep = []any{deep}
	}
	got := Value(deep)

	depth := 0
	for {
		s, ok := got.([]any)
		if !ok {
			break
		}
		got = s[0]
		depth++
	}
	if depth > MaxDepth+1 {
		t.Fatalf("recursed %d levels", depth)
	}
	if s, ok := got.(string); !ok || !strings.Contains(s, "leaf") {
		t.Fatalf("truncated subtree should render with fmt, got %#v", got)
	}
}

func TestRow(t *testing.T) {
	day := time.Date(2024, 1, 31, 0, 0, 0, 0, time.UTC)
	got := Row(map[string]any{"date": Date{day}, "spend_sum": decimal.RequireFromString("40.25"), "ad_name": "MP1 b"})
	want := map[string]any{"date": "2024-01-31", "spend_sum": 40.25, "ad_name": "MP1 b"}
	if !reflect.DeepEqual(got, want) {
		t.Fatalf("Row = %#v", got)
	}
	if Row(nil) != nil {
		t.Fatalf("Row(nil) should be nil")
	}
	if rows := Rows(nil); rows == nil || len(rows) != 0 {
		t.Fatalf("Rows(nil) = %#v", rows)
	}
}

func TestDate_JSON(t *testing.T) {
	b, err := json.Marshal(Date{time.Date(2023, 12, 1, 0, 0, 0, 0, time.UTC)})
	if err != nil || string(b) != `"2023-12-01"` {
		t.Fatalf("json = %s, %v", b, err)
	}
}
