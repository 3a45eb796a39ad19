package dump

import (
	"bytes"
	"errors"
	"log/slog"
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/ngrash/zid/internal/tziftest"
	"github.com/ngrash/zid/tzif"
)

var (
	v1Block = tziftest.Block{
		Version:      '2',
		Times:        []int64{-2147483648, 0},
		Types:        []byte{0, 1},
		Records:      []tziftest.Record{{Utoff: -17762, Idx: 0}, {Utoff: -18000, Idx: 4}},
		Designations: "LMT\x00EST\x00",
		Leaps:        []tziftest.Leap{{Occur: 78796800, Corr: 1}},
		Std:          []byte{0, 1},
		UT:           []byte{0, 0},
	}
	v2Block = tziftest.Block{
		Version:      '2',
		Times:        []int64{-1 << 59, 0, 4102444800},
		Types:        []byte{0, 1, 1},
		Records:      []tziftest.Record{{Utoff: -17762, Idx: 0}, {Utoff: -18000, Idx: 4}, {Utoff: 3600, Dst: 1, Idx: 200}},
		Designations: "LMT\x00EST\x00",
		Leaps:        []tziftest.Leap{{Occur: 78796800, Corr: 1}},
		Std:          []byte{0, 1, 0},
		UT:           []byte{0, 0, 1},
	}
)

func decode(t *testing.T, b []byte, opts Options) (out, log string) {
	t.Helper()
	var stdout, stderr bytes.Buffer
	p := New(&stdout, slog.New(slog.NewTextHandler(&stderr, nil)), opts)
	if err := tzif.Decode(tzif.NewReader(bytes.NewReader(b), int64(len(b))), p, tzif.Options{}); err != nil {
		t.Fatalf("Decode() failed: %v", err)
	}
	if err := p.Err(); err != nil {
		t.Fatalf("Err() = %v", err)
	}
	return stdout.String(), stderr.String()
}

func TestPrinter(t *testing.T) {
	want := strings.Join([]string{
		"32: tzh: magic 'TZif'",
		"32: tzh: version 2",
		"32: tzh: ttisgmtcnt 2",
		"32: tzh: ttisstdcnt 2",
		"32: tzh: leapcnt 1",
		"32: tzh: timecnt 2",
		"32: tzh: typecnt 2",
		"32: tzh: charcnt 8",
		"32: ttimes[00]: -2147483648 0 1901-12-13 20:45:52",
		"32: ttimes[01]: 0 1 1970-01-01 00:00:00",
		"32: gmtoff -17762 isdst 0 abbrind 0 (LMT)",
		"32: gmtoff -18000 isdst 0 abbrind 4 (EST)",
		"32: leap transition 78796800 correction 1",
		"32: ttisstdcnt[0]: 0",
		"32: ttisstdcnt[1]: 1",
		"32: ttisgmtcnt[0]: 0",
		"32: ttisgmtcnt[1]: 0",
		"64: tzh: magic 'TZif'",
		"64: tzh: version 2",
		"64: tzh: ttisgmtcnt 3",
		"64: tzh: ttisstdcnt 3",
		"64: tzh: leapcnt 1",
		"64: tzh: timecnt 3",
		"64: tzh: typecnt 3",
		"64: tzh: charcnt 8",
		"64: ttimes[00]: -576460752303423488 0 ",
		"64: ttimes[01]: 0 1 1970-01-01 00:00:00",
		"64: ttimes[02]: 4102444800 1 ",
		"64: offset -17762 isdst 0 abbrind 0 (LMT)",
		"64: offset -18000 isdst 0 abbrind 4 (EST)",
		"64: offset 3600 isdst 1 abbrind 200 ()",
		"64: leap transition 78796800 correction 1",
		"64: ttisstdcnt[0]: 0",
		"64: ttisstdcnt[1]: 1",
		"64: ttisstdcnt[2]: 0",
		"64: ttisgmtcnt[0]: 0",
		"64: ttisgmtcnt[1]: 0",
		"64: ttisgmtcnt[2]: 1",
		"TZ: 'EST5'",
		"",
	}, "\n")

	v2 := v2Block
	got, log := decode(t, tziftest.File(v1Block, &v2, "EST5"), Options{})
	if diff := cmp.Diff(got, want); diff != "" {
		t.Errorf("output mismatch (-got +want):\n%s", diff)
	}
	if log != "" {
		t.Errorf("unexpected log output without Check:\n%s", log)
	}
}

func TestPrinter_HeaderOnly(t *testing.T) {
	b := new(tziftest.Builder).Header("TZif", 0, 0, 0, 0, 0, 0, 0).Bytes()
	want := strings.Join([]string{
		"32: tzh: magic 'TZif'",
		"32: tzh: version 1",
		"32: tzh: ttisgmtcnt 0",
		"32: tzh: ttisstdcnt 0",
		"32: tzh: leapcnt 0",
		"32: tzh: timecnt 0",
		"32: tzh: typecnt 0",
		"32: tzh: charcnt 0",
		"",
	}, "\n")
	got, _ := decode(t, b, Options{})
	if diff := cmp.Diff(got, want); diff != "" {
		t.Errorf("output mismatch (-got +want):\n%s", diff)
	}
}

func TestPrinter_NoTZString(t *testing.T) {
	v2 := v2Block
	got, _ := decode(t, tziftest.File(v1Block, &v2, ""), Options{})
	if strings.Contains(got, "TZ:") {
		t.Errorf("output contains a TZ line for an empty TZ string:\n%s", got)
	}
}

func TestPrinter_Check(t *testing.T) {
	v2 := v2Block
	_, log := decode(t, tziftest.File(v1Block, &v2, "EST5"), Options{Check: true})
	lines := strings.Split(strings.TrimSpace(log), "\n")
	if len(lines) != 1 {
		t.Fatalf("got %d log lines, want 1:\n%s", len(lines), log)
	}
	for _, want := range []string{"level=WARN", "section=64", "designation index 200"} {
		if !strings.Contains(lines[0], want) {
			t.Errorf("log line %q does not contain %q", lines[0], want)
		}
	}
}

func TestPrinter_CheckVersions(t *testing.T) {
	v2 := v2Block
	v2.Version = '3'
	_, log := decode(t, tziftest.File(v1Block, &v2, "EST5"), Options{Check: true})
	if !strings.Contains(log, "inconsistent version") {
		t.Errorf("log does not report the version mismatch:\n%s", log)
	}
}

func TestPrinter_Latin1(t *testing.T) {
	blk := tziftest.Block{
		Records:      []tziftest.Record{{Utoff: 3600}},
		Designations: "\xe9T\x00",
	}
	b := tziftest.File(blk, nil, "")

	got, _ := decode(t, b, Options{Latin1: true})
	if want := "(éT)"; !strings.Contains(got, want) {
		t.Errorf("output does not contain %q:\n%s", want, got)
	}
	got, _ = decode(t, b, Options{})
	if want := "(\xe9T)"; !strings.Contains(got, want) {
		t.Errorf("output does not contain %q:\n%s", want, got)
	}
}

type failWriter struct{}

func (failWriter) Write([]byte) (int, error) { return 0, errors.New("disk full") }

func TestPrinter_WriteError(t *testing.T) {
	p := New(failWriter{}, slog.Default(), Options{})
	p.Header(tzif.Width32, tzif.Header{})
	if err := p.Err(); err == nil || err.Error() != "disk full" {
		t.Errorf("Err() = %v, want disk full", err)
	}
}
