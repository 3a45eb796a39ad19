// Package dump prints decoded TZif parts as text records, one per line,
// prefixed with the section ("32:" or "64:") they belong to.
package dump

import (
	"fmt"
	"io"
	"log/slog"

	"golang.org/x/text/encoding/charmap"

	"github.com/ngrash/zid/internal/unixtime"
	"github.com/ngrash/zid/tzif"
)

// Options control what the Printer writes.
type Options struct {
	// Latin1 decodes designations and the TZ string as ISO 8859-1, so
	// that octets outside ASCII print as valid UTF-8.
	Latin1 bool
	// Check runs tzif.Check on every section and logs each finding as a
	// warning. Findings do not stop decoding.
	Check bool
}

// Printer is a tzif.Handler that writes every part it receives to w.
type Printer struct {
	w       io.Writer
	log     *slog.Logger
	opts    Options
	headers map[tzif.Width]tzif.Header
	err     error
}

var _ tzif.Handler = (*Printer)(nil)

// New returns a Printer writing to w. Warnings go to log.
func New(w io.Writer, log *slog.Logger, opts Options) *Printer {
	return &Printer{
		w:       w,
		log:     log,
		opts:    opts,
		headers: make(map[tzif.Width]tzif.Header),
	}
}

// Err returns the first error encountered while writing.
func (p *Printer) Err() error { return p.err }

func (p *Printer) printf(format string, args ...any) {
	if p.err != nil {
		return
	}
	_, p.err = fmt.Fprintf(p.w, format, args...)
}

// Header prints the header fields in encoded order.
func (p *Printer) Header(w tzif.Width, h tzif.Header) {
	p.headers[w] = h

	p.printf("%v: tzh: magic '%s'\n", w, tzif.Magic[:])
	p.printf("%v: tzh: version %d\n", w, h.Version.Number())
	p.printf("%v: tzh: ttisgmtcnt %d\n", w, h.Isutcnt)
	p.printf("%v: tzh: ttisstdcnt %d\n", w, h.Isstdcnt)
	p.printf("%v: tzh: leapcnt %d\n", w, h.Leapcnt)
	p.printf("%v: tzh: timecnt %d\n", w, h.Timecnt)
	p.printf("%v: tzh: typecnt %d\n", w, h.Typecnt)
	p.printf("%v: tzh: charcnt %d\n", w, h.Charcnt)

	if p.opts.Check && w == tzif.Width64 {
		p.warn(w, tzif.CheckVersions(p.headers[tzif.Width32], h))
	}
}

// Section prints the arrays of a data block.
func (p *Printer) Section(s *tzif.Section) {
	w := s.Width
	for i, t := range s.TransitionTimes {
		// Outside the calendar range the date is left out, the separator
		// before it is not.
		var date string
		if dt, ok := unixtime.ToDateTime(t); ok {
			date = dt.String()
		}
		p.printf("%v: ttimes[%02d]: %d %d %s\n", w, i, t, s.TransitionTypes[i], date)
	}
	offset := "gmtoff"
	if w == tzif.Width64 {
		offset = "offset"
	}
	for _, rec := range s.LocalTimeTypeRecords {
		// An index past the designations prints as an empty string.
		abbr, _ := s.Designation(rec)
		p.printf("%v: %s %d isdst %d abbrind %d (%s)\n", w, offset, rec.Utoff, rec.Dst, rec.Idx, p.text([]byte(abbr)))
	}
	for _, l := range s.LeapSecondRecords {
		p.printf("%v: leap transition %d correction %d\n", w, l.Occur, l.Corr)
	}
	for i, v := range s.StandardWallIndicators {
		p.printf("%v: ttisstdcnt[%d]: %d\n", w, i, v)
	}
	for i, v := range s.UTLocalIndicators {
		p.printf("%v: ttisgmtcnt[%d]: %d\n", w, i, v)
	}

	if p.opts.Check {
		p.warn(w, tzif.Check(p.headers[w], s))
	}
}

// Footer prints the TZ string, if there is one.
func (p *Printer) Footer(f tzif.Footer) {
	if !f.Present {
		return
	}
	p.printf("TZ: '%s'\n", p.text(f.TZString))
}

func (p *Printer) text(b []byte) string {
	if !p.opts.Latin1 {
		return string(b)
	}
	s, err := charmap.ISO8859_1.NewDecoder().Bytes(b)
	if err != nil {
		return string(b)
	}
	return string(s)
}

func (p *Printer) warn(w tzif.Width, err error) {
	if err == nil {
		return
	}
	findings := []error{err}
	if joined, ok := err.(interface{ Unwrap() []error }); ok {
		findings = joined.Unwrap()
	}
	for _, f := range findings {
		p.log.Warn("malformed zoneinfo data", "section", w.String(), "finding", f.Error())
	}
}
