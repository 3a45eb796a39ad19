package tzif

import (
	"errors"
	"fmt"
)

// Check reports structural problems in a decoded section that decoding
// itself tolerates. Every finding wraps ErrMalformed; the findings are
// joined with errors.Join. A nil result means no problem was found.
func Check(h Header, s *Section) error {
	var (
		errs []error
		sec  = s.Width
	)
	add := func(format string, args ...any) {
		errs = append(errs, fmt.Errorf("%w: %v: "+format, append([]any{ErrMalformed, sec}, args...)...))
	}

	// Isutcnt
	if h.Isutcnt != 0 && h.Isutcnt != h.Typecnt {
		add("isutcnt (%d) must be 0 or equal to typecnt (%d)", h.Isutcnt, h.Typecnt)
	}
	for i, v := range s.UTLocalIndicators {
		if v > 1 {
			add("UT/local indicator %d is %d, want 0 or 1", i, v)
		}
	}

	// Isstdcnt
	if h.Isstdcnt != 0 && h.Isstdcnt != h.Typecnt {
		add("isstdcnt (%d) must be 0 or equal to typecnt (%d)", h.Isstdcnt, h.Typecnt)
	}
	for i, v := range s.StandardWallIndicators {
		if v > 1 {
			add("standard/wall indicator %d is %d, want 0 or 1", i, v)
		}
	}

	// Timecnt
	for i, t := range s.TransitionTimes {
		if i > 0 && t <= s.TransitionTimes[i-1] {
			add("transition time %d (%d) is not after transition time %d (%d)", i, t, i-1, s.TransitionTimes[i-1])
		}
	}
	for i, typ := range s.TransitionTypes {
		if uint32(typ) >= h.Typecnt {
			add("transition type %d (%d) out of range [0, %d)", i, typ, h.Typecnt)
		}
	}

	// Typecnt
	if h.Typecnt == 0 {
		add("typecnt must not be zero")
	}
	for i, rec := range s.LocalTimeTypeRecords {
		if rec.Dst > 1 {
			add("local time type %d: isdst is %d, want 0 or 1", i, rec.Dst)
		}
		if uint32(rec.Idx) >= h.Charcnt {
			add("local time type %d: designation index %d out of range [0, %d)", i, rec.Idx, h.Charcnt)
		}
	}

	// Charcnt
	if h.Charcnt == 0 {
		add("charcnt must not be zero")
	}
	if n := len(s.TimeZoneDesignation); n > 0 && s.TimeZoneDesignation[n-1] != 0 {
		add("time zone designations: missing null terminator")
	}

	return errors.Join(errs...)
}

// CheckVersions reports a version 2+ header whose version differs from the
// version 1 header of the same file.
func CheckVersions(v1, v2 Header) error {
	if v1.Version != v2.Version {
		return fmt.Errorf("%w: inconsistent version: 32-bit header = %v, 64-bit header = %v", ErrMalformed, v1.Version, v2.Version)
	}
	return nil
}
