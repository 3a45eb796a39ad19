// Package tzif decodes the TZif file format described in RFC 8536 and
// tzfile(5), as produced by the zic compiler.
// https://datatracker.ietf.org/doc/html/rfc8536
//
// Decoding is strictly sequential and mirrors the file layout: a version 1
// header and data block, followed for version 2+ files by a second header,
// a data block with 64-bit time values and a footer holding a TZ string.
package tzif

import (
	"bytes"
	"fmt"
)

// Version represents the version of a TZif file.
// The version is an octet identifying the version of the file's format.
type Version byte

const (
	// V1 files contain only the version 1 header and data block.
	V1 Version = 0x00
	// V2 files add a version 2+ header, a 64-bit data block and a footer.
	V2 Version = 0x32 // '2'
	// V3 allows TZ string extensions and keeps the V2 binary layout.
	V3 Version = 0x33 // '3'
	// V4 relaxes leap-second table rules and keeps the V2 binary layout.
	V4 Version = 0x34 // '4'
)

func (v Version) String() string {
	switch v {
	case V1:
		return "V1 (0x00)"
	case V2:
		return "V2 (0x32)"
	case V3:
		return "V3 (0x33)"
	case V4:
		return "V4 (0x34)"
	default:
		return fmt.Sprintf("<undefined version (%d)>", v)
	}
}

// Number returns the version as an integer: 1 for NUL, the digit value for
// an ASCII digit. Other octets are offset from '0' like digits are.
func (v Version) Number() int {
	if v == V1 {
		return 1
	}
	return int(v) - '0'
}

// HasV2Data reports whether a file of this version carries a second header,
// a 64-bit data block and a footer after the version 1 data.
func (v Version) HasV2Data() bool {
	return v >= V2
}

// Magic is the four-octet ASCII sequence "TZif" (0x54 0x5A 0x69 0x66),
// which identifies the file as utilizing the Time Zone Information Format.
var Magic = [4]byte{'T', 'Z', 'i', 'f'}

// HeaderSize is the encoded size of a Header including the magic.
const HeaderSize = 44

// Width is the size in octets of time values in a data block. It doubles
// as the section label in diagnostics: 4-octet data is "32", 8-octet data
// is "64".
type Width int

const (
	Width32 Width = 4
	Width64 Width = 8
)

func (w Width) String() string {
	return fmt.Sprint(int(w) * 8)
}

// Header is the header of a TZif file.
//
// A TZif header is structured as follows (the lengths of multi-octet
// fields are shown in parentheses):
//
//	+---------------+---+
//	|  magic    (4) |ver|
//	+---------------+---+---------------------------------------+
//	|           [unused - reserved for future use] (15)         |
//	+---------------+---------------+---------------+-----------+
//	|  isutcnt  (4) |  isstdcnt (4) |  leapcnt  (4) |
//	+---------------+---------------+---------------+
//	|  timecnt  (4) |  typecnt  (4) |  charcnt  (4) |
//	+---------------+---------------+---------------+
//
// The counts are taken as-is; ReadSection checks them against the input
// length before using them.
type Header struct {
	Version  Version
	Reserved [15]byte

	// Isutcnt is the number of UT/local indicators.
	Isutcnt uint32
	// Isstdcnt is the number of standard/wall indicators.
	Isstdcnt uint32
	// Leapcnt is the number of leap-second records.
	Leapcnt uint32
	// Timecnt is the number of transition times and transition types.
	Timecnt uint32
	// Typecnt is the number of local time type records.
	Typecnt uint32
	// Charcnt is the number of octets of time zone designations.
	Charcnt uint32
}

// ReadHeader reads a header from r. The magic is checked before anything
// else is consumed, so on ErrBadMagic only the four magic octets have been
// read.
func ReadHeader(r *Reader) (Header, error) {
	var h Header
	magic, err := r.next(uint64(len(Magic)))
	if err != nil {
		return h, fmt.Errorf("reading magic: %w", err)
	}
	if !bytes.Equal(magic, Magic[:]) {
		return h, fmt.Errorf("%w: %q", ErrBadMagic, magic)
	}
	p, err := r.next(HeaderSize - uint64(len(Magic)))
	if err != nil {
		return h, fmt.Errorf("reading header: %w", err)
	}
	h.Version = Version(p[0])
	copy(h.Reserved[:], p[1:16])
	counts := p[16:]
	h.Isutcnt = uint32(BigUint(counts[0:4]))
	h.Isstdcnt = uint32(BigUint(counts[4:8]))
	h.Leapcnt = uint32(BigUint(counts[8:12]))
	h.Timecnt = uint32(BigUint(counts[12:16]))
	h.Typecnt = uint32(BigUint(counts[16:20]))
	h.Charcnt = uint32(BigUint(counts[20:24]))
	return h, nil
}
