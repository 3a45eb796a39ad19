// Package tziftest assembles TZif byte streams for tests, field by field,
// including malformed ones.
package tziftest

import "encoding/binary"

var order = binary.BigEndian

// Block describes a header and the data block that follows it. The header
// counts are derived from the lengths of the slices.
type Block struct {
	Version      byte
	Times        []int64
	Types        []byte
	Records      []Record
	Designations string
	Leaps        []Leap
	Std          []byte
	UT           []byte
}

// Record is a local time type record.
type Record struct {
	Utoff int32
	Dst   byte
	Idx   byte
}

// Leap is a leap-second record.
type Leap struct {
	Occur int64
	Corr  int64
}

// Builder appends encoded fields to a byte slice.
type Builder struct {
	buf []byte
}

// Bytes returns the bytes assembled so far.
func (b *Builder) Bytes() []byte { return b.buf }

// Raw appends p unchanged.
func (b *Builder) Raw(p ...byte) *Builder {
	b.buf = append(b.buf, p...)
	return b
}

// String appends the octets of s.
func (b *Builder) String(s string) *Builder {
	b.buf = append(b.buf, s...)
	return b
}

// Int appends v as a big-endian integer of width octets (4 or 8).
func (b *Builder) Int(width int, v int64) *Builder {
	switch width {
	case 4:
		b.buf = order.AppendUint32(b.buf, uint32(int32(v)))
	case 8:
		b.buf = order.AppendUint64(b.buf, uint64(v))
	default:
		panic("tziftest: unsupported width")
	}
	return b
}

// Header appends a header with the given magic, version and counts. The
// counts are, in order: isutcnt, isstdcnt, leapcnt, timecnt, typecnt,
// charcnt.
func (b *Builder) Header(magic string, version byte, isut, isstd, leap, time, typ, char uint32) *Builder {
	b.String(magic)
	b.Raw(version)
	b.Raw(make([]byte, 15)...)
	for _, n := range []uint32{isut, isstd, leap, time, typ, char} {
		b.buf = order.AppendUint32(b.buf, n)
	}
	return b
}

// Block appends blk's header followed by its data block with time values
// of width octets and leap-second corrections of corr octets.
func (b *Builder) Block(width, corr int, blk Block) *Builder {
	b.Header("TZif", blk.Version,
		uint32(len(blk.UT)), uint32(len(blk.Std)), uint32(len(blk.Leaps)),
		uint32(len(blk.Times)), uint32(len(blk.Records)), uint32(len(blk.Designations)))
	for _, t := range blk.Times {
		b.Int(width, t)
	}
	b.Raw(blk.Types...)
	for _, r := range blk.Records {
		b.Int(4, int64(r.Utoff)).Raw(r.Dst, r.Idx)
	}
	b.String(blk.Designations)
	for _, l := range blk.Leaps {
		b.Int(width, l.Occur).Int(corr, l.Corr)
	}
	b.Raw(blk.Std...)
	b.Raw(blk.UT...)
	return b
}

// File returns a complete file: v1 as the 32-bit section and, if v2 is not
// nil, v2 as the 64-bit section followed by a footer holding tz.
func File(v1 Block, v2 *Block, tz string) []byte {
	var b Builder
	b.Block(4, 4, v1)
	if v2 != nil {
		b.Block(8, 8, *v2)
		b.String("\n" + tz + "\n")
	}
	return b.Bytes()
}
