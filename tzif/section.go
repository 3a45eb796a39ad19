package tzif

import "fmt"

// Section is a decoded data block. It is structured as follows, with
// TIME_SIZE being the section Width:
//
//	+---------------------------------------------------------+
//	|  transition times          (timecnt x TIME_SIZE)        |
//	+---------------------------------------------------------+
//	|  transition types          (timecnt)                    |
//	+---------------------------------------------------------+
//	|  local time type records   (typecnt x 6)                |
//	+---------------------------------------------------------+
//	|  time zone designations    (charcnt)                    |
//	+---------------------------------------------------------+
//	|  leap-second records       (leapcnt x (TIME_SIZE + C))  |
//	+---------------------------------------------------------+
//	|  standard/wall indicators  (isstdcnt)                   |
//	+---------------------------------------------------------+
//	|  UT/local indicators       (isutcnt)                    |
//	+---------------------------------------------------------+
//
// C, the width of a leap-second correction, is TIME_SIZE unless
// Options.RFC8536Leaps is set.
//
// Values are kept exactly as encoded. Nothing here checks that type
// indices, designation indices or flags are in range; see Check.
type Section struct {
	Width Width

	// TransitionTimes are UNIX leap-time values, widened to 64 bits.
	TransitionTimes []int64

	// TransitionTypes parallels TransitionTimes and indexes
	// LocalTimeTypeRecords.
	TransitionTypes []uint8

	LocalTimeTypeRecords []LocalTimeTypeRecord

	// TimeZoneDesignation holds the NUL-terminated designations back to
	// back. LocalTimeTypeRecord.Idx is an offset into it.
	TimeZoneDesignation []byte

	LeapSecondRecords []LeapSecondRecord

	// StandardWallIndicators and UTLocalIndicators hold the raw one-octet
	// flags, normally 0 or 1.
	StandardWallIndicators []uint8
	UTLocalIndicators      []uint8
}

// LocalTimeTypeRecord represents a local time type record.
// Each record has the following format (the lengths of multi-octet fields
// are shown in parentheses):
//
//	+---------------+---+---+
//	|  utoff (4)    |dst|idx|
//	+---------------+---+---+
type LocalTimeTypeRecord struct {
	// Utoff is the number of seconds added to UT to get local time.
	Utoff int32
	// Dst is the raw isdst octet.
	Dst uint8
	// Idx is the offset of the designation in TimeZoneDesignation.
	Idx uint8
}

// LeapSecondRecord is an occurrence time and the total correction in
// effect from then on.
type LeapSecondRecord struct {
	Occur int64
	Corr  int64
}

// localTimeTypeRecordSize is the encoded size of a LocalTimeTypeRecord
// regardless of the section width.
const localTimeTypeRecordSize = 6

// Options tune the section layout.
type Options struct {
	// RFC8536Leaps decodes 64-bit leap-second records as an eight-octet
	// occurrence followed by a four-octet correction, as RFC 8536
	// specifies. By default the correction has the width of the section.
	RFC8536Leaps bool
}

func (o Options) corrWidth(w Width) int {
	if o.RFC8536Leaps {
		return 4
	}
	return int(w)
}

// Field names used in DecodeError.
const (
	FieldHeader                 = "header"
	FieldTransitionTimes        = "transition times"
	FieldTransitionTypes        = "transition types"
	FieldLocalTimeTypeRecords   = "local time type records"
	FieldTimeZoneDesignation    = "time zone designations"
	FieldLeapSecondRecords      = "leap second records"
	FieldStandardWallIndicators = "standard/wall indicators"
	FieldUTLocalIndicators      = "UT/local indicators"
	FieldFooter                 = "footer"
)

type extent struct {
	field string
	size  uint64
}

// layout returns the encoded size of every array of the data block
// described by h, in file order. Sizes are computed in 64 bits so that no
// count can overflow them.
func layout(h Header, w Width, opts Options) []extent {
	return []extent{
		{FieldTransitionTimes, uint64(h.Timecnt) * uint64(w)},
		{FieldTransitionTypes, uint64(h.Timecnt)},
		{FieldLocalTimeTypeRecords, uint64(h.Typecnt) * localTimeTypeRecordSize},
		{FieldTimeZoneDesignation, uint64(h.Charcnt)},
		{FieldLeapSecondRecords, uint64(h.Leapcnt) * uint64(int(w)+opts.corrWidth(w))},
		{FieldStandardWallIndicators, uint64(h.Isstdcnt)},
		{FieldUTLocalIndicators, uint64(h.Isutcnt)},
	}
}

// ReadSection decodes the data block that follows header h. The array
// sizes are checked against the remaining input first; if any array would
// run past the end, ReadSection fails with ErrTruncated for that array
// and nothing is allocated or consumed.
func ReadSection(r *Reader, h Header, w Width, opts Options) (*Section, error) {
	if w != Width32 && w != Width64 {
		return nil, fmt.Errorf("invalid section width: %d", w)
	}

	var (
		extents   = layout(h, w, opts)
		remaining = uint64(r.Remaining())
		total     uint64
	)
	for _, e := range extents {
		total += e.size
		if total > remaining {
			return nil, &DecodeError{Section: w, Field: e.field, Err: ErrTruncated}
		}
	}

	p, err := r.next(total)
	if err != nil {
		return nil, &DecodeError{Section: w, Field: extents[0].field, Err: err}
	}

	var (
		s    = &Section{Width: w}
		ww   = int(w)
		corr = opts.corrWidth(w)
		off  int
	)
	take := func(n int) []byte {
		b := p[off : off+n]
		off += n
		return b
	}

	if h.Timecnt > 0 {
		s.TransitionTimes = make([]int64, h.Timecnt)
		for i := range s.TransitionTimes {
			s.TransitionTimes[i] = BigInt(take(ww))
		}
		s.TransitionTypes = append([]uint8(nil), take(int(h.Timecnt))...)
	}
	if h.Typecnt > 0 {
		s.LocalTimeTypeRecords = make([]LocalTimeTypeRecord, h.Typecnt)
		for i := range s.LocalTimeTypeRecords {
			b := take(localTimeTypeRecordSize)
			s.LocalTimeTypeRecords[i] = LocalTimeTypeRecord{
				Utoff: int32(BigInt(b[0:4])),
				Dst:   b[4],
				Idx:   b[5],
			}
		}
	}
	if h.Charcnt > 0 {
		s.TimeZoneDesignation = take(int(h.Charcnt))
	}
	if h.Leapcnt > 0 {
		s.LeapSecondRecords = make([]LeapSecondRecord, h.Leapcnt)
		for i := range s.LeapSecondRecords {
			s.LeapSecondRecords[i] = LeapSecondRecord{
				Occur: BigInt(take(ww)),
				Corr:  BigInt(take(corr)),
			}
		}
	}
	if h.Isstdcnt > 0 {
		s.StandardWallIndicators = take(int(h.Isstdcnt))
	}
	if h.Isutcnt > 0 {
		s.UTLocalIndicators = take(int(h.Isutcnt))
	}
	return s, nil
}

// Designation returns the NUL-terminated string starting at idx in the
// designation octets. A string without a terminating NUL runs to the end
// of the buffer. ok is false if idx is outside the buffer.
func Designation(buf []byte, idx uint8) (s string, ok bool) {
	if int(idx) >= len(buf) {
		return "", false
	}
	return byteString(buf[idx:]), true
}

// Designation returns the designation of the local time type record rec.
func (s *Section) Designation(rec LocalTimeTypeRecord) (string, bool) {
	return Designation(s.TimeZoneDesignation, rec.Idx)
}

// byteString makes a string by stopping at the first NUL.
func byteString(p []byte) string {
	for i, b := range p {
		if b == 0 {
			return string(p[:i])
		}
	}
	return string(p)
}
