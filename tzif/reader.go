package tzif

import (
	"bytes"
	"errors"
	"fmt"
	"io"
)

// Reader reads TZif data sequentially from an io.ReaderAt of known size.
// Knowing the size up front lets the decoder reject counts that the input
// cannot back before anything is allocated.
type Reader struct {
	r    io.ReaderAt
	off  int64
	size int64
}

// NewReader returns a Reader over the first size bytes of r.
func NewReader(r io.ReaderAt, size int64) *Reader {
	return &Reader{r: r, size: size}
}

// Offset returns the number of bytes consumed so far.
func (r *Reader) Offset() int64 { return r.off }

// Remaining returns the number of bytes left in the input.
func (r *Reader) Remaining() int64 { return r.size - r.off }

// next consumes exactly n bytes. It fails with ErrTruncated, without
// allocating, when fewer than n bytes remain.
func (r *Reader) next(n uint64) ([]byte, error) {
	if n > uint64(r.Remaining()) {
		return nil, ErrTruncated
	}
	p := make([]byte, n)
	if err := r.readAt(p); err != nil {
		return nil, err
	}
	r.off += int64(n)
	return p, nil
}

func (r *Reader) readAt(p []byte) error {
	n, err := r.r.ReadAt(p, r.off)
	if n == len(p) {
		// io.ReaderAt may report io.EOF together with a full read.
		return nil
	}
	if err == nil || errors.Is(err, io.EOF) {
		return ErrTruncated
	}
	return err
}

// lineChunk is the read size used while scanning for a line terminator.
const lineChunk = 64

// readLine consumes bytes up to and including the next '\n', or up to the
// end of the input if there is none. It returns nil at end of input.
func (r *Reader) readLine() ([]byte, error) {
	var line []byte
	for r.Remaining() > 0 {
		n := min(int64(lineChunk), r.Remaining())
		buf := make([]byte, n)
		if err := r.readAt(buf); err != nil {
			return nil, fmt.Errorf("reading line: %w", err)
		}
		if i := bytes.IndexByte(buf, '\n'); i >= 0 {
			line = append(line, buf[:i+1]...)
			r.off += int64(i + 1)
			return line, nil
		}
		line = append(line, buf...)
		r.off += n
	}
	return line, nil
}

// BigInt decodes p as a big-endian two's complement integer and sign
// extends it to 64 bits. len(p) must be between 1 and 8.
func BigInt(p []byte) int64 {
	shift := 64 - 8*uint(len(p))
	return int64(BigUint(p)<<shift) >> shift
}

// BigUint decodes p as a big-endian unsigned integer. len(p) must not
// exceed 8.
func BigUint(p []byte) uint64 {
	var n uint64
	for _, b := range p {
		n = n<<8 | uint64(b)
	}
	return n
}
