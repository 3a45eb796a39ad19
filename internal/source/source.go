// Package source opens zoneinfo files for decoding.
//
// Regular files are memory-mapped; pipes and devices are read into memory.
// Files compressed with zstd are recognized by their frame magic and
// decompressed into memory, up to MaxSize bytes.
package source

import (
	"bytes"
	"fmt"
	"io"
	"os"

	"github.com/klauspost/compress/zstd"
	"golang.org/x/exp/mmap"
)

// MaxSize is the max permitted size of decompressed or streamed input.
// As reference, the largest compiled zone in tzdata is well under 10 KB,
// so 10MB is overkill.
const MaxSize = 10 << 20

// zstdMagic starts every zstd frame.
var zstdMagic = []byte{0x28, 0xB5, 0x2F, 0xFD}

// File is an opened zoneinfo file.
type File struct {
	io.ReaderAt
	size       int64
	compressed bool
	zstdErr    error
	close      func() error
}

// Len returns the size of the (decompressed) content.
func (f *File) Len() int64 { return f.size }

// Compressed reports whether the file was zstd-compressed on disk.
func (f *File) Compressed() bool { return f.compressed }

// DecompressErr returns why content that starts with the zstd frame magic
// could not be decompressed. The raw content is served instead.
func (f *File) DecompressErr() error { return f.zstdErr }

// Close releases the file. It must be called exactly once.
func (f *File) Close() error {
	return f.close()
}

// Open opens the file at path.
//
// Regular files are memory-mapped. Anything else, such as a pipe or a
// character device, is read into memory, up to MaxSize bytes. Content that
// starts with the zstd frame magic but does not decompress is served as is,
// so that the zoneinfo decoder rejects it by its magic.
func Open(path string) (*File, error) {
	fi, err := os.Stat(path)
	if err != nil {
		return nil, err
	}
	var f *File
	if fi.Mode().IsRegular() {
		m, err := mmap.Open(path)
		if err != nil {
			return nil, fmt.Errorf("mmap: %w", err)
		}
		f = &File{ReaderAt: m, size: int64(m.Len()), close: m.Close}
	} else {
		content, err := readStream(path)
		if err != nil {
			return nil, err
		}
		f = inMemory(content)
	}

	magic := make([]byte, len(zstdMagic))
	if n, _ := f.ReadAt(magic, 0); n < len(magic) || !bytes.Equal(magic, zstdMagic) {
		return f, nil
	}
	content, err := decompress(io.NewSectionReader(f, 0, f.size))
	if err != nil {
		f.zstdErr = err
		return f, nil
	}
	if err := f.Close(); err != nil {
		return nil, fmt.Errorf("close: %w", err)
	}
	f = inMemory(content)
	f.compressed = true
	return f, nil
}

func inMemory(content []byte) *File {
	return &File{
		ReaderAt: bytes.NewReader(content),
		size:     int64(len(content)),
		close:    func() error { return nil },
	}
}

// readStream reads a file that cannot be mapped.
func readStream(path string) ([]byte, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	content, err := io.ReadAll(io.LimitReader(f, MaxSize+1))
	if err != nil {
		return nil, fmt.Errorf("read: %w", err)
	}
	if len(content) > MaxSize {
		return nil, fmt.Errorf("read: content exceeds %d bytes", MaxSize)
	}
	return content, nil
}

func decompress(r io.Reader) ([]byte, error) {
	dec, err := zstd.NewReader(r, zstd.WithDecoderMaxMemory(MaxSize), zstd.WithDecoderConcurrency(1))
	if err != nil {
		return nil, fmt.Errorf("zstd: %w", err)
	}
	defer dec.Close()

	content, err := io.ReadAll(io.LimitReader(dec, MaxSize+1))
	if err != nil {
		return nil, fmt.Errorf("zstd: %w", err)
	}
	if len(content) > MaxSize {
		return nil, fmt.Errorf("zstd: decompressed content exceeds %d bytes", MaxSize)
	}
	return content, nil
}
