//go:build linux || darwin

package source

import (
	"errors"
	"os"
	"path/filepath"
	"syscall"
	"testing"

	"github.com/google/go-cmp/cmp"
)

func TestOpen_FIFO(t *testing.T) {
	tests := []struct {
		name       string
		written    []byte
		compressed bool
	}{
		{"plain", []byte("TZif2 streamed content"), false},
		{"zstd", compress(t, []byte("TZif2 streamed content")), true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			path := filepath.Join(t.TempDir(), "zone")
			if err := syscall.Mkfifo(path, 0o600); err != nil {
				t.Skipf("mkfifo: %v", err)
			}
			errc := make(chan error, 1)
			go func() {
				w, err := os.OpenFile(path, os.O_WRONLY, 0)
				if err != nil {
					errc <- err
					return
				}
				_, err = w.Write(tt.written)
				errc <- errors.Join(err, w.Close())
			}()

			f, err := Open(path)
			if err != nil {
				t.Fatalf("Open() failed: %v", err)
			}
			defer f.Close()
			if err := <-errc; err != nil {
				t.Fatalf("writing to fifo: %v", err)
			}
			if got := f.Compressed(); got != tt.compressed {
				t.Errorf("Compressed() = %t, want %t", got, tt.compressed)
			}
			if diff := cmp.Diff(readAll(t, f), []byte("TZif2 streamed content")); diff != "" {
				t.Errorf("content mismatch (-got +want):\n%s", diff)
			}
		})
	}
}
