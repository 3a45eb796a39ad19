// zid reads binary zoneinfo data from the file named on the command line
// and writes the raw values it contains to stdout, one record per line.
// The file must be in the TZif format written by zic.
package main

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"strings"

	"github.com/spf13/pflag"

	"github.com/ngrash/zid/internal/dump"
	"github.com/ngrash/zid/internal/source"
	"github.com/ngrash/zid/tzif"
)

// Exit codes.
const (
	exitOK = iota
	exitUsage
	exitOpen
	exitSection32
	exitSection64
	exitClose
	exitWrite
)

const usage = "usage: zid [flags] <zonefile>"

type config struct {
	path         string
	check        bool
	rfc8536Leaps bool
	latin1       bool
	logLevel     slog.Level
}

func main() {
	os.Exit(run(os.Args[1:], os.Stdout, os.Stderr))
}

// run executes zid with the given arguments and returns the exit code.
func run(args []string, stdout, stderr io.Writer) int {
	cfg, err := parseFlags(args, stderr)
	if errors.Is(err, pflag.ErrHelp) {
		return exitOK
	}
	if err != nil {
		fmt.Fprintln(stderr, "zid:", err)
		fmt.Fprintln(stderr, usage)
		return exitUsage
	}

	log := slog.New(slog.NewTextHandler(stderr, &slog.HandlerOptions{Level: cfg.logLevel}))

	f, err := source.Open(cfg.path)
	if err != nil {
		log.Error("opening zoneinfo file", "path", cfg.path, "error", err)
		return exitOpen
	}
	log.Debug("opened zoneinfo file", "path", cfg.path, "size", f.Len(), "compressed", f.Compressed())
	if err := f.DecompressErr(); err != nil {
		log.Debug("zstd magic present but not decompressible, decoding raw content", "error", err)
	}

	out := bufio.NewWriter(stdout)
	printer := dump.New(out, log, dump.Options{Latin1: cfg.latin1, Check: cfg.check})
	r := tzif.NewReader(f, f.Len())
	decodeErr := tzif.Decode(r, printer, tzif.Options{RFC8536Leaps: cfg.rfc8536Leaps})

	// Records decoded before a failure are still written.
	writeErr := errors.Join(printer.Err(), out.Flush())
	if writeErr != nil {
		log.Error("writing output", "error", writeErr)
	}

	if decodeErr != nil {
		_ = f.Close()
		return decodeFailure(log, decodeErr)
	}
	if writeErr != nil {
		_ = f.Close()
		return exitWrite
	}
	if n := r.Remaining(); n > 0 {
		log.Debug("remaining data after footer", "bytes", n)
	}

	if err := f.Close(); err != nil {
		log.Error("closing zoneinfo file", "path", cfg.path, "error", err)
		return exitClose
	}
	return exitOK
}

func parseFlags(args []string, stderr io.Writer) (config, error) {
	var (
		cfg      config
		logLevel string
		fs       = pflag.NewFlagSet("zid", pflag.ContinueOnError)
	)
	fs.SetOutput(stderr)
	fs.Usage = func() {
		fmt.Fprintln(stderr, usage)
		fs.PrintDefaults()
	}
	fs.BoolVarP(&cfg.check, "check", "c", false, "report structural problems in the decoded data as warnings")
	fs.BoolVar(&cfg.rfc8536Leaps, "rfc8536-leaps", false, "decode 64-bit leap-second records with a four-octet correction")
	fs.BoolVar(&cfg.latin1, "latin1", false, "decode designations and the TZ string as ISO 8859-1")
	fs.StringVarP(&logLevel, "loglevel", "l", "info", "set loglevel to debug, info, warn or error")

	if err := fs.Parse(args); err != nil {
		return cfg, err
	}
	if err := cfg.logLevel.UnmarshalText([]byte(strings.ToUpper(logLevel))); err != nil {
		return cfg, fmt.Errorf("invalid loglevel %q", logLevel)
	}
	if fs.NArg() != 1 {
		return cfg, fmt.Errorf("expected exactly one zonefile, got %d arguments", fs.NArg())
	}
	cfg.path = fs.Arg(0)
	return cfg, nil
}

// decodeFailure logs err and maps it to the exit code of the failing
// section.
func decodeFailure(log *slog.Logger, err error) int {
	var de *tzif.DecodeError
	if !errors.As(err, &de) {
		log.Error("decoding zoneinfo file", "error", err)
		return exitSection32
	}
	log.Error("decoding zoneinfo file", "section", de.Section.String(), "field", de.Field, "error", de.Err)
	if de.Section == tzif.Width64 {
		return exitSection64
	}
	return exitSection32
}
