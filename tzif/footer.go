package tzif

import "bytes"

// Footer represents the footer of a TZif file.
// The footer is structured as follows (the lengths of multi-octet
// fields are shown in parentheses):
//
//	+---+--------------------+---+
//	| NL|  TZ string (0...)  |NL |
//	+---+--------------------+---+
type Footer struct {
	// TZString is a POSIX TZ rule for times after the last transition.
	// It is returned verbatim; its grammar is not interpreted.
	TZString []byte
	// Present is false when the footer holds no TZ string, either because
	// the string is empty or because the input ends early.
	Present bool
}

// ReadFooter reads the footer that follows a 64-bit data block.
//
// The first line is consumed and discarded; the format places a lone
// newline there. The second line, cut at its first '\n' or '\r', is the TZ
// string. An empty second line, or a missing one, means no TZ string is
// present. A footer cut short by the end of input is not an error.
func ReadFooter(r *Reader) (Footer, error) {
	var f Footer
	first, err := r.readLine()
	if err != nil || len(first) == 0 {
		return f, err
	}
	line, err := r.readLine()
	if err != nil {
		return f, err
	}
	if i := bytes.IndexAny(line, "\r\n"); i >= 0 {
		line = line[:i]
	}
	if len(line) == 0 {
		return f, nil
	}
	f.TZString = line
	f.Present = true
	return f, nil
}
