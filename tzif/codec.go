package tzif

// Handler receives the parts of a TZif file in file order as Decode reads
// them. Decode keeps no reference to a part once the call returns.
type Handler interface {
	Header(w Width, h Header)
	Section(s *Section)
	Footer(f Footer)
}

// Decode reads a TZif file from r and passes each part to h.
//
// The version 1 header and data block are always read. If the version 1
// header announces version 2 or later, the second header, the 64-bit data
// block and the footer follow. Decode stops at the first error; errors
// are *DecodeError values naming the section and field.
func Decode(r *Reader, h Handler, opts Options) error {
	v1, err := decodeSection(r, h, Width32, opts)
	if err != nil {
		return err
	}
	if !v1.Version.HasV2Data() {
		return nil
	}
	if _, err := decodeSection(r, h, Width64, opts); err != nil {
		return err
	}
	f, err := ReadFooter(r)
	if err != nil {
		return &DecodeError{Section: Width64, Field: FieldFooter, Err: err}
	}
	h.Footer(f)
	return nil
}

func decodeSection(r *Reader, h Handler, w Width, opts Options) (Header, error) {
	hdr, err := ReadHeader(r)
	if err != nil {
		return hdr, &DecodeError{Section: w, Field: FieldHeader, Err: err}
	}
	h.Header(w, hdr)

	s, err := ReadSection(r, hdr, w, opts)
	if err != nil {
		return hdr, err
	}
	h.Section(s)
	return hdr, nil
}
