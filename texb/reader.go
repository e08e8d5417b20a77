package texb

import (
	"bytes"
	"encoding/binary"

	"github.com/pkg/errors"
)

// reader is a cursor over an in-memory texture bank. All integers are big
// endian. Reading past the end of the buffer is reported as ErrCorruptData
// and leaves the cursor where it was.
type reader struct {
	buf []byte
	off int
}

func (r *reader) need(n int, what string) error {
	if n < 0 || len(r.buf)-r.off < n {
		return errors.Wrapf(ErrCorruptData, "truncated reading %s: need %d bytes at offset %d, have %d", what, n, r.off, len(r.buf)-r.off)
	}
	return nil
}

func (r *reader) bytes(n int, what string) ([]byte, error) {
	if err := r.need(n, what); err != nil {
		return nil, err
	}
	b := r.buf[r.off : r.off+n : r.off+n]
	r.off += n
	return b, nil
}

func (r *reader) skip(n int, what string) error {
	_, err := r.bytes(n, what)
	return err
}

func (r *reader) u8(what string) (uint8, error) {
	b, err := r.bytes(1, what)
	if err != nil {
		return 0, err
	}
	return b[0], nil
}

func (r *reader) u16(what string) (uint16, error) {
	b, err := r.bytes(2, what)
	if err != nil {
		return 0, err
	}
	return binary.BigEndian.Uint16(b), nil
}

func (r *reader) u32(what string) (uint32, error) {
	b, err := r.bytes(4, what)
	if err != nil {
		return 0, err
	}
	return binary.BigEndian.Uint32(b), nil
}

// str reads a string with a 16-bit length prefix. Strings are stored with a
// terminating NUL, which is dropped along with anything after it.
func (r *reader) str(what string) (string, error) {
	n, err := r.u16(what + " length")
	if err != nil {
		return "", err
	}
	b, err := r.bytes(int(n), what)
	if err != nil {
		return "", err
	}
	if i := bytes.IndexByte(b, 0); i >= 0 {
		b = b[:i]
	}
	return string(b), nil
}

// rest returns everything after the cursor.
func (r *reader) rest() []byte {
	return r.buf[r.off:]
}
