package texb

import (
	"encoding/binary"
	"os"

	"github.com/pkg/errors"
)

// DecodeFile reads and decodes the texture bank stored at path.
//
// The header's size field says how long the bank is; exactly that many bytes
// (plus the 8 bytes of magic and size) are read, so trailing data in the file
// is ignored and a file shorter than declared is ErrCorruptData.
func DecodeFile(path string) (*TextureBank, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, errors.Wrapf(err, "texb: opening %s", path)
	}
	defer f.Close()

	var h struct {
		Magic [4]byte
		Size  uint32
	}
	if err := binary.Read(f, binary.BigEndian, &h.Magic); err != nil {
		return nil, errors.Wrapf(ErrInvalidFormat, "texb: %s: could not read magic: %v", path, err)
	}
	if string(h.Magic[:]) != magic {
		return nil, errors.Wrapf(ErrInvalidFormat, "texb: %s: bad magic %q", path, h.Magic[:])
	}
	if err := binary.Read(f, binary.BigEndian, &h.Size); err != nil {
		return nil, errors.Wrapf(ErrCorruptData, "texb: %s: could not read size: %v", path, err)
	}

	total := int64(h.Size) + 8
	fi, err := f.Stat()
	if err != nil {
		return nil, errors.Wrapf(err, "texb: stat %s", path)
	}
	if fi.Size() < total {
		return nil, errors.Wrapf(ErrCorruptData, "texb: %s: file is %d bytes, header declares %d", path, fi.Size(), total)
	}

	buf := make([]byte, total)
	if n, err := f.ReadAt(buf, 0); n != len(buf) {
		return nil, errors.Wrapf(ErrCorruptData, "texb: reading %s: got %d of %d bytes: %v", path, n, total, err)
	}
	bank, err := DecodeBytes(buf)
	if err != nil {
		return nil, errors.Wrapf(err, "%s", path)
	}
	return bank, nil
}
