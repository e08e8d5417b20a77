package texb

import (
	"bytes"
	"io"

	"github.com/klauspost/compress/zlib"
	"github.com/pkg/errors"

	"badc0de.net/pkg/go-texb/pixfmt"
)

// Compression kinds found in the 4-byte tag that starts a compressed
// payload.
const (
	compressionDeflate = 0
)

// inflateChunk caps how much output space is reserved before the stream
// has produced anything.
const inflateChunk = 1 << 20

// payload returns the raw atlas pixels from the bytes that follow the last
// record, expanding them first if the flags say they are compressed.
func payload(data []byte, h header) ([]byte, error) {
	if !h.Flags.Compressed() {
		return data, nil
	}

	r := &reader{buf: data}
	kind, err := r.u32("compression type")
	if err != nil {
		return nil, err
	}
	switch kind {
	case compressionDeflate:
		size := int(h.Width) * int(h.Height) * pixfmt.BytesPerPixel(uint16(h.Flags))
		return inflate(r.rest(), size)
	default:
		return nil, errors.Wrapf(ErrUnsupported, "unknown compression type %d", kind)
	}
}

// inflate expands a zlib stream that must hold exactly size bytes. A
// stream that ends early, runs past size, or fails its checksum is
// ErrCorruptData.
//
// The output grows with what the stream actually yields, so a header
// claiming a huge atlas costs nothing until the data backs it up.
func inflate(src []byte, size int) ([]byte, error) {
	zr, err := zlib.NewReader(bytes.NewReader(src))
	if err != nil {
		return nil, errors.Wrapf(ErrCorruptData, "opening deflate stream: %v", err)
	}
	defer zr.Close()

	var out bytes.Buffer
	if size < inflateChunk {
		out.Grow(size)
	} else {
		out.Grow(inflateChunk)
	}
	n, err := io.Copy(&out, io.LimitReader(zr, int64(size)+1))
	if err != nil {
		return nil, errors.Wrapf(ErrCorruptData, "inflated %d of %d bytes: %v", n, size, err)
	}
	if n != int64(size) {
		return nil, errors.Wrapf(ErrCorruptData, "inflated %d bytes, want %d", n, size)
	}
	return out.Bytes(), nil
}
