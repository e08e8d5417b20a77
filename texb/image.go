package texb

// This file contains the texb package's hooks into the image package. The
// public interface for the full bank is modeled after image/gif's DecodeAll
// and lives in decode.go.

import (
	"encoding/binary"
	"image"
	"image/color"
	"io"

	"github.com/pkg/errors"
)

func init() {
	image.RegisterFormat("texb", magic, Decode, DecodeConfig)
}

// Decode decodes a texture bank and returns its atlas.
func Decode(r io.Reader) (image.Image, error) {
	bank, err := DecodeAll(r)
	if err != nil {
		return nil, err
	}
	return bank.Atlas(), nil
}

// DecodeConfig returns the atlas dimensions without decoding any pixels.
func DecodeConfig(r io.Reader) (image.Config, error) {
	var h struct {
		Magic [4]byte
		Size  uint32
	}
	if err := binary.Read(r, binary.BigEndian, &h); err != nil {
		return image.Config{}, errors.Wrapf(ErrCorruptData, "texb: could not read header: %v", err)
	}
	if string(h.Magic[:]) != magic {
		return image.Config{}, errors.Wrapf(ErrInvalidFormat, "texb: bad magic %q", h.Magic[:])
	}

	var nameLen uint16
	if err := binary.Read(r, binary.BigEndian, &nameLen); err != nil {
		return image.Config{}, errors.Wrapf(ErrCorruptData, "texb: could not read name length: %v", err)
	}
	if _, err := io.CopyN(io.Discard, r, int64(nameLen)); err != nil {
		return image.Config{}, errors.Wrapf(ErrCorruptData, "texb: could not read name: %v", err)
	}

	var size struct{ Width, Height uint16 }
	if err := binary.Read(r, binary.BigEndian, &size); err != nil {
		return image.Config{}, errors.Wrapf(ErrCorruptData, "texb: could not read atlas size: %v", err)
	}
	return image.Config{
		ColorModel: color.NRGBAModel,
		Width:      int(size.Width),
		Height:     int(size.Height),
	}, nil
}
