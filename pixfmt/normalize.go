package pixfmt

import (
	"encoding/binary"
	"image"

	"github.com/pkg/errors"
)

var (
	ErrShortData         = errors.New("pixfmt: not enough pixel data")
	ErrUnsupportedFormat = errors.New("pixfmt: unsupported pixel format")
)

// Validate reports whether Normalize can convert pixels stored with f.
func (f Flags) Validate() error {
	if f.Type() == TypeByte && f.Layout() > LayoutRGBA {
		return errors.Wrapf(ErrUnsupportedFormat, "byte pixels with layout %d", f.Layout())
	}
	return nil
}

// convertFunc expands one stored pixel in src into four RGBA bytes in dst.
type convertFunc func(dst, src []byte)

func converter(f Flags) convertFunc {
	switch f.Type() {
	case TypeRGB565:
		return convertRGB565
	case TypeRGBA5551:
		return convertRGBA5551
	case TypeRGBA4444:
		return convertRGBA4444
	}
	switch f.Layout() {
	case LayoutAlpha:
		return func(dst, src []byte) { dst[0], dst[1], dst[2], dst[3] = 0, 0, 0, src[0] }
	case LayoutLuminance:
		return func(dst, src []byte) { dst[0], dst[1], dst[2], dst[3] = src[0], src[0], src[0], 0xFF }
	case LayoutLuminanceAlpha:
		return func(dst, src []byte) { dst[0], dst[1], dst[2], dst[3] = src[0], src[0], src[0], src[1] }
	case LayoutRGB:
		return func(dst, src []byte) { dst[0], dst[1], dst[2], dst[3] = src[0], src[1], src[2], 0xFF }
	case LayoutRGBA:
		return func(dst, src []byte) { copy(dst, src[:4]) }
	}
	return nil
}

// Packed formats are little-endian words, the way they are uploaded to GL.

func convertRGB565(dst, src []byte) {
	p := binary.LittleEndian.Uint16(src)
	dst[0] = expand5(p >> 11)
	dst[1] = expand6(p >> 5)
	dst[2] = expand5(p)
	dst[3] = 0xFF
}

func convertRGBA5551(dst, src []byte) {
	p := binary.LittleEndian.Uint16(src)
	dst[0] = expand5(p >> 11)
	dst[1] = expand5(p >> 6)
	dst[2] = expand5(p >> 1)
	dst[3] = uint8(p&1) * 0xFF
}

func convertRGBA4444(dst, src []byte) {
	p := binary.LittleEndian.Uint16(src)
	dst[0] = expand4(p >> 12)
	dst[1] = expand4(p >> 8)
	dst[2] = expand4(p >> 4)
	dst[3] = expand4(p)
}

func expand4(v uint16) uint8 { return uint8(v&0xF) * 0x11 }

func expand5(v uint16) uint8 {
	v &= 0x1F
	return uint8(v<<3 | v>>2)
}

func expand6(v uint16) uint8 {
	v &= 0x3F
	return uint8(v<<2 | v>>4)
}

// Normalize converts width*height pixels stored in raw with format flags into
// a straight-alpha RGBA image. Bytes past the last pixel are ignored.
func Normalize(raw []byte, width, height int, flags Flags) (*image.NRGBA, error) {
	if err := flags.Validate(); err != nil {
		return nil, err
	}
	if width < 0 || height < 0 {
		return nil, errors.Errorf("pixfmt: invalid size %dx%d", width, height)
	}
	bpp := flags.BytesPerPixel()
	n := width * height
	if len(raw) < n*bpp {
		return nil, errors.Wrapf(ErrShortData, "have %d bytes, want %d for %dx%d %v", len(raw), n*bpp, width, height, flags)
	}

	img := image.NewNRGBA(image.Rect(0, 0, width, height))
	convert := converter(flags)
	for i := 0; i < n; i++ {
		convert(img.Pix[i*4:i*4+4], raw[i*bpp:i*bpp+bpp])
	}
	return img, nil
}
