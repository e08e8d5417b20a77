// Package pixfmt describes the pixel formats used by texture bank atlases and
// converts raw atlas data into straight-alpha RGBA.
//
// The format is stored in a 16-bit flags word. Bits 6 and 7 select the pixel
// type (three packed 16-bit formats, or one byte per channel), bits 0 to 2
// select the channel layout of the byte type, and bit 3 marks a compressed
// payload.
package pixfmt

import (
	"fmt"
)

// Flags is the format flags word of a texture bank header.
type Flags uint16

// Type is the storage type of a pixel, from bits 6 and 7 of Flags.
type Type uint8

const (
	TypeRGB565 Type = iota
	TypeRGBA5551
	TypeRGBA4444
	TypeByte
)

// Layout is the channel layout, from bits 0 to 2 of Flags. It determines the
// pixel size only for TypeByte.
type Layout uint8

const (
	LayoutAlpha Layout = iota
	LayoutLuminance
	LayoutLuminanceAlpha
	LayoutRGB
	LayoutRGBA
)

// FlagCompressed marks an atlas payload wrapped in a compression envelope.
const FlagCompressed Flags = 0x8

func (f Flags) Type() Type {
	return Type(f>>6) & 3
}

func (f Flags) Layout() Layout {
	return Layout(f & 7)
}

func (f Flags) Compressed() bool {
	return f&FlagCompressed != 0
}

// BytesPerPixel returns the size of one stored pixel.
func (f Flags) BytesPerPixel() int {
	return BytesPerPixel(uint16(f))
}

func (f Flags) String() string {
	var s string
	switch f.Type() {
	case TypeRGB565:
		s = "RGB565"
	case TypeRGBA5551:
		s = "RGBA5551"
	case TypeRGBA4444:
		s = "RGBA4444"
	default:
		switch f.Layout() {
		case LayoutAlpha:
			s = "A8"
		case LayoutLuminance:
			s = "L8"
		case LayoutLuminanceAlpha:
			s = "LA88"
		case LayoutRGB:
			s = "RGB888"
		case LayoutRGBA:
			s = "RGBA8888"
		default:
			s = fmt.Sprintf("byte/layout%d", f.Layout())
		}
	}
	if f.Compressed() {
		s += "+deflate"
	}
	return s
}

// BytesPerPixel derives the stored size of one pixel from a flags word.
//
// All three packed types are two bytes wide. The byte type uses one byte per
// channel, taking the channel count straight from the layout bits, except
// that an alpha-only layout (0) is one byte.
func BytesPerPixel(flags uint16) int {
	lo3 := int(flags & 7)
	switch (flags >> 6) & 3 {
	case 0, 1, 2:
		return 2
	case 3:
		if lo3 == 0 {
			return 1
		}
		return lo3
	default:
		return 0
	}
}
