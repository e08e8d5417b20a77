// Package export writes decoded texture bank images to common image file
// formats.
package export

import (
	"fmt"
	"image"
	"image/color"
	"image/gif"
	"image/png"
	"io"
	"strings"

	"github.com/HugoSmits86/nativewebp"
	"github.com/ericpauley/go-quantize/quantize"
	"github.com/ftrvxmtrx/tga"
	"github.com/pkg/errors"
	"golang.org/x/image/draw"
)

// Format is an output image file format.
type Format int

const (
	PNG Format = iota
	WebP
	TGA
	GIF
)

var formats = []struct {
	name, mime string
}{
	PNG:  {"png", "image/png"},
	WebP: {"webp", "image/webp"},
	TGA:  {"tga", "image/x-tga"},
	GIF:  {"gif", "image/gif"},
}

// ParseFormat returns the format with the given name or file extension.
func ParseFormat(s string) (Format, error) {
	s = strings.ToLower(strings.TrimPrefix(s, "."))
	for i, f := range formats {
		if s == f.name {
			return Format(i), nil
		}
	}
	return 0, errors.Errorf("export: unknown format %q", s)
}

func (f Format) valid() bool { return f >= 0 && int(f) < len(formats) }

func (f Format) String() string {
	if !f.valid() {
		return fmt.Sprintf("Format(%d)", int(f))
	}
	return formats[f].name
}

// Ext returns the file extension, including the leading dot.
func (f Format) Ext() string { return "." + f.String() }

// ContentType returns the MIME type of f.
func (f Format) ContentType() string {
	if !f.valid() {
		return "application/octet-stream"
	}
	return formats[f].mime
}

// Encode writes img to w in format f.
func Encode(w io.Writer, img image.Image, f Format) error {
	var err error
	switch f {
	case PNG:
		err = png.Encode(w, img)
	case WebP:
		err = nativewebp.Encode(w, img, nil)
	case TGA:
		err = tga.Encode(w, img)
	case GIF:
		err = gif.Encode(w, Paletted(img), nil)
	default:
		return errors.Errorf("export: unknown format %v", f)
	}
	return errors.Wrapf(err, "export: encoding %v", f)
}

// Paletted quantizes img to at most 255 colors, plus color.Transparent at
// index 0 that fully transparent pixels map to.
func Paletted(img image.Image) *image.Paletted {
	b := img.Bounds()
	if b.Empty() {
		return image.NewPaletted(b, color.Palette{color.Transparent})
	}
	q := quantize.MedianCutQuantizer{}
	pal := q.Quantize(append(make(color.Palette, 0, 256), color.Transparent), img)
	out := image.NewPaletted(b, pal)
	draw.Draw(out, b, img, b.Min, draw.Src)
	return out
}

// Scale enlarges img by an integer factor without smoothing. A factor of 1 or
// less returns img unchanged.
func Scale(img image.Image, factor int) image.Image {
	if factor <= 1 {
		return img
	}
	b := img.Bounds()
	dst := image.NewNRGBA(image.Rect(0, 0, b.Dx()*factor, b.Dy()*factor))
	draw.NearestNeighbor.Scale(dst, dst.Bounds(), img, b, draw.Src, nil)
	return dst
}
