package pixfmt

import (
	"fmt"
	"testing"

	"badc0de.net/pkg/go-texb/ttesting"
)

// bytesPerPixelTable lists the pixel size for every (type, layout) pair.
var bytesPerPixelTable = [4][8]int{
	{2, 2, 2, 2, 2, 2, 2, 2}, // RGB565
	{2, 2, 2, 2, 2, 2, 2, 2}, // RGBA5551
	{2, 2, 2, 2, 2, 2, 2, 2}, // RGBA4444
	{1, 1, 2, 3, 4, 5, 6, 7}, // byte
}

func TestBytesPerPixelExhaustive(t *testing.T) {
	for i := 0; i <= 0xFFFF; i++ {
		flags := uint16(i)
		want := bytesPerPixelTable[(flags>>6)&3][flags&7]
		if got := BytesPerPixel(flags); got != want {
			t.Fatalf("BytesPerPixel(%#04x) = %d; want %d", flags, got, want)
		}
		if got := Flags(flags).BytesPerPixel(); got != want {
			t.Fatalf("Flags(%#04x).BytesPerPixel() = %d; want %d", flags, got, want)
		}
	}
}

func TestBytesPerPixelIgnoresOtherBits(t *testing.T) {
	// Only bits 0-2 and 6-7 take part; compression and high bits do not.
	ttesting.AssertEqualInt(t, "rgba", BytesPerPixel(0xC4), 4)
	ttesting.AssertEqualInt(t, "rgba compressed", BytesPerPixel(0xCC), 4)
	ttesting.AssertEqualInt(t, "rgba high bits", BytesPerPixel(0xFFC4&^0x38), 4)
	ttesting.AssertEqualInt(t, "rgb565 with layout", BytesPerPixel(0x03), 2)
	ttesting.AssertEqualInt(t, "alpha", BytesPerPixel(0xC0), 1)
}

func TestFlags(t *testing.T) {
	for _, tc := range []struct {
		flags      Flags
		typ        Type
		layout     Layout
		compressed bool
		str        string
	}{
		{0x00, TypeRGB565, LayoutAlpha, false, "RGB565"},
		{0x43, TypeRGBA5551, LayoutRGB, false, "RGBA5551"},
		{0x8C, TypeRGBA4444, LayoutRGBA, true, "RGBA4444+deflate"},
		{0xC4, TypeByte, LayoutRGBA, false, "RGBA8888"},
		{0xCB, TypeByte, LayoutRGB, true, "RGB888+deflate"},
		{0xC2, TypeByte, LayoutLuminanceAlpha, false, "LA88"},
		{0xC7, TypeByte, Layout(7), false, "byte/layout7"},
	} {
		t.Run(fmt.Sprintf("%#04x", uint16(tc.flags)), func(t *testing.T) {
			if got := tc.flags.Type(); got != tc.typ {
				t.Errorf("Type() = %d; want %d", got, tc.typ)
			}
			if got := tc.flags.Layout(); got != tc.layout {
				t.Errorf("Layout() = %d; want %d", got, tc.layout)
			}
			if got := tc.flags.Compressed(); got != tc.compressed {
				t.Errorf("Compressed() = %v; want %v", got, tc.compressed)
			}
			if got := tc.flags.String(); got != tc.str {
				t.Errorf("String() = %q; want %q", got, tc.str)
			}
		})
	}
}

func TestNormalize(t *testing.T) {
	for _, tc := range []struct {
		name  string
		flags Flags
		raw   []byte
		want  []byte
	}{
		{"rgba", 0xC4, []byte{1, 2, 3, 4, 5, 6, 7, 8}, []byte{1, 2, 3, 4, 5, 6, 7, 8}},
		{"rgb", 0xC3, []byte{1, 2, 3, 4, 5, 6}, []byte{1, 2, 3, 0xFF, 4, 5, 6, 0xFF}},
		{"alpha", 0xC0, []byte{0x80, 0x10}, []byte{0, 0, 0, 0x80, 0, 0, 0, 0x10}},
		{"luminance", 0xC1, []byte{0x80, 0x10}, []byte{0x80, 0x80, 0x80, 0xFF, 0x10, 0x10, 0x10, 0xFF}},
		{"luminance alpha", 0xC2, []byte{0x80, 0x40, 0x10, 0x20}, []byte{0x80, 0x80, 0x80, 0x40, 0x10, 0x10, 0x10, 0x20}},
		// 0xF800 red, 0x07E0 green.
		{"rgb565", 0x00, []byte{0x00, 0xF8, 0xE0, 0x07}, []byte{0xFF, 0, 0, 0xFF, 0, 0xFF, 0, 0xFF}},
		// 0x003F blue opaque, 0xF800 red transparent.
		{"rgba5551", 0x40, []byte{0x3F, 0x00, 0x00, 0xF8}, []byte{0, 0, 0xFF, 0xFF, 0xFF, 0, 0, 0}},
		// 0x1234.
		{"rgba4444", 0x80, []byte{0x34, 0x12, 0x00, 0xF0}, []byte{0x11, 0x22, 0x33, 0x44, 0xFF, 0, 0, 0}},
	} {
		t.Run(tc.name, func(t *testing.T) {
			img, err := Normalize(tc.raw, 2, 1, tc.flags)
			if err != nil {
				t.Fatalf("Normalize: %v", err)
			}
			ttesting.AssertEqualInt(t, "width", img.Bounds().Dx(), 2)
			ttesting.AssertEqualInt(t, "height", img.Bounds().Dy(), 1)
			ttesting.AssertEqualBytes(t, "pixels", img.Pix, tc.want)
		})
	}
}

func TestNormalizeRowMajor(t *testing.T) {
	raw := []byte{
		0x10, 0x20,
		0x30, 0x40,
		0x50, 0x60,
	}
	img, err := Normalize(raw, 2, 3, 0xC1)
	if err != nil {
		t.Fatalf("Normalize: %v", err)
	}
	ttesting.AssertEqualInt(t, "top right", int(img.NRGBAAt(1, 0).R), 0x20)
	ttesting.AssertEqualInt(t, "middle left", int(img.NRGBAAt(0, 1).R), 0x30)
	ttesting.AssertEqualInt(t, "bottom right", int(img.NRGBAAt(1, 2).R), 0x60)
}

func TestNormalizeErrors(t *testing.T) {
	_, err := Normalize([]byte{1, 2, 3}, 1, 1, 0xC4)
	ttesting.AssertErrorIs(t, "short rgba", err, ErrShortData)

	_, err = Normalize(make([]byte, 64), 2, 2, 0xC5)
	ttesting.AssertErrorIs(t, "layout 5", err, ErrUnsupportedFormat)

	_, err = Normalize(make([]byte, 64), 2, 2, 0xC7)
	ttesting.AssertErrorIs(t, "layout 7", err, ErrUnsupportedFormat)

	_, err = Normalize(nil, 0, 0, 0xC4)
	if err != nil {
		t.Errorf("empty image: %v", err)
	}
}
