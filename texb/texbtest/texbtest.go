// Package texbtest builds texture bank files for tests.
package texbtest

import (
	"bytes"
	"encoding/binary"

	"github.com/klauspost/compress/zlib"
)

// Image describes one sub-image record for Bank.
type Image struct {
	Name string

	// Attrs, if not nil, is written as an attribute list (count included)
	// behind the 0xFFFF marker.
	Attrs     []byte
	Subimages uint16

	VertexCount      uint8 // defaults to the number of verts
	Width, Height    uint16
	CornerX, CornerY uint16
	Verts            [][4]uint32
	Indices          []byte
}

// Bank builds texture bank files for tests.
type Bank struct {
	Name          string
	Width, Height uint16
	Flags         uint16
	VertexCount   uint16
	IndexCount    uint16
	Images        []Image
	Payload       []byte
}

func putString(b *bytes.Buffer, s string) {
	binary.Write(b, binary.BigEndian, uint16(len(s)+1))
	b.WriteString(s)
	b.WriteByte(0)
}

// Bytes encodes the bank, computing the size field and record lengths.
func (tb Bank) Bytes() []byte {
	body := &bytes.Buffer{}
	put := func(v interface{}) { binary.Write(body, binary.BigEndian, v) }

	putString(body, tb.Name)
	put(tb.Width)
	put(tb.Height)
	put(tb.Flags)
	put(tb.VertexCount)
	put(tb.IndexCount)
	put(uint16(len(tb.Images)))

	for _, img := range tb.Images {
		rec := &bytes.Buffer{}
		putString(rec, img.Name)
		if img.Attrs != nil {
			binary.Write(rec, binary.BigEndian, uint16(0xFFFF))
			rec.Write(img.Attrs)
		}
		binary.Write(rec, binary.BigEndian, img.Subimages)
		vc := img.VertexCount
		if vc == 0 {
			vc = uint8(len(img.Verts))
		}
		rec.WriteByte(vc)
		rec.WriteByte(uint8(len(img.Indices)))
		binary.Write(rec, binary.BigEndian, []uint16{img.Width, img.Height, img.CornerX, img.CornerY})
		for _, v := range img.Verts {
			binary.Write(rec, binary.BigEndian, v[:])
		}
		rec.Write(img.Indices)

		body.WriteString("TIMG")
		put(uint16(rec.Len()))
		body.Write(rec.Bytes())
	}
	body.Write(tb.Payload)

	out := &bytes.Buffer{}
	out.WriteString("TEXB")
	binary.Write(out, binary.BigEndian, uint32(body.Len()))
	out.Write(body.Bytes())
	return out.Bytes()
}

// Fx encodes v as 16.16 fixed point.
func Fx(v float64) uint32 {
	return uint32(v*65536 + 0.5)
}

// RectVerts returns the four vertices of an axis-aligned quad from (x0,y0)
// to (x1,y1) textured with the atlas region (u0,v0)-(u1,v1).
func RectVerts(x0, y0, x1, y1 int, u0, v0, u1, v1 float64) [][4]uint32 {
	return [][4]uint32{
		{Fx(float64(x0)), Fx(float64(y0)), Fx(u0), Fx(v0)},
		{Fx(float64(x1)), Fx(float64(y0)), Fx(u1), Fx(v0)},
		{Fx(float64(x1)), Fx(float64(y1)), Fx(u1), Fx(v1)},
		{Fx(float64(x0)), Fx(float64(y1)), Fx(u0), Fx(v1)},
	}
}

// CropVerts returns an identity quad for the atlas region (x0,y0)-(x1,y1) of
// a w x h atlas, placed at the same raster position.
func CropVerts(x0, y0, x1, y1, w, h int) [][4]uint32 {
	return RectVerts(x0, y0, x1, y1,
		float64(x0)/float64(w), float64(y0)/float64(h),
		float64(x1)/float64(w), float64(y1)/float64(h))
}

// Gradient returns w x h RGBA pixels where every pixel is distinct.
func Gradient(w, h int) []byte {
	pix := make([]byte, 0, w*h*4)
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			pix = append(pix, uint8(x*16), uint8(y*16), uint8(x+y), 0xFF)
		}
	}
	return pix
}

func Deflate(b []byte) []byte {
	buf := &bytes.Buffer{}
	zw := zlib.NewWriter(buf)
	zw.Write(b)
	zw.Close()
	return buf.Bytes()
}

// Compressed prefixes a payload with a compression type tag.
func Compressed(kind uint32, data []byte) []byte {
	out := make([]byte, 4, 4+len(data))
	binary.BigEndian.PutUint32(out, kind)
	return append(out, data...)
}

// FullAtlas is a 2x2 RGBA bank with one image covering the whole atlas.
func FullAtlas() Bank {
	return Bank{
		Name:        "Tunit_test.texb",
		Width:       2,
		Height:      2,
		Flags:       0xC4,
		VertexCount: 4,
		IndexCount:  6,
		Images: []Image{{
			Name:      "Iwhole.png.imag",
			Subimages: 1,
			Width:     2,
			Height:    2,
			Verts:     RectVerts(0, 0, 2, 2, 0, 0, 1, 1),
			Indices:   []byte{0, 1, 2, 0, 2, 3},
		}},
		Payload: []byte{
			0xFF, 0x00, 0x00, 0xFF, 0x00, 0xFF, 0x00, 0xFF,
			0x00, 0x00, 0xFF, 0xFF, 0x10, 0x20, 0x30, 0x40,
		},
	}
}
