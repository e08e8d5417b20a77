package texb

import (
	"image"

	"badc0de.net/pkg/go-texb/pixfmt"
	"badc0de.net/pkg/go-texb/quad"
)

// TextureBank is a decoded texture bank: the atlas and every sub-image cut
// out of it. It is built in one go by a Decode function and never modified
// afterwards.
type TextureBank struct {
	name          string
	width, height int
	flags         pixfmt.Flags

	// Totals declared in the header. Nothing checks them against the
	// records.
	declaredVertices, declaredIndices int

	atlas *image.NRGBA

	// images is in record order; byName maps a name to the last image
	// recorded with it.
	images []SubImage
	byName map[string]int
}

// Name returns the bank name: the stored file name without its one-letter
// prefix and ".texb" suffix.
func (b *TextureBank) Name() string { return b.name }

// Width returns the atlas width.
func (b *TextureBank) Width() int { return b.width }

// Height returns the atlas height.
func (b *TextureBank) Height() int { return b.height }

func (b *TextureBank) Flags() pixfmt.Flags { return b.flags }

func (b *TextureBank) DeclaredVertexCount() int { return b.declaredVertices }
func (b *TextureBank) DeclaredIndexCount() int  { return b.declaredIndices }

// Atlas returns the decoded atlas. It must not be modified.
func (b *TextureBank) Atlas() *image.NRGBA { return b.atlas }

// Len returns the number of sub-images.
func (b *TextureBank) Len() int { return len(b.images) }

// Image returns the i-th sub-image in record order.
func (b *TextureBank) Image(i int) *SubImage { return &b.images[i] }

// Images returns all sub-images in record order.
func (b *TextureBank) Images() []*SubImage {
	out := make([]*SubImage, len(b.images))
	for i := range b.images {
		out[i] = &b.images[i]
	}
	return out
}

// Lookup finds a sub-image by name. Names are not guaranteed to be unique;
// the last record with a given name wins.
func (b *TextureBank) Lookup(name string) (*SubImage, bool) {
	i, ok := b.byName[name]
	if !ok {
		return nil, false
	}
	return &b.images[i], true
}

// SubImage is one named image of a bank, reconstructed from the atlas.
type SubImage struct {
	bank  *TextureBank
	index int

	name     string
	declared image.Point
	corner   image.Point
	quad     quad.Quad
	attrs    []Attribute
	indices  []byte

	img *image.NRGBA
}

// Name returns the image name without its one-letter prefix and ".png.imag"
// suffix.
func (s *SubImage) Name() string { return s.name }

// Index returns the position of the image in its bank.
func (s *SubImage) Index() int { return s.index }

// Bank returns the bank the image belongs to.
func (s *SubImage) Bank() *TextureBank { return s.bank }

// Width returns the width of the reconstructed image. It is the declared
// width, grown if necessary to fit the quad.
func (s *SubImage) Width() int { return s.img.Rect.Dx() }

// Height is the counterpart of Width.
func (s *SubImage) Height() int { return s.img.Rect.Dy() }

// DeclaredSize returns the size stored in the record.
func (s *SubImage) DeclaredSize() image.Point { return s.declared }

// Corner returns the corner position stored in the record. It does not take
// part in reconstruction.
func (s *SubImage) Corner() image.Point { return s.corner }

func (s *SubImage) Quad() quad.Quad { return s.quad }

func (s *SubImage) Attributes() []Attribute { return s.attrs }

// Indices returns the raw index buffer that follows the vertices in the
// record.
func (s *SubImage) Indices() []byte { return s.indices }

// Image returns the reconstructed image. It must not be modified.
func (s *SubImage) Image() *image.NRGBA { return s.img }

// Attribute returns the last attribute stored with key.
func (s *SubImage) Attribute(key byte) (Attribute, bool) {
	for i := len(s.attrs) - 1; i >= 0; i-- {
		if s.attrs[i].Key == key {
			return s.attrs[i], true
		}
	}
	return Attribute{}, false
}
