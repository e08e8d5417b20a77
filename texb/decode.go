package texb

// This file contains code directly related to parsing the texture bank
// container: the header and the per-image records.

import (
	"bytes"
	"image"
	"io"
	"strings"

	"github.com/golang/glog"
	"github.com/pkg/errors"

	"badc0de.net/pkg/go-texb/pixfmt"
	"badc0de.net/pkg/go-texb/quad"
)

const (
	magic = "TEXB"

	bankSuffix  = ".texb"
	imageSuffix = ".png.imag"

	// attributesFollow in place of the subimage count announces an
	// attribute list, after which the real count is stored.
	attributesFollow = 0xFFFF

	quadVertices = 4
	vertexSize   = 4 * 4
)

type header struct {
	Name          string
	Width, Height uint16
	Flags         pixfmt.Flags

	VertexCount, IndexCount, ImageCount uint16
}

// record is one sub-image record as stored in the file.
type record struct {
	Name       string
	Attributes []Attribute

	Subimages   uint16
	VertexCount uint8
	IndexBytes  uint8

	Width, Height    uint16
	CornerX, CornerY uint16

	Vertices [quadVertices][4]Fixed // X, Y, U, V
	Indices  []byte
}

// DecodeAll reads r to the end and decodes it as a texture bank.
func DecodeAll(r io.Reader) (*TextureBank, error) {
	buf := bytes.Buffer{}
	if _, err := buf.ReadFrom(r); err != nil {
		return nil, errors.Wrap(err, "texb: reading texture bank")
	}
	return DecodeBytes(buf.Bytes())
}

// DecodeBytes decodes a complete texture bank held in memory.
//
// Either the whole bank is decoded or an error is returned; no partially
// decoded bank is ever returned. The returned bank shares no memory with buf.
func DecodeBytes(buf []byte) (*TextureBank, error) {
	if !bytes.HasPrefix(buf, []byte(magic)) {
		return nil, errors.Wrapf(ErrInvalidFormat, "bad magic: got %q, want %q", buf[:min(len(buf), len(magic))], magic)
	}
	r := &reader{buf: buf, off: len(magic)}

	h, err := readHeader(r)
	if err != nil {
		return nil, errors.Wrap(err, "texb: could not read header")
	}
	if err := h.Flags.Validate(); err != nil {
		return nil, errors.Wrapf(ErrUnsupported, "texb: %v", err)
	}

	records := make([]record, h.ImageCount)
	vertices, indices := 0, 0
	for i := range records {
		if err := readRecord(r, &records[i]); err != nil {
			return nil, errors.Wrapf(err, "texb: image record %d of %d", i, h.ImageCount)
		}
		vertices += int(records[i].VertexCount)
		indices += int(records[i].IndexBytes)
	}
	if vertices != int(h.VertexCount) || indices != int(h.IndexCount) {
		glog.V(1).Infof("texb: %q declares %d vertices and %d indices; records hold %d and %d bytes", h.Name, h.VertexCount, h.IndexCount, vertices, indices)
	}

	raw, err := payload(r.rest(), h)
	if err != nil {
		return nil, errors.Wrap(err, "texb: atlas payload")
	}
	atlas, err := pixfmt.Normalize(raw, int(h.Width), int(h.Height), h.Flags)
	if err != nil {
		switch {
		case errors.Is(err, pixfmt.ErrShortData):
			return nil, errors.Wrapf(ErrCorruptData, "texb: atlas: %v", err)
		default:
			return nil, errors.Wrapf(ErrUnsupported, "texb: atlas: %v", err)
		}
	}

	bank := newBank(h, atlas, records)
	glog.V(2).Infof("texb: decoded %q: %dx%d %v atlas, %d images", bank.name, bank.width, bank.height, bank.flags, len(bank.images))
	return bank, nil
}

// readHeader reads everything between the magic and the first record.
func readHeader(r *reader) (header, error) {
	var h header
	var err error

	// Size of the rest of the file; only DecodeFile uses it.
	if err = r.skip(4, "size"); err != nil {
		return h, err
	}
	name, err := r.str("name")
	if err != nil {
		return h, err
	}
	h.Name = trimName(name, bankSuffix)

	for _, f := range []struct {
		p    *uint16
		what string
	}{
		{&h.Width, "atlas width"},
		{&h.Height, "atlas height"},
		{(*uint16)(&h.Flags), "flags"},
		{&h.VertexCount, "vertex count"},
		{&h.IndexCount, "index count"},
		{&h.ImageCount, "image count"},
	} {
		if *f.p, err = r.u16(f.what); err != nil {
			return h, err
		}
	}
	return h, nil
}

// readRecord reads one sub-image record.
func readRecord(r *reader, rec *record) error {
	// Record tag and size.
	if err := r.skip(6, "record tag"); err != nil {
		return err
	}
	name, err := r.str("image name")
	if err != nil {
		return err
	}
	rec.Name = trimName(name, imageSuffix)

	if rec.Subimages, err = r.u16("subimage count"); err != nil {
		return err
	}
	if rec.Subimages == attributesFollow {
		if rec.Attributes, err = readAttributes(r); err != nil {
			return errors.Wrapf(err, "image %q", rec.Name)
		}
		if rec.Subimages, err = r.u16("subimage count"); err != nil {
			return err
		}
	}
	if rec.Subimages > 1 {
		return errors.Wrapf(ErrUnsupported, "image %q is made of %d quads; only one is supported", rec.Name, rec.Subimages)
	}

	if rec.VertexCount, err = r.u8("vertex count"); err != nil {
		return err
	}
	if rec.IndexBytes, err = r.u8("index count"); err != nil {
		return err
	}
	if rec.VertexCount != quadVertices {
		return errors.Wrapf(ErrUnsupported, "image %q has %d vertices; want %d", rec.Name, rec.VertexCount, quadVertices)
	}

	for _, p := range []*uint16{&rec.Width, &rec.Height, &rec.CornerX, &rec.CornerY} {
		if *p, err = r.u16("image geometry"); err != nil {
			return err
		}
	}

	if err := r.need(int(rec.VertexCount)*vertexSize+int(rec.IndexBytes), "vertices and indices"); err != nil {
		return err
	}
	for i := range rec.Vertices {
		for j := range rec.Vertices[i] {
			v, err := r.u32("vertex")
			if err != nil {
				return err
			}
			rec.Vertices[i][j] = Fixed(v)
		}
	}
	rec.Indices, err = r.bytes(int(rec.IndexBytes), "indices")
	return err
}

// trimName drops the one-letter prefix that stored names carry and
// everything from suffix on.
func trimName(s, suffix string) string {
	if s == "" {
		return ""
	}
	s = s[1:]
	if i := strings.Index(s, suffix); i >= 0 {
		s = s[:i]
	}
	return s
}

// newBank assembles a bank from its parsed parts and reconstructs every
// sub-image.
func newBank(h header, atlas *image.NRGBA, records []record) *TextureBank {
	b := &TextureBank{
		name:             h.Name,
		width:            int(h.Width),
		height:           int(h.Height),
		flags:            h.Flags,
		declaredVertices: int(h.VertexCount),
		declaredIndices:  int(h.IndexCount),
		atlas:            atlas,
		images:           make([]SubImage, len(records)),
		byName:           make(map[string]int, len(records)),
	}
	for i := range records {
		rec := &records[i]
		q := vertexQuad(rec.Vertices)
		b.images[i] = SubImage{
			bank:     b,
			index:    i,
			name:     rec.Name,
			declared: image.Pt(int(rec.Width), int(rec.Height)),
			corner:   image.Pt(int(rec.CornerX), int(rec.CornerY)),
			quad:     q,
			attrs:    cloneAttributes(rec.Attributes),
			indices:  append([]byte(nil), rec.Indices...),
			img:      resample(atlas, q, int(rec.Width), int(rec.Height)),
		}
		b.byName[rec.Name] = i
	}
	return b
}

// vertexQuad converts the raw vertices of a record into a quad.
func vertexQuad(v [quadVertices][4]Fixed) quad.Quad {
	var q quad.Quad
	for i := range v {
		q[i] = quad.Vertex{
			Pos: quad.Point{X: v[i][0].Int(), Y: v[i][1].Int()},
			UV:  quad.UV{U: v[i][2].UV(), V: v[i][3].UV()},
		}
	}
	return q
}

func cloneAttributes(attrs []Attribute) []Attribute {
	if attrs == nil {
		return nil
	}
	out := make([]Attribute, len(attrs))
	for i, a := range attrs {
		a.Data = append([]byte(nil), a.Data...)
		out[i] = a
	}
	return out
}
