package export

import (
	"bytes"
	"encoding/json"
	"image"
	"image/color"
	"image/gif"
	"image/png"
	"os"
	"path/filepath"
	"testing"

	"github.com/ftrvxmtrx/tga"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"badc0de.net/pkg/go-texb/texb"
	"badc0de.net/pkg/go-texb/texb/texbtest"
)

func sample() *image.NRGBA {
	img := image.NewNRGBA(image.Rect(0, 0, 2, 2))
	copy(img.Pix, texbtest.FullAtlas().Payload)
	return img
}

func TestParseFormat(t *testing.T) {
	for _, tc := range []struct {
		in   string
		want Format
	}{
		{"png", PNG}, {".PNG", PNG}, {"webp", WebP}, {"tga", TGA}, {".gif", GIF},
	} {
		got, err := ParseFormat(tc.in)
		require.NoError(t, err, tc.in)
		assert.Equal(t, tc.want, got, tc.in)
	}
	_, err := ParseFormat("bmp")
	assert.Error(t, err)

	assert.Equal(t, ".webp", WebP.Ext())
	assert.Equal(t, "image/gif", GIF.ContentType())
	assert.Equal(t, "Format(9)", Format(9).String())
}

func TestEncodePNG(t *testing.T) {
	b := &bytes.Buffer{}
	require.NoError(t, Encode(b, sample(), PNG))
	img, err := png.Decode(b)
	require.NoError(t, err)
	for y := 0; y < 2; y++ {
		for x := 0; x < 2; x++ {
			assert.Equal(t, sample().NRGBAAt(x, y), color.NRGBAModel.Convert(img.At(x, y)), "pixel %d,%d", x, y)
		}
	}
}

func TestEncodeTGA(t *testing.T) {
	b := &bytes.Buffer{}
	require.NoError(t, Encode(b, sample(), TGA))
	img, err := tga.Decode(b)
	require.NoError(t, err)
	assert.Equal(t, image.Rect(0, 0, 2, 2), img.Bounds())
	r, g, bl, a := img.At(0, 0).RGBA()
	assert.Equal(t, []uint32{0xFFFF, 0, 0, 0xFFFF}, []uint32{r, g, bl, a})
}

func TestEncodeWebP(t *testing.T) {
	b := &bytes.Buffer{}
	require.NoError(t, Encode(b, sample(), WebP))
	require.True(t, b.Len() > 12)
	assert.Equal(t, "RIFF", string(b.Bytes()[0:4]))
	assert.Equal(t, "WEBP", string(b.Bytes()[8:12]))
}

func TestEncodeGIF(t *testing.T) {
	src := image.NewNRGBA(image.Rect(0, 0, 2, 1))
	src.SetNRGBA(0, 0, color.NRGBA{0xFF, 0, 0, 0xFF})

	b := &bytes.Buffer{}
	require.NoError(t, Encode(b, src, GIF))
	img, err := gif.Decode(b)
	require.NoError(t, err)
	_, _, _, a := img.At(1, 0).RGBA()
	assert.Equal(t, uint32(0), a, "transparent pixel stays transparent")
	r, _, _, a := img.At(0, 0).RGBA()
	assert.Equal(t, uint32(0xFFFF), a)
	assert.NotEqual(t, uint32(0), r)
}

func TestEncodeUnknown(t *testing.T) {
	assert.Error(t, Encode(&bytes.Buffer{}, sample(), Format(-1)))
}

func TestScale(t *testing.T) {
	src := sample()
	assert.Equal(t, image.Image(src), Scale(src, 1))
	assert.Equal(t, image.Image(src), Scale(src, 0))

	big := Scale(src, 3).(*image.NRGBA)
	assert.Equal(t, image.Rect(0, 0, 6, 6), big.Bounds())
	for y := 0; y < 6; y++ {
		for x := 0; x < 6; x++ {
			assert.Equal(t, src.NRGBAAt(x/3, y/3), big.NRGBAAt(x, y), "pixel %d,%d", x, y)
		}
	}
}

func TestSafeName(t *testing.T) {
	for in, want := range map[string]string{
		"whole":        "whole",
		"../../etc":    "_.._etc",
		"a/b\\c":       "a_b_c",
		"":             "_",
		"..":           "_",
		"tab\there":    "tab_here",
		"with space":   "with space",
		"ステージ":         "ステージ",
		"colon:star*?": "colon_star__",
	} {
		assert.Equal(t, want, SafeName(in), "SafeName(%q)", in)
	}
}

func twoImageBank(t *testing.T) *texb.TextureBank {
	tb := texbtest.FullAtlas()
	second := tb.Images[0]
	second.Width, second.Height = 1, 1
	second.Verts = texbtest.CropVerts(1, 1, 2, 2, 2, 2)
	second.Attrs = []byte{0, 2, 7, byte(texb.AttrInt), 0, 0, 0, 42, 8, byte(texb.AttrString), 0, 2, 'h', 'i'}
	tb.Images = append(tb.Images, second)
	bank, err := texb.DecodeBytes(tb.Bytes())
	require.NoError(t, err)
	return bank
}

func TestFileNames(t *testing.T) {
	bank := twoImageBank(t)
	assert.Equal(t, []string{"whole.png", "whole-1.png"}, FileNames(bank, PNG))
}

func TestNewManifest(t *testing.T) {
	m := NewManifest(twoImageBank(t), PNG)
	assert.Equal(t, "unit_test", m.Bank)
	assert.Equal(t, "RGBA8888", m.Format)
	require.Len(t, m.Images, 2)

	first := m.Images[0]
	assert.Equal(t, 2, first.Width)
	assert.Equal(t, []int{0, 1, 2, 0, 2, 3}, first.Indices)
	assert.Equal(t, ManifestVertex{X: 2, Y: 2, U: 1, V: 1}, first.Vertices[2])
	assert.Empty(t, first.Attributes)

	second := m.Images[1]
	assert.Equal(t, []ManifestAttribute{
		{Key: 7, Type: "int", Value: int32(42)},
		{Key: 8, Type: "string", Value: "hi"},
	}, second.Attributes)
}

func TestWriteBank(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "out")
	bank := twoImageBank(t)
	m, err := WriteBank(dir, bank, Options{Format: PNG, Scale: 2, Atlas: true})
	require.NoError(t, err)
	assert.Equal(t, "atlas.png", m.Atlas)

	for _, name := range []string{"whole.png", "whole-1.png", "atlas.png"} {
		f, err := os.Open(filepath.Join(dir, name))
		require.NoError(t, err, name)
		cfg, err := png.DecodeConfig(f)
		f.Close()
		require.NoError(t, err, name)
		want := 4
		if name == "whole-1.png" {
			want = 2 // one pixel crop, doubled
		}
		assert.Equal(t, want, cfg.Width, name)
	}

	raw, err := os.ReadFile(filepath.Join(dir, ManifestFile))
	require.NoError(t, err)
	var got Manifest
	require.NoError(t, json.Unmarshal(raw, &got))
	assert.Equal(t, "unit_test", got.Bank)
	assert.Equal(t, "whole-1.png", got.Images[1].File)
	assert.Equal(t, "atlas.png", got.Atlas)
}
