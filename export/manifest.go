package export

import (
	"fmt"
	"strings"
	"unicode"

	"badc0de.net/pkg/go-texb/texb"
)

// Manifest describes a texture bank and the files its images were written
// to.
type Manifest struct {
	Bank     string          `json:"bank"`
	Width    int             `json:"width"`
	Height   int             `json:"height"`
	Format   string          `json:"pixel_format"`
	Vertices int             `json:"declared_vertices"`
	Indices  int             `json:"declared_indices"`
	Atlas    string          `json:"atlas,omitempty"`
	Images   []ManifestImage `json:"images"`
}

type ManifestImage struct {
	Index          int                 `json:"index"`
	Name           string              `json:"name"`
	File           string              `json:"file"`
	Width          int                 `json:"width"`
	Height         int                 `json:"height"`
	DeclaredWidth  int                 `json:"declared_width"`
	DeclaredHeight int                 `json:"declared_height"`
	CornerX        int                 `json:"corner_x"`
	CornerY        int                 `json:"corner_y"`
	Vertices       []ManifestVertex    `json:"vertices"`
	Indices        []int               `json:"indices"`
	Attributes     []ManifestAttribute `json:"attributes,omitempty"`
}

type ManifestVertex struct {
	X int     `json:"x"`
	Y int     `json:"y"`
	U float64 `json:"u"`
	V float64 `json:"v"`
}

type ManifestAttribute struct {
	Key   int         `json:"key"`
	Type  string      `json:"type"`
	Value interface{} `json:"value"`
}

// NewManifest describes bank. File names are derived from image names with
// FileNames, using extension f.
func NewManifest(bank *texb.TextureBank, f Format) *Manifest {
	m := &Manifest{
		Bank:     bank.Name(),
		Width:    bank.Width(),
		Height:   bank.Height(),
		Format:   bank.Flags().String(),
		Vertices: bank.DeclaredVertexCount(),
		Indices:  bank.DeclaredIndexCount(),
		Images:   make([]ManifestImage, 0, bank.Len()),
	}
	files := FileNames(bank, f)
	for i, img := range bank.Images() {
		mi := ManifestImage{
			Index:          img.Index(),
			Name:           img.Name(),
			File:           files[i],
			Width:          img.Width(),
			Height:         img.Height(),
			DeclaredWidth:  img.DeclaredSize().X,
			DeclaredHeight: img.DeclaredSize().Y,
			CornerX:        img.Corner().X,
			CornerY:        img.Corner().Y,
			Indices:        make([]int, len(img.Indices())),
		}
		for _, v := range img.Quad() {
			mi.Vertices = append(mi.Vertices, ManifestVertex{X: v.Pos.X, Y: v.Pos.Y, U: v.UV.U, V: v.UV.V})
		}
		for j, idx := range img.Indices() {
			mi.Indices[j] = int(idx)
		}
		for _, a := range img.Attributes() {
			ma := ManifestAttribute{Key: int(a.Key), Type: a.Type.String()}
			switch a.Type {
			case texb.AttrInt:
				ma.Value = a.Int()
			case texb.AttrFloat:
				ma.Value = a.Float()
			default:
				ma.Value = a.Text()
			}
			mi.Attributes = append(mi.Attributes, ma)
		}
		m.Images = append(m.Images, mi)
	}
	return m
}

// SafeName turns an image name into something usable as a file name: path
// separators, control characters and other troublesome runes become '_'.
func SafeName(name string) string {
	s := strings.Map(func(r rune) rune {
		switch {
		case r == '/' || r == '\\' || r == ':' || r == '*' || r == '?' || r == '"' || r == '<' || r == '>' || r == '|':
			return '_'
		case !unicode.IsPrint(r) || unicode.IsSpace(r) && r != ' ':
			return '_'
		}
		return r
	}, name)
	s = strings.Trim(s, " .")
	if s == "" {
		return "_"
	}
	return s
}

// FileNames returns one distinct file name per image of bank, in image order.
// Images whose safe names collide get their index appended.
func FileNames(bank *texb.TextureBank, f Format) []string {
	seen := make(map[string]bool, bank.Len())
	names := make([]string, bank.Len())
	for i, img := range bank.Images() {
		base := SafeName(img.Name())
		name := base + f.Ext()
		if seen[strings.ToLower(name)] {
			name = fmt.Sprintf("%s-%d%s", base, img.Index(), f.Ext())
		}
		seen[strings.ToLower(name)] = true
		names[i] = name
	}
	return names
}
