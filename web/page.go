package web

import (
	"html/template"
	"image"

	"github.com/nfnt/resize"
	"github.com/vincent-petithory/dataurl"

	"badc0de.net/pkg/go-texb/datafiles"
	"badc0de.net/pkg/go-texb/texb"
)

// thumbnailSize bounds both dimensions of an inline thumbnail.
const thumbnailSize = 128

type bankPage struct {
	Name   string
	Bank   *texb.TextureBank
	Images []bankPageImage
}

type bankPageImage struct {
	*texb.SubImage
	Thumbnail template.URL
}

// thumbnail returns img, shrunk to fit thumbnailSize, as a PNG data URL.
func thumbnail(img image.Image) template.URL {
	if img.Bounds().Dx() > thumbnailSize || img.Bounds().Dy() > thumbnailSize {
		img = resize.Thumbnail(thumbnailSize, thumbnailSize, img, resize.NearestNeighbor)
	}
	return template.URL(dataurl.New(pngBytes(img), "image/png").String())
}

var (
	indexTemplate = template.Must(template.ParseFS(datafiles.Templates, "index.html"))
	bankTemplate  = template.Must(template.ParseFS(datafiles.Templates, "bank.html"))
)
