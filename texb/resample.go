package texb

import (
	"image"

	"badc0de.net/pkg/go-texb/quad"
)

// resample reconstructs a sub-image from the atlas.
//
// The image is width x height, grown if needed so the quad's bounding box
// fits. Every raster point of the bounding box is mapped back to a texture
// coordinate through the quad and filled with the nearest atlas pixel; the
// rest of the image stays transparent black.
//
// Rows are laid out with the bounding box width as stride, even when the
// declared width is larger.
func resample(atlas *image.NRGBA, q quad.Quad, width, height int) *image.NRGBA {
	bounds := q.Bounds()
	if bounds.Dx() > width {
		width = bounds.Dx()
	}
	if bounds.Dy() > height {
		height = bounds.Dy()
	}
	img := image.NewNRGBA(image.Rect(0, 0, width, height))

	aw, ah := atlas.Rect.Dx(), atlas.Rect.Dy()
	if aw == 0 || ah == 0 {
		return img
	}
	stride := bounds.Dx()
	for y := bounds.Min.Y; y < bounds.Max.Y; y++ {
		for x := bounds.Min.X; x < bounds.Max.X; x++ {
			uv := q.UVAt(float64(x), float64(y))
			sx := clamp(int(uv.U*float64(aw)+0.5), 0, aw-1)
			sy := clamp(int(uv.V*float64(ah)+0.5), 0, ah-1)

			src := atlas.PixOffset(atlas.Rect.Min.X+sx, atlas.Rect.Min.Y+sy)
			dst := ((x - bounds.Min.X) + (y-bounds.Min.Y)*stride) * 4
			copy(img.Pix[dst:dst+4], atlas.Pix[src:src+4])
		}
	}
	return img
}

func clamp(v, lo, hi int) int {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
