package main

import (
	"image"

	"github.com/golang/glog"
	"github.com/nfnt/resize"

	"badc0de.net/pkg/go-texb/imageprint"
)

func out(p *imageprint.Printer, img image.Image) {
	if *downsize {
		img = fit(p.Mode, img)
	}
	if err := p.Print(img); err != nil {
		glog.Errorf("printing: %v", err)
	}
}

// fit shrinks img to the terminal. Terminals that draw real images are
// limited by their pixel size; the others need two columns per pixel.
func fit(m imageprint.Mode, img image.Image) image.Image {
	termSize, err := GetTermSize()
	if err != nil {
		glog.V(1).Infof("no terminal size: %v", err)
		return img
	}
	graphics := m == imageprint.ModeRasTerm || m == imageprint.ModeITerm
	if graphics && termSize.WSXPixel != 0 && termSize.WSYPixel != 0 {
		return resize.Thumbnail(termSize.WSXPixel/2, termSize.WSYPixel/2, img, resize.Lanczos3)
	}
	if termSize.WSCol == 0 || termSize.WSRow < 2 {
		return img
	}
	return resize.Thumbnail(termSize.WSCol/2, termSize.WSRow-1, img, resize.NearestNeighbor)
}
