//go:build go1.13 && !windows
// +build go1.13,!windows

package imageprint

import (
	"fmt"
	"image"
	"io"

	"github.com/BourgeoisBear/rasterm"
	"github.com/andybons/gogif"
)

// DetectMode returns ModeRasTerm when the terminal speaks the Kitty or iTerm
// image protocols, and Mode24Bit otherwise.
func DetectMode() Mode {
	if rasterm.IsTermKitty() || rasterm.IsTermItermWez() {
		return ModeRasTerm
	}
	return Mode24Bit
}

// printRasTerm draws an image using the RasTerm library.
//
// This should enable drawing in Kitty terminal.
func printRasTerm(w io.Writer, i image.Image) error {
	if rasterm.IsTermKitty() {
		rasterm.Settings{}.KittyWriteImage(w, i)
		fmt.Fprintf(w, "\n")
		return nil
	}
	if rasterm.IsTermItermWez() {
		rasterm.Settings{}.ItermWriteImage(w, i)
		fmt.Fprintf(w, "\n")
		return nil
	}
	if capable, err := rasterm.IsSixelCapable(); capable && err == nil {
		palettedImage := image.NewPaletted(i.Bounds(), nil)
		quantizer := gogif.MedianCutQuantizer{NumColor: 64}
		quantizer.Quantize(palettedImage, i.Bounds(), i, image.Point{})

		rasterm.Settings{}.SixelWriteImage(w, palettedImage)
		fmt.Fprintf(w, "\n")
		return nil
	}
	return ErrNoGraphics
}
