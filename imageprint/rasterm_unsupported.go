//go:build !go1.13 || windows
// +build !go1.13 windows

package imageprint

import (
	"image"
	"io"
)

func DetectMode() Mode {
	return Mode24Bit
}

func printRasTerm(w io.Writer, i image.Image) error {
	return ErrNoGraphics
}
