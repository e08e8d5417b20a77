// Package imageprint prints images on terminal. UNSUPPORTED debug package.
//
// This package has an API with no stability guarantees.
package imageprint

import (
	"bytes"
	"encoding/base64"
	"fmt"
	"image"
	ic "image/color"
	"image/png"
	"io"
	"strings"

	"github.com/gookit/color"
	"github.com/pkg/errors"
)

// Mode selects how pixels reach the terminal.
type Mode int

const (
	// Mode24Bit changes the background with 24-bit color escape sequences.
	Mode24Bit Mode = iota
	// Mode256Color leaves the escape sequences to gookit/color.
	Mode256Color
	// ModeNoColor uses no escape sequences. Only makes sense without blanks.
	ModeNoColor
	// ModeITerm sends a PNG with iTerm2's inline image escape sequence.
	//
	// https://www.iterm2.com/documentation-images.html
	ModeITerm
	// ModeRasTerm uses the RasTerm library, which knows Kitty, iTerm and
	// Sixel.
	ModeRasTerm
)

var modeNames = []string{"24bit", "256color", "nocolor", "iterm", "rasterm"}

func (m Mode) String() string {
	if m < 0 || int(m) >= len(modeNames) {
		return fmt.Sprintf("Mode(%d)", int(m))
	}
	return modeNames[m]
}

// ParseMode maps a mode name as printed by Mode.String back to a Mode. The
// name "auto" picks the best mode the current terminal advertises.
func ParseMode(s string) (Mode, error) {
	s = strings.ToLower(s)
	if s == "auto" {
		return DetectMode(), nil
	}
	for i, name := range modeNames {
		if s == name {
			return Mode(i), nil
		}
	}
	return 0, errors.Errorf("imageprint: unknown mode %q (want auto or one of %s)", s, strings.Join(modeNames, ", "))
}

// Printer draws images onto W.
type Printer struct {
	W    io.Writer
	Mode Mode

	// Blanks prints colored blanks instead of some bad ascii art.
	Blanks bool
	// Checker draws transparent pixels over a checkerboard instead of
	// leaving them empty.
	Checker bool
	// Name is the file name announced to the terminal in ModeITerm.
	Name string
}

// Print draws img using the printer's mode.
func (p *Printer) Print(img image.Image) error {
	switch p.Mode {
	case Mode24Bit, Mode256Color, ModeNoColor:
		return p.printCells(img)
	case ModeITerm:
		return p.printITerm(img)
	case ModeRasTerm:
		return printRasTerm(p.W, img)
	}
	return errors.Errorf("imageprint: unknown mode %v", p.Mode)
}

var (
	checkerLight = ic.NRGBA{0xCC, 0xCC, 0xCC, 0xFF}
	checkerDark  = ic.NRGBA{0x88, 0x88, 0x88, 0xFF}
)

// flatten composites col over the checkerboard square at (x, y).
func flatten(col ic.Color, x, y int) ic.NRGBA {
	c := ic.NRGBAModel.Convert(col).(ic.NRGBA)
	if c.A == 0xFF {
		return c
	}
	bg := checkerLight
	if (x+y)&1 != 0 {
		bg = checkerDark
	}
	mix := func(fg, bg uint8) uint8 {
		return uint8((int(fg)*int(c.A) + int(bg)*(0xFF-int(c.A)) + 0x7F) / 0xFF)
	}
	return ic.NRGBA{mix(c.R, bg.R), mix(c.G, bg.G), mix(c.B, bg.B), 0xFF}
}

func (p *Printer) glyph(c ic.NRGBA) string {
	if p.Blanks {
		return "  "
	}
	a := (int(c.R) + int(c.G) + int(c.B)) / 3
	switch {
	case a < 32:
		return ".."
	case a < 64:
		return "--"
	case a < 128:
		return "=="
	default:
		return "##"
	}
}

func (p *Printer) shade(b *bytes.Buffer, col ic.Color, x, y int) {
	c := ic.NRGBAModel.Convert(col).(ic.NRGBA)
	if p.Checker {
		c = flatten(c, x, y)
	}
	if c.A == 0 {
		if p.Mode == ModeNoColor {
			b.WriteString("  ")
		} else {
			b.WriteString("\x1b[0m  ")
		}
		return
	}
	switch p.Mode {
	case ModeNoColor:
		b.WriteString(p.glyph(c))
	case Mode24Bit:
		fmt.Fprintf(b, "\x1b[48;2;%d;%d;%dm%s\x1b[0m", c.R, c.G, c.B, p.glyph(c))
	default:
		b.WriteString(color.RGB(c.R, c.G, c.B, true).Sprint(p.glyph(c)))
	}
}

func (p *Printer) printCells(img image.Image) error {
	b := &bytes.Buffer{}
	r := img.Bounds()
	for y := r.Min.Y; y < r.Max.Y; y++ {
		for x := r.Min.X; x < r.Max.X; x++ {
			p.shade(b, img.At(x, y), x-r.Min.X, y-r.Min.Y)
		}
		if p.Mode != ModeNoColor {
			b.WriteString("\x1b[0m")
		}
		b.WriteString("\n")
	}
	_, err := p.W.Write(b.Bytes())
	return errors.Wrap(err, "imageprint: writing cells")
}

func (p *Printer) printITerm(img image.Image) error {
	fn := p.Name
	if fn == "" {
		fn = "image.png"
	}
	name := base64.StdEncoding.EncodeToString([]byte(fn))
	b := &bytes.Buffer{}
	bEnc := base64.NewEncoder(base64.StdEncoding, b)
	if err := png.Encode(bEnc, img); err != nil {
		return errors.Wrap(err, "imageprint: encoding png for iterm")
	}
	bEnc.Close()
	_, err := fmt.Fprintf(p.W, "\n\033]1337;File=name=%s;inline=1;size=%d;width=%dpx;height=%dpx:%s\a\n", name, b.Len(), img.Bounds().Dx(), img.Bounds().Dy(), b.String())
	return errors.Wrap(err, "imageprint: writing iterm sequence")
}

// ErrNoGraphics is returned in ModeRasTerm when the terminal supports none of
// the image protocols.
var ErrNoGraphics = errors.New("imageprint: terminal has no graphics protocol")
