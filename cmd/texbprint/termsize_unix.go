//go:build aix || darwin || dragonfly || freebsd || linux || netbsd || openbsd || solaris

package main

import (
	"bufio"
	"fmt"
	"os"
	"regexp"
	"strconv"

	"golang.org/x/crypto/ssh/terminal"
	"golang.org/x/sys/unix"
)

type TermSize struct {
	WSRow, WSCol       uint
	WSXPixel, WSYPixel uint
}

var kittySizeReply = regexp.MustCompile(`\[4;(\d+);(\d+)t`)

// queryPixels asks the terminal for its size in pixels with CSI 14 t.
//
// https://sw.kovidgoyal.net/kitty/graphics-protocol/#getting-the-window-size
func queryPixels(f *os.File) (width, height int, ok bool) {
	state, err := terminal.MakeRaw(int(f.Fd()))
	if err != nil {
		return 0, 0, false
	}
	defer terminal.Restore(int(f.Fd()), state)

	fmt.Fprintf(f, "\033[14t")
	// TODO: read the reply with a timeout; a terminal that ignores CSI 14 t
	// blocks here.
	reply, err := bufio.NewReader(f).ReadString('t')
	if err != nil {
		return 0, 0, false
	}
	m := kittySizeReply.FindStringSubmatch(reply)
	if len(m) != 3 {
		return 0, 0, false
	}
	height, errH := strconv.Atoi(m[1])
	width, errW := strconv.Atoi(m[2])
	return width, height, errH == nil && errW == nil
}

func GetTermSize() (TermSize, error) {
	f, err := os.OpenFile("/dev/tty", unix.O_NOCTTY|unix.O_CLOEXEC|unix.O_NDELAY|unix.O_RDWR, 0666)
	if err == nil {
		defer f.Close()
		if sz, err := unix.IoctlGetWinsize(int(f.Fd()), unix.TIOCGWINSZ); err == nil {
			ts := TermSize{WSRow: uint(sz.Row), WSCol: uint(sz.Col), WSXPixel: uint(sz.Xpixel), WSYPixel: uint(sz.Ypixel)}
			if ts.WSXPixel == 0 && ts.WSYPixel == 0 && os.Getenv("TERM") == "xterm-kitty" {
				if w, h, ok := queryPixels(f); ok {
					ts.WSXPixel, ts.WSYPixel = uint(w), uint(h)
				}
			}
			return ts, nil
		}
	}
	w, h, err := terminal.GetSize(0)
	if err != nil {
		return TermSize{}, err
	}
	return TermSize{WSRow: uint(h), WSCol: uint(w)}, nil
}
