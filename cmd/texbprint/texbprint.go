// Command texbprint prints texture bank images on the terminal.
//
//	texbprint -texb_path=unit.texb -list
//	texbprint -texb_path=unit.texb -image=button_ok
//	texbprint -texb_path=unit.texb -atlas -mode=rasterm
package main

import (
	"flag"
	"fmt"
	"os"

	"badc0de.net/pkg/flagutil/v1"
	"github.com/common-nighthawk/go-figure"
	"github.com/golang/glog"

	"badc0de.net/pkg/go-texb/imageprint"
	"badc0de.net/pkg/go-texb/paths"
	"badc0de.net/pkg/go-texb/texb"
)

var (
	imageName = flag.String("image", "", "name of the image to print")
	imageIdx  = flag.Int("index", -1, "index of the image to print")
	atlas     = flag.Bool("atlas", false, "whether to print the whole atlas")
	list      = flag.Bool("list", false, "whether to list the images in the bank instead of printing them")
	mode      = flag.String("mode", "auto", "how to print: auto, 24bit, 256color, nocolor, iterm or rasterm")
	blanks    = flag.Bool("blanks", true, "whether to just use colored blanks instead of some bad ascii art")
	checker   = flag.Bool("checker", true, "whether to draw transparent pixels over a checkerboard")
	downsize  = flag.Bool("downsize", true, "whether to shrink images that do not fit the terminal")
	banner    = flag.Bool("banner", false, "whether to print the bank name in large letters first")

	texbPath string
)

func setupFilePathFlags() {
	paths.SetupFilePathFlag("default.texb", "texb_path", &texbPath)
}

func listImages(bank *texb.TextureBank) {
	fmt.Printf("%s: %dx%d %v, %d images\n", bank.Name(), bank.Width(), bank.Height(), bank.Flags(), bank.Len())
	for _, img := range bank.Images() {
		fmt.Printf("%4d %-32s %4dx%-4d at %d,%d", img.Index(), img.Name(), img.Width(), img.Height(), img.Corner().X, img.Corner().Y)
		for _, a := range img.Attributes() {
			switch a.Type {
			case texb.AttrInt:
				fmt.Printf(" %d=%d", a.Key, a.Int())
			case texb.AttrFloat:
				fmt.Printf(" %d=%g", a.Key, a.Float())
			default:
				fmt.Printf(" %d=%q", a.Key, a.Text())
			}
		}
		fmt.Printf("\n")
	}
}

func main() {
	setupFilePathFlags()
	flagutil.Parse()
	flag.Set("logtostderr", "true")

	if texbPath == "" && flag.NArg() > 0 {
		texbPath = paths.Find(flag.Arg(0))
		if texbPath == "" {
			texbPath = flag.Arg(0)
		}
	}
	if texbPath == "" {
		glog.Exitf("no texture bank given; pass -texb_path or set $%s", paths.EnvVar)
	}

	bank, err := texb.DecodeFile(texbPath)
	if err != nil {
		glog.Exitf("decoding %s: %v", texbPath, err)
	}
	glog.V(1).Infof("%s: %d images", texbPath, bank.Len())

	if *banner {
		figure.NewFigure(bank.Name(), "", false).Print()
	}

	if *list {
		listImages(bank)
		return
	}

	m, err := imageprint.ParseMode(*mode)
	if err != nil {
		glog.Exit(err)
	}
	p := &imageprint.Printer{W: os.Stdout, Mode: m, Blanks: *blanks, Checker: *checker}

	switch {
	case *atlas:
		p.Name = bank.Name() + ".png"
		out(p, bank.Atlas())
	case *imageName != "":
		img, ok := bank.Lookup(*imageName)
		if !ok {
			glog.Exitf("no image %q in %s", *imageName, bank.Name())
		}
		p.Name = img.Name() + ".png"
		out(p, img.Image())
	case *imageIdx >= 0:
		if *imageIdx >= bank.Len() {
			glog.Exitf("image index %d out of range; %s has %d images", *imageIdx, bank.Name(), bank.Len())
		}
		img := bank.Image(*imageIdx)
		p.Name = img.Name() + ".png"
		out(p, img.Image())
	default:
		for _, img := range bank.Images() {
			fmt.Printf("%d: %s\n", img.Index(), img.Name())
			p.Name = img.Name() + ".png"
			out(p, img.Image())
		}
	}
}
