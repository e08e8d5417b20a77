// Command texbextract writes the images of texture banks to image files.
//
// Every bank named on the command line gets its own directory below
// -out_dir, holding one file per sub-image and a manifest.json:
//
//	texbextract -out_dir=out -format=webp -atlas unit.texb title.texb
//
// A directory argument extracts every .texb file directly inside it.
package main

import (
	"context"
	"flag"
	"path/filepath"
	"runtime"
	"strings"

	"badc0de.net/pkg/flagutil/v1"
	"github.com/golang/glog"
	"golang.org/x/sync/errgroup"

	"badc0de.net/pkg/go-texb/export"
	"badc0de.net/pkg/go-texb/paths"
	"badc0de.net/pkg/go-texb/texb"
)

var (
	outDir    = flag.String("out_dir", ".", "directory to write the extracted banks into")
	format    = flag.String("format", "png", "output image format: png, webp, tga or gif")
	scale     = flag.Int("scale", 1, "integer factor to enlarge every image by")
	withAtlas = flag.Bool("atlas", false, "whether to also write the whole atlas")
	jobs      = flag.Int("jobs", runtime.NumCPU(), "how many banks to decode at once")
	keepGoing = flag.Bool("keep_going", false, "whether to continue with the other banks after one fails")
)

// expand resolves the command line into a list of bank files. Directories
// expand to the banks inside them; other arguments are looked up with
// paths.Find when they do not exist as given.
func expand(args []string) []string {
	var files []string
	for _, arg := range args {
		names, err := paths.List(arg)
		if err == nil {
			for _, n := range names {
				files = append(files, filepath.Join(arg, n))
			}
			continue
		}
		if p := paths.Find(arg); p != "" {
			arg = p
		}
		files = append(files, arg)
	}
	return files
}

// bankDir names the output directory of a bank file.
func bankDir(path string) string {
	base := filepath.Base(path)
	return filepath.Join(*outDir, export.SafeName(strings.TrimSuffix(base, filepath.Ext(base))))
}

func extract(ctx context.Context, files []string, opts export.Options) error {
	g, ctx := errgroup.WithContext(ctx)
	sem := make(chan struct{}, *jobs)
	for _, path := range files {
		path := path
		select {
		case sem <- struct{}{}:
		case <-ctx.Done():
			return g.Wait()
		}
		g.Go(func() error {
			defer func() { <-sem }()
			bank, err := texb.DecodeFile(path)
			if err == nil {
				var m *export.Manifest
				m, err = export.WriteBank(bankDir(path), bank, opts)
				if err == nil {
					glog.Infof("%s: wrote %d images to %s", path, len(m.Images), bankDir(path))
					return nil
				}
			}
			if *keepGoing {
				glog.Errorf("%s: %v", path, err)
				return nil
			}
			return err
		})
	}
	return g.Wait()
}

func main() {
	flagutil.Parse()
	flag.Set("logtostderr", "true")

	if flag.NArg() == 0 {
		glog.Exit("usage: texbextract [flags] bank.texb|dir ...")
	}
	f, err := export.ParseFormat(*format)
	if err != nil {
		glog.Exit(err)
	}
	if *jobs < 1 {
		*jobs = 1
	}
	files := expand(flag.Args())
	if err := extract(context.Background(), files, export.Options{Format: f, Scale: *scale, Atlas: *withAtlas}); err != nil {
		glog.Exit(err)
	}
}
