package export

import (
	"bufio"
	"encoding/json"
	"image"
	"os"
	"path/filepath"

	"github.com/golang/glog"
	"github.com/pkg/errors"

	"badc0de.net/pkg/go-texb/texb"
)

// ManifestFile is the name of the manifest WriteBank writes next to the
// images.
const ManifestFile = "manifest.json"

// Options control WriteBank.
type Options struct {
	Format Format
	// Scale enlarges every written image by an integer factor.
	Scale int
	// Atlas also writes the whole atlas as "atlas" plus the format's
	// extension.
	Atlas bool
}

// WriteBank writes every sub-image of bank into dir, which is created if
// needed, followed by a JSON manifest describing them.
func WriteBank(dir string, bank *texb.TextureBank, opts Options) (*Manifest, error) {
	if err := os.MkdirAll(dir, 0755); err != nil {
		return nil, errors.Wrapf(err, "export: creating %s", dir)
	}
	m := NewManifest(bank, opts.Format)
	for i, img := range bank.Images() {
		if err := WriteImage(filepath.Join(dir, m.Images[i].File), Scale(img.Image(), opts.Scale), opts.Format); err != nil {
			return nil, errors.Wrapf(err, "image %d (%q)", i, img.Name())
		}
	}
	if opts.Atlas {
		m.Atlas = "atlas" + opts.Format.Ext()
		if err := WriteImage(filepath.Join(dir, m.Atlas), Scale(bank.Atlas(), opts.Scale), opts.Format); err != nil {
			return nil, errors.Wrap(err, "atlas")
		}
	}

	f, err := os.Create(filepath.Join(dir, ManifestFile))
	if err != nil {
		return nil, errors.Wrap(err, "export: creating manifest")
	}
	defer f.Close()
	enc := json.NewEncoder(f)
	enc.SetIndent("", "  ")
	if err := enc.Encode(m); err != nil {
		return nil, errors.Wrap(err, "export: writing manifest")
	}
	glog.V(1).Infof("export: wrote %d images of %q to %s", len(m.Images), bank.Name(), dir)
	return m, errors.Wrap(f.Close(), "export: closing manifest")
}

// WriteImage encodes img into a new file at path.
func WriteImage(path string, img image.Image, f Format) error {
	out, err := os.Create(path)
	if err != nil {
		return errors.Wrap(err, "export: creating image file")
	}
	defer out.Close()
	w := bufio.NewWriter(out)
	if err := Encode(w, img, f); err != nil {
		return errors.Wrapf(err, "export: %s", path)
	}
	if err := w.Flush(); err != nil {
		return errors.Wrapf(err, "export: writing %s", path)
	}
	return errors.Wrapf(out.Close(), "export: closing %s", path)
}
