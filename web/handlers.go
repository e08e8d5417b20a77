package web

import (
	"bytes"
	"encoding/json"
	"fmt"
	"image"
	"image/png"
	"net/http"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"sync"
	"time"

	"github.com/golang/glog"
	"github.com/gorilla/mux"
	"github.com/pkg/errors"
	"golang.org/x/net/trace"

	"badc0de.net/pkg/go-texb/export"
	"badc0de.net/pkg/go-texb/paths"
	"badc0de.net/pkg/go-texb/texb"
)

// generation is part of every ETag; bump if the way we generate responses
// changes.
const generation = 1

// maxScale bounds the scale query parameter.
const maxScale = 16

type cachedBank struct {
	bank    *texb.TextureBank
	modTime time.Time
	size    int64
}

// bankSlot holds the cached copy of one bank. Its lock is held while the
// bank decodes, so only requests for that bank wait.
type bankSlot struct {
	lock   sync.Mutex
	cached *cachedBank
}

// Handler serves the texture banks found directly inside one directory.
// Decoded banks are kept in memory until their file changes.
type Handler struct {
	dir    string
	decode func(path string) (*texb.TextureBank, error)

	lock  sync.Mutex
	banks map[string]*bankSlot
}

// NewHandler constructs a web handler for the .texb files in dir.
func NewHandler(dir string) *Handler {
	return &Handler{
		dir:    dir,
		decode: texb.DecodeFile,
		banks:  make(map[string]*bankSlot),
	}
}

var errBadName = errors.New("bad bank name")

func (h *Handler) slot(name string) *bankSlot {
	h.lock.Lock()
	defer h.lock.Unlock()
	s, ok := h.banks[name]
	if !ok {
		s = &bankSlot{}
		h.banks[name] = s
	}
	return s
}

// bank returns the decoded bank with the passed name (the file name without
// the .texb extension), decoding it if the cached copy is missing or stale.
func (h *Handler) bank(tr trace.Trace, name string) (*cachedBank, error) {
	if name == "" || strings.ContainsAny(name, `/\`) || name == "." || name == ".." {
		return nil, errors.Wrapf(errBadName, "%q", name)
	}
	path := filepath.Join(h.dir, name+".texb")
	fi, err := os.Stat(path)
	if err != nil {
		return nil, err
	}

	s := h.slot(name)
	s.lock.Lock()
	defer s.lock.Unlock()

	if c := s.cached; c != nil && c.modTime.Equal(fi.ModTime()) && c.size == fi.Size() {
		tr.LazyPrintf("bank %q from cache", name)
		return c, nil
	}

	start := time.Now()
	bank, err := h.decode(path)
	if err != nil {
		return nil, err
	}
	tr.LazyPrintf("decoded %q (%d images) in %v", name, bank.Len(), time.Since(start))
	glog.V(1).Infof("web: decoded %s: %d images", path, bank.Len())
	c := &cachedBank{bank: bank, modTime: fi.ModTime(), size: fi.Size()}
	s.cached = c
	return c, nil
}

func (h *Handler) fail(w http.ResponseWriter, tr trace.Trace, err error) {
	tr.LazyPrintf("%v", err)
	tr.SetError()

	code := http.StatusInternalServerError
	switch {
	case errors.Is(err, os.ErrNotExist):
		code = http.StatusNotFound
	case errors.Is(err, errBadName):
		code = http.StatusBadRequest
	case texb.Kind(err) != nil:
		code = http.StatusUnprocessableEntity
	}
	if code == http.StatusInternalServerError {
		glog.Errorf("web: %v", err)
	}
	http.Error(w, err.Error(), code)
}

// etag derives a weak entity tag from the bank file and the requested item.
func (c *cachedBank) etag(name, item, mime string) string {
	return fmt.Sprintf(`W/"texb:%d:%s:%x:%x:%s:%s"`, generation, name, c.modTime.UnixNano(), c.size, item, mime)
}

// notModified writes the caching headers and reports whether the client
// already has the current version.
func notModified(w http.ResponseWriter, r *http.Request, c *cachedBank, etag string) bool {
	w.Header().Set("Cache-Control", "public; max-age=3600")
	w.Header().Set("ETag", etag)
	w.Header().Set("Last-Modified", c.modTime.UTC().Format(http.TimeFormat))
	if r.Header.Get("If-None-Match") == etag {
		w.WriteHeader(http.StatusNotModified)
		return true
	}
	return false
}

func scale(r *http.Request) int {
	s, err := strconv.Atoi(r.URL.Query().Get("scale"))
	if err != nil || s < 1 {
		return 1
	}
	if s > maxScale {
		return maxScale
	}
	return s
}

func (h *Handler) writeImage(w http.ResponseWriter, r *http.Request, tr trace.Trace, c *cachedBank, item string, img image.Image) {
	vars := mux.Vars(r)
	f, err := export.ParseFormat(vars["ext"])
	if err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}
	s := scale(r)
	etag := c.etag(vars["bank"], fmt.Sprintf("%s@%d", item, s), f.ContentType())
	if notModified(w, r, c, etag) {
		tr.LazyPrintf("not modified")
		return
	}

	buf := &bytes.Buffer{}
	if err := export.Encode(buf, export.Scale(img, s), f); err != nil {
		h.fail(w, tr, err)
		return
	}
	w.Header().Set("Content-Type", f.ContentType())
	w.Header().Set("Content-Length", strconv.Itoa(buf.Len()))
	w.WriteHeader(http.StatusOK)
	w.Write(buf.Bytes())
}

func (h *Handler) atlasHandler(w http.ResponseWriter, r *http.Request) {
	tr := trace.New("texb.web.atlas", r.URL.Path)
	defer tr.Finish()

	c, err := h.bank(tr, mux.Vars(r)["bank"])
	if err != nil {
		h.fail(w, tr, err)
		return
	}
	h.writeImage(w, r, tr, c, "atlas", c.bank.Atlas())
}

func (h *Handler) imageHandler(w http.ResponseWriter, r *http.Request) {
	tr := trace.New("texb.web.image", r.URL.Path)
	defer tr.Finish()

	vars := mux.Vars(r)
	c, err := h.bank(tr, vars["bank"])
	if err != nil {
		h.fail(w, tr, err)
		return
	}

	var img *texb.SubImage
	if idx, ok := vars["idx"]; ok {
		i, err := strconv.Atoi(idx)
		if err != nil || i >= c.bank.Len() {
			h.fail(w, tr, errors.Wrapf(os.ErrNotExist, "no image %s in %s", idx, vars["bank"]))
			return
		}
		img = c.bank.Image(i)
	} else {
		var ok bool
		if img, ok = c.bank.Lookup(vars["name"]); !ok {
			h.fail(w, tr, errors.Wrapf(os.ErrNotExist, "no image %q in %s", vars["name"], vars["bank"]))
			return
		}
	}
	h.writeImage(w, r, tr, c, "image:"+strconv.Itoa(img.Index()), img.Image())
}

func (h *Handler) manifestHandler(w http.ResponseWriter, r *http.Request) {
	tr := trace.New("texb.web.manifest", r.URL.Path)
	defer tr.Finish()

	name := mux.Vars(r)["bank"]
	c, err := h.bank(tr, name)
	if err != nil {
		h.fail(w, tr, err)
		return
	}
	f := export.PNG
	if ext := r.URL.Query().Get("format"); ext != "" {
		if f, err = export.ParseFormat(ext); err != nil {
			http.Error(w, err.Error(), http.StatusBadRequest)
			return
		}
	}
	mime := "application/json"
	if notModified(w, r, c, c.etag(name, "manifest:"+f.String(), mime)) {
		return
	}
	m := export.NewManifest(c.bank, f)
	m.Atlas = "atlas" + f.Ext()

	w.Header().Set("Content-Type", mime)
	w.WriteHeader(http.StatusOK)
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	enc.Encode(m)
}

func (h *Handler) bankHandler(w http.ResponseWriter, r *http.Request) {
	tr := trace.New("texb.web.bank", r.URL.Path)
	defer tr.Finish()

	name := mux.Vars(r)["bank"]
	c, err := h.bank(tr, name)
	if err != nil {
		h.fail(w, tr, err)
		return
	}
	mime := "text/html; charset=utf-8"
	if notModified(w, r, c, c.etag(name, "page", mime)) {
		return
	}

	page := bankPage{Name: name, Bank: c.bank}
	for _, img := range c.bank.Images() {
		page.Images = append(page.Images, bankPageImage{
			SubImage:  img,
			Thumbnail: thumbnail(img.Image()),
		})
	}
	buf := &bytes.Buffer{}
	if err := bankTemplate.Execute(buf, page); err != nil {
		h.fail(w, tr, errors.Wrap(err, "rendering bank page"))
		return
	}
	w.Header().Set("Content-Type", mime)
	w.WriteHeader(http.StatusOK)
	w.Write(buf.Bytes())
}

func (h *Handler) indexHandler(w http.ResponseWriter, r *http.Request) {
	tr := trace.New("texb.web.index", r.URL.Path)
	defer tr.Finish()

	files, err := paths.List(h.dir)
	if err != nil {
		h.fail(w, tr, err)
		return
	}
	var names []string
	for _, f := range files {
		if filepath.Ext(f) == ".texb" {
			names = append(names, strings.TrimSuffix(f, ".texb"))
		}
	}
	tr.LazyPrintf("%d banks", len(names))

	buf := &bytes.Buffer{}
	if err := indexTemplate.Execute(buf, names); err != nil {
		h.fail(w, tr, errors.Wrap(err, "rendering index"))
		return
	}
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.WriteHeader(http.StatusOK)
	w.Write(buf.Bytes())
}

// RegisterRoutes adds the texture bank routes below /texb/ to r.
func (h *Handler) RegisterRoutes(r *mux.Router) {
	const ext = "{ext:png|webp|tga|gif}"
	r.HandleFunc("/texb/", h.indexHandler)
	r.HandleFunc("/texb/{bank}.json", h.manifestHandler)
	r.HandleFunc("/texb/{bank}/atlas."+ext, h.atlasHandler)
	r.HandleFunc("/texb/{bank}/index/{idx:[0-9]+}."+ext, h.imageHandler)
	r.HandleFunc("/texb/{bank}/image/{name}."+ext, h.imageHandler)
	r.HandleFunc("/texb/{bank}", h.bankHandler)
}

// pngBytes is used for thumbnails; it cannot fail for in-memory images.
func pngBytes(img image.Image) []byte {
	buf := &bytes.Buffer{}
	png.Encode(buf, img)
	return buf.Bytes()
}
