package main

import (
	"encoding/xml"
	"fmt"
	"net/http"
	"os"
	"path/filepath"
	"strings"

	"github.com/golang/glog"

	"badc0de.net/pkg/go-texb/paths"
)

type SitemapChangeFreq int

const (
	SitemapChangeFreqUnspecified SitemapChangeFreq = iota
	SitemapChangeFreqDaily
	SitemapChangeFreqWeekly
	SitemapChangeFreqMonthly
)

func (s SitemapChangeFreq) String() string {
	switch s {
	case SitemapChangeFreqUnspecified:
		return ""
	case SitemapChangeFreqDaily:
		return "daily"
	case SitemapChangeFreqWeekly:
		return "weekly"
	case SitemapChangeFreqMonthly:
		return "monthly"
	}
	return "bad value"
}

func (s SitemapChangeFreq) MarshalText() ([]byte, error) {
	return []byte(s.String()), nil
}

type SitemapURLImage struct {
	Loc string `xml:"image:loc"` // image is the namespace 'http://www.google.com/schemas/sitemap-image/1.1'
}

type SitemapURL struct {
	Loc        string            `xml:"loc"`
	LastMod    string            `xml:"lastmod,omitempty"`
	ChangeFreq SitemapChangeFreq `xml:"changefreq,omitempty"`

	Image []SitemapURLImage `xml:"image:image,omitempty"`
}

type SitemapURLSet struct {
	XMLName    xml.Name     `xml:"http://www.sitemaps.org/schemas/sitemap/0.9 urlset"`
	XMLNSImage string       `xml:"xmlns:image,attr"`
	URL        []SitemapURL `xml:"url"` // up to 50k entries
}

func (e *SitemapURLSet) Write(w http.ResponseWriter, r *http.Request) {
	e.XMLNSImage = "http://www.google.com/schemas/sitemap-image/1.1"

	w.Header().Set("Content-Type", "application/xml")

	fmt.Fprintf(w, "%s", xml.Header)
	enc := xml.NewEncoder(w)
	enc.Indent("", " ")
	if err := enc.Encode(e); err != nil {
		glog.Errorf("encoding sitemap: %v", err)
	}
}

// sitemapHandler lists a page and an atlas image for every bank in dir.
func sitemapHandler(dir string) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		files, err := paths.List(dir)
		if err != nil {
			http.Error(w, "<error>could not list banks</error>", http.StatusInternalServerError)
			return
		}
		base := "http://" + r.Host
		set := &SitemapURLSet{}
		for _, f := range files {
			if filepath.Ext(f) != ".texb" {
				continue
			}
			name := strings.TrimSuffix(f, ".texb")
			u := SitemapURL{
				Loc:        base + "/texb/" + name,
				ChangeFreq: SitemapChangeFreqMonthly,
				Image:      []SitemapURLImage{{Loc: base + "/texb/" + name + "/atlas.png"}},
			}
			if fi, err := os.Stat(filepath.Join(dir, f)); err == nil {
				u.LastMod = fi.ModTime().UTC().Format("2006-01-02")
			}
			set.URL = append(set.URL, u)
		}
		set.Write(w, r)
	}
}
