package main

import (
	"compress/gzip"
	"encoding/xml"
	"io"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"badc0de.net/pkg/go-texb/texb/texbtest"
)

func TestRouter(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, "unit.texb"), texbtest.FullAtlas().Bytes(), 0644))
	*accessLog = false
	h := newRouter(dir)

	w := httptest.NewRecorder()
	h.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/", nil))
	assert.Equal(t, http.StatusFound, w.Code)
	assert.Equal(t, "/texb/", w.Header().Get("Location"))

	req := httptest.NewRequest(http.MethodGet, "/texb/unit.json", nil)
	req.Header.Set("Accept-Encoding", "gzip")
	w = httptest.NewRecorder()
	h.ServeHTTP(w, req)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "gzip", w.Header().Get("Content-Encoding"))
	zr, err := gzip.NewReader(w.Body)
	require.NoError(t, err)
	body, err := io.ReadAll(zr)
	require.NoError(t, err)
	assert.Contains(t, string(body), `"bank": "unit_test"`)
}

func TestSitemap(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, "unit.texb"), texbtest.FullAtlas().Bytes(), 0644))
	*accessLog = false
	h := newRouter(dir)

	req := httptest.NewRequest(http.MethodGet, "http://example.com/sitemap.xml", nil)
	w := httptest.NewRecorder()
	h.ServeHTTP(w, req)
	require.Equal(t, http.StatusOK, w.Code)

	var set struct {
		URL []struct {
			Loc        string `xml:"loc"`
			ChangeFreq string `xml:"changefreq"`
		} `xml:"url"`
	}
	require.NoError(t, xml.Unmarshal(w.Body.Bytes(), &set))
	require.Len(t, set.URL, 1)
	assert.Equal(t, "http://example.com/texb/unit", set.URL[0].Loc)
	assert.Equal(t, "monthly", set.URL[0].ChangeFreq)
}
