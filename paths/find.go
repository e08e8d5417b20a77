// Package paths locates texture bank files on disk.
//
// Files are looked up in each directory of $TEXB_PATH (a list separated the
// way $PATH is), then the working directory, then the datafiles directory of
// a Bazel-style runfiles tree next to the binary.
package paths

import (
	"io"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/golang/glog"
	"github.com/pkg/errors"
)

// EnvVar names the environment variable with extra search directories.
const EnvVar = "TEXB_PATH"

// SearchDirs returns the directories Find looks in, in order.
func SearchDirs() []string {
	var dirs []string
	for _, dir := range filepath.SplitList(os.Getenv(EnvVar)) {
		if dir != "" {
			dirs = append(dirs, dir)
		}
	}
	dirs = append(dirs, ".", "datafiles")
	if exe, err := os.Executable(); err == nil {
		dirs = append(dirs, filepath.Join(exe+".runfiles", "go_texb", "datafiles"))
	}
	return dirs
}

func possiblePaths(fileName string) []string {
	if filepath.IsAbs(fileName) {
		return []string{fileName}
	}
	var paths []string
	for _, dir := range SearchDirs() {
		paths = append(paths, filepath.Join(dir, fileName))
	}
	return paths
}

// Find locates the passed file shortname and returns an absolute or relative
// path to find the file at, or an empty string if it is not found anywhere.
//
// For example, for "unit.texb" it may return
// "mybinary.runfiles/go_texb/datafiles/unit.texb".
func Find(fileName string) string {
	for _, path := range possiblePaths(fileName) {
		if fi, err := os.Stat(path); err == nil && !fi.IsDir() {
			glog.V(1).Infof("paths.Find(%q)=%s", fileName, path)
			return path
		}
	}
	return ""
}

// Open locates the passed file in the same locations that Find would look, and
// opens it. If Find returns an empty string, an error wrapping os.ErrNotExist
// is returned.
func Open(fileName string) (interface {
	io.ReadCloser
	io.ReaderAt
	io.Seeker
}, error) {
	path := Find(fileName)
	if path == "" {
		return nil, errors.Wrapf(os.ErrNotExist, "paths.Open(%q): not found in %s", fileName, strings.Join(SearchDirs(), string(filepath.ListSeparator)))
	}
	f, err := os.Open(path)
	if err != nil {
		return nil, errors.Wrapf(err, "paths.Open(%q)", fileName)
	}
	return f, nil
}

// List returns the names of the texture bank files directly inside dir,
// sorted.
func List(dir string) ([]string, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, errors.Wrapf(err, "paths.List(%q)", dir)
	}
	var names []string
	for _, e := range entries {
		if e.IsDir() || !strings.EqualFold(filepath.Ext(e.Name()), ".texb") {
			continue
		}
		names = append(names, e.Name())
	}
	sort.Strings(names)
	return names, nil
}
