package paths

import (
	"flag"
	"os"
	"path/filepath"
	"testing"

	"github.com/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func touch(t *testing.T, path string) {
	t.Helper()
	require.NoError(t, os.MkdirAll(filepath.Dir(path), 0755))
	require.NoError(t, os.WriteFile(path, []byte("TEXB"), 0644))
}

func TestFindInEnvPath(t *testing.T) {
	first, second := t.TempDir(), t.TempDir()
	touch(t, filepath.Join(second, "unit.texb"))
	t.Setenv(EnvVar, first+string(filepath.ListSeparator)+second)

	assert.Equal(t, filepath.Join(second, "unit.texb"), Find("unit.texb"))

	touch(t, filepath.Join(first, "unit.texb"))
	assert.Equal(t, filepath.Join(first, "unit.texb"), Find("unit.texb"), "earlier directories win")
}

func TestFindMissing(t *testing.T) {
	t.Setenv(EnvVar, t.TempDir())
	assert.Equal(t, "", Find("does-not-exist.texb"))

	_, err := Open("does-not-exist.texb")
	assert.True(t, errors.Is(err, os.ErrNotExist), "got %v", err)
}

func TestFindSkipsDirectories(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.Mkdir(filepath.Join(dir, "bank.texb"), 0755))
	t.Setenv(EnvVar, dir)
	assert.Equal(t, "", Find("bank.texb"))
}

func TestOpen(t *testing.T) {
	dir := t.TempDir()
	touch(t, filepath.Join(dir, "unit.texb"))
	t.Setenv(EnvVar, dir)

	f, err := Open("unit.texb")
	require.NoError(t, err)
	defer f.Close()

	buf := make([]byte, 4)
	_, err = f.ReadAt(buf, 0)
	require.NoError(t, err)
	assert.Equal(t, "TEXB", string(buf))
}

func TestList(t *testing.T) {
	dir := t.TempDir()
	for _, name := range []string{"b.texb", "a.TEXB", "readme.txt", "sub/c.texb"} {
		touch(t, filepath.Join(dir, name))
	}
	names, err := List(dir)
	require.NoError(t, err)
	assert.Equal(t, []string{"a.TEXB", "b.texb"}, names)

	_, err = List(filepath.Join(dir, "missing"))
	assert.Error(t, err)
}

func TestSetupFilePathFlagSet(t *testing.T) {
	dir := t.TempDir()
	touch(t, filepath.Join(dir, "unit.texb"))
	t.Setenv(EnvVar, dir)

	fs := flag.NewFlagSet("test", flag.ContinueOnError)
	var path string
	SetupFilePathFlagSet(fs, "unit.texb", "texb_path", &path)
	assert.Equal(t, filepath.Join(dir, "unit.texb"), path)

	require.NoError(t, fs.Parse([]string{"-texb_path", "/elsewhere.texb"}))
	assert.Equal(t, "/elsewhere.texb", path)
}
