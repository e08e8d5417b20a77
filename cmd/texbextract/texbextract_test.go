package main

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"badc0de.net/pkg/go-texb/export"
	"badc0de.net/pkg/go-texb/texb"
	"badc0de.net/pkg/go-texb/texb/texbtest"
	"badc0de.net/pkg/go-texb/ttesting"
)

func writeBanks(t *testing.T, dir string, names ...string) {
	t.Helper()
	for _, n := range names {
		require.NoError(t, os.WriteFile(filepath.Join(dir, n), texbtest.FullAtlas().Bytes(), 0644))
	}
}

func TestExpand(t *testing.T) {
	dir := t.TempDir()
	writeBanks(t, dir, "b.texb", "a.texb")
	lone := filepath.Join(t.TempDir(), "lone.texb")

	got := expand([]string{dir, lone})
	assert.Equal(t, []string{filepath.Join(dir, "a.texb"), filepath.Join(dir, "b.texb"), lone}, got)
}

func TestExtract(t *testing.T) {
	in := t.TempDir()
	writeBanks(t, in, "one.texb", "two.texb", "three.texb")
	*outDir = t.TempDir()

	err := extract(context.Background(), expand([]string{in}), export.Options{Format: export.PNG, Atlas: true})
	require.NoError(t, err)
	for _, bank := range []string{"one", "two", "three"} {
		for _, f := range []string{"whole.png", "atlas.png", export.ManifestFile} {
			_, err := os.Stat(filepath.Join(*outDir, bank, f))
			assert.NoError(t, err, "%s/%s", bank, f)
		}
	}
}

func TestExtractFailure(t *testing.T) {
	in := t.TempDir()
	writeBanks(t, in, "good.texb")
	require.NoError(t, os.WriteFile(filepath.Join(in, "bad.texb"), []byte("NOPE"), 0644))
	*outDir = t.TempDir()

	err := extract(context.Background(), expand([]string{in}), export.Options{Format: export.PNG})
	ttesting.AssertErrorIs(t, "bad bank fails the run", err, texb.ErrInvalidFormat)

	*keepGoing = true
	defer func() { *keepGoing = false }()
	err = extract(context.Background(), expand([]string{in}), export.Options{Format: export.PNG})
	assert.NoError(t, err)
	_, err = os.Stat(filepath.Join(*outDir, "good", "whole.png"))
	assert.NoError(t, err)
}
