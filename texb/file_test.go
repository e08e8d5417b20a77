package texb

import (
	"encoding/binary"
	"os"
	"path/filepath"
	"testing"

	"github.com/pkg/errors"

	"badc0de.net/pkg/go-texb/texb/texbtest"
	"badc0de.net/pkg/go-texb/ttesting"
)

func writeTemp(t *testing.T, b []byte) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "test.texb")
	if err := os.WriteFile(path, b, 0644); err != nil {
		t.Fatalf("failed to write %s: %s", path, err)
	}
	return path
}

func TestDecodeFile(t *testing.T) {
	tb := texbtest.FullAtlas()
	valid := tb.Bytes()

	bank, err := DecodeFile(writeTemp(t, valid))
	if err != nil {
		t.Fatalf("failed to decode file: %s", err)
	}
	ttesting.AssertEqualBytes(t, "image pixels", bank.Image(0).Image().Pix, tb.Payload)

	// Bytes past the declared size are not part of the bank.
	trailing := append(append([]byte(nil), valid...), 0xDE, 0xAD)
	bank, err = DecodeFile(writeTemp(t, trailing))
	if err != nil {
		t.Fatalf("failed to decode file with trailing data: %s", err)
	}
	ttesting.AssertEqualBytes(t, "atlas ignores trailing data", bank.Atlas().Pix, tb.Payload)
}

func TestDecodeFileErrors(t *testing.T) {
	valid := texbtest.FullAtlas().Bytes()

	oversized := append([]byte(nil), valid...)
	binary.BigEndian.PutUint32(oversized[4:], uint32(len(valid)))

	for _, tc := range []struct {
		name string
		data []byte
		want error
	}{
		{"bad magic", append([]byte("PNG!"), valid[4:]...), ErrInvalidFormat},
		{"too short for magic", []byte("TE"), ErrInvalidFormat},
		{"missing size", []byte("TEXB\x00"), ErrCorruptData},
		{"declared size past end", oversized, ErrCorruptData},
		{"truncated", valid[:len(valid)-3], ErrCorruptData},
	} {
		_, err := DecodeFile(writeTemp(t, tc.data))
		ttesting.AssertErrorIs(t, tc.name, err, tc.want)
	}

	_, err := DecodeFile(filepath.Join(t.TempDir(), "missing.texb"))
	if !errors.Is(err, os.ErrNotExist) {
		t.Errorf("missing file: got %v; want a not-exist error", err)
	}
}
