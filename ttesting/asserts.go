// Package ttesting contains assertion helpers shared by the go-texb tests.
//
// Every helper runs as a named subtest so a failing property is reported by
// name.
package ttesting

import (
	"testing"

	"github.com/pkg/errors"
	"github.com/stretchr/testify/assert"
)

func AssertEqualInt(t *testing.T, name string, got, want int) {
	t.Run(name, func(t *testing.T) {
		if got != want {
			t.Errorf("got %d; want %d", got, want)
		}
	})
}

func AssertEqualString(t *testing.T, name string, got, want string) {
	t.Run(name, func(t *testing.T) {
		if got != want {
			t.Errorf("got %q; want %q", got, want)
		}
	})
}

func AssertInRangeFloat(t *testing.T, name string, got, wantMin, wantMax float64) {
	t.Run(name, func(t *testing.T) {
		if got < wantMin || got > wantMax {
			t.Errorf("got %g; want [%g,%g]", got, wantMin, wantMax)
		}
	})
}

// AssertEqualBytes compares two buffers; on mismatch testify prints a diff of
// the hex dumps.
func AssertEqualBytes(t *testing.T, name string, got, want []byte) {
	t.Run(name, func(t *testing.T) {
		assert.Equal(t, want, got)
	})
}

// AssertErrorIs checks that err wraps target.
func AssertErrorIs(t *testing.T, name string, err, target error) {
	t.Run(name, func(t *testing.T) {
		if assert.Error(t, err) {
			assert.Truef(t, errors.Is(err, target), "got error %q; want it to wrap %q", err, target)
		}
	})
}
