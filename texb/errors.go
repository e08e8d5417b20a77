package texb

import (
	"github.com/pkg/errors"
)

// Every error caused by the contents of a texture bank wraps exactly one of
// these. Use errors.Is or Kind to tell them apart.
var (
	// ErrInvalidFormat is returned for data that is not a texture bank, or
	// that contains a record this decoder does not know how to skip.
	ErrInvalidFormat = errors.New("texb: invalid format")

	// ErrCorruptData is returned for truncated files and payloads that do
	// not inflate to the declared atlas size.
	ErrCorruptData = errors.New("texb: corrupt data")

	// ErrUnsupported is returned for well-formed variants of the format that
	// are not implemented, such as sub-images made of more than one quad.
	ErrUnsupported = errors.New("texb: unsupported")
)

// Kind returns which of ErrInvalidFormat, ErrCorruptData and ErrUnsupported
// err wraps, or nil if it wraps none of them.
func Kind(err error) error {
	for _, kind := range []error{ErrInvalidFormat, ErrCorruptData, ErrUnsupported} {
		if errors.Is(err, kind) {
			return kind
		}
	}
	return nil
}
