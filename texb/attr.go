package texb

import (
	"encoding/binary"
	"fmt"
	"math"

	"github.com/pkg/errors"
)

// AttrType is the payload type of a sub-image attribute.
type AttrType uint8

const (
	AttrInt    AttrType = 0 // 4-byte big-endian signed integer
	AttrFloat  AttrType = 1 // 4-byte big-endian IEEE 754 float
	AttrString AttrType = 2 // 16-bit length followed by that many bytes
)

func (t AttrType) String() string {
	switch t {
	case AttrInt:
		return "int"
	case AttrFloat:
		return "float"
	case AttrString:
		return "string"
	}
	return fmt.Sprintf("AttrType(%d)", uint8(t))
}

// Attribute is a keyed value attached to a sub-image record. Newer writers
// add attributes that older readers only need to step over, so each one
// carries its own size: either a fixed 4-byte payload or a length-prefixed
// one.
type Attribute struct {
	Key  byte
	Type AttrType

	// Fixed holds the payload of AttrInt and AttrFloat attributes.
	Fixed [4]byte
	// Data holds the payload of AttrString attributes.
	Data []byte
}

func (a Attribute) Int() int32 {
	return int32(binary.BigEndian.Uint32(a.Fixed[:]))
}

func (a Attribute) Float() float32 {
	return math.Float32frombits(binary.BigEndian.Uint32(a.Fixed[:]))
}

func (a Attribute) Text() string {
	return string(a.Data)
}

// Size returns the number of bytes the attribute occupies in the file,
// including its key and type.
func (a Attribute) Size() int {
	if a.Type == AttrString {
		return 2 + 2 + len(a.Data)
	}
	return 2 + 4
}

// readAttribute decodes one attribute. An unknown type is ErrInvalidFormat;
// nothing past the key and type bytes is consumed in that case.
func readAttribute(r *reader) (Attribute, error) {
	var a Attribute
	key, err := r.u8("attribute key")
	if err != nil {
		return a, err
	}
	typ, err := r.u8("attribute type")
	if err != nil {
		return a, err
	}
	a.Key, a.Type = key, AttrType(typ)

	switch a.Type {
	case AttrInt, AttrFloat:
		b, err := r.bytes(4, "attribute payload")
		if err != nil {
			return a, err
		}
		copy(a.Fixed[:], b)
	case AttrString:
		n, err := r.u16("attribute length")
		if err != nil {
			return a, err
		}
		if a.Data, err = r.bytes(int(n), "attribute payload"); err != nil {
			return a, err
		}
	default:
		return a, errors.Wrapf(ErrInvalidFormat, "attribute with key %d has unknown type %d", key, typ)
	}
	return a, nil
}

// readAttributes decodes an attribute list: a 16-bit count followed by that
// many attributes.
func readAttributes(r *reader) ([]Attribute, error) {
	n, err := r.u16("attribute count")
	if err != nil {
		return nil, err
	}
	attrs := make([]Attribute, 0, n)
	for i := 0; i < int(n); i++ {
		a, err := readAttribute(r)
		if err != nil {
			return nil, errors.Wrapf(err, "attribute %d of %d", i, n)
		}
		attrs = append(attrs, a)
	}
	return attrs, nil
}
