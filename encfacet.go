package idxsnap

import (
	"encoding/binary"

	"github.com/RoaringBitmap/roaring"
)

// facet_id_string_docids holds two record shapes that share one key space.
// String leaves live at level 0 and carry the normalized string in the key;
// the leveled u32 ranges above them live at levels 1 and higher. There is no
// tag byte: the level byte and the key length tell them apart.

// FacetStringLevelZeroKey is the key of a string facet leaf.
type FacetStringLevelZeroKey struct {
	FieldID    uint16
	Normalized string
}

func (k FacetStringLevelZeroKey) Encode() []byte {
	buf := binary.BigEndian.AppendUint16(nil, k.FieldID)
	buf = append(buf, 0)
	return append(buf, k.Normalized...)
}

// DecodeFacetStringLevelZeroKey returns ErrShapeMismatch when data is not
// a level-0 key.
func DecodeFacetStringLevelZeroKey(data []byte) (FacetStringLevelZeroKey, error) {
	if len(data) < 3 || data[2] != 0 {
		return FacetStringLevelZeroKey{}, ErrShapeMismatch
	}
	s, err := DecodeStr(data[3:])
	if err != nil {
		return FacetStringLevelZeroKey{}, err
	}
	return FacetStringLevelZeroKey{binary.BigEndian.Uint16(data), s}, nil
}

// FacetStringLevelZeroValue is the value of a string facet leaf.
type FacetStringLevelZeroValue struct {
	Original string
	Docids   *roaring.Bitmap
}

func (v FacetStringLevelZeroValue) Encode() []byte {
	buf := appendVarbytes(nil, []byte(v.Original))
	return append(buf, EncodeCboBitmap(v.Docids)...)
}

func DecodeFacetStringLevelZeroValue(data []byte) (FacetStringLevelZeroValue, error) {
	d := makeByteDecoder(data)
	raw, err := d.VarBytes()
	if err != nil {
		return FacetStringLevelZeroValue{}, err
	}
	orig, err := DecodeStr(raw)
	if err != nil {
		return FacetStringLevelZeroValue{}, err
	}
	docids, err := DecodeCboBitmap(d.Rest())
	if err != nil {
		return FacetStringLevelZeroValue{}, err
	}
	return FacetStringLevelZeroValue{orig, docids}, nil
}

// FacetLevelU32Key is the key of a leveled range group, with Left and Right
// being positions among the level-0 entries.
type FacetLevelU32Key struct {
	FieldID uint16
	Level   uint8
	Left    uint32
	Right   uint32
}

const facetLevelU32KeyLen = 2 + 1 + 4 + 4

func (k FacetLevelU32Key) Encode() []byte {
	buf := make([]byte, 0, facetLevelU32KeyLen)
	buf = binary.BigEndian.AppendUint16(buf, k.FieldID)
	buf = append(buf, k.Level)
	buf = binary.BigEndian.AppendUint32(buf, k.Left)
	return binary.BigEndian.AppendUint32(buf, k.Right)
}

// DecodeFacetLevelU32Key returns ErrShapeMismatch when data is not a leveled
// range key.
func DecodeFacetLevelU32Key(data []byte) (FacetLevelU32Key, error) {
	if len(data) != facetLevelU32KeyLen || data[2] == 0 {
		return FacetLevelU32Key{}, ErrShapeMismatch
	}
	return FacetLevelU32Key{
		FieldID: binary.BigEndian.Uint16(data),
		Level:   data[2],
		Left:    binary.BigEndian.Uint32(data[3:]),
		Right:   binary.BigEndian.Uint32(data[7:]),
	}, nil
}

// StringBounds are the lowest and highest strings covered by a range group.
type StringBounds struct {
	Low  string
	High string
}

// FacetStringBoundsValue is the value of a leveled range group. Bounds are
// set only for groups over string facets.
type FacetStringBoundsValue struct {
	Bounds *StringBounds
	Docids *roaring.Bitmap
}

const (
	boundsAbsent  = 0
	boundsPresent = 1
)

func (v FacetStringBoundsValue) Encode() []byte {
	var buf []byte
	if v.Bounds == nil {
		buf = append(buf, boundsAbsent)
	} else {
		buf = append(buf, boundsPresent)
		buf = appendVarbytes(buf, []byte(v.Bounds.Low))
		buf = appendVarbytes(buf, []byte(v.Bounds.High))
	}
	return append(buf, EncodeCboBitmap(v.Docids)...)
}

func DecodeFacetStringBoundsValue(data []byte) (FacetStringBoundsValue, error) {
	var v FacetStringBoundsValue
	d := makeByteDecoder(data)
	flag, err := d.Byte()
	if err != nil {
		return v, err
	}
	switch flag {
	case boundsAbsent:
	case boundsPresent:
		var b StringBounds
		if b.Low, err = decodeVarStr(&d); err != nil {
			return v, err
		}
		if b.High, err = decodeVarStr(&d); err != nil {
			return v, err
		}
		v.Bounds = &b
	default:
		return v, dataErrf(data, 0, nil, "invalid bounds flag %d", flag)
	}
	v.Docids, err = DecodeCboBitmap(d.Rest())
	if err != nil {
		return v, err
	}
	return v, nil
}

func decodeVarStr(d *byteDecoder) (string, error) {
	raw, err := d.VarBytes()
	if err != nil {
		return "", err
	}
	return DecodeStr(raw)
}
