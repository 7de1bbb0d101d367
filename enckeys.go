package idxsnap

import (
	"encoding/binary"
	"fmt"
	"math"
	"strings"
	"unicode/utf8"
)

// DecodeStr decodes a UTF-8 string key or value.
func DecodeStr(data []byte) (string, error) {
	if !utf8.Valid(data) {
		return "", dataErrf(data, 0, nil, "invalid UTF-8 string")
	}
	return string(data), nil
}

// DocidWordKey keys docid_word_positions.
type DocidWordKey struct {
	Docid uint32
	Word  string
}

func (k DocidWordKey) Encode() []byte {
	return tuple{binary.BigEndian.AppendUint32(nil, k.Docid), []byte(k.Word)}.encode(nil)
}

func DecodeDocidWordKey(data []byte) (DocidWordKey, error) {
	tup, err := decodeTupleN(data, 2)
	if err != nil {
		return DocidWordKey{}, err
	}
	docid, err := decodeBEU32(tup[0])
	if err != nil {
		return DocidWordKey{}, err
	}
	word, err := DecodeStr(tup[1])
	if err != nil {
		return DocidWordKey{}, err
	}
	return DocidWordKey{docid, word}, nil
}

// WordPairProximityKey keys word_pair_proximity_docids and
// word_prefix_pair_proximity_docids (where Word2 is a prefix). The layout is
// word1 0 word2 0 proximity, so keys sort by Word1, then Word2. Words must not
// contain zero bytes.
type WordPairProximityKey struct {
	Word1     string
	Word2     string
	Proximity uint8
}

func (k WordPairProximityKey) Encode() []byte {
	buf := make([]byte, 0, len(k.Word1)+len(k.Word2)+3)
	buf = appendTerminated(buf, k.Word1)
	buf = appendTerminated(buf, k.Word2)
	return append(buf, k.Proximity)
}

func DecodeWordPairProximityKey(data []byte) (WordPairProximityKey, error) {
	d := makeByteDecoder(data)
	w1, err := decodeTerminatedStr(&d)
	if err != nil {
		return WordPairProximityKey{}, err
	}
	w2, err := decodeTerminatedStr(&d)
	if err != nil {
		return WordPairProximityKey{}, err
	}
	prox, err := d.Byte()
	if err != nil {
		return WordPairProximityKey{}, err
	}
	if err := d.End(); err != nil {
		return WordPairProximityKey{}, err
	}
	return WordPairProximityKey{w1, w2, prox}, nil
}

// WordPositionKey keys word_position_docids and word_prefix_position_docids.
// The layout is word 0 position(u32 BE).
type WordPositionKey struct {
	Word     string
	Position uint32
}

func (k WordPositionKey) Encode() []byte {
	buf := appendTerminated(make([]byte, 0, len(k.Word)+5), k.Word)
	return binary.BigEndian.AppendUint32(buf, k.Position)
}

func DecodeWordPositionKey(data []byte) (WordPositionKey, error) {
	d := makeByteDecoder(data)
	word, err := decodeTerminatedStr(&d)
	if err != nil {
		return WordPositionKey{}, err
	}
	raw, err := d.Raw(4)
	if err != nil {
		return WordPositionKey{}, err
	}
	if err := d.End(); err != nil {
		return WordPositionKey{}, err
	}
	return WordPositionKey{word, binary.BigEndian.Uint32(raw)}, nil
}

func appendTerminated(buf []byte, s string) []byte {
	if strings.IndexByte(s, 0) >= 0 {
		panic(fmt.Sprintf("word contains a zero byte: %q", s))
	}
	buf = append(buf, s...)
	return append(buf, 0)
}

func decodeTerminatedStr(d *byteDecoder) (string, error) {
	raw, err := d.Terminated()
	if err != nil {
		return "", err
	}
	return DecodeStr(raw)
}

// FieldWordCountKey keys field_id_word_count_docids.
type FieldWordCountKey struct {
	FieldID   uint16
	WordCount uint8
}

func (k FieldWordCountKey) Encode() []byte {
	return append(binary.BigEndian.AppendUint16(nil, k.FieldID), k.WordCount)
}

func DecodeFieldWordCountKey(data []byte) (FieldWordCountKey, error) {
	if len(data) != 3 {
		return FieldWordCountKey{}, dataErrf(data, 0, nil, "invalid field word count key: %d bytes, wanted 3", len(data))
	}
	return FieldWordCountKey{binary.BigEndian.Uint16(data), data[2]}, nil
}

// FacetF64Key keys facet_id_f64_docids. At level 0, Left == Right.
type FacetF64Key struct {
	FieldID uint16
	Level   uint8
	Left    float64
	Right   float64
}

const facetF64KeyLen = 2 + 1 + 8 + 8

func (k FacetF64Key) Encode() []byte {
	buf := make([]byte, 0, facetF64KeyLen)
	buf = binary.BigEndian.AppendUint16(buf, k.FieldID)
	buf = append(buf, k.Level)
	buf = binary.BigEndian.AppendUint64(buf, orderedFloat64Bits(k.Left))
	buf = binary.BigEndian.AppendUint64(buf, orderedFloat64Bits(k.Right))
	return buf
}

func DecodeFacetF64Key(data []byte) (FacetF64Key, error) {
	if len(data) != facetF64KeyLen {
		return FacetF64Key{}, dataErrf(data, 0, nil, "invalid f64 facet key: %d bytes, wanted %d", len(data), facetF64KeyLen)
	}
	return FacetF64Key{
		FieldID: binary.BigEndian.Uint16(data),
		Level:   data[2],
		Left:    floatFromOrderedBits(binary.BigEndian.Uint64(data[3:])),
		Right:   floatFromOrderedBits(binary.BigEndian.Uint64(data[11:])),
	}, nil
}

// orderedFloat64Bits maps a float64 onto a uint64 whose big-endian bytes sort
// in numeric order.
func orderedFloat64Bits(f float64) uint64 {
	bits := math.Float64bits(f)
	if bits&(1<<63) == 0 {
		return bits ^ (1 << 63)
	}
	return ^bits
}

func floatFromOrderedBits(bits uint64) float64 {
	if bits&(1<<63) != 0 {
		return math.Float64frombits(bits ^ (1 << 63))
	}
	return math.Float64frombits(^bits)
}

func decodeBEU32(data []byte) (uint32, error) {
	if len(data) != 4 {
		return 0, dataErrf(data, 0, nil, "invalid u32: %d bytes", len(data))
	}
	return binary.BigEndian.Uint32(data), nil
}
