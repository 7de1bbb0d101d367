package snapshot

import (
	"encoding/hex"
	"strconv"
	"strings"

	"github.com/RoaringBitmap/roaring"
)

// FormatBitmap renders a set as "[" + "v, " per member in ascending order + "]".
// The trailing separator is part of the canonical form; the empty set is "[]".
func FormatBitmap(bm *roaring.Bitmap) string {
	var buf strings.Builder
	buf.WriteByte('[')
	if bm != nil {
		it := bm.Iterator()
		for it.HasNext() {
			buf.WriteString(strconv.FormatUint(uint64(it.Next()), 10))
			buf.WriteString(", ")
		}
	}
	buf.WriteByte(']')
	return buf.String()
}

// HexDump renders every byte as two lowercase hex digits, with no separators.
func HexDump(data []byte) string {
	return hex.EncodeToString(data)
}

func formatFloat(f float64) string {
	return strconv.FormatFloat(f, 'f', -1, 64)
}
