package snapshot

import (
	"fmt"
	"strings"

	"github.com/RoaringBitmap/roaring"

	"github.com/andreyvit/idxsnap"
)

// Column widths. They are part of the fixture format: changing any of them
// invalidates every stored fixture that uses it.
const (
	wordWidth      = 16
	prefixWidth    = 4
	docidWidth     = 6
	positionWidth  = 6
	proximityWidth = 2
	fieldIDWidth   = 3
	wordCountWidth = 6
	levelWidth     = 2
	boundWidth     = 6
	facetStrWidth  = 8
	fieldNameWidth = 16
	countWidth     = 6
)

// bitmapTable renders tables whose values are document id sets. writeKey
// writes the key columns, each followed by a space.
func bitmapTable[K any](tbl idxsnap.Table, decodeKey func([]byte) (K, error), decodeBitmap func([]byte) (*roaring.Bitmap, error), writeKey func(w *strings.Builder, k K)) Formatter {
	return entryFormatter{tbl, func(w *strings.Builder, k, v []byte) error {
		key, err := decodeKey(k)
		if err != nil {
			return err
		}
		bm, err := decodeBitmap(v)
		if err != nil {
			return err
		}
		writeKey(w, key)
		w.WriteString(FormatBitmap(bm))
		return nil
	}}
}

func wordTable(tbl idxsnap.Table) Formatter {
	return bitmapTable(tbl, idxsnap.DecodeStr, idxsnap.DecodeBitmap, func(w *strings.Builder, word string) {
		fmt.Fprintf(w, "%-*s ", wordWidth, word)
	})
}

var docidWordPositionsTable = bitmapTable(idxsnap.DocidWordPositions, idxsnap.DecodeDocidWordKey, idxsnap.DecodeBitmap, func(w *strings.Builder, k idxsnap.DocidWordKey) {
	fmt.Fprintf(w, "%-*d %-*s ", docidWidth, k.Docid, wordWidth, k.Word)
})

var wordPairProximityTable = bitmapTable(idxsnap.WordPairProximityDocids, idxsnap.DecodeWordPairProximityKey, idxsnap.DecodeCboBitmap, func(w *strings.Builder, k idxsnap.WordPairProximityKey) {
	fmt.Fprintf(w, "%-*s %-*s %-*d ", wordWidth, k.Word1, wordWidth, k.Word2, proximityWidth, k.Proximity)
})

var wordPrefixPairProximityTable = bitmapTable(idxsnap.WordPrefixPairProximityDocids, idxsnap.DecodeWordPairProximityKey, idxsnap.DecodeCboBitmap, func(w *strings.Builder, k idxsnap.WordPairProximityKey) {
	fmt.Fprintf(w, "%-*s %-*s %-*d ", wordWidth, k.Word1, prefixWidth, k.Word2, proximityWidth, k.Proximity)
})

var wordPositionTable = bitmapTable(idxsnap.WordPositionDocids, idxsnap.DecodeWordPositionKey, idxsnap.DecodeCboBitmap, func(w *strings.Builder, k idxsnap.WordPositionKey) {
	fmt.Fprintf(w, "%-*s %-*d ", wordWidth, k.Word, positionWidth, k.Position)
})

var fieldIDWordCountTable = bitmapTable(idxsnap.FieldIDWordCountDocids, idxsnap.DecodeFieldWordCountKey, idxsnap.DecodeCboBitmap, func(w *strings.Builder, k idxsnap.FieldWordCountKey) {
	fmt.Fprintf(w, "%-*d %-*d ", fieldIDWidth, k.FieldID, wordCountWidth, k.WordCount)
})

var wordPrefixPositionTable = bitmapTable(idxsnap.WordPrefixPositionDocids, idxsnap.DecodeWordPositionKey, idxsnap.DecodeCboBitmap, func(w *strings.Builder, k idxsnap.WordPositionKey) {
	fmt.Fprintf(w, "%-*s %-*d ", prefixWidth, k.Word, positionWidth, k.Position)
})

var facetF64Table = bitmapTable(idxsnap.FacetIDF64Docids, idxsnap.DecodeFacetF64Key, idxsnap.DecodeCboBitmap, func(w *strings.Builder, k idxsnap.FacetF64Key) {
	fmt.Fprintf(w, "%-*d %-*d %-*s %-*s ", fieldIDWidth, k.FieldID, levelWidth, k.Level, boundWidth, formatFloat(k.Left), boundWidth, formatFloat(k.Right))
})
