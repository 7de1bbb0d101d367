package snapshot

import (
	"testing"

	"github.com/RoaringBitmap/roaring"
	"github.com/stretchr/testify/require"

	"github.com/andreyvit/idxsnap"
)

func newIndex(t testing.TB, fill func(tx *idxsnap.Tx) error) *idxsnap.Index {
	t.Helper()
	idx := idxsnap.OpenMemory(idxsnap.Options{IsTesting: true})
	t.Cleanup(func() { idx.Close() })
	if fill != nil {
		require.NoError(t, idx.Write(fill))
	}
	return idx
}

// fillSample writes one or two records into every table and a few computed
// values into main.
func fillSample(tx *idxsnap.Tx) error {
	puts := []struct {
		tbl idxsnap.Table
		k   []byte
		v   []byte
	}{
		{idxsnap.WordDocids, []byte("hello"), idxsnap.EncodeBitmap(bm(1, 5, 9))},
		{idxsnap.WordDocids, []byte("world"), idxsnap.EncodeBitmap(bm(5))},
		{idxsnap.ExactWordDocids, []byte("hello"), idxsnap.EncodeBitmap(bm(1))},
		{idxsnap.WordPrefixDocids, []byte("he"), idxsnap.EncodeBitmap(bm(1, 5, 9))},
		{idxsnap.DocidWordPositions, idxsnap.DocidWordKey{Docid: 1, Word: "hello"}.Encode(), idxsnap.EncodeBitmap(bm(0, 3))},
		{idxsnap.WordPairProximityDocids, idxsnap.WordPairProximityKey{Word1: "hello", Word2: "world", Proximity: 1}.Encode(), idxsnap.EncodeCboBitmap(bm(5))},
		{idxsnap.WordPrefixPairProximityDocids, idxsnap.WordPairProximityKey{Word1: "hello", Word2: "wo", Proximity: 1}.Encode(), idxsnap.EncodeCboBitmap(bm(5))},
		{idxsnap.WordPositionDocids, idxsnap.WordPositionKey{Word: "hello", Position: 0}.Encode(), idxsnap.EncodeCboBitmap(bm(1, 5))},
		{idxsnap.FieldIDWordCountDocids, idxsnap.FieldWordCountKey{FieldID: 0, WordCount: 2}.Encode(), idxsnap.EncodeCboBitmap(bm(5))},
		{idxsnap.WordPrefixPositionDocids, idxsnap.WordPositionKey{Word: "he", Position: 0}.Encode(), idxsnap.EncodeCboBitmap(bm(1, 5))},
		{idxsnap.FacetIDF64Docids, idxsnap.FacetF64Key{FieldID: 1, Level: 0, Left: 12.5, Right: 12.5}.Encode(), idxsnap.EncodeCboBitmap(bm(1))},
		{idxsnap.FacetIDStringDocids,
			idxsnap.FacetStringLevelZeroKey{FieldID: 2, Normalized: "blue"}.Encode(),
			idxsnap.FacetStringLevelZeroValue{Original: "Blue", Docids: bm(1, 5)}.Encode()},
		{idxsnap.FacetIDStringDocids,
			idxsnap.FacetLevelU32Key{FieldID: 2, Level: 1, Left: 0, Right: 3}.Encode(),
			idxsnap.FacetStringBoundsValue{Bounds: &idxsnap.StringBounds{Low: "blue", High: "red"}, Docids: bm(1, 5, 9)}.Encode()},
	}
	for _, p := range puts {
		if err := tx.Put(p.tbl, p.k, p.v); err != nil {
			return err
		}
	}

	fields := idxsnap.NewFieldsIDsMap(
		idxsnap.FieldEntry{ID: 0, Name: "id"},
		idxsnap.FieldEntry{ID: 1, Name: "price"},
		idxsnap.FieldEntry{ID: 2, Name: "color"},
	)
	if err := tx.PutFieldsIDsMap(fields); err != nil {
		return err
	}
	if err := tx.PutFieldDistribution(map[string]uint64{"id": 3, "color": 2}); err != nil {
		return err
	}
	if err := tx.PutDocumentsIDs(bm(1, 5, 9)); err != nil {
		return err
	}
	if err := tx.PutNumberFacetedDocumentsIDs(1, bm(1, 5)); err != nil {
		return err
	}
	return tx.PutWordsFST([]string{"hello", "world"})
}

func bm(ids ...uint32) *roaring.Bitmap {
	return roaring.BitmapOf(ids...)
}
