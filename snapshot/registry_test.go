package snapshot

import (
	"sync"
	"testing"

	"github.com/RoaringBitmap/roaring"
	"github.com/stretchr/testify/require"

	"github.com/andreyvit/idxsnap"
)

func TestRegistry_EverySubjectRenders(t *testing.T) {
	empty := newIndex(t, nil)
	sample := newIndex(t, fillSample)
	for _, s := range Subjects() {
		t.Run(s.String(), func(t *testing.T) {
			_, err := Snap(empty, s)
			require.NoError(t, err)
			_, err = Snap(sample, s)
			require.NoError(t, err)
		})
	}
	require.Equal(t, int64(0), empty.ReaderCount.Load())
	require.Equal(t, int64(0), sample.ReaderCount.Load())
}

func TestParseSubject(t *testing.T) {
	for _, s := range Subjects() {
		got, err := ParseSubject(s.String())
		require.NoError(t, err)
		require.Equal(t, s, got)
	}
	_, err := ParseSubject("word_doc_ids")
	require.ErrorIs(t, err, ErrUnknownSubject)

	idx := newIndex(t, nil)
	_, err = Snap(idx, Subject(999))
	require.ErrorIs(t, err, ErrUnknownSubject)
}

func TestSnap_Tables(t *testing.T) {
	idx := newIndex(t, fillSample)
	tests := []struct {
		subject  Subject
		expected string
	}{
		{WordDocids, "hello            [1, 5, 9, ]\nworld            [5, ]\n"},
		{ExactWordDocids, "hello            [1, ]\n"},
		{WordPrefixDocids, "he               [1, 5, 9, ]\n"},
		{ExactWordPrefixDocids, ""},
		{DocidWordPositions, "1      hello            [0, 3, ]\n"},
		{WordPairProximityDocids, "hello            world            1  [5, ]\n"},
		{WordPrefixPairProximityDocids, "hello            wo   1  [5, ]\n"},
		{WordPositionDocids, "hello            0      [1, 5, ]\n"},
		{FieldIDWordCountDocids, "0   2      [5, ]\n"},
		{WordPrefixPositionDocids, "he   0      [1, 5, ]\n"},
		{FacetIDF64Docids, "1   0  12.5   12.5   [1, ]\n"},
		{FacetIDStringDocids, "2   blue     Blue     [1, 5, ]\n2   1  0      3      blue     red      [1, 5, 9, ]\n"},
	}
	for _, tt := range tests {
		t.Run(tt.subject.String(), func(t *testing.T) {
			text, err := Snap(idx, tt.subject)
			require.NoError(t, err)
			require.Equal(t, tt.expected, text)
		})
	}
}

func TestSnap_Tables_WordPairsGroupByFirstWord(t *testing.T) {
	idx := newIndex(t, func(tx *idxsnap.Tx) error {
		pairs := []struct {
			tbl  idxsnap.Table
			key  idxsnap.WordPairProximityKey
			docs *roaring.Bitmap
		}{
			{idxsnap.WordPairProximityDocids, idxsnap.WordPairProximityKey{Word1: "news", Word2: "paper", Proximity: 1}, bm(2)},
			{idxsnap.WordPairProximityDocids, idxsnap.WordPairProximityKey{Word1: "new", Word2: "york", Proximity: 2}, bm(3)},
			{idxsnap.WordPairProximityDocids, idxsnap.WordPairProximityKey{Word1: "new", Word2: "york", Proximity: 1}, bm(1)},
			{idxsnap.WordPrefixPairProximityDocids, idxsnap.WordPairProximityKey{Word1: "news", Word2: "pa", Proximity: 1}, bm(2)},
			{idxsnap.WordPrefixPairProximityDocids, idxsnap.WordPairProximityKey{Word1: "new", Word2: "yo", Proximity: 1}, bm(1)},
		}
		for _, p := range pairs {
			if err := tx.Put(p.tbl, p.key.Encode(), idxsnap.EncodeCboBitmap(p.docs)); err != nil {
				return err
			}
		}
		return nil
	})

	text, err := Snap(idx, WordPairProximityDocids)
	require.NoError(t, err)
	require.Equal(t, "new              york             1  [1, ]\n"+
		"new              york             2  [3, ]\n"+
		"news             paper            1  [2, ]\n", text)

	text, err = Snap(idx, WordPrefixPairProximityDocids)
	require.NoError(t, err)
	require.Equal(t, "new              yo   1  [1, ]\nnews             pa   1  [2, ]\n", text)
}

func TestSnap_Computed(t *testing.T) {
	idx := newIndex(t, fillSample)
	tests := []struct {
		subject  Subject
		expected string
	}{
		{DocumentsIDs, "[1, 5, 9, ]"},
		{SoftDeletedDocumentsIDs, "[]"},
		{GeoFacetedDocumentsIDs, "[]"},
		{StopWords, "<none>"},
		{FieldDistribution, "color            2     \nid               3     \n"},
		{FieldsIDsMap, "0   id              \n1   price           \n2   color           \n"},
		{NumberFacetedDocumentsIDs, "0   []\n1   [1, 5, ]\n2   []\n"},
		{StringFacetedDocumentsIDs, "0   []\n1   []\n2   []\n"},
	}
	for _, tt := range tests {
		t.Run(tt.subject.String(), func(t *testing.T) {
			text, err := Snap(idx, tt.subject)
			require.NoError(t, err)
			require.Equal(t, tt.expected, text)
		})
	}
}

func TestSnap_WordSetsAreHexDumps(t *testing.T) {
	idx := newIndex(t, fillSample)
	text, err := Snap(idx, WordsFST)
	require.NoError(t, err)
	require.Equal(t, HexDump(idxsnap.BuildWordSet([]string{"world", "hello"})), text)

	text, err = Snap(idx, WordsPrefixesFST)
	require.NoError(t, err)
	require.Equal(t, HexDump(idxsnap.BuildWordSet(nil)), text)

	text, err = Snap(idx, ExternalDocumentsIDs)
	require.NoError(t, err)
	empty := HexDump(idxsnap.BuildWordSet(nil))
	require.Equal(t, "soft: "+empty+"\nhard: "+empty+"\n", text)
}

func TestSnap_StopWords(t *testing.T) {
	idx := newIndex(t, func(tx *idxsnap.Tx) error {
		return tx.PutSettings(idxsnap.Settings{StopWords: []string{"the", "a", "of"}})
	})
	text, err := Snap(idx, StopWords)
	require.NoError(t, err)
	require.Equal(t, `["a" "of" "the"]`, text)
}

func TestSnap_DecodeFailureNamesRecordAndReleasesTx(t *testing.T) {
	idx := newIndex(t, func(tx *idxsnap.Tx) error {
		if err := tx.Put(idxsnap.WordDocids, []byte("good"), idxsnap.EncodeBitmap(bm(1))); err != nil {
			return err
		}
		return tx.Put(idxsnap.WordDocids, []byte("ugly"), []byte("not a bitmap"))
	})
	_, err := Snap(idx, WordDocids)
	var te *idxsnap.TableError
	require.ErrorAs(t, err, &te)
	require.Equal(t, idxsnap.WordDocids, te.Table)
	require.Equal(t, []byte("ugly"), te.Key)
	require.Contains(t, err.Error(), "word_docids/75676c79")
	require.Equal(t, int64(0), idx.ReaderCount.Load())
}

func TestSnap_Deterministic(t *testing.T) {
	idx := newIndex(t, fillSample)
	first := make(map[Subject]string)
	for _, s := range Subjects() {
		text, err := Snap(idx, s)
		require.NoError(t, err)
		first[s] = text
	}

	var wg sync.WaitGroup
	for i := 0; i < 8; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for _, s := range Subjects() {
				text, err := Snap(idx, s)
				if err != nil {
					t.Errorf("Snap(%v): %v", s, err)
				} else if text != first[s] {
					t.Errorf("Snap(%v) = %q, wanted %q", s, text, first[s])
				}
			}
		}()
	}
	wg.Wait()
	require.Equal(t, int64(0), idx.ReaderCount.Load())
}
