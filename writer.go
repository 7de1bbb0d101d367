package idxsnap

import (
	"github.com/RoaringBitmap/roaring"
)

// Settings holds the user-configurable settings. Nil fields are left unset.
type Settings struct {
	PrimaryKey                  *string
	Criteria                    []Criterion
	DisplayedFields             []string
	DistinctField               *string
	FilterableFields            []string
	SortableFields              []string
	Synonyms                    map[string][][]string
	AuthorizeTypos              *bool
	MinWordLenOneTypo           *uint8
	MinWordLenTwoTypos          *uint8
	ExactWords                  []string
	ExactAttributes             []string
	MaxValuesPerFacet           *uint64
	PaginationMaxTotalHits      *uint64
	SearchableFields            []string
	UserDefinedSearchableFields []string
	StopWords                   []string
}

func (tx *Tx) putMain(key string, value []byte) error {
	return tx.Put(Main, []byte(key), value)
}

// PutSettings stores every non-nil setting of s.
func (tx *Tx) PutSettings(s Settings) error {
	var err error
	add := func(key string, value []byte) {
		if err == nil {
			err = tx.putMain(key, value)
		}
	}

	if s.PrimaryKey != nil {
		add(keyPrimaryKey, []byte(*s.PrimaryKey))
	}
	if s.Criteria != nil {
		add(keyCriteria, encodeValue(s.Criteria))
	}
	if s.DisplayedFields != nil {
		add(keyDisplayedFields, encodeValue(s.DisplayedFields))
	}
	if s.DistinctField != nil {
		add(keyDistinctField, []byte(*s.DistinctField))
	}
	if s.FilterableFields != nil {
		add(keyFilterableFields, encodeValue(s.FilterableFields))
	}
	if s.SortableFields != nil {
		add(keySortableFields, encodeValue(s.SortableFields))
	}
	if s.Synonyms != nil {
		add(keySynonyms, encodeValue(s.Synonyms))
	}
	if s.AuthorizeTypos != nil {
		add(keyAuthorizeTypos, encodeValue(*s.AuthorizeTypos))
	}
	if s.MinWordLenOneTypo != nil {
		add(keyOneTypoWordLen, []byte{*s.MinWordLenOneTypo})
	}
	if s.MinWordLenTwoTypos != nil {
		add(keyTwoTypoWordLen, []byte{*s.MinWordLenTwoTypos})
	}
	if s.ExactWords != nil {
		add(keyExactWords, BuildWordSet(s.ExactWords))
	}
	if s.ExactAttributes != nil {
		add(keyExactAttributes, encodeValue(s.ExactAttributes))
	}
	if s.MaxValuesPerFacet != nil {
		add(keyMaxValuesPerFacet, encodeValue(*s.MaxValuesPerFacet))
	}
	if s.PaginationMaxTotalHits != nil {
		add(keyPaginationMaxTotalHits, encodeValue(*s.PaginationMaxTotalHits))
	}
	if s.SearchableFields != nil {
		add(keySearchableFields, encodeValue(s.SearchableFields))
	}
	if s.UserDefinedSearchableFields != nil {
		add(keyUserDefinedSearchableFields, encodeValue(s.UserDefinedSearchableFields))
	}
	if s.StopWords != nil {
		add(keyStopWords, BuildWordSet(s.StopWords))
	}

	return err
}

func (tx *Tx) PutDocumentsIDs(bm *roaring.Bitmap) error {
	return tx.putMain(keyDocumentsIDs, EncodeBitmap(bm))
}

func (tx *Tx) PutSoftDeletedDocumentsIDs(bm *roaring.Bitmap) error {
	return tx.putMain(keySoftDeletedDocumentsIDs, EncodeBitmap(bm))
}

func (tx *Tx) PutGeoFacetedDocumentsIDs(bm *roaring.Bitmap) error {
	return tx.putMain(keyGeoFacetedDocumentsIDs, EncodeBitmap(bm))
}

func (tx *Tx) PutNumberFacetedDocumentsIDs(fid uint16, bm *roaring.Bitmap) error {
	return tx.Put(Main, fieldKey(keyNumberFacetedDocumentsIDs, fid), EncodeBitmap(bm))
}

func (tx *Tx) PutStringFacetedDocumentsIDs(fid uint16, bm *roaring.Bitmap) error {
	return tx.Put(Main, fieldKey(keyStringFacetedDocumentsIDs, fid), EncodeBitmap(bm))
}

func (tx *Tx) PutFieldsIDsMap(m FieldsIDsMap) error {
	return tx.putMain(keyFieldsIDsMap, encodeValue(m.entries))
}

func (tx *Tx) PutFieldDistribution(m map[string]uint64) error {
	return tx.putMain(keyFieldDistribution, encodeValue(m))
}

func (tx *Tx) PutWordsFST(words []string) error {
	return tx.putMain(keyWordsFST, BuildWordSet(words))
}

func (tx *Tx) PutWordsPrefixesFST(prefixes []string) error {
	return tx.putMain(keyWordsPrefixesFST, BuildWordSet(prefixes))
}

func (tx *Tx) PutExternalDocumentsIDs(hard, soft map[string]uint64) error {
	if err := tx.putMain(keyHardExternalDocumentsIDs, BuildWordMap(hard)); err != nil {
		return err
	}
	return tx.putMain(keySoftExternalDocumentsIDs, BuildWordMap(soft))
}
