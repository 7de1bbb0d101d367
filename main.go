package idxsnap

import (
	"encoding/binary"
	"sort"

	"github.com/RoaringBitmap/roaring"
)

// Keys of the main table.
const (
	keyPrimaryKey                  = "primary-key"
	keyCriteria                    = "criteria"
	keyDisplayedFields             = "displayed-fields"
	keyDistinctField               = "distinct-field"
	keyFilterableFields            = "filterable-fields"
	keySortableFields              = "sortable-fields"
	keySynonyms                    = "synonyms"
	keyAuthorizeTypos              = "authorize-typos"
	keyOneTypoWordLen              = "one-typo-word-len"
	keyTwoTypoWordLen              = "two-typo-word-len"
	keyExactWords                  = "exact-words"
	keyExactAttributes             = "exact-attributes"
	keyMaxValuesPerFacet           = "max-values-per-facet"
	keyPaginationMaxTotalHits      = "pagination-max-total-hits"
	keySearchableFields            = "searchable-fields"
	keyUserDefinedSearchableFields = "user-defined-searchable-fields"
	keyStopWords                   = "stop-words"
	keyDocumentsIDs                = "documents-ids"
	keySoftDeletedDocumentsIDs     = "soft-deleted-documents-ids"
	keyGeoFacetedDocumentsIDs      = "geo-faceted-documents-ids"
	keyFieldsIDsMap                = "fields-ids-map"
	keyFieldDistribution           = "fields-distribution"
	keyNumberFacetedDocumentsIDs   = "number-faceted-documents-ids"
	keyStringFacetedDocumentsIDs   = "string-faceted-documents-ids"
	keyWordsFST                    = "words-fst"
	keyWordsPrefixesFST            = "words-prefixes-fst"
	keyHardExternalDocumentsIDs    = "hard-external-documents-ids"
	keySoftExternalDocumentsIDs    = "soft-external-documents-ids"
)

const (
	DefaultMinWordLenOneTypo  = 5
	DefaultMinWordLenTwoTypos = 9
)

// Criterion is a ranking rule, e.g. "words" or "asc(price)".
type Criterion string

var DefaultCriteria = []Criterion{"words", "typo", "proximity", "attribute", "sort", "exactness"}

// FieldEntry maps a field id to a field name.
type FieldEntry struct {
	ID   uint16 `msgpack:"i"`
	Name string `msgpack:"n"`
}

// FieldsIDsMap is the bidirectional field name to id mapping, ordered by id.
type FieldsIDsMap struct {
	entries []FieldEntry
}

func NewFieldsIDsMap(entries ...FieldEntry) FieldsIDsMap {
	m := FieldsIDsMap{entries: append([]FieldEntry(nil), entries...)}
	sort.Slice(m.entries, func(i, j int) bool { return m.entries[i].ID < m.entries[j].ID })
	return m
}

func (m FieldsIDsMap) Len() int { return len(m.entries) }

// IDs returns all field ids in ascending order.
func (m FieldsIDsMap) IDs() []uint16 {
	ids := make([]uint16, len(m.entries))
	for i, e := range m.entries {
		ids[i] = e.ID
	}
	return ids
}

func (m FieldsIDsMap) Name(id uint16) (string, bool) {
	i := sort.Search(len(m.entries), func(i int) bool { return m.entries[i].ID >= id })
	if i < len(m.entries) && m.entries[i].ID == id {
		return m.entries[i].Name, true
	}
	return "", false
}

// ExternalDocumentsIDs maps user-facing document ids to internal ids. Soft
// holds recent additions not yet merged into Hard.
type ExternalDocumentsIDs struct {
	Soft *WordSet
	Hard *WordSet
}

func (tx *Tx) mainRaw(key string) ([]byte, error) {
	return tx.Get(Main, []byte(key))
}

func (tx *Tx) mainValue(key string, ptr any) (bool, error) {
	raw, err := tx.mainRaw(key)
	if err != nil || raw == nil {
		return false, err
	}
	if err := decodeValue(raw, ptr); err != nil {
		return false, TableErrf(Main, []byte(key), err, "")
	}
	return true, nil
}

func (tx *Tx) mainString(key string) (string, bool, error) {
	raw, err := tx.mainRaw(key)
	if err != nil || raw == nil {
		return "", false, err
	}
	s, err := DecodeStr(raw)
	if err != nil {
		return "", false, TableErrf(Main, []byte(key), err, "")
	}
	return s, true, nil
}

func (tx *Tx) mainStrings(key string) ([]string, bool, error) {
	var v []string
	found, err := tx.mainValue(key, &v)
	return v, found, err
}

func (tx *Tx) mainSortedStrings(key string) ([]string, error) {
	v, _, err := tx.mainStrings(key)
	if err != nil {
		return nil, err
	}
	if v == nil {
		v = []string{}
	}
	sort.Strings(v)
	return v, nil
}

func (tx *Tx) mainUint(key string) (uint64, bool, error) {
	var v uint64
	found, err := tx.mainValue(key, &v)
	return v, found, err
}

func (tx *Tx) mainBitmap(key []byte) (*roaring.Bitmap, error) {
	raw, err := tx.Get(Main, key)
	if err != nil {
		return nil, err
	}
	bm, err := DecodeBitmap(raw)
	if err != nil {
		return nil, TableErrf(Main, key, err, "")
	}
	return bm, nil
}

func (tx *Tx) mainWordSet(key string) (*WordSet, error) {
	raw, err := tx.mainRaw(key)
	if err != nil || raw == nil {
		return nil, err
	}
	ws, err := LoadWordSet(raw)
	if err != nil {
		return nil, TableErrf(Main, []byte(key), err, "")
	}
	return ws, nil
}

// mainWordSetOrEmpty returns an empty set when the key is absent.
func (tx *Tx) mainWordSetOrEmpty(key string) (*WordSet, error) {
	ws, err := tx.mainWordSet(key)
	if err != nil || ws != nil {
		return ws, err
	}
	return LoadWordSet(BuildWordSet(nil))
}

func (tx *Tx) PrimaryKey() (string, bool, error) {
	return tx.mainString(keyPrimaryKey)
}

// Criteria returns the ranking rules, or DefaultCriteria when none are set.
func (tx *Tx) Criteria() ([]Criterion, error) {
	var v []Criterion
	found, err := tx.mainValue(keyCriteria, &v)
	if err != nil {
		return nil, err
	}
	if !found {
		return append([]Criterion(nil), DefaultCriteria...), nil
	}
	return v, nil
}

func (tx *Tx) DisplayedFields() ([]string, bool, error) {
	return tx.mainStrings(keyDisplayedFields)
}

func (tx *Tx) DistinctField() (string, bool, error) {
	return tx.mainString(keyDistinctField)
}

// FilterableFields returns the filterable field set in sorted order.
func (tx *Tx) FilterableFields() ([]string, error) {
	return tx.mainSortedStrings(keyFilterableFields)
}

// SortableFields returns the sortable field set in sorted order.
func (tx *Tx) SortableFields() ([]string, error) {
	return tx.mainSortedStrings(keySortableFields)
}

// Synonyms maps a space-separated phrase to its alternative phrases, each
// given as a list of words.
func (tx *Tx) Synonyms() (map[string][][]string, error) {
	v := map[string][][]string{}
	_, err := tx.mainValue(keySynonyms, &v)
	if err != nil {
		return nil, err
	}
	return v, nil
}

func (tx *Tx) AuthorizeTypos() (bool, error) {
	var v bool
	found, err := tx.mainValue(keyAuthorizeTypos, &v)
	if err != nil {
		return false, err
	}
	return v || !found, nil
}

func (tx *Tx) MinWordLenOneTypo() (uint8, error) {
	return tx.mainUint8(keyOneTypoWordLen, DefaultMinWordLenOneTypo)
}

func (tx *Tx) MinWordLenTwoTypos() (uint8, error) {
	return tx.mainUint8(keyTwoTypoWordLen, DefaultMinWordLenTwoTypos)
}

func (tx *Tx) mainUint8(key string, def uint8) (uint8, error) {
	raw, err := tx.mainRaw(key)
	if err != nil {
		return 0, err
	}
	switch len(raw) {
	case 0:
		return def, nil
	case 1:
		return raw[0], nil
	default:
		return 0, TableErrf(Main, []byte(key), dataErrf(raw, 0, nil, "invalid u8"), "")
	}
}

// ExactWords returns nil when no exact words are configured.
func (tx *Tx) ExactWords() (*WordSet, error) {
	return tx.mainWordSet(keyExactWords)
}

func (tx *Tx) ExactAttributes() ([]string, error) {
	v, _, err := tx.mainStrings(keyExactAttributes)
	if v == nil && err == nil {
		v = []string{}
	}
	return v, err
}

func (tx *Tx) MaxValuesPerFacet() (uint64, bool, error) {
	return tx.mainUint(keyMaxValuesPerFacet)
}

func (tx *Tx) PaginationMaxTotalHits() (uint64, bool, error) {
	return tx.mainUint(keyPaginationMaxTotalHits)
}

// SearchableFields returns false when every field is searchable.
func (tx *Tx) SearchableFields() ([]string, bool, error) {
	return tx.mainStrings(keySearchableFields)
}

func (tx *Tx) UserDefinedSearchableFields() ([]string, bool, error) {
	return tx.mainStrings(keyUserDefinedSearchableFields)
}

// StopWords returns nil when no stop words are configured.
func (tx *Tx) StopWords() (*WordSet, error) {
	return tx.mainWordSet(keyStopWords)
}

func (tx *Tx) DocumentsIDs() (*roaring.Bitmap, error) {
	return tx.mainBitmap([]byte(keyDocumentsIDs))
}

func (tx *Tx) SoftDeletedDocumentsIDs() (*roaring.Bitmap, error) {
	return tx.mainBitmap([]byte(keySoftDeletedDocumentsIDs))
}

func (tx *Tx) GeoFacetedDocumentsIDs() (*roaring.Bitmap, error) {
	return tx.mainBitmap([]byte(keyGeoFacetedDocumentsIDs))
}

func (tx *Tx) NumberFacetedDocumentsIDs(fid uint16) (*roaring.Bitmap, error) {
	return tx.mainBitmap(fieldKey(keyNumberFacetedDocumentsIDs, fid))
}

func (tx *Tx) StringFacetedDocumentsIDs(fid uint16) (*roaring.Bitmap, error) {
	return tx.mainBitmap(fieldKey(keyStringFacetedDocumentsIDs, fid))
}

func fieldKey(prefix string, fid uint16) []byte {
	return binary.BigEndian.AppendUint16([]byte(prefix), fid)
}

func (tx *Tx) FieldsIDsMap() (FieldsIDsMap, error) {
	var entries []FieldEntry
	if _, err := tx.mainValue(keyFieldsIDsMap, &entries); err != nil {
		return FieldsIDsMap{}, err
	}
	return NewFieldsIDsMap(entries...), nil
}

// FieldDistribution returns the number of documents containing each field.
func (tx *Tx) FieldDistribution() (map[string]uint64, error) {
	v := map[string]uint64{}
	if _, err := tx.mainValue(keyFieldDistribution, &v); err != nil {
		return nil, err
	}
	return v, nil
}

// WordsFST returns the set of all indexed words (empty if none).
func (tx *Tx) WordsFST() (*WordSet, error) {
	return tx.mainWordSetOrEmpty(keyWordsFST)
}

// WordsPrefixesFST returns the set of indexed word prefixes (empty if none).
func (tx *Tx) WordsPrefixesFST() (*WordSet, error) {
	return tx.mainWordSetOrEmpty(keyWordsPrefixesFST)
}

func (tx *Tx) ExternalDocumentsIDs() (ExternalDocumentsIDs, error) {
	var r ExternalDocumentsIDs
	var err error
	if r.Hard, err = tx.mainWordSetOrEmpty(keyHardExternalDocumentsIDs); err != nil {
		return r, err
	}
	if r.Soft, err = tx.mainWordSetOrEmpty(keySoftExternalDocumentsIDs); err != nil {
		return r, err
	}
	return r, nil
}
