package snapshot

import (
	"errors"
	"fmt"
	"slices"
	"strings"

	"github.com/andreyvit/idxsnap"
)

// ErrUnknownSubject is returned for a subject with no registered formatter.
var ErrUnknownSubject = errors.New("unknown snapshot subject")

// Subject names something that can be snapshotted: a table or a value
// computed from the main table.
type Subject int

const (
	Settings Subject = iota
	WordDocids
	ExactWordDocids
	WordPrefixDocids
	ExactWordPrefixDocids
	DocidWordPositions
	WordPairProximityDocids
	WordPrefixPairProximityDocids
	WordPositionDocids
	FieldIDWordCountDocids
	WordPrefixPositionDocids
	FacetIDF64Docids
	FacetIDStringDocids
	DocumentsIDs
	StopWords
	SoftDeletedDocumentsIDs
	FieldDistribution
	FieldsIDsMap
	GeoFacetedDocumentsIDs
	ExternalDocumentsIDs
	NumberFacetedDocumentsIDs
	StringFacetedDocumentsIDs
	WordsFST
	WordsPrefixesFST

	subjectCount
)

var subjectNames = [subjectCount]string{
	Settings:                      "settings",
	WordDocids:                    "word_docids",
	ExactWordDocids:               "exact_word_docids",
	WordPrefixDocids:              "word_prefix_docids",
	ExactWordPrefixDocids:         "exact_word_prefix_docids",
	DocidWordPositions:            "docid_word_positions",
	WordPairProximityDocids:       "word_pair_proximity_docids",
	WordPrefixPairProximityDocids: "word_prefix_pair_proximity_docids",
	WordPositionDocids:            "word_position_docids",
	FieldIDWordCountDocids:        "field_id_word_count_docids",
	WordPrefixPositionDocids:      "word_prefix_position_docids",
	FacetIDF64Docids:              "facet_id_f64_docids",
	FacetIDStringDocids:           "facet_id_string_docids",
	DocumentsIDs:                  "documents_ids",
	StopWords:                     "stop_words",
	SoftDeletedDocumentsIDs:       "soft_deleted_documents_ids",
	FieldDistribution:             "field_distribution",
	FieldsIDsMap:                  "fields_ids_map",
	GeoFacetedDocumentsIDs:        "geo_faceted_documents_ids",
	ExternalDocumentsIDs:          "external_documents_ids",
	NumberFacetedDocumentsIDs:     "number_faceted_documents_ids",
	StringFacetedDocumentsIDs:     "string_faceted_documents_ids",
	WordsFST:                      "words_fst",
	WordsPrefixesFST:              "words_prefixes_fst",
}

func (s Subject) String() string {
	if s < 0 || s >= subjectCount {
		return fmt.Sprintf("subject(%d)", int(s))
	}
	return subjectNames[s]
}

// Subjects returns every subject in registry order.
func Subjects() []Subject {
	r := make([]Subject, subjectCount)
	for i := range r {
		r[i] = Subject(i)
	}
	return r
}

func ParseSubject(name string) (Subject, error) {
	i := slices.Index(subjectNames[:], name)
	if i < 0 {
		return 0, fmt.Errorf("%w: %q", ErrUnknownSubject, name)
	}
	return Subject(i), nil
}

// Formatter renders one subject from a read transaction.
type Formatter interface {
	Format(tx *idxsnap.Tx) (string, error)
}

type FormatterFunc func(tx *idxsnap.Tx) (string, error)

func (f FormatterFunc) Format(tx *idxsnap.Tx) (string, error) {
	return f(tx)
}

var registry = map[Subject]Formatter{
	Settings:                      FormatterFunc(func(tx *idxsnap.Tx) (string, error) { return FormatSettings(tx, nil) }),
	WordDocids:                    wordTable(idxsnap.WordDocids),
	ExactWordDocids:               wordTable(idxsnap.ExactWordDocids),
	WordPrefixDocids:              wordTable(idxsnap.WordPrefixDocids),
	ExactWordPrefixDocids:         wordTable(idxsnap.ExactWordPrefixDocids),
	DocidWordPositions:            docidWordPositionsTable,
	WordPairProximityDocids:       wordPairProximityTable,
	WordPrefixPairProximityDocids: wordPrefixPairProximityTable,
	WordPositionDocids:            wordPositionTable,
	FieldIDWordCountDocids:        fieldIDWordCountTable,
	WordPrefixPositionDocids:      wordPrefixPositionTable,
	FacetIDF64Docids:              facetF64Table,
	FacetIDStringDocids:           facetStringTable,
	DocumentsIDs:                  FormatterFunc(formatDocumentsIDs),
	StopWords:                     FormatterFunc(formatStopWords),
	SoftDeletedDocumentsIDs:       FormatterFunc(formatSoftDeletedDocumentsIDs),
	FieldDistribution:             FormatterFunc(formatFieldDistribution),
	FieldsIDsMap:                  FormatterFunc(formatFieldsIDsMap),
	GeoFacetedDocumentsIDs:        FormatterFunc(formatGeoFacetedDocumentsIDs),
	ExternalDocumentsIDs:          FormatterFunc(formatExternalDocumentsIDs),
	NumberFacetedDocumentsIDs:     facetedDocumentsIDs((*idxsnap.Tx).NumberFacetedDocumentsIDs),
	StringFacetedDocumentsIDs:     facetedDocumentsIDs((*idxsnap.Tx).StringFacetedDocumentsIDs),
	WordsFST:                      wordSetDump((*idxsnap.Tx).WordsFST),
	WordsPrefixesFST:              wordSetDump((*idxsnap.Tx).WordsPrefixesFST),
}

// Render renders subject s inside an already open read transaction.
func Render(tx *idxsnap.Tx, s Subject) (string, error) {
	f := registry[s]
	if f == nil {
		return "", fmt.Errorf("%w: %v", ErrUnknownSubject, s)
	}
	return f.Format(tx)
}

// Snap renders subject s from a fresh read transaction, which is released
// before Snap returns.
func Snap(idx *idxsnap.Index, s Subject) (string, error) {
	var text string
	err := idx.Read(func(tx *idxsnap.Tx) error {
		var err error
		text, err = Render(tx, s)
		return err
	})
	if err != nil {
		return "", fmt.Errorf("snapshot %v: %w", s, err)
	}
	return text, nil
}

// entryFormatter renders one line per record of a table, in key order.
type entryFormatter struct {
	table idxsnap.Table
	line  func(w *strings.Builder, k, v []byte) error
}

func (f entryFormatter) Format(tx *idxsnap.Tx) (string, error) {
	var buf strings.Builder
	err := tx.Iterate(f.table, func(k, v []byte) error {
		if err := f.line(&buf, k, v); err != nil {
			return idxsnap.TableErrf(f.table, slices.Clone(k), err, "cannot decode record")
		}
		buf.WriteByte('\n')
		return nil
	})
	if err != nil {
		return "", err
	}
	return buf.String(), nil
}
