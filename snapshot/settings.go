package snapshot

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/andreyvit/idxsnap"
)

// none stands in for a setting that has no value.
const none = "<none>"

type setting struct {
	name string
	repr func(tx *idxsnap.Tx) (string, error)
}

// settings lists the settings block in its fixed output order.
var settings = []setting{
	{"primary_key", func(tx *idxsnap.Tx) (string, error) { return reprOptString(tx.PrimaryKey()) }},
	{"criteria", func(tx *idxsnap.Tx) (string, error) { return reprQuoted(tx.Criteria()) }},
	{"displayed_fields", func(tx *idxsnap.Tx) (string, error) { return reprOptStrings(tx.DisplayedFields()) }},
	{"distinct_field", func(tx *idxsnap.Tx) (string, error) { return reprOptString(tx.DistinctField()) }},
	{"filterable_fields", func(tx *idxsnap.Tx) (string, error) { return reprQuoted(tx.FilterableFields()) }},
	{"sortable_fields", func(tx *idxsnap.Tx) (string, error) { return reprQuoted(tx.SortableFields()) }},
	{"synonyms", func(tx *idxsnap.Tx) (string, error) { return reprQuoted(tx.Synonyms()) }},
	{"authorize_typos", func(tx *idxsnap.Tx) (string, error) {
		v, err := tx.AuthorizeTypos()
		return strconv.FormatBool(v), err
	}},
	{"min_word_len_one_typo", func(tx *idxsnap.Tx) (string, error) { return reprUint8(tx.MinWordLenOneTypo()) }},
	{"min_word_len_two_typos", func(tx *idxsnap.Tx) (string, error) { return reprUint8(tx.MinWordLenTwoTypos()) }},
	{"exact_words", func(tx *idxsnap.Tx) (string, error) {
		ws, err := tx.ExactWords()
		if err != nil {
			return "", err
		}
		return reprWordSet(ws)
	}},
	{"exact_attributes", func(tx *idxsnap.Tx) (string, error) { return reprQuoted(tx.ExactAttributes()) }},
	{"max_values_per_facet", func(tx *idxsnap.Tx) (string, error) { return reprOptUint(tx.MaxValuesPerFacet()) }},
	{"pagination_max_total_hits", func(tx *idxsnap.Tx) (string, error) { return reprOptUint(tx.PaginationMaxTotalHits()) }},
	{"searchable_fields", func(tx *idxsnap.Tx) (string, error) { return reprOptStrings(tx.SearchableFields()) }},
	{"user_defined_searchable_fields", func(tx *idxsnap.Tx) (string, error) { return reprOptStrings(tx.UserDefinedSearchableFields()) }},
}

// SettingNames returns the names of the settings block lines, in order.
func SettingNames() []string {
	names := make([]string, len(settings))
	for i, s := range settings {
		names[i] = s.name
	}
	return names
}

// FormatSettings renders one "name: value" line per setting. When keep is
// non-nil, only settings it accepts are rendered.
func FormatSettings(tx *idxsnap.Tx, keep func(name string) bool) (string, error) {
	var buf strings.Builder
	for _, s := range settings {
		if keep != nil && !keep(s.name) {
			continue
		}
		v, err := s.repr(tx)
		if err != nil {
			return "", fmt.Errorf("setting %s: %w", s.name, err)
		}
		fmt.Fprintf(&buf, "%s: %s\n", s.name, v)
	}
	return buf.String(), nil
}

// reprQuoted renders strings, slices and maps of strings in Go quoted form.
// fmt prints map keys in sorted order.
func reprQuoted[T any](v T, err error) (string, error) {
	if err != nil {
		return "", err
	}
	return fmt.Sprintf("%q", v), nil
}

func reprOptString(v string, ok bool, err error) (string, error) {
	if err != nil || !ok {
		return none, err
	}
	return strconv.Quote(v), nil
}

func reprOptStrings(v []string, ok bool, err error) (string, error) {
	if err != nil || !ok {
		return none, err
	}
	return reprQuoted(v, nil)
}

func reprOptUint(v uint64, ok bool, err error) (string, error) {
	if err != nil || !ok {
		return none, err
	}
	return strconv.FormatUint(v, 10), nil
}

func reprUint8(v uint8, err error) (string, error) {
	return strconv.Itoa(int(v)), err
}

func reprWordSet(ws *idxsnap.WordSet) (string, error) {
	if ws == nil {
		return none, nil
	}
	words, err := ws.Words()
	if err != nil {
		return "", err
	}
	if words == nil {
		words = []string{}
	}
	return reprQuoted(words, nil)
}
