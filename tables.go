package idxsnap

import "fmt"

// Table identifies one named bucket of the index.
type Table int

const (
	Main Table = iota
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

	tableCount
)

var tableNames = [tableCount]string{
	Main:                          "main",
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
}

// Tables returns every table of the index in catalog order.
func Tables() []Table {
	r := make([]Table, tableCount)
	for i := range r {
		r[i] = Table(i)
	}
	return r
}

func (t Table) Name() string {
	if t < 0 || t >= tableCount {
		return fmt.Sprintf("table(%d)", int(t))
	}
	return tableNames[t]
}

func (t Table) String() string {
	return t.Name()
}

// TableNamed looks a table up by its bucket name.
func TableNamed(name string) (Table, bool) {
	for i, n := range tableNames {
		if n == name {
			return Table(i), true
		}
	}
	return 0, false
}
