package idxsnap

import (
	"bytes"
	"errors"
	"slices"
	"sort"

	"github.com/blevesearch/vellum"
)

// WordSet is a compact sorted-string set stored as a finite state transducer.
// Sets built from a map also associate a number (a document id) with each word.
type WordSet struct {
	fst *vellum.FST
	raw []byte
}

// LoadWordSet parses an FST. The data is copied, so it may come from a
// transaction-scoped buffer.
func LoadWordSet(data []byte) (*WordSet, error) {
	raw := slices.Clone(data)
	fst, err := vellum.Load(raw)
	if err != nil {
		return nil, dataErrf(data, 0, err, "invalid word set")
	}
	return &WordSet{fst: fst, raw: raw}, nil
}

// BuildWordSet encodes the given words, which need not be sorted or unique.
func BuildWordSet(words []string) []byte {
	sorted := slices.Clone(words)
	sort.Strings(sorted)
	sorted = slices.Compact(sorted)

	m := make(map[string]uint64, len(sorted))
	for _, w := range sorted {
		m[w] = 0
	}
	return BuildWordMap(m)
}

// BuildWordMap encodes a word to number mapping.
func BuildWordMap(m map[string]uint64) []byte {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	var buf bytes.Buffer
	b := must(vellum.New(&buf, nil))
	for _, k := range keys {
		ensure(b.Insert([]byte(k), m[k]))
	}
	ensure(b.Close())
	return buf.Bytes()
}

// Bytes returns the raw encoded form.
func (ws *WordSet) Bytes() []byte {
	return ws.raw
}

func (ws *WordSet) Len() int {
	return ws.fst.Len()
}

func (ws *WordSet) Get(word string) (uint64, bool) {
	v, ok, err := ws.fst.Get([]byte(word))
	if err != nil {
		return 0, false
	}
	return v, ok
}

// Words returns all words in ascending byte order.
func (ws *WordSet) Words() ([]string, error) {
	var words []string
	itr, err := ws.fst.Iterator(nil, nil)
	for err == nil {
		k, _ := itr.Current()
		words = append(words, string(k))
		err = itr.Next()
	}
	if !errors.Is(err, vellum.ErrIteratorDone) {
		return nil, dataErrf(ws.raw, 0, err, "failed to iterate word set")
	}
	return words, nil
}
