package idxsnap

import (
	"bytes"
	"errors"
	"slices"
	"sort"
	"sync"
)

var (
	errMemClosed      = errors.New("in-memory index is closed")
	errMemNotWritable = errors.New("read-only transaction")
)

// memStorage keeps committed tables as immutable sorted record slices.
// Readers share the committed map without copying. A writer copies the map
// when it begins, copies a table on its first Put, and publishes its map on
// Commit. Writers are serialized by writeMu, held from BeginTx until the
// transaction ends.
type memStorage struct {
	writeMu sync.Mutex

	mu     sync.RWMutex
	tables map[string]memRecords
	closed bool
}

type memRecords []memKV

type memKV struct {
	key   []byte
	value []byte
}

func (recs memRecords) search(key []byte) (int, bool) {
	i := sort.Search(len(recs), func(i int) bool {
		return bytes.Compare(recs[i].key, key) >= 0
	})
	return i, i < len(recs) && bytes.Equal(recs[i].key, key)
}

// newMemStorage returns a transient storage for tests.
func newMemStorage() storage {
	return &memStorage{tables: make(map[string]memRecords)}
}

func (s *memStorage) BeginTx(writable bool) (storageTx, error) {
	if writable {
		s.writeMu.Lock()
	}
	s.mu.RLock()
	defer s.mu.RUnlock()
	if s.closed {
		if writable {
			s.writeMu.Unlock()
		}
		return nil, errMemClosed
	}
	tx := &memTx{st: s, writable: writable, tables: s.tables}
	if writable {
		tx.tables = make(map[string]memRecords, len(s.tables))
		for name, recs := range s.tables {
			tx.tables[name] = recs
		}
		tx.owned = make(map[string]bool)
	}
	return tx, nil
}

func (s *memStorage) Close() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.closed = true
	s.tables = nil
	return nil
}

type memTx struct {
	st       *memStorage
	writable bool
	tables   map[string]memRecords
	// owned are the tables this writer has already copied.
	owned map[string]bool
	done  bool
}

func (tx *memTx) Writable() bool { return tx.writable }

func (tx *memTx) Bucket(name string) storageBucket {
	if tx.done {
		panic("tx is closed")
	}
	if _, ok := tx.tables[name]; !ok {
		return nil
	}
	return memTable{tx, name}
}

func (tx *memTx) CreateBucket(name string) (storageBucket, error) {
	if !tx.writable {
		return nil, errMemNotWritable
	}
	if _, ok := tx.tables[name]; !ok {
		tx.tables[name] = nil
		tx.owned[name] = true
	}
	return memTable{tx, name}, nil
}

func (tx *memTx) Commit() error {
	if tx.done {
		return nil
	}
	if !tx.writable {
		return errMemNotWritable
	}
	defer tx.end()
	tx.st.mu.Lock()
	defer tx.st.mu.Unlock()
	if tx.st.closed {
		return errMemClosed
	}
	tx.st.tables = tx.tables
	return nil
}

func (tx *memTx) Rollback() error {
	tx.end()
	return nil
}

func (tx *memTx) end() {
	if tx.done {
		return
	}
	tx.done = true
	if tx.writable {
		tx.st.writeMu.Unlock()
	}
}

// memTable is a table as seen by one transaction.
type memTable struct {
	tx   *memTx
	name string
}

func (t memTable) records() memRecords {
	return t.tx.tables[t.name]
}

func (t memTable) Get(key []byte) []byte {
	recs := t.records()
	if i, ok := recs.search(key); ok {
		return recs[i].value
	}
	return nil
}

func (t memTable) Put(key, value []byte) error {
	if !t.tx.writable {
		return errMemNotWritable
	}
	recs := t.records()
	if !t.tx.owned[t.name] {
		recs = slices.Clone(recs)
		t.tx.owned[t.name] = true
	}
	kv := memKV{slices.Clone(key), slices.Clone(value)}
	if i, ok := recs.search(key); ok {
		recs[i] = kv
	} else {
		recs = slices.Insert(recs, i, kv)
	}
	t.tx.tables[t.name] = recs
	return nil
}

func (t memTable) Cursor() storageCursor {
	return &memCursor{recs: t.records(), pos: -1}
}

func (t memTable) KeyCount() int { return len(t.records()) }

// memCursor walks the records the table held when the cursor was created.
type memCursor struct {
	recs memRecords
	pos  int
}

func (c *memCursor) at(i int) ([]byte, []byte) {
	c.pos = i
	if i >= len(c.recs) {
		return nil, nil
	}
	return c.recs[i].key, c.recs[i].value
}

func (c *memCursor) First() ([]byte, []byte) {
	return c.at(0)
}

func (c *memCursor) Seek(seek []byte) ([]byte, []byte) {
	i, _ := c.recs.search(seek)
	return c.at(i)
}

func (c *memCursor) Next() ([]byte, []byte) {
	return c.at(c.pos + 1)
}
