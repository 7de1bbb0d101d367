package idxsnap

import (
	"bytes"
	"fmt"
	"log/slog"
)

// Tx is a transaction over the index. Read transactions observe a consistent
// point-in-time view and never block each other.
type Tx struct {
	idx    *Index
	stx    storageTx
	closed bool
}

func (idx *Index) BeginRead() (*Tx, error) {
	stx, err := idx.st.BeginTx(false)
	if err != nil {
		return nil, fmt.Errorf("failed to start reading: %w", err)
	}
	idx.ReaderCount.Add(1)
	idx.ReadCount.Add(1)
	return &Tx{idx: idx, stx: stx}, nil
}

// Read runs f inside a read transaction. The transaction is released on every
// exit path, including a panic inside f.
func (idx *Index) Read(f func(tx *Tx) error) error {
	tx, err := idx.BeginRead()
	if err != nil {
		return err
	}
	defer tx.Close()
	return f(tx)
}

// Write runs f inside a writable transaction and commits if f succeeds.
func (idx *Index) Write(f func(tx *Tx) error) error {
	stx, err := idx.st.BeginTx(true)
	if err != nil {
		return fmt.Errorf("failed to start writing: %w", err)
	}
	tx := &Tx{idx: idx, stx: stx}
	defer tx.Close()
	idx.WriteCount.Add(1)

	if err := f(tx); err != nil {
		return err
	}
	if err := stx.Commit(); err != nil {
		return fmt.Errorf("commit: %w", err)
	}
	return nil
}

func (tx *Tx) Index() *Index {
	return tx.idx
}

func (tx *Tx) IsWritable() bool {
	return tx.stx.Writable()
}

// Close rolls back the transaction. Safe to call after Commit and more than once.
func (tx *Tx) Close() {
	if tx.closed {
		return
	}
	tx.closed = true
	ensure(tx.stx.Rollback())
	if !tx.stx.Writable() {
		tx.idx.ReaderCount.Add(-1)
	}
}

func (tx *Tx) bucket(tbl Table) (storageBucket, error) {
	if tx.closed {
		panic("tx is closed")
	}
	b := tx.stx.Bucket(tbl.Name())
	if b == nil {
		return nil, TableErrf(tbl, nil, ErrTableNotFound, "")
	}
	return b, nil
}

// Iterate calls f for every record of tbl in ascending key order. Key and value
// are only valid until f returns.
func (tx *Tx) Iterate(tbl Table, f func(k, v []byte) error) error {
	return tx.IteratePrefix(tbl, nil, f)
}

// IteratePrefix is like Iterate but limited to keys starting with prefix.
func (tx *Tx) IteratePrefix(tbl Table, prefix []byte, f func(k, v []byte) error) error {
	b, err := tx.bucket(tbl)
	if err != nil {
		return err
	}
	c := b.Cursor()
	var k, v []byte
	if len(prefix) == 0 {
		k, v = c.First()
	} else {
		k, v = c.Seek(prefix)
	}
	for ; k != nil && bytes.HasPrefix(k, prefix); k, v = c.Next() {
		if tx.idx.verbose {
			slog.Debug("idxsnap: record", "table", tbl.Name(), hexAttr("key", k))
		}
		if err := f(k, v); err != nil {
			return err
		}
	}
	return nil
}

// Get returns the value stored under key, or nil.
func (tx *Tx) Get(tbl Table, key []byte) ([]byte, error) {
	b, err := tx.bucket(tbl)
	if err != nil {
		return nil, err
	}
	return b.Get(key), nil
}

// Put stores a record. Only valid inside Index.Write.
func (tx *Tx) Put(tbl Table, key, value []byte) error {
	b, err := tx.bucket(tbl)
	if err != nil {
		return err
	}
	if err := b.Put(key, value); err != nil {
		return TableErrf(tbl, key, err, "put")
	}
	return nil
}

// KeyCount returns the number of records in tbl.
func (tx *Tx) KeyCount(tbl Table) (int, error) {
	b, err := tx.bucket(tbl)
	if err != nil {
		return 0, err
	}
	return b.KeyCount(), nil
}
