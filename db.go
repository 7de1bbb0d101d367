package idxsnap

import (
	"fmt"
	"sync/atomic"
	"time"

	"go.etcd.io/bbolt"
)

// Index is a search index laid out as a set of sorted binary tables.
type Index struct {
	st      storage
	logf    func(format string, args ...any)
	verbose bool

	ReaderCount atomic.Int64
	ReadCount   atomic.Uint64
	WriteCount  atomic.Uint64
}

type Options struct {
	Logf      func(format string, args ...any)
	Verbose   bool
	IsTesting bool
	MmapSize  int
	ReadOnly  bool
}

// Open opens a Bolt-backed index. Unless opt.ReadOnly is set, missing tables
// are created.
func Open(path string, opt Options) (*Index, error) {
	bopt := &bbolt.Options{}
	*bopt = *bbolt.DefaultOptions
	bopt.Timeout = 10 * time.Second
	bopt.ReadOnly = opt.ReadOnly
	if opt.IsTesting {
		bopt.NoSync = true
		bopt.NoFreelistSync = true
		bopt.InitialMmapSize = 1024 * 1024 * 5
	} else {
		bopt.FreelistType = bbolt.FreelistMapType
	}
	if opt.MmapSize != 0 {
		bopt.InitialMmapSize = opt.MmapSize
	}

	bdb, err := bbolt.Open(path, 0666, bopt)
	if err != nil {
		return nil, fmt.Errorf("idxsnap: %w", err)
	}
	return newIndex(newBoltStorage(bdb), opt)
}

// OpenMemory returns a transient in-memory index, intended for tests.
func OpenMemory(opt Options) *Index {
	return must(newIndex(newMemStorage(), opt))
}

func newIndex(st storage, opt Options) (*Index, error) {
	idx := &Index{
		st:      st,
		logf:    opt.Logf,
		verbose: opt.Verbose,
	}
	if opt.ReadOnly {
		return idx, nil
	}
	err := idx.Write(func(tx *Tx) error {
		for _, tbl := range Tables() {
			if _, err := tx.stx.CreateBucket(tbl.Name()); err != nil {
				return fmt.Errorf("creating %s: %w", tbl.Name(), err)
			}
		}
		return nil
	})
	if err != nil {
		st.Close()
		return nil, fmt.Errorf("idxsnap: %w", err)
	}
	idx.debugf("idxsnap: prepared %d tables", len(Tables()))
	return idx, nil
}

func (idx *Index) Close() error {
	return idx.st.Close()
}

func (idx *Index) debugf(format string, args ...any) {
	if idx.verbose && idx.logf != nil {
		idx.logf(format, args...)
	}
}
