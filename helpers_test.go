package idxsnap

import (
	"path/filepath"
	"testing"

	"github.com/RoaringBitmap/roaring"
	"github.com/stretchr/testify/require"
)

func setup(t testing.TB) *Index {
	t.Helper()
	idx := OpenMemory(Options{IsTesting: true})
	t.Cleanup(func() { idx.Close() })
	return idx
}

func setupBolt(t testing.TB) (*Index, string) {
	t.Helper()
	path := filepath.Join(t.TempDir(), "index.db")
	idx, err := Open(path, Options{IsTesting: true})
	require.NoError(t, err)
	t.Cleanup(func() { idx.Close() })
	return idx, path
}

func write(t testing.TB, idx *Index, f func(tx *Tx) error) {
	t.Helper()
	require.NoError(t, idx.Write(f))
}

func bitmapOf(ids ...uint32) *roaring.Bitmap {
	return roaring.BitmapOf(ids...)
}

func ptr[T any](v T) *T {
	return &v
}
