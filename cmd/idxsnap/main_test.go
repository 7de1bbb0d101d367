package main

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"

	"github.com/RoaringBitmap/roaring"
	"github.com/stretchr/testify/require"
	"gopkg.in/yaml.v3"

	"github.com/andreyvit/idxsnap"
	"github.com/andreyvit/idxsnap/snapshot"
)

func makeIndex(t *testing.T) string {
	path := filepath.Join(t.TempDir(), "index.db")
	idx, err := idxsnap.Open(path, idxsnap.Options{IsTesting: true})
	require.NoError(t, err)
	require.NoError(t, idx.Write(func(tx *idxsnap.Tx) error {
		if err := tx.Put(idxsnap.WordDocids, []byte("hello"), idxsnap.EncodeBitmap(roaring.BitmapOf(1, 5, 9))); err != nil {
			return err
		}
		return tx.PutDocumentsIDs(roaring.BitmapOf(1, 5, 9))
	}))
	require.NoError(t, idx.Close())
	return path
}

func TestRun_Subject(t *testing.T) {
	path := makeIndex(t)
	var out bytes.Buffer
	require.NoError(t, run([]string{"--db", path, "--subject", "word_docids"}, &out))
	require.Equal(t, "hello            [1, 5, 9, ]\n", out.String())
}

func TestRun_AllYAML(t *testing.T) {
	unsetenv(t, "IDXSNAP_FULL_SNAPS")
	path := makeIndex(t)
	var out bytes.Buffer
	require.NoError(t, run([]string{"--db", path, "--all", "--include", "^(documents_ids|settings)", "--reduce", "--inline", "--format", "yaml"}, &out))

	var recs []snapshot.Record
	require.NoError(t, yaml.Unmarshal(out.Bytes(), &recs))
	require.Len(t, recs, 2)
	require.Equal(t, "settings.hash", recs[0].Name)
	require.Len(t, recs[0].Content, 32)
	require.Equal(t, snapshot.Record{Name: "documents_ids", Content: "[1, 5, 9, ]"}, recs[1])
}

func TestRun_AllText(t *testing.T) {
	path := makeIndex(t)
	var out bytes.Buffer
	require.NoError(t, run([]string{"--db", path, "--all", "--include", "docids$|^documents_ids$", "--exclude", "prefix|exact|proximity|position|facet|count"}, &out))
	require.Equal(t, "--- word_docids\nhello            [1, 5, 9, ]\n--- documents_ids\n[1, 5, 9, ]", out.String())
}

func TestRun_Errors(t *testing.T) {
	path := makeIndex(t)
	for _, args := range [][]string{
		{"--subject", "word_docids"},
		{"--db", path},
		{"--db", path, "--all", "--subject", "word_docids"},
		{"--db", path, "--subject", "nope"},
		{"--db", path, "--subject", "word_docids", "--format", "json"},
		{"--db", path, "--all", "--include", "("},
		{"--db", path, "--subject", "word_docids", "extra"},
		{"--db", filepath.Join(t.TempDir(), "missing", "x.db"), "--subject", "word_docids"},
	} {
		var out bytes.Buffer
		require.Error(t, run(args, &out), "%q", args)
	}
}

func TestRun_Dump(t *testing.T) {
	path := makeIndex(t)
	var out bytes.Buffer
	require.NoError(t, run([]string{"--db", path, "--dump"}, &out))
	require.Contains(t, out.String(), "word_docids (1 rows)\n")
	require.Contains(t, out.String(), "word_docids.1: 68656c6c6f = ")
}

// unsetenv removes environment variables for the duration of the test.
func unsetenv(t *testing.T, keys ...string) {
	for _, key := range keys {
		t.Setenv(key, "")
		os.Unsetenv(key)
	}
}
