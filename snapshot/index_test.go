package snapshot

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func snapNames(snaps []Snapshot) []string {
	var names []string
	for _, s := range snaps {
		names = append(names, s.Name())
	}
	return names
}

func TestSnapIndex_All(t *testing.T) {
	idx := newIndex(t, fillSample)
	snaps, err := SnapIndex(idx, Filter{})
	require.NoError(t, err)
	require.Len(t, snaps, len(Subjects()))
	for i, s := range snaps {
		require.Equal(t, Subject(i), s.Subject)
		want, err := Snap(idx, s.Subject)
		require.NoError(t, err)
		require.Equal(t, want, s.Text)
	}
	require.Equal(t, int64(0), idx.ReaderCount.Load())
}

func TestSnapIndex_Filter(t *testing.T) {
	idx := newIndex(t, fillSample)

	f, err := NewFilter(`^word_`, `proximity`)
	require.NoError(t, err)
	snaps, err := SnapIndex(idx, f)
	require.NoError(t, err)
	require.Equal(t, []string{"word_docids", "word_prefix_docids", "word_position_docids", "word_prefix_position_docids"}, snapNames(snaps))

	f, err = NewFilter(`^settings\.(primary_key|criteria)$`, "")
	require.NoError(t, err)
	snaps, err = SnapIndex(idx, f)
	require.NoError(t, err)
	require.Equal(t, []string{"settings"}, snapNames(snaps))
	require.Equal(t, "primary_key: <none>\ncriteria: [\"words\" \"typo\" \"proximity\" \"attribute\" \"sort\" \"exactness\"]\n", snaps[0].Text)

	f, err = NewFilter("", `^settings`)
	require.NoError(t, err)
	snaps, err = SnapIndex(idx, f)
	require.NoError(t, err)
	require.NotContains(t, snapNames(snaps), "settings")
	require.Len(t, snaps, len(Subjects())-1)
}

func TestNewFilter_Invalid(t *testing.T) {
	_, err := NewFilter("(", "")
	require.ErrorContains(t, err, "include")
	_, err = NewFilter("", "[")
	require.ErrorContains(t, err, "exclude")
}

func TestFilter_Allows(t *testing.T) {
	require.True(t, Filter{}.Allows("anything"))
	f, err := NewFilter("docids", "exact")
	require.NoError(t, err)
	require.True(t, f.Allows("word_docids"))
	require.False(t, f.Allows("exact_word_docids"))
	require.False(t, f.Allows("fields_ids_map"))
}
