package idxsnap

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestFacetStringLevelZero_RoundTrip(t *testing.T) {
	k := FacetStringLevelZeroKey{FieldID: 2, Normalized: "blue"}
	require.Equal(t, append([]byte{0, 2, 0}, "blue"...), k.Encode())
	gotK, err := DecodeFacetStringLevelZeroKey(k.Encode())
	require.NoError(t, err)
	require.Equal(t, k, gotK)

	v := FacetStringLevelZeroValue{Original: "Blue", Docids: bitmapOf(1, 4)}
	gotV, err := DecodeFacetStringLevelZeroValue(v.Encode())
	require.NoError(t, err)
	require.Equal(t, "Blue", gotV.Original)
	require.True(t, gotV.Docids.Equals(v.Docids))
}

func TestFacetLevelU32Key_RoundTrip(t *testing.T) {
	k := FacetLevelU32Key{FieldID: 2, Level: 1, Left: 0, Right: 3}
	require.Len(t, k.Encode(), 11)
	got, err := DecodeFacetLevelU32Key(k.Encode())
	require.NoError(t, err)
	require.Equal(t, k, got)
}

func TestFacetKeys_ShapeMismatch(t *testing.T) {
	leveled := FacetLevelU32Key{FieldID: 2, Level: 1, Left: 0, Right: 3}.Encode()
	_, err := DecodeFacetStringLevelZeroKey(leveled)
	require.ErrorIs(t, err, ErrShapeMismatch)

	leaf := FacetStringLevelZeroKey{FieldID: 2, Normalized: "blue"}.Encode()
	_, err = DecodeFacetLevelU32Key(leaf)
	require.ErrorIs(t, err, ErrShapeMismatch)

	_, err = DecodeFacetStringLevelZeroKey([]byte{0, 2})
	require.ErrorIs(t, err, ErrShapeMismatch)

	// a level-0 key with a non-UTF-8 string is corrupt, not another shape
	_, err = DecodeFacetStringLevelZeroKey([]byte{0, 2, 0, 0xff})
	require.Error(t, err)
	require.NotErrorIs(t, err, ErrShapeMismatch)
}

func TestFacetStringBoundsValue(t *testing.T) {
	withBounds := FacetStringBoundsValue{Bounds: &StringBounds{Low: "blue", High: "red"}, Docids: bitmapOf(1, 2, 3)}
	got, err := DecodeFacetStringBoundsValue(withBounds.Encode())
	require.NoError(t, err)
	require.Equal(t, withBounds.Bounds, got.Bounds)
	require.True(t, got.Docids.Equals(withBounds.Docids))

	noBounds := FacetStringBoundsValue{Docids: bitmapOf(9)}
	got, err = DecodeFacetStringBoundsValue(noBounds.Encode())
	require.NoError(t, err)
	require.Nil(t, got.Bounds)
	require.Equal(t, []uint32{9}, got.Docids.ToArray())

	_, err = DecodeFacetStringBoundsValue([]byte{2, 0, 0, 0, 0})
	var de *DataError
	require.ErrorAs(t, err, &de)

	_, err = DecodeFacetStringBoundsValue(nil)
	require.Error(t, err)
}
