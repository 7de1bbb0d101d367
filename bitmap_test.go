package idxsnap

import (
	"encoding/binary"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestCboBitmap_SmallSetsAreRaw(t *testing.T) {
	bm := bitmapOf(1, 5, 9)
	data := EncodeCboBitmap(bm)
	require.Len(t, data, 12)
	require.Equal(t, uint32(1), binary.LittleEndian.Uint32(data))
	require.Equal(t, uint32(9), binary.LittleEndian.Uint32(data[8:]))

	got, err := DecodeCboBitmap(data)
	require.NoError(t, err)
	require.Equal(t, []uint32{1, 5, 9}, got.ToArray())
}

func TestCboBitmap_LargeSetsAreRoaring(t *testing.T) {
	for _, n := range []uint32{cboThreshold, cboThreshold + 1, 1000} {
		bm := bitmapOf()
		for i := uint32(0); i < n; i++ {
			bm.Add(i * 3)
		}
		data := EncodeCboBitmap(bm)
		if n <= cboThreshold {
			require.Len(t, data, int(n)*4)
		} else {
			require.Greater(t, len(data), cboThreshold*4)
		}
		got, err := DecodeCboBitmap(data)
		require.NoError(t, err)
		require.True(t, got.Equals(bm), "n=%d", n)
	}
}

func TestCboBitmap_Empty(t *testing.T) {
	data := EncodeCboBitmap(bitmapOf())
	require.Empty(t, data)
	got, err := DecodeCboBitmap(data)
	require.NoError(t, err)
	require.True(t, got.IsEmpty())
}

func TestCboBitmap_RaggedLength(t *testing.T) {
	_, err := DecodeCboBitmap([]byte{1, 0, 0, 0, 2})
	var de *DataError
	require.ErrorAs(t, err, &de)
}

func TestBitmap_RoundTripAndGarbage(t *testing.T) {
	bm := bitmapOf(0, 7, 1<<20)
	got, err := DecodeBitmap(EncodeBitmap(bm))
	require.NoError(t, err)
	require.True(t, got.Equals(bm))

	got, err = DecodeBitmap(nil)
	require.NoError(t, err)
	require.True(t, got.IsEmpty())

	_, err = DecodeBitmap([]byte("definitely not a bitmap"))
	require.Error(t, err)
}
