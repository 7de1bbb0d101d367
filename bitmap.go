package idxsnap

import (
	"encoding/binary"

	"github.com/RoaringBitmap/roaring"
)

// cboThreshold is the largest set size that CBO encoding stores as a plain
// list of little-endian u32s. A roaring payload without run containers is
// always longer than cboThreshold*4 bytes, which keeps the two forms apart.
const cboThreshold = 7

// DecodeBitmap decodes a roaring portable serialization.
func DecodeBitmap(data []byte) (*roaring.Bitmap, error) {
	bm := roaring.New()
	if len(data) == 0 {
		return bm, nil
	}
	if err := bm.UnmarshalBinary(data); err != nil {
		return nil, dataErrf(data, 0, err, "invalid roaring bitmap")
	}
	return bm, nil
}

// EncodeBitmap serializes bm in roaring portable format.
func EncodeBitmap(bm *roaring.Bitmap) []byte {
	return must(bm.ToBytes())
}

// DecodeCboBitmap decodes a bitmap written by EncodeCboBitmap.
func DecodeCboBitmap(data []byte) (*roaring.Bitmap, error) {
	if len(data) <= cboThreshold*4 {
		if len(data)%4 != 0 {
			return nil, dataErrf(data, 0, nil, "invalid CBO bitmap: length %d is not a multiple of 4", len(data))
		}
		bm := roaring.New()
		for off := 0; off < len(data); off += 4 {
			bm.Add(binary.LittleEndian.Uint32(data[off:]))
		}
		return bm, nil
	}
	return DecodeBitmap(data)
}

// EncodeCboBitmap serializes small sets as raw u32s and larger ones as roaring.
func EncodeCboBitmap(bm *roaring.Bitmap) []byte {
	if bm.GetCardinality() <= cboThreshold {
		buf := make([]byte, 0, cboThreshold*4)
		it := bm.Iterator()
		for it.HasNext() {
			buf = binary.LittleEndian.AppendUint32(buf, it.Next())
		}
		return buf
	}
	return EncodeBitmap(bm)
}
