package snapshot

import (
	"fmt"
	"sort"
	"strings"

	"github.com/RoaringBitmap/roaring"

	"github.com/andreyvit/idxsnap"
)

func formatDocumentsIDs(tx *idxsnap.Tx) (string, error) {
	return formatBitmapResult(tx.DocumentsIDs())
}

func formatSoftDeletedDocumentsIDs(tx *idxsnap.Tx) (string, error) {
	return formatBitmapResult(tx.SoftDeletedDocumentsIDs())
}

func formatGeoFacetedDocumentsIDs(tx *idxsnap.Tx) (string, error) {
	return formatBitmapResult(tx.GeoFacetedDocumentsIDs())
}

func formatBitmapResult(bm *roaring.Bitmap, err error) (string, error) {
	if err != nil {
		return "", err
	}
	return FormatBitmap(bm), nil
}

func formatStopWords(tx *idxsnap.Tx) (string, error) {
	ws, err := tx.StopWords()
	if err != nil {
		return "", err
	}
	return reprWordSet(ws)
}

func formatFieldDistribution(tx *idxsnap.Tx) (string, error) {
	dist, err := tx.FieldDistribution()
	if err != nil {
		return "", err
	}
	fields := make([]string, 0, len(dist))
	for f := range dist {
		fields = append(fields, f)
	}
	sort.Strings(fields)

	var buf strings.Builder
	for _, f := range fields {
		fmt.Fprintf(&buf, "%-*s %-*d\n", fieldNameWidth, f, countWidth, dist[f])
	}
	return buf.String(), nil
}

func formatFieldsIDsMap(tx *idxsnap.Tx) (string, error) {
	m, err := tx.FieldsIDsMap()
	if err != nil {
		return "", err
	}
	var buf strings.Builder
	for _, id := range m.IDs() {
		name, _ := m.Name(id)
		fmt.Fprintf(&buf, "%-*d %-*s\n", fieldIDWidth, id, fieldNameWidth, name)
	}
	return buf.String(), nil
}

func formatExternalDocumentsIDs(tx *idxsnap.Tx) (string, error) {
	ext, err := tx.ExternalDocumentsIDs()
	if err != nil {
		return "", err
	}
	var buf strings.Builder
	fmt.Fprintf(&buf, "soft: %s\n", HexDump(ext.Soft.Bytes()))
	fmt.Fprintf(&buf, "hard: %s\n", HexDump(ext.Hard.Bytes()))
	return buf.String(), nil
}

// facetedDocumentsIDs renders one line per known field id.
func facetedDocumentsIDs(get func(tx *idxsnap.Tx, fid uint16) (*roaring.Bitmap, error)) Formatter {
	return FormatterFunc(func(tx *idxsnap.Tx) (string, error) {
		m, err := tx.FieldsIDsMap()
		if err != nil {
			return "", err
		}
		var buf strings.Builder
		for _, fid := range m.IDs() {
			bm, err := get(tx, fid)
			if err != nil {
				return "", err
			}
			fmt.Fprintf(&buf, "%-*d %s\n", fieldIDWidth, fid, FormatBitmap(bm))
		}
		return buf.String(), nil
	})
}

func wordSetDump(get func(tx *idxsnap.Tx) (*idxsnap.WordSet, error)) Formatter {
	return FormatterFunc(func(tx *idxsnap.Tx) (string, error) {
		ws, err := get(tx)
		if err != nil {
			return "", err
		}
		return HexDump(ws.Bytes()), nil
	})
}
