package snapshot

import (
	"errors"
	"fmt"
	"strings"

	"github.com/andreyvit/idxsnap"
)

// errUnknownFacetShape means a facet_id_string_docids key matched neither
// record shape. The table cannot legitimately contain such a record.
var errUnknownFacetShape = errors.New("key matches neither string level-zero nor leveled range shape")

var facetStringTable = entryFormatter{idxsnap.FacetIDStringDocids, writeFacetStringEntry}

// writeFacetStringEntry decodes one record of the dual-shape facet string
// table. The string level-zero codec is always tried first and the leveled
// range codec only on a clean shape mismatch. The shapes carry no tag, so
// the order decides how any ambiguous key would be read and must not change.
func writeFacetStringEntry(w *strings.Builder, k, v []byte) error {
	zk, err := idxsnap.DecodeFacetStringLevelZeroKey(k)
	if err == nil {
		zv, err := idxsnap.DecodeFacetStringLevelZeroValue(v)
		if err != nil {
			return err
		}
		fmt.Fprintf(w, "%-*d %-*s %-*s %s", fieldIDWidth, zk.FieldID, facetStrWidth, zk.Normalized, facetStrWidth, zv.Original, FormatBitmap(zv.Docids))
		return nil
	} else if !errors.Is(err, idxsnap.ErrShapeMismatch) {
		return err
	}

	lk, err := idxsnap.DecodeFacetLevelU32Key(k)
	if errors.Is(err, idxsnap.ErrShapeMismatch) {
		return errUnknownFacetShape
	} else if err != nil {
		return err
	}
	lv, err := idxsnap.DecodeFacetStringBoundsValue(v)
	if err != nil {
		return err
	}
	fmt.Fprintf(w, "%-*d %-*d %-*d %-*d ", fieldIDWidth, lk.FieldID, levelWidth, lk.Level, boundWidth, lk.Left, boundWidth, lk.Right)
	if lv.Bounds != nil {
		fmt.Fprintf(w, "%-*s %-*s ", facetStrWidth, lv.Bounds.Low, facetStrWidth, lv.Bounds.High)
	}
	w.WriteString(FormatBitmap(lv.Docids))
	return nil
}
