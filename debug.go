package idxsnap

import (
	"fmt"
	"strings"
)

type DumpFlags uint64

const (
	DumpTableHeaders = DumpFlags(1 << iota)
	DumpRows
	DumpStats

	DumpAll = DumpFlags(0xFFFFFFFFFFFFFFFF)
)

var (
	dumpSep1 = strings.Repeat("=", 80)
	dumpSep2 = strings.Repeat("-", 60)
)

func (f DumpFlags) Contains(v DumpFlags) bool {
	return (f & v) == v
}

// Dump renders every table as raw hex, without decoding anything. Use it to
// inspect a record that a snapshot cannot decode.
func (tx *Tx) Dump(f DumpFlags) (string, error) {
	var buf strings.Builder
	for _, tbl := range Tables() {
		if err := tx.dumpTable(&buf, f, tbl); err != nil {
			return "", err
		}
	}
	return buf.String(), nil
}

func (tx *Tx) dumpTable(w *strings.Builder, f DumpFlags, tbl Table) error {
	s, err := tx.TableStats(tbl)
	if err != nil {
		return err
	}

	if f.Contains(DumpTableHeaders) {
		fmt.Fprintln(w, dumpSep1)
		fmt.Fprintf(w, "%s (%d rows)\n", tbl.Name(), s.Rows)
	}
	if f.Contains(DumpStats) {
		fmt.Fprintf(w, "%s.stats: key_size = %d, value_size = %d, total_size = %d\n", tbl.Name(), s.KeySize, s.ValueSize, s.TotalSize())
	}

	if f.Contains(DumpRows) {
		if f.Contains(DumpStats) && s.Rows > 0 {
			fmt.Fprintln(w, dumpSep2)
		}
		var rowPos int
		return tx.Iterate(tbl, func(k, v []byte) error {
			rowPos++
			fmt.Fprintf(w, "%s.%d: %s = %s\n", tbl.Name(), rowPos, hexstr(k), hexstr(v))
			return nil
		})
	}
	return nil
}
