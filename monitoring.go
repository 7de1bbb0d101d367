package idxsnap

// TableStats summarizes the size of one table.
type TableStats struct {
	Rows      int
	KeySize   int
	ValueSize int
}

func (ts *TableStats) TotalSize() int {
	return ts.KeySize + ts.ValueSize
}

func (tx *Tx) TableStats(tbl Table) (TableStats, error) {
	var result TableStats
	err := tx.Iterate(tbl, func(k, v []byte) error {
		result.Rows++
		result.KeySize += len(k)
		result.ValueSize += len(v)
		return nil
	})
	return result, err
}
