package store

import "github.com/calcengine/formulacore/value"

// EachCell walks every populated cell of a sheet in row-major order,
// invoking fn with its absolute (row, col) and value. Walking stops early
// if fn returns false. Empty cells are skipped: a sheet's populated
// region is typically far sparser than NRows x len(Columns).
func (sh *ArrowSheet) EachCell(fn func(row, col int, v value.LiteralValue) bool) {
	for chunkIdx, start := range sh.ChunkStarts {
		chunkLen := 0
		if chunkIdx < len(sh.Columns[0].Chunks) {
			chunkLen = sh.Columns[0].Chunks[chunkIdx].Len
		}
		for off := 0; off < chunkLen; off++ {
			row := start + off
			for colIdx, col := range sh.Columns {
				chunk := col.Chunks[chunkIdx]
				v := chunk.getOffset(off)
				if v.Kind == value.Empty {
					continue
				}
				if !fn(row, colIdx, v) {
					return
				}
			}
		}
	}
}

// RowSnapshot is one row's worth of column values, as produced by
// IterateRows.
type RowSnapshot struct {
	Row    int
	Values []value.LiteralValue
}

// IterateRows streams a sheet's rows one at a time over a channel, letting
// a consumer pull rows without holding the whole sheet in memory at once.
// Next returns nil once the sheet is exhausted; Close abandons iteration
// early and must be called if the consumer stops before exhaustion.
//
// The store itself holds no locks across this iteration (§5: callers
// serialize writes against readers), so the source sheet must not be
// mutated concurrently with an in-flight iteration.
func (sh *ArrowSheet) IterateRows() (next func() *RowSnapshot, closeFn func()) {
	rows := make(chan RowSnapshot)
	closeSig := make(chan struct{})
	done := make(chan struct{})

	go func() {
		defer close(done)
		for chunkIdx, start := range sh.ChunkStarts {
			chunkLen := 0
			if chunkIdx < len(sh.Columns[0].Chunks) {
				chunkLen = sh.Columns[0].Chunks[chunkIdx].Len
			}
			for off := 0; off < chunkLen; off++ {
				row := start + off
				values := make([]value.LiteralValue, len(sh.Columns))
				for colIdx, col := range sh.Columns {
					values[colIdx] = col.Chunks[chunkIdx].getOffset(off)
				}
				select {
				case rows <- RowSnapshot{Row: row, Values: values}:
				case <-closeSig:
					return
				}
			}
		}
	}()

	next = func() *RowSnapshot {
		select {
		case r, ok := <-rows:
			if !ok {
				return nil
			}
			return &r
		case <-done:
			return nil
		}
	}
	closeFn = func() {
		select {
		case closeSig <- struct{}{}:
		case <-done:
		}
	}
	return next, closeFn
}

// SetBlock writes a rectangular block of values as overlays starting at
// (startRow, startCol), growing row capacity first if the block extends
// past the sheet's current NRows. Column count is not grown: values of a
// block row that fall past the sheet's last column are dropped.
func (sh *ArrowSheet) SetBlock(startRow, startCol int, block [][]value.LiteralValue) {
	if len(block) == 0 {
		return
	}
	maxRow := startRow + len(block)
	if maxRow > sh.NRows {
		sh.EnsureRowCapacity(maxRow)
	}
	for i, rowValues := range block {
		row := startRow + i
		for j, v := range rowValues {
			col := startCol + j
			if col >= len(sh.Columns) {
				break
			}
			sh.SetOverlay(row, col, v)
		}
	}
}
