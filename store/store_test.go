package store

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/calcengine/formulacore/value"
)

func buildSheet(t *testing.T, chunkCap int, rows [][]value.LiteralValue) *ArrowSheet {
	t.Helper()
	cols := 0
	if len(rows) > 0 {
		cols = len(rows[0])
	}
	b := NewIngestBuilder(cols, chunkCap, DateSystem1900)
	for _, r := range rows {
		require.NoError(t, b.AppendRow(r))
	}
	sh, err := b.Finish("Sheet1")
	require.NoError(t, err)
	return sh
}

func sampleRows(n int) [][]value.LiteralValue {
	rows := make([][]value.LiteralValue, n)
	for i := range rows {
		rows[i] = []value.LiteralValue{value.NumberV(float64(i)), value.TextV("x")}
	}
	return rows
}

func TestIngestFlushesChunksAtCapacity(t *testing.T) {
	sh := buildSheet(t, 4, sampleRows(10))
	assert.Equal(t, 10, sh.NRows)
	require.Len(t, sh.Columns, 2)
	// 10 rows at cap 4 => chunks of 4,4,2
	var lens []int
	for _, c := range sh.Columns[0].Chunks {
		lens = append(lens, c.Len)
	}
	assert.Equal(t, []int{4, 4, 2}, lens)
	assert.Equal(t, []int{0, 4, 8}, sh.ChunkStarts)
}

func TestGetCellReadsBaseLane(t *testing.T) {
	sh := buildSheet(t, 4, sampleRows(6))
	assert.Equal(t, value.NumberV(3), sh.GetCell(3, 0))
	assert.Equal(t, value.TextV("x"), sh.GetCell(5, 1))
}

func TestGetCellOutOfBoundsIsEmpty(t *testing.T) {
	sh := buildSheet(t, 4, sampleRows(6))
	assert.Equal(t, value.EmptyV(), sh.GetCell(-1, 0))
	assert.Equal(t, value.EmptyV(), sh.GetCell(100, 0))
	assert.Equal(t, value.EmptyV(), sh.GetCell(0, 100))
}

func TestSetOverlayTakesPrecedenceOverBaseLane(t *testing.T) {
	sh := buildSheet(t, 4, sampleRows(6))
	sh.SetOverlay(3, 0, value.NumberV(999))
	assert.Equal(t, value.NumberV(999), sh.GetCell(3, 0))
	// sibling cells unaffected
	assert.Equal(t, value.NumberV(2), sh.GetCell(2, 0))
}

func TestEnsureRowCapacityGrowsAndIsIdempotent(t *testing.T) {
	sh := buildSheet(t, 4, sampleRows(6))
	sh.EnsureRowCapacity(20)
	assert.Equal(t, 20, sh.NRows)
	before := sh.NRows
	sh.EnsureRowCapacity(10) // no-op, already past target
	assert.Equal(t, before, sh.NRows)
	assert.Equal(t, value.EmptyV(), sh.GetCell(15, 0))
}

func TestInsertRowsSplitsChunkAndPreservesData(t *testing.T) {
	sh := buildSheet(t, 4, sampleRows(8))
	sh.InsertRows(2, 3)
	assert.Equal(t, 11, sh.NRows)
	// rows before insertion point preserved
	assert.Equal(t, value.NumberV(0), sh.GetCell(0, 0))
	assert.Equal(t, value.NumberV(1), sh.GetCell(1, 0))
	// inserted rows are empty
	assert.Equal(t, value.EmptyV(), sh.GetCell(2, 0))
	assert.Equal(t, value.EmptyV(), sh.GetCell(4, 0))
	// rows after insertion point shifted down by 3
	assert.Equal(t, value.NumberV(2), sh.GetCell(5, 0))
	assert.Equal(t, value.NumberV(7), sh.GetCell(10, 0))
}

func TestInsertRowsPreservesOverlay(t *testing.T) {
	sh := buildSheet(t, 4, sampleRows(8))
	sh.SetOverlay(6, 0, value.NumberV(-1))
	sh.InsertRows(2, 2)
	assert.Equal(t, value.NumberV(-1), sh.GetCell(8, 0))
}

func TestDeleteRowsRemovesRangeAndShifts(t *testing.T) {
	sh := buildSheet(t, 4, sampleRows(10))
	sh.DeleteRows(2, 3) // removes rows 2,3,4
	assert.Equal(t, 7, sh.NRows)
	assert.Equal(t, value.NumberV(0), sh.GetCell(0, 0))
	assert.Equal(t, value.NumberV(1), sh.GetCell(1, 0))
	assert.Equal(t, value.NumberV(5), sh.GetCell(2, 0))
	assert.Equal(t, value.NumberV(9), sh.GetCell(6, 0))
}

func TestDeleteRowsFullyContainedChunkDropped(t *testing.T) {
	sh := buildSheet(t, 4, sampleRows(12)) // chunks of 4,4,4
	sh.DeleteRows(4, 4)                    // removes the whole middle chunk
	assert.Equal(t, 8, sh.NRows)
	assert.Equal(t, value.NumberV(8), sh.GetCell(4, 0))
}

func TestInsertColumnsInheritsChunkLengths(t *testing.T) {
	sh := buildSheet(t, 4, sampleRows(6))
	sh.InsertColumns(1, 2)
	require.Len(t, sh.Columns, 4)
	assert.Equal(t, 0, sh.Columns[0].Index)
	assert.Equal(t, 1, sh.Columns[1].Index)
	assert.Equal(t, 3, sh.Columns[3].Index)
	assert.Equal(t, value.EmptyV(), sh.GetCell(0, 1))
	assert.Equal(t, value.TextV("x"), sh.GetCell(0, 3))
}

func TestDeleteColumnsReindexesDensely(t *testing.T) {
	sh := buildSheet(t, 4, sampleRows(6))
	sh.InsertColumns(2, 1)
	sh.DeleteColumns(0, 1)
	require.Len(t, sh.Columns, 2)
	assert.Equal(t, 0, sh.Columns[0].Index)
	assert.Equal(t, 1, sh.Columns[1].Index)
}

func TestMaybeCompactChunkClearsOverlayWhenOverThreshold(t *testing.T) {
	sh := buildSheet(t, 10, sampleRows(10))
	sh.SetOverlay(0, 0, value.NumberV(100))
	sh.SetOverlay(1, 0, value.NumberV(101))
	sh.SetOverlay(2, 0, value.NumberV(102))
	sh.MaybeCompactChunk(0, 0, 2, 0)
	chunk := sh.Columns[0].Chunks[0]
	assert.Empty(t, chunk.Overlay)
	// values survive compaction
	assert.Equal(t, value.NumberV(100), sh.GetCell(0, 0))
	assert.Equal(t, value.NumberV(102), sh.GetCell(2, 0))
	assert.Equal(t, value.NumberV(3), sh.GetCell(3, 0))
}

func TestMaybeCompactChunkNoopBelowThreshold(t *testing.T) {
	sh := buildSheet(t, 10, sampleRows(10))
	sh.SetOverlay(0, 0, value.NumberV(100))
	sh.MaybeCompactChunk(0, 0, 5, 0)
	assert.Len(t, sh.Columns[0].Chunks[0].Overlay, 1)
}

func TestMaybeCompactChunkIsIdempotent(t *testing.T) {
	sh := buildSheet(t, 10, sampleRows(10))
	for i := 0; i < 5; i++ {
		sh.SetOverlay(i, 0, value.NumberV(float64(100+i)))
	}
	sh.MaybeCompactChunk(0, 0, 1, 0)
	first := append([]float64(nil), sh.Columns[0].Chunks[0].Numbers...)
	sh.MaybeCompactChunk(0, 0, 1, 0) // overlay already empty, no-op
	assert.Equal(t, first, sh.Columns[0].Chunks[0].Numbers)
}

func TestEachCellSkipsEmptyAndStopsEarly(t *testing.T) {
	sh := buildSheet(t, 4, sampleRows(6))
	var seen []int
	sh.EachCell(func(row, col int, v value.LiteralValue) bool {
		if col != 0 {
			return true
		}
		seen = append(seen, row)
		return row < 3
	})
	assert.Equal(t, []int{0, 1, 2, 3}, seen)
}

func TestIterateRowsYieldsAllRowsInOrder(t *testing.T) {
	sh := buildSheet(t, 4, sampleRows(9))
	next, closeFn := sh.IterateRows()
	defer closeFn()
	var rows []int
	for {
		r := next()
		if r == nil {
			break
		}
		rows = append(rows, r.Row)
	}
	expected := make([]int, 9)
	for i := range expected {
		expected[i] = i
	}
	assert.Equal(t, expected, rows)
}

func TestIterateRowsCloseStopsEarly(t *testing.T) {
	sh := buildSheet(t, 4, sampleRows(100))
	next, closeFn := sh.IterateRows()
	r := next()
	require.NotNil(t, r)
	assert.Equal(t, 0, r.Row)
	closeFn()
	// Calling next again after close should not hang and should eventually
	// report no more rows (producer goroutine has exited).
	assert.Eventually(t, func() bool {
		return next() == nil
	}, time.Second, time.Millisecond)
}

func TestSetBlockWritesOverlaysAndGrowsCapacity(t *testing.T) {
	sh := buildSheet(t, 4, sampleRows(4))
	block := [][]value.LiteralValue{
		{value.NumberV(10), value.TextV("a")},
		{value.NumberV(11), value.TextV("b")},
	}
	sh.SetBlock(3, 0, block)
	assert.Equal(t, value.NumberV(10), sh.GetCell(3, 0))
	assert.Equal(t, value.TextV("a"), sh.GetCell(3, 1))
	assert.Equal(t, value.NumberV(11), sh.GetCell(4, 0))
	assert.Equal(t, 5, sh.NRows)
}

func TestSetBlockIgnoresColumnsPastSheetWidth(t *testing.T) {
	sh := buildSheet(t, 4, sampleRows(4))
	block := [][]value.LiteralValue{
		{value.NumberV(1), value.TextV("z"), value.NumberV(999)},
	}
	sh.SetBlock(0, 0, block)
	assert.Equal(t, value.NumberV(1), sh.GetCell(0, 0))
	assert.Equal(t, value.TextV("z"), sh.GetCell(0, 1))
}

func TestSheetStoreAddAndLookup(t *testing.T) {
	store := NewSheetStore()
	sh1 := buildSheet(t, 4, sampleRows(3))
	sh1.Name = "First"
	store.AddSheet(sh1)
	got, ok := store.Sheet("First")
	assert.True(t, ok)
	assert.Same(t, sh1, got)
	_, ok = store.Sheet("Missing")
	assert.False(t, ok)
	assert.Equal(t, []string{"First"}, store.SheetNames())
}

func TestLoweredTextLazilyBuiltAndCached(t *testing.T) {
	sh := buildSheet(t, 4, [][]value.LiteralValue{
		{value.TextV("Hello")},
		{value.TextV("WORLD")},
	})
	chunk := sh.Columns[0].Chunks[0]
	assert.False(t, chunk.loweredBuilt)
	lowered := chunk.ensureLoweredText()
	assert.Equal(t, []string{"hello", "world"}, lowered)
	assert.True(t, chunk.loweredBuilt)
	// second call returns cached slice, not recomputed from a cleared state
	again := chunk.ensureLoweredText()
	assert.Equal(t, lowered, again)
}
