package store

import "github.com/calcengine/formulacore/value"

// recomputeChunkStarts rebuilds ChunkStarts from the first column's chunk
// lengths. Every mutation below ends by calling this so the §3.4 invariant
// (chunk_starts strictly monotonic, sum of lengths == nrows) is restored.
func (sh *ArrowSheet) recomputeChunkStarts() {
	if len(sh.Columns) == 0 {
		sh.ChunkStarts = nil
		sh.NRows = 0
		return
	}
	ref := sh.Columns[0]
	starts := make([]int, len(ref.Chunks))
	row := 0
	for i, c := range ref.Chunks {
		starts[i] = row
		row += c.Len
	}
	sh.ChunkStarts = starts
	sh.NRows = row
}

func emptyChunk(length int) *ColumnChunk {
	tags := make([]TypeTag, length) // zero value is TagEmpty
	return &ColumnChunk{Len: length, TypeTag: tags}
}

// splitChunkOverlay partitions a chunk's overlay by offset relative to a
// split point `at`: entries below go left unchanged, entries at/above go
// right re-keyed by subtracting `at`.
func splitChunkOverlay(ov map[int]value.LiteralValue, at int) (left, right map[int]value.LiteralValue) {
	for off, v := range ov {
		if off < at {
			if left == nil {
				left = make(map[int]value.LiteralValue)
			}
			left[off] = v
		} else {
			if right == nil {
				right = make(map[int]value.LiteralValue)
			}
			right[off-at] = v
		}
	}
	return left, right
}

// sliceChunk is the zero-copy chunk slice operation of §4.4.4: base lanes
// are reslice operations sharing storage; overlay entries in [off, off+len)
// are re-keyed into the slice's own coordinate space. All-null lanes in the
// slice are elided.
func sliceChunk(c *ColumnChunk, off, length int) *ColumnChunk {
	out := &ColumnChunk{Len: length}
	if c.TypeTag != nil {
		out.TypeTag = c.TypeTag[off : off+length]
	}
	if c.Numbers != nil {
		out.Numbers = c.Numbers[off : off+length]
	}
	if c.Booleans != nil {
		out.Booleans = c.Booleans[off : off+length]
	}
	if c.Texts != nil {
		out.Texts = c.Texts[off : off+length]
	}
	if c.Errors != nil {
		out.Errors = c.Errors[off : off+length]
	}
	if c.Overlay != nil {
		for k, v := range c.Overlay {
			if k >= off && k < off+length {
				if out.Overlay == nil {
					out.Overlay = make(map[int]value.LiteralValue)
				}
				out.Overlay[k-off] = v
			}
		}
	}
	out.Meta = computeMetaFromTags(out)
	if out.Meta.NumberCount == 0 {
		out.Numbers = nil
	}
	if out.Meta.BooleanCount == 0 {
		out.Booleans = nil
	}
	if out.Meta.TextCount == 0 {
		out.Texts = nil
	}
	if out.Meta.ErrorCount == 0 {
		out.Errors = nil
	}
	return out
}

func computeMetaFromTags(c *ColumnChunk) ChunkMeta {
	if c.TypeTag == nil {
		return ChunkMeta{}
	}
	var m ChunkMeta
	for _, t := range c.TypeTag {
		switch t {
		case TagNumber, TagDateTime, TagDuration:
			m.NumberCount++
		case TagBoolean:
			m.BooleanCount++
		case TagText:
			m.TextCount++
		case TagError:
			m.ErrorCount++
		}
	}
	return m
}

// EnsureRowCapacity appends empty chunks at the last chunk size until
// NRows >= n (§4.4.3).
func (sh *ArrowSheet) EnsureRowCapacity(n int) {
	if n <= sh.NRows || len(sh.Columns) == 0 {
		return
	}
	lastSize := 1024
	if len(sh.ChunkStarts) > 0 {
		lastChunkIdx := len(sh.Columns[0].Chunks) - 1
		lastSize = sh.Columns[0].Chunks[lastChunkIdx].Len
		if lastSize == 0 {
			lastSize = 1024
		}
	}
	for sh.NRows < n {
		add := lastSize
		if sh.NRows+add > n {
			add = n - sh.NRows
		}
		for _, col := range sh.Columns {
			col.Chunks = append(col.Chunks, emptyChunk(add))
		}
		sh.NRows += add
	}
	sh.recomputeChunkStarts()
}

// locateSplit finds the chunk index and in-chunk offset for an insertion
// point `before` (0-based absolute row), or (len(Chunks), 0) to mean
// "append after the last chunk" when before == NRows.
func (sh *ArrowSheet) locateSplit(before int) (chunkIdx, off int) {
	if before >= sh.NRows {
		return len(sh.ChunkStarts), 0
	}
	idx := sh.chunkIndexForRow(before)
	return idx, before - sh.ChunkStarts[idx]
}

// InsertRows splits the target chunk around the insertion point and
// replaces it with [left, empty, right] in every column, re-keying
// overlays (§4.4.3).
func (sh *ArrowSheet) InsertRows(before, count int) {
	if count <= 0 {
		return
	}
	chunkIdx, off := sh.locateSplit(before)
	for _, col := range sh.Columns {
		if chunkIdx >= len(col.Chunks) {
			col.Chunks = append(col.Chunks, emptyChunk(count))
			continue
		}
		orig := col.Chunks[chunkIdx]
		if off == 0 {
			col.Chunks = append(col.Chunks[:chunkIdx], append([]*ColumnChunk{emptyChunk(count)}, col.Chunks[chunkIdx:]...)...)
			continue
		}
		left := sliceChunk(orig, 0, off)
		right := sliceChunk(orig, off, orig.Len-off)
		replacement := []*ColumnChunk{left, emptyChunk(count), right}
		col.Chunks = append(col.Chunks[:chunkIdx], append(replacement, col.Chunks[chunkIdx+1:]...)...)
	}
	sh.recomputeChunkStarts()
}

// DeleteRows removes rows [start, start+count) across every column,
// retaining surviving left/right slices of partially-overlapping chunks
// with re-keyed overlays, and dropping fully-contained chunks (§4.4.3).
func (sh *ArrowSheet) DeleteRows(start, count int) {
	if count <= 0 {
		return
	}
	delEnd := start + count
	for _, col := range sh.Columns {
		var kept []*ColumnChunk
		for ci, c := range col.Chunks {
			chunkStart := sh.ChunkStarts[ci]
			chunkEnd := chunkStart + c.Len
			if chunkEnd <= start || chunkStart >= delEnd {
				kept = append(kept, c)
				continue
			}
			if chunkStart >= start && chunkEnd <= delEnd {
				continue // fully inside the deleted range
			}
			var left, right *ColumnChunk
			if chunkStart < start {
				left = sliceChunk(c, 0, start-chunkStart)
			}
			if chunkEnd > delEnd {
				right = sliceChunk(c, delEnd-chunkStart, chunkEnd-delEnd)
			}
			if left != nil {
				kept = append(kept, left)
			}
			if right != nil {
				kept = append(kept, right)
			}
		}
		col.Chunks = kept
	}
	sh.recomputeChunkStarts()
}

// InsertColumns inserts `count` empty columns before 0-based index `before`,
// inheriting per-chunk lengths from the first column so row-alignment is
// preserved, then reassigns column indices densely (§4.4.3).
func (sh *ArrowSheet) InsertColumns(before, count int) {
	if count <= 0 {
		return
	}
	if before > len(sh.Columns) {
		before = len(sh.Columns)
	}
	newCols := make([]*ArrowColumn, count)
	for i := 0; i < count; i++ {
		col := &ArrowColumn{}
		if len(sh.Columns) > 0 {
			for _, c := range sh.Columns[0].Chunks {
				col.Chunks = append(col.Chunks, emptyChunk(c.Len))
			}
		}
		newCols[i] = col
	}
	sh.Columns = append(sh.Columns[:before], append(newCols, sh.Columns[before:]...)...)
	sh.reindexColumns()
}

// DeleteColumns removes columns [start, start+count) and reassigns indices
// densely (§4.4.3).
func (sh *ArrowSheet) DeleteColumns(start, count int) {
	if count <= 0 || start >= len(sh.Columns) {
		return
	}
	end := start + count
	if end > len(sh.Columns) {
		end = len(sh.Columns)
	}
	sh.Columns = append(sh.Columns[:start], sh.Columns[end:]...)
	sh.reindexColumns()
}

func (sh *ArrowSheet) reindexColumns() {
	for i, col := range sh.Columns {
		col.Index = i
	}
}

// MaybeCompactChunk rebuilds a chunk from its overlay-merged values and
// clears the overlay when the overlay has grown large relative to the
// chunk, amortizing overlay-scan cost on future reads (§4.4.3).
func (sh *ArrowSheet) MaybeCompactChunk(colIdx, chunkIdx, absThreshold, fracDen int) {
	col := sh.Columns[colIdx]
	c := col.Chunks[chunkIdx]
	if len(c.Overlay) == 0 {
		return
	}
	trigger := len(c.Overlay) > absThreshold
	if fracDen > 0 {
		trigger = trigger || len(c.Overlay) > c.Len/fracDen
	}
	if !trigger {
		return
	}
	rebuilt := &ColumnChunk{Len: c.Len, TypeTag: make([]TypeTag, c.Len)}
	var numbers []float64
	var booleans []bool
	var texts []string
	var errs []value.ErrorKind
	hasNum, hasBool, hasText, hasErr := false, false, false, false
	for off := 0; off < c.Len; off++ {
		v := c.getOffset(off)
		switch v.Kind {
		case value.Number, value.Int:
			rebuilt.TypeTag[off] = TagNumber
			numbers = growFloat(numbers, c.Len, off, v.Num)
			hasNum = true
		case value.DateTime:
			rebuilt.TypeTag[off] = TagDateTime
			numbers = growFloat(numbers, c.Len, off, v.Num)
			hasNum = true
		case value.Duration:
			rebuilt.TypeTag[off] = TagDuration
			numbers = growFloat(numbers, c.Len, off, v.Num)
			hasNum = true
		case value.Boolean:
			rebuilt.TypeTag[off] = TagBoolean
			booleans = growBool(booleans, c.Len, off, v.Bool)
			hasBool = true
		case value.Text:
			rebuilt.TypeTag[off] = TagText
			texts = growText(texts, c.Len, off, v.Str)
			hasText = true
		case value.Error:
			rebuilt.TypeTag[off] = TagError
			errs = growErr(errs, c.Len, off, v.Err)
			hasErr = true
		case value.Pending:
			rebuilt.TypeTag[off] = TagPending
		default:
			rebuilt.TypeTag[off] = TagEmpty
		}
	}
	if hasNum {
		rebuilt.Numbers = numbers
	}
	if hasBool {
		rebuilt.Booleans = booleans
	}
	if hasText {
		rebuilt.Texts = texts
	}
	if hasErr {
		rebuilt.Errors = errs
	}
	rebuilt.Meta = computeMetaFromTags(rebuilt)
	col.Chunks[chunkIdx] = rebuilt
}

func growFloat(s []float64, length, off int, v float64) []float64 {
	if s == nil {
		s = make([]float64, length)
	}
	s[off] = v
	return s
}

func growBool(s []bool, length, off int, v bool) []bool {
	if s == nil {
		s = make([]bool, length)
	}
	s[off] = v
	return s
}

func growText(s []string, length, off int, v string) []string {
	if s == nil {
		s = make([]string, length)
	}
	s[off] = v
	return s
}

func growErr(s []value.ErrorKind, length, off int, v value.ErrorKind) []value.ErrorKind {
	if s == nil {
		s = make([]value.ErrorKind, length)
	}
	s[off] = v
	return s
}

// SetOverlay writes an overlay entry at absolute (row, col), the caller-
// synchronized write path referenced by §5 ("Overlay maps are not
// thread-safe; callers serialize writes externally").
func (sh *ArrowSheet) SetOverlay(absRow, absCol int, v value.LiteralValue) {
	chunkIdx := sh.chunkIndexForRow(absRow)
	if chunkIdx < 0 || absCol < 0 || absCol >= len(sh.Columns) {
		return
	}
	off := absRow - sh.ChunkStarts[chunkIdx]
	c := sh.Columns[absCol].Chunks[chunkIdx]
	if c.Overlay == nil {
		c.Overlay = make(map[int]value.LiteralValue)
	}
	c.Overlay[off] = v
}
