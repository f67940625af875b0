package store

import "github.com/calcengine/formulacore/value"

// GetCell reads a single cell at 0-based (absRow, absCol), applying overlay
// precedence over the base lanes (§4.4.2).
func (sh *ArrowSheet) GetCell(absRow, absCol int) value.LiteralValue {
	if absRow < 0 || absRow >= sh.NRows || absCol < 0 || absCol >= len(sh.Columns) {
		return value.EmptyV()
	}
	chunkIdx := sh.chunkIndexForRow(absRow)
	if chunkIdx < 0 {
		return value.EmptyV()
	}
	off := absRow - sh.ChunkStarts[chunkIdx]
	col := sh.Columns[absCol]
	chunk := col.Chunks[chunkIdx]
	return chunk.getOffset(off)
}

// getOffset reads one in-chunk row, overlay-first.
func (c *ColumnChunk) getOffset(off int) value.LiteralValue {
	if c.Overlay != nil {
		if v, ok := c.Overlay[off]; ok {
			return v
		}
	}
	if off < 0 || off >= c.Len {
		return value.EmptyV()
	}
	tag := TagEmpty
	if c.TypeTag != nil {
		tag = c.TypeTag[off]
	}
	switch tag {
	case TagNumber:
		if c.Numbers == nil {
			return value.EmptyV()
		}
		return value.NumberV(c.Numbers[off])
	case TagDateTime:
		if c.Numbers == nil {
			return value.EmptyV()
		}
		return value.LiteralValue{Kind: value.DateTime, Num: c.Numbers[off]}
	case TagDuration:
		if c.Numbers == nil {
			return value.EmptyV()
		}
		return value.LiteralValue{Kind: value.Duration, Num: c.Numbers[off]}
	case TagBoolean:
		if c.Booleans == nil {
			return value.EmptyV()
		}
		return value.BoolV(c.Booleans[off])
	case TagText:
		if c.Texts == nil {
			return value.EmptyV()
		}
		return value.TextV(c.Texts[off])
	case TagError:
		if c.Errors == nil {
			return value.EmptyV()
		}
		return value.ErrorV(c.Errors[off])
	case TagPending:
		return value.PendingV()
	default:
		return value.EmptyV()
	}
}

// ensureLoweredText lazily builds the ASCII-lowered text lane for a chunk,
// an idempotent compute-once-cache-forever operation per the §9 "Lazy
// caches" design note: any equivalent single-assignment primitive is
// acceptable since recomputation yields the same bytes, so a plain bool
// flag (the store is caller-synchronized, §5) suffices here.
func (c *ColumnChunk) ensureLoweredText() []string {
	if c.loweredBuilt {
		return c.loweredText
	}
	if c.Texts == nil {
		c.loweredBuilt = true
		return nil
	}
	out := make([]string, len(c.Texts))
	for i, s := range c.Texts {
		out[i] = asciiLower(s)
	}
	c.loweredText = out
	c.loweredBuilt = true
	return out
}

func asciiLower(s string) string {
	b := []byte(s)
	changed := false
	for i, ch := range b {
		if ch >= 'A' && ch <= 'Z' {
			b[i] = ch + ('a' - 'A')
			changed = true
		}
	}
	if !changed {
		return s
	}
	return string(b)
}

// loweredProjection lowers a non-text overlay value per §4.4.2: empty to
// null (reported via ok=false), number to its decimal text lowercased,
// boolean to "true"/"false", error/pending to null.
func loweredProjection(v value.LiteralValue) (string, bool) {
	switch v.Kind {
	case value.Text:
		return asciiLower(v.Str), true
	case value.Number, value.Int, value.Date, value.DateTime, value.Time, value.Duration:
		return asciiLower(v.String()), true
	case value.Boolean:
		if v.Bool {
			return "true", true
		}
		return "false", true
	default:
		return "", false
	}
}
