package store

import (
	"fmt"

	"github.com/calcengine/formulacore/value"
)

// DateSystem names the epoch (1900 or 1904) of a sheet's date serials
// (§4.4.1). The builder records it but does not convert by it: AppendRow
// stores the Num of Date/Time/DateTime values as given.
type DateSystem int

const (
	DateSystem1900 DateSystem = iota
	DateSystem1904
)

// IngestBuilder is a row-oriented builder that flushes a chunk for every
// column once the configured capacity is reached (§4.4.1).
type IngestBuilder struct {
	columnCount int
	chunkCap    int
	dateSystem  DateSystem

	columns   []*columnBuilder
	rowInChunk int
	totalRows  int
}

type columnBuilder struct {
	typeTag  []TypeTag
	numbers  []float64
	booleans []bool
	texts    []string
	errors   []value.ErrorKind
	hasNum, hasBool, hasText, hasErr bool
	finished []*ColumnChunk
}

// NewIngestBuilder constructs a builder for a sheet with columnCount
// columns, flushing a chunk every chunkCap rows.
func NewIngestBuilder(columnCount, chunkCap int, dateSystem DateSystem) *IngestBuilder {
	if chunkCap <= 0 {
		chunkCap = 1024
	}
	b := &IngestBuilder{columnCount: columnCount, chunkCap: chunkCap, dateSystem: dateSystem}
	b.columns = make([]*columnBuilder, columnCount)
	for i := range b.columns {
		b.columns[i] = newColumnBuilder(chunkCap)
	}
	return b
}

func newColumnBuilder(cap int) *columnBuilder {
	return &columnBuilder{
		typeTag:  make([]TypeTag, 0, cap),
		numbers:  make([]float64, 0, cap),
		booleans: make([]bool, 0, cap),
		texts:    make([]string, 0, cap),
		errors:   make([]value.ErrorKind, 0, cap),
	}
}

// AppendRow appends one row of values, one per column (§4.4.1). Dates,
// times, and durations are expected pre-coerced to a Number-kind serial by
// the caller (the builder records the semantic kind via Kind, not via a
// separate conversion step, keeping this core free of calendar logic
// beyond what §3.3 already assigns to LiteralValue).
func (b *IngestBuilder) AppendRow(values []value.LiteralValue) error {
	if len(values) != b.columnCount {
		return fmt.Errorf("row has %d values, want %d", len(values), b.columnCount)
	}
	for i, v := range values {
		b.columns[i].appendValue(v)
	}
	b.rowInChunk++
	b.totalRows++
	if b.rowInChunk >= b.chunkCap {
		b.flushChunk()
	}
	return nil
}

func (cb *columnBuilder) appendValue(v value.LiteralValue) {
	switch v.Kind {
	case value.Number, value.Int:
		cb.typeTag = append(cb.typeTag, TagNumber)
		cb.numbers = append(cb.numbers, v.Num)
		cb.booleans = append(cb.booleans, false)
		cb.texts = append(cb.texts, "")
		cb.errors = append(cb.errors, value.ErrNone)
		cb.hasNum = true
	case value.Date, value.Time:
		cb.typeTag = append(cb.typeTag, TagNumber)
		cb.numbers = append(cb.numbers, v.Num)
		cb.booleans = append(cb.booleans, false)
		cb.texts = append(cb.texts, "")
		cb.errors = append(cb.errors, value.ErrNone)
		cb.hasNum = true
	case value.DateTime:
		cb.typeTag = append(cb.typeTag, TagDateTime)
		cb.numbers = append(cb.numbers, v.Num)
		cb.booleans = append(cb.booleans, false)
		cb.texts = append(cb.texts, "")
		cb.errors = append(cb.errors, value.ErrNone)
		cb.hasNum = true
	case value.Duration:
		cb.typeTag = append(cb.typeTag, TagDuration)
		cb.numbers = append(cb.numbers, v.Num)
		cb.booleans = append(cb.booleans, false)
		cb.texts = append(cb.texts, "")
		cb.errors = append(cb.errors, value.ErrNone)
		cb.hasNum = true
	case value.Boolean:
		cb.typeTag = append(cb.typeTag, TagBoolean)
		cb.numbers = append(cb.numbers, 0)
		cb.booleans = append(cb.booleans, v.Bool)
		cb.texts = append(cb.texts, "")
		cb.errors = append(cb.errors, value.ErrNone)
		cb.hasBool = true
	case value.Text:
		cb.typeTag = append(cb.typeTag, TagText)
		cb.numbers = append(cb.numbers, 0)
		cb.booleans = append(cb.booleans, false)
		cb.texts = append(cb.texts, v.Str)
		cb.errors = append(cb.errors, value.ErrNone)
		cb.hasText = true
	case value.Error:
		cb.typeTag = append(cb.typeTag, TagError)
		cb.numbers = append(cb.numbers, 0)
		cb.booleans = append(cb.booleans, false)
		cb.texts = append(cb.texts, "")
		cb.errors = append(cb.errors, v.Err)
		cb.hasErr = true
	case value.Pending:
		cb.typeTag = append(cb.typeTag, TagPending)
		cb.numbers = append(cb.numbers, 0)
		cb.booleans = append(cb.booleans, false)
		cb.texts = append(cb.texts, "")
		cb.errors = append(cb.errors, value.ErrNone)
	default: // Empty, Array (array is never a legal single-cell value; treated as Empty)
		cb.typeTag = append(cb.typeTag, TagEmpty)
		cb.numbers = append(cb.numbers, 0)
		cb.booleans = append(cb.booleans, false)
		cb.texts = append(cb.texts, "")
		cb.errors = append(cb.errors, value.ErrNone)
	}
}

func (b *IngestBuilder) flushChunk() {
	for _, cb := range b.columns {
		cb.finished = append(cb.finished, cb.buildChunk())
		cb.reset(b.chunkCap)
	}
	b.rowInChunk = 0
}

func (cb *columnBuilder) buildChunk() *ColumnChunk {
	chunk := &ColumnChunk{Len: len(cb.typeTag), TypeTag: append([]TypeTag(nil), cb.typeTag...)}
	if cb.hasNum {
		chunk.Numbers = append([]float64(nil), cb.numbers...)
	}
	if cb.hasBool {
		chunk.Booleans = append([]bool(nil), cb.booleans...)
	}
	if cb.hasText {
		chunk.Texts = append([]string(nil), cb.texts...)
	}
	if cb.hasErr {
		chunk.Errors = append([]value.ErrorKind(nil), cb.errors...)
	}
	chunk.Meta = computeMeta(chunk)
	return chunk
}

func computeMeta(c *ColumnChunk) ChunkMeta {
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

func (cb *columnBuilder) reset(cap int) {
	cb.typeTag = make([]TypeTag, 0, cap)
	cb.numbers = make([]float64, 0, cap)
	cb.booleans = make([]bool, 0, cap)
	cb.texts = make([]string, 0, cap)
	cb.errors = make([]value.ErrorKind, 0, cap)
	cb.hasNum, cb.hasBool, cb.hasText, cb.hasErr = false, false, false, false
}

// Finish flushes any partial final chunk, validates that every column
// produced the same chunk count and per-chunk lengths, populates
// ChunkStarts, and returns the sheet (§4.4.1).
func (b *IngestBuilder) Finish(name string) (*ArrowSheet, error) {
	if b.rowInChunk > 0 {
		b.flushChunk()
	}
	sheet := &ArrowSheet{Name: name, NRows: b.totalRows}
	chunkCount := len(b.columns[0].finished)
	for i, cb := range b.columns {
		if len(cb.finished) != chunkCount {
			return nil, fmt.Errorf("column %d produced %d chunks, want %d", i, len(cb.finished), chunkCount)
		}
		sheet.Columns = append(sheet.Columns, &ArrowColumn{Index: i, Chunks: cb.finished})
	}
	for ci := 0; ci < chunkCount; ci++ {
		want := b.columns[0].finished[ci].Len
		for i, col := range sheet.Columns {
			if col.Chunks[ci].Len != want {
				return nil, fmt.Errorf("column %d chunk %d has length %d, want %d", i, ci, col.Chunks[ci].Len, want)
			}
		}
	}
	sheet.ChunkStarts = make([]int, chunkCount)
	row := 0
	for ci := 0; ci < chunkCount; ci++ {
		sheet.ChunkStarts[ci] = row
		row += sheet.Columns[0].Chunks[ci].Len
	}
	return sheet, nil
}
