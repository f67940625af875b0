// Package store implements the chunked, multi-lane columnar representation
// of sheet cells described in §3.4/§4.4: SheetStore owns named ArrowSheets,
// each sheet owns row-aligned ArrowColumns, each column owns ColumnChunks
// with a type-tag lane, typed value lanes, a lazily built lowered-text
// cache, and a per-chunk overlay map for edits.
package store

import (
	"sort"

	"github.com/calcengine/formulacore/value"
)

// TypeTag is the per-row semantic kind recorded in a chunk's type_tag lane
// (§3.4).
type TypeTag byte

const (
	TagEmpty TypeTag = iota
	TagNumber
	TagBoolean
	TagText
	TagError
	TagDateTime
	TagDuration
	TagPending
)

// ChunkMeta records non-null counts per lane (§3.4).
type ChunkMeta struct {
	NumberCount  int
	BooleanCount int
	TextCount    int
	ErrorCount   int
}

// ColumnChunk is a fixed-capacity contiguous slice of rows within a column
// (§3.4). A lane slice is nil iff no non-null value was ever written into
// it ("all-null lanes are elided").
type ColumnChunk struct {
	Len int

	TypeTag  []TypeTag
	Numbers  []float64 // present iff at least one Number/Date/DateTime/Time/Duration row
	Booleans []bool
	Texts    []string
	Errors   []value.ErrorKind

	loweredText  []string
	loweredBuilt bool

	// Overlay maps in-chunk row offset to a replacement value. Overlay
	// entries take precedence over base lanes on read (§4.4.2). Per §5,
	// overlay maps are not thread-safe; callers serialize writes.
	Overlay map[int]value.LiteralValue

	Meta ChunkMeta
}

// ArrowColumn owns an ordered vector of chunks and a stable column index.
type ArrowColumn struct {
	Index  int
	Chunks []*ColumnChunk
}

// ArrowSheet owns a set of row-aligned columns plus the chunk boundary
// table shared by all of them (§3.4).
type ArrowSheet struct {
	Name        string
	NRows       int
	Columns     []*ArrowColumn
	ChunkStarts []int // absolute starting row of each chunk
}

// SheetStore owns a sequence of named ArrowSheets.
type SheetStore struct {
	sheets map[string]*ArrowSheet
	order  []string
}

// NewSheetStore returns an empty store.
func NewSheetStore() *SheetStore {
	return &SheetStore{sheets: make(map[string]*ArrowSheet)}
}

// AddSheet registers a built sheet under its name, replacing any existing
// sheet of that name.
func (s *SheetStore) AddSheet(sheet *ArrowSheet) {
	if _, exists := s.sheets[sheet.Name]; !exists {
		s.order = append(s.order, sheet.Name)
	}
	s.sheets[sheet.Name] = sheet
}

// Sheet looks up a sheet by name (§6.5 API surface).
func (s *SheetStore) Sheet(name string) (*ArrowSheet, bool) {
	sh, ok := s.sheets[name]
	return sh, ok
}

// SheetNames returns registered sheet names in insertion order.
func (s *SheetStore) SheetNames() []string {
	out := make([]string, len(s.order))
	copy(out, s.order)
	return out
}

// chunkIndexForRow binary-searches ChunkStarts for the chunk containing an
// absolute row (§4.4.2 step 1).
func (sh *ArrowSheet) chunkIndexForRow(absRow int) int {
	idx := sort.Search(len(sh.ChunkStarts), func(i int) bool {
		return sh.ChunkStarts[i] > absRow
	})
	return idx - 1
}

func (c *ColumnChunk) nonNullLane() bool {
	return c.Numbers != nil || c.Booleans != nil || c.Texts != nil || c.Errors != nil
}
