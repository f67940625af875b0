// Package rangeview implements the rectangular, zero-copy view onto the
// columnar store described in §3.5/§4.4.5.
package rangeview

import (
	"github.com/calcengine/formulacore/store"
	"github.com/calcengine/formulacore/value"
)

// RangeView is a rectangular view (sheet, sr, sc, er, ec) over an
// ArrowSheet. Coordinates are 0-based inclusive.
type RangeView struct {
	Sheet              *store.ArrowSheet
	StartRow, StartCol int
	EndRow, EndCol     int
}

// New constructs a view. Reversed ranges (er < sr or ec < sc) are legal;
// Dims reports (0, 0) and all iterators are empty for them (§4.4.5 step 1).
func New(sheet *store.ArrowSheet, sr, sc, er, ec int) RangeView {
	return RangeView{Sheet: sheet, StartRow: sr, StartCol: sc, EndRow: er, EndCol: ec}
}

// Dims returns the view's (rows, cols).
func (v RangeView) Dims() (rows, cols int) {
	if v.EndRow < v.StartRow || v.EndCol < v.StartCol {
		return 0, 0
	}
	return v.EndRow - v.StartRow + 1, v.EndCol - v.StartCol + 1
}

// GetCell reads one cell at view-relative (row, col), 0-based.
func (v RangeView) GetCell(row, col int) value.LiteralValue {
	rows, cols := v.Dims()
	if row < 0 || row >= rows || col < 0 || col >= cols {
		return value.EmptyV()
	}
	return v.Sheet.GetCell(v.StartRow+row, v.StartCol+col)
}

// Segment is one row-aligned chunk slice of the view: the absolute row
// range it covers and, per column, the raw chunk slice restricted to
// [StartCol, EndCol] (padded with all-null lanes/Empty tags for
// out-of-sheet columns, §4.4.5 step 2).
type Segment struct {
	AbsStartRow int
	Len         int
	Columns     []*ColumnSegment
}

// ColumnSegment carries the per-column lane slices for one Segment.
type ColumnSegment struct {
	TypeTag  []store.TypeTag
	Numbers  []float64
	Booleans []bool
	Texts    []string
	Errors   []value.ErrorKind
	Overlay  map[int]value.LiteralValue // keyed by offset within this segment
}

// RowChunkSlices lazily enumerates row-aligned segments covering the view,
// chunk by chunk (§4.4.5 step 2, §5 row-major ordering guarantee).
func (v RangeView) RowChunkSlices() []Segment {
	rows, _ := v.Dims()
	if rows == 0 {
		return nil
	}
	sh := v.Sheet
	var segs []Segment
	for ci, start := range sh.ChunkStarts {
		chunkLen := chunkLenAt(sh, ci)
		chunkEnd := start + chunkLen
		segStart := max(start, v.StartRow)
		segEnd := min(chunkEnd, v.EndRow+1)
		if segStart >= segEnd {
			continue
		}
		relOff := segStart - start
		segLen := segEnd - segStart
		seg := Segment{AbsStartRow: segStart, Len: segLen}
		for col := v.StartCol; col <= v.EndCol; col++ {
			seg.Columns = append(seg.Columns, columnSegmentAt(sh, col, ci, relOff, segLen))
		}
		segs = append(segs, seg)
	}
	return segs
}

func chunkLenAt(sh *store.ArrowSheet, ci int) int {
	if len(sh.Columns) == 0 {
		return 0
	}
	return sh.Columns[0].Chunks[ci].Len
}

func columnSegmentAt(sh *store.ArrowSheet, col, chunkIdx, off, length int) *ColumnSegment {
	if col < 0 || col >= len(sh.Columns) {
		return &ColumnSegment{TypeTag: make([]store.TypeTag, length)}
	}
	c := sh.Columns[col].Chunks[chunkIdx]
	seg := &ColumnSegment{}
	if c.TypeTag != nil {
		seg.TypeTag = c.TypeTag[off : off+length]
	} else {
		seg.TypeTag = make([]store.TypeTag, length)
	}
	if c.Numbers != nil {
		seg.Numbers = c.Numbers[off : off+length]
	}
	if c.Booleans != nil {
		seg.Booleans = c.Booleans[off : off+length]
	}
	if c.Texts != nil {
		seg.Texts = c.Texts[off : off+length]
	}
	if c.Errors != nil {
		seg.Errors = c.Errors[off : off+length]
	}
	if c.Overlay != nil {
		for k, v := range c.Overlay {
			if k >= off && k < off+length {
				if seg.Overlay == nil {
					seg.Overlay = make(map[int]value.LiteralValue)
				}
				seg.Overlay[k-off] = v
			}
		}
	}
	return seg
}

func max(a, b int) int {
	if a > b {
		return a
	}
	return b
}

func min(a, b int) int {
	if a < b {
		return a
	}
	return b
}

// NumbersSlices returns, per segment, one ColumnNumbers per column with
// overlays merged over the base lane. Values holds 0 wherever the cell
// isn't a genuine number; Mask is true only at those genuinely-numeric
// positions, so callers can skip text, logical, blank, and error cells
// instead of mistaking the placeholder 0 for real data.
func (v RangeView) NumbersSlices() [][]ColumnNumbers {
	var out [][]ColumnNumbers
	for _, seg := range v.RowChunkSlices() {
		var row []ColumnNumbers
		for _, cs := range seg.Columns {
			row = append(row, mergeNumbers(cs, seg.Len))
		}
		out = append(out, row)
	}
	return out
}

// ColumnNumbers is a materialized, overlay-merged numeric lane segment: Mask[i]
// is true iff the row is a genuine number (so stats builtins can skip the rest).
type ColumnNumbers struct {
	Values []float64
	Mask   []bool
}

func mergeNumbers(cs *ColumnSegment, length int) ColumnNumbers {
	if len(cs.Overlay) == 0 {
		out := ColumnNumbers{Values: make([]float64, length), Mask: make([]bool, length)}
		for i := 0; i < length; i++ {
			if cs.TypeTag != nil && (cs.TypeTag[i] == store.TagNumber || cs.TypeTag[i] == store.TagDateTime || cs.TypeTag[i] == store.TagDuration) && cs.Numbers != nil {
				out.Values[i] = cs.Numbers[i]
				out.Mask[i] = true
			}
		}
		return out
	}
	out := ColumnNumbers{Values: make([]float64, length), Mask: make([]bool, length)}
	for i := 0; i < length; i++ {
		if ov, ok := cs.Overlay[i]; ok {
			if ov.Kind == value.Number || ov.Kind == value.Int || ov.Kind == value.DateTime || ov.Kind == value.Duration || ov.Kind == value.Date || ov.Kind == value.Time {
				out.Values[i] = ov.Num
				out.Mask[i] = true
			}
			continue
		}
		if cs.TypeTag != nil && (cs.TypeTag[i] == store.TagNumber || cs.TypeTag[i] == store.TagDateTime || cs.TypeTag[i] == store.TagDuration) && cs.Numbers != nil {
			out.Values[i] = cs.Numbers[i]
			out.Mask[i] = true
		}
	}
	return out
}

// BooleansSlices returns overlay-merged boolean lane segments per column.
func (v RangeView) BooleansSlices() [][]ColumnBooleans {
	var out [][]ColumnBooleans
	for _, seg := range v.RowChunkSlices() {
		var row []ColumnBooleans
		for _, cs := range seg.Columns {
			row = append(row, mergeBooleans(cs, seg.Len))
		}
		out = append(out, row)
	}
	return out
}

// ColumnBooleans is an overlay-merged boolean lane segment.
type ColumnBooleans struct {
	Values []bool
	Mask   []bool
}

func mergeBooleans(cs *ColumnSegment, length int) ColumnBooleans {
	out := ColumnBooleans{Values: make([]bool, length), Mask: make([]bool, length)}
	for i := 0; i < length; i++ {
		if ov, ok := cs.Overlay[i]; ok {
			if ov.Kind == value.Boolean {
				out.Values[i] = ov.Bool
				out.Mask[i] = true
			}
			continue
		}
		if cs.TypeTag != nil && cs.TypeTag[i] == store.TagBoolean && cs.Booleans != nil {
			out.Values[i] = cs.Booleans[i]
			out.Mask[i] = true
		}
	}
	return out
}

// TextSlices returns overlay-merged text lane segments per column.
func (v RangeView) TextSlices() [][]ColumnText {
	var out [][]ColumnText
	for _, seg := range v.RowChunkSlices() {
		var row []ColumnText
		for _, cs := range seg.Columns {
			row = append(row, mergeText(cs, seg.Len))
		}
		out = append(out, row)
	}
	return out
}

// ColumnText is an overlay-merged text lane segment.
type ColumnText struct {
	Values []string
	Mask   []bool
}

func mergeText(cs *ColumnSegment, length int) ColumnText {
	out := ColumnText{Values: make([]string, length), Mask: make([]bool, length)}
	for i := 0; i < length; i++ {
		if ov, ok := cs.Overlay[i]; ok {
			if ov.Kind == value.Text {
				out.Values[i] = ov.Str
				out.Mask[i] = true
			}
			continue
		}
		if cs.TypeTag != nil && cs.TypeTag[i] == store.TagText && cs.Texts != nil {
			out.Values[i] = cs.Texts[i]
			out.Mask[i] = true
		}
	}
	return out
}

// ErrorsSlices returns overlay-merged error lane segments per column.
func (v RangeView) ErrorsSlices() [][]ColumnErrors {
	var out [][]ColumnErrors
	for _, seg := range v.RowChunkSlices() {
		var row []ColumnErrors
		for _, cs := range seg.Columns {
			row = append(row, mergeErrors(cs, seg.Len))
		}
		out = append(out, row)
	}
	return out
}

// ColumnErrors is an overlay-merged error lane segment.
type ColumnErrors struct {
	Values []value.ErrorKind
	Mask   []bool
}

func mergeErrors(cs *ColumnSegment, length int) ColumnErrors {
	out := ColumnErrors{Values: make([]value.ErrorKind, length), Mask: make([]bool, length)}
	for i := 0; i < length; i++ {
		if ov, ok := cs.Overlay[i]; ok {
			if ov.Kind == value.Error {
				out.Values[i] = ov.Err
				out.Mask[i] = true
			}
			continue
		}
		if cs.TypeTag != nil && cs.TypeTag[i] == store.TagError && cs.Errors != nil {
			out.Values[i] = cs.Errors[i]
			out.Mask[i] = true
		}
	}
	return out
}

// LoweredTextColumns materializes, per column in the view, the
// concatenated ASCII-lowered text lane across all covered rows, merging
// overlays via the §4.4.2 projection (empty->null, number->lowercased
// decimal text, boolean->"true"/"false", error/pending->null).
func (v RangeView) LoweredTextColumns() [][]string {
	rows, cols := v.Dims()
	if rows == 0 {
		return nil
	}
	out := make([][]string, cols)
	for i := range out {
		out[i] = make([]string, rows)
	}
	r := 0
	for _, seg := range v.RowChunkSlices() {
		for ci, cs := range seg.Columns {
			lowered := loweredColumnSegment(cs, seg.Len)
			copy(out[ci][r:r+seg.Len], lowered)
		}
		r += seg.Len
	}
	return out
}

func loweredColumnSegment(cs *ColumnSegment, length int) []string {
	out := make([]string, length)
	for i := 0; i < length; i++ {
		if ov, ok := cs.Overlay[i]; ok {
			if s, ok := valueLoweredProjection(ov); ok {
				out[i] = s
			}
			continue
		}
		if cs.TypeTag != nil && cs.TypeTag[i] == store.TagText && cs.Texts != nil {
			out[i] = asciiLowerLocal(cs.Texts[i])
		}
	}
	return out
}

func asciiLowerLocal(s string) string {
	b := []byte(s)
	for i, ch := range b {
		if ch >= 'A' && ch <= 'Z' {
			b[i] = ch + ('a' - 'A')
		}
	}
	return string(b)
}

func valueLoweredProjection(v value.LiteralValue) (string, bool) {
	switch v.Kind {
	case value.Text:
		return asciiLowerLocal(v.Str), true
	case value.Number, value.Int, value.Date, value.DateTime, value.Time, value.Duration:
		return asciiLowerLocal(v.String()), true
	case value.Boolean:
		if v.Bool {
			return "true", true
		}
		return "false", true
	default:
		return "", false
	}
}
