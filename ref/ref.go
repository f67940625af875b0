// Package ref implements the reference model (§3.1): parsing and canonical
// printing of A1-style cell, range, sheet-qualified, table (structured), and
// named references.
package ref

import (
	"fmt"
	"strconv"
	"strings"
)

// Kind discriminates the four reference variants (§3.1).
type Kind uint8

const (
	CellKind Kind = iota
	RangeKind
	TableKind
	NamedKind
)

// Endpoint is one bound of a Range reference. A range endpoint may omit its
// row, its column, or (for a bare cell endpoint) neither — never both.
type Endpoint struct {
	Row    int
	Col    int
	HasRow bool
	HasCol bool
}

// SpecKind discriminates TableSpecifier variants (§6.2).
type SpecKind uint8

const (
	SpecColumn SpecKind = iota
	SpecColumnRange
	SpecSpecialItem
	SpecCombination
)

// TableSpecifier is the parsed bracket content of a structured reference.
type TableSpecifier struct {
	Kind      SpecKind
	Column    string
	ColumnEnd string
	Special   string
	Parts     []TableSpecifier
	Raw       string // preserved for specifiers PARSE_COMPLEX_TABLE_SPECIFIER can't fully parse
}

// Reference is the tagged union described in §3.1.
type Reference struct {
	Kind     Kind
	Sheet    string
	HasSheet bool

	// CellKind
	Row, Col int

	// RangeKind
	Start, End Endpoint

	// TableKind
	TableName string
	TableSpec *TableSpecifier

	// NamedKind
	Name string

	Original string
}

// Parse parses a reference string (§4.3).
func Parse(text string) (Reference, error) {
	if strings.Contains(text, "[") {
		return parseTableRef(text)
	}

	sheet, hasSheet, rest, err := splitSheetQualifier(text)
	if err != nil {
		return Reference{}, err
	}

	if idx := strings.IndexByte(rest, ':'); idx >= 0 {
		startText, endText := rest[:idx], rest[idx+1:]
		start, ok1 := parseEndpoint(startText)
		end, ok2 := parseEndpoint(endText)
		if !ok1 || !ok2 {
			return Reference{Kind: NamedKind, Name: text, Original: text}, nil
		}
		return Reference{
			Kind: RangeKind, Sheet: sheet, HasSheet: hasSheet,
			Start: start, End: end, Original: text,
		}, nil
	}

	if row, col, ok := parseCell(rest); ok {
		return Reference{Kind: CellKind, Sheet: sheet, HasSheet: hasSheet, Row: row, Col: col, Original: text}, nil
	}

	return Reference{Kind: NamedKind, Name: text, Original: text}, nil
}

// splitSheetQualifier splits a leading 'Sheet'! or Sheet! qualifier.
func splitSheetQualifier(text string) (sheet string, has bool, rest string, err error) {
	if strings.HasPrefix(text, "'") {
		end := -1
		for i := 1; i < len(text); i++ {
			if text[i] == '\'' {
				if i+1 < len(text) && text[i+1] == '\'' {
					i++
					continue
				}
				end = i
				break
			}
		}
		if end < 0 {
			return "", false, text, fmt.Errorf("unterminated quoted sheet name in %q", text)
		}
		name := strings.ReplaceAll(text[1:end], "''", "'")
		if end+1 >= len(text) || text[end+1] != '!' {
			return "", false, text, fmt.Errorf("expected '!' after quoted sheet name in %q", text)
		}
		return name, true, text[end+2:], nil
	}
	if idx := strings.IndexByte(text, '!'); idx >= 0 {
		return text[:idx], true, text[idx+1:], nil
	}
	return "", false, text, nil
}

func parseEndpoint(s string) (Endpoint, bool) {
	s = strings.TrimPrefix(s, "$")
	if s == "" {
		return Endpoint{}, false
	}
	// column-only: all letters
	if isAllAlpha(s) {
		col, err := ColumnToNumber(s)
		if err != nil {
			return Endpoint{}, false
		}
		return Endpoint{Col: col, HasCol: true}, true
	}
	// row-only: all digits
	if isAllDigit(s) {
		row, err := strconv.Atoi(s)
		if err != nil || row < 1 {
			return Endpoint{}, false
		}
		return Endpoint{Row: row, HasRow: true}, true
	}
	row, col, ok := parseCell(s)
	if !ok {
		return Endpoint{}, false
	}
	return Endpoint{Row: row, Col: col, HasRow: true, HasCol: true}, true
}

func isAllAlpha(s string) bool {
	for i := 0; i < len(s); i++ {
		c := s[i]
		if !((c >= 'A' && c <= 'Z') || (c >= 'a' && c <= 'z')) {
			return false
		}
	}
	return len(s) > 0
}

func isAllDigit(s string) bool {
	for i := 0; i < len(s); i++ {
		if s[i] < '0' || s[i] > '9' {
			return false
		}
	}
	return len(s) > 0
}

// parseCell parses "$A$1"-shaped text (absolute markers accepted and
// discarded, §4.3 step 3).
func parseCell(s string) (row, col int, ok bool) {
	s = strings.TrimPrefix(s, "$")
	i := 0
	for i < len(s) && ((s[i] >= 'A' && s[i] <= 'Z') || (s[i] >= 'a' && s[i] <= 'z')) {
		i++
	}
	if i == 0 {
		return 0, 0, false
	}
	colLetters := s[:i]
	rest := s[i:]
	rest = strings.TrimPrefix(rest, "$")
	if rest == "" || !isAllDigit(rest) {
		return 0, 0, false
	}
	c, err := ColumnToNumber(colLetters)
	if err != nil {
		return 0, 0, false
	}
	r, err := strconv.Atoi(rest)
	if err != nil || r < 1 {
		return 0, 0, false
	}
	return r, c, true
}

// String prints a reference in canonical form (§3.1 invariant, §4.3
// printing rules): sheet names are single-quoted iff they contain
// space/!/'/"; suffix absolutes are omitted; infinite-range endpoints print
// as bare letters or digits.
func (r Reference) String() string {
	switch r.Kind {
	case CellKind:
		return r.sheetPrefix() + cellText(r.Row, r.Col)
	case RangeKind:
		return r.sheetPrefix() + endpointText(r.Start) + ":" + endpointText(r.End)
	case TableKind:
		if r.TableSpec == nil {
			return r.TableName
		}
		return r.TableName + "[" + r.TableSpec.String() + "]"
	case NamedKind:
		return r.Name
	default:
		return r.Original
	}
}

func (r Reference) sheetPrefix() string {
	if !r.HasSheet {
		return ""
	}
	if needsQuoting(r.Sheet) {
		return "'" + strings.ReplaceAll(r.Sheet, "'", "''") + "'!"
	}
	return r.Sheet + "!"
}

func needsQuoting(sheet string) bool {
	return strings.ContainsAny(sheet, " !'\"")
}

func cellText(row, col int) string {
	letters, _ := NumberToColumn(col)
	return letters + strconv.Itoa(row)
}

func endpointText(e Endpoint) string {
	switch {
	case e.HasRow && e.HasCol:
		return cellText(e.Row, e.Col)
	case e.HasCol:
		letters, _ := NumberToColumn(e.Col)
		return letters
	case e.HasRow:
		return strconv.Itoa(e.Row)
	default:
		return ""
	}
}

func (s TableSpecifier) String() string {
	switch s.Kind {
	case SpecColumn:
		return strings.TrimSpace(s.Column)
	case SpecColumnRange:
		return strings.TrimSpace(s.Column) + ":" + strings.TrimSpace(s.ColumnEnd)
	case SpecSpecialItem:
		return s.Special
	case SpecCombination:
		parts := make([]string, len(s.Parts))
		for i, p := range s.Parts {
			parts[i] = "[" + p.String() + "]"
		}
		return strings.Join(parts, ",")
	default:
		return s.Raw
	}
}

const maxColumnLen = 3
const maxColumnNumber = 16384 // XFD, the practical cap

// columnTable is a precomputed fast path for columns 1..=702 (A..ZZ), per
// §4.3's "allowed fast path" note.
var columnTable [703]string

func init() {
	for n := 1; n <= 702; n++ {
		columnTable[n] = computeColumnLetters(n)
	}
}

func computeColumnLetters(n int) string {
	var b []byte
	for n > 0 {
		n--
		b = append([]byte{byte('A' + n%26)}, b...)
		n /= 26
	}
	return string(b)
}

// ColumnToNumber converts column letters ("A".."XFD") to a 1-based column
// number, base-26 with letters as digits 1..26.
func ColumnToNumber(letters string) (int, error) {
	if len(letters) == 0 || len(letters) > maxColumnLen {
		return 0, fmt.Errorf("invalid column %q", letters)
	}
	n := 0
	for i := 0; i < len(letters); i++ {
		c := letters[i]
		var d int
		switch {
		case c >= 'A' && c <= 'Z':
			d = int(c-'A') + 1
		case c >= 'a' && c <= 'z':
			d = int(c-'a') + 1
		default:
			return 0, fmt.Errorf("invalid column letter %q", c)
		}
		n = n*26 + d
	}
	if n < 1 || n > maxColumnNumber {
		return 0, fmt.Errorf("column %q out of range", letters)
	}
	return n, nil
}

// NumberToColumn converts a 1-based column number to its letters.
func NumberToColumn(n int) (string, error) {
	if n < 1 || n > maxColumnNumber {
		return "", fmt.Errorf("column number %d out of range", n)
	}
	if n <= 702 {
		return columnTable[n], nil
	}
	return computeColumnLetters(n), nil
}
