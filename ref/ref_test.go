package ref

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestColumnNumberRoundTrip(t *testing.T) {
	for c := 1; c <= 16384; c += 37 {
		letters, err := NumberToColumn(c)
		require.NoError(t, err)
		back, err := ColumnToNumber(letters)
		require.NoError(t, err)
		assert.Equal(t, c, back)
	}
}

func TestColumnToNumberKnownValues(t *testing.T) {
	n, err := ColumnToNumber("A")
	require.NoError(t, err)
	assert.Equal(t, 1, n)

	n, err = ColumnToNumber("Z")
	require.NoError(t, err)
	assert.Equal(t, 26, n)

	n, err = ColumnToNumber("AA")
	require.NoError(t, err)
	assert.Equal(t, 27, n)

	n, err = ColumnToNumber("XFD")
	require.NoError(t, err)
	assert.Equal(t, 16384, n)
}

func TestColumnToNumberOutOfRange(t *testing.T) {
	_, err := ColumnToNumber("XFE")
	assert.Error(t, err)
}

func TestParseCellReference(t *testing.T) {
	r, err := Parse("$B$3")
	require.NoError(t, err)
	assert.Equal(t, CellKind, r.Kind)
	assert.Equal(t, 3, r.Row)
	assert.Equal(t, 2, r.Col)
}

func TestParseRangeReference(t *testing.T) {
	r, err := Parse("A1:B2")
	require.NoError(t, err)
	require.Equal(t, RangeKind, r.Kind)
	assert.Equal(t, 1, r.Start.Row)
	assert.Equal(t, 1, r.Start.Col)
	assert.Equal(t, 2, r.End.Row)
	assert.Equal(t, 2, r.End.Col)
}

func TestParseSheetQualifiedReference(t *testing.T) {
	r, err := Parse("Sheet1!A1")
	require.NoError(t, err)
	assert.True(t, r.HasSheet)
	assert.Equal(t, "Sheet1", r.Sheet)
}

func TestParseQuotedSheetName(t *testing.T) {
	r, err := Parse("'My Sheet'!A1")
	require.NoError(t, err)
	assert.Equal(t, "My Sheet", r.Sheet)
	assert.Equal(t, "'My Sheet'!A1", r.String())
}

func TestParseNamedReference(t *testing.T) {
	r, err := Parse("MyRange")
	require.NoError(t, err)
	assert.Equal(t, NamedKind, r.Kind)
	assert.Equal(t, "MyRange", r.Name)
}

func TestReferenceStringRoundTrip(t *testing.T) {
	for _, text := range []string{"A1", "$B$3", "A1:B2", "Sheet1!A1"} {
		r, err := Parse(text)
		require.NoError(t, err)
		printed := r.String()
		r2, err := Parse(printed)
		require.NoError(t, err)
		assert.Equal(t, r2.String(), printed)
	}
}

func TestOpenEndedRangeEndpoints(t *testing.T) {
	r, err := Parse("A:A")
	require.NoError(t, err)
	require.Equal(t, RangeKind, r.Kind)
	assert.True(t, r.Start.HasCol)
	assert.False(t, r.Start.HasRow)
	assert.Equal(t, "A:A", r.String())
}

func TestSheetNeedsQuotingOnPrint(t *testing.T) {
	r := Reference{Kind: CellKind, Sheet: "My Sheet", HasSheet: true, Row: 1, Col: 1}
	assert.Equal(t, "'My Sheet'!A1", r.String())
}
