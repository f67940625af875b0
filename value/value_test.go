package value

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestErrorKindRoundTrip(t *testing.T) {
	for k, text := range errText {
		got, ok := ParseErrorLiteral(text)
		assert.True(t, ok)
		assert.Equal(t, k, got)
	}
}

func TestParseErrorLiteralUnrecognized(t *testing.T) {
	_, ok := ParseErrorLiteral("#NOT_AN_ERROR!")
	assert.False(t, ok)
}

func TestCoerceNumber(t *testing.T) {
	assert.Equal(t, NumberV(3), CoerceNumber(TextV("3")))
	assert.Equal(t, NumberV(1), CoerceNumber(BoolV(true)))
	assert.Equal(t, NumberV(0), CoerceNumber(EmptyV()))
	assert.Equal(t, ErrValue, CoerceNumber(TextV("abc")).Err)
	assert.Equal(t, ErrRef, CoerceNumber(ErrorV(ErrRef)).Err)
}

func TestCoerceBool(t *testing.T) {
	assert.Equal(t, BoolV(true), CoerceBool(TextV("true")))
	assert.Equal(t, BoolV(false), CoerceBool(NumberV(0)))
	assert.Equal(t, BoolV(true), CoerceBool(NumberV(5)))
	assert.Equal(t, ErrValue, CoerceBool(TextV("maybe")).Err)
}

func TestCoerceText(t *testing.T) {
	assert.Equal(t, "TRUE", CoerceText(BoolV(true)).Str)
	assert.Equal(t, "5", CoerceText(NumberV(5)).Str)
	assert.Equal(t, "", CoerceText(EmptyV()).Str)
}

func TestArrayAt(t *testing.T) {
	arr := ArrayV(2, 2, []LiteralValue{NumberV(1), NumberV(2), NumberV(3), NumberV(4)})
	assert.Equal(t, NumberV(3), arr.At(1, 0))
	assert.Equal(t, EmptyV(), arr.At(5, 5))
}

func TestScalarAtTreatsSelfAs1x1(t *testing.T) {
	v := NumberV(42)
	assert.Equal(t, v, v.At(0, 0))
	assert.Equal(t, EmptyV(), v.At(0, 1))
}

func TestCloneArrayDoesNotAlias(t *testing.T) {
	arr := ArrayV(1, 2, []LiteralValue{NumberV(1), NumberV(2)})
	clone := arr.Clone()
	clone.Items[0] = NumberV(99)
	assert.Equal(t, NumberV(1), arr.Items[0])
	assert.Equal(t, NumberV(99), clone.Items[0])
}

func TestCloneScalarIsIdentity(t *testing.T) {
	v := TextV("hello")
	assert.Equal(t, v, v.Clone())
}

func TestStringRendering(t *testing.T) {
	assert.Equal(t, "TRUE", BoolV(true).String())
	assert.Equal(t, "#DIV/0!", ErrorV(ErrDiv).String())
	assert.Equal(t, "3", NumberV(3).String())
	assert.Equal(t, "", EmptyV().String())
}
