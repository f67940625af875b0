package eng

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/calcengine/formulacore/calc"
	"github.com/calcengine/formulacore/value"
)

func num(v float64) calc.CalcValue { return calc.Scalar(value.NumberV(v)) }
func text(s string) calc.CalcValue { return calc.Scalar(value.TextV(s)) }

func TestBitwiseOps(t *testing.T) {
	and := bitwiseEval(func(a, b uint64) uint64 { return a & b })
	or := bitwiseEval(func(a, b uint64) uint64 { return a | b })
	xor := bitwiseEval(func(a, b uint64) uint64 { return a ^ b })
	assert.Equal(t, value.NumberV(8), and(nil, []calc.CalcValue{num(12), num(10)}))
	assert.Equal(t, value.NumberV(14), or(nil, []calc.CalcValue{num(12), num(10)}))
	assert.Equal(t, value.NumberV(6), xor(nil, []calc.CalcValue{num(12), num(10)}))
}

func TestBitwiseRejectsNegativeOrTooLarge(t *testing.T) {
	and := bitwiseEval(func(a, b uint64) uint64 { return a & b })
	got := and(nil, []calc.CalcValue{num(-1), num(1)})
	assert.Equal(t, value.ErrNum, got.Err)
	got = and(nil, []calc.CalcValue{num(1 << 48), num(1)})
	assert.Equal(t, value.ErrNum, got.Err)
}

func TestBitShiftLeftAndRight(t *testing.T) {
	left := bitShiftEval(true)
	right := bitShiftEval(false)
	assert.Equal(t, value.NumberV(8), left(nil, []calc.CalcValue{num(1), num(3)}))
	assert.Equal(t, value.NumberV(1), right(nil, []calc.CalcValue{num(8), num(3)}))
}

func TestBitShiftNegativeInvertsDirection(t *testing.T) {
	left := bitShiftEval(true)
	// a left-shift by -3 behaves as a right-shift by 3
	got := left(nil, []calc.CalcValue{num(8), num(-3)})
	assert.Equal(t, value.NumberV(1), got)
}

func TestBitShiftOverflowIsNum(t *testing.T) {
	left := bitShiftEval(true)
	got := left(nil, []calc.CalcValue{num(1 << 47), num(5)})
	assert.Equal(t, value.ErrNum, got.Err)
}

func TestDeltaEqualAndDifferent(t *testing.T) {
	assert.Equal(t, value.NumberV(1), deltaEval(nil, []calc.CalcValue{num(5), num(5)}))
	assert.Equal(t, value.NumberV(0), deltaEval(nil, []calc.CalcValue{num(5), num(6)}))
}

func TestGestepDefaultStepZero(t *testing.T) {
	assert.Equal(t, value.NumberV(1), gestepEval(nil, []calc.CalcValue{num(0)}))
	assert.Equal(t, value.NumberV(0), gestepEval(nil, []calc.CalcValue{num(-1)}))
}

func TestBinDecHexRoundTrip(t *testing.T) {
	bin2dec := toDecEval(binBase)
	dec2bin := fromDecEval(binBase)
	got := bin2dec(nil, []calc.CalcValue{text("1010")})
	assert.Equal(t, value.NumberV(10), got)
	back := dec2bin(nil, []calc.CalcValue{num(10)})
	assert.Equal(t, value.TextV("1010"), back)
}

func TestBinToDecTwosComplementNegative(t *testing.T) {
	bin2dec := toDecEval(binBase)
	got := bin2dec(nil, []calc.CalcValue{text("1111111111")}) // 10-digit, sign bit set
	assert.Equal(t, value.NumberV(-1), got)
}

func TestDec2BinWithPlacesPads(t *testing.T) {
	dec2bin := fromDecEval(binBase)
	got := dec2bin(nil, []calc.CalcValue{num(2), num(8)})
	assert.Equal(t, value.TextV("00000010"), got)
}

func TestDec2BinNegativeUsesTwosComplement(t *testing.T) {
	dec2bin := fromDecEval(binBase)
	got := dec2bin(nil, []calc.CalcValue{num(-1)})
	assert.Equal(t, value.TextV("1111111111"), got)
}

func TestCrossBaseConversion(t *testing.T) {
	bin2hex := crossBaseEval(binBase, hexBase)
	got := bin2hex(nil, []calc.CalcValue{text("11111111")})
	assert.Equal(t, value.TextV("ff"), got)
}

func TestHexToOctInvalidDigitIsNum(t *testing.T) {
	hex2oct := crossBaseEval(hexBase, octBase)
	got := hex2oct(nil, []calc.CalcValue{text("zz")})
	assert.Equal(t, value.ErrNum, got.Err)
}

func TestParseComplexVariants(t *testing.T) {
	c, suf, ok := parseComplex("3+4i")
	require.True(t, ok)
	assert.Equal(t, "i", suf)
	assert.Equal(t, complex(3, 4), c)

	c, suf, ok = parseComplex("5-2j")
	require.True(t, ok)
	assert.Equal(t, "j", suf)
	assert.Equal(t, complex(5, -2), c)

	c, _, ok = parseComplex("i")
	require.True(t, ok)
	assert.Equal(t, complex(0, 1), c)

	c, _, ok = parseComplex("3")
	require.True(t, ok)
	assert.Equal(t, complex(3, 0), c)
}

func TestParseComplexRejectsGarbage(t *testing.T) {
	_, _, ok := parseComplex("not a complex")
	assert.False(t, ok)
}

func TestFormatComplexCanonicalForms(t *testing.T) {
	assert.Equal(t, "3+4i", formatComplex(complex(3, 4), "i"))
	assert.Equal(t, "3-4i", formatComplex(complex(3, -4), "i"))
	assert.Equal(t, "4i", formatComplex(complex(0, 4), "i"))
	assert.Equal(t, "3", formatComplex(complex(3, 0), "i"))
	assert.Equal(t, "i", formatComplex(complex(0, 1), "i"))
}

func TestComplexEvalBuildsCanonicalString(t *testing.T) {
	got := complexEval(nil, []calc.CalcValue{num(3), num(4)})
	assert.Equal(t, value.TextV("3+4i"), got)
}

func TestImrealImaginaryImabs(t *testing.T) {
	assert.Equal(t, value.NumberV(3), imrealEval(nil, []calc.CalcValue{text("3+4i")}))
	assert.Equal(t, value.NumberV(4), imaginaryEval(nil, []calc.CalcValue{text("3+4i")}))
	assert.Equal(t, value.NumberV(5), imabsEval(nil, []calc.CalcValue{text("3+4i")}))
}

func TestImsumAndImproduct(t *testing.T) {
	sum := imVariadicEval(func(a, b complex128) complex128 { return a + b }, 0)
	got := sum(nil, []calc.CalcValue{text("1+1i"), text("2+2i")})
	assert.Equal(t, value.TextV("3+3i"), got)

	product := imVariadicEval(func(a, b complex128) complex128 { return a * b }, 1)
	got = product(nil, []calc.CalcValue{text("1+1i"), text("1-1i")})
	assert.Equal(t, value.TextV("2"), got)
}

func TestImdivByZeroIsDivError(t *testing.T) {
	div := binaryComplexEval(func(a, b complex128) (complex128, bool) {
		if b == 0 {
			return 0, false
		}
		return a / b, true
	})
	got := div(nil, []calc.CalcValue{text("1+1i"), text("0")})
	assert.Equal(t, value.ErrDiv, got.Err)
}

func TestConvertLengthUnits(t *testing.T) {
	got := convertEval(nil, []calc.CalcValue{num(1), text("km"), text("m")})
	assert.Equal(t, value.NumberV(1000), got)
}

func TestConvertTemperatureViaCelsiusPivot(t *testing.T) {
	got := convertEval(nil, []calc.CalcValue{num(32), text("F"), text("C")})
	assert.InDelta(t, 0, got.Num, 1e-9)
	got = convertEval(nil, []calc.CalcValue{num(0), text("C"), text("K")})
	assert.InDelta(t, 273.15, got.Num, 1e-9)
}

func TestConvertCrossCategoryIsNA(t *testing.T) {
	got := convertEval(nil, []calc.CalcValue{num(1), text("m"), text("C")})
	assert.Equal(t, value.ErrNA, got.Err)
}

func TestConvertUnknownUnitIsNA(t *testing.T) {
	got := convertEval(nil, []calc.CalcValue{num(1), text("bogus"), text("m")})
	assert.Equal(t, value.ErrNA, got.Err)
}
