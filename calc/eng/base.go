package eng

import (
	"strconv"
	"strings"

	"github.com/calcengine/formulacore/calc"
	"github.com/calcengine/formulacore/value"
)

// base describes one of the BIN/OCT/DEC/HEX families: its digit count, the
// bit width at which a leading digit signals a two's-complement negative,
// and its numeric base for strconv.
type base struct {
	radix    int
	bitWidth uint // width of the two's-complement representation (10 digits)
	digits   int  // max input digit length
}

var (
	binBase = base{radix: 2, bitWidth: 10, digits: 10}
	octBase = base{radix: 8, bitWidth: 30, digits: 10}
	hexBase = base{radix: 16, bitWidth: 40, digits: 10}
)

// decodeSigned parses a base-N string of up to b.digits digits, applying
// two's-complement decoding when the value's top bit/nibble signals
// negative (§4.5.1: "10-digit values with high bit... decode as two's-
// complement negatives").
func decodeSigned(s string, b base) (int64, bool) {
	if len(s) == 0 || len(s) > b.digits {
		return 0, false
	}
	raw, err := strconv.ParseUint(s, b.radix, 64)
	if err != nil {
		return 0, false
	}
	if len(s) == b.digits {
		signBit := uint64(1) << (b.bitWidth - 1)
		if raw&signBit != 0 {
			full := uint64(1) << b.bitWidth
			return int64(raw) - int64(full), true
		}
	}
	return int64(raw), true
}

// encodeSigned formats n in base b, two's-complement for negatives, padded
// to `places` when given (>= natural width, <= 10), else the natural
// width (minimum of 10 digits for negatives, matching Excel's fixed
// 10-digit two's-complement output).
func encodeSigned(n int64, b base, places int, havePlaces bool) (string, bool) {
	if n < 0 {
		full := int64(1) << b.bitWidth
		u := uint64(n + full)
		s := strconv.FormatUint(u, b.radix)
		if len(s) < b.digits {
			s = strings.Repeat("0", b.digits-len(s)) + s
		}
		return s, true
	}
	s := strconv.FormatInt(n, b.radix)
	if havePlaces {
		if places < len(s) || places > 10 {
			return "", false
		}
		s = strings.Repeat("0", places-len(s)) + s
	}
	return s, true
}

func scalarText(v calc.CalcValue) (string, bool) {
	sv := v.ScalarLike()
	c := value.CoerceText(sv)
	if c.Kind != value.Text {
		return "", false
	}
	return c.Str, true
}

// toDecEval builds a BIN2DEC/OCT2DEC/HEX2DEC evaluator.
func toDecEval(b base) func(*calc.Context, []calc.CalcValue) value.LiteralValue {
	return func(ctx *calc.Context, args []calc.CalcValue) value.LiteralValue {
		if len(args) != 1 {
			return value.ErrorV(value.ErrValue)
		}
		s, ok := scalarText(args[0])
		if !ok {
			return value.ErrorV(value.ErrValue)
		}
		n, ok := decodeSigned(s, b)
		if !ok {
			return value.ErrorV(value.ErrNum)
		}
		return value.NumberV(float64(n))
	}
}

// fromDecEval builds a DEC2BIN/DEC2OCT/DEC2HEX evaluator. An optional
// second argument gives the zero-padded output width.
func fromDecEval(b base) func(*calc.Context, []calc.CalcValue) value.LiteralValue {
	return func(ctx *calc.Context, args []calc.CalcValue) value.LiteralValue {
		if len(args) < 1 || len(args) > 2 {
			return value.ErrorV(value.ErrValue)
		}
		nv := value.CoerceNumber(args[0].ScalarLike())
		if nv.Kind != value.Number {
			return value.ErrorV(value.ErrValue)
		}
		n := int64(nv.Num)
		places := 0
		havePlaces := len(args) == 2
		if havePlaces {
			pv := value.CoerceNumber(args[1].ScalarLike())
			if pv.Kind != value.Number {
				return value.ErrorV(value.ErrValue)
			}
			places = int(pv.Num)
		}
		s, ok := encodeSigned(n, b, places, havePlaces)
		if !ok {
			return value.ErrorV(value.ErrNum)
		}
		return value.TextV(s)
	}
}

// crossBaseEval builds a cross-base conversion (e.g. BIN2HEX) by decoding
// through `from` and re-encoding through `to`.
func crossBaseEval(from, to base) func(*calc.Context, []calc.CalcValue) value.LiteralValue {
	return func(ctx *calc.Context, args []calc.CalcValue) value.LiteralValue {
		if len(args) < 1 || len(args) > 2 {
			return value.ErrorV(value.ErrValue)
		}
		s, ok := scalarText(args[0])
		if !ok {
			return value.ErrorV(value.ErrValue)
		}
		n, ok := decodeSigned(s, from)
		if !ok {
			return value.ErrorV(value.ErrNum)
		}
		places := 0
		havePlaces := len(args) == 2
		if havePlaces {
			pv := value.CoerceNumber(args[1].ScalarLike())
			if pv.Kind != value.Number {
				return value.ErrorV(value.ErrValue)
			}
			places = int(pv.Num)
		}
		out, ok := encodeSigned(n, to, places, havePlaces)
		if !ok {
			return value.ErrorV(value.ErrNum)
		}
		return value.TextV(out)
	}
}
