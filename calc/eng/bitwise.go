// Package eng contributes the engineering builtin family of §4.5.1:
// bitwise operations, base conversion, DELTA/GESTEP, complex-number
// arithmetic over the "a+bi" string representation, and the CONVERT unit
// registry.
package eng

import (
	"math"

	"github.com/calcengine/formulacore/calc"
	"github.com/calcengine/formulacore/value"
)

const bitLimit = 1 << 48

func asUint48(v calc.CalcValue) (uint64, bool) {
	c := value.CoerceNumber(v.ScalarLike())
	if c.Kind != value.Number {
		return 0, false
	}
	if c.Num < 0 || c.Num != math.Trunc(c.Num) || c.Num >= bitLimit {
		return 0, false
	}
	return uint64(c.Num), true
}

// bitwiseEval implements BITAND/BITOR/BITXOR (§4.5.1): non-negative
// integer operands below 2^48, combined by op.
func bitwiseEval(op func(a, b uint64) uint64) func(*calc.Context, []calc.CalcValue) value.LiteralValue {
	return func(ctx *calc.Context, args []calc.CalcValue) value.LiteralValue {
		if len(args) != 2 {
			return value.ErrorV(value.ErrValue)
		}
		a, ok := asUint48(args[0])
		if !ok {
			return value.ErrorV(value.ErrNum)
		}
		b, ok := asUint48(args[1])
		if !ok {
			return value.ErrorV(value.ErrNum)
		}
		return value.NumberV(float64(op(a, b)))
	}
}

// bitShiftEval implements BITLSHIFT/BITRSHIFT: a negative shift amount
// inverts direction; results outside [0, 2^48) are #NUM!.
func bitShiftEval(left bool) func(*calc.Context, []calc.CalcValue) value.LiteralValue {
	return func(ctx *calc.Context, args []calc.CalcValue) value.LiteralValue {
		if len(args) != 2 {
			return value.ErrorV(value.ErrValue)
		}
		a, ok := asUint48(args[0])
		if !ok {
			return value.ErrorV(value.ErrNum)
		}
		sc := value.CoerceNumber(args[1].ScalarLike())
		if sc.Kind != value.Number || sc.Num != math.Trunc(sc.Num) {
			return value.ErrorV(value.ErrNum)
		}
		shift := int(sc.Num)
		dir := left
		if shift < 0 {
			shift = -shift
			dir = !left
		}
		if shift >= 48 {
			return value.ErrorV(value.ErrNum)
		}
		var result uint64
		if dir {
			result = a << uint(shift)
		} else {
			result = a >> uint(shift)
		}
		if result >= bitLimit {
			return value.ErrorV(value.ErrNum)
		}
		return value.NumberV(float64(result))
	}
}

// deltaEval implements DELTA(a, b): 1 iff |a-b| < 1e-12.
func deltaEval(ctx *calc.Context, args []calc.CalcValue) value.LiteralValue {
	if len(args) != 2 {
		return value.ErrorV(value.ErrValue)
	}
	a := value.CoerceNumber(args[0].ScalarLike())
	b := value.CoerceNumber(args[1].ScalarLike())
	if a.Kind != value.Number || b.Kind != value.Number {
		return value.ErrorV(value.ErrValue)
	}
	if math.Abs(a.Num-b.Num) < 1e-12 {
		return value.NumberV(1)
	}
	return value.NumberV(0)
}

// gestepEval implements GESTEP(a, step): 1 iff a >= step.
func gestepEval(ctx *calc.Context, args []calc.CalcValue) value.LiteralValue {
	if len(args) < 1 || len(args) > 2 {
		return value.ErrorV(value.ErrValue)
	}
	a := value.CoerceNumber(args[0].ScalarLike())
	if a.Kind != value.Number {
		return value.ErrorV(value.ErrValue)
	}
	step := 0.0
	if len(args) == 2 {
		s := value.CoerceNumber(args[1].ScalarLike())
		if s.Kind != value.Number {
			return value.ErrorV(value.ErrValue)
		}
		step = s.Num
	}
	if a.Num >= step {
		return value.NumberV(1)
	}
	return value.NumberV(0)
}
