package stats

import (
	"math"

	"github.com/calcengine/formulacore/calc"
	"github.com/calcengine/formulacore/value"
)

// interpolate reads the sorted array at fractional rank `rank` (0-based),
// linearly interpolating between the two bracketing elements.
func interpolate(sorted []float64, rank float64) float64 {
	lo := int(math.Floor(rank))
	hi := int(math.Ceil(rank))
	if lo < 0 {
		lo = 0
	}
	if hi >= len(sorted) {
		hi = len(sorted) - 1
	}
	if lo == hi {
		return sorted[lo]
	}
	frac := rank - float64(lo)
	return sorted[lo] + frac*(sorted[hi]-sorted[lo])
}

// percentileIncEval implements PERCENTILE.INC: linear interpolation on
// rank = p*(n-1), p in [0,1] (§4.5.1).
func percentileIncEval(ctx *calc.Context, args []calc.CalcValue) value.LiteralValue {
	return percentileEval(args, false)
}

// percentileExcEval implements PERCENTILE.EXC: rank = p*(n+1), rank in
// [1, n], else #NUM! (§4.5.1).
func percentileExcEval(ctx *calc.Context, args []calc.CalcValue) value.LiteralValue {
	return percentileEval(args, true)
}

func percentileEval(args []calc.CalcValue, exclusive bool) value.LiteralValue {
	if len(args) != 2 {
		return value.ErrorV(value.ErrValue)
	}
	nums, errv := calc.CollectNumbers(args[:1])
	if errv != nil {
		return *errv
	}
	pv, errv := calc.CollectNumbers(args[1:2])
	if errv != nil {
		return *errv
	}
	if len(pv) != 1 || len(nums) == 0 {
		return value.ErrorV(value.ErrValue)
	}
	p := pv[0]
	sorted := sortedCopy(nums)
	n := len(sorted)
	if exclusive {
		rank := p * float64(n+1)
		if rank < 1 || rank > float64(n) {
			return value.ErrorV(value.ErrNum)
		}
		return value.NumberV(interpolate(sorted, rank-1))
	}
	if p < 0 || p > 1 {
		return value.ErrorV(value.ErrNum)
	}
	rank := p * float64(n-1)
	return value.NumberV(interpolate(sorted, rank))
}

// quartileIncEval implements QUARTILE.INC: dispatches to PERCENTILE.INC at
// q/4 with special cases for q=0 and q=4 (§4.5.1).
func quartileIncEval(ctx *calc.Context, args []calc.CalcValue) value.LiteralValue {
	return quartileEval(args, false)
}

// quartileExcEval implements QUARTILE.EXC.
func quartileExcEval(ctx *calc.Context, args []calc.CalcValue) value.LiteralValue {
	return quartileEval(args, true)
}

func quartileEval(args []calc.CalcValue, exclusive bool) value.LiteralValue {
	if len(args) != 2 {
		return value.ErrorV(value.ErrValue)
	}
	nums, errv := calc.CollectNumbers(args[:1])
	if errv != nil {
		return *errv
	}
	qv, errv := calc.CollectNumbers(args[1:2])
	if errv != nil {
		return *errv
	}
	if len(qv) != 1 {
		return value.ErrorV(value.ErrValue)
	}
	q := int(qv[0])
	if q < 0 || q > 4 {
		return value.ErrorV(value.ErrNum)
	}
	sorted := sortedCopy(nums)
	if len(sorted) == 0 {
		return value.ErrorV(value.ErrNum)
	}
	if !exclusive {
		if q == 0 {
			return value.NumberV(sorted[0])
		}
		if q == 4 {
			return value.NumberV(sorted[len(sorted)-1])
		}
	}
	p := float64(q) / 4
	return percentileEval([]calc.CalcValue{args[0], calc.Scalar(value.NumberV(p))}, exclusive)
}
