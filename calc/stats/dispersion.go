package stats

import (
	"math"
	"sort"

	"github.com/calcengine/formulacore/calc"
	"github.com/calcengine/formulacore/value"
)

func mean(nums []float64) float64 {
	sum := 0.0
	for _, n := range nums {
		sum += n
	}
	return sum / float64(len(nums))
}

func sumSquaredDeviations(nums []float64, m float64) float64 {
	sum := 0.0
	for _, n := range nums {
		d := n - m
		sum += d * d
	}
	return sum
}

// varEval implements VAR.S/VAR.P (§4.5.1): sample uses n-1, population
// uses n; #DIV/0! when the denominator would be 0.
func varEval(sample bool) func(*calc.Context, []calc.CalcValue) value.LiteralValue {
	return func(ctx *calc.Context, args []calc.CalcValue) value.LiteralValue {
		nums, errv := calc.CollectNumbers(args)
		if errv != nil {
			return *errv
		}
		n := len(nums)
		denom := n
		if sample {
			denom = n - 1
		}
		if denom <= 0 {
			return value.ErrorV(value.ErrDiv)
		}
		m := mean(nums)
		return value.NumberV(sumSquaredDeviations(nums, m) / float64(denom))
	}
}

// stdevEval implements STDEV.S/STDEV.P as sqrt(VAR.S/VAR.P).
func stdevEval(sample bool) func(*calc.Context, []calc.CalcValue) value.LiteralValue {
	inner := varEval(sample)
	return func(ctx *calc.Context, args []calc.CalcValue) value.LiteralValue {
		v := inner(ctx, args)
		if v.Kind == value.Error {
			return v
		}
		return value.NumberV(math.Sqrt(v.Num))
	}
}

// modeSingleEval implements MODE.SNGL: the lowest-valued mode among ties;
// #N/A if no duplicate exists.
func modeSingleEval(ctx *calc.Context, args []calc.CalcValue) value.LiteralValue {
	modes, errv := findModes(args)
	if errv != nil {
		return *errv
	}
	if len(modes) == 0 {
		return value.ErrorV(value.ErrNA)
	}
	return value.NumberV(modes[0])
}

// modeMultiEval implements MODE.MULT: a vertical array of all tied modes,
// ascending.
func modeMultiEval(ctx *calc.Context, args []calc.CalcValue) value.LiteralValue {
	modes, errv := findModes(args)
	if errv != nil {
		return *errv
	}
	if len(modes) == 0 {
		return value.ErrorV(value.ErrNA)
	}
	items := make([]value.LiteralValue, len(modes))
	for i, m := range modes {
		items[i] = value.NumberV(m)
	}
	return value.ArrayV(len(modes), 1, items)
}

func findModes(args []calc.CalcValue) ([]float64, *value.LiteralValue) {
	nums, errv := calc.CollectNumbers(args)
	if errv != nil {
		return nil, errv
	}
	counts := make(map[float64]int)
	for _, n := range nums {
		counts[n]++
	}
	best := 0
	for _, c := range counts {
		if c > best {
			best = c
		}
	}
	if best < 2 {
		return nil, nil
	}
	var modes []float64
	for v, c := range counts {
		if c == best {
			modes = append(modes, v)
		}
	}
	sort.Float64s(modes)
	return modes, nil
}
