package stats

import (
	"github.com/calcengine/formulacore/calc"
	"github.com/calcengine/formulacore/value"
)

// rankEval implements RANK.EQ/RANK.AVG (§4.5.1): 1-based rank, descending
// unless order is non-zero, ties sharing the earliest position (EQ) or the
// mean of their tied positions (AVG); #N/A if target isn't present.
func rankEval(average bool) func(*calc.Context, []calc.CalcValue) value.LiteralValue {
	return func(ctx *calc.Context, args []calc.CalcValue) value.LiteralValue {
		if len(args) < 2 {
			return value.ErrorV(value.ErrValue)
		}
		targetC, errv := calc.CollectNumbers(args[:1])
		if errv != nil {
			return *errv
		}
		if len(targetC) != 1 {
			return value.ErrorV(value.ErrValue)
		}
		target := targetC[0]
		nums, errv := calc.CollectNumbers(args[1:2])
		if errv != nil {
			return *errv
		}
		descending := true
		if len(args) >= 3 {
			ord, errv := calc.CollectNumbers(args[2:3])
			if errv != nil {
				return *errv
			}
			if len(ord) == 1 && ord[0] != 0 {
				descending = false
			}
		}

		var equalPositions []int // 1-based positions of values equal to target
		less := 0                // count of values "ahead of" target
		for _, n := range nums {
			cmp := func() bool {
				if descending {
					return n > target
				}
				return n < target
			}()
			if cmp {
				less++
			}
		}
		found := false
		count := 0
		for _, n := range nums {
			if n == target {
				found = true
				count++
			}
		}
		if !found {
			return value.ErrorV(value.ErrNA)
		}
		for i := 0; i < count; i++ {
			equalPositions = append(equalPositions, less+1+i)
		}
		if average {
			sum := 0
			for _, p := range equalPositions {
				sum += p
			}
			return value.NumberV(float64(sum) / float64(len(equalPositions)))
		}
		return value.NumberV(float64(equalPositions[0]))
	}
}

// largeSmallEval implements LARGE/SMALL (§4.5.1): k-th largest/smallest,
// 1-based; #NUM! if k < 1 or k > count.
func largeSmallEval(largest bool) func(*calc.Context, []calc.CalcValue) value.LiteralValue {
	return func(ctx *calc.Context, args []calc.CalcValue) value.LiteralValue {
		if len(args) != 2 {
			return value.ErrorV(value.ErrValue)
		}
		nums, errv := calc.CollectNumbers(args[:1])
		if errv != nil {
			return *errv
		}
		kv, errv := calc.CollectNumbers(args[1:2])
		if errv != nil {
			return *errv
		}
		if len(kv) != 1 {
			return value.ErrorV(value.ErrValue)
		}
		k := int(kv[0])
		if k < 1 || k > len(nums) {
			return value.ErrorV(value.ErrNum)
		}
		sorted := sortedCopy(nums)
		if largest {
			return value.NumberV(sorted[len(sorted)-k])
		}
		return value.NumberV(sorted[k-1])
	}
}

// medianEval implements MEDIAN: sorted middle, mean of two middles for
// even size.
func medianEval(ctx *calc.Context, args []calc.CalcValue) value.LiteralValue {
	nums, errv := calc.CollectNumbers(args)
	if errv != nil {
		return *errv
	}
	if len(nums) == 0 {
		return value.ErrorV(value.ErrNum)
	}
	sorted := sortedCopy(nums)
	n := len(sorted)
	if n%2 == 1 {
		return value.NumberV(sorted[n/2])
	}
	return value.NumberV((sorted[n/2-1] + sorted[n/2]) / 2)
}
