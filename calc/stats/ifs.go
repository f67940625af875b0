package stats

import (
	"github.com/calcengine/formulacore/calc"
	"github.com/calcengine/formulacore/value"
)

// maxMinIfsEval implements MAXIFS/MINIFS (§4.5.1): target_range plus one or
// more (criteria_range, criteria) pairs ANDed together; 0 when no cell
// matches.
func maxMinIfsEval(takeMax bool) func(*calc.Context, []calc.CalcValue) value.LiteralValue {
	return func(ctx *calc.Context, args []calc.CalcValue) value.LiteralValue {
		if len(args) < 3 || len(args)%2 == 0 {
			return value.ErrorV(value.ErrValue)
		}
		target := args[0]
		if !target.IsRange() {
			return value.ErrorV(value.ErrValue)
		}
		rows, cols := target.Range.Dims()

		pairs := len(args[1:]) / 2
		preds := make([]predicate, pairs)
		criteriaRanges := make([]calc.CalcValue, pairs)
		for i := 0; i < pairs; i++ {
			cr := args[1+2*i]
			crit := args[2+2*i].ScalarLike()
			if crit.Kind == value.Error {
				return crit
			}
			preds[i] = buildPredicate(crit)
			criteriaRanges[i] = cr
		}

		found := false
		var best float64
		for r := 0; r < rows; r++ {
			for c := 0; c < cols; c++ {
				matched := true
				for i, cr := range criteriaRanges {
					var cell value.LiteralValue
					if cr.IsRange() {
						cell = cr.Range.GetCell(r, c)
					} else {
						cell = cr.ScalarLike()
					}
					if !preds[i](cell) {
						matched = false
						break
					}
				}
				if !matched {
					continue
				}
				cell := target.Range.GetCell(r, c)
				if cell.Kind != value.Number && cell.Kind != value.Int {
					continue
				}
				if !found || (takeMax && cell.Num > best) || (!takeMax && cell.Num < best) {
					best = cell.Num
					found = true
				}
			}
		}
		if !found {
			return value.NumberV(0)
		}
		return value.NumberV(best)
	}
}
