package dist

import (
	"github.com/calcengine/formulacore/calc"
	"github.com/calcengine/formulacore/value"
)

// scalarNumber coerces a single argument slot to a number, per §4.5.3's
// lenient-text coercion policy for scalar slots.
func scalarNumber(v calc.CalcValue) (float64, bool) {
	c := value.CoerceNumber(v.ScalarLike())
	if c.Kind != value.Number {
		return 0, false
	}
	return c.Num, true
}

func scalarBool(v calc.CalcValue) bool {
	c := value.CoerceBool(v.ScalarLike())
	return c.Kind == value.Boolean && c.Bool
}

// numArgs reads exactly n scalar numeric arguments.
func numArgs(args []calc.CalcValue, n int) ([]float64, bool) {
	if len(args) < n {
		return nil, false
	}
	out := make([]float64, n)
	for i := 0; i < n; i++ {
		v, ok := scalarNumber(args[i])
		if !ok {
			return nil, false
		}
		out[i] = v
	}
	return out, true
}
