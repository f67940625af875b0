package calc

import "github.com/calcengine/formulacore/value"

// CollectNumbers implements the common numeric collector shared by the
// statistical builtins (§4.5.1): range arguments contribute only numeric
// cells (text/logical/blank are skipped, but an error cell short-circuits
// the whole call immediately); scalar arguments coerce (so TRUE becomes
// 1); an inline array literal is a sequence of direct scalars, each
// coerced; any Error encountered anywhere short-circuits with that error.
func CollectNumbers(args []CalcValue) ([]float64, *value.LiteralValue) {
	var out []float64
	for _, a := range args {
		switch a.Kind {
		case RangeVal:
			for _, row := range a.Range.ErrorsSlices() {
				for _, col := range row {
					for i, ok := range col.Mask {
						if ok {
							e := value.ErrorV(col.Values[i])
							return nil, &e
						}
					}
				}
			}
			for _, row := range a.Range.NumbersSlices() {
				for _, col := range row {
					for i, ok := range col.Mask {
						if ok {
							out = append(out, col.Values[i])
						}
					}
				}
			}
		case ArrayLiteralVal:
			for _, item := range a.Scalar.Items {
				if item.Kind == value.Error {
					e := item
					return nil, &e
				}
				c := value.CoerceNumber(item)
				if c.Kind == value.Error {
					e := c
					return nil, &e
				}
				out = append(out, c.Num)
			}
		default:
			v := a.Scalar
			if v.Kind == value.Error {
				e := v
				return nil, &e
			}
			c := value.CoerceNumber(v)
			if c.Kind == value.Error {
				e := c
				return nil, &e
			}
			out = append(out, c.Num)
		}
	}
	return out, nil
}

// FirstError scans args for any scalar/array-literal Error value and
// returns it, implementing the "error-first" short-circuit rule of §4.5.3
// for functions that don't go through CollectNumbers (e.g. text or logical
// builtins). Range arguments are not scanned here: a range whose cells
// contain errors is only an error to a reduction once that specific cell
// is read, matching Excel's own treatment of ranges as lazy.
func FirstError(args []CalcValue) (value.LiteralValue, bool) {
	for _, a := range args {
		switch a.Kind {
		case ScalarVal:
			if a.Scalar.Kind == value.Error {
				return a.Scalar, true
			}
		case ArrayLiteralVal:
			for _, item := range a.Scalar.Items {
				if item.Kind == value.Error {
					return item, true
				}
			}
		}
	}
	return value.LiteralValue{}, false
}
