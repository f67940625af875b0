// Package stats contributes the statistical builtin family of §4.5.1 to the
// calc registry: rank/order statistics, dispersion, percentiles, the
// criteria-range family, and single-regressor regression/covariance.
package stats

import "github.com/calcengine/formulacore/calc"

func init() {
	calc.AddRegistration(register)
}

func register(r *calc.Registry) {
	r.Register(&calc.Function{Name: "RANK.EQ", MinArgs: 2, Variadic: true, Caps: calc.Pure, Eval: rankEval(false)})
	r.Register(&calc.Function{Name: "RANK.AVG", MinArgs: 2, Variadic: true, Caps: calc.Pure, Eval: rankEval(true)})
	r.Register(&calc.Function{Name: "LARGE", MinArgs: 2, Caps: calc.Pure, Eval: largeSmallEval(true)})
	r.Register(&calc.Function{Name: "SMALL", MinArgs: 2, Caps: calc.Pure, Eval: largeSmallEval(false)})
	r.Register(&calc.Function{Name: "MEDIAN", MinArgs: 1, Variadic: true, Caps: calc.Pure | calc.Reduction, Eval: medianEval})

	r.Register(&calc.Function{Name: "VAR.S", MinArgs: 1, Variadic: true, Caps: calc.Pure | calc.Reduction, Eval: varEval(true)})
	r.Register(&calc.Function{Name: "VAR.P", MinArgs: 1, Variadic: true, Caps: calc.Pure | calc.Reduction, Eval: varEval(false)})
	r.Register(&calc.Function{Name: "STDEV.S", MinArgs: 1, Variadic: true, Caps: calc.Pure | calc.Reduction, Eval: stdevEval(true)})
	r.Register(&calc.Function{Name: "STDEV.P", MinArgs: 1, Variadic: true, Caps: calc.Pure | calc.Reduction, Eval: stdevEval(false)})
	r.Register(&calc.Function{Name: "MODE.SNGL", MinArgs: 1, Variadic: true, Caps: calc.Pure | calc.Reduction, Eval: modeSingleEval})
	r.Register(&calc.Function{Name: "MODE.MULT", MinArgs: 1, Variadic: true, Caps: calc.Pure | calc.Reduction, Eval: modeMultiEval})

	r.Register(&calc.Function{Name: "PERCENTILE.INC", MinArgs: 2, Caps: calc.Pure, Eval: percentileIncEval})
	r.Register(&calc.Function{Name: "PERCENTILE.EXC", MinArgs: 2, Caps: calc.Pure, Eval: percentileExcEval})
	r.Register(&calc.Function{Name: "QUARTILE.INC", MinArgs: 2, Caps: calc.Pure, Eval: quartileIncEval})
	r.Register(&calc.Function{Name: "QUARTILE.EXC", MinArgs: 2, Caps: calc.Pure, Eval: quartileExcEval})

	r.Register(&calc.Function{Name: "MAXIFS", MinArgs: 3, Variadic: true, Caps: calc.Pure | calc.Reduction, Eval: maxMinIfsEval(true)})
	r.Register(&calc.Function{Name: "MINIFS", MinArgs: 3, Variadic: true, Caps: calc.Pure | calc.Reduction, Eval: maxMinIfsEval(false)})

	r.Register(&calc.Function{Name: "CORREL", MinArgs: 2, Caps: calc.Pure, Eval: correlEval})
	r.Register(&calc.Function{Name: "PEARSON", MinArgs: 2, Caps: calc.Pure, Eval: correlEval})
	r.Register(&calc.Function{Name: "RSQ", MinArgs: 2, Caps: calc.Pure, Eval: rsqEval})
	r.Register(&calc.Function{Name: "SLOPE", MinArgs: 2, Caps: calc.Pure, Eval: slopeEval})
	r.Register(&calc.Function{Name: "INTERCEPT", MinArgs: 2, Caps: calc.Pure, Eval: interceptEval})
	r.Register(&calc.Function{Name: "STEYX", MinArgs: 2, Caps: calc.Pure, Eval: steyxEval})
	r.Register(&calc.Function{Name: "COVARIANCE.P", MinArgs: 2, Caps: calc.Pure, Eval: covarianceEval(false)})
	r.Register(&calc.Function{Name: "COVARIANCE.S", MinArgs: 2, Caps: calc.Pure, Eval: covarianceEval(true)})
	r.Register(&calc.Function{Name: "FORECAST.LINEAR", MinArgs: 3, Caps: calc.Pure, Eval: forecastLinearEval})
	r.Register(&calc.Function{Name: "TREND", MinArgs: 3, Variadic: true, Caps: calc.Pure, Eval: trendEval})
	r.Register(&calc.Function{Name: "LINEST", MinArgs: 2, Variadic: true, Caps: calc.Pure, Eval: linestEval})
}
