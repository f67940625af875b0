package dist

import (
	"math"

	"github.com/calcengine/formulacore/calc"
	"github.com/calcengine/formulacore/value"
)

func lnChoose(n, k float64) float64 {
	return lnGamma(n+1) - lnGamma(k+1) - lnGamma(n-k+1)
}

// binomDistEval implements BINOM.DIST(k, n, p, cumulative). k and n are
// truncated to integers (§4.5.1 "integer-truncation of count arguments").
func binomDistEval(ctx *calc.Context, args []calc.CalcValue) value.LiteralValue {
	if len(args) != 4 {
		return value.ErrorV(value.ErrValue)
	}
	v, ok := numArgs(args, 3)
	if !ok {
		return value.ErrorV(value.ErrValue)
	}
	k, n, p := math.Trunc(v[0]), math.Trunc(v[1]), v[2]
	if k < 0 || n < 0 || k > n || p < 0 || p > 1 {
		return value.ErrorV(value.ErrNum)
	}
	pmf := func(j float64) float64 {
		if p == 0 {
			if j == 0 {
				return 1
			}
			return 0
		}
		if p == 1 {
			if j == n {
				return 1
			}
			return 0
		}
		return math.Exp(lnChoose(n, j) + j*math.Log(p) + (n-j)*math.Log(1-p))
	}
	if scalarBool(args[3]) {
		sum := 0.0
		for j := 0.0; j <= k; j++ {
			sum += pmf(j)
		}
		return value.NumberV(sum)
	}
	return value.NumberV(pmf(k))
}

// poissonDistEval implements POISSON.DIST(x, mean, cumulative).
func poissonDistEval(ctx *calc.Context, args []calc.CalcValue) value.LiteralValue {
	if len(args) != 3 {
		return value.ErrorV(value.ErrValue)
	}
	v, ok := numArgs(args, 2)
	if !ok {
		return value.ErrorV(value.ErrValue)
	}
	x, lambda := math.Trunc(v[0]), v[1]
	if x < 0 || lambda <= 0 {
		return value.ErrorV(value.ErrNum)
	}
	pmf := func(j float64) float64 {
		return math.Exp(j*math.Log(lambda) - lambda - lnGamma(j+1))
	}
	if scalarBool(args[2]) {
		sum := 0.0
		for j := 0.0; j <= x; j++ {
			sum += pmf(j)
		}
		return value.NumberV(sum)
	}
	return value.NumberV(pmf(x))
}

// exponDistEval implements EXPON.DIST(x, lambda, cumulative).
func exponDistEval(ctx *calc.Context, args []calc.CalcValue) value.LiteralValue {
	if len(args) != 3 {
		return value.ErrorV(value.ErrValue)
	}
	v, ok := numArgs(args, 2)
	if !ok {
		return value.ErrorV(value.ErrValue)
	}
	x, lambda := v[0], v[1]
	if x < 0 || lambda <= 0 {
		return value.ErrorV(value.ErrNum)
	}
	if scalarBool(args[2]) {
		return value.NumberV(1 - math.Exp(-lambda*x))
	}
	return value.NumberV(lambda * math.Exp(-lambda*x))
}

// gammaDistEval implements GAMMA.DIST(x, alpha, beta, cumulative).
func gammaDistEval(ctx *calc.Context, args []calc.CalcValue) value.LiteralValue {
	if len(args) != 4 {
		return value.ErrorV(value.ErrValue)
	}
	v, ok := numArgs(args, 3)
	if !ok {
		return value.ErrorV(value.ErrValue)
	}
	x, alpha, beta := v[0], v[1], v[2]
	if x < 0 || alpha <= 0 || beta <= 0 {
		return value.ErrorV(value.ErrNum)
	}
	if scalarBool(args[3]) {
		return value.NumberV(gammaP(alpha, x/beta))
	}
	if x == 0 {
		return value.NumberV(0)
	}
	pdf := math.Exp((alpha-1)*math.Log(x) - x/beta - lnGamma(alpha) - alpha*math.Log(beta))
	return value.NumberV(pdf)
}

// weibullDistEval implements WEIBULL.DIST(x, alpha, beta, cumulative).
func weibullDistEval(ctx *calc.Context, args []calc.CalcValue) value.LiteralValue {
	if len(args) != 4 {
		return value.ErrorV(value.ErrValue)
	}
	v, ok := numArgs(args, 3)
	if !ok {
		return value.ErrorV(value.ErrValue)
	}
	x, alpha, beta := v[0], v[1], v[2]
	if x < 0 || alpha <= 0 || beta <= 0 {
		return value.ErrorV(value.ErrNum)
	}
	ratio := math.Pow(x/beta, alpha)
	if scalarBool(args[3]) {
		return value.NumberV(1 - math.Exp(-ratio))
	}
	if x == 0 {
		return value.NumberV(0)
	}
	return value.NumberV(alpha / beta * math.Pow(x/beta, alpha-1) * math.Exp(-ratio))
}

// betaDistEval implements BETA.DIST(x, alpha, beta, cumulative, [A, B])
// over the default unit interval [0,1] (the optional rescaling bounds are
// out of scope for the representative subset).
func betaDistEval(ctx *calc.Context, args []calc.CalcValue) value.LiteralValue {
	if len(args) != 4 {
		return value.ErrorV(value.ErrValue)
	}
	v, ok := numArgs(args, 3)
	if !ok {
		return value.ErrorV(value.ErrValue)
	}
	x, alpha, beta := v[0], v[1], v[2]
	if x < 0 || x > 1 || alpha <= 0 || beta <= 0 {
		return value.ErrorV(value.ErrNum)
	}
	if scalarBool(args[3]) {
		return value.NumberV(betaI(alpha, beta, x))
	}
	if x == 0 || x == 1 {
		return value.NumberV(0)
	}
	lnB := lnGamma(alpha) + lnGamma(beta) - lnGamma(alpha+beta)
	pdf := math.Exp((alpha-1)*math.Log(x) + (beta-1)*math.Log(1-x) - lnB)
	return value.NumberV(pdf)
}

// negbinomDistEval implements NEGBINOM.DIST(failures, successes, p,
// cumulative): the probability of exactly `failures` failures before the
// `successes`-th success.
func negbinomDistEval(ctx *calc.Context, args []calc.CalcValue) value.LiteralValue {
	if len(args) != 4 {
		return value.ErrorV(value.ErrValue)
	}
	v, ok := numArgs(args, 3)
	if !ok {
		return value.ErrorV(value.ErrValue)
	}
	fails, succ, p := math.Trunc(v[0]), math.Trunc(v[1]), v[2]
	if fails < 0 || succ < 1 || p <= 0 || p > 1 {
		return value.ErrorV(value.ErrNum)
	}
	pmf := func(j float64) float64 {
		return math.Exp(lnChoose(j+succ-1, j) + succ*math.Log(p) + j*math.Log(1-p))
	}
	if scalarBool(args[3]) {
		sum := 0.0
		for j := 0.0; j <= fails; j++ {
			sum += pmf(j)
		}
		return value.NumberV(sum)
	}
	return value.NumberV(pmf(fails))
}

// hypgeomDistEval implements HYPGEOM.DIST(sample_s, number_sample,
// population_s, number_pop, cumulative).
func hypgeomDistEval(ctx *calc.Context, args []calc.CalcValue) value.LiteralValue {
	if len(args) != 5 {
		return value.ErrorV(value.ErrValue)
	}
	v, ok := numArgs(args, 4)
	if !ok {
		return value.ErrorV(value.ErrValue)
	}
	x, n, k, N := math.Trunc(v[0]), math.Trunc(v[1]), math.Trunc(v[2]), math.Trunc(v[3])
	if x < 0 || n < 0 || k < 0 || N < 0 || x > n || x > k || n > N || k > N {
		return value.ErrorV(value.ErrNum)
	}
	pmf := func(j float64) float64 {
		if j < 0 || j > k || n-j > N-k {
			return 0
		}
		return math.Exp(lnChoose(k, j) + lnChoose(N-k, n-j) - lnChoose(N, n))
	}
	if scalarBool(args[4]) {
		sum := 0.0
		for j := 0.0; j <= x; j++ {
			sum += pmf(j)
		}
		return value.NumberV(sum)
	}
	return value.NumberV(pmf(x))
}
