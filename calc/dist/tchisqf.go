package dist

import (
	"math"

	"github.com/calcengine/formulacore/calc"
	"github.com/calcengine/formulacore/value"
)

// tCDF is Student's t CDF with df degrees of freedom, via the incomplete
// beta function.
func tCDF(t, df float64) float64 {
	x := df / (df + t*t)
	ib := betaI(df/2, 0.5, x)
	if t > 0 {
		return 1 - 0.5*ib
	}
	return 0.5 * ib
}

func tPDF(t, df float64) float64 {
	num := math.Exp(lnGamma((df+1)/2) - lnGamma(df/2))
	return num / math.Sqrt(df*math.Pi) * math.Pow(1+t*t/df, -(df+1)/2)
}

// tDistEval implements T.DIST(x, df, cumulative): the left-tailed
// distribution.
func tDistEval(ctx *calc.Context, args []calc.CalcValue) value.LiteralValue {
	if len(args) != 3 {
		return value.ErrorV(value.ErrValue)
	}
	v, ok := numArgs(args, 2)
	if !ok {
		return value.ErrorV(value.ErrValue)
	}
	x, df := v[0], v[1]
	if df < 1 {
		return value.ErrorV(value.ErrNum)
	}
	if scalarBool(args[2]) {
		return value.NumberV(tCDF(x, df))
	}
	return value.NumberV(tPDF(x, df))
}

// tDist2TEval implements T.DIST.2T(x, df): the two-tailed probability.
func tDist2TEval(ctx *calc.Context, args []calc.CalcValue) value.LiteralValue {
	v, ok := numArgs(args, 2)
	if !ok {
		return value.ErrorV(value.ErrValue)
	}
	x, df := v[0], v[1]
	if x < 0 || df < 1 {
		return value.ErrorV(value.ErrNum)
	}
	return value.NumberV(2 * (1 - tCDF(x, df)))
}

// tInvEval implements T.INV(p, df): the left-tailed quantile, via Newton
// inversion from a normal-approximation seed.
func tInvEval(ctx *calc.Context, args []calc.CalcValue) value.LiteralValue {
	v, ok := numArgs(args, 2)
	if !ok {
		return value.ErrorV(value.ErrValue)
	}
	p, df := v[0], v[1]
	if p <= 0 || p >= 1 || df < 1 {
		return value.ErrorV(value.ErrNum)
	}
	guess := stdNormInv(p)
	x := newtonInvertCDF(p, guess, -1e6, 1e6,
		func(t float64) float64 { return tCDF(t, df) },
		func(t float64) float64 { return tPDF(t, df) })
	return value.NumberV(x)
}

// tInv2TEval implements T.INV.2T(p, df): the two-tailed quantile, i.e. the
// positive x with P(|T|>x) = p.
func tInv2TEval(ctx *calc.Context, args []calc.CalcValue) value.LiteralValue {
	v, ok := numArgs(args, 2)
	if !ok {
		return value.ErrorV(value.ErrValue)
	}
	p, df := v[0], v[1]
	if p <= 0 || p >= 1 || df < 1 {
		return value.ErrorV(value.ErrNum)
	}
	target := 1 - p/2
	guess := stdNormInv(target)
	x := newtonInvertCDF(target, guess, 0, 1e6,
		func(t float64) float64 { return tCDF(t, df) },
		func(t float64) float64 { return tPDF(t, df) })
	return value.NumberV(x)
}

func chisqCDF(x, df float64) float64 {
	if x <= 0 {
		return 0
	}
	return gammaP(df/2, x/2)
}

func chisqPDF(x, df float64) float64 {
	if x < 0 {
		return 0
	}
	k := df / 2
	return math.Exp((k-1)*math.Log(x/2) - x/2 - lnGamma(k) - math.Log(2))
}

// chisqDistEval implements CHISQ.DIST(x, df, cumulative).
func chisqDistEval(ctx *calc.Context, args []calc.CalcValue) value.LiteralValue {
	if len(args) != 3 {
		return value.ErrorV(value.ErrValue)
	}
	v, ok := numArgs(args, 2)
	if !ok {
		return value.ErrorV(value.ErrValue)
	}
	x, df := v[0], v[1]
	if x < 0 || df < 1 {
		return value.ErrorV(value.ErrNum)
	}
	if scalarBool(args[2]) {
		return value.NumberV(chisqCDF(x, df))
	}
	return value.NumberV(chisqPDF(x, df))
}

// chisqInvEval implements CHISQ.INV(p, df).
func chisqInvEval(ctx *calc.Context, args []calc.CalcValue) value.LiteralValue {
	v, ok := numArgs(args, 2)
	if !ok {
		return value.ErrorV(value.ErrValue)
	}
	p, df := v[0], v[1]
	if p <= 0 || p >= 1 || df < 1 {
		return value.ErrorV(value.ErrNum)
	}
	z := stdNormInv(p)
	guess := df * math.Pow(1-2/(9*df)+z*math.Sqrt(2/(9*df)), 3)
	if guess <= 0 {
		guess = df
	}
	x := newtonInvertCDF(p, guess, 0, df*50+1000,
		func(t float64) float64 { return chisqCDF(t, df) },
		func(t float64) float64 { return chisqPDF(t, df) })
	return value.NumberV(x)
}

// chisqTestEval implements CHISQ.TEST(actual_range, expected_range): the
// p-value of Pearson's chi-squared goodness-of-fit test.
func chisqTestEval(ctx *calc.Context, args []calc.CalcValue) value.LiteralValue {
	if len(args) != 2 {
		return value.ErrorV(value.ErrValue)
	}
	actual, errv := calc.CollectNumbers(args[:1])
	if errv != nil {
		return *errv
	}
	expected, errv := calc.CollectNumbers(args[1:2])
	if errv != nil {
		return *errv
	}
	if len(actual) != len(expected) || len(actual) < 2 {
		return value.ErrorV(value.ErrNA)
	}
	stat := 0.0
	for i := range actual {
		if expected[i] == 0 {
			return value.ErrorV(value.ErrDiv)
		}
		d := actual[i] - expected[i]
		stat += d * d / expected[i]
	}
	df := float64(len(actual) - 1)
	return value.NumberV(1 - chisqCDF(stat, df))
}

func fCDF(x, d1, d2 float64) float64 {
	if x <= 0 {
		return 0
	}
	y := d1 * x / (d1*x + d2)
	return betaI(d1/2, d2/2, y)
}

func fPDF(x, d1, d2 float64) float64 {
	if x <= 0 {
		return 0
	}
	num := lnGamma((d1+d2)/2) - lnGamma(d1/2) - lnGamma(d2/2) +
		(d1/2)*math.Log(d1/d2) + (d1/2-1)*math.Log(x) - ((d1+d2)/2)*math.Log(1+d1*x/d2)
	return math.Exp(num)
}

// fDistEval implements F.DIST(x, d1, d2, cumulative).
func fDistEval(ctx *calc.Context, args []calc.CalcValue) value.LiteralValue {
	if len(args) != 4 {
		return value.ErrorV(value.ErrValue)
	}
	v, ok := numArgs(args, 3)
	if !ok {
		return value.ErrorV(value.ErrValue)
	}
	x, d1, d2 := v[0], v[1], v[2]
	if x < 0 || d1 < 1 || d2 < 1 {
		return value.ErrorV(value.ErrNum)
	}
	if scalarBool(args[3]) {
		return value.NumberV(fCDF(x, d1, d2))
	}
	return value.NumberV(fPDF(x, d1, d2))
}

// fInvEval implements F.INV(p, d1, d2).
func fInvEval(ctx *calc.Context, args []calc.CalcValue) value.LiteralValue {
	v, ok := numArgs(args, 3)
	if !ok {
		return value.ErrorV(value.ErrValue)
	}
	p, d1, d2 := v[0], v[1], v[2]
	if p <= 0 || p >= 1 || d1 < 1 || d2 < 1 {
		return value.ErrorV(value.ErrNum)
	}
	x := newtonInvertCDF(p, 1, 0, 1e9,
		func(t float64) float64 { return fCDF(t, d1, d2) },
		func(t float64) float64 { return fPDF(t, d1, d2) })
	return value.NumberV(x)
}

// fTestEval implements F.TEST(array1, array2): the two-tailed p-value of an
// F-test comparing sample variances.
func fTestEval(ctx *calc.Context, args []calc.CalcValue) value.LiteralValue {
	if len(args) != 2 {
		return value.ErrorV(value.ErrValue)
	}
	xs, errv := calc.CollectNumbers(args[:1])
	if errv != nil {
		return *errv
	}
	ys, errv := calc.CollectNumbers(args[1:2])
	if errv != nil {
		return *errv
	}
	if len(xs) < 2 || len(ys) < 2 {
		return value.ErrorV(value.ErrDiv)
	}
	varX := sampleVariance(xs)
	varY := sampleVariance(ys)
	if varX == 0 || varY == 0 {
		return value.ErrorV(value.ErrDiv)
	}
	f := varX / varY
	d1, d2 := float64(len(xs)-1), float64(len(ys)-1)
	if f < 1 {
		f = 1 / f
		d1, d2 = d2, d1
	}
	p := 2 * (1 - fCDF(f, d1, d2))
	if p > 1 {
		p = 1
	}
	return value.NumberV(p)
}

func sampleVariance(xs []float64) float64 {
	n := len(xs)
	sum := 0.0
	for _, x := range xs {
		sum += x
	}
	m := sum / float64(n)
	ss := 0.0
	for _, x := range xs {
		d := x - m
		ss += d * d
	}
	return ss / float64(n-1)
}
