package stats

import (
	"math"

	"github.com/calcengine/formulacore/calc"
	"github.com/calcengine/formulacore/value"
)

// pairedNumbers collects two same-length numeric arrays from the first two
// arguments; #N/A on length mismatch (§4.5.1 regression family contract).
func pairedNumbers(args []calc.CalcValue) (ys, xs []float64, errv *value.LiteralValue) {
	if len(args) < 2 {
		e := value.ErrorV(value.ErrValue)
		return nil, nil, &e
	}
	ys, errv = calc.CollectNumbers(args[:1])
	if errv != nil {
		return nil, nil, errv
	}
	xs, errv = calc.CollectNumbers(args[1:2])
	if errv != nil {
		return nil, nil, errv
	}
	if len(ys) != len(xs) {
		e := value.ErrorV(value.ErrNA)
		return nil, nil, &e
	}
	return ys, xs, nil
}

func covariance(ys, xs []float64, sample bool) (float64, bool) {
	n := len(ys)
	denom := n
	if sample {
		denom = n - 1
	}
	if denom <= 0 {
		return 0, false
	}
	my, mx := mean(ys), mean(xs)
	sum := 0.0
	for i := range ys {
		sum += (ys[i] - my) * (xs[i] - mx)
	}
	return sum / float64(denom), true
}

func correlCoefficient(ys, xs []float64) (float64, bool) {
	varX := sumSquaredDeviations(xs, mean(xs))
	if varX == 0 {
		return 0, false
	}
	cov, _ := covariance(ys, xs, false)
	varY := sumSquaredDeviations(ys, mean(ys)) / float64(len(ys))
	if varY <= 0 {
		return 0, false
	}
	return cov / math.Sqrt(varX/float64(len(xs))*varY), true
}

func correlEval(ctx *calc.Context, args []calc.CalcValue) value.LiteralValue {
	ys, xs, errv := pairedNumbers(args)
	if errv != nil {
		return *errv
	}
	r, ok := correlCoefficient(ys, xs)
	if !ok {
		return value.ErrorV(value.ErrDiv)
	}
	return value.NumberV(r)
}

func rsqEval(ctx *calc.Context, args []calc.CalcValue) value.LiteralValue {
	v := correlEval(ctx, args)
	if v.Kind == value.Error {
		return v
	}
	return value.NumberV(v.Num * v.Num)
}

func slopeIntercept(ys, xs []float64) (slope, intercept float64, ok bool) {
	varX := sumSquaredDeviations(xs, mean(xs))
	if varX == 0 {
		return 0, 0, false
	}
	my, mx := mean(ys), mean(xs)
	cov := 0.0
	for i := range ys {
		cov += (ys[i] - my) * (xs[i] - mx)
	}
	slope = cov / varX
	intercept = my - slope*mx
	return slope, intercept, true
}

func slopeEval(ctx *calc.Context, args []calc.CalcValue) value.LiteralValue {
	ys, xs, errv := pairedNumbers(args)
	if errv != nil {
		return *errv
	}
	s, _, ok := slopeIntercept(ys, xs)
	if !ok {
		return value.ErrorV(value.ErrDiv)
	}
	return value.NumberV(s)
}

func interceptEval(ctx *calc.Context, args []calc.CalcValue) value.LiteralValue {
	ys, xs, errv := pairedNumbers(args)
	if errv != nil {
		return *errv
	}
	_, b, ok := slopeIntercept(ys, xs)
	if !ok {
		return value.ErrorV(value.ErrDiv)
	}
	return value.NumberV(b)
}

// steyxEval implements STEYX: the standard error of the predicted y value
// for each x in a regression.
func steyxEval(ctx *calc.Context, args []calc.CalcValue) value.LiteralValue {
	ys, xs, errv := pairedNumbers(args)
	if errv != nil {
		return *errv
	}
	n := len(ys)
	if n < 3 {
		return value.ErrorV(value.ErrDiv)
	}
	slope, intercept, ok := slopeIntercept(ys, xs)
	if !ok {
		return value.ErrorV(value.ErrDiv)
	}
	sse := 0.0
	for i := range ys {
		pred := slope*xs[i] + intercept
		d := ys[i] - pred
		sse += d * d
	}
	return value.NumberV(math.Sqrt(sse / float64(n-2)))
}

func covarianceEval(sample bool) func(*calc.Context, []calc.CalcValue) value.LiteralValue {
	return func(ctx *calc.Context, args []calc.CalcValue) value.LiteralValue {
		ys, xs, errv := pairedNumbers(args)
		if errv != nil {
			return *errv
		}
		c, ok := covariance(ys, xs, sample)
		if !ok {
			return value.ErrorV(value.ErrDiv)
		}
		return value.NumberV(c)
	}
}

// forecastLinearEval implements FORECAST.LINEAR(x, known_ys, known_xs).
func forecastLinearEval(ctx *calc.Context, args []calc.CalcValue) value.LiteralValue {
	if len(args) != 3 {
		return value.ErrorV(value.ErrValue)
	}
	xv, errv := calc.CollectNumbers(args[:1])
	if errv != nil {
		return *errv
	}
	if len(xv) != 1 {
		return value.ErrorV(value.ErrValue)
	}
	ys, xs, errv := pairedNumbers(args[1:])
	if errv != nil {
		return *errv
	}
	slope, intercept, ok := slopeIntercept(ys, xs)
	if !ok {
		return value.ErrorV(value.ErrDiv)
	}
	return value.NumberV(slope*xv[0] + intercept)
}

// trendEval implements a single-regressor TREND(known_ys, known_xs,
// new_xs, [const]): returns a 1xN array of predictions for new_xs. When
// known_xs/new_xs are omitted they default to 1..n (Excel's own default),
// elided here for the representative subset (callers must supply known_xs
// and new_xs explicitly; §4.5.1 scopes this family to "illustrative
// cases").
func trendEval(ctx *calc.Context, args []calc.CalcValue) value.LiteralValue {
	if len(args) < 3 {
		return value.ErrorV(value.ErrValue)
	}
	ys, xs, errv := pairedNumbers(args[:2])
	if errv != nil {
		return *errv
	}
	newXs, errv := calc.CollectNumbers(args[2:3])
	if errv != nil {
		return *errv
	}
	useConst := true
	if len(args) >= 4 {
		b, errv := calc.CollectNumbers(args[3:4])
		if errv != nil {
			return *errv
		}
		if len(b) == 1 && b[0] == 0 {
			useConst = false
		}
	}
	slope, intercept, ok := slopeIntercept(ys, xs)
	if !ok {
		return value.ErrorV(value.ErrDiv)
	}
	if !useConst {
		intercept = 0
	}
	items := make([]value.LiteralValue, len(newXs))
	for i, x := range newXs {
		items[i] = value.NumberV(slope*x + intercept)
	}
	return value.ArrayV(1, len(items), items)
}

// linestEval implements a single-regressor LINEST(known_ys, known_xs,
// [const], [stats]): returns slope/intercept, or (when stats is truthy) a
// 5x2 statistics matrix (row 0: slope, intercept; further rows carry
// standard errors, R^2/SE_y, F/df, and regression/residual sum of squares).
func linestEval(ctx *calc.Context, args []calc.CalcValue) value.LiteralValue {
	if len(args) < 2 {
		return value.ErrorV(value.ErrValue)
	}
	ys, xs, errv := pairedNumbers(args[:2])
	if errv != nil {
		return *errv
	}
	statsFlag := false
	if len(args) >= 4 {
		b, errv := calc.CollectNumbers(args[3:4])
		if errv != nil {
			return *errv
		}
		statsFlag = len(b) == 1 && b[0] != 0
	}
	slope, intercept, ok := slopeIntercept(ys, xs)
	if !ok {
		return value.ErrorV(value.ErrDiv)
	}
	if !statsFlag {
		return value.ArrayV(1, 2, []value.LiteralValue{value.NumberV(slope), value.NumberV(intercept)})
	}
	n := len(ys)
	sse, ssr, sst := 0.0, 0.0, 0.0
	my := mean(ys)
	for i := range ys {
		pred := slope*xs[i] + intercept
		sse += (ys[i] - pred) * (ys[i] - pred)
		ssr += (pred - my) * (pred - my)
		sst += (ys[i] - my) * (ys[i] - my)
	}
	df := float64(n - 2)
	seY := math.Sqrt(sse / df)
	varX := sumSquaredDeviations(xs, mean(xs))
	seSlope := seY / math.Sqrt(varX)
	seIntercept := seY * math.Sqrt(1/float64(n)+mean(xs)*mean(xs)/varX)
	rsq := 0.0
	if sst != 0 {
		rsq = 1 - sse/sst
	}
	f := 0.0
	if sse != 0 {
		f = (ssr / 1) / (sse / df)
	}
	items := []value.LiteralValue{
		value.NumberV(slope), value.NumberV(intercept),
		value.NumberV(seSlope), value.NumberV(seIntercept),
		value.NumberV(rsq), value.NumberV(seY),
		value.NumberV(f), value.NumberV(df),
		value.NumberV(ssr), value.NumberV(sse),
	}
	return value.ArrayV(5, 2, items)
}
