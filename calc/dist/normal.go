package dist

import (
	"math"

	"github.com/calcengine/formulacore/calc"
	"github.com/calcengine/formulacore/value"
)

// normSDistEval implements NORM.S.DIST(z, cumulative).
func normSDistEval(ctx *calc.Context, args []calc.CalcValue) value.LiteralValue {
	if len(args) != 2 {
		return value.ErrorV(value.ErrValue)
	}
	z, ok := scalarNumber(args[0])
	if !ok {
		return value.ErrorV(value.ErrValue)
	}
	if scalarBool(args[1]) {
		return value.NumberV(stdNormCDF(z))
	}
	return value.NumberV(stdNormPDF(z))
}

// normSInvEval implements NORM.S.INV(p).
func normSInvEval(ctx *calc.Context, args []calc.CalcValue) value.LiteralValue {
	p, ok := numArgs(args, 1)
	if !ok {
		return value.ErrorV(value.ErrValue)
	}
	if p[0] <= 0 || p[0] >= 1 {
		return value.ErrorV(value.ErrNum)
	}
	return value.NumberV(stdNormInv(p[0]))
}

// normDistEval implements NORM.DIST(x, mean, sigma, cumulative).
func normDistEval(ctx *calc.Context, args []calc.CalcValue) value.LiteralValue {
	if len(args) != 4 {
		return value.ErrorV(value.ErrValue)
	}
	v, ok := numArgs(args, 3)
	if !ok {
		return value.ErrorV(value.ErrValue)
	}
	x, mu, sigma := v[0], v[1], v[2]
	if sigma <= 0 {
		return value.ErrorV(value.ErrNum)
	}
	z := (x - mu) / sigma
	if scalarBool(args[3]) {
		return value.NumberV(stdNormCDF(z))
	}
	return value.NumberV(stdNormPDF(z) / sigma)
}

// normInvEval implements NORM.INV(p, mean, sigma).
func normInvEval(ctx *calc.Context, args []calc.CalcValue) value.LiteralValue {
	v, ok := numArgs(args, 3)
	if !ok {
		return value.ErrorV(value.ErrValue)
	}
	p, mu, sigma := v[0], v[1], v[2]
	if p <= 0 || p >= 1 || sigma <= 0 {
		return value.ErrorV(value.ErrNum)
	}
	return value.NumberV(mu + sigma*stdNormInv(p))
}

// lognormDistEval implements LOGNORM.DIST(x, mean, sigma, cumulative).
func lognormDistEval(ctx *calc.Context, args []calc.CalcValue) value.LiteralValue {
	if len(args) != 4 {
		return value.ErrorV(value.ErrValue)
	}
	v, ok := numArgs(args, 3)
	if !ok {
		return value.ErrorV(value.ErrValue)
	}
	x, mu, sigma := v[0], v[1], v[2]
	if x <= 0 || sigma <= 0 {
		return value.ErrorV(value.ErrNum)
	}
	z := (math.Log(x) - mu) / sigma
	if scalarBool(args[3]) {
		return value.NumberV(stdNormCDF(z))
	}
	return value.NumberV(stdNormPDF(z) / (x * sigma))
}

// lognormInvEval implements LOGNORM.INV(p, mean, sigma).
func lognormInvEval(ctx *calc.Context, args []calc.CalcValue) value.LiteralValue {
	v, ok := numArgs(args, 3)
	if !ok {
		return value.ErrorV(value.ErrValue)
	}
	p, mu, sigma := v[0], v[1], v[2]
	if p <= 0 || p >= 1 || sigma <= 0 {
		return value.ErrorV(value.ErrNum)
	}
	return value.NumberV(math.Exp(mu + sigma*stdNormInv(p)))
}

// phiEval implements PHI(x): the standard normal density.
func phiEval(ctx *calc.Context, args []calc.CalcValue) value.LiteralValue {
	v, ok := numArgs(args, 1)
	if !ok {
		return value.ErrorV(value.ErrValue)
	}
	return value.NumberV(stdNormPDF(v[0]))
}

// gaussEval implements GAUSS(x): P(0 <= Z <= x) = CDF(x) - 0.5.
func gaussEval(ctx *calc.Context, args []calc.CalcValue) value.LiteralValue {
	v, ok := numArgs(args, 1)
	if !ok {
		return value.ErrorV(value.ErrValue)
	}
	return value.NumberV(stdNormCDF(v[0]) - 0.5)
}

// fisherEval implements FISHER(x): the Fisher transformation.
func fisherEval(ctx *calc.Context, args []calc.CalcValue) value.LiteralValue {
	v, ok := numArgs(args, 1)
	if !ok {
		return value.ErrorV(value.ErrValue)
	}
	if v[0] <= -1 || v[0] >= 1 {
		return value.ErrorV(value.ErrNum)
	}
	return value.NumberV(0.5 * math.Log((1+v[0])/(1-v[0])))
}

// fisherInvEval implements FISHERINV(y): the inverse Fisher transformation.
func fisherInvEval(ctx *calc.Context, args []calc.CalcValue) value.LiteralValue {
	v, ok := numArgs(args, 1)
	if !ok {
		return value.ErrorV(value.ErrValue)
	}
	e2y := math.Exp(2 * v[0])
	return value.NumberV((e2y - 1) / (e2y + 1))
}

// standardizeEval implements STANDARDIZE(x, mean, sigma).
func standardizeEval(ctx *calc.Context, args []calc.CalcValue) value.LiteralValue {
	v, ok := numArgs(args, 3)
	if !ok {
		return value.ErrorV(value.ErrValue)
	}
	if v[2] <= 0 {
		return value.ErrorV(value.ErrNum)
	}
	return value.NumberV((v[0] - v[1]) / v[2])
}
