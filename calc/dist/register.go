package dist

import "github.com/calcengine/formulacore/calc"

func init() {
	calc.AddRegistration(register)
}

func register(r *calc.Registry) {
	r.Register(&calc.Function{Name: "NORM.S.DIST", MinArgs: 2, Caps: calc.Pure, Eval: normSDistEval})
	r.Register(&calc.Function{Name: "NORM.S.INV", MinArgs: 1, Caps: calc.Pure, Eval: normSInvEval})
	r.Register(&calc.Function{Name: "NORM.DIST", MinArgs: 4, Caps: calc.Pure, Eval: normDistEval})
	r.Register(&calc.Function{Name: "NORM.INV", MinArgs: 3, Caps: calc.Pure, Eval: normInvEval})
	r.Register(&calc.Function{Name: "LOGNORM.DIST", MinArgs: 4, Caps: calc.Pure, Eval: lognormDistEval})
	r.Register(&calc.Function{Name: "LOGNORM.INV", MinArgs: 3, Caps: calc.Pure, Eval: lognormInvEval})

	r.Register(&calc.Function{Name: "T.DIST", MinArgs: 3, Caps: calc.Pure, Eval: tDistEval})
	r.Register(&calc.Function{Name: "T.DIST.2T", MinArgs: 2, Caps: calc.Pure, Eval: tDist2TEval})
	r.Register(&calc.Function{Name: "T.INV", MinArgs: 2, Caps: calc.Pure, Eval: tInvEval})
	r.Register(&calc.Function{Name: "T.INV.2T", MinArgs: 2, Caps: calc.Pure, Eval: tInv2TEval})

	r.Register(&calc.Function{Name: "CHISQ.DIST", MinArgs: 3, Caps: calc.Pure, Eval: chisqDistEval})
	r.Register(&calc.Function{Name: "CHISQ.INV", MinArgs: 2, Caps: calc.Pure, Eval: chisqInvEval})
	r.Register(&calc.Function{Name: "CHISQ.TEST", MinArgs: 2, Caps: calc.Pure, Eval: chisqTestEval})

	r.Register(&calc.Function{Name: "F.DIST", MinArgs: 4, Caps: calc.Pure, Eval: fDistEval})
	r.Register(&calc.Function{Name: "F.INV", MinArgs: 3, Caps: calc.Pure, Eval: fInvEval})
	r.Register(&calc.Function{Name: "F.TEST", MinArgs: 2, Caps: calc.Pure, Eval: fTestEval})

	r.Register(&calc.Function{Name: "BINOM.DIST", MinArgs: 4, Caps: calc.Pure, Eval: binomDistEval})
	r.Register(&calc.Function{Name: "POISSON.DIST", MinArgs: 3, Caps: calc.Pure, Eval: poissonDistEval})
	r.Register(&calc.Function{Name: "EXPON.DIST", MinArgs: 3, Caps: calc.Pure, Eval: exponDistEval})
	r.Register(&calc.Function{Name: "GAMMA.DIST", MinArgs: 4, Caps: calc.Pure, Eval: gammaDistEval})
	r.Register(&calc.Function{Name: "WEIBULL.DIST", MinArgs: 4, Caps: calc.Pure, Eval: weibullDistEval})
	r.Register(&calc.Function{Name: "BETA.DIST", MinArgs: 4, Caps: calc.Pure, Eval: betaDistEval})
	r.Register(&calc.Function{Name: "NEGBINOM.DIST", MinArgs: 4, Caps: calc.Pure, Eval: negbinomDistEval})
	r.Register(&calc.Function{Name: "HYPGEOM.DIST", MinArgs: 5, Caps: calc.Pure, Eval: hypgeomDistEval})

	r.Register(&calc.Function{Name: "PHI", MinArgs: 1, Caps: calc.Pure, Eval: phiEval})
	r.Register(&calc.Function{Name: "GAUSS", MinArgs: 1, Caps: calc.Pure, Eval: gaussEval})
	r.Register(&calc.Function{Name: "FISHER", MinArgs: 1, Caps: calc.Pure, Eval: fisherEval})
	r.Register(&calc.Function{Name: "FISHERINV", MinArgs: 1, Caps: calc.Pure, Eval: fisherInvEval})
	r.Register(&calc.Function{Name: "STANDARDIZE", MinArgs: 3, Caps: calc.Pure, Eval: standardizeEval})
}
