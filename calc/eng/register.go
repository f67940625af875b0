package eng

import "github.com/calcengine/formulacore/calc"

func init() {
	calc.AddRegistration(register)
}

func register(r *calc.Registry) {
	r.Register(&calc.Function{Name: "BITAND", MinArgs: 2, Caps: calc.Pure, Eval: bitwiseEval(func(a, b uint64) uint64 { return a & b })})
	r.Register(&calc.Function{Name: "BITOR", MinArgs: 2, Caps: calc.Pure, Eval: bitwiseEval(func(a, b uint64) uint64 { return a | b })})
	r.Register(&calc.Function{Name: "BITXOR", MinArgs: 2, Caps: calc.Pure, Eval: bitwiseEval(func(a, b uint64) uint64 { return a ^ b })})
	r.Register(&calc.Function{Name: "BITLSHIFT", MinArgs: 2, Caps: calc.Pure, Eval: bitShiftEval(true)})
	r.Register(&calc.Function{Name: "BITRSHIFT", MinArgs: 2, Caps: calc.Pure, Eval: bitShiftEval(false)})

	r.Register(&calc.Function{Name: "DELTA", MinArgs: 2, Caps: calc.Pure, Eval: deltaEval})
	r.Register(&calc.Function{Name: "GESTEP", MinArgs: 1, Variadic: true, Caps: calc.Pure, Eval: gestepEval})

	r.Register(&calc.Function{Name: "BIN2DEC", MinArgs: 1, Caps: calc.Pure, Eval: toDecEval(binBase)})
	r.Register(&calc.Function{Name: "OCT2DEC", MinArgs: 1, Caps: calc.Pure, Eval: toDecEval(octBase)})
	r.Register(&calc.Function{Name: "HEX2DEC", MinArgs: 1, Caps: calc.Pure, Eval: toDecEval(hexBase)})
	r.Register(&calc.Function{Name: "DEC2BIN", MinArgs: 1, Variadic: true, Caps: calc.Pure, Eval: fromDecEval(binBase)})
	r.Register(&calc.Function{Name: "DEC2OCT", MinArgs: 1, Variadic: true, Caps: calc.Pure, Eval: fromDecEval(octBase)})
	r.Register(&calc.Function{Name: "DEC2HEX", MinArgs: 1, Variadic: true, Caps: calc.Pure, Eval: fromDecEval(hexBase)})
	r.Register(&calc.Function{Name: "BIN2OCT", MinArgs: 1, Variadic: true, Caps: calc.Pure, Eval: crossBaseEval(binBase, octBase)})
	r.Register(&calc.Function{Name: "BIN2HEX", MinArgs: 1, Variadic: true, Caps: calc.Pure, Eval: crossBaseEval(binBase, hexBase)})
	r.Register(&calc.Function{Name: "OCT2BIN", MinArgs: 1, Variadic: true, Caps: calc.Pure, Eval: crossBaseEval(octBase, binBase)})
	r.Register(&calc.Function{Name: "OCT2HEX", MinArgs: 1, Variadic: true, Caps: calc.Pure, Eval: crossBaseEval(octBase, hexBase)})
	r.Register(&calc.Function{Name: "HEX2BIN", MinArgs: 1, Variadic: true, Caps: calc.Pure, Eval: crossBaseEval(hexBase, binBase)})
	r.Register(&calc.Function{Name: "HEX2OCT", MinArgs: 1, Variadic: true, Caps: calc.Pure, Eval: crossBaseEval(hexBase, octBase)})

	registerComplexOps(r)

	r.Register(&calc.Function{Name: "CONVERT", MinArgs: 3, Caps: calc.Pure, Eval: convertEval})
}
