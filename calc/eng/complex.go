package eng

import (
	"math"
	"math/cmplx"
	"strconv"
	"strings"

	"github.com/calcengine/formulacore/calc"
	"github.com/calcengine/formulacore/value"
)

// parseComplex decomposes a complex string "a+bi"/"a-bi"/"a+bj" (§4.5.1)
// into a complex128 plus the imaginary suffix used ("i" or "j"), rejecting
// non-numeric tails.
func parseComplex(s string) (complex128, string, bool) {
	s = strings.TrimSpace(s)
	if s == "" {
		return 0, "", false
	}
	suffix := "i"
	if strings.HasSuffix(s, "i") {
		suffix = "i"
	} else if strings.HasSuffix(s, "j") {
		suffix = "j"
	} else {
		if n, err := strconv.ParseFloat(s, 64); err == nil {
			return complex(n, 0), suffix, true
		}
		return 0, "", false
	}
	body := s[:len(s)-1]
	if body == "" {
		return complex(0, 1), suffix, true
	}
	if body == "+" {
		return complex(0, 1), suffix, true
	}
	if body == "-" {
		return complex(0, -1), suffix, true
	}

	splitAt := -1
	for i := len(body) - 1; i > 0; i-- {
		if (body[i] == '+' || body[i] == '-') && body[i-1] != 'e' && body[i-1] != 'E' {
			splitAt = i
			break
		}
	}
	if splitAt < 0 {
		imag, err := strconv.ParseFloat(body, 64)
		if err != nil {
			return 0, "", false
		}
		return complex(0, imag), suffix, true
	}
	realPart, err := strconv.ParseFloat(body[:splitAt], 64)
	if err != nil {
		return 0, "", false
	}
	imagStr := body[splitAt:]
	var imagPart float64
	switch imagStr {
	case "+":
		imagPart = 1
	case "-":
		imagPart = -1
	default:
		imagPart, err = strconv.ParseFloat(imagStr, 64)
		if err != nil {
			return 0, "", false
		}
	}
	return complex(realPart, imagPart), suffix, true
}

// trimNear rounds values extremely close to an integer, avoiding float
// noise in formatted output (§4.5.1 "trims near-integer floats").
func trimNear(f float64) float64 {
	r := math.Round(f)
	if math.Abs(f-r) < 1e-10 {
		return r
	}
	return f
}

func formatReal(f float64) string {
	f = trimNear(f)
	if f == math.Trunc(f) && math.Abs(f) < 1e15 {
		return strconv.FormatInt(int64(f), 10)
	}
	return strconv.FormatFloat(f, 'g', -1, 64)
}

// formatComplex renders a complex128 into canonical "0"/"a"/"bi"/"a±bi"
// form using the given imaginary suffix.
func formatComplex(c complex128, suffix string) string {
	re, im := trimNear(real(c)), trimNear(imag(c))
	if im == 0 {
		return formatReal(re)
	}
	var imagPart string
	switch im {
	case 1:
		imagPart = suffix
	case -1:
		imagPart = "-" + suffix
	default:
		imagPart = formatReal(im) + suffix
	}
	if re == 0 {
		return imagPart
	}
	if im > 0 || (im == -1) {
		if strings.HasPrefix(imagPart, "-") {
			return formatReal(re) + imagPart
		}
		return formatReal(re) + "+" + imagPart
	}
	return formatReal(re) + imagPart
}

func scalarComplex(v calc.CalcValue) (complex128, string, bool) {
	s, ok := scalarText(v)
	if !ok {
		n := value.CoerceNumber(v.ScalarLike())
		if n.Kind == value.Number {
			return complex(n.Num, 0), "i", true
		}
		return 0, "", false
	}
	return parseComplex(s)
}

func unaryComplexEval(fn func(complex128) complex128) func(*calc.Context, []calc.CalcValue) value.LiteralValue {
	return func(ctx *calc.Context, args []calc.CalcValue) value.LiteralValue {
		if len(args) != 1 {
			return value.ErrorV(value.ErrValue)
		}
		c, suffix, ok := scalarComplex(args[0])
		if !ok {
			return value.ErrorV(value.ErrValue)
		}
		return value.TextV(formatComplex(fn(c), suffix))
	}
}

func binaryComplexEval(fn func(a, b complex128) (complex128, bool)) func(*calc.Context, []calc.CalcValue) value.LiteralValue {
	return func(ctx *calc.Context, args []calc.CalcValue) value.LiteralValue {
		if len(args) != 2 {
			return value.ErrorV(value.ErrValue)
		}
		a, suffix, ok := scalarComplex(args[0])
		if !ok {
			return value.ErrorV(value.ErrValue)
		}
		b, _, ok := scalarComplex(args[1])
		if !ok {
			return value.ErrorV(value.ErrValue)
		}
		r, ok := fn(a, b)
		if !ok {
			return value.ErrorV(value.ErrDiv)
		}
		return value.TextV(formatComplex(r, suffix))
	}
}

// complexEval implements COMPLEX(real, imag, [suffix]).
func complexEval(ctx *calc.Context, args []calc.CalcValue) value.LiteralValue {
	if len(args) < 2 || len(args) > 3 {
		return value.ErrorV(value.ErrValue)
	}
	re := value.CoerceNumber(args[0].ScalarLike())
	im := value.CoerceNumber(args[1].ScalarLike())
	if re.Kind != value.Number || im.Kind != value.Number {
		return value.ErrorV(value.ErrValue)
	}
	suffix := "i"
	if len(args) == 3 {
		s, ok := scalarText(args[2])
		if !ok || (s != "i" && s != "j") {
			return value.ErrorV(value.ErrValue)
		}
		suffix = s
	}
	return value.TextV(formatComplex(complex(re.Num, im.Num), suffix))
}

func imrealEval(ctx *calc.Context, args []calc.CalcValue) value.LiteralValue {
	if len(args) != 1 {
		return value.ErrorV(value.ErrValue)
	}
	c, _, ok := scalarComplex(args[0])
	if !ok {
		return value.ErrorV(value.ErrValue)
	}
	return value.NumberV(trimNear(real(c)))
}

func imaginaryEval(ctx *calc.Context, args []calc.CalcValue) value.LiteralValue {
	if len(args) != 1 {
		return value.ErrorV(value.ErrValue)
	}
	c, _, ok := scalarComplex(args[0])
	if !ok {
		return value.ErrorV(value.ErrValue)
	}
	return value.NumberV(trimNear(imag(c)))
}

func imabsEval(ctx *calc.Context, args []calc.CalcValue) value.LiteralValue {
	if len(args) != 1 {
		return value.ErrorV(value.ErrValue)
	}
	c, _, ok := scalarComplex(args[0])
	if !ok {
		return value.ErrorV(value.ErrValue)
	}
	return value.NumberV(cmplx.Abs(c))
}

func imargumentEval(ctx *calc.Context, args []calc.CalcValue) value.LiteralValue {
	if len(args) != 1 {
		return value.ErrorV(value.ErrValue)
	}
	c, _, ok := scalarComplex(args[0])
	if !ok {
		return value.ErrorV(value.ErrValue)
	}
	if c == 0 {
		return value.ErrorV(value.ErrDiv)
	}
	return value.NumberV(cmplx.Phase(c))
}

func registerComplexOps(r *calc.Registry) {
	r.Register(&calc.Function{Name: "COMPLEX", MinArgs: 2, Variadic: true, Caps: calc.Pure, Eval: complexEval})
	r.Register(&calc.Function{Name: "IMREAL", MinArgs: 1, Caps: calc.Pure, Eval: imrealEval})
	r.Register(&calc.Function{Name: "IMAGINARY", MinArgs: 1, Caps: calc.Pure, Eval: imaginaryEval})
	r.Register(&calc.Function{Name: "IMABS", MinArgs: 1, Caps: calc.Pure, Eval: imabsEval})
	r.Register(&calc.Function{Name: "IMARGUMENT", MinArgs: 1, Caps: calc.Pure, Eval: imargumentEval})
	r.Register(&calc.Function{Name: "IMCONJUGATE", MinArgs: 1, Caps: calc.Pure, Eval: unaryComplexEval(cmplx.Conj)})
	r.Register(&calc.Function{Name: "IMEXP", MinArgs: 1, Caps: calc.Pure, Eval: unaryComplexEval(cmplx.Exp)})
	r.Register(&calc.Function{Name: "IMSQRT", MinArgs: 1, Caps: calc.Pure, Eval: unaryComplexEval(cmplx.Sqrt)})
	r.Register(&calc.Function{Name: "IMSIN", MinArgs: 1, Caps: calc.Pure, Eval: unaryComplexEval(cmplx.Sin)})
	r.Register(&calc.Function{Name: "IMCOS", MinArgs: 1, Caps: calc.Pure, Eval: unaryComplexEval(cmplx.Cos)})
	r.Register(&calc.Function{Name: "IMLN", MinArgs: 1, Caps: calc.Pure, Eval: imlnEval})
	r.Register(&calc.Function{Name: "IMLOG10", MinArgs: 1, Caps: calc.Pure, Eval: imlogBaseEval(10)})
	r.Register(&calc.Function{Name: "IMLOG2", MinArgs: 1, Caps: calc.Pure, Eval: imlogBaseEval(2)})
	r.Register(&calc.Function{Name: "IMSUM", MinArgs: 1, Variadic: true, Caps: calc.Pure, Eval: imVariadicEval(func(a, b complex128) complex128 { return a + b }, 0)})
	r.Register(&calc.Function{Name: "IMPRODUCT", MinArgs: 1, Variadic: true, Caps: calc.Pure, Eval: imVariadicEval(func(a, b complex128) complex128 { return a * b }, 1)})
	r.Register(&calc.Function{Name: "IMSUB", MinArgs: 2, Caps: calc.Pure, Eval: binaryComplexEval(func(a, b complex128) (complex128, bool) { return a - b, true })})
	r.Register(&calc.Function{Name: "IMDIV", MinArgs: 2, Caps: calc.Pure, Eval: binaryComplexEval(func(a, b complex128) (complex128, bool) {
		if b == 0 {
			return 0, false
		}
		return a / b, true
	})})
	r.Register(&calc.Function{Name: "IMPOWER", MinArgs: 2, Caps: calc.Pure, Eval: binaryComplexEval(func(a, b complex128) (complex128, bool) {
		if a == 0 && real(b) <= 0 {
			return 0, false
		}
		return cmplx.Pow(a, b), true
	})})
}

func imlnEval(ctx *calc.Context, args []calc.CalcValue) value.LiteralValue {
	if len(args) != 1 {
		return value.ErrorV(value.ErrValue)
	}
	c, suffix, ok := scalarComplex(args[0])
	if !ok {
		return value.ErrorV(value.ErrValue)
	}
	if c == 0 {
		return value.ErrorV(value.ErrNum)
	}
	return value.TextV(formatComplex(cmplx.Log(c), suffix))
}

func imlogBaseEval(base float64) func(*calc.Context, []calc.CalcValue) value.LiteralValue {
	divisor := complex(math.Log(base), 0)
	return func(ctx *calc.Context, args []calc.CalcValue) value.LiteralValue {
		if len(args) != 1 {
			return value.ErrorV(value.ErrValue)
		}
		c, suffix, ok := scalarComplex(args[0])
		if !ok {
			return value.ErrorV(value.ErrValue)
		}
		if c == 0 {
			return value.ErrorV(value.ErrNum)
		}
		return value.TextV(formatComplex(cmplx.Log(c)/divisor, suffix))
	}
}

func imVariadicEval(combine func(a, b complex128) complex128, identity complex128) func(*calc.Context, []calc.CalcValue) value.LiteralValue {
	return func(ctx *calc.Context, args []calc.CalcValue) value.LiteralValue {
		if len(args) == 0 {
			return value.ErrorV(value.ErrValue)
		}
		acc := identity
		suffix := "i"
		for i, a := range args {
			c, sfx, ok := scalarComplex(a)
			if !ok {
				return value.ErrorV(value.ErrValue)
			}
			if i == 0 {
				suffix = sfx
			}
			acc = combine(acc, c)
		}
		return value.TextV(formatComplex(acc, suffix))
	}
}
