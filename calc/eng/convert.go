package eng

import (
	"github.com/calcengine/formulacore/calc"
	"github.com/calcengine/formulacore/value"
)

// unitCategory groups CONVERT's closed unit registry (§4.5.1): length
// (base meter), mass (base gram), and temperature (handled separately via
// a Celsius pivot with offset semantics, since temperature conversion
// isn't a pure scale factor).
type unitCategory int

const (
	catLength unitCategory = iota
	catMass
	catTemperature
)

type unitDef struct {
	category unitCategory
	toBase   float64 // multiply by this to reach the category's base unit
}

var units = map[string]unitDef{
	"m":   {catLength, 1},
	"cm":  {catLength, 0.01},
	"mm":  {catLength, 0.001},
	"km":  {catLength, 1000},
	"in":  {catLength, 0.0254},
	"ft":  {catLength, 0.3048},
	"yd":  {catLength, 0.9144},
	"mi":  {catLength, 1609.344},

	"g":  {catMass, 1},
	"kg": {catMass, 1000},
	"mg": {catMass, 0.001},
	"lbm": {catMass, 453.59237},
	"ozm": {catMass, 28.349523125},

	"C": {catTemperature, 0},
	"F": {catTemperature, 0},
	"K": {catTemperature, 0},
}

// toCelsius converts a value in the named temperature unit to Celsius.
func toCelsius(unit string, v float64) (float64, bool) {
	switch unit {
	case "C":
		return v, true
	case "F":
		return (v - 32) * 5 / 9, true
	case "K":
		return v - 273.15, true
	default:
		return 0, false
	}
}

func fromCelsius(unit string, c float64) (float64, bool) {
	switch unit {
	case "C":
		return c, true
	case "F":
		return c*9/5 + 32, true
	case "K":
		return c + 273.15, true
	default:
		return 0, false
	}
}

// convertEval implements CONVERT(number, from_unit, to_unit). Cross-
// category conversion, and any unit outside the registry, returns #N/A
// (§4.5.1).
func convertEval(ctx *calc.Context, args []calc.CalcValue) value.LiteralValue {
	if len(args) != 3 {
		return value.ErrorV(value.ErrValue)
	}
	n := value.CoerceNumber(args[0].ScalarLike())
	if n.Kind != value.Number {
		return value.ErrorV(value.ErrValue)
	}
	from, ok := scalarText(args[1])
	if !ok {
		return value.ErrorV(value.ErrValue)
	}
	to, ok := scalarText(args[2])
	if !ok {
		return value.ErrorV(value.ErrValue)
	}
	fu, fok := units[from]
	tu, tok := units[to]
	if !fok || !tok || fu.category != tu.category {
		return value.ErrorV(value.ErrNA)
	}
	if fu.category == catTemperature {
		c, ok := toCelsius(from, n.Num)
		if !ok {
			return value.ErrorV(value.ErrNA)
		}
		out, ok := fromCelsius(to, c)
		if !ok {
			return value.ErrorV(value.ErrNA)
		}
		return value.NumberV(out)
	}
	base := n.Num * fu.toBase
	return value.NumberV(base / tu.toBase)
}
