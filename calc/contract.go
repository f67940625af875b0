// Package calc implements the function contract described in §4.5: schema-
// driven argument validation, coercion, scalar/range dispatch, and the
// registry that the external scheduler looks up builtins through.
package calc

import (
	"github.com/calcengine/formulacore/rangeview"
	"github.com/calcengine/formulacore/value"
)

// Capability is a bit-set of function traits (§4.5). The dispatcher treats
// unknown bits as additive hints, so new capabilities can be added without
// breaking existing callers.
type Capability uint32

const (
	Pure Capability = 1 << iota
	NumericOnly
	Reduction
	StreamOK
)

// Has reports whether c includes capability want.
func (c Capability) Has(want Capability) bool { return c&want != 0 }

// ArgShape distinguishes a scalar slot from a range slot (§4.5).
type ArgShape uint8

const (
	ShapeScalar ArgShape = iota
	ShapeRange
)

// ArgKind records the accepted value kinds for a slot.
type ArgKind uint8

const (
	KindAny ArgKind = iota
	KindNumber
	KindText
	KindLogical
)

// CoercionPolicy names how a slot's raw value is converted before the
// builtin sees it (§4.5.3).
type CoercionPolicy uint8

const (
	CoerceNone CoercionPolicy = iota
	CoerceNumberLenientText
)

// ArgSpec is one entry of a function's argument schema (§4.5).
type ArgSpec struct {
	Kind       ArgKind
	Shape      ArgShape
	ByRef      bool
	Coercion   CoercionPolicy
	Repeating  bool
	HasDefault bool
	Default    value.LiteralValue
}

// ValKind discriminates a CalcValue's payload (§4.5 dispatch contract).
type ValKind uint8

const (
	ScalarVal ValKind = iota
	RangeVal
	ArrayLiteralVal
)

// CalcValue is the uniform scalar/range/array-literal argument and result
// type threaded through dispatch (§4.5 step 5, §6.5).
type CalcValue struct {
	Kind    ValKind
	Scalar  value.LiteralValue // ScalarVal, and ArrayLiteralVal (Kind==value.Array)
	Range   rangeview.RangeView
}

func Scalar(v value.LiteralValue) CalcValue  { return CalcValue{Kind: ScalarVal, Scalar: v} }
func Range(rv rangeview.RangeView) CalcValue { return CalcValue{Kind: RangeVal, Range: rv} }
func ArrayLiteral(v value.LiteralValue) CalcValue {
	return CalcValue{Kind: ArrayLiteralVal, Scalar: v}
}

// ScalarLike implements "if the underlying value is a range, take (0,0)"
// (§4.5 step 2).
func (c CalcValue) ScalarLike() value.LiteralValue {
	switch c.Kind {
	case RangeVal:
		return c.Range.GetCell(0, 0)
	default:
		return c.Scalar
	}
}

// IsRange reports whether c is a true range reference (not an inline array
// literal) — this distinction governs whether text/boolean cells are
// ignored (range) or coerced (array literal), per §4.5 step 3.
func (c CalcValue) IsRange() bool { return c.Kind == RangeVal }

// Context carries per-evaluation state: cancellation and iteration limits
// (§5 "Cancellation", §7).
type Context struct {
	MaxIterations uint
	cancelled     func() bool
}

// NewContext builds a Context with an optional cancellation poll function.
// A nil poll function means "never cancelled".
func NewContext(maxIterations uint, cancelled func() bool) *Context {
	if cancelled == nil {
		cancelled = func() bool { return false }
	}
	return &Context{MaxIterations: maxIterations, cancelled: cancelled}
}

// Cancelled polls the cancellation flag. Long inner loops should check this
// at coarse granularity (once per chunk segment, §5).
func (c *Context) Cancelled() bool {
	if c == nil || c.cancelled == nil {
		return false
	}
	return c.cancelled()
}

// Function is a builtin's full descriptor (§4.5, §9 "Polymorphism": a
// tagged-variant struct rather than an interface-table, matching the
// teacher's style of plain structs over abstract interfaces for
// data-shaped types).
type Function struct {
	Name     string
	Aliases  []string
	MinArgs  int
	Variadic bool
	Schema   []ArgSpec
	Caps     Capability

	// Eval is the fast path (§4.5: "skips generic dispatch"). Dispatch
	// below delegates to it after arity validation, so the two are
	// observationally equivalent by construction rather than by
	// independent reimplementation (§8 property 10).
	Eval func(ctx *Context, args []CalcValue) value.LiteralValue
}

// Dispatch validates argument count and calls Eval (§4.5 dispatch
// contract). Per-slot coercion is the Eval implementation's
// responsibility via the helpers in collect.go; the schema in Schema is
// metadata for introspection (e.g. by a UI autocomplete) rather than a
// second enforcement path, to keep Eval and Dispatch provably equivalent.
func (f *Function) Dispatch(ctx *Context, args []CalcValue) value.LiteralValue {
	if len(args) < f.MinArgs {
		return value.ErrorV(value.ErrValue)
	}
	if !f.Variadic && len(f.Schema) > 0 && len(args) > len(f.Schema) {
		return value.ErrorV(value.ErrValue)
	}
	return f.Eval(ctx, args)
}
