// Package ast defines the AST node type (§3.2), the Pratt/precedence-
// climbing parser that builds it from a token stream (§4.2), volatility
// annotation, and the 64-bit structural fingerprint used as an external
// scheduler cache key.
package ast

import (
	"fmt"
	"strings"

	"github.com/calcengine/formulacore/ref"
	"github.com/calcengine/formulacore/token"
	"github.com/calcengine/formulacore/value"
)

// NodeKind discriminates the AST variants (§3.2).
type NodeKind uint8

const (
	LiteralNode NodeKind = iota
	ReferenceNode
	UnaryOpNode
	BinaryOpNode
	FunctionNode
	ArrayNode
)

// Node is one AST element. Only the fields relevant to Kind are populated;
// this mirrors the teacher's flat-struct-with-discriminant style rather
// than an interface hierarchy (§9 "Polymorphism" design note explicitly
// allows either).
type Node struct {
	Kind NodeKind

	// LiteralNode
	Literal value.LiteralValue

	// ReferenceNode
	RefText string
	Ref     ref.Reference

	// UnaryOpNode / BinaryOpNode
	Op    string
	Expr  *Node // unary
	Left  *Node // binary
	Right *Node // binary

	// FunctionNode
	Name string
	Args []*Node

	// ArrayNode: row-major grid of element expressions
	ArrayRows [][]*Node

	// Token is the node's source token for diagnostics, when available.
	Token *token.Token

	// ContainsVolatile is computed bottom-up during parsing (§3.2).
	ContainsVolatile bool
}

// VolatilityClassifier reports whether a function name (already
// lower-cased) is volatile, e.g. "now", "rand", "today".
type VolatilityClassifier func(lowerName string) bool

// DefaultVolatilityClassifier recognizes the standard Excel volatile
// functions.
func DefaultVolatilityClassifier(lowerName string) bool {
	switch lowerName {
	case "now", "today", "rand", "randbetween", "randarray", "offset",
		"indirect", "cell", "info":
		return true
	default:
		return false
	}
}

// ParseError is a parser failure carrying a source token position (§7): it
// is surfaced as a typed error through Parse, never as a
// value.LiteralValue.
type ParseError struct {
	Pos int
	Msg string
}

func (e *ParseError) Error() string {
	return fmt.Sprintf("parse error at %d: %s", e.Pos, e.Msg)
}

// Dependencies returns every Reference transitively contained in the AST,
// in document order. It is part of the scheduler-facing API surface
// (§6.5); this core does not itself do anything with the result.
func (n *Node) Dependencies() []ref.Reference {
	var out []ref.Reference
	var walk func(*Node)
	walk = func(node *Node) {
		if node == nil {
			return
		}
		switch node.Kind {
		case ReferenceNode:
			out = append(out, node.Ref)
		case UnaryOpNode:
			walk(node.Expr)
		case BinaryOpNode:
			walk(node.Left)
			walk(node.Right)
		case FunctionNode:
			for _, a := range node.Args {
				walk(a)
			}
		case ArrayNode:
			for _, row := range node.ArrayRows {
				for _, el := range row {
					walk(el)
				}
			}
		}
	}
	walk(n)
	return out
}

// String renders the node as a debug tree (not canonical formula text;
// useful for tests and diagnostics).
func (n *Node) String() string {
	if n == nil {
		return "<nil>"
	}
	switch n.Kind {
	case LiteralNode:
		return fmt.Sprintf("Literal(%v)", n.Literal)
	case ReferenceNode:
		return fmt.Sprintf("Reference(%s)", n.RefText)
	case UnaryOpNode:
		return fmt.Sprintf("UnaryOp(%s, %s)", n.Op, n.Expr)
	case BinaryOpNode:
		return fmt.Sprintf("BinaryOp(%s, %s, %s)", n.Op, n.Left, n.Right)
	case FunctionNode:
		parts := make([]string, len(n.Args))
		for i, a := range n.Args {
			parts[i] = a.String()
		}
		return fmt.Sprintf("Function(%s, [%s])", n.Name, strings.Join(parts, ", "))
	case ArrayNode:
		return "Array(...)"
	default:
		return "?"
	}
}
