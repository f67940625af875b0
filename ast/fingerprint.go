package ast

import (
	"encoding/binary"
	"hash/fnv"
	"math"
	"strings"

	"github.com/calcengine/formulacore/value"
)

// discriminant tags for the fingerprint, stable across Go versions since
// they're written explicitly rather than derived from iota positions that
// could shift if NodeKind gains variants.
const (
	discLiteral byte = 1
	discRef     byte = 2
	discUnary   byte = 3
	discBinary  byte = 4
	discFunc    byte = 5
	discArray   byte = 6
)

// Fingerprint computes the stable 64-bit structural hash described in
// §3.2: discriminant tags, operator strings verbatim, function names
// lower-cased, literal values hashed by semantic content, children hashed
// in order. Formatting and literal textual form never affect the result.
func (n *Node) Fingerprint() uint64 {
	h := fnv.New64a()
	n.hashInto(h)
	return h.Sum64()
}

type hashWriter interface {
	Write(p []byte) (int, error)
}

func (n *Node) hashInto(h hashWriter) {
	if n == nil {
		h.Write([]byte{0})
		return
	}
	switch n.Kind {
	case LiteralNode:
		h.Write([]byte{discLiteral})
		hashLiteral(h, n.Literal)
	case ReferenceNode:
		h.Write([]byte{discRef})
		h.Write([]byte(n.Ref.String()))
	case UnaryOpNode:
		h.Write([]byte{discUnary})
		h.Write([]byte(n.Op))
		n.Expr.hashInto(h)
	case BinaryOpNode:
		h.Write([]byte{discBinary})
		h.Write([]byte(n.Op))
		n.Left.hashInto(h)
		n.Right.hashInto(h)
	case FunctionNode:
		h.Write([]byte{discFunc})
		h.Write([]byte(strings.ToLower(n.Name)))
		writeUint(h, uint64(len(n.Args)))
		for _, a := range n.Args {
			a.hashInto(h)
		}
	case ArrayNode:
		h.Write([]byte{discArray})
		writeUint(h, uint64(len(n.ArrayRows)))
		for _, row := range n.ArrayRows {
			writeUint(h, uint64(len(row)))
			for _, el := range row {
				el.hashInto(h)
			}
		}
	}
}

func writeUint(h hashWriter, v uint64) {
	var b [8]byte
	binary.LittleEndian.PutUint64(b[:], v)
	h.Write(b[:])
}

// hashLiteral hashes by semantic content, not textual form: a literal -0.0
// payload canonicalizes to 0.0 and hashes like 0.0 (the formula "=-0" is a
// UnaryOp over 0, not a literal, and fingerprints differently from "=0"), and numeric
// kinds (Number/Int/Date/...) that carry equal float payloads hash the same
// only when their Kind also matches (a Number and a Date with the same
// serial are NOT observationally equivalent to a reader).
func hashLiteral(h hashWriter, v value.LiteralValue) {
	h.Write([]byte{byte(v.Kind)})
	switch v.Kind {
	case value.Number, value.Int, value.Date, value.DateTime, value.Time, value.Duration:
		n := v.Num
		if n == 0 {
			n = 0 // canonicalize -0.0
		}
		writeUint(h, math.Float64bits(n))
	case value.Boolean:
		if v.Bool {
			h.Write([]byte{1})
		} else {
			h.Write([]byte{0})
		}
	case value.Text:
		h.Write([]byte(v.Str))
	case value.Error:
		h.Write([]byte{byte(v.Err)})
	case value.Array:
		writeUint(h, uint64(v.Rows))
		writeUint(h, uint64(v.Cols))
		for _, item := range v.Items {
			hashLiteral(h, item)
		}
	}
}
