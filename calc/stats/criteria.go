package stats

import (
	"strconv"
	"strings"

	"github.com/calcengine/formulacore/value"
)

// predicate is the common criteria matcher shared by MAXIFS/MINIFS (and,
// in a full builtin catalog, SUMIFS/COUNTIFS/AVERAGEIFS) — §4.5.1: "criteria
// are parsed through a common predicate builder."
type predicate func(value.LiteralValue) bool

// buildPredicate parses one criteria argument into a matcher. Supported
// forms: a bare number or text (equality), and ">", "<", ">=", "<=", "<>",
// "=" prefixed comparisons against a number or text operand.
func buildPredicate(criteria value.LiteralValue) predicate {
	if criteria.Kind != value.Text {
		target := criteria
		return func(v value.LiteralValue) bool { return equalsValue(v, target) }
	}
	s := criteria.Str
	for _, op := range []string{">=", "<=", "<>", ">", "<", "="} {
		if strings.HasPrefix(s, op) {
			operand := strings.TrimSpace(s[len(op):])
			return comparisonPredicate(op, operand)
		}
	}
	return func(v value.LiteralValue) bool { return equalsValue(v, criteria) }
}

func comparisonPredicate(op, operand string) predicate {
	if n, err := strconv.ParseFloat(operand, 64); err == nil {
		return func(v value.LiteralValue) bool {
			c := value.CoerceNumber(v)
			if c.Kind != value.Number {
				return false
			}
			return compareNumbers(op, c.Num, n)
		}
	}
	return func(v value.LiteralValue) bool {
		if v.Kind != value.Text {
			return op == "<>"
		}
		switch op {
		case "=":
			return strings.EqualFold(v.Str, operand)
		case "<>":
			return !strings.EqualFold(v.Str, operand)
		default:
			return compareNumbers(op, float64(strings.Compare(strings.ToLower(v.Str), strings.ToLower(operand))), 0)
		}
	}
}

func compareNumbers(op string, a, b float64) bool {
	switch op {
	case ">":
		return a > b
	case "<":
		return a < b
	case ">=":
		return a >= b
	case "<=":
		return a <= b
	case "<>":
		return a != b
	case "=":
		return a == b
	default:
		return false
	}
}

func equalsValue(v, target value.LiteralValue) bool {
	switch target.Kind {
	case value.Text:
		return v.Kind == value.Text && strings.EqualFold(v.Str, target.Str)
	case value.Number, value.Int:
		c := value.CoerceNumber(v)
		return c.Kind == value.Number && c.Num == target.Num
	case value.Boolean:
		return v.Kind == value.Boolean && v.Bool == target.Bool
	case value.Empty:
		return v.Kind == value.Empty
	default:
		return false
	}
}
