package eval

import (
	"math"

	"github.com/walteh/amps/pkg/diagnostic"
	"github.com/walteh/amps/pkg/token"
	"github.com/walteh/amps/pkg/value"
)

// Binary applies a binary operator. Operands must share a kind; integer
// arithmetic is checked. On failure the returned diagnostic has no line.
func Binary(op token.Kind, left, right value.Value) (value.Value, *diagnostic.Diagnostic) {
	if left.Kind() != right.Kind() {
		return fail(diagnostic.Semantic, "mismatch types %s %s %s", left.Describe(), op.Symbol(), right.Describe())
	}

	switch left.Kind() {
	case value.NumberKind:
		a, _ := left.Number()
		b, _ := right.Number()
		return numbers(op, a, b)
	case value.TextKind:
		a, _ := left.Text()
		b, _ := right.Text()
		return texts(op, a, b)
	default:
		a, _ := left.Bool()
		b, _ := right.Bool()
		return bools(op, a, b)
	}
}

// Unary applies - or not.
func Unary(op token.Kind, operand value.Value) (value.Value, *diagnostic.Diagnostic) {
	switch op {
	case token.MINUS:
		n, ok := operand.Number()
		if !ok {
			return fail(diagnostic.Semantic, "invalid -%s", operand.Describe())
		}
		if n == math.MinInt64 {
			return fail(diagnostic.Arithmetic, "-(%d) overflows", n)
		}
		return value.Number(-n), nil
	case token.NOT:
		if b, ok := operand.Bool(); ok {
			return value.Bool(!b), nil
		}
		if n, ok := operand.Number(); ok {
			return value.Number(^n), nil
		}
		return fail(diagnostic.Semantic, "invalid not %s", operand.Describe())
	}
	return fail(diagnostic.Syntax, "operator %s is not unary", op.Symbol())
}

func numbers(op token.Kind, a, b int64) (value.Value, *diagnostic.Diagnostic) {
	switch op {
	case token.EQ:
		return value.Bool(a == b), nil
	case token.NE:
		return value.Bool(a != b), nil
	case token.LT:
		return value.Bool(a < b), nil
	case token.LE:
		return value.Bool(a <= b), nil
	case token.GT:
		return value.Bool(a > b), nil
	case token.GE:
		return value.Bool(a >= b), nil
	case token.PLUS:
		c := a + b
		if b > 0 && c < a {
			return fail(diagnostic.Arithmetic, "%d + %d overflows", a, b)
		}
		if b < 0 && c > a {
			return fail(diagnostic.Arithmetic, "%d + %d underflows", a, b)
		}
		return value.Number(c), nil
	case token.MINUS:
		c := a - b
		if b < 0 && c < a {
			return fail(diagnostic.Arithmetic, "%d - %d overflows", a, b)
		}
		if b > 0 && c > a {
			return fail(diagnostic.Arithmetic, "%d - %d underflows", a, b)
		}
		return value.Number(c), nil
	case token.STAR:
		if a == 0 || b == 0 {
			return value.Number(0), nil
		}
		c := a * b
		if c/b != a || (a == -1 && b == math.MinInt64) || (b == -1 && a == math.MinInt64) {
			if (a < 0) != (b < 0) {
				return fail(diagnostic.Arithmetic, "%d * %d underflows", a, b)
			}
			return fail(diagnostic.Arithmetic, "%d * %d overflows", a, b)
		}
		return value.Number(c), nil
	case token.SLASH:
		if b == 0 {
			return fail(diagnostic.Arithmetic, "%d / %d division by 0", a, b)
		}
		if a == math.MinInt64 && b == -1 {
			return fail(diagnostic.Arithmetic, "%d / %d overflows", a, b)
		}
		return value.Number(a / b), nil
	case token.PERCENT:
		if b == 0 {
			return fail(diagnostic.Arithmetic, "%d %% %d division by 0", a, b)
		}
		if a == math.MinInt64 && b == -1 {
			return fail(diagnostic.Arithmetic, "%d %% %d overflows", a, b)
		}
		return value.Number(a % b), nil
	}
	return fail(diagnostic.Semantic, "operator %s invalid for numbers", op.Symbol())
}

func texts(op token.Kind, a, b string) (value.Value, *diagnostic.Diagnostic) {
	switch op {
	case token.EQ:
		return value.Bool(a == b), nil
	case token.NE:
		return value.Bool(a != b), nil
	case token.LT:
		return value.Bool(a < b), nil
	case token.LE:
		return value.Bool(a <= b), nil
	case token.GT:
		return value.Bool(a > b), nil
	case token.GE:
		return value.Bool(a >= b), nil
	case token.PLUS:
		return value.Text(a + b), nil
	}
	return fail(diagnostic.Semantic, "operator %s invalid for text", op.Symbol())
}

func bools(op token.Kind, a, b bool) (value.Value, *diagnostic.Diagnostic) {
	switch op {
	case token.EQ:
		return value.Bool(a == b), nil
	case token.NE:
		return value.Bool(a != b), nil
	case token.AND:
		return value.Bool(a && b), nil
	case token.OR:
		return value.Bool(a || b), nil
	}
	return fail(diagnostic.Semantic, "operator %s invalid for booleans", op.Symbol())
}

func fail(category diagnostic.Category, format string, args ...any) (value.Value, *diagnostic.Diagnostic) {
	d := diagnostic.New(category, 0, format, args...)
	return value.Value{}, &d
}
