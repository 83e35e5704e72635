package eval

import (
	"strconv"

	"github.com/walteh/amps/pkg/diagnostic"
	"github.com/walteh/amps/pkg/env"
	"github.com/walteh/amps/pkg/token"
	"github.com/walteh/amps/pkg/value"
)

// Grammar, lowest precedence first. Binary operators are left associative.
// Equality binds looser than and/or, so `a and b eq c and d` groups as
// `(a and b) eq (c and d)`.
//
//	expression     := equality
//	equality       := logical ( (eq|ne) logical )*
//	logical        := comparison ( (and|or) comparison )*
//	comparison     := addition ( (gt|ge|lt|le) addition )*
//	addition       := multiplication ( (+|-) multiplication )*
//	multiplication := unary ( (*|/|%) unary )*
//	unary          := (-|not) unary | primary
//	primary        := NUMBER | STRING | true | false | ( expression )
//	                | IDENTIFIER ( [ primary ] )?

func (c *Context) expression(cur *token.Cursor) {
	c.equality(cur)
}

func (c *Context) equality(cur *token.Cursor) {
	c.binaryLevel(cur, c.logical, token.EQ, token.NE)
}

func (c *Context) logical(cur *token.Cursor) {
	c.binaryLevel(cur, c.comparison, token.AND, token.OR)
}

func (c *Context) comparison(cur *token.Cursor) {
	c.binaryLevel(cur, c.addition, token.GT, token.GE, token.LT, token.LE)
}

func (c *Context) addition(cur *token.Cursor) {
	c.binaryLevel(cur, c.multiplication, token.PLUS, token.MINUS)
}

func (c *Context) multiplication(cur *token.Cursor) {
	c.binaryLevel(cur, c.unary, token.STAR, token.SLASH, token.PERCENT)
}

// binaryLevel parses operand (op operand)* and folds each step on the stack:
// pop right, pop left, push the result.
func (c *Context) binaryLevel(cur *token.Cursor, operand func(*token.Cursor), ops ...token.Kind) {
	operand(cur)

	for {
		op, ok := cur.MatchAny(ops...)
		if !ok {
			return
		}

		operand(cur)

		right := c.pop()
		left := c.pop()

		result, d := Binary(op, left, right)
		if d != nil {
			c.reportDiagnostic(d)
			continue
		}
		c.push(result)
	}
}

func (c *Context) unary(cur *token.Cursor) {
	op, ok := cur.MatchAny(token.MINUS, token.NOT)
	if !ok {
		c.primary(cur)
		return
	}

	// chains such as `- - 3` or `not not a` nest to the right
	c.unary(cur)

	operand, ok := c.popOK()
	if !ok {
		c.report(diagnostic.Syntax, "no data retrieved from the stack")
		return
	}

	result, d := Unary(op, operand)
	if d != nil {
		c.reportDiagnostic(d)
		return
	}
	c.push(result)
}

func (c *Context) primary(cur *token.Cursor) {
	tok, ok := cur.Advance()
	if !ok {
		c.report(diagnostic.Syntax, "unexpected end of expression")
		return
	}

	switch tok.Kind {
	case token.NUMBER:
		n, err := strconv.ParseInt(tok.Payload, 10, 64)
		if err != nil {
			c.report(diagnostic.Arithmetic, "number %s overflows", tok.Payload)
			return
		}
		c.push(value.Number(n))
	case token.STRING:
		c.push(value.Text(tok.Payload))
	case token.TRUE:
		c.push(value.Bool(true))
	case token.FALSE:
		c.push(value.Bool(false))
	case token.LPAREN:
		c.expression(cur)
		if !cur.Match(token.RPAREN) {
			c.report(diagnostic.Syntax, "missing closing )")
		}
	case token.IDENTIFIER:
		c.identifier(cur, tok.Payload)
	default:
		c.report(diagnostic.Syntax, "unexpected token %s", tok)
	}
}

// identifier pushes a scalar binding, or the element selected by a
// following [index].
func (c *Context) identifier(cur *token.Cursor, name string) {
	bound, known := c.env.Lookup(name)
	if !known {
		c.report(diagnostic.Semantic, "invalid identifier %s", name)
	}

	if !cur.Match(token.LBRACKET) {
		if !known {
			return
		}
		switch v := bound.(type) {
		case env.Number:
			c.push(value.Number(int64(v)))
		case env.Text:
			c.push(value.Text(string(v)))
		default:
			c.report(diagnostic.Semantic, "complex variable, must be parsed")
		}
		return
	}

	c.primary(cur)
	if !cur.Match(token.RBRACKET) {
		c.report(diagnostic.Syntax, "missing closing ]")
	}

	index, ok := c.popOK()
	if !ok {
		c.report(diagnostic.Syntax, "no data retrieved from the stack")
		return
	}
	if !known {
		return
	}

	if key, ok := index.Text(); ok {
		c.lookupKey(name, bound, key)
		return
	}
	if i, ok := index.Number(); ok {
		c.lookupIndex(name, bound, i)
		return
	}
	c.report(diagnostic.Semantic, "invalid id")
}

func (c *Context) lookupKey(name string, bound env.Value, key string) {
	switch m := bound.(type) {
	case env.TextMap:
		if v, ok := m[key]; ok {
			c.push(value.Text(v))
			return
		}
	case env.NumberMap:
		if v, ok := m[key]; ok {
			c.push(value.Number(v))
			return
		}
	default:
		c.report(diagnostic.Semantic, "%s is a %s and cannot be indexed by text", name, bound.Tag())
		return
	}
	c.report(diagnostic.Semantic, "invalid id %s[%q]", name, key)
}

func (c *Context) lookupIndex(name string, bound env.Value, i int64) {
	switch vec := bound.(type) {
	case env.TextVector:
		if i >= 0 && i < int64(len(vec)) {
			c.push(value.Text(vec[i]))
			return
		}
	case env.NumberVector:
		if i >= 0 && i < int64(len(vec)) {
			c.push(value.Number(vec[i]))
			return
		}
	default:
		c.report(diagnostic.Semantic, "%s is a %s and cannot be indexed by number", name, bound.Tag())
		return
	}
	c.report(diagnostic.Semantic, "invalid id %s[%d]", name, i)
}
