package eval

import (
	"github.com/walteh/amps/pkg/diagnostic"
	"github.com/walteh/amps/pkg/token"
)

// statement dispatches on the first token of a segment.
func (c *Context) statement(cur *token.Cursor) {
	first, ok := cur.Advance()
	if !ok {
		return
	}

	switch first.Kind {
	case token.PRINT:
		c.printStatement(cur)
	case token.IF:
		c.ifStatement(cur)
	case token.ELIF:
		c.elifStatement(cur)
	case token.ELSE:
		c.elseStatement()
	case token.ENDIF:
		c.endifStatement()
	default:
		if first.Kind.IsReserved() {
			c.report(diagnostic.Syntax, "unsupported statement %s", first.Payload)
		} else {
			c.report(diagnostic.Syntax, "unexpected token %s", first)
		}
		cur.SkipRemainder()
	}

	if rest := cur.Remaining(); len(rest) > 0 {
		c.report(diagnostic.Syntax, "unexpected token %s", rest[0])
	}

	if n := len(c.stack); n > 0 {
		c.report(diagnostic.Syntax, "malformed expression, %d value(s) left on the stack", n)
		c.stack = c.stack[:0]
	}
}

// printStatement evaluates even when suppressed so diagnostics still surface;
// it only writes while the branch is active.
func (c *Context) printStatement(cur *token.Cursor) {
	active := c.active()

	c.expression(cur)

	v, ok := c.popOK()
	if !ok || !active {
		return
	}
	c.out.WriteString(v.String())
}
