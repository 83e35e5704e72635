// Package eval executes scanned templates. It is a recursive-descent
// evaluator over each segment's tokens that computes on a value stack instead
// of building a syntax tree, with a branch stack deciding which segments take
// effect.
//
//	segment tokens ──► statement dispatcher ──► branch controller
//	                          │
//	                          ▼
//	                 expression evaluator ◄──► value stack
//	                          │
//	                          ▼
//	                 environment (read only)
package eval

import (
	"strings"

	"github.com/walteh/amps/pkg/diagnostic"
	"github.com/walteh/amps/pkg/env"
	"github.com/walteh/amps/pkg/scan"
	"github.com/walteh/amps/pkg/token"
	"github.com/walteh/amps/pkg/value"
)

// Context is the state of one render. It is not safe for concurrent use and
// must not be reused across renders.
type Context struct {
	stack    []value.Value
	env      env.Environment
	branches []frame
	diags    diagnostic.List
	out      strings.Builder

	// line of the segment being executed
	line int
}

// NewContext prepares a render against environment, which is read but never
// modified.
func NewContext(environment env.Environment) *Context {
	if environment == nil {
		environment = env.Environment{}
	}
	return &Context{env: environment}
}

// Exec runs one segment. Segments without tokens are ignored.
func (c *Context) Exec(seg scan.Segment) {
	if len(seg.Tokens) == 0 {
		return
	}
	c.line = seg.Line
	c.statement(token.NewCursor(seg.Tokens))
}

// Finish reports if blocks that were never closed.
func (c *Context) Finish() {
	for i := len(c.branches) - 1; i >= 0; i-- {
		c.diags.Add(diagnostic.New(diagnostic.Branch, c.branches[i].line, "missing endif"))
	}
	c.branches = nil
}

func (c *Context) Output() string {
	return c.out.String()
}

func (c *Context) Diagnostics() diagnostic.List {
	return c.diags
}

// Depth is the number of open branch frames.
func (c *Context) Depth() int {
	return len(c.branches)
}

// StackLen is the number of values on the value stack.
func (c *Context) StackLen() int {
	return len(c.stack)
}

func (c *Context) push(v value.Value) {
	c.stack = append(c.stack, v)
}

// pop removes the top value, substituting <null> when the stack is empty so
// evaluation can carry on and keep diagnosing.
func (c *Context) pop() value.Value {
	v, ok := c.popOK()
	if !ok {
		return value.Null()
	}
	return v
}

func (c *Context) popOK() (value.Value, bool) {
	n := len(c.stack)
	if n == 0 {
		return value.Value{}, false
	}
	v := c.stack[n-1]
	c.stack = c.stack[:n-1]
	return v, true
}

func (c *Context) report(category diagnostic.Category, format string, args ...any) {
	c.diags.Add(diagnostic.New(category, c.line, format, args...))
}

func (c *Context) reportDiagnostic(d *diagnostic.Diagnostic) {
	d.Line = c.line
	c.diags.Add(*d)
}
