package eval

import (
	"github.com/walteh/amps/pkg/diagnostic"
	"github.com/walteh/amps/pkg/token"
)

// frame is one open if chain.
type frame struct {
	// opener is IF until the chain reaches its else, ELSE afterwards.
	opener token.Kind
	// taken is true while the current arm executes.
	taken bool
	// settled is true once an arm has run, or when the chain sits inside a
	// suppressed region; later arms of a settled chain never run.
	settled bool
	line    int
}

func (c *Context) top() (*frame, bool) {
	if len(c.branches) == 0 {
		return nil, false
	}
	return &c.branches[len(c.branches)-1], true
}

func (c *Context) pushBranch(f frame) {
	f.line = c.line
	c.branches = append(c.branches, f)
}

func (c *Context) popBranch() {
	if len(c.branches) > 0 {
		c.branches = c.branches[:len(c.branches)-1]
	}
}

// active reports whether statements currently take effect.
func (c *Context) active() bool {
	f, ok := c.top()
	if !ok {
		return true
	}
	return f.taken
}

// {% if expr %}
func (c *Context) ifStatement(cur *token.Cursor) {
	if !c.active() {
		cur.SkipRemainder()
		c.pushBranch(frame{opener: token.IF, settled: true})
		return
	}

	c.expression(cur)

	v, ok := c.popOK()
	if !ok {
		c.report(diagnostic.Semantic, "if expression cannot be evaluated")
		c.pushBranch(frame{opener: token.IF})
		return
	}

	b, ok := v.Bool()
	if !ok {
		c.report(diagnostic.Semantic, "if expression must evaluate to boolean")
		c.pushBranch(frame{opener: token.IF})
		return
	}

	c.pushBranch(frame{opener: token.IF, taken: b, settled: b})
}

// {% elif expr %}
func (c *Context) elifStatement(cur *token.Cursor) {
	f, ok := c.top()
	if !ok || f.opener != token.IF {
		c.report(diagnostic.Branch, "mismatch elif")
		cur.SkipRemainder()
		return
	}

	if f.settled {
		cur.SkipRemainder()
		f.taken = false
		return
	}

	c.popBranch()
	c.ifStatement(cur)
}

// {% else %}
func (c *Context) elseStatement() {
	f, ok := c.top()
	if !ok || f.opener != token.IF {
		c.report(diagnostic.Branch, "mismatch else")
		return
	}

	prev := *f
	c.popBranch()
	c.pushBranch(frame{opener: token.ELSE, taken: !prev.settled, settled: true})
}

// {% endif %}
func (c *Context) endifStatement() {
	f, ok := c.top()
	if !ok || (f.opener != token.IF && f.opener != token.ELSE) {
		c.report(diagnostic.Branch, "mismatch endif")
		return
	}
	c.popBranch()
}
