package token

// Cursor is a restartable look-ahead iterator over the tokens of one segment.
// Peeking never consumes; only Advance, Match and SkipRemainder move it.
type Cursor struct {
	tokens []Token
	index  int
}

func NewCursor(tokens []Token) *Cursor {
	return &Cursor{tokens: tokens}
}

// Peek returns the current token.
func (c *Cursor) Peek() (Token, bool) {
	return c.at(c.index)
}

// PeekBack returns the token consumed last. It reports false before the
// first advance.
func (c *Cursor) PeekBack() (Token, bool) {
	return c.at(c.index - 1)
}

// PeekAhead returns the token after the current one.
func (c *Cursor) PeekAhead() (Token, bool) {
	return c.at(c.index + 1)
}

// Advance returns the current token and steps past it.
func (c *Cursor) Advance() (Token, bool) {
	tok, ok := c.at(c.index)
	if ok {
		c.index++
	}
	return tok, ok
}

// Match consumes the current token when it has the given kind.
func (c *Cursor) Match(kind Kind) bool {
	tok, ok := c.at(c.index)
	if !ok || tok.Kind != kind {
		return false
	}
	c.index++
	return true
}

// MatchAny consumes the current token when it has one of the given kinds and
// returns that kind.
func (c *Cursor) MatchAny(kinds ...Kind) (Kind, bool) {
	for _, k := range kinds {
		if c.Match(k) {
			return k, true
		}
	}
	return INVALID, false
}

// SkipRemainder discards every remaining token.
func (c *Cursor) SkipRemainder() {
	c.index = len(c.tokens)
}

// Remaining returns the unconsumed tokens.
func (c *Cursor) Remaining() []Token {
	return c.tokens[c.index:]
}

func (c *Cursor) Done() bool {
	return c.index >= len(c.tokens)
}

// Reset rewinds to the first token.
func (c *Cursor) Reset() {
	c.index = 0
}

func (c *Cursor) at(i int) (Token, bool) {
	if i < 0 || i >= len(c.tokens) {
		return Token{}, false
	}
	return c.tokens[i], true
}
