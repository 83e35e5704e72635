package token

import "fmt"

// Token is an immutable (kind, payload) pair. The payload is the matched
// lexeme: identifier name, digits of a number, string body without quotes,
// the operator character or the keyword itself.
type Token struct {
	Kind    Kind
	Payload string
}

func New(kind Kind, payload string) Token {
	return Token{Kind: kind, Payload: payload}
}

// Print is the synthetic verb the segmenter prepends to echo and text segments.
func Print() Token {
	return Token{Kind: PRINT, Payload: "print"}
}

func (t Token) Is(kind Kind) bool {
	return t.Kind == kind
}

func (t Token) String() string {
	return fmt.Sprintf("%s(%q)", t.Kind, t.Payload)
}

// Source renders the token back into directive syntax: strings are quoted,
// everything else is the payload.
func (t Token) Source() string {
	if t.Kind == STRING {
		return `"` + t.Payload + `"`
	}
	return t.Payload
}
