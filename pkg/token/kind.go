// Package token defines the lexical vocabulary of amps directives: token
// kinds, the keyword table, the Token itself and the per-segment Cursor the
// evaluator walks.
package token

// Kind is the lexical category of a token.
type Kind uint8

const (
	INVALID Kind = iota

	// identifiers and literals
	IDENTIFIER
	STRING
	NUMBER
	TRUE
	FALSE
	NIL

	// logical, comparison and arithmetic operators
	AND
	OR
	NOT
	EQ
	NE
	LT
	LE
	GT
	GE
	PLUS
	MINUS
	STAR
	SLASH
	PERCENT

	// punctuation
	ASSIGN
	COMMA
	LPAREN
	RPAREN
	LBRACKET
	RBRACKET

	// control keywords
	IF
	ELIF
	ELSE
	ENDIF
	FOR
	IN
	ENDFOR
	RANGE

	// statement verbs
	PRINT

	// reserved, never produced by the evaluator's grammar
	EXCEPT
	INSERT
	VARIABLE
	BOOLEAN

	kindCount
)

var kindNames = [kindCount]string{
	INVALID:    "INVALID",
	IDENTIFIER: "IDENTIFIER",
	STRING:     "STRING",
	NUMBER:     "NUMBER",
	TRUE:       "TRUE",
	FALSE:      "FALSE",
	NIL:        "NIL",
	AND:        "AND",
	OR:         "OR",
	NOT:        "NOT",
	EQ:         "EQ",
	NE:         "NE",
	LT:         "LT",
	LE:         "LE",
	GT:         "GT",
	GE:         "GE",
	PLUS:       "PLUS",
	MINUS:      "MINUS",
	STAR:       "STAR",
	SLASH:      "SLASH",
	PERCENT:    "PERCENT",
	ASSIGN:     "ASSIGN",
	COMMA:      "COMMA",
	LPAREN:     "LPAREN",
	RPAREN:     "RPAREN",
	LBRACKET:   "LBRACKET",
	RBRACKET:   "RBRACKET",
	IF:         "IF",
	ELIF:       "ELIF",
	ELSE:       "ELSE",
	ENDIF:      "ENDIF",
	FOR:        "FOR",
	IN:         "IN",
	ENDFOR:     "ENDFOR",
	RANGE:      "RANGE",
	PRINT:      "PRINT",
	EXCEPT:     "EXCEPT",
	INSERT:     "INSERT",
	VARIABLE:   "VARIABLE",
	BOOLEAN:    "BOOLEAN",
}

func (k Kind) String() string {
	if k >= kindCount {
		return "INVALID"
	}
	return kindNames[k]
}

// IsReserved reports whether the kind belongs to a keyword the language
// reserves but does not implement (loops, except/insert, null, boolean).
func (k Kind) IsReserved() bool {
	switch k {
	case FOR, IN, ENDFOR, RANGE, EXCEPT, INSERT, VARIABLE, BOOLEAN, NIL:
		return true
	}
	return false
}

// Symbol is the operator spelling used in diagnostics, e.g. "+" for PLUS or
// "eq" for EQ. Kinds without a spelling fall back to their name.
func (k Kind) Symbol() string {
	switch k {
	case PLUS:
		return "+"
	case MINUS:
		return "-"
	case STAR:
		return "*"
	case SLASH:
		return "/"
	case PERCENT:
		return "%"
	case AND:
		return "and"
	case OR:
		return "or"
	case NOT:
		return "not"
	case EQ:
		return "eq"
	case NE:
		return "ne"
	case LT:
		return "lt"
	case LE:
		return "le"
	case GT:
		return "gt"
	case GE:
		return "ge"
	}
	return k.String()
}
