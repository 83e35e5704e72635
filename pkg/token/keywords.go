package token

// keywords maps reserved words to their kinds. Lookup is case-sensitive.
var keywords = map[string]Kind{
	"boolean": BOOLEAN,
	"true":    TRUE,
	"false":   FALSE,
	"null":    NIL,
	"and":     AND,
	"or":      OR,
	"not":     NOT,
	"eq":      EQ,
	"ne":      NE,
	"lt":      LT,
	"le":      LE,
	"gt":      GT,
	"ge":      GE,
	"if":      IF,
	"else":    ELSE,
	"elif":    ELIF,
	"endif":   ENDIF,
	"for":     FOR,
	"in":      IN,
	"endfor":  ENDFOR,
	"range":   RANGE,
	"print":   PRINT,
	"except":  EXCEPT,
	"insert":  INSERT,
}

// Keyword returns the kind of a reserved word.
func Keyword(word string) (Kind, bool) {
	k, ok := keywords[word]
	return k, ok
}

// LookupIdent classifies a scanned word: its keyword kind when reserved,
// IDENTIFIER otherwise.
func LookupIdent(word string) Kind {
	if k, ok := keywords[word]; ok {
		return k
	}
	return IDENTIFIER
}

// Keywords returns every reserved word. The order is unspecified.
func Keywords() []string {
	out := make([]string, 0, len(keywords))
	for w := range keywords {
		out = append(out, w)
	}
	return out
}
