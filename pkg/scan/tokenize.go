package scan

import (
	"strings"

	"github.com/alecthomas/participle/v2/lexer"

	"github.com/walteh/amps/pkg/token"
)

var (
	// InteriorLexer tokenizes the inside of a directive. Characters no rule
	// matches end lexing of the directive.
	InteriorLexer = lexer.MustSimple([]lexer.SimpleRule{
		{Name: "whitespace", Pattern: `[ \t\r]+`},
		// an unterminated string runs to the end of the directive
		{Name: "String", Pattern: `"[^"]*"?`},
		{Name: "Number", Pattern: `[0-9]+`},
		{Name: "Word", Pattern: `[a-z][A-Za-z_]*`},
		{Name: "Operator", Pattern: `[-+/%*=,()\[\]]`},
	})

	symbols = InteriorLexer.Symbols()
)

var operators = map[string]token.Kind{
	"+": token.PLUS,
	"-": token.MINUS,
	"/": token.SLASH,
	"%": token.PERCENT,
	"*": token.STAR,
	"=": token.ASSIGN,
	",": token.COMMA,
	"(": token.LPAREN,
	")": token.RPAREN,
	"[": token.LBRACKET,
	"]": token.RBRACKET,
}

// Tokenize converts a whole directive, delimiters included (for example
// `{% if a eq 1 %}`), into tokens. It never fails: a block without valid
// delimiters yields no tokens and an illegal character truncates the result.
func Tokenize(block string) []token.Token {
	inner, ok := Interior(block)
	if !ok {
		return []token.Token{}
	}
	return TokenizeInterior(inner)
}

// Interior strips the "{% " / " %}" or "{= " / " =}" delimiters.
func Interior(block string) (string, bool) {
	if len(block) < 7 {
		return "", false
	}
	open, closer := block[:3], block[len(block)-3:]
	if (open == "{% " && closer == " %}") || (open == "{= " && closer == " =}") {
		return block[3 : len(block)-3], true
	}
	return "", false
}

// TokenizeInterior tokenizes directive text without delimiters.
func TokenizeInterior(code string) []token.Token {
	out := []token.Token{}

	lex, err := InteriorLexer.LexString("", code)
	if err != nil {
		return out
	}

	for {
		tok, err := lex.Next()
		if err != nil || tok.EOF() {
			return out
		}

		switch tok.Type {
		case symbols["whitespace"]:
			continue
		case symbols["String"]:
			body := strings.TrimPrefix(tok.Value, `"`)
			body = strings.TrimSuffix(body, `"`)
			out = append(out, token.New(token.STRING, body))
		case symbols["Number"]:
			out = append(out, token.New(token.NUMBER, tok.Value))
		case symbols["Word"]:
			out = append(out, token.New(token.LookupIdent(tok.Value), tok.Value))
		case symbols["Operator"]:
			out = append(out, token.New(operators[tok.Value], tok.Value))
		default:
			return out
		}
	}
}
