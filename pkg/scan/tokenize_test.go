package scan_test

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/walteh/amps/pkg/diff"
	"github.com/walteh/amps/pkg/scan"
	"github.com/walteh/amps/pkg/token"
)

func TestTokenize(t *testing.T) {
	tests := []struct {
		name  string
		block string
		want  []token.Token
	}{
		{
			name:  "if_statement",
			block: "{% if a eq 1 %}",
			want: []token.Token{
				tk(token.IF, "if"),
				tk(token.IDENTIFIER, "a"),
				tk(token.EQ, "eq"),
				tk(token.NUMBER, "1"),
			},
		},
		{
			name:  "operators",
			block: "{= (1 + 2) * 3 / 4 % 5 - 6 =}",
			want: []token.Token{
				tk(token.LPAREN, "("),
				tk(token.NUMBER, "1"),
				tk(token.PLUS, "+"),
				tk(token.NUMBER, "2"),
				tk(token.RPAREN, ")"),
				tk(token.STAR, "*"),
				tk(token.NUMBER, "3"),
				tk(token.SLASH, "/"),
				tk(token.NUMBER, "4"),
				tk(token.PERCENT, "%"),
				tk(token.NUMBER, "5"),
				tk(token.MINUS, "-"),
				tk(token.NUMBER, "6"),
			},
		},
		{
			name:  "strings_and_index",
			block: `{= m["some key"] + "x" =}`,
			want: []token.Token{
				tk(token.IDENTIFIER, "m"),
				tk(token.LBRACKET, "["),
				tk(token.STRING, "some key"),
				tk(token.RBRACKET, "]"),
				tk(token.PLUS, "+"),
				tk(token.STRING, "x"),
			},
		},
		{
			name:  "identifier_charset",
			block: "{= first_Name2 =}",
			want: []token.Token{
				tk(token.IDENTIFIER, "first_Name"),
				tk(token.NUMBER, "2"),
			},
		},
		{
			name:  "illegal_character_truncates",
			block: "{% print a.b + 1 %}",
			want: []token.Token{
				tk(token.PRINT, "print"),
				tk(token.IDENTIFIER, "a"),
			},
		},
		{
			name:  "unterminated_string",
			block: `{= "abc =}`,
			want: []token.Token{
				tk(token.STRING, "abc"),
			},
		},
		{
			name:  "punctuation",
			block: "{% a = b, c %}",
			want: []token.Token{
				tk(token.IDENTIFIER, "a"),
				tk(token.ASSIGN, "="),
				tk(token.IDENTIFIER, "b"),
				tk(token.COMMA, ","),
				tk(token.IDENTIFIER, "c"),
			},
		},
		{
			name:  "no_delimiters",
			block: "if a",
			want:  []token.Token{},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			diff.Require(t, tt.want, scan.Tokenize(tt.block))
		})
	}
}

func TestInterior(t *testing.T) {
	in, ok := scan.Interior("{% endif %}")
	require.True(t, ok)
	assert.Equal(t, "endif", in)

	in, ok = scan.Interior("{= a =}")
	require.True(t, ok)
	assert.Equal(t, "a", in)

	_, ok = scan.Interior("{% a =}")
	assert.False(t, ok)

	_, ok = scan.Interior("{%  %}")
	assert.False(t, ok)
}

// Reprinting the payloads separated by single spaces and tokenizing again
// gives the same sequence.
func TestTokenizeIsIdempotentModuloWhitespace(t *testing.T) {
	interiors := []string{
		"if a eq 1",
		"print   1+2*3",
		`m["k"] + "v w"`,
		"not (a and b) or c ge 10",
		"v[0]\t-\t-3",
		"elif x ne \"\"",
	}

	for _, in := range interiors {
		first := scan.TokenizeInterior(in)
		parts := make([]string, 0, len(first))
		for _, tok := range first {
			parts = append(parts, tok.Source())
		}
		second := scan.TokenizeInterior(strings.Join(parts, " "))
		diff.Require(t, first, second, in)
	}
}
