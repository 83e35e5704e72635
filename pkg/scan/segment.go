package scan

import (
	"strings"

	"github.com/walteh/amps/pkg/token"
)

// Kind tags a segment.
type Kind uint8

const (
	// TEXT is literal text, emitted verbatim.
	TEXT Kind = iota
	// ECHO is a {= expr =} block.
	ECHO
	// CODE is a {% stmt %} block.
	CODE
	// COMMENT is the fallback for anything the segmenter cannot classify. It
	// carries no tokens.
	COMMENT
)

func (k Kind) String() string {
	switch k {
	case TEXT:
		return "TEXT"
	case ECHO:
		return "ECHO"
	case CODE:
		return "CODE"
	case COMMENT:
		return "COMMENT"
	}
	return "UNKNOWN"
}

// Segment is one unit of a scanned template.
type Segment struct {
	Kind Kind
	// Raw is the matched source text, delimiters included.
	Raw string
	// Line is the 1-based source line the segment was found on.
	Line int
	// Tokens is nil for COMMENT segments.
	Tokens []token.Token
}

// Metainfo is a scanned template: its segments in source order.
type Metainfo []Segment

// Directives counts the ECHO and CODE segments.
func (m Metainfo) Directives() int {
	n := 0
	for _, s := range m {
		if s.Kind == ECHO || s.Kind == CODE {
			n++
		}
	}
	return n
}

// String reconstructs the source the segments were matched from.
func (m Metainfo) String() string {
	var sb strings.Builder
	for _, s := range m {
		sb.WriteString(s.Raw)
	}
	return sb.String()
}

func textSegment(raw string, line int) Segment {
	return Segment{
		Kind:   TEXT,
		Raw:    raw,
		Line:   line,
		Tokens: []token.Token{token.Print(), token.New(token.STRING, raw)},
	}
}

func codeSegment(raw string, line int) Segment {
	return Segment{
		Kind:   CODE,
		Raw:    raw,
		Line:   line,
		Tokens: Tokenize(raw),
	}
}

func echoSegment(raw string, line int) Segment {
	return Segment{
		Kind:   ECHO,
		Raw:    raw,
		Line:   line,
		Tokens: append([]token.Token{token.Print()}, Tokenize(raw)...),
	}
}
