// Package scan turns a template into segments. Scanning is line oriented: a
// directive never spans a line break, and every line is matched left to right
// against three alternatives, in priority order:
//
//	{% stmt %}   CODE
//	{= expr =}   ECHO
//	text         TEXT (a run up to the next '{')
//
// The single space after an opener and before a closer is mandatory. Anything
// that fails the directive shapes falls through to TEXT.
package scan

import (
	"regexp"
	"strings"
)

var blockPattern = regexp.MustCompile(
	`(?P<code>\{% [a-z][a-zA-Z0-9*\-,.%_\\\[\]"()+/ ]* %\})` +
		`|(?P<echo>\{= [a-z0-9"\-][a-zA-Z0-9*\-,.%_\\\[\]"()+/ ]* =\})` +
		`|(?P<text>.[^\{]*)`,
)

var (
	codeGroup = blockPattern.SubexpIndex("code")
	echoGroup = blockPattern.SubexpIndex("echo")
	textGroup = blockPattern.SubexpIndex("text")
)

// Scanner splits templates into segments.
type Scanner struct {
	// KeepLineTerminators re-emits every "\n" or "\r\n" of the input as its own
	// TEXT segment. Without it lines are concatenated.
	KeepLineTerminators bool
}

// Scan segments a template, keeping line terminators.
func Scan(template string) Metainfo {
	return Scanner{KeepLineTerminators: true}.Scan(template)
}

func (s Scanner) Scan(template string) Metainfo {
	var out Metainfo

	rest := template
	for n := 1; rest != ""; n++ {
		line, term := rest, ""
		if i := strings.IndexByte(rest, '\n'); i >= 0 {
			line, term, rest = rest[:i], "\n", rest[i+1:]
			if strings.HasSuffix(line, "\r") {
				line, term = line[:len(line)-1], "\r\n"
			}
		} else {
			rest = ""
		}

		out = append(out, scanLine(line, n)...)

		if term != "" && s.KeepLineTerminators {
			out = append(out, textSegment(term, n))
		}
	}

	return out
}

// scanLine segments a single line without its terminator. Residues none of
// the alternatives match are dropped.
func scanLine(line string, n int) Metainfo {
	var out Metainfo

	for _, m := range blockPattern.FindAllStringSubmatchIndex(line, -1) {
		switch {
		case m[2*codeGroup] >= 0:
			out = append(out, codeSegment(line[m[2*codeGroup]:m[2*codeGroup+1]], n))
		case m[2*echoGroup] >= 0:
			out = append(out, echoSegment(line[m[2*echoGroup]:m[2*echoGroup+1]], n))
		case m[2*textGroup] >= 0:
			out = append(out, textSegment(line[m[2*textGroup]:m[2*textGroup+1]], n))
		default:
			out = append(out, Segment{Kind: COMMENT, Raw: line[m[0]:m[1]], Line: n})
		}
	}

	return out
}
