// Package diagnostic holds the non-fatal problems a render accumulates.
package diagnostic

import (
	"fmt"

	"gitlab.com/tozd/go/errors"
	"go.uber.org/multierr"
)

// Category groups diagnostics by the stage that raised them.
type Category string

const (
	// Syntax covers unexpected tokens and missing ) or ].
	Syntax Category = "syntax"
	// Semantic covers unknown identifiers, type mismatches and bad indexing.
	Semantic Category = "semantic"
	// Arithmetic covers overflow, underflow and division by zero.
	Arithmetic Category = "arithmetic"
	// Branch covers elif/else/endif without a matching opener and unclosed ifs.
	Branch Category = "branch"
)

// Diagnostic is a single message.
type Diagnostic struct {
	Category Category `json:"category" yaml:"category"`
	Message  string   `json:"message" yaml:"message"`
	// Line is the 1-based template line of the segment, 0 when unknown.
	Line int `json:"line,omitempty" yaml:"line,omitempty"`
}

func New(category Category, line int, format string, args ...any) Diagnostic {
	return Diagnostic{
		Category: category,
		Message:  fmt.Sprintf(format, args...),
		Line:     line,
	}
}

func (d Diagnostic) String() string {
	return d.Message
}

// Detail prefixes the message with its line.
func (d Diagnostic) Detail() string {
	if d.Line <= 0 {
		return d.Message
	}
	return fmt.Sprintf("line %d: %s", d.Line, d.Message)
}

// AsError converts the diagnostic into an error carrying its detail.
func (d Diagnostic) AsError() error {
	return errors.Base(d.Detail())
}

// List is an ordered collection of diagnostics.
type List []Diagnostic

func (l *List) Add(d Diagnostic) {
	*l = append(*l, d)
}

func (l List) Messages() []string {
	out := make([]string, 0, len(l))
	for _, d := range l {
		out = append(out, d.Message)
	}
	return out
}

func (l List) Filter(category Category) List {
	var out List
	for _, d := range l {
		if d.Category == category {
			out = append(out, d)
		}
	}
	return out
}

// Err combines the list into one error, nil when empty.
func (l List) Err() error {
	var err error
	for _, d := range l {
		err = multierr.Append(err, d.AsError())
	}
	return err
}
