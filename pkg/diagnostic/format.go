package diagnostic

import (
	"encoding/json"
	"strconv"
	"strings"

	"github.com/fatih/color"
	"gitlab.com/tozd/go/errors"
	"gopkg.in/yaml.v3"
)

// Formatter renders diagnostics for output.
type Formatter interface {
	Format(name string, diagnostics List) ([]byte, error)
}

// NewFormatter returns the formatter for text, json or yaml.
func NewFormatter(format string, colorize bool) (Formatter, error) {
	switch format {
	case "text", "":
		return &TextFormatter{Color: colorize}, nil
	case "json":
		return &JSONFormatter{}, nil
	case "yaml":
		return &YAMLFormatter{}, nil
	}
	return nil, errors.Errorf("unknown diagnostics format %q", format)
}

// TextFormatter writes one `name:line: category: message` line per
// diagnostic.
type TextFormatter struct {
	Color bool
}

func (f *TextFormatter) Format(name string, diagnostics List) ([]byte, error) {
	loc := color.New(color.Bold)
	cat := color.New(color.FgHiRed)
	if !f.Color {
		loc.DisableColor()
		cat.DisableColor()
	} else {
		loc.EnableColor()
		cat.EnableColor()
	}

	var sb strings.Builder
	for _, d := range diagnostics {
		where := name
		if d.Line > 0 {
			where = name + ":" + strconv.Itoa(d.Line)
		}
		sb.WriteString(loc.Sprint(where))
		sb.WriteString(": ")
		sb.WriteString(cat.Sprint(string(d.Category)))
		sb.WriteString(": ")
		sb.WriteString(d.Message)
		sb.WriteString("\n")
	}
	return []byte(sb.String()), nil
}

type report struct {
	Template    string       `json:"template" yaml:"template"`
	Diagnostics []Diagnostic `json:"diagnostics" yaml:"diagnostics"`
}

type JSONFormatter struct{}

func (f *JSONFormatter) Format(name string, diagnostics List) ([]byte, error) {
	out, err := json.Marshal(report{Template: name, Diagnostics: nonNil(diagnostics)})
	if err != nil {
		return nil, errors.Errorf("encoding diagnostics: %w", err)
	}
	return append(out, '\n'), nil
}

type YAMLFormatter struct{}

func (f *YAMLFormatter) Format(name string, diagnostics List) ([]byte, error) {
	out, err := yaml.Marshal(report{Template: name, Diagnostics: nonNil(diagnostics)})
	if err != nil {
		return nil, errors.Errorf("encoding diagnostics: %w", err)
	}
	return out, nil
}

func nonNil(l List) []Diagnostic {
	if l == nil {
		return []Diagnostic{}
	}
	return l
}
