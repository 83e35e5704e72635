package repl

import (
	"context"
	"fmt"
	"io"
	"strings"

	"github.com/spf13/afero"

	"github.com/walteh/amps"
	"github.com/walteh/amps/pkg/diagnostic"
	"github.com/walteh/amps/pkg/env"
)

// Renderer renders a template against an environment. *amps.Engine
// satisfies it.
type Renderer interface {
	Render(ctx context.Context, template string, environment env.Environment) *amps.Result
}

var commands = []string{"load", "show", "render", "env", "help", "quit"}

// Session is the state of one interactive session: the current template and
// the current environment.
type Session struct {
	renderer  Renderer
	fs        afero.Fs
	out       io.Writer
	formatter diagnostic.Formatter

	template    string
	hasTemplate bool
	environment env.Environment
}

func NewSession(renderer Renderer, fs afero.Fs, out io.Writer) *Session {
	return &Session{
		renderer:    renderer,
		fs:          fs,
		out:         out,
		formatter:   &diagnostic.TextFormatter{},
		environment: env.Environment{},
	}
}

func (s *Session) Template() (string, bool) {
	return s.template, s.hasTemplate
}

func (s *Session) Environment() env.Environment {
	return s.environment
}

// Exec runs one command line and reports whether the session should end.
func (s *Session) Exec(ctx context.Context, line string) (quit bool) {
	line = strings.TrimSpace(line)
	if line == "" {
		return false
	}

	name, rest, _ := strings.Cut(line, " ")
	rest = strings.TrimLeft(rest, " ")

	switch name {
	case "quit", "exit":
		return true
	case "help":
		s.help()
	case "show":
		s.show()
	case "load":
		s.load(rest)
	case "render":
		s.render(ctx)
	case "env":
		s.env(rest)
	default:
		fmt.Fprintf(s.out, "invalid command: %s\n", line)
	}
	return false
}

func (s *Session) help() {
	fmt.Fprintln(s.out, "Commands:")
	fmt.Fprintln(s.out, " - load --file PATH:\tread the template from PATH")
	fmt.Fprintln(s.out, " - load TEMPLATE:\tuse the rest of the line as the template")
	fmt.Fprintln(s.out, " - show:\t\tprint the current template")
	fmt.Fprintln(s.out, " - render:\t\trender the current template")
	fmt.Fprintln(s.out, " - env --file PATH:\tload the environment from a yaml, json or hcl file")
	fmt.Fprintln(s.out, " - env:\t\t\tlist the current environment")
	fmt.Fprintln(s.out, " - help:\t\tprint this help")
	fmt.Fprintln(s.out, " - quit:\t\texit")
}

func (s *Session) show() {
	if !s.hasTemplate {
		fmt.Fprintln(s.out, "no template loaded")
		return
	}
	fmt.Fprintln(s.out, s.template)
}

func (s *Session) load(args string) {
	if args == "" {
		fmt.Fprintln(s.out, "load [--file filename | template]")
		return
	}

	path, isFile := fileFlag(args)
	if !isFile {
		s.template = args
		s.hasTemplate = true
		return
	}

	if path == "" {
		fmt.Fprintln(s.out, "missing filename")
		return
	}

	tmpl, err := amps.LoadTemplateFile(s.fs, path)
	if err != nil {
		fmt.Fprintln(s.out, err.Error())
		return
	}
	s.template = tmpl
	s.hasTemplate = true
}

func (s *Session) render(ctx context.Context) {
	if !s.hasTemplate {
		fmt.Fprintln(s.out, "no template loaded")
		return
	}

	res := s.renderer.Render(ctx, s.template, s.environment)

	fmt.Fprintln(s.out, res.Output)
	if len(res.Diagnostics) == 0 {
		return
	}

	report, err := s.formatter.Format("template", res.Diagnostics)
	if err != nil {
		fmt.Fprintln(s.out, err.Error())
		return
	}
	_, _ = s.out.Write(report)
}

func (s *Session) env(args string) {
	if args == "" {
		names := s.environment.Names()
		if len(names) == 0 {
			fmt.Fprintln(s.out, "environment is empty")
			return
		}
		for _, name := range names {
			v, ok := s.environment.Lookup(name)
			if !ok {
				continue
			}
			fmt.Fprintf(s.out, "%s: %s\n", name, v.Tag())
		}
		return
	}

	path, isFile := fileFlag(args)
	if !isFile || path == "" {
		fmt.Fprintln(s.out, "env [--file filename]")
		return
	}

	loaded, err := env.LoadFile(s.fs, path)
	if err != nil {
		fmt.Fprintln(s.out, err.Error())
		return
	}
	s.environment = loaded
	fmt.Fprintf(s.out, "loaded %d binding(s)\n", len(loaded))
}

// fileFlag splits `--file PATH` arguments.
func fileFlag(args string) (path string, ok bool) {
	if args == "--file" {
		return "", true
	}
	path, ok = strings.CutPrefix(args, "--file ")
	return strings.TrimSpace(path), ok
}
