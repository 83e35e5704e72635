// Package amps renders text templates with embedded directives.
//
// Two directive forms are recognized inline with literal text:
//
//	{= expr =}   echo: evaluate expr and emit its value
//	{% stmt %}   statement: if / elif / else / endif, or print expr
//
// Everything else is copied verbatim. Rendering never fails on template
// input; problems are returned as diagnostics alongside the output.
//
//	out, diags := amps.Render("Hi {= name =}!", env.Environment{"name": env.Text("Ada")})
package amps

import (
	"context"

	"github.com/rs/xid"
	"github.com/rs/zerolog"
	"github.com/spf13/afero"

	"github.com/walteh/amps/pkg/diagnostic"
	"github.com/walteh/amps/pkg/env"
	"github.com/walteh/amps/pkg/eval"
	"github.com/walteh/amps/pkg/scan"
)

// Engine compiles and renders templates. It holds no per-render state and is
// safe for concurrent use.
type Engine struct {
	scanner scan.Scanner
	fs      afero.Fs
}

type Option func(*Engine)

// WithLineTerminators controls whether the line breaks of a template appear in
// its output. The default is true.
func WithLineTerminators(keep bool) Option {
	return func(e *Engine) {
		e.scanner.KeepLineTerminators = keep
	}
}

// WithFs sets the filesystem templates are loaded from.
func WithFs(fs afero.Fs) Option {
	return func(e *Engine) {
		e.fs = fs
	}
}

func New(opts ...Option) *Engine {
	e := &Engine{
		scanner: scan.Scanner{KeepLineTerminators: true},
		fs:      afero.NewOsFs(),
	}
	for _, opt := range opts {
		opt(e)
	}
	return e
}

func (e *Engine) Fs() afero.Fs {
	return e.fs
}

// Template is a scanned template. It is immutable and may be executed
// concurrently.
type Template struct {
	name   string
	source string
	meta   scan.Metainfo
}

// Compile scans source once so it can be executed many times.
func (e *Engine) Compile(name, source string) *Template {
	return &Template{
		name:   name,
		source: source,
		meta:   e.scanner.Scan(source),
	}
}

// CompileFile loads and compiles a template from the engine's filesystem.
func (e *Engine) CompileFile(path string) (*Template, error) {
	source, err := LoadTemplateFile(e.fs, path)
	if err != nil {
		return nil, err
	}
	return e.Compile(path, source), nil
}

// Render compiles and executes template in one step.
func (e *Engine) Render(ctx context.Context, template string, environment env.Environment) *Result {
	return e.Compile("inline", template).Execute(ctx, environment)
}

func (t *Template) Name() string { return t.name }

func (t *Template) Source() string { return t.source }

func (t *Template) Segments() scan.Metainfo { return t.meta }

// Result is the rendered output and the diagnostics raised producing it. A
// non-empty diagnostics list does not imply empty output.
type Result struct {
	Output      string
	Diagnostics diagnostic.List
	RenderID    string
}

func (r *Result) Messages() []string {
	return r.Diagnostics.Messages()
}

// Err is nil when the render raised no diagnostics.
func (r *Result) Err() error {
	return r.Diagnostics.Err()
}

// Execute renders the template against a snapshot of environment.
func (t *Template) Execute(ctx context.Context, environment env.Environment) *Result {
	id := xid.New().String()

	logger := zerolog.Ctx(ctx).With().
		Str("render_id", id).
		Str("template", t.name).
		Logger()
	ctx = logger.WithContext(ctx)

	logger.Debug().
		Int("segments", len(t.meta)).
		Int("directives", t.meta.Directives()).
		Int("bindings", len(environment)).
		Msg("rendering template")

	res := eval.Run(ctx, t.meta, environment.Snapshot())

	logger.Debug().
		Int("output_bytes", len(res.Output)).
		Int("diagnostics", len(res.Diagnostics)).
		Msg("rendered template")

	return &Result{
		Output:      res.Output,
		Diagnostics: res.Diagnostics,
		RenderID:    id,
	}
}

var defaultEngine = New()

// Render renders template against environment with the default engine and
// returns the output and the diagnostic messages in the order they occurred.
func Render(template string, environment env.Environment) (string, []string) {
	res := defaultEngine.Render(context.Background(), template, environment)
	return res.Output, res.Messages()
}
