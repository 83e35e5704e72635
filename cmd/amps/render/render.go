package render

import (
	"context"
	"fmt"
	"io"
	"os"
	"runtime"

	"github.com/fatih/color"
	"github.com/rs/zerolog"
	"github.com/spf13/afero"
	"github.com/spf13/cobra"
	"gitlab.com/tozd/go/errors"
	"go.uber.org/multierr"
	"golang.org/x/sync/errgroup"

	"github.com/walteh/amps"
	"github.com/walteh/amps/pkg/diagnostic"
	"github.com/walteh/amps/pkg/env"
	"github.com/walteh/amps/pkg/store"
)

type Handler struct {
	envFile    string
	format     string
	strict     bool
	noNewlines bool
	watch      bool
	jobs       int

	fs        afero.Fs
	templates *store.Store
	stdout    io.Writer
	stderr    io.Writer
}

func NewRenderCommand() *cobra.Command {
	me := &Handler{
		fs: afero.NewOsFs(),
	}

	cmd := &cobra.Command{
		Use:   "render PATTERN...",
		Short: "render template files",
		Long: "Render every template matched by the given paths or glob patterns (** is supported).\n" +
			"Output goes to stdout in argument order; diagnostics go to stderr.",
		Args: cobra.MinimumNArgs(1),
	}

	cmd.Flags().StringVarP(&me.envFile, "env", "e", "", "yaml, json or hcl file holding the environment")
	cmd.Flags().StringVar(&me.format, "format", "text", "diagnostics format: text, json or yaml")
	cmd.Flags().BoolVar(&me.strict, "strict", false, "exit non-zero when any diagnostic is raised")
	cmd.Flags().BoolVar(&me.noNewlines, "no-newlines", false, "drop line terminators from the output")
	cmd.Flags().BoolVarP(&me.watch, "watch", "w", false, "re-render templates when they change")
	cmd.Flags().IntVarP(&me.jobs, "jobs", "j", runtime.NumCPU(), "templates rendered concurrently")

	cmd.RunE = func(cmd *cobra.Command, args []string) error {
		me.stdout = cmd.OutOrStdout()
		me.stderr = cmd.ErrOrStderr()
		return me.Run(cmd.Context(), args)
	}

	return cmd
}

type rendered struct {
	path   string
	result *amps.Result
}

func (me *Handler) Run(ctx context.Context, patterns []string) error {
	if me.stdout == nil {
		me.stdout = os.Stdout
	}
	if me.stderr == nil {
		me.stderr = os.Stderr
	}

	formatter, err := diagnostic.NewFormatter(me.format, !color.NoColor)
	if err != nil {
		return err
	}

	environment := env.Environment{}
	if me.envFile != "" {
		environment, err = env.LoadFile(me.fs, me.envFile)
		if err != nil {
			return err
		}
	}

	paths, err := expand(me.fs, patterns)
	if err != nil {
		return err
	}

	engine := amps.New(amps.WithFs(me.fs), amps.WithLineTerminators(!me.noNewlines))
	me.templates = store.New(engine)

	results, err := me.renderAll(ctx, me.templates, paths, environment)
	if err != nil {
		return err
	}

	var diags error
	for _, r := range results {
		if err := me.emit(formatter, r); err != nil {
			return err
		}
		diags = multierr.Append(diags, r.result.Err())
	}

	if me.watch {
		return me.watchAndRender(ctx, me.templates, formatter, paths, environment)
	}

	if me.strict && diags != nil {
		return errors.Errorf("rendering raised %d diagnostic(s): %w", len(multierr.Errors(diags)), diags)
	}

	return nil
}

// renderAll renders paths concurrently and returns the results in path order.
func (me *Handler) renderAll(ctx context.Context, templates *store.Store, paths []string, environment env.Environment) ([]rendered, error) {
	results := make([]rendered, len(paths))

	g, ctx := errgroup.WithContext(ctx)
	if me.jobs > 0 {
		g.SetLimit(me.jobs)
	}

	for i, path := range paths {
		i, path := i, path
		g.Go(func() error {
			if err := ctx.Err(); err != nil {
				return err
			}

			tmpl, err := templates.Get(path)
			if err != nil {
				return err
			}

			results[i] = rendered{path: path, result: tmpl.Execute(ctx, environment)}
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return nil, err
	}

	zerolog.Ctx(ctx).Debug().Int("templates", len(paths)).Msg("rendered batch")

	return results, nil
}

func (me *Handler) emit(formatter diagnostic.Formatter, r rendered) error {
	if _, err := io.WriteString(me.stdout, r.result.Output); err != nil {
		return errors.Errorf("writing output of %s: %w", r.path, err)
	}

	if len(r.result.Diagnostics) == 0 {
		return nil
	}

	report, err := formatter.Format(r.path, r.result.Diagnostics)
	if err != nil {
		return err
	}

	if _, err := me.stderr.Write(report); err != nil {
		return errors.Errorf("writing diagnostics of %s: %w", r.path, err)
	}

	return nil
}

func (me *Handler) watchAndRender(ctx context.Context, templates *store.Store, formatter diagnostic.Formatter, paths []string, environment env.Environment) error {
	w, err := newWatcher(paths)
	if err != nil {
		return err
	}
	defer w.Close()

	fmt.Fprintf(me.stderr, "watching %d template(s)\n", len(paths))

	return w.Run(ctx, func(path string) {
		templates.Invalidate(path)

		tmpl, err := templates.Get(path)
		if err != nil {
			fmt.Fprintf(me.stderr, "%s: %s\n", path, err.Error())
			return
		}

		if err := me.emit(formatter, rendered{path: path, result: tmpl.Execute(ctx, environment)}); err != nil {
			zerolog.Ctx(ctx).Error().Err(err).Str("path", path).Msg("emitting render")
		}
	})
}
