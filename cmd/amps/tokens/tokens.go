package tokens

import (
	"context"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/fatih/color"
	"github.com/k0kubun/pp/v3"
	"github.com/spf13/afero"
	"github.com/spf13/cobra"
	"gitlab.com/tozd/go/errors"

	"github.com/walteh/amps"
	"github.com/walteh/amps/pkg/scan"
)

type Handler struct {
	pretty     bool
	noNewlines bool

	fs  afero.Fs
	out io.Writer
}

func NewTokensCommand() *cobra.Command {
	me := &Handler{
		fs: afero.NewOsFs(),
	}

	cmd := &cobra.Command{
		Use:   "tokens FILE",
		Short: "print the segments and tokens of a template",
		Args:  cobra.ExactArgs(1),
	}

	cmd.Flags().BoolVar(&me.pretty, "pretty", false, "dump the full segment structures")
	cmd.Flags().BoolVar(&me.noNewlines, "no-newlines", false, "drop line terminator segments")

	cmd.RunE = func(cmd *cobra.Command, args []string) error {
		me.out = cmd.OutOrStdout()
		return me.Run(cmd.Context(), args[0])
	}

	return cmd
}

func (me *Handler) Run(ctx context.Context, path string) error {
	if me.out == nil {
		me.out = os.Stdout
	}

	engine := amps.New(amps.WithFs(me.fs), amps.WithLineTerminators(!me.noNewlines))

	tmpl, err := engine.CompileFile(path)
	if err != nil {
		return err
	}

	if me.pretty {
		p := pp.New()
		p.SetOutput(me.out)
		p.SetColoringEnabled(!color.NoColor)
		if _, err := p.Println(tmpl.Segments()); err != nil {
			return errors.Errorf("printing segments: %w", err)
		}
		return nil
	}

	return writeListing(me.out, tmpl.Segments())
}

// writeListing prints one line per segment and one indented line per token:
//
//	1 CODE    "{% if a %}"
//	    IF("if")
//	    IDENTIFIER("a")
func writeListing(w io.Writer, meta scan.Metainfo) error {
	var sb strings.Builder
	for _, seg := range meta {
		fmt.Fprintf(&sb, "%d %-7s %q\n", seg.Line, seg.Kind, seg.Raw)
		for _, tok := range seg.Tokens {
			fmt.Fprintf(&sb, "    %s\n", tok)
		}
	}

	if _, err := io.WriteString(w, sb.String()); err != nil {
		return errors.Errorf("writing tokens: %w", err)
	}
	return nil
}
