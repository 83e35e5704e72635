package repl

import (
	"context"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/peterh/liner"
	"github.com/rs/zerolog"
	"github.com/spf13/afero"
	"github.com/spf13/cobra"
	"gitlab.com/tozd/go/errors"

	"github.com/walteh/amps"
)

const (
	prompt             = "amps> "
	defaultHistoryFile = "amps_history.txt"
)

type Handler struct {
	historyFile string
	envFile     string
	noNewlines  bool
}

func NewReplCommand() *cobra.Command {
	me := &Handler{}

	cmd := &cobra.Command{
		Use:   "repl",
		Short: "start the interactive template shell",
	}

	me.AddFlags(cmd)

	cmd.RunE = func(cmd *cobra.Command, args []string) error {
		return me.Run(cmd.Context())
	}

	return cmd
}

// AddFlags registers the shell's flags on cmd. The root command shares them
// because running amps without a subcommand starts the shell.
func (me *Handler) AddFlags(cmd *cobra.Command) {
	cmd.Flags().StringVar(&me.historyFile, "history", defaultHistoryFile, "file the command history is kept in")
	cmd.Flags().StringVar(&me.envFile, "env", "", "load the environment from a yaml, json or hcl file at startup")
	cmd.Flags().BoolVar(&me.noNewlines, "no-newlines", false, "drop line terminators from rendered output")
}

func (me *Handler) Run(ctx context.Context) error {
	fs := afero.NewOsFs()
	engine := amps.New(amps.WithFs(fs), amps.WithLineTerminators(!me.noNewlines))
	session := NewSession(engine, fs, os.Stdout)

	if me.envFile != "" {
		session.Exec(ctx, "env --file "+me.envFile)
	}

	line := liner.NewLiner()
	defer line.Close()

	line.SetCtrlCAborts(true)
	line.SetCompleter(complete)

	me.readHistory(ctx, line)
	defer me.writeHistory(ctx, line)

	fmt.Println("Welcome to amps. Type 'help' for commands.")

	for {
		input, err := line.Prompt(prompt)
		if err != nil {
			if errors.Is(err, liner.ErrPromptAborted) {
				continue
			}
			if errors.Is(err, io.EOF) {
				fmt.Println()
				return nil
			}
			return errors.Errorf("reading input: %w", err)
		}

		if strings.TrimSpace(input) != "" {
			line.AppendHistory(input)
		}

		if session.Exec(ctx, input) {
			return nil
		}
	}
}

// history is best effort; failures are only logged.
func (me *Handler) readHistory(ctx context.Context, line *liner.State) {
	f, err := os.Open(me.historyFile)
	if err != nil {
		return
	}
	defer f.Close()

	if _, err := line.ReadHistory(f); err != nil {
		zerolog.Ctx(ctx).Debug().Err(err).Str("file", me.historyFile).Msg("reading history")
	}
}

func (me *Handler) writeHistory(ctx context.Context, line *liner.State) {
	f, err := os.Create(me.historyFile)
	if err != nil {
		zerolog.Ctx(ctx).Debug().Err(err).Str("file", me.historyFile).Msg("creating history file")
		return
	}
	defer f.Close()

	if _, err := line.WriteHistory(f); err != nil {
		zerolog.Ctx(ctx).Debug().Err(err).Str("file", me.historyFile).Msg("writing history")
	}
}

func complete(line string) []string {
	var out []string
	for _, c := range commands {
		if strings.HasPrefix(c, line) {
			out = append(out, c)
		}
	}
	return out
}
