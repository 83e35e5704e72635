package main

import (
	"context"
	"os"
	"runtime/debug"

	"github.com/fatih/color"
	"github.com/rs/zerolog"
	"github.com/spf13/cobra"
	"gitlab.com/tozd/go/errors"

	"github.com/walteh/amps/cmd/amps/render"
	"github.com/walteh/amps/cmd/amps/repl"
	"github.com/walteh/amps/cmd/amps/tokens"
	"github.com/walteh/amps/pkg/logging"
)

func main() {
	if err := run(); err != nil {
		println(err.Error())
		os.Exit(1)
	}
}

type rootFlags struct {
	logLevel  string
	logFormat string
	logCaller bool
}

func run() error {
	flags := &rootFlags{}
	shell := &repl.Handler{}

	rootCmd := &cobra.Command{
		Use:           "amps",
		Short:         "A small text template engine",
		Long:          "amps renders text templates with {= expr =} echoes and {% if %} statements.\nWithout a subcommand it starts the interactive shell.",
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	info, ok := debug.ReadBuildInfo()
	if !ok {
		rootCmd.Version = "unknown"
	} else {
		rootCmd.Version = info.Main.Version
	}

	rootCmd.PersistentFlags().StringVar(&flags.logLevel, "log-level", "warn", "log level: trace, debug, info, warn, error")
	rootCmd.PersistentFlags().StringVar(&flags.logFormat, "log-format", "console", "log format: console or json")
	rootCmd.PersistentFlags().BoolVar(&flags.logCaller, "log-caller", false, "add the calling file and line to log entries")

	rootCmd.PersistentPreRunE = func(cmd *cobra.Command, args []string) error {
		logger, err := flags.logger()
		if err != nil {
			return err
		}
		cmd.SetContext(logger.WithContext(cmd.Context()))
		return nil
	}

	shell.AddFlags(rootCmd)
	rootCmd.RunE = func(cmd *cobra.Command, args []string) error {
		return shell.Run(cmd.Context())
	}

	cmdVersion := &cobra.Command{
		Use: "raw-version",
		Run: func(cmdz *cobra.Command, args []string) {
			cmdz.Println(rootCmd.Version)
		},
		Hidden: true,
	}

	rootCmd.AddCommand(cmdVersion)
	rootCmd.AddCommand(repl.NewReplCommand())
	rootCmd.AddCommand(render.NewRenderCommand())
	rootCmd.AddCommand(tokens.NewTokensCommand())

	if err := rootCmd.ExecuteContext(context.Background()); err != nil {
		return errors.Errorf("failed to execute command: %w", err)
	}

	return nil
}

func (f *rootFlags) logger() (zerolog.Logger, error) {
	level, err := zerolog.ParseLevel(f.logLevel)
	if err != nil {
		return zerolog.Nop(), errors.Errorf("parsing log level: %w", err)
	}

	format, err := logging.ParseFormat(f.logFormat)
	if err != nil {
		return zerolog.Nop(), err
	}

	return logging.New(os.Stderr, logging.Options{
		Level:  level,
		Format: format,
		Color:  !color.NoColor,
		Caller: f.logCaller,
	}), nil
}
