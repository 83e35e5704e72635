// Package logging builds the zerolog loggers used by the amps binaries.
// Library packages never log globally; they read the logger from the context
// with zerolog.Ctx.
package logging

import (
	"fmt"
	"io"
	"reflect"
	"runtime"
	"strings"

	"github.com/fatih/color"
	"github.com/rs/zerolog"
	"gitlab.com/tozd/go/errors"
)

type Format string

const (
	FormatConsole Format = "console"
	FormatJSON    Format = "json"
)

type Options struct {
	Level  zerolog.Level
	Format Format
	Color  bool
	// Caller adds a "caller" field naming the amps source line that logged.
	Caller bool
}

func ParseFormat(s string) (Format, error) {
	switch Format(strings.ToLower(s)) {
	case FormatConsole:
		return FormatConsole, nil
	case FormatJSON:
		return FormatJSON, nil
	}
	return "", errors.Errorf("unknown log format %q", s)
}

// New returns a logger writing to w. Console output is meant for people
// watching a render, json output for collecting render_id correlated logs.
func New(w io.Writer, opts Options) zerolog.Logger {
	out := w
	if opts.Format != FormatJSON {
		out = zerolog.ConsoleWriter{
			Out:        w,
			NoColor:    !opts.Color,
			TimeFormat: "15:04:05.000",
		}
	}

	logger := zerolog.New(out).Level(opts.Level).With().Timestamp().Logger()
	if opts.Caller {
		logger = logger.Hook(callerHook{colorize: opts.Color && opts.Format != FormatJSON})
	}
	return logger
}

var (
	// modulePath is trimmed from callers so `github.com/walteh/amps/pkg/eval`
	// prints as `pkg/eval`.
	modulePath = strings.TrimSuffix(reflect.TypeOf(Options{}).PkgPath(), "/pkg/logging")
	selfPath   = reflect.TypeOf(Options{}).PkgPath()
)

// callerHook finds the first frame outside zerolog and this package, so it
// needs no knowledge of how deep the event was created.
type callerHook struct {
	colorize bool
}

func (h callerHook) Run(e *zerolog.Event, _ zerolog.Level, _ string) {
	frame, ok := firstForeignFrame()
	if !ok {
		return
	}
	pkg, _ := SplitFuncName(frame.Function)
	e.Str("caller", FormatCaller(pkg, frame.File, frame.Line, h.colorize))
}

func firstForeignFrame() (runtime.Frame, bool) {
	pcs := make([]uintptr, 32)
	n := runtime.Callers(3, pcs)
	frames := runtime.CallersFrames(pcs[:n])

	for {
		frame, more := frames.Next()
		pkg, _ := SplitFuncName(frame.Function)
		if pkg != selfPath && !strings.HasPrefix(pkg, "github.com/rs/zerolog") {
			return frame, frame.Function != ""
		}
		if !more {
			return runtime.Frame{}, false
		}
	}
}

// SplitFuncName splits a fully qualified runtime function name into its
// package path and function part. Methods keep their receiver:
//
//	github.com/walteh/amps/pkg/eval.(*Context).Exec -> github.com/walteh/amps/pkg/eval, (*Context).Exec
func SplitFuncName(name string) (pkg, function string) {
	lastSlash := max(strings.LastIndexByte(name, '/'), 0)

	dot := strings.IndexByte(name[lastSlash:], '.')
	if dot < 0 {
		return name, ""
	}
	return name[:lastSlash+dot], name[lastSlash+dot+1:]
}

// FormatCaller renders a caller as `pkg/eval:context.go:42`. Packages of
// this module lose the module prefix; others are printed in full.
func FormatCaller(pkg, path string, line int, colorize bool) string {
	if rest, ok := strings.CutPrefix(pkg, modulePath+"/"); ok {
		pkg = rest
	} else if pkg == modulePath {
		pkg = "amps"
	}

	file := path[strings.LastIndexByte(path, '/')+1:]

	if !colorize {
		return fmt.Sprintf("%s:%s:%d", pkg, file, line)
	}

	faint := color.New(color.Faint)
	faint.EnableColor()
	bold := color.New(color.Bold)
	bold.EnableColor()
	return faint.Sprint(pkg+":") + bold.Sprint(file) + faint.Sprintf(":%d", line)
}
