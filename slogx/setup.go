// Package slogx provides [log/slog] setup and small handler combinators.
// It keeps logging configuration in one place: pretty, colorized output on a terminal,
// structured JSON everywhere else.
package slogx

import (
	"io"
	"log/slog"
	"os"

	"github.com/lmittmann/tint"
	"github.com/mattn/go-isatty"
)

type config struct {
	out        io.Writer
	level      slog.Leveler
	json       bool
	forceJSON  bool
	setDefault bool
}

// Option customizes [Configure].
type Option func(conf *config)

// Output directs log output to w instead of stderr.
func Output(w io.Writer) Option {
	return func(conf *config) {
		if w != nil {
			conf.out = w
		}
	}
}

// Level sets the minimum level, defaulting to [slog.LevelInfo].
func Level(level slog.Leveler) Option {
	return func(conf *config) {
		if level != nil {
			conf.level = level
		}
	}
}

// JSON forces structured JSON output even when attached to a terminal.
func JSON() Option {
	return func(conf *config) {
		conf.forceJSON = true
	}
}

// SetDefault installs the configured logger as the process default with [slog.SetDefault].
func SetDefault() Option {
	return func(conf *config) {
		conf.setDefault = true
	}
}

func isTerminal(w io.Writer) bool {
	file, ok := w.(*os.File)
	return ok && isatty.IsTerminal(file.Fd())
}

// Configure builds a [slog.Logger] with sensible defaults: tinted, human-readable output
// when writing to a terminal, JSON otherwise.
func Configure(opts ...Option) *slog.Logger {
	conf := config{
		out:   os.Stderr,
		level: slog.LevelInfo,
	}
	for _, opt := range opts {
		opt(&conf)
	}
	var handler slog.Handler
	if !conf.forceJSON && isTerminal(conf.out) {
		handler = tint.NewHandler(conf.out, &tint.Options{Level: conf.level})
	} else {
		handler = slog.NewJSONHandler(conf.out, &slog.HandlerOptions{Level: conf.level})
	}
	logger := slog.New(handler)
	if conf.setDefault {
		slog.SetDefault(logger)
	}
	return logger
}
