// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package logging configures the structured diagnostic log.
//
// The TUI owns the terminal, so records go to a rotating file. CLI commands
// may additionally mirror them to stderr in human-readable form.
package logging

import (
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/pkg/errors"
	"github.com/rs/zerolog"
	"gopkg.in/natefinch/lumberjack.v2"

	"github.com/jeranaias/chatbot-tui/internal/config"
	"github.com/jeranaias/chatbot-tui/internal/util"
)

// Options tweak Setup for a particular command.
type Options struct {
	// Console mirrors records to Stderr in addition to the file.
	Console bool
	// Stderr defaults to os.Stderr.
	Stderr io.Writer
}

// Setup builds a logger from cfg. The returned closer flushes and closes
// the log file and must be called on exit.
func Setup(cfg *config.Config, opts Options) (zerolog.Logger, io.Closer, error) {
	level, err := zerolog.ParseLevel(strings.ToLower(cfg.Log.Level))
	if err != nil {
		return zerolog.Nop(), nopCloser{}, errors.Wrapf(err, "parse log level %q", cfg.Log.Level)
	}

	path, err := cfg.LogPath()
	if err != nil {
		return zerolog.Nop(), nopCloser{}, err
	}
	if err := os.MkdirAll(filepath.Dir(path), util.DataDirPerm); err != nil {
		return zerolog.Nop(), nopCloser{}, errors.Wrap(err, "create log directory")
	}

	file := &lumberjack.Logger{
		Filename:   path,
		MaxSize:    cfg.Log.MaxSizeMB,
		MaxBackups: cfg.Log.MaxBackups,
	}

	var out io.Writer = file
	if opts.Console || cfg.Log.Console {
		stderr := opts.Stderr
		if stderr == nil {
			stderr = os.Stderr
		}
		out = zerolog.MultiLevelWriter(file, zerolog.ConsoleWriter{Out: stderr, TimeFormat: "15:04:05"})
	}

	logger := zerolog.New(out).Level(level).With().Timestamp().Logger()
	return logger, file, nil
}

// New returns a logger writing JSON records to w at the given level. The CLI
// uses it on stderr when the log file cannot be opened.
func New(w io.Writer, level zerolog.Level) zerolog.Logger {
	return zerolog.New(w).Level(level).With().Timestamp().Logger()
}

type nopCloser struct{}

func (nopCloser) Close() error { return nil }
