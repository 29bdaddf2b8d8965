// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package export

import (
	"fmt"
	"path/filepath"
	"strings"
	"time"

	"github.com/pkg/errors"

	"github.com/jeranaias/chatbot-tui/internal/model"
	"github.com/jeranaias/chatbot-tui/internal/util"
)

// ErrEmptyLog is returned when there is nothing to export.
var ErrEmptyLog = errors.New("conversation has no messages")

// =============================================================================
// EXPORT INTERFACE
// =============================================================================

// Exporter converts a conversation log to a target format.
type Exporter interface {
	// Export converts the log and returns the content.
	Export(log []model.Message) ([]byte, error)

	// FileExtension returns the file extension, e.g. ".md".
	FileExtension() string
}

// =============================================================================
// EXPORT OPTIONS
// =============================================================================

// Options configures export behavior.
type Options struct {
	// Title heads markdown documents.
	Title string

	// IncludeTimestamps adds the time of day to each message.
	IncludeTimestamps bool

	// Now stamps the export; defaults to time.Now.
	Now func() time.Time
}

// DefaultOptions returns default export options.
func DefaultOptions() *Options {
	return &Options{
		Title:             "AI Chatbot Assistant conversation",
		IncludeTimestamps: true,
		Now:               time.Now,
	}
}

func (o *Options) now() time.Time {
	if o.Now == nil {
		return time.Now()
	}
	return o.Now()
}

// ForFormat returns the exporter for a format name.
func ForFormat(format string, opts *Options) (Exporter, error) {
	switch strings.ToLower(strings.TrimSpace(format)) {
	case "markdown", "md":
		return NewMarkdownExporter(opts), nil
	case "json":
		return NewJSONExporter(), nil
	default:
		return nil, errors.Errorf("unsupported export format: %s", format)
	}
}

// =============================================================================
// FILE OUTPUT
// =============================================================================

// DefaultFilename names an export made at t, e.g. conversation_20250102_150405.md.
func DefaultFilename(exp Exporter, t time.Time) string {
	return fmt.Sprintf("conversation_%s%s", t.Format("20060102_150405"), exp.FileExtension())
}

// ToFile exports log to path, or to DefaultFilename inside dir when path is
// a directory name ending in a separator or empty. It returns the written path.
func ToFile(log []model.Message, exp Exporter, path string, now time.Time) (string, error) {
	content, err := exp.Export(log)
	if err != nil {
		return "", errors.Wrap(err, "export failed")
	}

	if path == "" || strings.HasSuffix(path, string(filepath.Separator)) {
		path = filepath.Join(path, DefaultFilename(exp, now))
	}
	if err := util.AtomicWriteFile(path, content, 0644); err != nil {
		return "", errors.Wrap(err, "write file")
	}
	return path, nil
}
