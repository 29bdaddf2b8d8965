// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package cli

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"time"

	"github.com/peterh/liner"
	"github.com/pkg/errors"
	"github.com/spf13/cobra"

	"github.com/jeranaias/chatbot-tui/internal/chatclient"
	"github.com/jeranaias/chatbot-tui/internal/config"
	"github.com/jeranaias/chatbot-tui/internal/ui/styles"
	"github.com/jeranaias/chatbot-tui/internal/util"
)

const userPrompt = "you> "

// lineReader reads one line of input after showing a prompt.
type lineReader interface {
	Prompt(prompt string) (string, error)
}

// =============================================================================
// LINE EDITOR
// =============================================================================

// lineEditor provides input history and line editing for line-mode chat.
type lineEditor struct {
	line        *liner.State
	historyFile string
}

func newLineEditor() *lineEditor {
	line := liner.NewLiner()
	line.SetCtrlCAborts(true)

	dir, err := config.ConfigDir()
	if err != nil {
		dir = os.TempDir()
	}
	e := &lineEditor{
		line:        line,
		historyFile: filepath.Join(dir, "chat_history"),
	}
	if f, err := os.Open(e.historyFile); err == nil {
		_, _ = e.line.ReadHistory(f)
		f.Close()
	}
	return e
}

// Prompt reads a line and records non-empty input in the history.
func (e *lineEditor) Prompt(prompt string) (string, error) {
	input, err := e.line.Prompt(prompt)
	if err != nil {
		return "", err
	}
	if strings.TrimSpace(input) != "" {
		e.line.AppendHistory(input)
	}
	return input, nil
}

// Close saves the history and restores the terminal.
func (e *lineEditor) Close() {
	if err := os.MkdirAll(filepath.Dir(e.historyFile), util.DataDirPerm); err == nil {
		if f, err := os.OpenFile(e.historyFile, os.O_CREATE|os.O_WRONLY|os.O_TRUNC, 0600); err == nil {
			_, _ = e.line.WriteHistory(f)
			f.Close()
		}
	}
	e.line.Close()
}

// =============================================================================
// COMMAND
// =============================================================================

func newChatCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "chat",
		Short: "Line-mode chat with input history",
		Long: `Line-mode chat with input history.

Commands:
  /clear     clear the conversation
  /history   print the conversation
  /quit      leave (also /exit, Ctrl+C, Ctrl+D)`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			a.openConversation(cmd.Context(), cmd.ErrOrStderr())

			editor := newLineEditor()
			defer editor.Close()
			return a.repl(cmd, editor)
		},
	}
}

// repl reads lines from in until the user quits.
func (a *app) repl(cmd *cobra.Command, in lineReader) error {
	out := cmd.OutOrStdout()

	fmt.Fprintln(out, promptStyle.Render("Chatting with "+a.cfg.Endpoint.URL))
	fmt.Fprintln(out, dimStyle.Render("Type /quit to leave, /clear to start over."))
	if n := a.store.Len(); n > 0 {
		fmt.Fprintln(out, dimStyle.Render(fmt.Sprintf("%d earlier messages, /history to show them.", n)))
	}

	for {
		input, err := in.Prompt(userPrompt)
		if err != nil {
			if errors.Is(err, liner.ErrPromptAborted) || errors.Is(err, io.EOF) {
				fmt.Fprintln(out)
				return nil
			}
			return errors.Wrap(err, "read input")
		}

		switch strings.ToLower(strings.TrimSpace(input)) {
		case "/quit", "/exit":
			return nil
		case "/clear":
			a.store.Clear()
			fmt.Fprintln(out, successStyle.Render("Conversation cleared"))
			continue
		case "/history":
			printTranscript(out, a.store.Snapshot(), 0)
			continue
		}

		stop := startWaitIndicator(out, isTerminalWriter(out))
		outcome := a.client.Send(cmd.Context(), input)
		stop()
		if !outcome.Accepted {
			if errors.Is(outcome.Rejected, chatclient.ErrEmptyInput) {
				continue
			}
			fmt.Fprintln(out, errorStyle.Render(outcome.Rejected.Error()))
			continue
		}
		fmt.Fprint(out, botStyle.Render("bot> "))
		displayReply(out, outcome.Reply)
	}
}

// =============================================================================
// WAIT INDICATOR
// =============================================================================

// startWaitIndicator animates a spinner on the current line of w until the
// returned stop function is called. stop erases the line. When enabled is
// false nothing is written.
func startWaitIndicator(w io.Writer, enabled bool) (stop func()) {
	if !enabled {
		return func() {}
	}

	frames := styles.LineSpinner
	done := make(chan struct{})
	var wg sync.WaitGroup
	wg.Add(1)
	go func() {
		defer wg.Done()
		ticker := time.NewTicker(frames.Duration())
		defer ticker.Stop()
		for i := 0; ; i++ {
			frame := frames.Frames[i%len(frames.Frames)]
			fmt.Fprint(w, "\r"+dimStyle.Render(frame+" thinking"))
			select {
			case <-done:
				fmt.Fprint(w, "\r\033[K")
				return
			case <-ticker.C:
			}
		}
	}()

	var once sync.Once
	return func() {
		once.Do(func() {
			close(done)
			wg.Wait()
		})
	}
}
