// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package cli

import (
	"fmt"
	"io"
	"strings"
	"time"
	"unicode/utf8"

	"github.com/charmbracelet/glamour"
	"github.com/pkg/errors"
	"github.com/spf13/cobra"

	"github.com/jeranaias/chatbot-tui/internal/chatclient"
	"github.com/jeranaias/chatbot-tui/internal/model"
)

// askData is the payload of "ask --json".
type askData struct {
	Question  string `json:"question"`
	Reply     string `json:"reply"`
	Fallback  bool   `json:"fallback"`
	RequestID string `json:"request_id,omitempty"`
	Duration  string `json:"duration"`
}

func newAskCmd(a *app) *cobra.Command {
	var jsonOut bool
	cmd := &cobra.Command{
		Use:   "ask [message...]",
		Short: "Send one message and print the reply",
		Long: `Send one message and print the reply.

The message is read from the arguments, or from stdin when stdin is not
a terminal. Both the message and the reply are added to the stored
conversation.`,
		Example: `  chatbot ask "What can you do?"
  echo "hello" | chatbot ask
  chatbot ask --json "hi"`,
		RunE: func(cmd *cobra.Command, args []string) error {
			text, err := askInput(args, cmd.InOrStdin())
			if err != nil {
				return err
			}
			return a.runAsk(cmd, text, jsonOut)
		},
	}
	cmd.Flags().BoolVar(&jsonOut, "json", false, "print a JSON response")
	return cmd
}

// askInput returns the message from args, falling back to piped stdin.
func askInput(args []string, stdin io.Reader) (string, error) {
	if len(args) > 0 {
		return strings.Join(args, " "), nil
	}
	if IsTTY() {
		return "", errors.New("no message given")
	}
	return readMessage(stdin)
}

// maxStdinBytes is the most bytes MaxInputChars characters can take.
const maxStdinBytes = chatclient.MaxInputChars * utf8.UTFMax

// readMessage reads one message from r, rejecting input longer than
// chatclient.MaxInputChars characters.
func readMessage(r io.Reader) (string, error) {
	data, err := io.ReadAll(io.LimitReader(r, maxStdinBytes+1))
	if err != nil {
		return "", errors.Wrap(err, "read stdin")
	}
	if len(data) > maxStdinBytes || utf8.RuneCount(data) > chatclient.MaxInputChars {
		return "", errors.Errorf("message is longer than %d characters", chatclient.MaxInputChars)
	}
	return string(data), nil
}

func (a *app) runAsk(cmd *cobra.Command, text string, jsonOut bool) error {
	a.openConversation(cmd.Context(), cmd.ErrOrStderr())
	out := cmd.OutOrStdout()

	outcome := a.client.Send(cmd.Context(), text)
	if !outcome.Accepted {
		if jsonOut {
			_ = NewJSONErrorResponse("ask", nil, outcome.Rejected).Write(out)
		}
		return outcome.Rejected
	}

	if jsonOut {
		data := askData{
			Question:  outcome.User.Text(),
			Reply:     outcome.Reply.Text(),
			Fallback:  !outcome.Result.OK(),
			RequestID: outcome.Result.RequestID,
			Duration:  outcome.Result.Duration.Round(time.Millisecond).String(),
		}
		var resp *JSONResponse
		if outcome.Result.OK() {
			resp = NewJSONResponse("ask", data)
		} else {
			resp = NewJSONErrorResponse("ask", data, outcome.Result.Err)
		}
		if err := resp.Write(out); err != nil {
			return err
		}
	} else {
		displayReply(out, outcome.Reply)
	}

	if !outcome.Result.OK() {
		return &exitError{Code: ExitNetworkError, Err: outcome.Result.Err}
	}
	return nil
}

// displayReply prints a bot reply. Markdown is rendered only for terminals
// so that piped output stays plain.
func displayReply(w io.Writer, reply model.Message) {
	if reply.IsFallback() {
		fmt.Fprintln(w, errorStyle.Render(reply.Text()))
		return
	}
	if isTerminalWriter(w) {
		fmt.Fprint(w, renderMarkdown(reply.Text()))
		return
	}
	fmt.Fprintln(w, reply.Text())
}

// renderMarkdown renders markdown for terminal display. The original text is
// returned when rendering fails.
func renderMarkdown(content string) string {
	r, err := glamour.NewTermRenderer(
		glamour.WithAutoStyle(),
		glamour.WithWordWrap(GetTerminalWidth()-4),
	)
	if err != nil {
		return content + "\n"
	}
	rendered, err := r.Render(content)
	if err != nil {
		return content + "\n"
	}
	return rendered
}
