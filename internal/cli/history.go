// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package cli

import (
	"encoding/json"
	"fmt"
	"io"

	"github.com/spf13/cobra"

	"github.com/jeranaias/chatbot-tui/internal/model"
	"github.com/jeranaias/chatbot-tui/internal/storage"
	"github.com/jeranaias/chatbot-tui/internal/util"
)

func newHistoryCmd(a *app) *cobra.Command {
	var (
		jsonOut bool
		short   bool
	)
	cmd := &cobra.Command{
		Use:   "history",
		Short: "Print the stored conversation",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			a.openConversation(cmd.Context(), cmd.ErrOrStderr())
			log := a.store.Snapshot()
			out := cmd.OutOrStdout()

			if jsonOut {
				data, err := storage.Encode(log)
				if err != nil {
					return err
				}
				return NewJSONResponse("history", json.RawMessage(data)).Write(out)
			}

			width := 0
			if short {
				width = GetTerminalWidth()
			}
			printTranscript(out, log, width)
			return nil
		},
	}
	cmd.Flags().BoolVar(&jsonOut, "json", false, "print the stored log as JSON")
	cmd.Flags().BoolVar(&short, "short", false, "one line per message, cut to the terminal width")
	return cmd
}

// printTranscript prints the log. A positive width prints one line per
// message truncated to that many columns.
func printTranscript(w io.Writer, log []model.Message, width int) {
	if len(log) == 0 {
		fmt.Fprintln(w, dimStyle.Render("No messages yet."))
		return
	}
	for _, msg := range log {
		label := userStyle.Render(msg.Sender().DisplayName())
		if msg.IsBot() {
			label = botStyle.Render(msg.Sender().DisplayName())
		}
		header := dimStyle.Render("["+msg.ClockTime()+"]") + " " + label

		if width > 0 {
			prefix := "[" + msg.ClockTime() + "] " + msg.Sender().DisplayName() + ": "
			room := width - util.StringWidth(prefix)
			fmt.Fprintln(w, header+": "+util.TruncateWidth(util.SingleLine(msg.Text()), room))
			continue
		}
		fmt.Fprintln(w, header)
		fmt.Fprintln(w, msg.Text())
		fmt.Fprintln(w)
	}
}
