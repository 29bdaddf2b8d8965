// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package cli

import (
	tea "github.com/charmbracelet/bubbletea"
	"github.com/pkg/errors"
	"github.com/spf13/cobra"

	"github.com/jeranaias/chatbot-tui/internal/storage"
	"github.com/jeranaias/chatbot-tui/internal/ui/chat"
)

func newTUICmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "tui",
		Short: "Start the interactive chat (default)",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return a.runTUI(cmd)
		},
	}
}

// runTUI opens the conversation and runs the bubbletea chat view until the
// user quits.
func (a *app) runTUI(cmd *cobra.Command) error {
	a.openConversation(cmd.Context(), cmd.ErrOrStderr())

	m := chat.New(chat.Options{
		Client:      a.client,
		Store:       a.store,
		Theme:       a.cfg.UI.Theme,
		Markdown:    a.cfg.UI.Markdown,
		Endpoint:    a.cfg.Endpoint.URL,
		StorageDesc: storage.Describe(a.cfg),
		Logger:      a.logger,
	})
	defer m.Close()

	a.logger.Info().
		Str("endpoint", a.cfg.Endpoint.URL).
		Int("messages", a.store.Len()).
		Msg("starting chat view")

	p := tea.NewProgram(m,
		tea.WithAltScreen(),
		tea.WithContext(cmd.Context()),
		tea.WithInput(cmd.InOrStdin()),
		tea.WithOutput(cmd.OutOrStdout()),
	)
	if _, err := p.Run(); err != nil {
		if errors.Is(err, tea.ErrProgramKilled) {
			return nil
		}
		return errors.Wrap(err, "run chat view")
	}
	return nil
}
