// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package cli

import (
	"fmt"

	"github.com/spf13/cobra"
)

func newClearCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "clear",
		Short: "Delete the stored conversation",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			a.openConversation(cmd.Context(), cmd.ErrOrStderr())
			n := a.store.Len()
			a.store.Clear()
			fmt.Fprintln(cmd.OutOrStdout(), successStyle.Render(fmt.Sprintf("Cleared %d messages", n)))
			return nil
		},
	}
}
