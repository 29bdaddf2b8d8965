// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package cli

import (
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/jeranaias/chatbot-tui/internal/export"
)

func newExportCmd(a *app) *cobra.Command {
	var (
		format string
		output string
		noTime bool
	)
	cmd := &cobra.Command{
		Use:   "export",
		Short: "Export the stored conversation as Markdown or JSON",
		Example: `  chatbot export                      # markdown to stdout
  chatbot export --format json -o chat.json
  chatbot export -o exports/          # timestamped file in exports/`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			opts := export.DefaultOptions()
			opts.IncludeTimestamps = !noTime
			exp, err := export.ForFormat(format, opts)
			if err != nil {
				return err
			}

			a.openConversation(cmd.Context(), cmd.ErrOrStderr())
			log := a.store.Snapshot()

			if output == "" || output == "-" {
				data, err := exp.Export(log)
				if err != nil {
					return err
				}
				_, err = cmd.OutOrStdout().Write(data)
				return err
			}

			path, err := export.ToFile(log, exp, output, time.Now())
			if err != nil {
				return err
			}
			a.logger.Info().Str("path", path).Int("messages", len(log)).Msg("conversation exported")
			fmt.Fprintln(cmd.OutOrStdout(), successStyle.Render("Exported to "+path))
			return nil
		},
	}
	cmd.Flags().StringVarP(&format, "format", "f", "markdown", "markdown or json")
	cmd.Flags().StringVarP(&output, "output", "o", "", "output file, or a directory ending in /")
	cmd.Flags().BoolVar(&noTime, "no-timestamps", false, "omit message times (markdown)")
	return cmd
}
