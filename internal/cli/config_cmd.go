// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package cli

import (
	"context"
	"fmt"
	"os"
	"time"

	"github.com/pkg/errors"
	"github.com/spf13/cobra"

	"github.com/jeranaias/chatbot-tui/internal/chatclient"
	"github.com/jeranaias/chatbot-tui/internal/config"
	"github.com/jeranaias/chatbot-tui/internal/storage"
)

// healthTimeout bounds the endpoint probe of "config check".
const healthTimeout = 5 * time.Second

func newConfigCmd(a *app) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "config",
		Short: "Inspect or create the configuration",
	}
	cmd.AddCommand(
		newConfigShowCmd(a),
		newConfigPathCmd(a),
		newConfigInitCmd(a),
		newConfigCheckCmd(a),
	)
	return cmd
}

func newConfigShowCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "show",
		Short: "Print the effective configuration",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			fmt.Fprint(cmd.OutOrStdout(), a.cfg.String())
			return nil
		},
	}
}

// configFilePath returns --config or the default TOML location.
func (a *app) configFilePath() (string, error) {
	if a.flags.configPath != "" {
		return a.flags.configPath, nil
	}
	return config.ConfigPathTOML()
}

func newConfigPathCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:         "path",
		Short:       "Print the config file location",
		Args:        cobra.NoArgs,
		Annotations: map[string]string{annotationSetup: setupNone},
		RunE: func(cmd *cobra.Command, args []string) error {
			path, err := a.configFilePath()
			if err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), path)
			return nil
		},
	}
}

func newConfigInitCmd(a *app) *cobra.Command {
	var force bool
	cmd := &cobra.Command{
		Use:         "init",
		Short:       "Write a config file with default values",
		Args:        cobra.NoArgs,
		Annotations: map[string]string{annotationSetup: setupNone},
		RunE: func(cmd *cobra.Command, args []string) error {
			path, err := a.configFilePath()
			if err != nil {
				return err
			}
			if _, err := os.Stat(path); err == nil && !force {
				return errors.Errorf("%s already exists (use --force to overwrite)", path)
			}
			if err := config.SaveTOML(config.Default(), path); err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), successStyle.Render("Wrote "+path))
			return nil
		},
	}
	cmd.Flags().BoolVar(&force, "force", false, "overwrite an existing file")
	return cmd
}

func newConfigCheckCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "check",
		Short: "Check storage and the chat endpoint",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			out := cmd.OutOrStdout()
			failed := 0

			report := func(name string, err error) {
				if err != nil {
					failed++
					fmt.Fprintf(out, "%s %s: %v\n", errorStyle.Render("✗"), name, err)
					return
				}
				fmt.Fprintf(out, "%s %s\n", successStyle.Render("✓"), name)
			}

			report("config", nil)

			kv, err := storage.Open(cmd.Context(), a.cfg)
			if err == nil {
				_, err = storage.NewTranscript(kv, a.cfg.Storage.Key, storage.WithLogger(a.logger)).LoadStrict(cmd.Context())
				if errors.Is(err, storage.ErrNotFound) {
					err = nil
				}
				kv.Close()
			}
			report("storage "+storage.Describe(a.cfg), err)

			ctx, cancel := context.WithTimeout(cmd.Context(), healthTimeout)
			defer cancel()
			transport := chatclient.NewHTTPTransport(a.cfg.Endpoint.URL, healthTimeout,
				chatclient.WithTransportLogger(a.logger))
			report("endpoint "+a.cfg.Endpoint.URL, transport.HealthCheck(ctx))

			if failed > 0 {
				return &exitError{Code: ExitNetworkError, Err: errors.Errorf("%d checks failed", failed)}
			}
			return nil
		},
	}
}
