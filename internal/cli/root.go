// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package cli

import (
	"context"
	"fmt"
	"io"
	"os"

	"github.com/pkg/errors"
	"github.com/rs/zerolog"
	"github.com/spf13/cobra"

	"github.com/jeranaias/chatbot-tui/internal/chatclient"
	"github.com/jeranaias/chatbot-tui/internal/config"
	"github.com/jeranaias/chatbot-tui/internal/conversation"
	"github.com/jeranaias/chatbot-tui/internal/logging"
	"github.com/jeranaias/chatbot-tui/internal/storage"
)

// Version information (set at build time)
var (
	Version   = "dev"
	GitCommit = "unknown"
	BuildDate = "unknown"
)

// annotationSetup marks commands that load configuration themselves.
const (
	annotationSetup = "setup"
	setupNone       = "none"
)

// globalFlags are the persistent flags shared by every command.
type globalFlags struct {
	configPath string
	endpoint   string
	store      string
	ephemeral  bool
	logLevel   string
	verbose    bool
}

// app holds the state shared by the commands of one invocation.
type app struct {
	flags globalFlags

	cfg       *config.Config
	logger    zerolog.Logger
	logCloser io.Closer

	kv         storage.KV
	transcript *storage.Transcript
	store      *conversation.Store
	transport  *chatclient.HTTPTransport
	client     *chatclient.Client
}

// Execute runs the command line and returns the process exit code.
func Execute() int {
	return run(context.Background(), os.Args[1:], os.Stdout, os.Stderr)
}

func run(ctx context.Context, args []string, stdout, stderr io.Writer) int {
	a := &app{logger: zerolog.Nop()}
	defer a.close()

	root := newRootCmd(a)
	root.SetArgs(args)
	root.SetOut(stdout)
	root.SetErr(stderr)

	err := root.ExecuteContext(ctx)
	if err == nil {
		return ExitSuccess
	}

	var exitErr *exitError
	if errors.As(err, &exitErr) {
		return exitErr.Code
	}
	a.logger.Error().Err(err).Msg("command failed")
	fmt.Fprintln(stderr, errorStyle.Render("Error:"), err)

	var cfgErr *configError
	if errors.As(err, &cfgErr) {
		return ExitConfigError
	}
	return ExitGeneralError
}

func newRootCmd(a *app) *cobra.Command {
	root := &cobra.Command{
		Use:           "chatbot",
		Short:         "Terminal client for the AI Chatbot Assistant",
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			if cmd.Annotations[annotationSetup] == setupNone {
				return nil
			}
			return a.setup(cmd)
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			return a.runTUI(cmd)
		},
	}

	pf := root.PersistentFlags()
	pf.StringVar(&a.flags.configPath, "config", "", "config file (default ~/.chatbot/config.toml)")
	pf.StringVar(&a.flags.endpoint, "endpoint", "", "chat endpoint URL")
	pf.StringVar(&a.flags.store, "store", "", "storage backend: file, sqlite, redis, memory")
	pf.BoolVar(&a.flags.ephemeral, "ephemeral", false, "keep the conversation in memory only")
	pf.StringVar(&a.flags.logLevel, "log-level", "", "log level: trace, debug, info, warn, error")
	pf.BoolVarP(&a.flags.verbose, "verbose", "v", false, "also print logs to stderr (line-mode commands)")

	root.AddCommand(
		newTUICmd(a),
		newAskCmd(a),
		newChatCmd(a),
		newHistoryCmd(a),
		newClearCmd(a),
		newExportCmd(a),
		newConfigCmd(a),
		newVersionCmd(),
	)
	return root
}

// =============================================================================
// SETUP
// =============================================================================

// setup loads configuration and starts logging. The conversation is opened
// lazily by the commands that need it.
func (a *app) setup(cmd *cobra.Command) error {
	cfg, err := a.loadConfig()
	if err != nil {
		return err
	}
	a.cfg = cfg

	// The TUI owns the terminal, so it never logs to stderr.
	interactive := isInteractiveUI(cmd)
	logCfg := cfg
	if interactive {
		logCfg = cfg.Clone()
		logCfg.Log.Console = false
	}
	logger, closer, err := logging.Setup(logCfg, logging.Options{
		Console: a.flags.verbose && !interactive,
		Stderr:  cmd.ErrOrStderr(),
	})
	if err != nil {
		closer = nil
		if interactive {
			logger = zerolog.Nop()
		} else {
			fmt.Fprintln(cmd.ErrOrStderr(), dimStyle.Render("log file unavailable, warnings go to stderr: "+err.Error()))
			logger = logging.New(cmd.ErrOrStderr(), zerolog.WarnLevel)
		}
	}
	a.logger = logger.With().Str("cmd", cmd.Name()).Logger()
	a.logCloser = closer
	return nil
}

// loadConfig reads the config file and applies the global flags.
func (a *app) loadConfig() (*config.Config, error) {
	cfg, err := config.Load(a.flags.configPath)
	if err != nil {
		return nil, &configError{Err: err}
	}

	if a.flags.endpoint != "" {
		cfg.Endpoint.URL = a.flags.endpoint
	}
	if a.flags.store != "" {
		cfg.Storage.Backend = a.flags.store
	}
	if a.flags.ephemeral {
		cfg.Storage.Backend = config.BackendMemory
	}
	if a.flags.logLevel != "" {
		cfg.Log.Level = a.flags.logLevel
	}
	if err := cfg.Validate(); err != nil {
		return nil, &configError{Err: errors.Wrap(err, "invalid flags")}
	}
	return cfg, nil
}

// openConversation opens storage, hydrates the store and builds the client.
// A storage backend that cannot be opened is replaced by memory storage.
func (a *app) openConversation(ctx context.Context, stderr io.Writer) {
	kv, err := storage.Open(ctx, a.cfg)
	if err != nil {
		a.logger.Error().Err(err).Str("backend", a.cfg.Storage.Backend).Msg("storage unavailable, using memory")
		fmt.Fprintln(stderr, dimStyle.Render("storage unavailable ("+err.Error()+"), this conversation will not be saved"))
		kv = storage.NewMemoryKV()
	}
	a.kv = kv
	a.transcript = storage.NewTranscript(kv, a.cfg.Storage.Key, storage.WithLogger(a.logger))

	a.store = conversation.New(a.transcript, a.logger)
	a.store.Hydrate(ctx)

	a.transport = chatclient.NewHTTPTransport(a.cfg.Endpoint.URL, a.cfg.Endpoint.Timeout(),
		chatclient.WithTransportLogger(a.logger))
	a.client = chatclient.New(a.store, a.transport, chatclient.WithLogger(a.logger))
}

// close releases storage and flushes the log.
func (a *app) close() {
	if a.kv != nil {
		if err := a.kv.Close(); err != nil {
			a.logger.Warn().Err(err).Msg("failed to close storage")
		}
		a.kv = nil
	}
	if a.logCloser != nil {
		_ = a.logCloser.Close()
		a.logCloser = nil
	}
}

func isInteractiveUI(cmd *cobra.Command) bool {
	return !cmd.HasParent() || cmd.Name() == "tui"
}
