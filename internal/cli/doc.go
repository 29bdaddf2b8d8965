// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package cli implements the chatbot command line.
//
// # Commands
//
//	chatbot                 interactive chat (same as "chatbot tui")
//	chatbot ask <text...>   send one message and print the reply
//	chatbot chat            line-mode chat with input history
//	chatbot history         print the stored conversation
//	chatbot clear           delete the stored conversation
//	chatbot export          write the conversation as Markdown or JSON
//	chatbot config ...      show, path, init, check
//	chatbot version         print version information
//
// # Global Flags
//
//	--config PATH    config file (default ~/.chatbot/config.toml)
//	--endpoint URL   chat endpoint
//	--store NAME     storage backend: file, sqlite, redis, memory
//	--ephemeral      keep the conversation in memory only
//	--log-level LVL  trace, debug, info, warn, error
//	-v, --verbose    also print logs to stderr (line-mode commands)
package cli
