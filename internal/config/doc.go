// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package config provides configuration loading and management for chatbot-tui.
//
// # Example config.toml
//
//	[endpoint]
//	url = "http://localhost:8000/chat"
//	timeout_secs = 60
//
//	[storage]
//	backend = "file"   # file, sqlite, redis, memory
//	key = "chatMessages"
//
//	[ui]
//	theme = "auto"     # auto, light, dark
//	markdown = true
//
//	[log]
//	level = "info"
//
// # Usage
//
//	cfg, err := config.Load("")
//	if err != nil {
//	    return err
//	}
//	fmt.Println(cfg.Endpoint.URL)
package config
