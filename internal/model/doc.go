// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package model contains the data structures for the conversation log.
//
// # Key Types
//
//   - Message: immutable log entry with text, sender and timestamp
//   - Sender: message author enumeration (user, bot)
//
// # Usage
//
//	msg := model.NewUserMessage("Hello", time.Now())
//	fmt.Println(msg.Sender().DisplayName(), msg.Text())
//
// A failed request is represented by the fixed fallback reply:
//
//	reply := model.NewFallbackMessage(time.Now())
package model
