// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package styles provides the visual styling system for chatbot-tui.
//
// Colors are defined as lipgloss.AdaptiveColor pairs. A Theme resolves each
// pair to its light or dark side, which lets the user flip the theme at
// runtime (Ctrl+T) regardless of the detected terminal background.
//
//	theme := styles.NewTheme(cfg.UI.Theme) // "auto", "light" or "dark"
//	theme = theme.Toggled()
package styles
