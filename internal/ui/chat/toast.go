// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package chat

import (
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/jeranaias/chatbot-tui/internal/ui/styles"
)

// =============================================================================
// TOAST TYPES
// =============================================================================

// toastKind selects the color of a status bar toast.
type toastKind int

const (
	toastStatus toastKind = iota
	toastSuccess
	toastError
)

// Auto-dismiss durations. Errors stay longer so they can be read.
const (
	toastDuration      = 4 * time.Second
	errorToastDuration = 8 * time.Second
)

// toast is short-lived feedback shown at the start of the status bar.
type toast struct {
	id   int
	text string
	kind toastKind
}

func (t toast) visible() bool {
	return t.text != ""
}

// toastExpiredMsg dismisses the toast with the given id. A newer toast
// is left alone.
type toastExpiredMsg struct {
	id int
}

// showToast replaces the current toast and schedules its dismissal.
func (m *Model) showToast(kind toastKind, text string) tea.Cmd {
	m.toastSeq++
	m.toast = toast{id: m.toastSeq, text: text, kind: kind}

	d := toastDuration
	if kind == toastError {
		d = errorToastDuration
	}
	id := m.toastSeq
	return tea.Tick(d, func(time.Time) tea.Msg {
		return toastExpiredMsg{id: id}
	})
}

// dismissToast handles an expiry tick.
func (m *Model) dismissToast(msg toastExpiredMsg) {
	if msg.id == m.toast.id {
		m.toast = toast{}
	}
}

// toastStyle returns the style for a toast kind.
func toastStyle(theme *styles.Theme, kind toastKind) lipgloss.Style {
	switch kind {
	case toastError:
		return theme.StatusError
	case toastSuccess:
		return theme.StatusOK
	default:
		return theme.StatusInfo
	}
}
