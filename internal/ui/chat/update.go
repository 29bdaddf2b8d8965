// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package chat

import (
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/pkg/errors"

	"github.com/jeranaias/chatbot-tui/internal/chatclient"
)

// Update implements tea.Model.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		return m.handleResize(msg)

	case tea.KeyMsg:
		return m.handleKey(msg)

	case ResultMsg:
		return m.handleResult(msg)

	case CopiedMsg:
		if msg.Err != nil {
			m.logger.Warn().Err(msg.Err).Msg("clipboard copy failed")
			return m, m.showToast(toastError, "Copy failed")
		}
		return m, m.showToast(toastSuccess, "Copied reply to clipboard")

	case toastExpiredMsg:
		m.dismissToast(msg)
		return m, nil

	case spinner.TickMsg:
		if !m.pending() {
			return m, nil
		}
		var cmd tea.Cmd
		m.spinner, cmd = m.spinner.Update(msg)
		m.updateViewport()
		return m, cmd
	}

	var cmd tea.Cmd
	m.input, cmd = m.input.Update(msg)
	return m, cmd
}

// =============================================================================
// MESSAGE HANDLERS
// =============================================================================

func (m Model) handleResize(msg tea.WindowSizeMsg) (tea.Model, tea.Cmd) {
	m.width = msg.Width
	m.height = msg.Height
	m.theme.SetSize(msg.Width, msg.Height)

	vpHeight := msg.Height - headerHeight - inputAreaHeight - statusBarHeight
	if vpHeight < 1 {
		vpHeight = 1
	}
	m.viewport.Width = msg.Width
	m.viewport.Height = vpHeight
	m.input.Width = max(msg.Width-6, 10)
	m.ready = true

	m.updateViewport()
	return m, nil
}

func (m Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, m.keyMap.Quit):
		return m, tea.Quit

	case key.Matches(msg, m.keyMap.Submit):
		return m.submit()

	case key.Matches(msg, m.keyMap.Clear):
		m.store.Clear()
		m.updateViewport()
		return m, m.showToast(toastSuccess, "Conversation cleared")

	case key.Matches(msg, m.keyMap.ToggleTheme):
		m.theme = m.theme.Toggled()
		m.applyTheme()
		m.updateViewport()
		return m, m.showToast(toastStatus, "Theme: "+m.theme.Name())

	case key.Matches(msg, m.keyMap.Copy):
		last, ok := m.store.LastBot()
		if !ok {
			return m, m.showToast(toastStatus, "No reply to copy")
		}
		return m, copyCmd(last.Text())

	case key.Matches(msg, m.keyMap.PageUp), key.Matches(msg, m.keyMap.PageDown):
		var cmd tea.Cmd
		m.viewport, cmd = m.viewport.Update(msg)
		return m, cmd
	}

	var cmd tea.Cmd
	m.input, cmd = m.input.Update(msg)
	return m, cmd
}

// submit sends the input line. Rejected sends leave everything as is.
func (m Model) submit() (tea.Model, tea.Cmd) {
	req, err := m.client.Begin(m.input.Value())
	if err != nil {
		if errors.Is(err, chatclient.ErrRequestPending) {
			m.logger.Debug().Msg("send ignored while waiting for a reply")
		}
		return m, nil
	}

	m.input.Reset()
	m.toast = toast{}
	m.updateViewport()
	return m, tea.Batch(exchangeCmd(m.client, req), m.spinner.Tick)
}

func (m Model) handleResult(msg ResultMsg) (tea.Model, tea.Cmd) {
	if _, ok := m.client.Settle(msg.Result); !ok {
		return m, nil
	}
	m.updateViewport()
	return m, nil
}
