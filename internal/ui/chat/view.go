// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package chat

import (
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/jeranaias/chatbot-tui/internal/model"
)

// thinkingText is shown next to the spinner while a reply is pending.
const thinkingText = "Thinking"

// View implements tea.Model.
func (m Model) View() string {
	if !m.ready {
		return "Loading..."
	}
	return lipgloss.JoinVertical(lipgloss.Left,
		m.renderHeader(),
		m.viewport.View(),
		m.renderInput(),
		m.renderStatusBar(),
	)
}

// =============================================================================
// HEADER
// =============================================================================

func (m Model) renderHeader() string {
	title := m.theme.HeaderTitle.Render("AI Chatbot Assistant")
	subtitle := m.theme.HeaderSubtitle.Render("  " + m.endpoint)

	width := max(m.width-2, 1)
	content := lipgloss.NewStyle().MaxWidth(max(width-4, 1)).Render(title + subtitle)
	return m.theme.Header.Width(width).Render(content)
}

// =============================================================================
// MESSAGES
// =============================================================================

// renderMessages renders the whole log, or the welcome panel when empty.
func (m Model) renderMessages() string {
	messages := m.log.get()
	width := max(m.width, 20)

	var parts []string
	if len(messages) == 0 {
		parts = append(parts, m.renderWelcome(width))
	}
	for _, msg := range messages {
		parts = append(parts, m.renderMessage(msg, width))
	}
	if m.pending() {
		parts = append(parts, m.renderThinking())
	}
	return strings.Join(parts, "\n\n")
}

func (m Model) renderWelcome(width int) string {
	box := m.theme.WelcomeBox.Render(
		m.theme.WelcomeTitle.Render(model.WelcomeTitle) + "\n\n" +
			m.theme.WelcomeHint.Render(model.WelcomeHint),
	)
	return lipgloss.PlaceHorizontal(width, lipgloss.Center, box)
}

// renderMessage renders one bubble with its sender label and time of day.
// User messages are right-aligned, bot messages left-aligned.
func (m Model) renderMessage(msg model.Message, width int) string {
	maxWidth := m.theme.BubbleWidth()
	if maxWidth <= 0 {
		maxWidth = width * 2 / 3
	}

	var label, body string
	var bubble lipgloss.Style
	switch {
	case msg.IsUser():
		label = m.theme.UserLabel.Render(msg.Sender().DisplayName())
		bubble = m.theme.UserBubble
		body = msg.Text()
	case msg.IsFallback():
		label = m.theme.BotLabel.Render(msg.Sender().DisplayName())
		bubble = m.theme.FallbackBubble
		body = msg.Text()
	default:
		label = m.theme.BotLabel.Render(msg.Sender().DisplayName())
		bubble = m.theme.BotBubble
		body = msg.Text()
		if m.markdown {
			body = m.md.render(body, m.theme.GlamourStyle(), max(maxWidth-4, 10))
		}
	}

	// Width includes the horizontal padding but not the border.
	contentWidth := min(lipgloss.Width(body)+4, maxWidth)
	block := lipgloss.JoinVertical(lipgloss.Left,
		label,
		bubble.Width(contentWidth).Render(body),
		m.theme.Timestamp.Render(msg.ClockTime()),
	)

	if msg.IsUser() {
		return lipgloss.PlaceHorizontal(width, lipgloss.Right, block)
	}
	return block
}

func (m Model) renderThinking() string {
	return m.spinner.View() + " " + m.theme.ThinkingText.Render(thinkingText)
}

// =============================================================================
// INPUT AND STATUS BAR
// =============================================================================

func (m Model) renderInput() string {
	return m.theme.InputContainer.Width(max(m.width, 1)).Render(m.input.View())
}

func (m Model) renderStatusBar() string {
	var parts []string
	if m.toast.visible() {
		parts = append(parts, toastStyle(m.theme, m.toast.kind).Render(m.toast.text))
	}
	for _, b := range m.keyMap.ShortHelp() {
		h := b.Help()
		parts = append(parts, m.theme.ShortcutKey.Render(h.Key)+" "+m.theme.ShortcutDesc.Render(h.Desc))
	}
	if m.storageDesc != "" {
		parts = append(parts, m.theme.ShortcutDesc.Render(m.storageDesc))
	}

	line := strings.Join(parts, "  ")
	return m.theme.StatusBar.MaxWidth(max(m.width, 1)).Render(line)
}
