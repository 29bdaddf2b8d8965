// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package styles

import (
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/muesli/termenv"
)

// Theme names accepted by ParseThemeName and the ui.theme setting.
const (
	ThemeAuto  = "auto"
	ThemeLight = "light"
	ThemeDark  = "dark"
)

// Theme holds the styled components for the chat view.
type Theme struct {
	IsDark       bool
	ColorProfile termenv.Profile

	// Layout dimensions
	Width  int
	Height int

	// Header
	Header         lipgloss.Style
	HeaderTitle    lipgloss.Style
	HeaderSubtitle lipgloss.Style

	// Messages
	UserBubble     lipgloss.Style
	BotBubble      lipgloss.Style
	FallbackBubble lipgloss.Style
	UserLabel      lipgloss.Style
	BotLabel       lipgloss.Style
	Timestamp      lipgloss.Style

	// Welcome panel
	WelcomeBox   lipgloss.Style
	WelcomeTitle lipgloss.Style
	WelcomeHint  lipgloss.Style

	// Input area
	InputContainer   lipgloss.Style
	InputPrompt      lipgloss.Style
	InputText        lipgloss.Style
	InputPlaceholder lipgloss.Style

	// Loading indicator
	Spinner      lipgloss.Style
	ThinkingText lipgloss.Style

	// Status bar
	StatusBar    lipgloss.Style
	StatusOK     lipgloss.Style
	StatusInfo   lipgloss.Style
	StatusError  lipgloss.Style
	ShortcutKey  lipgloss.Style
	ShortcutDesc lipgloss.Style
}

// ParseThemeName normalizes a theme name. Unknown names map to ThemeAuto.
func ParseThemeName(name string) string {
	switch strings.ToLower(strings.TrimSpace(name)) {
	case ThemeLight:
		return ThemeLight
	case ThemeDark:
		return ThemeDark
	default:
		return ThemeAuto
	}
}

// NewTheme creates a theme by name. "auto" follows the terminal background.
func NewTheme(name string) *Theme {
	switch ParseThemeName(name) {
	case ThemeLight:
		return NewThemeFor(false)
	case ThemeDark:
		return NewThemeFor(true)
	default:
		return NewThemeFor(termenv.HasDarkBackground())
	}
}

// NewThemeFor creates a light or dark theme.
func NewThemeFor(dark bool) *Theme {
	t := &Theme{
		IsDark:       dark,
		ColorProfile: termenv.ColorProfile(),
	}
	t.initStyles()
	return t
}

// Toggled returns the opposite theme with the same dimensions.
func (t *Theme) Toggled() *Theme {
	next := NewThemeFor(!t.IsDark)
	next.SetSize(t.Width, t.Height)
	return next
}

// Name returns "dark" or "light".
func (t *Theme) Name() string {
	if t.IsDark {
		return ThemeDark
	}
	return ThemeLight
}

// GlamourStyle returns the glamour standard style matching the theme.
func (t *Theme) GlamourStyle() string {
	return t.Name()
}

// initStyles initializes all the lip gloss styles.
func (t *Theme) initStyles() {
	c := func(ac lipgloss.AdaptiveColor) lipgloss.Color { return resolve(ac, t.IsDark) }

	// Header
	t.Header = lipgloss.NewStyle().
		Background(c(SurfaceDim)).
		BorderStyle(lipgloss.RoundedBorder()).
		BorderForeground(c(Purple)).
		Padding(0, 2)

	t.HeaderTitle = lipgloss.NewStyle().
		Bold(true).
		Foreground(c(Purple))

	t.HeaderSubtitle = lipgloss.NewStyle().
		Foreground(c(TextSecondary)).
		Italic(true)

	// Message bubbles
	t.UserBubble = lipgloss.NewStyle().
		Foreground(c(UserBubbleFg)).
		Background(c(UserBubbleBg)).
		BorderStyle(lipgloss.RoundedBorder()).
		BorderForeground(c(UserBubbleBorder)).
		Padding(0, 2)

	t.BotBubble = lipgloss.NewStyle().
		Foreground(c(BotBubbleFg)).
		Background(c(BotBubbleBg)).
		BorderStyle(lipgloss.RoundedBorder()).
		BorderForeground(c(BotBubbleBorder)).
		Padding(0, 2)

	t.FallbackBubble = lipgloss.NewStyle().
		Foreground(c(FallbackBubbleFg)).
		Background(c(FallbackBubbleBg)).
		BorderStyle(lipgloss.RoundedBorder()).
		BorderForeground(c(Rose)).
		Padding(0, 2)

	t.UserLabel = lipgloss.NewStyle().
		Foreground(c(Cyan)).
		Bold(true)

	t.BotLabel = lipgloss.NewStyle().
		Foreground(c(Purple)).
		Bold(true)

	t.Timestamp = lipgloss.NewStyle().
		Foreground(c(TextMuted))

	// Welcome panel
	t.WelcomeBox = lipgloss.NewStyle().
		BorderStyle(lipgloss.RoundedBorder()).
		BorderForeground(c(Overlay)).
		Padding(1, 4).
		Align(lipgloss.Center)

	t.WelcomeTitle = lipgloss.NewStyle().
		Bold(true).
		Foreground(c(Purple))

	t.WelcomeHint = lipgloss.NewStyle().
		Foreground(c(TextSecondary))

	// Input area
	t.InputContainer = lipgloss.NewStyle().
		BorderStyle(lipgloss.NormalBorder()).
		BorderTop(true).
		BorderForeground(c(Overlay)).
		Padding(0, 1)

	t.InputPrompt = lipgloss.NewStyle().
		Foreground(c(Cyan)).
		Bold(true)

	t.InputText = lipgloss.NewStyle().
		Foreground(c(TextPrimary))

	t.InputPlaceholder = lipgloss.NewStyle().
		Foreground(c(TextMuted)).
		Italic(true)

	// Loading indicator
	t.Spinner = lipgloss.NewStyle().
		Foreground(c(Amber))

	t.ThinkingText = lipgloss.NewStyle().
		Foreground(c(TextSecondary)).
		Italic(true)

	// Status bar
	t.StatusBar = lipgloss.NewStyle().
		Foreground(c(TextSecondary)).
		Padding(0, 1)

	t.StatusOK = lipgloss.NewStyle().
		Foreground(c(Emerald))

	t.StatusInfo = lipgloss.NewStyle().
		Foreground(c(Cyan))

	t.StatusError = lipgloss.NewStyle().
		Foreground(c(Rose)).
		Bold(true)

	t.ShortcutKey = lipgloss.NewStyle().
		Foreground(c(Cyan)).
		Bold(true)

	t.ShortcutDesc = lipgloss.NewStyle().
		Foreground(c(TextMuted))
}

// SetSize updates the theme dimensions for responsive layouts.
func (t *Theme) SetSize(width, height int) {
	t.Width = width
	t.Height = height
}

// GetLayoutMode returns the current layout mode based on width.
func (t *Theme) GetLayoutMode() LayoutMode {
	if t.Width < 60 {
		return LayoutNarrow
	}
	if t.Width < 100 {
		return LayoutMedium
	}
	return LayoutWide
}

// BubbleWidth returns the maximum content width of a message bubble.
func (t *Theme) BubbleWidth() int {
	switch t.GetLayoutMode() {
	case LayoutNarrow:
		return max(t.Width-6, 10)
	case LayoutMedium:
		return t.Width * 3 / 4
	default:
		return min(t.Width*2/3, 100)
	}
}

// LayoutMode represents the current responsive layout mode.
type LayoutMode int

const (
	LayoutNarrow LayoutMode = iota // < 60 columns
	LayoutMedium                   // 60-100 columns
	LayoutWide                     // >= 100 columns
)
