// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package chat

import (
	"sync"

	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/bubbles/textinput"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/rs/zerolog"

	"github.com/jeranaias/chatbot-tui/internal/chatclient"
	"github.com/jeranaias/chatbot-tui/internal/conversation"
	"github.com/jeranaias/chatbot-tui/internal/model"
	"github.com/jeranaias/chatbot-tui/internal/ui/styles"
)

// Layout heights around the viewport, in rows.
const (
	headerHeight    = 3
	inputAreaHeight = 2
	statusBarHeight = 1
)

// inputCharLimit bounds a single message typed in the input line.
const inputCharLimit = chatclient.MaxInputChars

// Options configures a chat Model.
type Options struct {
	Client *chatclient.Client
	Store  *conversation.Store

	// Theme is "auto", "light" or "dark".
	Theme string
	// Markdown renders bot replies with glamour.
	Markdown bool

	// Endpoint and StorageDesc are shown in the header.
	Endpoint    string
	StorageDesc string

	Logger zerolog.Logger
}

// logView is the copy of the conversation log the view renders from.
// It is updated by the store subscription and shared by every copy of the
// value-typed Model.
type logView struct {
	mu       sync.Mutex
	messages []model.Message
}

func (v *logView) set(messages []model.Message) {
	v.mu.Lock()
	v.messages = messages
	v.mu.Unlock()
}

func (v *logView) get() []model.Message {
	v.mu.Lock()
	defer v.mu.Unlock()
	return v.messages
}

// =============================================================================
// CHAT MODEL
// =============================================================================

// Model is the Bubble Tea model for the chat view.
type Model struct {
	client *chatclient.Client
	store  *conversation.Store
	logger zerolog.Logger

	// Rendering
	theme       *styles.Theme
	markdown    bool
	md          *markdownRenderer
	log         *logView
	unsubscribe func()

	// Header info
	endpoint    string
	storageDesc string

	// Dimensions
	width  int
	height int
	ready  bool

	// UI Components
	viewport viewport.Model
	input    textinput.Model
	spinner  spinner.Model
	keyMap   KeyMap

	toast    toast
	toastSeq int
}

// New creates a chat model. The store should already be hydrated.
func New(opts Options) Model {
	theme := styles.NewTheme(opts.Theme)

	input := textinput.New()
	input.Placeholder = "Type your message..."
	input.Prompt = "> "
	input.CharLimit = inputCharLimit
	input.Focus()

	sp := spinner.New()
	sp.Spinner = styles.DotsSpinner.Bubble()

	m := Model{
		client:      opts.Client,
		store:       opts.Store,
		logger:      opts.Logger,
		theme:       theme,
		markdown:    opts.Markdown,
		md:          &markdownRenderer{},
		log:         &logView{},
		endpoint:    opts.Endpoint,
		storageDesc: opts.StorageDesc,
		viewport:    viewport.New(80, 20),
		input:       input,
		spinner:     sp,
		keyMap:      DefaultKeyMap(),
	}
	m.applyTheme()

	view := m.log
	view.set(opts.Store.Snapshot())
	m.unsubscribe = opts.Store.Subscribe(func(ev conversation.Event) {
		view.set(ev.Snapshot)
	})
	return m
}

// Close removes the store subscription.
func (m Model) Close() {
	if m.unsubscribe != nil {
		m.unsubscribe()
	}
}

// Init implements tea.Model.
func (m Model) Init() tea.Cmd {
	if m.pending() {
		return tea.Batch(textinput.Blink, m.spinner.Tick)
	}
	return textinput.Blink
}

// Theme returns the active theme.
func (m Model) Theme() *styles.Theme {
	return m.theme
}

// Messages returns the log as currently rendered.
func (m Model) Messages() []model.Message {
	return m.log.get()
}

// pending reports whether a reply is outstanding.
func (m Model) pending() bool {
	return m.client.State() == chatclient.StatePending
}

// applyTheme restyles the components for the current theme.
func (m *Model) applyTheme() {
	m.input.PromptStyle = m.theme.InputPrompt
	m.input.TextStyle = m.theme.InputText
	m.input.PlaceholderStyle = m.theme.InputPlaceholder
	m.spinner.Style = m.theme.Spinner
}

// updateViewport re-renders the log into the viewport and scrolls to the
// newest message.
func (m *Model) updateViewport() {
	m.viewport.SetContent(m.renderMessages())
	m.viewport.GotoBottom()
}
