// ============================================================================
// ninjachat - Cyber Ninja AI Terminal Client
// ============================================================================
//
// Package:     ninjachat
// Description: Main Bubbletea model for the Cyber Ninja terminal UI
// Author:      Mike Stoffels
// Created:     2026-10-18
// License:     MIT
// ============================================================================

package ninjachat

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/filepicker"
	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/bubbles/textarea"
	"github.com/charmbracelet/bubbles/textinput"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/msto63/ninjachat/internal/assistant"
	"github.com/msto63/ninjachat/internal/session"
	"github.com/msto63/ninjachat/internal/settings"
	"github.com/msto63/ninjachat/pkg/core/apperr"
	"github.com/msto63/ninjachat/pkg/core/logging"
)

// FocusArea represents which area has focus
type FocusArea int

const (
	FocusInput FocusArea = iota
	FocusSidebar
)

type dialogKind int

const (
	dialogNone dialogKind = iota
	dialogAPIKey
	dialogSavePath
	dialogOpenFile
	dialogPrompt
)

const (
	sidebarWidth    = 40
	headerHeight    = 3
	footerHeight    = 7
	maxInputHistory = 100
	defaultChatFile = "chat_history.json"
)

// Config holds terminal UI configuration
type Config struct {
	Controller *assistant.Controller
	Title      string
	Welcome    string

	// Connection is the initial set of clients, nil when no key is known
	Connection *Connection
	// Connect builds clients for a newly entered key
	Connect func(key string) (*Connection, error)
	// SaveKey persists a newly entered key
	SaveKey func(key string) error

	StatusTimeout time.Duration
	TranscriptDir string
}

// Model is the main Bubbletea model
type Model struct {
	cfg    Config
	ctrl   *assistant.Controller
	logger *logging.Logger

	// State
	width    int
	height   int
	ready    bool
	focus    FocusArea
	dialog   dialogKind
	status   serviceStatus
	notice   string
	noticeID int
	events   <-chan assistant.Event
	conn     *Connection
	styles   Styles
	controls []control
	selected int

	// Components
	textarea   textarea.Model
	viewport   viewport.Model
	spinner    spinner.Model
	keyInput   textinput.Model
	pathInput  textinput.Model
	promptEdit textarea.Model
	picker     filepicker.Model

	// Input history
	inputHistory []string
	historyIndex int
	currentInput string
}

// New creates the model and appends the welcome turn
func New(cfg Config) Model {
	if cfg.StatusTimeout <= 0 {
		cfg.StatusTimeout = 10 * time.Second
	}
	if cfg.Title == "" {
		cfg.Title = "Cyber Ninja AI Assistant"
	}
	if cfg.TranscriptDir == "" {
		cfg.TranscriptDir, _ = os.Getwd()
	}

	ctrl := cfg.Controller
	styles := newStyles(isDark(ctrl.Settings().Theme))

	ta := textarea.New()
	ta.Placeholder = "Type your message here..."
	ta.Focus()
	ta.CharLimit = 8000
	ta.SetWidth(80)
	ta.SetHeight(3)
	ta.ShowLineNumbers = false
	ta.FocusedStyle.CursorLine = lipgloss.NewStyle()

	sp := spinner.New()
	sp.Spinner = spinner.Dot
	sp.Style = styles.Spinner

	key := textinput.New()
	key.Placeholder = "sk-..."
	key.EchoMode = textinput.EchoPassword
	key.EchoCharacter = '•'
	key.CharLimit = 256
	key.Width = 50

	path := textinput.New()
	path.CharLimit = 1024
	path.Width = 60

	prompt := textarea.New()
	prompt.ShowLineNumbers = false
	prompt.CharLimit = 4000
	prompt.SetWidth(60)
	prompt.SetHeight(8)

	picker := filepicker.New()
	picker.AllowedTypes = []string{".json"}
	picker.CurrentDirectory = cfg.TranscriptDir
	picker.AutoHeight = false
	picker.Height = 12

	m := Model{
		cfg:          cfg,
		ctrl:         ctrl,
		logger:       logging.New("tui"),
		focus:        FocusInput,
		status:       statusChecking,
		conn:         cfg.Connection,
		styles:       styles,
		controls:     buildControls(ctrl.Features()),
		textarea:     ta,
		spinner:      sp,
		keyInput:     key,
		pathInput:    path,
		promptEdit:   prompt,
		picker:       picker,
		historyIndex: -1,
	}

	if ctrl.Features().Welcome && cfg.Welcome != "" {
		ctrl.Conversation().AppendAssistant(cfg.Welcome)
	}
	if m.conn == nil {
		m.status = statusNoKey
		if ctrl.Features().APIKeyDialog && cfg.Connect != nil {
			m.openKeyDialog()
		}
	}

	return m
}

// Init initializes the model
func (m Model) Init() tea.Cmd {
	cmds := []tea.Cmd{textarea.Blink}
	if m.conn != nil {
		cmds = append(cmds, checkStatus(m.conn, m.cfg.StatusTimeout))
	}
	return tea.Batch(cmds...)
}

// Update handles messages
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmds []tea.Cmd
	var cmd tea.Cmd

	switch msg := msg.(type) {
	case tea.KeyMsg:
		return m.handleKeyPress(msg)

	case tea.WindowSizeMsg:
		m.resize(msg.Width, msg.Height)

	case spinner.TickMsg:
		if m.busy() {
			m.spinner, cmd = m.spinner.Update(msg)
			cmds = append(cmds, cmd)
		}

	case pipelineEventMsg:
		return m.handleEvent(msg)

	case statusMsg:
		m.status = msg.status
		if msg.err != nil {
			m.logger.Warn("Service check failed", "error", msg.err)
		}

	case noticeExpiredMsg:
		if msg.id == m.noticeID {
			m.notice = ""
		}
	}

	switch m.dialog {
	case dialogOpenFile:
		return m.updatePicker(msg)
	case dialogAPIKey:
		m.keyInput, cmd = m.keyInput.Update(msg)
		cmds = append(cmds, cmd)
	case dialogSavePath:
		m.pathInput, cmd = m.pathInput.Update(msg)
		cmds = append(cmds, cmd)
	case dialogPrompt:
		m.promptEdit, cmd = m.promptEdit.Update(msg)
		cmds = append(cmds, cmd)
	default:
		if m.focus == FocusInput {
			m.textarea, cmd = m.textarea.Update(msg)
			cmds = append(cmds, cmd)
		}
	}

	m.viewport, cmd = m.viewport.Update(msg)
	cmds = append(cmds, cmd)

	return m, tea.Batch(cmds...)
}

// resize lays out the panels for the terminal size
func (m *Model) resize(width, height int) {
	m.width = width
	m.height = height

	chatWidth := width - 4
	if len(m.controls) > 0 {
		chatWidth -= sidebarWidth
	}
	if chatWidth < 20 {
		chatWidth = 20
	}
	viewportHeight := height - headerHeight - footerHeight - 2
	if viewportHeight < 3 {
		viewportHeight = 3
	}

	if !m.ready {
		m.viewport = viewport.New(chatWidth, viewportHeight)
		m.viewport.YPosition = headerHeight
		m.ready = true
	} else {
		m.viewport.Width = chatWidth
		m.viewport.Height = viewportHeight
	}
	m.textarea.SetWidth(width - 4)
	m.refresh()
}

func (m Model) busy() bool {
	return !m.ctrl.InputEnabled()
}

// handleEvent applies a worker event and waits for the next one
func (m Model) handleEvent(msg pipelineEventMsg) (tea.Model, tea.Cmd) {
	if msg.closed {
		m.events = nil
		return m, nil
	}

	done := m.ctrl.Handle(msg.event)
	m.refresh()

	if !done {
		return m, waitForEvent(m.events)
	}
	m.events = nil
	if m.dialog == dialogNone && m.focus == FocusInput {
		return m, m.textarea.Focus()
	}
	return m, nil
}

// handleKeyPress handles keyboard input
func (m Model) handleKeyPress(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if msg.Type == tea.KeyCtrlC {
		return m, tea.Quit
	}

	if m.dialog != dialogNone {
		return m.handleDialogKey(msg)
	}

	features := m.ctrl.Features()

	// Global shortcuts
	switch msg.String() {
	case "ctrl+s":
		if len(m.controls) > 0 {
			return m.perform(actionSaveSettings)
		}
	case "ctrl+e":
		if features.TranscriptIO {
			return m.perform(actionSaveChat)
		}
	case "ctrl+o":
		if features.TranscriptIO {
			return m.perform(actionLoadChat)
		}
	case "ctrl+k":
		if features.APIKeyDialog {
			return m.perform(actionAPIKey)
		}
	case "ctrl+p":
		if features.PlaybackControls {
			paused, err := m.ctrl.TogglePlayback()
			if err != nil {
				m.logger.Warn("Toggle playback failed", "error", err)
				return m.flash("Pause is not supported by this player")
			}
			if paused {
				return m.flash("Playback paused")
			}
			return m, nil
		}
	case "ctrl+x":
		if features.PlaybackControls {
			if err := m.ctrl.StopPlayback(); err != nil {
				m.logger.Warn("Stop playback failed", "error", err)
			}
			return m, nil
		}
	case "tab":
		if len(m.controls) > 0 {
			if m.focus == FocusInput {
				m.focus = FocusSidebar
				m.textarea.Blur()
				return m, nil
			}
			m.focus = FocusInput
			return m, m.textarea.Focus()
		}
	case "pgup":
		m.viewport.ViewUp()
		return m, nil
	case "pgdown":
		m.viewport.ViewDown()
		return m, nil
	}

	if m.focus == FocusSidebar {
		return m.handleSidebarKey(msg)
	}
	return m.handleInputKey(msg)
}

// handleSidebarKey moves the selection and adjusts controls
func (m Model) handleSidebarKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "up", "k":
		if m.selected > 0 {
			m.selected--
		}
	case "down", "j":
		if m.selected < len(m.controls)-1 {
			m.selected++
		}
	case "left", "h":
		m.adjust(-1)
	case "right", "l":
		m.adjust(1)
	case "enter", " ":
		c := m.controls[m.selected]
		if c.kind == kindAction {
			return m.perform(c.action)
		}
		m.adjust(1)
	case "esc":
		m.focus = FocusInput
		return m, m.textarea.Focus()
	}
	return m, nil
}

// adjust steps the selected control and applies the change
func (m *Model) adjust(dir int) {
	c := m.controls[m.selected]
	change := c.step(m.ctrl.Settings(), dir)
	if change == nil {
		return
	}
	m.ctrl.Apply(change)
	if _, ok := change.(settings.ThemeChanged); ok {
		m.styles = newStyles(isDark(m.ctrl.Settings().Theme))
		m.spinner.Style = m.styles.Spinner
		m.refresh()
	}
}

// handleInputKey sends messages and navigates the input history
func (m Model) handleInputKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if m.busy() {
		return m, nil
	}

	switch msg.Type {
	case tea.KeyEnter:
		return m.submit()

	case tea.KeyUp:
		if len(m.inputHistory) > 0 {
			if m.historyIndex == -1 {
				m.currentInput = m.textarea.Value()
				m.historyIndex = len(m.inputHistory) - 1
			} else if m.historyIndex > 0 {
				m.historyIndex--
			}
			m.textarea.SetValue(m.inputHistory[m.historyIndex])
			m.textarea.CursorEnd()
		}
		return m, nil

	case tea.KeyDown:
		if m.historyIndex != -1 {
			if m.historyIndex < len(m.inputHistory)-1 {
				m.historyIndex++
				m.textarea.SetValue(m.inputHistory[m.historyIndex])
			} else {
				m.historyIndex = -1
				m.textarea.SetValue(m.currentInput)
			}
			m.textarea.CursorEnd()
		}
		return m, nil
	}

	var cmd tea.Cmd
	m.textarea, cmd = m.textarea.Update(msg)
	return m, cmd
}

// submit starts a turn with the current input
func (m Model) submit() (tea.Model, tea.Cmd) {
	input := strings.TrimSpace(m.textarea.Value())
	events, err := m.ctrl.Submit(context.Background(), input)
	if err != nil {
		return m, nil
	}

	if len(m.inputHistory) == 0 || m.inputHistory[len(m.inputHistory)-1] != input {
		m.inputHistory = append(m.inputHistory, input)
		if len(m.inputHistory) > maxInputHistory {
			m.inputHistory = m.inputHistory[len(m.inputHistory)-maxInputHistory:]
		}
	}
	m.historyIndex = -1
	m.currentInput = ""

	m.events = events
	m.textarea.Reset()
	m.textarea.Blur()
	m.refresh()

	return m, tea.Batch(m.spinner.Tick, waitForEvent(events))
}

// perform runs a sidebar action
func (m Model) perform(action actionID) (tea.Model, tea.Cmd) {
	switch action {
	case actionSaveSettings:
		if err := m.ctrl.SaveSettings(); err != nil {
			m.refresh()
			return m, nil
		}
		return m.flash("Settings saved")

	case actionEditPrompt:
		m.dialog = dialogPrompt
		m.textarea.Blur()
		m.promptEdit.SetValue(m.ctrl.Settings().CustomPrompt)
		return m, m.promptEdit.Focus()

	case actionSaveChat:
		m.dialog = dialogSavePath
		m.textarea.Blur()
		m.pathInput.SetValue(filepath.Join(m.cfg.TranscriptDir, defaultChatFile))
		m.pathInput.CursorEnd()
		return m, m.pathInput.Focus()

	case actionLoadChat:
		if m.busy() {
			return m.flash("Wait for the current reply to finish")
		}
		m.dialog = dialogOpenFile
		m.textarea.Blur()
		return m, m.picker.Init()

	case actionAPIKey:
		if m.cfg.Connect == nil {
			return m, nil
		}
		if m.busy() {
			return m.flash("Wait for the current reply to finish")
		}
		return m, m.openKeyDialog()
	}
	return m, nil
}

func (m *Model) openKeyDialog() tea.Cmd {
	m.dialog = dialogAPIKey
	m.textarea.Blur()
	m.keyInput.Reset()
	return m.keyInput.Focus()
}

// closeDialog returns focus to the input
func (m Model) closeDialog() (Model, tea.Cmd) {
	m.dialog = dialogNone
	m.keyInput.Blur()
	m.pathInput.Blur()
	m.promptEdit.Blur()
	if m.focus == FocusInput && !m.busy() {
		return m, m.textarea.Focus()
	}
	return m, nil
}

// handleDialogKey routes keys to the open dialog
func (m Model) handleDialogKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	var cmd tea.Cmd

	switch m.dialog {
	case dialogAPIKey:
		switch msg.Type {
		case tea.KeyEsc:
			return m.closeDialog()
		case tea.KeyEnter:
			return m.applyKey(m.keyInput.Value())
		}
		m.keyInput, cmd = m.keyInput.Update(msg)
		return m, cmd

	case dialogSavePath:
		switch msg.Type {
		case tea.KeyEsc:
			return m.closeDialog()
		case tea.KeyEnter:
			path := strings.TrimSpace(m.pathInput.Value())
			if path == "" {
				return m, nil
			}
			if filepath.Ext(path) == "" {
				path += ".json"
			}
			m, cmd = m.closeDialog()
			if err := m.ctrl.SaveTranscript(path); err != nil {
				m.refresh()
				return m, cmd
			}
			model, flash := m.flash("Chat saved to " + path)
			return model, tea.Batch(cmd, flash)
		}
		m.pathInput, cmd = m.pathInput.Update(msg)
		return m, cmd

	case dialogPrompt:
		if msg.Type == tea.KeyEsc {
			m.ctrl.Apply(settings.CustomPromptChanged{Prompt: m.promptEdit.Value()})
			return m.closeDialog()
		}
		m.promptEdit, cmd = m.promptEdit.Update(msg)
		return m, cmd

	case dialogOpenFile:
		if msg.Type == tea.KeyEsc {
			return m.closeDialog()
		}
		return m.updatePicker(msg)
	}

	return m, nil
}

// updatePicker forwards a message to the file picker and loads a chosen file
func (m Model) updatePicker(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmd tea.Cmd
	m.picker, cmd = m.picker.Update(msg)

	if ok, path := m.picker.DidSelectFile(msg); ok {
		var closeCmd tea.Cmd
		m, closeCmd = m.closeDialog()
		err := m.ctrl.LoadTranscript(path)
		m.refresh()
		if err != nil {
			return m, closeCmd
		}
		model, flash := m.flash("Chat loaded from " + filepath.Base(path))
		return model, tea.Batch(closeCmd, flash)
	}
	if ok, path := m.picker.DidSelectDisabledFile(msg); ok {
		model, flash := m.flash(filepath.Base(path) + " is not a JSON transcript")
		return model, tea.Batch(cmd, flash)
	}
	return m, cmd
}

// applyKey stores a new API key and reconnects the services
func (m Model) applyKey(value string) (tea.Model, tea.Cmd) {
	key := strings.TrimSpace(value)
	if key == "" {
		return m.flash("API key is empty")
	}

	if m.cfg.SaveKey != nil {
		if err := m.cfg.SaveKey(key); err != nil {
			m.logger.Error("Failed to save API key", "error", err)
			return m.flash("Failed to save API key: " + apperr.Message(err))
		}
	}

	conn, err := m.cfg.Connect(key)
	if err != nil {
		m.logger.Error("Failed to connect", "error", err)
		return m.flash("Failed to connect: " + apperr.Message(err))
	}
	m.conn = conn
	m.ctrl.Reconfigure(conn.Chat, conn.Speech)
	m.status = statusChecking

	m, cmd := m.closeDialog()
	model, flash := m.flash("API key saved")
	return model, tea.Batch(cmd, flash, checkStatus(conn, m.cfg.StatusTimeout))
}

// flash shows a transient notice in the status bar
func (m Model) flash(text string) (Model, tea.Cmd) {
	m.noticeID++
	m.notice = text
	return m, expireNotice(m.noticeID)
}

// refresh renders the history into the viewport
func (m *Model) refresh() {
	if !m.ready {
		return
	}

	conv := m.ctrl.Conversation()
	labels := conv.Labels()
	wrap := lipgloss.NewStyle().Width(m.viewport.Width)

	var b strings.Builder
	for _, turn := range conv.Turns() {
		var line string
		switch turn.Speaker {
		case session.SpeakerUser:
			line = m.styles.UserLabel.Render(labels.User+":") + " " + m.styles.Body.Render(turn.Text)
		case session.SpeakerAssistant:
			line = m.styles.AssistLabel.Render(labels.Assistant+":") + " " + m.styles.Body.Render(turn.Text)
		case session.SpeakerError:
			line = m.styles.ErrorText.Render(labels.Error + ": " + turn.Text)
		default:
			line = m.styles.SystemText.Render(turn.Text)
		}
		b.WriteString(wrap.Render(line))
		b.WriteString("\n\n")
	}

	m.viewport.SetContent(b.String())
	m.viewport.GotoBottom()
}

// View renders the UI
func (m Model) View() string {
	if !m.ready {
		return "Initializing..."
	}

	var b strings.Builder
	b.WriteString(m.renderHeader())
	b.WriteString("\n")

	if m.dialog != dialogNone {
		b.WriteString(m.renderDialog())
	} else {
		b.WriteString(m.renderBody())
		b.WriteString("\n")
		b.WriteString(m.renderInputArea())
	}
	b.WriteString("\n")
	b.WriteString(m.renderStatusBar())
	b.WriteString("\n")
	b.WriteString(m.renderHelpBar())

	return b.String()
}

func (m Model) renderHeader() string {
	title := m.styles.Title.Render(m.cfg.Title)
	return m.styles.TitlePanel.Width(m.width - 4).Render(title)
}

func (m Model) renderBody() string {
	chat := m.styles.ChatPanel.
		Width(m.viewport.Width + 2).
		Height(m.viewport.Height).
		Render(m.viewport.View())

	if len(m.controls) == 0 {
		return chat
	}

	panel := m.styles.Sidebar
	if m.focus == FocusSidebar {
		panel = m.styles.SidebarOn
	}
	sidebar := panel.
		Width(sidebarWidth - 4).
		Height(m.viewport.Height).
		Render(renderSidebar(m.styles, m.controls, m.ctrl.Settings(), m.selected, m.focus == FocusSidebar))

	return lipgloss.JoinHorizontal(lipgloss.Top, sidebar, chat)
}

func (m Model) renderInputArea() string {
	var input string
	if m.busy() {
		input = m.spinner.View() + " " + m.styles.Busy.Render(m.ctrl.State().String())
	} else {
		input = m.textarea.View()
	}

	style := m.styles.Input
	if m.focus == FocusInput && !m.busy() {
		style = m.styles.InputOn
	}
	return style.Width(m.width - 2).Render(input)
}

func (m Model) renderDialog() string {
	var title, body, hint string

	switch m.dialog {
	case dialogAPIKey:
		title = "OpenAI API Key"
		body = "Enter your API key. It is stored locally for future sessions.\n\n" + m.keyInput.View()
		hint = "Enter save • Esc cancel"
	case dialogSavePath:
		title = "Save Chat"
		body = "File name:\n\n" + m.pathInput.View()
		hint = "Enter save • Esc cancel"
	case dialogOpenFile:
		title = "Load Chat"
		body = m.styles.Muted.Render(m.picker.CurrentDirectory) + "\n\n" + m.picker.View()
		hint = "↑/↓ navigate • Enter open • Esc cancel"
	case dialogPrompt:
		title = "Custom System Prompt"
		body = m.promptEdit.View()
		hint = "Esc apply and close"
	}

	content := m.styles.Section.Render(title) + "\n\n" + body + "\n\n" + m.styles.HelpDesc.Render(hint)
	return m.styles.Dialog.
		Width(m.width - 6).
		Height(m.viewport.Height + 4).
		Render(content)
}

func (m Model) renderStatusBar() string {
	state := m.ctrl.State()
	left := state.Icon() + " " + state.String()

	s := m.ctrl.Settings()
	center := m.styles.HelpDesc.Render(fmt.Sprintf("voice %s", s.Voice))
	if m.ctrl.Features().SpeedControl {
		center += m.styles.HelpDesc.Render(fmt.Sprintf(" @ %.2fx", s.VoiceSpeed))
	}
	if m.ctrl.Features().PlaybackControls {
		player := m.ctrl.Player()
		switch {
		case player.IsPaused():
			center += m.styles.HelpDesc.Render(" • ⏸ paused")
		case player.IsPlaying():
			center += m.styles.HelpDesc.Render(" • ▶ playing")
		}
	}
	if m.notice != "" {
		center = m.styles.Busy.Render(m.notice)
	}

	var right string
	switch m.status {
	case statusOnline:
		right = m.styles.Online.Render("● Online")
	case statusOffline:
		right = m.styles.Offline.Render("● Offline")
	case statusNoKey:
		right = m.styles.Offline.Render("● No API key")
	case statusChecking:
		right = m.styles.Busy.Render("● Checking")
	default:
		right = m.styles.HelpDesc.Render("● Unknown")
	}

	space := m.width - lipgloss.Width(left) - lipgloss.Width(center) - lipgloss.Width(right) - 4
	if space < 2 {
		space = 2
	}
	leftPad := space / 2
	content := left + strings.Repeat(" ", leftPad) + center + strings.Repeat(" ", space-leftPad) + right

	return m.styles.StatusBar.Width(m.width - 2).Render(content)
}

func (m Model) renderHelpBar() string {
	features := m.ctrl.Features()
	items := []string{m.styles.keyHint("Enter", "send")}

	if len(m.controls) > 0 {
		items = append(items, m.styles.keyHint("Tab", "settings"), m.styles.keyHint("Ctrl+S", "save settings"))
	}
	if features.TranscriptIO {
		items = append(items, m.styles.keyHint("Ctrl+E", "save chat"), m.styles.keyHint("Ctrl+O", "load chat"))
	}
	if features.PlaybackControls {
		items = append(items, m.styles.keyHint("Ctrl+P", "pause"), m.styles.keyHint("Ctrl+X", "stop"))
	}
	if features.APIKeyDialog {
		items = append(items, m.styles.keyHint("Ctrl+K", "API key"))
	}
	items = append(items, m.styles.keyHint("Ctrl+C", "quit"))

	return strings.Join(items, "  ")
}

// Run starts the terminal UI
func Run(cfg Config) error {
	p := tea.NewProgram(New(cfg), tea.WithAltScreen())
	_, err := p.Run()
	return err
}
