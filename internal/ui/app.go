package ui

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/bubbles/textarea"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"go.uber.org/zap"

	"github.com/five82/dreamline/internal/form"
	"github.com/five82/dreamline/internal/prefs"
	"github.com/five82/dreamline/internal/state"
)

// View represents the current active view.
type View int

const (
	ViewForm View = iota
	ViewDiagnostics
)

// focusTarget is the form control receiving keys.
type focusTarget int

const (
	focusInput focusTarget = iota
	focusButton
)

// Submitter runs one submission. *form.Controller implements it.
type Submitter interface {
	Submit(ctx context.Context, raw string) (form.Outcome, error)
}

// Options configures the UI.
type Options struct {
	Context   context.Context
	Submitter Submitter
	Store     *state.Store
	APIURL    string
	LogPath   string
	Tick      time.Duration
	ThemeName string
	PrefsPath string
	Logger    *zap.Logger
}

// Model is the root application state for Bubble Tea.
type Model struct {
	// Configuration
	ctx       context.Context
	submitter Submitter
	store     *state.Store
	apiURL    string
	logPath   string
	prefsPath string
	tick      time.Duration
	logger    *zap.Logger

	// UI state
	theme       Theme
	keys        keyMap
	currentView View
	focus       focusTarget
	width       int
	height      int
	ready       bool
	showHelp    bool
	notice      string

	// Components
	input   textarea.Model
	spinner spinner.Model
	result  viewport.Model
	help    help.Model

	// Data state
	snapshot     state.Snapshot
	shownMessage string
	lastOutcome  form.Outcome

	diagnostics diagnosticsState
}

// New creates a new Bubble Tea model.
func New(opts Options) Model {
	ctx := opts.Context
	if ctx == nil {
		ctx = context.Background()
	}

	tick := opts.Tick
	if tick <= 0 {
		tick = DefaultUIInterval
	}

	themeName := opts.ThemeName
	if themeName == "" {
		themeName = defaultThemeName
	}

	prefsPath := opts.PrefsPath
	if prefsPath == "" {
		prefsPath = prefs.DefaultPath()
	}

	logger := opts.Logger
	if logger == nil {
		logger = zap.NewNop()
	}

	input := textarea.New()
	input.Placeholder = "Describe your dream..."
	input.ShowLineNumbers = false
	input.CharLimit = InputCharLimit
	input.SetHeight(InputHeight)
	input.Focus()

	m := Model{
		ctx:       ctx,
		submitter: opts.Submitter,
		store:     opts.Store,
		apiURL:    opts.APIURL,
		logPath:   opts.LogPath,
		prefsPath: prefsPath,
		tick:      tick,
		logger:    logger,
		keys:      DefaultKeyMap(),
		input:     input,
		spinner:   spinner.New(spinner.WithSpinner(spinner.Dot)),
		result:    viewport.New(0, 0),
		help:      help.New(),
		diagnostics: diagnosticsState{
			viewport: viewport.New(0, 0),
		},
	}
	m.applyTheme(GetTheme(themeName))
	if m.store != nil {
		m.snapshot = m.store.Snapshot()
	}
	return m
}

// Init implements tea.Model.
func (m Model) Init() tea.Cmd {
	cmds := []tea.Cmd{
		textarea.Blink,
		m.spinner.Tick,
		tickCmd(m.tick),
	}
	if m.store != nil {
		cmds = append(cmds, fetchSnapshotCmd(m.store))
	}
	return tea.Batch(cmds...)
}

// Update implements tea.Model.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		return m.handleKey(msg)

	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.ready = true
		m.resize()
		return m, nil

	case tickMsg:
		return m.handleTick()

	case snapshotMsg:
		m.snapshot = state.Snapshot(msg)
		m.refreshResult()
		return m, nil

	case submittedMsg:
		return m.handleSubmitted(msg)

	case diagnosticsMsg:
		m.handleDiagnostics(msg)
		return m, nil

	case spinner.TickMsg:
		var cmd tea.Cmd
		m.spinner, cmd = m.spinner.Update(msg)
		return m, cmd
	}

	// Cursor blink and other component messages.
	var cmd tea.Cmd
	m.input, cmd = m.input.Update(msg)
	return m, cmd
}

// View implements tea.Model.
func (m Model) View() string {
	if !m.ready {
		return "Loading..."
	}

	if m.showHelp {
		return m.renderHelp()
	}

	var b strings.Builder
	b.WriteString(m.renderHeader())
	b.WriteString("\n")
	switch m.currentView {
	case ViewDiagnostics:
		b.WriteString(m.renderDiagnostics())
	default:
		b.WriteString(m.renderForm())
	}
	b.WriteString("\n")
	b.WriteString(m.renderFooter())
	return b.String()
}

// handleKey processes keyboard input. Printable keys belong to the dream
// field while it has focus, so single-letter shortcuts only apply elsewhere.
func (m Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if m.showHelp {
		m.showHelp = false
		return m, nil
	}

	switch {
	case key.Matches(msg, m.keys.Quit):
		return m, tea.Quit

	case key.Matches(msg, m.keys.Submit):
		return m.submit()

	case key.Matches(msg, m.keys.Clear):
		m.input.Reset()
		m.notice = ""
		return m, nil

	case key.Matches(msg, m.keys.Diagnostics):
		if m.currentView == ViewDiagnostics {
			m.currentView = ViewForm
			return m, nil
		}
		m.currentView = ViewDiagnostics
		return m, m.loadDiagnostics()

	case key.Matches(msg, m.keys.Escape):
		if m.currentView != ViewForm {
			m.currentView = ViewForm
			return m, nil
		}
		if m.focus == focusInput {
			m.setFocus(focusButton)
		}
		return m, nil
	}

	if m.currentView == ViewDiagnostics {
		return m.handleDiagnosticsKey(msg)
	}

	if key.Matches(msg, m.keys.Tab) {
		if m.focus == focusInput {
			m.setFocus(focusButton)
		} else {
			m.setFocus(focusInput)
		}
		return m, nil
	}

	if m.focus == focusInput {
		var cmd tea.Cmd
		m.input, cmd = m.input.Update(msg)
		return m, cmd
	}

	switch {
	case key.Matches(msg, m.keys.Confirm):
		return m.submit()
	case key.Matches(msg, m.keys.Help):
		m.showHelp = true
	case key.Matches(msg, m.keys.CycleTheme):
		m.cycleTheme()
	}
	return m, nil
}

// setFocus moves focus between the dream field and the button.
func (m *Model) setFocus(target focusTarget) {
	m.focus = target
	if target == focusInput {
		m.input.Focus()
	} else {
		m.input.Blur()
	}
}

// cycleTheme switches to the next theme and persists the choice.
func (m *Model) cycleTheme() {
	m.applyTheme(GetTheme(NextTheme(m.theme.Name)))
	if m.prefsPath == "" {
		return
	}
	if err := prefs.Save(m.prefsPath, prefs.Prefs{Theme: m.theme.Name}); err != nil {
		m.logger.Warn("save prefs failed", zap.String("path", m.prefsPath), zap.Error(err))
		m.notice = "Could not save theme preference"
	}
}

// applyTheme restyles the components that carry their own styles.
func (m *Model) applyTheme(t Theme) {
	m.theme = t
	styles := t.Styles()
	m.help.Styles = t.HelpStyles()
	m.spinner.Style = styles.AccentText

	focused, blurred := textarea.DefaultStyles()
	focused.CursorLine = lipgloss.NewStyle()
	focused.Placeholder = styles.FaintText
	focused.Text = styles.Text
	blurred.Placeholder = styles.FaintText
	blurred.Text = styles.MutedText
	m.input.FocusedStyle = focused
	m.input.BlurredStyle = blurred

	m.shownMessage = ""
	m.refreshResult()
	if m.diagnostics.loaded {
		m.diagnostics.viewport.SetContent(m.formatDiagnostics())
	}
}

// submit hands the current dream text to the controller on a goroutine.
// The controller rejects overlapping submissions itself.
func (m Model) submit() (tea.Model, tea.Cmd) {
	if m.submitter == nil {
		return m, nil
	}
	m.notice = ""
	ctx := m.ctx
	submitter := m.submitter
	raw := m.input.Value()
	return m, func() tea.Msg {
		outcome, err := submitter.Submit(ctx, raw)
		return submittedMsg{outcome: outcome, err: err}
	}
}

// handleSubmitted records the settled submission and refreshes the snapshot.
func (m Model) handleSubmitted(msg submittedMsg) (tea.Model, tea.Cmd) {
	m.lastOutcome = msg.outcome
	switch {
	case errors.Is(msg.err, form.ErrBusy):
		m.notice = "Still interpreting the previous dream"
	case msg.err != nil:
		m.notice = msg.err.Error()
	}
	if m.store == nil {
		return m, nil
	}
	return m, fetchSnapshotCmd(m.store)
}

// handleTick processes the refresh tick.
func (m Model) handleTick() (tea.Model, tea.Cmd) {
	var cmds []tea.Cmd

	if m.store != nil {
		cmds = append(cmds, fetchSnapshotCmd(m.store))
	}

	if m.currentView == ViewDiagnostics && time.Since(m.diagnostics.loadedAt) >= DiagnosticsRefresh {
		cmds = append(cmds, m.loadDiagnostics())
	}

	cmds = append(cmds, tickCmd(m.tick))
	return m, tea.Batch(cmds...)
}

// resize lays the components out for the current terminal size.
func (m *Model) resize() {
	width := m.contentWidth()
	m.input.SetWidth(width)
	m.help.Width = m.width

	// header, footer, label, button, result title, spacing and two panel borders
	chrome := 2 + 4 + 4
	m.result.Width = width
	m.result.Height = max(3, m.height-InputHeight-chrome)
	m.shownMessage = ""
	m.refreshResult()

	m.diagnostics.viewport.Width = m.width
	m.diagnostics.viewport.Height = max(1, m.height-3)
	if m.diagnostics.loaded {
		m.diagnostics.viewport.SetContent(m.formatDiagnostics())
	}
}

// contentWidth is the usable width inside a panel.
func (m Model) contentWidth() int {
	return max(10, min(m.width, MaxContentWidth)-4)
}

// Messages

type tickMsg time.Time

type snapshotMsg state.Snapshot

type submittedMsg struct {
	outcome form.Outcome
	err     error
}

// Commands

func tickCmd(d time.Duration) tea.Cmd {
	return tea.Tick(d, func(t time.Time) tea.Msg {
		return tickMsg(t)
	})
}

func fetchSnapshotCmd(store *state.Store) tea.Cmd {
	return func() tea.Msg {
		return snapshotMsg(store.Snapshot())
	}
}

// Run starts the Bubble Tea program and blocks until it exits or the context
// is cancelled.
func Run(opts Options) error {
	m := New(opts)
	p := tea.NewProgram(m, tea.WithAltScreen(), tea.WithContext(m.ctx))
	_, err := p.Run()
	if errors.Is(err, tea.ErrProgramKilled) && m.ctx.Err() != nil {
		return nil
	}
	return err
}
