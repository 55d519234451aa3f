package ui

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"testing"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/five82/dreamline/internal/form"
	"github.com/five82/dreamline/internal/interpret"
	"github.com/five82/dreamline/internal/prefs"
	"github.com/five82/dreamline/internal/state"
)

type stubInterpreter struct {
	mu      sync.Mutex
	dreams  []string
	resp    interpret.Response
	err     error
	gate    chan struct{}
	started chan struct{}
}

func (s *stubInterpreter) Interpret(ctx context.Context, dream string) (interpret.Response, error) {
	s.mu.Lock()
	s.dreams = append(s.dreams, dream)
	s.mu.Unlock()
	if s.started != nil {
		s.started <- struct{}{}
	}
	if s.gate != nil {
		<-s.gate
	}
	return s.resp, s.err
}

func (s *stubInterpreter) calls() []string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]string(nil), s.dreams...)
}

func newTestModel(t *testing.T, interp interpret.Interpreter, mutate func(*Options)) (Model, *state.Store) {
	t.Helper()
	store := &state.Store{}
	ctrl, err := form.NewController(interp, store, store)
	if err != nil {
		t.Fatalf("NewController: %v", err)
	}
	opts := Options{
		Submitter: ctrl,
		Store:     store,
		APIURL:    "http://127.0.0.1:8787",
		PrefsPath: filepath.Join(t.TempDir(), "prefs.toml"),
	}
	if mutate != nil {
		mutate(&opts)
	}
	m, _ := update(t, New(opts), tea.WindowSizeMsg{Width: 100, Height: 40})
	return m, store
}

func update(t *testing.T, m Model, msg tea.Msg) (Model, tea.Cmd) {
	t.Helper()
	next, cmd := m.Update(msg)
	model, ok := next.(Model)
	if !ok {
		t.Fatalf("Update returned %T, want ui.Model", next)
	}
	return model, cmd
}

// runSubmit presses ctrl+s, runs the submission and applies the settled
// snapshot.
func runSubmit(t *testing.T, m Model) (Model, submittedMsg) {
	t.Helper()
	m, cmd := update(t, m, tea.KeyMsg{Type: tea.KeyCtrlS})
	if cmd == nil {
		t.Fatal("ctrl+s produced no command")
	}
	msg, ok := cmd().(submittedMsg)
	if !ok {
		t.Fatal("submit command did not return submittedMsg")
	}
	return settle(t, m, msg), msg
}

func settle(t *testing.T, m Model, msg submittedMsg) Model {
	t.Helper()
	m, cmd := update(t, m, msg)
	if cmd == nil {
		t.Fatal("submittedMsg produced no snapshot refresh")
	}
	m, _ = update(t, m, cmd())
	return m
}

func runes(s string) tea.KeyMsg {
	return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(s)}
}

func TestModel_SubmitRendersInterpretation(t *testing.T) {
	interp := &stubInterpreter{resp: interpret.Response{Interpretation: "The river carries you."}}
	m, _ := newTestModel(t, interp, nil)
	m.input.SetValue("  a river at night  ")

	m, msg := runSubmit(t, m)
	if msg.err != nil || msg.outcome != form.OutcomeInterpreted {
		t.Fatalf("submit = %v, %v; want interpreted", msg.outcome, msg.err)
	}
	if got := interp.calls(); len(got) != 1 || got[0] != "a river at night" {
		t.Fatalf("interpreter saw %q, want one trimmed dream", got)
	}

	view := m.View()
	if !strings.Contains(view, "The river carries you.") {
		t.Fatalf("view missing interpretation:\n%s", view)
	}
	if !strings.Contains(view, form.IdleLabel) {
		t.Fatalf("view missing idle button label:\n%s", view)
	}
	if m.buttonDisabled() {
		t.Fatal("button still disabled after settle")
	}
}

func TestModel_BlankSubmitPrompts(t *testing.T) {
	interp := &stubInterpreter{}
	m, _ := newTestModel(t, interp, nil)
	m.input.SetValue("   ")

	m, msg := runSubmit(t, m)
	if msg.outcome != form.OutcomePrompted {
		t.Fatalf("outcome = %v, want prompted", msg.outcome)
	}
	if len(interp.calls()) != 0 {
		t.Fatal("blank dream reached the interpreter")
	}
	if !strings.Contains(m.View(), form.PromptMessage) {
		t.Fatalf("view missing prompt:\n%s", m.View())
	}
}

func TestModel_FailureShowsStaticMessage(t *testing.T) {
	interp := &stubInterpreter{err: errors.New("connection refused")}
	m, _ := newTestModel(t, interp, nil)
	m.input.SetValue("falling")

	m, msg := runSubmit(t, m)
	if msg.outcome != form.OutcomeFailed || msg.err != nil {
		t.Fatalf("submit = %v, %v; want failed without error", msg.outcome, msg.err)
	}
	view := m.View()
	if !strings.Contains(view, "could not reach the interpreter") {
		t.Fatalf("view missing failure message:\n%s", view)
	}
	if strings.Contains(view, "connection refused") {
		t.Fatal("transport detail leaked into the result region")
	}
}

func TestModel_TabMovesFocusAndEnterSubmits(t *testing.T) {
	interp := &stubInterpreter{resp: interpret.Response{Interpretation: "ok"}}
	m, _ := newTestModel(t, interp, nil)
	m.input.SetValue("owl")

	m, _ = update(t, m, tea.KeyMsg{Type: tea.KeyTab})
	if m.focus != focusButton || m.input.Focused() {
		t.Fatal("tab did not move focus to the button")
	}

	m, _ = update(t, m, runes("x"))
	if got := m.input.Value(); got != "owl" {
		t.Fatalf("letters reached the field while the button had focus: %q", got)
	}

	m, cmd := update(t, m, tea.KeyMsg{Type: tea.KeyEnter})
	if cmd == nil {
		t.Fatal("enter on the button did not submit")
	}
	msg := cmd().(submittedMsg)
	if msg.outcome != form.OutcomeInterpreted {
		t.Fatalf("outcome = %v, want interpreted", msg.outcome)
	}

	m, _ = update(t, m, tea.KeyMsg{Type: tea.KeyTab})
	if m.focus != focusInput || !m.input.Focused() {
		t.Fatal("tab did not return focus to the field")
	}
}

func TestModel_LettersGoToFieldWhileFocused(t *testing.T) {
	m, _ := newTestModel(t, &stubInterpreter{}, nil)

	m, _ = update(t, m, runes("T?"))
	if got := m.input.Value(); got != "T?" {
		t.Fatalf("input = %q, want %q", got, "T?")
	}
	if m.theme.Name != "Nightfox" || m.showHelp {
		t.Fatal("shortcut fired while the field had focus")
	}
}

func TestModel_CycleThemePersists(t *testing.T) {
	prefsPath := filepath.Join(t.TempDir(), "prefs.toml")
	m, _ := newTestModel(t, &stubInterpreter{}, func(o *Options) { o.PrefsPath = prefsPath })

	m, _ = update(t, m, tea.KeyMsg{Type: tea.KeyEsc})
	m, _ = update(t, m, runes("T"))
	if m.theme.Name != "Kanagawa" {
		t.Fatalf("theme = %q, want Kanagawa", m.theme.Name)
	}

	saved, err := prefs.Load(prefsPath)
	if err != nil {
		t.Fatalf("prefs.Load: %v", err)
	}
	if saved.Theme != "Kanagawa" {
		t.Fatalf("saved theme = %q, want Kanagawa", saved.Theme)
	}
}

func TestModel_HelpOverlay(t *testing.T) {
	m, _ := newTestModel(t, &stubInterpreter{}, nil)

	m, _ = update(t, m, tea.KeyMsg{Type: tea.KeyTab})
	m, _ = update(t, m, runes("?"))
	if !m.showHelp || !strings.Contains(m.View(), "Keyboard Shortcuts") {
		t.Fatal("help overlay not shown")
	}
	m, _ = update(t, m, runes("x"))
	if m.showHelp {
		t.Fatal("any key should close help")
	}
}

func TestModel_ClearResetsField(t *testing.T) {
	m, _ := newTestModel(t, &stubInterpreter{}, nil)
	m.input.SetValue("a long dream")

	m, _ = update(t, m, tea.KeyMsg{Type: tea.KeyCtrlL})
	if got := m.input.Value(); got != "" {
		t.Fatalf("input = %q after clear, want empty", got)
	}
}

func TestModel_OverlappingSubmitIsRejected(t *testing.T) {
	interp := &stubInterpreter{
		resp:    interpret.Response{Interpretation: "first"},
		gate:    make(chan struct{}),
		started: make(chan struct{}, 1),
	}
	m, store := newTestModel(t, interp, nil)
	m.input.SetValue("first dream")

	m, first := update(t, m, tea.KeyMsg{Type: tea.KeyCtrlS})
	done := make(chan tea.Msg, 1)
	go func() { done <- first() }()
	<-interp.started

	m, _ = update(t, m, fetchSnapshotCmd(store)())
	if !m.buttonDisabled() || !strings.Contains(m.View(), form.BusyLabel) {
		t.Fatalf("button not busy while in flight:\n%s", m.View())
	}
	if !strings.Contains(m.View(), "Reading the symbols") {
		t.Fatal("loading indicator not shown while in flight")
	}

	m.input.SetValue("second dream")
	m, second := update(t, m, tea.KeyMsg{Type: tea.KeyCtrlS})
	msg := second().(submittedMsg)
	if !errors.Is(msg.err, form.ErrBusy) {
		t.Fatalf("second submit err = %v, want ErrBusy", msg.err)
	}
	m, _ = update(t, m, msg)
	if m.notice == "" {
		t.Fatal("rejected submission left no notice")
	}

	close(interp.gate)
	m = settle(t, m, (<-done).(submittedMsg))
	if got := interp.calls(); len(got) != 1 {
		t.Fatalf("interpreter called %d times, want 1", len(got))
	}
	if !strings.Contains(m.View(), "first") || m.buttonDisabled() {
		t.Fatalf("first submission did not settle:\n%s", m.View())
	}
}

func TestModel_DiagnosticsShowsLogTail(t *testing.T) {
	logPath := filepath.Join(t.TempDir(), "dreamline.log")
	content := "2026-10-19T08:00:00.000Z\tINFO\tdreamline starting\n" +
		"2026-10-19T08:00:05.000Z\tERROR\tinterpret request failed\t{\"error\": \"connection refused\"}\n"
	if err := os.WriteFile(logPath, []byte(content), 0o644); err != nil {
		t.Fatalf("WriteFile: %v", err)
	}
	m, _ := newTestModel(t, &stubInterpreter{}, func(o *Options) { o.LogPath = logPath })

	m, cmd := update(t, m, tea.KeyMsg{Type: tea.KeyCtrlD})
	if m.currentView != ViewDiagnostics || cmd == nil {
		t.Fatal("ctrl+d did not open diagnostics")
	}
	m, _ = update(t, m, cmd())

	view := m.View()
	for _, want := range []string{"dreamline starting", "interpret request failed", "DIAGNOSTICS"} {
		if !strings.Contains(view, want) {
			t.Fatalf("diagnostics view missing %q:\n%s", want, view)
		}
	}

	m, _ = update(t, m, tea.KeyMsg{Type: tea.KeyEsc})
	if m.currentView != ViewForm {
		t.Fatal("esc did not return to the form")
	}
}

func TestModel_DiagnosticsRowsFillViewportWidth(t *testing.T) {
	logPath := filepath.Join(t.TempDir(), "dreamline.log")
	content := "short\n2026-10-19T08:00:05.000Z\tWARN\tslow response\n"
	if err := os.WriteFile(logPath, []byte(content), 0o644); err != nil {
		t.Fatalf("WriteFile: %v", err)
	}
	m, _ := newTestModel(t, &stubInterpreter{}, func(o *Options) { o.LogPath = logPath })

	m, cmd := update(t, m, tea.KeyMsg{Type: tea.KeyCtrlD})
	m, _ = update(t, m, cmd())

	width := m.diagnostics.viewport.Width
	if width <= 0 {
		t.Fatalf("diagnostics viewport has no width")
	}
	rows := strings.Split(m.formatDiagnostics(), "\n")
	if len(rows) != 2 {
		t.Fatalf("got %d rows, want 2", len(rows))
	}
	for i, row := range rows {
		if got := lipgloss.Width(row); got != width {
			t.Fatalf("row %d width = %d, want %d", i, got, width)
		}
	}
}

func TestModel_DiagnosticsWithoutLog(t *testing.T) {
	m, _ := newTestModel(t, &stubInterpreter{}, func(o *Options) {
		o.LogPath = filepath.Join(t.TempDir(), "missing.log")
	})
	m, cmd := update(t, m, tea.KeyMsg{Type: tea.KeyCtrlD})
	m, _ = update(t, m, cmd())
	if !strings.Contains(m.View(), "No log entries yet") {
		t.Fatalf("missing empty-log hint:\n%s", m.View())
	}
}

func TestModel_HeaderShowsReachability(t *testing.T) {
	m, store := newTestModel(t, &stubInterpreter{}, nil)
	if !strings.Contains(m.View(), "connecting") {
		t.Fatalf("header should show connecting before the first probe:\n%s", m.View())
	}

	store.RecordProbe(nil)
	m, _ = update(t, m, fetchSnapshotCmd(store)())
	if !strings.Contains(m.View(), "online") {
		t.Fatalf("header should show online:\n%s", m.View())
	}

	refused := errors.New("dial tcp 127.0.0.1:8787: connect: connection refused")
	store.RecordProbe(refused)
	store.RecordProbe(refused)
	m, _ = update(t, m, fetchSnapshotCmd(store)())
	if !strings.Contains(m.View(), "OFFLINE") {
		t.Fatalf("header should show OFFLINE:\n%s", m.View())
	}
}

func TestClassifyConnectionError(t *testing.T) {
	cases := []struct {
		err  error
		want string
	}{
		{nil, ""},
		{errors.New("connect: connection refused"), "OFFLINE"},
		{errors.New("dial tcp: lookup dreams: no such host"), "HOST NOT FOUND"},
		{context.DeadlineExceeded, "TIMEOUT"},
		{&interpret.StatusError{Path: interpret.HealthPath, Status: 503}, "HTTP 503"},
		{errors.New("weird"), "ERROR"},
	}
	for _, tc := range cases {
		if got := classifyConnectionError(tc.err); got != tc.want {
			t.Errorf("classifyConnectionError(%v) = %q, want %q", tc.err, got, tc.want)
		}
	}
}
