package repl

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/charmbracelet/bubbles/textinput"
	"github.com/charmbracelet/lipgloss"
	"github.com/mattn/go-isatty"
	"github.com/sahilm/fuzzy"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/ardnew/kaleido/lang"
	"github.com/ardnew/kaleido/log"
)

const (
	inputPrompt = "ready> "
	ctrlPrompt  = "     : "
)

func helpMessage() string {
	return `
: Commands (press Esc to toggle mode):

  help     Print this help
  list     List functions defined or declared in this session
  prec     Print the operator precedence table
  clear    Clear screen
  quit     Exit REPL

Usage:
  Type definitions, externs, and expressions; each line is parsed on Enter
  Completions appear automatically as you type
  Press Tab / Shift-Tab to cycle through candidates
  Press Space to accept the current candidate
  Press Esc to toggle between input and command modes
  Use Up/Down arrows for history navigation (mode switches automatically)
  Use Shift+Up/Shift+Down for history navigation within current mode only
  Use Alt+Up/Alt+Down to navigate command history
    (restores original mode when reaching end of history)
  Press Ctrl+C on empty line or Ctrl+D to exit
`
}

// inputMode represents the current input mode.
type inputMode int

const (
	modeInput inputMode = iota
	modeCtrl
)

// prefix marks the mode of a line in the history file.
func (m inputMode) prefix() string {
	if m == modeCtrl {
		return "C:"
	}

	return "E:"
}

// Styles.
var (
	promptStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("6")).
			Bold(true)
	ctrlPromptStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("5")).
			Bold(true)
	inputStyle      = lipgloss.NewStyle().Foreground(lipgloss.Color("15"))
	resultStyle     = lipgloss.NewStyle().Foreground(lipgloss.Color("2"))
	errorStyle      = lipgloss.NewStyle().Foreground(lipgloss.Color("1"))
	hintStyle       = lipgloss.NewStyle().Foreground(lipgloss.Color("8"))
	suggestionStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("4"))
	matchStyle      = lipgloss.NewStyle().
			Foreground(lipgloss.Color("4")).
			Bold(true)
	selectedStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("0")).
			Background(lipgloss.Color("4"))
	selectedMatchStyle = selectedStyle.Bold(true)
)

// echo formats the echo line of submitted input.
func echo(mode inputMode, input string) string {
	if mode == modeCtrl {
		return ctrlPromptStyle.Render(ctrlPrompt) + inputStyle.Render(input)
	}

	return promptStyle.Render(inputPrompt) + inputStyle.Render(input)
}

// Config configures a REPL run.
type Config struct {
	In       io.Reader
	Out      io.Writer
	Logger   log.Logger
	CacheDir string // history is kept here; empty disables persistence
	Options  []lang.Option
	Plain    bool // use the line-oriented loop even on a terminal
}

// Run starts the REPL. When In is not a terminal, or Plain is set, it runs
// the line-oriented driver loop of [Plain] instead of the interactive model.
func Run(ctx context.Context, cfg Config) error {
	if cfg.In == nil {
		cfg.In = os.Stdin
	}

	if cfg.Out == nil {
		cfg.Out = os.Stderr
	}

	interactive := !cfg.Plain && isTerminal(cfg.In)

	cfg.Logger.TraceContext(ctx, "repl start",
		slog.String("cache_dir", cfg.CacheDir),
		slog.Bool("interactive", interactive))

	if !interactive {
		return Plain(ctx, cfg.In, cfg.Out,
			append(cfg.Options, lang.WithLogger(cfg.Logger))...)
	}

	var path string
	if cfg.CacheDir != "" {
		path = filepath.Join(cfg.CacheDir, baseHistory)
	}

	history := NewHistory(path)
	if err := history.Load(); err != nil {
		cfg.Logger.WarnContext(ctx, "could not load history", slog.Any("error", err))
	}

	cfg.Logger.TraceContext(ctx, "repl history loaded",
		slog.Int("entry_count", history.Len()))

	m := newModel(ctx, NewSession(cfg.Logger, cfg.Options...), history, cfg.Logger)

	_, err := tea.NewProgram(m,
		tea.WithContext(ctx),
		tea.WithInput(cfg.In),
		tea.WithOutput(cfg.Out),
	).Run()

	return err
}

func isTerminal(r io.Reader) bool {
	f, ok := r.(interface{ Fd() uintptr })
	if !ok {
		return false
	}

	return isatty.IsTerminal(f.Fd()) || isatty.IsCygwinTerminal(f.Fd())
}

// model is the Bubble Tea model for the REPL.
type model struct {
	ctxFunc          func() context.Context
	session          *Session
	history          *History
	logger           log.Logger
	input            textinput.Model
	matches          fuzzy.Matches // current fuzzy match results
	preTabText       string        // input text before tab-cycling began
	altNavOrigText   string        // original text before Alt navigation
	inputText        string
	ctrlText         string
	historyIdx       int
	wordStart        int // byte offset of current word start
	wordEnd          int // byte offset of current word end
	suggIdx          int // selected candidate index
	preTabCursor     int
	altNavOrigCursor int
	width            int // terminal width for ellipsization
	inputCursor      int
	ctrlCursor       int
	mode             inputMode
	altNavOrigMode   inputMode
	tabActive        bool // whether user is tab-cycling
	altNavActive     bool // whether user is in Alt+Up/Down navigation
	quitting         bool
}

const defaultWidth = 80

func newModel(
	ctx context.Context,
	session *Session,
	history *History,
	logger log.Logger,
) model {
	ti := textinput.New()
	ti.Prompt = promptStyle.Render(inputPrompt)
	ti.Focus()
	ti.CharLimit = 4096
	ti.Width = defaultWidth

	return model{
		ctxFunc:    func() context.Context { return ctx },
		session:    session,
		input:      ti,
		logger:     logger,
		history:    history,
		historyIdx: history.Len(),
		width:      defaultWidth,
		mode:       modeInput,
	}
}

func (m model) Init() tea.Cmd {
	return textinput.Blink
}

func (m model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		return m.handleKey(msg)

	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.input.Width = msg.Width - len(inputPrompt) - 2

		return m, nil
	}

	var cmd tea.Cmd

	m.input, cmd = m.input.Update(msg)

	return m, cmd
}

func (m model) View() string {
	if m.quitting {
		return ""
	}

	return m.input.View() + "\n" + m.hintLine() + "\n"
}

// hintLine renders the line below the input: history position, usage hint,
// signature, or completion candidates.
func (m model) hintLine() string {
	input := m.input.Value()

	if m.historyIdx < m.history.Len() {
		return hintStyle.Render(fmt.Sprintf("%s/%d",
			lipgloss.NewStyle().Bold(true).Render(strconv.Itoa(m.historyIdx+1)),
			m.history.Len()))
	}

	if strings.TrimSpace(input) == "" {
		if m.mode == modeInput {
			return hintStyle.Render("Type a definition, extern, or expression; Esc for commands")
		}

		return hintStyle.Render("Type: " + strings.Join(ctrlCommands, ", ") + " (press Esc to return)")
	}

	// Completion while typing a word takes priority over the signature.
	if len(m.matches) > 0 {
		return renderCandidateBar(m.matches, m.suggIdx, m.tabActive, m.width)
	}

	if m.mode == modeInput {
		if call := detectFunctionCall(input, m.input.Position()); call.inCall {
			if sig, params := getSignature(m.session.AST(), call.name); sig != "" {
				return renderSignatureHint(sig, params, call.argIndex)
			}
		}
	}

	return ""
}

func (m model) handleKey(msg tea.KeyMsg) (model, tea.Cmd) {
	m.logger.TraceContext(m.ctxFunc(), "repl keypress",
		slog.String("key", msg.String()),
		slog.Int("type", int(msg.Type)))

	switch msg.Type {
	case tea.KeyCtrlC:
		if m.input.Value() == "" {
			m.quitting = true

			return m, tea.Quit
		}

		m.input.SetValue("")
		m.tabActive = false
		m.altNavActive = false
		m.historyIdx = m.history.Len()
		refreshMatches(&m, false)

		return m, nil

	case tea.KeyCtrlD:
		if m.input.Value() == "" {
			m.quitting = true

			return m, tea.Quit
		}

		return m, nil

	case tea.KeyEnter:
		m.altNavActive = false

		if !m.tabActive || len(m.matches) == 0 {
			return m.executeInput()
		}

		// Lock in the current tab candidate without executing.
		m.tabActive = false
		refreshMatches(&m, true)

		return m, nil

	case tea.KeyTab:
		return m.cycle(1), nil

	case tea.KeyShiftTab:
		return m.cycle(-1), nil

	case tea.KeyUp:
		if msg.Alt {
			return m.historyCtrl(-1), nil
		}

		return m.historySeek(-1, false), nil

	case tea.KeyDown:
		if msg.Alt {
			return m.historyCtrl(1), nil
		}

		return m.historySeek(1, false), nil

	case tea.KeyShiftUp:
		return m.historySeek(-1, true), nil

	case tea.KeyShiftDown:
		return m.historySeek(1, true), nil

	case tea.KeyEsc:
		if m.tabActive {
			m.tabActive = false
			m.input.SetValue(m.preTabText)
			m.input.SetCursor(m.preTabCursor)
			refreshMatches(&m, false)

			return m, nil
		}

		m.altNavActive = false

		return m.switchToMode(1 - m.mode), nil

	case tea.KeyRunes, tea.KeySpace:
		// Space accepts the candidate being cycled.
		if m.tabActive && msg.String() == " " {
			m.tabActive = false
		}

		var cmd tea.Cmd

		m.historyIdx = m.history.Len()
		m.input, cmd = m.input.Update(msg)
		refreshMatches(&m, true)

		return m, cmd
	}

	// Other keys edit or move without completing.
	var cmd tea.Cmd

	m.tabActive = false
	m.altNavActive = false
	m.historyIdx = m.history.Len()
	m.input, cmd = m.input.Update(msg)
	refreshMatches(&m, false)

	return m, cmd
}

// cycle steps through the candidates in direction step. A sole candidate is
// completed immediately.
func (m model) cycle(step int) model {
	n := len(m.matches)

	switch {
	case n == 0:
		return m

	case n == 1:
		replaceCurrentWord(&m, m.matches[0].Str)
		m.tabActive = false
		m.suggIdx = -1
		m.matches = nil

		return m

	case m.tabActive:
		m.suggIdx = (m.suggIdx + step + n) % n

	default:
		m.tabActive = true
		m.preTabText = m.input.Value()
		m.preTabCursor = m.input.Position()
		m.suggIdx = 0

		if step < 0 {
			m.suggIdx = n - 1
		}
	}

	replaceCurrentWord(&m, m.matches[m.suggIdx].Str)

	return m
}

// replaceCurrentWord replaces the current word boundaries in the input with
// the given replacement text and repositions the cursor.
func replaceCurrentWord(m *model, replacement string) {
	input := m.input.Value()
	cursor := m.wordStart + len(replacement)

	m.input.SetValue(input[:m.wordStart] + replacement + input[m.wordEnd:])
	m.input.SetCursor(cursor)

	m.wordEnd = cursor
}

// refreshMatches recomputes fuzzy matches for the current input state.
// When autoConfirm is true and the typed word already equals the sole
// candidate, the completion is confirmed. Deletions and cursor movement pass
// false so that editing never completes unexpectedly.
func refreshMatches(m *model, autoConfirm bool) {
	m.matches, m.wordStart, m.wordEnd = m.computeMatches()

	if !m.tabActive {
		m.suggIdx = -1
	}

	if !autoConfirm || len(m.matches) != 1 {
		return
	}

	if m.input.Value()[m.wordStart:m.wordEnd] == m.matches[0].Str {
		m.tabActive = false
		m.suggIdx = -1
		m.matches = nil
	}
}

func (m model) executeInput() (model, tea.Cmd) {
	input := strings.TrimSpace(m.input.Value())
	if input == "" {
		return m, nil
	}

	m.inputText, m.inputCursor = "", 0
	m.ctrlText, m.ctrlCursor = "", 0
	m.input.SetValue("")
	m.matches = nil

	if _, err := m.history.WriteWithMode(input, m.mode); err != nil {
		m.logger.DebugContext(m.ctxFunc(), "history write failed",
			slog.Any("error", err))
	}

	m.historyIdx = m.history.Len()

	if m.mode == modeCtrl {
		return m.executeCommand(input)
	}

	cmds := []tea.Cmd{tea.Println(echo(modeInput, input))}

	for _, res := range m.session.Eval(m.ctxFunc(), input) {
		if res.Err != nil {
			cmds = append(cmds, tea.Println(errorStyle.Render(res.Message())))

			continue
		}

		cmds = append(cmds, tea.Println(
			resultStyle.Render(res.Message())+" "+hintStyle.Render(m.session.Sprint(res.Item))))
	}

	return m, tea.Sequence(cmds...)
}

func (m model) executeCommand(input string) (model, tea.Cmd) {
	parts := strings.Fields(input)
	if len(parts) == 0 {
		return m, nil
	}

	echoCmd := tea.Println(echo(modeCtrl, input))

	m.logger.TraceContext(m.ctxFunc(), "repl command",
		slog.String("command", parts[0]),
		slog.Any("args", parts[1:]))

	switch parts[0] {
	case "q", "quit", "exit":
		m.quitting = true

		return m, tea.Sequence(echoCmd, tea.Quit)

	case "h", "help":
		return m, tea.Sequence(echoCmd, tea.Println(helpMessage()))

	case "l", "list":
		return m, tea.Sequence(echoCmd, tea.Println(m.listFunctions()))

	case "p", "prec":
		return m, tea.Sequence(echoCmd, tea.Println(m.listPrecedence()))

	case "c", "clear":
		return m, tea.ClearScreen

	default:
		return m, tea.Sequence(echoCmd, tea.Println(
			errorStyle.Render("Unknown command: "+parts[0]+" (try 'help')")))
	}
}

func (m model) listFunctions() string {
	var b strings.Builder

	for _, name := range m.session.Names() {
		proto, _ := m.session.AST().Lookup(name)
		fmt.Fprintf(&b, "  %s\n", proto)
	}

	if b.Len() == 0 {
		return hintStyle.Render("  (no functions)")
	}

	return strings.TrimSuffix(b.String(), "\n")
}

func (m model) listPrecedence() string {
	var b strings.Builder

	for op, prec := range m.session.Precedence().Operators() {
		fmt.Fprintf(&b, "  %c %s\n", op, hintStyle.Render(strconv.Itoa(prec)))
	}

	return strings.TrimSuffix(b.String(), "\n")
}

// historySeek moves through history in direction step. With sameMode it
// visits only entries of the current mode; otherwise it switches mode to
// match each entry. Moving past the newest entry clears the input.
func (m model) historySeek(step int, sameMode bool) model {
	for i := m.historyIdx + step; i >= 0 && i < m.history.Len(); i += step {
		entry, err := m.history.GetEntry(i)
		if err != nil || (sameMode && entry.Mode != m.mode) {
			continue
		}

		m.historyIdx = i

		if entry.Mode != m.mode {
			m = m.switchToMode(entry.Mode)
		}

		m.setInput(entry.Line, len(entry.Line))

		return m
	}

	if step > 0 && m.historyIdx < m.history.Len() {
		m.historyIdx = m.history.Len()
		m.setInput("", 0)
	}

	return m
}

// historyCtrl navigates command history only. The mode and input in effect
// before navigation began are restored when either end is passed.
func (m model) historyCtrl(step int) model {
	if !m.altNavActive {
		m.altNavActive = true
		m.altNavOrigMode = m.mode
		m.altNavOrigText = m.input.Value()
		m.altNavOrigCursor = m.input.Position()

		if m.mode != modeCtrl {
			m = m.switchToMode(modeCtrl)
		}
	}

	for i := m.historyIdx + step; i >= 0 && i < m.history.Len(); i += step {
		if entry, err := m.history.GetEntry(i); err == nil && entry.Mode == modeCtrl {
			m.historyIdx = i
			m.setInput(entry.Line, len(entry.Line))

			return m
		}
	}

	m.altNavActive = false

	if m.altNavOrigMode != m.mode {
		m = m.switchToMode(m.altNavOrigMode)
	}

	m.historyIdx = m.history.Len()
	m.setInput(m.altNavOrigText, m.altNavOrigCursor)

	return m
}

func (m *model) setInput(text string, cursor int) {
	m.input.SetValue(text)
	m.input.SetCursor(cursor)
	refreshMatches(m, false)
}

// switchToMode switches to the specified mode, preserving the input of each
// mode.
func (m model) switchToMode(mode inputMode) model {
	if m.mode == modeInput {
		m.inputText, m.inputCursor = m.input.Value(), m.input.Position()
	} else {
		m.ctrlText, m.ctrlCursor = m.input.Value(), m.input.Position()
	}

	m.mode = mode

	if mode == modeInput {
		m.input.Prompt = promptStyle.Render(inputPrompt)
		m.setInput(m.inputText, m.inputCursor)
	} else {
		m.input.Prompt = ctrlPromptStyle.Render(ctrlPrompt)
		m.setInput(m.ctrlText, m.ctrlCursor)
	}

	return m
}
