package editor

import (
	"context"
	"errors"
	"log/slog"
	"strings"
	"time"

	"github.com/atotto/clipboard"
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	zone "github.com/lrstanley/bubblezone"

	"github.com/sst/ghosttext/internal/logging"
	"github.com/sst/ghosttext/internal/status"
	"github.com/sst/ghosttext/internal/suggest"
	"github.com/sst/ghosttext/internal/tui/layout"
	"github.com/sst/ghosttext/internal/tui/styles"
	"github.com/sst/ghosttext/internal/tui/util"
)

const (
	ghostZoneID = "ghost"
	placeholder = "Start typing…"
)

var errSuggestPanicked = errors.New("suggestion request panicked")

// Suggester completes one request. *suggest.Client implements it.
type Suggester interface {
	Suggest(ctx context.Context, req suggest.Request) suggest.Result
}

type EditorComponent interface {
	tea.Model
	layout.Sizeable
	layout.Focusable
	layout.Bindings
	Value() string
	State() suggest.State
	// ClearSuggestion drops a shown or pending suggestion. The root model
	// calls it for global keys the editor never sees.
	ClearSuggestion()
}

// debounceMsg fires when a debounce period armed by an edit ends.
type debounceMsg struct {
	token suggest.Token
}

type editorCmp struct {
	ctx       context.Context
	width     int
	height    int
	focused   bool
	buffer    *Buffer
	presenter *suggest.Presenter
	suggester Suggester
	keys      KeyMap
	zones     *zone.Manager

	// clipboard access is swappable for tests
	readClipboard  func() (string, error)
	writeClipboard func(string) error
}

type Option func(*editorCmp)

func WithKeyMap(keys KeyMap) Option {
	return func(e *editorCmp) {
		e.keys = keys
	}
}

// WithZones enables click-to-accept on the ghost text. The caller owns the
// manager and must Scan the final view.
func WithZones(zones *zone.Manager) Option {
	return func(e *editorCmp) {
		e.zones = zones
	}
}

func WithContext(ctx context.Context) Option {
	return func(e *editorCmp) {
		e.ctx = ctx
	}
}

func WithClipboard(read func() (string, error), write func(string) error) Option {
	return func(e *editorCmp) {
		e.readClipboard = read
		e.writeClipboard = write
	}
}

func NewEditorCmp(presenter *suggest.Presenter, suggester Suggester, opts ...Option) EditorComponent {
	e := &editorCmp{
		ctx:            context.Background(),
		focused:        true,
		buffer:         NewBuffer(""),
		presenter:      presenter,
		suggester:      suggester,
		keys:           DefaultKeyMap(),
		readClipboard:  clipboard.ReadAll,
		writeClipboard: clipboard.WriteAll,
	}
	for _, o := range opts {
		o(e)
	}
	return e
}

func (m *editorCmp) Init() tea.Cmd {
	return nil
}

func (m *editorCmp) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case debounceMsg:
		req, ok := m.presenter.Fire(msg.token, m.buffer.Text(), m.buffer.Cursor())
		if !ok {
			return m, nil
		}
		slog.Debug("suggestion requested", "request_id", req.ID, "length", len(req.Text))
		return m, m.request(req)

	case suggest.Result:
		if s, ok := m.presenter.Resolve(msg, m.buffer.Text()); ok {
			slog.Debug("suggestion shown", "request_id", s.RequestID, "cached", s.Cached)
		}
		return m, nil

	case tea.MouseMsg:
		if msg.Action == tea.MouseActionRelease && msg.Button == tea.MouseButtonLeft &&
			m.zones != nil && m.zones.Get(ghostZoneID).InBounds(msg) {
			m.accept()
		}
		return m, nil

	case tea.KeyMsg:
		if !m.focused {
			return m, nil
		}
		return m, m.handleKey(msg)
	}
	return m, nil
}

func (m *editorCmp) handleKey(msg tea.KeyMsg) tea.Cmd {
	switch {
	case key.Matches(msg, m.keys.Accept):
		// Without a suggestion Tab does nothing.
		m.accept()
		return nil
	case key.Matches(msg, m.keys.Dismiss):
		m.presenter.Dismiss()
		return nil
	case key.Matches(msg, m.keys.Newline):
		m.buffer.Insert("\n")
		return m.edited()
	case key.Matches(msg, enterKey):
		m.presenter.Interrupt()
		return nil
	case key.Matches(msg, m.keys.Paste):
		text, err := m.readClipboard()
		if err != nil {
			m.presenter.Interrupt()
			status.Warn("Clipboard unavailable: " + err.Error())
			return nil
		}
		if text == "" {
			m.presenter.Interrupt()
			return nil
		}
		m.buffer.Insert(text)
		return m.edited()
	case key.Matches(msg, m.keys.Copy):
		m.presenter.Interrupt()
		if err := m.writeClipboard(m.buffer.Text()); err != nil {
			status.Warn("Clipboard unavailable: " + err.Error())
			return nil
		}
		status.Info("Copied to clipboard")
		return nil
	case key.Matches(msg, deletion.Backspace):
		return m.editIf(m.buffer.Backspace())
	case key.Matches(msg, deletion.Delete):
		return m.editIf(m.buffer.Delete())
	case key.Matches(msg, deletion.DeleteWord):
		return m.editIf(m.buffer.DeleteWordBackward())
	case key.Matches(msg, motion.Left):
		m.move(m.buffer.Left)
	case key.Matches(msg, motion.Right):
		m.move(m.buffer.Right)
	case key.Matches(msg, motion.Up):
		m.move(m.buffer.Up)
	case key.Matches(msg, motion.Down):
		m.move(m.buffer.Down)
	case key.Matches(msg, motion.Home):
		m.move(m.buffer.Home)
	case key.Matches(msg, motion.End):
		m.move(m.buffer.End)
	case (msg.Type == tea.KeyRunes || msg.Type == tea.KeySpace) && !msg.Alt:
		m.buffer.Insert(string(msg.Runes))
		return m.edited()
	default:
		m.presenter.Interrupt()
	}
	return nil
}

func (m *editorCmp) move(fn func() bool) {
	m.presenter.Interrupt()
	fn()
}

func (m *editorCmp) accept() bool {
	text, ok := m.presenter.Accept()
	if !ok {
		return false
	}
	m.buffer.Insert(text)
	return true
}

func (m *editorCmp) editIf(changed bool) tea.Cmd {
	if !changed {
		m.presenter.Interrupt()
		return nil
	}
	return m.edited()
}

// edited records a buffer change and schedules the debounce tick.
func (m *editorCmp) edited() tea.Cmd {
	token, ok := m.presenter.Edit(m.buffer.Text())
	if !ok {
		return nil
	}
	return tea.Tick(m.presenter.Debouncer().Delay(), func(time.Time) tea.Msg {
		return debounceMsg{token: token}
	})
}

// request runs the network call off the event loop. Its result comes back
// as a suggest.Result message.
func (m *editorCmp) request(req suggest.Request) tea.Cmd {
	ctx := m.ctx
	suggester := m.suggester
	return func() (msg tea.Msg) {
		defer logging.RecoverPanic("suggest", func() {
			msg = suggest.Result{Request: req, Err: errSuggestPanicked}
		})
		return suggester.Suggest(ctx, req)
	}
}

func (m *editorCmp) View() string {
	before := m.buffer.Before()
	after := m.buffer.After()
	cursorStyle := styles.Cursor()

	var head, tail string
	if s, ok := m.presenter.Suggestion(); ok {
		first, rest := firstGrapheme(s.Text)
		ghost := styles.Ghost()
		cell := cursorStyle.Inherit(ghost).Render(first)
		ghostRest := ghost.Render(rest)
		if m.zones != nil {
			// One zone spans the cursor cell and the rest of the ghost.
			span := cell + ghostRest
			marked := m.zones.Mark(ghostZoneID, span)
			if n := (len(marked) - len(span)) / 2; n > 0 {
				cell = marked[:n] + cell
				ghostRest += marked[len(marked)-n:]
			}
		}
		head = before + cell
		tail = ghostRest + after
	} else {
		cell, rest := firstGrapheme(after)
		if cell == "" || cell == "\n" || cell == "\r\n" {
			cell, rest = " ", after
		}
		head = before + cursorStyle.Render(cell)
		tail = rest
		if m.buffer.Empty() {
			tail = styles.Muted().Render(placeholder)
		}
	}

	return m.window(head, tail)
}

// window wraps the rendered text to the component width and keeps the line
// holding the cursor visible.
func (m *editorCmp) window(head, tail string) string {
	style := lipgloss.NewStyle()
	if m.width > 0 {
		style = style.Width(m.width)
	}
	full := style.Render(head + tail)
	if m.height <= 0 {
		return full
	}

	lines := strings.Split(full, "\n")
	if len(lines) <= m.height {
		return full
	}
	cursorLine := lipgloss.Height(style.Render(head)) - 1
	end := util.Clamp(cursorLine+1, m.height, len(lines))
	return strings.Join(lines[end-m.height:end], "\n")
}

func (m *editorCmp) Value() string {
	return m.buffer.Text()
}

func (m *editorCmp) State() suggest.State {
	return m.presenter.State()
}

func (m *editorCmp) SetSize(width, height int) tea.Cmd {
	m.width = width
	m.height = height
	return nil
}

func (m *editorCmp) GetSize() (int, int) {
	return m.width, m.height
}

func (m *editorCmp) Focus() tea.Cmd {
	m.focused = true
	return nil
}

func (m *editorCmp) ClearSuggestion() {
	m.presenter.Interrupt()
}

func (m *editorCmp) Blur() tea.Cmd {
	m.focused = false
	m.presenter.Interrupt()
	return nil
}

func (m *editorCmp) IsFocused() bool {
	return m.focused
}

func (m *editorCmp) BindingKeys() []key.Binding {
	return layout.KeyMapToSlice(m.keys)
}
