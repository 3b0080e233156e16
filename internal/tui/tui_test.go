package tui

import (
	"context"
	"testing"
	"time"

	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/x/ansi"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/sst/ghosttext/internal/app"
	"github.com/sst/ghosttext/internal/config"
	"github.com/sst/ghosttext/internal/llm/models"
	"github.com/sst/ghosttext/internal/llm/provider"
	"github.com/sst/ghosttext/internal/suggest"
	"github.com/sst/ghosttext/internal/tui/page"
	"github.com/sst/ghosttext/internal/tui/theme"
)

type stubProvider struct{}

func (stubProvider) Complete(ctx context.Context, prompt provider.Prompt) (*provider.ProviderResponse, error) {
	return &provider.ProviderResponse{Content: " fox"}, nil
}

func (stubProvider) Model() models.Model {
	return models.SupportedModels[models.Claude3Haiku]
}

func newTestModel(t *testing.T) *appModel {
	t.Helper()
	cfg := &config.Config{
		Provider: models.ProviderAnthropic,
		Model:    models.Claude3Haiku,
		Suggest: config.SuggestConfig{
			Debounce:   time.Millisecond,
			Timeout:    time.Second,
			MinChars:   3,
			MaxContext: 2000,
		},
	}
	a, err := app.NewWithProvider(cfg, stubProvider{})
	require.NoError(t, err)
	t.Cleanup(a.Shutdown)

	m := New(context.Background(), a, nil).(*appModel)
	next, _ := m.Update(tea.WindowSizeMsg{Width: 100, Height: 20})
	return asModel(next)
}

func asModel(m tea.Model) *appModel {
	switch v := m.(type) {
	case appModel:
		return &v
	case *appModel:
		return v
	}
	panic("unexpected model type")
}

func send(m *appModel, msg tea.Msg) (*appModel, tea.Cmd) {
	next, cmd := m.Update(msg)
	return asModel(next), cmd
}

// settle runs cmd and feeds its messages back into the model. Spinner ticks
// are dropped so the chain ends.
func settle(t *testing.T, m *appModel, cmd tea.Cmd) *appModel {
	t.Helper()
	if cmd == nil {
		return m
	}
	switch msg := cmd().(type) {
	case nil, spinner.TickMsg:
		return m
	case tea.BatchMsg:
		for _, c := range msg {
			m = settle(t, m, c)
		}
		return m
	default:
		next, cmd := send(m, msg)
		return settle(t, next, cmd)
	}
}

func typeAndSettle(t *testing.T, m *appModel, text string) *appModel {
	t.Helper()
	m, cmd := send(m, tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(text)})
	return settle(t, m, cmd)
}

func TestGlobalKeysClearShownSuggestion(t *testing.T) {
	t.Cleanup(func() { _ = theme.SetMode(config.ThemeAuto) })

	for _, k := range []tea.KeyType{tea.KeyCtrlUnderscore, tea.KeyCtrlT} {
		m := newTestModel(t)
		m = typeAndSettle(t, m, "The quick brown")
		require.Equal(t, suggest.StateShown, m.editor.State())

		m, _ = send(m, tea.KeyMsg{Type: k})
		assert.Equal(t, suggest.StateIdle, m.editor.State(), tea.KeyMsg{Type: k}.String())
		assert.NotContains(t, ansi.Strip(m.View()), "The quick brown fox")
		assert.Equal(t, "The quick brown", m.editor.Value())
	}
}

func TestWindowSizeReservesStatusBar(t *testing.T) {
	m := newTestModel(t)
	w, h := m.editor.GetSize()
	assert.Equal(t, 100, w)
	assert.Equal(t, 20-statusHeight, h)
}

func TestViewShowsEditorAndStatus(t *testing.T) {
	m := newTestModel(t)
	view := ansi.Strip(m.View())
	assert.Contains(t, view, "Start typing…")
	assert.Contains(t, view, models.SupportedModels[models.Claude3Haiku].Name)
}

func TestResultRoutedToEditor(t *testing.T) {
	m := newTestModel(t)
	m, _ = send(m, tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune("The quick brown")})
	assert.Equal(t, suggest.StatePending, m.editor.State())

	// A result for a request that was never fired is stale and ignored.
	m, _ = send(m, suggest.Result{Request: suggest.Request{ID: 99}})
	assert.Equal(t, suggest.StatePending, m.editor.State())
}

func TestLogsPageRoundTrip(t *testing.T) {
	m := newTestModel(t)
	m, _ = send(m, tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune("The quick")})

	m, _ = send(m, tea.KeyMsg{Type: tea.KeyCtrlL})
	assert.Equal(t, page.LogsPage, m.currentPage)
	assert.Equal(t, suggest.StateIdle, m.editor.State(), "leaving the editor drops the pending request")
	assert.Contains(t, ansi.Strip(m.View()), "to go back")

	m, cmd := send(m, tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune("q")})
	require.NotNil(t, cmd)
	assert.Equal(t, page.LogsPage, m.currentPage)

	m, _ = send(m, cmd())
	assert.Equal(t, page.EditorPage, m.currentPage)
	assert.Equal(t, "The quick", m.editor.Value(), "q on the logs page is not typed")
	assert.True(t, m.editor.IsFocused())
}

func TestHelpToggleShrinksPage(t *testing.T) {
	m := newTestModel(t)
	m, _ = send(m, tea.KeyMsg{Type: tea.KeyCtrlUnderscore})
	require.True(t, m.showHelp)
	_, h := m.editor.GetSize()
	assert.Less(t, h, 20-statusHeight)
	assert.Contains(t, ansi.Strip(m.View()), "switch theme")

	m, _ = send(m, tea.KeyMsg{Type: tea.KeyCtrlUnderscore})
	_, h = m.editor.GetSize()
	assert.Equal(t, 20-statusHeight, h)
}

func TestSwitchThemeToggles(t *testing.T) {
	before := theme.IsDark()
	t.Cleanup(func() { _ = theme.SetMode(config.ThemeAuto) })

	m := newTestModel(t)
	send(m, tea.KeyMsg{Type: tea.KeyCtrlT})
	assert.NotEqual(t, before, theme.IsDark())
}

func TestQuit(t *testing.T) {
	m := newTestModel(t)
	_, cmd := send(m, tea.KeyMsg{Type: tea.KeyCtrlC})
	require.NotNil(t, cmd)
	assert.IsType(t, tea.QuitMsg{}, cmd())
}
