package tui

import (
	"context"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	zone "github.com/lrstanley/bubblezone"

	"github.com/sst/ghosttext/internal/app"
	"github.com/sst/ghosttext/internal/config"
	"github.com/sst/ghosttext/internal/logging"
	"github.com/sst/ghosttext/internal/pubsub"
	"github.com/sst/ghosttext/internal/status"
	"github.com/sst/ghosttext/internal/suggest"
	"github.com/sst/ghosttext/internal/tui/components/core"
	"github.com/sst/ghosttext/internal/tui/components/editor"
	"github.com/sst/ghosttext/internal/tui/layout"
	"github.com/sst/ghosttext/internal/tui/page"
	"github.com/sst/ghosttext/internal/tui/styles"
	"github.com/sst/ghosttext/internal/tui/theme"
	"github.com/sst/ghosttext/internal/tui/util"
)

type keyMap struct {
	Logs        key.Binding
	Quit        key.Binding
	Help        key.Binding
	SwitchTheme key.Binding
}

const (
	quitKey      = "q"
	statusHeight = 1
)

var keys = keyMap{
	Logs: key.NewBinding(
		key.WithKeys("ctrl+l"),
		key.WithHelp("ctrl+l", "logs"),
	),
	Quit: key.NewBinding(
		key.WithKeys("ctrl+c"),
		key.WithHelp("ctrl+c", "quit"),
	),
	Help: key.NewBinding(
		key.WithKeys("ctrl+_"),
		key.WithHelp("ctrl+?", "toggle help"),
	),
	SwitchTheme: key.NewBinding(
		key.WithKeys("ctrl+t"),
		key.WithHelp("ctrl+t", "switch theme"),
	),
}

var logsKeyReturnKey = key.NewBinding(
	key.WithKeys("esc", "backspace", quitKey),
	key.WithHelp("esc/q", "go back"),
)

// helpKeys merges the editor bindings with the global ones for the help views.
type helpKeys struct {
	editor editor.KeyMap
}

func (h helpKeys) ShortHelp() []key.Binding {
	return append(h.editor.ShortHelp(), keys.Logs, keys.Help)
}

func (h helpKeys) FullHelp() [][]key.Binding {
	return append(h.editor.FullHelp(), layout.KeyMapToSlice(keys))
}

type appModel struct {
	width, height int
	currentPage   page.PageID
	previousPage  page.PageID
	pages         map[page.PageID]tea.Model
	loadedPages   map[page.PageID]bool
	editor        editor.EditorComponent
	status        core.StatusCmp
	help          help.Model
	keys          helpKeys
	zones         *zone.Manager
	app           *app.App

	showHelp bool
}

func (a appModel) Init() tea.Cmd {
	var cmds []tea.Cmd
	cmd := a.pages[a.currentPage].Init()
	a.loadedPages[a.currentPage] = true
	cmds = append(cmds, cmd)
	cmd = a.status.Init()
	cmds = append(cmds, cmd)
	return tea.Batch(cmds...)
}

func (a appModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmds []tea.Cmd
	var cmd tea.Cmd
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		msg.Height -= statusHeight
		a.width, a.height = msg.Width, msg.Height
		a.help.Width = msg.Width

		s, _ := a.status.Update(msg)
		a.status = s.(core.StatusCmp)
		return a, a.resizeCurrentPage()

	case page.PageChangeMsg:
		if msg.ID == page.EditorPage {
			return a, tea.Batch(a.moveToPage(msg.ID), a.editor.Focus())
		}
		return a, a.moveToPage(msg.ID)

	case pubsub.Event[logging.Log]:
		a.pages[page.LogsPage], cmd = a.pages[page.LogsPage].Update(msg)
		return a, cmd

	case pubsub.Event[status.StatusMessage]:
		s, cmd := a.status.Update(msg)
		a.status = s.(core.StatusCmp)
		return a, cmd

	case suggest.Result:
		return a, a.updateEditor(msg)

	case tea.KeyMsg:
		switch {
		case key.Matches(msg, keys.Quit):
			return a, tea.Quit
		case key.Matches(msg, keys.Logs):
			if a.currentPage == page.LogsPage {
				return a, nil
			}
			a.editor.Blur()
			a.status.SetPending(false)
			return a, a.moveToPage(page.LogsPage)
		case key.Matches(msg, keys.Help):
			a.clearSuggestion()
			a.showHelp = !a.showHelp
			return a, a.resizeCurrentPage()
		case key.Matches(msg, keys.SwitchTheme):
			a.clearSuggestion()
			mode := theme.ToggleMode()
			if err := config.UpdateTheme(mode); err != nil {
				status.Warn("Failed to save theme: " + err.Error())
				return a, nil
			}
			status.Info("Theme changed to: " + mode)
			return a, nil
		case a.currentPage == page.LogsPage && key.Matches(msg, logsKeyReturnKey):
			return a, util.CmdHandler(page.PageChangeMsg{ID: page.EditorPage})
		}
	}

	s, cmd := a.status.Update(msg)
	cmds = append(cmds, cmd)
	a.status = s.(core.StatusCmp)

	if a.currentPage == page.EditorPage {
		cmds = append(cmds, a.updateEditor(msg))
	} else {
		a.pages[a.currentPage], cmd = a.pages[a.currentPage].Update(msg)
		cmds = append(cmds, cmd)
	}
	return a, tea.Batch(cmds...)
}

func (a *appModel) updateEditor(msg tea.Msg) tea.Cmd {
	m, cmd := a.editor.Update(msg)
	a.editor = m.(editor.EditorComponent)
	a.pages[page.EditorPage] = a.editor
	pending := a.editor.State() == suggest.StatePending
	return tea.Batch(cmd, a.status.SetPending(pending))
}

// clearSuggestion applies the editor's keystroke rule to global keys.
func (a *appModel) clearSuggestion() {
	a.editor.ClearSuggestion()
	a.status.SetPending(false)
}

func (a *appModel) moveToPage(pageID page.PageID) tea.Cmd {
	var cmds []tea.Cmd
	if _, ok := a.loadedPages[pageID]; !ok {
		cmd := a.pages[pageID].Init()
		cmds = append(cmds, cmd)
		a.loadedPages[pageID] = true
	}
	a.previousPage = a.currentPage
	a.currentPage = pageID
	cmds = append(cmds, a.resizeCurrentPage())
	return tea.Batch(cmds...)
}

func (a *appModel) resizeCurrentPage() tea.Cmd {
	height := a.height
	if a.showHelp {
		height -= lipgloss.Height(a.helpView())
	}
	if sizable, ok := a.pages[a.currentPage].(layout.Sizeable); ok {
		return sizable.SetSize(a.width, max(0, height))
	}
	return nil
}

func (a appModel) helpView() string {
	t := theme.CurrentTheme()
	return styles.Padded().
		BorderStyle(lipgloss.NormalBorder()).
		BorderTop(true).
		BorderForeground(t.TextMuted()).
		Render(a.help.FullHelpView(a.keys.FullHelp()))
}

func (a appModel) View() string {
	components := []string{
		a.pages[a.currentPage].View(),
	}
	if a.showHelp {
		components = append(components, a.helpView())
	}
	components = append(components, a.status.View())

	appView := lipgloss.JoinVertical(lipgloss.Top, components...)
	if a.zones != nil {
		return a.zones.Scan(appView)
	}
	return appView
}

// New builds the root model. zones may be nil, which disables mouse
// acceptance of suggestions.
func New(ctx context.Context, app *app.App, zones *zone.Manager) tea.Model {
	cfg := app.Config()
	editorKeys := editor.NewKeyMap(cfg.Keys)

	opts := []editor.Option{
		editor.WithKeyMap(editorKeys),
		editor.WithContext(ctx),
	}
	if zones != nil {
		opts = append(opts, editor.WithZones(zones))
	}
	ed := editor.NewEditorCmp(app.NewPresenter(), app.Client, opts...)

	statusCmp := core.NewStatusCmp(cfg.SelectedModel())
	statusCmp.SetKeyMap(helpKeys{editor: editorKeys})

	return &appModel{
		currentPage: page.EditorPage,
		loadedPages: make(map[page.PageID]bool),
		editor:      ed,
		status:      statusCmp,
		help:        help.New(),
		keys:        helpKeys{editor: editorKeys},
		zones:       zones,
		app:         app,
		pages: map[page.PageID]tea.Model{
			page.EditorPage: ed,
			page.LogsPage:   page.NewLogsPage(app.Logs),
		},
	}
}
