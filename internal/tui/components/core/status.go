package core

import (
	"time"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/muesli/reflow/truncate"

	"github.com/sst/ghosttext/internal/llm/models"
	"github.com/sst/ghosttext/internal/pubsub"
	"github.com/sst/ghosttext/internal/status"
	"github.com/sst/ghosttext/internal/tui/styles"
	"github.com/sst/ghosttext/internal/tui/theme"
)

type StatusCmp interface {
	tea.Model
	SetPending(pending bool) tea.Cmd
	SetKeyMap(keys help.KeyMap)
}

type statusCmp struct {
	statusMessages []statusMessage
	width          int
	messageTTL     time.Duration
	model          models.Model
	pending        bool
	spinner        spinner.Model
	help           help.Model
	keys           help.KeyMap
}

type statusMessage struct {
	Level     status.Level
	Message   string
	Timestamp time.Time
	ExpiresAt time.Time
}

// clearMessageCmd is a command that clears status messages after a timeout
func (m *statusCmp) clearMessageCmd() tea.Cmd {
	return tea.Tick(time.Second, func(t time.Time) tea.Msg {
		return statusCleanupMsg{time: t}
	})
}

// statusCleanupMsg is a message that triggers cleanup of expired status messages
type statusCleanupMsg struct {
	time time.Time
}

func (m *statusCmp) Init() tea.Cmd {
	return m.clearMessageCmd()
}

func (m *statusCmp) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.help.Width = msg.Width / 2
		return m, nil
	case spinner.TickMsg:
		// Let the tick chain die out once nothing is pending.
		if !m.pending {
			return m, nil
		}
		var cmd tea.Cmd
		m.spinner, cmd = m.spinner.Update(msg)
		return m, cmd
	case pubsub.Event[status.StatusMessage]:
		if msg.Type == status.EventStatusPublished {
			statusMsg := statusMessage{
				Level:     msg.Payload.Level,
				Message:   msg.Payload.Message,
				Timestamp: msg.Payload.Timestamp,
				ExpiresAt: msg.Payload.Timestamp.Add(m.messageTTL),
			}
			m.statusMessages = append(m.statusMessages, statusMsg)
		}
	case statusCleanupMsg:
		// Remove expired messages
		var activeMessages []statusMessage
		for _, sm := range m.statusMessages {
			if sm.ExpiresAt.After(msg.time) {
				activeMessages = append(activeMessages, sm)
			}
		}
		m.statusMessages = activeMessages
		return m, m.clearMessageCmd()
	}
	return m, nil
}

// SetPending shows the spinner while a suggestion is on its way.
func (m *statusCmp) SetPending(pending bool) tea.Cmd {
	started := pending && !m.pending
	m.pending = pending
	if started {
		return m.spinner.Tick
	}
	return nil
}

func (m *statusCmp) SetKeyMap(keys help.KeyMap) {
	m.keys = keys
}

func (m *statusCmp) helpWidget() string {
	t := theme.CurrentTheme()
	text := "ctrl+l logs"
	if m.keys != nil {
		m.help.Styles.ShortKey = lipgloss.NewStyle().Foreground(t.BackgroundDarker()).Bold(true)
		m.help.Styles.ShortDesc = lipgloss.NewStyle().Foreground(t.BackgroundDarker())
		m.help.Styles.ShortSeparator = lipgloss.NewStyle().Foreground(t.BackgroundDarker())
		text = m.help.ShortHelpView(m.keys.ShortHelp())
	}
	return styles.Padded().
		Background(t.TextMuted()).
		Foreground(t.BackgroundDarker()).
		Render(text)
}

func (m *statusCmp) activity() string {
	t := theme.CurrentTheme()
	text := styles.GhostIcon
	if m.pending {
		text = m.spinner.View()
	}
	return styles.Padded().
		Background(t.BackgroundDarker()).
		Foreground(t.Primary()).
		Render(text)
}

func (m *statusCmp) modelName() string {
	t := theme.CurrentTheme()
	name := m.model.Name
	if name == "" {
		name = "Unknown"
	}
	return styles.Padded().
		Background(t.Secondary()).
		Foreground(t.Background()).
		Render(name)
}

func (m *statusCmp) View() string {
	t := theme.CurrentTheme()

	helpWidget := m.helpWidget()
	activity := m.activity()
	modelName := m.modelName()

	statusWidth := max(
		0,
		m.width-
			lipgloss.Width(helpWidget)-
			lipgloss.Width(activity)-
			lipgloss.Width(modelName),
	)

	bar := helpWidget
	// Display the newest status message if available
	if len(m.statusMessages) > 0 {
		sm := m.statusMessages[len(m.statusMessages)-1]
		infoStyle := styles.Padded().
			Foreground(t.Background()).
			Width(statusWidth)

		icon := styles.InfoIcon
		switch sm.Level {
		case status.LevelInfo:
			infoStyle = infoStyle.Background(t.Info())
		case status.LevelWarn:
			infoStyle = infoStyle.Background(t.Warning())
			icon = styles.WarningIcon
		case status.LevelError:
			infoStyle = infoStyle.Background(t.Error())
			icon = styles.ErrorIcon
		case status.LevelDebug:
			infoStyle = infoStyle.Background(t.TextMuted())
			icon = styles.DebugIcon
		}

		// Truncate message if it's longer than available width
		msg := icon + " " + sm.Message
		if availWidth := statusWidth - 2; availWidth > 0 {
			msg = truncate.StringWithTail(msg, uint(availWidth), "…")
		}
		bar += infoStyle.Render(msg)
	} else {
		bar += styles.Padded().
			Foreground(t.Text()).
			Background(t.BackgroundSecondary()).
			Width(statusWidth).
			Render("")
	}

	bar += activity
	bar += modelName
	return bar
}

func NewStatusCmp(model models.Model) StatusCmp {
	return &statusCmp{
		statusMessages: []statusMessage{},
		messageTTL:     4 * time.Second,
		model:          model,
		spinner:        spinner.New(spinner.WithSpinner(spinner.MiniDot)),
		help:           help.New(),
	}
}
