package logs

import (
	"fmt"
	"slices"
	"strings"

	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/sst/ghosttext/internal/logging"
	"github.com/sst/ghosttext/internal/tui/layout"
	"github.com/sst/ghosttext/internal/tui/theme"
)

type DetailComponent interface {
	tea.Model
	layout.Sizeable
}

type detailCmp struct {
	width, height int
	current       logging.Log
	viewport      viewport.Model
}

func (i *detailCmp) Init() tea.Cmd {
	return nil
}

func (i *detailCmp) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	if msg, ok := msg.(SelectedLogMsg); ok {
		if msg.ID != i.current.ID {
			i.current = logging.Log(msg)
			i.updateContent()
		}
	}
	return i, nil
}

func (i *detailCmp) updateContent() {
	t := theme.CurrentTheme()
	var content strings.Builder

	levelStyle := lipgloss.NewStyle().Bold(true).Foreground(levelColor(i.current.Level))
	content.WriteString(lipgloss.NewStyle().Foreground(t.TextMuted()).Render(i.current.Timestamp.Format("2006-01-02 15:04:05.000")))
	content.WriteString(" ")
	content.WriteString(levelStyle.Render(strings.ToUpper(i.current.Level)))
	content.WriteString("\n\n")

	content.WriteString(lipgloss.NewStyle().Width(max(1, i.width-2)).Foreground(t.Text()).Render(i.current.Message))
	content.WriteString("\n\n")

	if len(i.current.Attributes) > 0 {
		keyStyle := lipgloss.NewStyle().Foreground(t.Primary()).Bold(true)
		valueStyle := lipgloss.NewStyle().Foreground(t.Text())

		keys := make([]string, 0, len(i.current.Attributes))
		for k := range i.current.Attributes {
			keys = append(keys, k)
		}
		slices.Sort(keys)
		for _, k := range keys {
			fmt.Fprintf(&content, "%s: %s\n", keyStyle.Render(k), valueStyle.Render(i.current.Attributes[k]))
		}
	}

	i.viewport.SetContent(content.String())
}

func levelColor(level string) lipgloss.AdaptiveColor {
	t := theme.CurrentTheme()
	switch level {
	case "error":
		return t.Error()
	case "warn":
		return t.Warning()
	case "debug":
		return t.TextMuted()
	default:
		return t.Info()
	}
}

func (i *detailCmp) View() string {
	t := theme.CurrentTheme()
	return lipgloss.NewStyle().
		BorderStyle(lipgloss.RoundedBorder()).
		BorderForeground(t.TextMuted()).
		Render(i.viewport.View())
}

func (i *detailCmp) GetSize() (int, int) {
	return i.width, i.height
}

func (i *detailCmp) SetSize(width int, height int) tea.Cmd {
	i.width = width
	i.height = height
	i.viewport.Width = max(0, width-2)
	i.viewport.Height = max(0, height-2)
	i.updateContent()
	return nil
}

func NewLogsDetails() DetailComponent {
	return &detailCmp{
		viewport: viewport.New(0, 0),
	}
}
