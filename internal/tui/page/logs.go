package page

import (
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/sst/ghosttext/internal/logging"
	"github.com/sst/ghosttext/internal/tui/components/logs"
	"github.com/sst/ghosttext/internal/tui/layout"
	"github.com/sst/ghosttext/internal/tui/styles"
)

var LogsPage PageID = "logs"

type LogPage interface {
	tea.Model
	layout.Sizeable
	layout.Bindings
}

type logsPage struct {
	width, height int
	table         logs.TableComponent
	details       logs.DetailComponent
}

func (p *logsPage) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmds []tea.Cmd
	if msg, ok := msg.(tea.WindowSizeMsg); ok {
		return p, p.SetSize(msg.Width, msg.Height)
	}

	table, cmd := p.table.Update(msg)
	cmds = append(cmds, cmd)
	p.table = table.(logs.TableComponent)
	details, cmd := p.details.Update(msg)
	cmds = append(cmds, cmd)
	p.details = details.(logs.DetailComponent)

	return p, tea.Batch(cmds...)
}

func (p *logsPage) View() string {
	tableView := lipgloss.NewStyle().PaddingRight(3).Render(p.table.View())

	return lipgloss.JoinVertical(
		lipgloss.Left,
		styles.Bold().Render(" esc")+styles.Muted().Render(" to go back"),
		"",
		lipgloss.JoinHorizontal(lipgloss.Top,
			tableView,
			p.details.View(),
		),
	)
}

func (p *logsPage) BindingKeys() []key.Binding {
	return p.table.BindingKeys()
}

func (p *logsPage) GetSize() (int, int) {
	return p.width, p.height
}

func (p *logsPage) SetSize(width int, height int) tea.Cmd {
	p.width = width
	p.height = height
	return tea.Batch(
		p.table.SetSize(width/2-3, height-3),
		p.details.SetSize(width-width/2, height-3),
	)
}

func (p *logsPage) Init() tea.Cmd {
	return tea.Batch(
		p.table.Init(),
		p.details.Init(),
	)
}

func NewLogsPage(service logging.Service) LogPage {
	return &logsPage{
		table:   logs.NewLogsTable(service),
		details: logs.NewLogsDetails(),
	}
}
