package logs

import (
	"context"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/table"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/sst/ghosttext/internal/logging"
	"github.com/sst/ghosttext/internal/pubsub"
	"github.com/sst/ghosttext/internal/tui/layout"
	"github.com/sst/ghosttext/internal/tui/theme"
)

const logLimit = 100

type TableComponent interface {
	tea.Model
	layout.Sizeable
	layout.Bindings
}

type tableCmp struct {
	table         table.Model
	service       logging.Service
	logs          []logging.Log
	selectedLogID string
}

// SelectedLogMsg is emitted when the cursor moves to a different row.
type SelectedLogMsg logging.Log

type logsLoadedMsg struct {
	logs []logging.Log
}

func (i *tableCmp) Init() tea.Cmd {
	return i.fetchLogs()
}

func (i *tableCmp) fetchLogs() tea.Cmd {
	svc := i.service
	return func() tea.Msg {
		if svc == nil {
			return nil
		}
		logs, err := svc.ListAll(context.Background(), logLimit)
		if err != nil {
			return nil
		}
		return logsLoadedMsg{logs: logs}
	}
}

func (i *tableCmp) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmds []tea.Cmd

	switch msg := msg.(type) {
	case logsLoadedMsg:
		// Newest first
		i.logs = make([]logging.Log, 0, len(msg.logs))
		for j := len(msg.logs) - 1; j >= 0; j-- {
			i.logs = append(i.logs, msg.logs[j])
		}
		i.updateRows()
		return i, i.selectionChanged()

	case pubsub.Event[logging.Log]:
		if msg.Type == logging.EventLogCreated {
			i.logs = append([]logging.Log{msg.Payload}, i.logs...)
			if len(i.logs) > logLimit {
				i.logs = i.logs[:logLimit]
			}
			i.updateRows()
		}
		return i, nil
	}

	t, cmd := i.table.Update(msg)
	cmds = append(cmds, cmd)
	i.table = t
	cmds = append(cmds, i.selectionChanged())
	return i, tea.Batch(cmds...)
}

func (i *tableCmp) selectionChanged() tea.Cmd {
	selectedRow := i.table.SelectedRow()
	if selectedRow == nil || i.selectedLogID == selectedRow[0] {
		return nil
	}
	i.selectedLogID = selectedRow[0]
	for _, log := range i.logs {
		if log.ID == selectedRow[0] {
			selected := SelectedLogMsg(log)
			return func() tea.Msg { return selected }
		}
	}
	return nil
}

func (i *tableCmp) View() string {
	t := theme.CurrentTheme()
	defaultStyles := table.DefaultStyles()
	defaultStyles.Selected = defaultStyles.Selected.Foreground(t.Primary())
	i.table.SetStyles(defaultStyles)
	return i.table.View()
}

func (i *tableCmp) GetSize() (int, int) {
	return i.table.Width(), i.table.Height()
}

func (i *tableCmp) SetSize(width int, height int) tea.Cmd {
	i.table.SetWidth(width)
	i.table.SetHeight(height)
	columns := i.table.Columns()

	timeWidth := 8
	levelWidth := 7
	messageWidth := max(10, width-timeWidth-levelWidth-5)

	columns[0].Width = 0 // ID column (hidden)
	columns[1].Width = timeWidth
	columns[2].Width = levelWidth
	columns[3].Width = messageWidth

	i.table.SetColumns(columns)
	return nil
}

func (i *tableCmp) BindingKeys() []key.Binding {
	return layout.KeyMapToSlice(i.table.KeyMap)
}

func (i *tableCmp) updateRows() {
	rows := make([]table.Row, 0, len(i.logs))
	for _, log := range i.logs {
		rows = append(rows, table.Row{
			log.ID,
			log.Timestamp.Local().Format("15:04:05"),
			log.Level,
			log.Message,
		})
	}
	i.table.SetRows(rows)
}

func NewLogsTable(service logging.Service) TableComponent {
	columns := []table.Column{
		{Title: "ID", Width: 0},
		{Title: "Time", Width: 8},
		{Title: "Level", Width: 7},
		{Title: "Message", Width: 30},
	}

	tableModel := table.New(
		table.WithColumns(columns),
		table.WithFocused(true),
	)
	return &tableCmp{
		table:   tableModel,
		service: service,
		logs:    []logging.Log{},
	}
}
