package logs

import (
	"context"
	"testing"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/x/ansi"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/sst/ghosttext/internal/logging"
	"github.com/sst/ghosttext/internal/pubsub"
)

func TestTableLoadsNewestFirst(t *testing.T) {
	svc := logging.NewService(10)
	defer svc.Shutdown()
	ctx := context.Background()
	require.NoError(t, svc.Create(ctx, time.Now(), "info", "suggestion shown", nil))
	require.NoError(t, svc.Create(ctx, time.Now(), "warn", "suggestion failed", map[string]string{"kind": "rate_limit"}))

	cmp := NewLogsTable(svc).(*tableCmp)
	cmp.SetSize(80, 10)
	msg := cmp.Init()()
	require.IsType(t, logsLoadedMsg{}, msg)

	_, cmd := cmp.Update(msg)
	require.Len(t, cmp.logs, 2)
	assert.Equal(t, "suggestion failed", cmp.logs[0].Message)

	require.NotNil(t, cmd)
	selected, ok := cmd().(SelectedLogMsg)
	require.True(t, ok)
	assert.Equal(t, "suggestion failed", selected.Message)
}

func TestTableAppendsCreatedEvents(t *testing.T) {
	cmp := NewLogsTable(nil).(*tableCmp)
	cmp.SetSize(80, 10)
	assert.Nil(t, cmp.Init()())

	for range logLimit + 5 {
		cmp.Update(pubsub.Event[logging.Log]{
			Type:    logging.EventLogCreated,
			Payload: logging.Log{ID: "x", Level: "info", Message: "tick"},
		})
	}
	assert.Len(t, cmp.logs, logLimit)
}

func TestDetailsShowsAttributes(t *testing.T) {
	cmp := NewLogsDetails().(*detailCmp)
	cmp.SetSize(60, 12)
	cmp.Update(SelectedLogMsg{
		ID:         "1",
		Level:      "warn",
		Message:    "suggestion failed",
		Timestamp:  time.Now(),
		Attributes: map[string]string{"kind": "timeout", "request_id": "4"},
	})

	view := ansi.Strip(cmp.View())
	assert.Contains(t, view, "WARN")
	assert.Contains(t, view, "suggestion failed")
	assert.Contains(t, view, "kind: timeout")
	assert.Contains(t, view, "request_id: 4")
}

func TestTableKeysMoveSelection(t *testing.T) {
	cmp := NewLogsTable(nil).(*tableCmp)
	cmp.SetSize(80, 10)
	cmp.Update(logsLoadedMsg{logs: []logging.Log{
		{ID: "a", Message: "older"},
		{ID: "b", Message: "newer"},
	}})

	_, cmd := cmp.Update(tea.KeyMsg{Type: tea.KeyDown})
	require.NotNil(t, cmd)
	assert.Equal(t, "a", cmp.selectedLogID)
	assert.NotEmpty(t, cmp.BindingKeys())
}
