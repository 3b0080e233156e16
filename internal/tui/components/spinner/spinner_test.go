package spinner

import (
	"bytes"
	"testing"
	"time"

	"github.com/charmbracelet/lipgloss"
	"github.com/stretchr/testify/assert"
)

func TestSpinner(t *testing.T) {
	t.Parallel()

	var out bytes.Buffer
	s := newSpinner("Thinking...", lipgloss.NewStyle(), &out)
	s.Start()

	// Wait a bit to let it run
	time.Sleep(100 * time.Millisecond)

	s.Stop()
	s.Stop()
}

func TestSpinnerModelQuits(t *testing.T) {
	t.Parallel()

	m := spinnerModel{message: "Thinking..."}
	next, cmd := m.Update(quitMsg{})
	assert.NotNil(t, cmd)
	assert.Empty(t, next.View())
}

func TestSpinnerStopWithoutStart(t *testing.T) {
	t.Parallel()

	s := newSpinner("Thinking...", lipgloss.NewStyle(), &bytes.Buffer{})
	s.Stop()
}
