package spinner

import (
	"fmt"
	"io"
	"os"
	"sync"

	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
)

// Spinner wraps the bubbles spinner for use outside the full-screen UI.
type Spinner struct {
	model   spinner.Model
	done    chan struct{}
	prog    *tea.Program
	started bool
	once    sync.Once
}

type spinnerModel struct {
	spinner  spinner.Model
	message  string
	quitting bool
}

func (m spinnerModel) Init() tea.Cmd {
	return m.spinner.Tick
}

func (m spinnerModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		m.quitting = true
		return m, tea.Quit
	case spinner.TickMsg:
		var cmd tea.Cmd
		m.spinner, cmd = m.spinner.Update(msg)
		return m, cmd
	case quitMsg:
		m.quitting = true
		return m, tea.Quit
	default:
		return m, nil
	}
}

func (m spinnerModel) View() string {
	if m.quitting {
		return ""
	}
	return fmt.Sprintf("%s %s", m.spinner.View(), m.message)
}

// quitMsg is sent when we want to quit the spinner
type quitMsg struct{}

// NewSpinner creates a new spinner with the given message
func NewSpinner(message string) *Spinner {
	return newSpinner(message, lipgloss.NewStyle(), os.Stderr)
}

// NewThemedSpinner creates a new spinner with the given message and color
func NewThemedSpinner(message string, color lipgloss.AdaptiveColor) *Spinner {
	return newSpinner(message, lipgloss.NewStyle().Foreground(color), os.Stderr)
}

func newSpinner(message string, style lipgloss.Style, out io.Writer) *Spinner {
	s := spinner.New(spinner.WithSpinner(spinner.Dot), spinner.WithStyle(style))

	model := spinnerModel{
		spinner: s,
		message: message,
	}

	prog := tea.NewProgram(model,
		tea.WithOutput(out),
		tea.WithInput(nil),
		tea.WithoutSignalHandler(),
	)

	return &Spinner{
		model: s,
		done:  make(chan struct{}),
		prog:  prog,
	}
}

// Start begins the spinner animation
func (s *Spinner) Start() {
	s.started = true
	go func() {
		defer close(s.done)
		if _, err := s.prog.Run(); err != nil {
			fmt.Fprintf(os.Stderr, "Error running spinner: %v\n", err)
		}
	}()
}

// Stop ends the spinner animation and waits for the program to exit.
// It is safe to call more than once.
func (s *Spinner) Stop() {
	s.once.Do(func() {
		if !s.started {
			return
		}
		s.prog.Send(quitMsg{})
		<-s.done
	})
}
