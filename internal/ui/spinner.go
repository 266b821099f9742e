package ui

import (
	"fmt"
	"io"
	"os"
	"sync"

	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"golang.org/x/term"
)

var spinnerStyle = lipgloss.NewStyle().Foreground(lipgloss.Color(ColorTeal500))

// Spinner shows a message with an animated glyph while a request is in
// flight. On a non-terminal writer the message is printed once instead.
type Spinner struct {
	mu      sync.Mutex
	out     io.Writer
	isTTY   bool
	program *tea.Program
	doneCh  chan struct{}
}

type spinnerModel struct {
	spinner spinner.Model
	message string
	done    bool
}

type spinnerMsgUpdate string
type spinnerMsgQuit struct{}

func newSpinnerModel(message string) spinnerModel {
	s := spinner.New()
	s.Spinner = spinner.Dot
	s.Style = spinnerStyle
	return spinnerModel{spinner: s, message: message}
}

func (m spinnerModel) Init() tea.Cmd {
	return m.spinner.Tick
}

func (m spinnerModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case spinnerMsgUpdate:
		m.message = string(msg)
		return m, nil
	case spinnerMsgQuit:
		m.done = true
		return m, tea.Quit
	case spinner.TickMsg:
		var cmd tea.Cmd
		m.spinner, cmd = m.spinner.Update(msg)
		return m, cmd
	default:
		return m, nil
	}
}

func (m spinnerModel) View() string {
	if m.done {
		return ""
	}
	return fmt.Sprintf("%s %s", m.spinner.View(), DimStyle.Render(m.message))
}

// NewSpinner returns a spinner drawing to out, or to stderr when out is nil.
func NewSpinner(out io.Writer) *Spinner {
	if out == nil {
		out = os.Stderr
	}
	return &Spinner{out: out, isTTY: IsTerminal(out)}
}

// IsTerminal reports whether w is a file attached to a terminal.
func IsTerminal(w any) bool {
	f, ok := w.(interface{ Fd() uintptr })
	if !ok {
		return false
	}
	return term.IsTerminal(int(f.Fd())) // #nosec G115 -- file descriptors fit in int
}

// Start shows message. A second Start replaces the message.
func (s *Spinner) Start(message string) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.program != nil {
		s.program.Send(spinnerMsgUpdate(message))
		return
	}
	if !s.isTTY {
		_, _ = fmt.Fprintln(s.out, DimStyle.Render(message))
		return
	}

	s.doneCh = make(chan struct{})
	s.program = tea.NewProgram(newSpinnerModel(message), tea.WithOutput(s.out), tea.WithInput(nil))
	go func(p *tea.Program, done chan struct{}) {
		_, _ = p.Run()
		close(done)
	}(s.program, s.doneCh)
}

// Stop clears the spinner and waits for it to finish drawing.
func (s *Spinner) Stop() {
	s.mu.Lock()
	p, done := s.program, s.doneCh
	s.program = nil
	s.mu.Unlock()

	if p == nil {
		return
	}
	p.Send(spinnerMsgQuit{})
	<-done
}

// Run executes fn while showing message.
func (s *Spinner) Run(message string, fn func() error) error {
	s.Start(message)
	defer s.Stop()
	return fn()
}

// WithSpinnerResult executes fn while a spinner on out shows message.
func WithSpinnerResult[T any](out io.Writer, message string, fn func() (T, error)) (T, error) {
	s := NewSpinner(out)
	s.Start(message)
	defer s.Stop()
	return fn()
}
