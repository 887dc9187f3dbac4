package tui

import (
	"context"
	"errors"
	"fmt"
	"log"
	"sync"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/ShayCichocki/trellis/internal/dashboard"
	"github.com/ShayCichocki/trellis/internal/events"
)

// ErrScreenClosed is returned by ReadKey and Draw once the program exited.
var ErrScreenClosed = errors.New("screen closed")

// frameMsg replaces the frame on screen.
type frameMsg struct {
	frame dashboard.Frame
}

// canvas is the bubbletea model behind a Screen. It only shows the last
// frame it was sent and passes key presses on; it never quits by itself.
type canvas struct {
	frame  dashboard.Frame
	drawn  bool
	width  int
	height int
	keys   *keyQueue
}

// Init implements tea.Model.
func (c *canvas) Init() tea.Cmd {
	return nil
}

// Update implements tea.Model.
func (c *canvas) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case frameMsg:
		c.frame = msg.frame
		c.drawn = true

	case tea.WindowSizeMsg:
		c.width = msg.Width
		c.height = msg.Height

	case tea.KeyMsg:
		// Never block the program's event loop; Draw waits on it.
		c.keys.push(events.Key(msg.String()))
	}
	return c, nil
}

// View implements tea.Model.
func (c *canvas) View() string {
	if !c.drawn {
		return ""
	}
	return Render(c.frame, c.width, c.height)
}

// Screen is the terminal renderer and key source of the dashboard. It runs
// a bubbletea program on the alternate screen with raw input and mouse
// capture; Close restores the terminal.
type Screen struct {
	program *tea.Program
	keys    *keyQueue
	done    chan struct{}

	mu      sync.Mutex
	started bool
	err     error

	closeOnce sync.Once
}

var (
	_ dashboard.Renderer = (*Screen)(nil)
	_ events.KeySource   = (*Screen)(nil)
)

// NewScreen creates a Screen. Extra options are appended to the defaults
// (alternate screen, mouse cell motion); tests use them to swap the
// terminal for plain readers and writers.
func NewScreen(opts ...tea.ProgramOption) *Screen {
	keys := newKeyQueue()
	options := append([]tea.ProgramOption{tea.WithAltScreen(), tea.WithMouseCellMotion()}, opts...)
	return &Screen{
		program: tea.NewProgram(&canvas{keys: keys}, options...),
		keys:    keys,
		done:    make(chan struct{}),
	}
}

// Start takes over the terminal and runs the program in the background.
func (s *Screen) Start() {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.started {
		return
	}
	s.started = true

	go func() {
		_, err := s.program.Run()
		if err != nil && !errors.Is(err, tea.ErrProgramKilled) {
			log.Printf("[tui] program exited: %v", err)
		}
		s.mu.Lock()
		s.err = err
		s.mu.Unlock()
		close(s.done)
	}()
}

// Draw implements dashboard.Renderer. It fails once the program has exited.
func (s *Screen) Draw(frame dashboard.Frame) error {
	select {
	case <-s.done:
		return s.exitErr()
	default:
	}
	s.program.Send(frameMsg{frame: frame})
	return nil
}

// ReadKey implements events.KeySource. Keys pressed before the program
// exited are still delivered; after that it fails with ErrScreenClosed.
func (s *Screen) ReadKey(ctx context.Context) (events.Key, error) {
	if err := ctx.Err(); err != nil {
		return "", err
	}
	key, ok, err := s.keys.pop(ctx, s.done)
	if err != nil {
		return "", err
	}
	if !ok {
		return "", s.exitErr()
	}
	return key, nil
}

// Close stops the program, waits for the terminal to be restored and
// returns the error the program exited with, if any.
func (s *Screen) Close() error {
	s.mu.Lock()
	started := s.started
	s.mu.Unlock()
	if !started {
		return nil
	}

	s.closeOnce.Do(func() {
		s.program.Quit()
		<-s.done
	})

	s.mu.Lock()
	defer s.mu.Unlock()
	return s.err
}

func (s *Screen) exitErr() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.err != nil {
		return fmt.Errorf("%w: %w", ErrScreenClosed, s.err)
	}
	return ErrScreenClosed
}
